package quiz

import (
	"reflect"
	"testing"
)

func TestAggregate(t *testing.T) {
	questions := Questions()

	tests := []struct {
		name        string
		answers     AnswerSet
		wantSkills  map[string]int
		wantStreams map[string]int
	}{
		{
			name:        "no answers",
			answers:     AnswerSet{},
			wantSkills:  map[string]int{},
			wantStreams: map[string]int{},
		},
		{
			name:        "unknown question ID ignored",
			answers:     AnswerSet{99: "analyzing"},
			wantSkills:  map[string]int{},
			wantStreams: map[string]int{},
		},
		{
			name:        "unknown option value ignored",
			answers:     AnswerSet{1: "lol"},
			wantSkills:  map[string]int{},
			wantStreams: map[string]int{},
		},
		{
			name:        "single answer",
			answers:     AnswerSet{1: "analyzing"},
			wantSkills:  map[string]int{"analytical": 1, "problem-solving": 1},
			wantStreams: map[string]int{StreamScience: 1},
		},
		{
			name:    "partial set with streamless option",
			answers: AnswerSet{1: "analyzing", 2: "collaborative"},
			wantSkills: map[string]int{
				"analytical": 1, "problem-solving": 1,
				"teamwork": 1, "social": 1,
			},
			wantStreams: map[string]int{StreamScience: 1},
		},
		{
			name:    "full science-leaning run",
			answers: AnswerSet{1: "analyzing", 2: "independent", 3: "science", 4: "innovation"},
			wantSkills: map[string]int{
				"analytical": 1, "problem-solving": 1,
				"self-motivated": 1, "autonomous": 1,
				"technical": 1, "logical": 1,
				"innovative": 1, "visionary": 1,
			},
			wantStreams: map[string]int{StreamScience: 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skills, streams := Aggregate(tt.answers, questions)
			if !reflect.DeepEqual(skills, tt.wantSkills) {
				t.Errorf("Aggregate() skills = %v, want %v", skills, tt.wantSkills)
			}
			if !reflect.DeepEqual(streams, tt.wantStreams) {
				t.Errorf("Aggregate() streams = %v, want %v", streams, tt.wantStreams)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		counts map[string]int
		want   ScoreMap
	}{
		{name: "empty", counts: map[string]int{}, want: ScoreMap{}},
		{name: "all zeros", counts: map[string]int{"a": 0, "b": 0}, want: ScoreMap{}},
		{name: "single category reads 100", counts: map[string]int{"science": 1}, want: ScoreMap{"science": 100}},
		{
			name:   "tie both read 100",
			counts: map[string]int{"science": 2, "commerce": 2},
			want:   ScoreMap{"science": 100, "commerce": 100},
		},
		{
			name:   "scaled relative to max",
			counts: map[string]int{"science": 4, "commerce": 2, "arts": 1},
			want:   ScoreMap{"science": 100, "commerce": 50, "arts": 25},
		},
		{
			name:   "rounded",
			counts: map[string]int{"science": 3, "arts": 1},
			want:   ScoreMap{"science": 100, "arts": 33},
		},
		{
			name:   "zero count dropped",
			counts: map[string]int{"science": 2, "arts": 0},
			want:   ScoreMap{"science": 100},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.counts); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

// the strongest observed category must always normalize to exactly 100,
// whatever the quiz version's size.
func TestNormalize_maxAlwaysScoresFull(t *testing.T) {
	questions := Questions()
	answers := AnswerSet{1: "organizing", 2: "structured", 3: "business", 4: "stability"}

	_, streamCounts := Aggregate(answers, questions)
	scores := Normalize(streamCounts)

	var max int
	for _, s := range scores {
		if s > max {
			max = s
		}
	}
	if max != 100 {
		t.Errorf("max normalized score = %d, want 100", max)
	}
	if scores[StreamCommerce] != 100 {
		t.Errorf("commerce score = %d, want 100", scores[StreamCommerce])
	}
}
