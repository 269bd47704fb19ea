package quiz

type (
	// Option is one selectable answer to a Question. The skill and stream
	// tags it carries are what quiz scoring aggregates; labels are only
	// for display.
	Option struct {
		Value   string   `json:"value"`
		Label   string   `json:"label"`
		Skills  []string `json:"skills"`
		Streams []string `json:"streams,omitempty"`
	}

	// Question is a fixed-choice quiz question. The question set is defined
	// at build time and is not user-editable.
	Question struct {
		ID       int      `json:"id"`
		Prompt   string   `json:"question"`
		Category string   `json:"category"`
		Options  []Option `json:"options"`
	}
)

// Option returns the option with the given value, if any.
func (q Question) Option(value string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}

// Streams (broad academic tracks)
const (
	StreamScience    = "science"
	StreamCommerce   = "commerce"
	StreamArts       = "arts"
	StreamVocational = "vocational"
)

var questions = []Question{
	{
		ID:       1,
		Prompt:   "Which activity do you enjoy most?",
		Category: "interests",
		Options: []Option{
			{
				Value:   "analyzing",
				Label:   "Analyzing data and solving problems",
				Skills:  []string{"analytical", "problem-solving"},
				Streams: []string{StreamScience},
			},
			{
				Value:   "creating",
				Label:   "Creating and designing things",
				Skills:  []string{"creative", "artistic"},
				Streams: []string{StreamArts},
			},
			{
				Value:   "helping",
				Label:   "Helping and teaching others",
				Skills:  []string{"empathy", "communication"},
				Streams: []string{StreamArts},
			},
			{
				Value:   "organizing",
				Label:   "Organizing and managing projects",
				Skills:  []string{"leadership", "planning"},
				Streams: []string{StreamCommerce},
			},
		},
	},
	{
		ID:       2,
		Prompt:   "What type of work environment suits you best?",
		Category: "environment",
		Options: []Option{
			{
				Value:   "structured",
				Label:   "Structured with clear rules and procedures",
				Skills:  []string{"organized", "detail-oriented"},
				Streams: []string{StreamCommerce},
			},
			{
				Value:   "flexible",
				Label:   "Flexible and dynamic",
				Skills:  []string{"adaptable", "independent"},
				Streams: []string{StreamArts},
			},
			{
				Value:  "collaborative",
				Label:  "Collaborative and team-oriented",
				Skills: []string{"teamwork", "social"},
			},
			{
				Value:   "independent",
				Label:   "Independent with minimal supervision",
				Skills:  []string{"self-motivated", "autonomous"},
				Streams: []string{StreamScience},
			},
		},
	},
	{
		ID:       3,
		Prompt:   "Which subject interests you most?",
		Category: "subjects",
		Options: []Option{
			{
				Value:   "science",
				Label:   "Science and Technology",
				Skills:  []string{"technical", "logical"},
				Streams: []string{StreamScience},
			},
			{
				Value:   "arts",
				Label:   "Arts and Humanities",
				Skills:  []string{"creative", "expressive"},
				Streams: []string{StreamArts},
			},
			{
				Value:   "business",
				Label:   "Business and Economics",
				Skills:  []string{"strategic", "analytical"},
				Streams: []string{StreamCommerce},
			},
			{
				Value:   "social",
				Label:   "Social Sciences",
				Skills:  []string{"empathetic", "research"},
				Streams: []string{StreamArts},
			},
		},
	},
	{
		ID:       4,
		Prompt:   "What motivates you most in a career?",
		Category: "motivation",
		Options: []Option{
			{
				Value:   "innovation",
				Label:   "Innovation and creativity",
				Skills:  []string{"innovative", "visionary"},
				Streams: []string{StreamScience},
			},
			{
				Value:   "stability",
				Label:   "Stability and security",
				Skills:  []string{"reliable", "consistent"},
				Streams: []string{StreamCommerce},
			},
			{
				Value:   "impact",
				Label:   "Making a positive impact",
				Skills:  []string{"purposeful", "altruistic"},
				Streams: []string{StreamVocational},
			},
			{
				Value:  "growth",
				Label:  "Personal growth and learning",
				Skills: []string{"curious", "ambitious"},
			},
		},
	},
}

// Questions returns the built-in ordered question set.
func Questions() []Question {
	return questions
}
