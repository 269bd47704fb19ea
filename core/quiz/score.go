package quiz

import "math"

// AnswerSet maps a question ID to the selected option value. It may be
// sparse: questions a student never reached simply have no entry.
type AnswerSet map[int]string

// ScoreMap maps a category label (skill or stream tag) to a normalized
// strength in [0,100]. Categories that were never contributed to are absent.
type ScoreMap map[string]int

// Aggregate resolves each answered question's selected option and counts
// the skill and stream tags it carries. Unanswered questions and unknown
// option values contribute nothing; partial answer sets are fine.
func Aggregate(answers AnswerSet, questions []Question) (skillCounts, streamCounts map[string]int) {
	skillCounts = make(map[string]int)
	streamCounts = make(map[string]int)

	for _, q := range questions {
		value, ok := answers[q.ID]
		if !ok {
			continue
		}
		opt, ok := q.Option(value)
		if !ok {
			continue
		}
		for _, skill := range opt.Skills {
			skillCounts[skill]++
		}
		for _, stream := range opt.Streams {
			streamCounts[stream]++
		}
	}
	return skillCounts, streamCounts
}

// Normalize scales raw counts to [0,100] relative to the maximum observed
// category, so the strongest signal always reads exactly 100 regardless of
// how many questions the quiz version has. An empty map normalizes to an
// empty map.
func Normalize(counts map[string]int) ScoreMap {
	scores := make(ScoreMap, len(counts))

	var max int
	for _, count := range counts {
		if count > max {
			max = count
		}
	}
	if max == 0 {
		return scores
	}

	for tag, count := range counts {
		if count == 0 {
			continue
		}
		scores[tag] = int(math.Round(float64(count) / float64(max) * 100))
	}
	return scores
}
