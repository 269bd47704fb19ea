package recommend

import "context"

// CareerRecommendation is one career suggestion produced from a quiz
// submission. It is transient: only the name survives into the persisted
// quiz result, where it is later used to look up full career records.
type CareerRecommendation struct {
	Name           string   `json:"name"`
	MatchReason    string   `json:"match_reason"`
	RequiredSkills []string `json:"required_skills"`
	SalaryRange    string   `json:"salary_range"`
	Education      string   `json:"education"`
}

// Source records whether recommendations came out of the model's own
// response or out of the built-in fallback table.
type Source string

const (
	SourceParsed   Source = "parsed"
	SourceFallback Source = "fallback"
)

// Outcome is the parser's result. Both sources yield displayable
// recommendations; the tag exists for logging.
type Outcome struct {
	Source          Source
	Recommendations []CareerRecommendation
}

// Names returns the recommended career names in order.
func (o Outcome) Names() []string {
	names := make([]string, 0, len(o.Recommendations))
	for _, rec := range o.Recommendations {
		names = append(names, rec.Name)
	}
	return names
}

// Completer is any service that can turn a prompt into model text.
// It is expected to map transport/API failures to this package's errors.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}
