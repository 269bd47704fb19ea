package quiz

import "time"

// Scores bundles the normalized skill and stream maps computed for one
// submission.
type Scores struct {
	Skills  ScoreMap `json:"skills"`
	Streams ScoreMap `json:"streams"`
}

// Result is the persisted outcome of one quiz submission. It is created
// once and never mutated; only the most recent result per student is read.
type Result struct {
	ID                 string    `json:"id"`
	StudentID          string    `json:"student_id"`
	Answers            AnswerSet `json:"quiz_data"`
	Scores             Scores    `json:"scores"`
	RecommendedCareers []string  `json:"recommended_careers"`
	CreatedAt          time.Time `json:"created_at"` // UTC
}
