package quiz

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/njia-app/njia/core"
	"github.com/njia-app/njia/core/recommend"
)

var (
	// errors
	ErrNoResult = errors.New("no quiz result found")
)

type (
	Repository interface {
		CreateResult(ctx context.Context, res Result) (Result, error)
		GetLatestResultByStudent(ctx context.Context, studentID string) (Result, error)
	}

	// Submission is what one successful quiz run hands back to the API:
	// the stored result plus the full transient recommendations for display.
	Submission struct {
		Result          Result                           `json:"result"`
		Recommendations []recommend.CareerRecommendation `json:"recommendations"`
		Source          recommend.Source                 `json:"-"`
	}

	Service interface {
		Questions() []Question
		// Submit runs the full pipeline: aggregate -> request -> parse -> persist.
		// Upstream request errors abort the run with nothing persisted; a
		// malformed model response never does (the parser falls back).
		Submit(ctx context.Context, studentID string, answers AnswerSet) (Submission, error)
		LatestResult(ctx context.Context, studentID string) (Result, error)
	}

	service struct {
		repo      Repository
		requester *recommend.Requester
		logger    core.Logger
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(repo Repository, requester *recommend.Requester, logger core.Logger) Service {
	return &service{
		repo:      repo,
		requester: requester,
		logger:    logger,
	}
}

func (svc *service) Questions() []Question {
	return Questions()
}

func (svc *service) Submit(ctx context.Context, studentID string, answers AnswerSet) (Submission, error) {
	questions := Questions()

	skillCounts, streamCounts := Aggregate(answers, questions)
	skillScores := Normalize(skillCounts)
	streamScores := Normalize(streamCounts)

	raw, err := svc.requester.Request(ctx, skillScores, streamScores, answers)
	if err != nil {
		return Submission{}, errors.Wrap(err, "requesting recommendations")
	}

	outcome := recommend.Parse(raw, streamScores)
	if outcome.Source == recommend.SourceFallback {
		svc.logger.Warn("model response unusable; serving fallback recommendations", map[string]interface{}{
			"student_id": studentID,
			"preview":    core.TruncateString(raw, 200),
		})
	}

	res := Result{
		StudentID: studentID,
		Answers:   answers,
		Scores: Scores{
			Skills:  skillScores,
			Streams: streamScores,
		},
		RecommendedCareers: outcome.Names(),
		CreatedAt:          time.Now().UTC(),
	}
	res, err = svc.repo.CreateResult(ctx, res)
	if err != nil {
		return Submission{}, errors.Wrap(err, "saving quiz result")
	}

	return Submission{
		Result:          res,
		Recommendations: outcome.Recommendations,
		Source:          outcome.Source,
	}, nil
}

func (svc *service) LatestResult(ctx context.Context, studentID string) (Result, error) {
	return svc.repo.GetLatestResultByStudent(ctx, studentID)
}
