package quiz_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/njia-app/njia/core"
	"github.com/njia-app/njia/core/quiz"
	"github.com/njia-app/njia/core/recommend"
	dummydb "github.com/njia-app/njia/storage/database/dummy"
)

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type stubCompleter struct {
	text string
	err  error
}

func (c *stubCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	return c.text, c.err
}

func newService(t *testing.T, completer *stubCompleter) (quiz.Service, quiz.Repository) {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}
	repo := dummydb.NewQuizRepository(db)

	conf := &core.Config{AI: core.AIConfig{RequestTimeout: time.Second}}
	requester := recommend.NewRequester(completer, conf, nopLogger{})
	return quiz.NewService(repo, requester, nopLogger{}), repo
}

func Test_service_Submit_upstreamFailureAbortsRun(t *testing.T) {
	completer := &stubCompleter{err: errors.Wrap(recommend.ErrRateLimited, "try later")}
	svc, repo := newService(t, completer)

	answers := quiz.AnswerSet{1: "analyzing", 2: "structured"}
	_, err := svc.Submit(context.Background(), "student-1", answers)
	if errors.Cause(err) != recommend.ErrRateLimited {
		t.Fatalf("Submit() error = %v, want cause %v", err, recommend.ErrRateLimited)
	}

	// nothing persisted
	if _, err := repo.GetLatestResultByStudent(context.Background(), "student-1"); err != quiz.ErrNoResult {
		t.Errorf("GetLatestResultByStudent() error = %v, want %v", err, quiz.ErrNoResult)
	}
}

func Test_service_Submit_parsedResponse(t *testing.T) {
	completer := &stubCompleter{text: `[
		{"name": "Software Engineer", "match_reason": "Strong analytical profile.",
		 "required_skills": ["Programming"], "salary_range": "$70,000 - $120,000",
		 "education": "Bachelor's degree"}
	]`}
	svc, _ := newService(t, completer)

	answers := quiz.AnswerSet{1: "analyzing", 2: "independent", 3: "science", 4: "innovation"}
	sub, err := svc.Submit(context.Background(), "student-1", answers)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if sub.Source != recommend.SourceParsed {
		t.Errorf("Source = %q, want %q", sub.Source, recommend.SourceParsed)
	}
	if len(sub.Recommendations) != 1 || sub.Recommendations[0].Name != "Software Engineer" {
		t.Errorf("Recommendations = %+v", sub.Recommendations)
	}
	if !reflect.DeepEqual(sub.Result.RecommendedCareers, []string{"Software Engineer"}) {
		t.Errorf("RecommendedCareers = %v", sub.Result.RecommendedCareers)
	}
	if sub.Result.ID == "" {
		t.Error("Result.ID not set")
	}
	if sub.Result.Scores.Streams[quiz.StreamScience] != 100 {
		t.Errorf("science stream score = %d, want 100", sub.Result.Scores.Streams[quiz.StreamScience])
	}

	res, err := svc.LatestResult(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("LatestResult() error = %v", err)
	}
	if res.ID != sub.Result.ID {
		t.Errorf("LatestResult().ID = %q, want %q", res.ID, sub.Result.ID)
	}
}

func Test_service_Submit_malformedResponseFallsBack(t *testing.T) {
	completer := &stubCompleter{text: "Sorry, I cannot help with that."}
	svc, _ := newService(t, completer)

	answers := quiz.AnswerSet{1: "analyzing", 2: "independent", 3: "science", 4: "innovation"}
	sub, err := svc.Submit(context.Background(), "student-1", answers)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if sub.Source != recommend.SourceFallback {
		t.Errorf("Source = %q, want %q", sub.Source, recommend.SourceFallback)
	}
	if len(sub.Recommendations) == 0 {
		t.Fatal("Recommendations empty; fallback must always produce entries")
	}
	// all answers lean science; its fallback career leads
	if sub.Recommendations[0].Name != "Data Analyst" {
		t.Errorf("Recommendations[0].Name = %q, want %q", sub.Recommendations[0].Name, "Data Analyst")
	}
	if len(sub.Result.RecommendedCareers) != len(sub.Recommendations) {
		t.Errorf("RecommendedCareers len = %d, want %d", len(sub.Result.RecommendedCareers), len(sub.Recommendations))
	}
}

func Test_service_Submit_noAnswers(t *testing.T) {
	completer := &stubCompleter{text: "Sorry, I cannot help with that."}
	svc, _ := newService(t, completer)

	sub, err := svc.Submit(context.Background(), "student-1", quiz.AnswerSet{})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if len(sub.Result.Scores.Skills) != 0 || len(sub.Result.Scores.Streams) != 0 {
		t.Errorf("Scores = %+v, want empty", sub.Result.Scores)
	}
	if sub.Source != recommend.SourceFallback {
		t.Errorf("Source = %q, want %q", sub.Source, recommend.SourceFallback)
	}
	// no stream scored, so the generic entry is served
	if len(sub.Recommendations) != 1 || sub.Recommendations[0].Name != "General Career Guidance" {
		t.Errorf("Recommendations = %+v", sub.Recommendations)
	}

	res, err := svc.LatestResult(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("LatestResult() error = %v", err)
	}
	if res.ID != sub.Result.ID {
		t.Errorf("LatestResult().ID = %q, want %q", res.ID, sub.Result.ID)
	}
}

func Test_service_LatestResult_noneRecorded(t *testing.T) {
	svc, _ := newService(t, &stubCompleter{})

	if _, err := svc.LatestResult(context.Background(), "nobody"); err != quiz.ErrNoResult {
		t.Errorf("LatestResult() error = %v, want %v", err, quiz.ErrNoResult)
	}
}
