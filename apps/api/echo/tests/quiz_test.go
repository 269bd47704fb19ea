package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pkg/errors"

	"github.com/njia-app/njia/core/quiz"
	"github.com/njia-app/njia/core/recommend"
	"github.com/njia-app/njia/core/user"
	testutil "github.com/njia-app/njia/tests"
)

func Test_quizApi_questions(t *testing.T) {
	req, rec := newRequest(http.MethodGet, "/v1/quiz/questions")
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	var questions []quiz.Question
	if err := json.Unmarshal(rec.Body.Bytes(), &questions); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(questions) != len(quiz.Questions()) {
		t.Errorf("len(questions) = %d, want %d", len(questions), len(quiz.Questions()))
	}
	for _, q := range questions {
		if len(q.Options) == 0 {
			t.Errorf("question %d has no options", q.ID)
		}
	}
}

func Test_quizApi_submit(t *testing.T) {
	testutil.ResetDB(t, db)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)
	token := getToken(t, student)

	answers := map[string]interface{}{"answers": quiz.AnswerSet{1: "analyzing", 2: "independent", 3: "science", 4: "innovation"}}
	body := marchallObj(t, answers)

	latestCode := func(t *testing.T) int {
		req, rec := newAuthRequest(http.MethodGet, "/v1/quiz/results/latest", token)
		app.ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/quiz/submissions", body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("no result yet", func(t *testing.T) {
		if code := latestCode(t); code != http.StatusNotFound {
			t.Errorf("latest result code = %d, want 404", code)
		}
	})

	// upstream failures abort the run with nothing recorded
	upstreamTests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "rate limited", err: errors.Wrap(recommend.ErrRateLimited, "slow down"), wantCode: http.StatusTooManyRequests},
		{name: "quota exceeded", err: errors.Wrap(recommend.ErrQuotaExceeded, "no credits"), wantCode: http.StatusPaymentRequired},
		{name: "unavailable", err: errors.Wrap(recommend.ErrUpstreamUnavailable, "down"), wantCode: http.StatusBadGateway},
		{name: "other upstream status", err: &recommend.UpstreamError{Status: 409}, wantCode: http.StatusBadGateway},
	}
	for _, tt := range upstreamTests {
		t.Run(tt.name, func(t *testing.T) {
			aiCompleter.text, aiCompleter.err = "", tt.err
			defer func() { aiCompleter.err = nil }()

			req, rec := newAuthRequest(http.MethodPost, "/v1/quiz/submissions", token, body)
			app.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			var resp httpErr
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Error == "" {
				t.Errorf("no error message: %s", rec.Body.String())
			}
			if code := latestCode(t); code != http.StatusNotFound {
				t.Errorf("result recorded on upstream failure; latest code = %d", code)
			}
		})
	}

	t.Run("successful submission", func(t *testing.T) {
		aiCompleter.text, aiCompleter.err = `[
			{"name": "Software Engineer", "match_reason": "Strong analytical profile.",
			 "required_skills": ["Programming"], "salary_range": "$70,000 - $120,000",
			 "education": "Bachelor's degree"}
		]`, nil

		req, rec := newAuthRequest(http.MethodPost, "/v1/quiz/submissions", token, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d, want 201; body %s", rec.Code, rec.Body.String())
		}
		var sub quiz.Submission
		if err := json.Unmarshal(rec.Body.Bytes(), &sub); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if sub.Result.StudentID != student.ID {
			t.Errorf("StudentID = %q, want %q", sub.Result.StudentID, student.ID)
		}
		if len(sub.Recommendations) != 1 || sub.Recommendations[0].Name != "Software Engineer" {
			t.Errorf("Recommendations = %+v", sub.Recommendations)
		}
		if sub.Result.Scores.Streams["science"] != 100 {
			t.Errorf("science score = %d, want 100", sub.Result.Scores.Streams["science"])
		}

		req, rec = newAuthRequest(http.MethodGet, "/v1/quiz/results/latest", token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("latest result code = %d, want 200", rec.Code)
		}
		var res quiz.Result
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if res.ID != sub.Result.ID {
			t.Errorf("latest result ID = %q, want %q", res.ID, sub.Result.ID)
		}
	})

	t.Run("unusable model response falls back", func(t *testing.T) {
		testutil.ResetDB(t, db)
		student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)
		token := getToken(t, student)

		aiCompleter.text, aiCompleter.err = "Sorry, I cannot help with that.", nil

		req, rec := newAuthRequest(http.MethodPost, "/v1/quiz/submissions", token, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d, want 201; body %s", rec.Code, rec.Body.String())
		}
		var sub quiz.Submission
		if err := json.Unmarshal(rec.Body.Bytes(), &sub); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(sub.Recommendations) == 0 {
			t.Error("fallback produced no recommendations")
		}
	})
}
