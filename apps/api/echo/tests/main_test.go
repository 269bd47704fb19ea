package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/njia-app/njia/apps/api/echo"
	"github.com/njia-app/njia/core"
	"github.com/njia-app/njia/core/career"
	"github.com/njia-app/njia/core/college"
	"github.com/njia-app/njia/core/mentor"
	"github.com/njia-app/njia/core/quiz"
	"github.com/njia-app/njia/core/recommend"
	"github.com/njia-app/njia/core/resource"
	"github.com/njia-app/njia/core/scholarship"
	"github.com/njia-app/njia/core/user"
	emailsvc "github.com/njia-app/njia/services/email"
	dummydb "github.com/njia-app/njia/storage/database/dummy"
)

// seeder views over the dummy repos; Add* helpers seed rows directly.
type (
	collegeSeeder interface {
		college.Repository
		AddCollege(college.College) college.College
	}

	scholarshipSeeder interface {
		scholarship.Repository
		AddScholarship(scholarship.Scholarship) scholarship.Scholarship
	}

	resourceSeeder interface {
		resource.Repository
		AddResource(resource.Resource) resource.Resource
	}

	mentorSeeder interface {
		mentor.Repository
		AddMentor(mentor.Profile) mentor.Profile
	}
)

var (
	db          *dummydb.DB
	app         *echoapi.Server
	conf        *core.Config
	usrRepo     user.Repository
	quizRepo    quiz.Repository
	careerRepo  career.Repository
	collegeRepo collegeSeeder
	schRepo     scholarshipSeeder
	resRepo     resourceSeeder
	mentorRepo  mentorSeeder

	// aiCompleter stands in for the upstream model; tests set its fields.
	aiCompleter = &stubCompleter{}

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
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

func TestMain(m *testing.M) {
	conf = &core.Config{
		AppName:          "Njia",
		Env:              "TEST",
		TestMode:         true,
		SecretKey:        "secret",
		DefaultFromEmail: "noreply@localhost",
		Server: core.ServerConfig{
			JWTExpirationDelta:        1 * time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
			PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
		},
		AI: core.AIConfig{RequestTimeout: time.Second},
	}

	// set up DB & repos
	db, _ = dummydb.Open()
	usrRepo = dummydb.NewUserRepository(db)
	quizRepo = dummydb.NewQuizRepository(db)
	careerRepo = dummydb.NewCareerRepository(db)
	collegeRepo = dummydb.NewCollegeRepository(db)
	schRepo = dummydb.NewScholarshipRepository(db)
	resRepo = dummydb.NewResourceRepository(db)
	mentorRepo = dummydb.NewMentorRepository(db)

	// set up services
	logger := nopLogger{}
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	requester := recommend.NewRequester(aiCompleter, conf, logger)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// set up server
	app = echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:           conf,
			Logger:         logger,
			UserSvc:        user.NewService(usrRepo, mailSvc, conf),
			QuizSvc:        quiz.NewService(quizRepo, requester, logger),
			CareerSvc:      career.NewService(careerRepo),
			CollegeSvc:     college.NewService(collegeRepo),
			ScholarshipSvc: scholarship.NewService(schRepo),
			ResourceSvc:    resource.NewService(resRepo),
			MentorSvc:      mentor.NewService(mentorRepo, mailSvc, validate),
			Validate:       validate,
			Translator:     translator,
		},
	)

	os.Exit(m.Run())
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := echoapi.GetUserClaims(usr)
	token, err := echoapi.GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
