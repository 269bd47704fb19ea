package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

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
	aisvc "github.com/njia-app/njia/services/ai"
	emailsvc "github.com/njia-app/njia/services/email"
	logsvc "github.com/njia-app/njia/services/logger"
	"github.com/njia-app/njia/storage/database"
	sqlxrepos "github.com/njia-app/njia/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Fatal("Failed to close DB", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	completer, err := aisvc.NewOpenAICompleter(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up AI completer: %v", err), err)
	}
	requester := recommend.NewRequester(completer, conf, logger)

	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db), mailSvc, conf)
	quizSvc := quiz.NewService(sqlxrepos.NewQuizRepository(db), requester, logger)
	careerSvc := career.NewService(sqlxrepos.NewCareerRepository(db))
	collegeSvc := college.NewService(sqlxrepos.NewCollegeRepository(db))
	scholarshipSvc := scholarship.NewService(sqlxrepos.NewScholarshipRepository(db))
	resourceSvc := resource.NewService(sqlxrepos.NewResourceRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	mentorSvc := mentor.NewService(sqlxrepos.NewMentorRepository(db), mailSvc, validate)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:           conf,
			Logger:         logger,
			UserSvc:        usrSvc,
			QuizSvc:        quizSvc,
			CareerSvc:      careerSvc,
			CollegeSvc:     collegeSvc,
			ScholarshipSvc: scholarshipSvc,
			ResourceSvc:    resourceSvc,
			MentorSvc:      mentorSvc,
			Validate:       validate,
			Translator:     translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
