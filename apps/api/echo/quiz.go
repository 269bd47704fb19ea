package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/njia-app/njia/core/quiz"
	"github.com/njia-app/njia/core/user"
)

type quizApi struct {
	svc    quiz.Service
	usrSvc user.Service
}

func registerQuizAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := quizApi{
		svc:    deps.QuizSvc,
		usrSvc: deps.UserSvc,
	}

	qg := g.Group("/quiz")
	qg.GET("/questions", api.questions)

	ag := qg.Group("", jwt)
	ag.POST("/submissions", api.submit)
	ag.GET("/results/latest", api.latestResult)
}

// Handlers

func (api *quizApi) questions(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Questions())
}

// submit runs the full pipeline for the authenticated student. Upstream
// failures map to 429/402/502 in the error handler, with nothing recorded.
func (api *quizApi) submit(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data SubmissionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubmissionRequest")
	}

	sub, err := api.svc.Submit(ctx.Request().Context(), ctxUsr.ID, data.Answers)
	if err != nil {
		return errors.Wrap(err, "submitting quiz")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *quizApi) latestResult(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	res, err := api.svc.LatestResult(ctx.Request().Context(), ctxUsr.ID)
	if err != nil {
		if errors.Cause(err) == quiz.ErrNoResult {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting latest quiz result")
	}
	return ctx.JSON(http.StatusOK, res)
}

type SubmissionRequest struct {
	Answers quiz.AnswerSet `json:"answers"`
}
