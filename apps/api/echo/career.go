package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/njia-app/njia/core/career"
	"github.com/njia-app/njia/core/quiz"
	"github.com/njia-app/njia/core/user"
)

type careerApi struct {
	svc      career.Service
	quizSvc  quiz.Service
	usrSvc   user.Service
	validate *validator.Validate
}

func registerCareerAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := careerApi{
		svc:      deps.CareerSvc,
		quizSvc:  deps.QuizSvc,
		usrSvc:   deps.UserSvc,
		validate: deps.Validate,
	}

	cg := g.Group("/careers")
	cg.GET("", api.query)

	ag := cg.Group("", jwt)
	ag.GET("/recommended", api.recommended)
	ag.POST("", api.create, adminMiddleware())

	cg.GET("/:id", api.retrieve)
	ag.PUT("/:id", api.update, adminMiddleware())
	ag.DELETE("/:id", api.destroy, adminMiddleware())
}

// Handlers

func (api *careerApi) query(ctx echo.Context) error {
	careers, err := api.svc.Query(ctx.Request().Context(), ctx.QueryParam("search"))
	if err != nil {
		return errors.Wrap(err, "querying careers")
	}
	if careers == nil {
		careers = []career.Career{}
	}
	return ctx.JSON(http.StatusOK, careers)
}

// recommended hydrates the career names on the caller's latest quiz result
// into full catalog rows.
func (api *careerApi) recommended(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	res, err := api.quizSvc.LatestResult(ctx.Request().Context(), ctxUsr.ID)
	if err != nil {
		if errors.Cause(err) == quiz.ErrNoResult {
			return ctx.JSON(http.StatusOK, []career.Career{})
		}
		return errors.Wrap(err, "getting latest quiz result")
	}

	careers, err := api.svc.FindByNames(ctx.Request().Context(), res.RecommendedCareers)
	if err != nil {
		return errors.Wrap(err, "finding careers by name")
	}
	return ctx.JSON(http.StatusOK, careers)
}

func (api *careerApi) retrieve(ctx echo.Context) error {
	c, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == career.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting career")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *careerApi) create(ctx echo.Context) error {
	var data career.NewCareer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCareer")
	}
	if err := api.validate.StructCtx(ctx.Request().Context(), data); err != nil {
		return err
	}

	c, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating career")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *careerApi) update(ctx echo.Context) error {
	var data career.UpdateCareer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCareer")
	}

	c, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == career.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating career")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *careerApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting career")
	}
	return ctx.NoContent(http.StatusNoContent)
}
