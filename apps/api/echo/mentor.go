package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/njia-app/njia/core"
	"github.com/njia-app/njia/core/mentor"
	"github.com/njia-app/njia/core/user"
)

type mentorApi struct {
	svc    mentor.Service
	usrSvc user.Service
}

func registerMentorAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := mentorApi{
		svc:    deps.MentorSvc,
		usrSvc: deps.UserSvc,
	}

	mg := g.Group("/mentors")
	mg.GET("", api.query)
	mg.GET("/slots", api.slots)
	mg.PUT("/me", api.saveProfile, jwt)
	mg.GET("/:id", api.retrieve)

	ag := g.Group("/appointments", jwt)
	ag.POST("", api.book)
	ag.GET("", api.list)
	ag.DELETE("/:id", api.cancel)
}

// Handlers

func (api *mentorApi) query(ctx echo.Context) error {
	mentors, err := api.svc.Query(ctx.Request().Context(), ctx.QueryParam("search"))
	if err != nil {
		return errors.Wrap(err, "querying mentors")
	}
	if mentors == nil {
		mentors = []mentor.Profile{}
	}
	return ctx.JSON(http.StatusOK, mentors)
}

func (api *mentorApi) slots(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, mentor.Slots())
}

func (api *mentorApi) retrieve(ctx echo.Context) error {
	profile, err := api.svc.GetByUserID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == mentor.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting mentor")
	}
	return ctx.JSON(http.StatusOK, profile)
}

// saveProfile lets a mentor publish or revise their own listing.
func (api *mentorApi) saveProfile(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data mentor.NewProfile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProfile")
	}

	profile, err := api.svc.SaveProfile(ctx.Request().Context(), ctxUsr, data)
	if err != nil {
		if errors.Cause(err) == mentor.ErrNotMentor {
			return errHttpForbidden
		}
		return errors.Wrap(err, "saving mentor profile")
	}
	return ctx.JSON(http.StatusOK, profile)
}

func (api *mentorApi) book(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data mentor.NewAppointment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAppointment")
	}

	appt, err := api.svc.Book(ctx.Request().Context(), ctxUsr, data)
	if err != nil {
		switch errors.Cause(err) {
		case mentor.ErrInvalidSlot, mentor.ErrPastDate, mentor.ErrSlotTaken, mentor.ErrNotBookable:
			return core.NewValidationError(errors.Cause(err))
		}
		return errors.Wrap(err, "booking appointment")
	}
	return ctx.JSON(http.StatusCreated, appt)
}

func (api *mentorApi) list(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	appts, err := api.svc.Appointments(ctx.Request().Context(), ctxUsr)
	if err != nil {
		return errors.Wrap(err, "listing appointments")
	}
	if appts == nil {
		appts = []mentor.Appointment{}
	}
	return ctx.JSON(http.StatusOK, appts)
}

func (api *mentorApi) cancel(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	appt, err := api.svc.Cancel(ctx.Request().Context(), ctxUsr, ctx.Param("id"))
	if err != nil {
		switch errors.Cause(err) {
		case mentor.ErrAppointmentNotFound:
			return errHttpNotFound
		case mentor.ErrNotCancelable:
			return core.NewValidationError(errors.Cause(err))
		}
		return errors.Wrap(err, "cancelling appointment")
	}
	return ctx.JSON(http.StatusOK, appt)
}
