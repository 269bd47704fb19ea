package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/njia-app/njia/core/college"
	"github.com/njia-app/njia/core/resource"
	"github.com/njia-app/njia/core/scholarship"
)

type catalogApi struct {
	collegeSvc     college.Service
	scholarshipSvc scholarship.Service
	resourceSvc    resource.Service
}

func registerCatalogAPI(g *echo.Group, deps ServerDeps) {
	api := catalogApi{
		collegeSvc:     deps.CollegeSvc,
		scholarshipSvc: deps.ScholarshipSvc,
		resourceSvc:    deps.ResourceSvc,
	}

	g.GET("/colleges", api.queryColleges)
	g.GET("/colleges/:id", api.retrieveCollege)

	g.GET("/scholarships", api.queryScholarships)
	g.GET("/scholarships/closing-soon", api.closingSoonScholarships)
	g.GET("/scholarships/:id", api.retrieveScholarship)

	g.GET("/resources", api.queryResources)
	g.GET("/resources/types", api.resourceTypes)
	g.GET("/resources/:id", api.retrieveResource)
}

// Handlers

func (api *catalogApi) queryColleges(ctx echo.Context) error {
	colleges, err := api.collegeSvc.Query(ctx.Request().Context(), ctx.QueryParam("search"))
	if err != nil {
		return errors.Wrap(err, "querying colleges")
	}
	if colleges == nil {
		colleges = []college.College{}
	}
	return ctx.JSON(http.StatusOK, colleges)
}

func (api *catalogApi) retrieveCollege(ctx echo.Context) error {
	c, err := api.collegeSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == college.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting college")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *catalogApi) queryScholarships(ctx echo.Context) error {
	scholarships, err := api.scholarshipSvc.Query(ctx.Request().Context(), ctx.QueryParam("search"))
	if err != nil {
		return errors.Wrap(err, "querying scholarships")
	}
	if scholarships == nil {
		scholarships = []scholarship.Scholarship{}
	}
	return ctx.JSON(http.StatusOK, scholarships)
}

func (api *catalogApi) closingSoonScholarships(ctx echo.Context) error {
	scholarships, err := api.scholarshipSvc.ClosingSoon(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying closing scholarships")
	}
	return ctx.JSON(http.StatusOK, scholarships)
}

func (api *catalogApi) retrieveScholarship(ctx echo.Context) error {
	sch, err := api.scholarshipSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == scholarship.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting scholarship")
	}
	return ctx.JSON(http.StatusOK, sch)
}

func (api *catalogApi) queryResources(ctx echo.Context) error {
	filter := new(resource.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []resource.Resource{})
	}

	resources, err := api.resourceSvc.Query(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying resources")
	}
	if resources == nil {
		resources = []resource.Resource{}
	}
	return ctx.JSON(http.StatusOK, resources)
}

func (api *catalogApi) resourceTypes(ctx echo.Context) error {
	types, err := api.resourceSvc.Types(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing resource types")
	}
	if types == nil {
		types = []string{}
	}
	return ctx.JSON(http.StatusOK, types)
}

func (api *catalogApi) retrieveResource(ctx echo.Context) error {
	res, err := api.resourceSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == resource.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting resource")
	}
	return ctx.JSON(http.StatusOK, res)
}
