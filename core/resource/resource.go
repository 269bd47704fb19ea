package resource

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var ErrNotFound = errors.New("resource not found")

type (
	// Resource is one learning material: a video, article or course linked
	// to an external URL, optionally tied to a career.
	Resource struct {
		ID           string      `json:"id"`
		Title        string      `json:"title"`
		Description  string      `json:"description"`
		URL          string      `json:"url"`
		Type         string      `json:"type"`
		Language     string      `json:"language"`
		CareerID     null.String `json:"career_id"`
		ThumbnailURL string      `json:"thumbnail_url"`
		CreatedAt    time.Time   `json:"created_at"`
	}

	QueryFilter struct {
		Search string `json:"search" query:"search"`
		Type   string `json:"type" query:"type"`
	}

	Repository interface {
		// QueryResources returns rows newest-first, filtered by the search
		// keyword (title, description, type) and exact type when set.
		QueryResources(ctx context.Context, filter QueryFilter) ([]Resource, error)
		GetResourceByID(ctx context.Context, id string) (Resource, error)
		ListResourceTypes(ctx context.Context) ([]string, error)
	}

	Service interface {
		Query(ctx context.Context, filter QueryFilter) ([]Resource, error)
		GetByID(ctx context.Context, id string) (Resource, error)
		Types(ctx context.Context) ([]string, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Query(ctx context.Context, filter QueryFilter) ([]Resource, error) {
	return svc.repo.QueryResources(ctx, filter)
}

func (svc *service) GetByID(ctx context.Context, id string) (Resource, error) {
	return svc.repo.GetResourceByID(ctx, id)
}

func (svc *service) Types(ctx context.Context) ([]string, error) {
	return svc.repo.ListResourceTypes(ctx)
}
