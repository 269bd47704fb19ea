package college

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var ErrNotFound = errors.New("college not found")

type (
	College struct {
		ID                    string    `json:"id"`
		Name                  string    `json:"name"`
		Location              string    `json:"location"`
		Ranking               null.Int  `json:"ranking"`
		AdmissionRequirements string    `json:"admission_requirements"`
		CoursesOffered        []string  `json:"courses_offered"`
		Website               string    `json:"website"`
		CreatedAt             time.Time `json:"created_at"`
	}

	Repository interface {
		// QueryColleges returns rows ordered by ranking (unranked last),
		// optionally filtered by a name/location search keyword.
		QueryColleges(ctx context.Context, search string) ([]College, error)
		GetCollegeByID(ctx context.Context, id string) (College, error)
	}

	Service interface {
		Query(ctx context.Context, search string) ([]College, error)
		GetByID(ctx context.Context, id string) (College, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Query(ctx context.Context, search string) ([]College, error) {
	return svc.repo.QueryColleges(ctx, search)
}

func (svc *service) GetByID(ctx context.Context, id string) (College, error) {
	return svc.repo.GetCollegeByID(ctx, id)
}
