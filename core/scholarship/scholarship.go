package scholarship

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var ErrNotFound = errors.New("scholarship not found")

// closingSoonWindow bounds the ClosingSoon listing.
const closingSoonWindow = 30 * 24 * time.Hour

type (
	Scholarship struct {
		ID             string    `json:"id"`
		Title          string    `json:"title"`
		Description    string    `json:"description"`
		Amount         string    `json:"amount"`
		Eligibility    string    `json:"eligibility"`
		Deadline       null.Time `json:"deadline"`
		ApplicationURL string    `json:"application_url"`
		CreatedAt      time.Time `json:"created_at"`
	}

	Repository interface {
		// QueryScholarships returns rows ordered by deadline ascending,
		// undated entries last.
		QueryScholarships(ctx context.Context, search string) ([]Scholarship, error)
		GetScholarshipByID(ctx context.Context, id string) (Scholarship, error)
	}

	Service interface {
		Query(ctx context.Context, search string) ([]Scholarship, error)
		GetByID(ctx context.Context, id string) (Scholarship, error)
		// ClosingSoon returns scholarships whose deadline falls within the
		// next 30 days.
		ClosingSoon(ctx context.Context) ([]Scholarship, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Query(ctx context.Context, search string) ([]Scholarship, error) {
	return svc.repo.QueryScholarships(ctx, search)
}

func (svc *service) GetByID(ctx context.Context, id string) (Scholarship, error) {
	return svc.repo.GetScholarshipByID(ctx, id)
}

func (svc *service) ClosingSoon(ctx context.Context) ([]Scholarship, error) {
	all, err := svc.repo.QueryScholarships(ctx, "")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cutoff := now.Add(closingSoonWindow)
	soon := make([]Scholarship, 0, len(all))
	for _, sch := range all {
		if !sch.Deadline.Valid {
			continue
		}
		deadline := sch.Deadline.Time
		if deadline.Before(now) || deadline.After(cutoff) {
			continue
		}
		soon = append(soon, sch)
	}
	return soon, nil
}
