package career

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("career not found")

type (
	// Career is one catalog entry. SkillsRequired and RelatedFields are
	// stored as text[] columns.
	Career struct {
		ID                string    `json:"id"`
		Title             string    `json:"title"`
		Description       string    `json:"description"`
		RequiredEducation string    `json:"required_education"`
		AverageSalary     string    `json:"average_salary"`
		GrowthOutlook     string    `json:"growth_outlook"`
		SkillsRequired    []string  `json:"skills_required"`
		RelatedFields     []string  `json:"related_fields"`
		CreatedAt         time.Time `json:"created_at"`
		UpdatedAt         time.Time `json:"updated_at"`
	}

	NewCareer struct {
		Title             string   `json:"title" validate:"required"`
		Description       string   `json:"description" validate:"required"`
		RequiredEducation string   `json:"required_education"`
		AverageSalary     string   `json:"average_salary"`
		GrowthOutlook     string   `json:"growth_outlook"`
		SkillsRequired    []string `json:"skills_required"`
		RelatedFields     []string `json:"related_fields"`
	}

	UpdateCareer struct {
		Title             string   `json:"title" validate:"omitempty"`
		Description       string   `json:"description" validate:"omitempty"`
		RequiredEducation string   `json:"required_education"`
		AverageSalary     string   `json:"average_salary"`
		GrowthOutlook     string   `json:"growth_outlook"`
		SkillsRequired    []string `json:"skills_required"`
		RelatedFields     []string `json:"related_fields"`
	}

	Repository interface {
		CreateCareer(ctx context.Context, c Career) (Career, error)
		QueryCareers(ctx context.Context, search string) ([]Career, error)
		GetCareerByID(ctx context.Context, id string) (Career, error)
		GetCareersByTitles(ctx context.Context, titles []string) ([]Career, error)
		UpdateCareer(ctx context.Context, c Career) (Career, error)
		DeleteCareer(ctx context.Context, id string) error
	}

	Service interface {
		Query(ctx context.Context, search string) ([]Career, error)
		GetByID(ctx context.Context, id string) (Career, error)
		// FindByNames hydrates the career names stored on a quiz result into
		// full catalog rows; unknown names are silently skipped.
		FindByNames(ctx context.Context, names []string) ([]Career, error)
		Create(ctx context.Context, nc NewCareer) (Career, error)
		Update(ctx context.Context, id string, uc UpdateCareer) (Career, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Query(ctx context.Context, search string) ([]Career, error) {
	return svc.repo.QueryCareers(ctx, search)
}

func (svc *service) GetByID(ctx context.Context, id string) (Career, error) {
	return svc.repo.GetCareerByID(ctx, id)
}

func (svc *service) FindByNames(ctx context.Context, names []string) ([]Career, error) {
	if len(names) == 0 {
		return []Career{}, nil
	}
	return svc.repo.GetCareersByTitles(ctx, names)
}

func (svc *service) Create(ctx context.Context, nc NewCareer) (Career, error) {
	now := time.Now().UTC()
	c := Career{
		Title:             nc.Title,
		Description:       nc.Description,
		RequiredEducation: nc.RequiredEducation,
		AverageSalary:     nc.AverageSalary,
		GrowthOutlook:     nc.GrowthOutlook,
		SkillsRequired:    nc.SkillsRequired,
		RelatedFields:     nc.RelatedFields,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	return svc.repo.CreateCareer(ctx, c)
}

func (svc *service) Update(ctx context.Context, id string, uc UpdateCareer) (Career, error) {
	c, err := svc.repo.GetCareerByID(ctx, id)
	if err != nil {
		return Career{}, err
	}

	// only overwrite set fields
	if uc.Title != "" {
		c.Title = uc.Title
	}
	if uc.Description != "" {
		c.Description = uc.Description
	}
	if uc.RequiredEducation != "" {
		c.RequiredEducation = uc.RequiredEducation
	}
	if uc.AverageSalary != "" {
		c.AverageSalary = uc.AverageSalary
	}
	if uc.GrowthOutlook != "" {
		c.GrowthOutlook = uc.GrowthOutlook
	}
	if uc.SkillsRequired != nil {
		c.SkillsRequired = uc.SkillsRequired
	}
	if uc.RelatedFields != nil {
		c.RelatedFields = uc.RelatedFields
	}
	c.UpdatedAt = time.Now().UTC()

	return svc.repo.UpdateCareer(ctx, c)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteCareer(ctx, id)
}
