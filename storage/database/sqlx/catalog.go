package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/njia-app/njia/core/college"
	"github.com/njia-app/njia/core/resource"
	"github.com/njia-app/njia/core/scholarship"
)

// college

type collegeRow struct {
	ID                    string         `db:"id"`
	Name                  string         `db:"name"`
	Location              string         `db:"location"`
	Ranking               null.Int       `db:"ranking"`
	AdmissionRequirements string         `db:"admission_requirements"`
	CoursesOffered        pq.StringArray `db:"courses_offered"`
	Website               string         `db:"website"`
	CreatedAt             sql.NullTime   `db:"created_at"`
}

func (r collegeRow) toCollege() college.College {
	return college.College{
		ID:                    r.ID,
		Name:                  r.Name,
		Location:              r.Location,
		Ranking:               r.Ranking,
		AdmissionRequirements: r.AdmissionRequirements,
		CoursesOffered:        r.CoursesOffered,
		Website:               r.Website,
		CreatedAt:             r.CreatedAt.Time,
	}
}

type collegeRepository struct {
	db *sqlx.DB
}

var _ college.Repository = (*collegeRepository)(nil) // interface compliance check

func NewCollegeRepository(db *sqlx.DB) college.Repository {
	return &collegeRepository{db: db}
}

func (repo *collegeRepository) QueryColleges(ctx context.Context, search string) ([]college.College, error) {
	query := `SELECT * FROM college`
	var args []interface{}
	if search != "" {
		query += ` WHERE name ILIKE $1 OR location ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY ranking ASC NULLS LAST, name ASC`

	var rows []collegeRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying colleges")
	}

	colleges := make([]college.College, 0, len(rows))
	for _, row := range rows {
		colleges = append(colleges, row.toCollege())
	}
	return colleges, nil
}

func (repo *collegeRepository) GetCollegeByID(ctx context.Context, id string) (college.College, error) {
	var row collegeRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM college WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return college.College{}, college.ErrNotFound
		}
		return college.College{}, errors.Wrap(err, "getting college")
	}
	return row.toCollege(), nil
}

// scholarship

type scholarshipRow struct {
	ID             string       `db:"id"`
	Title          string       `db:"title"`
	Description    string       `db:"description"`
	Amount         string       `db:"amount"`
	Eligibility    string       `db:"eligibility"`
	Deadline       null.Time    `db:"deadline"`
	ApplicationURL string       `db:"application_url"`
	CreatedAt      sql.NullTime `db:"created_at"`
}

func (r scholarshipRow) toScholarship() scholarship.Scholarship {
	return scholarship.Scholarship{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		Amount:         r.Amount,
		Eligibility:    r.Eligibility,
		Deadline:       r.Deadline,
		ApplicationURL: r.ApplicationURL,
		CreatedAt:      r.CreatedAt.Time,
	}
}

type scholarshipRepository struct {
	db *sqlx.DB
}

var _ scholarship.Repository = (*scholarshipRepository)(nil) // interface compliance check

func NewScholarshipRepository(db *sqlx.DB) scholarship.Repository {
	return &scholarshipRepository{db: db}
}

func (repo *scholarshipRepository) QueryScholarships(ctx context.Context, search string) ([]scholarship.Scholarship, error) {
	query := `SELECT * FROM scholarship`
	var args []interface{}
	if search != "" {
		query += ` WHERE title ILIKE $1 OR description ILIKE $1 OR eligibility ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY deadline ASC NULLS LAST, title ASC`

	var rows []scholarshipRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying scholarships")
	}

	scholarships := make([]scholarship.Scholarship, 0, len(rows))
	for _, row := range rows {
		scholarships = append(scholarships, row.toScholarship())
	}
	return scholarships, nil
}

func (repo *scholarshipRepository) GetScholarshipByID(ctx context.Context, id string) (scholarship.Scholarship, error) {
	var row scholarshipRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM scholarship WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return scholarship.Scholarship{}, scholarship.ErrNotFound
		}
		return scholarship.Scholarship{}, errors.Wrap(err, "getting scholarship")
	}
	return row.toScholarship(), nil
}

// resource

type resourceRow struct {
	ID           string       `db:"id"`
	Title        string       `db:"title"`
	Description  string       `db:"description"`
	URL          string       `db:"url"`
	Type         string       `db:"type"`
	Language     string       `db:"language"`
	CareerID     null.String  `db:"career_id"`
	ThumbnailURL string       `db:"thumbnail_url"`
	CreatedAt    sql.NullTime `db:"created_at"`
}

func (r resourceRow) toResource() resource.Resource {
	return resource.Resource{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		URL:          r.URL,
		Type:         r.Type,
		Language:     r.Language,
		CareerID:     r.CareerID,
		ThumbnailURL: r.ThumbnailURL,
		CreatedAt:    r.CreatedAt.Time,
	}
}

type resourceRepository struct {
	db *sqlx.DB
}

var _ resource.Repository = (*resourceRepository)(nil) // interface compliance check

func NewResourceRepository(db *sqlx.DB) resource.Repository {
	return &resourceRepository{db: db}
}

func (repo *resourceRepository) QueryResources(ctx context.Context, filter resource.QueryFilter) ([]resource.Resource, error) {
	query := `SELECT * FROM resource`
	var (
		clauses []string
		args    []interface{}
	)
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, "(title ILIKE $1 OR description ILIKE $1 OR type ILIKE $1)")
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		clauses = append(clauses, sqlxIndexed("type = ?", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + clauses[0]
		for _, clause := range clauses[1:] {
			query += " AND " + clause
		}
	}
	query += ` ORDER BY created_at DESC`

	var rows []resourceRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying resources")
	}

	resources := make([]resource.Resource, 0, len(rows))
	for _, row := range rows {
		resources = append(resources, row.toResource())
	}
	return resources, nil
}

func (repo *resourceRepository) GetResourceByID(ctx context.Context, id string) (resource.Resource, error) {
	var row resourceRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM resource WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return resource.Resource{}, resource.ErrNotFound
		}
		return resource.Resource{}, errors.Wrap(err, "getting resource")
	}
	return row.toResource(), nil
}

func (repo *resourceRepository) ListResourceTypes(ctx context.Context) ([]string, error) {
	var types []string
	err := repo.db.SelectContext(ctx, &types,
		`SELECT DISTINCT type FROM resource WHERE type <> '' ORDER BY type ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "listing resource types")
	}
	return types, nil
}
