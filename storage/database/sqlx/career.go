package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/njia-app/njia/core/career"
)

type careerRow struct {
	ID                string         `db:"id"`
	Title             string         `db:"title"`
	Description       string         `db:"description"`
	RequiredEducation string         `db:"required_education"`
	AverageSalary     string         `db:"average_salary"`
	GrowthOutlook     string         `db:"growth_outlook"`
	SkillsRequired    pq.StringArray `db:"skills_required"`
	RelatedFields     pq.StringArray `db:"related_fields"`
	CreatedAt         sql.NullTime   `db:"created_at"`
	UpdatedAt         sql.NullTime   `db:"updated_at"`
}

func (r careerRow) toCareer() career.Career {
	return career.Career{
		ID:                r.ID,
		Title:             r.Title,
		Description:       r.Description,
		RequiredEducation: r.RequiredEducation,
		AverageSalary:     r.AverageSalary,
		GrowthOutlook:     r.GrowthOutlook,
		SkillsRequired:    r.SkillsRequired,
		RelatedFields:     r.RelatedFields,
		CreatedAt:         r.CreatedAt.Time,
		UpdatedAt:         r.UpdatedAt.Time,
	}
}

type careerRepository struct {
	db *sqlx.DB
}

var _ career.Repository = (*careerRepository)(nil) // interface compliance check

func NewCareerRepository(db *sqlx.DB) career.Repository {
	return &careerRepository{db: db}
}

func (repo *careerRepository) CreateCareer(ctx context.Context, c career.Career) (career.Career, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO career (id, title, description, required_education, average_salary, growth_outlook, skills_required, related_fields, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Title, c.Description, c.RequiredEducation, c.AverageSalary, c.GrowthOutlook,
		pq.Array(c.SkillsRequired), pq.Array(c.RelatedFields), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return career.Career{}, errors.Wrap(err, "creating career")
	}
	return c, nil
}

func (repo *careerRepository) QueryCareers(ctx context.Context, search string) ([]career.Career, error) {
	query := `SELECT * FROM career`
	var args []interface{}
	if search != "" {
		query += ` WHERE title ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY title ASC`

	var rows []careerRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying careers")
	}

	careers := make([]career.Career, 0, len(rows))
	for _, row := range rows {
		careers = append(careers, row.toCareer())
	}
	return careers, nil
}

func (repo *careerRepository) GetCareerByID(ctx context.Context, id string) (career.Career, error) {
	var row careerRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM career WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return career.Career{}, career.ErrNotFound
		}
		return career.Career{}, errors.Wrap(err, "getting career")
	}
	return row.toCareer(), nil
}

func (repo *careerRepository) GetCareersByTitles(ctx context.Context, titles []string) ([]career.Career, error) {
	var rows []careerRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM career WHERE title = ANY($1) ORDER BY title ASC`, pq.Array(titles))
	if err != nil {
		return nil, errors.Wrap(err, "querying careers by title")
	}

	careers := make([]career.Career, 0, len(rows))
	for _, row := range rows {
		careers = append(careers, row.toCareer())
	}
	return careers, nil
}

func (repo *careerRepository) UpdateCareer(ctx context.Context, c career.Career) (career.Career, error) {
	_, err := repo.db.ExecContext(ctx,
		`UPDATE career
		 SET title = $2, description = $3, required_education = $4, average_salary = $5,
		     growth_outlook = $6, skills_required = $7, related_fields = $8, updated_at = $9
		 WHERE id = $1`,
		c.ID, c.Title, c.Description, c.RequiredEducation, c.AverageSalary, c.GrowthOutlook,
		pq.Array(c.SkillsRequired), pq.Array(c.RelatedFields), c.UpdatedAt,
	)
	if err != nil {
		return career.Career{}, errors.Wrap(err, "updating career")
	}
	return c, nil
}

func (repo *careerRepository) DeleteCareer(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM career WHERE id = $1`, id)
	return errors.Wrap(err, "deleting career")
}
