package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/njia-app/njia/core/quiz"
)

type quizResultRow struct {
	ID                 string         `db:"id"`
	StudentID          string         `db:"student_id"`
	QuizData           []byte         `db:"quiz_data"`
	Scores             []byte         `db:"scores"`
	RecommendedCareers pq.StringArray `db:"recommended_careers"`
	CreatedAt          sql.NullTime   `db:"created_at"`
}

func (r quizResultRow) toResult() (quiz.Result, error) {
	res := quiz.Result{
		ID:                 r.ID,
		StudentID:          r.StudentID,
		RecommendedCareers: r.RecommendedCareers,
		CreatedAt:          r.CreatedAt.Time,
	}
	if err := json.Unmarshal(r.QuizData, &res.Answers); err != nil {
		return quiz.Result{}, errors.Wrap(err, "decoding quiz answers")
	}
	if err := json.Unmarshal(r.Scores, &res.Scores); err != nil {
		return quiz.Result{}, errors.Wrap(err, "decoding quiz scores")
	}
	return res, nil
}

type quizRepository struct {
	db *sqlx.DB
}

var _ quiz.Repository = (*quizRepository)(nil) // interface compliance check

func NewQuizRepository(db *sqlx.DB) quiz.Repository {
	return &quizRepository{db: db}
}

func (repo *quizRepository) CreateResult(ctx context.Context, res quiz.Result) (quiz.Result, error) {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}

	quizData, err := json.Marshal(res.Answers)
	if err != nil {
		return quiz.Result{}, errors.Wrap(err, "encoding quiz answers")
	}
	scores, err := json.Marshal(res.Scores)
	if err != nil {
		return quiz.Result{}, errors.Wrap(err, "encoding quiz scores")
	}

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO quiz_result (id, student_id, quiz_data, scores, recommended_careers, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		res.ID, res.StudentID, quizData, scores, pq.Array(res.RecommendedCareers), res.CreatedAt,
	)
	if err != nil {
		return quiz.Result{}, errors.Wrap(err, "creating quiz result")
	}
	return res, nil
}

func (repo *quizRepository) GetLatestResultByStudent(ctx context.Context, studentID string) (quiz.Result, error) {
	var row quizResultRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT * FROM quiz_result WHERE student_id = $1 ORDER BY created_at DESC LIMIT 1`, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return quiz.Result{}, quiz.ErrNoResult
		}
		return quiz.Result{}, errors.Wrap(err, "getting latest quiz result")
	}
	return row.toResult()
}
