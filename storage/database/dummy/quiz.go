package dummydb

import (
	"context"

	"github.com/google/uuid"

	"github.com/njia-app/njia/core/quiz"
)

type quizRepository struct {
	db *quizTable
}

var _ quiz.Repository = (*quizRepository)(nil) // interface compliance check

func NewQuizRepository(db *DB) quiz.Repository {
	return &quizRepository{db: db.quiz}
}

func (repo *quizRepository) CreateResult(ctx context.Context, res quiz.Result) (quiz.Result, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	repo.db.table[res.ID] = &res
	return res, nil
}

func (repo *quizRepository) GetLatestResultByStudent(ctx context.Context, studentID string) (quiz.Result, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var latest *quiz.Result
	for _, res := range repo.db.table {
		if res.StudentID != studentID {
			continue
		}
		if latest == nil || res.CreatedAt.After(latest.CreatedAt) {
			latest = res
		}
	}
	if latest == nil {
		return quiz.Result{}, quiz.ErrNoResult
	}
	return *latest, nil
}
