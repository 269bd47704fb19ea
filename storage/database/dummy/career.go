package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/njia-app/njia/core/career"
)

type careerRepository struct {
	db *careerTable
}

var _ career.Repository = (*careerRepository)(nil) // interface compliance check

func NewCareerRepository(db *DB) career.Repository {
	return &careerRepository{db: db.career}
}

func (repo *careerRepository) query() []career.Career {
	careers := make([]career.Career, 0, len(repo.db.table))
	for _, c := range repo.db.table {
		careers = append(careers, *c)
	}
	sort.Slice(careers, func(i, j int) bool { return careers[i].Title < careers[j].Title })
	return careers
}

func (repo *careerRepository) CreateCareer(ctx context.Context, c career.Career) (career.Career, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	repo.db.table[c.ID] = &c
	return c, nil
}

func (repo *careerRepository) QueryCareers(ctx context.Context, search string) ([]career.Career, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	careers := repo.query()
	if search == "" {
		return careers, nil
	}

	search = strings.ToLower(search)
	filtered := make([]career.Career, 0, len(careers))
	for _, c := range careers {
		if strings.Contains(strings.ToLower(c.Title), search) ||
			strings.Contains(strings.ToLower(c.Description), search) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (repo *careerRepository) GetCareerByID(ctx context.Context, id string) (career.Career, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if c, ok := repo.db.table[id]; ok {
		return *c, nil
	}
	return career.Career{}, career.ErrNotFound
}

func (repo *careerRepository) GetCareersByTitles(ctx context.Context, titles []string) ([]career.Career, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	wanted := make(map[string]bool, len(titles))
	for _, t := range titles {
		wanted[t] = true
	}

	matched := make([]career.Career, 0, len(titles))
	for _, c := range repo.query() {
		if wanted[c.Title] {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (repo *careerRepository) UpdateCareer(ctx context.Context, c career.Career) (career.Career, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[c.ID]; !ok {
		return career.Career{}, career.ErrNotFound
	}
	repo.db.table[c.ID] = &c
	return c, nil
}

func (repo *careerRepository) DeleteCareer(ctx context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	delete(repo.db.table, id)
	return nil
}
