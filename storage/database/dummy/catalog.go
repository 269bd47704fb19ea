package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/njia-app/njia/core/college"
	"github.com/njia-app/njia/core/resource"
	"github.com/njia-app/njia/core/scholarship"
)

// college

type collegeRepository struct {
	db *collegeTable
}

var _ college.Repository = (*collegeRepository)(nil) // interface compliance check

func NewCollegeRepository(db *DB) *collegeRepository {
	return &collegeRepository{db: db.college}
}

// AddCollege seeds a row; for tests.
func (repo *collegeRepository) AddCollege(c college.College) college.College {
	repo.db.Lock()
	defer repo.db.Unlock()

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	repo.db.table[c.ID] = &c
	return c
}

func (repo *collegeRepository) QueryColleges(ctx context.Context, search string) ([]college.College, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	colleges := make([]college.College, 0, len(repo.db.table))
	for _, c := range repo.db.table {
		if search != "" {
			s := strings.ToLower(search)
			if !strings.Contains(strings.ToLower(c.Name), s) &&
				!strings.Contains(strings.ToLower(c.Location), s) {
				continue
			}
		}
		colleges = append(colleges, *c)
	}

	// by ranking, unranked last
	sort.Slice(colleges, func(i, j int) bool {
		ri, rj := colleges[i].Ranking, colleges[j].Ranking
		switch {
		case ri.Valid && rj.Valid:
			return ri.Int < rj.Int
		case ri.Valid:
			return true
		case rj.Valid:
			return false
		default:
			return colleges[i].Name < colleges[j].Name
		}
	})
	return colleges, nil
}

func (repo *collegeRepository) GetCollegeByID(ctx context.Context, id string) (college.College, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if c, ok := repo.db.table[id]; ok {
		return *c, nil
	}
	return college.College{}, college.ErrNotFound
}

// scholarship

type scholarshipRepository struct {
	db *scholarshipTable
}

var _ scholarship.Repository = (*scholarshipRepository)(nil) // interface compliance check

func NewScholarshipRepository(db *DB) *scholarshipRepository {
	return &scholarshipRepository{db: db.scholarship}
}

// AddScholarship seeds a row; for tests.
func (repo *scholarshipRepository) AddScholarship(sch scholarship.Scholarship) scholarship.Scholarship {
	repo.db.Lock()
	defer repo.db.Unlock()

	if sch.ID == "" {
		sch.ID = uuid.New().String()
	}
	repo.db.table[sch.ID] = &sch
	return sch
}

func (repo *scholarshipRepository) QueryScholarships(ctx context.Context, search string) ([]scholarship.Scholarship, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	scholarships := make([]scholarship.Scholarship, 0, len(repo.db.table))
	for _, sch := range repo.db.table {
		if search != "" {
			s := strings.ToLower(search)
			if !strings.Contains(strings.ToLower(sch.Title), s) &&
				!strings.Contains(strings.ToLower(sch.Description), s) &&
				!strings.Contains(strings.ToLower(sch.Eligibility), s) {
				continue
			}
		}
		scholarships = append(scholarships, *sch)
	}

	// by deadline, undated last
	sort.Slice(scholarships, func(i, j int) bool {
		di, dj := scholarships[i].Deadline, scholarships[j].Deadline
		switch {
		case di.Valid && dj.Valid:
			return di.Time.Before(dj.Time)
		case di.Valid:
			return true
		case dj.Valid:
			return false
		default:
			return scholarships[i].Title < scholarships[j].Title
		}
	})
	return scholarships, nil
}

func (repo *scholarshipRepository) GetScholarshipByID(ctx context.Context, id string) (scholarship.Scholarship, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sch, ok := repo.db.table[id]; ok {
		return *sch, nil
	}
	return scholarship.Scholarship{}, scholarship.ErrNotFound
}

// resource

type resourceRepository struct {
	db *resourceTable
}

var _ resource.Repository = (*resourceRepository)(nil) // interface compliance check

func NewResourceRepository(db *DB) *resourceRepository {
	return &resourceRepository{db: db.resource}
}

// AddResource seeds a row; for tests.
func (repo *resourceRepository) AddResource(res resource.Resource) resource.Resource {
	repo.db.Lock()
	defer repo.db.Unlock()

	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	repo.db.table[res.ID] = &res
	return res
}

func (repo *resourceRepository) QueryResources(ctx context.Context, filter resource.QueryFilter) ([]resource.Resource, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	resources := make([]resource.Resource, 0, len(repo.db.table))
	for _, res := range repo.db.table {
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(res.Title), s) &&
				!strings.Contains(strings.ToLower(res.Description), s) &&
				!strings.Contains(strings.ToLower(res.Type), s) {
				continue
			}
		}
		if filter.Type != "" && res.Type != filter.Type {
			continue
		}
		resources = append(resources, *res)
	}

	sort.Slice(resources, func(i, j int) bool { return resources[i].CreatedAt.After(resources[j].CreatedAt) })
	return resources, nil
}

func (repo *resourceRepository) GetResourceByID(ctx context.Context, id string) (resource.Resource, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if res, ok := repo.db.table[id]; ok {
		return *res, nil
	}
	return resource.Resource{}, resource.ErrNotFound
}

func (repo *resourceRepository) ListResourceTypes(ctx context.Context) ([]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	seen := make(map[string]bool)
	types := make([]string, 0)
	for _, res := range repo.db.table {
		if res.Type != "" && !seen[res.Type] {
			seen[res.Type] = true
			types = append(types, res.Type)
		}
	}
	sort.Strings(types)
	return types, nil
}
