package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/njia-app/njia/core/career"
	appfs "github.com/njia-app/njia/fs"
)

type (
	collegeFixture struct {
		Name                  string   `json:"name"`
		Location              string   `json:"location"`
		Ranking               null.Int `json:"ranking"`
		AdmissionRequirements string   `json:"admission_requirements"`
		CoursesOffered        []string `json:"courses_offered"`
		Website               string   `json:"website"`
	}

	scholarshipFixture struct {
		Title          string    `json:"title"`
		Description    string    `json:"description"`
		Amount         string    `json:"amount"`
		Eligibility    string    `json:"eligibility"`
		Deadline       null.Time `json:"deadline"`
		ApplicationURL string    `json:"application_url"`
	}

	resourceFixture struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		URL          string `json:"url"`
		Type         string `json:"type"`
		Language     string `json:"language"`
		ThumbnailURL string `json:"thumbnail_url"`
	}
)

// seed loads the bundled fixtures into the DB. Rows already present
// (matched by title, name or url) are left untouched so it can be rerun.
func (cli *commandLine) seed() error {
	ctx := context.Background()

	if err := cli.seedCareers(ctx); err != nil {
		return err
	}
	if err := cli.seedColleges(ctx); err != nil {
		return err
	}
	if err := cli.seedScholarships(ctx); err != nil {
		return err
	}
	return cli.seedResources(ctx)
}

func loadFixture(name string, dest interface{}) error {
	data, err := appfs.FS.ReadFile("fixtures/" + name)
	if err != nil {
		return errors.Wrapf(err, "reading fixture %s", name)
	}
	if err = json.Unmarshal(data, dest); err != nil {
		return errors.Wrapf(err, "parsing fixture %s", name)
	}
	return nil
}

func (cli *commandLine) seedCareers(ctx context.Context) error {
	var fixtures []career.Career
	if err := loadFixture("careers.json", &fixtures); err != nil {
		return err
	}

	titles := make([]string, 0, len(fixtures))
	for _, c := range fixtures {
		titles = append(titles, c.Title)
	}
	existing, err := cli.careerRepo.GetCareersByTitles(ctx, titles)
	if err != nil {
		return err
	}
	existingTitles := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		existingTitles[c.Title] = struct{}{}
	}

	var count int
	now := time.Now().UTC()
	for _, c := range fixtures {
		if _, ok := existingTitles[c.Title]; ok {
			continue
		}
		c.CreatedAt = now
		c.UpdatedAt = now
		if _, err = cli.careerRepo.CreateCareer(ctx, c); err != nil {
			return err
		}
		count++
	}
	fmt.Printf("careers: %d created\n", count)
	return nil
}

func (cli *commandLine) seedColleges(ctx context.Context) error {
	var fixtures []collegeFixture
	if err := loadFixture("colleges.json", &fixtures); err != nil {
		return err
	}

	var count int
	now := time.Now().UTC()
	for _, c := range fixtures {
		var exists bool
		err := cli.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM college WHERE name = $1)`, c.Name)
		if err != nil {
			return errors.Wrap(err, "checking college")
		}
		if exists {
			continue
		}
		_, err = cli.db.ExecContext(ctx,
			`INSERT INTO college (id, name, location, ranking, admission_requirements, courses_offered, website, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.New().String(), c.Name, c.Location, c.Ranking, c.AdmissionRequirements,
			pq.Array(c.CoursesOffered), c.Website, now,
		)
		if err != nil {
			return errors.Wrap(err, "creating college")
		}
		count++
	}
	fmt.Printf("colleges: %d created\n", count)
	return nil
}

func (cli *commandLine) seedScholarships(ctx context.Context) error {
	var fixtures []scholarshipFixture
	if err := loadFixture("scholarships.json", &fixtures); err != nil {
		return err
	}

	var count int
	now := time.Now().UTC()
	for _, s := range fixtures {
		var exists bool
		err := cli.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM scholarship WHERE title = $1)`, s.Title)
		if err != nil {
			return errors.Wrap(err, "checking scholarship")
		}
		if exists {
			continue
		}
		_, err = cli.db.ExecContext(ctx,
			`INSERT INTO scholarship (id, title, description, amount, eligibility, deadline, application_url, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.New().String(), s.Title, s.Description, s.Amount, s.Eligibility, s.Deadline, s.ApplicationURL, now,
		)
		if err != nil {
			return errors.Wrap(err, "creating scholarship")
		}
		count++
	}
	fmt.Printf("scholarships: %d created\n", count)
	return nil
}

func (cli *commandLine) seedResources(ctx context.Context) error {
	var fixtures []resourceFixture
	if err := loadFixture("resources.json", &fixtures); err != nil {
		return err
	}

	var count int
	now := time.Now().UTC()
	for _, r := range fixtures {
		var exists bool
		err := cli.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM resource WHERE url = $1)`, r.URL)
		if err != nil {
			return errors.Wrap(err, "checking resource")
		}
		if exists {
			continue
		}
		_, err = cli.db.ExecContext(ctx,
			`INSERT INTO resource (id, title, description, url, type, language, career_id, thumbnail_url, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			uuid.New().String(), r.Title, r.Description, r.URL, r.Type, r.Language, nil, r.ThumbnailURL, now,
		)
		if err != nil {
			return errors.Wrap(err, "creating resource")
		}
		count++
	}
	fmt.Printf("resources: %d created\n", count)
	return nil
}
