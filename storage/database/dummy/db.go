package dummydb

import (
	"sync"

	"github.com/njia-app/njia/core/career"
	"github.com/njia-app/njia/core/college"
	"github.com/njia-app/njia/core/mentor"
	"github.com/njia-app/njia/core/quiz"
	"github.com/njia-app/njia/core/resource"
	"github.com/njia-app/njia/core/scholarship"
	"github.com/njia-app/njia/core/user"
)

type (
	DB struct {
		user        *userTable
		quiz        *quizTable
		career      *careerTable
		college     *collegeTable
		scholarship *scholarshipTable
		resource    *resourceTable
		mentor      *mentorTable
	}

	userTable struct {
		sync.RWMutex
		table    map[string]*user.User
		profiles map[string]*user.StudentProfile
	}

	quizTable struct {
		sync.RWMutex
		table map[string]*quiz.Result
	}

	careerTable struct {
		sync.RWMutex
		table map[string]*career.Career
	}

	collegeTable struct {
		sync.RWMutex
		table map[string]*college.College
	}

	scholarshipTable struct {
		sync.RWMutex
		table map[string]*scholarship.Scholarship
	}

	resourceTable struct {
		sync.RWMutex
		table map[string]*resource.Resource
	}

	mentorTable struct {
		sync.RWMutex
		profiles     map[string]*mentor.Profile
		appointments map[string]*mentor.Appointment
	}
)

// Reset drops all rows; for tests.
func (db *DB) Reset() {
	db.user.Lock()
	db.user.table = make(map[string]*user.User)
	db.user.profiles = make(map[string]*user.StudentProfile)
	db.user.Unlock()

	db.quiz.Lock()
	db.quiz.table = make(map[string]*quiz.Result)
	db.quiz.Unlock()

	db.career.Lock()
	db.career.table = make(map[string]*career.Career)
	db.career.Unlock()

	db.college.Lock()
	db.college.table = make(map[string]*college.College)
	db.college.Unlock()

	db.scholarship.Lock()
	db.scholarship.table = make(map[string]*scholarship.Scholarship)
	db.scholarship.Unlock()

	db.resource.Lock()
	db.resource.table = make(map[string]*resource.Resource)
	db.resource.Unlock()

	db.mentor.Lock()
	db.mentor.profiles = make(map[string]*mentor.Profile)
	db.mentor.appointments = make(map[string]*mentor.Appointment)
	db.mentor.Unlock()
}

func Open() (*DB, error) {
	db := &DB{
		user: &userTable{
			table:    make(map[string]*user.User),
			profiles: make(map[string]*user.StudentProfile),
		},
		quiz:        &quizTable{table: make(map[string]*quiz.Result)},
		career:      &careerTable{table: make(map[string]*career.Career)},
		college:     &collegeTable{table: make(map[string]*college.College)},
		scholarship: &scholarshipTable{table: make(map[string]*scholarship.Scholarship)},
		resource:    &resourceTable{table: make(map[string]*resource.Resource)},
		mentor: &mentorTable{
			profiles:     make(map[string]*mentor.Profile),
			appointments: make(map[string]*mentor.Appointment),
		},
	}
	return db, nil
}
