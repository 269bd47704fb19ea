package dummydb

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/njia-app/njia/core/mentor"
)

type mentorRepository struct {
	db *mentorTable
}

var _ mentor.Repository = (*mentorRepository)(nil) // interface compliance check

func NewMentorRepository(db *DB) *mentorRepository {
	return &mentorRepository{db: db.mentor}
}

// AddMentor seeds a profile; for tests.
func (repo *mentorRepository) AddMentor(profile mentor.Profile) mentor.Profile {
	repo.db.Lock()
	defer repo.db.Unlock()

	if profile.UserID == "" {
		profile.UserID = uuid.New().String()
	}
	repo.db.profiles[profile.UserID] = &profile
	return profile
}

func (repo *mentorRepository) QueryMentors(ctx context.Context, search string) ([]mentor.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	profiles := make([]mentor.Profile, 0, len(repo.db.profiles))
	for _, p := range repo.db.profiles {
		if search != "" && !mentorMatches(*p, search) {
			continue
		}
		profiles = append(profiles, *p)
	}

	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].YearsExperience != profiles[j].YearsExperience {
			return profiles[i].YearsExperience > profiles[j].YearsExperience
		}
		return profiles[i].Name < profiles[j].Name
	})
	return profiles, nil
}

func mentorMatches(p mentor.Profile, search string) bool {
	s := strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Name), s) || strings.Contains(strings.ToLower(p.Bio), s) {
		return true
	}
	for _, e := range p.Expertise {
		if strings.Contains(strings.ToLower(e), s) {
			return true
		}
	}
	return false
}

func (repo *mentorRepository) UpsertMentorProfile(ctx context.Context, profile mentor.Profile) (mentor.Profile, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if existing, ok := repo.db.profiles[profile.UserID]; ok {
		profile.CreatedAt = existing.CreatedAt
	}
	repo.db.profiles[profile.UserID] = &profile
	return profile, nil
}

func (repo *mentorRepository) GetMentorByUserID(ctx context.Context, userID string) (mentor.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.profiles[userID]; ok {
		return *p, nil
	}
	return mentor.Profile{}, mentor.ErrNotFound
}

func (repo *mentorRepository) CreateAppointment(ctx context.Context, appt mentor.Appointment) (mentor.Appointment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	repo.db.appointments[appt.ID] = &appt
	return appt, nil
}

func (repo *mentorRepository) GetAppointmentByID(ctx context.Context, id string) (mentor.Appointment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if appt, ok := repo.db.appointments[id]; ok {
		return *appt, nil
	}
	return mentor.Appointment{}, mentor.ErrAppointmentNotFound
}

func (repo *mentorRepository) queryAppointments(match func(mentor.Appointment) bool) []mentor.Appointment {
	appts := make([]mentor.Appointment, 0, len(repo.db.appointments))
	for _, appt := range repo.db.appointments {
		if match(*appt) {
			appts = append(appts, *appt)
		}
	}
	sort.Slice(appts, func(i, j int) bool { return appts[i].ScheduledAt.After(appts[j].ScheduledAt) })
	return appts
}

func (repo *mentorRepository) GetAppointmentsByStudent(ctx context.Context, studentID string) ([]mentor.Appointment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.queryAppointments(func(a mentor.Appointment) bool { return a.StudentID == studentID }), nil
}

func (repo *mentorRepository) GetAppointmentsByMentor(ctx context.Context, mentorID string) ([]mentor.Appointment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.queryAppointments(func(a mentor.Appointment) bool { return a.MentorID == mentorID }), nil
}

func (repo *mentorRepository) MentorHasAppointmentAt(ctx context.Context, mentorID string, at time.Time) (bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, appt := range repo.db.appointments {
		if appt.MentorID == mentorID && appt.ScheduledAt.Equal(at) && appt.Status != mentor.StatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (repo *mentorRepository) UpdateAppointmentStatus(ctx context.Context, id, status string) (mentor.Appointment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	appt, ok := repo.db.appointments[id]
	if !ok {
		return mentor.Appointment{}, mentor.ErrAppointmentNotFound
	}
	appt.Status = status
	return *appt, nil
}
