package mentor

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var (
	ErrNotFound            = errors.New("mentor not found")
	ErrNotMentor           = errors.New("only mentors can publish a profile")
	ErrAppointmentNotFound = errors.New("appointment not found")
)

type (
	// Profile is a mentor's public listing, joined with the owning user's
	// name and avatar.
	Profile struct {
		UserID          string      `json:"user_id"`
		Name            string      `json:"name"`
		AvatarURL       string      `json:"avatar_url"`
		Bio             string      `json:"bio"`
		Expertise       []string    `json:"expertise"`
		Credentials     string      `json:"credentials"`
		HourlyRate      null.Int    `json:"hourly_rate"`
		YearsExperience int         `json:"years_experience"`
		Availability    null.String `json:"availability"`
		CreatedAt       time.Time   `json:"created_at"`
	}

	// NewProfile is the listing a mentor publishes or revises about
	// themselves; name and avatar come from the owning account.
	NewProfile struct {
		Bio             string   `json:"bio" validate:"required"`
		Expertise       []string `json:"expertise" validate:"required,min=1"`
		Credentials     string   `json:"credentials"`
		HourlyRate      int      `json:"hourly_rate"`
		YearsExperience int      `json:"years_experience"`
		Availability    string   `json:"availability"`
	}

	Repository interface {
		QueryMentors(ctx context.Context, search string) ([]Profile, error)
		GetMentorByUserID(ctx context.Context, userID string) (Profile, error)
		// UpsertMentorProfile creates or replaces the caller's listing;
		// CreatedAt of an existing row is preserved.
		UpsertMentorProfile(ctx context.Context, profile Profile) (Profile, error)

		CreateAppointment(ctx context.Context, appt Appointment) (Appointment, error)
		GetAppointmentByID(ctx context.Context, id string) (Appointment, error)
		GetAppointmentsByStudent(ctx context.Context, studentID string) ([]Appointment, error)
		GetAppointmentsByMentor(ctx context.Context, mentorID string) ([]Appointment, error)
		// MentorHasAppointmentAt reports a non-cancelled appointment for the
		// mentor at the exact time.
		MentorHasAppointmentAt(ctx context.Context, mentorID string, at time.Time) (bool, error)
		UpdateAppointmentStatus(ctx context.Context, id, status string) (Appointment, error)
	}
)
