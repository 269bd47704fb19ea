package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/njia-app/njia/core/mentor"
)

type mentorRow struct {
	UserID          string         `db:"user_id"`
	Name            string         `db:"name"`
	AvatarURL       string         `db:"avatar_url"`
	Bio             string         `db:"bio"`
	Expertise       pq.StringArray `db:"expertise"`
	Credentials     string         `db:"credentials"`
	HourlyRate      null.Int       `db:"hourly_rate"`
	YearsExperience int            `db:"years_experience"`
	Availability    null.String    `db:"availability"`
	CreatedAt       sql.NullTime   `db:"created_at"`
}

func (r mentorRow) toProfile() mentor.Profile {
	return mentor.Profile{
		UserID:          r.UserID,
		Name:            r.Name,
		AvatarURL:       r.AvatarURL,
		Bio:             r.Bio,
		Expertise:       r.Expertise,
		Credentials:     r.Credentials,
		HourlyRate:      r.HourlyRate,
		YearsExperience: r.YearsExperience,
		Availability:    r.Availability,
		CreatedAt:       r.CreatedAt.Time,
	}
}

const mentorSelect = `
	SELECT p.user_id, u.name, u.avatar_url, p.bio, p.expertise, p.credentials,
	       p.hourly_rate, p.years_experience, p.availability, p.created_at
	FROM mentor_profile p
	JOIN "user" u ON u.id = p.user_id AND u.is_active`

type mentorRepository struct {
	db *sqlx.DB
}

var _ mentor.Repository = (*mentorRepository)(nil) // interface compliance check

func NewMentorRepository(db *sqlx.DB) mentor.Repository {
	return &mentorRepository{db: db}
}

func (repo *mentorRepository) QueryMentors(ctx context.Context, search string) ([]mentor.Profile, error) {
	query := mentorSelect
	var args []interface{}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += ` WHERE (u.name ILIKE $1 OR p.bio ILIKE $1
			OR EXISTS (SELECT 1 FROM unnest(p.expertise) e WHERE e ILIKE $1))`
	}
	query += ` ORDER BY p.years_experience DESC, u.name ASC`

	var rows []mentorRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying mentors")
	}

	profiles := make([]mentor.Profile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, row.toProfile())
	}
	return profiles, nil
}

func (repo *mentorRepository) GetMentorByUserID(ctx context.Context, userID string) (mentor.Profile, error) {
	var row mentorRow
	if err := repo.db.GetContext(ctx, &row, mentorSelect+` WHERE p.user_id = $1`, userID); err != nil {
		if err == sql.ErrNoRows {
			return mentor.Profile{}, mentor.ErrNotFound
		}
		return mentor.Profile{}, errors.Wrap(err, "getting mentor")
	}
	return row.toProfile(), nil
}

func (repo *mentorRepository) UpsertMentorProfile(ctx context.Context, profile mentor.Profile) (mentor.Profile, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO mentor_profile
			(user_id, bio, expertise, credentials, hourly_rate, years_experience, availability, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (user_id) DO UPDATE SET
			bio = EXCLUDED.bio,
			expertise = EXCLUDED.expertise,
			credentials = EXCLUDED.credentials,
			hourly_rate = EXCLUDED.hourly_rate,
			years_experience = EXCLUDED.years_experience,
			availability = EXCLUDED.availability`,
		profile.UserID, profile.Bio, pq.Array(profile.Expertise), profile.Credentials,
		profile.HourlyRate, profile.YearsExperience, profile.Availability, profile.CreatedAt,
	)
	if err != nil {
		return mentor.Profile{}, errors.Wrap(err, "upserting mentor profile")
	}
	return repo.GetMentorByUserID(ctx, profile.UserID)
}

type appointmentRow struct {
	ID          string       `db:"id"`
	MentorID    string       `db:"mentor_id"`
	StudentID   string       `db:"student_id"`
	ScheduledAt time.Time    `db:"scheduled_at"`
	Duration    int          `db:"duration"`
	Notes       null.String  `db:"notes"`
	Status      string       `db:"status"`
	CreatedAt   sql.NullTime `db:"created_at"`
}

func (r appointmentRow) toAppointment() mentor.Appointment {
	return mentor.Appointment{
		ID:          r.ID,
		MentorID:    r.MentorID,
		StudentID:   r.StudentID,
		ScheduledAt: r.ScheduledAt,
		Duration:    r.Duration,
		Notes:       r.Notes,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt.Time,
	}
}

func (repo *mentorRepository) CreateAppointment(ctx context.Context, appt mentor.Appointment) (mentor.Appointment, error) {
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO appointment (id, mentor_id, student_id, scheduled_at, duration, notes, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		appt.ID, appt.MentorID, appt.StudentID, appt.ScheduledAt, appt.Duration,
		appt.Notes, appt.Status, appt.CreatedAt,
	)
	if err != nil {
		return mentor.Appointment{}, errors.Wrap(err, "creating appointment")
	}
	return appt, nil
}

func (repo *mentorRepository) GetAppointmentByID(ctx context.Context, id string) (mentor.Appointment, error) {
	var row appointmentRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM appointment WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return mentor.Appointment{}, mentor.ErrAppointmentNotFound
		}
		return mentor.Appointment{}, errors.Wrap(err, "getting appointment")
	}
	return row.toAppointment(), nil
}

func (repo *mentorRepository) getAppointments(ctx context.Context, query string, args ...interface{}) ([]mentor.Appointment, error) {
	var rows []appointmentRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying appointments")
	}
	appts := make([]mentor.Appointment, 0, len(rows))
	for _, row := range rows {
		appts = append(appts, row.toAppointment())
	}
	return appts, nil
}

func (repo *mentorRepository) GetAppointmentsByStudent(ctx context.Context, studentID string) ([]mentor.Appointment, error) {
	return repo.getAppointments(ctx,
		`SELECT * FROM appointment WHERE student_id = $1 ORDER BY scheduled_at DESC`, studentID)
}

func (repo *mentorRepository) GetAppointmentsByMentor(ctx context.Context, mentorID string) ([]mentor.Appointment, error) {
	return repo.getAppointments(ctx,
		`SELECT * FROM appointment WHERE mentor_id = $1 ORDER BY scheduled_at DESC`, mentorID)
}

func (repo *mentorRepository) MentorHasAppointmentAt(ctx context.Context, mentorID string, at time.Time) (bool, error) {
	var exists bool
	err := repo.db.GetContext(ctx, &exists,
		`SELECT EXISTS (
			SELECT 1 FROM appointment
			WHERE mentor_id = $1 AND scheduled_at = $2 AND status <> $3
		)`,
		mentorID, at, mentor.StatusCancelled,
	)
	if err != nil {
		return false, errors.Wrap(err, "checking mentor availability")
	}
	return exists, nil
}

func (repo *mentorRepository) UpdateAppointmentStatus(ctx context.Context, id, status string) (mentor.Appointment, error) {
	_, err := repo.db.ExecContext(ctx, `UPDATE appointment SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return mentor.Appointment{}, errors.Wrap(err, "updating appointment status")
	}
	return repo.GetAppointmentByID(ctx, id)
}
