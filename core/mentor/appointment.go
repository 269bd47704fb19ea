package mentor

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/njia-app/njia/core"
	"github.com/njia-app/njia/core/user"
)

// appointment statuses
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const (
	dateLayout = "2006-01-02"
	slotLayout = "03:04 PM"

	defaultDuration = 60 // minutes
)

var (
	ErrInvalidSlot   = errors.New("invalid time slot")
	ErrPastDate      = errors.New("appointment date must be in the future")
	ErrSlotTaken     = errors.New("mentor is already booked at this time")
	ErrNotBookable   = errors.New("user is not a mentor")
	ErrNotCancelable = errors.New("appointment cannot be cancelled")
)

// slots is the flat bookable day: hourly from 09:00 AM to 05:00 PM.
var slots = []string{
	"09:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"01:00 PM", "02:00 PM", "03:00 PM", "04:00 PM", "05:00 PM",
}

// Slots returns the bookable time slots for any day.
func Slots() []string {
	out := make([]string, len(slots))
	copy(out, slots)
	return out
}

type (
	Appointment struct {
		ID          string      `json:"id"`
		MentorID    string      `json:"mentor_id"`
		StudentID   string      `json:"student_id"`
		ScheduledAt time.Time   `json:"scheduled_at"` // UTC
		Duration    int         `json:"duration"`     // minutes
		Notes       null.String `json:"notes"`
		Status      string      `json:"status"`
		CreatedAt   time.Time   `json:"created_at"`
	}

	NewAppointment struct {
		MentorID string `json:"mentor_id" validate:"required"`
		Date     string `json:"date" validate:"required"`
		Slot     string `json:"slot" validate:"required"`
		Notes    string `json:"notes"`
	}

	Service interface {
		Query(ctx context.Context, search string) ([]Profile, error)
		GetByUserID(ctx context.Context, userID string) (Profile, error)
		// SaveProfile publishes or revises the caller's own mentor listing;
		// the caller must hold the mentor role.
		SaveProfile(ctx context.Context, usr user.User, np NewProfile) (Profile, error)
		// Book validates the requested slot and creates a scheduled
		// appointment, then emails the student a confirmation.
		Book(ctx context.Context, student user.User, na NewAppointment) (Appointment, error)
		// Appointments lists the caller's appointments, on the mentor side
		// for mentors and the student side otherwise.
		Appointments(ctx context.Context, usr user.User) ([]Appointment, error)
		// Cancel marks the appointment cancelled; only a party to it may.
		Cancel(ctx context.Context, usr user.User, id string) (Appointment, error)
	}

	service struct {
		repo     Repository
		mail     core.EmailService
		validate *validator.Validate
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(repo Repository, mail core.EmailService, validate *validator.Validate) Service {
	return &service{
		repo:     repo,
		mail:     mail,
		validate: validate,
	}
}

func (svc *service) Query(ctx context.Context, search string) ([]Profile, error) {
	return svc.repo.QueryMentors(ctx, search)
}

func (svc *service) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	return svc.repo.GetMentorByUserID(ctx, userID)
}

func (svc *service) SaveProfile(ctx context.Context, usr user.User, np NewProfile) (Profile, error) {
	if !usr.IsMentor() {
		return Profile{}, ErrNotMentor
	}
	if err := svc.validate.StructCtx(ctx, np); err != nil {
		return Profile{}, err
	}

	profile := Profile{
		UserID:          usr.ID,
		Name:            usr.Name,
		AvatarURL:       usr.AvatarURL,
		Bio:             np.Bio,
		Expertise:       np.Expertise,
		Credentials:     np.Credentials,
		HourlyRate:      null.NewInt(np.HourlyRate, np.HourlyRate > 0),
		YearsExperience: np.YearsExperience,
		Availability:    null.NewString(np.Availability, np.Availability != ""),
		CreatedAt:       time.Now().UTC(),
	}
	profile, err := svc.repo.UpsertMentorProfile(ctx, profile)
	if err != nil {
		return Profile{}, errors.Wrap(err, "saving mentor profile")
	}
	return profile, nil
}

// scheduledTime resolves date + slot into a concrete UTC time.
func scheduledTime(date, slot string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, core.NewValidationError(errors.New("invalid date"), core.FieldError{Field: "date", Error: "must be formatted as YYYY-MM-DD"})
	}
	at, err := time.ParseInLocation(slotLayout, slot, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidSlot
	}
	return day.Add(time.Duration(at.Hour())*time.Hour + time.Duration(at.Minute())*time.Minute), nil
}

func validSlot(slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

func (svc *service) Book(ctx context.Context, student user.User, na NewAppointment) (Appointment, error) {
	if err := svc.validate.StructCtx(ctx, na); err != nil {
		return Appointment{}, err
	}
	if !validSlot(na.Slot) {
		return Appointment{}, ErrInvalidSlot
	}

	profile, err := svc.repo.GetMentorByUserID(ctx, na.MentorID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Appointment{}, ErrNotBookable
		}
		return Appointment{}, err
	}

	at, err := scheduledTime(na.Date, na.Slot)
	if err != nil {
		return Appointment{}, err
	}
	if !at.After(time.Now().UTC()) {
		return Appointment{}, ErrPastDate
	}

	taken, err := svc.repo.MentorHasAppointmentAt(ctx, na.MentorID, at)
	if err != nil {
		return Appointment{}, errors.Wrap(err, "checking mentor availability")
	}
	if taken {
		return Appointment{}, ErrSlotTaken
	}

	appt := Appointment{
		MentorID:    na.MentorID,
		StudentID:   student.ID,
		ScheduledAt: at,
		Duration:    defaultDuration,
		Notes:       null.NewString(na.Notes, na.Notes != ""),
		Status:      StatusScheduled,
		CreatedAt:   time.Now().UTC(),
	}
	appt, err = svc.repo.CreateAppointment(ctx, appt)
	if err != nil {
		return Appointment{}, errors.Wrap(err, "saving appointment")
	}

	svc.sendConfirmation(student, profile, appt)
	return appt, nil
}

func (svc *service) sendConfirmation(student user.User, profile Profile, appt Appointment) {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour mentorship session with %s is confirmed for %s at %s (UTC).\n\n"+
			"Session length: %d minutes.\n\nNjia Team",
		student.Name, profile.Name,
		appt.ScheduledAt.Format("Monday, 02 Jan 2006"), appt.ScheduledAt.Format(slotLayout),
		appt.Duration,
	)
	svc.mail.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: student.Name, Address: student.Email}},
		Subject: "Your mentorship session is booked",
		Body:    body,
	})
}

func (svc *service) Appointments(ctx context.Context, usr user.User) ([]Appointment, error) {
	if usr.IsMentor() {
		return svc.repo.GetAppointmentsByMentor(ctx, usr.ID)
	}
	return svc.repo.GetAppointmentsByStudent(ctx, usr.ID)
}

func (svc *service) Cancel(ctx context.Context, usr user.User, id string) (Appointment, error) {
	appt, err := svc.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if appt.StudentID != usr.ID && appt.MentorID != usr.ID && !usr.IsAdmin() {
		return Appointment{}, ErrAppointmentNotFound
	}
	if appt.Status != StatusScheduled {
		return Appointment{}, ErrNotCancelable
	}
	return svc.repo.UpdateAppointmentStatus(ctx, id, StatusCancelled)
}
