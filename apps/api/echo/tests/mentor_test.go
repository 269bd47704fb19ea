package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/njia-app/njia/core/mentor"
	"github.com/njia-app/njia/core/user"
	testutil "github.com/njia-app/njia/tests"
)

func bookingDate() string {
	return time.Now().UTC().Add(7 * 24 * time.Hour).Format("2006-01-02")
}

func Test_mentorApi_query(t *testing.T) {
	testutil.ResetDB(t, db)

	jane := mentorRepo.AddMentor(mentor.Profile{
		Name:            "Jane Mentor",
		Expertise:       []string{"Software Engineering"},
		YearsExperience: 10,
	})
	john := mentorRepo.AddMentor(mentor.Profile{
		Name:            "John Guide",
		Expertise:       []string{"Nursing"},
		YearsExperience: 4,
	})

	tests := []httpTest{
		{
			name: "Get all (most experienced first)", path: "/v1/mentors", wantCode: http.StatusOK,
			wantData: marchallList(t, jane, john),
		},
		{
			name: "search by expertise", path: "/v1/mentors?search=nursing", wantCode: http.StatusOK,
			wantData: marchallList(t, john),
		},
		{name: "search (unknown)", path: "/v1/mentors?search=lol", wantCode: http.StatusOK, wantData: marchallList(t)},
		{name: "slots", path: "/v1/mentors/slots", wantCode: http.StatusOK, wantData: marchallObj(t, mentor.Slots())},
		{name: "retrieve", path: "/v1/mentors/" + jane.UserID, wantCode: http.StatusOK, wantData: marchallObj(t, jane)},
		{
			name: "retrieve (unknown)", path: "/v1/mentors/nope", wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_mentorApi_saveProfile(t *testing.T) {
	testutil.ResetDB(t, db)

	mentorUsr := testutil.CreateUser(t, usrRepo, "Jane Mentor", "jane", "jane@test.cd", "", []string{user.RoleMentor}, true)
	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)

	body := marchallObj(t, map[string]interface{}{
		"bio":              "10 years shipping software.",
		"expertise":        []string{"Software Engineering"},
		"credentials":      "BSc Computer Science",
		"hourly_rate":      20,
		"years_experience": 10,
		"availability":     "weekends",
	})

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/v1/mentors/me", body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("students cannot publish", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/mentors/me", getToken(t, student), body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}, rec)
	})

	t.Run("missing fields", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/mentors/me", getToken(t, mentorUsr), []byte(`{}`))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"bio":       "this field is required",
				"expertise": "this field is required",
			}),
		}, rec)
	})

	t.Run("publish", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/mentors/me", getToken(t, mentorUsr), body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want 200; body %s", rec.Code, rec.Body.String())
		}
		var profile mentor.Profile
		if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if profile.UserID != mentorUsr.ID || profile.Name != mentorUsr.Name {
			t.Errorf("profile = %+v", profile)
		}

		// listed publicly right away
		req, rec = newRequest(http.MethodGet, "/v1/mentors/"+mentorUsr.ID)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, profile)}, rec)
	})

	t.Run("revise", func(t *testing.T) {
		update := marchallObj(t, map[string]interface{}{
			"bio":       "Now mentoring part-time.",
			"expertise": []string{"Software Engineering", "Product"},
		})
		req, rec := newAuthRequest(http.MethodPut, "/v1/mentors/me", getToken(t, mentorUsr), update)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want 200; body %s", rec.Code, rec.Body.String())
		}
		var profile mentor.Profile
		if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if profile.Bio != "Now mentoring part-time." || len(profile.Expertise) != 2 {
			t.Errorf("profile = %+v", profile)
		}
	})
}

func Test_mentorApi_book(t *testing.T) {
	testutil.ResetDB(t, db)

	profile := mentorRepo.AddMentor(mentor.Profile{Name: "Jane Mentor", Expertise: []string{"Software Engineering"}})
	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)
	token := getToken(t, student)

	booking := func(date, slot string) []byte {
		return marchallObj(t, map[string]string{
			"mentor_id": profile.UserID,
			"date":      date,
			"slot":      slot,
			"notes":     "Need help picking a course",
		})
	}

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/appointments", booking(bookingDate(), "10:00 AM"))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("missing fields", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/appointments", token, []byte(`{}`))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"mentor_id": "this field is required",
				"date":      "this field is required",
				"slot":      "this field is required",
			}),
		}, rec)
	})

	tests := []httpTest{
		{
			name: "unknown slot", body: booking(bookingDate(), "09:30 AM"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid time slot"}),
		},
		{
			name: "malformed date", body: booking("30-11-2026", "10:00 AM"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"date": "must be formatted as YYYY-MM-DD"}),
		},
		{
			name: "past date", body: booking("2020-01-01", "10:00 AM"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "appointment date must be in the future"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/appointments", token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("not a mentor", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"mentor_id": student.ID, "date": bookingDate(), "slot": "10:00 AM"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/appointments", token, body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "user is not a mentor"}),
		}, rec)
	})

	t.Run("books the slot", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/appointments", token, booking(bookingDate(), "10:00 AM"))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d, want 201; body %s", rec.Code, rec.Body.String())
		}
		var appt mentor.Appointment
		if err := json.Unmarshal(rec.Body.Bytes(), &appt); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if appt.MentorID != profile.UserID || appt.StudentID != student.ID {
			t.Errorf("appt = %+v", appt)
		}
		if appt.Status != mentor.StatusScheduled || appt.Duration != 60 {
			t.Errorf("Status = %q, Duration = %d", appt.Status, appt.Duration)
		}
	})

	t.Run("double booking", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/appointments", token, booking(bookingDate(), "10:00 AM"))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "mentor is already booked at this time"}),
		}, rec)
	})
}

func Test_mentorApi_listAndCancel(t *testing.T) {
	testutil.ResetDB(t, db)

	mentorUsr := testutil.CreateUser(t, usrRepo, "Jane Mentor", "jane", "jane@test.cd", "", []string{user.RoleMentor}, true)
	profile := mentorRepo.AddMentor(mentor.Profile{UserID: mentorUsr.ID, Name: mentorUsr.Name})
	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)
	stranger := testutil.CreateUser(t, usrRepo, "King", "king", "king@test.cd", "", []string{user.RoleStudent}, true)
	token := getToken(t, student)

	body := marchallObj(t, map[string]string{"mentor_id": profile.UserID, "date": bookingDate(), "slot": "11:00 AM"})
	req, rec := newAuthRequest(http.MethodPost, "/v1/appointments", token, body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("booking failed: code = %d; body %s", rec.Code, rec.Body.String())
	}
	var appt mentor.Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &appt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	t.Run("student sees own appointments", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/appointments", token)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, appt)}, rec)
	})

	t.Run("mentor sees mentor side", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/appointments", getToken(t, mentorUsr))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, appt)}, rec)
	})

	t.Run("stranger sees nothing", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/appointments", getToken(t, stranger))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t)}, rec)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/appointments/"+appt.ID, getToken(t, stranger))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
	})

	t.Run("cancel unknown", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/appointments/nope", token)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
	})

	t.Run("cancel", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/appointments/"+appt.ID, token)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want 200; body %s", rec.Code, rec.Body.String())
		}
		var cancelled mentor.Appointment
		if err := json.Unmarshal(rec.Body.Bytes(), &cancelled); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if cancelled.Status != mentor.StatusCancelled {
			t.Errorf("Status = %q, want %q", cancelled.Status, mentor.StatusCancelled)
		}
	})

	t.Run("already cancelled", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/appointments/"+appt.ID, token)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "appointment cannot be cancelled"}),
		}, rec)
	})
}
