package quiz

import "testing"

func TestSession(t *testing.T) {
	s := NewSession(Questions())

	if s.Current().ID != 1 {
		t.Fatalf("Current().ID = %d, want 1", s.Current().ID)
	}

	// cannot advance past an unanswered question
	if s.Advance() {
		t.Error("Advance() = true on unanswered question")
	}
	if s.Current().ID != 1 {
		t.Errorf("Current().ID = %d, want 1", s.Current().ID)
	}

	// cannot retreat from the first question
	if s.Retreat() {
		t.Error("Retreat() = true at first question")
	}

	// invalid option value is rejected
	if s.Select("lol") {
		t.Error("Select() accepted an unknown option value")
	}

	if !s.Select("analyzing") {
		t.Fatal("Select() rejected a valid option value")
	}
	if !s.Advance() {
		t.Fatal("Advance() = false on answered question")
	}
	if s.Current().ID != 2 {
		t.Errorf("Current().ID = %d, want 2", s.Current().ID)
	}

	// going back allows changing an earlier answer
	if !s.Retreat() {
		t.Fatal("Retreat() = false")
	}
	if !s.Select("creating") {
		t.Fatal("Select() rejected a valid option value")
	}
	if got := s.Answers()[1]; got != "creating" {
		t.Errorf("Answers()[1] = %q, want %q", got, "creating")
	}

	// walk to the end
	s.Advance()
	for _, value := range []string{"structured", "science", "impact"} {
		if !s.Select(value) {
			t.Fatalf("Select(%q) rejected", value)
		}
		if !s.Advance() {
			t.Fatal("Advance() = false on answered question")
		}
	}

	if !s.Complete() {
		t.Error("Complete() = false after advancing past the last question")
	}
	if answered, total := s.Progress(); answered != total {
		t.Errorf("Progress() = %d/%d, want full", answered, total)
	}

	// retreating reopens the session
	if !s.Retreat() {
		t.Fatal("Retreat() = false at last question")
	}
	if s.Complete() {
		t.Error("Complete() = true after Retreat()")
	}
}

func TestSession_answersCopy(t *testing.T) {
	s := NewSession(Questions())
	s.Select("analyzing")

	answers := s.Answers()
	answers[1] = "creating"

	if got := s.Answers()[1]; got != "analyzing" {
		t.Errorf("Answers() not copied; internal state = %q", got)
	}
}
