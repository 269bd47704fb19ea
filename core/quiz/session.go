package quiz

// Session walks a student through the ordered question set, recording one
// selected option per question. It is owned by a single request flow;
// nothing here is safe for concurrent use and nothing is persisted until
// the answers are submitted.
type Session struct {
	questions []Question
	pos       int
	answers   AnswerSet
	complete  bool
}

func NewSession(questions []Question) *Session {
	return &Session{
		questions: questions,
		answers:   make(AnswerSet, len(questions)),
	}
}

// Current returns the question the session is positioned at.
func (s *Session) Current() Question {
	return s.questions[s.pos]
}

// Select records value as the answer to the current question, overwriting
// any prior answer. Values outside the current question's option set are
// rejected.
func (s *Session) Select(value string) bool {
	if _, ok := s.Current().Option(value); !ok {
		return false
	}
	s.answers[s.Current().ID] = value
	return true
}

// Advance moves to the next question. It is a no-op while the current
// question has no recorded answer; at the last question it marks the
// session complete (ready for submission) instead of moving.
func (s *Session) Advance() bool {
	if _, ok := s.answers[s.Current().ID]; !ok {
		return false
	}
	if s.pos == len(s.questions)-1 {
		s.complete = true
		return true
	}
	s.pos++
	return true
}

// Retreat moves back one question; a no-op at the first question.
func (s *Session) Retreat() bool {
	if s.pos == 0 {
		return false
	}
	s.pos--
	s.complete = false
	return true
}

// Complete reports whether the session has advanced past the last question.
func (s *Session) Complete() bool {
	return s.complete
}

// Answers returns a copy of the recorded answers.
func (s *Session) Answers() AnswerSet {
	answers := make(AnswerSet, len(s.answers))
	for id, value := range s.answers {
		answers[id] = value
	}
	return answers
}

// Progress reports how many questions have been answered out of the total.
func (s *Session) Progress() (answered, total int) {
	return len(s.answers), len(s.questions)
}
