package engine

import (
	"lms-quiz/internal/domain"
	"lms-quiz/internal/util"
)

// QuestionView is a question as shown to the learner, without its answer key.
type QuestionView struct {
	ID      string
	Text    string
	Kind    domain.QuestionKind
	Options []string
	Points  float64
}

// Snapshot is a read-only copy of the engine's state.
type Snapshot struct {
	Available bool
	State     State
	AttemptID string

	QuizID           string
	ModuleID         string
	Title            string
	Description      string
	QuestionCount    int
	TotalPoints      float64
	PassingScore     float64
	TimeLimitMinutes int

	CurrentIndex     int
	AnsweredCount    int
	Progress         float64
	SecondsRemaining *int // nil when the quiz is untimed
	Clock            string

	Current       *QuestionView
	CurrentAnswer domain.Answer
}

// Snapshot copies the current state. It never fails, including after Close.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		Available: e.quiz != nil,
		State:     e.state,
		ModuleID:  e.moduleID,
	}
	if e.quiz == nil {
		return s
	}

	q := e.quiz
	s.QuizID = q.ID
	s.Title = q.Title
	s.Description = q.Description
	s.QuestionCount = len(q.Questions)
	s.TotalPoints = q.TotalPoints()
	s.PassingScore = q.PassingScore
	s.TimeLimitMinutes = q.TimeLimitMinutes
	if e.attempt != nil {
		s.AttemptID = e.attempt.ID
	}

	if q.HasTimeLimit() {
		remaining := q.TimeLimitSeconds()
		if e.state != NotStarted {
			remaining = e.remaining
		}
		s.SecondsRemaining = &remaining
		s.Clock = util.FormatClock(remaining)
	}

	if e.state == NotStarted {
		return s
	}

	s.CurrentIndex = e.index
	for _, a := range e.answers {
		if a != nil && !a.IsEmpty() {
			s.AnsweredCount++
		}
	}
	if s.QuestionCount > 0 {
		s.Progress = float64(e.index+1) / float64(s.QuestionCount)
		cur := &q.Questions[e.index]
		s.Current = &QuestionView{
			ID:      cur.ID,
			Text:    cur.Text,
			Kind:    cur.Kind,
			Options: append([]string(nil), cur.Options...),
			Points:  cur.Points,
		}
		s.CurrentAnswer = e.answers[cur.ID]
	}
	return s
}
