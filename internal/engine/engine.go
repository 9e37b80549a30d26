// Package engine runs a single quiz attempt at a time: it tracks the current
// question, records answers, counts down the time limit and grades the attempt
// on submission.
//
// An Engine is safe for concurrent use. Every operation is serialized by one
// mutex, and the completion callback is invoked outside that lock exactly once
// per attempt.
package engine

import (
	"sync"
	"time"

	"lms-quiz/internal/domain"
	"lms-quiz/internal/util"
)

// CompletionFunc receives the sealed attempt after submission or expiry.
type CompletionFunc func(attempt domain.Attempt)

// Option configures an Engine.
type Option func(*Engine)

// WithCompletionCallback registers fn to be called once per finished attempt.
func WithCompletionCallback(fn CompletionFunc) Option {
	return func(e *Engine) { e.onComplete = fn }
}

// WithClock overrides the source of completion timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithTickerFactory overrides how countdown tickers are built.
func WithTickerFactory(f TickerFactory) Option {
	return func(e *Engine) { e.newTicker = f }
}

// WithIDGenerator overrides attempt id generation.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// Engine runs one learner's attempts at a single quiz. It is safe for
// concurrent use.
type Engine struct {
	mu sync.Mutex

	quiz      *domain.Quiz
	moduleID  string
	state     State
	index     int
	answers   domain.AnswerMap
	attempt   *domain.Attempt
	remaining int
	timer     *countdown
	closed    bool

	onComplete CompletionFunc
	now        func() time.Time
	newTicker  TickerFactory
	newID      func() string
}

// New builds an engine for the first quiz in catalog owned by moduleID. When
// no quiz matches, the engine has no quiz and Start reports NO_QUIZ_AVAILABLE.
func New(catalog []*domain.Quiz, moduleID string, opts ...Option) *Engine {
	quiz, _ := domain.FindQuizForModule(catalog, moduleID)
	e := NewForQuiz(quiz, opts...)
	e.moduleID = moduleID
	return e
}

// NewForQuiz builds an engine around quiz, which may be nil.
func NewForQuiz(quiz *domain.Quiz, opts ...Option) *Engine {
	e := &Engine{
		quiz:      quiz,
		state:     NotStarted,
		answers:   domain.AnswerMap{},
		now:       time.Now,
		newTicker: NewStdTicker,
		newID:     util.NewULID,
	}
	if quiz != nil {
		e.moduleID = quiz.ModuleID
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HasQuiz reports whether a quiz was found for the engine.
func (e *Engine) HasQuiz() bool {
	return e.quiz != nil
}

// Quiz returns the engine's quiz, or nil.
func (e *Engine) Quiz() *domain.Quiz {
	return e.quiz
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// CountingDown reports whether a timed attempt is in progress with time left.
// Such an attempt ends on its own when the countdown reaches zero.
func (e *Engine) CountingDown() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.closed && e.state == InProgress && e.quiz.HasTimeLimit() && e.remaining > 0
}

// Start begins a new attempt.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return errClosed()
	}
	if e.quiz == nil {
		return domain.NewNoQuizAvailableError(e.moduleID)
	}
	if e.state != NotStarted {
		return domain.NewInvalidStateError("quiz attempt has already been started")
	}
	e.begin()
	return nil
}

// Retake discards the submitted attempt and starts a fresh one.
func (e *Engine) Retake() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return errClosed()
	}
	if e.state != Submitted {
		return domain.NewInvalidStateError("only a submitted quiz can be retaken")
	}
	e.begin()
	return nil
}

// begin must be called with e.mu held.
func (e *Engine) begin() {
	e.stopTimer()
	e.state = InProgress
	e.index = 0
	e.answers = domain.AnswerMap{}
	e.attempt = &domain.Attempt{
		ID:     e.newID(),
		QuizID: e.quiz.ID,
	}
	e.remaining = e.quiz.TimeLimitSeconds()
	e.armTimer()
}

// RecordAnswer sets or replaces the answer for questionID. An empty answer is
// stored and counts as unanswered.
func (e *Engine) RecordAnswer(questionID string, answer domain.Answer) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireInProgress(); err != nil {
		return err
	}
	if _, ok := e.quiz.Question(questionID); !ok {
		return domain.NewInvalidInputError("unknown question id: " + questionID)
	}
	switch a := answer.(type) {
	case nil:
		answer = domain.SingleAnswer("")
	case domain.MultiAnswer:
		answer = domain.NewMultiAnswer(a...)
	}
	e.answers[questionID] = answer
	return nil
}

// Next moves to the following question. It is a no-op on the last question.
func (e *Engine) Next() error {
	return e.move(1)
}

// Previous moves to the preceding question. It is a no-op on the first question.
func (e *Engine) Previous() error {
	return e.move(-1)
}

func (e *Engine) move(delta int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireInProgress(); err != nil {
		return err
	}
	next := e.index + delta
	if next < 0 || next >= len(e.quiz.Questions) {
		return nil
	}
	e.index = next
	return nil
}

// Submit grades the attempt. It is only allowed from the last question.
func (e *Engine) Submit() error {
	e.mu.Lock()
	if err := e.requireInProgress(); err != nil {
		e.mu.Unlock()
		return err
	}
	if n := len(e.quiz.Questions); n > 0 && e.index != n-1 {
		e.mu.Unlock()
		return domain.NewInvalidStateError("quiz can only be submitted from the last question")
	}
	sealed := e.finish(domain.CompletionSubmitted)
	e.mu.Unlock()

	e.notify(sealed)
	return nil
}

// Tick advances the countdown by one second. It is what the timer goroutine
// calls; ticks outside a timed, in-progress attempt are ignored.
func (e *Engine) Tick() {
	e.advance(nil)
}

// advance applies a tick. A non-nil source must still be the armed timer,
// so ticks already in flight when the timer was stopped are dropped.
func (e *Engine) advance(source *countdown) {
	e.mu.Lock()
	if source != nil && e.timer != source {
		e.mu.Unlock()
		return
	}
	if e.closed || e.state != InProgress || !e.quiz.HasTimeLimit() {
		e.mu.Unlock()
		return
	}
	e.remaining--
	if e.remaining > 0 {
		e.mu.Unlock()
		return
	}
	e.remaining = 0
	sealed := e.finish(domain.CompletionTimedOut)
	e.mu.Unlock()

	e.notify(sealed)
}

// finish seals the attempt. Must be called with e.mu held.
func (e *Engine) finish(reason domain.CompletionReason) domain.Attempt {
	e.stopTimer()

	answers := e.answers.Clone()
	grade := domain.GradeAnswers(e.quiz, answers)

	e.attempt.Answers = answers
	e.attempt.Score = grade.Score
	e.attempt.TotalPoints = grade.TotalPoints
	e.attempt.Passed = grade.Passed
	e.attempt.CompletedAt = e.now()
	e.attempt.Completion = reason
	e.state = Submitted

	sealed := *e.attempt
	sealed.Answers = answers.Clone()
	return sealed
}

func (e *Engine) notify(attempt domain.Attempt) {
	if e.onComplete != nil {
		e.onComplete(attempt)
	}
}

// Close stops the timer and abandons any attempt in progress without invoking
// the completion callback. Later operations fail with INVALID_STATE.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTimer()
	e.closed = true
}

// Result returns the graded view of the submitted attempt.
func (e *Engine) Result() (*domain.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, errClosed()
	}
	if e.state != Submitted {
		return nil, domain.NewInvalidStateError("quiz has not been submitted")
	}
	return domain.BuildResult(e.quiz, e.attempt), nil
}

func (e *Engine) requireInProgress() error {
	if e.closed {
		return errClosed()
	}
	if e.quiz == nil {
		return domain.NewNoQuizAvailableError(e.moduleID)
	}
	if e.state != InProgress {
		return domain.NewInvalidStateError("quiz is not in progress")
	}
	return nil
}

func errClosed() error {
	return domain.NewInvalidStateError("quiz engine is closed")
}
