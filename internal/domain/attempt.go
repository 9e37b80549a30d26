package domain

import (
	"context"
	"time"
)

// CompletionReason records how an attempt reached Submitted.
type CompletionReason string

const (
	CompletionSubmitted CompletionReason = "submitted"
	CompletionTimedOut  CompletionReason = "timed_out"
)

// Attempt is one run through a quiz. It is sealed at submission.
type Attempt struct {
	ID          string           `json:"id"`
	QuizID      string           `json:"quiz_id"`
	Answers     AnswerMap        `json:"answers"`
	Score       float64          `json:"score"`
	TotalPoints float64          `json:"total_points"`
	CompletedAt time.Time        `json:"completed_at"`
	Passed      bool             `json:"passed"`
	Completion  CompletionReason `json:"completion"`
}

// Grade returns the attempt's score as a Grade.
func (a *Attempt) Grade() Grade {
	return Grade{Score: a.Score, TotalPoints: a.TotalPoints, Passed: a.Passed}
}

// Result is the graded view of a submitted attempt.
type Result struct {
	AttemptID   string
	QuizID      string
	QuizTitle   string
	Score       float64
	TotalPoints float64
	Percentage  int
	Passed      bool
	CompletedAt time.Time
	Completion  CompletionReason
	Questions   []QuestionReview
}

// BuildResult assembles the result view for a sealed attempt.
func BuildResult(quiz *Quiz, attempt *Attempt) *Result {
	return &Result{
		AttemptID:   attempt.ID,
		QuizID:      quiz.ID,
		QuizTitle:   quiz.Title,
		Score:       attempt.Score,
		TotalPoints: attempt.TotalPoints,
		Percentage:  attempt.Grade().RoundedPercentage(),
		Passed:      attempt.Passed,
		CompletedAt: attempt.CompletedAt,
		Completion:  attempt.Completion,
		Questions:   ReviewAnswers(quiz, attempt.Answers),
	}
}

// AttemptRecord is a sealed attempt as persisted for a user. There is at most
// one record per (UserID, QuizID).
type AttemptRecord struct {
	Attempt
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Pagination bounds list queries.
type Pagination struct {
	Limit  int
	Offset int
}

// AttemptRepository persists finished attempts.
type AttemptRepository interface {
	// UpsertAttempt inserts the record or replaces the one stored for the same user and quiz.
	UpsertAttempt(ctx context.Context, record *AttemptRecord) error

	// GetAttemptsByUserID lists a user's attempts, newest first, with the total count.
	GetAttemptsByUserID(ctx context.Context, userID string, pagination Pagination) ([]AttemptRecord, int, error)

	// GetAttempt returns the user's stored attempt for a quiz, or nil if none.
	GetAttempt(ctx context.Context, userID, quizID string) (*AttemptRecord, error)
}
