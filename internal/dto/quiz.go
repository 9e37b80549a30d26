package dto

import (
	"encoding/json"
	"time"
)

// QuestionResponse is a question as shown to the learner; the answer key is
// never included.
type QuestionResponse struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
	Points  float64  `json:"points"`
}

// QuizSummaryResponse carries the quiz intro data.
// @Description Quiz metadata shown before an attempt starts
type QuizSummaryResponse struct {
	ID               string  `json:"id"`
	ModuleID         string  `json:"module_id"`
	Title            string  `json:"title"`
	Description      string  `json:"description,omitempty"`
	QuestionCount    int     `json:"question_count"`
	TotalPoints      float64 `json:"total_points"`
	PassingScore     float64 `json:"passing_score"`
	TimeLimitMinutes int     `json:"time_limit_minutes"`
}

// QuizListResponse lists catalog quizzes.
type QuizListResponse struct {
	Quizzes []QuizSummaryResponse `json:"quizzes"`
}

// ModuleQuizResponse is the quiz for a module, or the empty state when none exists.
// @Description Quiz attached to a module; available is false when there is none
type ModuleQuizResponse struct {
	Available bool                 `json:"available"`
	ModuleID  string               `json:"module_id"`
	Quiz      *QuizSummaryResponse `json:"quiz,omitempty"`
}

// CreateSessionRequest opens a quiz session for a module.
// @Description Request body for creating a quiz session
type CreateSessionRequest struct {
	ModuleID string `json:"module_id" validate:"required,max=64"`
}

// RecordAnswerRequest sets the answer to one question. Answer is a JSON string
// or an array of strings.
// @Description Request body for recording an answer
type RecordAnswerRequest struct {
	QuestionID string          `json:"question_id" validate:"required,max=64"`
	Answer     json.RawMessage `json:"answer" swaggertype:"object"`
}

// NavigateRequest moves between questions.
type NavigateRequest struct {
	Direction string `json:"direction" validate:"required,oneof=next previous"`
}

// SessionResponse is the current state of a quiz session.
// @Description Snapshot of a quiz session
type SessionResponse struct {
	SessionID        string               `json:"session_id"`
	Available        bool                 `json:"available"`
	ModuleID         string               `json:"module_id"`
	State            string               `json:"state"`
	AttemptID        string               `json:"attempt_id,omitempty"`
	Quiz             *QuizSummaryResponse `json:"quiz,omitempty"`
	CurrentIndex     int                  `json:"current_index"`
	AnsweredCount    int                  `json:"answered_count"`
	Progress         float64              `json:"progress"`
	SecondsRemaining *int                 `json:"seconds_remaining"`
	Clock            string               `json:"clock,omitempty"`
	CurrentQuestion  *QuestionResponse    `json:"current_question,omitempty"`
	CurrentAnswer    json.RawMessage      `json:"current_answer,omitempty" swaggertype:"object"`
}

// QuestionReviewResponse is one row of a graded result.
type QuestionReviewResponse struct {
	QuestionID           string          `json:"question_id"`
	Text                 string          `json:"text"`
	Type                 string          `json:"type"`
	UserAnswer           json.RawMessage `json:"user_answer" swaggertype:"object"`
	UserAnswerDisplay    string          `json:"user_answer_display"`
	CorrectAnswer        json.RawMessage `json:"correct_answer" swaggertype:"object"`
	CorrectAnswerDisplay string          `json:"correct_answer_display"`
	IsCorrect            bool            `json:"is_correct"`
	Explanation          string          `json:"explanation,omitempty"`
	Points               float64         `json:"points"`
	Awarded              float64         `json:"awarded"`
	Feedback             string          `json:"feedback,omitempty"`
}

// AttemptResultResponse is the graded result of a submitted attempt.
// @Description Graded quiz result
type AttemptResultResponse struct {
	AttemptID   string                   `json:"attempt_id"`
	QuizID      string                   `json:"quiz_id"`
	QuizTitle   string                   `json:"quiz_title"`
	Score       float64                  `json:"score"`
	TotalPoints float64                  `json:"total_points"`
	Percentage  int                      `json:"percentage"`
	Passed      bool                     `json:"passed"`
	CompletedAt time.Time                `json:"completed_at"`
	Completion  string                   `json:"completion"`
	Questions   []QuestionReviewResponse `json:"questions"`
}

// AttemptCompletedEvent is the payload of quiz.attempt.completed.
type AttemptCompletedEvent struct {
	AttemptID   string    `json:"attempt_id"`
	UserID      string    `json:"user_id"`
	QuizID      string    `json:"quiz_id"`
	ModuleID    string    `json:"module_id"`
	Score       float64   `json:"score"`
	TotalPoints float64   `json:"total_points"`
	Percentage  int       `json:"percentage"`
	Passed      bool      `json:"passed"`
	Completion  string    `json:"completion"`
	CompletedAt time.Time `json:"completed_at"`
}

// HealthResponse reports dependency status.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// CatalogReloadResponse reports a catalog reload.
type CatalogReloadResponse struct {
	Loaded   int      `json:"loaded"`
	Rejected []string `json:"rejected,omitempty"`
}
