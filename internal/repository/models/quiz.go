package models

import (
	"database/sql"
	"time"
)

// Quiz maps the quizzes table.
type Quiz struct {
	ID               string         `db:"id"`
	ModuleID         string         `db:"module_id"`
	Title            string         `db:"title"`
	Description      sql.NullString `db:"description"`
	TimeLimitMinutes int            `db:"time_limit_minutes"`
	PassingScore     float64        `db:"passing_score"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
	DeletedAt        sql.NullTime   `db:"deleted_at"`
}

// QuizQuestion maps the quiz_questions table. CorrectAnswer holds the JSON
// form of the answer key (a string or an array of strings).
type QuizQuestion struct {
	ID            string         `db:"id"`
	QuizID        string         `db:"quiz_id"`
	QuestionKey   string         `db:"question_key"`
	Position      int            `db:"position"`
	QuestionText  string         `db:"question_text"`
	QuestionType  string         `db:"question_type"`
	Options       StringSlice    `db:"options"`
	CorrectAnswer string         `db:"correct_answer"`
	Explanation   sql.NullString `db:"explanation"`
	Points        float64        `db:"points"`
}

// QuizAttempt maps the quiz_attempts table; (user_id, quiz_id) is unique.
type QuizAttempt struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	QuizID      string    `db:"quiz_id"`
	Answers     string    `db:"answers"`
	Score       float64   `db:"score"`
	TotalPoints float64   `db:"total_points"`
	Passed      bool      `db:"passed"`
	Completion  string    `db:"completion"`
	CompletedAt time.Time `db:"completed_at"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
