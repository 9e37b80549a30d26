package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in AuthClaims.Role. A token without a role is a learner.
const (
	RoleLearner = "learner"
	RoleAdmin   = "admin"
)

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"` // "access" only; refresh flows are not served here
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Message string `json:"message"`
}

// --- Pagination DTOs ---

// Pagination defines parameters for paginated requests.
// These are typically query parameters.
type Pagination struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// PaginationInfo defines pagination details for responses.
type PaginationInfo struct {
	TotalItems int `json:"total_items"`
	Limit      int `json:"limit"`
	Offset     int `json:"offset"`
}

// --- User Quiz Attempts DTOs ---

// UserQuizAttemptItem represents a single quiz attempt in a list.
type UserQuizAttemptItem struct {
	AttemptID   string    `json:"attempt_id"`
	QuizID      string    `json:"quiz_id"`
	Score       float64   `json:"score"`
	TotalPoints float64   `json:"total_points"`
	Percentage  int       `json:"percentage"`
	Passed      bool      `json:"passed"`
	Completion  string    `json:"completion"`
	CompletedAt time.Time `json:"completed_at"`
}

// UserQuizAttemptsResponse is the response for listing user quiz attempts.
type UserQuizAttemptsResponse struct {
	Attempts       []UserQuizAttemptItem `json:"attempts"`
	PaginationInfo PaginationInfo        `json:"pagination_info"`
}
