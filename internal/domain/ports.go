package domain

import (
	"context"
	"time"
)

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when a key is not found in the cache.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is the port for the key/value cache (Redis in production).
type Cache interface {
	// Get returns ErrCacheMiss if the key is not found.
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites any existing value. An expiration of 0 keeps the item indefinitely.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete does not fail when the key is absent.
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

// QuizCatalog supplies the quizzes known to the system. Implementations read
// from files or the database and return unvalidated quizzes.
type QuizCatalog interface {
	LoadQuizCatalog(ctx context.Context) ([]*Quiz, error)
}

// QuizWriter stores quizzes; used by the seeding command.
type QuizWriter interface {
	SaveQuiz(ctx context.Context, quiz *Quiz) error
}

// TransactionManager runs fn inside a database transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Event types published on the message bus.
const (
	EventAttemptCompleted = "quiz.attempt.completed"
)

// EventPublisher emits integration events to other services.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
	Close() error
}

// FeedbackAdvisor produces advisory commentary for a free-text answer. It never
// changes the score.
type FeedbackAdvisor interface {
	Feedback(ctx context.Context, question *Question, answer string) (string, error)
}
