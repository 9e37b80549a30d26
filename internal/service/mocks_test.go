package service

import (
	"context"
	"time"

	"lms-quiz/internal/domain"
	"lms-quiz/internal/dto"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizCatalog ---
type MockQuizCatalog struct {
	mock.Mock
}

func (m *MockQuizCatalog) LoadQuizCatalog(ctx context.Context) ([]*domain.Quiz, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Quiz), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockAttemptRepository ---
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) UpsertAttempt(ctx context.Context, record *domain.AttemptRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetAttemptsByUserID(ctx context.Context, userID string, pagination domain.Pagination) ([]domain.AttemptRecord, int, error) {
	args := m.Called(ctx, userID, pagination)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.AttemptRecord), args.Int(1), args.Error(2)
}

func (m *MockAttemptRepository) GetAttempt(ctx context.Context, userID, quizID string) (*domain.AttemptRecord, error) {
	args := m.Called(ctx, userID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AttemptRecord), args.Error(1)
}

// --- MockEventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// --- MockFeedbackAdvisor ---
type MockFeedbackAdvisor struct {
	mock.Mock
}

func (m *MockFeedbackAdvisor) Feedback(ctx context.Context, question *domain.Question, answer string) (string, error) {
	args := m.Called(ctx, question, answer)
	return args.String(0), args.Error(1)
}

// --- MockCatalogService ---
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Load(ctx context.Context) (LoadReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(LoadReport), args.Error(1)
}

func (m *MockCatalogService) Quizzes(ctx context.Context, moduleID string) ([]*domain.Quiz, error) {
	args := m.Called(ctx, moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Quiz), args.Error(1)
}

func (m *MockCatalogService) QuizForModule(ctx context.Context, moduleID string) (*domain.Quiz, bool, error) {
	args := m.Called(ctx, moduleID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Quiz), args.Bool(1), args.Error(2)
}

func (m *MockCatalogService) Catalog(ctx context.Context) ([]*domain.Quiz, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Quiz), args.Error(1)
}

// --- MockAttemptService ---
type MockAttemptService struct {
	mock.Mock
}

func (m *MockAttemptService) RecordAttempt(ctx context.Context, userID string, quiz *domain.Quiz, attempt domain.Attempt) (*dto.AttemptResultResponse, error) {
	args := m.Called(ctx, userID, quiz, attempt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AttemptResultResponse), args.Error(1)
}

func (m *MockAttemptService) ListAttempts(ctx context.Context, userID string, pagination domain.Pagination) ([]domain.AttemptRecord, int, error) {
	args := m.Called(ctx, userID, pagination)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.AttemptRecord), args.Int(1), args.Error(2)
}

func (m *MockAttemptService) GetResult(ctx context.Context, userID, attemptID string) (*dto.AttemptResultResponse, error) {
	args := m.Called(ctx, userID, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AttemptResultResponse), args.Error(1)
}

func testQuiz(id, moduleID string, timeLimit int) *domain.Quiz {
	return &domain.Quiz{
		ID:               id,
		ModuleID:         moduleID,
		Title:            "Quiz " + id,
		PassingScore:     70,
		TimeLimitMinutes: timeLimit,
		Questions: []domain.Question{
			{ID: "q1", Text: "Pick B", Kind: domain.KindMultipleChoice, Options: []string{"A", "B", "C"}, Correct: domain.SingleAnswer("B"), Points: 10},
			{ID: "q2", Text: "Name the first stage", Kind: domain.KindShortAnswer, Correct: domain.SingleAnswer("Empathize"), Explanation: "Design thinking starts with empathy", Points: 5},
		},
	}
}
