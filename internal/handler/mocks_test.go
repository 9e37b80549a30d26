package handler_test

import (
	"context"

	"lms-quiz/internal/domain"
	"lms-quiz/internal/dto"
	"lms-quiz/internal/handler"
	"lms-quiz/internal/middleware"
	"lms-quiz/internal/service"
	"lms-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// --- Manual Mocks ---

type MockCatalogService struct {
	LoadFunc          func(ctx context.Context) (service.LoadReport, error)
	QuizzesFunc       func(ctx context.Context, moduleID string) ([]*domain.Quiz, error)
	QuizForModuleFunc func(ctx context.Context, moduleID string) (*domain.Quiz, bool, error)
	CatalogFunc       func(ctx context.Context) ([]*domain.Quiz, error)
}

func (m *MockCatalogService) Load(ctx context.Context) (service.LoadReport, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	panic("MockCatalogService.LoadFunc not implemented")
}
func (m *MockCatalogService) Quizzes(ctx context.Context, moduleID string) ([]*domain.Quiz, error) {
	if m.QuizzesFunc != nil {
		return m.QuizzesFunc(ctx, moduleID)
	}
	panic("MockCatalogService.QuizzesFunc not implemented")
}
func (m *MockCatalogService) QuizForModule(ctx context.Context, moduleID string) (*domain.Quiz, bool, error) {
	if m.QuizForModuleFunc != nil {
		return m.QuizForModuleFunc(ctx, moduleID)
	}
	panic("MockCatalogService.QuizForModuleFunc not implemented")
}
func (m *MockCatalogService) Catalog(ctx context.Context) ([]*domain.Quiz, error) {
	if m.CatalogFunc != nil {
		return m.CatalogFunc(ctx)
	}
	panic("MockCatalogService.CatalogFunc not implemented")
}

type MockSessionService struct {
	CreateFunc       func(ctx context.Context, userID, moduleID string) (*dto.SessionResponse, error)
	GetFunc          func(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error)
	StartFunc        func(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error)
	RecordAnswerFunc func(ctx context.Context, userID, sessionID, questionID string, answer domain.Answer) (*dto.SessionResponse, error)
	NavigateFunc     func(ctx context.Context, userID, sessionID string, direction service.Direction) (*dto.SessionResponse, error)
	SubmitFunc       func(ctx context.Context, userID, sessionID string) (*dto.AttemptResultResponse, error)
	RetakeFunc       func(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error)
	ResultFunc       func(ctx context.Context, userID, sessionID string) (*dto.AttemptResultResponse, error)
	AbandonFunc      func(ctx context.Context, userID, sessionID string) error
}

func (m *MockSessionService) Create(ctx context.Context, userID, moduleID string) (*dto.SessionResponse, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, moduleID)
	}
	panic("MockSessionService.CreateFunc not implemented")
}
func (m *MockSessionService) Get(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, sessionID)
	}
	panic("MockSessionService.GetFunc not implemented")
}
func (m *MockSessionService) Start(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, userID, sessionID)
	}
	panic("MockSessionService.StartFunc not implemented")
}
func (m *MockSessionService) RecordAnswer(ctx context.Context, userID, sessionID, questionID string, answer domain.Answer) (*dto.SessionResponse, error) {
	if m.RecordAnswerFunc != nil {
		return m.RecordAnswerFunc(ctx, userID, sessionID, questionID, answer)
	}
	panic("MockSessionService.RecordAnswerFunc not implemented")
}
func (m *MockSessionService) Navigate(ctx context.Context, userID, sessionID string, direction service.Direction) (*dto.SessionResponse, error) {
	if m.NavigateFunc != nil {
		return m.NavigateFunc(ctx, userID, sessionID, direction)
	}
	panic("MockSessionService.NavigateFunc not implemented")
}
func (m *MockSessionService) Submit(ctx context.Context, userID, sessionID string) (*dto.AttemptResultResponse, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, userID, sessionID)
	}
	panic("MockSessionService.SubmitFunc not implemented")
}
func (m *MockSessionService) Retake(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error) {
	if m.RetakeFunc != nil {
		return m.RetakeFunc(ctx, userID, sessionID)
	}
	panic("MockSessionService.RetakeFunc not implemented")
}
func (m *MockSessionService) Result(ctx context.Context, userID, sessionID string) (*dto.AttemptResultResponse, error) {
	if m.ResultFunc != nil {
		return m.ResultFunc(ctx, userID, sessionID)
	}
	panic("MockSessionService.ResultFunc not implemented")
}
func (m *MockSessionService) Abandon(ctx context.Context, userID, sessionID string) error {
	if m.AbandonFunc != nil {
		return m.AbandonFunc(ctx, userID, sessionID)
	}
	panic("MockSessionService.AbandonFunc not implemented")
}
func (m *MockSessionService) Run(ctx context.Context) error { return nil }
func (m *MockSessionService) Shutdown()                     {}

type MockAttemptService struct {
	RecordAttemptFunc func(ctx context.Context, userID string, quiz *domain.Quiz, attempt domain.Attempt) (*dto.AttemptResultResponse, error)
	ListAttemptsFunc  func(ctx context.Context, userID string, pagination domain.Pagination) ([]domain.AttemptRecord, int, error)
	GetResultFunc     func(ctx context.Context, userID, attemptID string) (*dto.AttemptResultResponse, error)
}

func (m *MockAttemptService) RecordAttempt(ctx context.Context, userID string, quiz *domain.Quiz, attempt domain.Attempt) (*dto.AttemptResultResponse, error) {
	if m.RecordAttemptFunc != nil {
		return m.RecordAttemptFunc(ctx, userID, quiz, attempt)
	}
	panic("MockAttemptService.RecordAttemptFunc not implemented")
}
func (m *MockAttemptService) ListAttempts(ctx context.Context, userID string, pagination domain.Pagination) ([]domain.AttemptRecord, int, error) {
	if m.ListAttemptsFunc != nil {
		return m.ListAttemptsFunc(ctx, userID, pagination)
	}
	panic("MockAttemptService.ListAttemptsFunc not implemented")
}
func (m *MockAttemptService) GetResult(ctx context.Context, userID, attemptID string) (*dto.AttemptResultResponse, error) {
	if m.GetResultFunc != nil {
		return m.GetResultFunc(ctx, userID, attemptID)
	}
	panic("MockAttemptService.GetResultFunc not implemented")
}

// MockTokenValidator accepts adminToken as an admin and any other token as a
// learner.
type MockTokenValidator struct {
	Claims *dto.AuthClaims
	Admin  *dto.AuthClaims
	Err    error
}

func (m *MockTokenValidator) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if tokenString == adminToken && m.Admin != nil {
		return m.Admin, nil
	}
	return m.Claims, nil
}

const (
	testUserID  = "user-1"
	adminUserID = "ops-1"
	adminToken  = "admin-token"
)

// newTestApp mounts the real routes with mocks behind them. Requests carrying
// a bearer token authenticate as testUserID, or as adminUserID with adminToken.
func newTestApp(catalog *MockCatalogService, sessions *MockSessionService, attempts *MockAttemptService) *fiber.App {
	binder := middleware.NewValidationMiddleware(validation.NewValidator())
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.RegisterRoutes(app.Group("/api"), handler.Handlers{
		Quiz:       handler.NewQuizHandler(catalog, nil),
		Session:    handler.NewSessionHandler(sessions, binder),
		Attempt:    handler.NewAttemptHandler(attempts, binder),
		Validation: binder,
		Tokens:     &MockTokenValidator{
			Claims: &dto.AuthClaims{UserID: testUserID, TokenType: "access", Role: dto.RoleLearner},
			Admin:  &dto.AuthClaims{UserID: adminUserID, TokenType: "access", Role: dto.RoleAdmin},
		},
	})
	return app
}

func sampleQuiz() *domain.Quiz {
	return &domain.Quiz{
		ID:               "quiz-1",
		ModuleID:         "module-1",
		Title:            "Design Thinking Basics",
		PassingScore:     70,
		TimeLimitMinutes: 10,
		Questions: []domain.Question{
			{ID: "q1", Text: "Pick one", Kind: domain.KindMultipleChoice, Options: []string{"A", "B"}, Correct: domain.SingleAnswer("B"), Points: 10},
			{ID: "q2", Text: "First phase?", Kind: domain.KindShortAnswer, Correct: domain.SingleAnswer("Empathize"), Points: 5},
		},
	}
}
