package handler

import (
	"lms-quiz/internal/dto"
	"lms-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles everything RegisterRoutes mounts.
type Handlers struct {
	Quiz       *QuizHandler
	Session    *SessionHandler
	Attempt    *AttemptHandler
	Validation *middleware.ValidationMiddleware
	Tokens     middleware.TokenValidator
}

// RegisterRoutes mounts the API under router, usually the /api group.
func RegisterRoutes(router fiber.Router, h Handlers) {
	protected := middleware.Protected(h.Tokens)

	router.Get("/health", h.Quiz.Health)
	router.Get("/quizzes", h.Quiz.ListQuizzes)
	router.Get("/modules/:moduleId/quiz", h.Validation.ValidateModuleID(), h.Quiz.GetModuleQuiz)

	sessions := router.Group("/sessions", protected)
	sessions.Post("/", h.Session.CreateSession)
	sessions.Get("/:id", h.Session.GetSession)
	sessions.Delete("/:id", h.Session.DeleteSession)
	sessions.Post("/:id/start", h.Session.StartSession)
	sessions.Put("/:id/answers", h.Session.RecordAnswer)
	sessions.Post("/:id/navigate", h.Session.Navigate)
	sessions.Post("/:id/submit", h.Session.SubmitSession)
	sessions.Post("/:id/retake", h.Session.RetakeSession)
	sessions.Get("/:id/result", h.Session.GetSessionResult)

	router.Get("/users/me/attempts", protected, h.Attempt.GetMyAttempts)
	router.Get("/attempts/:id/result", protected, h.Attempt.GetAttemptResult)

	router.Post("/admin/catalog/reload", protected, middleware.RequireRole(dto.RoleAdmin), h.Quiz.ReloadCatalog)
}
