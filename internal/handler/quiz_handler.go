package handler

import (
	"context"
	"time"

	"lms-quiz/internal/dto"
	"lms-quiz/internal/logger"
	"lms-quiz/internal/middleware"
	"lms-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

const healthCheckTimeout = 2 * time.Second

// QuizHandler handles catalog HTTP requests
type QuizHandler struct {
	catalog service.CatalogService
	checks  map[string]HealthCheck
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(catalog service.CatalogService, checks map[string]HealthCheck) *QuizHandler {
	return &QuizHandler{
		catalog: catalog,
		checks:  checks,
	}
}

// Health godoc
// @Summary Service health
// @Description Reports the status of the database and cache connections
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *QuizHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			logger.Get().Warn("Health check failed", zap.String("check", name), zap.Error(err))
			resp.Checks[name] = "down"
			resp.Status = "degraded"
			continue
		}
		resp.Checks[name] = "up"
	}

	if resp.Status != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}

// ListQuizzes godoc
// @Summary List quizzes
// @Description Returns every quiz in the catalog, optionally filtered by module
// @Tags quiz
// @Produce json
// @Param module_id query string false "Module ID"
// @Success 200 {object} dto.QuizListResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.catalog.Quizzes(c.UserContext(), c.Query("module_id"))
	if err != nil {
		return err
	}

	resp := dto.QuizListResponse{Quizzes: make([]dto.QuizSummaryResponse, 0, len(quizzes))}
	for _, q := range quizzes {
		resp.Quizzes = append(resp.Quizzes, dto.ToQuizSummary(q))
	}
	return c.JSON(resp)
}

// GetModuleQuiz godoc
// @Summary Get the quiz for a module
// @Description Returns the module's quiz, or available=false when the module has none
// @Tags quiz
// @Produce json
// @Param moduleId path string true "Module ID"
// @Success 200 {object} dto.ModuleQuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /modules/{moduleId}/quiz [get]
func (h *QuizHandler) GetModuleQuiz(c *fiber.Ctx) error {
	moduleID, _ := c.Locals(middleware.ValidatedModuleIDKey).(string)
	if moduleID == "" {
		moduleID = c.Params("moduleId")
	}

	quiz, ok, err := h.catalog.QuizForModule(c.UserContext(), moduleID)
	if err != nil {
		return err
	}

	resp := dto.ModuleQuizResponse{Available: ok, ModuleID: moduleID}
	if ok {
		summary := dto.ToQuizSummary(quiz)
		resp.Quiz = &summary
	}
	return c.JSON(resp)
}

// ReloadCatalog godoc
// @Summary Reload the quiz catalog
// @Description Re-reads the catalog source and replaces the cached catalog. Requires the admin role.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.CatalogReloadResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse "Admin role required"
// @Failure 422 {object} middleware.ErrorResponse
// @Router /admin/catalog/reload [post]
func (h *QuizHandler) ReloadCatalog(c *fiber.Ctx) error {
	report, err := h.catalog.Load(c.UserContext())
	if err != nil {
		return err
	}

	userID, _ := middleware.UserID(c)
	logger.Get().Info("Catalog reloaded",
		zap.String("user_id", userID),
		zap.Int("loaded", report.Loaded),
		zap.Strings("rejected", report.Rejected),
	)
	return c.JSON(dto.CatalogReloadResponse{Loaded: report.Loaded, Rejected: report.Rejected})
}
