package handler

import (
	"lms-quiz/internal/domain"
	"lms-quiz/internal/dto"
	"lms-quiz/internal/logger"
	"lms-quiz/internal/middleware"
	"lms-quiz/internal/service"
	"lms-quiz/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const defaultAttemptsLimit = 10

type AttemptHandler struct {
	attempts service.AttemptService
	binder   *middleware.ValidationMiddleware
}

func NewAttemptHandler(attempts service.AttemptService, binder *middleware.ValidationMiddleware) *AttemptHandler {
	return &AttemptHandler{attempts: attempts, binder: binder}
}

// GetMyAttempts retrieves the quiz attempt history of the authenticated user.
// @Summary Get My Quiz Attempts
// @Description Retrieves the recorded quiz attempts of the logged-in user, newest first.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Items per page" default(10)
// @Param offset query int false "Items to skip" default(0)
// @Success 200 {object} dto.UserQuizAttemptsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /users/me/attempts [get]
func (h *AttemptHandler) GetMyAttempts(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var pagination dto.Pagination
	if err := h.binder.BindQuery(c, &pagination); err != nil {
		return err
	}
	if pagination.Limit == 0 {
		pagination.Limit = defaultAttemptsLimit
	}

	records, total, err := h.attempts.ListAttempts(c.UserContext(), userID, domain.Pagination{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
	if err != nil {
		return err
	}

	resp := dto.UserQuizAttemptsResponse{
		Attempts: make([]dto.UserQuizAttemptItem, 0, len(records)),
		PaginationInfo: dto.PaginationInfo{
			TotalItems: total,
			Limit:      pagination.Limit,
			Offset:     pagination.Offset,
		},
	}
	for _, rec := range records {
		resp.Attempts = append(resp.Attempts, dto.ToAttemptItem(rec))
	}

	logger.Get().Debug("User attempts retrieved", zap.String("userID", userID), zap.Int("count", len(records)))
	return c.JSON(resp)
}

// GetAttemptResult returns a recently completed attempt's graded result.
// @Summary Get Attempt Result
// @Description Returns the graded result of an attempt while it is still cached.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResultResponse
// @Failure 400 {object} middleware.ErrorResponse "Malformed attempt id"
// @Failure 404 {object} middleware.ErrorResponse "Result not found or expired"
// @Router /attempts/{id}/result [get]
func (h *AttemptHandler) GetAttemptResult(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	attemptID := c.Params("id")
	if !util.IsULID(attemptID) {
		return domain.NewInvalidInputError("attempt id is not a valid ULID")
	}
	resp, err := h.attempts.GetResult(c.UserContext(), userID, attemptID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
