package handler

import (
	"lms-quiz/internal/domain"
	"lms-quiz/internal/dto"
	"lms-quiz/internal/middleware"
	"lms-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler drives quiz sessions for the authenticated user.
type SessionHandler struct {
	sessions service.SessionService
	binder   *middleware.ValidationMiddleware
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(sessions service.SessionService, binder *middleware.ValidationMiddleware) *SessionHandler {
	return &SessionHandler{sessions: sessions, binder: binder}
}

func currentUser(c *fiber.Ctx) (string, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return "", domain.NewUnauthorizedError("user not authenticated")
	}
	return userID, nil
}

// CreateSession godoc
// @Summary Open a quiz session
// @Description Builds a quiz session for a module. available is false when the module has no quiz.
// @Tags sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateSessionRequest true "Module"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.CreateSessionRequest
	if err := h.binder.BindBody(c, &req); err != nil {
		return err
	}

	resp, err := h.sessions.Create(c.UserContext(), userID, req.ModuleID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetSession godoc
// @Summary Get a quiz session
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	resp, err := h.sessions.Get(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// StartSession godoc
// @Summary Start the quiz
// @Description Leaves the intro view and arms the timer when the quiz has one
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/start [post]
func (h *SessionHandler) StartSession(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	resp, err := h.sessions.Start(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// RecordAnswer godoc
// @Summary Record an answer
// @Description Sets the answer for one question. The answer is a string, an array of strings, or null to clear it.
// @Tags sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Param request body dto.RecordAnswerRequest true "Answer"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/answers [put]
func (h *SessionHandler) RecordAnswer(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.RecordAnswerRequest
	if err := h.binder.BindBody(c, &req); err != nil {
		return err
	}

	answer, err := domain.UnmarshalAnswer(req.Answer)
	if err != nil {
		return domain.NewInvalidInputError(err.Error())
	}
	if answer == nil {
		answer = domain.SingleAnswer("")
	}

	resp, err := h.sessions.RecordAnswer(c.UserContext(), userID, c.Params("id"), req.QuestionID, answer)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Navigate godoc
// @Summary Move between questions
// @Tags sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Param request body dto.NavigateRequest true "Direction"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/navigate [post]
func (h *SessionHandler) Navigate(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.NavigateRequest
	if err := h.binder.BindBody(c, &req); err != nil {
		return err
	}

	resp, err := h.sessions.Navigate(c.UserContext(), userID, c.Params("id"), service.Direction(req.Direction))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitSession godoc
// @Summary Submit the quiz
// @Description Grades the attempt. Only allowed from the last question.
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.AttemptResultResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/submit [post]
func (h *SessionHandler) SubmitSession(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	resp, err := h.sessions.Submit(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// RetakeSession godoc
// @Summary Retake the quiz
// @Description Discards the submitted attempt and starts a fresh one
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/retake [post]
func (h *SessionHandler) RetakeSession(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	resp, err := h.sessions.Retake(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetSessionResult godoc
// @Summary Get the graded result of a submitted session
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.AttemptResultResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/result [get]
func (h *SessionHandler) GetSessionResult(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	resp, err := h.sessions.Result(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteSession godoc
// @Summary Abandon a quiz session
// @Description Closes the session without recording the attempt
// @Tags sessions
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [delete]
func (h *SessionHandler) DeleteSession(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.sessions.Abandon(c.UserContext(), userID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
