package handler_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"lms-quiz/internal/domain"
	"lms-quiz/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttemptHandler_GetMyAttempts(t *testing.T) {
	completedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Paginated history", func(t *testing.T) {
		attempts := &MockAttemptService{
			ListAttemptsFunc: func(ctx context.Context, userID string, pagination domain.Pagination) ([]domain.AttemptRecord, int, error) {
				assert.Equal(t, testUserID, userID)
				assert.Equal(t, domain.Pagination{Limit: 5, Offset: 5}, pagination)
				return []domain.AttemptRecord{{
					Attempt: domain.Attempt{
						ID:          "a1",
						QuizID:      "quiz-1",
						Score:       10,
						TotalPoints: 15,
						Completion:  domain.CompletionTimedOut,
						CompletedAt: completedAt,
					},
					UserID: userID,
				}}, 6, nil
			},
		}
		app := newTestApp(&MockCatalogService{}, &MockSessionService{}, attempts)

		resp, err := app.Test(authed("GET", "/api/users/me/attempts?limit=5&offset=5", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body dto.UserQuizAttemptsResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body.Attempts, 1)
		assert.Equal(t, "a1", body.Attempts[0].AttemptID)
		assert.Equal(t, "timed_out", body.Attempts[0].Completion)
		assert.Equal(t, 6, body.PaginationInfo.TotalItems)
	})

	t.Run("Default limit", func(t *testing.T) {
		attempts := &MockAttemptService{
			ListAttemptsFunc: func(ctx context.Context, userID string, pagination domain.Pagination) ([]domain.AttemptRecord, int, error) {
				assert.Equal(t, 10, pagination.Limit)
				return nil, 0, nil
			},
		}
		app := newTestApp(&MockCatalogService{}, &MockSessionService{}, attempts)

		resp, err := app.Test(authed("GET", "/api/users/me/attempts", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body dto.UserQuizAttemptsResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Empty(t, body.Attempts)
	})

	t.Run("Limit out of range", func(t *testing.T) {
		app := newTestApp(&MockCatalogService{}, &MockSessionService{}, &MockAttemptService{})

		resp, err := app.Test(authed("GET", "/api/users/me/attempts?limit=500", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestAttemptHandler_GetAttemptResult(t *testing.T) {
	const (
		knownID   = "01HGZ8VNRYXS8QKNJV5GRWPWDQ"
		expiredID = "01HGZ8VNRYXS8QKNJV5GRWPWDR"
	)
	attempts := &MockAttemptService{
		GetResultFunc: func(ctx context.Context, userID, attemptID string) (*dto.AttemptResultResponse, error) {
			if attemptID == knownID {
				return &dto.AttemptResultResponse{AttemptID: knownID, Percentage: 100, Passed: true}, nil
			}
			return nil, domain.NewResultNotFoundError(attemptID)
		},
	}
	app := newTestApp(&MockCatalogService{}, &MockSessionService{}, attempts)

	resp, err := app.Test(authed("GET", "/api/attempts/"+knownID+"/result", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(authed("GET", "/api/attempts/"+expiredID+"/result", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(authed("GET", "/api/attempts/not-a-ulid/result", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
