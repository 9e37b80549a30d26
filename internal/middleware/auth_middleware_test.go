package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"lms-quiz/internal/domain"
	"lms-quiz/internal/dto"
	"lms-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ManualMockTokenValidator struct {
	ValidateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *ManualMockTokenValidator) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	return nil, errors.New("ValidateJWTFunc not set on mock")
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		validate       func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
		expectedStatus int
		expectedCode   string
		expectedUserID string
	}{
		{
			name:           "Missing header",
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "MISSING_AUTH_HEADER",
		},
		{
			name:           "Wrong scheme",
			authHeader:     "Basic abc",
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "INVALID_AUTH_SCHEME",
		},
		{
			name:           "Empty token",
			authHeader:     "Bearer ",
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "EMPTY_TOKEN",
		},
		{
			name:       "Invalid token",
			authHeader: "Bearer broken",
			validate: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
				return nil, errors.New("signature is invalid")
			},
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "INVALID_TOKEN",
		},
		{
			name:       "Refresh token rejected",
			authHeader: "Bearer refresh",
			validate: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
				return &dto.AuthClaims{UserID: "user123", TokenType: "refresh"}, nil
			},
			expectedStatus: fiber.StatusForbidden,
			expectedCode:   "INVALID_TOKEN_TYPE",
		},
		{
			name:       "Valid access token",
			authHeader: "Bearer good",
			validate: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
				assert.Equal(t, "good", tokenString)
				return &dto.AuthClaims{UserID: "user123", TokenType: "access"}, nil
			},
			expectedStatus: fiber.StatusOK,
			expectedUserID: "user123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &ManualMockTokenValidator{ValidateJWTFunc: tt.validate}

			app := fiber.New()
			app.Get("/protected", middleware.Protected(mockSvc), func(c *fiber.Ctx) error {
				userID, ok := middleware.UserID(c)
				require.True(t, ok)
				return c.SendString(userID)
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set(middleware.AuthorizationHeader, tt.authHeader)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			if tt.expectedStatus == fiber.StatusOK {
				assert.Equal(t, tt.expectedUserID, string(body))
				return
			}
			var errResp middleware.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &errResp))
			assert.Equal(t, tt.expectedCode, errResp.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name           string
		role           string
		expectedStatus int
	}{
		{"Admin allowed", dto.RoleAdmin, fiber.StatusOK},
		{"Learner forbidden", dto.RoleLearner, fiber.StatusForbidden},
		{"No role forbidden", "", fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &ManualMockTokenValidator{
				ValidateJWTFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
					return &dto.AuthClaims{UserID: "user123", TokenType: "access", Role: tt.role}, nil
				},
			}

			app := fiber.New()
			app.Post("/admin", middleware.Protected(mockSvc), middleware.RequireRole(dto.RoleAdmin), func(c *fiber.Ctx) error {
				return c.SendString("reloaded")
			})

			req := httptest.NewRequest("POST", "/admin", nil)
			req.Header.Set(middleware.AuthorizationHeader, "Bearer good")
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus != fiber.StatusOK {
				var errResp middleware.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
				assert.Equal(t, "INSUFFICIENT_ROLE", errResp.Code)
			}
		})
	}
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"Session not found", domain.NewSessionNotFoundError("s1"), fiber.StatusNotFound, string(domain.CodeSessionNotFound)},
		{"Invalid state", domain.NewInvalidStateError("not started"), fiber.StatusConflict, string(domain.CodeInvalidState)},
		{"Invalid input", domain.NewInvalidInputError("bad"), fiber.StatusBadRequest, string(domain.CodeInvalidInput)},
		{"Validation", domain.ValidationErrors{domain.NewFieldError("moduleId", "required")}, fiber.StatusBadRequest, string(domain.CodeValidation)},
		{"Fiber error", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed, "HTTP_ERROR"},
		{"Unknown", errors.New("boom"), fiber.StatusInternalServerError, string(domain.CodeInternal)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
			app.Get("/fail", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.expectedCode, body["code"])
		})
	}
}
