package resetpassword

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authservice "github.com/magabrotheeeer/job-portal/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ResetPassword(ctx context.Context, token, password string) error {
	args := m.Called(ctx, token, password)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestResetPasswordHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockErr        error
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "valid reset",
			requestBody:    Request{Token: "valid-token", Password: "newpassword"},
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - missing token",
			requestBody:    Request{Password: "newpassword"},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field Token is a required field",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - short password",
			requestBody:    Request{Token: "valid-token", Password: "123"},
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
		},
		{
			name:           "expired or already used token",
			requestBody:    Request{Token: "used-token", Password: "newpassword"},
			mockErr:        authservice.ErrTokenInvalid,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid or expired token",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(AuthServiceMock)
			handler := New(newNoopLogger(), serviceMock)

			if req, ok := tt.requestBody.(Request); ok &&
				req.Token != "" && len(req.Password) >= 6 {
				serviceMock.On("ResetPassword", mock.Anything, req.Token, req.Password).
					Return(tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/reset-password", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var resp map[string]any
			err = json.Unmarshal(rec.Body.Bytes(), &resp)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp["status"])
			if tt.wantError != "" {
				assert.Contains(t, resp["error"], tt.wantError)
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
