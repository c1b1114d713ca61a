package get

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/job-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/job-portal/internal/models"
	"github.com/magabrotheeeer/job-portal/internal/storage/repository"
)

type ProfileServiceMock struct {
	mock.Mock
}

func (m *ProfileServiceMock) Get(ctx context.Context, userUID string) (*models.PublicProfile, error) {
	args := m.Called(ctx, userUID)
	profile, _ := args.Get(0).(*models.PublicProfile)
	return profile, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestGetHandler_ServeHTTP(t *testing.T) {
	profile := &models.PublicProfile{
		UID:        "some-uuid-string",
		Name:       "Test User",
		Email:      "test@example.com",
		IsVerified: true,
	}

	tests := []struct {
		name           string
		ctxUID         any
		mockProfile    *models.PublicProfile
		mockErr        error
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "existing profile",
			ctxUID:         "some-uuid-string",
			mockProfile:    profile,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing uid in context",
			ctxUID:         nil,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
		},
		{
			name:           "user not found",
			ctxUID:         "missing-uuid-string",
			mockErr:        repository.ErrUserNotFound,
			wantStatusCode: http.StatusNotFound,
			wantError:      "user not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ProfileServiceMock)
			handler := New(newNoopLogger(), serviceMock)

			if tt.mockProfile != nil || tt.mockErr != nil {
				serviceMock.On("Get", mock.Anything, tt.ctxUID.(string)).
					Return(tt.mockProfile, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
			if tt.ctxUID != nil {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, tt.ctxUID))
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var resp map[string]any
			err := json.Unmarshal(rec.Body.Bytes(), &resp)
			assert.NoError(t, err)
			if tt.wantError != "" {
				assert.Contains(t, resp["error"], tt.wantError)
			} else {
				data := resp["data"].(map[string]any)
				assert.Equal(t, "Test User", data["name"])
				// Хэш пароля и токены наружу не отдаются
				assert.NotContains(t, data, "passwordHash")
				assert.NotContains(t, data, "verificationToken")
				assert.NotContains(t, data, "resetToken")
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
