package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	customjwt "github.com/magabrotheeeer/job-portal/internal/lib/jwt"
	"github.com/magabrotheeeer/job-portal/internal/lib/password"
	"github.com/magabrotheeeer/job-portal/internal/models"
	services "github.com/magabrotheeeer/job-portal/internal/services/auth"
	"github.com/magabrotheeeer/job-portal/internal/storage/repository"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) ConsumeVerificationToken(ctx context.Context, verificationToken string) (string, error) {
	args := m.Called(ctx, verificationToken)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) SetResetToken(ctx context.Context, email, resetToken string, resetExpiry time.Time) error {
	args := m.Called(ctx, email, resetToken, resetExpiry)
	return args.Error(0)
}

func (m *UserRepoMock) ConsumeResetToken(ctx context.Context, resetToken, newPasswordHash string) error {
	args := m.Called(ctx, resetToken, newPasswordHash)
	return args.Error(0)
}

// Мок для Sender
type SenderMock struct {
	mock.Mock
}

func (m *SenderMock) SendVerificationEmail(email, verificationToken string) error {
	args := m.Called(email, verificationToken)
	return args.Error(0)
}

func (m *SenderMock) SendResetPasswordEmail(email, resetToken string) error {
	args := m.Called(email, resetToken)
	return args.Error(0)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(userUID, email string) (string, error) {
	args := m.Called(userUID, email)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(tokenStr string) (*customjwt.CustomClaims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func newService(repo *UserRepoMock, sender *SenderMock, jwtMock *JwtMakerMock) *services.AuthService {
	return services.NewAuthService(repo, sender, jwtMock, 24*time.Hour, time.Hour)
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *UserRepoMock, s *SenderMock)
		wantErr    error
	}{
		{
			name: "successful signup",
			setupMocks: func(r *UserRepoMock, s *SenderMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "test@example.com" &&
						user.Name == "Test User" &&
						user.PasswordHash != "" &&
						user.PasswordHash != "password123" &&
						user.VerificationToken != nil &&
						len(*user.VerificationToken) == 64 &&
						user.VerificationExpiry != nil
				})).Return("some-uuid-string", nil).Once()
				s.On("SendVerificationEmail", "test@example.com", mock.Anything).Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "email already registered",
			setupMocks: func(r *UserRepoMock, s *SenderMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).
					Return("", repository.ErrUserExists).Once()
			},
			wantErr: services.ErrEmailTaken,
		},
		{
			name: "email delivery failure keeps account",
			setupMocks: func(r *UserRepoMock, s *SenderMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).
					Return("some-uuid-string", nil).Once()
				s.On("SendVerificationEmail", "test@example.com", mock.Anything).
					Return(errors.New("smtp connect failed")).Once()
			},
			wantErr: services.ErrEmailDelivery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			sender := new(SenderMock)
			jwtMock := new(JwtMakerMock)
			svc := newService(repo, sender, jwtMock)

			tt.setupMocks(repo, sender)

			err := svc.Signup(context.Background(), "Test User", "test@example.com", "password123")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
			sender.AssertExpectations(t)
		})
	}
}

func TestAuthService_VerifyEmail(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		setupMocks func(r *UserRepoMock)
		wantErr    error
	}{
		{
			name:  "successful verification",
			token: "valid-token",
			setupMocks: func(r *UserRepoMock) {
				r.On("ConsumeVerificationToken", mock.Anything, "valid-token").
					Return("some-uuid-string", nil).Once()
			},
			wantErr: nil,
		},
		{
			name:  "expired or already used token",
			token: "used-token",
			setupMocks: func(r *UserRepoMock) {
				r.On("ConsumeVerificationToken", mock.Anything, "used-token").
					Return("", repository.ErrTokenInvalid).Once()
			},
			wantErr: services.ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			svc := newService(repo, new(SenderMock), new(JwtMakerMock))

			tt.setupMocks(repo)

			err := svc.VerifyEmail(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	rawPassword := "correctpassword"
	hashed, err := password.GetHash(rawPassword)
	assert.NoError(t, err)

	verifiedUser := &models.User{
		UID:          "some-uuid-string",
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: hashed,
		IsVerified:   true,
	}
	unverifiedUser := &models.User{
		UID:          "other-uuid-string",
		Email:        "pending@example.com",
		PasswordHash: hashed,
		IsVerified:   false,
	}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantToken  string
		wantErr    error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").
					Return(verifiedUser, nil).Once()
				j.On("GenerateToken", "some-uuid-string", "test@example.com").
					Return("signed-token", nil).Once()
			},
			wantToken: "signed-token",
			wantErr:   nil,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "nobody@example.com").
					Return(nil, repository.ErrUserNotFound).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrongpassword",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").
					Return(verifiedUser, nil).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "unverified email checked before password",
			email:    "pending@example.com",
			password: "wrongpassword",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "pending@example.com").
					Return(unverifiedUser, nil).Once()
			},
			wantErr: services.ErrNotVerified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			svc := newService(repo, new(SenderMock), jwtMock)

			tt.setupMocks(repo, jwtMock)

			token, user, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				assert.Equal(t, tt.email, user.Email)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

// Неизвестная почта и неверный пароль возвращают одну и ту же ошибку.
func TestAuthService_LoginErrorParity(t *testing.T) {
	rawPassword := "correctpassword"
	hashed, err := password.GetHash(rawPassword)
	assert.NoError(t, err)

	repo := new(UserRepoMock)
	repo.On("GetUserByEmail", mock.Anything, "nobody@example.com").
		Return(nil, repository.ErrUserNotFound).Once()
	repo.On("GetUserByEmail", mock.Anything, "test@example.com").
		Return(&models.User{
			UID:          "some-uuid-string",
			Email:        "test@example.com",
			PasswordHash: hashed,
			IsVerified:   true,
		}, nil).Once()

	svc := newService(repo, new(SenderMock), new(JwtMakerMock))

	_, _, errUnknown := svc.Login(context.Background(), "nobody@example.com", rawPassword)
	_, _, errWrongPass := svc.Login(context.Background(), "test@example.com", "wrongpassword")

	assert.ErrorIs(t, errUnknown, services.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, services.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())

	repo.AssertExpectations(t)
}

func TestAuthService_ForgotPassword(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		setupMocks func(r *UserRepoMock, s *SenderMock)
		wantErr    error
	}{
		{
			name:  "successful request",
			email: "test@example.com",
			setupMocks: func(r *UserRepoMock, s *SenderMock) {
				r.On("SetResetToken", mock.Anything, "test@example.com",
					mock.MatchedBy(func(token string) bool { return len(token) == 64 }),
					mock.MatchedBy(func(expiry time.Time) bool { return expiry.After(time.Now().UTC()) }),
				).Return(nil).Once()
				s.On("SendResetPasswordEmail", "test@example.com", mock.Anything).Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name:  "unknown email",
			email: "nobody@example.com",
			setupMocks: func(r *UserRepoMock, s *SenderMock) {
				r.On("SetResetToken", mock.Anything, "nobody@example.com", mock.Anything, mock.Anything).
					Return(repository.ErrUserNotFound).Once()
			},
			wantErr: services.ErrUserNotFound,
		},
		{
			name:  "email delivery failure",
			email: "test@example.com",
			setupMocks: func(r *UserRepoMock, s *SenderMock) {
				r.On("SetResetToken", mock.Anything, "test@example.com", mock.Anything, mock.Anything).
					Return(nil).Once()
				s.On("SendResetPasswordEmail", "test@example.com", mock.Anything).
					Return(errors.New("smtp connect failed")).Once()
			},
			wantErr: services.ErrEmailDelivery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			sender := new(SenderMock)
			svc := newService(repo, sender, new(JwtMakerMock))

			tt.setupMocks(repo, sender)

			err := svc.ForgotPassword(context.Background(), tt.email)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
			sender.AssertExpectations(t)
		})
	}
}

func TestAuthService_ResetPassword(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		setupMocks func(r *UserRepoMock)
		wantErr    error
	}{
		{
			name:  "successful reset stores new hash",
			token: "valid-token",
			setupMocks: func(r *UserRepoMock) {
				r.On("ConsumeResetToken", mock.Anything, "valid-token",
					mock.MatchedBy(func(hash string) bool {
						return hash != "" && password.CompareHash(hash, "newpassword") == nil
					}),
				).Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name:  "expired or already used token",
			token: "used-token",
			setupMocks: func(r *UserRepoMock) {
				r.On("ConsumeResetToken", mock.Anything, "used-token", mock.Anything).
					Return(repository.ErrTokenInvalid).Once()
			},
			wantErr: services.ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			svc := newService(repo, new(SenderMock), new(JwtMakerMock))

			tt.setupMocks(repo)

			err := svc.ResetPassword(context.Background(), tt.token, "newpassword")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
		})
	}
}
