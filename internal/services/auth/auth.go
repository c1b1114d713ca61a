// Package services содержит логику бизнес-уровня для работы с учетными записями:
// регистрацию с подтверждением почты, вход и восстановление пароля.
//
// Жизненный цикл учетной записи: Unregistered -> PendingVerification -> Verified.
// Сброс пароля — ортогональный подпоток, не меняющий это состояние.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/job-portal/internal/lib/jwt"
	"github.com/magabrotheeeer/job-portal/internal/lib/password"
	"github.com/magabrotheeeer/job-portal/internal/lib/token"
	"github.com/magabrotheeeer/job-portal/internal/models"
	"github.com/magabrotheeeer/job-portal/internal/storage/repository"
)

// Ошибки бизнес-уровня, по которым HTTP-слой выбирает статус ответа.
var (
	// ErrEmailTaken почта уже зарегистрирована.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials неверная почта или пароль. Сообщение одно для
	// обоих случаев, чтобы не раскрывать существование учетной записи.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotVerified вход до подтверждения почты.
	ErrNotVerified = errors.New("email is not verified")
	// ErrTokenInvalid одноразовый токен не найден, истек или уже использован.
	ErrTokenInvalid = errors.New("token is invalid or expired")
	// ErrUserNotFound пользователь с такой почтой не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailDelivery письмо не удалось отправить.
	ErrEmailDelivery = errors.New("failed to send email")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по почте или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ConsumeVerificationToken подтверждает почту и гасит токен атомарно.
	ConsumeVerificationToken(ctx context.Context, verificationToken string) (string, error)

	// SetResetToken записывает токен сброса пароля и срок его действия.
	SetResetToken(ctx context.Context, email, resetToken string, resetExpiry time.Time) error

	// ConsumeResetToken заменяет хэш пароля и гасит токен атомарно.
	ConsumeResetToken(ctx context.Context, resetToken, newPasswordHash string) error
}

// Sender описывает отправку служебных писем.
type Sender interface {
	SendVerificationEmail(email, verificationToken string) error
	SendResetPasswordEmail(email, resetToken string) error
}

// AuthService отвечает за регистрацию, подтверждение почты, вход и сброс пароля.
type AuthService struct {
	users           UserRepository
	sender          Sender
	jwtMaker        jwt.Maker
	verificationTTL time.Duration
	resetTTL        time.Duration
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, sender Sender, jwtMaker jwt.Maker,
	verificationTTL, resetTTL time.Duration) *AuthService {
	return &AuthService{
		users:           users,
		sender:          sender,
		jwtMaker:        jwtMaker,
		verificationTTL: verificationTTL,
		resetTTL:        resetTTL,
	}
}

// Signup создает неподтвержденного пользователя и отправляет письмо
// со ссылкой подтверждения.
//
// Уникальность почты проверяется ограничением хранилища, гонка двух
// одновременных регистраций разрешается там же. Если письмо отправить
// не удалось, запись не откатывается: вызов завершается ErrEmailDelivery,
// а учетная запись остается в состоянии PendingVerification.
func (s *AuthService) Signup(ctx context.Context, name, email, rawPassword string) error {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return err
	}

	verificationToken, err := token.New()
	if err != nil {
		return err
	}
	verificationExpiry := token.Expiry(s.verificationTTL)

	user := models.User{
		Name:               name,
		Email:              email,
		PasswordHash:       hashed,
		VerificationToken:  &verificationToken,
		VerificationExpiry: &verificationExpiry,
	}
	if _, err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return ErrEmailTaken
		}
		return err
	}

	if err := s.sender.SendVerificationEmail(email, verificationToken); err != nil {
		return fmt.Errorf("%w: %w", ErrEmailDelivery, err)
	}
	return nil
}

// VerifyEmail подтверждает почту по одноразовому токену.
//
// Токен гасится при первом успешном использовании, повторная активация
// той же ссылки возвращает ErrTokenInvalid.
func (s *AuthService) VerifyEmail(ctx context.Context, verificationToken string) error {
	if _, err := s.users.ConsumeVerificationToken(ctx, verificationToken); err != nil {
		if errors.Is(err, repository.ErrTokenInvalid) {
			return ErrTokenInvalid
		}
		return err
	}
	return nil
}

// Login проверяет учетные данные и выдает подписанный токен сессии.
//
// Неизвестная почта и неверный пароль дают одинаковую ошибку,
// неподтвержденная почта — отдельную.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.IsVerified {
		return "", nil, ErrNotVerified
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	sessionToken, err := s.jwtMaker.GenerateToken(user.UID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return sessionToken, user, nil
}

// ForgotPassword выдает пользователю одноразовый токен сброса пароля
// и отправляет письмо со ссылкой. Тело ответа токен не раскрывает.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	resetToken, err := token.New()
	if err != nil {
		return err
	}
	resetExpiry := token.Expiry(s.resetTTL)

	if err := s.users.SetResetToken(ctx, email, resetToken, resetExpiry); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.sender.SendResetPasswordEmail(email, resetToken); err != nil {
		return fmt.Errorf("%w: %w", ErrEmailDelivery, err)
	}
	return nil
}

// ResetPassword заменяет пароль по одноразовому токену сброса.
//
// Токен принимается только до истечения срока и гасится при первом
// успешном использовании.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.ConsumeResetToken(ctx, resetToken, hashed); err != nil {
		if errors.Is(err, repository.ErrTokenInvalid) {
			return ErrTokenInvalid
		}
		return err
	}
	return nil
}
