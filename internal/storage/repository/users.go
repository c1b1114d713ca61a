package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/job-portal/internal/models"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникального ограничения.
const uniqueViolation = "23505"

const userColumns = `uid, name, email, password_hash, is_verified,
			      verification_token, verification_expiry, reset_token, reset_expiry,
			      profile_image, about, skills, basic_information, experiences, educations,
			      created_at, updated_at`

// CreateUser сохраняет нового неподтвержденного пользователя и возвращает его UID.
//
// Уникальность почты обеспечивается ограничением базы, а не предварительной
// проверкой: гонка двух одновременных регистраций разрешается хранилищем.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (name, email, password_hash, verification_token, verification_expiry)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash,
		user.VerificationToken, user.VerificationExpiry).Scan(&newUID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по его почте.
//
// Сравнение точное, без нормализации регистра.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByUID возвращает пользователя по его UID, включая поля анкеты.
func (s *Storage) GetUserByUID(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUserByUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ConsumeVerificationToken отмечает пользователя подтвержденным и очищает
// токен подтверждения одним атомарным запросом. Возвращает UID пользователя.
//
// Токен принимается только с будущим сроком действия, повторное использование
// уже потребленного токена возвращает ErrTokenInvalid.
func (s *Storage) ConsumeVerificationToken(ctx context.Context, verificationToken string) (string, error) {
	const op = "storage.ConsumeVerificationToken"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_verified = TRUE,
			      verification_token = NULL,
			      verification_expiry = NULL,
			      updated_at = now()
			  WHERE verification_token = $1 AND verification_expiry > now()
			  RETURNING uid;`
	var userUID string
	if err := s.DB.QueryRowContext(ctx, query, verificationToken).Scan(&userUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", op, ErrTokenInvalid)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return userUID, nil
}

// SetResetToken записывает пользователю токен сброса пароля и срок его действия.
func (s *Storage) SetResetToken(ctx context.Context, email, resetToken string, resetExpiry time.Time) error {
	const op = "storage.SetResetToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET reset_token = $2,
			      reset_expiry = $3,
			      updated_at = now()
			  WHERE email = $1
			  RETURNING uid;`
	var userUID string
	if err := s.DB.QueryRowContext(ctx, query, email, resetToken, resetExpiry).Scan(&userUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ConsumeResetToken заменяет хэш пароля и очищает токен сброса одним
// атомарным запросом. Токен принимается только с будущим сроком действия.
func (s *Storage) ConsumeResetToken(ctx context.Context, resetToken, newPasswordHash string) error {
	const op = "storage.ConsumeResetToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_hash = $2,
			      reset_token = NULL,
			      reset_expiry = NULL,
			      updated_at = now()
			  WHERE reset_token = $1 AND reset_expiry > now()
			  RETURNING uid;`
	var userUID string
	if err := s.DB.QueryRowContext(ctx, query, resetToken, newPasswordHash).Scan(&userUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, ErrTokenInvalid)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateProfile частично обновляет поля анкеты пользователя и возвращает
// обновленную запись. Поля пароля и токенов этим методом не изменяются.
func (s *Storage) UpdateProfile(ctx context.Context, userUID string, entry models.UpdateProfileEntry) (*models.User, error) {
	const op = "storage.UpdateProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	skills, err := marshalNullable(entry.Skills)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	basicInformation, err := marshalNullable(entry.BasicInformation)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	experiences, err := marshalNullable(entry.Experiences)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	educations, err := marshalNullable(entry.Educations)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE users
			  SET name = COALESCE($2, name),
			      profile_image = COALESCE($3, profile_image),
			      about = COALESCE($4, about),
			      skills = COALESCE($5, skills),
			      basic_information = COALESCE($6, basic_information),
			      experiences = COALESCE($7, experiences),
			      educations = COALESCE($8, educations),
			      updated_at = now()
			  WHERE uid = $1
			  RETURNING ` + userColumns + `;`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID,
		entry.Name, entry.ProfileImage, entry.About,
		skills, basicInformation, experiences, educations))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser читает полную запись пользователя в порядке userColumns.
func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}

	var verificationToken, resetToken, profileImage, about sql.NullString
	var verificationExpiry, resetExpiry sql.NullTime
	var skills, basicInformation, experiences, educations []byte

	if err := row.Scan(&u.UID, &u.Name, &u.Email, &u.PasswordHash, &u.IsVerified,
		&verificationToken, &verificationExpiry, &resetToken, &resetExpiry,
		&profileImage, &about, &skills, &basicInformation, &experiences, &educations,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}

	if verificationToken.Valid {
		u.VerificationToken = &verificationToken.String
	}
	if verificationExpiry.Valid {
		u.VerificationExpiry = &verificationExpiry.Time
	}
	if resetToken.Valid {
		u.ResetToken = &resetToken.String
	}
	if resetExpiry.Valid {
		u.ResetExpiry = &resetExpiry.Time
	}
	if profileImage.Valid {
		u.ProfileImage = &profileImage.String
	}
	if about.Valid {
		u.About = &about.String
	}

	if err := unmarshalNullable(skills, &u.Skills); err != nil {
		return nil, err
	}
	if err := unmarshalNullable(basicInformation, &u.BasicInformation); err != nil {
		return nil, err
	}
	if err := unmarshalNullable(experiences, &u.Experiences); err != nil {
		return nil, err
	}
	if err := unmarshalNullable(educations, &u.Educations); err != nil {
		return nil, err
	}
	return u, nil
}

// marshalNullable сериализует значение в JSONB, nil-срез превращается в SQL NULL.
func marshalNullable(v any) (any, error) {
	switch val := v.(type) {
	case []string:
		if val == nil {
			return nil, nil
		}
	case []models.BasicInformation:
		if val == nil {
			return nil, nil
		}
	case []models.Experience:
		if val == nil {
			return nil, nil
		}
	case []models.Education:
		if val == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

// unmarshalNullable десериализует JSONB колонку, NULL оставляет nil-срез.
func unmarshalNullable(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
