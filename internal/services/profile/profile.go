// Package services содержит бизнес-логику анкеты пользователя.
//
// Анкета принадлежит только аутентифицированному владельцу, наружу
// отдается представление без хэша пароля и одноразовых токенов.
package services

import (
	"context"

	"github.com/magabrotheeeer/job-portal/internal/models"
)

// ProfileRepository определяет методы для работы с анкетой в хранилище.
type ProfileRepository interface {
	// GetUserByUID возвращает пользователя с полями анкеты.
	GetUserByUID(ctx context.Context, userUID string) (*models.User, error)
	// UpdateProfile частично обновляет поля анкеты.
	UpdateProfile(ctx context.Context, userUID string, entry models.UpdateProfileEntry) (*models.User, error)
}

// ProfileService реализует чтение и обновление анкеты пользователя.
type ProfileService struct {
	repo ProfileRepository
}

// NewProfileService создает новый экземпляр ProfileService.
func NewProfileService(repo ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Get возвращает анкету пользователя без секретных полей.
func (s *ProfileService) Get(ctx context.Context, userUID string) (*models.PublicProfile, error) {
	user, err := s.repo.GetUserByUID(ctx, userUID)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

// Update частично обновляет анкету и возвращает её новое представление.
// Поля пароля и токенов этим путем изменить нельзя.
func (s *ProfileService) Update(ctx context.Context, userUID string, entry models.UpdateProfileEntry) (*models.PublicProfile, error) {
	user, err := s.repo.UpdateProfile(ctx, userUID, entry)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}
