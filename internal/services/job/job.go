// Package services содержит бизнес-логику справочника вакансий с кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/job-portal/internal/models"
)

// JobRepository определяет методы для работы с вакансиями в хранилище.
type JobRepository interface {
	// CreateJob добавляет новую вакансию и возвращает её ID.
	CreateJob(ctx context.Context, job models.Job) (int, error)
	// GetJob возвращает вакансию по ID.
	GetJob(ctx context.Context, id int) (*models.Job, error)
	// ListJobs возвращает все вакансии.
	ListJobs(ctx context.Context) ([]*models.Job, error)
	// UpdateJob частично обновляет вакансию по ID.
	UpdateJob(ctx context.Context, id int, entry models.UpdateJobEntry) (*models.Job, error)
	// DeleteJob удаляет вакансию по ID и возвращает количество удалённых записей.
	DeleteJob(ctx context.Context, id int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// JobService реализует бизнес-логику справочника вакансий, включая кеширование.
type JobService struct {
	repo  JobRepository
	cache Cache
	log   *slog.Logger
}

// NewJobService создает новый экземпляр JobService.
func NewJobService(repo JobRepository, cache Cache, log *slog.Logger) *JobService {
	return &JobService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает новую вакансию, кеширует её и возвращает ID.
func (s *JobService) Create(ctx context.Context, job models.Job) (int, error) {
	id, err := s.repo.CreateJob(ctx, job)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new job", slog.Int("id", id))

	job.ID = id
	cacheKey := fmt.Sprintf("job:%d", id)
	if err := s.cache.Set(cacheKey, job, time.Hour); err != nil {
		s.log.Warn("failed to cache job", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return id, nil
}

// Read возвращает вакансию по ID, используя кеш или репозиторий.
func (s *JobService) Read(ctx context.Context, id int) (*models.Job, error) {
	var result *models.Job
	cacheKey := fmt.Sprintf("job:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read job from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache job", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает все вакансии напрямую из репозитория.
func (s *JobService) List(ctx context.Context) ([]*models.Job, error) {
	return s.repo.ListJobs(ctx)
}

// Update частично обновляет вакансию и перекладывает её в кеш.
func (s *JobService) Update(ctx context.Context, id int, entry models.UpdateJobEntry) (*models.Job, error) {
	job, err := s.repo.UpdateJob(ctx, id, entry)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("job:%d", id)
	if err := s.cache.Set(cacheKey, job, time.Hour); err != nil {
		s.log.Warn("failed to cache job", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return job, nil
}

// Remove удаляет вакансию по ID и инвалидирует кеш.
func (s *JobService) Remove(ctx context.Context, id int) (int, error) {
	cacheKey := fmt.Sprintf("job:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.DeleteJob(ctx, id)
	if err != nil {
		return 0, err
	}
	return count, nil
}
