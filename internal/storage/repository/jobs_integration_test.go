package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/job-portal/internal/models"
)

func TestStorage_CreateJob(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	id, err := storage.CreateJob(context.Background(), models.Job{
		Title:           "Go Developer",
		Category:        "Engineering",
		CompanyName:     "Acme",
		Location:        "Remote",
		EmploymentTypes: []string{"full-time"},
		Skills:          []string{"go"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	got, err := storage.GetJob(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", got.Title)
	// Пустой уровень опыта заменяется значением по умолчанию
	assert.Equal(t, "freshman", got.Experience)
	assert.Equal(t, []string{"full-time"}, got.EmploymentTypes)
	assert.Nil(t, got.Description)
}

func TestStorage_GetJob(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	id := factory.CreateJob(t, "Go Developer", "Engineering", "Acme", "Remote")

	got, err := storage.GetJob(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	_, err = storage.GetJob(context.Background(), 9999)
	require.ErrorIs(t, err, ErrJobNotFound)
}

func TestStorage_ListJobs(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	got, err := storage.ListJobs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	factory := NewTestDataFactory(storage)
	factory.CreateJob(t, "Go Developer", "Engineering", "Acme", "Remote")
	factory.CreateJob(t, "Data Engineer", "Engineering", "Globex", "Berlin")
	factory.CreateJob(t, "Designer", "Design", "Initech", "Austin")

	got, err = storage.ListJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Go Developer", got[0].Title)
	assert.Equal(t, "Designer", got[2].Title)
}

func TestStorage_UpdateJob(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	id := factory.CreateJob(t, "Go Developer", "Engineering", "Acme", "Remote")

	got, err := storage.UpdateJob(context.Background(), id, models.UpdateJobEntry{
		Title:  strPtr("Senior Go Developer"),
		Skills: []string{"go", "kubernetes"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Go Developer", got.Title)
	// Не переданные поля остаются без изменений
	assert.Equal(t, "Acme", got.CompanyName)
	assert.Equal(t, []string{"go", "kubernetes"}, got.Skills)

	_, err = storage.UpdateJob(context.Background(), 9999, models.UpdateJobEntry{
		Title: strPtr("Nobody"),
	})
	require.ErrorIs(t, err, ErrJobNotFound)
}

func TestStorage_DeleteJob(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	id := factory.CreateJob(t, "Go Developer", "Engineering", "Acme", "Remote")

	count, err := storage.DeleteJob(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	verification := NewTestVerification(storage)
	verification.VerifyJobDeleted(t, id)

	count, err = storage.DeleteJob(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_FillJobDefaults(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	legacyID := factory.CreateLegacyJob(t, "Old Job")
	factory.CreateJob(t, "Fresh Job", "Engineering", "Acme", "Remote")

	count, err := storage.FillJobDefaults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := storage.GetJob(context.Background(), legacyID)
	require.NoError(t, err)
	assert.Equal(t, "freshman", got.Experience)
	assert.Equal(t, []string{}, got.EmploymentTypes)
	assert.Equal(t, []string{}, got.Skills)
	assert.False(t, got.Featured)
	assert.False(t, got.Urgent)

	// Повторный запуск ничего не меняет
	count, err = storage.FillJobDefaults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
