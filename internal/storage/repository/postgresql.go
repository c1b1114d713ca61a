// Package repository реализует хранилище данных на основе PostgreSQL
// для управления пользователями и вакансиями. Предоставляет методы
// создания, чтения, обновления и удаления записей, а также атомарное
// потребление одноразовых токенов подтверждения и сброса пароля.
package repository

import (
	"context"
	"errors"
	"fmt"

	"database/sql"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища, различаемые бизнес-логикой через errors.Is.
var (
	// ErrUserExists почта уже зарегистрирована (нарушение уникального индекса).
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrTokenInvalid одноразовый токен не найден, истек или уже использован.
	ErrTokenInvalid = errors.New("token is invalid or expired")
	// ErrJobNotFound вакансия не найдена.
	ErrJobNotFound = errors.New("job not found")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями и вакансиями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table users missing or query error: %w", err)
	}
	return nil
}
