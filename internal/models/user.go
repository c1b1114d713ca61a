// Package models содержит доменные модели системы:
// пользователя с данными учётной записи и анкетой,
// а также вакансию доски объявлений.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID                string     // Уникальный идентификатор пользователя
	Name               string     // Отображаемое имя
	Email              string     // Электронная почта (уникальная)
	PasswordHash       string     // Хэш пароля пользователя
	IsVerified         bool       // Подтверждена ли почта
	VerificationToken  *string    // Одноразовый токен подтверждения почты
	VerificationExpiry *time.Time // Срок действия токена подтверждения
	ResetToken         *string    // Одноразовый токен сброса пароля
	ResetExpiry        *time.Time // Срок действия токена сброса

	// Анкета пользователя
	ProfileImage     *string
	About            *string
	Skills           []string
	BasicInformation []BasicInformation
	Experiences      []Experience
	Educations       []Education

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BasicInformation блок общей информации анкеты.
type BasicInformation struct {
	JobType         string `json:"jobType,omitempty"`
	Phone           string `json:"phone,omitempty"`
	ExperienceYears string `json:"experienceYears,omitempty"`
	Status          string `json:"status,omitempty"`
	MemberSince     string `json:"memberSince,omitempty"`
}

// Experience запись об опыте работы.
type Experience struct {
	CompanyName string `json:"companyName,omitempty"`
	JobTitle    string `json:"jobTitle,omitempty"`
	JoinDate    string `json:"joinDate,omitempty"`
	LastDate    string `json:"lastDate,omitempty"`
	Present     bool   `json:"present,omitempty"`
	Location    string `json:"location,omitempty"`
}

// Education запись об образовании.
type Education struct {
	InstitutionName string `json:"institutionName,omitempty"`
	Degree          string `json:"degree,omitempty"`
	FieldOfStudy    string `json:"fieldOfStudy,omitempty"`
	Year            string `json:"year,omitempty"`
}

// PublicUser минимальное публичное представление пользователя,
// возвращаемое при входе в систему.
type PublicUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PublicProfile представление анкеты пользователя для API.
// Никогда не содержит хэш пароля и одноразовые токены.
type PublicProfile struct {
	UID              string             `json:"id"`
	Name             string             `json:"name"`
	Email            string             `json:"email"`
	IsVerified       bool               `json:"isVerified"`
	ProfileImage     *string            `json:"profileImage,omitempty"`
	About            *string            `json:"about,omitempty"`
	Skills           []string           `json:"skills,omitempty"`
	BasicInformation []BasicInformation `json:"basicInformation,omitempty"`
	Experiences      []Experience       `json:"experiences,omitempty"`
	Educations       []Education        `json:"educations,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// Public возвращает минимальное публичное представление пользователя.
func (u *User) Public() PublicUser {
	return PublicUser{
		Name:  u.Name,
		Email: u.Email,
	}
}

// Profile возвращает представление анкеты без секретных полей.
func (u *User) Profile() PublicProfile {
	return PublicProfile{
		UID:              u.UID,
		Name:             u.Name,
		Email:            u.Email,
		IsVerified:       u.IsVerified,
		ProfileImage:     u.ProfileImage,
		About:            u.About,
		Skills:           u.Skills,
		BasicInformation: u.BasicInformation,
		Experiences:      u.Experiences,
		Educations:       u.Educations,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
