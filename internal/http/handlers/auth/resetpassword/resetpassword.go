// Package resetpassword реализует HTTP-обработчик установки нового пароля.
//
// Токен сброса одноразовый: после успешной смены пароля повторное
// использование той же ссылки возвращает 400.
package resetpassword

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/job-portal/internal/http/response"
	"github.com/magabrotheeeer/job-portal/internal/lib/sl"
	authservice "github.com/magabrotheeeer/job-portal/internal/services/auth"
)

// Request — входные данные для установки нового пароля
type Request struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики сброса пароля.
type Service interface {
	ResetPassword(ctx context.Context, token, password string) error
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает HTTP-запрос установки нового пароля.
//
// @Summary Установка нового пароля по токену сброса
// @Tags auth
// @Accept  json
// @Produce json
// @Param   request body Request true "Токен сброса и новый пароль"
// @Success 200 {object} response.Response "Пароль обновлен"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации или недействительный токен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /auth/reset-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.resetpassword"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded")

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	if err := h.service.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, authservice.ErrTokenInvalid):
			log.Error("invalid or expired reset token", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid or expired token"))
		default:
			log.Error("reset password failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to reset password"))
		}
		return
	}

	log.Info("password reset completed")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "Password has been reset successfully",
	}))
}
