// Package forgotpassword реализует HTTP-обработчик запроса сброса пароля.
//
// Обработчик выпускает токен сброса и отправляет письмо со ссылкой. Для
// незарегистрированной почты возвращается 404.
package forgotpassword

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

// Request — входные данные для запроса сброса пароля
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Service описывает интерфейс бизнес-логики запроса сброса пароля.
type Service interface {
	ForgotPassword(ctx context.Context, email string) error
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

// ServeHTTP обрабатывает HTTP-запрос сброса пароля.
//
// @Summary Запрос сброса пароля
// @Tags auth
// @Accept  json
// @Produce json
// @Param   request body Request true "Почта учетной записи"
// @Success 200 {object} response.Response "Письмо со ссылкой сброса отправлено"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка отправки письма"
// @Router /auth/forgot-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.forgotpassword"

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
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, authservice.ErrUserNotFound):
			log.Error("user not found", sl.Err(err))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, authservice.ErrEmailDelivery):
			log.Error("failed to send reset email", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to send reset email"))
		default:
			log.Error("forgot password failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to process request"))
		}
		return
	}

	log.Info("reset email sent", slog.String("email", req.Email))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "Password reset email sent",
	}))
}
