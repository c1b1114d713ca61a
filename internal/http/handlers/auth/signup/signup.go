// Package signup реализует HTTP-обработчик регистрации нового пользователя.
//
// Handler валидирует запрос, создает неподтвержденную учетную запись и
// инициирует отправку письма со ссылкой подтверждения почты.
package signup

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

// Request — входные данные для регистрации
type Request struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Signup(ctx context.Context, name, email, password string) error
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

// ServeHTTP обрабатывает HTTP-запрос на регистрацию.
//
// @Summary Регистрация нового пользователя
// @Tags auth
// @Accept  json
// @Produce json
// @Param   request body Request true "Данные для регистрации (name, email, password)"
// @Success 200 {object} response.Response "Письмо подтверждения отправлено"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации или почта уже занята"
// @Failure 500 {object} response.ErrorResponse "Ошибка отправки письма или внутренняя ошибка"
// @Router /auth/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

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

	if err := h.service.Signup(r.Context(), req.Name, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, authservice.ErrEmailTaken):
			log.Error("email already registered", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("email already registered"))
		case errors.Is(err, authservice.ErrEmailDelivery):
			log.Error("failed to send verification email", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to send verification email"))
		default:
			log.Error("signup failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register user"))
		}
		return
	}

	log.Info("created new user", slog.String("email", req.Email))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "Verification email sent",
	}))
}
