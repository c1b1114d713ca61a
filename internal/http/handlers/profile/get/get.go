// Package get реализует HTTP-обработчик чтения профиля текущего пользователя.
package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/job-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/job-portal/internal/http/response"
	"github.com/magabrotheeeer/job-portal/internal/lib/sl"
	"github.com/magabrotheeeer/job-portal/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения профиля.
type Service interface {
	Get(ctx context.Context, userUID string) (*models.PublicProfile, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос чтения профиля.
//
// @Summary Профиль текущего пользователя
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "Публичный профиль без секретов"
// @Failure 401 {object} response.ErrorResponse "Нет или недействительный токен"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("missing user uid in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	profile, err := h.service.Get(r.Context(), userUID)
	if err != nil {
		log.Error("failed to get profile", sl.Err(err))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}

	log.Info("profile fetched", slog.String("user_uid", userUID))
	render.JSON(w, r, response.StatusOKWithData(profile))
}
