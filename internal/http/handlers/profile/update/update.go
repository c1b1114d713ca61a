// Package update реализует HTTP-обработчик частичного обновления профиля.
//
// Поля, отсутствующие в теле запроса, остаются без изменений. Почта, пароль
// и флаг подтверждения через этот обработчик не меняются.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/job-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/job-portal/internal/http/response"
	"github.com/magabrotheeeer/job-portal/internal/lib/sl"
	"github.com/magabrotheeeer/job-portal/internal/models"
)

// Service описывает интерфейс бизнес-логики обновления профиля.
type Service interface {
	Update(ctx context.Context, userUID string, entry models.UpdateProfileEntry) (*models.PublicProfile, error)
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

// ServeHTTP обрабатывает HTTP-запрос обновления профиля.
//
// @Summary Частичное обновление профиля текущего пользователя
// @Tags profile
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   request body models.UpdateProfileEntry true "Обновляемые поля профиля"
// @Success 200 {object} response.Response "Обновленный публичный профиль"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело запроса"
// @Failure 401 {object} response.ErrorResponse "Нет или недействительный токен"
// @Router /profile [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.update"

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

	var entry models.UpdateProfileEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded")

	profile, err := h.service.Update(r.Context(), userUID, entry)
	if err != nil {
		log.Error("failed to update profile", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update profile"))
		return
	}

	log.Info("profile updated", slog.String("user_uid", userUID))
	render.JSON(w, r, response.StatusOKWithData(profile))
}
