// Package read реализует HTTP-обработчик чтения вакансии по ID.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/job-portal/internal/http/response"
	"github.com/magabrotheeeer/job-portal/internal/lib/sl"
	"github.com/magabrotheeeer/job-portal/internal/models"
	"github.com/magabrotheeeer/job-portal/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики чтения вакансии.
type Service interface {
	Read(ctx context.Context, id int) (*models.Job, error)
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

// ServeHTTP обрабатывает HTTP-запрос чтения вакансии.
//
// @Summary Вакансия по ID
// @Tags jobs
// @Produce json
// @Param   id path int true "ID вакансии"
// @Success 200 {object} response.Response "Вакансия"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Вакансия не найдена"
// @Router /jobs/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.job.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid job id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid job id"))
		return
	}

	job, err := h.service.Read(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			log.Error("job not found", slog.Int("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("job not found"))
			return
		}
		log.Error("failed to read job", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read job"))
		return
	}

	log.Info("job fetched", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(job))
}
