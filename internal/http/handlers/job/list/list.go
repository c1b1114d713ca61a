// Package list реализует HTTP-обработчик списка вакансий.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/job-portal/internal/http/response"
	"github.com/magabrotheeeer/job-portal/internal/lib/sl"
	"github.com/magabrotheeeer/job-portal/internal/models"
)

// Service описывает интерфейс бизнес-логики списка вакансий.
type Service interface {
	List(ctx context.Context) ([]*models.Job, error)
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

// ServeHTTP обрабатывает HTTP-запрос списка вакансий.
//
// @Summary Список всех вакансий
// @Tags jobs
// @Produce json
// @Success 200 {object} response.Response "Список вакансий"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /jobs [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.job.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	jobs, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list jobs", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list jobs"))
		return
	}

	log.Info("jobs listed", slog.Int("count", len(jobs)))
	render.JSON(w, r, response.StatusOKWithData(jobs))
}
