// Package update реализует HTTP-обработчик полного обновления вакансии.
//
// Обязательные поля должны присутствовать в теле запроса, остальные поля при
// отсутствии сохраняют прежние значения.
package update

import (
	"context"
	"encoding/json"
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

// Service описывает интерфейс бизнес-логики обновления вакансии.
type Service interface {
	Update(ctx context.Context, id int, entry models.UpdateJobEntry) (*models.Job, error)
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

// ServeHTTP обрабатывает HTTP-запрос обновления вакансии.
//
// @Summary Обновление вакансии по ID
// @Tags jobs
// @Accept  json
// @Produce json
// @Param   id path int true "ID вакансии"
// @Param   request body models.UpdateJobEntry true "Поля вакансии"
// @Success 200 {object} response.Response "Обновленная вакансия"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или отсутствуют обязательные поля"
// @Failure 404 {object} response.ErrorResponse "Вакансия не найдена"
// @Router /jobs/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.job.update"

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

	var entry models.UpdateJobEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Int("id", id))

	if entry.Title == nil || entry.Category == nil || entry.CompanyName == nil || entry.Location == nil {
		log.Error("missing required fields")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("title, category, companyName and location are required"))
		return
	}

	job, err := h.service.Update(r.Context(), id, entry)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			log.Error("job not found", slog.Int("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("job not found"))
			return
		}
		log.Error("failed to update job", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update job"))
		return
	}

	log.Info("job updated", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(job))
}
