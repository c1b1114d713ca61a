// Package create реализует HTTP-обработчик создания вакансии.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/job-portal/internal/http/response"
	"github.com/magabrotheeeer/job-portal/internal/lib/sl"
	"github.com/magabrotheeeer/job-portal/internal/models"
)

// Request — входные данные для создания вакансии
type Request struct {
	Title           string   `json:"title" validate:"required"`
	Category        string   `json:"category" validate:"required"`
	CompanyName     string   `json:"companyName" validate:"required"`
	Location        string   `json:"location" validate:"required"`
	CompanyLogo     *string  `json:"companyLogo"`
	Description     *string  `json:"description"`
	MinSalary       *string  `json:"minSalary"`
	MaxSalary       *string  `json:"maxSalary"`
	Experience      string   `json:"experience"`
	Years           *string  `json:"years"`
	EmploymentTypes []string `json:"employmentTypes"`
	Skills          []string `json:"skills"`
	ExpiryDate      *string  `json:"expiryDate"`
	Featured        bool     `json:"featured"`
	Urgent          bool     `json:"urgent"`
}

// Service описывает интерфейс бизнес-логики создания вакансии.
type Service interface {
	Create(ctx context.Context, job models.Job) (int, error)
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

// ServeHTTP обрабатывает HTTP-запрос создания вакансии.
//
// @Summary Создание вакансии
// @Tags jobs
// @Accept  json
// @Produce json
// @Param   request body Request true "Данные вакансии"
// @Success 200 {object} response.Response "ID созданной вакансии"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /jobs [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.job.create"

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
	log.Info("request body decoded", slog.String("title", req.Title))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	job := models.Job{
		Title:           req.Title,
		Category:        req.Category,
		CompanyName:     req.CompanyName,
		Location:        req.Location,
		CompanyLogo:     req.CompanyLogo,
		Description:     req.Description,
		MinSalary:       req.MinSalary,
		MaxSalary:       req.MaxSalary,
		Experience:      req.Experience,
		Years:           req.Years,
		EmploymentTypes: req.EmploymentTypes,
		Skills:          req.Skills,
		ExpiryDate:      req.ExpiryDate,
		Featured:        req.Featured,
		Urgent:          req.Urgent,
	}

	id, err := h.service.Create(r.Context(), job)
	if err != nil {
		log.Error("failed to create job", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create job"))
		return
	}

	log.Info("created new job", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}
