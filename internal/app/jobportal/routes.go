// Package jobportal предоставляет маршруты для основного приложения.
package jobportal

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/job-portal/internal/http/handlers/auth/forgotpassword"
	"github.com/magabrotheeeer/job-portal/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/job-portal/internal/http/handlers/auth/resetpassword"
	"github.com/magabrotheeeer/job-portal/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/job-portal/internal/http/handlers/auth/verifyemail"
	"github.com/magabrotheeeer/job-portal/internal/http/handlers/health"
	jobcreate "github.com/magabrotheeeer/job-portal/internal/http/handlers/job/create"
	joblist "github.com/magabrotheeeer/job-portal/internal/http/handlers/job/list"
	jobread "github.com/magabrotheeeer/job-portal/internal/http/handlers/job/read"
	jobremove "github.com/magabrotheeeer/job-portal/internal/http/handlers/job/remove"
	jobupdate "github.com/magabrotheeeer/job-portal/internal/http/handlers/job/update"
	profileget "github.com/magabrotheeeer/job-portal/internal/http/handlers/profile/get"
	profileupdate "github.com/magabrotheeeer/job-portal/internal/http/handlers/profile/update"
	"github.com/magabrotheeeer/job-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/job-portal/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/job-portal/internal/services/auth"
	jobservice "github.com/magabrotheeeer/job-portal/internal/services/job"
	profileservice "github.com/magabrotheeeer/job-portal/internal/services/profile"
	"github.com/magabrotheeeer/job-portal/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage, jwtMaker jwt.Maker,
	authService *authservice.AuthService, jobService *jobservice.JobService,
	profileService *profileservice.ProfileService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки аутентификации
		r.Post("/auth/signup", signup.New(logger, authService).ServeHTTP)
		r.Get("/auth/verify-email", verifyemail.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Post("/auth/forgot-password", forgotpassword.New(logger, authService).ServeHTTP)
		r.Post("/auth/reset-password", resetpassword.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/profile", profileget.New(logger, profileService).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, profileService).ServeHTTP)
		})

		// Справочник вакансий (без аутентификации)
		r.Post("/jobs", jobcreate.New(logger, jobService).ServeHTTP)
		r.Get("/jobs", joblist.New(logger, jobService).ServeHTTP)
		r.Get("/jobs/{id}", jobread.New(logger, jobService).ServeHTTP)
		r.Put("/jobs/{id}", jobupdate.New(logger, jobService).ServeHTTP)
		r.Delete("/jobs/{id}", jobremove.New(logger, jobService).ServeHTTP)
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
