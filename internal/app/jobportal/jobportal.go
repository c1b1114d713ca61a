// Package jobportal собирает зависимости приложения доски вакансий
// и управляет жизненным циклом HTTP-сервера.
package jobportal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/job-portal/internal/cache"
	"github.com/magabrotheeeer/job-portal/internal/config"
	"github.com/magabrotheeeer/job-portal/internal/lib/jwt"
	"github.com/magabrotheeeer/job-portal/internal/lib/smtp"
	"github.com/magabrotheeeer/job-portal/internal/migrations"
	authservice "github.com/magabrotheeeer/job-portal/internal/services/auth"
	jobservice "github.com/magabrotheeeer/job-portal/internal/services/job"
	profileservice "github.com/magabrotheeeer/job-portal/internal/services/profile"
	senderservice "github.com/magabrotheeeer/job-portal/internal/services/sender"
	"github.com/magabrotheeeer/job-portal/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)
	transport := smtp.NewTransport(cfg.Mail, logger)
	sender := senderservice.NewSenderService(cfg.AppURL, logger, transport)

	authService := authservice.NewAuthService(db, sender, jwtMaker,
		cfg.Tokens.VerificationTTL, cfg.Tokens.ResetTTL)
	jobService := jobservice.NewJobService(db, cacheRedis, logger)
	profileService := profileservice.NewProfileService(db)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, db, jwtMaker, authService, jobService, profileService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
