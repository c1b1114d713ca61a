// Утилита разового запуска: проставляет значения по умолчанию в старых
// записях вакансий (пустой опыт, отсутствующие массивы и флаги).
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/job-portal/internal/config"
	"github.com/magabrotheeeer/job-portal/internal/lib/sl"
	"github.com/magabrotheeeer/job-portal/internal/storage/repository"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to database", sl.Err(err))
		os.Exit(1)
	}
	defer func() { _ = db.DB.Close() }()

	count, err := db.FillJobDefaults(ctx)
	if err != nil {
		logger.Error("failed to fill job defaults", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("job defaults filled", slog.Int("updated", count))
}
