// Package verifyemail реализует HTTP-обработчик подтверждения электронной почты.
//
// Пользователь переходит по ссылке из письма, обработчик погашает токен и
// отвечает HTML-страницей с результатом. Обе страницы возвращаются со статусом
// 200, чтобы почтовые сканеры ссылок не помечали переход как ошибочный.
package verifyemail

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/job-portal/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики подтверждения почты.
type Service interface {
	VerifyEmail(ctx context.Context, token string) error
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

const successPage = `<!DOCTYPE html>
<html>
<head><title>Email Verified</title></head>
<body style="font-family: sans-serif; text-align: center; padding-top: 60px;">
<h1>Email Verified Successfully!</h1>
<p>Your email has been verified. You can now log in to your account.</p>
</body>
</html>`

const failurePage = `<!DOCTYPE html>
<html>
<head><title>Verification Failed</title></head>
<body style="font-family: sans-serif; text-align: center; padding-top: 60px;">
<h1>Verification Failed</h1>
<p>Invalid or expired token. Please request a new verification email.</p>
</body>
</html>`

// ServeHTTP обрабатывает переход по ссылке подтверждения почты.
//
// @Summary Подтверждение электронной почты
// @Tags auth
// @Produce html
// @Param   token query string true "Токен подтверждения из письма"
// @Success 200 {string} string "HTML-страница с результатом"
// @Router /auth/verify-email [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.verifyemail"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := r.URL.Query().Get("token")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if token == "" {
		log.Error("missing verification token")
		_, _ = w.Write([]byte(failurePage))
		return
	}

	if err := h.service.VerifyEmail(r.Context(), token); err != nil {
		log.Error("failed to verify email", sl.Err(err))
		_, _ = w.Write([]byte(failurePage))
		return
	}

	log.Info("email verified")
	_, _ = w.Write([]byte(successPage))
}
