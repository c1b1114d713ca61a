// Package middlewarectx содержит HTTP middleware для обработки и проверки JWT токенов сессии.
//
// JWTMiddleware проверяет наличие и валидность токена в заголовке Authorization
// и в случае успеха добавляет в контекст uid и email пользователя
// для дальнейшего использования в обработчиках.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/job-portal/internal/http/response"
	"github.com/magabrotheeeer/job-portal/internal/lib/jwt"
	"github.com/magabrotheeeer/job-portal/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserUID — ключ для uid пользователя в контексте
	UserUID Key = "user_uid"
	// Email — ключ для почты пользователя в контексте
	Email Key = "email"
)

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Заголовок разбирается наивно: разбиение по пробелам и взятие второго
// поля, схема "Bearer" отдельно не проверяется. Если токен валиден,
// uid и email пользователя попадают в контекст запроса, иначе
// возвращается ошибка с HTTP статусом 401 Unauthorized. Ошибки разбора,
// подписи и истечения срока наружу не различаются.
func JWTMiddleware(jwtMaker jwt.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const op = "middlewarectx.JWTMiddleware"

			log = log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			fields := strings.Fields(authHeader)
			if len(fields) < 2 {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := fields[1]

			claims, err := jwtMaker.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), UserUID, claims.UserUID)
			ctx = context.WithValue(ctx, Email, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
