package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/users"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgNotApproved  = "учётная запись не подтверждена администратором"
	msgAdminOnly    = "доступно только администратору"
)

type sessionKey struct{}

// Authenticator проверяет токен и возвращает актуального пользователя из хранилища
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет Bearer токен и кладёт сессию в контекст запроса.
// Роль берётся из хранилища, а не из токена: смена роли действует сразу
func Auth(authn Authenticator, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			user, err := authn.Authenticate(r.Context(), strings.TrimSpace(token))
			if err != nil {
				switch {
				case errors.Is(err, users.ErrAccountNotApproved):
					handlers.RespondForbidden(w, msgNotApproved)
				case errors.Is(err, users.ErrUnauthorized):
					logger.Warn("%s %s - Unauthorized: %v", r.Method, r.URL.Path, err)
					handlers.RespondUnauthorized(w, msgUnauthorized)
				default:
					logger.Error("%s %s - Failed to authenticate: %v", r.Method, r.URL.Path, err)
					handlers.RespondInternalError(w)
				}
				return
			}

			session := rules.Session{UserID: user.ID, UserName: user.FullName, Role: user.Role}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// RequireAdmin пропускает только администраторов. Ставится после Auth
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := GetSession(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}
		if !session.IsAdmin() {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithSession кладёт сессию в контекст
func WithSession(ctx context.Context, session rules.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSession достаёт сессию из контекста
func GetSession(ctx context.Context) (rules.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(rules.Session)
	return session, ok
}
