package middleware

import (
	"net/http"

	"github.com/frontandrew/taxi/internal/pkg/session"
	"github.com/google/uuid"
)

// SessionProvider выдает сессию по id из claim "sid"
type SessionProvider interface {
	Session(id uuid.UUID) session.Session
}

// SessionMiddleware кладет в контекст сессию текущего водителя.
// Должен стоять после AuthMiddleware.
func SessionMiddleware(provider SessionProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetDriverClaims(r.Context())
			if !ok || claims.SessionID == uuid.Nil {
				respondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := session.WithSession(r.Context(), provider.Session(claims.SessionID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
