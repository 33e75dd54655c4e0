package mwauth

import (
	"context"
	"log/slog"
	"net/http"

	"eventSignup/internal/lib/logger/sl"
	"eventSignup/internal/models"

	"github.com/alexedwards/scs/v2"
)

// SessionUserKey is the session key holding the authenticated user's id.
const SessionUserKey = "user_id"

type ctxKey struct{}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserGetter
type UserGetter interface {
	UserByID(id int64) (*models.User, error)
}

// New resolves the session into a *models.User and stores it in the request
// context. Requests without a valid session pass through with no user set.
func New(log *slog.Logger, sessions *scs.SessionManager, users UserGetter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log = log.With(slog.String("component", "middleware/auth"))

		fn := func(w http.ResponseWriter, r *http.Request) {
			userID := sessions.GetInt64(r.Context(), SessionUserKey)
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.UserByID(userID)
			if err != nil {
				// Stale session; treat the request as anonymous.
				log.Warn("failed to resolve session user", slog.Int64("user_id", userID), sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, user)))
		}

		return http.HandlerFunc(fn)
	}
}

// RequireAuth redirects anonymous requests to the login page.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the authenticated user for this request, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(ctxKey{}).(*models.User)
	return user, ok
}

// ContextWithUser attaches a resolved user to the context, bypassing the
// session lookup.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}
