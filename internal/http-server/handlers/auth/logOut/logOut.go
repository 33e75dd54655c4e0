package logOut

import (
	"log/slog"
	"net/http"

	"eventSignup/internal/lib/logger/sl"

	"github.com/alexedwards/scs/v2"
)

func New(log *slog.Logger, sessions *scs.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.logOut.New"

		log := log.With(slog.String("op", op))

		if err := sessions.Destroy(r.Context()); err != nil {
			// Nothing useful to show the user; the cookie is gone either way.
			log.Error("failed to destroy session", sl.Err(err))
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
