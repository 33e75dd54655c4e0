package getAllEvents

import (
	"log/slog"
	"net/http"

	"eventSignup/internal/http-server/middleware/mwauth"
	"eventSignup/internal/lib/logger/sl"
	"eventSignup/internal/lib/web"
	"eventSignup/internal/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsGetter
type EventsGetter interface {
	GetAllEvents() ([]models.EventDetails, error)
}

func New(log *slog.Logger, events EventsGetter, renderer *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getAllEvents.New"

		log := log.With(slog.String("op", op))

		user, _ := mwauth.UserFromContext(r.Context())

		list, err := events.GetAllEvents()
		if err != nil {
			log.Error("failed to get events", sl.Err(err))
			renderer.ServerError(w, web.Page{User: user})

			return
		}

		log.Info("events retrieved", slog.Int("count", len(list)))

		renderer.HTML(w, http.StatusOK, "index.html", web.Page{
			User:   user,
			Events: list,
		})
	}
}
