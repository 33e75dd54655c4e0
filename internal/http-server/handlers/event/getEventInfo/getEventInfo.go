package getEventInfo

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"eventSignup/internal/http-server/middleware/mwauth"
	"eventSignup/internal/lib/logger/sl"
	"eventSignup/internal/lib/web"
	"eventSignup/internal/models"
	"eventSignup/internal/storage"

	"github.com/go-chi/chi/v5"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventGetter
type EventGetter interface {
	GetEvent(id int64) (*models.EventDetails, error)
	IsRegistered(eventID, userID int64) (bool, error)
}

func New(log *slog.Logger, events EventGetter, renderer *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getEventInfo.New"

		log := log.With(slog.String("op", op))

		user, _ := mwauth.UserFromContext(r.Context())

		eventID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			log.Info("invalid event id", slog.String("id", chi.URLParam(r, "id")))
			renderer.NotFound(w, web.Page{User: user})

			return
		}

		event, err := events.GetEvent(eventID)
		if err != nil {
			if errors.Is(err, storage.ErrEventNotFound) {
				log.Info("event not found", slog.Int64("event_id", eventID))
				renderer.NotFound(w, web.Page{User: user})

				return
			}

			log.Error("failed to get event", sl.Err(err))
			renderer.ServerError(w, web.Page{User: user})

			return
		}

		var registered bool
		if user != nil {
			registered, err = events.IsRegistered(eventID, user.ID)
			if err != nil {
				log.Error("failed to check registration", sl.Err(err))
				renderer.ServerError(w, web.Page{User: user})

				return
			}
		}

		log.Info("event retrieved", slog.Int64("event_id", eventID))

		renderer.HTML(w, http.StatusOK, "event_detail.html", web.Page{
			User:       user,
			Event:      event,
			Registered: registered,
		})
	}
}
