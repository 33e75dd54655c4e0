package registerForEvent

import (
	"errors"
	"fmt"
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

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventRegistrar
type EventRegistrar interface {
	RegisterForEvent(eventID, userID int64) error
	GetEvent(id int64) (*models.EventDetails, error)
	IsRegistered(eventID, userID int64) (bool, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ConfirmationSender
type ConfirmationSender interface {
	SendRegistrationConfirmation(to, eventTitle, startsAt, location, link string) error
}

func New(log *slog.Logger, events EventRegistrar, sender ConfirmationSender, baseURL string, renderer *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.registerForEvent.New"

		log := log.With(slog.String("op", op))

		user, ok := mwauth.UserFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		eventID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			log.Info("invalid event id", slog.String("id", chi.URLParam(r, "id")))
			renderer.NotFound(w, web.Page{User: user})

			return
		}

		log = log.With(slog.Int64("event_id", eventID), slog.Int64("user_id", user.ID))

		err = events.RegisterForEvent(eventID, user.ID)
		switch {
		case errors.Is(err, storage.ErrEventNotFound):
			log.Info("event not found")
			renderer.NotFound(w, web.Page{User: user})

			return
		case errors.Is(err, storage.ErrCapacityExceeded):
			log.Info("event is full")
			renderDetail(w, log, events, renderer, user, eventID, "This event is already full.")

			return
		case errors.Is(err, storage.ErrAlreadyRegistered):
			log.Info("already registered")
			renderDetail(w, log, events, renderer, user, eventID, "You are already registered for this event.")

			return
		case err != nil:
			log.Error("failed to register", sl.Err(err))
			renderer.ServerError(w, web.Page{User: user})

			return
		}

		log.Info("registration created")

		event, err := events.GetEvent(eventID)
		if err != nil {
			log.Error("failed to get event", sl.Err(err))
			renderer.ServerError(w, web.Page{User: user})

			return
		}

		// The registration is committed; a failed email is observed,
		// logged and discarded.
		link := fmt.Sprintf("%s/events/%d", baseURL, eventID)
		if sendErr := sender.SendRegistrationConfirmation(user.Email, event.Title, event.StartsAt, event.Location, link); sendErr != nil {
			log.Warn("failed to send confirmation email", sl.Err(sendErr))
		}

		renderer.HTML(w, http.StatusOK, "event_detail.html", web.Page{
			User:       user,
			Event:      event,
			Registered: true,
			Success:    "You are registered. See you there!",
		})
	}
}

func renderDetail(w http.ResponseWriter, log *slog.Logger, events EventRegistrar, renderer *web.Renderer, user *models.User, eventID int64, errMsg string) {
	event, err := events.GetEvent(eventID)
	if err != nil {
		log.Error("failed to get event", sl.Err(err))
		renderer.ServerError(w, web.Page{User: user})

		return
	}

	registered, err := events.IsRegistered(eventID, user.ID)
	if err != nil {
		log.Error("failed to check registration", sl.Err(err))
		renderer.ServerError(w, web.Page{User: user})

		return
	}

	renderer.HTML(w, http.StatusConflict, "event_detail.html", web.Page{
		User:       user,
		Event:      event,
		Registered: registered,
		Error:      errMsg,
	})
}
