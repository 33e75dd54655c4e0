package createEvent

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"eventSignup/internal/http-server/middleware/mwauth"
	"eventSignup/internal/lib/logger/sl"
	"eventSignup/internal/lib/web"
	"eventSignup/internal/models"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type EventRequest struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description" validate:"required"`
	Location    string `form:"location" validate:"required"`
	StartsAt    string `form:"starts_at" validate:"required"`
	Capacity    int    `form:"capacity" validate:"required,min=1,max=5000"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateEvent(hostID int64, title, description, location, startsAt string, capacity int) (int64, error)
}

// Form renders the event creation page. The route is auth-gated.
func Form(renderer *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := mwauth.UserFromContext(r.Context())
		renderer.HTML(w, http.StatusOK, "event_new.html", web.Page{User: user, Form: map[string]string{}})
	}
}

func New(log *slog.Logger, events EventCreator, renderer *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log := log.With(slog.String("op", op))

		user, ok := mwauth.UserFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		var req EventRequest

		err := render.DecodeForm(r.Body, &req)
		if err != nil {
			log.Info("failed to decode form", sl.Err(err))
			renderForm(w, renderer, user, req, "Capacity must be a whole number between 1 and 5000.")

			return
		}

		req.Title = strings.TrimSpace(req.Title)
		req.Description = strings.TrimSpace(req.Description)
		req.Location = strings.TrimSpace(req.Location)
		req.StartsAt = strings.TrimSpace(req.StartsAt)

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Info("invalid event request", sl.Err(err))
			renderForm(w, renderer, user, req, web.ValidationMessage(validateErr))

			return
		}

		eventID, err := events.CreateEvent(user.ID, req.Title, req.Description, req.Location, req.StartsAt, req.Capacity)
		if err != nil {
			log.Error("failed to create event", sl.Err(err))
			renderer.ServerError(w, web.Page{User: user})

			return
		}

		log.Info("event created", slog.Int64("id", eventID), slog.Int64("host_id", user.ID))

		http.Redirect(w, r, fmt.Sprintf("/events/%d", eventID), http.StatusSeeOther)
	}
}

func renderForm(w http.ResponseWriter, renderer *web.Renderer, user *models.User, req EventRequest, msg string) {
	renderer.HTML(w, http.StatusUnprocessableEntity, "event_new.html", web.Page{
		User:  user,
		Error: msg,
		Form: map[string]string{
			"title":       req.Title,
			"description": req.Description,
			"location":    req.Location,
			"starts_at":   req.StartsAt,
		},
	})
}
