package logIn

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventSignup/internal/http-server/middleware/mwauth"
	"eventSignup/internal/lib/logger/sl"
	"eventSignup/internal/lib/web"
	"eventSignup/internal/models"
	"eventSignup/internal/storage"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// One generic message for both unknown email and wrong password, so the
// form cannot be used to enumerate accounts.
const msgInvalidCredentials = "Invalid email or password."

type LogInRequest struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserProvider
type UserProvider interface {
	UserByEmail(email string) (*models.User, error)
}

// Form renders the login page.
func Form(renderer *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := mwauth.UserFromContext(r.Context())
		renderer.HTML(w, http.StatusOK, "login.html", web.Page{User: user, Form: map[string]string{}})
	}
}

func New(log *slog.Logger, users UserProvider, sessions *scs.SessionManager, renderer *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.logIn.New"

		log := log.With(slog.String("op", op))

		var req LogInRequest

		err := render.DecodeForm(r.Body, &req)
		if err != nil {
			log.Error("failed to decode form", sl.Err(err))
			renderForm(w, renderer, req, "Please check the form and try again.")

			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Info("invalid login request", sl.Err(err))
			renderForm(w, renderer, req, web.ValidationMessage(validateErr))

			return
		}

		user, err := users.UserByEmail(req.Email)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				log.Info("login failed", slog.String("email", req.Email))
				renderForm(w, renderer, req, msgInvalidCredentials)

				return
			}

			log.Error("failed to look up user", sl.Err(err))
			renderer.ServerError(w, web.Page{})

			return
		}

		if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			log.Info("login failed", slog.String("email", req.Email))
			renderForm(w, renderer, req, msgInvalidCredentials)

			return
		}

		if err = sessions.RenewToken(r.Context()); err != nil {
			log.Error("failed to renew session token", sl.Err(err))
			renderer.ServerError(w, web.Page{})

			return
		}
		sessions.Put(r.Context(), mwauth.SessionUserKey, user.ID)

		log.Info("user logged in", slog.Int64("id", user.ID))

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func renderForm(w http.ResponseWriter, renderer *web.Renderer, req LogInRequest, msg string) {
	renderer.HTML(w, http.StatusUnprocessableEntity, "login.html", web.Page{
		Error: msg,
		Form: map[string]string{
			"email": req.Email,
		},
	})
}
