package signUp

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventSignup/internal/http-server/middleware/mwauth"
	"eventSignup/internal/lib/logger/sl"
	"eventSignup/internal/lib/web"
	"eventSignup/internal/storage"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type SignUpRequest struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserCreator
type UserCreator interface {
	CreateUser(name, email, passwordHash string) (int64, error)
}

// Form renders the signup page.
func Form(renderer *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := mwauth.UserFromContext(r.Context())
		renderer.HTML(w, http.StatusOK, "signup.html", web.Page{User: user, Form: map[string]string{}})
	}
}

func New(log *slog.Logger, users UserCreator, sessions *scs.SessionManager, renderer *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.signUp.New"

		log := log.With(slog.String("op", op))

		var req SignUpRequest

		err := render.DecodeForm(r.Body, &req)
		if err != nil {
			log.Error("failed to decode form", sl.Err(err))
			renderForm(w, renderer, req, "Please check the form and try again.")

			return
		}

		req.Name = strings.TrimSpace(req.Name)
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Info("invalid signup request", sl.Err(err))
			renderForm(w, renderer, req, web.ValidationMessage(validateErr))

			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			log.Error("failed to hash password", sl.Err(err))
			renderer.ServerError(w, web.Page{})

			return
		}

		userID, err := users.CreateUser(req.Name, req.Email, string(hash))
		if err != nil {
			if errors.Is(err, storage.ErrEmailTaken) {
				log.Info("email already taken", slog.String("email", req.Email))
				renderForm(w, renderer, req, "An account with this email already exists.")

				return
			}

			log.Error("failed to create user", sl.Err(err))
			renderer.ServerError(w, web.Page{})

			return
		}

		// New privilege level, new session token.
		if err = sessions.RenewToken(r.Context()); err != nil {
			log.Error("failed to renew session token", sl.Err(err))
			renderer.ServerError(w, web.Page{})

			return
		}
		sessions.Put(r.Context(), mwauth.SessionUserKey, userID)

		log.Info("user signed up", slog.Int64("id", userID), slog.String("email", req.Email))

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func renderForm(w http.ResponseWriter, renderer *web.Renderer, req SignUpRequest, msg string) {
	renderer.HTML(w, http.StatusUnprocessableEntity, "signup.html", web.Page{
		Error: msg,
		Form: map[string]string{
			"name":  req.Name,
			"email": req.Email,
		},
	})
}
