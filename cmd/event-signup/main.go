package main

import (
	"context"
	"errors"
	"eventSignup/internal/config"
	"eventSignup/internal/email"
	"eventSignup/internal/http-server/handlers/auth/logIn"
	"eventSignup/internal/http-server/handlers/auth/logOut"
	"eventSignup/internal/http-server/handlers/auth/signUp"
	"eventSignup/internal/http-server/handlers/event/createEvent"
	"eventSignup/internal/http-server/handlers/event/getAllEvents"
	"eventSignup/internal/http-server/handlers/event/getEventInfo"
	"eventSignup/internal/http-server/handlers/event/registerForEvent"
	"eventSignup/internal/http-server/middleware/mwauth"
	"eventSignup/internal/http-server/middleware/mwlogger"
	"eventSignup/internal/lib/logger/handlers/slogpretty"
	"eventSignup/internal/lib/logger/sl"
	"eventSignup/internal/lib/web"
	"eventSignup/internal/storage/postgres"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting event signup", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	mailer, err := email.New(cfg.SMTP, log)
	if err != nil {
		log.Error("failed to init email service", sl.Err(err))
		os.Exit(1)
	}

	renderer, err := web.NewRenderer(log)
	if err != nil {
		log.Error("failed to init renderer", sl.Err(err))
		os.Exit(1)
	}

	sessions := scs.New()
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode
	sessions.Cookie.Secure = cfg.Session.Secure
	sessions.Cookie.Persist = false

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(sessions.LoadAndSave)
	router.Use(mwauth.New(log, sessions, storage))

	router.Get("/", getAllEvents.New(log, storage, renderer))

	router.Get("/signup", signUp.Form(renderer))
	router.Post("/signup", signUp.New(log, storage, sessions, renderer))
	router.Get("/login", logIn.Form(renderer))
	router.Post("/login", logIn.New(log, storage, sessions, renderer))
	router.Post("/logout", logOut.New(log, sessions))

	router.Group(func(r chi.Router) {
		r.Use(mwauth.RequireAuth)

		r.Get("/events/new", createEvent.Form(renderer))
		r.Post("/events/new", createEvent.New(log, storage, renderer))
		r.Post("/events/{id}/register", registerForEvent.New(log, storage, mailer, cfg.BaseURL, renderer))
	})

	router.Get("/events/{id}", getEventInfo.New(log, storage, renderer))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		user, _ := mwauth.UserFromContext(r.Context())
		renderer.NotFound(w, web.Page{User: user})
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = storage.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("postgres connection closed")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
