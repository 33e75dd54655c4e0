package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"eventSignup/internal/lib/logger/sl"
	"eventSignup/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is the data passed to every template. Handlers fill in what their
// page needs; User is set from the request context for the layout.
type Page struct {
	User       *models.User
	Error      string
	Success    string
	Form       map[string]string
	Event      *models.EventDetails
	Events     []models.EventDetails
	Registered bool
}

type Renderer struct {
	tmpl *template.Template
	log  *slog.Logger
}

func NewRenderer(log *slog.Logger) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{tmpl: tmpl, log: log}, nil
}

// HTML renders the named template into a buffer first so a template error
// never produces a half-written page.
func (r *Renderer) HTML(w http.ResponseWriter, status int, name string, page Page) {
	var buf bytes.Buffer

	if err := r.tmpl.ExecuteTemplate(&buf, name, page); err != nil {
		r.log.Error("failed to render template", slog.String("template", name), sl.Err(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// NotFound renders the 404 page.
func (r *Renderer) NotFound(w http.ResponseWriter, page Page) {
	page.Error = "Page not found."
	r.HTML(w, http.StatusNotFound, "error.html", page)
}

// ServerError renders the generic 500 page.
func (r *Renderer) ServerError(w http.ResponseWriter, page Page) {
	page.Error = "Something went wrong. Please try again later."
	r.HTML(w, http.StatusInternalServerError, "error.html", page)
}
