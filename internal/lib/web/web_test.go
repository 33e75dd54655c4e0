package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"eventSignup/internal/lib/logger/handlers/slogdiscard"
	"eventSignup/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererHTML(t *testing.T) {
	t.Parallel()

	renderer, err := NewRenderer(slogdiscard.NewDiscardLogger())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	renderer.HTML(rr, http.StatusOK, "index.html", Page{
		Events: []models.EventDetails{
			{
				Event:      models.Event{ID: 1, Title: "Meetup", Location: "Town Hall", StartsAt: "2026-09-12 19:00", Capacity: 50},
				HostName:   "Alice",
				Registered: 12,
			},
		},
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "Meetup")
	assert.Contains(t, rr.Body.String(), "hosted by Alice")
}

func TestRendererEscapesUserContent(t *testing.T) {
	t.Parallel()

	renderer, err := NewRenderer(slogdiscard.NewDiscardLogger())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	renderer.HTML(rr, http.StatusOK, "event_detail.html", Page{
		Event: &models.EventDetails{
			Event:    models.Event{ID: 1, Title: "<script>alert(1)</script>", Location: "Town Hall"},
			HostName: "Alice",
		},
	})

	assert.NotContains(t, rr.Body.String(), "<script>alert(1)</script>")
	assert.Contains(t, rr.Body.String(), "&lt;script&gt;")
}

func TestRendererNotFound(t *testing.T) {
	t.Parallel()

	renderer, err := NewRenderer(slogdiscard.NewDiscardLogger())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	renderer.NotFound(rr, Page{})

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Page not found.")
}

func TestRendererServerError(t *testing.T) {
	t.Parallel()

	renderer, err := NewRenderer(slogdiscard.NewDiscardLogger())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	renderer.ServerError(rr, Page{})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Something went wrong")
}

func TestValidationMessage(t *testing.T) {
	t.Parallel()

	type form struct {
		Title    string `validate:"required"`
		Email    string `validate:"required"`
		Capacity int    `validate:"required,min=1,max=5000"`
	}

	testCases := []struct {
		name string
		form form
		want []string
	}{
		{
			name: "Missing fields",
			form: form{Capacity: 10},
			want: []string{"title is required", "email is required"},
		},
		{
			name: "Capacity too large",
			form: form{Title: "x", Email: "a@b.c", Capacity: 9999},
			want: []string{"capacity must be at most 5000"},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := validator.New().Struct(tc.form)
			require.Error(t, err)

			validateErr, ok := err.(validator.ValidationErrors)
			require.True(t, ok)

			msg := ValidationMessage(validateErr)
			for _, want := range tc.want {
				assert.Contains(t, msg, want)
			}
		})
	}
}
