package getEventInfo

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventSignup/internal/http-server/handlers/event/getEventInfo/mocks"
	"eventSignup/internal/http-server/middleware/mwauth"
	"eventSignup/internal/lib/logger/handlers/slogdiscard"
	"eventSignup/internal/lib/web"
	"eventSignup/internal/models"
	"eventSignup/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() *models.EventDetails {
	return &models.EventDetails{
		Event: models.Event{
			ID:          5,
			HostID:      7,
			Title:       "Meetup",
			Description: "A casual get-together",
			Location:    "Town Hall",
			StartsAt:    "2026-09-12 19:00",
			Capacity:    50,
		},
		HostName:   "Alice",
		Registered: 12,
	}
}

func TestGetEventInfoHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		url            string
		user           *models.User
		mockSetup      func(m *mocks.EventGetter)
		expectedStatus int
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "Anonymous viewer",
			url:  "/events/5",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("GetEvent", int64(5)).Return(testEvent(), nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "Meetup")
				assert.Contains(t, body, "12 / 50 registered")
				assert.Contains(t, body, "to register for this event")
			},
		},
		{
			name: "Authenticated and not registered",
			url:  "/events/5",
			user: &models.User{ID: 9, Name: "Bob"},
			mockSetup: func(m *mocks.EventGetter) {
				m.On("GetEvent", int64(5)).Return(testEvent(), nil)
				m.On("IsRegistered", int64(5), int64(9)).Return(false, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "/events/5/register")
			},
		},
		{
			name: "Authenticated and registered",
			url:  "/events/5",
			user: &models.User{ID: 9, Name: "Bob"},
			mockSetup: func(m *mocks.EventGetter) {
				m.On("GetEvent", int64(5)).Return(testEvent(), nil)
				m.On("IsRegistered", int64(5), int64(9)).Return(true, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "You are registered for this event.")
			},
		},
		{
			name: "Event not found",
			url:  "/events/404",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("GetEvent", int64(404)).Return(nil, storage.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Non-numeric id",
			url:            "/events/nope",
			mockSetup:      func(m *mocks.EventGetter) {},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Storage failure",
			url:  "/events/5",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("GetEvent", int64(5)).Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			renderer, err := web.NewRenderer(slogdiscard.NewDiscardLogger())
			require.NoError(t, err)

			mockEvents := mocks.NewEventGetter(t)
			tc.mockSetup(mockEvents)

			router := chi.NewRouter()
			if tc.user != nil {
				router.Use(func(next http.Handler) http.Handler {
					return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
						next.ServeHTTP(w, r.WithContext(mwauth.ContextWithUser(r.Context(), tc.user)))
					})
				})
			}
			router.Get("/events/{id}", New(logger, mockEvents, renderer))

			req, err := http.NewRequest("GET", tc.url, nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}
