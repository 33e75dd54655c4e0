package logIn

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"eventSignup/internal/http-server/handlers/auth/logIn/mocks"
	"eventSignup/internal/lib/logger/handlers/slogdiscard"
	"eventSignup/internal/lib/web"
	"eventSignup/internal/models"
	"eventSignup/internal/storage"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testUser(t *testing.T, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &models.User{
		ID:           1,
		Name:         "Alice",
		Email:        "alice@x.com",
		PasswordHash: string(hash),
	}
}

func postLogin(t *testing.T, handler http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	return rr
}

func TestLogInHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		form           url.Values
		mockSetup      func(t *testing.T, m *mocks.UserProvider)
		expectedStatus int
		checkBody      func(t *testing.T, body string)
		wantRedirect   string
	}{
		{
			name: "Success",
			form: url.Values{"email": {"alice@x.com"}, "password": {"secret"}},
			mockSetup: func(t *testing.T, m *mocks.UserProvider) {
				m.On("UserByEmail", "alice@x.com").Return(testUser(t, "secret"), nil)
			},
			expectedStatus: http.StatusSeeOther,
			wantRedirect:   "/",
		},
		{
			name: "Email normalized before lookup",
			form: url.Values{"email": {" ALICE@X.com "}, "password": {"secret"}},
			mockSetup: func(t *testing.T, m *mocks.UserProvider) {
				m.On("UserByEmail", "alice@x.com").Return(testUser(t, "secret"), nil)
			},
			expectedStatus: http.StatusSeeOther,
			wantRedirect:   "/",
		},
		{
			name: "Unknown email",
			form: url.Values{"email": {"nobody@x.com"}, "password": {"secret"}},
			mockSetup: func(t *testing.T, m *mocks.UserProvider) {
				m.On("UserByEmail", "nobody@x.com").Return(nil, storage.ErrUserNotFound)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "Invalid email or password.")
			},
		},
		{
			name: "Wrong password",
			form: url.Values{"email": {"alice@x.com"}, "password": {"wrong"}},
			mockSetup: func(t *testing.T, m *mocks.UserProvider) {
				m.On("UserByEmail", "alice@x.com").Return(testUser(t, "secret"), nil)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "Invalid email or password.")
			},
		},
		{
			name:           "Missing email",
			form:           url.Values{"email": {""}, "password": {"secret"}},
			mockSetup:      func(t *testing.T, m *mocks.UserProvider) {},
			expectedStatus: http.StatusUnprocessableEntity,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "email is required")
			},
		},
		{
			name:           "Missing password",
			form:           url.Values{"email": {"alice@x.com"}, "password": {""}},
			mockSetup:      func(t *testing.T, m *mocks.UserProvider) {},
			expectedStatus: http.StatusUnprocessableEntity,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "password is required")
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			renderer, err := web.NewRenderer(slogdiscard.NewDiscardLogger())
			require.NoError(t, err)

			mockUsers := mocks.NewUserProvider(t)
			tc.mockSetup(t, mockUsers)

			sessions := scs.New()
			handler := sessions.LoadAndSave(New(logger, mockUsers, sessions, renderer))

			rr := postLogin(t, handler, tc.form)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.wantRedirect != "" {
				assert.Equal(t, tc.wantRedirect, rr.Header().Get("Location"))
				assert.NotEmpty(t, rr.Header().Get("Set-Cookie"), "expected session cookie")
			}

			if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}

// Unknown email and wrong password must be indistinguishable to the client.
func TestLogInGenericFailure(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	renderer, err := web.NewRenderer(slogdiscard.NewDiscardLogger())
	require.NoError(t, err)

	mockUsers := mocks.NewUserProvider(t)
	mockUsers.On("UserByEmail", "nobody@x.com").Return(nil, storage.ErrUserNotFound)
	mockUsers.On("UserByEmail", "alice@x.com").Return(testUser(t, "secret"), nil)

	sessions := scs.New()
	handler := sessions.LoadAndSave(New(logger, mockUsers, sessions, renderer))

	unknownEmail := postLogin(t, handler, url.Values{"email": {"nobody@x.com"}, "password": {"secret"}})
	wrongPassword := postLogin(t, handler, url.Values{"email": {"alice@x.com"}, "password": {"wrong"}})

	assert.Equal(t, unknownEmail.Code, wrongPassword.Code)

	// The rendered form echoes the submitted email, so compare with it stripped.
	a := strings.ReplaceAll(unknownEmail.Body.String(), "nobody@x.com", "")
	b := strings.ReplaceAll(wrongPassword.Body.String(), "alice@x.com", "")
	assert.Equal(t, a, b, "failure responses must not reveal which part was wrong")
}

func TestLogInForm(t *testing.T) {
	t.Parallel()

	renderer, err := web.NewRenderer(slogdiscard.NewDiscardLogger())
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/login", nil)
	rr := httptest.NewRecorder()

	Form(renderer).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Log in")
}
