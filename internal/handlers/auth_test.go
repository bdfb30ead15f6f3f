package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jobdeck-dev/jobdeck/internal/auth"
	"github.com/jobdeck-dev/jobdeck/internal/middleware"
	"github.com/jobdeck-dev/jobdeck/internal/store"
	"github.com/jobdeck-dev/jobdeck/internal/testutil"
	"github.com/jobdeck-dev/jobdeck/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func asUser(id uint, username string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(types.ContextUserKey, middleware.AuthenticatedUser{
			ID:       id,
			Username: username,
			Email:    username + "@example.com",
		})
		ctx.Next()
	}
}

func newAuthRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, mock := testutil.NewMockDB(t)

	jwtManager, err := auth.NewManager("test-secret")
	require.NoError(t, err)

	h := NewAuthHandler(
		store.NewUserStore(conn),
		store.NewSavedJobStore(conn),
		jwtManager,
		"",
		testutil.MakeNoopLogger(),
	)

	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.GET("/profile", asUser(1, "asha"), h.Profile)
	r.GET("/preferences", asUser(1, "asha"), h.GetPreferences)
	r.PUT("/preferences", asUser(1, "asha"), h.UpdatePreferences)

	return r, mock
}

func postJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRequiresAllFields(t *testing.T) {
	r, mock := newAuthRouter(t)

	w := postJSON(r, http.MethodPost, "/register", `{"username":"asha","email":"","password":"secret1","confirm_password":"secret1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "All fields are required")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRejectsPasswordMismatch(t *testing.T) {
	r, mock := newAuthRouter(t)

	w := postJSON(r, http.MethodPost, "/register", `{"username":"asha","email":"asha@example.com","password":"secret1","confirm_password":"secret2"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords do not match")
	// No statement was expected: a failed validation must not touch storage.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	r, mock := newAuthRouter(t)

	w := postJSON(r, http.MethodPost, "/register", `{"username":"asha","email":"asha@example.com","password":"abc","confirm_password":"abc"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least 6 characters")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRejectsDuplicateIdentity(t *testing.T) {
	r, mock := newAuthRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE \(username = .+ OR email = .+\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email"}).
			AddRow(1, "asha", "other@example.com"))

	w := postJSON(r, http.MethodPost, "/register", `{"username":"asha","email":"asha@example.com","password":"secret1","confirm_password":"secret1"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterSuccess(t *testing.T) {
	r, mock := newAuthRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE \(username = .+ OR email = .+\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	w := postJSON(r, http.MethodPost, "/register", `{"username":"asha","email":"Asha@Example.com","password":"secret1","confirm_password":"secret1"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"asha"`)
	assert.Contains(t, w.Body.String(), `"email":"asha@example.com"`)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, types.SessionCookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownUserGetsGenericError(t *testing.T) {
	r, mock := newAuthRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := postJSON(r, http.MethodPost, "/login", `{"username":"ghost","password":"whatever"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPasswordGetsSameGenericError(t *testing.T) {
	r, mock := newAuthRouter(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash"}).
			AddRow(1, "asha", "asha@example.com", string(hash)))

	w := postJSON(r, http.MethodPost, "/login", `{"username":"asha","password":"wrong-password"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginSuccess(t *testing.T) {
	r, mock := newAuthRouter(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash"}).
			AddRow(1, "asha", "asha@example.com", string(hash)))

	w := postJSON(r, http.MethodPost, "/login", `{"username":"asha","password":"correct-password"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome back, asha!")

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, types.SessionCookieName, cookies[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutExpiresCookie(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := postJSON(r, http.MethodPost, "/logout", ``)

	assert.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, types.SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestProfile(t *testing.T) {
	r, mock := newAuthRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "preferred_role", "preferred_location", "email_alerts"}).
			AddRow(1, "asha", "asha@example.com", "golang developer", "Delhi", true))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "saved_jobs" WHERE user_id = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	w := postJSON(r, http.MethodGet, "/profile", ``)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"saved_count":2`)
	assert.Contains(t, w.Body.String(), `"preferred_role":"golang developer"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePreferences(t *testing.T) {
	r, mock := newAuthRouter(t)

	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := postJSON(r, http.MethodPut, "/preferences", `{"job_role":"  golang developer  ","location":" Delhi ","email_alerts":true}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Preferences updated successfully")
	require.NoError(t, mock.ExpectationsWereMet())
}
