package staff

import (
	"bytes"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"gymdesk/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)
	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.Refresh)
	r.GET("/me", auth.AuthMiddleware(testSecret), h.Me)
	r.POST("/admin/staff", h.Create)
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Login(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByEmail", mock.Anything, "ana@gym.test").Return(coach(t), nil)
	repo.On("FindByEmail", mock.Anything, "ghost@gym.test").Return(nil, sql.ErrNoRows)
	r := setupRouter(NewService(repo, testSecret))

	w := postJSON(r, "/auth/login", `{"email":"ana@gym.test","password":"correct-horse"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")
	assert.NotContains(t, w.Body.String(), "password_hash")

	w = postJSON(r, "/auth/login", `{"email":"ghost@gym.test","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/auth/login", `{"email":"not-an-email","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Me(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, 3).Return(coach(t), nil)
	r := setupRouter(NewService(repo, testSecret))

	token, err := auth.GenerateAccessToken(3, "ana@gym.test", auth.RoleCoach, testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ana@gym.test")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_Create_Conflict(t *testing.T) {
	repo := new(MockRepository)
	repo.On("EmailExists", mock.Anything, "ana@gym.test").Return(true, nil)
	r := setupRouter(NewService(repo, testSecret))

	w := postJSON(r, "/admin/staff", `{"name":"Ana","email":"ana@gym.test","password":"password1","role":"coach"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(r, "/admin/staff", `{"name":"Ana","email":"ana@gym.test","password":"password1","role":"owner"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
