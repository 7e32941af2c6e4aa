package athlete

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupRouter(repo *MockRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(repo))
	r := gin.New()
	r.GET("/athletes", h.ListAthletes)
	r.POST("/athletes", h.CreateAthlete)
	r.GET("/athletes/:athleteID", h.GetAthlete)
	r.POST("/athletes/:athleteID/status", h.SetStatus)
	return r
}

func TestHandler_CreateAthlete(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		repoFn func(*MockRepository)
		status int
	}{
		{"missing name", `{"pin":"1234"}`, func(*MockRepository) {}, http.StatusBadRequest},
		{"short pin", `{"first_name":"Ana","pin":"123"}`, func(*MockRepository) {}, http.StatusBadRequest},
		{"bad email", `{"first_name":"Ana","email":"nope"}`, func(*MockRepository) {}, http.StatusBadRequest},
		{
			"pin taken",
			`{"first_name":"Ana","pin":"1234"}`,
			func(m *MockRepository) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, &pq.Error{Code: "23505", Constraint: pinConstraint})
			},
			http.StatusConflict,
		},
		{
			"created",
			`{"first_name":"Ana","pin":"1234","tags":["kids"]}`,
			func(m *MockRepository) {
				m.On("Create", mock.Anything, mock.Anything).Return(&Athlete{ID: 1, FirstName: "Ana", PIN: strPtr("1234")}, nil)
			},
			http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.repoFn(repo)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/athletes", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			setupRouter(repo).ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.NotContains(t, w.Body.String(), `"pin"`)
		})
	}
}

func TestHandler_GetAthlete_NotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, 9).Return(nil, ErrAthleteNotFound)

	w := httptest.NewRecorder()
	setupRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/athletes/9", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_SetStatus_Validates(t *testing.T) {
	repo := new(MockRepository)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/athletes/3/status", bytes.NewBufferString(`{"status":"BANNED"}`))
	req.Header.Set("Content-Type", "application/json")
	setupRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ListAthletes_BadStatus(t *testing.T) {
	repo := new(MockRepository)

	w := httptest.NewRecorder()
	setupRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/athletes?status=gone", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
