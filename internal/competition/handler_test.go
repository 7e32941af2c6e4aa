package competition

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"gymdesk/internal/athlete"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)
	r := gin.New()
	r.GET("/competitions", h.ListCompetitions)
	r.POST("/admin/competitions", h.CreateCompetition)
	r.GET("/competitions/:competitionID/entries", h.ListEntries)
	r.POST("/competitions/:competitionID/entries", h.Register)
	r.POST("/entries/:entryID/withdraw", h.Withdraw)
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Register(t *testing.T) {
	repo := new(MockRepository)
	athletes := new(MockAthletes)
	repo.On("GetByID", mock.Anything, 1).Return(&Competition{ID: 1}, nil)
	athletes.On("GetAthlete", mock.Anything, 5).Return(&athlete.Athlete{ID: 5}, nil)
	repo.On("CreateEntry", mock.Anything, mock.Anything).Return(&Entry{ID: 3}, nil).Once()
	repo.On("CreateEntry", mock.Anything, mock.Anything).
		Return(nil, &pq.Error{Code: "23505", Constraint: "competition_entries_active_key"}).Once()
	r := setupRouter(NewService(repo, athletes))

	w := postJSON(r, "/competitions/1/entries", `{"athlete_id":5}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/competitions/1/entries", `{"athlete_id":5}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(r, "/competitions/1/entries", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CreateCompetition(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(&Competition{ID: 1}, nil)
	r := setupRouter(NewService(repo, new(MockAthletes)))

	w := postJSON(r, "/admin/competitions", `{"name":"Open","event_date":"2024-06-15"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/admin/competitions", `{"name":"Open","event_date":"June 15"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Withdraw_BadID(t *testing.T) {
	r := setupRouter(NewService(new(MockRepository), new(MockAthletes)))

	w := postJSON(r, "/entries/zero/withdraw", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
