package subscription

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gymdesk/internal/settings"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHandler_ExpireNow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := new(MockRepository)
	repo.On("ExpireEndedBefore", mock.Anything, mock.Anything).Return([]Expired{{SubscriptionID: 1, AthleteID: 1}}, nil)
	repo.On("ExpireExhausted", mock.Anything).Return([]Expired{}, nil)

	h := NewHandler(newTestService(repo, &settings.Settings{Timezone: "UTC"}, nil, time.Now()))
	r := gin.New()
	r.POST("/admin/jobs/expire-subscriptions", h.ExpireNow)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/jobs/expire-subscriptions", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"expired_by_date":1`)
}

func TestHandler_ListForAthlete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := new(MockRepository)
	repo.On("ListByAthlete", mock.Anything, 4).Return(nil, errors.New("boom"))

	h := NewHandler(NewService(repo, nil, nil))
	r := gin.New()
	r.GET("/athletes/:athleteID/subscriptions", h.ListForAthlete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/athletes/4/subscriptions", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/athletes/x/subscriptions", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
