package membership

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)
	r := gin.New()
	r.GET("/memberships", h.List)
	r.POST("/admin/memberships", h.Create)
	return r
}

func TestHandler_List(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything, false).Return([]Membership{{ID: 1, Name: "Mensual"}}, nil)
	r := setupRouter(NewService(repo))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/memberships", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mensual")
}

func TestHandler_Create(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(&Membership{ID: 2, Name: "Bono 10"}, nil)
	r := setupRouter(NewService(repo))

	tests := []struct {
		name string
		body string
		code int
	}{
		{"valid", `{"name":"Bono 10","price_cents":6000,"total_classes":10}`, http.StatusCreated},
		{"missing name", `{"price_cents":6000,"total_classes":10}`, http.StatusBadRequest},
		{"unbounded plan", `{"name":"Libre","price_cents":6000}`, http.StatusBadRequest},
		{"negative price", `{"name":"X","price_cents":-1,"duration_days":30}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/memberships", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}
