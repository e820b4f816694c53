package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/haeunkim/luthier-crm/internal/adapter/api/dto"
	clientdomain "github.com/haeunkim/luthier-crm/internal/domain/client"
	"github.com/haeunkim/luthier-crm/pkg/logger"
)

func newClientRouter(t *testing.T, repo *fakeClientRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := NewClientController(repo, logger.NewFromZap(zaptest.NewLogger(t)))

	r := gin.New()
	clients := r.Group("/clients")
	clients.POST("", ctrl.Create)
	clients.GET("", ctrl.List)
	clients.GET("/:id", ctrl.Get)
	clients.PUT("/:id", ctrl.Update)
	clients.DELETE("/:id", ctrl.Delete)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestClientCreateGeneratesNumber(t *testing.T) {
	repo := &fakeClientRepo{}
	r := newClientRouter(t, repo)

	w := postJSON(t, r, "/clients", `{"first_name":"Mina","last_name":"Cho","email":"mina@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.ClientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.ClientNumber)
	assert.Equal(t, "CL0000001", *resp.ClientNumber)

	// next client gets the next number
	w = postJSON(t, r, "/clients", `{"first_name":"Juno","last_name":"Lee"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.ClientNumber)
	assert.Equal(t, "CL0000002", *resp.ClientNumber)
}

func TestClientCreateWithSuppliedNumber(t *testing.T) {
	repo := &fakeClientRepo{}
	r := newClientRouter(t, repo)

	w := postJSON(t, r, "/clients", `{"first_name":"Mina","client_number":"cl42"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.ClientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.ClientNumber)
	assert.Equal(t, "CL0000042", *resp.ClientNumber)
}

func TestClientCreateDuplicateNumber(t *testing.T) {
	existing, err := clientdomain.NewClient("Grace", "Park", "")
	require.NoError(t, err)
	existing.SetClientNumber("CL0000042")

	repo := &fakeClientRepo{clients: []*clientdomain.Client{existing}}
	r := newClientRouter(t, repo)

	w := postJSON(t, r, "/clients", `{"first_name":"Mina","client_number":"CL0000042"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestClientCreateRejectsShortFormOfTakenNumber(t *testing.T) {
	repo := &fakeClientRepo{}
	r := newClientRouter(t, repo)

	w := postJSON(t, r, "/clients", `{"first_name":"Mina"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.ClientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.ClientNumber)
	require.Equal(t, "CL0000001", *resp.ClientNumber)

	// CL1 spells the same logical number as the generated CL0000001
	w = postJSON(t, r, "/clients", `{"first_name":"Juno","client_number":"CL1"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestClientCreateRejectsEmptyName(t *testing.T) {
	r := newClientRouter(t, &fakeClientRepo{})

	w := postJSON(t, r, "/clients", `{"email":"no-name@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClientGetNotFound(t *testing.T) {
	r := newClientRouter(t, &fakeClientRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clients/6f1c8a3e-1b9e-4f6e-9d4b-2f8f6f0a1b2c", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
