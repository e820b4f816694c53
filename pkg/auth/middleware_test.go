package auth

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/haeunkim/luthier-crm/pkg/logger"
)

type recordingReporter struct {
	mu       sync.Mutex
	captured []error
}

func (r *recordingReporter) CaptureException(err error, path string, metadata map[string]string, severity string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.captured = append(r.captured, err)
}

func (r *recordingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.captured)
}

func newTestRouter(t *testing.T, guard *Guard) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", guard.Middleware(), func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"data": p.ID})
	})
	return router
}

func perform(router *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestParseRunMode(t *testing.T) {
	assert.Equal(t, ModeTest, ParseRunMode("test"))
	assert.Equal(t, ModeProduction, ParseRunMode("Production"))
	assert.Equal(t, ModeProduction, ParseRunMode("prod"))
	assert.Equal(t, ModeDevelopment, ParseRunMode("development"))
	assert.Equal(t, ModeDevelopment, ParseRunMode("anything"))
}

func TestGuardTestModeAlwaysAuthorized(t *testing.T) {
	log := logger.NewFromZap(zaptest.NewLogger(t))
	guard := NewGuard(ModeTest, false, nil, nil, log)
	router := newTestRouter(t, guard)

	w := perform(router, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuardBypassHeaderOutsideProduction(t *testing.T) {
	log := logger.NewFromZap(zaptest.NewLogger(t))
	guard := NewGuard(ModeDevelopment, false, nil, nil, log)
	router := newTestRouter(t, guard)

	w := perform(router, map[string]string{BypassHeader: "true"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuardBypassIgnoredInProduction(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer backend.Close()

	verifier, err := NewHTTPVerifier(backend.URL, "anon-key")
	require.NoError(t, err)

	reporter := &recordingReporter{}
	log := logger.NewFromZap(zaptest.NewLogger(t))
	// Bypass flag set, bypass header set: production still verifies.
	guard := NewGuard(ModeProduction, true, verifier, reporter, log)
	router := newTestRouter(t, guard)

	w := perform(router, map[string]string{
		BypassHeader:    "true",
		"Authorization": "Bearer not-a-real-token",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized","message":"invalid or expired session"}`, w.Body.String())
	// Backend-rejected tokens are benign and never reported.
	assert.Equal(t, 0, reporter.count())
}

func TestGuardMissingTokenIsBenign(t *testing.T) {
	reporter := &recordingReporter{}
	log := logger.NewFromZap(zaptest.NewLogger(t))
	guard := NewGuard(ModeProduction, false, nil, reporter, log)
	router := newTestRouter(t, guard)

	w := perform(router, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, reporter.count())
}

func TestGuardMissingConfigurationIsReported(t *testing.T) {
	reporter := &recordingReporter{}
	log := logger.NewFromZap(zaptest.NewLogger(t))
	guard := NewGuard(ModeProduction, false, nil, reporter, log)
	router := newTestRouter(t, guard)

	w := perform(router, map[string]string{"Authorization": "Bearer some-token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 1, reporter.count())
}

func TestGuardExpiredTokenSkipsBackend(t *testing.T) {
	var backendCalls int
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendCalls++
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	verifier, err := NewHTTPVerifier(backend.URL, "anon-key")
	require.NoError(t, err)

	reporter := &recordingReporter{}
	log := logger.NewFromZap(zaptest.NewLogger(t))
	guard := NewGuard(ModeProduction, false, verifier, reporter, log)
	router := newTestRouter(t, guard)

	token := signedToken(t, time.Now().Add(-time.Hour))
	w := perform(router, map[string]string{"Authorization": "Bearer " + token})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, backendCalls)
	assert.Equal(t, 0, reporter.count())
}

func TestGuardBackendFailureIsReported(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer backend.Close()

	verifier, err := NewHTTPVerifier(backend.URL, "anon-key")
	require.NoError(t, err)

	reporter := &recordingReporter{}
	log := logger.NewFromZap(zaptest.NewLogger(t))
	guard := NewGuard(ModeProduction, false, verifier, reporter, log)
	router := newTestRouter(t, guard)

	token := signedToken(t, time.Now().Add(time.Hour))
	w := perform(router, map[string]string{"Authorization": "Bearer " + token})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 1, reporter.count())
}

func TestGuardSuccessfulVerification(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"user-1","email":"owner@shop.test","role":"authenticated"}`))
	}))
	defer backend.Close()

	verifier, err := NewHTTPVerifier(backend.URL, "anon-key")
	require.NoError(t, err)

	log := logger.NewFromZap(zaptest.NewLogger(t))
	guard := NewGuard(ModeProduction, false, verifier, &recordingReporter{}, log)
	router := newTestRouter(t, guard)

	token := signedToken(t, time.Now().Add(time.Hour))
	w := perform(router, map[string]string{"Authorization": "Bearer " + token})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestNewHTTPVerifierRequiresConfig(t *testing.T) {
	_, err := NewHTTPVerifier("", "key")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewHTTPVerifier("http://localhost", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
