package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employeeapi/src/app/middleware"
	"employeeapi/src/infra/config"
	"employeeapi/src/infra/logger"
	"employeeapi/src/infra/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, middleware.GetRequestID(c)) })

	t.Run("generated", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(rec.Body.String())
		require.NoError(t, err)
		assert.Equal(t, rec.Body.String(), rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("reused", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "trace-123")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, "trace-123", rec.Body.String())
	})

	t.Run("oversized is replaced", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, strings.Repeat("a", 500))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Len(t, rec.Body.String(), 36)
	})
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(config.LogConfig{Level: "error", Format: "json"}, &buf)

	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.RequestID())
	r.GET("/boom", func(*gin.Context) { panic("secret detail") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, rec.Body.String(), "secret detail")
	assert.Contains(t, buf.String(), "secret detail")
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(middleware.CORS())
	r.PUT("/employees/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/employees/1", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(config.LogConfig{Level: "info", Format: "plain"}, &buf)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(log))
	r.POST("/employees", func(c *gin.Context) {
		c.JSON(http.StatusConflict, gin.H{"error": "dup"})
	})

	req := httptest.NewRequest(http.MethodPost, "/employees?x=1", strings.NewReader(`{"name":"A"}`))
	req.Header.Set(middleware.RequestIDHeader, "req-9")
	r.ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	assert.Contains(t, line, "| WARN | req-9 | POST /employees?x=1 | 409 |")
	assert.Contains(t, line, `request: {"name":"A"}`)
	assert.Contains(t, line, `response: {"error":"dup"}`)
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	m := metrics.NewMetrics(prometheus.NewRegistry())
	r := gin.New()
	r.Use(middleware.Metrics(m))
	r.GET("/employees/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/employees/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.InDelta(t, 1, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/employees/:id", "404")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "unmatched", "404")), 0)
}
