package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employeeapi/src/app/server"
	"employeeapi/src/infra/config"
	"employeeapi/src/infra/logger"
	"employeeapi/src/infra/metrics"
	"employeeapi/src/infra/repo"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := &config.Config{
		Server:  config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Store:   config.StoreConfig{Kind: config.StoreMemory},
		Log:     config.LogConfig{Level: "error", Format: "plain"},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	log := logger.Discard()
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	srv := server.New(cfg, log, server.Deps{
		Employees: repo.NewMemoryRepository(log, m),
		Registry:  reg,
		Metrics:   m,
	})
	return srv.Router()
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, w)
	detail, ok := body["error"].(map[string]any)
	require.True(t, ok, w.Body.String())
	return detail["code"].(string)
}

const alice = `{"name":"Alice","email":"a@x.io","department":"R&D","salary":1000}`

func TestEmployeeLifecycle(t *testing.T) {
	r := newTestServer(t)

	w := do(t, r, http.MethodPost, "/employees", alice)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	id := created["id"].(string)
	assert.Len(t, id, 24)
	assert.Equal(t, "Alice", created["name"])
	assert.NotEmpty(t, created["dateOfJoining"])
	assert.NotEmpty(t, created["dateOfBirth"])

	w = do(t, r, http.MethodGet, "/employees/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@x.io", decode(t, w)["email"])

	w = do(t, r, http.MethodGet, "/employees", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0]["id"])

	w = do(t, r, http.MethodPut, "/employees/"+id, `{"salary":2000}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode(t, w)
	assert.Equal(t, "Employee updated successfully", updated["message"])
	employee := updated["updatedEmployee"].(map[string]any)
	assert.Equal(t, 2000.0, employee["salary"])
	assert.Equal(t, "Alice", employee["name"])

	w = do(t, r, http.MethodDelete, "/employees/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Employee deleted successfully", decode(t, w)["message"])

	w = do(t, r, http.MethodGet, "/employees/"+id, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Employee not found", decode(t, w)["error"].(map[string]any)["message"])

	w = do(t, r, http.MethodDelete, "/employees/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateIgnoresUnknownKeys(t *testing.T) {
	r := newTestServer(t)

	w := do(t, r, http.MethodPost, "/employees", alice)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)

	w = do(t, r, http.MethodPut, "/employees/"+id, `{"department":"Ops","role":"admin","id":"ffffffffffffffffffffffff"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	employee := decode(t, w)["updatedEmployee"].(map[string]any)
	assert.Equal(t, id, employee["id"])
	assert.Equal(t, "Ops", employee["department"])
	assert.NotContains(t, employee, "role")
}

func TestUpdateErrors(t *testing.T) {
	r := newTestServer(t)

	w := do(t, r, http.MethodPut, "/employees/abc", `{"salary":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)["error"].(map[string]any)
	assert.Equal(t, "BAD_REQUEST", body["code"])
	assert.Equal(t, "Invalid Employee ID format", body["message"])

	w = do(t, r, http.MethodPut, "/employees/0123456789abcdef01234567", `{"salary":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/employees", alice)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)

	w = do(t, r, http.MethodPut, "/employees/"+id, `{"name":"   "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "name", decode(t, w)["error"].(map[string]any)["field"])

	w = do(t, r, http.MethodPut, "/employees/"+id, `{"salary":"lots"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body = decode(t, w)["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Equal(t, "salary", body["field"])
	assert.Equal(t, "must be a number", body["message"])

	for _, field := range []string{"name", "email", "department", "salary"} {
		w = do(t, r, http.MethodPut, "/employees/"+id, `{"`+field+`":null}`)
		require.Equal(t, http.StatusBadRequest, w.Code, field)
		body = decode(t, w)["error"].(map[string]any)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
		assert.Equal(t, field, body["field"])
	}

	w = do(t, r, http.MethodGet, "/employees/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alice", decode(t, w)["name"])
}

func TestRepeatedUpdateReturnsSameRecord(t *testing.T) {
	r := newTestServer(t)

	w := do(t, r, http.MethodPost, "/employees", alice)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)

	first := do(t, r, http.MethodPut, "/employees/"+id, `{"department":"Eng"}`)
	require.Equal(t, http.StatusOK, first.Code)
	second := do(t, r, http.MethodPut, "/employees/"+id, `{"department":"Eng"}`)
	require.Equal(t, http.StatusOK, second.Code)

	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestCreateErrors(t *testing.T) {
	r := newTestServer(t)

	w := do(t, r, http.MethodPost, "/employees", `{"name":"Bob","email":"b@x.io","salary":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "department", decode(t, w)["error"].(map[string]any)["field"])

	w = do(t, r, http.MethodPost, "/employees", `{not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, w))

	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/employees", alice).Code)
	w = do(t, r, http.MethodPost, "/employees", alice)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", errorCode(t, w))
}

func TestMalformedIDIsNotFound(t *testing.T) {
	r := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/employees/not-an-id", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, "/employees/not-an-id", "").Code)
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestServer(t)

	w := do(t, r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])

	w = do(t, r, http.MethodGet, "/health/detailed", "")
	require.Equal(t, http.StatusOK, w.Code)
	components := decode(t, w)["components"].(map[string]any)
	assert.Equal(t, "healthy", components["store"].(map[string]any)["status"])

	w = do(t, r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "employeeapi_http_requests_total")
	assert.Contains(t, w.Body.String(), `route="/health/detailed"`)
}

func TestNoRoute(t *testing.T) {
	r := newTestServer(t)

	w := do(t, r, http.MethodGet, "/nowhere", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
