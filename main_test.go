package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"research-atlas/config"
	"research-atlas/providers"
	"research-atlas/providers/emailjs"
	"research-atlas/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(t)
	cfg := &config.Config{StoreID: "sheet-1", StoreWorksheet: "Projects"}

	conn := services.NewConnectorWith(cfg, log, func(context.Context) (providers.Worksheet, error) {
		return nil, errors.New("dial tcp: i/o timeout")
	})
	loader := services.NewLoader(conn, log)
	submissions := services.NewSubmissionService(
		services.NewAppender(conn, log),
		services.NewNotifier(emailjs.NewSender(cfg, log), log),
		nil,
		log,
	)
	return newRouter(loader, submissions, log)
}

func do(t *testing.T, r http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestProjectsFallback(t *testing.T) {
	r := testRouter(t)

	w, out := do(t, r, http.MethodGet, "/projects", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fallback", out["source"])
	assert.Equal(t, "failed", out["outcome"])
	assert.Equal(t, "Store connection failed: dial tcp: i/o timeout", out["diagnostic"])
	assert.Equal(t, float64(3), out["count"])
}

func TestProjectsCountryFilter(t *testing.T) {
	r := testRouter(t)

	_, out := do(t, r, http.MethodGet, "/projects?country=Kenya", "")
	assert.Equal(t, float64(1), out["count"])

	_, out = do(t, r, http.MethodGet, "/projects?country=all", "")
	assert.Equal(t, float64(3), out["count"])
}

func TestCountries(t *testing.T) {
	_, out := do(t, testRouter(t), http.MethodGet, "/countries", "")
	assert.Equal(t, []any{"all", "Bangladesh", "Kenya", "Nigeria"}, out["countries"])
}

func TestMarkers(t *testing.T) {
	_, out := do(t, testRouter(t), http.MethodGet, "/markers?country=Nigeria", "")
	markers, ok := out["markers"].([]any)
	require.True(t, ok)
	require.Len(t, markers, 1)
	assert.Equal(t, "Lagos", markers[0].(map[string]any)["city"])

	_, out = do(t, testRouter(t), http.MethodGet, "/markers?country=Atlantis", "")
	assert.Equal(t, []any{}, out["markers"])
}

func TestSubmissionWithUnreachableStore(t *testing.T) {
	r := testRouter(t)

	w, out := do(t, r, http.MethodPost, "/submissions",
		`{"country":"Ghana","city":"Accra","lat":5.6,"lon":"-0.18","project_name":"Coastal Erosion Log"}`)

	require.Equal(t, http.StatusOK, w.Code)
	store := out["store"].(map[string]any)
	assert.Equal(t, false, store["ok"])
	assert.Equal(t, "Store connection failed: dial tcp: i/o timeout", store["message"])
	notification := out["notification"].(map[string]any)
	assert.Equal(t, "skipped", notification["outcome"])
	assert.Len(t, out["warnings"], 1)

	// Seite bleibt benutzbar
	w, _ = do(t, r, http.MethodGet, "/projects", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmissionBadJSON(t *testing.T) {
	w, out := do(t, testRouter(t), http.MethodPost, "/submissions", `{"lat": [1]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", out["error"])
}

func TestHealthAndMetrics(t *testing.T) {
	r := testRouter(t)
	w, out := do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", out["status"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mw := httptest.NewRecorder()
	r.ServeHTTP(mw, req)
	assert.Equal(t, http.StatusOK, mw.Code)
}
