package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetdiff/app"
	"sheetdiff/internal"
	"sheetdiff/internal/testkit"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server, err := NewServer(internal.NewLogger(internal.LogLevelError), nil)
	require.NoError(t, err)
	return server
}

func loadSampleRun(t *testing.T) *app.RunResult {
	t.Helper()

	kit := testkit.NewTestKit(42)
	oldPath, newPath, err := kit.WriteSampleWorkbooks(t.TempDir())
	require.NoError(t, err)

	service := app.NewCompareService(internal.NewLogger(internal.LogLevelError))
	run, err := service.Run(context.Background(), app.RunRequest{
		OldPath:    oldPath,
		NewPath:    newPath,
		KeyColumns: []string{"Drug"},
	})
	require.NoError(t, err)
	return run
}

func TestChartsEndpoint(t *testing.T) {
	server := newTestServer(t)
	server.SetRuns([]*app.RunResult{loadSampleRun(t)})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/charts", nil)
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Donut   []map[string]any `json:"donut_categories"`
		Bars    []map[string]any `json:"bars_columns"`
		Grouped []map[string]any `json:"grouped_profile_means"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.Donut, 4)
	assert.NotEmpty(t, body.Bars)

	// One old-vs-new series per numeric column shared by both snapshots
	require.NotEmpty(t, body.Grouped)
	for _, entry := range body.Grouped {
		assert.Contains(t, entry, "label")
		assert.Contains(t, entry, "old")
		assert.Contains(t, entry, "new")
	}
}

func TestChartsEndpointNoRuns(t *testing.T) {
	server := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/charts", nil)
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLatestEndpointWithoutStore(t *testing.T) {
	server := newTestServer(t)
	server.SetRuns([]*app.RunResult{loadSampleRun(t)})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/latest", nil)
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
