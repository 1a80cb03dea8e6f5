package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetdiff/app"
	"sheetdiff/internal"
	"sheetdiff/internal/testkit"
)

func newTestApp(t *testing.T) (*App, string, string) {
	t.Helper()
	logger := internal.NewLogger(internal.LogLevelError)
	service := app.NewCompareService(logger)

	kit := testkit.NewTestKit(42)
	oldPath, newPath, err := kit.WriteSampleWorkbooks(t.TempDir())
	require.NoError(t, err)

	return NewApp(logger, service), oldPath, newPath
}

func postCompare(t *testing.T, api *App, body CompareRequest) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/compare", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)
	return rec
}

func TestCompareEndpoint(t *testing.T) {
	api, oldPath, newPath := newTestApp(t)

	rec := postCompare(t, api, CompareRequest{
		OldFile:    oldPath,
		NewFile:    newPath,
		KeyColumns: []string{"Drug"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CompareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Sheet1", resp.Sheet)
	assert.Equal(t, 1, resp.Summary.Added)
	assert.Equal(t, 1, resp.Summary.Removed)
	assert.Equal(t, 4, resp.Summary.Changed)
}

func TestCompareEndpointValidation(t *testing.T) {
	api, _, _ := newTestApp(t)

	rec := postCompare(t, api, CompareRequest{OldFile: "", NewFile: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/compare", bytes.NewReader([]byte("{not json")))
	rec = httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareEndpointBadKeyColumn(t *testing.T) {
	api, oldPath, newPath := newTestApp(t)

	rec := postCompare(t, api, CompareRequest{
		OldFile:    oldPath,
		NewFile:    newPath,
		KeyColumns: []string{"NoSuchColumn"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "NoSuchColumn")
}
