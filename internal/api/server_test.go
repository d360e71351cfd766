package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerops/commercedesk/internal/config"
	"github.com/sellerops/commercedesk/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg, err := config.Load()
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(bytes.NewBuffer(nil))

	return NewServer(cfg, store.New(), log)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reader).Encode(body))
	}

	req := httptest.NewRequest(method, path, &reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func uploadCSV(t *testing.T, srv *Server, csvBody string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "catalog.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csvBody))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/catalog/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadCatalog_ReportsSkippedRows(t *testing.T) {
	srv := newTestServer(t)

	rec := uploadCSV(t, srv, "SKU,Title,Price,Fabric\nA1,Kurta Set,999,Cotton\nA2,,500,Silk\n")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		RowsIngested int `json:"rows_ingested"`
		RowsSkipped  int `json:"rows_skipped"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.RowsIngested)
	assert.Equal(t, 1, resp.RowsSkipped)
}

func TestUploadCatalog_NoFile(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/catalog/upload", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateAndExportFlow(t *testing.T) {
	srv := newTestServer(t)

	rec := uploadCSV(t, srv, "SKU,Title,Brand,Category,Price\nA1,Kurta Set,Vastra,Kurta,999\n")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/catalog/generate", map[string]any{
		"platforms":       []string{"amazon", "flipkart"},
		"compliance_mode": "standard",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var gen struct {
		Summary string         `json:"summary"`
		Counts  map[string]int `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gen))
	assert.Equal(t, 1, gen.Counts["amazon"])
	assert.Equal(t, 1, gen.Counts["flipkart"])
	assert.Contains(t, gen.Summary, "2 listings")

	rec = doJSON(t, srv, http.MethodGet, "/api/catalog/amazon/listings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/catalog/amazon/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "amazon-listing-pack.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "SKU,Title,Subtitle"))
	assert.Contains(t, lines[1], "A1")
}

func TestGenerate_GuardsWithoutRows(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/catalog/generate", map[string]any{
		"platforms": []string{"amazon"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Upload a catalog sheet first")
}

func TestGenerate_GuardsWithoutPlatforms(t *testing.T) {
	srv := newTestServer(t)
	uploadCSV(t, srv, "SKU,Title,Price\nA1,Kurta,999\n")

	rec := doJSON(t, srv, http.MethodPost, "/api/catalog/generate", map[string]any{
		"platforms": []string{"etsy"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pick at least one marketplace")
}

func TestExport_UnknownMarketplace(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/catalog/etsy/export", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport_NothingGenerated(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/catalog/amazon/export", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyzeMetricsAndTaskLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/metrics/analyze", map[string]string{
		"text": "Cancellation Rate: 9.5",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var analysis struct {
		NewTasks int `json:"new_tasks"`
		Tasks    []struct {
			ID       string `json:"id"`
			Priority string `json:"priority"`
			Status   string `json:"status"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	require.Equal(t, 1, analysis.NewTasks)
	require.Len(t, analysis.Tasks, 1)
	assert.Equal(t, "cancellation-rate-above-ceiling", analysis.Tasks[0].ID)
	assert.Equal(t, "high", analysis.Tasks[0].Priority)

	// Mark done, re-analyze the same text: status must survive.
	rec = doJSON(t, srv, http.MethodPatch, "/api/tasks/"+analysis.Tasks[0].ID, map[string]string{"status": "done"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/metrics/analyze", map[string]string{
		"text": "Cancellation Rate: 9.5",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	require.Len(t, analysis.Tasks, 1)
	assert.Equal(t, "done", analysis.Tasks[0].Status)
}

func TestAnalyzeMetrics_UnrecognizedText(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/metrics/analyze", map[string]string{"text": "all good today"})
	require.Equal(t, http.StatusOK, rec.Code)

	var analysis struct {
		Snapshot struct {
			Metrics   map[string]float64 `json:"metrics"`
			Narrative string             `json:"narrative"`
		} `json:"snapshot"`
		NewTasks int `json:"new_tasks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Empty(t, analysis.Snapshot.Metrics)
	assert.NotEmpty(t, analysis.Snapshot.Narrative)
	assert.Zero(t, analysis.NewTasks)
}

func TestUpdateTaskStatus_Validation(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPatch, "/api/tasks/some-id", map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPatch, "/api/tasks/some-id", map[string]string{"status": "done"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConversationRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/conversation/messages", map[string]string{"text": "hello"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User  struct{ ID, Text string } `json:"user"`
		Agent struct{ ID, Text string } `json:"agent"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, "agent-2", resp.Agent.ID)
	assert.NotEmpty(t, resp.Agent.Text)

	rec = doJSON(t, srv, http.MethodGet, "/api/conversation", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var history struct {
		Data []struct{ ID string } `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Len(t, history.Data, 2)
}

func TestPostMessage_EmptyText(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/conversation/messages", map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
