package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-insights/internal/analysis"
	"github.com/jonathan/career-insights/internal/config"
)

// newTestServer builds a server with rate limiting disabled so tests can
// hammer endpoints freely.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	s, err := New(config.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { s.rateLimiter.Stop() })
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleAnalyze_InlineSnapshot(t *testing.T) {
	s := newTestServer(t)

	snapshot := map[string]any{
		"labour_force": map[string]any{
			"user_field": "Mathematics, computer and information sciences",
			"summary": map[string]any{
				"employment_rate":   83.3,
				"unemployment_rate": 5.1,
			},
		},
	}
	rec := doJSON(t, s, "POST", "/analyze", map[string]any{"snapshot": snapshot})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)
	assert.Nil(t, resp.Selection)
	assert.False(t, resp.FromCache)
	assert.Len(t, resp.Results, len(analysis.AnalysisNames))
	for _, name := range analysis.AnalysisNames {
		assert.Contains(t, resp.Results, name)
	}
}

func TestHandleAnalyze_FiltersRequestedAnalyses(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/analyze", map[string]any{
		"snapshot": map[string]any{},
		"analyses": []string{"composite_score", "risk_assessment"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 2)
	assert.Contains(t, resp.Results, "composite_score")
	assert.Contains(t, resp.Results, "risk_assessment")
}

func TestHandleAnalyze_UnknownAnalysis(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/analyze", map[string]any{
		"snapshot": map[string]any{},
		"analyses": []string{"horoscope"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown analysis")
}

func TestHandleAnalyze_InvalidSnapshot(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/analyze", map[string]any{
		"snapshot": map[string]any{
			"labour_force": map[string]any{
				"user_field": "Humanities",
				"summary":    map[string]any{"employment_rate": 183.0},
			},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation error")
}

func TestHandleAnalyze_MissingSelection(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/analyze", map[string]any{"region": "Canada"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "field and education are required")
}

func TestHandleAnalyze_InvalidBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("POST", "/analyze", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMatch(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/match", map[string]any{"query": "computer science"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "computer science", resp.Query)
	require.NotEmpty(t, resp.Matches)
	assert.Equal(t, "math_cs", string(resp.Matches[0].BroadFieldID))
}

func TestHandleMatch_LimitAndEmptyQuery(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/match", map[string]any{"query": "science", "limit": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.LessOrEqual(t, len(resp.Matches), 2)

	rec = doJSON(t, s, "POST", "/match", map[string]any{"query": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/catalog/fields", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fields map[string][]FieldInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.Len(t, fields["fields"], 11)

	rec = doJSON(t, s, "GET", "/catalog/education-levels", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var levels map[string][]EducationLevelInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &levels))
	require.Len(t, levels["education_levels"], 6)
	assert.Equal(t, "High school diploma", levels["education_levels"][0].Name)

	rec = doJSON(t, s, "GET", "/catalog/regions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Canada")

	rec = doJSON(t, s, "GET", "/catalog/analyses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "career_quadrant")
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("OPTIONS", "/analyze", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitExceeded(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")

	s, err := New(config.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { s.rateLimiter.Stop() })

	// The analyze endpoint allows a burst of 5 per client.
	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		last = doJSON(t, s, "POST", "/analyze", map[string]any{"snapshot": map[string]any{}})
	}

	require.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Contains(t, last.Body.String(), "rate_limit_exceeded")
	assert.Equal(t, "30", last.Header().Get("X-RateLimit-Limit"))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrValidation{Field: "snapshot", Message: "bad"}))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrUnknownAnalysis{Name: "x"}))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(&ErrSnapshotUnavailable{}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(assert.AnError))
}
