package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/fmea/internal/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(DefaultConfig(), logging.Nop(), prometheus.NewRegistry())
}

func perform(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

const validDoc = `{
  "title": "Granulation",
  "variables": [
    {"name": "Temp", "severity": 8, "occurrence": 8, "detectability": 8},
    {"name": "Humidity", "severity": 2, "occurrence": 2, "detectability": 2}
  ]
}`

func TestHealth(t *testing.T) {
	w := perform(newTestServer(t), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestNotes(t *testing.T) {
	w := perform(newTestServer(t), http.MethodGet, "/v1/notes", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["notes"], "ICH Q9")
	assert.NotEmpty(t, body["items"])
}

func TestAssess_OK(t *testing.T) {
	w := perform(newTestServer(t), http.MethodPost, "/v1/assessments", validDoc)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		RunID     string `json:"run_id"`
		Title     string `json:"title"`
		NumVars   int    `json:"num_vars"`
		Variables []struct {
			Name      string `json:"name"`
			RPN       int    `json:"rpn"`
			RiskLevel string `json:"risk_level"`
		} `json:"variables"`
		DoE struct {
			Suggested []struct {
				Name string `json:"name"`
			} `json:"suggested"`
			Excluded []struct {
				Name string `json:"name"`
			} `json:"excluded"`
		} `json:"doe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.NotEmpty(t, body.RunID)
	assert.Equal(t, "Granulation", body.Title)
	assert.Equal(t, 2, body.NumVars)
	require.Len(t, body.Variables, 2)
	assert.Equal(t, 512, body.Variables[0].RPN)
	assert.Equal(t, "High", body.Variables[0].RiskLevel)
	require.Len(t, body.DoE.Suggested, 1)
	assert.Equal(t, "Temp", body.DoE.Suggested[0].Name)
	require.Len(t, body.DoE.Excluded, 1)
	assert.Equal(t, "Humidity", body.DoE.Excluded[0].Name)
}

func TestAssess_ValidationErrors(t *testing.T) {
	doc := `{"variables": [
	  {"name": "A", "severity": 11, "occurrence": 5, "detectability": 5},
	  {"name": "A", "severity": 5, "occurrence": 5, "detectability": 5}
	]}`
	w := perform(newTestServer(t), http.MethodPost, "/v1/assessments", doc)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Errors  []string `json:"errors"`
		Details []struct {
			Kind     string   `json:"kind"`
			Position int      `json:"position"`
			Field    string   `json:"field"`
			Value    *int     `json:"value"`
			Names    []string `json:"names"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, []string{
		"Duplicate variable names found: A",
		"Variable 1 severity must be between 1 and 10, got 11.",
	}, body.Errors)
	require.Len(t, body.Details, 2)
	assert.Equal(t, "duplicate_name", body.Details[0].Kind)
	assert.Equal(t, []string{"A"}, body.Details[0].Names)
	assert.Equal(t, "invalid_rating", body.Details[1].Kind)
	assert.Equal(t, 1, body.Details[1].Position)
	assert.Equal(t, "severity", body.Details[1].Field)
	require.NotNil(t, body.Details[1].Value)
	assert.Equal(t, 11, *body.Details[1].Value)
}

func TestAssess_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"not json", "{"},
		{"no variables", `{"variables": []}`},
		{"missing rating", `{"variables": [{"name": "A", "severity": 1, "occurrence": 1}]}`},
		{"count mismatch", `{"num_vars": 3, "variables": [{"name": "A", "severity": 1, "occurrence": 1, "detectability": 1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(newTestServer(t), http.MethodPost, "/v1/assessments", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestAssess_BodyTooLarge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBodyBytes = 16
	s := New(cfg, logging.Nop(), prometheus.NewRegistry())

	w := perform(s, http.MethodPost, "/v1/assessments", validDoc)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestHeatmap(t *testing.T) {
	w := perform(newTestServer(t), http.MethodPost, "/v1/assessments/heatmap", validDoc)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	_, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	assert.NoError(t, err)
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t)
	perform(s, http.MethodPost, "/v1/assessments", validDoc)
	perform(s, http.MethodPost, "/v1/assessments", "{")

	w := perform(s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)

	out := w.Body.String()
	assert.Contains(t, out, `fmea_assessments_total{outcome="ok"} 1`)
	assert.Contains(t, out, `fmea_assessments_total{outcome="malformed"} 1`)
	assert.Contains(t, out, `fmea_variables_scored_total{risk_level="High"} 1`)
	assert.Contains(t, out, "fmea_assessment_duration_seconds_count 1")
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	cfg := DefaultConfig()
	cfg.Addr = addr
	s := New(cfg, logging.Nop(), prometheus.NewRegistry())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
