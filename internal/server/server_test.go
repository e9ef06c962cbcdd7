package server

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/plantsense/plantsense-cli/internal/analysis"
)

const exportJSON = `{
  "plants": {
    "plant1": {
      "logs": {
        "-N1": {"timestamp": 1700000000000, "soil_raw": 500, "light_raw": 300, "temp_c": 21, "hum": 40, "mood": "happy"},
        "-N2": {"timestamp": 1700000060000, "soil_raw": 510, "light_raw": 290, "temp_c": 22, "hum": 41, "mood": "thirsty"},
        "-N3": {"timestamp": 1700000120000, "soil_raw": 520, "light_raw": 280, "temp_c": 23, "hum": 42, "mood": "happy"}
      }
    }
  }
}`

func newTestServer(token string) *Server {
	return NewServer(Config{
		Host:       "127.0.0.1",
		Port:       8799,
		Token:      token,
		AcceptGzip: true,
	}, analysis.NewEngine(analysis.Config{}))
}

func postAnalyze(server *Server, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/plants/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	server.handleAnalyze(rr, req)
	return rr
}

func TestHandleAnalyzeValidPayload(t *testing.T) {
	server := newTestServer("")

	rr := postAnalyze(server, []byte(exportJSON), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Status string `json:"status"`
		Report struct {
			RunID  string `json:"run_id"`
			Period struct {
				ReadingCount int `json:"reading_count"`
			} `json:"period"`
		} `json:"report"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	if resp.Report.Period.ReadingCount != 3 {
		t.Errorf("reading_count = %d, want 3", resp.Report.Period.ReadingCount)
	}
	if resp.Report.RunID == "" {
		t.Error("expected a run id")
	}

	if got := server.GetStats().TotalAnalyzed; got != 1 {
		t.Errorf("total analyzed = %d, want 1", got)
	}
}

func TestHandleAnalyzeGzipBody(t *testing.T) {
	server := newTestServer("")

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write([]byte(exportJSON))
	gz.Close()

	rr := postAnalyze(server, buf.Bytes(), map[string]string{"Content-Encoding": "gzip"})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleAnalyzeAuth(t *testing.T) {
	server := newTestServer("secret")

	rr := postAnalyze(server, []byte(exportJSON), nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("missing token: expected 401, got %d", rr.Code)
	}

	rr = postAnalyze(server, []byte(exportJSON), map[string]string{"Authorization": "Bearer wrong"})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("wrong token: expected 401, got %d", rr.Code)
	}

	rr = postAnalyze(server, []byte(exportJSON), map[string]string{"Authorization": "Bearer secret"})
	if rr.Code != http.StatusOK {
		t.Errorf("valid token: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleAnalyzeInvalidJSON(t *testing.T) {
	server := newTestServer("")

	rr := postAnalyze(server, []byte("not json"), nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
	if got := server.GetStats().TotalErrors; got != 1 {
		t.Errorf("total errors = %d, want 1", got)
	}
}

func TestHandleAnalyzeMalformedRecord(t *testing.T) {
	server := newTestServer("")
	body := `{"-N1": {"timestamp": 1000, "soil_raw": 500, "light_raw": 300, "hum": 40, "mood": "happy"}}`

	rr := postAnalyze(server, []byte(body), nil)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "temp_c") {
		t.Errorf("error should name the missing field: %s", rr.Body.String())
	}
}

func TestHandleAnalyzeMethodNotAllowed(t *testing.T) {
	server := newTestServer("")

	req := httptest.NewRequest(http.MethodGet, "/v1/plants/analyze", nil)
	rr := httptest.NewRecorder()
	server.handleAnalyze(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rr.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer("")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	server.handleHealth(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}
