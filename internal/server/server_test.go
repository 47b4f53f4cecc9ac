package server

import (
	"bytes"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/poverty-level/pkg/constants"
	"go.uber.org/zap"
)

func newTestHandler(year int) http.Handler {
	h := newHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "1.2.3")
	h.now = func() time.Time {
		return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
	}
	return h.routes()
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHandleGuideline(t *testing.T) {
	handler := newTestHandler(2014)

	tests := []struct {
		name       string
		body       string
		status     int
		guideline  int
		percentage float64
		year       int
	}{
		{
			name:       "Contiguous state",
			body:       `{"state":"mo","year":2014,"householdSize":1,"householdIncome":17235}`,
			status:     http.StatusOK,
			guideline:  11490,
			percentage: 150,
			year:       2014,
		},
		{
			name:       "Year defaults to current year",
			body:       `{"state":"AK","householdSize":10,"householdIncome":59620}`,
			status:     http.StatusOK,
			guideline:  59620,
			percentage: 100,
			year:       2014,
		},
		{
			name:       "Custom precision",
			body:       `{"state":"MO","year":2013,"householdSize":1,"householdIncome":20107,"precision":0}`,
			status:     http.StatusOK,
			guideline:  11490,
			percentage: 175,
			year:       2013,
		},
		{
			name:       "Precision beyond float range",
			body:       `{"state":"MO","year":2014,"householdSize":1,"householdIncome":17235,"precision":400}`,
			status:     http.StatusOK,
			guideline:  11490,
			percentage: 150,
			year:       2014,
		},
		{
			name:   "Unsupported year",
			body:   `{"state":"MO","year":1900,"householdSize":1,"householdIncome":100}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "Invalid household size",
			body:   `{"state":"MO","year":2014,"householdSize":0,"householdIncome":100}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "Negative income",
			body:   `{"state":"MO","year":2014,"householdSize":1,"householdIncome":-100}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "Non-numeric household size",
			body:   `{"state":"MO","year":2014,"householdSize":"two","householdIncome":100}`,
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postJSON(t, handler, "/api/guideline", tt.body)
			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}

			if tt.status != http.StatusOK {
				var resp map[string]string
				if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to decode error response: %v", err)
				}
				if resp["error"] == "" {
					t.Fatal("expected error message in response")
				}
				return
			}

			var resp guidelineResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Guideline != tt.guideline {
				t.Errorf("guideline = %d, expected %d", resp.Guideline, tt.guideline)
			}
			if resp.Percentage != tt.percentage {
				t.Errorf("percentage = %v, expected %v", resp.Percentage, tt.percentage)
			}
			if resp.Year != tt.year {
				t.Errorf("year = %d, expected %d", resp.Year, tt.year)
			}
			if resp.GuidelineFormatted == "" || !strings.HasPrefix(resp.GuidelineFormatted, "$") {
				t.Errorf("unexpected formatted guideline %q", resp.GuidelineFormatted)
			}
		})
	}
}

func TestHandleGuidelineUnsupportedCurrentYear(t *testing.T) {
	handler := newTestHandler(2026)
	rr := postJSON(t, handler, "/api/guideline", `{"state":"MO","householdSize":1,"householdIncome":100}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "2026") {
		t.Errorf("expected error to name the year, got %s", rr.Body.String())
	}
}

func TestHandleGuidelineBodyTooLarge(t *testing.T) {
	h := newHandler(zap.NewNop(), 64, "dev")
	body := `{"state":"` + strings.Repeat("M", 256) + `","year":2014,"householdSize":1,"householdIncome":100}`
	rr := postJSON(t, h.routes(), "/api/guideline", body)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestWriteJSON(t *testing.T) {
	h := newHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "dev")

	tests := []struct {
		name    string
		status  int
		payload interface{}
		want    int
	}{
		{"Encodable payload", http.StatusCreated, map[string]string{"x": "y"}, http.StatusCreated},
		{"NaN payload", http.StatusOK, map[string]float64{"x": math.NaN()}, http.StatusInternalServerError},
		{"Channel payload", http.StatusOK, make(chan int), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.writeJSON(rr, tt.status, tt.payload)
			if rr.Code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, rr.Code)
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}

			var resp map[string]interface{}
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("response is not valid JSON: %v: %s", err, rr.Body.String())
			}
			if tt.want == http.StatusInternalServerError && resp["error"] == nil {
				t.Error("expected error field in response")
			}
		})
	}
}

func TestHandleGuidelineMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(2014)
	req := httptest.NewRequest(http.MethodGet, "/api/guideline", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
}

func uploadConfig(t *testing.T, handler http.Handler, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "config.yaml")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write form data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/report", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHandleReportSuccess(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "test", "test_config.yaml"))
	if err != nil {
		t.Fatalf("failed to read test config: %v", err)
	}

	rr := uploadConfig(t, newTestHandler(2014), data)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp reportResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(resp.Results))
	}
	if resp.Results[0].Guideline != 11490 {
		t.Errorf("expected first guideline 11490, got %d", resp.Results[0].Guideline)
	}
	if resp.Results[3].Error == "" {
		t.Error("expected unsupported year error on last result")
	}
	if !strings.HasPrefix(resp.CSV, "name,state") {
		t.Errorf("expected CSV data in response, got %q", resp.CSV)
	}
	if len(resp.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", resp.Warnings)
	}
	if resp.Duration == "" {
		t.Fatal("expected duration in response")
	}
}

func TestHandleReportNoHouseholds(t *testing.T) {
	rr := uploadConfig(t, newTestHandler(2014), []byte("precision: 2\n"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleReportMissingFile(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/report", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	newTestHandler(2014).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleReportTooLarge(t *testing.T) {
	h := newHandler(zap.NewNop(), 64, "dev")
	rr := uploadConfig(t, h.routes(), bytes.Repeat([]byte("# padding\n"), 100))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleTable(t *testing.T) {
	handler := newTestHandler(2014)

	req := httptest.NewRequest(http.MethodGet, "/api/table?year=2013", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp tableResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Year != 2013 || len(resp.Groups) != 3 {
		t.Fatalf("unexpected table response: %+v", resp)
	}
	alaska := resp.Groups[1]
	if alaska.Group != "AK" || alaska.Sizes[0] != 14350 || alaska.AdditionalPerson != 5030 {
		t.Errorf("unexpected Alaska group: %+v", alaska)
	}

	for path, status := range map[string]int{
		"/api/table":           http.StatusOK,
		"/api/table?year=1900": http.StatusNotFound,
		"/api/table?year=abc":  http.StatusBadRequest,
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != status {
			t.Errorf("%s: expected status %d, got %d", path, status, rr.Code)
		}
	}
}

func TestHandleVersion(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	newTestHandler(2014).ServeHTTP(rr, req)

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %q", resp["version"])
	}

	rr = httptest.NewRecorder()
	NewHandler(nil, 0, "  ").ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	if !strings.Contains(rr.Body.String(), `"dev"`) {
		t.Errorf("expected default version dev, got %s", rr.Body.String())
	}
}

func TestStaticIndex(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	newTestHandler(2014).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Federal Poverty Level") {
		t.Error("expected index page")
	}
}
