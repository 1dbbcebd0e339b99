package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return New(opts)
}

func request(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeResponse decodes an HTTP response into a target struct.
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(target), "body: %s", w.Body.String())
}

type evaluationResponse struct {
	Summary struct {
		TotalExpenses int64   `json:"total_expenses"`
		TotalIncome   int64   `json:"total_income"`
		Profit        int64   `json:"profit"`
		ProfitMargin  float64 `json:"profit_margin"`
	} `json:"summary"`
	Dominant struct {
		Category string `json:"category"`
		Amount   int64  `json:"amount"`
	} `json:"dominant_category"`
	Tier struct {
		ID       string   `json:"id"`
		Guidance []string `json:"guidance"`
	} `json:"tier"`
	Breakdown []struct {
		Category string `json:"category"`
		Amount   int64  `json:"amount"`
	} `json:"expense_breakdown"`
	Warnings []struct {
		Kind  string `json:"kind"`
		Field string `json:"field"`
	} `json:"warnings"`
}

func TestGetHealth(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/healthz", nil)

	GetHealth(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGetVersion(t *testing.T) {
	r := newTestRouter(Options{Version: "1.2.3"})
	w := request(t, r, http.MethodGet, "/version", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"version":"1.2.3"}}`, w.Body.String())
}

func TestGetCategories(t *testing.T) {
	r := newTestRouter(Options{})
	w := request(t, r, http.MethodGet, "/v1/categories", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp CategoryListResponse
	decodeResponse(t, w, &resp)

	require.Len(t, resp.Data, 8)
	assert.Equal(t, "marketing", resp.Data[0].Key)
	assert.Equal(t, "expense", resp.Data[0].Kind)
	assert.Equal(t, "core_income", resp.Data[6].Key)
	assert.Equal(t, "income", resp.Data[7].Kind)
}

func TestGetTiers(t *testing.T) {
	r := newTestRouter(Options{})
	w := request(t, r, http.MethodGet, "/v1/tiers", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			ID        string `json:"id"`
			Condition string `json:"condition"`
		} `json:"data"`
	}
	decodeResponse(t, w, &resp)

	require.Len(t, resp.Data, 7)
	assert.Equal(t, "loss", resp.Data[0].ID)
	assert.Equal(t, "out_of_range", resp.Data[6].ID)
}

func TestCreateEvaluation(t *testing.T) {
	r := newTestRouter(Options{})

	body := `{
		"mode": "direct",
		"expenses": {"marketing": 3000, "salaries": "2000", "admin": 500, "legal": null},
		"income": {"core_income": 6000}
	}`
	w := request(t, r, http.MethodPost, "/v1/evaluations", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp evaluationResponse
	decodeResponse(t, w, &resp)

	assert.Equal(t, int64(5500), resp.Summary.TotalExpenses)
	assert.Equal(t, int64(6000), resp.Summary.TotalIncome)
	assert.Equal(t, int64(500), resp.Summary.Profit)
	assert.InDelta(t, 8.33, resp.Summary.ProfitMargin, 0.001)
	assert.Equal(t, "low_moderate", resp.Tier.ID)
	assert.Equal(t, "marketing", resp.Dominant.Category)
	assert.Len(t, resp.Breakdown, 6)
	assert.Empty(t, resp.Warnings)
}

func TestCreateEvaluationWarnings(t *testing.T) {
	r := newTestRouter(Options{})

	body := `{"expenses": {"marketing": "lots", "logistics": 12.5}, "income": {"core_income": -10}}`
	w := request(t, r, http.MethodPost, "/v1/evaluations", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp evaluationResponse
	decodeResponse(t, w, &resp)

	require.Len(t, resp.Warnings, 3)
	assert.Equal(t, "marketing", resp.Warnings[0].Field)
	assert.Equal(t, "logistics", resp.Warnings[1].Field)
	assert.Equal(t, "core_income", resp.Warnings[2].Field)
	for _, warning := range resp.Warnings {
		assert.Equal(t, "invalid_numeric_input", warning.Kind)
	}
	assert.Equal(t, int64(0), resp.Summary.TotalExpenses)
}

func TestCreateEvaluationMonthly(t *testing.T) {
	r := newTestRouter(Options{})

	body := `{"mode": "monthly", "expenses": {"logistics": 100}, "income": {"core_income": 800, "other_income": 200}}`
	w := request(t, r, http.MethodPost, "/v1/evaluations", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp evaluationResponse
	decodeResponse(t, w, &resp)

	assert.Equal(t, int64(1200), resp.Summary.TotalExpenses)
	assert.Equal(t, int64(12000), resp.Summary.TotalIncome)
	assert.Equal(t, "excellent", resp.Tier.ID)
}

func TestCreateEvaluationBadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"malformed json", `{"expenses": `, "not valid"},
		{"unknown category", `{"expenses": {"travel": 10}}`, "unknown category"},
		{"income key in expenses", `{"expenses": {"core_income": 10}}`, "wrong section"},
		{"expense key in income", `{"income": {"marketing": 10}}`, "wrong section"},
		{"invalid mode", `{"mode": "weekly"}`, "invalid period scale"},
		{"boolean amount", `{"expenses": {"marketing": true}}`, "numbers, strings or null"},
		{"object amount", `{"income": {"core_income": {"value": 1}}}`, "numbers, strings or null"},
	}

	r := newTestRouter(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(t, r, http.MethodPost, "/v1/evaluations", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp HTTPError
			decodeResponse(t, w, &resp)
			assert.Contains(t, resp.Error, tt.message)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	r := newTestRouter(Options{})
	w := request(t, r, http.MethodGet, "/v1/evaluations", "")

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestNotFound(t *testing.T) {
	r := newTestRouter(Options{})
	w := request(t, r, http.MethodGet, "/v2/nothing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp HTTPError
	decodeResponse(t, w, &resp)
	assert.Contains(t, resp.Error, "/v2/nothing")
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestRouter(Options{})
	w := request(t, r, http.MethodGet, "/healthz", "")

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestPprofRoutes(t *testing.T) {
	hasPprof := func(r *gin.Engine) bool {
		for _, route := range r.Routes() {
			if strings.Contains(route.Path, "pprof") {
				return true
			}
		}
		return false
	}

	assert.False(t, hasPprof(newTestRouter(Options{})), "pprof routes are registered erroneously")
	assert.True(t, hasPprof(newTestRouter(Options{EnablePprof: true})))
}

func TestCorsSetting(t *testing.T) {
	r := newTestRouter(Options{CORSOrigins: []string{"https://app.example.org"}})

	tests := []struct {
		name   string
		origin string
		status int
		allow  string
	}{
		{"allowed origin", "https://app.example.org", http.StatusOK, "https://app.example.org"},
		{"other origin", "https://evil.example.net", http.StatusForbidden, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// the request host is example.com, so both origins are cross-origin
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.allow, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestConcurrentEvaluations(t *testing.T) {
	r := newTestRouter(Options{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := httptest.NewRequest(http.MethodPost, "/v1/evaluations",
				strings.NewReader(`{"expenses": {"marketing": 100}, "income": {"core_income": 1000}}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"profit":900`)
		}()
	}
	wg.Wait()
}

func TestServe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ln, newTestRouter(Options{}))
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	assert.NoError(t, <-done)
}
