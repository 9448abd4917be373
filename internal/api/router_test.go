package api

import (
	"bytes"
	"cvrp-route-service/internal/adapters/distance"
	"cvrp-route-service/internal/api/dto"
	"cvrp-route-service/internal/metrics"
	"cvrp-route-service/internal/platform/sysinfo"
	"cvrp-route-service/internal/services"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestRouter(limiter *rate.Limiter) http.Handler {
	metrics.RegisterDefault()

	opts := services.DefaultOptions()
	opts.Budget = 200 * time.Millisecond
	return NewRouter(RouterConfig{
		Solver:   services.NewRouteSolver(distance.EuclideanFactory{}, nil),
		Defaults: opts,
		Host:     sysinfo.Info{Platform: "test", CPU: "test", Cores: 1, RAM: "1 GB"},
		Limiter:  limiter,
	})
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := newTestRouter(nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var res dto.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, "test", res.Host.Platform)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSolveSmallInstance(t *testing.T) {
	h := newTestRouter(nil)
	body := `{
		"capacity": 10,
		"cities": [
			{"id": 0, "x": 0, "y": 0, "demand": 0},
			{"id": 1, "x": 0, "y": 10, "demand": 6},
			{"id": 2, "x": 10, "y": 0, "demand": 6},
			{"id": 3, "x": 0, "y": 12, "demand": 4}
		]
	}`

	req := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(body))
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.SolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "req-123", res.RequestID)
	assert.Equal(t, services.StrategyExact, res.Strategy)
	assert.Len(t, res.Genes, 3)
	assert.Len(t, res.Trips, 2)
	for _, trip := range res.Trips {
		assert.LessOrEqual(t, trip.Load, 10)
	}
	assert.Equal(t, int64(44), res.Score)
}

func TestSolveGeneticWithOptions(t *testing.T) {
	h := newTestRouter(nil)

	var buf bytes.Buffer
	req := dto.SolveRequest{Capacity: 20}
	for i := 0; i <= 15; i++ {
		demand := 0
		if i > 0 {
			demand = 1 + i%5
		}
		req.Cities = append(req.Cities, dto.CityRequest{ID: i, X: (i * 37) % 100, Y: (i * 53) % 100, Demand: demand})
	}
	gens := 3
	seed := int64(5)
	req.Options = &dto.SolveOptionsRequest{MaxGenerations: &gens, Seed: &seed}
	require.NoError(t, json.NewEncoder(&buf).Encode(req))

	rec := post(t, h, buf.String())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.SolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, services.StrategyGenetic, res.Strategy)
	assert.Equal(t, 3, res.Generations)
	assert.Len(t, res.Genes, 15)
}

func TestSolveRejectsBadInput(t *testing.T) {
	h := newTestRouter(nil)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"not json", `{`, http.StatusBadRequest},
		{"unknown field", `{"capacity": 5, "cities": [{"id":0}], "trucks": 3}`, http.StatusBadRequest},
		{"two objects", `{"capacity": 5, "cities": [{"id":0}]}{}`, http.StatusBadRequest},
		{"no capacity", `{"cities": [{"id":0}]}`, http.StatusBadRequest},
		{"no cities", `{"capacity": 5}`, http.StatusBadRequest},
		{"bad budget", `{"capacity": 5, "cities": [{"id":0}], "options": {"budget_ms": 0}}`, http.StatusBadRequest},
		{"bad workers", `{"capacity": 5, "cities": [{"id":0}], "options": {"workers": 0}}`, http.StatusBadRequest},
		{"too heavy", `{"capacity": 5, "cities": [{"id":0},{"id":1,"x":1,"demand":9}]}`, http.StatusUnprocessableEntity},
		{"id gap", `{"capacity": 5, "cities": [{"id":0},{"id":2,"x":1,"demand":1}]}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestSolveMethodNotAllowed(t *testing.T) {
	h := newTestRouter(nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/solve", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestSolveRateLimited(t *testing.T) {
	h := newTestRouter(rate.NewLimiter(rate.Every(time.Hour), 1))
	body := `{"capacity": 5, "cities": [{"id":0}]}`

	assert.Equal(t, http.StatusOK, post(t, h, body).Code)
	rec := post(t, h, body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(nil)
	post(t, h, `{"capacity": 5, "cities": [{"id":0},{"id":1,"x":3,"y":4,"demand":1}]}`)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
	assert.Contains(t, rec.Body.String(), "cvrp_solves_total")
}
