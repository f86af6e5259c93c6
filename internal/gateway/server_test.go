package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shareit/internal/config"
	"shareit/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGatewayFixture wires the gateway in front of a recording backend.
func newGatewayFixture(t *testing.T, rateLimit config.GatewayRateLimit) (*httptest.Server, *backendRecorder) {
	t.Helper()
	logger := zerolog.New(io.Discard)

	recorder := &backendRecorder{}
	backend := httptest.NewServer(recorder)
	t.Cleanup(backend.Close)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	limiter := repository.NewFailoverRateLimiter(
		repository.NewRedisRateLimiter(client),
		repository.NewMemoryRateLimiter(),
		&logger,
	)

	cfg := config.GatewayConfig{
		Port:      0,
		ServerURL: backend.URL,
		RateLimit: rateLimit,
	}
	srv := NewServer(cfg, NewClient(backend.URL, &logger), limiter, &logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, recorder
}

type backendRecorder struct {
	calls int
	last  *http.Request
	body  []byte
}

func (b *backendRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.calls++
	b.last = r.Clone(r.Context())
	b.body, _ = io.ReadAll(r.Body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"ok":true}`))
}

func gatewayRequest(t *testing.T, ts *httptest.Server, method, path string, userID int64, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if userID != 0 {
		req.Header.Set(userIDHeader, fmt.Sprint(userID))
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestGateway_ForwardsValidRequests(t *testing.T) {
	ts, recorder := newGatewayFixture(t, config.GatewayRateLimit{})

	start := time.Now().Add(time.Hour)
	resp := gatewayRequest(t, ts, http.MethodPost, "/bookings", 2, map[string]any{
		"itemId": 5, "start": start, "end": start.Add(time.Hour),
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, recorder.calls)

	// Body and caller header reach the backend intact
	assert.Equal(t, "2", recorder.last.Header.Get(userIDHeader))
	assert.Contains(t, string(recorder.body), `"itemId":5`)
}

func TestGateway_RejectsInvalidBookings(t *testing.T) {
	ts, recorder := newGatewayFixture(t, config.GatewayRateLimit{})
	now := time.Now()

	cases := []struct {
		name string
		body map[string]any
	}{
		{"NonPositiveItem", map[string]any{"itemId": 0, "start": now.Add(time.Hour), "end": now.Add(2 * time.Hour)}},
		{"StartInPast", map[string]any{"itemId": 5, "start": now.Add(-time.Hour), "end": now.Add(time.Hour)}},
		{"EndBeforeStart", map[string]any{"itemId": 5, "start": now.Add(2 * time.Hour), "end": now.Add(time.Hour)}},
		{"MissingDates", map[string]any{"itemId": 5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := gatewayRequest(t, ts, http.MethodPost, "/bookings", 2, tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
	assert.Zero(t, recorder.calls)
}

func TestGateway_RejectsMissingCaller(t *testing.T) {
	ts, recorder := newGatewayFixture(t, config.GatewayRateLimit{})

	resp := gatewayRequest(t, ts, http.MethodGet, "/bookings", 0, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, recorder.calls)
}

func TestGateway_RejectsUnknownState(t *testing.T) {
	ts, recorder := newGatewayFixture(t, config.GatewayRateLimit{})

	resp := gatewayRequest(t, ts, http.MethodGet, "/bookings?state=BANANAS", 2, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, recorder.calls)

	// A known state passes through
	resp = gatewayRequest(t, ts, http.MethodGet, "/bookings?state=WAITING", 2, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, recorder.calls)
}

func TestGateway_RejectsBadApprovedParam(t *testing.T) {
	ts, recorder := newGatewayFixture(t, config.GatewayRateLimit{})

	resp := gatewayRequest(t, ts, http.MethodPatch, "/bookings/1?approved=maybe", 2, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, recorder.calls)

	resp = gatewayRequest(t, ts, http.MethodPatch, "/bookings/1?approved=true", 2, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, recorder.calls)
}

func TestGateway_RejectsBadPaging(t *testing.T) {
	ts, recorder := newGatewayFixture(t, config.GatewayRateLimit{})

	resp := gatewayRequest(t, ts, http.MethodGet, "/bookings?from=-1", 2, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = gatewayRequest(t, ts, http.MethodGet, "/bookings?size=0", 2, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, recorder.calls)
}

func TestGateway_RejectsBlankUserFields(t *testing.T) {
	ts, recorder := newGatewayFixture(t, config.GatewayRateLimit{})

	resp := gatewayRequest(t, ts, http.MethodPost, "/users", 0, map[string]string{
		"name": " ", "email": "alice@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = gatewayRequest(t, ts, http.MethodPost, "/users", 0, map[string]string{
		"name": "Alice", "email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, recorder.calls)

	resp = gatewayRequest(t, ts, http.MethodPost, "/users", 0, map[string]string{
		"name": "Alice", "email": "alice@example.com",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, recorder.calls)
}

func TestGateway_RateLimitsPerUser(t *testing.T) {
	ts, _ := newGatewayFixture(t, config.GatewayRateLimit{Requests: 2, WindowSeconds: 60})

	for i := 0; i < 2; i++ {
		resp := gatewayRequest(t, ts, http.MethodGet, "/items", 2, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := gatewayRequest(t, ts, http.MethodGet, "/items", 2, nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	// A different user is unaffected
	resp = gatewayRequest(t, ts, http.MethodGet, "/items", 3, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
