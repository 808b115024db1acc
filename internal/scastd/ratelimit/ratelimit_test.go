package ratelimit

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(limit Limit) (*Service, *MemoryStore) {
	store := NewMemoryStore()
	svc := NewService(store, slog.Default())
	svc.RegisterLimit("pair", limit)
	return svc, store
}

func TestAllowWithinBudget(t *testing.T) {
	svc, _ := newTestService(Limit{Rate: 3, Period: time.Minute})
	key := Key{Type: "pair", RemoteIP: "127.0.0.1"}

	for i := 0; i < 3; i++ {
		status, err := svc.Allow(context.Background(), key)
		require.NoError(t, err)
		assert.Equal(t, 2-i, status.Remaining)
	}

	_, err := svc.Allow(context.Background(), key)
	var limitErr *ErrLimitExceeded
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, -1, limitErr.Status.Remaining)
}

func TestAllowUnregisteredType(t *testing.T) {
	svc, _ := newTestService(Limit{Rate: 1, Period: time.Minute})

	for i := 0; i < 10; i++ {
		_, err := svc.Allow(context.Background(), Key{Type: "unregistered", RemoteIP: "127.0.0.1"})
		assert.NoError(t, err)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	svc, _ := newTestService(Limit{Rate: 1, Period: time.Minute})

	_, err := svc.Allow(context.Background(), Key{Type: "pair", RemoteIP: "10.0.0.1"})
	require.NoError(t, err)

	_, err = svc.Allow(context.Background(), Key{Type: "pair", RemoteIP: "10.0.0.2"})
	assert.NoError(t, err, "a second client has its own counter")
}

func TestWindowRollsOver(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	svc := NewService(store, slog.Default())
	svc.RegisterLimit("pair", Limit{Rate: 1, Period: time.Minute})
	key := Key{Type: "pair", RemoteIP: "127.0.0.1"}

	_, err := svc.Allow(context.Background(), key)
	require.NoError(t, err)
	_, err = svc.Allow(context.Background(), key)
	require.Error(t, err)

	now = now.Add(time.Minute)
	_, err = svc.Allow(context.Background(), key)
	assert.NoError(t, err, "a fresh window starts after the period elapses")
}

func TestReset(t *testing.T) {
	svc, _ := newTestService(Limit{Rate: 1, Period: time.Minute})
	key := Key{Type: "pair", RemoteIP: "127.0.0.1"}

	_, err := svc.Allow(context.Background(), key)
	require.NoError(t, err)
	_, err = svc.Allow(context.Background(), key)
	require.Error(t, err)

	require.NoError(t, svc.Reset(context.Background(), key))
	_, err = svc.Allow(context.Background(), key)
	assert.NoError(t, err)
}

func TestMiddleware(t *testing.T) {
	svc, _ := newTestService(Limit{Rate: 2, Period: time.Minute})
	handler := Middleware(svc, slog.Default(), "pair")(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1alpha1/pair", nil)
		req.RemoteAddr = "127.0.0.1:54321"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	rec := do()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("RateLimit-Remaining"))

	do()
	rec = do()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"code":"RATE_LIMITED","message":"too many requests"}`, rec.Body.String())
}

func TestRealIPHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:1234"
	assert.Equal(t, "127.0.0.1", realIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", realIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", realIP(req))
}
