package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slidecast/slidecast/api/types/v1alpha1"
	"github.com/slidecast/slidecast/internal/errors"
	"github.com/slidecast/slidecast/internal/scastd/pairing"
)

type mockPlayer struct {
	mock.Mock
	mu     sync.Mutex
	events []v1alpha1.RendererEvent
}

func (m *mockPlayer) Status() v1alpha1.PlayerStatus {
	args := m.Called()
	return args.Get(0).(v1alpha1.PlayerStatus)
}

func (m *mockPlayer) Refresh() { m.Called() }
func (m *mockPlayer) Reset()   { m.Called() }

func (m *mockPlayer) ReportEvent(ev v1alpha1.RendererEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
}

func (m *mockPlayer) reportedEvents() []v1alpha1.RendererEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]v1alpha1.RendererEvent, len(m.events))
	copy(out, m.events)
	return out
}

type mockPairer struct {
	mock.Mock
}

func (m *mockPairer) Pair(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *mockPairer) Unpair(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type staticIdentity bool

func (s staticIdentity) Paired(context.Context) bool { return bool(s) }

func newTestHandler(player *mockPlayer, pairer *mockPairer, paired bool) *Handler {
	return NewHandler(player, pairer, staticIdentity(paired), nil, NewHub(zerolog.Nop()), zerolog.Nop())
}

func TestHandleStatus(t *testing.T) {
	player := &mockPlayer{}
	player.On("Status").Return(v1alpha1.PlayerStatus{
		State:      v1alpha1.PlayerStatePlaying,
		SlideCount: 3,
	})

	h := newTestHandler(player, &mockPairer{}, true)
	req := httptest.NewRequest(http.MethodGet, "/api/v1alpha1/status", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var status v1alpha1.PlayerStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, v1alpha1.PlayerStatePlaying, status.State)
	assert.True(t, status.Paired)
	assert.Equal(t, 3, status.SlideCount)
}

func TestHandleStatusUnpaired(t *testing.T) {
	player := &mockPlayer{}
	player.On("Status").Return(v1alpha1.PlayerStatus{State: v1alpha1.PlayerStateError})

	h := newTestHandler(player, &mockPairer{}, false)
	req := httptest.NewRequest(http.MethodGet, "/api/v1alpha1/status", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	var status v1alpha1.PlayerStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, v1alpha1.PlayerStateUnpaired, status.State)
	assert.False(t, status.Paired)
}

func TestHandlePair(t *testing.T) {
	player := &mockPlayer{}
	player.On("Refresh").Return()
	pairer := &mockPairer{}
	pairer.On("Pair", mock.Anything, "123456").
		Return("5e0e43a2-9c7b-40a5-8c42-3b7237d51e62", nil)

	h := newTestHandler(player, pairer, false)
	body, _ := json.Marshal(v1alpha1.PairRequest{Code: "123456"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1alpha1/pair", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp v1alpha1.LinkResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "5e0e43a2-9c7b-40a5-8c42-3b7237d51e62", resp.UUID)

	player.AssertCalled(t, "Refresh")
}

func TestHandlePairRejectedCode(t *testing.T) {
	pairer := &mockPairer{}
	pairer.On("Pair", mock.Anything, "000000").
		Return("", pairing.ErrCodeRejected{Reason: "code expired"})

	h := newTestHandler(&mockPlayer{}, pairer, false)
	body, _ := json.Marshal(v1alpha1.PairRequest{Code: "000000"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1alpha1/pair", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var apiErr v1alpha1.Error
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
	assert.Equal(t, "CODE_REJECTED", apiErr.Code)
	assert.Equal(t, "code expired", apiErr.Message)
}

func TestHandlePairErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"empty code", errors.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
		{"remote down", errors.ErrNetwork, http.StatusBadGateway, "UPSTREAM_UNREACHABLE"},
		{"garbage response", errors.ErrMalformedResponse, http.StatusBadGateway, "UPSTREAM_INVALID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairer := &mockPairer{}
			pairer.On("Pair", mock.Anything, mock.Anything).Return("", tt.err)

			h := newTestHandler(&mockPlayer{}, pairer, false)
			body, _ := json.Marshal(v1alpha1.PairRequest{Code: "x"})
			req := httptest.NewRequest(http.MethodPost, "/api/v1alpha1/pair", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			h.Router().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var apiErr v1alpha1.Error
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestHandlePairBadBody(t *testing.T) {
	h := newTestHandler(&mockPlayer{}, &mockPairer{}, false)
	req := httptest.NewRequest(http.MethodPost, "/api/v1alpha1/pair", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUnpair(t *testing.T) {
	player := &mockPlayer{}
	player.On("Reset").Return()
	pairer := &mockPairer{}
	pairer.On("Unpair", mock.Anything).Return(nil)

	h := newTestHandler(player, pairer, true)
	req := httptest.NewRequest(http.MethodPost, "/api/v1alpha1/unpair", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	player.AssertCalled(t, "Reset")
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestHandler(&mockPlayer{}, &mockPairer{}, false)
	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	}
}

func TestNotFound(t *testing.T) {
	h := newTestHandler(&mockPlayer{}, &mockPairer{}, false)
	req := httptest.NewRequest(http.MethodGet, "/api/v1alpha1/nope", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var apiErr v1alpha1.Error
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestRequestIDHeader(t *testing.T) {
	player := &mockPlayer{}
	player.On("Status").Return(v1alpha1.PlayerStatus{})

	h := newTestHandler(player, &mockPairer{}, false)
	req := httptest.NewRequest(http.MethodGet, "/api/v1alpha1/status", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
