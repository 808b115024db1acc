package pairing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidecast/slidecast/internal/errors"
	"github.com/slidecast/slidecast/internal/scastd/identity"
	"github.com/slidecast/slidecast/internal/scastd/store/sqlite"
)

func newFixture(t *testing.T, handler http.HandlerFunc) (*Service, *identity.Manager) {
	t.Helper()
	s, err := sqlite.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	ids := identity.NewManager(s)
	return NewService(srv.URL, ids), ids
}

func TestPairSuccess(t *testing.T) {
	issued := uuid.NewString()
	svc, ids := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/link", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ABC123", r.PostForm.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"uuid":"` + issued + `"}`))
	})

	got, err := svc.Pair(context.Background(), " ABC123 ")
	require.NoError(t, err)
	assert.Equal(t, issued, got)

	stored, err := ids.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, issued, stored)
}

func TestPairRejected(t *testing.T) {
	svc, ids := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Código inválido"}`))
	})

	_, err := svc.Pair(context.Background(), "WRONG1")
	var rejected ErrCodeRejected
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Código inválido", rejected.Reason)
	assert.False(t, ids.Paired(context.Background()))
}

func TestPairEmptyCode(t *testing.T) {
	svc, _ := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an empty code")
	})
	_, err := svc.Pair(context.Background(), "   ")
	assert.True(t, errors.IsInvalidInput(err))
}

func TestPairMalformedResponse(t *testing.T) {
	svc, _ := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	})
	_, err := svc.Pair(context.Background(), "ABC123")
	assert.True(t, errors.IsMalformedResponse(err))
}

func TestUnpair(t *testing.T) {
	issued := uuid.NewString()
	svc, ids := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"uuid":"` + issued + `"}`))
	})

	_, err := svc.Pair(context.Background(), "ABC123")
	require.NoError(t, err)
	require.NoError(t, svc.Unpair(context.Background()))
	assert.False(t, ids.Paired(context.Background()))
}
