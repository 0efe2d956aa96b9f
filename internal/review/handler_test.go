package review

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/velimirb/riderewind/internal/music"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRewindService struct {
	lastWindow       Window
	lastForceRefresh bool
	snapshot         *Snapshot
	stats            *music.Stats
	err              error
	invalidated      bool
}

func (f *fakeRewindService) Rewind(_ context.Context, w Window, forceRefresh bool) (*Snapshot, error) {
	f.lastWindow = w
	f.lastForceRefresh = forceRefresh
	return f.snapshot, f.err
}

func (f *fakeRewindService) Music(_ context.Context, w Window, forceRefresh bool) (*music.Stats, error) {
	f.lastWindow = w
	f.lastForceRefresh = forceRefresh
	return f.stats, f.err
}

func (f *fakeRewindService) InvalidateIngest(_ context.Context) error {
	f.invalidated = true
	return f.err
}

func handlerTestRouter(svc *fakeRewindService) *mux.Router {
	r := mux.NewRouter()
	NewHandler(svc).SetupRoutes(r, nil, 0)
	return r
}

func TestHandleSnapshot(t *testing.T) {
	svc := &fakeRewindService{snapshot: &Snapshot{}}
	router := handlerTestRouter(svc)

	t.Run("year window", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/rewind/year/2024", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, YearWindow(2024), svc.lastWindow)
		assert.False(t, svc.lastForceRefresh)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})

	t.Run("invalid year", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/rewind/year/twentytwentyfour", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("all time window", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/rewind/all", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, AllTimeWindow(), svc.lastWindow)
	})

	t.Run("bike window", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/rewind/bike", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, ModeBike, svc.lastWindow.Mode)
	})

	t.Run("force refresh", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/rewind/all?refresh=true", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, svc.lastForceRefresh)
	})
}

func TestHandleSnapshot_Errors(t *testing.T) {
	t.Run("no bike evidence is a 404", func(t *testing.T) {
		svc := &fakeRewindService{err: ErrNoBikeEvidence}
		router := handlerTestRouter(svc)

		req := httptest.NewRequest("GET", "/rewind/bike", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("upstream failure is a 502", func(t *testing.T) {
		svc := &fakeRewindService{err: errors.New("feed down")}
		router := handlerTestRouter(svc)

		req := httptest.NewRequest("GET", "/rewind/all", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestHandleMusic(t *testing.T) {
	svc := &fakeRewindService{stats: &music.Stats{TotalPlays: 42}}
	router := handlerTestRouter(svc)

	req := httptest.NewRequest("GET", "/rewind/year/2023/music", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, YearWindow(2023), svc.lastWindow)
	assert.Contains(t, rec.Body.String(), `"totalPlays":42`)
}

func TestHandleRefresh(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc := &fakeRewindService{}
		router := handlerTestRouter(svc)

		req := httptest.NewRequest("POST", "/rewind/refresh", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, svc.invalidated)
		assert.Contains(t, rec.Body.String(), `"invalidated":true`)
	})

	t.Run("cache failure", func(t *testing.T) {
		svc := &fakeRewindService{err: errors.New("redis down")}
		router := handlerTestRouter(svc)

		req := httptest.NewRequest("POST", "/rewind/refresh", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("get not allowed", func(t *testing.T) {
		svc := &fakeRewindService{}
		router := handlerTestRouter(svc)

		req := httptest.NewRequest("GET", "/rewind/refresh", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
