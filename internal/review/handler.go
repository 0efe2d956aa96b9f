package review

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/velimirb/riderewind/internal/middleware"
	"github.com/velimirb/riderewind/internal/music"
	"github.com/velimirb/riderewind/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type rewindService interface {
	Rewind(ctx context.Context, w Window, forceRefresh bool) (*Snapshot, error)
	Music(ctx context.Context, w Window, forceRefresh bool) (*music.Stats, error)
	InvalidateIngest(ctx context.Context) error
}

type Handler struct {
	service rewindService
}

func NewHandler(service rewindService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router, rateLimiter middleware.RequestRateLimiter, allowedPerMin int) {
	rewindRouter := r.PathPrefix("/rewind").Subrouter()
	if rateLimiter != nil {
		rewindRouter.Use(middleware.RateLimit(rateLimiter, "rewind-router", allowedPerMin))
	}

	rewindRouter.HandleFunc("/year/{year}", h.HandleSnapshot).Methods("GET", "OPTIONS").Name("rewind-year")
	rewindRouter.HandleFunc("/all", h.HandleSnapshot).Methods("GET", "OPTIONS").Name("rewind-all")
	rewindRouter.HandleFunc("/bike", h.HandleSnapshot).Methods("GET", "OPTIONS").Name("rewind-bike")
	rewindRouter.HandleFunc("/year/{year}/music", h.HandleMusic).Methods("GET", "OPTIONS").Name("rewind-year-music")
	rewindRouter.HandleFunc("/all/music", h.HandleMusic).Methods("GET", "OPTIONS").Name("rewind-all-music")
	rewindRouter.HandleFunc("/bike/music", h.HandleMusic).Methods("GET", "OPTIONS").Name("rewind-bike-music")
	rewindRouter.HandleFunc("/refresh", h.HandleRefresh).Methods("POST", "OPTIONS").Name("rewind-refresh")
}

func windowFromRequest(r *http.Request) (Window, error) {
	if yearStr, ok := mux.Vars(r)["year"]; ok {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return Window{}, errors.New("invalid year")
		}
		return YearWindow(year), nil
	}

	// the bike window's "since" date is derived from the record set by
	// the service, not supplied by the caller
	if route := mux.CurrentRoute(r); route != nil && strings.HasPrefix(route.GetName(), "rewind-bike") {
		return Window{Mode: ModeBike}, nil
	}
	return AllTimeWindow(), nil
}

func (h *Handler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	window, err := windowFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	forceRefresh := r.URL.Query().Get("refresh") == "true"

	snapshot, err := h.service.Rewind(r.Context(), window, forceRefresh)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) HandleMusic(w http.ResponseWriter, r *http.Request) {
	window, err := windowFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	forceRefresh := r.URL.Query().Get("refresh") == "true"

	stats, err := h.service.Music(r.Context(), window, forceRefresh)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.InvalidateIngest(r.Context()); err != nil {
		log.Errorf("invalidate ingest cache: %s", err)
		http.Error(w, "failed to invalidate cache", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, `{"invalidated":true}`)
}

func respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNoBikeEvidence) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	log.Errorf("rewind request failed: %s", err)
	http.Error(w, "upstream data fetch failed", http.StatusBadGateway)
}
