package review

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/velimirb/riderewind/internal/cache"
	"github.com/velimirb/riderewind/internal/music"
	"github.com/velimirb/riderewind/internal/telemetry/metrics"
	"github.com/velimirb/riderewind/internal/telemetry/tracing"
	"github.com/velimirb/riderewind/internal/workout"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

const (
	feedCacheKey     = "ingest::feed"
	exportCacheKey   = "ingest::export"
	calendarCacheKey = "ingest::calendar"
)

// ErrNoBikeEvidence means the history holds no cycling workout with a
// positive output, so a since-bike window cannot be anchored.
var ErrNoBikeEvidence = errors.New("no bike-equipped workout found")

type workoutSource interface {
	AllWorkouts(ctx context.Context) ([]workout.FeedWorkout, error)
	Export(ctx context.Context) ([]workout.ExportRow, error)
	ActiveDays(ctx context.Context) ([]time.Time, error)
}

type musicCorrelator interface {
	StatsFor(ctx context.Context, windowKey string, workoutIDs []string, forceRefresh bool) (*music.Stats, error)
}

// Service owns one user's review session: ingestion of the two upstream
// datasets (with a staleness-checked cache around the raw data),
// snapshot building, and the music fill-in.
type Service struct {
	src             workoutSource
	music           musicCorrelator
	cache           *cache.Manager
	metrics         *metrics.Manager
	instructorNames map[string]string
	loc             *time.Location
	now             func() time.Time
}

func NewService(
	src workoutSource,
	musicCorrelator musicCorrelator,
	cacheManager *cache.Manager,
	metricsManager *metrics.Manager,
	instructorNames map[string]string,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		src:             src,
		music:           musicCorrelator,
		cache:           cacheManager,
		metrics:         metricsManager,
		instructorNames: instructorNames,
		loc:             loc,
		now:             time.Now,
	}
}

// Rewind builds the statistics snapshot for the given window. The music
// portion is not part of it; it is fetched separately via Music so a
// song-catalogue outage cannot hold the snapshot back.
func (s *Service) Rewind(ctx context.Context, w Window, forceRefresh bool) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "review.service.rewind")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("window", w.CacheKey()))

	records, activeDays, err := s.ingest(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}

	if w.Mode == ModeBike {
		since, ok := BikeSince(records)
		if !ok {
			return nil, ErrNoBikeEvidence
		}
		w.Since = since
	}

	snapshot := BuildSnapshot(records, w, activeDays, s.instructorNames, s.loc, s.now())
	s.metrics.CounterSnapshotsBuilt.Inc()
	return snapshot, nil
}

// Music resolves the music rankings for the window's cycling workouts.
func (s *Service) Music(ctx context.Context, w Window, forceRefresh bool) (_ *music.Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "review.service.music")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	records, _, err := s.ingest(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}

	if w.Mode == ModeBike {
		since, ok := BikeSince(records)
		if !ok {
			return nil, ErrNoBikeEvidence
		}
		w.Since = since
	}

	sel := Select(records, w, s.now())
	var cyclingIDs []string
	for _, r := range sel.Records {
		if r.IsCycling() {
			cyclingIDs = append(cyclingIDs, r.ID)
		}
	}

	s.metrics.CounterMusicLookups.Inc()
	return s.music.StatsFor(ctx, w.CacheKey(), cyclingIDs, forceRefresh)
}

// InvalidateIngest drops the cached raw datasets, forcing the next
// request to refetch from upstream.
func (s *Service) InvalidateIngest(ctx context.Context) error {
	return multierr.Combine(
		s.cache.Invalidate(ctx, feedCacheKey),
		s.cache.Invalidate(ctx, exportCacheKey),
		s.cache.Invalidate(ctx, calendarCacheKey),
	)
}

// ingest returns the unified record set and the active-day calendar,
// served from the cache while fresh. On a miss the three upstream
// fetches run concurrently, but correlation starts only once both
// workout datasets are fully resident.
func (s *Service) ingest(ctx context.Context, forceRefresh bool) (_ []workout.Record, _ []time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "review.service.ingest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var feed []workout.FeedWorkout
	var rows []workout.ExportRow
	var activeDays []time.Time

	if !forceRefresh &&
		s.cache.Fresh(ctx, feedCacheKey, &feed) &&
		s.cache.Fresh(ctx, exportCacheKey, &rows) &&
		s.cache.Fresh(ctx, calendarCacheKey, &activeDays) {
		s.metrics.CounterCacheHits.Inc()
		return workout.Correlate(feed, rows), activeDays, nil
	}
	s.metrics.CounterCacheMisses.Inc()

	started := s.now()
	var feedErr, exportErr, calendarErr error

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		feed, feedErr = s.src.AllWorkouts(ctx)
	}()
	go func() {
		defer wg.Done()
		rows, exportErr = s.src.Export(ctx)
	}()
	go func() {
		defer wg.Done()
		activeDays, calendarErr = s.src.ActiveDays(ctx)
	}()
	wg.Wait()

	if err := multierr.Combine(feedErr, exportErr, calendarErr); err != nil {
		return nil, nil, fmt.Errorf("ingest upstream datasets: %w", err)
	}

	s.metrics.CounterIngestions.Inc()
	s.metrics.HistogramIngestDuration.Observe(s.now().Sub(started).Seconds())

	// cache-write failures only cost a refetch later
	if err := s.cache.Write(ctx, feedCacheKey, feed); err != nil {
		log.Warnf("failed to cache workout feed: %s", err)
	}
	if err := s.cache.Write(ctx, exportCacheKey, rows); err != nil {
		log.Warnf("failed to cache bulk export: %s", err)
	}
	if err := s.cache.Write(ctx, calendarCacheKey, activeDays); err != nil {
		log.Warnf("failed to cache calendar: %s", err)
	}

	return workout.Correlate(feed, rows), activeDays, nil
}
