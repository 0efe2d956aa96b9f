package music

import (
	"context"
	"fmt"

	"github.com/velimirb/riderewind/internal/cache"
	"github.com/velimirb/riderewind/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// the upstream catalogue tolerates only small id lists per request
const defaultBatchSize = 7

const cacheKeyPrefix = "music::"

type songCatalogue interface {
	RideSongs(ctx context.Context, workoutIDs []string) ([]SongPlay, error)
}

// Correlator resolves workout ids to song plays through the external
// catalogue and aggregates them into rankings, with a time-boxed cache
// per selection window.
type Correlator struct {
	catalogue songCatalogue
	cache     *cache.Manager
	batchSize int
}

func NewCorrelator(catalogue songCatalogue, cacheManager *cache.Manager) *Correlator {
	return &Correlator{
		catalogue: catalogue,
		cache:     cacheManager,
		batchSize: defaultBatchSize,
	}
}

// StatsFor returns the music rankings for the given workout ids,
// identified by windowKey for caching. Batches are fetched one after
// another to respect upstream rate limits, and any batch failure fails
// the whole operation: a partial ranking would silently lie.
func (c *Correlator) StatsFor(
	ctx context.Context,
	windowKey string,
	workoutIDs []string,
	forceRefresh bool,
) (_ *Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "music.correlator.statsFor")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("window_key", windowKey),
		attribute.Int("workout_ids", len(workoutIDs)),
	)

	cacheKey := cacheKeyPrefix + windowKey
	if !forceRefresh {
		var cached Stats
		if c.cache.Fresh(ctx, cacheKey, &cached) {
			log.Tracef("music stats for %s served from cache", windowKey)
			return &cached, nil
		}
	}

	var plays []SongPlay
	for start := 0; start < len(workoutIDs); start += c.batchSize {
		end := start + c.batchSize
		if end > len(workoutIDs) {
			end = len(workoutIDs)
		}

		batch, err := c.catalogue.RideSongs(ctx, workoutIDs[start:end])
		if err != nil {
			return nil, fmt.Errorf("fetch song batch [%d:%d]: %w", start, end, err)
		}
		plays = append(plays, batch...)
	}

	stats := Aggregate(plays)
	if err := c.cache.Write(ctx, cacheKey, stats); err != nil {
		// a failed cache write costs a refetch next time, nothing more
		log.Warnf("failed to cache music stats for %s: %s", windowKey, err)
	}

	return &stats, nil
}
