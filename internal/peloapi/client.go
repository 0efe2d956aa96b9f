package peloapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/velimirb/riderewind/internal/music"
	"github.com/velimirb/riderewind/internal/telemetry/tracing"
	"github.com/velimirb/riderewind/internal/workout"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	workoutsPageSize = 100

	// short-lived response cache inside the client; the durable
	// staleness-checked cache lives with the review service
	responseCacheExpireSeconds = 60 * 60
	exportCacheKey             = "export-csv"
)

// Client talks to the upstream fitness-platform API on behalf of one
// authenticated user. The session id is supplied externally; session
// renewal is not this client's problem.
type Client struct {
	baseURL      string
	songsBaseURL string
	userID       string
	sessionID    string
	httpClient   *http.Client
	cache        *freecache.Cache
}

func NewClient(baseURL, songsBaseURL, userID, sessionID string, httpClient *http.Client) *Client {
	megabyte := 1024 * 1024
	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		songsBaseURL: strings.TrimSuffix(songsBaseURL, "/"),
		userID:       userID,
		sessionID:    sessionID,
		httpClient:   httpClient,
		cache:        freecache.NewCache(10 * megabyte),
	}
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cookie", "peloton_session_id="+c.sessionID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}

	return respBytes, nil
}

// AllWorkouts drains the paginated workouts feed into one array. The
// aggregation core never sees pagination; it gets the full set.
func (c *Client) AllWorkouts(ctx context.Context) (_ []workout.FeedWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "peloapi.allWorkouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var all []workout.FeedWorkout
	for page := 0; ; page++ {
		pageURL := fmt.Sprintf(
			"%s/api/user/%s/workouts?limit=%d&page=%d",
			c.baseURL, c.userID, workoutsPageSize, page,
		)

		respBytes, err := c.get(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("fetch workouts page %d: %w", page, err)
		}

		var pageResp workoutsPageResponse
		if err := json.Unmarshal(respBytes, &pageResp); err != nil {
			return nil, fmt.Errorf("unmarshal workouts page %d: %w", page, err)
		}

		all = append(all, pageResp.Data...)
		if page >= pageResp.PageCount-1 || len(pageResp.Data) == 0 {
			break
		}
	}

	span.SetAttributes(attribute.Int("workouts", len(all)))
	log.Debugf("fetched %d workouts from feed", len(all))
	return all, nil
}

// Export downloads the bulk workout-history CSV and parses it. The raw
// CSV is kept in a short-lived in-process cache since the upstream
// generates it on the fly.
func (c *Client) Export(ctx context.Context) (_ []workout.ExportRow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "peloapi.export")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if cached, err := c.cache.Get([]byte(exportCacheKey)); err == nil {
		log.Tracef("serving bulk export from client cache")
		return workout.ParseExport(bytes.NewReader(cached))
	}

	exportURL := fmt.Sprintf("%s/api/user/%s/workout_history_csv?timezone=UTC", c.baseURL, c.userID)
	respBytes, err := c.get(ctx, exportURL)
	if err != nil {
		return nil, fmt.Errorf("fetch bulk export: %w", err)
	}

	if err := c.cache.Set([]byte(exportCacheKey), respBytes, responseCacheExpireSeconds); err != nil {
		log.Warnf("failed to cache bulk export: %s", err)
	}

	return workout.ParseExport(bytes.NewReader(respBytes))
}

// ActiveDays returns every calendar day with at least one completed
// workout, as UTC midnights.
func (c *Client) ActiveDays(ctx context.Context) (_ []time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "peloapi.activeDays")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	calendarURL := fmt.Sprintf("%s/api/user/%s/calendar", c.baseURL, c.userID)
	respBytes, err := c.get(ctx, calendarURL)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar: %w", err)
	}

	var calendar calendarResponse
	if err := json.Unmarshal(respBytes, &calendar); err != nil {
		return nil, fmt.Errorf("unmarshal calendar: %w", err)
	}

	var days []time.Time
	for _, month := range calendar.Months {
		for _, day := range month.ActiveDays {
			days = append(days, time.Date(month.Year, time.Month(month.Month), day, 0, 0, 0, 0, time.UTC))
		}
	}

	span.SetAttributes(attribute.Int("active_days", len(days)))
	return days, nil
}

// RideSongs fetches the song plays for one batch of workout ids.
// Callers own the batching; this issues a single request.
func (c *Client) RideSongs(ctx context.Context, workoutIDs []string) (_ []music.SongPlay, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "peloapi.rideSongs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout_ids", len(workoutIDs)))

	songsURL := fmt.Sprintf(
		"%s/api/ride/songs?workout_ids=%s",
		c.songsBaseURL, url.QueryEscape(strings.Join(workoutIDs, ",")),
	)

	respBytes, err := c.get(ctx, songsURL)
	if err != nil {
		return nil, fmt.Errorf("fetch ride songs: %w", err)
	}

	var songsResp rideSongsResponse
	if err := json.Unmarshal(respBytes, &songsResp); err != nil {
		return nil, fmt.Errorf("unmarshal ride songs: %w", err)
	}

	return songsResp.Data, nil
}
