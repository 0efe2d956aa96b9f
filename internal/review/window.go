package review

import (
	"fmt"
	"math"
	"time"

	"github.com/velimirb/riderewind/internal/workout"
)

type Mode string

const (
	ModeYear Mode = "year"
	ModeAll  Mode = "all"
	ModeBike Mode = "bike"
)

// Window is the selected reporting period: one calendar year, the whole
// workout history, or everything since the first bike-equipped workout.
type Window struct {
	Mode  Mode
	Year  int       // set for ModeYear
	Since time.Time // set for ModeBike
}

func YearWindow(year int) Window {
	return Window{Mode: ModeYear, Year: year}
}

func AllTimeWindow() Window {
	return Window{Mode: ModeAll}
}

func SinceBikeWindow(since time.Time) Window {
	return Window{Mode: ModeBike, Since: since}
}

// CacheKey identifies the window for cached derived data. Bike windows
// share one key: the "since" date is derived from the record set, not
// chosen by the caller.
func (w Window) CacheKey() string {
	switch w.Mode {
	case ModeYear:
		return fmt.Sprintf("year-%d", w.Year)
	case ModeBike:
		return "bike"
	default:
		return "all"
	}
}

// Selection is the filtered record set plus the date range it covers.
type Selection struct {
	Records      []workout.Record
	Start        time.Time
	End          time.Time
	ElapsedWeeks float64
}

// Select filters the unified record set down to the window and derives
// the applicable date range. ElapsedWeeks has a floor of one week so
// per-week rates cannot blow up on same-day windows.
func Select(records []workout.Record, w Window, now time.Time) Selection {
	now = now.UTC()

	var filtered []workout.Record
	var start, end time.Time

	switch w.Mode {
	case ModeYear:
		for _, r := range records {
			if r.StartedAt.UTC().Year() == w.Year {
				filtered = append(filtered, r)
			}
		}
		start = time.Date(w.Year, 1, 1, 0, 0, 0, 0, time.UTC)
		if earliest, ok := earliestStart(filtered); ok {
			start = earliest
		}
		end = time.Date(w.Year, 12, 31, 23, 59, 59, 0, time.UTC)
		if w.Year == now.Year() {
			end = now
		}

	case ModeBike:
		since := w.Since.UTC()
		for _, r := range records {
			if !r.StartedAt.UTC().Before(since) {
				filtered = append(filtered, r)
			}
		}
		start = since
		end = now

	default: // ModeAll
		filtered = append(filtered, records...)
		start, end = now, now
		if earliest, ok := earliestStart(filtered); ok {
			start = earliest
		}
		if latest, ok := latestStart(filtered); ok {
			end = latest
		}
	}

	elapsedDays := end.Sub(start).Hours() / 24
	elapsedWeeks := math.Max(1, elapsedDays/7)

	return Selection{
		Records:      filtered,
		Start:        start,
		End:          end,
		ElapsedWeeks: elapsedWeeks,
	}
}

// BikeSince returns the start of the earliest cycling workout with a
// positive recorded output. A cycling workout with zero or missing
// output is not evidence of connected bike equipment.
func BikeSince(records []workout.Record) (time.Time, bool) {
	var since time.Time
	found := false
	for _, r := range records {
		if !r.IsCycling() || !r.HasOutput() {
			continue
		}
		if !found || r.StartedAt.Before(since) {
			since = r.StartedAt
			found = true
		}
	}
	return since, found
}

func earliestStart(records []workout.Record) (time.Time, bool) {
	var earliest time.Time
	for i, r := range records {
		if i == 0 || r.StartedAt.Before(earliest) {
			earliest = r.StartedAt
		}
	}
	return earliest, len(records) > 0
}

func latestStart(records []workout.Record) (time.Time, bool) {
	var latest time.Time
	for i, r := range records {
		if i == 0 || r.StartedAt.After(latest) {
			latest = r.StartedAt
		}
	}
	return latest, len(records) > 0
}
