package review

import (
	"time"

	"github.com/velimirb/riderewind/internal/music"
	"github.com/velimirb/riderewind/internal/workout"
)

type WindowInfo struct {
	Mode         Mode      `json:"mode"`
	Year         int       `json:"year,omitempty"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	ElapsedWeeks float64   `json:"elapsedWeeks"`
}

// Snapshot is the read-only statistics view handed to the presentation
// layer: the merge of all aggregation passes over one selection window.
// Music is filled in separately after the initial build and stays nil
// when the music aggregation failed; everything else remains valid.
type Snapshot struct {
	Window      WindowInfo            `json:"window"`
	Totals      Totals                `json:"totals"`
	Disciplines []DisciplineBucket    `json:"disciplines,omitempty"`
	Instructors InstructorLeaderboard `json:"instructors"`
	TimeOfDay   []TimeOfDayBucket     `json:"timeOfDay"`
	Favorites   []FavoriteWorkout     `json:"favorites,omitempty"`
	Cycling     CyclingStats          `json:"cycling"`
	HeartRate   HeartRateStats        `json:"heartRate"`
	Equivalents Equivalents           `json:"equivalents"`
	Streaks     StreakState           `json:"streaks"`
	Music       *music.Stats          `json:"music,omitempty"`
}

// BuildSnapshot runs every aggregation pass over the window's record
// subset. Pure computation over in-memory collections: no I/O, no
// mutation of the inputs, same output for the same inputs.
func BuildSnapshot(
	records []workout.Record,
	w Window,
	activeDays []time.Time,
	instructorNames map[string]string,
	loc *time.Location,
	now time.Time,
) *Snapshot {
	sel := Select(records, w, now)

	windowDays := make([]time.Time, 0, len(activeDays))
	for _, d := range activeDays {
		day := toUTCDay(d)
		if !day.Before(toUTCDay(sel.Start)) && !day.After(toUTCDay(sel.End)) {
			windowDays = append(windowDays, day)
		}
	}

	totals := AggregateTotals(sel)

	return &Snapshot{
		Window: WindowInfo{
			Mode:         w.Mode,
			Year:         w.Year,
			Start:        sel.Start,
			End:          sel.End,
			ElapsedWeeks: roundTo(sel.ElapsedWeeks, 2),
		},
		Totals:      totals,
		Disciplines: AggregateDisciplines(sel.Records),
		Instructors: AggregateInstructors(sel.Records, instructorNames),
		TimeOfDay:   AggregateTimeOfDay(sel.Records, loc),
		Favorites:   AggregateFavorites(sel.Records),
		Cycling:     AggregateCycling(sel.Records),
		HeartRate:   AggregateHeartRate(sel.Records),
		Equivalents: AggregateEquivalents(totals.TotalOutput, totals.TotalDistance),
		Streaks:     Streaks(windowDays, now),
	}
}
