package review

import (
	"sort"
	"time"
)

// StreakState is computed fresh from the full active-day set on every
// invocation; nothing is incrementally maintained.
type StreakState struct {
	Current    int `json:"current"`
	Longest    int `json:"longest"`
	ActiveDays int `json:"activeDays"`
}

// Streaks computes the current and longest consecutive-day streaks over
// a set of active calendar days. All day comparisons happen on UTC
// calendar-day boundaries to avoid off-by-one errors near midnight. The
// current streak is anchored at today, or at yesterday when today has
// no activity yet.
func Streaks(activeDays []time.Time, now time.Time) StreakState {
	seen := make(map[time.Time]bool, len(activeDays))
	for _, d := range activeDays {
		seen[toUTCDay(d)] = true
	}
	if len(seen) == 0 {
		return StreakState{}
	}

	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	state := StreakState{ActiveDays: len(days)}

	// longest: one pass over the sorted days; a lone day is a streak of 1
	run := 1
	state.Longest = 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
			if run > state.Longest {
				state.Longest = run
			}
		} else {
			run = 1
		}
	}

	// current: walk backward from the anchor until the first gap
	anchor := toUTCDay(now)
	if !seen[anchor] {
		anchor = anchor.AddDate(0, 0, -1)
	}
	for seen[anchor] {
		state.Current++
		anchor = anchor.AddDate(0, 0, -1)
	}

	return state
}

func toUTCDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
