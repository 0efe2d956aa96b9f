package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStreaks(t *testing.T) {
	now := time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC)

	t.Run("current streak anchored at today", func(t *testing.T) {
		state := Streaks([]time.Time{
			day(2024, 6, 8),
			day(2024, 6, 9),
			day(2024, 6, 10),
		}, now)
		assert.Equal(t, 3, state.Current)
		assert.Equal(t, 3, state.Longest)
		assert.Equal(t, 3, state.ActiveDays)
	})

	t.Run("no workout today yet keeps the streak alive", func(t *testing.T) {
		state := Streaks([]time.Time{
			day(2024, 6, 8),
			day(2024, 6, 9),
		}, now)
		assert.Equal(t, 2, state.Current)
	})

	t.Run("gap before yesterday breaks the streak", func(t *testing.T) {
		state := Streaks([]time.Time{
			day(2024, 6, 5),
			day(2024, 6, 6),
			day(2024, 6, 8),
		}, now)
		assert.Equal(t, 0, state.Current)
		assert.Equal(t, 2, state.Longest)
	})

	t.Run("longest streak lives in the past", func(t *testing.T) {
		state := Streaks([]time.Time{
			day(2024, 1, 1),
			day(2024, 1, 2),
			day(2024, 1, 3),
			day(2024, 1, 4),
			day(2024, 6, 10),
		}, now)
		assert.Equal(t, 1, state.Current)
		assert.Equal(t, 4, state.Longest)
		assert.Equal(t, 5, state.ActiveDays)
	})

	t.Run("multiple workouts one day count once", func(t *testing.T) {
		state := Streaks([]time.Time{
			day(2024, 6, 10),
			time.Date(2024, 6, 10, 7, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 10, 19, 0, 0, 0, time.UTC),
		}, now)
		assert.Equal(t, 1, state.Current)
		assert.Equal(t, 1, state.Longest)
		assert.Equal(t, 1, state.ActiveDays)
	})

	t.Run("day boundaries are UTC", func(t *testing.T) {
		berlin, err := time.LoadLocation("Europe/Berlin")
		assert.NoError(t, err)

		// 00:30 Berlin on June 10 is still June 9 in UTC
		state := Streaks([]time.Time{
			time.Date(2024, 6, 10, 0, 30, 0, 0, berlin),
			day(2024, 6, 10),
		}, now)
		assert.Equal(t, 2, state.ActiveDays)
		assert.Equal(t, 2, state.Current)
	})

	t.Run("empty", func(t *testing.T) {
		state := Streaks(nil, now)
		assert.Zero(t, state.Current)
		assert.Zero(t, state.Longest)
		assert.Zero(t, state.ActiveDays)
	})
}
