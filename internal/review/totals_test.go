package review

import (
	"testing"
	"time"

	"github.com/velimirb/riderewind/internal/workout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateTotals(t *testing.T) {
	sel := Selection{
		ElapsedWeeks: 2,
		Records: []workout.Record{
			{Duration: 30 * time.Minute, Calories: fp(300), Distance: fp(10), Output: fp(200)},
			{Duration: 45 * time.Minute, Calories: fp(500)},
			{Duration: 20 * time.Minute, Distance: fp(5), Output: fp(100)},
			{Duration: 15 * time.Minute},
		},
	}

	totals := AggregateTotals(sel)
	assert.Equal(t, 4, totals.Workouts)
	assert.Equal(t, 2.0, totals.WorkoutsPerWeek)
	assert.Equal(t, 110.0, totals.TotalMinutes)
	assert.Equal(t, 1, totals.Time.Hours)
	assert.Equal(t, 50, totals.Time.Minutes)
	assert.Nil(t, totals.Time.WorkingDays)

	// averages divide by records carrying the field, not the full count
	assert.Equal(t, 800.0, totals.TotalCalories)
	assert.Equal(t, 400.0, totals.CaloriesPerWorkout)
	assert.Equal(t, 15.0, totals.TotalDistance)
	assert.Equal(t, 7.5, totals.DistancePerWorkout)
	assert.Equal(t, 300.0, totals.TotalOutput)
}

func TestAggregateTotals_WorkingDays(t *testing.T) {
	var records []workout.Record
	for i := 0; i < 20; i++ {
		records = append(records, workout.Record{Duration: time.Hour})
	}

	totals := AggregateTotals(Selection{Records: records, ElapsedWeeks: 10})
	require.NotNil(t, totals.Time.WorkingDays)
	assert.Equal(t, 2, *totals.Time.WorkingDays)
}

func TestAggregateTotals_Empty(t *testing.T) {
	totals := AggregateTotals(Selection{ElapsedWeeks: 1})
	assert.Zero(t, totals.Workouts)
	assert.Zero(t, totals.CaloriesPerWorkout)
	assert.Zero(t, totals.DistancePerWorkout)
	assert.Nil(t, totals.Time.WorkingDays)
}
