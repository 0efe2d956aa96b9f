package review

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/velimirb/riderewind/internal/workout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotFixture() ([]workout.Record, []time.Time, time.Time) {
	records := []workout.Record{
		{
			ID:           "w1",
			StartedAt:    time.Date(2024, 2, 1, 7, 30, 0, 0, time.UTC),
			Duration:     30 * time.Minute,
			Discipline:   workout.DisciplineCycling,
			InstructorID: "i1",
			Title:        "30 min Climb Ride",
			Output:       fp(250),
			Calories:     fp(300),
			Distance:     fp(9.5),
			AvgHeartRate: fp(145),
			MaxHeartRate: fp(175),
		},
		{
			ID:           "w2",
			StartedAt:    time.Date(2024, 2, 2, 18, 0, 0, 0, time.UTC),
			Duration:     20 * time.Minute,
			Discipline:   workout.DisciplineStrength,
			InstructorID: "i2",
			Title:        "20 min Full Body",
			Calories:     fp(180),
		},
		{
			ID:         "w3",
			StartedAt:  time.Date(2023, 11, 5, 9, 0, 0, 0, time.UTC),
			Duration:   10 * time.Minute,
			Discipline: workout.DisciplineMeditation,
			Title:      "10 min Meditation",
		},
	}
	activeDays := []time.Time{
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 11, 5, 0, 0, 0, 0, time.UTC),
	}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return records, activeDays, now
}

func TestBuildSnapshot(t *testing.T) {
	records, activeDays, now := snapshotFixture()
	names := map[string]string{"i1": "Alex"}

	snapshot := BuildSnapshot(records, YearWindow(2024), activeDays, names, time.UTC, now)
	require.NotNil(t, snapshot)

	assert.Equal(t, ModeYear, snapshot.Window.Mode)
	assert.Equal(t, 2024, snapshot.Window.Year)
	assert.Equal(t, 2, snapshot.Totals.Workouts)
	assert.Equal(t, 1, snapshot.Cycling.Rides)
	require.NotNil(t, snapshot.Instructors.Favorite)
	assert.Nil(t, snapshot.Music)

	// active days outside the window must not count toward streaks
	assert.Equal(t, 2, snapshot.Streaks.ActiveDays)
	assert.Equal(t, 2, snapshot.Streaks.Longest)
}

func TestBuildSnapshot_Deterministic(t *testing.T) {
	records, activeDays, now := snapshotFixture()

	first := BuildSnapshot(records, AllTimeWindow(), activeDays, nil, time.UTC, now)
	second := BuildSnapshot(records, AllTimeWindow(), activeDays, nil, time.UTC, now)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(firstJSON), string(secondJSON))
}

func TestBuildSnapshot_DoesNotMutateInput(t *testing.T) {
	records, activeDays, now := snapshotFixture()
	before, err := json.Marshal(records)
	require.NoError(t, err)

	_ = BuildSnapshot(records, AllTimeWindow(), activeDays, nil, time.UTC, now)

	after, err := json.Marshal(records)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}
