package review

import (
	"testing"
	"time"

	"github.com/velimirb/riderewind/internal/workout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instructorRide(instructorID, discipline string, minutes int) workout.Record {
	return workout.Record{
		InstructorID: instructorID,
		Discipline:   discipline,
		Duration:     time.Duration(minutes) * time.Minute,
	}
}

func TestAggregateInstructors(t *testing.T) {
	records := []workout.Record{
		instructorRide("i1", workout.DisciplineCycling, 30),
		instructorRide("i1", workout.DisciplineCycling, 30),
		instructorRide("i1", workout.DisciplineStrength, 20),
		instructorRide("i2", workout.DisciplineStrength, 45),
		instructorRide("i2", workout.DisciplineStrength, 45),
		// no instructor attached, e.g. free ride
		instructorRide("", workout.DisciplineCycling, 60),
	}
	names := map[string]string{"i1": "Alex", "i2": "Robin"}

	board := AggregateInstructors(records, names)
	require.NotNil(t, board.Favorite)
	assert.Equal(t, "i1", board.Favorite.ID)
	assert.Equal(t, "Alex", board.Favorite.Name)
	assert.Equal(t, 3, board.Favorite.Workouts)

	require.Len(t, board.All, 2)
	assert.Equal(t, "i2", board.All[1].ID)

	require.Contains(t, board.TopByDiscipline, workout.DisciplineCycling)
	require.Contains(t, board.TopByDiscipline, workout.DisciplineStrength)
	assert.Equal(t, "i1", board.TopByDiscipline[workout.DisciplineCycling].ID)
	// i2 leads strength even though i1 is the overall favorite
	assert.Equal(t, "i2", board.TopByDiscipline[workout.DisciplineStrength].ID)
}

func TestAggregateInstructors_TieBrokenByMinutes(t *testing.T) {
	records := []workout.Record{
		instructorRide("short", workout.DisciplineCycling, 10),
		instructorRide("long", workout.DisciplineCycling, 60),
	}

	board := AggregateInstructors(records, nil)
	require.NotNil(t, board.Favorite)
	assert.Equal(t, "long", board.Favorite.ID)
}

func TestAggregateInstructors_AvgDifficulty(t *testing.T) {
	r1 := instructorRide("i1", workout.DisciplineCycling, 30)
	r1.Difficulty = fp(7.0)
	r2 := instructorRide("i1", workout.DisciplineCycling, 30)
	r2.Difficulty = fp(8.0)
	r3 := instructorRide("i1", workout.DisciplineCycling, 30) // no estimate

	board := AggregateInstructors([]workout.Record{r1, r2, r3}, nil)
	require.NotNil(t, board.Favorite)
	assert.Equal(t, 7.5, board.Favorite.AvgDifficulty)
}

func TestAggregateInstructors_Empty(t *testing.T) {
	board := AggregateInstructors([]workout.Record{
		instructorRide("", workout.DisciplineCycling, 30),
	}, nil)
	assert.Nil(t, board.Favorite)
	assert.Empty(t, board.All)
	assert.Nil(t, board.TopByDiscipline)
}
