package workout_test

import (
	"testing"
	"time"

	"github.com/velimirb/riderewind/internal/workout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp_ExportFormat(t *testing.T) {
	ts, err := workout.ParseTimestamp("2024-03-01 09:14 (GMT)")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 14, 0, 0, time.UTC), ts)

	// the suffix varies between exports, both mean UTC
	ts, err = workout.ParseTimestamp("2024-03-01 09:14 (UTC)")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 14, 0, 0, time.UTC), ts)
}

func TestParseTimestamp_Epoch(t *testing.T) {
	ts, err := workout.ParseTimestamp("1709284440")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 14, 0, 0, time.UTC), ts)
}

func TestParseTimestamp_Unparsable(t *testing.T) {
	for _, raw := range []string{"", "yesterday", "2024-03-01T09:14:00Z (GMT)", "03/01/2024 09:14"} {
		_, err := workout.ParseTimestamp(raw)
		assert.ErrorIs(t, err, workout.ErrBadTimestamp, "input: %q", raw)
	}
}

func TestKphToMph(t *testing.T) {
	assert.InDelta(t, 6.21371, workout.KphToMph(10), 0.0001)
	assert.Equal(t, float64(0), workout.KphToMph(0))
}

func TestKmToMiles(t *testing.T) {
	assert.InDelta(t, 16.2999, workout.KmToMiles(26.23), 0.001)
}

func TestParseResistance(t *testing.T) {
	res, err := workout.ParseResistance("50%")
	require.NoError(t, err)
	assert.Equal(t, 50.0, res)

	res, err = workout.ParseResistance(" 42.5 % ")
	require.NoError(t, err)
	assert.Equal(t, 42.5, res)

	res, err = workout.ParseResistance("37")
	require.NoError(t, err)
	assert.Equal(t, 37.0, res)

	_, err = workout.ParseResistance("heavy")
	assert.Error(t, err)
}
