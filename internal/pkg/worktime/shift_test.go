package worktime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute, second int) time.Time {
	return time.Date(2025, time.March, 10, hour, minute, second, 0, time.UTC)
}

func TestClassifyClockIn(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		grace   int
		clockIn time.Time
		want    Classification
	}{
		{"well before start", "09:00", 15, at(8, 30, 0), Present},
		{"inside grace", "09:00", 15, at(9, 14, 0), Present},
		{"exactly at grace limit", "09:00", 15, at(9, 15, 0), Present},
		{"one second past grace", "09:00", 15, at(9, 15, 1), Late},
		{"after grace", "09:00", 15, at(9, 16, 0), Late},
		{"zero grace on time", "08:30", 0, at(8, 30, 0), Present},
		{"zero grace late", "08:30", 0, at(8, 30, 30), Late},
		{"single digit hour", "7:45", 10, at(7, 56, 0), Late},
		{"night shift early", "22:00", 15, at(21, 50, 0), Present},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifyClockIn(tt.start, tt.grace, tt.clockIn)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyClockIn_UsesClockInLocation(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	clockIn := time.Date(2025, time.March, 10, 9, 10, 0, 0, loc)

	got, err := ClassifyClockIn("09:00", 15, clockIn)
	require.NoError(t, err)
	assert.Equal(t, Present, got)
}

func TestClassifyClockIn_ConfigurationErrors(t *testing.T) {
	for _, start := range []string{"", "9", "09:60", "24:00", "09:00:00", "nine"} {
		_, err := ClassifyClockIn(start, 15, at(9, 0, 0))
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay, "start %q", start)
	}

	_, err := ClassifyClockIn("09:00", -1, at(9, 0, 0))
	assert.ErrorIs(t, err, ErrNegativeGracePeriod)
}

func TestDefaultSchedule(t *testing.T) {
	s := DefaultSchedule()
	require.NoError(t, s.Validate())

	got, err := s.Classify(at(9, 14, 0))
	require.NoError(t, err)
	assert.Equal(t, Present, got)

	got, err = s.Classify(at(9, 16, 0))
	require.NoError(t, err)
	assert.Equal(t, Late, got)
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay(" 7:05 ")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 7, Minute: 5}, tod)
	assert.Equal(t, "07:05", tod.String())
}
