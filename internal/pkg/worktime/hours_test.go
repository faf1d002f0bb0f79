package worktime

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(t time.Time) *time.Time { return &t }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertHours(t *testing.T, got Hours, total, regular, overtime string) {
	t.Helper()
	assert.True(t, got.Total.Equal(dec(total)), "total: got %s want %s", got.Total, total)
	assert.True(t, got.Regular.Equal(dec(regular)), "regular: got %s want %s", got.Regular, regular)
	assert.True(t, got.Overtime.Equal(dec(overtime)), "overtime: got %s want %s", got.Overtime, overtime)
}

func TestComputeHours(t *testing.T) {
	tests := []struct {
		name                     string
		in, out                  time.Time
		breakMinutes             int
		total, regular, overtime string
	}{
		{"standard day", at(9, 0, 0), at(17, 0, 0), 60, "7", "7", "0"},
		{"overtime", at(9, 0, 0), at(19, 30, 0), 60, "9.5", "8", "1.5"},
		{"exactly threshold", at(8, 0, 0), at(17, 0, 0), 60, "8", "8", "0"},
		{"shorter than break", at(9, 0, 0), at(9, 30, 0), 60, "0", "0", "0"},
		{"no break", at(9, 0, 0), at(12, 0, 0), 0, "3", "3", "0"},
		{"sub-hour fraction", at(9, 0, 0), at(17, 20, 0), 60, "7.33", "7.33", "0"},
		{"half even down", at(9, 0, 0), at(9, 7, 30), 0, "0.12", "0.12", "0"},
		{"half even up", at(9, 0, 0), at(9, 8, 6), 0, "0.14", "0.14", "0"},
		{"overnight", at(22, 0, 0), at(22, 0, 0).Add(9 * time.Hour), 30, "8.5", "8", "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := HoursPolicy{BreakMinutes: tt.breakMinutes, DailyThresholdHours: decimal.NewFromInt(8)}
			got, err := ComputeHours(ptr(tt.in), ptr(tt.out), policy)
			require.NoError(t, err)
			assertHours(t, got, tt.total, tt.regular, tt.overtime)
		})
	}
}

func TestComputeHours_OpenRecord(t *testing.T) {
	got, err := ComputeHours(ptr(at(9, 0, 0)), nil, DefaultHoursPolicy())
	require.NoError(t, err)
	assertHours(t, got, "0", "0", "0")

	got, err = ComputeHours(nil, nil, DefaultHoursPolicy())
	require.NoError(t, err)
	assertHours(t, got, "0", "0", "0")
}

func TestComputeHours_InvalidInterval(t *testing.T) {
	_, err := ComputeHours(ptr(at(9, 0, 0)), ptr(at(9, 0, 0)), DefaultHoursPolicy())
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = ComputeHours(ptr(at(17, 0, 0)), ptr(at(9, 0, 0)), DefaultHoursPolicy())
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestComputeHours_InvalidPolicy(t *testing.T) {
	_, err := ComputeHours(ptr(at(9, 0, 0)), ptr(at(17, 0, 0)), HoursPolicy{BreakMinutes: -5, DailyThresholdHours: dec("8")})
	assert.ErrorIs(t, err, ErrInvalidHoursPolicy)

	_, err = ComputeHours(ptr(at(9, 0, 0)), ptr(at(17, 0, 0)), HoursPolicy{BreakMinutes: 60})
	assert.ErrorIs(t, err, ErrInvalidHoursPolicy)
}

func TestComputeHours_TotalIsRegularPlusOvertime(t *testing.T) {
	policy := DefaultHoursPolicy()
	start := at(6, 0, 0)

	// every 7 minutes and 13 seconds across 16 hours
	for offset := time.Second; offset <= 16*time.Hour; offset += 7*time.Minute + 13*time.Second {
		got, err := ComputeHours(ptr(start), ptr(start.Add(offset)), policy)
		require.NoError(t, err)

		assert.True(t, got.Total.Equal(got.Regular.Add(got.Overtime)), "offset %s", offset)
		assert.True(t, got.Regular.LessThanOrEqual(policy.DailyThresholdHours), "offset %s", offset)
		assert.False(t, got.Overtime.IsNegative(), "offset %s", offset)
		assert.False(t, got.Total.IsNegative(), "offset %s", offset)
	}
}
