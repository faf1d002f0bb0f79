package rounding

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.125", "0.12"},
		{"0.135", "0.14"},
		{"874.995", "875"},
		{"2.5", "2.5"},
		{"-1.005", "-1"},
		{"7", "7"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Round(decimal.RequireFromString(tt.in))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestSum(t *testing.T) {
	got := Sum(decimal.RequireFromString("0.1"), decimal.RequireFromString("0.2"))
	assert.Equal(t, "0.30", got.StringFixed(2))
	assert.True(t, Sum().IsZero())
}
