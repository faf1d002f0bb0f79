package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysInYear(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			panic(err)
		}
		return d
	}

	tests := []struct {
		name       string
		start, end string
		year       int
		want       int
	}{
		{"inside the year", "2025-04-07", "2025-04-09", 2025, 3},
		{"spanning, first year", "2025-12-30", "2026-01-02", 2025, 2},
		{"spanning, second year", "2025-12-30", "2026-01-02", 2026, 2},
		{"other year", "2025-04-07", "2025-04-09", 2026, 0},
		{"whole year", "2024-12-31", "2026-01-01", 2025, 365},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysInYear(day(tt.start), day(tt.end), tt.year))
		})
	}
}
