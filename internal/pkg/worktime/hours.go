package worktime

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/rounding"
)

const (
	DefaultBreakMinutes        = 60
	DefaultDailyThresholdHours = 8
)

// HoursPolicy configures how a clock-in/clock-out pair turns into hours.
type HoursPolicy struct {
	BreakMinutes        int
	DailyThresholdHours decimal.Decimal
}

func DefaultHoursPolicy() HoursPolicy {
	return HoursPolicy{
		BreakMinutes:        DefaultBreakMinutes,
		DailyThresholdHours: decimal.NewFromInt(DefaultDailyThresholdHours),
	}
}

func (p HoursPolicy) Validate() error {
	if p.BreakMinutes < 0 {
		return fmt.Errorf("%w: break minutes %d", ErrInvalidHoursPolicy, p.BreakMinutes)
	}
	if !p.DailyThresholdHours.IsPositive() {
		return fmt.Errorf("%w: daily threshold %s", ErrInvalidHoursPolicy, p.DailyThresholdHours)
	}
	return nil
}

// Hours is the result of a single attendance interval.
// Total always equals Regular + Overtime.
type Hours struct {
	Total    decimal.Decimal
	Regular  decimal.Decimal
	Overtime decimal.Decimal
}

// ZeroHours is returned for open records.
func ZeroHours() Hours {
	return Hours{Total: decimal.Zero, Regular: decimal.Zero, Overtime: decimal.Zero}
}

// ComputeHours computes worked, regular and overtime hours for the pair.
// A nil timestamp yields ZeroHours. clockOut <= clockIn is ErrInvalidInterval.
func ComputeHours(clockIn, clockOut *time.Time, policy HoursPolicy) (Hours, error) {
	if err := policy.Validate(); err != nil {
		return Hours{}, err
	}
	if clockIn == nil || clockOut == nil {
		return ZeroHours(), nil
	}
	if !clockOut.After(*clockIn) {
		return Hours{}, fmt.Errorf("%w: clock-in %s, clock-out %s",
			ErrInvalidInterval, clockIn.Format(time.RFC3339), clockOut.Format(time.RFC3339))
	}

	worked := clockOut.Sub(*clockIn) - time.Duration(policy.BreakMinutes)*time.Minute
	if worked < 0 {
		worked = 0
	}

	// regular and overtime derive from the rounded total so they always add up
	total := rounding.Round(durationToHours(worked))
	threshold := rounding.Round(policy.DailyThresholdHours)
	regular := decimal.Min(total, threshold)

	return Hours{
		Total:    total,
		Regular:  regular,
		Overtime: total.Sub(regular),
	}, nil
}

func durationToHours(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d)).Div(decimal.NewFromInt(int64(time.Hour)))
}
