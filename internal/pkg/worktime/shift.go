package worktime

import (
	"fmt"
	"time"
)

// Classification is the punctuality of a clock-in.
type Classification string

const (
	Present Classification = "Present"
	Late    Classification = "Late"
)

const (
	DefaultShiftStart   = "09:00"
	DefaultGraceMinutes = 15
)

// Schedule is the part of a shift the clock-in classification needs.
type Schedule struct {
	Start        string
	GraceMinutes int
}

// DefaultSchedule is used when an employee has no resolvable shift.
func DefaultSchedule() Schedule {
	return Schedule{Start: DefaultShiftStart, GraceMinutes: DefaultGraceMinutes}
}

// Validate reports configuration errors in the schedule.
func (s Schedule) Validate() error {
	if _, err := ParseTimeOfDay(s.Start); err != nil {
		return err
	}
	if s.GraceMinutes < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeGracePeriod, s.GraceMinutes)
	}
	return nil
}

// Classify classifies clockIn against the schedule.
func (s Schedule) Classify(clockIn time.Time) (Classification, error) {
	return ClassifyClockIn(s.Start, s.GraceMinutes, clockIn)
}

// ClassifyClockIn returns Late iff clockIn is strictly after the scheduled
// start on clockIn's calendar date plus the grace period.
func ClassifyClockIn(shiftStart string, graceMinutes int, clockIn time.Time) (Classification, error) {
	start, err := ParseTimeOfDay(shiftStart)
	if err != nil {
		return "", err
	}
	if graceMinutes < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegativeGracePeriod, graceMinutes)
	}

	limit := start.On(clockIn).Add(time.Duration(graceMinutes) * time.Minute)
	if clockIn.After(limit) {
		return Late, nil
	}
	return Present, nil
}
