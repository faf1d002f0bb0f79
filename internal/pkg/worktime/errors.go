package worktime

import "errors"

var (
	ErrInvalidTimeOfDay    = errors.New("invalid time of day, expected HH:MM")
	ErrNegativeGracePeriod = errors.New("grace period must not be negative")
	ErrInvalidHoursPolicy  = errors.New("invalid hours policy")
	ErrInvalidInterval     = errors.New("clock-out must be later than clock-in")
	ErrInvalidPeriod       = errors.New("invalid payroll period")
)
