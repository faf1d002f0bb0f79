package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeCodeExists  = errors.New("employee code already exists")
	ErrEmailExists         = errors.New("email already registered")
	ErrEmployeeInactive    = errors.New("employee is not active")
	ErrInvalidPIN          = errors.New("invalid employee code or PIN")
	ErrPINNotSet           = errors.New("employee has no PIN configured")
	ErrInvalidHourlyRate   = errors.New("hourly rate must not be negative")
	ErrInvalidEmployeeCode = errors.New("invalid employee code")
)
