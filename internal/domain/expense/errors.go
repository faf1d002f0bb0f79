package expense

import "errors"

var (
	ErrExpenseNotFound         = errors.New("expense not found")
	ErrExpenseAlreadyProcessed = errors.New("expense has already been approved or rejected")
	ErrUnauthorized            = errors.New("unauthorized to access this expense")
)
