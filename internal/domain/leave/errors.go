package leave

import "errors"

var (
	ErrLeaveTypeNotFound            = errors.New("leave type not found")
	ErrLeaveTypeNameExists          = errors.New("leave type with this name already exists")
	ErrLeaveTypeInUse               = errors.New("leave type has requests")
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrInvalidDateRange             = errors.New("end date must be on or after start date")
	ErrInsufficientBalance          = errors.New("insufficient leave balance")
	ErrOverlappingRequest           = errors.New("leave request overlaps an existing request")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrUnauthorized                 = errors.New("unauthorized to access this leave request")
)
