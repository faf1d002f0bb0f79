package department

import (
	"github.com/shopspring/decimal"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/validator"
)

type DepartmentResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Budget      decimal.Decimal `json:"budget"`
}

type CreateDepartmentRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Budget      decimal.Decimal `json:"budget"`
}

func (r *CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}
	if !validator.IsValidAmount(r.Budget) {
		errs = append(errs, validator.ValidationError{
			Field:   "budget",
			Message: "budget must be a non-negative amount with at most 2 decimal places",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateDepartmentRequest struct {
	ID          string           `json:"-"`
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not be empty",
			})
		}
		if len(*r.Name) > 100 {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not exceed 100 characters",
			})
		}
	}
	if r.Budget != nil && !validator.IsValidAmount(*r.Budget) {
		errs = append(errs, validator.ValidationError{
			Field:   "budget",
			Message: "budget must be a non-negative amount with at most 2 decimal places",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
