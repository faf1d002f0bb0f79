package department

import (
	"time"

	"github.com/shopspring/decimal"
)

type Department struct {
	ID          string
	Name        string
	Description *string
	// Budget is the monthly payroll budget. Zero means no budget set.
	Budget    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d Department) HasBudget() bool {
	return d.Budget.IsPositive()
}
