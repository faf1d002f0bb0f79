package gormstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BaseModel carries the primary key and timestamps shared by every table.
type BaseModel struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate assigns a time-ordered UUID.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID != "" {
		return nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	m.ID = id.String()
	return nil
}

type User struct {
	BaseModel
	Email        string  `gorm:"uniqueIndex;not null"`
	PasswordHash string  `gorm:"not null"`
	Role         string  `gorm:"not null"`
	EmployeeID   *string `gorm:"type:varchar(36);index"`
}

type Department struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;not null"`
	Description *string
	Budget      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
}

type Shift struct {
	BaseModel
	Name               string `gorm:"uniqueIndex;not null"`
	StartTime          string `gorm:"type:varchar(5);not null"`
	EndTime            string `gorm:"type:varchar(5);not null"`
	GracePeriodMinutes int    `gorm:"not null;default:0"`
}

type Employee struct {
	BaseModel
	EmployeeCode  string `gorm:"uniqueIndex;not null"`
	FirstName     string `gorm:"not null"`
	LastName      string
	Email         string `gorm:"uniqueIndex;not null"`
	Phone         *string
	DepartmentID  *string     `gorm:"type:varchar(36);index"`
	Department    *Department `gorm:"foreignKey:DepartmentID"`
	Position      *string
	HireDate      *string          `gorm:"type:varchar(10)"`
	HourlyRate    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	MonthlySalary *decimal.Decimal `gorm:"type:decimal(14,2)"`
	Status        string           `gorm:"not null;index"`
	ShiftID       *string          `gorm:"type:varchar(36);index"`
	PINHash       *string
}

// Attendance rows are unique per employee and work date.
type Attendance struct {
	BaseModel
	EmployeeID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_attendances_employee_date"`
	Employee      *Employee `gorm:"foreignKey:EmployeeID"`
	WorkDate      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_attendances_employee_date;index"`
	ClockIn       *time.Time
	ClockOut      *time.Time
	Status        string `gorm:"not null"`
	WorkType      string `gorm:"not null"`
	Latitude      *float64
	Longitude     *float64
	TotalHours    *decimal.Decimal `gorm:"type:decimal(6,2)"`
	RegularHours  *decimal.Decimal `gorm:"type:decimal(6,2)"`
	OvertimeHours *decimal.Decimal `gorm:"type:decimal(6,2)"`
	Notes         *string
	IsApproved    bool `gorm:"not null;default:false"`
	ApprovedBy    *string
	ApprovedAt    *time.Time
}

type Expense struct {
	BaseModel
	EmployeeID  string          `gorm:"type:varchar(36);not null;index"`
	Employee    *Employee       `gorm:"foreignKey:EmployeeID"`
	ExpenseDate string          `gorm:"type:varchar(10);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Category    string          `gorm:"not null"`
	Description *string
	Status      string `gorm:"not null;index"`
	ApprovedBy  *string
	ProcessedAt *time.Time
}

type LeaveType struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;not null"`
	DaysAllowed int    `gorm:"not null"`
	IsPaid      bool   `gorm:"not null"`
}

type LeaveRequest struct {
	BaseModel
	EmployeeID  string     `gorm:"type:varchar(36);not null;index"`
	Employee    *Employee  `gorm:"foreignKey:EmployeeID"`
	LeaveTypeID string     `gorm:"type:varchar(36);not null;index"`
	LeaveType   *LeaveType `gorm:"foreignKey:LeaveTypeID"`
	StartDate   string     `gorm:"type:varchar(10);not null"`
	EndDate     string     `gorm:"type:varchar(10);not null"`
	TotalDays   int        `gorm:"not null"`
	Reason      *string
	Status      string `gorm:"not null;index"`
	ProcessedBy *string
	ProcessedAt *time.Time
}

type Holiday struct {
	BaseModel
	Date string `gorm:"type:varchar(10);uniqueIndex;not null"`
	Name string `gorm:"not null"`
}

// AuditLog is append-only.
type AuditLog struct {
	BaseModel
	UserID    *string `gorm:"type:varchar(36)"`
	Action    string  `gorm:"not null"`
	TableName string  `gorm:"column:table_name;not null;index:idx_audit_logs_record"`
	RecordID  string  `gorm:"not null;index:idx_audit_logs_record"`
	Details   *string
}

type Announcement struct {
	BaseModel
	Title     string  `gorm:"type:varchar(200);not null"`
	Message   string  `gorm:"not null"`
	CreatedBy *string `gorm:"type:varchar(36)"`
	IsActive  bool    `gorm:"not null;default:true;index"`
}
