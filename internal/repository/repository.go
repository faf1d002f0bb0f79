// Package repository selects and wires the persistence backend.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/worktrack/worktrack-backend-go/internal/config"
	"github.com/worktrack/worktrack-backend-go/internal/domain/announcement"
	"github.com/worktrack/worktrack-backend-go/internal/domain/attendance"
	"github.com/worktrack/worktrack-backend-go/internal/domain/audit"
	"github.com/worktrack/worktrack-backend-go/internal/domain/department"
	"github.com/worktrack/worktrack-backend-go/internal/domain/employee"
	"github.com/worktrack/worktrack-backend-go/internal/domain/expense"
	"github.com/worktrack/worktrack-backend-go/internal/domain/holiday"
	"github.com/worktrack/worktrack-backend-go/internal/domain/leave"
	"github.com/worktrack/worktrack-backend-go/internal/domain/shift"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/database"
	"github.com/worktrack/worktrack-backend-go/internal/repository/gormstore"
	"github.com/worktrack/worktrack-backend-go/internal/repository/postgresql"
	"gorm.io/gorm"
)

type Repositories struct {
	User         user.UserRepository
	Department   department.DepartmentRepository
	Shift        shift.ShiftRepository
	Employee     employee.EmployeeRepository
	Attendance   attendance.AttendanceRepository
	Expense      expense.ExpenseRepository
	LeaveType    leave.LeaveTypeRepository
	LeaveRequest leave.LeaveRequestRepository
	Holiday      holiday.HolidayRepository
	Audit        audit.AuditRepository
	Announcement announcement.AnnouncementRepository

	close func()
}

// Close releases the underlying connections.
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open connects to the store named by cfg.Store.Driver and migrates it.
func Open(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.DefaultPoolConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		slog.Info("connected to PostgreSQL", "host", cfg.Database.Host, "database", cfg.Database.Name)
		return FromPostgres(db), nil

	case config.StoreDriverSQLite:
		db, err := gormstore.Open(cfg.Store.SQLitePath, cfg.App.LogLevel == "debug")
		if err != nil {
			return nil, err
		}
		slog.Info("opened SQLite store", "path", cfg.Store.SQLitePath)
		return FromGorm(db), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

func FromPostgres(db *database.DB) *Repositories {
	return &Repositories{
		User:         postgresql.NewUserRepository(db),
		Department:   postgresql.NewDepartmentRepository(db),
		Shift:        postgresql.NewShiftRepository(db),
		Employee:     postgresql.NewEmployeeRepository(db),
		Attendance:   postgresql.NewAttendanceRepository(db),
		Expense:      postgresql.NewExpenseRepository(db),
		LeaveType:    postgresql.NewLeaveTypeRepository(db),
		LeaveRequest: postgresql.NewLeaveRequestRepository(db),
		Holiday:      postgresql.NewHolidayRepository(db),
		Audit:        postgresql.NewAuditRepository(db),
		Announcement: postgresql.NewAnnouncementRepository(db),
		close:        db.Close,
	}
}

func FromGorm(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         gormstore.NewUserRepository(db),
		Department:   gormstore.NewDepartmentRepository(db),
		Shift:        gormstore.NewShiftRepository(db),
		Employee:     gormstore.NewEmployeeRepository(db),
		Attendance:   gormstore.NewAttendanceRepository(db),
		Expense:      gormstore.NewExpenseRepository(db),
		LeaveType:    gormstore.NewLeaveTypeRepository(db),
		LeaveRequest: gormstore.NewLeaveRequestRepository(db),
		Holiday:      gormstore.NewHolidayRepository(db),
		Audit:        gormstore.NewAuditRepository(db),
		Announcement: gormstore.NewAnnouncementRepository(db),
		close: func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		},
	}
}
