// Package gormstore implements the domain repositories on gorm with the
// embedded SQLite driver. It backs local development and the service tests.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the SQLite database at dsn and migrates the schema.
// Use "file::memory:?cache=shared" for a throwaway database.
func Open(dsn string, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	gormLogger := logger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  constraintQuietLogger{gormLogger},
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// constraintQuietLogger drops unique violations from gorm's error log. The
// repositories translate them into domain errors.
type constraintQuietLogger struct {
	logger.Interface
}

func (l constraintQuietLogger) LogMode(level logger.LogLevel) logger.Interface {
	return constraintQuietLogger{l.Interface.LogMode(level)}
}

func (l constraintQuietLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if _, ok := uniqueViolation(err); ok {
		err = nil
	}
	l.Interface.Trace(ctx, begin, fc, err)
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{}, &Department{}, &Shift{}, &Employee{},
		&Attendance{}, &Expense{}, &LeaveType{}, &LeaveRequest{},
		&Holiday{}, &AuditLog{}, &Announcement{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}
	return nil
}

// uniqueViolation reports whether err is a unique constraint failure and, if
// so, the "table.column" list SQLite names in the message.
func uniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}
	msg := err.Error()
	const marker = "UNIQUE constraint failed: "
	i := strings.Index(msg, marker)
	if i < 0 {
		return "", false
	}
	return msg[i+len(marker):], true
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func dateString(t time.Time) string {
	return t.Format(worktime.DateLayout)
}

func parseDate(s string) time.Time {
	d, err := worktime.ParseDate(s)
	if err != nil {
		return time.Time{}
	}
	return d
}

func dateStringPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := dateString(*t)
	return &s
}

func parseDatePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	d := parseDate(*s)
	return &d
}
