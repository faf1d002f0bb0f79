package gormstore

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktrack/worktrack-backend-go/internal/domain/holiday"
)

func TestOpen_LogsThroughSlogWithoutConstraintNoise(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	db := setupDB(t)
	repo := NewHolidayRepository(db)
	ctx := context.Background()

	day := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, holiday.Holiday{Date: day, Name: "Christmas Day"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, holiday.Holiday{Date: day, Name: "Duplicate"})
	require.ErrorIs(t, err, holiday.ErrHolidayExists)
	assert.NotContains(t, buf.String(), "UNIQUE constraint failed")

	require.Error(t, db.Exec("SELECT * FROM no_such_table").Error)
	assert.Contains(t, buf.String(), "no such table")
	assert.Contains(t, buf.String(), "level=WARN")
}
