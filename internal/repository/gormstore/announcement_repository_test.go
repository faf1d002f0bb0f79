package gormstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktrack/worktrack-backend-go/internal/domain/announcement"
)

func TestAnnouncementRepository_ActiveNewestFirst(t *testing.T) {
	db := setupDB(t)
	repo := NewAnnouncementRepository(db)
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"first", "second", "third"} {
		a, err := repo.Create(ctx, announcement.Announcement{Title: title, Message: "body", IsActive: true})
		require.NoError(t, err)
		ids = append(ids, a.ID)
	}
	hidden, err := repo.Create(ctx, announcement.Announcement{Title: "hidden", Message: "body", IsActive: false})
	require.NoError(t, err)
	assert.False(t, hidden.IsActive)

	active, err := repo.ListActive(ctx, 2)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "third", active[0].Title)
	assert.Equal(t, "second", active[1].Title)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	require.NoError(t, repo.Delete(ctx, ids[2]))
	assert.ErrorIs(t, repo.Delete(ctx, ids[2]), announcement.ErrAnnouncementNotFound)

	active, err = repo.ListActive(ctx, 5)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "second", active[0].Title)
}
