package memory

import (
	"context"
	"testing"
	"time"

	"workshop-wizard-be/pkg/store"
	"workshop-wizard-be/pkg/workshop"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(time.Hour)
	now := time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

	got, err := repo.Get(ctx, "w1")
	require.NoError(t, err)
	assert.Nil(t, got)

	session := store.NewSession("w1", "u1", workshop.InitialDocument(now), now)
	require.NoError(t, repo.Save(ctx, session))

	got, err = repo.Get(ctx, "w1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, 1, got.State.CurrentStep)

	require.NoError(t, repo.Delete(ctx, "w1"))
	got, err = repo.Get(ctx, "w1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(time.Hour)
	now := time.Now()

	session := store.NewSession("w1", "u1", workshop.InitialDocument(now), now)
	require.NoError(t, repo.Save(ctx, session))

	session.Revision = 99
	got, err := repo.Get(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Revision)

	got.Revision = 7
	again, err := repo.Get(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), again.Revision)
}

func TestSessionRepository_Expires(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(20 * time.Millisecond)
	now := time.Now()

	require.NoError(t, repo.Save(ctx, store.NewSession("w1", "u1", workshop.InitialDocument(now), now)))
	time.Sleep(40 * time.Millisecond)

	got, err := repo.Get(ctx, "w1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
