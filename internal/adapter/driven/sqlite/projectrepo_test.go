package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptutils/jirabranch/internal/domain/port/driven"
)

func TestProjectRepo_PutAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)
	ctx := context.Background()

	err := repo.Put(ctx, "/home/dev/src/widget", "acme")
	require.NoError(t, err)

	domain, err := repo.Get(ctx, "/home/dev/src/widget")
	require.NoError(t, err)
	assert.Equal(t, "acme", domain)
}

func TestProjectRepo_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)

	_, err := repo.Get(context.Background(), "/home/dev/src/unbound")
	require.ErrorIs(t, err, driven.ErrNotFound)
}

func TestProjectRepo_LastWriteWins(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)
	ctx := context.Background()

	err := repo.Put(ctx, "/home/dev/src/widget", "acme")
	require.NoError(t, err)

	err = repo.Put(ctx, "/home/dev/src/widget", "globex")
	require.NoError(t, err)

	domain, err := repo.Get(ctx, "/home/dev/src/widget")
	require.NoError(t, err)
	assert.Equal(t, "globex", domain)
}

func TestProjectRepo_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)
	ctx := context.Background()

	err := repo.Put(ctx, "/home/dev/src/widget", "acme")
	require.NoError(t, err)

	err = repo.Delete(ctx, "/home/dev/src/widget")
	require.NoError(t, err)

	_, err = repo.Get(ctx, "/home/dev/src/widget")
	require.ErrorIs(t, err, driven.ErrNotFound)
}
