package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learning-tracker/internal/errors"
	"learning-tracker/internal/repository"
	"learning-tracker/internal/repository/repositorytest"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepository_Contract(t *testing.T) {
	repositorytest.RunContract(t, func(t *testing.T) repository.Repository {
		return newTestRepository(t)
	})
}

func TestNew_CreatesDatabaseDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "data", "lt.db")

	repo, err := New(dbPath)
	require.NoError(t, err)
	defer repo.Close()

	assert.FileExists(t, dbPath)
}

func TestNew_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lt.db")
	ctx := context.Background()

	repo, err := New(dbPath)
	require.NoError(t, err)
	user := repositorytest.SeedUser(t, repo, "alice")
	require.NoError(t, repo.Close())

	reopened, err := New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestForeignKeysEnforced(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.CreateTask(context.Background(), &repository.Task{
		UserID:    999,
		Title:     "orphan",
		CreatedAt: time.Now(),
		Priority:  1,
	})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))
}

func TestCanceledContext(t *testing.T) {
	repo := newTestRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListTasksByUser(ctx, 1)
	assert.Error(t, err)
}
