package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"learning-tracker/internal/config"
	"learning-tracker/internal/repository"
)

var testStart = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

// fakeClock is a manually advanced Clock
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: testStart}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	services *ServiceContainer
	repo     repository.Repository
	clock    *fakeClock
	ctx      context.Context
}

var testBackends = []string{config.BackendSQLite, config.BackendGORM}

func setupServices(t *testing.T) *testEnv {
	return setupServicesOn(t, config.BackendSQLite)
}

// setupServicesOn wires the services over an in-memory database of the given backend
func setupServicesOn(t *testing.T, backend string) *testEnv {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Auth.BcryptCost = 4
	cfg.Database.Backend = backend
	cfg.Database.Path = config.MemoryPath

	repo, err := config.CreateRepository(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	clock := newFakeClock()
	return &testEnv{
		services: NewServiceContainer(repo, cfg, clock),
		repo:     repo,
		clock:    clock,
		ctx:      context.Background(),
	}
}

// forEachBackend runs fn once per storage backend as a subtest
func forEachBackend(t *testing.T, fn func(t *testing.T, env *testEnv)) {
	for _, backend := range testBackends {
		t.Run(backend, func(t *testing.T) {
			fn(t, setupServicesOn(t, backend))
		})
	}
}

// registerUser registers username and returns its id
func (e *testEnv) registerUser(t *testing.T, username string) int64 {
	t.Helper()
	id, err := e.services.CredentialService.Register(e.ctx, username, "secret-"+username)
	require.NoError(t, err)
	return id
}

// createTask creates a medium-priority task for userID
func (e *testEnv) createTask(t *testing.T, userID int64, title string) int64 {
	t.Helper()
	task, err := e.services.TaskService.CreateTask(e.ctx, CreateTaskInput{
		UserID:   userID,
		Title:    title,
		Priority: 2,
	})
	require.NoError(t, err)
	return task.ID
}
