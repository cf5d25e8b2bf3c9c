package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"learning-tracker/internal/api"
	"learning-tracker/internal/config"
	"learning-tracker/internal/repository/sqlite"
	"learning-tracker/internal/services"
)

var testStart = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	app *App
	api api.BusinessAPI
	out *bytes.Buffer
	now time.Time
}

// setupTestApp wires the real service stack over an in-memory database
func setupTestApp(t *testing.T) *testEnv {
	t.Helper()

	repo, err := sqlite.New(config.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	cfg := config.NewConfig()
	cfg.Auth.BcryptCost = 4

	env := &testEnv{out: &bytes.Buffer{}, now: testStart}
	clock := services.ClockFunc(func() time.Time { return env.now })
	env.api = api.NewBusinessAPI(services.NewServiceContainer(repo, cfg, clock), nil)
	env.app = NewAppWithConfig(env.api, cfg, env.out)
	return env
}

// run executes one lt invocation on a fresh command tree
func (e *testEnv) run(args ...string) (string, error) {
	e.out.Reset()
	err := NewRootCommand(e.app).ExecuteContext(context.Background(), args)
	return e.out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(args...)
	require.NoError(t, err, "lt %v", args)
	return out
}

func (e *testEnv) advance(d time.Duration) {
	e.now = e.now.Add(d)
}

// seedTask registers alice and gives her one task
func (e *testEnv) seedTask(t *testing.T) {
	t.Helper()
	e.mustRun(t, "register", "alice", "--password", "secret-alice")
	e.mustRun(t, "tasks", "add", "--user", "1", "--title", "Go generics", "--category", "go", "--priority", "3")
}
