package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBootstrapApp returns an app that opens its repository from flags
func newBootstrapApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	t.Setenv("LT_CONFIG", "")
	t.Setenv("LT_AUTH_BCRYPT_COST", "4")

	out := &bytes.Buffer{}
	app := NewApp()
	app.out = out
	app.errOut = io.Discard
	return app, out
}

func TestApp_BootstrapFromFlags(t *testing.T) {
	for _, backend := range []string{"sqlite", "gorm"} {
		t.Run(backend, func(t *testing.T) {
			app, out := newBootstrapApp(t)

			err := NewRootCommand(app).ExecuteContext(context.Background(), []string{
				"--db-path", ":memory:", "--db-backend", backend,
				"register", "carol", "--password", "pw-carol",
			})
			require.NoError(t, err)
			assert.Equal(t, "Registered carol (user id 1)\n", out.String())

			require.NotNil(t, app.config)
			assert.Equal(t, backend, app.config.Database.Backend)
			assert.Equal(t, ":memory:", app.config.GetDatabasePath())
			assert.Nil(t, app.closer, "repository is closed after the command")
		})
	}
}

func TestApp_BootstrapRejectsUnknownBackend(t *testing.T) {
	app, _ := newBootstrapApp(t)

	err := NewRootCommand(app).ExecuteContext(context.Background(), []string{
		"--db-path", ":memory:", "--db-backend", "mongo", "tasks", "list", "--user", "1",
	})
	require.Error(t, err)
	assert.Nil(t, app.businessAPI)
}

func TestApp_VersionSkipsRepository(t *testing.T) {
	app, out := newBootstrapApp(t)

	err := NewRootCommand(app).ExecuteContext(context.Background(), []string{"--db-backend", "mongo", "version"})
	require.NoError(t, err)
	assert.Equal(t, "lt dev\n", out.String())
	assert.Nil(t, app.businessAPI)
}

func TestApp_CloseWithoutRepository(t *testing.T) {
	env := setupTestApp(t)
	assert.NoError(t, env.app.Close())
}

func TestParseID(t *testing.T) {
	id, err := parseID("task id", "12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, raw := range []string{"", "0", "-1", "abc", "1e3"} {
		_, err := parseID("task id", raw)
		assert.Error(t, err, raw)
	}
}
