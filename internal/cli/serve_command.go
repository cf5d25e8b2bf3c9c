package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"learning-tracker/internal/httpapi"
)

// Version is stamped at build time with -ldflags "-X learning-tracker/internal/cli.Version=..."
var Version = "dev"

// ServeCommand handles the serve command
type ServeCommand struct {
	app *App
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute runs the HTTP API until ctx is cancelled or the process is
// interrupted, then shuts down gracefully.
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := httpapi.NewServer(c.app.businessAPI, c.app.config.Server, c.app.logger)
	c.app.logger.Info("starting lt", "version", Version)
	return server.ListenAndServe(ctx)
}

// VersionCommand handles the version command
type VersionCommand struct {
	app *App
}

// NewVersionCommand creates a new version command handler
func NewVersionCommand(app *App) *VersionCommand {
	return &VersionCommand{app: app}
}

// Execute prints the build version
func (c *VersionCommand) Execute(ctx context.Context, args []string) error {
	c.app.printf("lt %s\n", Version)
	return nil
}
