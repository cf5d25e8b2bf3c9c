package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"learning-tracker/internal/api"
	"learning-tracker/internal/config"
	"learning-tracker/internal/errors"
	"learning-tracker/internal/logging"
	"learning-tracker/internal/services"
)

// App represents the main CLI application. The business API is wired
// lazily by the root command once flags and configuration are known.
type App struct {
	businessAPI  api.BusinessAPI
	config       *config.Config
	logger       *slog.Logger
	out          io.Writer
	errOut       io.Writer
	renderer     *Renderer
	errorHandler *ErrorHandler
	closer       io.Closer
}

// NewApp creates an application writing to stdout and stderr
func NewApp() *App {
	return &App{
		out:          os.Stdout,
		errOut:       os.Stderr,
		errorHandler: NewErrorHandler(),
	}
}

// NewAppWithConfig creates an application around an existing business API
func NewAppWithConfig(businessAPI api.BusinessAPI, cfg *config.Config, out io.Writer) *App {
	app := &App{
		out:          out,
		errOut:       io.Discard,
		errorHandler: NewErrorHandler(),
	}
	app.configure(cfg, businessAPI, logging.Discard(), nil)
	return app
}

func (a *App) configure(cfg *config.Config, businessAPI api.BusinessAPI, logger *slog.Logger, closer io.Closer) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	a.config = cfg
	a.businessAPI = businessAPI
	a.logger = logger
	a.closer = closer
	a.renderer = NewRenderer(a.out, cfg.Display.Color, cfg.Display.TimeFormat)
}

// bootstrap opens the configured repository and builds the service stack
func (a *App) bootstrap(overrides *config.ConfigOverrides) error {
	cfg, err := config.NewLoader().LoadWithOverrides(overrides)
	if err != nil {
		return err
	}

	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return err
	}

	logger := logging.NewLogger(a.errOut, cfg.Logging.Level, cfg.Logging.Format)
	if cfg.Application.Verbose {
		logger = logging.NewLogger(a.errOut, "debug", cfg.Logging.Format)
	}
	container := services.NewServiceContainer(repo, cfg, nil)
	businessAPI := api.NewBusinessAPI(container, api.NewLogUseCaseObserver(logger))

	a.configure(cfg, businessAPI, logger, repo)
	logger.Debug("repository opened", "backend", cfg.Database.Backend, "path", cfg.GetDatabasePath())
	return nil
}

// Close releases the repository opened by bootstrap
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

func (a *App) timeout() time.Duration {
	if a.config != nil && a.config.Application.Timeout > 0 {
		return a.config.Application.Timeout
	}
	return 60 * time.Second
}

// withTimeout bounds a single command by the application timeout
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.timeout())
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) formatTime(t time.Time) string {
	return t.Local().Format(a.renderer.timeFormat)
}

// parseID parses a positional id argument
func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError(name, raw, "must be a positive integer")
	}
	return id, nil
}

// requireUser checks the --user flag every user-scoped command needs
func requireUser(userID int64) error {
	if userID <= 0 {
		return errors.NewInvalidInputError("user", userID, "--user is required and must be positive")
	}
	return nil
}
