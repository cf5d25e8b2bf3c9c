package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"learning-tracker/internal/config"
)

const annotationOffline = "offline"

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd      *cobra.Command
	app      *App
	registry *CommandRegistry
}

// NewRootCommand creates the root cobra command with global flags. When app
// already carries a business API the repository is not opened.
func NewRootCommand(app *App) *RootCommand {
	root := &RootCommand{
		app:      app,
		registry: NewCommandRegistry(app),
	}

	root.cmd = &cobra.Command{
		Use:   "lt",
		Short: "Track learning tasks, subtopics and study sessions",
		Long: `Learning Tracker (lt) records what you are learning and how long you study it.

Tasks belong to a user and hold ordered subtopics. Study sessions are opened
and closed against a task; their rounded minutes feed the timeline and
progress reports. "lt serve" exposes the same operations over HTTP.

EXAMPLES:
  lt register alice --password s3cret        # Create an account
  lt tasks add --user 1 --title "Go generics" --category go --priority 3
  lt subtopics add 1 --title "Type sets" --order 1
  lt sessions start 1                        # Open a study session
  lt sessions end 1 --notes "read the proposal" --studied "type sets"
  lt tasks show 1                            # Progress, subtopics, sessions
  lt timeline --user 1 --format csv          # Export the session history
  lt serve --addr :8080                      # Run the HTTP API

CONFIGURATION:
  Priority order: command-line flags > LT_* environment variables >
  config file (--config or LT_CONFIG) > defaults.

  LT_DB_BACKEND      sqlite or gorm (default: sqlite)
  LT_DB_PATH         Full database path, ":memory:" for a throwaway store
  LT_DB_DIR          Database directory (default: ~/.lt)
  LT_SERVER_ADDR     HTTP listen address (default: :8080)
  LT_LOG_LEVEL       debug, info, warn or error
  LT_PASSWORD        Password for register and login`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationOffline] == "true" || root.app.businessAPI != nil {
				return nil
			}
			return root.app.bootstrap(root.overridesFromFlags())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return root.app.Close()
		},
	}
	root.cmd.SetOut(app.out)
	root.cmd.SetErr(app.errOut)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command with os.Args
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background(), nil)
}

// ExecuteContext runs the root command with explicit arguments. nil args
// means os.Args.
func (r *RootCommand) ExecuteContext(ctx context.Context, args []string) error {
	if args != nil {
		r.cmd.SetArgs(args)
	}
	return r.cmd.ExecuteContext(ctx)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (overrides LT_CONFIG)")

	// Database configuration
	flags.String("db-backend", "", "Storage backend: sqlite or gorm (overrides LT_DB_BACKEND)")
	flags.String("db-dir", "", "Database directory (overrides LT_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides LT_DB_FILENAME)")
	flags.String("db-path", "", "Full database path (overrides LT_DB_PATH)")

	// Server configuration
	flags.String("addr", "", "HTTP listen address (overrides LT_SERVER_ADDR)")
	flags.Duration("request-timeout", 0, "Per-request timeout (overrides LT_SERVER_REQUEST_TIMEOUT)")

	// Display configuration
	flags.String("time-format", "", "Time display layout (overrides LT_DISPLAY_TIME_FORMAT)")
	flags.Bool("no-color", false, "Disable colored output")

	// Application configuration
	flags.Duration("app-timeout", 0, "Per-command timeout (overrides LT_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Log every operation at debug level (overrides LT_APP_VERBOSE)")

	// Logging configuration
	flags.String("log-level", "", "debug, info, warn or error (overrides LT_LOG_LEVEL)")
	flags.String("log-format", "", "text or json (overrides LT_LOG_FORMAT)")
}

// overridesFromFlags collects only the flags the user actually set
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}

	overrides.ConfigFile = str("config")
	overrides.DBBackend = str("db-backend")
	overrides.DBDir = str("db-dir")
	overrides.DBFilename = str("db-filename")
	overrides.DBPath = str("db-path")
	overrides.ServerAddr = str("addr")
	overrides.TimeFormat = str("time-format")
	overrides.LogLevel = str("log-level")
	overrides.LogFormat = str("log-format")

	if flags.Changed("request-timeout") {
		v, _ := flags.GetDuration("request-timeout")
		overrides.RequestTimeout = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("no-color") {
		v, _ := flags.GetBool("no-color")
		overrides.NoColor = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return overrides
}

// addSubcommands builds the command tree from the registry. Paths with more
// than one word hang under a group command named by their first word.
func (r *RootCommand) addSubcommands() {
	groups := make(map[string]*cobra.Command)

	for _, spec := range r.registry.Specs() {
		parent := r.cmd

		parts := strings.Fields(spec.Path)
		if len(parts) > 1 {
			name := parts[0]
			group, ok := groups[name]
			if !ok {
				group = &cobra.Command{Use: name, Short: r.registry.GroupShort(name)}
				groups[name] = group
				r.cmd.AddCommand(group)
			}
			parent = group
		}

		leaf := &cobra.Command{
			Use:   spec.Use,
			Short: spec.Short,
			Long:  spec.Long,
			Args:  spec.Args,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				if !spec.NoTimeout {
					var cancel context.CancelFunc
					ctx, cancel = r.app.withTimeout(ctx)
					defer cancel()
				}
				return spec.Command.Execute(ctx, args)
			},
		}
		if spec.Offline {
			leaf.Annotations = map[string]string{annotationOffline: "true"}
		}
		if binder, ok := spec.Command.(FlagBinder); ok {
			binder.BindFlags(leaf.Flags())
		}
		parent.AddCommand(leaf)
	}
}
