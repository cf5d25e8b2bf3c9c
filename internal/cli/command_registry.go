package cli

import (
	"context"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"learning-tracker/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// FlagBinder is implemented by commands that take flags
type FlagBinder interface {
	BindFlags(flags *pflag.FlagSet)
}

// CommandSpec describes one leaf command. Path is space separated, so
// "tasks add" becomes the add subcommand of a tasks group.
type CommandSpec struct {
	Path    string
	Use     string
	Short   string
	Long    string
	Args    cobra.PositionalArgs
	Command Command
	// Offline commands run without opening the repository.
	Offline bool
	// NoTimeout commands manage their own lifetime.
	NoTimeout bool
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]CommandSpec
	groups   map[string]string
}

// NewCommandRegistry creates a registry holding every lt command
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]CommandSpec),
		groups: map[string]string{
			"tasks":     "Create, list and progress learning tasks",
			"subtopics": "Manage the ordered subtopics of a task",
			"sessions":  "Start, end and inspect study sessions",
		},
	}

	registry.Register(CommandSpec{Path: "register", Use: "register <username>", Short: "Create an account", Args: cobra.ExactArgs(1), Command: NewRegisterCommand(app)})
	registry.Register(CommandSpec{Path: "login", Use: "login <username>", Short: "Check credentials and print the user id", Args: cobra.ExactArgs(1), Command: NewLoginCommand(app)})

	registry.Register(CommandSpec{Path: "tasks list", Use: "list", Short: "List a user's tasks, newest first", Args: cobra.NoArgs, Command: NewListCommand(app)})
	registry.Register(CommandSpec{Path: "tasks add", Use: "add", Short: "Create a task", Args: cobra.NoArgs, Command: NewAddCommand(app)})
	registry.Register(CommandSpec{Path: "tasks show", Use: "show <task-id>", Short: "Show a task with its subtopics, sessions and progress", Args: cobra.ExactArgs(1), Command: NewSummaryCommand(app)})
	registry.Register(CommandSpec{Path: "tasks start", Use: "start <task-id>", Short: "Mark a task as started", Args: cobra.ExactArgs(1), Command: NewStartCommand(app)})
	registry.Register(CommandSpec{Path: "tasks complete", Use: "complete <task-id>", Short: "Mark a task as completed", Args: cobra.ExactArgs(1), Command: NewCompleteCommand(app)})
	registry.Register(CommandSpec{Path: "tasks delete", Use: "delete <task-id>", Short: "Delete a task with its subtopics and sessions", Args: cobra.ExactArgs(1), Command: NewDeleteCommand(app)})

	registry.Register(CommandSpec{Path: "subtopics list", Use: "list <task-id>", Short: "List a task's subtopics in order", Args: cobra.ExactArgs(1), Command: NewSubtopicListCommand(app)})
	registry.Register(CommandSpec{Path: "subtopics add", Use: "add <task-id>", Short: "Add a subtopic to a task", Args: cobra.ExactArgs(1), Command: NewSubtopicAddCommand(app)})
	registry.Register(CommandSpec{Path: "subtopics done", Use: "done <subtopic-id>", Short: "Mark a subtopic as completed", Args: cobra.ExactArgs(1), Command: NewSubtopicDoneCommand(app)})

	registry.Register(CommandSpec{Path: "sessions start", Use: "start <task-id>", Short: "Open a study session on a task", Args: cobra.ExactArgs(1), Command: NewResumeCommand(app)})
	registry.Register(CommandSpec{Path: "sessions end", Use: "end <session-id>", Short: "Close an open study session", Args: cobra.ExactArgs(1), Command: NewStopCommand(app)})
	registry.Register(CommandSpec{Path: "sessions current", Use: "current", Short: "Show the user's open sessions", Args: cobra.NoArgs, Command: NewCurrentCommand(app)})

	registry.Register(CommandSpec{Path: "timeline", Use: "timeline", Short: "Show a user's sessions, most recent first", Args: cobra.NoArgs, Command: NewOutputCommand(app)})
	registry.Register(CommandSpec{Path: "stats", Use: "stats", Short: "Show a user's overall progress", Args: cobra.NoArgs, Command: NewStatsCommand(app)})

	registry.Register(CommandSpec{Path: "serve", Use: "serve", Short: "Run the HTTP API", Args: cobra.NoArgs, Command: NewServeCommand(app), NoTimeout: true})
	registry.Register(CommandSpec{Path: "version", Use: "version", Short: "Print the version", Args: cobra.NoArgs, Command: NewVersionCommand(app), Offline: true})

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(spec CommandSpec) {
	r.commands[spec.Path] = spec
}

// Lookup returns the spec registered under path
func (r *CommandRegistry) Lookup(path string) (CommandSpec, bool) {
	spec, ok := r.commands[path]
	return spec, ok
}

// Specs returns every registered command ordered by path
func (r *CommandRegistry) Specs() []CommandSpec {
	specs := make([]CommandSpec, 0, len(r.commands))
	for _, spec := range r.commands {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Path < specs[j].Path })
	return specs
}

// GroupShort returns the description of a command group
func (r *CommandRegistry) GroupShort(name string) string {
	return r.groups[name]
}

// Execute runs the command registered under path with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, path string, args []string) error {
	spec, exists := r.commands[path]
	if !exists {
		return errors.NewInvalidInputError("command", path, "unknown command")
	}
	return spec.Command.Execute(ctx, args)
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	paths := make([]string, 0, len(r.commands))
	for _, spec := range r.Specs() {
		paths = append(paths, "lt "+spec.Path)
	}
	return "usage: " + strings.Join(paths, " | ")
}
