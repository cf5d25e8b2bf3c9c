package cli

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"
)

// DeleteCommand handles the tasks delete command
type DeleteCommand struct {
	app *App
	Yes bool
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

func (c *DeleteCommand) BindFlags(flags *pflag.FlagSet) {
	flags.BoolVarP(&c.Yes, "yes", "y", false, "Confirm the deletion")
}

// Execute deletes the task and everything attached to it. Without --yes it
// only reports what would be removed.
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseID("task id", args[0])
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	task, err := c.app.businessAPI.GetTask(ctx, id)
	if err != nil {
		return c.app.errorHandler.Handle("delete task", err)
	}

	if !c.Yes {
		c.app.printf("Task %d (%s) has %d subtopic(s) and %d session(s).\n",
			task.ID, task.Title, len(task.Subtopics), len(task.Sessions))
		return fmt.Errorf("re-run with --yes to delete it")
	}

	if err := c.app.businessAPI.DeleteTask(ctx, id); err != nil {
		return c.app.errorHandler.Handle("delete task", err)
	}
	c.app.printf("Deleted task %d: %s\n", task.ID, task.Title)
	return nil
}
