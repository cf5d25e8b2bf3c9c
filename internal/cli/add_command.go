package cli

import (
	"context"

	"github.com/spf13/pflag"

	"learning-tracker/internal/services"
)

// AddCommand handles the tasks add command
type AddCommand struct {
	app   *App
	input services.CreateTaskInput
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

func (c *AddCommand) BindFlags(flags *pflag.FlagSet) {
	flags.Int64Var(&c.input.UserID, "user", 0, "Owner of the task")
	flags.StringVar(&c.input.Title, "title", "", "Task title")
	flags.StringVar(&c.input.Description, "description", "", "Longer description")
	flags.StringVar(&c.input.Category, "category", "", "Free-form category")
	flags.IntVar(&c.input.Priority, "priority", 0, "Priority 1 (low) to 3 (high); 0 means low")
}

// Execute creates the task
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if err := requireUser(c.input.UserID); err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	task, err := c.app.businessAPI.CreateTask(ctx, c.input)
	if err != nil {
		return c.app.errorHandler.Handle("create task", err)
	}
	c.app.printf("%s task %d: %s [%s]\n", c.app.renderer.Success("Created"), task.ID, task.Title, task.Priority)
	return nil
}
