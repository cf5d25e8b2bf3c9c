package cli

import (
	"context"
)

// StartCommand handles the tasks start command. Starting twice keeps the
// first start time.
type StartCommand struct {
	app *App
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{app: app}
}

// Execute marks the task as started
func (c *StartCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseID("task id", args[0])
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	task, err := c.app.businessAPI.StartTask(ctx, id)
	if err != nil {
		return c.app.errorHandler.Handle("start task", err)
	}
	c.app.printf("Started task %d: %s (since %s)\n", task.ID, task.Title, c.app.formatTime(*task.StartedAt))
	return nil
}

// CompleteCommand handles the tasks complete command
type CompleteCommand struct {
	app *App
}

// NewCompleteCommand creates a new complete command handler
func NewCompleteCommand(app *App) *CompleteCommand {
	return &CompleteCommand{app: app}
}

// Execute marks the task as completed
func (c *CompleteCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseID("task id", args[0])
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	task, err := c.app.businessAPI.CompleteTask(ctx, id)
	if err != nil {
		return c.app.errorHandler.Handle("complete task", err)
	}
	c.app.printf("%s task %d: %s\n", c.app.renderer.Success("Completed"), task.ID, task.Title)
	return nil
}
