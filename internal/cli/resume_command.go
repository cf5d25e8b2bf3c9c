package cli

import (
	"context"
)

// ResumeCommand handles the sessions start command: it resumes studying a
// task by opening a new session on it.
type ResumeCommand struct {
	app *App
}

// NewResumeCommand creates a new resume command handler
func NewResumeCommand(app *App) *ResumeCommand {
	return &ResumeCommand{app: app}
}

// Execute opens a session on the task
func (c *ResumeCommand) Execute(ctx context.Context, args []string) error {
	taskID, err := parseID("task id", args[0])
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	session, err := c.app.businessAPI.StartSession(ctx, taskID)
	if err != nil {
		return c.app.errorHandler.Handle("start session", err)
	}
	c.app.printf("Started session %d on task %d at %s\n", session.ID, session.TaskID, c.app.formatTime(session.StartedAt))
	return nil
}
