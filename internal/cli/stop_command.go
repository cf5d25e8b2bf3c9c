package cli

import (
	"context"

	"github.com/spf13/pflag"
)

// StopCommand handles the sessions end command
type StopCommand struct {
	app     *App
	Notes   string
	Studied string
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(app *App) *StopCommand {
	return &StopCommand{app: app}
}

func (c *StopCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Notes, "notes", "", "What happened in the session")
	flags.StringVar(&c.Studied, "studied", "", "Subtopics covered, free text")
}

// Execute closes the session and reports its rounded duration
func (c *StopCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseID("session id", args[0])
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	session, err := c.app.businessAPI.EndSession(ctx, id, c.Notes, c.Studied)
	if err != nil {
		return c.app.errorHandler.Handle("end session", err)
	}
	c.app.printf("Ended session %d after %s\n", session.ID, c.app.businessAPI.FormatMinutes(session.DurationMinutes))
	return nil
}
