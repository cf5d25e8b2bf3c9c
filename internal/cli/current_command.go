package cli

import (
	"context"
	"strconv"

	"github.com/spf13/pflag"
)

// CurrentCommand handles the sessions current command
type CurrentCommand struct {
	app    *App
	UserID int64
}

// NewCurrentCommand creates a new current command handler
func NewCurrentCommand(app *App) *CurrentCommand {
	return &CurrentCommand{app: app}
}

func (c *CurrentCommand) BindFlags(flags *pflag.FlagSet) {
	flags.Int64Var(&c.UserID, "user", 0, "Owner of the sessions")
}

// Execute lists every open session of the user
func (c *CurrentCommand) Execute(ctx context.Context, args []string) error {
	if err := requireUser(c.UserID); err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	entries, err := c.app.businessAPI.GetTimeline(ctx, c.UserID)
	if err != nil {
		return c.app.errorHandler.Handle("get current sessions", err)
	}

	var rows [][]string
	for _, e := range entries {
		if !e.IsOpen() {
			continue
		}
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.Task.Title,
			c.app.formatTime(e.StartedAt),
			c.app.renderer.Warn(c.app.businessAPI.RunningFor(e.StartedAt)),
		})
	}

	if len(rows) == 0 {
		c.app.printf("No open sessions\n")
		return nil
	}
	c.app.printf("%s", c.app.renderer.Table([]string{"SESSION", "TASK", "STARTED", "STATUS"}, rows))
	return nil
}
