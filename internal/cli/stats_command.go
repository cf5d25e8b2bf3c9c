package cli

import (
	"context"
	"sort"

	"github.com/spf13/pflag"
)

// StatsCommand handles the stats command
type StatsCommand struct {
	app    *App
	UserID int64
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{app: app}
}

func (c *StatsCommand) BindFlags(flags *pflag.FlagSet) {
	flags.Int64Var(&c.UserID, "user", 0, "User to report on")
}

// Execute prints task counts and study time, broken down by category
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	if err := requireUser(c.UserID); err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	stats, err := c.app.businessAPI.GetUserStatistics(ctx, c.UserID)
	if err != nil {
		return c.app.errorHandler.Handle("get statistics", err)
	}

	r := c.app.renderer
	c.app.printf("%s %d (%d completed, %d in progress)\n", r.Dim("tasks:"), stats.TaskCount, stats.CompletedCount, stats.InProgress)
	c.app.printf("%s %s over %d session(s)\n", r.Dim("studied:"), c.app.businessAPI.FormatMinutes(stats.TotalMinutes), stats.SessionCount)

	if len(stats.ByCategory) == 0 {
		return nil
	}

	categories := make([]string, 0, len(stats.ByCategory))
	for category := range stats.ByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	rows := make([][]string, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, []string{
			valueOr(category, "(none)"),
			c.app.businessAPI.FormatMinutes(stats.ByCategory[category]),
		})
	}
	c.app.printf("\n%s", r.Table([]string{"CATEGORY", "TIME"}, rows))
	return nil
}
