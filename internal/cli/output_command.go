package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/pflag"

	"learning-tracker/internal/domain"
	"learning-tracker/internal/errors"
)

const (
	formatTable = "table"
	formatCSV   = "csv"
)

// OutputCommand handles the timeline command
type OutputCommand struct {
	app    *App
	UserID int64
	Format string
}

// NewOutputCommand creates a new output command handler
func NewOutputCommand(app *App) *OutputCommand {
	return &OutputCommand{app: app, Format: formatTable}
}

func (c *OutputCommand) BindFlags(flags *pflag.FlagSet) {
	flags.Int64Var(&c.UserID, "user", 0, "Owner of the sessions")
	flags.StringVar(&c.Format, "format", formatTable, "Output format: table or csv")
}

// Execute prints the user's timeline in the requested format
func (c *OutputCommand) Execute(ctx context.Context, args []string) error {
	if err := requireUser(c.UserID); err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}
	if c.Format != formatTable && c.Format != formatCSV {
		return c.app.errorHandler.HandleSimple(
			errors.NewInvalidInputError("format", c.Format, "unsupported format"))
	}

	entries, err := c.app.businessAPI.GetTimeline(ctx, c.UserID)
	if err != nil {
		return c.app.errorHandler.Handle("get timeline", err)
	}

	if c.Format == formatCSV {
		return c.outputCSV(entries)
	}
	return c.outputTable(entries)
}

func (c *OutputCommand) outputTable(entries []domain.TimelineEntry) error {
	if len(entries) == 0 {
		c.app.printf("No sessions yet\n")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			c.app.formatTime(e.StartedAt),
			e.Task.Title,
			e.Task.Category,
			sessionDuration(c.app, e.Session),
			e.SubtopicsStudied,
			e.Notes,
		})
	}
	c.app.printf("%s", c.app.renderer.Table(
		[]string{"STARTED", "TASK", "CATEGORY", "DURATION", "STUDIED", "NOTES"},
		rows,
	))
	return nil
}

// outputCSV writes one row per session with RFC 3339 timestamps
func (c *OutputCommand) outputCSV(entries []domain.TimelineEntry) error {
	writer := csv.NewWriter(c.app.out)

	header := []string{"session_id", "task_id", "task_title", "category", "started_at", "ended_at", "duration_minutes", "subtopics_studied", "notes"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, e := range entries {
		var endedAt, minutes string
		if e.EndedAt != nil {
			endedAt = e.EndedAt.Format(time.RFC3339)
			minutes = strconv.Itoa(e.DurationMinutes)
		}
		row := []string{
			strconv.FormatInt(e.ID, 10),
			strconv.FormatInt(e.Task.ID, 10),
			e.Task.Title,
			e.Task.Category,
			e.StartedAt.Format(time.RFC3339),
			endedAt,
			minutes,
			e.SubtopicsStudied,
			e.Notes,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
