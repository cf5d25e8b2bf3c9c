package cli

import (
	"context"
	"strconv"
	"strings"

	"learning-tracker/internal/domain"
	"learning-tracker/internal/services"
)

const progressBarWidth = 20

// SummaryCommand handles the tasks show command
type SummaryCommand struct {
	app *App
}

// NewSummaryCommand creates a new summary command handler
func NewSummaryCommand(app *App) *SummaryCommand {
	return &SummaryCommand{app: app}
}

// Execute prints the task header, its progress, subtopics and sessions
func (c *SummaryCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseID("task id", args[0])
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	summary, err := c.app.businessAPI.GetTaskSummary(ctx, id)
	if err != nil {
		return c.app.errorHandler.Handle("show task", err)
	}

	c.app.printf("%s", c.render(summary))
	return nil
}

func (c *SummaryCommand) render(summary *services.TaskSummary) string {
	r := c.app.renderer
	task := summary.Task
	var b strings.Builder

	b.WriteString(r.Bold("#"+strconv.FormatInt(task.ID, 10)+" "+task.Title) + "\n")
	if task.Description != "" {
		b.WriteString(task.Description + "\n")
	}
	b.WriteString(r.Dim("category: ") + valueOr(task.Category, "-") +
		r.Dim("  priority: ") + task.Priority.String() +
		r.Dim("  status: ") + r.Status(taskStatus(task)) + "\n")

	b.WriteString(r.Dim("progress: ") + r.ProgressBar(summary.PercentComplete, progressBarWidth) +
		" " + strconv.Itoa(summary.PercentComplete) + "% (" +
		strconv.Itoa(summary.SubtopicsDone) + "/" + strconv.Itoa(summary.SubtopicsTotal) + " subtopics)\n")
	b.WriteString(r.Dim("studied: ") + c.app.businessAPI.FormatMinutes(summary.TotalMinutes) +
		" over " + strconv.Itoa(summary.SessionCount) + " session(s)")
	if summary.LastStudiedAt != nil {
		b.WriteString(r.Dim(", last ") + c.app.formatTime(*summary.LastStudiedAt))
	}
	b.WriteString("\n")
	if summary.OpenSession != nil {
		b.WriteString(r.Warn("session "+strconv.FormatInt(summary.OpenSession.ID, 10)+" open, ") +
			c.app.businessAPI.RunningFor(summary.OpenSession.StartedAt) + "\n")
	}

	if len(task.Subtopics) > 0 {
		b.WriteString("\n")
		rows := make([][]string, 0, len(task.Subtopics))
		for _, s := range task.Subtopics {
			rows = append(rows, subtopicRow(r, s))
		}
		b.WriteString(r.Table([]string{"ID", "ORDER", "SUBTOPIC", "DONE"}, rows))
	}

	if len(task.Sessions) > 0 {
		b.WriteString("\n")
		rows := make([][]string, 0, len(task.Sessions))
		for _, s := range task.Sessions {
			rows = append(rows, c.sessionRow(s))
		}
		b.WriteString(r.Table([]string{"SESSION", "STARTED", "DURATION", "STUDIED", "NOTES"}, rows))
	}

	return b.String()
}

func subtopicRow(r *Renderer, s domain.Subtopic) []string {
	done := r.Dim("no")
	if s.IsCompleted {
		done = r.Success("yes")
	}
	return []string{strconv.FormatInt(s.ID, 10), strconv.Itoa(s.Order), s.Title, done}
}

func (c *SummaryCommand) sessionRow(s domain.Session) []string {
	return []string{
		strconv.FormatInt(s.ID, 10),
		c.app.formatTime(s.StartedAt),
		sessionDuration(c.app, s),
		s.SubtopicsStudied,
		s.Notes,
	}
}

// sessionDuration shows the stored minutes, or the elapsed time while open
func sessionDuration(app *App, s domain.Session) string {
	if s.IsOpen() {
		return app.renderer.Warn(app.businessAPI.RunningFor(s.StartedAt))
	}
	return app.businessAPI.FormatMinutes(s.DurationMinutes)
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
