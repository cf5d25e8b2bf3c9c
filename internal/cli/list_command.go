package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"learning-tracker/internal/domain"
)

const (
	statusTodo   = "todo"
	statusActive = "active"
	statusDone   = "done"
	statusOpen   = "open"
)

// taskStatus names where a task is in its lifecycle
func taskStatus(t *domain.Task) string {
	switch {
	case t.IsCompleted:
		return statusDone
	case t.StartedAt != nil:
		return statusActive
	default:
		return statusTodo
	}
}

func subtopicProgress(t *domain.Task) string {
	done := 0
	for _, s := range t.Subtopics {
		if s.IsCompleted {
			done++
		}
	}
	return fmt.Sprintf("%d/%d", done, len(t.Subtopics))
}

// ListCommand handles the tasks list command
type ListCommand struct {
	app      *App
	UserID   int64
	Category string
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

func (c *ListCommand) BindFlags(flags *pflag.FlagSet) {
	flags.Int64Var(&c.UserID, "user", 0, "Owner of the tasks")
	flags.StringVar(&c.Category, "category", "", "Only show tasks in this category")
}

// Execute lists the user's tasks as a table
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if err := requireUser(c.UserID); err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	tasks, err := c.app.businessAPI.ListTasks(ctx, c.UserID)
	if err != nil {
		return c.app.errorHandler.Handle("list tasks", err)
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		if c.Category != "" && t.Category != c.Category {
			continue
		}
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			t.Title,
			t.Category,
			t.Priority.String(),
			c.app.renderer.Status(taskStatus(t)),
			subtopicProgress(t),
			c.app.businessAPI.FormatMinutes(t.TotalMinutes()),
		})
	}

	if len(rows) == 0 {
		c.app.printf("No tasks found\n")
		return nil
	}

	c.app.printf("%s", c.app.renderer.Table(
		[]string{"ID", "TITLE", "CATEGORY", "PRIORITY", "STATUS", "SUBTOPICS", "TIME"},
		rows,
	))
	return nil
}
