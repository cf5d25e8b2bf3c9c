package cli

import (
	"context"

	"github.com/spf13/pflag"

	"learning-tracker/internal/services"
)

// SubtopicListCommand handles the subtopics list command
type SubtopicListCommand struct {
	app *App
}

func NewSubtopicListCommand(app *App) *SubtopicListCommand {
	return &SubtopicListCommand{app: app}
}

func (c *SubtopicListCommand) Execute(ctx context.Context, args []string) error {
	taskID, err := parseID("task id", args[0])
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	subtopics, err := c.app.businessAPI.ListSubtopics(ctx, taskID)
	if err != nil {
		return c.app.errorHandler.Handle("list subtopics", err)
	}
	if len(subtopics) == 0 {
		c.app.printf("No subtopics\n")
		return nil
	}

	rows := make([][]string, 0, len(subtopics))
	for _, s := range subtopics {
		rows = append(rows, subtopicRow(c.app.renderer, s))
	}
	c.app.printf("%s", c.app.renderer.Table([]string{"ID", "ORDER", "SUBTOPIC", "DONE"}, rows))
	return nil
}

// SubtopicAddCommand handles the subtopics add command
type SubtopicAddCommand struct {
	app   *App
	input services.SubtopicInput
}

func NewSubtopicAddCommand(app *App) *SubtopicAddCommand {
	return &SubtopicAddCommand{app: app}
}

func (c *SubtopicAddCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.input.Title, "title", "", "Subtopic title")
	flags.StringVar(&c.input.Description, "description", "", "Longer description")
	flags.IntVar(&c.input.Order, "order", 0, "Display position, lowest first")
}

func (c *SubtopicAddCommand) Execute(ctx context.Context, args []string) error {
	taskID, err := parseID("task id", args[0])
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	subtopic, err := c.app.businessAPI.AddSubtopic(ctx, taskID, c.input)
	if err != nil {
		return c.app.errorHandler.Handle("add subtopic", err)
	}
	c.app.printf("Added subtopic %d to task %d: %s\n", subtopic.ID, subtopic.TaskID, subtopic.Title)
	return nil
}

// SubtopicDoneCommand handles the subtopics done command. Updates overwrite
// every field, so the current values are read back first.
type SubtopicDoneCommand struct {
	app  *App
	Undo bool
}

func NewSubtopicDoneCommand(app *App) *SubtopicDoneCommand {
	return &SubtopicDoneCommand{app: app}
}

func (c *SubtopicDoneCommand) BindFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.Undo, "undo", false, "Mark the subtopic as not completed")
}

func (c *SubtopicDoneCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseID("subtopic id", args[0])
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	current, err := c.app.businessAPI.GetSubtopic(ctx, id)
	if err != nil {
		return c.app.errorHandler.Handle("update subtopic", err)
	}

	updated, err := c.app.businessAPI.UpdateSubtopic(ctx, id, services.SubtopicInput{
		Title:       current.Title,
		Description: current.Description,
		Order:       current.Order,
		IsCompleted: !c.Undo,
	})
	if err != nil {
		return c.app.errorHandler.Handle("update subtopic", err)
	}

	state := c.app.renderer.Success("done")
	if !updated.IsCompleted {
		state = c.app.renderer.Dim("not done")
	}
	c.app.printf("Subtopic %d (%s) marked %s\n", updated.ID, updated.Title, state)
	return nil
}
