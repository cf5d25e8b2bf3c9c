package domain

import "time"

// Subtopic is an ordered unit of work inside a task.
type Subtopic struct {
	ID          int64
	TaskID      int64
	Title       string
	Description string
	IsCompleted bool
	CreatedAt   time.Time
	CompletedAt *time.Time
	Order       int
}

// NewSubtopic creates an incomplete subtopic for taskID.
func NewSubtopic(taskID int64, title, description string, order int, now time.Time) Subtopic {
	return Subtopic{
		TaskID:      taskID,
		Title:       title,
		Description: description,
		Order:       order,
		CreatedAt:   now,
	}
}

// SetCompleted follows the same completion rule as Task.SetCompleted.
func (s Subtopic) SetCompleted(done bool, now time.Time) Subtopic {
	s.IsCompleted = done
	switch {
	case !done:
		s.CompletedAt = nil
	case s.CompletedAt == nil:
		s.CompletedAt = &now
	}
	return s
}
