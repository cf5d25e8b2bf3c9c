package domain

import (
	"strings"
	"time"
)

// Priority ranks a task. The zero value is not a valid stored priority;
// ParsePriority maps it to PriorityLow.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// ParsePriority accepts 0..3, treating 0 as low.
func ParsePriority(n int) (Priority, bool) {
	switch {
	case n == 0:
		return PriorityLow, true
	case n >= int(PriorityLow) && n <= int(PriorityHigh):
		return Priority(n), true
	default:
		return 0, false
	}
}

// String returns the lower-case name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Task represents a learning task in the domain model.
// Subtopics and Sessions are populated on read and never persisted through the task.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	IsCompleted bool
	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	Priority    Priority
	Category    string

	Subtopics []Subtopic
	Sessions  []Session
}

// NewTask creates an incomplete task owned by userID.
func NewTask(userID int64, title, description, category string, priority Priority, now time.Time) Task {
	return Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    priority,
		CreatedAt:   now,
	}
}

// Start stamps StartedAt the first time it is called.
func (t Task) Start(now time.Time) Task {
	if t.StartedAt == nil {
		t.StartedAt = &now
	}
	return t
}

// Complete marks the task done, overwriting any earlier completion time.
func (t Task) Complete(now time.Time) Task {
	t.IsCompleted = true
	t.CompletedAt = &now
	return t
}

// SetCompleted applies a completion flag from an update, keeping
// CompletedAt set exactly when the task is complete.
func (t Task) SetCompleted(done bool, now time.Time) Task {
	t.IsCompleted = done
	switch {
	case !done:
		t.CompletedAt = nil
	case t.CompletedAt == nil:
		t.CompletedAt = &now
	}
	return t
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return strings.TrimSpace(t.Title) != "" && t.UserID > 0
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// TotalMinutes sums the durations of the task's closed sessions.
func (t Task) TotalMinutes() int {
	total := 0
	for _, s := range t.Sessions {
		total += s.DurationMinutes
	}
	return total
}
