// Package repository defines the persisted records of the learning tracker and
// the storage contract every backend implements.
package repository

import (
	"context"
	"fmt"
	"time"

	"learning-tracker/internal/errors"
)

// ErrSessionAlreadyOpen is returned by CreateSession when the task already
// has a session without an end time.
func ErrSessionAlreadyOpen(taskID int64) error {
	return errors.NewInvalidStateError("task", fmt.Sprint(taskID), "a session is already open")
}

// User is a registered account
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Task is a learning task row
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	IsCompleted bool
	CreatedAt   time.Time
	StartedAt   *time.Time // Using pointer to allow NULL values
	CompletedAt *time.Time
	Priority    int
	Category    string
}

// Subtopic is an ordered child row of a task
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

// Session is a timed study interval row
type Session struct {
	ID                 int64
	TaskID             int64
	StartedAt          time.Time
	EndedAt            *time.Time
	DurationMinutes    int
	Notes              string
	SubtopicsStudied   string
	SubtopicsStudiedAt *time.Time
}

// TimelineRow is a session joined with the display fields of its task
type TimelineRow struct {
	Session
	TaskTitle    string
	TaskCategory string
}

// Repository defines the interface for database operations
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// Tasks
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasksByUser(ctx context.Context, userID int64) ([]*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	// DeleteTask removes the task together with its subtopics and sessions.
	DeleteTask(ctx context.Context, id int64) error

	// Subtopics
	CreateSubtopic(ctx context.Context, subtopic *Subtopic) error
	GetSubtopic(ctx context.Context, id int64) (*Subtopic, error)
	ListSubtopicsByTask(ctx context.Context, taskID int64) ([]*Subtopic, error)
	UpdateSubtopic(ctx context.Context, subtopic *Subtopic) error
	DeleteSubtopic(ctx context.Context, id int64) error

	// Sessions
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, id int64) (*Session, error)
	ListSessionsByTask(ctx context.Context, taskID int64) ([]*Session, error)
	UpdateSession(ctx context.Context, session *Session) error
	DeleteSession(ctx context.Context, id int64) error

	// ListTimeline returns every session of the user's tasks, newest start first.
	ListTimeline(ctx context.Context, userID int64) ([]*TimelineRow, error)

	Close() error
}
