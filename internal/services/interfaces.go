package services

import (
	"context"
	"time"

	"learning-tracker/internal/domain"
)

// Clock supplies the current time. Services never call time.Now directly.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC
type SystemClock struct{}

// Now returns the current UTC time
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// ClockFunc adapts a function to Clock
type ClockFunc func() time.Time

// Now calls f
func (f ClockFunc) Now() time.Time { return f() }

// CreateTaskInput carries the caller-supplied fields of a new task
type CreateTaskInput struct {
	UserID      int64  `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    int    `json:"priority"`
}

// UpdateTaskInput overwrites every mutable field of a task
type UpdateTaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    int    `json:"priority"`
	IsCompleted bool   `json:"isCompleted"`
}

// SubtopicInput carries the fields of a subtopic. IsCompleted is ignored on create.
type SubtopicInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsCompleted bool   `json:"isCompleted"`
	Order       int    `json:"order"`
}

// TaskSummary is a progress overview of a single task
type TaskSummary struct {
	Task            *domain.Task
	SubtopicsTotal  int
	SubtopicsDone   int
	SessionCount    int
	TotalMinutes    int
	OpenSession     *domain.Session
	LastStudiedAt   *time.Time
	PercentComplete int
}

// UserStatistics aggregates progress over all of a user's tasks
type UserStatistics struct {
	TaskCount      int
	CompletedCount int
	InProgress     int
	SessionCount   int
	TotalMinutes   int
	ByCategory     map[string]int // minutes per category, "" for uncategorised
}

// CredentialService registers and authenticates users
type CredentialService interface {
	Register(ctx context.Context, username, password string) (int64, error)
	Authenticate(ctx context.Context, username, password string) (int64, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// TaskService handles task lifecycle and read-time aggregation
type TaskService interface {
	ListTasks(ctx context.Context, userID int64) ([]*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	StartTask(ctx context.Context, id int64) (*domain.Task, error)
	CompleteTask(ctx context.Context, id int64) (*domain.Task, error)
	UpdateTask(ctx context.Context, id int64, input UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// SubtopicService manages the ordered subtopics of a task
type SubtopicService interface {
	ListSubtopics(ctx context.Context, taskID int64) ([]domain.Subtopic, error)
	GetSubtopic(ctx context.Context, id int64) (*domain.Subtopic, error)
	AddSubtopic(ctx context.Context, taskID int64, input SubtopicInput) (*domain.Subtopic, error)
	UpdateSubtopic(ctx context.Context, id int64, input SubtopicInput) (*domain.Subtopic, error)
	DeleteSubtopic(ctx context.Context, id int64) error
}

// SessionService drives the open/closed lifecycle of study sessions
type SessionService interface {
	StartSession(ctx context.Context, taskID int64) (*domain.Session, error)
	EndSession(ctx context.Context, id int64, notes, subtopicsStudied string) (*domain.Session, error)
	ListSessions(ctx context.Context, taskID int64) ([]domain.Session, error)
	GetSession(ctx context.Context, id int64) (*domain.Session, error)
	DeleteSession(ctx context.Context, id int64) error
}

// TimelineService builds the reverse-chronological session history of a user
type TimelineService interface {
	GetTimeline(ctx context.Context, userID int64) ([]domain.TimelineEntry, error)
}

// TimeService formats durations for display
type TimeService interface {
	FormatDuration(duration time.Duration) string
	FormatMinutes(minutes int) string
	CalculateRunningDuration(startTime time.Time) string
}

// ReportingService computes progress summaries
type ReportingService interface {
	GetTaskSummary(ctx context.Context, taskID int64) (*TaskSummary, error)
	GetUserStatistics(ctx context.Context, userID int64) (*UserStatistics, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	CredentialService CredentialService
	TaskService       TaskService
	SubtopicService   SubtopicService
	SessionService    SessionService
	TimelineService   TimelineService
	TimeService       TimeService
	ReportingService  ReportingService
}
