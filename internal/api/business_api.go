package api

import (
	"context"
	"time"

	"learning-tracker/internal/domain"
	"learning-tracker/internal/services"
)

// BusinessAPI defines every operation exposed to the presentation layers.
// Callers always pass the acting user id explicitly.
type BusinessAPI interface {
	// ========== Accounts ==========

	// Register creates a user and returns its id
	Register(ctx context.Context, username, password string) (int64, error)

	// Login verifies credentials and returns the user id
	Login(ctx context.Context, username, password string) (int64, error)

	GetUser(ctx context.Context, userID int64) (*domain.User, error)

	// ========== Tasks ==========

	ListTasks(ctx context.Context, userID int64) ([]*domain.Task, error)
	GetTask(ctx context.Context, taskID int64) (*domain.Task, error)
	CreateTask(ctx context.Context, input services.CreateTaskInput) (*domain.Task, error)
	StartTask(ctx context.Context, taskID int64) (*domain.Task, error)
	CompleteTask(ctx context.Context, taskID int64) (*domain.Task, error)
	UpdateTask(ctx context.Context, taskID int64, input services.UpdateTaskInput) (*domain.Task, error)

	// DeleteTask removes a task with all its subtopics and sessions
	DeleteTask(ctx context.Context, taskID int64) error

	// ========== Subtopics ==========

	ListSubtopics(ctx context.Context, taskID int64) ([]domain.Subtopic, error)
	GetSubtopic(ctx context.Context, subtopicID int64) (*domain.Subtopic, error)
	AddSubtopic(ctx context.Context, taskID int64, input services.SubtopicInput) (*domain.Subtopic, error)
	UpdateSubtopic(ctx context.Context, subtopicID int64, input services.SubtopicInput) (*domain.Subtopic, error)
	DeleteSubtopic(ctx context.Context, subtopicID int64) error

	// ========== Sessions ==========

	// StartSession opens a session; fails while the task has another open one
	StartSession(ctx context.Context, taskID int64) (*domain.Session, error)

	// EndSession closes an open session
	EndSession(ctx context.Context, sessionID int64, notes, subtopicsStudied string) (*domain.Session, error)

	ListSessions(ctx context.Context, taskID int64) ([]domain.Session, error)
	GetSession(ctx context.Context, sessionID int64) (*domain.Session, error)
	DeleteSession(ctx context.Context, sessionID int64) error

	// ========== Reporting ==========

	// GetTimeline returns the user's sessions, most recent first
	GetTimeline(ctx context.Context, userID int64) ([]domain.TimelineEntry, error)

	GetTaskSummary(ctx context.Context, taskID int64) (*services.TaskSummary, error)
	GetUserStatistics(ctx context.Context, userID int64) (*services.UserStatistics, error)

	// FormatMinutes renders a stored duration such as "1h 5m"
	FormatMinutes(minutes int) string

	// RunningFor renders the elapsed time of an open session
	RunningFor(startedAt time.Time) string
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services *services.ServiceContainer
	observer UseCaseObserver
	clock    services.Clock
}

// NewBusinessAPI creates a BusinessAPI over the given services. A nil
// observer discards events.
func NewBusinessAPI(container *services.ServiceContainer, observer UseCaseObserver) BusinessAPI {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &businessAPIImpl{
		services: container,
		observer: observer,
		clock:    services.SystemClock{},
	}
}

// observe times fn and reports its outcome under name
func (b *businessAPIImpl) observe(ctx context.Context, name string, f fields, fn func() error) error {
	started := b.clock.Now()
	err := fn()
	b.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  b.clock.Now().Sub(started),
		Success:   err == nil,
		Err:       err,
		Fields:    f,
		StartedAt: started,
	})
	return err
}

// ========== Accounts ==========

func (b *businessAPIImpl) Register(ctx context.Context, username, password string) (int64, error) {
	var id int64
	err := b.observe(ctx, "user.register", fields{"username": username}, func() (err error) {
		id, err = b.services.CredentialService.Register(ctx, username, password)
		return err
	})
	return id, err
}

func (b *businessAPIImpl) Login(ctx context.Context, username, password string) (int64, error) {
	var id int64
	err := b.observe(ctx, "user.login", fields{"username": username}, func() (err error) {
		id, err = b.services.CredentialService.Authenticate(ctx, username, password)
		return err
	})
	return id, err
}

func (b *businessAPIImpl) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	var user *domain.User
	err := b.observe(ctx, "user.get", fields{"user_id": userID}, func() (err error) {
		user, err = b.services.CredentialService.GetUser(ctx, userID)
		return err
	})
	return user, err
}

// ========== Tasks ==========

func (b *businessAPIImpl) ListTasks(ctx context.Context, userID int64) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := b.observe(ctx, "task.list", fields{"user_id": userID}, func() (err error) {
		tasks, err = b.services.TaskService.ListTasks(ctx, userID)
		return err
	})
	return tasks, err
}

func (b *businessAPIImpl) GetTask(ctx context.Context, taskID int64) (*domain.Task, error) {
	return b.taskCall(ctx, "task.get", taskID, b.services.TaskService.GetTask)
}

func (b *businessAPIImpl) CreateTask(ctx context.Context, input services.CreateTaskInput) (*domain.Task, error) {
	var task *domain.Task
	err := b.observe(ctx, "task.create", fields{"user_id": input.UserID}, func() (err error) {
		task, err = b.services.TaskService.CreateTask(ctx, input)
		return err
	})
	return task, err
}

func (b *businessAPIImpl) StartTask(ctx context.Context, taskID int64) (*domain.Task, error) {
	return b.taskCall(ctx, "task.start", taskID, b.services.TaskService.StartTask)
}

func (b *businessAPIImpl) CompleteTask(ctx context.Context, taskID int64) (*domain.Task, error) {
	return b.taskCall(ctx, "task.complete", taskID, b.services.TaskService.CompleteTask)
}

func (b *businessAPIImpl) UpdateTask(ctx context.Context, taskID int64, input services.UpdateTaskInput) (*domain.Task, error) {
	var task *domain.Task
	err := b.observe(ctx, "task.update", fields{"task_id": taskID}, func() (err error) {
		task, err = b.services.TaskService.UpdateTask(ctx, taskID, input)
		return err
	})
	return task, err
}

func (b *businessAPIImpl) DeleteTask(ctx context.Context, taskID int64) error {
	return b.observe(ctx, "task.delete", fields{"task_id": taskID}, func() error {
		return b.services.TaskService.DeleteTask(ctx, taskID)
	})
}

func (b *businessAPIImpl) taskCall(ctx context.Context, name string, taskID int64, fn func(context.Context, int64) (*domain.Task, error)) (*domain.Task, error) {
	var task *domain.Task
	err := b.observe(ctx, name, fields{"task_id": taskID}, func() (err error) {
		task, err = fn(ctx, taskID)
		return err
	})
	return task, err
}

// ========== Subtopics ==========

func (b *businessAPIImpl) ListSubtopics(ctx context.Context, taskID int64) ([]domain.Subtopic, error) {
	var subtopics []domain.Subtopic
	err := b.observe(ctx, "subtopic.list", fields{"task_id": taskID}, func() (err error) {
		subtopics, err = b.services.SubtopicService.ListSubtopics(ctx, taskID)
		return err
	})
	return subtopics, err
}

func (b *businessAPIImpl) GetSubtopic(ctx context.Context, subtopicID int64) (*domain.Subtopic, error) {
	var subtopic *domain.Subtopic
	err := b.observe(ctx, "subtopic.get", fields{"subtopic_id": subtopicID}, func() (err error) {
		subtopic, err = b.services.SubtopicService.GetSubtopic(ctx, subtopicID)
		return err
	})
	return subtopic, err
}

func (b *businessAPIImpl) AddSubtopic(ctx context.Context, taskID int64, input services.SubtopicInput) (*domain.Subtopic, error) {
	var subtopic *domain.Subtopic
	err := b.observe(ctx, "subtopic.add", fields{"task_id": taskID}, func() (err error) {
		subtopic, err = b.services.SubtopicService.AddSubtopic(ctx, taskID, input)
		return err
	})
	return subtopic, err
}

func (b *businessAPIImpl) UpdateSubtopic(ctx context.Context, subtopicID int64, input services.SubtopicInput) (*domain.Subtopic, error) {
	var subtopic *domain.Subtopic
	err := b.observe(ctx, "subtopic.update", fields{"subtopic_id": subtopicID}, func() (err error) {
		subtopic, err = b.services.SubtopicService.UpdateSubtopic(ctx, subtopicID, input)
		return err
	})
	return subtopic, err
}

func (b *businessAPIImpl) DeleteSubtopic(ctx context.Context, subtopicID int64) error {
	return b.observe(ctx, "subtopic.delete", fields{"subtopic_id": subtopicID}, func() error {
		return b.services.SubtopicService.DeleteSubtopic(ctx, subtopicID)
	})
}

// ========== Sessions ==========

func (b *businessAPIImpl) StartSession(ctx context.Context, taskID int64) (*domain.Session, error) {
	var session *domain.Session
	err := b.observe(ctx, "session.start", fields{"task_id": taskID}, func() (err error) {
		session, err = b.services.SessionService.StartSession(ctx, taskID)
		return err
	})
	return session, err
}

func (b *businessAPIImpl) EndSession(ctx context.Context, sessionID int64, notes, subtopicsStudied string) (*domain.Session, error) {
	var session *domain.Session
	err := b.observe(ctx, "session.end", fields{"session_id": sessionID}, func() (err error) {
		session, err = b.services.SessionService.EndSession(ctx, sessionID, notes, subtopicsStudied)
		return err
	})
	return session, err
}

func (b *businessAPIImpl) ListSessions(ctx context.Context, taskID int64) ([]domain.Session, error) {
	var sessions []domain.Session
	err := b.observe(ctx, "session.list", fields{"task_id": taskID}, func() (err error) {
		sessions, err = b.services.SessionService.ListSessions(ctx, taskID)
		return err
	})
	return sessions, err
}

func (b *businessAPIImpl) GetSession(ctx context.Context, sessionID int64) (*domain.Session, error) {
	var session *domain.Session
	err := b.observe(ctx, "session.get", fields{"session_id": sessionID}, func() (err error) {
		session, err = b.services.SessionService.GetSession(ctx, sessionID)
		return err
	})
	return session, err
}

func (b *businessAPIImpl) DeleteSession(ctx context.Context, sessionID int64) error {
	return b.observe(ctx, "session.delete", fields{"session_id": sessionID}, func() error {
		return b.services.SessionService.DeleteSession(ctx, sessionID)
	})
}

// ========== Reporting ==========

func (b *businessAPIImpl) GetTimeline(ctx context.Context, userID int64) ([]domain.TimelineEntry, error) {
	var entries []domain.TimelineEntry
	err := b.observe(ctx, "timeline.get", fields{"user_id": userID}, func() (err error) {
		entries, err = b.services.TimelineService.GetTimeline(ctx, userID)
		return err
	})
	return entries, err
}

func (b *businessAPIImpl) GetTaskSummary(ctx context.Context, taskID int64) (*services.TaskSummary, error) {
	var summary *services.TaskSummary
	err := b.observe(ctx, "report.task_summary", fields{"task_id": taskID}, func() (err error) {
		summary, err = b.services.ReportingService.GetTaskSummary(ctx, taskID)
		return err
	})
	return summary, err
}

func (b *businessAPIImpl) GetUserStatistics(ctx context.Context, userID int64) (*services.UserStatistics, error) {
	var stats *services.UserStatistics
	err := b.observe(ctx, "report.user_statistics", fields{"user_id": userID}, func() (err error) {
		stats, err = b.services.ReportingService.GetUserStatistics(ctx, userID)
		return err
	})
	return stats, err
}

func (b *businessAPIImpl) FormatMinutes(minutes int) string {
	return b.services.TimeService.FormatMinutes(minutes)
}

func (b *businessAPIImpl) RunningFor(startedAt time.Time) string {
	return b.services.TimeService.CalculateRunningDuration(startedAt)
}
