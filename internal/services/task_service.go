package services

import (
	"context"
	"strings"

	"learning-tracker/internal/domain"
	"learning-tracker/internal/errors"
	"learning-tracker/internal/repository"
	"learning-tracker/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          repository.Repository
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
	clock         Clock
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo repository.Repository, v *validation.Validator, clock Clock) TaskService {
	return &taskServiceImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidator(v),
		clock:         clock,
	}
}

// validateTaskID rejects non-positive IDs before touching the store
func (t *taskServiceImpl) validateTaskID(id int64) error {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return errors.NewValidationError("invalid task ID", err)
	}
	return nil
}

// loadTask fetches a task row without children
func (t *taskServiceImpl) loadTask(ctx context.Context, id int64) (domain.Task, error) {
	if err := t.validateTaskID(id); err != nil {
		return domain.Task{}, err
	}

	dbTask, err := t.repo.GetTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	return t.mapper.Task.FromDatabase(*dbTask), nil
}

// withChildren populates subtopics (display order) and sessions (newest first)
func (t *taskServiceImpl) withChildren(ctx context.Context, task domain.Task) (*domain.Task, error) {
	subtopics, err := t.repo.ListSubtopicsByTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	sessions, err := t.repo.ListSessionsByTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	task.Subtopics = t.mapper.Subtopic.FromDatabaseSlice(subtopics)
	task.Sessions = t.mapper.Session.FromDatabaseSlice(sessions)
	return &task, nil
}

// save persists task and returns it with fresh children
func (t *taskServiceImpl) save(ctx context.Context, task domain.Task) (*domain.Task, error) {
	dbTask := t.mapper.Task.ToDatabase(task)
	if err := t.repo.UpdateTask(ctx, &dbTask); err != nil {
		return nil, err
	}
	return t.withChildren(ctx, task)
}

// ListTasks returns the user's tasks, newest first, each with its children
func (t *taskServiceImpl) ListTasks(ctx context.Context, userID int64) ([]*domain.Task, error) {
	if err := t.taskValidator.ValidateUserID(userID); err != nil {
		return nil, errors.NewValidationError("invalid user ID", err)
	}

	dbTasks, err := t.repo.ListTasksByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasks := make([]*domain.Task, 0, len(dbTasks))
	for _, dbTask := range dbTasks {
		task, err := t.withChildren(ctx, t.mapper.Task.FromDatabase(*dbTask))
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// GetTask retrieves a task by its ID with its children
func (t *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := t.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return t.withChildren(ctx, task)
}

// CreateTask creates an incomplete task for an existing user
func (t *taskServiceImpl) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	if err := t.taskValidator.ValidateUserID(input.UserID); err != nil {
		return nil, errors.NewValidationError("invalid user ID", err)
	}
	if err := t.taskValidator.ValidateTaskInput(input.Title, input.Description, input.Category, input.Priority); err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}
	priority, _ := domain.ParsePriority(input.Priority)

	if _, err := t.repo.GetUser(ctx, input.UserID); err != nil {
		return nil, err
	}

	task := domain.NewTask(
		input.UserID,
		strings.TrimSpace(input.Title),
		input.Description,
		strings.TrimSpace(input.Category),
		priority,
		t.clock.Now(),
	)

	dbTask := t.mapper.Task.ToDatabase(task)
	if err := t.repo.CreateTask(ctx, &dbTask); err != nil {
		return nil, err
	}

	created := t.mapper.Task.FromDatabase(dbTask)
	return &created, nil
}

// StartTask stamps the start time on first call; later calls change nothing
func (t *taskServiceImpl) StartTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := t.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.StartedAt != nil {
		return t.withChildren(ctx, task)
	}
	return t.save(ctx, task.Start(t.clock.Now()))
}

// CompleteTask marks the task done, re-stamping completedAt every time
func (t *taskServiceImpl) CompleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := t.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return t.save(ctx, task.Complete(t.clock.Now()))
}

// UpdateTask overwrites the mutable fields, keeping completedAt consistent
// with the completion flag
func (t *taskServiceImpl) UpdateTask(ctx context.Context, id int64, input UpdateTaskInput) (*domain.Task, error) {
	if err := t.validateTaskID(id); err != nil {
		return nil, err
	}
	if err := t.taskValidator.ValidateTaskInput(input.Title, input.Description, input.Category, input.Priority); err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}
	priority, _ := domain.ParsePriority(input.Priority)

	task, err := t.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Title = strings.TrimSpace(input.Title)
	task.Description = input.Description
	task.Category = strings.TrimSpace(input.Category)
	task.Priority = priority
	task = task.SetCompleted(input.IsCompleted, t.clock.Now())

	return t.save(ctx, task)
}

// DeleteTask removes the task together with its subtopics and sessions
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := t.validateTaskID(id); err != nil {
		return err
	}
	return t.repo.DeleteTask(ctx, id)
}
