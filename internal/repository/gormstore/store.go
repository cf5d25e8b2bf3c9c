// Package gormstore is the GORM-backed implementation of the repository
// contract. It runs on the pure-Go glebarez SQLite driver.
package gormstore

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"learning-tracker/internal/errors"
	"learning-tracker/internal/repository"
)

// Store implements repository.Repository on top of GORM
type Store struct {
	db *gorm.DB
}

var _ repository.Repository = (*Store)(nil)

// New opens (creating if needed) the database at dbPath and migrates the schema
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, errors.NewDatabaseError("create database directory", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		sqlDB.Close()
		return nil, errors.NewDatabaseError("configure database", err)
	}

	if err := db.AutoMigrate(&userModel{}, &taskModel{}, &subtopicModel{}, &sessionModel{}); err != nil {
		sqlDB.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}
	// AutoMigrate cannot express partial indexes
	if err := db.Exec(openSessionIndex).Error; err != nil {
		sqlDB.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &Store{db: db}, nil
}

// openSessionIndex allows at most one open session per task
const openSessionIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_learning_sessions_open_task
	ON learning_sessions(task_id) WHERE ended_at IS NULL`

// Close closes the underlying connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// mapError turns GORM errors into application errors
func mapError(operation, entity string, id any, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.IsAppError(err):
		return err
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return errors.NewNotFoundError(entity, fmt.Sprint(id))
	}
	if fromCtx := errors.FromContext(operation, err); errors.IsAppError(fromCtx) {
		return fromCtx
	}
	return errors.NewDatabaseError(operation, err)
}

func isDuplicate(err error) bool {
	return stderrors.Is(err, gorm.ErrDuplicatedKey) ||
		(err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed"))
}

// requireAffected reports a not-found error when a write touched no rows
func requireAffected(res *gorm.DB, operation, entity string, id int64) error {
	if res.Error != nil {
		return mapError(operation, entity, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.NewNotFoundError(entity, fmt.Sprint(id))
	}
	return nil
}

// CreateUser inserts a user; a taken username yields a conflict error
func (s *Store) CreateUser(ctx context.Context, user *repository.User) error {
	m := toUserModel(user)
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		if isDuplicate(err) {
			return errors.NewConflictError("user", user.Username)
		}
		return mapError("create user", "user", user.Username, err)
	}
	user.ID = m.ID
	return nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*repository.User, error) {
	var m userModel
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, mapError("get user", "user", id, err)
	}
	return m.record(), nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*repository.User, error) {
	var m userModel
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		return nil, mapError("get user", "user", username, err)
	}
	return m.record(), nil
}

func (s *Store) CreateTask(ctx context.Context, task *repository.Task) error {
	m := toTaskModel(task)
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return mapError("create task", "task", task.Title, err)
	}
	task.ID = m.ID
	return nil
}

func (s *Store) GetTask(ctx context.Context, id int64) (*repository.Task, error) {
	var m taskModel
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, mapError("get task", "task", id, err)
	}
	return m.record(), nil
}

// ListTasksByUser returns the user's tasks, newest first
func (s *Store) ListTasksByUser(ctx context.Context, userID int64) ([]*repository.Task, error) {
	var models []taskModel
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&models).Error
	if err != nil {
		return nil, mapError("list tasks", "tasks", userID, err)
	}

	tasks := make([]*repository.Task, 0, len(models))
	for i := range models {
		tasks = append(tasks, models[i].record())
	}
	return tasks, nil
}

// UpdateTask writes every mutable column, including cleared timestamps
func (s *Store) UpdateTask(ctx context.Context, task *repository.Task) error {
	m := toTaskModel(task)
	res := s.db.WithContext(ctx).Model(&taskModel{}).Where("id = ?", task.ID).Updates(map[string]any{
		"title":        m.Title,
		"description":  m.Description,
		"is_completed": m.IsCompleted,
		"started_at":   m.StartedAt,
		"completed_at": m.CompletedAt,
		"priority":     m.Priority,
		"category":     m.Category,
	})
	return requireAffected(res, "update task", "task", task.ID)
}

// DeleteTask removes the task and its subtopics and sessions in one transaction
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&subtopicModel{}).Error; err != nil {
			return mapError("delete subtopics", "subtopic", id, err)
		}
		if err := tx.Where("task_id = ?", id).Delete(&sessionModel{}).Error; err != nil {
			return mapError("delete sessions", "session", id, err)
		}
		return requireAffected(tx.Delete(&taskModel{}, id), "delete task", "task", id)
	})
}

func (s *Store) CreateSubtopic(ctx context.Context, subtopic *repository.Subtopic) error {
	m := toSubtopicModel(subtopic)
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return mapError("create subtopic", "subtopic", subtopic.Title, err)
	}
	subtopic.ID = m.ID
	return nil
}

func (s *Store) GetSubtopic(ctx context.Context, id int64) (*repository.Subtopic, error) {
	var m subtopicModel
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, mapError("get subtopic", "subtopic", id, err)
	}
	return m.record(), nil
}

// ListSubtopicsByTask returns subtopics in display order
func (s *Store) ListSubtopicsByTask(ctx context.Context, taskID int64) ([]*repository.Subtopic, error) {
	var models []subtopicModel
	err := s.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("display_order ASC").Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, mapError("list subtopics", "subtopics", taskID, err)
	}

	subtopics := make([]*repository.Subtopic, 0, len(models))
	for i := range models {
		subtopics = append(subtopics, models[i].record())
	}
	return subtopics, nil
}

func (s *Store) UpdateSubtopic(ctx context.Context, subtopic *repository.Subtopic) error {
	m := toSubtopicModel(subtopic)
	res := s.db.WithContext(ctx).Model(&subtopicModel{}).Where("id = ?", subtopic.ID).Updates(map[string]any{
		"title":         m.Title,
		"description":   m.Description,
		"is_completed":  m.IsCompleted,
		"completed_at":  m.CompletedAt,
		"display_order": m.DisplayOrder,
	})
	return requireAffected(res, "update subtopic", "subtopic", subtopic.ID)
}

func (s *Store) DeleteSubtopic(ctx context.Context, id int64) error {
	return requireAffected(s.db.WithContext(ctx).Delete(&subtopicModel{}, id), "delete subtopic", "subtopic", id)
}

func (s *Store) CreateSession(ctx context.Context, session *repository.Session) error {
	m := toSessionModel(session)
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		if isDuplicate(err) {
			return repository.ErrSessionAlreadyOpen(session.TaskID)
		}
		return mapError("create session", "session", session.TaskID, err)
	}
	session.ID = m.ID
	return nil
}

func (s *Store) GetSession(ctx context.Context, id int64) (*repository.Session, error) {
	var m sessionModel
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, mapError("get session", "session", id, err)
	}
	return m.record(), nil
}

// ListSessionsByTask returns the task's sessions, most recent start first
func (s *Store) ListSessionsByTask(ctx context.Context, taskID int64) ([]*repository.Session, error) {
	var models []sessionModel
	err := s.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("started_at DESC").Order("id DESC").
		Find(&models).Error
	if err != nil {
		return nil, mapError("list sessions", "sessions", taskID, err)
	}

	sessions := make([]*repository.Session, 0, len(models))
	for i := range models {
		sessions = append(sessions, models[i].record())
	}
	return sessions, nil
}

func (s *Store) UpdateSession(ctx context.Context, session *repository.Session) error {
	m := toSessionModel(session)
	res := s.db.WithContext(ctx).Model(&sessionModel{}).Where("id = ?", session.ID).Updates(map[string]any{
		"started_at":           m.StartedAt,
		"ended_at":             m.EndedAt,
		"duration_minutes":     m.DurationMinutes,
		"notes":                m.Notes,
		"subtopics_studied":    m.SubtopicsStudied,
		"subtopics_studied_at": m.SubtopicsStudiedAt,
	})
	return requireAffected(res, "update session", "session", session.ID)
}

func (s *Store) DeleteSession(ctx context.Context, id int64) error {
	return requireAffected(s.db.WithContext(ctx).Delete(&sessionModel{}, id), "delete session", "session", id)
}

// ListTimeline joins every session of the user's tasks with its task
func (s *Store) ListTimeline(ctx context.Context, userID int64) ([]*repository.TimelineRow, error) {
	var models []timelineModel
	err := s.db.WithContext(ctx).
		Table("learning_sessions AS s").
		Select("s.id, s.task_id, s.started_at, s.ended_at, s.duration_minutes, s.notes, " +
			"s.subtopics_studied, s.subtopics_studied_at, t.title AS task_title, t.category AS task_category").
		Joins("JOIN tasks t ON t.id = s.task_id").
		Where("t.user_id = ?", userID).
		Order("s.started_at DESC").Order("s.id DESC").
		Scan(&models).Error
	if err != nil {
		return nil, mapError("list timeline", "timeline", userID, err)
	}

	rows := make([]*repository.TimelineRow, 0, len(models))
	for i := range models {
		rows = append(rows, models[i].record())
	}
	return rows, nil
}
