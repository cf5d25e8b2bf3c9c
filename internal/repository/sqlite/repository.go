package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"learning-tracker/internal/errors"
	"learning-tracker/internal/repository"
	"learning-tracker/internal/repository/sqlite/migrations"

	_ "github.com/glebarez/go-sqlite"
)

const (
	userColumns     = `id, username, password_hash, created_at`
	taskColumns     = `id, user_id, title, description, is_completed, created_at, started_at, completed_at, priority, category`
	subtopicColumns = `id, task_id, title, description, is_completed, created_at, completed_at, display_order`
	sessionColumns  = `id, task_id, started_at, ended_at, duration_minutes, notes, subtopics_studied, subtopics_studied_at`
)

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

var _ repository.Repository = (*SQLiteRepository)(nil)

// New creates a new SQLite repository instance. dbPath may be ":memory:".
func New(dbPath string) (*SQLiteRepository, error) {
	inMemory := dbPath == ":memory:"
	if !inMemory {
		if dir := filepath.Dir(dbPath); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, errors.NewDatabaseError("create database directory", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// SQLite serialises writers anyway, and an in-memory database only exists
	// on the connection that created it.
	db.SetMaxOpenConns(1)

	pragmas := []string{"PRAGMA foreign_keys = ON", "PRAGMA busy_timeout = 5000"}
	if !inMemory {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.NewDatabaseError("configure database", err)
		}
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateUser inserts a user; a taken username yields a conflict error
func (r *SQLiteRepository) CreateUser(ctx context.Context, user *repository.User) error {
	query := `INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash, FormatTimeForDB(user.CreatedAt))
	if err != nil {
		if IsUniqueViolation(err) {
			return errors.NewConflictError("user", user.Username)
		}
		return HandleDatabaseError("create user", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return HandleDatabaseError("get last insert ID", err)
	}
	user.ID = id
	return nil
}

// GetUser retrieves a user by ID
func (r *SQLiteRepository) GetUser(ctx context.Context, id int64) (*repository.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanUser, "user", idString(id), id)
}

// GetUserByUsername retrieves a user by exact username
func (r *SQLiteRepository) GetUserByUsername(ctx context.Context, username string) (*repository.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	return QuerySingle(ctx, r.db, query, ScanUser, "user", username, username)
}

// CreateTask creates a new task
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *repository.Task) error {
	query := `
	INSERT INTO tasks (user_id, title, description, is_completed, created_at, started_at, completed_at, priority, category)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		task.UserID,
		task.Title,
		task.Description,
		task.IsCompleted,
		FormatTimeForDB(task.CreatedAt),
		FormatTimePtrForDB(task.StartedAt),
		FormatTimePtrForDB(task.CompletedAt),
		task.Priority,
		task.Category,
	)
	if err != nil {
		return err
	}
	task.ID = id
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*repository.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", idString(id), id)
}

// ListTasksByUser retrieves the user's tasks, newest first
func (r *SQLiteRepository) ListTasksByUser(ctx context.Context, userID int64) ([]*repository.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE user_id = ?
	ORDER BY created_at DESC, id DESC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", userID)
}

// UpdateTask updates an existing task
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *repository.Task) error {
	query := `
	UPDATE tasks
	SET title = ?, description = ?, is_completed = ?, started_at = ?, completed_at = ?, priority = ?, category = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "task", idString(task.ID),
		task.Title,
		task.Description,
		task.IsCompleted,
		FormatTimePtrForDB(task.StartedAt),
		FormatTimePtrForDB(task.CompletedAt),
		task.Priority,
		task.Category,
		task.ID,
	)
}

// DeleteTask deletes a task and its children in one transaction
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM subtopics WHERE task_id = ?`, id); err != nil {
		return HandleDatabaseError("delete subtopics", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM learning_sessions WHERE task_id = ?`, id); err != nil {
		return HandleDatabaseError("delete sessions", err)
	}
	if err := ExecuteWithRowsAffected(ctx, tx, `DELETE FROM tasks WHERE id = ?`, "task", idString(id), id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}

// CreateSubtopic creates a new subtopic
func (r *SQLiteRepository) CreateSubtopic(ctx context.Context, subtopic *repository.Subtopic) error {
	query := `
	INSERT INTO subtopics (task_id, title, description, is_completed, created_at, completed_at, display_order)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		subtopic.TaskID,
		subtopic.Title,
		subtopic.Description,
		subtopic.IsCompleted,
		FormatTimeForDB(subtopic.CreatedAt),
		FormatTimePtrForDB(subtopic.CompletedAt),
		subtopic.Order,
	)
	if err != nil {
		return err
	}
	subtopic.ID = id
	return nil
}

// GetSubtopic retrieves a subtopic by ID
func (r *SQLiteRepository) GetSubtopic(ctx context.Context, id int64) (*repository.Subtopic, error) {
	query := `SELECT ` + subtopicColumns + ` FROM subtopics WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanSubtopic, "subtopic", idString(id), id)
}

// ListSubtopicsByTask retrieves the task's subtopics in display order
func (r *SQLiteRepository) ListSubtopicsByTask(ctx context.Context, taskID int64) ([]*repository.Subtopic, error) {
	query := `
	SELECT ` + subtopicColumns + `
	FROM subtopics
	WHERE task_id = ?
	ORDER BY display_order ASC, id ASC`
	return QueryMultiple(ctx, r.db, query, ScanSubtopics, "subtopics", taskID)
}

// UpdateSubtopic updates an existing subtopic
func (r *SQLiteRepository) UpdateSubtopic(ctx context.Context, subtopic *repository.Subtopic) error {
	query := `
	UPDATE subtopics
	SET title = ?, description = ?, is_completed = ?, completed_at = ?, display_order = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "subtopic", idString(subtopic.ID),
		subtopic.Title,
		subtopic.Description,
		subtopic.IsCompleted,
		FormatTimePtrForDB(subtopic.CompletedAt),
		subtopic.Order,
		subtopic.ID,
	)
}

// DeleteSubtopic deletes a subtopic by ID
func (r *SQLiteRepository) DeleteSubtopic(ctx context.Context, id int64) error {
	query := `DELETE FROM subtopics WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "subtopic", idString(id), id)
}

// CreateSession creates a new learning session. A second open session on
// the same task is rejected by idx_learning_sessions_open_task.
func (r *SQLiteRepository) CreateSession(ctx context.Context, session *repository.Session) error {
	query := `
	INSERT INTO learning_sessions (task_id, started_at, ended_at, duration_minutes, notes, subtopics_studied, subtopics_studied_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		session.TaskID,
		FormatTimeForDB(session.StartedAt),
		FormatTimePtrForDB(session.EndedAt),
		session.DurationMinutes,
		session.Notes,
		session.SubtopicsStudied,
		FormatTimePtrForDB(session.SubtopicsStudiedAt),
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return repository.ErrSessionAlreadyOpen(session.TaskID)
		}
		return HandleDatabaseError("create session", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return HandleDatabaseError("get last insert ID", err)
	}
	session.ID = id
	return nil
}

// GetSession retrieves a learning session by ID
func (r *SQLiteRepository) GetSession(ctx context.Context, id int64) (*repository.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM learning_sessions WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanSession, "session", idString(id), id)
}

// ListSessionsByTask retrieves the task's sessions, most recent start first
func (r *SQLiteRepository) ListSessionsByTask(ctx context.Context, taskID int64) ([]*repository.Session, error) {
	query := `
	SELECT ` + sessionColumns + `
	FROM learning_sessions
	WHERE task_id = ?
	ORDER BY started_at DESC, id DESC`
	return QueryMultiple(ctx, r.db, query, ScanSessions, "sessions", taskID)
}

// UpdateSession updates an existing learning session
func (r *SQLiteRepository) UpdateSession(ctx context.Context, session *repository.Session) error {
	query := `
	UPDATE learning_sessions
	SET started_at = ?, ended_at = ?, duration_minutes = ?, notes = ?, subtopics_studied = ?, subtopics_studied_at = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "session", idString(session.ID),
		FormatTimeForDB(session.StartedAt),
		FormatTimePtrForDB(session.EndedAt),
		session.DurationMinutes,
		session.Notes,
		session.SubtopicsStudied,
		FormatTimePtrForDB(session.SubtopicsStudiedAt),
		session.ID,
	)
}

// DeleteSession deletes a learning session by ID
func (r *SQLiteRepository) DeleteSession(ctx context.Context, id int64) error {
	query := `DELETE FROM learning_sessions WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "session", idString(id), id)
}

// ListTimeline joins every session of the user's tasks with its task
func (r *SQLiteRepository) ListTimeline(ctx context.Context, userID int64) ([]*repository.TimelineRow, error) {
	query := `
	SELECT s.id, s.task_id, s.started_at, s.ended_at, s.duration_minutes, s.notes, s.subtopics_studied, s.subtopics_studied_at,
		t.title, t.category
	FROM learning_sessions s
	JOIN tasks t ON s.task_id = t.id
	WHERE t.user_id = ?
	ORDER BY s.started_at DESC, s.id DESC`
	return QueryMultiple(ctx, r.db, query, ScanTimelineRows, "timeline", userID)
}

func idString(id int64) string {
	return fmt.Sprintf("%d", id)
}
