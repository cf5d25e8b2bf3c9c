package sqlite

import (
	"database/sql"

	"learning-tracker/internal/repository"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanAll drives rows through a single-row scan function
func scanAll[T any](rows Rows, scan func(Scanner) (*T, error)) ([]*T, error) {
	results := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// ScanUser scans a single user from a database row
func ScanUser(scanner Scanner) (*repository.User, error) {
	user := &repository.User{}
	var createdAt string

	if err := scanner.Scan(&user.ID, &user.Username, &user.PasswordHash, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if user.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return user, nil
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*repository.Task, error) {
	task := &repository.Task{}
	var createdAt string
	var startedAt, completedAt sql.NullString

	err := scanner.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.IsCompleted,
		&createdAt,
		&startedAt,
		&completedAt,
		&task.Priority,
		&task.Category,
	)
	if err != nil {
		return nil, err
	}

	if task.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	if task.StartedAt, err = ParseNullTimeFromDB(startedAt); err != nil {
		return nil, err
	}
	if task.CompletedAt, err = ParseNullTimeFromDB(completedAt); err != nil {
		return nil, err
	}
	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*repository.Task, error) {
	return scanAll(rows, ScanTask)
}

// ScanSubtopic scans a single subtopic from a database row
func ScanSubtopic(scanner Scanner) (*repository.Subtopic, error) {
	subtopic := &repository.Subtopic{}
	var createdAt string
	var completedAt sql.NullString

	err := scanner.Scan(
		&subtopic.ID,
		&subtopic.TaskID,
		&subtopic.Title,
		&subtopic.Description,
		&subtopic.IsCompleted,
		&createdAt,
		&completedAt,
		&subtopic.Order,
	)
	if err != nil {
		return nil, err
	}

	if subtopic.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	if subtopic.CompletedAt, err = ParseNullTimeFromDB(completedAt); err != nil {
		return nil, err
	}
	return subtopic, nil
}

// ScanSubtopics scans multiple subtopics from database rows
func ScanSubtopics(rows Rows) ([]*repository.Subtopic, error) {
	return scanAll(rows, ScanSubtopic)
}

// sessionDest lists the destinations for a session row in select order
func sessionDest(session *repository.Session, startedAt *string, endedAt, studiedAt *sql.NullString) []interface{} {
	return []interface{}{
		&session.ID,
		&session.TaskID,
		startedAt,
		endedAt,
		&session.DurationMinutes,
		&session.Notes,
		&session.SubtopicsStudied,
		studiedAt,
	}
}

func populateSessionTimes(session *repository.Session, startedAt string, endedAt, studiedAt sql.NullString) error {
	var err error
	if session.StartedAt, err = ParseTimeFromDB(startedAt); err != nil {
		return err
	}
	if session.EndedAt, err = ParseNullTimeFromDB(endedAt); err != nil {
		return err
	}
	if session.SubtopicsStudiedAt, err = ParseNullTimeFromDB(studiedAt); err != nil {
		return err
	}
	return nil
}

// ScanSession scans a single learning session from a database row
func ScanSession(scanner Scanner) (*repository.Session, error) {
	session := &repository.Session{}
	var startedAt string
	var endedAt, studiedAt sql.NullString

	if err := scanner.Scan(sessionDest(session, &startedAt, &endedAt, &studiedAt)...); err != nil {
		return nil, err
	}
	if err := populateSessionTimes(session, startedAt, endedAt, studiedAt); err != nil {
		return nil, err
	}
	return session, nil
}

// ScanSessions scans multiple learning sessions from database rows
func ScanSessions(rows Rows) ([]*repository.Session, error) {
	return scanAll(rows, ScanSession)
}

// ScanTimelineRow scans a session joined with its task's title and category
func ScanTimelineRow(scanner Scanner) (*repository.TimelineRow, error) {
	row := &repository.TimelineRow{}
	var startedAt string
	var endedAt, studiedAt sql.NullString

	dest := sessionDest(&row.Session, &startedAt, &endedAt, &studiedAt)
	dest = append(dest, &row.TaskTitle, &row.TaskCategory)
	if err := scanner.Scan(dest...); err != nil {
		return nil, err
	}
	if err := populateSessionTimes(&row.Session, startedAt, endedAt, studiedAt); err != nil {
		return nil, err
	}
	return row, nil
}

// ScanTimelineRows scans multiple timeline rows
func ScanTimelineRows(rows Rows) ([]*repository.TimelineRow, error) {
	return scanAll(rows, ScanTimelineRow)
}
