package domain

import (
	"learning-tracker/internal/repository"
)

// UserMapper converts stored users to domain users. There is no reverse
// direction: users are only written by the credential service.
type UserMapper struct{}

// NewUserMapper creates a new UserMapper instance.
func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// FromDatabase converts a stored user, dropping the password hash.
func (m *UserMapper) FromDatabase(dbUser repository.User) User {
	return User{
		ID:        dbUser.ID,
		Username:  dbUser.Username,
		CreatedAt: dbUser.CreatedAt,
	}
}

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task. Children are not carried.
func (m *TaskMapper) ToDatabase(domainTask Task) repository.Task {
	return repository.Task{
		ID:          domainTask.ID,
		UserID:      domainTask.UserID,
		Title:       domainTask.Title,
		Description: domainTask.Description,
		IsCompleted: domainTask.IsCompleted,
		CreatedAt:   domainTask.CreatedAt,
		StartedAt:   domainTask.StartedAt,
		CompletedAt: domainTask.CompletedAt,
		Priority:    int(domainTask.Priority),
		Category:    domainTask.Category,
	}
}

// FromDatabase converts a database Task to a domain Task with empty children.
func (m *TaskMapper) FromDatabase(dbTask repository.Task) Task {
	return Task{
		ID:          dbTask.ID,
		UserID:      dbTask.UserID,
		Title:       dbTask.Title,
		Description: dbTask.Description,
		IsCompleted: dbTask.IsCompleted,
		CreatedAt:   dbTask.CreatedAt,
		StartedAt:   dbTask.StartedAt,
		CompletedAt: dbTask.CompletedAt,
		Priority:    Priority(dbTask.Priority),
		Category:    dbTask.Category,
		Subtopics:   []Subtopic{},
		Sessions:    []Session{},
	}
}

// SubtopicMapper handles conversion between domain and database Subtopic models.
type SubtopicMapper struct{}

// NewSubtopicMapper creates a new SubtopicMapper instance.
func NewSubtopicMapper() *SubtopicMapper {
	return &SubtopicMapper{}
}

// ToDatabase converts a domain Subtopic to a database Subtopic.
func (m *SubtopicMapper) ToDatabase(s Subtopic) repository.Subtopic {
	return repository.Subtopic{
		ID:          s.ID,
		TaskID:      s.TaskID,
		Title:       s.Title,
		Description: s.Description,
		IsCompleted: s.IsCompleted,
		CreatedAt:   s.CreatedAt,
		CompletedAt: s.CompletedAt,
		Order:       s.Order,
	}
}

// FromDatabase converts a database Subtopic to a domain Subtopic.
func (m *SubtopicMapper) FromDatabase(s repository.Subtopic) Subtopic {
	return Subtopic{
		ID:          s.ID,
		TaskID:      s.TaskID,
		Title:       s.Title,
		Description: s.Description,
		IsCompleted: s.IsCompleted,
		CreatedAt:   s.CreatedAt,
		CompletedAt: s.CompletedAt,
		Order:       s.Order,
	}
}

// FromDatabaseSlice converts database Subtopics, never returning nil.
func (m *SubtopicMapper) FromDatabaseSlice(dbSubtopics []*repository.Subtopic) []Subtopic {
	subtopics := make([]Subtopic, len(dbSubtopics))
	for i, s := range dbSubtopics {
		subtopics[i] = m.FromDatabase(*s)
	}
	return subtopics
}

// SessionMapper handles conversion between domain and database Session models.
type SessionMapper struct{}

// NewSessionMapper creates a new SessionMapper instance.
func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

// ToDatabase converts a domain Session to a database Session.
func (m *SessionMapper) ToDatabase(s Session) repository.Session {
	return repository.Session{
		ID:                 s.ID,
		TaskID:             s.TaskID,
		StartedAt:          s.StartedAt,
		EndedAt:            s.EndedAt,
		DurationMinutes:    s.DurationMinutes,
		Notes:              s.Notes,
		SubtopicsStudied:   s.SubtopicsStudied,
		SubtopicsStudiedAt: s.SubtopicsStudiedAt,
	}
}

// FromDatabase converts a database Session to a domain Session.
func (m *SessionMapper) FromDatabase(s repository.Session) Session {
	return Session{
		ID:                 s.ID,
		TaskID:             s.TaskID,
		StartedAt:          s.StartedAt,
		EndedAt:            s.EndedAt,
		DurationMinutes:    s.DurationMinutes,
		Notes:              s.Notes,
		SubtopicsStudied:   s.SubtopicsStudied,
		SubtopicsStudiedAt: s.SubtopicsStudiedAt,
	}
}

// FromDatabaseSlice converts database Sessions, never returning nil.
func (m *SessionMapper) FromDatabaseSlice(dbSessions []*repository.Session) []Session {
	sessions := make([]Session, len(dbSessions))
	for i, s := range dbSessions {
		sessions[i] = m.FromDatabase(*s)
	}
	return sessions
}

// FromTimelineRows converts joined timeline rows, never returning nil.
func (m *SessionMapper) FromTimelineRows(rows []*repository.TimelineRow) []TimelineEntry {
	entries := make([]TimelineEntry, len(rows))
	for i, row := range rows {
		entries[i] = TimelineEntry{
			Session: m.FromDatabase(row.Session),
			Task: TaskRef{
				ID:       row.TaskID,
				Title:    row.TaskTitle,
				Category: row.TaskCategory,
			},
		}
	}
	return entries
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	User     *UserMapper
	Task     *TaskMapper
	Subtopic *SubtopicMapper
	Session  *SessionMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		User:     NewUserMapper(),
		Task:     NewTaskMapper(),
		Subtopic: NewSubtopicMapper(),
		Session:  NewSessionMapper(),
	}
}
