package gormstore

import (
	"time"

	"learning-tracker/internal/repository"
)

type userModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userModel) TableName() string { return "users" }

type taskModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	UserID      int64     `gorm:"index;not null"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null;default:''"`
	IsCompleted bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"index;not null"`
	StartedAt   *time.Time
	CompletedAt *time.Time
	Priority    int    `gorm:"not null"`
	Category    string `gorm:"not null;default:''"`
}

func (taskModel) TableName() string { return "tasks" }

type subtopicModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	TaskID       int64     `gorm:"index;not null"`
	Title        string    `gorm:"not null"`
	Description  string    `gorm:"not null;default:''"`
	IsCompleted  bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
	CompletedAt  *time.Time
	DisplayOrder int `gorm:"not null;default:0"`
}

func (subtopicModel) TableName() string { return "subtopics" }

type sessionModel struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement"`
	TaskID             int64     `gorm:"index;not null"`
	StartedAt          time.Time `gorm:"index;not null"`
	EndedAt            *time.Time
	DurationMinutes    int    `gorm:"not null;default:0"`
	Notes              string `gorm:"not null;default:''"`
	SubtopicsStudied   string `gorm:"not null;default:''"`
	SubtopicsStudiedAt *time.Time
}

func (sessionModel) TableName() string { return "learning_sessions" }

// timelineModel receives the session/task join. The session columns are
// declared here because Scan does not map through unexported embeds.
type timelineModel struct {
	ID                 int64
	TaskID             int64
	StartedAt          time.Time
	EndedAt            *time.Time
	DurationMinutes    int
	Notes              string
	SubtopicsStudied   string
	SubtopicsStudiedAt *time.Time
	TaskTitle          string
	TaskCategory       string
}

func (m *timelineModel) record() *repository.TimelineRow {
	session := sessionModel{
		ID:                 m.ID,
		TaskID:             m.TaskID,
		StartedAt:          m.StartedAt,
		EndedAt:            m.EndedAt,
		DurationMinutes:    m.DurationMinutes,
		Notes:              m.Notes,
		SubtopicsStudied:   m.SubtopicsStudied,
		SubtopicsStudiedAt: m.SubtopicsStudiedAt,
	}
	return &repository.TimelineRow{
		Session:      *session.record(),
		TaskTitle:    m.TaskTitle,
		TaskCategory: m.TaskCategory,
	}
}

func utc(t time.Time) time.Time { return t.UTC() }

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func toUserModel(u *repository.User) *userModel {
	return &userModel{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    utc(u.CreatedAt),
	}
}

func (m *userModel) record() *repository.User {
	return &repository.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func toTaskModel(t *repository.Task) *taskModel {
	return &taskModel{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		CreatedAt:   utc(t.CreatedAt),
		StartedAt:   utcPtr(t.StartedAt),
		CompletedAt: utcPtr(t.CompletedAt),
		Priority:    t.Priority,
		Category:    t.Category,
	}
}

func (m *taskModel) record() *repository.Task {
	return &repository.Task{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		IsCompleted: m.IsCompleted,
		CreatedAt:   m.CreatedAt,
		StartedAt:   m.StartedAt,
		CompletedAt: m.CompletedAt,
		Priority:    m.Priority,
		Category:    m.Category,
	}
}

func toSubtopicModel(s *repository.Subtopic) *subtopicModel {
	return &subtopicModel{
		ID:           s.ID,
		TaskID:       s.TaskID,
		Title:        s.Title,
		Description:  s.Description,
		IsCompleted:  s.IsCompleted,
		CreatedAt:    utc(s.CreatedAt),
		CompletedAt:  utcPtr(s.CompletedAt),
		DisplayOrder: s.Order,
	}
}

func (m *subtopicModel) record() *repository.Subtopic {
	return &repository.Subtopic{
		ID:          m.ID,
		TaskID:      m.TaskID,
		Title:       m.Title,
		Description: m.Description,
		IsCompleted: m.IsCompleted,
		CreatedAt:   m.CreatedAt,
		CompletedAt: m.CompletedAt,
		Order:       m.DisplayOrder,
	}
}

func toSessionModel(s *repository.Session) *sessionModel {
	return &sessionModel{
		ID:                 s.ID,
		TaskID:             s.TaskID,
		StartedAt:          utc(s.StartedAt),
		EndedAt:            utcPtr(s.EndedAt),
		DurationMinutes:    s.DurationMinutes,
		Notes:              s.Notes,
		SubtopicsStudied:   s.SubtopicsStudied,
		SubtopicsStudiedAt: utcPtr(s.SubtopicsStudiedAt),
	}
}

func (m *sessionModel) record() *repository.Session {
	return &repository.Session{
		ID:                 m.ID,
		TaskID:             m.TaskID,
		StartedAt:          m.StartedAt,
		EndedAt:            m.EndedAt,
		DurationMinutes:    m.DurationMinutes,
		Notes:              m.Notes,
		SubtopicsStudied:   m.SubtopicsStudied,
		SubtopicsStudiedAt: m.SubtopicsStudiedAt,
	}
}
