package domain

import (
	"math"
	"time"
)

// Session is a timed study interval against a task. A session is open until
// it has an end time.
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

// NewSession opens a session on taskID at now.
func NewSession(taskID int64, now time.Time) Session {
	return Session{
		TaskID:    taskID,
		StartedAt: now,
	}
}

// IsOpen returns true if the session has not been ended.
func (s Session) IsOpen() bool {
	return s.EndedAt == nil
}

// End closes the session. studied is stored verbatim; its timestamp is only
// recorded when something was studied.
func (s Session) End(now time.Time, notes, studied string) Session {
	s.EndedAt = &now
	s.DurationMinutes = MinutesBetween(s.StartedAt, now)
	s.Notes = notes
	s.SubtopicsStudied = studied
	if studied != "" {
		s.SubtopicsStudiedAt = &now
	} else {
		s.SubtopicsStudiedAt = nil
	}
	return s
}

// Duration returns the session length, or the time elapsed up to now while open.
func (s Session) Duration(now time.Time) time.Duration {
	if s.EndedAt == nil {
		return now.Sub(s.StartedAt)
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// MinutesBetween rounds the elapsed time to whole minutes, half away from
// zero. A clock that went backwards yields 0.
func MinutesBetween(start, end time.Time) int {
	minutes := math.Round(end.Sub(start).Minutes())
	if minutes < 0 {
		return 0
	}
	return int(minutes)
}
