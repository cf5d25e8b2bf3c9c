package httpapi

import (
	"time"

	"learning-tracker/internal/domain"
)

// credentialsRequest is the body of register and login
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type createTaskRequest struct {
	UserID      int64  `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    int    `json:"priority"`
}

type updateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    int    `json:"priority"`
	IsCompleted bool   `json:"isCompleted"`
}

type subtopicRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsCompleted bool   `json:"isCompleted"`
	Order       int    `json:"order"`
}

type endSessionRequest struct {
	Notes            string `json:"notes"`
	SubTopicsStudied string `json:"subTopicsStudied"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type taskDTO struct {
	ID               int64         `json:"id"`
	UserID           int64         `json:"userId"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	IsCompleted      bool          `json:"isCompleted"`
	CreatedAt        time.Time     `json:"createdAt"`
	StartedAt        *time.Time    `json:"startedAt"`
	CompletedAt      *time.Time    `json:"completedAt"`
	Priority         int           `json:"priority"`
	Category         string        `json:"category"`
	SubTopics        []subtopicDTO `json:"subTopics"`
	LearningSessions []sessionDTO  `json:"learningSessions"`
}

type subtopicDTO struct {
	ID          int64      `json:"id"`
	TaskItemID  int64      `json:"taskItemId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsCompleted bool       `json:"isCompleted"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Order       int        `json:"order"`
}

type sessionDTO struct {
	ID                 int64      `json:"id"`
	TaskItemID         int64      `json:"taskItemId"`
	StartedAt          time.Time  `json:"startedAt"`
	EndedAt            *time.Time `json:"endedAt"`
	DurationMinutes    int        `json:"durationMinutes"`
	Notes              string     `json:"notes"`
	SubTopicsStudied   string     `json:"subTopicsStudied"`
	SubTopicsStudiedAt *time.Time `json:"subTopicsStudiedAt"`
}

type taskRefDTO struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// timelineEntryDTO deliberately omits taskItemId; the parent travels as taskItem
type timelineEntryDTO struct {
	ID                 int64      `json:"id"`
	StartedAt          time.Time  `json:"startedAt"`
	EndedAt            *time.Time `json:"endedAt"`
	DurationMinutes    int        `json:"durationMinutes"`
	Notes              string     `json:"notes"`
	SubTopicsStudied   string     `json:"subTopicsStudied"`
	SubTopicsStudiedAt *time.Time `json:"subTopicsStudiedAt"`
	TaskItem           taskRefDTO `json:"taskItem"`
}

func toTaskDTO(t *domain.Task) taskDTO {
	return taskDTO{
		ID:               t.ID,
		UserID:           t.UserID,
		Title:            t.Title,
		Description:      t.Description,
		IsCompleted:      t.IsCompleted,
		CreatedAt:        t.CreatedAt,
		StartedAt:        t.StartedAt,
		CompletedAt:      t.CompletedAt,
		Priority:         int(t.Priority),
		Category:         t.Category,
		SubTopics:        toSubtopicDTOs(t.Subtopics),
		LearningSessions: toSessionDTOs(t.Sessions),
	}
}

func toTaskDTOs(tasks []*domain.Task) []taskDTO {
	out := make([]taskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskDTO(t))
	}
	return out
}

func toSubtopicDTO(s domain.Subtopic) subtopicDTO {
	return subtopicDTO{
		ID:          s.ID,
		TaskItemID:  s.TaskID,
		Title:       s.Title,
		Description: s.Description,
		IsCompleted: s.IsCompleted,
		CreatedAt:   s.CreatedAt,
		CompletedAt: s.CompletedAt,
		Order:       s.Order,
	}
}

func toSubtopicDTOs(subtopics []domain.Subtopic) []subtopicDTO {
	out := make([]subtopicDTO, 0, len(subtopics))
	for _, s := range subtopics {
		out = append(out, toSubtopicDTO(s))
	}
	return out
}

func toSessionDTO(s domain.Session) sessionDTO {
	return sessionDTO{
		ID:                 s.ID,
		TaskItemID:         s.TaskID,
		StartedAt:          s.StartedAt,
		EndedAt:            s.EndedAt,
		DurationMinutes:    s.DurationMinutes,
		Notes:              s.Notes,
		SubTopicsStudied:   s.SubtopicsStudied,
		SubTopicsStudiedAt: s.SubtopicsStudiedAt,
	}
}

func toSessionDTOs(sessions []domain.Session) []sessionDTO {
	out := make([]sessionDTO, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionDTO(s))
	}
	return out
}

func toTimelineDTOs(entries []domain.TimelineEntry) []timelineEntryDTO {
	out := make([]timelineEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, timelineEntryDTO{
			ID:                 e.ID,
			StartedAt:          e.StartedAt,
			EndedAt:            e.EndedAt,
			DurationMinutes:    e.DurationMinutes,
			Notes:              e.Notes,
			SubTopicsStudied:   e.SubtopicsStudied,
			SubTopicsStudiedAt: e.SubtopicsStudiedAt,
			TaskItem: taskRefDTO{
				ID:       e.Task.ID,
				Title:    e.Task.Title,
				Category: e.Task.Category,
			},
		})
	}
	return out
}
