package services

import (
	"context"
	"time"

	"learning-tracker/internal/domain"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	taskService TaskService
	clock       Clock
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(taskService TaskService, clock Clock) ReportingService {
	return &reportingServiceImpl{
		taskService: taskService,
		clock:       clock,
	}
}

// GetTaskSummary returns a progress summary for a single task
func (r *reportingServiceImpl) GetTaskSummary(ctx context.Context, id int64) (*TaskSummary, error) {
	task, err := r.taskService.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return summarize(task), nil
}

// summarize walks the children of an aggregated task. Sessions arrive newest
// first, so the first one seen carries the latest start.
func summarize(task *domain.Task) *TaskSummary {
	summary := &TaskSummary{
		Task:           task,
		SubtopicsTotal: len(task.Subtopics),
		SessionCount:   len(task.Sessions),
		TotalMinutes:   task.TotalMinutes(),
	}

	for _, subtopic := range task.Subtopics {
		if subtopic.IsCompleted {
			summary.SubtopicsDone++
		}
	}
	if summary.SubtopicsTotal > 0 {
		summary.PercentComplete = summary.SubtopicsDone * 100 / summary.SubtopicsTotal
	} else if task.IsCompleted {
		summary.PercentComplete = 100
	}

	for i := range task.Sessions {
		session := task.Sessions[i]
		if session.IsOpen() && summary.OpenSession == nil {
			summary.OpenSession = &session
		}
		if summary.LastStudiedAt == nil || session.StartedAt.After(*summary.LastStudiedAt) {
			started := session.StartedAt
			summary.LastStudiedAt = &started
		}
	}

	return summary
}

// GetUserStatistics aggregates counts and minutes over every task of a user.
// Open sessions contribute their elapsed time so far.
func (r *reportingServiceImpl) GetUserStatistics(ctx context.Context, userID int64) (*UserStatistics, error) {
	tasks, err := r.taskService.ListTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := r.clock.Now()
	stats := &UserStatistics{
		TaskCount:  len(tasks),
		ByCategory: make(map[string]int),
	}

	for _, task := range tasks {
		switch {
		case task.IsCompleted:
			stats.CompletedCount++
		case task.StartedAt != nil:
			stats.InProgress++
		}

		minutes := 0
		for _, session := range task.Sessions {
			if session.IsOpen() {
				minutes += runningMinutes(session, now)
			} else {
				minutes += session.DurationMinutes
			}
		}
		stats.SessionCount += len(task.Sessions)
		stats.TotalMinutes += minutes
		stats.ByCategory[task.Category] += minutes
	}

	return stats, nil
}

func runningMinutes(session domain.Session, now time.Time) int {
	return domain.MinutesBetween(session.StartedAt, now)
}
