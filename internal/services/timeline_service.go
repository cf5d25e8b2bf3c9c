package services

import (
	"context"

	"learning-tracker/internal/domain"
	"learning-tracker/internal/errors"
	"learning-tracker/internal/repository"
)

// timelineServiceImpl implements the TimelineService interface
type timelineServiceImpl struct {
	repo   repository.Repository
	mapper *domain.Mapper
}

// NewTimelineService creates a new TimelineService instance
func NewTimelineService(repo repository.Repository) TimelineService {
	return &timelineServiceImpl{
		repo:   repo,
		mapper: domain.NewMapper(),
	}
}

// GetTimeline returns every session across the user's tasks, newest start
// first. An unknown user simply has an empty timeline.
func (t *timelineServiceImpl) GetTimeline(ctx context.Context, userID int64) ([]domain.TimelineEntry, error) {
	if userID <= 0 {
		return nil, errors.NewInvalidInputError("user_id", userID, "must be a positive integer")
	}

	rows, err := t.repo.ListTimeline(ctx, userID)
	if err != nil {
		return nil, err
	}
	return t.mapper.Session.FromTimelineRows(rows), nil
}
