package services

import (
	"context"
	"strings"

	"learning-tracker/internal/domain"
	"learning-tracker/internal/errors"
	"learning-tracker/internal/repository"
	"learning-tracker/internal/validation"
)

// subtopicServiceImpl implements the SubtopicService interface
type subtopicServiceImpl struct {
	repo      repository.Repository
	mapper    *domain.Mapper
	validator *validation.SubtopicValidator
	ids       *validation.TaskValidator
	clock     Clock
}

// NewSubtopicService creates a new SubtopicService instance
func NewSubtopicService(repo repository.Repository, v *validation.Validator, clock Clock) SubtopicService {
	return &subtopicServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewSubtopicValidator(v),
		ids:       validation.NewTaskValidator(v),
		clock:     clock,
	}
}

func (s *subtopicServiceImpl) requireTask(ctx context.Context, taskID int64) error {
	if err := s.ids.ValidateTaskID(taskID); err != nil {
		return errors.NewValidationError("invalid task ID", err)
	}
	_, err := s.repo.GetTask(ctx, taskID)
	return err
}

func validSubtopicID(id int64) error {
	if id <= 0 {
		return errors.NewInvalidInputError("subtopic_id", id, "must be a positive integer")
	}
	return nil
}

// ListSubtopics returns a task's subtopics by ascending order, then id
func (s *subtopicServiceImpl) ListSubtopics(ctx context.Context, taskID int64) ([]domain.Subtopic, error) {
	if err := s.requireTask(ctx, taskID); err != nil {
		return nil, err
	}

	dbSubtopics, err := s.repo.ListSubtopicsByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return s.mapper.Subtopic.FromDatabaseSlice(dbSubtopics), nil
}

// GetSubtopic retrieves a subtopic by its ID
func (s *subtopicServiceImpl) GetSubtopic(ctx context.Context, id int64) (*domain.Subtopic, error) {
	if err := validSubtopicID(id); err != nil {
		return nil, err
	}

	dbSubtopic, err := s.repo.GetSubtopic(ctx, id)
	if err != nil {
		return nil, err
	}
	subtopic := s.mapper.Subtopic.FromDatabase(*dbSubtopic)
	return &subtopic, nil
}

// AddSubtopic appends an incomplete subtopic to an existing task
func (s *subtopicServiceImpl) AddSubtopic(ctx context.Context, taskID int64, input SubtopicInput) (*domain.Subtopic, error) {
	if err := s.validator.ValidateSubtopicInput(input.Title, input.Description, input.Order); err != nil {
		return nil, errors.NewValidationError("invalid subtopic", err)
	}
	if err := s.requireTask(ctx, taskID); err != nil {
		return nil, err
	}

	subtopic := domain.NewSubtopic(taskID, strings.TrimSpace(input.Title), input.Description, input.Order, s.clock.Now())
	dbSubtopic := s.mapper.Subtopic.ToDatabase(subtopic)
	if err := s.repo.CreateSubtopic(ctx, &dbSubtopic); err != nil {
		return nil, err
	}

	created := s.mapper.Subtopic.FromDatabase(dbSubtopic)
	return &created, nil
}

// UpdateSubtopic overwrites every field, keeping completedAt consistent
// with the completion flag
func (s *subtopicServiceImpl) UpdateSubtopic(ctx context.Context, id int64, input SubtopicInput) (*domain.Subtopic, error) {
	if err := validSubtopicID(id); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateSubtopicInput(input.Title, input.Description, input.Order); err != nil {
		return nil, errors.NewValidationError("invalid subtopic", err)
	}

	current, err := s.GetSubtopic(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Title = strings.TrimSpace(input.Title)
	updated.Description = input.Description
	updated.Order = input.Order
	updated = updated.SetCompleted(input.IsCompleted, s.clock.Now())

	dbSubtopic := s.mapper.Subtopic.ToDatabase(updated)
	if err := s.repo.UpdateSubtopic(ctx, &dbSubtopic); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteSubtopic removes a subtopic
func (s *subtopicServiceImpl) DeleteSubtopic(ctx context.Context, id int64) error {
	if err := validSubtopicID(id); err != nil {
		return err
	}
	return s.repo.DeleteSubtopic(ctx, id)
}
