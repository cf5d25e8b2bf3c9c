package services

import (
	"context"
	"fmt"

	"learning-tracker/internal/domain"
	"learning-tracker/internal/errors"
	"learning-tracker/internal/repository"
	"learning-tracker/internal/validation"
)

// sessionServiceImpl implements the SessionService interface
type sessionServiceImpl struct {
	repo      repository.Repository
	mapper    *domain.Mapper
	validator *validation.SessionValidator
	ids       *validation.TaskValidator
	clock     Clock
}

// NewSessionService creates a new SessionService instance
func NewSessionService(repo repository.Repository, v *validation.Validator, clock Clock) SessionService {
	return &sessionServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewSessionValidator(v),
		ids:       validation.NewTaskValidator(v),
		clock:     clock,
	}
}

func validSessionID(id int64) error {
	if id <= 0 {
		return errors.NewInvalidInputError("session_id", id, "must be a positive integer")
	}
	return nil
}

func (s *sessionServiceImpl) listForTask(ctx context.Context, taskID int64) ([]domain.Session, error) {
	if err := s.ids.ValidateTaskID(taskID); err != nil {
		return nil, errors.NewValidationError("invalid task ID", err)
	}
	if _, err := s.repo.GetTask(ctx, taskID); err != nil {
		return nil, err
	}

	dbSessions, err := s.repo.ListSessionsByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return s.mapper.Session.FromDatabaseSlice(dbSessions), nil
}

// StartSession opens a session on the task. A task holds at most one open
// session; the storage index rejects a start that races past the check.
func (s *sessionServiceImpl) StartSession(ctx context.Context, taskID int64) (*domain.Session, error) {
	existing, err := s.listForTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	for _, session := range existing {
		if session.IsOpen() {
			return nil, errors.NewInvalidStateError("task", fmt.Sprint(taskID),
				fmt.Sprintf("session %d is still open", session.ID))
		}
	}

	session := domain.NewSession(taskID, s.clock.Now())
	dbSession := s.mapper.Session.ToDatabase(session)
	if err := s.repo.CreateSession(ctx, &dbSession); err != nil {
		return nil, err
	}

	created := s.mapper.Session.FromDatabase(dbSession)
	return &created, nil
}

// EndSession closes an open session and records what was studied
func (s *sessionServiceImpl) EndSession(ctx context.Context, id int64, notes, subtopicsStudied string) (*domain.Session, error) {
	if err := validSessionID(id); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateSessionEnd(notes, subtopicsStudied); err != nil {
		return nil, errors.NewValidationError("invalid session notes", err)
	}

	current, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.IsOpen() {
		return nil, errors.NewInvalidStateError("session", fmt.Sprint(id), "already ended")
	}

	ended := current.End(s.clock.Now(), notes, subtopicsStudied)
	dbSession := s.mapper.Session.ToDatabase(ended)
	if err := s.repo.UpdateSession(ctx, &dbSession); err != nil {
		return nil, err
	}
	return &ended, nil
}

// ListSessions returns the task's sessions, most recent start first
func (s *sessionServiceImpl) ListSessions(ctx context.Context, taskID int64) ([]domain.Session, error) {
	return s.listForTask(ctx, taskID)
}

// GetSession retrieves a session by its ID
func (s *sessionServiceImpl) GetSession(ctx context.Context, id int64) (*domain.Session, error) {
	if err := validSessionID(id); err != nil {
		return nil, err
	}

	dbSession, err := s.repo.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	session := s.mapper.Session.FromDatabase(*dbSession)
	return &session, nil
}

// DeleteSession removes a session, open or closed
func (s *sessionServiceImpl) DeleteSession(ctx context.Context, id int64) error {
	if err := validSessionID(id); err != nil {
		return err
	}
	return s.repo.DeleteSession(ctx, id)
}
