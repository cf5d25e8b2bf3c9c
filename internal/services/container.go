package services

import (
	"learning-tracker/internal/auth"
	"learning-tracker/internal/config"
	"learning-tracker/internal/repository"
	"learning-tracker/internal/validation"
)

// NewServiceContainer wires every service over repo. A nil clock means SystemClock.
func NewServiceContainer(repo repository.Repository, cfg *config.Config, clock Clock) *ServiceContainer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if clock == nil {
		clock = SystemClock{}
	}

	v := validation.NewValidatorWithConfig(cfg)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	taskService := NewTaskService(repo, v, clock)
	timeService := NewTimeService(clock)

	return &ServiceContainer{
		CredentialService: NewCredentialService(repo, hasher, v, clock),
		TaskService:       taskService,
		SubtopicService:   NewSubtopicService(repo, v, clock),
		SessionService:    NewSessionService(repo, v, clock),
		TimelineService:   NewTimelineService(repo),
		TimeService:       timeService,
		ReportingService:  NewReportingService(taskService, clock),
	}
}
