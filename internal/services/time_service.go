package services

import (
	"fmt"
	"time"
)

// timeServiceImpl implements the TimeService interface
type timeServiceImpl struct {
	clock Clock
}

// NewTimeService creates a new TimeService instance
func NewTimeService(clock Clock) TimeService {
	return &timeServiceImpl{clock: clock}
}

// FormatDuration formats a duration into human-readable string
func (t *timeServiceImpl) FormatDuration(duration time.Duration) string {
	if duration < 0 {
		return "0m"
	}

	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatMinutes formats a stored session duration
func (t *timeServiceImpl) FormatMinutes(minutes int) string {
	return t.FormatDuration(time.Duration(minutes) * time.Minute)
}

// CalculateRunningDuration describes how long an open session has been going
func (t *timeServiceImpl) CalculateRunningDuration(startTime time.Time) string {
	elapsed := t.clock.Now().Sub(startTime)
	return fmt.Sprintf("running for %s", t.FormatDuration(elapsed))
}
