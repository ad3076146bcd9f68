package scheduler

import (
	"errors"
	"fmt"
)

// Submit failures. Callers map ErrJobAlreadyActive to a sync-in-progress
// response and treat the rest as the scheduler being unavailable.
var (
	ErrSchedulerNotRunning = errors.New("sync scheduler is not running")
	ErrJobQueueFull        = errors.New("sync job queue is full")
	ErrJobAlreadyActive    = errors.New("store already has an active sync job")
)

// ErrInvalidConfig wraps every Config.Validate failure
var ErrInvalidConfig = errors.New("invalid sync scheduler configuration")

func invalidConfig(field string, value any, rule string) error {
	return fmt.Errorf("%w: %s=%v %s", ErrInvalidConfig, field, value, rule)
}
