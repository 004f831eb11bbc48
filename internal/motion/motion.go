package motion

import (
	"errors"
	"math"
	"time"
)

// MovementPercentageThreshold is the share of sampled frames, in percent,
// that must contain movement for the whole video to count as moving.
const MovementPercentageThreshold = 10.0

type Config struct {
	// MovementThreshold is accepted and validated but classification does not
	// use it. Only MinContourArea and frame.DiffThreshold decide movement.
	MovementThreshold float64
	MinContourArea    int
}

func DefaultConfig() Config {
	return Config{
		MovementThreshold: 1000.0,
		MinContourArea:    500,
	}
}

func (c Config) Validate() error {
	if c.MovementThreshold <= 0 {
		return errors.New("movement threshold must be positive")
	}
	if c.MinContourArea <= 0 {
		return errors.New("min contour area must be positive")
	}
	return nil
}

type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Result is the outcome of one analysis. Numbers are rounded to two decimals.
type Result struct {
	HasMovement        bool    `json:"has_movement"`
	MovementPercentage float64 `json:"movement_percentage"`
	Duration           float64 `json:"duration"`
	ProcessingTime     float64 `json:"processing_time"`
	Status             Status  `json:"status"`
	ErrorMessage       string  `json:"error_message,omitempty"`

	// Err holds the typed failure, nil on success.
	Err error `json:"-"`
}

func (r Result) Failed() bool {
	return r.Status == StatusFailed
}

func completedResult(m Measurement, elapsed time.Duration) Result {
	return Result{
		HasMovement:        m.HasMovement(),
		MovementPercentage: round(m.MovementPercentage()),
		Duration:           round(m.Duration),
		ProcessingTime:     round(elapsed.Seconds()),
		Status:             StatusCompleted,
	}
}

func failedResult(err error, elapsed time.Duration) Result {
	return Result{
		ProcessingTime: round(elapsed.Seconds()),
		Status:         StatusFailed,
		ErrorMessage:   err.Error(),
		Err:            err,
	}
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
