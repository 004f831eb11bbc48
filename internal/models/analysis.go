package models

import (
	"errors"
	"time"
	"unicode/utf8"
)

const (
	MaxFilenameLength = 255
	MaxErrorLength    = 500
)

var (
	ErrInvalidFilename       = errors.New("filename must be between 1 and 255 characters")
	ErrInvalidProcessingTime = errors.New("processing time must not be negative")
)

// Analysis is one stored video analysis.
type Analysis struct {
	ID               string    `json:"id" bson:"_id"`
	Filename         string    `json:"filename" bson:"filename"`
	ProcessingTime   float64   `json:"processing_time" bson:"processing_time"`
	MovementDetected bool      `json:"movement_detected" bson:"movement_detected"`
	Error            *string   `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
}

type AnalysisCreate struct {
	Filename         string
	ProcessingTime   float64
	MovementDetected bool
	Error            *string
}

// NewAnalysisCreate builds the record for an analysis. An empty errorMessage
// stores no error, a long one is truncated to MaxErrorLength runes.
func NewAnalysisCreate(filename string, processingTime float64, movementDetected bool, errorMessage string) AnalysisCreate {
	c := AnalysisCreate{
		Filename:         filename,
		ProcessingTime:   processingTime,
		MovementDetected: movementDetected,
	}
	if errorMessage != "" {
		if utf8.RuneCountInString(errorMessage) > MaxErrorLength {
			errorMessage = string([]rune(errorMessage)[:MaxErrorLength])
		}
		c.Error = &errorMessage
	}
	return c
}

func (c AnalysisCreate) Validate() error {
	if n := utf8.RuneCountInString(c.Filename); n < 1 || n > MaxFilenameLength {
		return ErrInvalidFilename
	}
	if c.ProcessingTime < 0 {
		return ErrInvalidProcessingTime
	}
	return nil
}

// AnalysisFilter restricts listings. Zero values match everything.
type AnalysisFilter struct {
	Filename         string
	MovementDetected *bool
}

func (f AnalysisFilter) Match(a Analysis) bool {
	if f.Filename != "" && a.Filename != f.Filename {
		return false
	}
	if f.MovementDetected != nil && a.MovementDetected != *f.MovementDetected {
		return false
	}
	return true
}
