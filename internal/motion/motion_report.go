package motion

import (
	"time"
)

// MotionReport is the JSON document returned to clients and published to
// subscribers for one analysis.
type MotionReport struct {
	AnalysisID         string  `json:"analysis_id"`
	Filename           string  `json:"filename"`
	HasMovement        bool    `json:"has_movement"`
	MovementPercentage float64 `json:"movement_percentage"`
	Duration           float64 `json:"duration"`
	ProcessingTime     float64 `json:"processing_time"`
	Status             Status  `json:"status"`
	ErrorMessage       string  `json:"error_message,omitempty"`
	Date               string  `json:"date"`
}

func NewMotionReport(analysisID string, filename string, result Result) *MotionReport {
	return &MotionReport{
		AnalysisID:         analysisID,
		Filename:           filename,
		HasMovement:        result.HasMovement,
		MovementPercentage: result.MovementPercentage,
		Duration:           result.Duration,
		ProcessingTime:     result.ProcessingTime,
		Status:             result.Status,
		ErrorMessage:       result.ErrorMessage,
		Date:               time.Now().Format(time.RFC3339),
	}
}
