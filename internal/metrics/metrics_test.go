package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kmmndr/motion_analyzer/internal/motion"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecord(t *testing.T) {
	m := NewMetrics()

	m.Record(motion.Result{Status: motion.StatusCompleted, HasMovement: true, Duration: 10, ProcessingTime: 1.5})
	m.Record(motion.Result{Status: motion.StatusCompleted, Duration: 4, ProcessingTime: 0.2})
	m.Record(motion.Result{Status: motion.StatusFailed, ErrorMessage: "Video has no frames"})

	if got := testutil.ToFloat64(m.videoProcessed.WithLabelValues("completed")); got != 2 {
		t.Errorf("Expected 2 completed, got %v", got)
	}
	if got := testutil.ToFloat64(m.videoProcessed.WithLabelValues("failed")); got != 1 {
		t.Errorf("Expected 1 failed, got %v", got)
	}
	if got := testutil.ToFloat64(m.movementDetected); got != 1 {
		t.Errorf("Expected 1 movement, got %v", got)
	}
	if got := testutil.CollectAndCount(m.processingTime); got != 1 {
		t.Errorf("Expected one processing time histogram, got %d", got)
	}
}

func TestBeginEnd(t *testing.T) {
	m := NewMetrics()

	m.Begin()
	m.Begin()
	if got := testutil.ToFloat64(m.activeRequests); got != 2 {
		t.Errorf("Expected 2 active requests, got %v", got)
	}
	m.End()
	if got := testutil.ToFloat64(m.activeRequests); got != 1 {
		t.Errorf("Expected 1 active request, got %v", got)
	}
}

func TestHandler(t *testing.T) {
	m := NewMetrics()
	m.Record(motion.Result{Status: motion.StatusCompleted, Duration: 3, ProcessingTime: 0.3})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, name := range []string{
		`video_processed_total{status="completed"} 1`,
		"video_processing_time_seconds_bucket",
		"video_duration_seconds_count 1",
		"active_requests 0",
	} {
		if !strings.Contains(string(body), name) {
			t.Errorf("Expected %q in exposition", name)
		}
	}
}
