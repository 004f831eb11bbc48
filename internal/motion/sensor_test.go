package motion

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/kmmndr/motion_analyzer/internal/video/videotest"
)

func TestStride(t *testing.T) {
	cases := []struct {
		fps  float64
		want int
	}{
		{0, 1},
		{-5, 1},
		{math.NaN(), 1},
		{math.Inf(1), 1},
		{1, 1},
		{2, 1},
		{3.9, 1},
		{15, 7},
		{24, 12},
		{25, 12},
		{29.97, 14},
		{30, 15},
		{60, 30},
		{120, 60},
		{1000, 500},
		{1001, 1},
		{1e300, 1},
		{math.MaxFloat64, 1},
	}
	for _, tc := range cases {
		if got := Stride(tc.fps); got != tc.want {
			t.Errorf("Stride(%v) = %d, want %d", tc.fps, got, tc.want)
		}
	}
}

func TestStrideMonotonic(t *testing.T) {
	for fps := 4.0; fps <= 240; fps += 2 {
		low, high := Stride(fps), Stride(2*fps)
		if high < low {
			t.Fatalf("Stride decreased from %d to %d between %v and %v fps", low, high, fps, 2*fps)
		}
		if high < 2*low-1 || high > 2*low+1 {
			t.Errorf("Doubling %v fps should about double the stride: %d -> %d", fps, low, high)
		}
	}
}

func TestDuration(t *testing.T) {
	if d := Duration(300, 30); math.Abs(d-10) > 1e-9 {
		t.Errorf("Expected 10s, got %v", d)
	}
	if d := Duration(300, 0); d != 0 {
		t.Errorf("Unknown fps should give 0, got %v", d)
	}
	if d := Duration(300, math.NaN()); d != 0 {
		t.Errorf("NaN fps should give 0, got %v", d)
	}
	if d := Duration(300, 1e300); d != 0 {
		t.Errorf("Absurd fps should give 0, got %v", d)
	}
}

func TestMeasurementAggregation(t *testing.T) {
	cases := []struct {
		name        string
		m           Measurement
		analyzed    int
		percentage  float64
		hasMovement bool
	}{
		{"stride longer than video", Measurement{FramesRead: 5, Stride: 15}, 1, 0, false},
		{"no frames", Measurement{Stride: 1}, 1, 0, false},
		{"exactly ten percent", Measurement{FramesRead: 100, Stride: 1, MovementSamples: 10}, 100, 10, false},
		{"above ten percent", Measurement{FramesRead: 300, Stride: 15, MovementSamples: 4}, 20, 20, true},
		{"all moving", Measurement{FramesRead: 10, Stride: 1, MovementSamples: 9}, 10, 90, true},
	}
	for _, tc := range cases {
		if got := tc.m.AnalyzedSamples(); got != tc.analyzed {
			t.Errorf("%s: analyzed %d, want %d", tc.name, got, tc.analyzed)
		}
		if got := tc.m.MovementPercentage(); math.Abs(got-tc.percentage) > 1e-9 {
			t.Errorf("%s: percentage %v, want %v", tc.name, got, tc.percentage)
		}
		if got := tc.m.HasMovement(); got != tc.hasMovement {
			t.Errorf("%s: has movement %v, want %v", tc.name, got, tc.hasMovement)
		}
		if tc.m.AnalyzedSamples() > tc.m.FramesRead && tc.m.FramesRead > 0 {
			t.Errorf("%s: analyzed samples exceed frames read", tc.name)
		}
	}
}

func TestSensorStaticScene(t *testing.T) {
	src := newFakeSource(30, 90, videotest.Static)
	sensor := NewSensor(src, 500)
	defer sensor.Close()

	m, err := sensor.Measure(context.Background())
	if err != nil {
		t.Fatalf("Measure failed: %v", err)
	}

	if m.FramesRead != 90 {
		t.Errorf("Expected 90 frames read, got %d", m.FramesRead)
	}
	if m.Stride != 15 {
		t.Errorf("Expected stride 15, got %d", m.Stride)
	}
	if m.Samples != 6 {
		t.Errorf("Expected 6 samples, got %d", m.Samples)
	}
	if m.MovementSamples != 0 || m.MovementPercentage() != 0 || m.HasMovement() {
		t.Errorf("Static scene reported movement: %+v", m)
	}
	if math.Abs(m.Duration-3) > 1e-9 {
		t.Errorf("Expected 3s, got %v", m.Duration)
	}
}

func TestSensorMovingSquare(t *testing.T) {
	src := newFakeSource(30, 300, videotest.MovingSquare(150, 200))
	sensor := NewSensor(src, 500)
	defer sensor.Close()

	m, err := sensor.Measure(context.Background())
	if err != nil {
		t.Fatalf("Measure failed: %v", err)
	}

	// Samples are frames 14, 29, ... 299. The square shows on 164, 179 and
	// 194, so the comparisons 149→164, 164→179, 179→194 and 194→209 move.
	if m.AnalyzedSamples() != 20 {
		t.Errorf("Expected 20 analyzed samples, got %d", m.AnalyzedSamples())
	}
	if m.MovementSamples != 4 {
		t.Errorf("Expected 4 movement samples, got %d", m.MovementSamples)
	}
	if !m.HasMovement() {
		t.Errorf("Expected movement, got %.2f%%", m.MovementPercentage())
	}
}

func TestSensorMinContourArea(t *testing.T) {
	src := newFakeSource(2, 10, videotest.MovingSquare(0, 10))
	sensor := NewSensor(src, 1000000)
	defer sensor.Close()

	m, err := sensor.Measure(context.Background())
	if err != nil {
		t.Fatalf("Measure failed: %v", err)
	}
	if m.MovementSamples != 0 {
		t.Errorf("No contour can exceed the frame area, got %d movement samples", m.MovementSamples)
	}
}

func TestSensorEmptyVideo(t *testing.T) {
	src := newFakeSource(30, 0, black)
	sensor := NewSensor(src, 500)
	defer sensor.Close()

	_, err := sensor.Measure(context.Background())
	if !errors.Is(err, ErrEmptyVideo) {
		t.Fatalf("Expected ErrEmptyVideo, got %v", err)
	}
	if err.Error() != "Video has no frames" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestSensorDecodeFailure(t *testing.T) {
	src := newFakeSource(30, 100, videotest.Static)
	src.failAt = 42
	src.failErr = errors.New("corrupt packet at frame 42")
	sensor := NewSensor(src, 500)
	defer sensor.Close()

	m, err := sensor.Measure(context.Background())
	if KindOf(err) != KindDecode {
		t.Fatalf("Expected decode failure, got %v", err)
	}
	if err.Error() != "corrupt packet at frame 42" {
		t.Errorf("Message should be preserved, got %q", err.Error())
	}
	if m.FramesRead != 42 {
		t.Errorf("Expected 42 frames read before failure, got %d", m.FramesRead)
	}
}

func TestSensorCanceled(t *testing.T) {
	src := newFakeSource(30, 100, videotest.Static)
	sensor := NewSensor(src, 500)
	defer sensor.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sensor.Measure(ctx)
	if KindOf(err) != KindCanceled {
		t.Fatalf("Expected canceled failure, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Canceled failure should wrap context.Canceled")
	}
	if !IsRetryable(err) {
		t.Errorf("Canceled failure should be retryable")
	}
}

func TestSensorUnknownFps(t *testing.T) {
	src := newFakeSource(0, 12, videotest.MovingSquare(0, 12))
	sensor := NewSensor(src, 500)
	defer sensor.Close()

	m, err := sensor.Measure(context.Background())
	if err != nil {
		t.Fatalf("Measure failed: %v", err)
	}
	if m.Duration != 0 {
		t.Errorf("Unknown fps should give 0 duration, got %v", m.Duration)
	}
	if m.Stride != 1 || m.Samples != 12 {
		t.Errorf("Expected every frame sampled, got stride %d samples %d", m.Stride, m.Samples)
	}
}
