package motion

import (
	"context"
	"errors"
	"io"
	"math"

	"github.com/kmmndr/motion_analyzer/internal/frame"
	"github.com/kmmndr/motion_analyzer/internal/video"
)

// Stride is the number of frames between two samples, about two samples per
// second of video whatever the frame rate.
func Stride(fps float64) int {
	fps = video.SanitizeFps(fps)
	if fps < 2 {
		return 1
	}
	return int(math.Floor(fps / 2))
}

// Duration is 0 when the frame rate is unknown.
func Duration(frameCount int, fps float64) float64 {
	fps = video.SanitizeFps(fps)
	if fps == 0 {
		return 0
	}
	return float64(frameCount) / fps
}

// Measurement holds the counters of one pass over a video.
type Measurement struct {
	FramesRead      int
	Stride          int
	Samples         int
	MovementSamples int
	Duration        float64
}

// AnalyzedSamples is never 0, a stride longer than the video still yields one.
func (m Measurement) AnalyzedSamples() int {
	if m.Stride <= 0 {
		return 1
	}
	if n := m.FramesRead / m.Stride; n > 1 {
		return n
	}
	return 1
}

func (m Measurement) MovementPercentage() float64 {
	return float64(m.MovementSamples) / float64(m.AnalyzedSamples()) * 100
}

func (m Measurement) HasMovement() bool {
	return m.MovementPercentage() > MovementPercentageThreshold
}

// Sensor runs a single pass over one stream. It is not safe for concurrent
// use and is discarded after Measure.
type Sensor struct {
	stream         video.Source
	minContourArea int
	frameBuffer    *frame.FrameBuffer
}

func NewSensor(stream video.Source, minContourArea int) *Sensor {
	return &Sensor{
		stream:         stream,
		minContourArea: minContourArea,
		frameBuffer:    frame.NewFrameBuffer(),
	}
}

func (s *Sensor) Fps() float64 {
	return s.stream.Fps()
}

func (s *Sensor) Measure(ctx context.Context) (Measurement, error) {
	frameCount := s.stream.FrameCount()
	if frameCount == 0 {
		return Measurement{}, ErrEmptyVideo
	}

	m := Measurement{
		Stride:   Stride(s.Fps()),
		Duration: Duration(frameCount, s.Fps()),
	}

	for {
		if err := ctx.Err(); err != nil {
			return m, canceledError(err)
		}

		currentFrame, err := s.stream.Read(m.FramesRead)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return m, decodeError(err)
		}

		// The counter is 1-based, the first sample is frame number Stride.
		m.FramesRead++
		if m.FramesRead%m.Stride != 0 {
			currentFrame.Close()
			continue
		}

		processed, err := currentFrame.Processed()
		currentFrame.Close()
		if err != nil {
			return m, decodeError(err)
		}
		m.Samples++

		if s.frameBuffer.Empty() {
			s.frameBuffer.Update(processed)
			continue
		}

		if s.frameBuffer.HasMovement(processed, s.minContourArea) {
			m.MovementSamples++
		}
		s.frameBuffer.Update(processed)
	}

	return m, nil
}

func (s *Sensor) Close() {
	s.frameBuffer.Close()
}
