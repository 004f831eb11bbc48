package motion

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kmmndr/motion_analyzer/internal/log"
	"github.com/kmmndr/motion_analyzer/internal/video"
)

// MotionDetector analyzes whole videos. It only holds read-only configuration
// and can serve concurrent analyses, each one gets its own temporary file and
// stream.
type MotionDetector struct {
	config  Config
	open    video.Opener
	tempDir string
}

type Option func(*MotionDetector)

// WithOpener replaces the gocv backend.
func WithOpener(open video.Opener) Option {
	return func(md *MotionDetector) {
		md.open = open
	}
}

// WithTempDir sets where uploads are written, os.TempDir by default.
func WithTempDir(dir string) Option {
	return func(md *MotionDetector) {
		md.tempDir = dir
	}
}

func NewMotionDetector(config Config, opts ...Option) *MotionDetector {
	md := &MotionDetector{
		config: config,
		open:   video.OpenVideo,
	}
	for _, opt := range opts {
		opt(md)
	}
	return md
}

// Analyze reads the whole video from r and never fails: errors are reported
// in a Result with StatusFailed. ctx bounds the decoding time.
func (md *MotionDetector) Analyze(ctx context.Context, r io.Reader) Result {
	start := time.Now()

	if r == nil {
		r = strings.NewReader("")
	}

	measurement, err := md.analyze(ctx, r)
	elapsed := time.Since(start)
	if err != nil {
		log.Log.Error(fmt.Sprintf("MotionDetector: analysis failed (%s): %v", KindOf(err), err))
		return failedResult(err, elapsed)
	}

	result := completedResult(measurement, elapsed)
	log.Log.Info(fmt.Sprintf("MotionDetector: analyzed %d frames in %.2fs, movement %.2f%%",
		measurement.FramesRead, result.ProcessingTime, result.MovementPercentage))
	return result
}

func (md *MotionDetector) analyze(ctx context.Context, r io.Reader) (m Measurement, err error) {
	input, err := NewInput(r, md.tempDir)
	if err != nil {
		return Measurement{}, err
	}
	defer func() {
		if cerr := input.Close(); cerr != nil {
			log.Log.Warning("MotionDetector: unable to remove temporary file: " + cerr.Error())
		}
	}()

	// Decoder panics are reported as decode failures.
	defer func() {
		if p := recover(); p != nil {
			err = decodeError(fmt.Errorf("unexpected decoder failure: %v", p))
		}
	}()

	return md.detect(ctx, input.Path())
}

func (md *MotionDetector) detect(ctx context.Context, videoPath string) (Measurement, error) {
	stream, err := md.open(videoPath)
	if err != nil {
		return Measurement{}, openError(err)
	}
	defer stream.Close()

	sensor := NewSensor(stream, md.config.MinContourArea)
	defer sensor.Close()

	log.Log.Debug(fmt.Sprintf("MotionDetector: fps %.2f, %d frames, stride %d",
		stream.Fps(), stream.FrameCount(), Stride(stream.Fps())))

	return sensor.Measure(ctx)
}
