package video

import (
	"fmt"
	"io"
	"math"

	"github.com/kmmndr/motion_analyzer/internal/frame"

	"gocv.io/x/gocv"
)

// MaxFps is the highest frame rate taken at face value. Containers reporting
// more are treated as having no usable frame rate.
const MaxFps = 1000

// SanitizeFps returns fps, or 0 when it is not a usable frame rate.
func SanitizeFps(fps float64) float64 {
	if math.IsNaN(fps) || math.IsInf(fps, 0) || fps < 0 || fps > MaxFps {
		return 0
	}
	return fps
}

// Stream is a Source backed by an OpenCV capture.
type Stream struct {
	Video *gocv.VideoCapture
}

func NewFileStream(videoPath string) (*Stream, error) {
	video, err := gocv.VideoCaptureFile(videoPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open video file: %v", err)
	}
	if !video.IsOpened() {
		video.Close()
		return nil, fmt.Errorf("unable to open video file: %s", videoPath)
	}
	return &Stream{Video: video}, nil
}

func (s *Stream) Read(frameIndex int) (*frame.Frame, error) {
	mat := gocv.NewMat()
	if ok := s.Video.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return nil, io.EOF
	}

	f, err := frame.NewFrame(frameIndex, &mat)
	if err != nil {
		mat.Close()
		return nil, err
	}
	return f, nil
}

func (s *Stream) Fps() float64 {
	return SanitizeFps(s.Video.Get(gocv.VideoCaptureFPS))
}

func (s *Stream) FrameCount() int {
	count := s.Video.Get(gocv.VideoCaptureFrameCount)
	if math.IsNaN(count) || count < 0 {
		return 0
	}
	return int(count)
}

func (s *Stream) TimeAtFrame(frame *frame.Frame) float64 {
	fps := s.Fps()
	if fps == 0 {
		return 0
	}
	return float64(frame.FrameIndex()) / fps
}

func (s *Stream) Close() error {
	return s.Video.Close()
}
