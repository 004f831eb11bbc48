package video

import (
	"github.com/kmmndr/motion_analyzer/internal/frame"
)

// Source is a decoded video opened for sequential reading.
type Source interface {
	// Read decodes the next frame. It returns io.EOF once the stream is
	// exhausted. The caller owns the returned frame.
	Read(frameIndex int) (*frame.Frame, error)
	// Fps may be 0 when the container does not report a usable frame rate.
	Fps() float64
	FrameCount() int
	Close() error
}

// Opener opens a Source from a file on disk. Each backend provides one.
type Opener func(videoPath string) (Source, error)

// OpenVideo opens videoPath with the default gocv backend.
func OpenVideo(videoPath string) (Source, error) {
	return NewFileStream(videoPath)
}
