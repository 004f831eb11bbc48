package motion

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/kmmndr/motion_analyzer/internal/frame"
	"github.com/kmmndr/motion_analyzer/internal/video"
	"github.com/kmmndr/motion_analyzer/internal/video/videotest"

	"gocv.io/x/gocv"
)

// fakeSource renders a videotest.Scene frame by frame without any codec.
type fakeSource struct {
	fps        float64
	frameCount int
	frames     int
	scene      videotest.Scene
	failAt     int
	failErr    error
	closed     bool
	read       int
}

func newFakeSource(fps float64, frames int, scene videotest.Scene) *fakeSource {
	return &fakeSource{fps: fps, frameCount: frames, frames: frames, scene: scene, failAt: -1}
}

func (s *fakeSource) Read(frameIndex int) (*frame.Frame, error) {
	if s.read == s.failAt {
		return nil, s.failErr
	}
	if s.read >= s.frames {
		return nil, io.EOF
	}

	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), videotest.Height, videotest.Width, gocv.MatTypeCV8UC3)
	if square := s.scene(s.read); !square.Empty() {
		gocv.Rectangle(&mat, square, color.RGBA{255, 255, 255, 0}, -1)
	}
	s.read++

	return frame.NewFrame(frameIndex, &mat)
}

func (s *fakeSource) Fps() float64 {
	return s.fps
}

func (s *fakeSource) FrameCount() int {
	return s.frameCount
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

func black(int) image.Rectangle {
	return image.Rectangle{}
}

func openerFor(src video.Source) video.Opener {
	return func(string) (video.Source, error) {
		return src, nil
	}
}

func failingOpener(string) (video.Source, error) {
	return nil, errors.New("unsupported codec")
}
