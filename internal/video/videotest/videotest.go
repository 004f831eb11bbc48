// Package videotest writes small synthetic videos for tests.
package videotest

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"
)

const (
	Width  = 320
	Height = 240
)

// Scene returns the bright square drawn on frame i, or an empty rectangle for
// a black frame.
type Scene func(i int) image.Rectangle

// Static draws the same square on every frame.
func Static(i int) image.Rectangle {
	return image.Rect(100, 80, 160, 140)
}

// MovingSquare moves a 60px square horizontally on frames [from, to) and
// shows a black frame otherwise.
func MovingSquare(from, to int) Scene {
	return func(i int) image.Rectangle {
		if i < from || i >= to {
			return image.Rectangle{}
		}
		x := (i - from) * 8 % (Width - 60)
		return image.Rect(x, 90, x+60, 150)
	}
}

// Write encodes frames of scene at fps into an MJPG file in a temporary
// directory and returns its path.
func Write(t *testing.T, fps float64, frames int, scene Scene) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "synthetic.avi")
	writer, err := gocv.VideoWriterFile(path, "MJPG", fps, Width, Height, true)
	if err != nil {
		t.Fatalf("VideoWriterFile failed: %v", err)
	}

	for i := 0; i < frames; i++ {
		img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), Height, Width, gocv.MatTypeCV8UC3)
		if square := scene(i); !square.Empty() {
			gocv.Rectangle(&img, square, color.RGBA{255, 255, 255, 0}, -1)
		}
		if err := writer.Write(img); err != nil {
			img.Close()
			writer.Close()
			t.Fatalf("Write failed at frame %d: %v", i, err)
		}
		img.Close()
	}
	writer.Close()

	return path
}

// Bytes reads back a video written with Write.
func Bytes(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	return data
}
