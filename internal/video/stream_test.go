package video

import (
	"errors"
	"io"
	"math"
	"path/filepath"
	"testing"

	"github.com/kmmndr/motion_analyzer/internal/video/videotest"
)

func TestFileStreamProperties(t *testing.T) {
	path := videotest.Write(t, 10, 25, videotest.Static)

	stream, err := NewFileStream(path)
	if err != nil {
		t.Fatalf("NewFileStream failed: %v", err)
	}
	defer stream.Close()

	if math.Abs(stream.Fps()-10) > 0.01 {
		t.Errorf("Expected 10 fps, got %.2f", stream.Fps())
	}
	if stream.FrameCount() != 25 {
		t.Errorf("Expected 25 frames, got %d", stream.FrameCount())
	}

	read := 0
	for {
		f, err := stream.Read(read)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if f.FrameIndex() != read {
			t.Errorf("Expected frame index %d, got %d", read, f.FrameIndex())
		}
		if read == 10 {
			if at := stream.TimeAtFrame(f); math.Abs(at-1.0) > 0.01 {
				t.Errorf("Expected frame 10 at 1s, got %.2f", at)
			}
		}
		f.Close()
		read++
	}

	if read != 25 {
		t.Errorf("Expected to read 25 frames, got %d", read)
	}
}

func TestOpenVideoMissingFile(t *testing.T) {
	if _, err := OpenVideo(filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Fatal("Expected an error for a missing file")
	}
}

func TestSanitizeFps(t *testing.T) {
	cases := []struct {
		fps  float64
		want float64
	}{
		{30, 30},
		{29.97, 29.97},
		{MaxFps, MaxFps},
		{0, 0},
		{-1, 0},
		{MaxFps + 1, 0},
		{1e300, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tc := range cases {
		if got := SanitizeFps(tc.fps); got != tc.want {
			t.Errorf("SanitizeFps(%v) = %v, want %v", tc.fps, got, tc.want)
		}
	}
}
