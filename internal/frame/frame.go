package frame

import (
	"errors"
	"image"

	"gocv.io/x/gocv"
)

// BlurKernelSize is the side of the Gaussian kernel applied to every sampled
// frame before it is compared. Heavy smoothing hides sensor noise and
// compression artifacts.
const BlurKernelSize = 21

var ErrEmptyFrame = errors.New("Frame is empty")

type Frame struct {
	frameIndex int
	mat        *gocv.Mat
}

func NewFrame(frameIndex int, mat *gocv.Mat) (*Frame, error) {
	if mat == nil || mat.Empty() {
		return nil, ErrEmptyFrame
	}

	return &Frame{frameIndex: frameIndex, mat: mat}, nil
}

func (f *Frame) Mat() *gocv.Mat {
	return f.mat
}

func (f *Frame) FrameIndex() int {
	return f.frameIndex
}

// Gray returns a single channel copy of the frame. Frames that are already
// single channel are cloned as is.
func (f *Frame) Gray() (*Frame, error) {
	gray := gocv.NewMat()
	if f.mat.Channels() == 1 {
		f.mat.CopyTo(&gray)
	} else {
		gocv.CvtColor(*f.mat, &gray, gocv.ColorBGRToGray)
	}

	return NewFrame(f.frameIndex, &gray)
}

// Processed converts the frame to grayscale and blurs it with a
// BlurKernelSize square kernel, sigma derived from the kernel size.
func (f *Frame) Processed() (*Frame, error) {
	gray, err := f.Gray()
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	blurred := gocv.NewMat()
	gocv.GaussianBlur(*gray.mat, &blurred, image.Pt(BlurKernelSize, BlurKernelSize), 0, 0, gocv.BorderDefault)

	return NewFrame(f.frameIndex, &blurred)
}

func (f *Frame) Height() int {
	return f.mat.Rows()
}

func (f *Frame) Width() int {
	return f.mat.Cols()
}

func (f *Frame) Pixels() int {
	return f.Height() * f.Width()
}

func (f *Frame) Close() {
	f.mat.Close()
}
