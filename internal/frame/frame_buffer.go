package frame

import (
	"image"

	"gocv.io/x/gocv"
)

const (
	// DiffThreshold is the per pixel intensity delta above which a pixel
	// counts as changed.
	DiffThreshold = 25
	// DilateIterations merges fragmented motion blobs before contours are
	// extracted.
	DilateIterations = 2
)

// FrameBuffer keeps the previous processed frame and compares every new
// processed frame against it. The reference always rolls forward, so each
// comparison is previous versus current.
type FrameBuffer struct {
	previous *Frame
	kernel   gocv.Mat
}

func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{
		kernel: gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3)),
	}
}

func (fb *FrameBuffer) Empty() bool {
	return fb.previous == nil
}

// Update makes currentFrame the new reference. The buffer takes ownership of
// the frame and closes the reference it replaces.
func (fb *FrameBuffer) Update(currentFrame *Frame) {
	if fb.previous != nil {
		fb.previous.Close()
	}
	fb.previous = currentFrame
}

// MovementMask returns the dilated binary difference between the reference
// and currentFrame. The caller owns the returned Mat.
func (fb *FrameBuffer) MovementMask(currentFrame *Frame) gocv.Mat {
	mask := gocv.NewMat()
	if fb.previous == nil {
		return mask
	}

	gocv.AbsDiff(*fb.previous.mat, *currentFrame.mat, &mask)
	gocv.Threshold(mask, &mask, DiffThreshold, 255, gocv.ThresholdBinary)
	for i := 0; i < DilateIterations; i++ {
		gocv.Dilate(mask, &mask, fb.kernel)
	}

	return mask
}

// ContourAreas returns the area of every external contour found in the
// movement mask of currentFrame.
func (fb *FrameBuffer) ContourAreas(currentFrame *Frame) []float64 {
	if fb.previous == nil {
		return nil
	}

	mask := fb.MovementMask(currentFrame)
	defer mask.Close()

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	areas := make([]float64, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		areas = append(areas, gocv.ContourArea(contours.At(i)))
	}

	return areas
}

// HasMovement reports whether any contour of the movement mask is larger than
// minContourArea.
func (fb *FrameBuffer) HasMovement(currentFrame *Frame, minContourArea int) bool {
	for _, area := range fb.ContourAreas(currentFrame) {
		if area > float64(minContourArea) {
			return true
		}
	}

	return false
}

func (fb *FrameBuffer) Close() {
	if fb.previous != nil {
		fb.previous.Close()
		fb.previous = nil
	}
	fb.kernel.Close()
}
