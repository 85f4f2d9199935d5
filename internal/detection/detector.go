package detection

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ErrCascadeLoad is returned when a classifier file is missing or unreadable
var ErrCascadeLoad = errors.New("cascade could not be loaded")

// Box is an integer bounding box in frame pixels
type Box struct {
	X      int
	Y      int
	Width  int
	Height int
}

// BoxFromRect converts an image.Rectangle into a Box
func BoxFromRect(r image.Rectangle) Box {
	return Box{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Center uses integer halves, matching the drawn ellipse and circle
func (b Box) Center() image.Point {
	return image.Pt(b.X+b.Width/2, b.Y+b.Height/2)
}

// Result is the ordered sequence of boxes found in one frame
type Result []Box

// Params are the tunable detector settings
type Params struct {
	// ScaleStep is the factor between successive search window sizes
	ScaleStep float64
	// MinNeighbors is how many overlapping hits a candidate needs to be kept
	MinNeighbors int
	// MinSize is the smallest box reported
	MinSize image.Point
}

// DefaultParams returns scale step 1.10, 5 neighbors, 30x30 minimum
func DefaultParams() Params {
	return Params{
		ScaleStep:    1.1,
		MinNeighbors: 5,
		MinSize:      image.Pt(30, 30),
	}
}

func (p Params) Validate() error {
	if p.ScaleStep <= 1 {
		return fmt.Errorf("scale step must be greater than 1, got %v", p.ScaleStep)
	}
	if p.MinNeighbors < 0 {
		return fmt.Errorf("min neighbors must not be negative, got %d", p.MinNeighbors)
	}
	if p.MinSize.X <= 0 || p.MinSize.Y <= 0 {
		return fmt.Errorf("min size must be positive, got %dx%d", p.MinSize.X, p.MinSize.Y)
	}
	return nil
}

// Detector finds faces in a single-channel image
type Detector interface {
	Detect(gray gocv.Mat, params Params) (Result, error)
	Close() error
}

func validateGray(gray gocv.Mat) error {
	if gray.Empty() {
		return fmt.Errorf("empty image")
	}
	if gray.Channels() != 1 {
		return fmt.Errorf("expected single-channel image, got %d channels", gray.Channels())
	}
	return nil
}
