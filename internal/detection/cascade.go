package detection

import (
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"
)

// CascadeDetector uses OpenCV's Haar cascade classifier
type CascadeDetector struct {
	classifier gocv.CascadeClassifier
	path       string
}

// NewCascade loads a Haar cascade XML file such as
// haarcascade_frontalface_default.xml
func NewCascade(path string) (*CascadeDetector, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCascadeLoad, path, err)
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("%w: error reading cascade file: %s", ErrCascadeLoad, path)
	}

	return &CascadeDetector{
		classifier: classifier,
		path:       path,
	}, nil
}

func (d *CascadeDetector) Detect(gray gocv.Mat, params Params) (Result, error) {
	if err := validateGray(gray); err != nil {
		return nil, err
	}

	rects := d.classifier.DetectMultiScaleWithParams(
		gray,
		params.ScaleStep,
		params.MinNeighbors,
		0,
		params.MinSize,
		image.Point{}, // no maximum
	)

	result := make(Result, 0, len(rects))
	for _, r := range rects {
		result = append(result, BoxFromRect(r))
	}
	return result, nil
}

func (d *CascadeDetector) Close() error {
	return d.classifier.Close()
}
