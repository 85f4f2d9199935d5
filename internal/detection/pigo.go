package detection

import (
	"fmt"
	"os"

	pigo "github.com/esimov/pigo/core"
	"gocv.io/x/gocv"
)

const (
	pigoShiftFactor  = 0.1
	pigoIoUThreshold = 0.2
)

// PigoDetector is a pure-Go cascade detector. Params.MinNeighbors has no
// pigo equivalent; MinQuality filters clustered detections instead.
type PigoDetector struct {
	classifier *pigo.Pigo
	minQuality float32
	angle      float64
}

// LoadPigo reads a pigo "facefinder" cascade from disk
func LoadPigo(path string, minQuality float32) (*PigoDetector, error) {
	cascade, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCascadeLoad, path, err)
	}
	return NewPigo(cascade, minQuality)
}

func NewPigo(cascade []byte, minQuality float32) (*PigoDetector, error) {
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("%w: error unpacking the cascade file: %v", ErrCascadeLoad, err)
	}
	return &PigoDetector{
		classifier: classifier,
		minQuality: minQuality,
	}, nil
}

func (d *PigoDetector) Detect(gray gocv.Mat, params Params) (Result, error) {
	if err := validateGray(gray); err != nil {
		return nil, err
	}

	rows, cols := gray.Rows(), gray.Cols()
	cParams := pigo.CascadeParams{
		MinSize:     max(params.MinSize.X, params.MinSize.Y),
		MaxSize:     max(rows, cols),
		ShiftFactor: pigoShiftFactor,
		ScaleFactor: params.ScaleStep,
		ImageParams: pigo.ImageParams{
			Pixels: gray.ToBytes(),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := d.classifier.RunCascade(cParams, d.angle)
	dets = d.classifier.ClusterDetections(dets, pigoIoUThreshold)

	result := make(Result, 0, len(dets))
	for _, det := range dets {
		if det.Q < d.minQuality {
			continue
		}
		result = append(result, boxFromDetection(det))
	}
	return result, nil
}

func (d *PigoDetector) Close() error {
	return nil
}

// boxFromDetection converts pigo's center/scale form into a Box
func boxFromDetection(det pigo.Detection) Box {
	return Box{
		X:      det.Col - det.Scale/2,
		Y:      det.Row - det.Scale/2,
		Width:  det.Scale,
		Height: det.Scale,
	}
}
