// Image loading and static frame sources
package io

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"interactive-vision/internal/core"
)

var supportedFormats = []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp"}

// ImageLoader handles image file operations
type ImageLoader struct {
	logger logrus.FieldLogger
}

func NewImageLoader(logger logrus.FieldLogger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// LoadImage decodes a color image. Any failure wraps core.ErrSourceUnavailable.
func (il *ImageLoader) LoadImage(path string) (gocv.Mat, error) {
	il.logger.WithField("filepath", path).Debug("Loading image")

	if !IsSupportedImageFormat(path) {
		return gocv.NewMat(), fmt.Errorf("%w: unsupported image format: %s", core.ErrSourceUnavailable, path)
	}

	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), fmt.Errorf("%w: failed to load image: %s", core.ErrSourceUnavailable, path)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Image loaded successfully")

	return mat, nil
}

// OpenStatic loads path as a FrameSource that repeats the same image
func (il *ImageLoader) OpenStatic(path string) (*StaticImage, error) {
	mat, err := il.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return NewStaticImage(mat), nil
}

// IsSupportedImageFormat checks the file extension only
func IsSupportedImageFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}

// StaticImage always yields a copy of the same frame
type StaticImage struct {
	mat gocv.Mat
}

// NewStaticImage takes ownership of mat
func NewStaticImage(mat gocv.Mat) *StaticImage {
	return &StaticImage{mat: mat}
}

func (s *StaticImage) Read() (gocv.Mat, error) {
	if s.mat.Empty() {
		return gocv.NewMat(), fmt.Errorf("%w: static image is empty", core.ErrFrameRead)
	}
	return s.mat.Clone(), nil
}

func (s *StaticImage) Close() error {
	return s.mat.Close()
}
