package io

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"interactive-vision/internal/core"
)

// Camera is a live capture device
type Camera struct {
	capture *gocv.VideoCapture
	device  int
	logger  logrus.FieldLogger
}

// OpenCamera opens a capture device by index; 0 is usually the primary webcam
func OpenCamera(device int, logger logrus.FieldLogger) (*Camera, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("%w: device %d: %v", core.ErrSourceUnavailable, device, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("%w: device %d is not opened", core.ErrSourceUnavailable, device)
	}

	logger.WithField("device", device).Info("Camera opened")
	return &Camera{
		capture: capture,
		device:  device,
		logger:  logger,
	}, nil
}

// Read grabs the next frame; an empty read is core.ErrFrameRead
func (c *Camera) Read() (gocv.Mat, error) {
	frame := gocv.NewMat()
	if ok := c.capture.Read(&frame); !ok || frame.Empty() {
		return frame, fmt.Errorf("%w: device %d returned no frame", core.ErrFrameRead, c.device)
	}
	return frame, nil
}

func (c *Camera) Close() error {
	c.logger.WithField("device", c.device).Debug("Releasing camera")
	return c.capture.Close()
}
