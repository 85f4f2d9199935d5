// Display surfaces for the interactive pipeline
package display

import (
	"image"
	"time"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"interactive-vision/internal/core"
)

// Window shows frames in a native OpenCV HighGUI window
type Window struct {
	win    *gocv.Window
	size   image.Point
	logger logrus.FieldLogger
}

// NewWindow returns a HighGUI surface. A non-zero size resizes the window
// once it is created.
func NewWindow(size image.Point, logger logrus.FieldLogger) *Window {
	return &Window{
		size:   size,
		logger: logger,
	}
}

func (w *Window) Show(window string, frame gocv.Mat) error {
	if w.win == nil {
		w.win = gocv.NewWindow(window)
		if w.size.X > 0 && w.size.Y > 0 {
			w.win.ResizeWindow(w.size.X, w.size.Y)
		}
		w.logger.WithFields(logrus.Fields{
			"window": window,
			"width":  w.size.X,
			"height": w.size.Y,
		}).Debug("HighGUI window created")
	}
	w.win.IMShow(frame)
	return nil
}

func (w *Window) WaitKey(timeout time.Duration) (core.Key, bool) {
	// WaitKey without a window returns immediately
	if w.win == nil {
		return 0, false
	}
	return keyFromCode(w.win.WaitKey(delayMillis(timeout)))
}

func (w *Window) Close() error {
	if w.win == nil {
		return nil
	}
	err := w.win.Close()
	w.win = nil
	return err
}

// delayMillis converts a poll timeout to the HighGUI convention where 0
// blocks until a key arrives
func delayMillis(timeout time.Duration) int {
	if timeout <= 0 {
		return 0
	}
	ms := int(timeout / time.Millisecond)
	if ms < 1 {
		return 1
	}
	return ms
}

func keyFromCode(code int) (core.Key, bool) {
	if code < 0 {
		return 0, false
	}
	return core.Key(code & 0xFF), true
}
