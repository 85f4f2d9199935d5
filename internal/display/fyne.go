package display

import (
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"interactive-vision/internal/core"
)

const keyBuffer = 16

// Fyne shows frames in a fyne window. The fyne event loop must own the
// main goroutine, so the pipeline is driven from Run.
type Fyne struct {
	app    fyne.App
	window fyne.Window
	image  *canvas.Image
	keys   chan core.Key
	quit   core.Key
	logger logrus.FieldLogger

	closed    atomic.Bool
	closeOnce sync.Once
}

// NewFyne creates the window; closing it by hand sends quit to the pipeline
func NewFyne(a fyne.App, title string, size image.Point, quit core.Key, logger logrus.FieldLogger) *Fyne {
	if size.X <= 0 || size.Y <= 0 {
		size = image.Pt(960, 540)
	}

	f := &Fyne{
		app:    a,
		window: a.NewWindow(title),
		keys:   make(chan core.Key, keyBuffer),
		quit:   quit,
		logger: logger,
	}

	f.image = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	f.image.FillMode = canvas.ImageFillContain
	f.window.SetContent(f.image)
	f.window.Resize(fyne.NewSize(float32(size.X), float32(size.Y)))

	f.window.Canvas().SetOnTypedRune(func(r rune) {
		f.push(core.Key(r))
	})
	f.window.SetOnClosed(func() {
		f.closed.Store(true)
		f.push(f.quit)
	})

	return f
}

// Run shows the window, runs pipeline on its own goroutine and blocks in
// the fyne event loop until the pipeline returns or the window is closed.
func (f *Fyne) Run(pipeline func() error) error {
	done := make(chan error, 1)

	f.window.Show()
	go func() {
		done <- pipeline()
		fyne.Do(f.app.Quit)
	}()

	f.app.Run()
	return <-done
}

func (f *Fyne) Show(window string, frame gocv.Mat) error {
	if f.closed.Load() {
		return nil
	}

	img, err := frame.ToImage()
	if err != nil {
		return fmt.Errorf("convert frame: %w", err)
	}

	fyne.Do(func() {
		if f.window.Title() != window {
			f.window.SetTitle(window)
		}
		f.image.Image = img
		f.image.Refresh()
	})
	return nil
}

func (f *Fyne) WaitKey(timeout time.Duration) (core.Key, bool) {
	if timeout <= 0 {
		return <-f.keys, true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case key := <-f.keys:
		return key, true
	case <-timer.C:
		return 0, false
	}
}

func (f *Fyne) Close() error {
	f.closeOnce.Do(func() {
		if f.closed.Swap(true) {
			return
		}
		fyne.Do(f.window.Close)
	})
	return nil
}

func (f *Fyne) push(key core.Key) {
	select {
	case f.keys <- key:
	default:
		f.logger.WithField("key", string(rune(key))).Debug("Key buffer full, dropping key")
	}
}
