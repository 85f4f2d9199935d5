// Wiring of the face tracking and live filter programs
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"interactive-vision/internal/algorithms"
	"interactive-vision/internal/config"
	"interactive-vision/internal/core"
	"interactive-vision/internal/detection"
	"interactive-vision/internal/display"
	vio "interactive-vision/internal/io"
	"interactive-vision/internal/metrics"
	"interactive-vision/internal/overlay"
)

const (
	AppID      = "com.interactive-vision"
	AppVersion = "1.0.0"

	// QuitKey ends every variant
	QuitKey core.Key = 'q'
)

// Console messages
const (
	MsgWebcamStarted  = "Webcam started. Press 'q' to quit the application."
	MsgWebcamFailed   = "Error: Could not open webcam."
	MsgImageNotFound  = "Error: Image not found"
	MsgCaptureFailed  = "Error: Failed to capture image"
	MsgCascadeFailed  = "Error: Could not load face cascade"
	MsgInvalidKey     = "Invalid key! Please use r, g, b, s, c, y or q"
	MsgFilterKeysHelp = `Press the following keys to apply filters:
 r : Red Tint
 g : Green Tint
 b : Blue Tint
 s : Sepia
 c : Canny Edge Detection
 y : Gray
 o : Original
 q : Quit`
)

// Tracking polls for a key every frame; filters block until one arrives
const (
	trackingWait = time.Millisecond
	filtersWait  = 0
)

// App runs one configured variant to completion
type App struct {
	cfg    *config.Config
	logger logrus.FieldLogger
	out    io.Writer
	stats  *metrics.FrameStats
}

func New(cfg *config.Config, logger logrus.FieldLogger) *App {
	return &App{
		cfg:    cfg,
		logger: logger.WithField("program", cfg.Variant.String()),
		out:    os.Stdout,
		stats:  metrics.NewFrameStats(),
	}
}

// Run opens the configured display and drives the pipeline until quit.
// Fatal errors are reported on the console before being returned.
func (a *App) Run() error {
	a.logger.WithFields(logrus.Fields{
		"version": AppVersion,
		"display": a.cfg.Display,
	}).Info("Starting")

	if a.cfg.Display == config.DisplayFyne {
		f := display.NewFyne(fyneapp.NewWithID(AppID), a.cfg.Window, a.cfg.WindowSize, QuitKey, a.logger)
		return f.Run(func() error {
			return a.run(f)
		})
	}
	return a.run(display.NewWindow(a.cfg.WindowSize, a.logger))
}

func (a *App) run(disp core.Display) error {
	err := a.runPipeline(disp)
	if err != nil {
		a.report(err)
	}
	return err
}

func (a *App) runPipeline(disp core.Display) error {
	var (
		opts    core.Options
		cleanup func()
		err     error
	)
	if a.cfg.Variant.Tracking() {
		opts, cleanup, err = a.trackingOptions()
	} else {
		opts, err = a.filterOptions()
	}
	if err != nil {
		if cerr := disp.Close(); cerr != nil {
			a.logger.WithError(cerr).Warn("Failed to close display")
		}
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	opts.Display = disp
	opts.Window = a.cfg.Window
	opts.Logger = a.logger
	opts.Stats = a.stats

	pipeline, err := core.New(opts)
	if err != nil {
		if cerr := disp.Close(); cerr != nil {
			a.logger.WithError(cerr).Warn("Failed to close display")
		}
		return err
	}
	return pipeline.Run()
}

func (a *App) trackingOptions() (core.Options, func(), error) {
	style, err := a.cfg.Style()
	if err != nil {
		return core.Options{}, nil, err
	}

	detector, err := a.newDetector()
	if err != nil {
		return core.Options{}, nil, err
	}
	cleanup := func() {
		if err := detector.Close(); err != nil {
			a.logger.WithError(err).Warn("Failed to release detector")
		}
	}

	transform := DetectTransform(detector, a.cfg.DetectionParams(), overlay.NewAnnotator(style), a.stats)
	opts := core.Options{
		Open: func() (core.FrameSource, error) {
			camera, err := vio.OpenCamera(a.cfg.Device, a.logger)
			if err != nil {
				return nil, err
			}
			return camera, nil
		},
		InitialMode: core.ModeDetect,
		Transforms:  core.TransformTable{core.ModeDetect: transform},
		Bindings:    TrackingBindings(),
		Wait:        trackingWait,
		OnStart: func() {
			fmt.Fprintln(a.out, MsgWebcamStarted)
		},
	}
	return opts, cleanup, nil
}

func (a *App) filterOptions() (core.Options, error) {
	loader := vio.NewImageLoader(a.logger)
	return core.Options{
		Open: func() (core.FrameSource, error) {
			static, err := loader.OpenStatic(a.cfg.Image)
			if err != nil {
				return nil, err
			}
			return static, nil
		},
		InitialMode: core.ModeOriginal,
		Transforms:  algorithms.Table(),
		Bindings:    FilterBindings(),
		Wait:        filtersWait,
		OnStart: func() {
			fmt.Fprintln(a.out, MsgFilterKeysHelp)
		},
		OnUnboundKey: func(core.Key) {
			fmt.Fprintln(a.out, MsgInvalidKey)
		},
	}, nil
}

func (a *App) newDetector() (detection.Detector, error) {
	switch a.cfg.Detector {
	case config.DetectorPigo:
		a.logger.WithField("cascade", a.cfg.PigoCascade).Info("Loading pigo face detector")
		return detection.LoadPigo(a.cfg.PigoCascade, float32(a.cfg.PigoMinQuality))
	default:
		a.logger.WithField("cascade", a.cfg.Cascade).Info("Loading haar face detector")
		return detection.NewCascade(a.cfg.Cascade)
	}
}

// report prints the console diagnostic matching err
func (a *App) report(err error) {
	fmt.Fprintln(a.out, a.diagnostic(err))
}

func (a *App) diagnostic(err error) string {
	switch {
	case errors.Is(err, core.ErrSourceUnavailable):
		if a.cfg.Variant.Tracking() {
			return MsgWebcamFailed
		}
		return MsgImageNotFound
	case errors.Is(err, core.ErrFrameRead):
		return MsgCaptureFailed
	case errors.Is(err, detection.ErrCascadeLoad):
		return MsgCascadeFailed
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// FilterBindings maps the live filter keys to their modes
func FilterBindings() core.KeyBindings {
	return core.KeyBindings{
		'r':     core.SwitchTo(core.ModeRedTint),
		'g':     core.SwitchTo(core.ModeGreenTint),
		'b':     core.SwitchTo(core.ModeBlueTint),
		's':     core.SwitchTo(core.ModeSepia),
		'c':     core.SwitchTo(core.ModeCanny),
		'y':     core.SwitchTo(core.ModeGray),
		'o':     core.SwitchTo(core.ModeOriginal),
		QuitKey: core.Quit,
	}
}

// TrackingBindings only knows how to quit
func TrackingBindings() core.KeyBindings {
	return core.KeyBindings{
		QuitKey: core.Quit,
	}
}

// DetectTransform detects faces on a gray copy of the frame and returns
// an annotated clone
func DetectTransform(det detection.Detector, params detection.Params, ann *overlay.Annotator, stats *metrics.FrameStats) core.Transform {
	return func(frame gocv.Mat) (gocv.Mat, error) {
		gray := gocv.NewMat()
		defer gray.Close()
		if err := gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray); err != nil {
			return gocv.NewMat(), fmt.Errorf("convert to gray: %w", err)
		}

		faces, err := det.Detect(gray, params)
		if err != nil {
			return gocv.NewMat(), fmt.Errorf("detect faces: %w", err)
		}

		out := frame.Clone()
		if err := ann.Annotate(overlay.NewMatCanvas(&out), faces); err != nil {
			out.Close()
			return gocv.NewMat(), fmt.Errorf("annotate: %w", err)
		}
		stats.AddDetections(len(faces))
		return out, nil
	}
}
