// Interactive frame pipeline: acquire, transform, show, poll for input
package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"interactive-vision/internal/metrics"
)

// Key is a single keyboard input as reported by a Display
type Key rune

// Transform turns an input frame into a new frame owned by the caller.
// The input frame must not be retained.
type Transform func(frame gocv.Mat) (gocv.Mat, error)

// TransformTable maps every reachable Mode to its per-frame transform
type TransformTable map[Mode]Transform

// Action is what a bound key does: switch to Mode, or quit
type Action struct {
	Mode Mode
	Quit bool
}

// SwitchTo returns an Action selecting mode
func SwitchTo(mode Mode) Action {
	return Action{Mode: mode}
}

// Quit is the Action that ends the loop
var Quit = Action{Quit: true}

// KeyBindings maps keys to actions; keys not present are ignored
type KeyBindings map[Key]Action

// FrameSource produces frames. Read returns a Mat owned by the caller,
// including on error.
type FrameSource interface {
	Read() (gocv.Mat, error)
	Close() error
}

// Display is the output surface and the input poller.
// WaitKey with a zero timeout blocks until a key arrives.
type Display interface {
	Show(window string, frame gocv.Mat) error
	WaitKey(timeout time.Duration) (Key, bool)
	Close() error
}

// Options configures a Pipeline
type Options struct {
	Open        func() (FrameSource, error)
	Display     Display
	Window      string
	InitialMode Mode
	Transforms  TransformTable
	Bindings    KeyBindings
	Wait        time.Duration

	// OnStart runs once the source is open, before the first frame
	OnStart func()
	// OnUnboundKey runs for every key without a binding
	OnUnboundKey func(Key)

	Logger logrus.FieldLogger
	Stats  *metrics.FrameStats
}

// Pipeline drives a single acquire -> transform -> show -> poll loop.
// It owns the source and the display for the duration of Run.
type Pipeline struct {
	opts   Options
	mode   Mode
	logger logrus.FieldLogger
	stats  *metrics.FrameStats
}

// New validates opts and returns a ready Pipeline
func New(opts Options) (*Pipeline, error) {
	if opts.Open == nil {
		return nil, fmt.Errorf("frame source opener is required")
	}
	if opts.Display == nil {
		return nil, fmt.Errorf("display is required")
	}
	if _, ok := opts.Transforms[opts.InitialMode]; !ok {
		return nil, fmt.Errorf("initial mode %s: %w", opts.InitialMode, ErrUnknownMode)
	}
	for key, action := range opts.Bindings {
		if action.Quit {
			continue
		}
		if _, ok := opts.Transforms[action.Mode]; !ok {
			return nil, fmt.Errorf("key %q bound to %s: %w", rune(key), action.Mode, ErrUnknownMode)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	stats := opts.Stats
	if stats == nil {
		stats = metrics.NewFrameStats()
	}

	return &Pipeline{
		opts:   opts,
		mode:   opts.InitialMode,
		logger: logger.WithField("window", opts.Window),
		stats:  stats,
	}, nil
}

// Mode returns the currently active mode
func (p *Pipeline) Mode() Mode {
	return p.mode
}

// Stats returns the frame statistics collected by Run
func (p *Pipeline) Stats() *metrics.FrameStats {
	return p.stats
}

// Run opens the source and loops until a quit key or a fatal error.
// It returns nil on quit. Source and display are released on every path.
func (p *Pipeline) Run() error {
	defer func() {
		if err := p.opts.Display.Close(); err != nil {
			p.logger.WithError(err).Warn("PIPELINE: Failed to close display")
		}
	}()

	source, err := p.opts.Open()
	if err != nil {
		if !errors.Is(err, ErrSourceUnavailable) {
			err = fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		p.logger.WithError(err).Error("PIPELINE: Could not open frame source")
		return err
	}
	defer func() {
		if err := source.Close(); err != nil {
			p.logger.WithError(err).Warn("PIPELINE: Failed to close frame source")
		}
	}()

	p.logger.WithField("mode", p.mode.String()).Info("PIPELINE: Frame source opened")
	if p.opts.OnStart != nil {
		p.opts.OnStart()
	}

	defer p.logSummary()

	for {
		quit, err := p.step(source)
		if err != nil {
			p.logger.WithError(err).WithField("mode", p.mode.String()).Error("PIPELINE: Loop terminated")
			return err
		}
		if quit {
			p.logger.Info("PIPELINE: Quit requested")
			return nil
		}
	}
}

func (p *Pipeline) step(source FrameSource) (bool, error) {
	frame, err := source.Read()
	defer frame.Close()
	if err != nil {
		if !errors.Is(err, ErrFrameRead) {
			err = fmt.Errorf("%w: %w", ErrFrameRead, err)
		}
		return false, err
	}

	start := time.Now()
	out, err := p.opts.Transforms[p.mode](frame)
	if err != nil {
		out.Close()
		return false, fmt.Errorf("apply %s: %w", p.mode, err)
	}
	defer out.Close()
	p.stats.Observe(p.mode.String(), time.Since(start))

	if err := p.opts.Display.Show(p.opts.Window, out); err != nil {
		return false, fmt.Errorf("show frame: %w", err)
	}

	key, ok := p.opts.Display.WaitKey(p.opts.Wait)
	if !ok {
		return false, nil
	}
	return p.handleKey(key), nil
}

func (p *Pipeline) handleKey(key Key) bool {
	action, ok := p.opts.Bindings[key]
	if !ok {
		p.logger.WithField("key", string(rune(key))).Debug("PIPELINE: Ignoring unbound key")
		if p.opts.OnUnboundKey != nil {
			p.opts.OnUnboundKey(key)
		}
		return false
	}
	if action.Quit {
		return true
	}
	if action.Mode != p.mode {
		p.logger.WithFields(logrus.Fields{
			"old_mode": p.mode.String(),
			"new_mode": action.Mode.String(),
		}).Info("PIPELINE: Mode changed")
		p.mode = action.Mode
	}
	return false
}

func (p *Pipeline) logSummary() {
	snap := p.stats.Snapshot()
	p.logger.WithFields(snap.Fields()).Info("PIPELINE: Frame statistics")
}
