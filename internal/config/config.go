package config

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"strconv"

	"interactive-vision/internal/detection"
	"interactive-vision/internal/overlay"
)

// Variant selects which program a command runs
type Variant int

const (
	Basic Variant = iota
	Enhanced
	Filters
)

func (v Variant) String() string {
	switch v {
	case Basic:
		return "facetrack"
	case Enhanced:
		return "facetrack-enhanced"
	case Filters:
		return "livefilters"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// Tracking reports whether the variant reads a webcam and counts faces
func (v Variant) Tracking() bool {
	return v == Basic || v == Enhanced
}

const (
	DisplayHighGUI = "highgui"
	DisplayFyne    = "fyne"

	DetectorHaar = "haar"
	DetectorPigo = "pigo"
)

const (
	TrackingWindow = "Face Tracking and Counting"
	FiltersWindow  = "Filtered Image"

	DefaultCascade = "haarcascade_frontalface_default.xml"
	DefaultImage   = "sample1.jpg"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Variant Variant
	Debug   bool
	Display string
	Window  string

	// Initial window size; zero leaves the toolkit default
	WindowSize image.Point

	// Face tracking
	Device         int
	Detector       string
	Cascade        string
	PigoCascade    string
	PigoMinQuality float64
	ScaleStep      float64
	MinNeighbors   int
	MinSize        int
	Shapes         string

	// Live filters
	Image string
}

// Defaults reproduces the behavior of each program run without flags
func Defaults(v Variant) *Config {
	cfg := &Config{
		Variant:        v,
		Display:        DisplayHighGUI,
		Window:         TrackingWindow,
		Device:         getEnvAsInt("FACETRACK_DEVICE", 0),
		Detector:       DetectorHaar,
		Cascade:        getEnv("FACETRACK_CASCADE", DefaultCascade),
		PigoMinQuality: 5.0,
		ScaleStep:      1.1,
		MinNeighbors:   5,
		MinSize:        30,
		Shapes:         overlay.ShapeRectangle.String(),
		Image:          getEnv("LIVEFILTERS_IMAGE", DefaultImage),
	}

	switch v {
	case Enhanced:
		cfg.WindowSize = image.Pt(1920, 1080)
		cfg.Shapes = (overlay.ShapeEllipse | overlay.ShapeCircle).String()
	case Filters:
		cfg.Window = FiltersWindow
	}
	return cfg
}

// Parse reads the command line of the given variant on top of Defaults
func Parse(v Variant, args []string) (*Config, error) {
	cfg := Defaults(v)

	fs := flag.NewFlagSet(v.String(), flag.ContinueOnError)
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug mode with verbose logging")
	fs.StringVar(&cfg.Display, "display", cfg.Display, "Display surface: highgui or fyne")
	fs.StringVar(&cfg.Window, "window", cfg.Window, "Window title")

	if v.Tracking() {
		fs.IntVar(&cfg.Device, "device", cfg.Device, "Camera device index")
		fs.StringVar(&cfg.Detector, "detector", cfg.Detector, "Face detector: haar or pigo")
		fs.StringVar(&cfg.Cascade, "cascade", cfg.Cascade, "Haar cascade XML file")
		fs.StringVar(&cfg.PigoCascade, "pigo-cascade", cfg.PigoCascade, "Pigo facefinder cascade file")
		fs.Float64Var(&cfg.PigoMinQuality, "pigo-min-quality", cfg.PigoMinQuality, "Minimum pigo detection quality")
		fs.Float64Var(&cfg.ScaleStep, "scale-step", cfg.ScaleStep, "Detection scale step between pyramid levels")
		fs.IntVar(&cfg.MinNeighbors, "min-neighbors", cfg.MinNeighbors, "Minimum neighbor detections to keep a face")
		fs.IntVar(&cfg.MinSize, "min-size", cfg.MinSize, "Minimum face size in pixels")
		fs.StringVar(&cfg.Shapes, "shapes", cfg.Shapes, "Comma-separated face outlines: rectangle, ellipse, circle")
	} else {
		fs.StringVar(&cfg.Image, "image", cfg.Image, "Image to filter")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if !v.Tracking() && fs.NArg() > 0 {
		cfg.Image = fs.Arg(0)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Display != DisplayHighGUI && c.Display != DisplayFyne {
		return fmt.Errorf("%w: display must be %s or %s, got %q", ErrInvalidConfig, DisplayHighGUI, DisplayFyne, c.Display)
	}
	if c.Window == "" {
		return fmt.Errorf("%w: window title is empty", ErrInvalidConfig)
	}

	if !c.Variant.Tracking() {
		if c.Image == "" {
			return fmt.Errorf("%w: image path is empty", ErrInvalidConfig)
		}
		return nil
	}

	if c.Device < 0 {
		return fmt.Errorf("%w: device must be >= 0, got %d", ErrInvalidConfig, c.Device)
	}
	switch c.Detector {
	case DetectorHaar:
		if c.Cascade == "" {
			return fmt.Errorf("%w: haar detector needs -cascade", ErrInvalidConfig)
		}
	case DetectorPigo:
		if c.PigoCascade == "" {
			return fmt.Errorf("%w: pigo detector needs -pigo-cascade", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: detector must be %s or %s, got %q", ErrInvalidConfig, DetectorHaar, DetectorPigo, c.Detector)
	}
	if err := c.DetectionParams().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := overlay.ParseShapes(c.Shapes); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) DetectionParams() detection.Params {
	return detection.Params{
		ScaleStep:    c.ScaleStep,
		MinNeighbors: c.MinNeighbors,
		MinSize:      image.Pt(c.MinSize, c.MinSize),
	}
}

// Style is the overlay style of the variant with the configured shapes
func (c *Config) Style() (overlay.Style, error) {
	style := overlay.BasicStyle()
	if c.Variant == Enhanced {
		style = overlay.EnhancedStyle()
	}
	shapes, err := overlay.ParseShapes(c.Shapes)
	if err != nil {
		return overlay.Style{}, err
	}
	style.Shapes = shapes
	return style, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
