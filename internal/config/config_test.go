package config

import (
	"flag"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interactive-vision/internal/overlay"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("FACETRACK_CASCADE", "")
	t.Setenv("FACETRACK_DEVICE", "")
	t.Setenv("LIVEFILTERS_IMAGE", "")

	basic, err := Parse(Basic, nil)
	require.NoError(t, err)
	assert.Equal(t, DisplayHighGUI, basic.Display)
	assert.Equal(t, TrackingWindow, basic.Window)
	assert.Equal(t, 0, basic.Device)
	assert.Equal(t, DefaultCascade, basic.Cascade)
	assert.Equal(t, DetectorHaar, basic.Detector)
	assert.Equal(t, "rectangle", basic.Shapes)
	assert.Equal(t, image.Point{}, basic.WindowSize)

	enhanced, err := Parse(Enhanced, nil)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(1920, 1080), enhanced.WindowSize)
	assert.Equal(t, "ellipse,circle", enhanced.Shapes)

	filters, err := Parse(Filters, nil)
	require.NoError(t, err)
	assert.Equal(t, FiltersWindow, filters.Window)
	assert.Equal(t, DefaultImage, filters.Image)
}

func TestParse_Flags(t *testing.T) {
	cfg, err := Parse(Enhanced, []string{
		"-debug", "-display", "fyne", "-device", "2",
		"-detector", "pigo", "-pigo-cascade", "facefinder",
		"-scale-step", "1.2", "-min-neighbors", "3", "-min-size", "48",
		"-shapes", "circle",
	})
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, DisplayFyne, cfg.Display)
	assert.Equal(t, 2, cfg.Device)
	assert.Equal(t, DetectorPigo, cfg.Detector)
	assert.Equal(t, "facefinder", cfg.PigoCascade)

	params := cfg.DetectionParams()
	assert.Equal(t, 1.2, params.ScaleStep)
	assert.Equal(t, 3, params.MinNeighbors)
	assert.Equal(t, image.Pt(48, 48), params.MinSize)

	style, err := cfg.Style()
	require.NoError(t, err)
	assert.Equal(t, overlay.ShapeCircle, style.Shapes)
	assert.True(t, style.Responsive)
}

func TestParse_ImagePositional(t *testing.T) {
	cfg, err := Parse(Filters, []string{"portrait.png"})
	require.NoError(t, err)
	assert.Equal(t, "portrait.png", cfg.Image)

	cfg, err = Parse(Filters, []string{"-image", "street.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "street.jpg", cfg.Image)
}

func TestParse_EnvFallbacks(t *testing.T) {
	t.Setenv("FACETRACK_CASCADE", "/opt/cascades/face.xml")
	t.Setenv("FACETRACK_DEVICE", "3")
	t.Setenv("LIVEFILTERS_IMAGE", "from-env.jpg")

	cfg, err := Parse(Basic, nil)
	require.NoError(t, err)
	assert.Equal(t, "/opt/cascades/face.xml", cfg.Cascade)
	assert.Equal(t, 3, cfg.Device)

	cfg, err = Parse(Filters, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env.jpg", cfg.Image)

	// flags win over the environment
	cfg, err = Parse(Basic, []string{"-device", "1"})
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Device)
}

func TestParse_BadEnvIntFallsBack(t *testing.T) {
	t.Setenv("FACETRACK_DEVICE", "front")
	cfg, err := Parse(Basic, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Device)
}

func TestParse_TrackingFlagsNotOnFilters(t *testing.T) {
	_, err := Parse(Filters, []string{"-device", "1"})
	assert.Error(t, err)
}

func TestParse_Help(t *testing.T) {
	_, err := Parse(Basic, []string{"-h"})
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		mutate  func(*Config)
	}{
		{"unknown display", Basic, func(c *Config) { c.Display = "sdl" }},
		{"empty window", Filters, func(c *Config) { c.Window = "" }},
		{"empty image", Filters, func(c *Config) { c.Image = "" }},
		{"negative device", Basic, func(c *Config) { c.Device = -1 }},
		{"unknown detector", Basic, func(c *Config) { c.Detector = "dnn" }},
		{"haar without cascade", Basic, func(c *Config) { c.Cascade = "" }},
		{"pigo without cascade", Enhanced, func(c *Config) { c.Detector = DetectorPigo }},
		{"scale step too small", Basic, func(c *Config) { c.ScaleStep = 1.0 }},
		{"negative neighbors", Basic, func(c *Config) { c.MinNeighbors = -1 }},
		{"zero min size", Basic, func(c *Config) { c.MinSize = 0 }},
		{"bad shapes", Enhanced, func(c *Config) { c.Shapes = "hexagon" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults(tt.variant)
			cfg.Cascade = DefaultCascade
			cfg.Image = DefaultImage
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestVariant(t *testing.T) {
	assert.Equal(t, "facetrack", Basic.String())
	assert.Equal(t, "facetrack-enhanced", Enhanced.String())
	assert.Equal(t, "livefilters", Filters.String())
	assert.True(t, Basic.Tracking())
	assert.True(t, Enhanced.Tracking())
	assert.False(t, Filters.Tracking())
}
