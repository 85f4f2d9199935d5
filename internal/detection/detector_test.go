package detection

import (
	"image"
	"path/filepath"
	"testing"

	pigo "github.com/esimov/pigo/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestBox_Geometry(t *testing.T) {
	tests := []struct {
		box    Box
		center image.Point
		rect   image.Rectangle
	}{
		{Box{10, 10, 30, 30}, image.Pt(25, 25), image.Rect(10, 10, 40, 40)},
		{Box{50, 50, 40, 40}, image.Pt(70, 70), image.Rect(50, 50, 90, 90)},
		{Box{0, 4, 5, 3}, image.Pt(2, 5), image.Rect(0, 4, 5, 7)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.center, tt.box.Center())
		assert.Equal(t, tt.rect, tt.box.Rect())
		assert.Equal(t, tt.box, BoxFromRect(tt.rect))
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 1.1, p.ScaleStep)
	assert.Equal(t, 5, p.MinNeighbors)
	assert.Equal(t, image.Pt(30, 30), p.MinSize)
	assert.NoError(t, p.Validate())
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"scale step of one", func(p *Params) { p.ScaleStep = 1 }},
		{"negative neighbors", func(p *Params) { p.MinNeighbors = -1 }},
		{"zero width", func(p *Params) { p.MinSize.X = 0 }},
		{"negative height", func(p *Params) { p.MinSize.Y = -30 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestNewCascade_MissingFile(t *testing.T) {
	_, err := NewCascade(filepath.Join(t.TempDir(), "missing.xml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCascadeLoad)
}

func TestLoadPigo_MissingFile(t *testing.T) {
	_, err := LoadPigo(filepath.Join(t.TempDir(), "facefinder"), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCascadeLoad)
}

func TestBoxFromDetection(t *testing.T) {
	box := boxFromDetection(pigo.Detection{Row: 70, Col: 60, Scale: 40, Q: 9.5})
	assert.Equal(t, Box{X: 40, Y: 50, Width: 40, Height: 40}, box)
	assert.Equal(t, image.Pt(60, 70), box.Center())
}

func TestValidateGray(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()
	color := gocv.NewMatWithSize(8, 8, gocv.MatTypeCV8UC3)
	defer color.Close()
	gray := gocv.NewMatWithSize(8, 8, gocv.MatTypeCV8U)
	defer gray.Close()

	assert.Error(t, validateGray(empty))
	assert.Error(t, validateGray(color))
	assert.NoError(t, validateGray(gray))
}
