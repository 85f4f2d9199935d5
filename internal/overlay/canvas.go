// Drawing surface for detection annotations
package overlay

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Font describes a Hershey font at a given scale and stroke thickness
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Thickness int
}

// Canvas is the set of drawing primitives the annotator needs.
// A thickness of -1 fills the shape.
type Canvas interface {
	Size() image.Point
	Rectangle(r image.Rectangle, c color.RGBA, thickness int) error
	Ellipse(center, axes image.Point, c color.RGBA, thickness int) error
	Circle(center image.Point, radius int, c color.RGBA, thickness int) error
	Text(text string, org image.Point, font Font, c color.RGBA) error
	TextSize(text string, font Font) (size image.Point, baseline int)
}

// MatCanvas draws directly into a gocv Mat
type MatCanvas struct {
	mat *gocv.Mat
}

func NewMatCanvas(mat *gocv.Mat) *MatCanvas {
	return &MatCanvas{mat: mat}
}

func (c *MatCanvas) Size() image.Point {
	return image.Pt(c.mat.Cols(), c.mat.Rows())
}

func (c *MatCanvas) Rectangle(r image.Rectangle, col color.RGBA, thickness int) error {
	return gocv.Rectangle(c.mat, r, col, thickness)
}

func (c *MatCanvas) Ellipse(center, axes image.Point, col color.RGBA, thickness int) error {
	return gocv.Ellipse(c.mat, center, axes, 0, 0, 360, col, thickness)
}

func (c *MatCanvas) Circle(center image.Point, radius int, col color.RGBA, thickness int) error {
	return gocv.Circle(c.mat, center, radius, col, thickness)
}

func (c *MatCanvas) Text(text string, org image.Point, font Font, col color.RGBA) error {
	return gocv.PutTextWithParams(c.mat, text, org, font.Face, font.Scale, col, font.Thickness, gocv.LineAA, false)
}

func (c *MatCanvas) TextSize(text string, font Font) (image.Point, int) {
	return gocv.GetTextSizeWithBaseline(text, font.Face, font.Scale, font.Thickness)
}
