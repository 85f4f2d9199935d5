package overlay

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"gocv.io/x/gocv"

	"interactive-vision/internal/detection"
)

// Shape is a set of outlines drawn around each detected box
type Shape uint8

const (
	ShapeRectangle Shape = 1 << iota
	ShapeEllipse
	ShapeCircle
)

var shapeNames = []struct {
	shape Shape
	name  string
}{
	{ShapeRectangle, "rectangle"},
	{ShapeEllipse, "ellipse"},
	{ShapeCircle, "circle"},
}

// ParseShapes parses a comma-separated list such as "ellipse,circle"
func ParseShapes(s string) (Shape, error) {
	var shapes Shape
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		found := false
		for _, sn := range shapeNames {
			if sn.name == part {
				shapes |= sn.shape
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown shape %q (want rectangle, ellipse or circle)", part)
		}
	}
	if shapes == 0 {
		return 0, fmt.Errorf("no shape selected")
	}
	return shapes, nil
}

func (s Shape) Has(shape Shape) bool {
	return s&shape != 0
}

func (s Shape) String() string {
	var names []string
	for _, sn := range shapeNames {
		if s.Has(sn.shape) {
			names = append(names, sn.name)
		}
	}
	return strings.Join(names, ",")
}

// Colors are given as RGB; gocv writes them into BGR frames
var (
	Blue     = color.RGBA{R: 0, G: 0, B: 255, A: 0}
	Cyan     = color.RGBA{R: 0, G: 200, B: 255, A: 0}
	DarkGray = color.RGBA{R: 50, G: 50, B: 50, A: 0}
)

// QuitHint is the second overlay line of the enhanced style
const QuitHint = "Press Q to Quit"

// CountText is the people counter line
func CountText(n int) string {
	return fmt.Sprintf("People Count: %d", n)
}

// Style controls how detections and the counter are drawn
type Style struct {
	Shapes         Shape
	ShapeColor     color.RGBA
	ShapeThickness int

	Font      Font
	TextColor color.RGBA

	// Fixed text placement; ignored when Responsive is set
	TextOrigin image.Point

	// Responsive sizes text from Layout and draws each line on a
	// filled Background box
	Responsive bool
	Background color.RGBA
	Hint       string
}

// BasicStyle draws blue rectangles and a fixed counter at (10,30)
func BasicStyle() Style {
	return Style{
		Shapes:         ShapeRectangle,
		ShapeColor:     Blue,
		ShapeThickness: 2,
		Font:           Font{Face: gocv.FontHersheySimplex, Scale: 1, Thickness: 2},
		TextColor:      Blue,
		TextOrigin:     image.Pt(10, 30),
	}
}

// EnhancedStyle draws an ellipse and a circle per face and a responsive
// two-line counter on dark boxes
func EnhancedStyle() Style {
	return Style{
		Shapes:         ShapeEllipse | ShapeCircle,
		ShapeColor:     Blue,
		ShapeThickness: 2,
		Font:           Font{Face: gocv.FontHersheyDuplex},
		TextColor:      Cyan,
		Responsive:     true,
		Background:     DarkGray,
		Hint:           QuitHint,
	}
}

// Annotator draws detection results onto a Canvas
type Annotator struct {
	style Style
}

func NewAnnotator(style Style) *Annotator {
	return &Annotator{style: style}
}

func (a *Annotator) Style() Style {
	return a.style
}

// Annotate draws the configured shapes for every box, then the counter
func (a *Annotator) Annotate(c Canvas, boxes []detection.Box) error {
	for _, box := range boxes {
		if err := a.drawShapes(c, box); err != nil {
			return err
		}
	}

	lines := []string{CountText(len(boxes))}
	if a.style.Hint != "" {
		lines = append(lines, a.style.Hint)
	}

	if a.style.Responsive {
		return a.drawResponsiveText(c, lines)
	}
	org := a.style.TextOrigin
	for i, line := range lines {
		if i > 0 {
			org.Y += lineHeight(c, a.style.Font)
		}
		if err := c.Text(line, org, a.style.Font, a.style.TextColor); err != nil {
			return fmt.Errorf("draw text: %w", err)
		}
	}
	return nil
}

func (a *Annotator) drawShapes(c Canvas, box detection.Box) error {
	s := a.style
	if s.Shapes.Has(ShapeRectangle) {
		if err := c.Rectangle(box.Rect(), s.ShapeColor, s.ShapeThickness); err != nil {
			return fmt.Errorf("draw rectangle: %w", err)
		}
	}
	center := box.Center()
	if s.Shapes.Has(ShapeEllipse) {
		axes := image.Pt(box.Width/2, box.Height/2)
		if err := c.Ellipse(center, axes, s.ShapeColor, s.ShapeThickness); err != nil {
			return fmt.Errorf("draw ellipse: %w", err)
		}
	}
	if s.Shapes.Has(ShapeCircle) {
		radius := max(box.Width, box.Height) / 2
		if err := c.Circle(center, radius, s.ShapeColor, s.ShapeThickness); err != nil {
			return fmt.Errorf("draw circle: %w", err)
		}
	}
	return nil
}

func (a *Annotator) drawResponsiveText(c Canvas, lines []string) error {
	size := c.Size()
	m := Layout(size.X, size.Y)
	font := Font{Face: a.style.Font.Face, Scale: m.FontScale, Thickness: m.Thickness}

	for i, line := range lines {
		org := m.LineOrigin(i)
		textSize, baseline := c.TextSize(line, font)
		if err := c.Rectangle(m.Background(org, textSize, baseline), a.style.Background, -1); err != nil {
			return fmt.Errorf("draw text background: %w", err)
		}
		if err := c.Text(line, org, font, a.style.TextColor); err != nil {
			return fmt.Errorf("draw text: %w", err)
		}
	}
	return nil
}

func lineHeight(c Canvas, font Font) int {
	size, baseline := c.TextSize("Ag", font)
	return size.Y + baseline + font.Thickness*2
}
