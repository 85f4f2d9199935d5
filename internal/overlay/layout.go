package overlay

import "image"

// LayoutMetrics positions the responsive text overlay
type LayoutMetrics struct {
	FontScale   float64
	Thickness   int
	Padding     int
	LineSpacing int
	// Origin is the baseline-left point of the first text line
	Origin image.Point
}

// Layout scales the overlay with the frame so it stays legible when the
// output window is resized.
func Layout(width, height int) LayoutMetrics {
	h := float64(height)
	return LayoutMetrics{
		FontScale:   h / 400,
		Thickness:   max(1, int(h/250)),
		Padding:     int(h / 50),
		LineSpacing: int(h / 12),
		Origin:      image.Pt(int(float64(width)/60), int(h/12)),
	}
}

// LineOrigin returns the baseline-left point of text line i
func (m LayoutMetrics) LineOrigin(i int) image.Point {
	return image.Pt(m.Origin.X, m.Origin.Y+i*m.LineSpacing)
}

// Background returns the box behind a text line of the given size
func (m LayoutMetrics) Background(org, size image.Point, baseline int) image.Rectangle {
	return image.Rect(
		org.X-m.Padding,
		org.Y-size.Y-m.Padding,
		org.X+size.X+m.Padding,
		org.Y+baseline+m.Padding,
	)
}
