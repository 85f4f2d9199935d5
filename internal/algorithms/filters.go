// Fixed color filters for three-channel 8-bit BGR frames
package algorithms

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Channel indexes a BGR pixel
type Channel int

const (
	ChannelBlue Channel = iota
	ChannelGreen
	ChannelRed
)

func (c Channel) String() string {
	switch c {
	case ChannelBlue:
		return "blue"
	case ChannelGreen:
		return "green"
	case ChannelRed:
		return "red"
	}
	return fmt.Sprintf("channel(%d)", int(c))
}

// SepiaKernel is applied to each pixel's channel vector in Mat channel order
var SepiaKernel = [3][3]float64{
	{0.272, 0.534, 0.131},
	{0.349, 0.686, 0.168},
	{0.393, 0.769, 0.189},
}

func validateFrame(input gocv.Mat) error {
	if input.Empty() {
		return fmt.Errorf("input image is empty")
	}
	if input.Type() != gocv.MatTypeCV8UC3 {
		return fmt.Errorf("expected 8-bit 3-channel image, got %d channels of type %v", input.Channels(), input.Type())
	}
	return nil
}

// Identity returns an unmodified copy of the frame
type Identity struct{}

func NewIdentity() *Identity {
	return &Identity{}
}

func (f *Identity) Apply(input gocv.Mat) (gocv.Mat, error) {
	if err := validateFrame(input); err != nil {
		return gocv.NewMat(), err
	}
	return input.Clone(), nil
}

func (f *Identity) GetName() string {
	return "Original"
}

func (f *Identity) GetDescription() string {
	return "Unfiltered frame"
}

// ChannelTint keeps one channel and zeroes the other two
type ChannelTint struct {
	keep Channel
}

func NewChannelTint(keep Channel) *ChannelTint {
	return &ChannelTint{keep: keep}
}

func (f *ChannelTint) Apply(input gocv.Mat) (gocv.Mat, error) {
	if err := validateFrame(input); err != nil {
		return gocv.NewMat(), err
	}

	output := input.Clone()
	data, err := output.DataPtrUint8()
	if err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("access pixel data: %w", err)
	}

	keep := int(f.keep)
	for i := 0; i < len(data); i += 3 {
		for c := 0; c < 3; c++ {
			if c != keep {
				data[i+c] = 0
			}
		}
	}

	return output, nil
}

func (f *ChannelTint) GetName() string {
	return fmt.Sprintf("%s Tint", f.keep)
}

func (f *ChannelTint) GetDescription() string {
	return fmt.Sprintf("Keeps only the %s channel", f.keep)
}

// Gray converts to luminance and replicates it into three channels
type Gray struct{}

func NewGray() *Gray {
	return &Gray{}
}

func (f *Gray) Apply(input gocv.Mat) (gocv.Mat, error) {
	if err := validateFrame(input); err != nil {
		return gocv.NewMat(), err
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if err := gocv.CvtColor(input, &gray, gocv.ColorBGRToGray); err != nil {
		return gocv.NewMat(), fmt.Errorf("convert to grayscale: %w", err)
	}

	return replicateGray(gray)
}

func (f *Gray) GetName() string {
	return "Gray"
}

func (f *Gray) GetDescription() string {
	return "Luminance replicated into three channels"
}

// Sepia applies SepiaKernel, clamping to [0,255] and truncating
type Sepia struct {
	kernel [3][3]float64
}

func NewSepia() *Sepia {
	return &Sepia{kernel: SepiaKernel}
}

func (f *Sepia) Apply(input gocv.Mat) (gocv.Mat, error) {
	if err := validateFrame(input); err != nil {
		return gocv.NewMat(), err
	}

	src := input
	if !input.IsContinuous() {
		src = input.Clone()
		defer src.Close()
	}
	in, err := src.DataPtrUint8()
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("access pixel data: %w", err)
	}

	output := gocv.NewMatWithSize(input.Rows(), input.Cols(), gocv.MatTypeCV8UC3)
	out, err := output.DataPtrUint8()
	if err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("access pixel data: %w", err)
	}

	k := &f.kernel
	for i := 0; i+2 < len(in); i += 3 {
		c0, c1, c2 := float64(in[i]), float64(in[i+1]), float64(in[i+2])
		out[i] = clampTruncate(k[0][0]*c0 + k[0][1]*c1 + k[0][2]*c2)
		out[i+1] = clampTruncate(k[1][0]*c0 + k[1][1]*c1 + k[1][2]*c2)
		out[i+2] = clampTruncate(k[2][0]*c0 + k[2][1]*c1 + k[2][2]*c2)
	}

	return output, nil
}

func (f *Sepia) GetName() string {
	return "Sepia"
}

func (f *Sepia) GetDescription() string {
	return "Fixed 3x3 sepia color transform"
}

func clampTruncate(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Canny runs the edge detector and replicates the edge map into three channels
type Canny struct {
	low  float32
	high float32
}

func NewCanny(low, high float32) *Canny {
	return &Canny{low: low, high: high}
}

func (f *Canny) Apply(input gocv.Mat) (gocv.Mat, error) {
	if err := validateFrame(input); err != nil {
		return gocv.NewMat(), err
	}

	edges := gocv.NewMat()
	defer edges.Close()
	if err := gocv.Canny(input, &edges, f.low, f.high); err != nil {
		return gocv.NewMat(), fmt.Errorf("canny: %w", err)
	}

	return replicateGray(edges)
}

func (f *Canny) GetName() string {
	return "Canny Edge Detection"
}

func (f *Canny) GetDescription() string {
	return fmt.Sprintf("Canny edges with hysteresis thresholds %.0f/%.0f", f.low, f.high)
}

func replicateGray(gray gocv.Mat) (gocv.Mat, error) {
	output := gocv.NewMat()
	if err := gocv.CvtColor(gray, &output, gocv.ColorGrayToBGR); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("replicate channels: %w", err)
	}
	return output, nil
}
