// Filter registry keyed by pipeline mode
package algorithms

import (
	"fmt"
	"sort"

	"gocv.io/x/gocv"

	"interactive-vision/internal/core"
)

// Filter defines a stateless per-frame pixel transform.
// Apply returns a new Mat; the input is never modified.
type Filter interface {
	Apply(input gocv.Mat) (gocv.Mat, error)
	GetName() string
	GetDescription() string
}

var filters = make(map[core.Mode]Filter)

func Register(mode core.Mode, filter Filter) {
	filters[mode] = filter
}

func Get(mode core.Mode) (Filter, bool) {
	filter, exists := filters[mode]
	return filter, exists
}

func Apply(mode core.Mode, input gocv.Mat) (gocv.Mat, error) {
	filter, exists := filters[mode]
	if !exists {
		return gocv.NewMat(), fmt.Errorf("filter not found: %s", mode)
	}

	return filter.Apply(input)
}

// Modes returns the registered modes in ascending order
func Modes() []core.Mode {
	modes := make([]core.Mode, 0, len(filters))
	for mode := range filters {
		modes = append(modes, mode)
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })
	return modes
}

// Table exposes every registered filter as a pipeline transform
func Table() core.TransformTable {
	table := make(core.TransformTable, len(filters))
	for mode, filter := range filters {
		table[mode] = filter.Apply
	}
	return table
}

func init() {
	Register(core.ModeOriginal, NewIdentity())
	Register(core.ModeRedTint, NewChannelTint(ChannelRed))
	Register(core.ModeGreenTint, NewChannelTint(ChannelGreen))
	Register(core.ModeBlueTint, NewChannelTint(ChannelBlue))
	Register(core.ModeGray, NewGray())
	Register(core.ModeSepia, NewSepia())
	Register(core.ModeCanny, NewCanny(100, 200))
}
