package core

import "fmt"

// Mode selects the transform applied to every frame
type Mode int

const (
	ModeDetect Mode = iota
	ModeOriginal
	ModeRedTint
	ModeGreenTint
	ModeBlueTint
	ModeGray
	ModeSepia
	ModeCanny
)

var modeNames = map[Mode]string{
	ModeDetect:    "detect",
	ModeOriginal:  "original",
	ModeRedTint:   "red_tint",
	ModeGreenTint: "green_tint",
	ModeBlueTint:  "blue_tint",
	ModeGray:      "gray",
	ModeSepia:     "sepia",
	ModeCanny:     "canny",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode maps a mode name back to its Mode
func ParseMode(name string) (Mode, error) {
	for mode, n := range modeNames {
		if n == name {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// FilterModes lists the static filter modes in key-help order
func FilterModes() []Mode {
	return []Mode{
		ModeOriginal,
		ModeRedTint,
		ModeGreenTint,
		ModeBlueTint,
		ModeGray,
		ModeSepia,
		ModeCanny,
	}
}
