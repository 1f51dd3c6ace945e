package models

import (
	"image"
	"math"
)

// Slice represents a single 2D slice extracted from a decoded volume,
// with the metadata needed to place it back in physical space.
type Slice struct {
	// Image is the windowed grayscale slice image.
	Image image.Image

	// Axis is the extraction axis: "x", "y" or "z".
	Axis string

	// Index is the position of this slice along the extraction axis.
	Index int

	// Filename is the name the slice was (or will be) saved under.
	Filename string

	// Position is the physical position of the slice along the axis in mm,
	// derived from the volume's origin and spacing.
	Position float64
}

// WindowLevel maps a numeric intensity range onto the visible brightness
// range. Window is the width of the visible range and Level its center,
// both in sample-value units.
type WindowLevel struct {
	Window float64
	Level  float64
}

// FromRange returns the window/level pair spanning [min, max] exactly.
func FromRange(min, max int16) WindowLevel {
	return WindowLevel{
		Window: float64(max) - float64(min),
		Level:  (float64(max) + float64(min)) / 2,
	}
}

// Apply maps a sample through the window onto the 16-bit gray scale.
// Samples at or below level-window/2 map to 0, samples at or above
// level+window/2 map to 65535, and values in between scale linearly.
// A zero-width window maps everything below the level to 0 and the rest
// to full brightness.
func (w WindowLevel) Apply(sample int16) uint16 {
	if w.Window <= 0 {
		if float64(sample) < w.Level {
			return 0
		}
		return math.MaxUint16
	}
	t := (float64(sample) - (w.Level - w.Window/2)) / w.Window
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return math.MaxUint16
	}
	return uint16(t * math.MaxUint16)
}
