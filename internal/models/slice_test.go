package models

import (
	"math"
	"testing"
)

// TestWindowLevelApply verifies the window edges map to the brightness
// extremes and the midpoint to mid-gray
func TestWindowLevelApply(t *testing.T) {
	w := WindowLevel{Window: 200, Level: 100}

	if got := w.Apply(0); got != 0 {
		t.Errorf("Expected lower window edge to map to 0, got %d", got)
	}
	if got := w.Apply(200); got != math.MaxUint16 {
		t.Errorf("Expected upper window edge to map to 65535, got %d", got)
	}
	if got := w.Apply(100); got != math.MaxUint16/2 {
		t.Errorf("Expected window center to map to mid-gray, got %d", got)
	}
}

// TestWindowLevelApplyClamps verifies samples outside the window clamp to
// the extremes
func TestWindowLevelApplyClamps(t *testing.T) {
	w := WindowLevel{Window: 100, Level: 0}

	if got := w.Apply(-32768); got != 0 {
		t.Errorf("Expected far-below sample to clamp to 0, got %d", got)
	}
	if got := w.Apply(32767); got != math.MaxUint16 {
		t.Errorf("Expected far-above sample to clamp to 65535, got %d", got)
	}
}

// TestWindowLevelZeroWidth verifies a zero-width window acts as a threshold
// at the level
func TestWindowLevelZeroWidth(t *testing.T) {
	w := WindowLevel{Window: 0, Level: 10}

	if got := w.Apply(9); got != 0 {
		t.Errorf("Expected sample below level to map to 0, got %d", got)
	}
	if got := w.Apply(10); got != math.MaxUint16 {
		t.Errorf("Expected sample at level to map to 65535, got %d", got)
	}
}

// TestFromRange verifies the full-range constructor
func TestFromRange(t *testing.T) {
	w := FromRange(-100, 300)
	if w.Window != 400 {
		t.Errorf("Expected window 400, got %f", w.Window)
	}
	if w.Level != 100 {
		t.Errorf("Expected level 100, got %f", w.Level)
	}
}
