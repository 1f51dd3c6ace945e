// Package nrrd decodes simplified NRRD volumetric datasets: a small text
// header (.nhdr) describing a 3D sampled intensity field plus a separate raw
// binary payload of signed 16-bit samples.
package nrrd

import "errors"

// Fatal decode errors. Returned errors wrap one of these sentinels, so
// callers classify failures with errors.Is.
var (
	ErrInvalidMagic         = errors.New("not a valid NRRD header")
	ErrUnsupportedDimension = errors.New("unsupported dimension")
	ErrUnsupportedEncoding  = errors.New("unsupported encoding")
	ErrInvalidSizes         = errors.New("invalid sizes")
	ErrMissingDataFile      = errors.New("missing data file")
	ErrNotFound             = errors.New("data file not found")
	ErrReadFailure          = errors.New("read failure")
)

// BytesPerSample is the sample width of every volume this decoder produces.
// Only 16-bit signed intensity data is supported; headers declaring another
// type are decoded as int16 with a warning.
const BytesPerSample = 2

// WarnFunc receives non-fatal decode diagnostics (unexpected sample type,
// payload length reconciliation). A nil WarnFunc silently drops them;
// logging is the caller's concern.
type WarnFunc func(format string, args ...interface{})

func (w WarnFunc) warnf(format string, args ...interface{}) {
	if w != nil {
		w(format, args...)
	}
}
