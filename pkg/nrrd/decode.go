package nrrd

import (
	"fmt"
	"os"
	"path/filepath"
)

// Decoder runs the full decode pipeline: parse the header, load and
// reconcile the raw payload, compute the intensity range, and assemble the
// volume descriptor. The zero value is ready to use.
//
// A Decoder holds no per-call state, so one instance may decode multiple
// volumes from separate goroutines.
type Decoder struct {
	// Warn receives non-fatal diagnostics. Nil drops them.
	Warn WarnFunc
}

// DecodeFile decodes the NRRD dataset whose header lives at nhdrPath. The
// payload path from the header is resolved relative to the header file's
// directory. The decode aborts at the first fatal error and returns it;
// non-fatal conditions are corrected (padding, truncation, assumed type) and
// reported to the decoder's Warn callback.
func (d *Decoder) DecodeFile(nhdrPath string) (*Volume, error) {
	text, err := os.ReadFile(nhdrPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading header %s: %v", ErrReadFailure, nhdrPath, err)
	}

	header, err := ParseHeader(string(text), d.Warn)
	if err != nil {
		return nil, fmt.Errorf("parsing header %s: %w", nhdrPath, err)
	}

	dataPath := header.ResolveDataFile(filepath.Dir(nhdrPath))
	data, _, err := LoadRaw(dataPath, header, d.Warn)
	if err != nil {
		return nil, fmt.Errorf("loading payload for %s: %w", nhdrPath, err)
	}

	min, max := ComputeMinMax(data)
	return BuildVolume(header, data, min, max), nil
}

// DecodeFile decodes an NRRD dataset with warnings discarded. See
// Decoder.DecodeFile.
func DecodeFile(nhdrPath string) (*Volume, error) {
	var d Decoder
	return d.DecodeFile(nhdrPath)
}
