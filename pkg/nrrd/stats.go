package nrrd

import (
	"encoding/binary"

	"gonum.org/v1/gonum/stat"
)

// ComputeMinMax scans the buffer once and returns the smallest and largest
// little-endian int16 sample. A buffer holding fewer than one full sample
// returns the sentinel pair (0, 0) rather than failing, matching the
// pipeline's tolerance for degenerate zero volumes; callers must not read a
// non-empty volume out of min <= max. A trailing odd byte is ignored.
func ComputeMinMax(data []byte) (min, max int16) {
	if len(data) < BytesPerSample {
		return 0, 0
	}
	min = int16(binary.LittleEndian.Uint16(data))
	max = min
	for i := BytesPerSample; i+1 < len(data); i += BytesPerSample {
		v := int16(binary.LittleEndian.Uint16(data[i:]))
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// SampleStats returns the mean and standard deviation of the buffer's int16
// samples, used to derive an automatic window/level preset. A degenerate
// buffer returns (0, 0).
func SampleStats(data []byte) (mean, stddev float64) {
	n := len(data) / BytesPerSample
	if n == 0 {
		return 0, 0
	}
	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		samples[i] = float64(int16(binary.LittleEndian.Uint16(data[i*BytesPerSample:])))
	}
	mean = stat.Mean(samples, nil)
	if n > 1 {
		stddev = stat.StdDev(samples, nil)
	}
	return mean, stddev
}
