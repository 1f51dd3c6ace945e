package nrrd

// Volume is the pipeline's terminal output: the validated header metadata,
// the reconciled sample buffer, and the computed intensity range. It is
// created once by BuildVolume and never mutated; consumers (a texture
// uploader, a slice viewer) copy out what they need.
type Volume struct {
	// SizeX, SizeY, SizeZ are the voxel counts along each axis.
	SizeX, SizeY, SizeZ int

	// Spacing is the physical voxel size in mm along X,Y,Z.
	Spacing Vector3

	// Origin is the physical position of the first voxel in mm.
	Origin Vector3

	// BytesPerSample is the width of one sample; always 2 for this decoder.
	BytesPerSample int

	// Data holds exactly SizeX*SizeY*SizeZ*BytesPerSample bytes of
	// little-endian int16 samples, X varying fastest.
	Data []byte

	// MinValue and MaxValue are the smallest and largest sample values.
	MinValue, MaxValue int16
}

// BuildVolume assembles the final volume descriptor from the outputs of the
// earlier pipeline stages. It performs no validation beyond what those
// stages already guarantee and never fails on their outputs.
func BuildVolume(header *Header, data []byte, min, max int16) *Volume {
	return &Volume{
		SizeX:          header.SizeX,
		SizeY:          header.SizeY,
		SizeZ:          header.SizeZ,
		Spacing:        header.Spacing,
		Origin:         header.Origin,
		BytesPerSample: BytesPerSample,
		Data:           data,
		MinValue:       min,
		MaxValue:       max,
	}
}

// WorldDimensions returns the physical extent of the volume in mm along each
// axis: spacing times voxel count, component-wise. Informational only,
// intended for physical-scale display by rendering collaborators.
func (v *Volume) WorldDimensions() Vector3 {
	return Vector3{
		X: v.Spacing.X * float64(v.SizeX),
		Y: v.Spacing.Y * float64(v.SizeY),
		Z: v.Spacing.Z * float64(v.SizeZ),
	}
}

// DefaultWindow returns the window width and level spanning the volume's
// full intensity range, the preset a viewer starts from before any
// adjustment.
func (v *Volume) DefaultWindow() (window, level float64) {
	window = float64(v.MaxValue) - float64(v.MinValue)
	level = (float64(v.MaxValue) + float64(v.MinValue)) / 2
	return window, level
}

// AutoWindow returns a window/level preset centered on the sample mean and
// spanning two standard deviations to each side, clipped to the actual
// intensity range. It falls back to DefaultWindow for flat or degenerate
// volumes.
func (v *Volume) AutoWindow() (window, level float64) {
	mean, stddev := SampleStats(v.Data)
	if stddev == 0 {
		return v.DefaultWindow()
	}
	lo := mean - 2*stddev
	hi := mean + 2*stddev
	if lo < float64(v.MinValue) {
		lo = float64(v.MinValue)
	}
	if hi > float64(v.MaxValue) {
		hi = float64(v.MaxValue)
	}
	return hi - lo, (hi + lo) / 2
}
