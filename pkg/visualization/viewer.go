// Package visualization renders 2D inspection views of a decoded volume.
// It consumes only the volume descriptor's public surface (buffer,
// dimensions, intensity range), the same narrow contract a GPU texture
// uploader would use.
package visualization

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/rajwardhan1920/Volumatrix/internal/models"
	"github.com/rajwardhan1920/Volumatrix/pkg/nrrd"
)

// Viewer extracts windowed grayscale slices from a decoded volume.
type Viewer struct {
	// vol is the decoded volume being viewed; never mutated.
	vol *nrrd.Volume

	// window maps sample intensities to display brightness.
	window models.WindowLevel
}

// NewViewer creates a viewer over a decoded volume with the given
// window/level mapping.
func NewViewer(vol *nrrd.Volume, window models.WindowLevel) *Viewer {
	return &Viewer{
		vol:    vol,
		window: window,
	}
}

// sampleAt returns the int16 sample at voxel coordinates (x, y, z).
// The buffer is laid out with X varying fastest.
func (v *Viewer) sampleAt(x, y, z int) int16 {
	idx := (z*v.vol.SizeY+y)*v.vol.SizeX + x
	return int16(binary.LittleEndian.Uint16(v.vol.Data[idx*nrrd.BytesPerSample:]))
}

// ExtractSlice extracts a 2D slice from the volume along the specified axis,
// mapping each sample through the viewer's window onto a 16-bit grayscale
// image.
func (v *Viewer) ExtractSlice(axis string, position int) (image.Image, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative")
	}

	var img *image.Gray16

	switch axis {
	case "x", "X":
		// Slice along the YZ plane
		if position >= v.vol.SizeX {
			return nil, fmt.Errorf("position %d exceeds width %d", position, v.vol.SizeX)
		}
		img = image.NewGray16(image.Rect(0, 0, v.vol.SizeZ, v.vol.SizeY))
		for y := 0; y < v.vol.SizeY; y++ {
			for z := 0; z < v.vol.SizeZ; z++ {
				img.SetGray16(z, y, color.Gray16{Y: v.window.Apply(v.sampleAt(position, y, z))})
			}
		}

	case "y", "Y":
		// Slice along the XZ plane
		if position >= v.vol.SizeY {
			return nil, fmt.Errorf("position %d exceeds height %d", position, v.vol.SizeY)
		}
		img = image.NewGray16(image.Rect(0, 0, v.vol.SizeX, v.vol.SizeZ))
		for z := 0; z < v.vol.SizeZ; z++ {
			for x := 0; x < v.vol.SizeX; x++ {
				img.SetGray16(x, z, color.Gray16{Y: v.window.Apply(v.sampleAt(x, position, z))})
			}
		}

	case "z", "Z":
		// Slice along the XY plane
		if position >= v.vol.SizeZ {
			return nil, fmt.Errorf("position %d exceeds depth %d", position, v.vol.SizeZ)
		}
		img = image.NewGray16(image.Rect(0, 0, v.vol.SizeX, v.vol.SizeY))
		for y := 0; y < v.vol.SizeY; y++ {
			for x := 0; x < v.vol.SizeX; x++ {
				img.SetGray16(x, y, color.Gray16{Y: v.window.Apply(v.sampleAt(x, y, position))})
			}
		}

	default:
		return nil, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	return img, nil
}

// ExtractSliceMeta extracts a slice together with its physical placement,
// derived from the volume's origin and per-axis spacing.
func (v *Viewer) ExtractSliceMeta(axis string, position int) (models.Slice, error) {
	img, err := v.ExtractSlice(axis, position)
	if err != nil {
		return models.Slice{}, err
	}

	var physical float64
	switch axis {
	case "x", "X":
		physical = v.vol.Origin.X + float64(position)*v.vol.Spacing.X
	case "y", "Y":
		physical = v.vol.Origin.Y + float64(position)*v.vol.Spacing.Y
	default:
		physical = v.vol.Origin.Z + float64(position)*v.vol.Spacing.Z
	}

	return models.Slice{
		Image:    img,
		Axis:     axis,
		Index:    position,
		Position: physical,
	}, nil
}

// ExtractRegion copies a 3D subregion of the volume as int16 samples,
// X varying fastest within the returned slice.
func (v *Viewer) ExtractRegion(startX, startY, startZ, sizeX, sizeY, sizeZ int) ([]int16, error) {
	if startX < 0 || startY < 0 || startZ < 0 {
		return nil, fmt.Errorf("start coordinates must be non-negative")
	}
	if sizeX <= 0 || sizeY <= 0 || sizeZ <= 0 {
		return nil, fmt.Errorf("size dimensions must be positive")
	}
	if startX+sizeX > v.vol.SizeX || startY+sizeY > v.vol.SizeY || startZ+sizeZ > v.vol.SizeZ {
		return nil, fmt.Errorf("region extends beyond volume boundaries")
	}

	region := make([]int16, sizeX*sizeY*sizeZ)
	for z := 0; z < sizeZ; z++ {
		for y := 0; y < sizeY; y++ {
			for x := 0; x < sizeX; x++ {
				region[(z*sizeY+y)*sizeX+x] = v.sampleAt(startX+x, startY+y, startZ+z)
			}
		}
	}

	return region, nil
}

// SaveSlice saves an extracted slice as a JPEG image.
func (v *Viewer) SaveSlice(img image.Image, filename string, quality int) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return jpeg.Encode(file, img, &jpeg.Options{Quality: quality})
}

// SaveSliceSequence extracts and saves every slice along the specified axis
// into outputDir, one JPEG per slice index.
func (v *Viewer) SaveSliceSequence(axis string, outputDir string, quality int) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	var maxPos int
	switch axis {
	case "x", "X":
		maxPos = v.vol.SizeX
	case "y", "Y":
		maxPos = v.vol.SizeY
	case "z", "Z":
		maxPos = v.vol.SizeZ
	default:
		return fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	for pos := 0; pos < maxPos; pos++ {
		img, err := v.ExtractSlice(axis, pos)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%03d.jpg", axis, pos))
		if err := v.SaveSlice(img, filename, quality); err != nil {
			return err
		}
	}

	return nil
}
