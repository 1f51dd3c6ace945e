package visualization

import (
	"encoding/binary"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/rajwardhan1920/Volumatrix/internal/models"
	"github.com/rajwardhan1920/Volumatrix/pkg/nrrd"
)

// makeVolume builds a synthetic volume whose samples come from fill.
func makeVolume(sizeX, sizeY, sizeZ int, fill func(x, y, z int) int16) *nrrd.Volume {
	data := make([]byte, sizeX*sizeY*sizeZ*nrrd.BytesPerSample)
	for z := 0; z < sizeZ; z++ {
		for y := 0; y < sizeY; y++ {
			for x := 0; x < sizeX; x++ {
				idx := (z*sizeY+y)*sizeX + x
				binary.LittleEndian.PutUint16(data[idx*nrrd.BytesPerSample:], uint16(fill(x, y, z)))
			}
		}
	}
	min, max := nrrd.ComputeMinMax(data)
	return &nrrd.Volume{
		SizeX:          sizeX,
		SizeY:          sizeY,
		SizeZ:          sizeZ,
		Spacing:        nrrd.Vector3{X: 1, Y: 1, Z: 1},
		BytesPerSample: nrrd.BytesPerSample,
		Data:           data,
		MinValue:       min,
		MaxValue:       max,
	}
}

// TestExtractSliceGeometry verifies each axis yields an image spanning the
// two remaining axes
func TestExtractSliceGeometry(t *testing.T) {
	vol := makeVolume(10, 8, 5, func(x, y, z int) int16 { return 0 })
	viewer := NewViewer(vol, models.FromRange(vol.MinValue, vol.MaxValue))

	cases := []struct {
		axis          string
		width, height int
	}{
		{"x", 5, 8},
		{"y", 10, 5},
		{"z", 10, 8},
	}

	for _, c := range cases {
		img, err := viewer.ExtractSlice(c.axis, 0)
		if err != nil {
			t.Fatalf("Failed to extract %s slice: %v", c.axis, err)
		}
		bounds := img.Bounds()
		if bounds.Dx() != c.width || bounds.Dy() != c.height {
			t.Errorf("Axis %s: expected %dx%d image, got %dx%d",
				c.axis, c.width, c.height, bounds.Dx(), bounds.Dy())
		}
	}
}

// TestExtractSliceValues verifies slices pick up the correct samples: each Z
// plane carries a unique value mapped through the window
func TestExtractSliceValues(t *testing.T) {
	depth := 5
	vol := makeVolume(4, 4, depth, func(x, y, z int) int16 { return int16(z * 100) })
	viewer := NewViewer(vol, models.FromRange(vol.MinValue, vol.MaxValue))

	for z := 0; z < depth; z++ {
		img, err := viewer.ExtractSlice("z", z)
		if err != nil {
			t.Fatalf("Failed to extract Z slice at %d: %v", z, err)
		}

		gray, ok := img.(*image.Gray16)
		if !ok {
			t.Fatalf("Expected *image.Gray16, got %T", img)
		}

		// All pixels in a Z plane share one sample value, so brightness is
		// uniform and increases with z.
		first := gray.Gray16At(0, 0).Y
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				if gray.Gray16At(x, y).Y != first {
					t.Fatalf("Z slice %d not uniform at (%d, %d)", z, x, y)
				}
			}
		}

		want := models.FromRange(vol.MinValue, vol.MaxValue).Apply(int16(z * 100))
		if first != want {
			t.Errorf("Z slice %d: expected brightness %d, got %d", z, want, first)
		}
	}
}

// TestExtractSliceBounds verifies out-of-range positions and unknown axes
// are rejected
func TestExtractSliceBounds(t *testing.T) {
	vol := makeVolume(2, 3, 4, func(x, y, z int) int16 { return 0 })
	viewer := NewViewer(vol, models.FromRange(0, 0))

	if _, err := viewer.ExtractSlice("x", 2); err == nil {
		t.Errorf("Expected error for x position beyond width")
	}
	if _, err := viewer.ExtractSlice("z", -1); err == nil {
		t.Errorf("Expected error for negative position")
	}
	if _, err := viewer.ExtractSlice("w", 0); err == nil {
		t.Errorf("Expected error for unknown axis")
	}
}

// TestExtractSliceMeta verifies the physical position derives from origin
// and spacing along the extraction axis
func TestExtractSliceMeta(t *testing.T) {
	vol := makeVolume(4, 4, 4, func(x, y, z int) int16 { return 0 })
	vol.Spacing = nrrd.Vector3{X: 0.5, Y: 1, Z: 2.5}
	vol.Origin = nrrd.Vector3{X: -10, Y: 0, Z: 100}
	viewer := NewViewer(vol, models.FromRange(0, 0))

	slice, err := viewer.ExtractSliceMeta("z", 3)
	if err != nil {
		t.Fatalf("Failed to extract slice: %v", err)
	}
	if slice.Axis != "z" || slice.Index != 3 {
		t.Errorf("Unexpected slice metadata: axis %q index %d", slice.Axis, slice.Index)
	}
	if slice.Position != 107.5 {
		t.Errorf("Expected physical position 107.5, got %f", slice.Position)
	}

	slice, err = viewer.ExtractSliceMeta("x", 2)
	if err != nil {
		t.Fatalf("Failed to extract slice: %v", err)
	}
	if slice.Position != -9 {
		t.Errorf("Expected physical position -9, got %f", slice.Position)
	}
}

// TestExtractRegion verifies subregion extraction copies the right samples
func TestExtractRegion(t *testing.T) {
	vol := makeVolume(4, 4, 4, func(x, y, z int) int16 {
		return int16(x + 10*y + 100*z)
	})
	viewer := NewViewer(vol, models.FromRange(vol.MinValue, vol.MaxValue))

	region, err := viewer.ExtractRegion(1, 2, 3, 2, 2, 1)
	if err != nil {
		t.Fatalf("Failed to extract region: %v", err)
	}
	if len(region) != 4 {
		t.Fatalf("Expected 4 samples, got %d", len(region))
	}

	want := []int16{321, 322, 331, 332}
	for i, v := range want {
		if region[i] != v {
			t.Errorf("Sample %d: expected %d, got %d", i, v, region[i])
		}
	}

	if _, err := viewer.ExtractRegion(3, 0, 0, 2, 1, 1); err == nil {
		t.Errorf("Expected error for region beyond volume boundaries")
	}
	if _, err := viewer.ExtractRegion(0, 0, 0, 0, 1, 1); err == nil {
		t.Errorf("Expected error for non-positive region size")
	}
}

// TestSaveSliceSequence verifies one JPEG per slice index lands in the
// output directory
func TestSaveSliceSequence(t *testing.T) {
	vol := makeVolume(3, 3, 4, func(x, y, z int) int16 { return int16(z) })
	viewer := NewViewer(vol, models.FromRange(vol.MinValue, vol.MaxValue))

	outputDir := filepath.Join(t.TempDir(), "slices")
	if err := viewer.SaveSliceSequence("z", outputDir, 90); err != nil {
		t.Fatalf("Failed to save slice sequence: %v", err)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("Failed to read output directory: %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("Expected 4 slice files, got %d", len(entries))
	}

	if err := viewer.SaveSliceSequence("q", outputDir, 90); err == nil {
		t.Errorf("Expected error for unknown axis")
	}
}
