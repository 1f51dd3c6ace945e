package nrrd

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// Endianness identifies the byte order declared by a header for the raw
// payload's 16-bit samples.
type Endianness int

const (
	// LittleEndian is the default when the header omits the endian field.
	LittleEndian Endianness = iota
	BigEndian
)

// String returns the NRRD spelling of the byte order.
func (e Endianness) String() string {
	if e == BigEndian {
		return "big"
	}
	return "little"
}

// Vector3 is a triple of physical coordinates in millimeters.
type Vector3 struct {
	X, Y, Z float64
}

// Header holds the parsed and validated metadata of an NRRD header file.
//
// The sizes are stored in the consumer's X,Y,Z order: the header file
// declares them in Z,Y,X order (our exporter writes the slowest axis first)
// and the parser remaps them, so every downstream stage works with X,Y,Z.
// A Header is immutable once returned by ParseHeader.
type Header struct {
	// SizeX, SizeY, SizeZ are the voxel counts along each axis after the
	// axis remap. All three are positive in a valid header.
	SizeX, SizeY, SizeZ int

	// Type is the declared sample type, verbatim. Anything other than
	// short/int16 is reported as a warning and decoded as int16 anyway.
	Type string

	// Encoding is the declared payload encoding; only "raw" is accepted.
	Encoding string

	// Endianness is the declared payload byte order; little if absent.
	Endianness Endianness

	// DataFile is the payload path exactly as written in the header,
	// relative or absolute. Use ResolveDataFile to join it against the
	// header file's directory.
	DataFile string

	// Spacing is the physical size of a voxel in mm along X,Y,Z. Derived
	// from the space directions tuples when present, from the spacings
	// field otherwise, and (1,1,1) when neither appears.
	Spacing Vector3

	// Origin is the physical position of the first voxel in mm, taken
	// directly from the space origin field. Zero when absent.
	Origin Vector3
}

// ResolveDataFile returns the payload path joined against the directory
// containing the header file. Absolute paths pass through unchanged.
func (h *Header) ResolveDataFile(headerDir string) string {
	if filepath.IsAbs(h.DataFile) {
		return h.DataFile
	}
	return filepath.Join(headerDir, h.DataFile)
}

// VoxelCount returns the total number of samples in the volume, computed in
// 64 bits so large scans cannot overflow.
func (h *Header) VoxelCount() int64 {
	return int64(h.SizeX) * int64(h.SizeY) * int64(h.SizeZ)
}

// ExpectedBytes returns the payload length the header implies.
func (h *Header) ExpectedBytes() int64 {
	return h.VoxelCount() * BytesPerSample
}

// ParseHeader parses the full text of an NRRD header file.
//
// The first non-blank line must start with the NRRD magic. Comment lines
// (leading '#'), blank lines, and lines without a ':' separator are skipped.
// Every other line is split once on the first ':' into a case-insensitive
// key and a value. Non-fatal findings (an unexpected sample type) go to
// warn; fatal ones abort with an error wrapping one of the package's
// sentinel errors.
func ParseHeader(text string, warn WarnFunc) (*Header, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	// Locate the magic line before interpreting any field.
	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(strings.TrimSpace(line), "NRRD") {
			return nil, fmt.Errorf("%w: first line %q", ErrInvalidMagic, strings.TrimSpace(line))
		}
		start = i
		break
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: empty header", ErrInvalidMagic)
	}

	h := &Header{
		Endianness: LittleEndian,
		Spacing:    Vector3{X: 1, Y: 1, Z: 1},
	}
	sizesSeen := false
	directionsSeen := false
	var spacings [3]float64
	spacingsSeen := false

	for _, line := range lines[start+1:] {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "dimension":
			dim, err := strconv.Atoi(value)
			if err != nil || dim != 3 {
				return nil, fmt.Errorf("%w: got %q, only 3 is supported", ErrUnsupportedDimension, value)
			}

		case "type":
			h.Type = value
			switch strings.ToLower(value) {
			case "short", "int16":
			default:
				warn.warnf("unexpected sample type %q, decoding as int16", value)
			}

		case "encoding":
			h.Encoding = value
			if !strings.EqualFold(value, "raw") {
				return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, value)
			}

		case "endian":
			if strings.EqualFold(value, "big") {
				h.Endianness = BigEndian
			} else {
				h.Endianness = LittleEndian
			}

		case "sizes":
			parts := strings.Fields(value)
			if len(parts) != 3 {
				return nil, fmt.Errorf("%w: expected 3 values, got %d", ErrInvalidSizes, len(parts))
			}
			var s [3]int
			for i, part := range parts {
				v, err := strconv.Atoi(part)
				if err != nil || v < 0 {
					return nil, fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidSizes, part)
				}
				s[i] = v
			}
			// The file declares sizes in Z,Y,X order.
			h.SizeZ = s[0]
			h.SizeY = s[1]
			h.SizeX = s[2]
			sizesSeen = true

		case "data file":
			h.DataFile = value

		case "space directions":
			tuples, err := parseTuples(value)
			if err != nil || len(tuples) != 3 {
				warn.warnf("ignoring malformed space directions %q", value)
				continue
			}
			// Tuple norms give per-axis spacing, in the same Z,Y,X file
			// order as sizes.
			h.Spacing.Z = tupleNorm(tuples[0])
			h.Spacing.Y = tupleNorm(tuples[1])
			h.Spacing.X = tupleNorm(tuples[2])
			directionsSeen = true

		case "space origin":
			tuples, err := parseTuples(value)
			if err != nil || len(tuples) != 1 {
				warn.warnf("ignoring malformed space origin %q", value)
				continue
			}
			h.Origin = Vector3{X: tuples[0][0], Y: tuples[0][1], Z: tuples[0][2]}

		case "spacings":
			parts := strings.Fields(value)
			if len(parts) != 3 {
				warn.warnf("ignoring malformed spacings %q", value)
				continue
			}
			ok := true
			for i, part := range parts {
				v, err := strconv.ParseFloat(part, 64)
				if err != nil {
					warn.warnf("ignoring malformed spacings %q", value)
					ok = false
					break
				}
				spacings[i] = v
			}
			if ok {
				spacingsSeen = true
			}
		}
	}

	// The spacings field is a fallback: explicit direction tuples win when
	// both appear, regardless of line order.
	if !directionsSeen && spacingsSeen {
		h.Spacing.Z = spacings[0]
		h.Spacing.Y = spacings[1]
		h.Spacing.X = spacings[2]
	}

	if !sizesSeen || h.SizeX <= 0 || h.SizeY <= 0 || h.SizeZ <= 0 {
		return nil, fmt.Errorf("%w: sizes must be three positive integers", ErrInvalidSizes)
	}
	if h.DataFile == "" {
		return nil, fmt.Errorf("%w", ErrMissingDataFile)
	}

	return h, nil
}

// parseTuples extracts every parenthesized 3-tuple of floats from a header
// value such as "(1.5,0,0) (0,1.5,0) (0,0,3)". Tokens outside parentheses
// (NRRD's "none" placeholder) are ignored.
func parseTuples(value string) ([][3]float64, error) {
	var tuples [][3]float64
	rest := value
	for {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			break
		}
		length := strings.IndexByte(rest[open:], ')')
		if length < 0 {
			return nil, fmt.Errorf("unterminated tuple in %q", value)
		}
		parts := strings.Split(rest[open+1:open+length], ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("tuple in %q has %d components, want 3", value, len(parts))
		}
		var t [3]float64
		for i, part := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, fmt.Errorf("tuple component %q: %v", part, err)
			}
			t[i] = v
		}
		tuples = append(tuples, t)
		rest = rest[open+length+1:]
	}
	return tuples, nil
}

// tupleNorm returns the Euclidean length of a direction tuple.
func tupleNorm(t [3]float64) float64 {
	return math.Sqrt(t[0]*t[0] + t[1]*t[1] + t[2]*t[2])
}
