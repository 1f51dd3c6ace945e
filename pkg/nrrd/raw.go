package nrrd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// LoadRaw reads the raw payload at path and reconciles it against the length
// the header implies.
//
// The returned buffer is always exactly header.ExpectedBytes() long: a short
// file is zero-padded at the tail (reported through warn), a long file is
// truncated, and an exact match is used as-is. A length mismatch is never an
// error on its own; even an empty file yields a zero-filled buffer. The
// second return value is the actual byte count read from disk.
//
// When the header declares big-endian data the buffer is byte-swapped in
// 2-byte groups, so callers always see little-endian samples.
func LoadRaw(path string, header *Header, warn WarnFunc) ([]byte, int64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Wrap both sentinels so callers can match either idiom.
			return nil, 0, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
		}
		return nil, 0, fmt.Errorf("%w: reading %s: %v", ErrReadFailure, path, err)
	}

	expected := header.ExpectedBytes()
	actual := int64(len(raw))

	var data []byte
	switch {
	case actual < expected:
		warn.warnf("payload %s is %d bytes, expected %d; zero-padding the tail", path, actual, expected)
		data = make([]byte, expected)
		copy(data, raw)
	case actual > expected:
		warn.warnf("payload %s is %d bytes, expected %d; truncating", path, actual, expected)
		data = raw[:expected]
	default:
		data = raw
	}

	if header.Endianness == BigEndian {
		swapBytePairs(data)
	}

	return data, actual, nil
}

// swapBytePairs reverses the byte order of every 2-byte sample in place.
func swapBytePairs(data []byte) {
	for i := 0; i+1 < len(data); i += 2 {
		data[i], data[i+1] = data[i+1], data[i]
	}
}
