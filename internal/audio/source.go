// Package audio provides the in-memory audio buffer and playback layer.
package audio

import (
	"bytes"
	"fmt"
	"io"
)

// Source is a finite range-addressable in-memory audio buffer. It holds
// the complete synthesized clip; no streaming, no backing file.
type Source struct {
	data []byte
	mime string
}

// NewSource wraps a fully buffered audio body
func NewSource(data []byte, mime string) *Source {
	return &Source{data: data, mime: mime}
}

// Len returns the total number of bytes
func (s *Source) Len() int {
	return len(s.data)
}

// MIME returns the declared content type of the buffered audio
func (s *Source) MIME() string {
	return s.mime
}

// ReadRange returns the bytes in [start, end). The range must satisfy
// 0 <= start <= end <= Len().
func (s *Source) ReadRange(start, end int) ([]byte, error) {
	if start < 0 || end < start || end > len(s.data) {
		return nil, fmt.Errorf("range [%d, %d) out of bounds for %d bytes", start, end, len(s.data))
	}
	out := make([]byte, end-start)
	copy(out, s.data[start:end])
	return out, nil
}

// ReadAt implements io.ReaderAt
func (s *Source) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset %d", off)
	}
	if off >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// NewReader returns an io.ReadSeeker over the full buffer
func (s *Source) NewReader() io.ReadSeeker {
	return bytes.NewReader(s.data)
}

// Bytes returns the underlying buffer. Callers must not modify it.
func (s *Source) Bytes() []byte {
	return s.data
}
