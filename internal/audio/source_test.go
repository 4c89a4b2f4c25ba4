package audio

import (
	"bytes"
	"io"
	"testing"
)

func TestSourceLen(t *testing.T) {
	data := []byte("mp3 bytes here")
	src := NewSource(data, "audio/mpeg")

	if got := src.Len(); got != len(data) {
		t.Errorf("Len() = %d, want %d", got, len(data))
	}
	if got := src.MIME(); got != "audio/mpeg" {
		t.Errorf("MIME() = %q", got)
	}
}

func TestReadRangeIdentity(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	src := NewSource(data, "audio/mpeg")

	// Every valid [s, e) range must return data[s:e] unchanged
	for s := 0; s <= len(data); s++ {
		for e := s; e <= len(data); e++ {
			got, err := src.ReadRange(s, e)
			if err != nil {
				t.Fatalf("ReadRange(%d, %d) error: %v", s, e, err)
			}
			if !bytes.Equal(got, data[s:e]) {
				t.Errorf("ReadRange(%d, %d) = %v, want %v", s, e, got, data[s:e])
			}
		}
	}
}

func TestReadRangeOutOfBounds(t *testing.T) {
	src := NewSource([]byte{1, 2, 3}, "audio/mpeg")

	tests := []struct {
		name       string
		start, end int
	}{
		{"negative start", -1, 2},
		{"end before start", 2, 1},
		{"end past length", 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := src.ReadRange(tt.start, tt.end); err == nil {
				t.Errorf("ReadRange(%d, %d) should fail", tt.start, tt.end)
			}
		})
	}
}

func TestReadRangeCopyIsIndependent(t *testing.T) {
	src := NewSource([]byte{10, 20, 30}, "audio/mpeg")
	got, _ := src.ReadRange(0, 3)
	got[0] = 99

	again, _ := src.ReadRange(0, 3)
	if again[0] != 10 {
		t.Error("ReadRange result should be a copy")
	}
}

func TestReadAt(t *testing.T) {
	data := []byte("abcdefgh")
	src := NewSource(data, "audio/mpeg")

	buf := make([]byte, 3)
	n, err := src.ReadAt(buf, 2)
	if err != nil || n != 3 {
		t.Fatalf("ReadAt = %d, %v", n, err)
	}
	if string(buf) != "cde" {
		t.Errorf("ReadAt buf = %q, want %q", buf, "cde")
	}

	// Past the end
	if _, err := src.ReadAt(buf, 100); err != io.EOF {
		t.Errorf("ReadAt past end = %v, want io.EOF", err)
	}

	// Short read at the tail returns EOF
	n, err = src.ReadAt(buf, 6)
	if n != 2 || err != io.EOF {
		t.Errorf("ReadAt at tail = %d, %v, want 2, io.EOF", n, err)
	}
}

func TestNewReaderSeek(t *testing.T) {
	src := NewSource([]byte("0123456789"), "audio/mpeg")
	r := src.NewReader()

	if _, err := r.Seek(5, io.SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	rest, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(rest) != "56789" {
		t.Errorf("after seek read %q, want %q", rest, "56789")
	}
}
