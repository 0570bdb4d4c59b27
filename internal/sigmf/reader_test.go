package sigmf

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func writeCapture(t *testing.T, pairs [][2]int32, trailingBytes int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.ci32_le")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	for _, p := range pairs {
		var raw [8]byte
		binary.LittleEndian.PutUint32(raw[0:4], uint32(p[0]))
		binary.LittleEndian.PutUint32(raw[4:8], uint32(p[1]))
		if _, err := f.Write(raw[:]); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if trailingBytes > 0 {
		if _, err := f.Write(make([]byte, trailingBytes)); err != nil {
			t.Fatalf("write trailing: %v", err)
		}
	}
	return path
}

func TestReader_DecodesAndScalesSamples(t *testing.T) {
	path := writeCapture(t, [][2]int32{{1 << 30, -(1 << 30)}, {0, 0}}, 0)
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	s1, ok := r.Next()
	if !ok {
		t.Fatal("expected first sample")
	}
	if re := real(complex64(s1)); re < 0.49 || re > 0.51 {
		t.Fatalf("real part = %v, want ~0.5", re)
	}
	if im := imag(complex64(s1)); im > -0.49 || im < -0.51 {
		t.Fatalf("imag part = %v, want ~-0.5", im)
	}

	s2, ok := r.Next()
	if !ok || s2 != 0 {
		t.Fatalf("expected zero sample, got %v, %v", s2, ok)
	}

	if _, ok := r.Next(); ok {
		t.Fatal("expected end of stream")
	}
}

func TestReader_ShortTrailingRecordEndsStreamSilently(t *testing.T) {
	path := writeCapture(t, [][2]int32{{100, 200}}, 3)
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if _, ok := r.Next(); !ok {
		t.Fatal("expected the one full record to decode")
	}
	if _, ok := r.Next(); ok {
		t.Fatal("expected short trailing record to end stream, not error")
	}
}

func TestOpen_MissingFileReturnsError(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.ci32_le")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
