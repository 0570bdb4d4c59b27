// Package sigmf reads SigMF ci32_le capture files: raw binary payloads of
// interleaved 32-bit little-endian signed integers (I, then Q), with no
// metadata sidecar parsed — a deliberate simplification for offline replay
// of captured IQ.
package sigmf

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"wfmrx/internal/dsp"
)

const scale = 1.0 / 2147483648.0 // 1 / 2^31

// Reader is a pull-based dsp.Source[dsp.CS] over a ci32_le file. Each
// 8-byte record (int32 I, int32 Q) decodes to one complex sample scaled
// into [-1, +1). A partial trailing record silently ends the stream.
type Reader struct {
	f   *os.File
	buf *bufio.Reader
}

// Open opens path as a ci32_le SigMF data file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{f: f, buf: bufio.NewReaderSize(f, 1<<16)}, nil
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.f.Close()
}

// Next implements dsp.Source[dsp.CS]. It returns false at end of file or
// on a short trailing read.
func (r *Reader) Next() (dsp.CS, bool) {
	var raw [8]byte
	if _, err := io.ReadFull(r.buf, raw[:]); err != nil {
		return 0, false
	}
	i := int32(binary.LittleEndian.Uint32(raw[0:4]))
	q := int32(binary.LittleEndian.Uint32(raw[4:8]))
	return dsp.CS(complex(float32(float64(i)*scale), float32(float64(q)*scale))), true
}
