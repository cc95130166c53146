package window

import (
	"fmt"
	"io"
)

// ChunkedReader wraps an io.ReaderAt (e.g. *os.File) and serves it as
// fixed-size Windows read on demand.
//
// The forward/backward search loops only ever need the window containing
// the current cursor and, during a straddle read, the one immediately
// before or after it, so a two-entry cache is sufficient to avoid
// re-reading the same window on every straddling q-gram.
type ChunkedReader struct {
	src        io.ReaderAt
	windowSize int
	length     uint64
	haveLength bool

	cache [2]*Window
	next  int // index to overwrite next (round-robin)

	closed bool
}

// NewChunkedReader creates a ChunkedReader over src, chunked into windows of
// windowSize bytes. If the source's total length is already known (e.g. from
// os.File.Stat), pass it via knownLength and haveLength=true to avoid a
// length-probing read; otherwise pass haveLength=false and Length() will
// probe lazily.
func NewChunkedReader(src io.ReaderAt, windowSize int, knownLength uint64, haveLength bool) *ChunkedReader {
	if windowSize < 1 {
		windowSize = 4096
	}
	return &ChunkedReader{src: src, windowSize: windowSize, length: knownLength, haveLength: haveLength}
}

func (r *ChunkedReader) windowStart(pos uint64) uint64 {
	ws := uint64(r.windowSize)
	return (pos / ws) * ws
}

func (r *ChunkedReader) cached(start uint64) *Window {
	for _, w := range r.cache {
		if w != nil && w.Start == start {
			return w
		}
	}
	return nil
}

func (r *ChunkedReader) fetch(start uint64) (*Window, error) {
	if w := r.cached(start); w != nil {
		return w, nil
	}
	buf := make([]byte, r.windowSize)
	n, err := r.src.ReadAt(buf, int64(start))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("window: reading chunk at %d: %w", start, err)
	}
	w := &Window{Array: buf[:n], Start: start, Length: n}
	r.cache[r.next] = w
	r.next = (r.next + 1) % len(r.cache)
	if err == io.EOF && !r.haveLength {
		r.length = start + uint64(n)
		r.haveLength = true
	}
	return w, nil
}

// WindowFor implements Reader.
func (r *ChunkedReader) WindowFor(pos uint64) (*Window, bool) {
	if r.closed {
		return nil, false
	}
	if r.haveLength && pos >= r.length {
		return nil, false
	}
	start := r.windowStart(pos)
	w, err := r.fetch(start)
	if err != nil || w.Length == 0 || pos-start >= uint64(w.Length) {
		return nil, false
	}
	return w, true
}

// OffsetInWindow implements Reader.
func (r *ChunkedReader) OffsetInWindow(pos uint64) int {
	return int(pos - r.windowStart(pos))
}

// ReadByte implements Reader.
func (r *ChunkedReader) ReadByte(pos uint64) (int16, error) {
	if r.closed {
		return 0, ErrClosed
	}
	w, ok := r.WindowFor(pos)
	if !ok {
		return -1, nil
	}
	o := r.OffsetInWindow(pos)
	return int16(w.Array[o]), nil
}

// Length implements Reader. If the source's length was not known at
// construction, this probes forward chunk by chunk until EOF.
func (r *ChunkedReader) Length() (uint64, error) {
	if r.closed {
		return 0, ErrClosed
	}
	if r.haveLength {
		return r.length, nil
	}
	pos := uint64(0)
	for {
		w, err := r.fetch(r.windowStart(pos))
		if err != nil {
			return 0, err
		}
		if w.Length < r.windowSize {
			break
		}
		pos = w.Start + uint64(r.windowSize)
	}
	return r.length, nil
}

// Close implements Reader.
func (r *ChunkedReader) Close() error {
	r.closed = true
	return nil
}
