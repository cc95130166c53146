package window

// SliceReader wraps an in-memory byte slice and serves it as fixed-size
// Windows. It exists primarily to exercise the stream search code paths
// against the same bytes an array search sees, so the two can be checked
// for byte-for-byte equivalence.
type SliceReader struct {
	data       []byte
	windowSize int
	closed     bool
}

// NewSliceReader creates a SliceReader over data, chunked into windows of
// windowSize bytes (the last window may be shorter). windowSize must be >= 1.
func NewSliceReader(data []byte, windowSize int) *SliceReader {
	if windowSize < 1 {
		windowSize = 1
	}
	return &SliceReader{data: data, windowSize: windowSize}
}

func (r *SliceReader) windowStart(pos uint64) uint64 {
	ws := uint64(r.windowSize)
	return (pos / ws) * ws
}

// WindowFor implements Reader.
func (r *SliceReader) WindowFor(pos uint64) (*Window, bool) {
	if r.closed || pos >= uint64(len(r.data)) {
		return nil, false
	}
	start := r.windowStart(pos)
	end := start + uint64(r.windowSize)
	if end > uint64(len(r.data)) {
		end = uint64(len(r.data))
	}
	arr := r.data[start:end]
	return &Window{Array: arr, Start: start, Length: len(arr)}, true
}

// OffsetInWindow implements Reader.
func (r *SliceReader) OffsetInWindow(pos uint64) int {
	return int(pos - r.windowStart(pos))
}

// ReadByte implements Reader.
func (r *SliceReader) ReadByte(pos uint64) (int16, error) {
	if r.closed {
		return 0, ErrClosed
	}
	if pos >= uint64(len(r.data)) {
		return -1, nil
	}
	return int16(r.data[pos]), nil
}

// Length implements Reader.
func (r *SliceReader) Length() (uint64, error) {
	if r.closed {
		return 0, ErrClosed
	}
	return uint64(len(r.data)), nil
}

// Close implements Reader.
func (r *SliceReader) Close() error {
	r.closed = true
	return nil
}
