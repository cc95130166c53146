// Package window abstracts a byte source as a sequence of fixed-size
// Windows, so the SignedHash search loops can traverse arbitrarily large
// streamed input the same way they traverse a flat in-memory array.
package window

import "errors"

// ErrClosed is returned by a Reader's methods after Close has been called.
var ErrClosed = errors.New("window: reader is closed")

// Window is a bounded view onto a contiguous region of a byte stream,
// exposed as a flat array. Bytes outside [0, Length) are undefined.
type Window struct {
	// Array is the underlying byte buffer. Callers must treat it as
	// read-only: windows may be cached and reused across calls.
	Array []byte
	// Start is this window's absolute start position in the source.
	Start uint64
	// Length is the number of valid bytes in Array (Length <= len(Array)).
	Length int
}

// Reader is a stateful source of Windows.
//
// Past-end is a distinct, non-error condition: WindowFor's second return
// value is false, and ReadByte returns (-1, nil).
type Reader interface {
	// WindowFor returns the window containing absolute position pos, or
	// ok=false if pos is at or past the end of the source.
	WindowFor(pos uint64) (win *Window, ok bool)

	// OffsetInWindow returns pos - window.Start for the window containing
	// pos. Callers must only call this after WindowFor(pos) succeeded.
	OffsetInWindow(pos uint64) int

	// ReadByte returns the byte at pos, or (-1, nil) if pos is past-end, or
	// (0, err) if the underlying source failed.
	ReadByte(pos uint64) (int16, error)

	// Length returns the total source length. It may require reading to
	// end-of-stream the first time it is called on a source of unknown
	// length (e.g. a pipe), hence the error return.
	Length() (uint64, error)

	// Close releases any resources held by the reader.
	Close() error
}
