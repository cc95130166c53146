// Package hashsearch implements the SignedHash q-gram search algorithm: a
// multiply-shift hash over overlapping 4-byte windows of the pattern, a
// signed shift table that folds "safe skip" and "verify here" into one
// lookup, and the forward/backward search loops (over flat arrays and over
// windowed streams) that use it. When the pattern is too short or the table
// would not be profitable, the Searcher transparently falls back to a
// rare-byte substring search (plain literals), ShiftOr, or brute force; a
// pattern whose byte classes enumerate to a few literals uses a literal-set
// accelerator instead of the table (see searcher.go).
package hashsearch

import "errors"

const (
	// Q is the q-gram length the SignedHash algorithm hashes over.
	Q = 4

	// MinPowerTwoSize is the smallest HASH_SIZE auto-selection will choose.
	MinPowerTwoSize = 5

	// MaxPowerTwoSize is the largest HASH_SIZE construction will ever use,
	// and the bound on the magnitude of a caller-supplied hash size hint.
	MaxPowerTwoSize = 28

	// DefaultPowerTwoSize is the hint new_from_matcher uses when the caller
	// does not supply one: auto-select, capped at 16.
	DefaultPowerTwoSize = -16

	// HashMultiply is the fixed odd 64-bit multiplier of the multiply-shift
	// hash. Its bits must stay fixed for bit-exact reproducibility across
	// builds; nothing else depends on its specific bit pattern beyond being
	// odd and occupying the upper word after multiplication.
	HashMultiply = 0xee4c2ad3f592b105

	// maxSearchShiftFloor is the minimum MAX_SEARCH_SHIFT below which the
	// pre-processor declares the pattern unsearchable by SignedHash.
	maxSearchShiftFloor = 2
)

// ErrInvalidHashSize is returned when a hash-size hint's magnitude exceeds
// MaxPowerTwoSize.
var ErrInvalidHashSize = errors.New("hashsearch: hash size hint out of range")

// ErrEmptySequence is returned when constructing a Searcher from a
// zero-length SequenceMatcher.
var ErrEmptySequence = errors.New("hashsearch: sequence must have at least one matcher")
