// Package prefilter provides a bucketed nibble-mask candidate filter used to
// accelerate search for a single SequenceMatcher whose byte classes enumerate
// to a small set of concrete literal strings.
//
// When every position of a pattern accepts few enough bytes that the
// Cartesian product of all positions stays under a small bound, the pattern
// is logically equivalent to an alternation of fully concrete literals (e.g.
// [A,B,{C,D,E},F] is "ABCF"|"ABDF"|"ABEF"). In that case a single bucketed
// nibble-mask scan over a short fingerprint prefix of each literal finds
// candidate positions far faster than verifying the full byte-class sequence
// at every offset, and the q-gram shift table used for longer/less
// constrained patterns is skipped entirely for that search direction.
//
// This stays strictly internal to one pattern's search strategy: the
// Accelerator never becomes a public multi-pattern API, only a filter the
// searcher chooses over a shift table when a single pattern happens to be
// literal-set representable.
package prefilter

// Prefilter quickly finds candidate positions before the full pattern is
// verified against the haystack.
//
// A Prefilter match is not itself a confirmed match (unless IsComplete is
// true): the caller must verify with the full pattern at that position.
type Prefilter interface {
	// Find returns the index of the first candidate match at or after start,
	// or -1 if none exists.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a Find match guarantees a full pattern
	// match, letting the caller skip verification.
	IsComplete() bool

	// LiteralLen returns the match length when IsComplete is true, 0
	// otherwise.
	LiteralLen() int

	// HeapBytes returns the approximate heap memory used by the prefilter.
	HeapBytes() int
}

// MatchFinder is an optional interface for prefilters that can report the
// matched range directly, avoiding a second verification pass to find the
// match end.
type MatchFinder interface {
	// FindMatch returns the start and end positions of the first match, or
	// (-1, -1) if none exists. The matched bytes are haystack[start:end].
	FindMatch(haystack []byte, start int) (start2, end int)
}
