// Package shiftor implements the ShiftOr (bitap) string matcher: the
// unconditionally-applicable fallback used when a pattern is too short for
// the q-gram table, or when shift-table construction concludes the
// resulting shifts would be too small to be profitable.
//
// Classic ShiftOr keeps a single machine-word state, which bounds the
// pattern length it can represent to the word size (64 bits here). Patterns
// longer than that are rare in the fallback path (it is only reached for
// degenerate patterns) but must still be searched correctly, so ShiftOr
// reports itself inapplicable via the ok return of New and callers fall
// further back to BruteForce, which has no such limit.
package shiftor

import "github.com/qgramsearch/sigmatch/seqmatch"

// MaxPatternLen is the longest pattern ShiftOr can represent in one 64-bit
// state word.
const MaxPatternLen = 64

// Matcher is a ShiftOr searcher prepared for one SequenceMatcher.
type Matcher struct {
	mask     [256]uint64 // mask[b] has bit i clear iff position i accepts b
	length   int
	matchBit uint64 // bit (length-1); clear in the state when a full match completes
}

// New builds a ShiftOr matcher for seq. ok is false when seq.Len() exceeds
// MaxPatternLen, in which case the caller must use BruteForce instead.
func New(seq *seqmatch.SequenceMatcher) (m *Matcher, ok bool) {
	l := seq.Len()
	if l == 0 || l > MaxPatternLen {
		return nil, false
	}
	m = &Matcher{length: l, matchBit: 1 << uint(l-1)}
	for b := 0; b < 256; b++ {
		m.mask[b] = ^uint64(0)
	}
	for i := 0; i < l; i++ {
		matcher := seq.MatcherAt(i)
		for _, b := range matcher.AcceptedBytes() {
			m.mask[b] &^= 1 << uint(i)
		}
	}
	return m, true
}

// SearchForward returns the first match position in data at or after from
// (inclusive) and at or before the last valid start position, or -1 if none
// exists. to is an inclusive cap on the candidate start position, mirroring
// the SignedHash array search API.
func (m *Matcher) SearchForward(data []byte, from, to int) int {
	if from < 0 {
		from = 0
	}
	lastStart := len(data) - m.length
	if to > lastStart {
		to = lastStart
	}
	if from > to {
		return -1
	}
	// ShiftOr inherently scans from the beginning of the window it is
	// given; replaying from byte 0 of [from, to+length) keeps the state
	// correctly primed without special-casing a mid-stream start.
	state := ^uint64(0)
	base := from
	end := to + m.length
	if end > len(data) {
		end = len(data)
	}
	for i := base; i < end; i++ {
		state = (state << 1) | m.mask[data[i]]
		pos := i - m.length + 1
		if pos < from {
			continue
		}
		if state&m.matchBit == 0 {
			return pos
		}
	}
	return -1
}

// SearchBackward returns the last match position in data at or before to
// and at or after from, scanning so that repeated calls (with to set to the
// previous result minus one) yield matches in decreasing order.
func (m *Matcher) SearchBackward(data []byte, from, to int) int {
	if from < 0 {
		from = 0
	}
	lastStart := len(data) - m.length
	if to > lastStart {
		to = lastStart
	}
	if from > to {
		return -1
	}
	best := -1
	state := ^uint64(0)
	end := to + m.length
	if end > len(data) {
		end = len(data)
	}
	for i := from; i < end; i++ {
		state = (state << 1) | m.mask[data[i]]
		pos := i - m.length + 1
		if pos < from {
			continue
		}
		if state&m.matchBit == 0 {
			best = pos
		}
	}
	return best
}
