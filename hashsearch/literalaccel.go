package hashsearch

import (
	"github.com/qgramsearch/sigmatch/prefilter"
	"github.com/qgramsearch/sigmatch/seqmatch"
	"github.com/qgramsearch/sigmatch/simd"
)

// searchForwardLiteralSet returns the lowest candidate-start position in
// [from, to] using a bucketed nibble-mask accelerator built over the full
// enumeration of seq's byte classes. Every accelerator hit is a confirmed
// match (the accelerator's literals have the full pattern length), so no
// SequenceMatcher verification is needed here.
func searchForwardLiteralSet(accel *prefilter.Teddy, seq *seqmatch.SequenceMatcher, data []byte, from, to int) int {
	if from < 0 {
		from = 0
	}
	lastStart := len(data) - seq.Len()
	if to > lastStart {
		to = lastStart
	}
	if from > to {
		return NoMatch
	}
	pos := accel.Find(data, from)
	if pos == NoMatch || pos > to {
		return NoMatch
	}
	return pos
}

// searchBackwardLiteralSet is searchForwardLiteralSet's counterpart,
// returning the highest candidate-start position in [from, to]. Teddy only
// exposes a forward Find, so this walks forward hits and keeps the last one
// that still falls within range.
func searchBackwardLiteralSet(accel *prefilter.Teddy, seq *seqmatch.SequenceMatcher, data []byte, from, to int) int {
	if from < 0 {
		from = 0
	}
	lastStart := len(data) - seq.Len()
	if to > lastStart {
		to = lastStart
	}
	if from > to {
		return NoMatch
	}
	best := NoMatch
	pos := from
	for pos <= to {
		found := accel.Find(data, pos)
		if found == NoMatch || found > to {
			break
		}
		best = found
		pos = found + 1
	}
	return best
}

// searchForwardMemmem returns the lowest occurrence of the concrete literal
// lit in data within [from, to], via a rare-byte substring search rather
// than ShiftOr's bit-parallel scan. Only applicable when seq has no byte
// classes at all (seq.Literal() succeeded).
func searchForwardMemmem(lit []byte, data []byte, from, to int) int {
	if from < 0 {
		from = 0
	}
	lastStart := len(data) - len(lit)
	if to > lastStart {
		to = lastStart
	}
	if from > to {
		return NoMatch
	}
	end := to + len(lit)
	if end > len(data) {
		end = len(data)
	}
	idx := simd.Memmem(data[from:end], lit)
	if idx == -1 {
		return NoMatch
	}
	return from + idx
}

// searchBackwardMemmem is searchForwardMemmem's counterpart, returning the
// highest occurrence in [from, to].
func searchBackwardMemmem(lit []byte, data []byte, from, to int) int {
	if from < 0 {
		from = 0
	}
	lastStart := len(data) - len(lit)
	if to > lastStart {
		to = lastStart
	}
	if from > to {
		return NoMatch
	}
	best := NoMatch
	searchFrom := from
	for searchFrom <= to {
		end := to + len(lit)
		if end > len(data) {
			end = len(data)
		}
		idx := simd.Memmem(data[searchFrom:end], lit)
		if idx == -1 {
			break
		}
		best = searchFrom + idx
		searchFrom = best + 1
	}
	return best
}
