package hashsearch

import (
	"github.com/qgramsearch/sigmatch/seqmatch"
	"github.com/qgramsearch/sigmatch/window"
)

// bruteForceStreamForward is the stream-search counterpart used whenever the
// array path would use any strategy other than SignedHash (the literal-set
// accelerator, memmem, ShiftOr or BruteForce): none of these has a
// window-aware implementation, so the stream is scanned position by position
// via matchesAtStream, at O(n*L) cost.
func bruteForceStreamForward(seq *seqmatch.SequenceMatcher, r window.Reader, from, to uint64) (int64, error) {
	for pos := from; pos <= to; pos++ {
		matched, err := matchesAtStream(seq, r, pos)
		if err != nil {
			return NoMatch, err
		}
		if matched {
			return int64(pos), nil
		}
	}
	return NoMatch, nil
}

// bruteForceStreamBackward mirrors bruteForceStreamForward, scanning from to
// down to from so the highest match wins.
func bruteForceStreamBackward(seq *seqmatch.SequenceMatcher, r window.Reader, from, to uint64) (int64, error) {
	if from > to {
		return NoMatch, nil
	}
	for pos := to; ; pos-- {
		matched, err := matchesAtStream(seq, r, pos)
		if err != nil {
			return NoMatch, err
		}
		if matched {
			return int64(pos), nil
		}
		if pos == from {
			break
		}
	}
	return NoMatch, nil
}
