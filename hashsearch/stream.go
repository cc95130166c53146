package hashsearch

import (
	"github.com/qgramsearch/sigmatch/seqmatch"
	"github.com/qgramsearch/sigmatch/window"
)

// readByteChecked reads one byte through reader, translating "past-end" and
// I/O failure into the (ok, err) pair callers can branch on directly.
func readByteChecked(r window.Reader, pos uint64) (b byte, ok bool, err error) {
	v, err := r.ReadByte(pos)
	if err != nil {
		return 0, false, err
	}
	if v < 0 {
		return 0, false, nil
	}
	return byte(v), true, nil
}

// matchesAtStream verifies seq against L bytes starting at pos, read
// through reader. Correctness-first: it reads byte by byte so it is
// agnostic to window boundaries; in the SignedHash loops verification only
// runs at the rare negative-shift buckets; the skip loop itself, not this function, does
// the algorithm's heavy lifting.
func matchesAtStream(seq *seqmatch.SequenceMatcher, r window.Reader, pos uint64) (bool, error) {
	l := seq.Len()
	for i := 0; i < l; i++ {
		b, ok, err := readByteChecked(r, pos+uint64(i))
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		if !seq.MatcherAt(i).Matches(b) {
			return false, nil
		}
	}
	return true, nil
}

// searchForwardStream mirrors searchForwardArray but fetches q-gram bytes
// through a window.Reader, including the straddle path when a q-gram
// crosses back into an earlier window.
func searchForwardStream(info *SearchInfo, seq *seqmatch.SequenceMatcher, r window.Reader, from, to uint64) (int64, error) {
	l := seq.Len()
	lastPatternPos := uint64(l - 1)
	searchStart := from + lastPatternPos
	searchEnd := to + lastPatternPos

	i := searchStart
	for i <= searchEnd {
		win, ok := r.WindowFor(i)
		if !ok {
			return NoMatch, nil
		}
		o := r.OffsetInWindow(i)

		var k uint32
		if o >= Q-1 {
			arr := win.Array
			k = packBE(arr[o-3], arr[o-2], arr[o-1], arr[o])
		} else {
			b0, ok0, err := readByteChecked(r, i-3)
			if err != nil {
				return NoMatch, err
			}
			b1, ok1, err := readByteChecked(r, i-2)
			if err != nil {
				return NoMatch, err
			}
			b2, ok2, err := readByteChecked(r, i-1)
			if err != nil {
				return NoMatch, err
			}
			if !ok0 || !ok1 || !ok2 {
				return NoMatch, nil
			}
			k = packBE(b0, b1, b2, win.Array[o])
		}

		h := hash(k, info.hashShift)
		s := info.shifts[h]
		if s > 0 {
			i += uint64(s)
			continue
		}
		candidateStart := i - lastPatternPos
		matched, err := matchesAtStream(seq, r, candidateStart)
		if err != nil {
			return NoMatch, err
		}
		if matched {
			return int64(candidateStart), nil
		}
		i += uint64(-s)
	}
	return NoMatch, nil
}

// searchBackwardStream mirrors searchBackwardArray over a window.Reader:
// cursor aligned to the start of a potential match, straddle path at the
// forward edge of the window (o > window.Length - Q).
func searchBackwardStream(info *SearchInfo, seq *seqmatch.SequenceMatcher, r window.Reader, from, to uint64) (int64, error) {
	i := to
	for {
		if i < from {
			return NoMatch, nil
		}
		win, ok := r.WindowFor(i)
		if !ok {
			// Past-end at the candidate start itself means the pattern
			// cannot fit; step down and keep scanning within range.
			if i == from {
				return NoMatch, nil
			}
			i--
			continue
		}
		o := r.OffsetInWindow(i)

		var k uint32
		if o <= win.Length-Q {
			arr := win.Array
			k = packBE(arr[o], arr[o+1], arr[o+2], arr[o+3])
		} else {
			b0, ok0, err := readByteChecked(r, i)
			if err != nil {
				return NoMatch, err
			}
			b1, ok1, err := readByteChecked(r, i+1)
			if err != nil {
				return NoMatch, err
			}
			b2, ok2, err := readByteChecked(r, i+2)
			if err != nil {
				return NoMatch, err
			}
			b3, ok3, err := readByteChecked(r, i+3)
			if err != nil {
				return NoMatch, err
			}
			if !ok0 || !ok1 || !ok2 || !ok3 {
				// q-gram runs past end of stream; this start position
				// cannot possibly match a full pattern either.
				if i == from {
					return NoMatch, nil
				}
				i--
				continue
			}
			k = packBE(b0, b1, b2, b3)
		}

		h := hash(k, info.hashShift)
		s := info.shifts[h]
		if s > 0 {
			if uint64(s) > i {
				return NoMatch, nil
			}
			i -= uint64(s)
			continue
		}
		matched, err := matchesAtStream(seq, r, i)
		if err != nil {
			return NoMatch, err
		}
		if matched {
			return int64(i), nil
		}
		if uint64(-s) > i {
			return NoMatch, nil
		}
		i -= uint64(-s)
	}
}
