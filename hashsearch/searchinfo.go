package hashsearch

import (
	"math/bits"

	"github.com/qgramsearch/sigmatch/seqmatch"
)

// SearchInfo is the pre-computed shift table and hash parameters for one
// search direction. A nil *SearchInfo (returned alongside a nil error)
// means "pattern unsearchable by SignedHash in this direction; use
// fallback" — this is not an error.
type SearchInfo struct {
	shifts    []int32
	hashShift uint
}

// HashSize returns the table's HASH_SIZE (log2 of its length).
func (si *SearchInfo) HashSize() uint { return 64 - si.hashShift }

// effectiveMaxPowerTwo resolves a caller's power_two_size hint into the
// ceiling HASH_SIZE auto-selection may use.
func effectiveMaxPowerTwo(powerTwoSize int) int {
	if powerTwoSize < 0 {
		return -powerTwoSize
	}
	return MaxPowerTwoSize
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ceilLog2 returns the smallest k such that 1<<k >= n, for n >= 1.
func ceilLog2(n uint64) int {
	if n <= 1 {
		return 0
	}
	return bits.Len64(n - 1)
}

func validatePowerTwoSize(powerTwoSize int) error {
	if powerTwoSize > MaxPowerTwoSize || powerTwoSize < -MaxPowerTwoSize {
		return ErrInvalidHashSize
	}
	return nil
}

// buildForward builds the shift table used by forward search.
//
// Returns (nil, nil) when the pattern is unsearchable by SignedHash (too
// short, or the table would be unprofitable) — the caller falls back.
func buildForward(seq *seqmatch.SequenceMatcher, powerTwoSize int) (*SearchInfo, error) {
	if err := validatePowerTwoSize(powerTwoSize); err != nil {
		return nil, err
	}
	l := seq.Len()
	if l < Q {
		return nil, nil
	}
	effectiveMax := effectiveMaxPowerTwo(powerTwoSize)
	maxTableSize := uint64(1) << uint(effectiveMax)

	// Step A: qgram-start scan, walking q-gram start positions p from
	// L-Q down to 0, stopping as soon as the running product would
	// saturate the table.
	qgramStart := 0
	totalQgrams := uint64(0)
	for p := l - Q; p >= 0; p-- {
		n0 := uint64(seq.NumBytesAt(p))
		n1 := uint64(seq.NumBytesAt(p + 1))
		n2 := uint64(seq.NumBytesAt(p + 2))
		n3 := uint64(seq.NumBytesAt(p + 3))
		totalQgrams += n0 * n1 * n2 * n3
		if totalQgrams/4 >= maxTableSize {
			qgramStart = p + 1
			break
		}
		qgramStart = p
	}

	// Step B: choose HASH_SIZE.
	hashSize := powerTwoSize
	if hashSize <= 0 {
		q := ceilLog2(totalQgrams)
		hashSize = clampInt(q, MinPowerTwoSize, effectiveMax)
	}

	// Step C: max shift gate.
	maxSearchShift := l - Q - qgramStart + 1
	if maxSearchShift < maxSearchShiftFloor {
		return nil, nil
	}

	hashShift := uint(64 - hashSize)
	shifts := make([]int32, 1<<uint(hashSize))
	for i := range shifts {
		shifts[i] = int32(maxSearchShift)
	}

	// Step D: fill interior shifts, e ranging over end positions
	// [qgramStart+Q-1, L-2].
	for e := qgramStart + Q - 1; e <= l-2; e++ {
		currentShift := int32((l - 1) - e)
		s := e - (Q - 1)
		b0 := seq.MatcherAt(s).AcceptedBytes()
		b1 := seq.MatcherAt(s + 1).AcceptedBytes()
		b2 := seq.MatcherAt(s + 2).AcceptedBytes()
		b3 := seq.MatcherAt(s + 3).AcceptedBytes()
		enumerateQgrams(b0, b1, b2, b3, func(key uint32) {
			h := hash(key, hashShift)
			if currentShift < shifts[h] {
				shifts[h] = currentShift
			}
		})
	}

	// Step E: negative terminal marking; the terminal q-gram sits at end
	// position L-1 (start L-Q) and must always force verification.
	{
		s := l - Q
		b0 := seq.MatcherAt(s).AcceptedBytes()
		b1 := seq.MatcherAt(s + 1).AcceptedBytes()
		b2 := seq.MatcherAt(s + 2).AcceptedBytes()
		b3 := seq.MatcherAt(s + 3).AcceptedBytes()
		enumerateQgrams(b0, b1, b2, b3, func(key uint32) {
			h := hash(key, hashShift)
			if shifts[h] > 0 {
				shifts[h] = -shifts[h]
			}
		})
	}

	return &SearchInfo{shifts: shifts, hashShift: hashShift}, nil
}

// buildBackward builds the mirrored shift table used by backward search.
// The terminal q-gram is the one at pattern positions [0, Q-1]; interior
// shifts measure distance from the pattern start.
func buildBackward(seq *seqmatch.SequenceMatcher, powerTwoSize int) (*SearchInfo, error) {
	if err := validatePowerTwoSize(powerTwoSize); err != nil {
		return nil, err
	}
	l := seq.Len()
	if l < Q {
		return nil, nil
	}
	effectiveMax := effectiveMaxPowerTwo(powerTwoSize)
	maxTableSize := uint64(1) << uint(effectiveMax)

	// qgram-start scan, walking q-gram start positions s from 0 up to
	// L-Q, stopping as soon as the running product would saturate the
	// table. qgramEndCutoff is the rightmost included start position.
	qgramEndCutoff := l - Q
	totalQgrams := uint64(0)
	for s := 0; s <= l-Q; s++ {
		n0 := uint64(seq.NumBytesAt(s))
		n1 := uint64(seq.NumBytesAt(s + 1))
		n2 := uint64(seq.NumBytesAt(s + 2))
		n3 := uint64(seq.NumBytesAt(s + 3))
		totalQgrams += n0 * n1 * n2 * n3
		if totalQgrams/4 >= maxTableSize {
			qgramEndCutoff = s - 1
			break
		}
		qgramEndCutoff = s
	}

	hashSize := powerTwoSize
	if hashSize <= 0 {
		q := ceilLog2(totalQgrams)
		hashSize = clampInt(q, MinPowerTwoSize, effectiveMax)
	}

	maxSearchShift := qgramEndCutoff + 1
	if maxSearchShift < maxSearchShiftFloor {
		return nil, nil
	}

	hashShift := uint(64 - hashSize)
	shifts := make([]int32, 1<<uint(hashSize))
	for i := range shifts {
		shifts[i] = int32(maxSearchShift)
	}

	// Interior shifts: start positions s in [1, qgramEndCutoff], excluding
	// the terminal (s=0). current_shift = s.
	for s := 1; s <= qgramEndCutoff; s++ {
		currentShift := int32(s)
		b0 := seq.MatcherAt(s).AcceptedBytes()
		b1 := seq.MatcherAt(s + 1).AcceptedBytes()
		b2 := seq.MatcherAt(s + 2).AcceptedBytes()
		b3 := seq.MatcherAt(s + 3).AcceptedBytes()
		enumerateQgrams(b0, b1, b2, b3, func(key uint32) {
			h := hash(key, hashShift)
			if currentShift < shifts[h] {
				shifts[h] = currentShift
			}
		})
	}

	// Terminal q-gram at start position 0.
	{
		b0 := seq.MatcherAt(0).AcceptedBytes()
		b1 := seq.MatcherAt(1).AcceptedBytes()
		b2 := seq.MatcherAt(2).AcceptedBytes()
		b3 := seq.MatcherAt(3).AcceptedBytes()
		enumerateQgrams(b0, b1, b2, b3, func(key uint32) {
			h := hash(key, hashShift)
			if shifts[h] > 0 {
				shifts[h] = -shifts[h]
			}
		})
	}

	return &SearchInfo{shifts: shifts, hashShift: hashShift}, nil
}
