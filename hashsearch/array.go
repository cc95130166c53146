package hashsearch

import "github.com/qgramsearch/sigmatch/seqmatch"

// NoMatch is the sentinel returned by every search function in this package
// when no match exists in the requested range, matching the -1 convention
// used throughout the corpus (Prefilter.Find, simd.Memchr, ...).
const NoMatch = -1

// searchForwardArray scans a flat byte array left to right, reading each
// q-gram straight out of data. from/to bound the candidate start position
// (to is inclusive).
func searchForwardArray(info *SearchInfo, seq *seqmatch.SequenceMatcher, data []byte, from, to int) int {
	l := seq.Len()
	lastPatternPos := l - 1

	searchEnd := to + lastPatternPos
	if maxEnd := len(data) - 1; searchEnd > maxEnd {
		searchEnd = maxEnd
	}
	searchStart := from
	if searchStart < 0 {
		searchStart = 0
	}
	searchStart += lastPatternPos

	i := searchStart
	for i <= searchEnd {
		k := packBE(data[i-3], data[i-2], data[i-1], data[i])
		h := hash(k, info.hashShift)
		s := info.shifts[h]
		if s > 0 {
			i += int(s)
			continue
		}
		candidateStart := i - lastPatternPos
		if seq.MatchesUnchecked(data, candidateStart) {
			return candidateStart
		}
		i += int(-s)
	}
	return NoMatch
}

// searchBackwardArray scans a flat byte array right to left, cursor aligned
// to the start of a potential match. Returns the match closest to `to`
// (repeated calls with to=result-1 yield decreasing positions, for
// highest-to-lowest iteration).
func searchBackwardArray(info *SearchInfo, seq *seqmatch.SequenceMatcher, data []byte, from, to int) int {
	l := seq.Len()
	lastStart := len(data) - l
	if to > lastStart {
		to = lastStart
	}
	if from < 0 {
		from = 0
	}
	if from > to {
		return NoMatch
	}

	i := to
	for i >= from {
		k := packBE(data[i], data[i+1], data[i+2], data[i+3])
		h := hash(k, info.hashShift)
		s := info.shifts[h]
		if s > 0 {
			i -= int(s)
			continue
		}
		if seq.MatchesUnchecked(data, i) {
			return i
		}
		i -= int(-s)
	}
	return NoMatch
}
