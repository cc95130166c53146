package shiftor

import "github.com/qgramsearch/sigmatch/seqmatch"

// BruteForce is the universal correctness backstop: a linear scan that
// calls SequenceMatcher.Matches at every candidate position.
//
// ShiftOr's single-word state bounds it to MaxPatternLen; a pattern longer
// than that can still only reach the fallback tier if its q-gram table was
// judged unprofitable, which can happen even for long
// patterns (e.g. a huge byte class near the end of the pattern forces the
// forward qgram_start up near the end, and one near the start does the same
// to the backward cutoff, shrinking MAX_SEARCH_SHIFT below 2). BruteForce has no
// length limit, so the dispatcher never fails to construct a searcher
// regardless of pattern shape.
type BruteForce struct {
	seq *seqmatch.SequenceMatcher
}

// NewBruteForce wraps seq for brute-force verification at every position.
func NewBruteForce(seq *seqmatch.SequenceMatcher) *BruteForce {
	return &BruteForce{seq: seq}
}

// SearchForward returns the first match position in [from, to], or -1.
func (b *BruteForce) SearchForward(data []byte, from, to int) int {
	if from < 0 {
		from = 0
	}
	lastStart := len(data) - b.seq.Len()
	if to > lastStart {
		to = lastStart
	}
	for i := from; i <= to; i++ {
		if b.seq.MatchesUnchecked(data, i) {
			return i
		}
	}
	return -1
}

// SearchBackward returns the last match position in [from, to], or -1.
func (b *BruteForce) SearchBackward(data []byte, from, to int) int {
	if from < 0 {
		from = 0
	}
	lastStart := len(data) - b.seq.Len()
	if to > lastStart {
		to = lastStart
	}
	for i := to; i >= from; i-- {
		if b.seq.MatchesUnchecked(data, i) {
			return i
		}
	}
	return -1
}
