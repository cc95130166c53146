// Package seqmatch provides an ordered sequence of byte-class matchers: the
// verification oracle the search algorithms call once a shift table has
// identified a candidate position.
package seqmatch

import (
	"errors"

	"github.com/qgramsearch/sigmatch/bytematch"
)

// ErrEmptySequence is returned when constructing a SequenceMatcher with no
// matchers at all (L must be >= 1).
var ErrEmptySequence = errors.New("seqmatch: sequence must have at least one matcher")

// SequenceMatcher is an ordered, 0-indexed, fixed-length sequence of
// bytematch.ByteMatcher values.
//
// It is immutable after construction and safe for concurrent read-only use.
type SequenceMatcher struct {
	matchers []bytematch.ByteMatcher
}

// New builds a SequenceMatcher from an explicit slice of matchers.
//
// The slice is copied; mutating the caller's slice afterward has no effect.
func New(matchers []bytematch.ByteMatcher) (*SequenceMatcher, error) {
	if len(matchers) == 0 {
		return nil, ErrEmptySequence
	}
	cp := make([]bytematch.ByteMatcher, len(matchers))
	copy(cp, matchers)
	return &SequenceMatcher{matchers: cp}, nil
}

// NewFromBytes builds a SequenceMatcher where every position matches exactly
// one concrete byte (a plain literal pattern).
func NewFromBytes(data []byte) (*SequenceMatcher, error) {
	if len(data) == 0 {
		return nil, ErrEmptySequence
	}
	matchers := make([]bytematch.ByteMatcher, len(data))
	for i, b := range data {
		matchers[i] = bytematch.NewSingle(b)
	}
	return &SequenceMatcher{matchers: matchers}, nil
}

// Len returns the pattern length L.
func (s *SequenceMatcher) Len() int { return len(s.matchers) }

// MatcherAt returns the matcher at position i (0 <= i < Len()).
func (s *SequenceMatcher) MatcherAt(i int) bytematch.ByteMatcher { return s.matchers[i] }

// NumBytesAt returns the cardinality of the accepted set at position i.
func (s *SequenceMatcher) NumBytesAt(i int) int { return s.matchers[i].NumBytes() }

// IsLiteral reports whether every position accepts exactly one byte, i.e.
// the sequence is equivalent to a single concrete byte string.
func (s *SequenceMatcher) IsLiteral() bool {
	for _, m := range s.matchers {
		if m.NumBytes() != 1 {
			return false
		}
	}
	return true
}

// Literal returns the concrete byte string this sequence matches when
// IsLiteral() is true. The second return value is false otherwise.
func (s *SequenceMatcher) Literal() ([]byte, bool) {
	out := make([]byte, len(s.matchers))
	for i, m := range s.matchers {
		ab := m.AcceptedBytes()
		if len(ab) != 1 {
			return nil, false
		}
		out[i] = ab[0]
	}
	return out, true
}

// Matches reports whether data[offset:offset+Len()] satisfies every
// position's matcher. Returns false (never panics) if the range would be
// out of bounds.
func (s *SequenceMatcher) Matches(data []byte, offset int) bool {
	if offset < 0 || offset+len(s.matchers) > len(data) {
		return false
	}
	return s.MatchesUnchecked(data, offset)
}

// MatchesUnchecked is identical to Matches but assumes the caller has
// already proved offset+Len() <= len(data) and offset >= 0. Calling it
// otherwise may panic; it is used by the SignedHash array loop and by
// shiftor.BruteForce, which prove the bound before calling it.
func (s *SequenceMatcher) MatchesUnchecked(data []byte, offset int) bool {
	for i, m := range s.matchers {
		if !m.Matches(data[offset+i]) {
			return false
		}
	}
	return true
}
