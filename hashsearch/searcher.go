package hashsearch

import (
	"sync"

	"github.com/qgramsearch/sigmatch/prefilter"
	"github.com/qgramsearch/sigmatch/seqmatch"
	"github.com/qgramsearch/sigmatch/shiftor"
	"github.com/qgramsearch/sigmatch/window"
)

// Config tunes how a Searcher is built. The zero value auto-selects
// HASH_SIZE up to MaxPowerTwoSize; DefaultConfig caps auto-selection at 16.
type Config struct {
	// PowerTwoSize selects HASH_SIZE. A negative value N (the default, -16)
	// means "auto-select, capped at -N"; a positive value fixes HASH_SIZE
	// exactly. Magnitude must not exceed MaxPowerTwoSize.
	PowerTwoSize int
}

// DefaultConfig returns the Config new_from_matcher uses when none is given.
func DefaultConfig() Config {
	return Config{PowerTwoSize: DefaultPowerTwoSize}
}

func (c Config) verify() error {
	return validatePowerTwoSize(c.PowerTwoSize)
}

// strategy names which algorithm a prepared direction uses.
type strategy int

const (
	strategyLiteralSet strategy = iota
	strategySignedHash
	strategyMemmem
	strategyShiftOr
	strategyBruteForce
)

// direction holds the lazily-prepared state for one search direction.
type direction struct {
	once sync.Once

	strategy strategy
	accel    *prefilter.Teddy // valid when strategy == strategyLiteralSet
	info     *SearchInfo      // valid when strategy == strategySignedHash
	literal  []byte           // valid when strategy == strategyMemmem
	shiftOr  *shiftor.Matcher
	brute    *shiftor.BruteForce
}

// prepare selects, in priority order, the cheapest correct strategy for
// seq: a literal-set accelerator when the byte classes enumerate to a small
// alternation of concrete strings (§4.9, replaces the q-gram table for this
// direction rather than adding to it); else a q-gram shift table; else,
// among the fallback family, a rare-byte substring search when the pattern
// has no byte classes at all (§4.10, dominates ShiftOr for that case);
// else ShiftOr; else BruteForce for patterns ShiftOr cannot represent.
func (d *direction) prepare(seq *seqmatch.SequenceMatcher, cfg Config, build func(*seqmatch.SequenceMatcher, int) (*SearchInfo, error)) error {
	var prepErr error
	d.once.Do(func() {
		if accel, ok := prefilter.NewLiteralSetAccelerator(seq); ok {
			d.strategy = strategyLiteralSet
			d.accel = accel
			return
		}
		info, err := build(seq, cfg.PowerTwoSize)
		if err != nil {
			prepErr = err
			return
		}
		if info != nil {
			d.strategy = strategySignedHash
			d.info = info
			return
		}
		if lit, ok := seq.Literal(); ok {
			d.strategy = strategyMemmem
			d.literal = lit
			return
		}
		if m, ok := shiftor.New(seq); ok {
			d.strategy = strategyShiftOr
			d.shiftOr = m
			return
		}
		d.strategy = strategyBruteForce
		d.brute = shiftor.NewBruteForce(seq)
	})
	return prepErr
}

// Searcher finds occurrences of a fixed-length byte-class pattern in a byte
// array or a windowed stream, forward or backward. It is safe for
// concurrent use once any preparation triggered by the first search call on
// each direction has completed; direction state is built lazily and at most
// once, regardless of how many goroutines call in concurrently.
type Searcher struct {
	seq *seqmatch.SequenceMatcher
	cfg Config

	fwd direction
	bwd direction
}

// NewFromMatcher builds a Searcher over an already-constructed
// SequenceMatcher, using cfg to tune shift-table construction.
func NewFromMatcher(seq *seqmatch.SequenceMatcher, cfg Config) (*Searcher, error) {
	if seq == nil || seq.Len() == 0 {
		return nil, ErrEmptySequence
	}
	if err := cfg.verify(); err != nil {
		return nil, err
	}
	return &Searcher{seq: seq, cfg: cfg}, nil
}

// NewFromBytes builds a Searcher for a plain literal byte pattern, using
// the default Config.
func NewFromBytes(pattern []byte) (*Searcher, error) {
	seq, err := seqmatch.NewFromBytes(pattern)
	if err != nil {
		return nil, err
	}
	return NewFromMatcher(seq, DefaultConfig())
}

// Pattern returns the SequenceMatcher this Searcher was built from.
func (s *Searcher) Pattern() *seqmatch.SequenceMatcher { return s.seq }

func (s *Searcher) prepareForward() (*direction, error) {
	if err := s.fwd.prepare(s.seq, s.cfg, buildForward); err != nil {
		return nil, err
	}
	return &s.fwd, nil
}

func (s *Searcher) prepareBackward() (*direction, error) {
	if err := s.bwd.prepare(s.seq, s.cfg, buildBackward); err != nil {
		return nil, err
	}
	return &s.bwd, nil
}

// PrepareForward forces construction of the forward-search state, so the
// cost of building the shift table happens at a time of the caller's
// choosing rather than on the first SearchForwardArray/Stream call.
func (s *Searcher) PrepareForward() error {
	_, err := s.prepareForward()
	return err
}

// PrepareBackward is PrepareForward's backward-direction counterpart.
func (s *Searcher) PrepareBackward() error {
	_, err := s.prepareBackward()
	return err
}

// SearchForwardArray returns the lowest match position in data within
// [from, to] (to inclusive, as a candidate start position), or NoMatch.
func (s *Searcher) SearchForwardArray(data []byte, from, to int) (int, error) {
	d, err := s.prepareForward()
	if err != nil {
		return NoMatch, err
	}
	switch d.strategy {
	case strategyLiteralSet:
		return searchForwardLiteralSet(d.accel, s.seq, data, from, to), nil
	case strategySignedHash:
		return searchForwardArray(d.info, s.seq, data, from, to), nil
	case strategyMemmem:
		return searchForwardMemmem(d.literal, data, from, to), nil
	case strategyShiftOr:
		return d.shiftOr.SearchForward(data, from, to), nil
	default:
		return d.brute.SearchForward(data, from, to), nil
	}
}

// SearchBackwardArray returns the highest match position in data within
// [from, to], or NoMatch. Repeated calls with to=result-1 yield matches in
// decreasing order.
func (s *Searcher) SearchBackwardArray(data []byte, from, to int) (int, error) {
	d, err := s.prepareBackward()
	if err != nil {
		return NoMatch, err
	}
	switch d.strategy {
	case strategyLiteralSet:
		return searchBackwardLiteralSet(d.accel, s.seq, data, from, to), nil
	case strategySignedHash:
		return searchBackwardArray(d.info, s.seq, data, from, to), nil
	case strategyMemmem:
		return searchBackwardMemmem(d.literal, data, from, to), nil
	case strategyShiftOr:
		return d.shiftOr.SearchBackward(data, from, to), nil
	default:
		return d.brute.SearchBackward(data, from, to), nil
	}
}

// SearchForwardStream is SearchForwardArray's counterpart over a
// window.Reader, for input too large to hold as a flat array. Result is
// int64 because stream positions are uint64-addressed.
func (s *Searcher) SearchForwardStream(r window.Reader, from, to uint64) (int64, error) {
	d, err := s.prepareForward()
	if err != nil {
		return NoMatch, err
	}
	switch d.strategy {
	case strategySignedHash:
		return searchForwardStream(d.info, s.seq, r, from, to)
	default:
		// The literal-set accelerator and rare-byte substring search both
		// need a contiguous []byte, which window.Reader does not expose
		// without materializing whole windows; streamed search for those
		// strategies falls back to per-position verification instead.
		return bruteForceStreamForward(s.seq, r, from, to)
	}
}

// SearchBackwardStream is SearchBackwardArray's counterpart over a
// window.Reader.
func (s *Searcher) SearchBackwardStream(r window.Reader, from, to uint64) (int64, error) {
	d, err := s.prepareBackward()
	if err != nil {
		return NoMatch, err
	}
	switch d.strategy {
	case strategySignedHash:
		return searchBackwardStream(d.info, s.seq, r, from, to)
	default:
		return bruteForceStreamBackward(s.seq, r, from, to)
	}
}
