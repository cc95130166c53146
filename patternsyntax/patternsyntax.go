// Package patternsyntax compiles a small textual notation into a
// seqmatch.SequenceMatcher, so tests, examples, and the cmd/ demo have a
// human-writable way to build patterns without constructing ByteMatcher
// slices by hand.
//
// This is explicitly not a regular-expression parser: there is no grouping,
// no quantifiers, and no alternation. Every construct compiles to exactly
// one position of a fixed-length sequence:
//
//	a          literal byte 'a'
//	.          any byte
//	[abc]      byte in the explicit set {a, b, c}
//	[a-z]      byte in the range a-z
//	[a-z0-9_]  byte in a-z, 0-9, or '_' (ranges and singles may combine)
//	[^a-z]     byte NOT in a-z
//	\xHH       literal byte with hex value HH
//	\aHH       byte sharing at least one bit with mask HH (bitmask-any)
//	\AHH       byte carrying every bit of mask HH (bitmask-all)
//	\. \[ \] \\  escaped literal of the special character
//
// A class extracts its byte ranges the way nfa.CharClassSearcher extracts
// ranges from a compiled NFA state, just read directly off the source text
// instead of off a ByteRange/Sparse transition.
package patternsyntax

import (
	"fmt"

	"github.com/qgramsearch/sigmatch/bytematch"
	"github.com/qgramsearch/sigmatch/seqmatch"
)

// Compile parses pattern and builds the SequenceMatcher it describes.
func Compile(pattern string) (*seqmatch.SequenceMatcher, error) {
	p := &parser{src: pattern}
	var matchers []bytematch.ByteMatcher
	for p.pos < len(p.src) {
		m, err := p.next()
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}
	return seqmatch.New(matchers)
}

type parser struct {
	src string
	pos int
}

func (p *parser) next() (bytematch.ByteMatcher, error) {
	c := p.src[p.pos]
	switch c {
	case '.':
		p.pos++
		return bytematch.NewAny(), nil
	case '[':
		return p.parseClass()
	case '\\':
		return p.parseEscape()
	case ']':
		return bytematch.ByteMatcher{}, fmt.Errorf("patternsyntax: unmatched ']' at offset %d", p.pos)
	default:
		p.pos++
		return bytematch.NewSingle(c), nil
	}
}

func (p *parser) parseEscape() (bytematch.ByteMatcher, error) {
	start := p.pos
	p.pos++ // consume '\\'
	if p.pos >= len(p.src) {
		return bytematch.ByteMatcher{}, fmt.Errorf("patternsyntax: dangling '\\' at offset %d", start)
	}
	tag := p.src[p.pos]
	switch tag {
	case '\\', '.', '[', ']':
		p.pos++
		return bytematch.NewSingle(tag), nil
	case 'x':
		b, err := p.readHexByte(start)
		if err != nil {
			return bytematch.ByteMatcher{}, err
		}
		return bytematch.NewSingle(b), nil
	case 'a':
		mask, err := p.readHexByte(start)
		if err != nil {
			return bytematch.ByteMatcher{}, err
		}
		return bytematch.NewBitmaskAny(mask)
	case 'A':
		mask, err := p.readHexByte(start)
		if err != nil {
			return bytematch.ByteMatcher{}, err
		}
		return bytematch.NewBitmaskAll(mask), nil
	default:
		return bytematch.ByteMatcher{}, fmt.Errorf("patternsyntax: unknown escape '\\%c' at offset %d", tag, start)
	}
}

// readHexByte consumes the tag byte already peeked plus two following hex
// digits, returning the parsed value.
func (p *parser) readHexByte(escapeStart int) (byte, error) {
	p.pos++ // consume tag (x/a/A)
	if p.pos+2 > len(p.src) {
		return 0, fmt.Errorf("patternsyntax: truncated hex escape at offset %d", escapeStart)
	}
	hi, ok1 := hexDigit(p.src[p.pos])
	lo, ok2 := hexDigit(p.src[p.pos+1])
	if !ok1 || !ok2 {
		return 0, fmt.Errorf("patternsyntax: invalid hex escape at offset %d", escapeStart)
	}
	p.pos += 2
	return hi<<4 | lo, nil
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// parseClass parses a "[...]" byte class starting at the '['.
func (p *parser) parseClass() (bytematch.ByteMatcher, error) {
	start := p.pos
	p.pos++ // consume '['
	invert := false
	if p.pos < len(p.src) && p.src[p.pos] == '^' {
		invert = true
		p.pos++
	}

	var ranges [][2]byte
	singleRangeOnly := true
	for {
		if p.pos >= len(p.src) {
			return bytematch.ByteMatcher{}, fmt.Errorf("patternsyntax: unterminated '[' at offset %d", start)
		}
		if p.src[p.pos] == ']' {
			p.pos++
			break
		}
		lo, err := p.classByte(start)
		if err != nil {
			return bytematch.ByteMatcher{}, err
		}
		hi := lo
		if p.pos+1 < len(p.src) && p.src[p.pos] == '-' && p.src[p.pos+1] != ']' {
			p.pos++ // consume '-'
			hi, err = p.classByte(start)
			if err != nil {
				return bytematch.ByteMatcher{}, err
			}
			if hi < lo {
				return bytematch.ByteMatcher{}, fmt.Errorf("patternsyntax: descending range in class at offset %d", start)
			}
		}
		if len(ranges) > 0 {
			singleRangeOnly = false
		}
		ranges = append(ranges, [2]byte{lo, hi})
	}
	if len(ranges) == 0 {
		return bytematch.ByteMatcher{}, fmt.Errorf("patternsyntax: empty class at offset %d", start)
	}

	if singleRangeOnly {
		lo, hi := ranges[0][0], ranges[0][1]
		if invert {
			return bytematch.NewInvertedRange(lo, hi)
		}
		return bytematch.NewRange(lo, hi)
	}

	member := [256]bool{}
	for _, r := range ranges {
		for b := int(r[0]); b <= int(r[1]); b++ {
			member[b] = true
		}
	}
	var accepted []byte
	for b := 0; b < 256; b++ {
		if member[b] != invert {
			accepted = append(accepted, byte(b))
		}
	}
	return bytematch.NewSet(accepted)
}

// classByte consumes one literal byte inside a class, resolving the \x, \a,
// \A, and backslash-escapes to their literal byte value (bitmask escapes
// are not meaningful inside a class and are rejected).
func (p *parser) classByte(classStart int) (byte, error) {
	c := p.src[p.pos]
	if c != '\\' {
		p.pos++
		return c, nil
	}
	escStart := p.pos
	p.pos++
	if p.pos >= len(p.src) {
		return 0, fmt.Errorf("patternsyntax: dangling '\\' in class at offset %d", classStart)
	}
	tag := p.src[p.pos]
	switch tag {
	case '\\', '.', '[', ']', '-', '^':
		p.pos++
		return tag, nil
	case 'x':
		return p.readHexByte(escStart)
	default:
		return 0, fmt.Errorf("patternsyntax: escape '\\%c' not valid inside a class at offset %d", tag, escStart)
	}
}
