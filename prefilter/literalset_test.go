package prefilter

import (
	"testing"

	"github.com/qgramsearch/sigmatch/bytematch"
	"github.com/qgramsearch/sigmatch/seqmatch"
)

func mustClassSeq(t *testing.T) *seqmatch.SequenceMatcher {
	t.Helper()
	cls, err := bytematch.NewSet([]byte{'C', 'D', 'E'})
	if err != nil {
		t.Fatal(err)
	}
	s, err := seqmatch.New([]bytematch.ByteMatcher{
		bytematch.NewSingle('A'),
		bytematch.NewSingle('B'),
		cls,
		bytematch.NewSingle('F'),
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewLiteralSetAcceleratorBuildsForSmallEnumeration(t *testing.T) {
	seq := mustClassSeq(t)
	accel, ok := NewLiteralSetAccelerator(seq)
	if !ok || accel == nil {
		t.Fatalf("expected accelerator to build for a 3-way byte class")
	}
	if !accel.IsComplete() {
		t.Fatalf("every enumerated literal has the full pattern length, expected IsComplete")
	}
	if accel.LiteralLen() != seq.Len() {
		t.Fatalf("LiteralLen() = %d, want %d", accel.LiteralLen(), seq.Len())
	}

	data := []byte("ABZFABCEABDFABEF")
	pos := accel.Find(data, 0)
	if pos != 8 {
		t.Fatalf("Find() = %d, want 8", pos)
	}
}

func TestNewLiteralSetAcceleratorRejectsPlainLiteral(t *testing.T) {
	seq, err := seqmatch.NewFromBytes([]byte("abcdef"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := NewLiteralSetAccelerator(seq); ok {
		t.Fatalf("a pattern with no byte classes enumerates to one literal, below MinTeddyPatterns")
	}
}

func TestNewLiteralSetAcceleratorRejectsShortPattern(t *testing.T) {
	cls, err := bytematch.NewSet([]byte{'A', 'B'})
	if err != nil {
		t.Fatal(err)
	}
	seq, err := seqmatch.New([]bytematch.ByteMatcher{cls, bytematch.NewSingle('x')})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := NewLiteralSetAccelerator(seq); ok {
		t.Fatalf("length-2 pattern is below MinTeddyPatternLen, expected rejection")
	}
}

func TestNewLiteralSetAcceleratorRejectsWideEnumeration(t *testing.T) {
	wide, err := bytematch.NewRange(0, 200) // 201 accepted bytes
	if err != nil {
		t.Fatal(err)
	}
	seq, err := seqmatch.New([]bytematch.ByteMatcher{
		wide, bytematch.NewSingle('x'), bytematch.NewSingle('y'),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := NewLiteralSetAccelerator(seq); ok {
		t.Fatalf("201-way enumeration exceeds MaxTeddyPatterns, expected rejection")
	}
}

func TestEnumerateLiteralSetAbortsEarly(t *testing.T) {
	wide, err := bytematch.NewRange(0, 255)
	if err != nil {
		t.Fatal(err)
	}
	seq, err := seqmatch.New([]bytematch.ByteMatcher{wide, wide, wide, wide})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := enumerateLiteralSet(seq, MaxTeddyPatterns); ok {
		t.Fatalf("256^4 enumeration must abort, not materialize")
	}
}
