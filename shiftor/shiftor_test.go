package shiftor

import (
	"testing"

	"github.com/qgramsearch/sigmatch/seqmatch"
)

func TestShiftOrForward(t *testing.T) {
	seq, err := seqmatch.NewFromBytes([]byte("fgh"))
	if err != nil {
		t.Fatal(err)
	}
	m, ok := New(seq)
	if !ok {
		t.Fatal("expected ShiftOr to apply")
	}
	data := []byte("abcdefghij")
	if got := m.SearchForward(data, 0, len(data)-1); got != 5 {
		t.Fatalf("SearchForward = %d, want 5", got)
	}
	if got := m.SearchForward(data, 6, len(data)-1); got != -1 {
		t.Fatalf("SearchForward from 6 = %d, want -1", got)
	}
}

func TestShiftOrBackward(t *testing.T) {
	seq, _ := seqmatch.NewFromBytes([]byte("ab"))
	data := []byte("ab cd ab ef ab")
	m, ok := New(seq)
	if !ok {
		t.Fatal("expected ShiftOr to apply")
	}
	pos1 := m.SearchBackward(data, 0, len(data)-1)
	if pos1 != 12 {
		t.Fatalf("first backward match = %d, want 12", pos1)
	}
	pos2 := m.SearchBackward(data, 0, pos1-1)
	if pos2 != 6 {
		t.Fatalf("second backward match = %d, want 6", pos2)
	}
	pos3 := m.SearchBackward(data, 0, pos2-1)
	if pos3 != 0 {
		t.Fatalf("third backward match = %d, want 0", pos3)
	}
}

func TestShiftOrRejectsLongPattern(t *testing.T) {
	long := make([]byte, MaxPatternLen+1)
	for i := range long {
		long[i] = 'a'
	}
	seq, _ := seqmatch.NewFromBytes(long)
	if _, ok := New(seq); ok {
		t.Fatalf("expected New to reject pattern longer than MaxPatternLen")
	}
}

func TestBruteForce(t *testing.T) {
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'x'
	}
	copy(long[40:], []byte("needle"))
	seq, _ := seqmatch.NewFromBytes([]byte("needle"))
	bf := NewBruteForce(seq)
	if got := bf.SearchForward(long, 0, len(long)-1); got != 40 {
		t.Fatalf("SearchForward = %d, want 40", got)
	}
	if got := bf.SearchBackward(long, 0, len(long)-1); got != 40 {
		t.Fatalf("SearchBackward = %d, want 40", got)
	}
}
