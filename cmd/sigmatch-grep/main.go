// Command sigmatch-grep prints the byte offsets at which a pattern occurs in
// a file, streaming the file through a windowed reader rather than loading
// it whole.
//
// Usage:
//
//	sigmatch-grep -pattern 'GET /[a-z/][a-z/][a-z/]\x20HTTP' file.bin
//
// The pattern notation is patternsyntax's, not a regular expression: see
// that package's doc comment for the grammar.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/qgramsearch/sigmatch/hashsearch"
	"github.com/qgramsearch/sigmatch/patternsyntax"
	"github.com/qgramsearch/sigmatch/window"
)

func main() {
	pattern := flag.String("pattern", "", "pattern in patternsyntax notation (required)")
	windowSize := flag.Int("window", 64*1024, "stream window size in bytes")
	flag.Parse()

	if *pattern == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: sigmatch-grep -pattern PATTERN FILE")
		os.Exit(2)
	}

	found, err := run(*pattern, flag.Arg(0), *windowSize)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sigmatch-grep:", err)
		os.Exit(1)
	}
	if !found {
		os.Exit(1)
	}
}

// run streams path looking for pattern, printing every match offset, and
// reports whether at least one match was found.
func run(pattern, path string, windowSize int) (bool, error) {
	seq, err := patternsyntax.Compile(pattern)
	if err != nil {
		return false, fmt.Errorf("compiling pattern: %w", err)
	}
	searcher, err := hashsearch.NewFromMatcher(seq, hashsearch.DefaultConfig())
	if err != nil {
		return false, fmt.Errorf("building searcher: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, err
	}

	r := window.NewChunkedReader(f, windowSize, uint64(info.Size()), true)
	defer r.Close()

	length, err := r.Length()
	if err != nil {
		return false, err
	}
	if uint64(seq.Len()) > length {
		return false, nil
	}
	lastStart := length - uint64(seq.Len())

	count := 0
	from := uint64(0)
	for from <= lastStart {
		pos, err := searcher.SearchForwardStream(r, from, lastStart)
		if err != nil {
			return false, fmt.Errorf("searching: %w", err)
		}
		if pos < 0 {
			break
		}
		fmt.Printf("%d\n", pos)
		count++
		from = uint64(pos) + 1
	}
	return count > 0, nil
}
