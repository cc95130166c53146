package simd

import (
	"bytes"

	"golang.org/x/sys/cpu"
)

// Memmem returns the index of the first instance of needle in haystack, or
// -1 if needle is not present. It is a drop-in replacement for bytes.Index
// built on a rare-byte heuristic: find candidates for the least frequent
// byte in needle via Memchr, then verify each candidate with a full
// comparison.
func Memmem(haystack, needle []byte) int {
	needleLen := len(needle)
	haystackLen := len(haystack)

	if needleLen == 0 {
		return 0
	}
	if haystackLen == 0 || needleLen > haystackLen {
		return -1
	}
	if needleLen == 1 {
		return Memchr(haystack, needle[0])
	}
	if needleLen >= 2 && cpu.X86.HasAVX2 {
		return memmemPairedRareByte(haystack, needle)
	}
	return memmemSingleRareByte(haystack, needle)
}

// memmemSingleRareByte filters candidates on the single rarest byte in
// needle before verifying.
func memmemSingleRareByte(haystack, needle []byte) int {
	needleLen := len(needle)
	haystackLen := len(haystack)
	rareByte, rareIdx := selectRareByteOptimized(needle)

	searchStart := 0
	for {
		candidatePos := Memchr(haystack[searchStart:], rareByte)
		if candidatePos == -1 {
			return -1
		}
		candidatePos += searchStart

		needleStartPos := candidatePos - rareIdx
		if needleStartPos >= 0 && needleStartPos+needleLen <= haystackLen &&
			bytes.Equal(haystack[needleStartPos:needleStartPos+needleLen], needle) {
			return needleStartPos
		}

		searchStart = candidatePos + 1
		if searchStart >= haystackLen {
			return -1
		}
	}
}

// memmemPairedRareByte filters candidates on the two rarest distinct bytes
// in needle via Memchr2, narrowing the candidate set further than a single
// rare byte before paying for full verification. Gated on AVX2 availability
// as a proxy for "the CPU has enough width that the extra per-candidate
// check pays for itself" — there is no vector code underneath, only the
// same SWAR scan Memchr always uses.
func memmemPairedRareByte(haystack, needle []byte) int {
	needleLen := len(needle)
	haystackLen := len(haystack)
	info := SelectRareBytes(needle)

	searchStart := 0
	for {
		candidatePos := Memchr2(haystack[searchStart:], info.Byte1, info.Byte2)
		if candidatePos == -1 {
			return -1
		}
		candidatePos += searchStart

		b := haystack[candidatePos]
		idx := info.Index1
		if b == info.Byte2 && b != info.Byte1 {
			idx = info.Index2
		}
		needleStartPos := candidatePos - idx
		if needleStartPos >= 0 && needleStartPos+needleLen <= haystackLen &&
			bytes.Equal(haystack[needleStartPos:needleStartPos+needleLen], needle) {
			return needleStartPos
		}

		searchStart = candidatePos + 1
		if searchStart >= haystackLen {
			return -1
		}
	}
}
