// Package simd provides pure-Go byte-scanning primitives used by the
// rare-byte literal matcher: single/paired/tripled byte search and
// substring search, all built on SWAR (SIMD Within A Register) techniques
// over uint64 words rather than real vector instructions.
package simd

// Memchr returns the index of the first instance of needle in haystack, or
// -1 if needle is not present.
func Memchr(haystack []byte, needle byte) int {
	return memchrGeneric(haystack, needle)
}

// Memchr2 returns the index of the first instance of either needle1 or
// needle2 in haystack, or -1 if neither is present.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	return memchr2Generic(haystack, needle1, needle2)
}

// Memchr3 returns the index of the first instance of needle1, needle2, or
// needle3 in haystack, or -1 if none are present.
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	return memchr3Generic(haystack, needle1, needle2, needle3)
}
