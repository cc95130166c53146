package hashsearch

// enumerateQgrams calls visit once for every q-gram key in the Cartesian
// product of the four accepted-byte lists b0..b3.
//
// Implemented as four fixed nested loops (Q is fixed at 4) rather than a
// recursive permutation generator: an explicit nested-indexing state of
// four cursors, no recursive allocation. Building the key incrementally as
// the loops nest also gives
// the common-case fast path for free: when b0, b1 and b2 are all
// single-byte classes (the usual shape — only the last position carries a
// real class), the outer three loops run their single iteration and the
// innermost loop degenerates to a linear sweep over b3 with the shared
// prefix of the key computed once.
func enumerateQgrams(b0, b1, b2, b3 []byte, visit func(key uint32)) {
	for _, x0 := range b0 {
		k0 := uint32(x0) << 24
		for _, x1 := range b1 {
			k01 := k0 | uint32(x1)<<16
			for _, x2 := range b2 {
				k012 := k01 | uint32(x2)<<8
				for _, x3 := range b3 {
					visit(k012 | uint32(x3))
				}
			}
		}
	}
}
