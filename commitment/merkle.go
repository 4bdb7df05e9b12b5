package commitment

import "math/big"

// Commit hashes every trace element into a leaf digest and folds the
// leaves into a single root. The leaf slice is returned alongside the
// root so callers can rebuild alternate trees without re-hashing the
// whole trace; the tree itself is not retained.
func Commit(trace []*big.Int, h Hasher) (Digest, []Digest) {
	leaves := make([]Digest, len(trace))
	for i, v := range trace {
		leaves[i] = h.HashValue(v)
	}
	return FoldLeaves(leaves, h), leaves
}

// FoldLeaves folds a level of digests pairwise until one remains and
// returns it as the root. A level of odd length duplicates its last
// digest before pairing; the duplication rule must be reproduced
// exactly or roots stop being comparable across implementations. A
// single leaf is its own root. The input slice is not mutated.
func FoldLeaves(leaves []Digest, h Hasher) Digest {
	if len(leaves) == 0 {
		return h.HashBytes(nil)
	}
	level := append([]Digest(nil), leaves...)
	for len(level) > 1 {
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}
		next := make([]Digest, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next[i/2] = h.HashPair(level[i], level[i+1])
		}
		level = next
	}
	return level[0]
}
