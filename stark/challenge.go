package stark

import (
	"encoding/binary"
	"fmt"

	"github.com/tuneinsight/lattigo/v4/utils"
)

// SampleChallenges draws k distinct indices uniformly without
// replacement from [0, n-2), so that i, i+1 and i+2 are all valid
// positions of a length-n trace. No ordering is guaranteed. The PRNG
// is caller-supplied; a keyed PRNG (utils.NewKeyedPRNG) makes the
// draw reproducible.
func SampleChallenges(prng utils.PRNG, n, k int) ([]int, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: trace length %d", ErrInvalidLength, n)
	}
	m := n - 2
	if k < 0 || k > m {
		return nil, fmt.Errorf("%w: k=%d, available=%d", ErrInsufficientRange, k, m)
	}
	if k == 0 {
		return []int{}, nil
	}
	// Partial Fisher-Yates: after k steps the first k slots hold a
	// uniform draw without replacement.
	perm := make([]int, m)
	for i := range perm {
		perm[i] = i
	}
	for i := 0; i < k; i++ {
		j, err := randInt(prng, int64(m-i))
		if err != nil {
			return nil, err
		}
		t := i + int(j)
		perm[i], perm[t] = perm[t], perm[i]
	}
	out := make([]int, k)
	copy(out, perm[:k])
	return out, nil
}

// randInt returns a uniform value in [0, max) via 64-bit rejection
// sampling.
func randInt(prng utils.PRNG, max int64) (int64, error) {
	if max <= 0 {
		return 0, fmt.Errorf("stark: randInt max must be > 0")
	}
	limit := (^uint64(0) / uint64(max)) * uint64(max)
	var buf [8]byte
	for {
		if _, err := prng.Read(buf[:]); err != nil {
			return 0, err
		}
		x := binary.LittleEndian.Uint64(buf[:])
		if x < limit {
			return int64(x % uint64(max)), nil
		}
	}
}
