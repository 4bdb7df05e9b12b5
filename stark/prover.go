package stark

import (
	"fmt"
	"math/big"
)

// ProofEntry is one revealed triple: the challenged index, the sum of
// the two predecessor values, and the committed successor.
type ProofEntry struct {
	Index int      `json:"index"`
	LHS   *big.Int `json:"lhs"`
	RHS   *big.Int `json:"rhs"`
}

// Proof answers a challenge set, one entry per challenged index. The
// proof reveals trace values only; it says nothing about the Merkle
// root. Binding to the published root is the commitment's job.
type Proof []ProofEntry

// Prove emits (i, trace[i]+trace[i+1], trace[i+2]) for each challenged
// index. Indices produced by SampleChallenges are valid by
// construction; an index supplied directly must satisfy
// 0 <= i <= len(trace)-3.
func Prove(trace []*big.Int, challenges []int) (Proof, error) {
	proof := make(Proof, 0, len(challenges))
	for _, i := range challenges {
		if i < 0 || i+2 >= len(trace) {
			return nil, fmt.Errorf("%w: index %d, trace length %d", ErrIndexOutOfRange, i, len(trace))
		}
		proof = append(proof, ProofEntry{
			Index: i,
			LHS:   new(big.Int).Add(trace[i], trace[i+1]),
			RHS:   new(big.Int).Set(trace[i+2]),
		})
	}
	return proof, nil
}
