package stark

import (
	"fmt"
	"math/big"
)

// GenTrace returns the length-n execution trace of the Fibonacci rule:
// trace[0] = trace[1] = 1 and trace[i] = trace[i-1] + trace[i-2].
// Values are arbitrary precision; the trace grows past 64 bits around
// n = 93.
func GenTrace(n int) ([]*big.Int, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLength, n)
	}
	trace := make([]*big.Int, n)
	trace[0] = big.NewInt(1)
	trace[1] = big.NewInt(1)
	for i := 2; i < n; i++ {
		trace[i] = new(big.Int).Add(trace[i-1], trace[i-2])
	}
	return trace, nil
}
