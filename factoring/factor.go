// Package factoring is a classical simulation of the integer-factoring
// oracle used by the bridge demo: factor(N) -> optional (p, q). It
// answers the same question quantum order finding would, by searching
// the period of a^x mod N exhaustively, so it is only usable for tiny
// moduli.
package factoring

import (
	"math/big"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Factor attempts to split N into two nontrivial factors. ok=false is
// a normal negative result (N prime, every sampled base produced an
// odd period or trivial square roots), not a fault. attempts bounds
// the number of random bases tried; <= 0 means 16.
func Factor(N *big.Int, rng *RNG, attempts int) (p, q *big.Int, ok bool) {
	if N == nil || N.Cmp(big.NewInt(4)) < 0 {
		return nil, nil, false
	}
	if attempts <= 0 {
		attempts = 16
	}

	// Even and perfect-power shortcuts.
	if N.Bit(0) == 0 {
		return big.NewInt(2), new(big.Int).Rsh(N, 1), true
	}
	if p, q, ok = perfectPower(N); ok {
		return p, q, true
	}

	span := new(big.Int).Sub(N, big.NewInt(3)) // bases in [2, N-1)
	for t := 0; t < attempts; t++ {
		a := new(big.Int).Add(rng.RandBigInt(span), two)
		g := new(big.Int).GCD(nil, nil, a, N)
		if g.Cmp(one) > 0 {
			// Lucky base: already shares a factor.
			return g, new(big.Int).Div(N, g), true
		}
		r, found := period(a, N)
		if !found || r%2 != 0 {
			continue
		}
		// x = a^(r/2) mod N; x = N-1 gives only trivial roots.
		x := new(big.Int).Exp(a, big.NewInt(r/2), N)
		nm1 := new(big.Int).Sub(N, one)
		if x.Cmp(nm1) == 0 {
			continue
		}
		for _, cand := range []*big.Int{
			new(big.Int).Sub(x, one),
			new(big.Int).Add(x, one),
		} {
			g := new(big.Int).GCD(nil, nil, cand, N)
			if g.Cmp(one) > 0 && g.Cmp(N) < 0 {
				return g, new(big.Int).Div(N, g), true
			}
		}
	}
	return nil, nil, false
}

// period finds the least r >= 1 with a^r == 1 mod N by iterated
// multiplication. O(N) multiplications; the oracle's whole point is
// that this is the step a quantum computer answers in polynomial time.
func period(a, N *big.Int) (int64, bool) {
	if !N.IsInt64() {
		return 0, false
	}
	cur := new(big.Int).Set(a)
	cur.Mod(cur, N)
	limit := N.Int64() // callers keep N tiny
	for r := int64(1); r <= limit; r++ {
		if cur.Cmp(one) == 0 {
			return r, true
		}
		cur.Mul(cur, a)
		cur.Mod(cur, N)
	}
	return 0, false
}

// perfectPower checks N = root^k for some k >= 2.
func perfectPower(N *big.Int) (p, q *big.Int, ok bool) {
	for k := 2; k <= N.BitLen(); k++ {
		root := integerRoot(N, k)
		if root.Cmp(one) <= 0 {
			continue
		}
		if new(big.Int).Exp(root, big.NewInt(int64(k)), nil).Cmp(N) == 0 {
			return root, new(big.Int).Div(N, root), true
		}
	}
	return nil, nil, false
}

// integerRoot returns floor(N^(1/k)) by binary search.
func integerRoot(N *big.Int, k int) *big.Int {
	lo, hi := big.NewInt(1), new(big.Int).Set(N)
	kk := big.NewInt(int64(k))
	for lo.Cmp(hi) < 0 {
		mid := new(big.Int).Add(lo, hi)
		mid.Add(mid, one).Rsh(mid, 1)
		if new(big.Int).Exp(mid, kk, nil).Cmp(N) <= 0 {
			lo.Set(mid)
		} else {
			hi.Sub(mid, one)
		}
	}
	return lo
}
