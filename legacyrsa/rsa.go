// Package legacyrsa is the fixed-key asymmetric signing black box of
// the bridge demo: textbook RSA with deliberately tiny parameters.
// The factoring oracle exists to break exactly this key; nothing in
// the commitment core depends on it.
package legacyrsa

import (
	"errors"
	"fmt"
	"math/big"
)

var one = big.NewInt(1)

// Key is a signing capability. Whoever holds it can sign; the public
// half is (N, E).
type Key struct {
	N *big.Int
	E *big.Int
	d *big.Int
}

// NewKey builds a key from two primes and a public exponent. e must
// be invertible modulo phi(N).
func NewKey(p, q, e int64) (*Key, error) {
	P := big.NewInt(p)
	Q := big.NewInt(q)
	phi := new(big.Int).Mul(new(big.Int).Sub(P, one), new(big.Int).Sub(Q, one))
	E := big.NewInt(e)
	d := new(big.Int).ModInverse(E, phi)
	if d == nil {
		return nil, fmt.Errorf("legacyrsa: e=%d is not invertible mod phi=%s", e, phi)
	}
	return &Key{N: new(big.Int).Mul(P, Q), E: E, d: d}, nil
}

// DefaultToyKey returns the demo key: p=3, q=5, e=3.
func DefaultToyKey() *Key {
	k, err := NewKey(3, 5, 3)
	if err != nil {
		panic(err) // fixed demo parameters, cannot fail
	}
	return k
}

// D exposes the private exponent. The demo prints it; a real key
// would not have this method.
func (k *Key) D() *big.Int { return new(big.Int).Set(k.d) }

// Sign computes m^d mod N over the message residue.
func (k *Key) Sign(m *big.Int) *big.Int {
	return new(big.Int).Exp(new(big.Int).Mod(m, k.N), k.d, k.N)
}

// Verify checks s^e mod N == m mod N. Only the public half is needed.
func Verify(N, E, m, s *big.Int) bool {
	if N == nil || E == nil || m == nil || s == nil || N.Sign() <= 0 {
		return false
	}
	lhs := new(big.Int).Exp(s, E, N)
	rhs := new(big.Int).Mod(m, N)
	return lhs.Cmp(rhs) == 0
}

// RecoverExponent rebuilds the private exponent from the public one
// and the two recovered prime factors of N.
func RecoverExponent(e, p, q *big.Int) (*big.Int, error) {
	if p == nil || q == nil {
		return nil, errors.New("legacyrsa: missing factors")
	}
	phi := new(big.Int).Mul(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))
	d := new(big.Int).ModInverse(e, phi)
	if d == nil {
		return nil, fmt.Errorf("legacyrsa: e=%s not invertible mod phi=%s", e, phi)
	}
	return d, nil
}

// ForgedKey assembles a signing capability from a recovered private
// exponent, closing the factoring attack loop.
func ForgedKey(N, E, d *big.Int) *Key {
	return &Key{
		N: new(big.Int).Set(N),
		E: new(big.Int).Set(E),
		d: new(big.Int).Set(d),
	}
}
