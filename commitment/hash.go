package commitment

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// Digest is a lowercase hex string. Its width is fixed for a given
// Strength, so concatenating two digests is unambiguous.
type Digest string

// Strength selects how much of the SHA3-512 output a Hasher retains.
// The zero value is full strength.
type Strength struct {
	bits int // 0 means the full 512
}

// Full retains the complete 512-bit digest.
func Full() Strength { return Strength{} }

// Truncated retains only the first bits of the digest. It panics
// unless 4 <= bits <= 512 and bits is a multiple of 4, so that the
// cut is exact in hex characters.
func Truncated(bits int) Strength {
	if bits < 4 || bits > 512 || bits%4 != 0 {
		panic("commitment: truncation bits must be a multiple of 4 in [4,512]")
	}
	if bits == 512 {
		return Strength{}
	}
	return Strength{bits: bits}
}

// Bits returns the retained digest width in bits.
func (s Strength) Bits() int {
	if s.bits == 0 {
		return 512
	}
	return s.bits
}

// HexLen returns the digest width in hex characters.
func (s Strength) HexLen() int { return s.Bits() / 4 }

// IsFull reports whether the full digest is retained.
func (s Strength) IsFull() bool { return s.bits == 0 }

func (s Strength) String() string {
	if s.IsFull() {
		return "full"
	}
	return fmt.Sprintf("trunc%d", s.bits)
}

// Hasher maps raw trace values and digest pairs to digests of one
// fixed strength. Digest equality is the sole tree-node equality
// criterion, so both operations must be deterministic.
type Hasher struct {
	strength Strength
}

// NewHasher returns a Hasher of the given strength.
func NewHasher(s Strength) Hasher { return Hasher{strength: s} }

// Strength returns the configured digest strength.
func (h Hasher) Strength() Strength { return h.strength }

// HashValue hashes the decimal representation of a trace value into a
// leaf digest.
func (h Hasher) HashValue(v *big.Int) Digest {
	return h.HashBytes([]byte(v.String()))
}

// HashPair hashes left||right into an interior-node digest. Both
// inputs are fixed-width for this strength, so the concatenation is
// order-preserving.
func (h Hasher) HashPair(left, right Digest) Digest {
	buf := make([]byte, 0, len(left)+len(right))
	buf = append(buf, left...)
	buf = append(buf, right...)
	return h.HashBytes(buf)
}

// HashBytes hashes an arbitrary byte string. This is the primitive
// under HashValue and HashPair; the secret-sharing walkthrough commits
// party views through it as well.
func (h Hasher) HashBytes(data []byte) Digest {
	sum := sha3.Sum512(data)
	hx := hex.EncodeToString(sum[:])
	return Digest(hx[:h.strength.HexLen()])
}
