// Package mpcith is a three-party secret-sharing walkthrough in the
// MPC-in-the-head style: a secret bit string is XOR-shared across
// three simulated parties, each party's view is committed, and a
// challenger opens two of the three views. It is illustrative glue
// around the commitment hasher, not a reusable protocol.
package mpcith

import (
	"errors"
	"fmt"

	"github.com/tuneinsight/lattigo/v4/utils"

	"stark-bridge/commitment"
)

// Parties is fixed: two opened views never determine the secret.
const Parties = 3

// Shares holds one bit-slice per party; bit i of the secret equals
// Shares[0][i] ^ Shares[1][i] ^ Shares[2][i].
type Shares [Parties][]byte

// Share splits secret bits (values 0/1) into three XOR shares. The
// first two shares are random; the third makes the XOR close.
func Share(prng utils.PRNG, secret []byte) (Shares, error) {
	var out Shares
	n := len(secret)
	rnd := make([]byte, 2*n)
	if _, err := prng.Read(rnd); err != nil {
		return out, err
	}
	for p := range out {
		out[p] = make([]byte, n)
	}
	for i, b := range secret {
		if b > 1 {
			return out, fmt.Errorf("mpcith: secret position %d is %d, want a bit", i, b)
		}
		s1 := rnd[2*i] & 1
		s2 := rnd[2*i+1] & 1
		out[0][i] = s1
		out[1][i] = s2
		out[2][i] = b ^ s1 ^ s2
	}
	return out, nil
}

// Reconstruct XORs all three shares back into the secret bits.
func Reconstruct(sh Shares) ([]byte, error) {
	n := len(sh[0])
	for p := 1; p < Parties; p++ {
		if len(sh[p]) != n {
			return nil, errors.New("mpcith: ragged shares")
		}
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = sh[0][i] ^ sh[1][i] ^ sh[2][i]
	}
	return out, nil
}

// CommitViews commits each party's share vector. The digests are what
// the prover publishes before the challenger picks which two parties
// to open.
func CommitViews(sh Shares, h commitment.Hasher) [Parties]commitment.Digest {
	var out [Parties]commitment.Digest
	for p := range sh {
		out[p] = h.HashBytes(append([]byte{byte(p)}, sh[p]...))
	}
	return out
}

// CheckOpened re-commits the two opened views and compares against the
// published digests. hidden names the unopened party.
func CheckOpened(sh Shares, committed [Parties]commitment.Digest, hidden int, h commitment.Hasher) bool {
	if hidden < 0 || hidden >= Parties {
		return false
	}
	for p := range sh {
		if p == hidden {
			continue
		}
		if h.HashBytes(append([]byte{byte(p)}, sh[p]...)) != committed[p] {
			return false
		}
	}
	return true
}
