// Package bridge wires the trace commitment core to its collaborators
// the way the cross-chain demo does: a relay commits to a trace,
// proves the recurrence spot checks, and signs the published root; the
// destination chain re-checks proof and signature. The package also
// carries the key-recovery exercise that forges legacy signatures
// after factoring the toy modulus.
package bridge

import (
	"fmt"
	"math/big"

	"github.com/rs/zerolog"
	"github.com/tuneinsight/lattigo/v4/utils"

	"stark-bridge/commitment"
	"stark-bridge/factoring"
	"stark-bridge/legacyrsa"
	"stark-bridge/stark"
)

// Payload is the transfer event the source chain emits.
type Payload struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

// Transfer bundles everything the relay hands to the destination
// chain: the payload, the published root, the spot-check proof and a
// signature over the root.
type Transfer struct {
	Payload Payload
	Root    commitment.Digest
	Proof   stark.Proof
	Sig     []byte
}

// Relay builds trace commitments and signs the published roots.
type Relay struct {
	TraceLen   int
	Challenges int
	Hasher     commitment.Hasher
	Log        zerolog.Logger
}

// BuildTransfer generates the trace, commits, answers a fresh
// challenge set and signs the root with the supplied capability.
func (r Relay) BuildTransfer(prng utils.PRNG, payload Payload, signer Signer) (*Transfer, error) {
	trace, err := stark.GenTrace(r.TraceLen)
	if err != nil {
		return nil, err
	}
	root, _ := commitment.Commit(trace, r.Hasher)
	idx, err := stark.SampleChallenges(prng, r.TraceLen, r.Challenges)
	if err != nil {
		return nil, err
	}
	proof, err := stark.Prove(trace, idx)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign([]byte(root))
	if err != nil {
		return nil, fmt.Errorf("bridge: signing root: %w", err)
	}
	r.Log.Info().
		Str("root", shorten(root)).
		Ints("challenges", idx).
		Str("strength", r.Hasher.Strength().String()).
		Msg("relay: transfer built")
	return &Transfer{Payload: payload, Root: root, Proof: proof, Sig: sig}, nil
}

// VerifyTransfer is the destination-chain check: the spot-check proof
// must accept and the root signature must verify. Both run on every
// call; rejection of either is a normal false outcome. The error is
// reserved for proofs that could not be checked.
func VerifyTransfer(t *Transfer, v Verifier, log zerolog.Logger) (bool, error) {
	ok, err := stark.Verify(t.Proof)
	if err != nil {
		return false, err
	}
	if !ok {
		log.Warn().Str("root", shorten(t.Root)).Msg("chainB: spot-check proof rejected")
		return false, nil
	}
	if !v.Verify([]byte(t.Root), t.Sig) {
		log.Warn().Str("root", shorten(t.Root)).Msg("chainB: root signature rejected")
		return false, nil
	}
	log.Info().Str("root", shorten(t.Root)).Msg("chainB: transfer accepted")
	return true, nil
}

// RecoverLegacyKey factors the toy modulus through the oracle and
// rebuilds the private exponent: the forged-signature exercise.
func RecoverLegacyKey(N, E *big.Int, rng *factoring.RNG, log zerolog.Logger) (*legacyrsa.Key, error) {
	p, q, ok := factoring.Factor(N, rng, 0)
	if !ok {
		return nil, fmt.Errorf("bridge: factoring oracle found no split for N=%s", N)
	}
	d, err := legacyrsa.RecoverExponent(E, p, q)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("N", N.String()).
		Str("p", p.String()).
		Str("q", q.String()).
		Str("d", d.String()).
		Msg("attack: legacy private exponent recovered")
	return legacyrsa.ForgedKey(N, E, d), nil
}

func shorten(d commitment.Digest) string {
	if len(d) <= 16 {
		return string(d)
	}
	return string(d[:16]) + "..."
}
