package bridge

import (
	"crypto/sha256"
	"math/big"

	"stark-bridge/legacyrsa"
	"stark-bridge/pqsig"
)

// Signer is the capability handed to the relay. Implementations carry
// their own key material; the commitment core never holds any.
type Signer interface {
	Sign(msg []byte) ([]byte, error)
}

// Verifier checks a signature over a message with public material
// only. Every verification path must run it; there is no trusted
// shortcut.
type Verifier interface {
	Verify(msg, sig []byte) bool
}

// LegacySigner signs with the toy RSA key. The message is folded into
// Z_N through SHA-256, the same mapping the destination chain applies.
type LegacySigner struct {
	Key *legacyrsa.Key
}

func (s LegacySigner) Sign(msg []byte) ([]byte, error) {
	m := mapToResidue(msg, s.Key.N)
	return s.Key.Sign(m).Bytes(), nil
}

// LegacyVerifier holds only the public half (N, E).
type LegacyVerifier struct {
	N *big.Int
	E *big.Int
}

func (v LegacyVerifier) Verify(msg, sig []byte) bool {
	m := mapToResidue(msg, v.N)
	s := new(big.Int).SetBytes(sig)
	return legacyrsa.Verify(v.N, v.E, m, s)
}

func mapToResidue(msg []byte, N *big.Int) *big.Int {
	h := sha256.Sum256(msg)
	return new(big.Int).Mod(new(big.Int).SetBytes(h[:]), N)
}

// PQSigner signs with a Lamport one-time key.
type PQSigner struct {
	Priv pqsig.PrivateKey
}

func (s PQSigner) Sign(msg []byte) ([]byte, error) {
	sig, err := pqsig.Sign(s.Priv, msg)
	return []byte(sig), err
}

// PQVerifier holds the Lamport public key blob.
type PQVerifier struct {
	Pub pqsig.PublicKey
}

func (v PQVerifier) Verify(msg, sig []byte) bool {
	return pqsig.Verify(v.Pub, msg, pqsig.Signature(sig))
}
