// Package pqsig is the post-quantum signing black box of the bridge
// demo: Lamport one-time signatures over SHAKE-256. Keys, messages and
// signatures cross the boundary as opaque byte blobs; security rests
// on hash preimage resistance, which order finding does not touch.
package pqsig

import (
	"bytes"
	"errors"

	"github.com/tuneinsight/lattigo/v4/utils"
	"golang.org/x/crypto/sha3"
)

const (
	// DigestBytes is the SHAKE-256 message digest length; the scheme
	// reveals one secret per digest bit.
	DigestBytes = 32
	// SecretBytes is the width of each secret preimage.
	SecretBytes = 32

	numBits = 8 * DigestBytes
	keyLen  = 2 * numBits * SecretBytes
	sigLen  = numBits * SecretBytes
)

// PublicKey holds 2x256 hash values, index-major: the pair for bit 0
// first. PrivateKey holds the matching secrets in the same order.
type (
	PublicKey  []byte
	PrivateKey []byte
	Signature  []byte
)

var errMalformedKey = errors.New("pqsig: malformed key material")

// GenerateKey derives a one-time keypair from the PRNG. A keyed PRNG
// yields a reproducible keypair.
func GenerateKey(prng utils.PRNG) (PublicKey, PrivateKey, error) {
	sk := make(PrivateKey, keyLen)
	if _, err := prng.Read(sk); err != nil {
		return nil, nil, err
	}
	pk := make(PublicKey, keyLen)
	for i := 0; i < 2*numBits; i++ {
		shake256Into(pk[i*SecretBytes:(i+1)*SecretBytes], sk[i*SecretBytes:(i+1)*SecretBytes])
	}
	return pk, sk, nil
}

// Sign reveals one secret per message-digest bit. A private key must
// sign at most one message; a second message halves the remaining
// security with every differing bit.
func Sign(sk PrivateKey, msg []byte) (Signature, error) {
	if len(sk) != keyLen {
		return nil, errMalformedKey
	}
	d := messageDigest(msg)
	sig := make(Signature, sigLen)
	for i := 0; i < numBits; i++ {
		off := (2*i + bit(d, i)) * SecretBytes
		copy(sig[i*SecretBytes:], sk[off:off+SecretBytes])
	}
	return sig, nil
}

// Verify hashes every revealed secret and compares it against the
// public-key entry selected by the corresponding digest bit.
func Verify(pk PublicKey, msg []byte, sig Signature) bool {
	if len(pk) != keyLen || len(sig) != sigLen {
		return false
	}
	d := messageDigest(msg)
	var h [SecretBytes]byte
	for i := 0; i < numBits; i++ {
		shake256Into(h[:], sig[i*SecretBytes:(i+1)*SecretBytes])
		off := (2*i + bit(d, i)) * SecretBytes
		if !bytes.Equal(h[:], pk[off:off+SecretBytes]) {
			return false
		}
	}
	return true
}

func messageDigest(msg []byte) []byte {
	out := make([]byte, DigestBytes)
	h := sha3.NewShake256()
	_, _ = h.Write(msg)
	_, _ = h.Read(out)
	return out
}

func shake256Into(dst, src []byte) {
	h := sha3.NewShake256()
	_, _ = h.Write(src)
	_, _ = h.Read(dst)
}

func bit(d []byte, i int) int {
	return int(d[i/8]>>(uint(i)&7)) & 1
}
