package bridge

import (
	"math/big"
	"testing"

	"github.com/rs/zerolog"
	"github.com/tuneinsight/lattigo/v4/utils"

	"stark-bridge/commitment"
	"stark-bridge/factoring"
	"stark-bridge/legacyrsa"
	"stark-bridge/pqsig"
)

func testRelay() Relay {
	return Relay{
		TraceLen:   12,
		Challenges: 4,
		Hasher:     commitment.NewHasher(commitment.Full()),
		Log:        zerolog.Nop(),
	}
}

func keyedPRNG(t *testing.T, seed string) utils.PRNG {
	t.Helper()
	prng, err := utils.NewKeyedPRNG([]byte(seed))
	if err != nil {
		t.Fatal(err)
	}
	return prng
}

func TestLegacyFlowAccepts(t *testing.T) {
	key := legacyrsa.DefaultToyKey()
	transfer, err := testRelay().BuildTransfer(keyedPRNG(t, "flow"), Payload{From: "AliceA", To: "BobB", Amount: 10}, LegacySigner{Key: key})
	if err != nil {
		t.Fatal(err)
	}
	ok, err := VerifyTransfer(transfer, LegacyVerifier{N: key.N, E: key.E}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("legacy transfer rejected")
	}
}

func TestForgedLegacySignatureAccepted(t *testing.T) {
	key := legacyrsa.DefaultToyKey()
	transfer, err := testRelay().BuildTransfer(keyedPRNG(t, "forge"), Payload{From: "AliceA", To: "BobB", Amount: 10}, LegacySigner{Key: key})
	if err != nil {
		t.Fatal(err)
	}
	forged, err := RecoverLegacyKey(key.N, key.E, factoring.NewRNG(1), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	sig, err := LegacySigner{Key: forged}.Sign([]byte(transfer.Root))
	if err != nil {
		t.Fatal(err)
	}
	replay := *transfer
	replay.Sig = sig
	// The toy key is factorable, so the forgery goes through: that is
	// the point of the legacy flow.
	ok, err := VerifyTransfer(&replay, LegacyVerifier{N: key.N, E: key.E}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("forged legacy signature rejected; the demo attack should succeed")
	}
}

func TestPQFlowAcceptsAndBinds(t *testing.T) {
	pub, priv, err := pqsig.GenerateKey(keyedPRNG(t, "pq-key"))
	if err != nil {
		t.Fatal(err)
	}
	transfer, err := testRelay().BuildTransfer(keyedPRNG(t, "pq-flow"), Payload{From: "AliceA", To: "BobB", Amount: 10}, PQSigner{Priv: priv})
	if err != nil {
		t.Fatal(err)
	}
	ok, err := VerifyTransfer(transfer, PQVerifier{Pub: pub}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("pq transfer rejected")
	}

	// No unconditional-accept path: a corrupted signature must fail.
	bad := *transfer
	bad.Sig = append([]byte(nil), transfer.Sig...)
	bad.Sig[0] ^= 0x01
	ok, err = VerifyTransfer(&bad, PQVerifier{Pub: pub}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("corrupted pq signature accepted")
	}
}

func TestTamperedProofRejected(t *testing.T) {
	key := legacyrsa.DefaultToyKey()
	transfer, err := testRelay().BuildTransfer(keyedPRNG(t, "tamper"), Payload{From: "AliceA", To: "BobB", Amount: 10}, LegacySigner{Key: key})
	if err != nil {
		t.Fatal(err)
	}
	transfer.Proof[0].RHS = new(big.Int).Add(transfer.Proof[0].RHS, big.NewInt(1))
	ok, err := VerifyTransfer(transfer, LegacyVerifier{N: key.N, E: key.E}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("tampered proof accepted")
	}
}
