package mpcith

import (
	"testing"

	"github.com/tuneinsight/lattigo/v4/utils"

	"stark-bridge/commitment"
)

func keyedPRNG(t *testing.T, seed string) utils.PRNG {
	t.Helper()
	prng, err := utils.NewKeyedPRNG([]byte(seed))
	if err != nil {
		t.Fatal(err)
	}
	return prng
}

func TestShareReconstruct(t *testing.T) {
	secret := []byte{1, 0, 1, 1, 0, 0, 1, 0}
	shares, err := Share(keyedPRNG(t, "mpc"), secret)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Reconstruct(shares)
	if err != nil {
		t.Fatal(err)
	}
	for i := range secret {
		if got[i] != secret[i] {
			t.Fatalf("bit %d reconstructed as %d, want %d", i, got[i], secret[i])
		}
	}
}

func TestShareRejectsNonBits(t *testing.T) {
	if _, err := Share(keyedPRNG(t, "mpc"), []byte{0, 2}); err == nil {
		t.Fatal("non-bit secret accepted")
	}
}

func TestCommitAndOpenTwoViews(t *testing.T) {
	h := commitment.NewHasher(commitment.Full())
	secret := []byte{1, 1, 0, 1}
	shares, err := Share(keyedPRNG(t, "mpc"), secret)
	if err != nil {
		t.Fatal(err)
	}
	committed := CommitViews(shares, h)
	for hidden := 0; hidden < Parties; hidden++ {
		if !CheckOpened(shares, committed, hidden, h) {
			t.Fatalf("honest opening rejected with party %d hidden", hidden)
		}
	}
}

func TestTamperedViewDetected(t *testing.T) {
	h := commitment.NewHasher(commitment.Full())
	shares, err := Share(keyedPRNG(t, "mpc"), []byte{1, 0, 1})
	if err != nil {
		t.Fatal(err)
	}
	committed := CommitViews(shares, h)
	shares[0][1] ^= 1
	// Party 0 is opened whenever party 1 or 2 is hidden.
	if CheckOpened(shares, committed, 1, h) {
		t.Fatal("tampered view passed the opening check")
	}
}
