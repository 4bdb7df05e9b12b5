package stark

import (
	"errors"
	"math/big"
	"testing"

	"github.com/tuneinsight/lattigo/v4/utils"
)

func TestGenTrace(t *testing.T) {
	trace, err := GenTrace(10)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{1, 1, 2, 3, 5, 8, 13, 21, 34, 55}
	for i, w := range want {
		if trace[i].Cmp(big.NewInt(w)) != 0 {
			t.Fatalf("trace[%d] = %s, want %d", i, trace[i], w)
		}
	}
}

func TestGenTraceInvalidLength(t *testing.T) {
	for _, n := range []int{-1, 0, 1} {
		if _, err := GenTrace(n); !errors.Is(err, ErrInvalidLength) {
			t.Fatalf("GenTrace(%d): got %v, want ErrInvalidLength", n, err)
		}
	}
	if trace, err := GenTrace(2); err != nil || len(trace) != 2 {
		t.Fatalf("GenTrace(2): %v, len %d", err, len(trace))
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

func TestSampleChallenges(t *testing.T) {
	idx, err := SampleChallenges(keyedPRNG(t, "seed-1"), 10, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(idx) != 3 {
		t.Fatalf("got %d challenges, want 3", len(idx))
	}
	seen := map[int]bool{}
	for _, i := range idx {
		if i < 0 || i >= 8 {
			t.Fatalf("challenge %d outside [0,8)", i)
		}
		if seen[i] {
			t.Fatalf("duplicate challenge %d", i)
		}
		seen[i] = true
	}

	// Same seed, same draw.
	again, err := SampleChallenges(keyedPRNG(t, "seed-1"), 10, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := range idx {
		if idx[i] != again[i] {
			t.Fatalf("keyed draw not reproducible: %v vs %v", idx, again)
		}
	}
}

func TestSampleChallengesBounds(t *testing.T) {
	if _, err := SampleChallenges(keyedPRNG(t, "s"), 10, 9); !errors.Is(err, ErrInsufficientRange) {
		t.Fatalf("k > n-2: got %v", err)
	}
	if _, err := SampleChallenges(keyedPRNG(t, "s"), 10, -1); !errors.Is(err, ErrInsufficientRange) {
		t.Fatalf("k < 0: got %v", err)
	}
	if _, err := SampleChallenges(keyedPRNG(t, "s"), 1, 0); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("n < 2: got %v", err)
	}
	idx, err := SampleChallenges(keyedPRNG(t, "s"), 10, 8)
	if err != nil || len(idx) != 8 {
		t.Fatalf("full draw: %v, len %d", err, len(idx))
	}
	empty, err := SampleChallenges(keyedPRNG(t, "s"), 10, 0)
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty draw: %v, len %d", err, len(empty))
	}
}

func TestProveVerifyGenuineTrace(t *testing.T) {
	trace, err := GenTrace(10)
	if err != nil {
		t.Fatal(err)
	}
	idx, err := SampleChallenges(keyedPRNG(t, "seed-2"), 10, 3)
	if err != nil {
		t.Fatal(err)
	}
	proof, err := Prove(trace, idx)
	if err != nil {
		t.Fatal(err)
	}
	ok, err := Verify(proof)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("genuine proof rejected")
	}
}

func TestVerifyRejectsCorruptedProof(t *testing.T) {
	trace, _ := GenTrace(10)
	proof, err := Prove(trace, []int{0, 4, 7})
	if err != nil {
		t.Fatal(err)
	}
	proof[1].RHS = new(big.Int).Add(proof[1].RHS, big.NewInt(1))
	ok, err := Verify(proof)
	if err != nil {
		t.Fatalf("corrupted-but-well-formed proof must not error: %v", err)
	}
	if ok {
		t.Fatal("corrupted proof accepted")
	}
}

func TestVerifyMalformedProof(t *testing.T) {
	if _, err := Verify(Proof{{Index: 0, LHS: nil, RHS: big.NewInt(1)}}); err == nil {
		t.Fatal("missing value did not error")
	}
	_, err := Verify(Proof{{Index: -1, LHS: big.NewInt(2), RHS: big.NewInt(2)}})
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("negative index: got %v", err)
	}
}

func TestProveIndexOutOfRange(t *testing.T) {
	trace, _ := GenTrace(10)
	for _, i := range []int{-1, 8, 100} {
		if _, err := Prove(trace, []int{i}); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("index %d: got %v, want ErrIndexOutOfRange", i, err)
		}
	}
	if proof, err := Prove(trace, []int{7}); err != nil || len(proof) != 1 {
		t.Fatalf("last valid index rejected: %v", err)
	}
}
