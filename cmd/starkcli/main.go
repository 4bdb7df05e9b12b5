package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/tuneinsight/lattigo/v4/utils"

	"stark-bridge/attack"
	"stark-bridge/commitment"
	"stark-bridge/stark"
)

func usage() {
	fmt.Println(`usage: starkcli <trace|commit|prove|verify|attack> [options]

Subcommands:
  trace    Generate a Fibonacci trace and print it
           Flags:
             -n <int>        trace length (default: 10)

  commit   Commit to a trace and print the Merkle root
           Flags:
             -n <int>        trace length (default: 10)
             -trunc <bits>   truncate digests to <bits> (0 = full 512)

  prove    Sample challenges and print the proof bundle as JSON
           Flags:
             -n <int>        trace length (default: 10)
             -k <int>        number of challenges (default: 3)
             -seed <string>  PRNG seed for a reproducible draw
             -trunc <bits>   digest truncation for the printed root

  verify   Verify a proof bundle (JSON from stdin or -file)
           Prints ACCEPT or REJECT; REJECT is a normal outcome and
           still exits 0. Malformed input exits 1.

  attack   Brute-force a second preimage for one leaf
           Flags:
             -n <int>        trace length (default: 10)
             -index <int>    leaf index under attack (default: 3)
             -max <int>      candidate range is [0, max) (default: 200000)
             -trunc <bits>   digest truncation (default: 16)
             -workers <int>  parallel workers (0 = GOMAXPROCS)`)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "trace":
		runTrace(os.Args[2:])
	case "commit":
		runCommit(os.Args[2:])
	case "prove":
		runProve(os.Args[2:])
	case "verify":
		runVerify(os.Args[2:])
	case "attack":
		runAttack(os.Args[2:])
	default:
		usage()
	}
}

func hasherFromBits(bits int) commitment.Hasher {
	if bits <= 0 {
		return commitment.NewHasher(commitment.Full())
	}
	return commitment.NewHasher(commitment.Truncated(bits))
}

func prngFromSeed(seed string) utils.PRNG {
	var (
		prng utils.PRNG
		err  error
	)
	if seed == "" {
		prng, err = utils.NewPRNG()
	} else {
		prng, err = utils.NewKeyedPRNG([]byte(seed))
	}
	if err != nil {
		log.Fatalf("prng: %v", err)
	}
	return prng
}

func runTrace(args []string) {
	fs := flag.NewFlagSet("trace", flag.ExitOnError)
	n := fs.Int("n", 10, "trace length")
	_ = fs.Parse(args)
	trace, err := stark.GenTrace(*n)
	if err != nil {
		log.Fatal(err)
	}
	for i, v := range trace {
		fmt.Printf("trace[%d] = %s\n", i, v)
	}
}

func runCommit(args []string) {
	fs := flag.NewFlagSet("commit", flag.ExitOnError)
	n := fs.Int("n", 10, "trace length")
	trunc := fs.Int("trunc", 0, "digest truncation bits (0 = full)")
	_ = fs.Parse(args)
	trace, err := stark.GenTrace(*n)
	if err != nil {
		log.Fatal(err)
	}
	h := hasherFromBits(*trunc)
	root, _ := commitment.Commit(trace, h)
	fmt.Printf("strength=%s root=%s\n", h.Strength(), root)
}

// proofBundle is the JSON shape shared by prove and verify.
type proofBundle struct {
	N          int               `json:"n"`
	Strength   string            `json:"strength"`
	Root       commitment.Digest `json:"root"`
	Challenges []int             `json:"challenges"`
	Proof      stark.Proof       `json:"proof"`
}

func runProve(args []string) {
	fs := flag.NewFlagSet("prove", flag.ExitOnError)
	n := fs.Int("n", 10, "trace length")
	k := fs.Int("k", 3, "number of challenges")
	seed := fs.String("seed", "", "PRNG seed")
	trunc := fs.Int("trunc", 0, "digest truncation bits (0 = full)")
	_ = fs.Parse(args)

	trace, err := stark.GenTrace(*n)
	if err != nil {
		log.Fatal(err)
	}
	idx, err := stark.SampleChallenges(prngFromSeed(*seed), *n, *k)
	if err != nil {
		log.Fatal(err)
	}
	proof, err := stark.Prove(trace, idx)
	if err != nil {
		log.Fatal(err)
	}
	h := hasherFromBits(*trunc)
	root, _ := commitment.Commit(trace, h)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(proofBundle{
		N:          *n,
		Strength:   h.Strength().String(),
		Root:       root,
		Challenges: idx,
		Proof:      proof,
	}); err != nil {
		log.Fatal(err)
	}
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	file := fs.String("file", "", "proof bundle path (default: stdin)")
	_ = fs.Parse(args)

	var (
		data []byte
		err  error
	)
	if *file == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(*file)
	}
	if err != nil {
		log.Fatal(err)
	}
	var bundle proofBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		log.Fatalf("verify: bad proof bundle: %v", err)
	}
	ok, err := stark.Verify(bundle.Proof)
	if err != nil {
		log.Fatalf("verify: %v", err)
	}
	if ok {
		fmt.Println("ACCEPT")
	} else {
		fmt.Println("REJECT")
	}
}

func runAttack(args []string) {
	fs := flag.NewFlagSet("attack", flag.ExitOnError)
	n := fs.Int("n", 10, "trace length")
	index := fs.Int("index", 3, "leaf index under attack")
	max := fs.Int64("max", 200000, "candidate range upper bound")
	trunc := fs.Int("trunc", 16, "digest truncation bits (0 = full)")
	workers := fs.Int("workers", 0, "parallel workers (0 = GOMAXPROCS)")
	_ = fs.Parse(args)

	trace, err := stark.GenTrace(*n)
	if err != nil {
		log.Fatal(err)
	}
	if *index < 0 || *index >= len(trace) {
		log.Fatalf("attack: leaf index %d outside [0,%d)", *index, len(trace))
	}
	h := hasherFromBits(*trunc)
	root, _ := commitment.Commit(trace, h)
	fmt.Printf("strength=%s root=%s leaf=%d committed=%s\n", h.Strength(), root, *index, trace[*index])

	res, err := attack.FindForgeableValue(context.Background(), trace, *index, root, 0, *max, h, *workers)
	if errors.Is(err, attack.ErrSearchExhausted) {
		fmt.Printf("no collision in [0,%d)\n", *max)
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("forged value %s reproduces the root after %d rebuilds\n", res.Value, res.Tried)
}
