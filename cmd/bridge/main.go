// The bridge demo runs three flows back to back: a legacy transfer
// signed with the toy RSA key, the factoring attack that forges a
// legacy signature for the same root, and the post-quantum flow the
// attack cannot touch.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/tuneinsight/lattigo/v4/utils"

	"stark-bridge/bridge"
	"stark-bridge/commitment"
	"stark-bridge/factoring"
	"stark-bridge/legacyrsa"
	"stark-bridge/pqsig"
)

func main() {
	n := flag.Int("n", 12, "trace length")
	k := flag.Int("k", 4, "challenges per transfer")
	keyDir := flag.String("keydir", "bridge_keys", "directory for the legacy key files")
	flag.Parse()

	logger := bridge.NewLogger()
	relay := bridge.Relay{
		TraceLen:   *n,
		Challenges: *k,
		Hasher:     commitment.NewHasher(commitment.Full()),
		Log:        logger,
	}
	payload := bridge.Payload{From: "AliceA", To: "BobB", Amount: 10}

	prng, err := utils.NewPRNG()
	if err != nil {
		log.Fatal(err)
	}

	// Part 1: legacy flow.
	legacyKey := legacyrsa.DefaultToyKey()
	if err := legacyKey.Save(*keyDir); err != nil {
		log.Fatal(err)
	}
	logger.Info().Str("N", legacyKey.N.String()).Str("e", legacyKey.E.String()).Msg("legacy flow: toy RSA key")
	transfer, err := relay.BuildTransfer(prng, payload, bridge.LegacySigner{Key: legacyKey})
	if err != nil {
		log.Fatal(err)
	}
	legacyVerifier := bridge.LegacyVerifier{N: legacyKey.N, E: legacyKey.E}
	ok, err := bridge.VerifyTransfer(transfer, legacyVerifier, logger)
	if err != nil {
		log.Fatal(err)
	}
	logger.Info().Bool("accepted", ok).Msg("legacy flow: result")

	// Part 2: factor N, forge a legacy signature for the same root.
	forged, err := bridge.RecoverLegacyKey(legacyKey.N, legacyKey.E, factoring.NewRNG(time.Now().UnixNano()), logger)
	if err != nil {
		log.Fatal(err)
	}
	forgedTransfer := *transfer
	sig, err := bridge.LegacySigner{Key: forged}.Sign([]byte(transfer.Root))
	if err != nil {
		log.Fatal(err)
	}
	forgedTransfer.Sig = sig
	ok, err = bridge.VerifyTransfer(&forgedTransfer, legacyVerifier, logger)
	if err != nil {
		log.Fatal(err)
	}
	logger.Info().Bool("forgery_accepted", ok).Msg("attack: forged legacy signature replayed")

	// Part 3: post-quantum flow.
	pub, priv, err := pqsig.GenerateKey(prng)
	if err != nil {
		log.Fatal(err)
	}
	pqTransfer, err := relay.BuildTransfer(prng, payload, bridge.PQSigner{Priv: priv})
	if err != nil {
		log.Fatal(err)
	}
	ok, err = bridge.VerifyTransfer(pqTransfer, bridge.PQVerifier{Pub: pub}, logger)
	if err != nil {
		log.Fatal(err)
	}
	logger.Info().Bool("accepted", ok).Msg("pq flow: result")

	// A forged legacy signature is rejected by the PQ verifier: the
	// factoring oracle gives no purchase on hash preimages.
	ok = bridge.PQVerifier{Pub: pub}.Verify([]byte(pqTransfer.Root), forgedTransfer.Sig)
	logger.Info().Bool("forgery_accepted", ok).Msg("attack: forged signature against pq verifier")
}
