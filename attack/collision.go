package attack

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"stark-bridge/commitment"
	"stark-bridge/measureutil"
	"stark-bridge/prof"
)

// ErrSearchExhausted reports that every candidate in the search space
// was tried without reproducing the target root. It is a normal
// negative result, not a fault: against a full-strength digest it is
// the expected outcome.
var ErrSearchExhausted = errors.New("attack: search space exhausted")

// Result is a successful forgery: a value different from the committed
// one whose substitution at the attacked leaf reproduces the original
// root, together with how much of the space was consumed finding it.
type Result struct {
	Value *big.Int
	Tried int64
}

// FindForgeableValue brute-forces integer candidates in [lo, hi) as
// replacement values for the leaf at index, rebuilding the root for
// each substitution with the same hasher as the original commitment.
// The first candidate reproducing originalRoot wins. Candidates equal
// to the committed trace value are skipped: a forgery must be a
// second preimage, not the value already under commitment.
//
// Candidate evaluation is independent per value, so workers pull
// candidates off a shared counter and each rebuilds the tree on a
// private leaf slice; the first hit cancels the rest. workers <= 0
// means GOMAXPROCS. The context cancels an in-flight search early.
func FindForgeableValue(ctx context.Context, trace []*big.Int, index int, originalRoot commitment.Digest, lo, hi int64, h commitment.Hasher, workers int) (*Result, error) {
	defer prof.Track(time.Now(), "attack.FindForgeableValue")
	if index < 0 || index >= len(trace) {
		return nil, fmt.Errorf("attack: leaf index %d outside [0,%d)", index, len(trace))
	}
	if lo >= hi {
		return nil, fmt.Errorf("%w: empty range [%d,%d)", ErrSearchExhausted, lo, hi)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	_, leaves := commitment.Commit(trace, h)
	committed := trace[index]

	var (
		next  atomic.Int64
		tried atomic.Int64
		hit   atomic.Int64
		found atomic.Bool
	)
	next.Store(lo)

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(searchCtx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			mine := make([]commitment.Digest, len(leaves))
			copy(mine, leaves)
			cand := new(big.Int)
			for {
				c := next.Add(1) - 1
				if c >= hi {
					return nil
				}
				select {
				case <-gctx.Done():
					return nil
				default:
				}
				cand.SetInt64(c)
				if cand.Cmp(committed) == 0 {
					continue
				}
				mine[index] = h.HashValue(cand)
				tried.Add(1)
				measureutil.AddTreesRebuilt(1)
				if commitment.FoldLeaves(mine, h) == originalRoot {
					if found.CompareAndSwap(false, true) {
						hit.Store(c)
					}
					cancel()
					return nil
				}
			}
		})
	}
	_ = g.Wait()

	if found.Load() {
		return &Result{Value: big.NewInt(hit.Load()), Tried: tried.Load()}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: no second preimage for leaf %d in [%d,%d)", ErrSearchExhausted, index, lo, hi)
}
