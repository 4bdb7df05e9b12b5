package measureutil

import "sync/atomic"

// Process-wide counters for the collision search. Attack workers bump
// them; the sweep binary snapshots them per sweep cell.
var treesRebuilt atomic.Uint64

// AddTreesRebuilt counts full root recomputations.
func AddTreesRebuilt(n uint64) { treesRebuilt.Add(n) }

// SnapshotAndReset returns the global measurement map and clears it.
func SnapshotAndReset() map[string]uint64 {
	return map[string]uint64{
		"trees_rebuilt": treesRebuilt.Swap(0),
	}
}
