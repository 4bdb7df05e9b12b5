package stark

import "fmt"

// Verify checks every revealed triple against the recurrence.
// ok=false is the normal rejection outcome, not an error. An error is
// returned only for proofs that cannot be checked at all (missing
// values, negative index), so callers can tell "checked and failed"
// from "malformed".
func Verify(proof Proof) (bool, error) {
	for t, e := range proof {
		if e.LHS == nil || e.RHS == nil {
			return false, fmt.Errorf("stark: malformed proof: entry %d is missing a value", t)
		}
		if e.Index < 0 {
			return false, fmt.Errorf("%w: entry %d carries index %d", ErrIndexOutOfRange, t, e.Index)
		}
		if e.LHS.Cmp(e.RHS) != 0 {
			return false, nil
		}
	}
	return true, nil
}
