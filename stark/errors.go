package stark

import "errors"

// Contract violations are returned wrapped with context; callers match
// them with errors.Is.
var (
	ErrInvalidLength     = errors.New("stark: trace length must be at least 2")
	ErrInsufficientRange = errors.New("stark: challenge count exceeds available indices")
	ErrIndexOutOfRange   = errors.New("stark: index has no consecutive triple in the trace")
)
