package sensitivity

import "errors"

// ErrInvalidInput is the error class for malformed inputs: empty or all-zero
// weight vectors, negative distribution entries, non-positive sample sizes,
// and non-ascending threshold lists. All invalid inputs are detected at
// construction or entry and surfaced immediately; no partial results are
// returned. Match with errors.Is.
var ErrInvalidInput = errors.New("invalid input")
