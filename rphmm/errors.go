package rphmm

import "github.com/grailbio/base/errors"

// Error kinds surfaced by this package. Callers should use errors.Is to
// check them, e.g. errors.Is(errors.Precondition, err).
var (
	// ErrCoverageExceeded is returned when a tiling path's depth exceeds
	// min(Params.MaxCoverageDepth, 64).
	ErrCoverageExceeded = errors.E(errors.Precondition, "rphmm: coverage depth exceeds maxCoverageDepth")

	// ErrTracebackInfeasible is returned when ForwardTraceBack cannot find a
	// merge cell compatible with the chosen path, which indicates the
	// preceding prune pass removed a cell the traceback needed.
	ErrTracebackInfeasible = errors.E(errors.Invalid, "rphmm: no traceback-compatible merge cell; over-pruned")
)

// hmmMismatch reports that two HMMs cannot be combined, naming why.
func hmmMismatch(reason string) error {
	return errors.E(errors.Precondition, "rphmm: hmm mismatch: "+reason)
}

// invalidCoordinates reports a zero-length or otherwise malformed interval
// passed to a public entry point that requires a non-empty one.
func invalidCoordinates(reason string) error {
	return errors.E(errors.Invalid, "rphmm: invalid coordinates: "+reason)
}
