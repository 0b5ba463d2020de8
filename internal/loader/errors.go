package loader

import "errors"

// Instantiation failure classes. Each is always fatal to the Instantiate
// call; callers are expected to surface the wrapped diagnostic verbatim,
// typically with a hint to rebuild the artifact.
var (
	// ErrNoMatchingType means the artifact exposed no candidate matching the
	// selector.
	ErrNoMatchingType = errors.New("no algorithm type matches the requested name")

	// ErrAmbiguousType means more than one candidate matched the selector.
	ErrAmbiguousType = errors.New("multiple algorithm types match the requested name")

	// ErrInstantiationTimeout means construction did not complete within the
	// caller-supplied timeout.
	ErrInstantiationTimeout = errors.New("algorithm instantiation timed out")

	// ErrConstructionFault means the candidate's own constructor failed.
	ErrConstructionFault = errors.New("algorithm constructor failed")
)
