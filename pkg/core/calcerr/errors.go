// Package calcerr defines the error kinds shared by the computation
// packages. Callers classify failures with errors.Is against these
// sentinels; the packages wrap them with context via fmt.Errorf and %w.
package calcerr

import "errors"

var (
	// ErrInvalidInput marks out-of-range or missing required values:
	// non-positive sizes, empty required sequences, non-normalized
	// probabilities.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDegenerateInput marks a mathematically undefined operation,
	// such as a zero-variance regression input.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrMalformedTree marks a structural violation of the decision-tree
	// invariants (wrong child counts, cycles, shared subtrees).
	ErrMalformedTree = errors.New("malformed decision tree")

	// ErrFormulaEvaluation marks a simulation formula that references an
	// undeclared variable or produces a non-finite value. The whole run
	// is aborted; no sentinel value is substituted.
	ErrFormulaEvaluation = errors.New("formula evaluation failed")
)
