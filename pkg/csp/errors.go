package csp

import "errors"

// Construction-time error kinds. Each is a sentinel suitable for errors.Is;
// call sites wrap it once, at the API boundary, with
// fmt.Errorf("...: %w", ErrX) to attach the offending name.
var (
	// ErrDuplicateVariable is returned when add_variable is called twice
	// with the same name.
	ErrDuplicateVariable = errors.New("csp: duplicate variable")
	// ErrEmptyDomain is returned when a variable's domain has zero values,
	// either at construction or (defensively) at validate time.
	ErrEmptyDomain = errors.New("csp: empty domain")
	// ErrUnknownVariable is returned when a constraint references a
	// variable name the problem has not declared.
	ErrUnknownVariable = errors.New("csp: unknown variable")
	// ErrArityMismatch is returned when AddConstraint is handed a
	// constraint with no variables. Predicate arity is fixed by type (Arc
	// or NaryConstraint), and a two-variable NaryConstraint is accepted
	// rather than rejected.
	ErrArityMismatch = errors.New("csp: arity mismatch")
)

// Parse error kinds raised by the expression compiler.
var (
	// ErrParse is returned for a malformed constraint expression.
	ErrParse = errors.New("csp: parse error")
	// ErrUndefinedIdentifier is returned when a string constraint mentions
	// an identifier that is not a declared variable name.
	ErrUndefinedIdentifier = errors.New("csp: undefined identifier")
)

// Unsolvable is the sentinel "no solution exists" outcome. It is a normal
// return value, never wrapped as a propagated error. Solve and
// SolveWithMinConflicts report this case via their bool "found" return
// rather than by returning Unsolvable as an error, so that a construction-
// or propagation-level error (something actually exceptional) is never
// confused with "the search space was exhausted". Unsolvable itself is
// exported for callers who prefer a single sentinel to compare against.
var Unsolvable = errors.New("csp: unsolvable")
