package csp

// BinaryPredicate is an executable predicate over two variable values, used
// for two-variable constraints. It need not be symmetric: p(x, y) and
// p(y, x) may disagree, which is why factories such as Inequality and
// ArithmeticArcs return both directed arcs (installed together via
// Builder.AddBinaryConstraints).
type BinaryPredicate func(head, tail Value) bool

// Assignment is a (possibly partial) mapping from variable name to value,
// as seen by an n-ary predicate during forward-checking or GAC support
// search. Predicates must tolerate a partial Assignment: a predicate may
// return true when one of its variables is absent ("not yet violated"), and
// must return false only on a definite violation given the values it was
// actually given.
type Assignment map[string]Value

// Value looks up a variable's value in the assignment, reporting whether it
// was present.
func (a Assignment) Value(name string) (Value, bool) {
	v, ok := a[name]
	return v, ok
}

// NaryPredicate is an executable predicate over an n-ary constraint's
// variables, given as a (possibly partial) Assignment.
type NaryPredicate func(Assignment) bool

// Arc is a directed binary constraint: predicate(head value, tail value)
// must hold. AC-3 prunes Tail's domain using Head's domain.
type Arc struct {
	Head      string
	Tail      string
	Predicate BinaryPredicate
}

// NaryConstraint is a constraint over one or more variables, expressed as a
// predicate over partial or complete assignments of its variable list.
type NaryConstraint struct {
	// Vars is the ordered list of variable names the constraint mentions.
	Vars []string
	// Predicate is evaluated over assignments restricted to Vars.
	Predicate NaryPredicate
	// Label is a human-readable constraint name, used by PrintSummary and
	// error messages; it has no effect on solving.
	Label string
}

// buildNaryIndex derives the variable-to-constraints map used to drive
// n-ary propagation and the degree heuristic. It is built once per Solver
// (in NewSolver) and once per min-conflicts run, and read-only thereafter.
func buildNaryIndex(constraints []NaryConstraint) map[string][]*NaryConstraint {
	idx := make(map[string][]*NaryConstraint)
	for i := range constraints {
		c := &constraints[i]
		for _, v := range c.Vars {
			idx[v] = append(idx[v], c)
		}
	}
	return idx
}
