package csp

// freefuncs.go: thin convenience wrappers over Builder/Solver for the most
// common one-shot patterns. Pure delegation; no logic of their own.

// SolveAllDifferent builds a problem with len(names) variables sharing
// domain and an AllDifferent constraint over them, then returns its first
// solution.
func SolveAllDifferent(domain Domain, names ...string) (Assignment, bool, error) {
	b := NewBuilder().AddVariables(domain, names...).AddConstraint(AllDifferent(names...))
	problem, err := b.Build()
	if err != nil {
		return nil, false, err
	}
	return NewSolver(problem).Solve()
}

// SolveExactSum builds a problem with len(names) variables sharing domain
// and an ExactSum(total) constraint over them, then returns its first
// solution.
func SolveExactSum(domain Domain, total int64, names ...string) (Assignment, bool, error) {
	b := NewBuilder().AddVariables(domain, names...).AddConstraint(ExactSum(total, names...))
	problem, err := b.Build()
	if err != nil {
		return nil, false, err
	}
	return NewSolver(problem).Solve()
}

// CountAllDifferentSolutions returns the number of distinct permutations of
// domain across len(names) variables under AllDifferent — useful for sanity
// checks and the scenario suite.
func CountAllDifferentSolutions(domain Domain, names ...string) (int, error) {
	b := NewBuilder().AddVariables(domain, names...).AddConstraint(AllDifferent(names...))
	problem, err := b.Build()
	if err != nil {
		return 0, err
	}
	solutions, err := NewSolver(problem).SolveAll()
	if err != nil {
		return 0, err
	}
	return len(solutions), nil
}
