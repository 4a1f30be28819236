package csp

// Variable is a decision variable identified by a stable, problem-unique
// name and associated with a Domain of admissible values. A variable whose
// initial domain has cardinality one is a "clue" — a user-supplied
// pre-assignment.
type Variable struct {
	Name   string
	Domain Domain
}

// IsClue reports whether the variable was declared with a singleton domain.
func (v Variable) IsClue() bool { return v.Domain.IsSingleton() }
