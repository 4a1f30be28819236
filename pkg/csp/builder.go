package csp

import "fmt"

// builder.go: the fluent construction API. Builder wraps a *Problem and
// accumulates the first construction error encountered; once an error is
// recorded every further call is a no-op, and Build surfaces it. Methods
// never panic — construction failures are sentinel errors usable with
// errors.Is.
type Builder struct {
	problem *Problem
	err     error
}

// NewBuilder starts a new, empty problem under construction.
func NewBuilder() *Builder {
	return &Builder{problem: NewProblem()}
}

// Err returns the first construction error encountered, or nil.
func (b *Builder) Err() error { return b.err }

// Build finalizes the problem, returning the first construction error
// encountered (if any) instead of the problem.
func (b *Builder) Build() (*Problem, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.problem, nil
}

// AddVariable declares a variable with the given domain. Declaring the same
// name twice is an error, as is an empty domain.
func (b *Builder) AddVariable(name string, domain Domain) *Builder {
	if b.err != nil {
		return b
	}
	if b.problem.HasVariable(name) {
		b.err = fmt.Errorf("AddVariable: %w: %q", ErrDuplicateVariable, name)
		return b
	}
	if domain.IsEmpty() {
		b.err = fmt.Errorf("AddVariable: %w: %q", ErrEmptyDomain, name)
		return b
	}
	b.problem.order = append(b.problem.order, name)
	b.problem.variables[name] = Variable{Name: name, Domain: domain}
	return b
}

// AddVariables declares several variables sharing the same domain.
func (b *Builder) AddVariables(domain Domain, names ...string) *Builder {
	for _, name := range names {
		b.AddVariable(name, domain)
	}
	return b
}

// AddBinaryConstraint installs a directed Arc. Most callers use a built-in
// factory (Arithmetic, Inequality) rather than constructing an Arc by hand.
func (b *Builder) AddBinaryConstraint(arc Arc) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.checkKnown(arc.Head, arc.Tail); err != nil {
		b.err = err
		return b
	}
	b.problem.arcs = append(b.problem.arcs, arc)
	return b
}

// AddBinaryConstraints installs several arcs at once, e.g. the pair returned
// by Inequality or ArithmeticArcs.
func (b *Builder) AddBinaryConstraints(arcs ...Arc) *Builder {
	for _, a := range arcs {
		b.AddBinaryConstraint(a)
	}
	return b
}

// AddConstraint installs an n-ary constraint. A two-variable NaryConstraint
// is accepted here too, since GAC handles arity 2 as a degenerate n-ary
// case; arc-based binary constraints exist only as the faster AC-3 path for
// predicates that are naturally directional.
func (b *Builder) AddConstraint(c NaryConstraint) *Builder {
	if b.err != nil {
		return b
	}
	if len(c.Vars) == 0 {
		b.err = fmt.Errorf("AddConstraint: %w: %s has no variables", ErrArityMismatch, c.Label)
		return b
	}
	if err := b.checkKnown(c.Vars...); err != nil {
		b.err = err
		return b
	}
	b.problem.nary = append(b.problem.nary, c)
	return b
}

// AddStringConstraint parses expr using the constraint expression compiler
// and installs the resulting constraint. The arity class the compiler infers
// determines whether it becomes an Arc or a NaryConstraint.
func (b *Builder) AddStringConstraint(expr string) *Builder {
	if b.err != nil {
		return b
	}
	names := make(map[string]bool, len(b.problem.order))
	for _, n := range b.problem.order {
		names[n] = true
	}
	parsed, err := compileExpression(expr, names)
	if err != nil {
		b.err = fmt.Errorf("AddStringConstraint(%q): %w", expr, err)
		return b
	}
	if len(parsed.Arcs) > 0 {
		return b.AddBinaryConstraints(parsed.Arcs...)
	}
	return b.AddConstraint(*parsed.Nary)
}

// Built-in helper installers. Each delegates to the matching constraint
// factory and then to AddConstraint / AddBinaryConstraints.

// AddAllDifferent requires vars to take pairwise-distinct values.
func (b *Builder) AddAllDifferent(vars ...string) *Builder {
	return b.AddConstraint(AllDifferent(vars...))
}

// AddAllEqual requires vars to all take the same value.
func (b *Builder) AddAllEqual(vars ...string) *Builder {
	return b.AddConstraint(AllEqual(vars...))
}

// AddExactSum requires the values of vars to sum to total.
func (b *Builder) AddExactSum(total int64, vars ...string) *Builder {
	return b.AddConstraint(ExactSum(total, vars...))
}

// AddSumInRange requires the sum of vars to fall in [lo, hi].
func (b *Builder) AddSumInRange(lo, hi int64, vars ...string) *Builder {
	return b.AddConstraint(SumInRange(lo, hi, vars...))
}

// AddExactProduct requires the product of vars to equal total.
func (b *Builder) AddExactProduct(total int64, vars ...string) *Builder {
	return b.AddConstraint(ExactProduct(total, vars...))
}

// AddInSet requires variable's value to be a member of allowed.
func (b *Builder) AddInSet(variable string, allowed ...Value) *Builder {
	return b.AddConstraint(InSet(variable, allowed...))
}

// AddNotInSet requires variable's value to avoid forbidden.
func (b *Builder) AddNotInSet(variable string, forbidden ...Value) *Builder {
	return b.AddConstraint(NotInSet(variable, forbidden...))
}

// AddAscending requires vars to be non-decreasing in the given order.
func (b *Builder) AddAscending(vars ...string) *Builder {
	return b.AddConstraint(Ascending(vars...))
}

// AddStrictlyAscending requires vars to be strictly increasing.
func (b *Builder) AddStrictlyAscending(vars ...string) *Builder {
	return b.AddConstraint(StrictlyAscending(vars...))
}

// AddDescending requires vars to be non-increasing in the given order.
func (b *Builder) AddDescending(vars ...string) *Builder {
	return b.AddConstraint(Descending(vars...))
}

// AddInequality installs both directed arcs for head `op` tail.
func (b *Builder) AddInequality(head, tail string, op InequalityOp) *Builder {
	return b.AddBinaryConstraints(Inequality(head, tail, op)...)
}

func (b *Builder) checkKnown(names ...string) error {
	for _, n := range names {
		if !b.problem.HasVariable(n) {
			return fmt.Errorf("%w: %q", ErrUnknownVariable, n)
		}
	}
	return nil
}

// SetOptions applies the step-visualization options to the problem under
// construction.
func (b *Builder) SetOptions(timeStepMillis int, callback StepCallback) *Builder {
	if b.err != nil {
		return b
	}
	b.problem.config.SetOptions(timeStepMillis, callback)
	return b
}
