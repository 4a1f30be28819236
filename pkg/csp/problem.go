package csp

import (
	"fmt"
	"strings"
)

// Problem is a constraint satisfaction problem: a finite set of Variables,
// a set of directed binary Arcs, and a set of NaryConstraints. It is built
// incrementally via Builder and is immutable once a solve call begins —
// every solve clones the initial domains so the same Problem can be solved
// repeatedly (see Solver, SolveWithMinConflicts).
//
type Problem struct {
	order     []string // variable names in insertion order
	variables map[string]Variable
	arcs      []Arc
	nary      []NaryConstraint
	config    *SolverConfig
}

// NewProblem creates an empty problem with a default solver configuration.
func NewProblem() *Problem {
	return &Problem{
		variables: make(map[string]Variable),
		config:    DefaultSolverConfig(),
	}
}

// Variables returns the problem's variables in declaration order. The
// returned slice is a fresh copy; callers may not mutate Problem through it.
func (p *Problem) Variables() []Variable {
	out := make([]Variable, len(p.order))
	for i, name := range p.order {
		out[i] = p.variables[name]
	}
	return out
}

// VariableNames returns the declared variable names in declaration order.
func (p *Problem) VariableNames() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Variable looks up a variable by name.
func (p *Problem) Variable(name string) (Variable, bool) {
	v, ok := p.variables[name]
	return v, ok
}

// HasVariable reports whether name was declared.
func (p *Problem) HasVariable(name string) bool {
	_, ok := p.variables[name]
	return ok
}

// Arcs returns the directed binary arcs installed so far.
func (p *Problem) Arcs() []Arc {
	out := make([]Arc, len(p.arcs))
	copy(out, p.arcs)
	return out
}

// NaryConstraints returns the n-ary constraints installed so far.
func (p *Problem) NaryConstraints() []NaryConstraint {
	out := make([]NaryConstraint, len(p.nary))
	copy(out, p.nary)
	return out
}

// Config returns the problem's solver configuration.
func (p *Problem) Config() *SolverConfig { return p.config }

// SetConfig replaces the problem's solver configuration. A nil config is
// ignored.
func (p *Problem) SetConfig(cfg *SolverConfig) {
	if cfg != nil {
		p.config = cfg
	}
}

// degree returns the number of constraints referencing name: each directed
// arc touching the variable counts once, and each n-ary constraint
// mentioning it counts once.
func (p *Problem) degree(name string, naryIdx map[string][]*NaryConstraint) int {
	d := 0
	for _, a := range p.arcs {
		if a.Head == name || a.Tail == name {
			d++
		}
	}
	d += len(naryIdx[name])
	return d
}

// Copy deep-clones the problem: variables, arcs, n-ary constraints and
// config are all copied so mutating the clone never affects the original.
func (p *Problem) Copy() *Problem {
	cp := &Problem{
		order:     append([]string(nil), p.order...),
		variables: make(map[string]Variable, len(p.variables)),
		arcs:      append([]Arc(nil), p.arcs...),
		nary:      append([]NaryConstraint(nil), p.nary...),
	}
	for k, v := range p.variables {
		cp.variables[k] = v
	}
	if p.config != nil {
		cfgCopy := *p.config
		cp.config = &cfgCopy
	} else {
		cp.config = DefaultSolverConfig()
	}
	return cp
}

// Clear empties the problem entirely: all variables and constraints are
// discarded, but the current SolverConfig is retained.
func (p *Problem) Clear() {
	p.order = nil
	p.variables = make(map[string]Variable)
	p.arcs = nil
	p.nary = nil
}

// Validate checks the problem's hard invariants — no empty domains, every
// constraint references only declared variables — and returns a descriptive
// error for the first violation found, or nil if the problem is well-formed.
// It never mutates the problem.
func (p *Problem) Validate() error {
	for _, name := range p.order {
		if p.variables[name].Domain.IsEmpty() {
			return fmt.Errorf("%w: variable %q", ErrEmptyDomain, name)
		}
	}
	for _, a := range p.arcs {
		if !p.HasVariable(a.Head) {
			return fmt.Errorf("%w: arc references %q", ErrUnknownVariable, a.Head)
		}
		if !p.HasVariable(a.Tail) {
			return fmt.Errorf("%w: arc references %q", ErrUnknownVariable, a.Tail)
		}
	}
	for _, c := range p.nary {
		for _, name := range c.Vars {
			if !p.HasVariable(name) {
				return fmt.Errorf("%w: constraint %q references %q", ErrUnknownVariable, c.Label, name)
			}
		}
	}
	return nil
}

// ValidateWarnings returns non-fatal observations about the problem:
// isolated variables with no constraints, and a high constraint-to-variable
// ratio that may indicate an over-constrained model. It never aborts.
func (p *Problem) ValidateWarnings() []string {
	var warnings []string
	naryIdx := buildNaryIndex(p.nary)
	for _, name := range p.order {
		if p.degree(name, naryIdx) == 0 {
			warnings = append(warnings, fmt.Sprintf("variable %q is isolated (no constraints reference it)", name))
		}
	}
	nConstraints := len(p.arcs)/2 + len(p.nary)
	nVars := len(p.order)
	if nVars > 0 && nConstraints > 3*nVars {
		warnings = append(warnings, fmt.Sprintf("problem may be over-constrained: %d constraints over %d variables", nConstraints, nVars))
	}
	return warnings
}

// PrintSummary renders a short, human-readable description of the problem:
// variable count, domain sizes, constraint count, and any validation
// warnings. It is a debugging aid, not a puzzle pretty-printer.
func (p *Problem) PrintSummary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Problem: %d variables, %d binary arcs, %d n-ary constraints\n",
		len(p.order), len(p.arcs), len(p.nary))
	for _, name := range p.order {
		v := p.variables[name]
		fmt.Fprintf(&b, "  %s: %s\n", name, v.Domain.String())
	}
	if warnings := p.ValidateWarnings(); len(warnings) > 0 {
		b.WriteString("warnings:\n")
		for _, w := range warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}
	return b.String()
}
