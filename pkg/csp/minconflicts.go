package csp

import "math/rand"

// minconflicts.go: min-conflicts local search, an incomplete stochastic
// repair heuristic distinct from the systematic solver in search.go. All
// random choices come from a *rand.Rand seeded via SolverConfig.RandomSeed,
// so a fixed seed gives a reproducible run.

// SolveWithMinConflicts attempts to repair a random complete assignment into
// a solution using min-conflicts local search: repeatedly pick a
// conflicted variable and reassign it to the value minimizing the number of
// constraint violations, breaking ties randomly. Returns found=false if no
// solution is reached within the configured step budget (default 1000
// steps) — this is a report of search exhaustion, not evidence of
// unsatisfiability, since min-conflicts is incomplete.
func (p *Problem) SolveWithMinConflicts() (Assignment, bool) {
	cfg := p.Config()
	steps := cfg.MinConflictsSteps
	if steps <= 0 {
		steps = 1000
	}
	rng := rand.New(rand.NewSource(cfg.RandomSeed))

	current := randomAssignment(p, rng)
	naryIdx := buildNaryIndex(p.nary)

	for step := 0; step < steps; step++ {
		conflicted := conflictedVariables(p, naryIdx, current)
		if len(conflicted) == 0 {
			cfg.Logger.Debug().Int("steps", step).Msg("min-conflicts repaired assignment")
			return current, true
		}
		name := conflicted[rng.Intn(len(conflicted))]
		best := bestRepairValues(p, naryIdx, current, name)
		current[name] = best[rng.Intn(len(best))]
	}
	cfg.Logger.Debug().Int("steps", steps).Msg("min-conflicts exhausted step budget")
	return current, false
}

func randomAssignment(p *Problem, rng *rand.Rand) Assignment {
	out := make(Assignment, len(p.order))
	for _, name := range p.order {
		values := p.variables[name].Domain.Values()
		if len(values) == 0 {
			continue
		}
		out[name] = values[rng.Intn(len(values))]
	}
	return out
}

// conflictedVariables returns the names of variables participating in at
// least one violated constraint under current.
func conflictedVariables(p *Problem, naryIdx map[string][]*NaryConstraint, current Assignment) []string {
	violating := make(map[string]bool)
	for _, a := range p.arcs {
		h, hok := current.Value(a.Head)
		t, tok := current.Value(a.Tail)
		if hok && tok && !a.Predicate(h, t) {
			violating[a.Head] = true
			violating[a.Tail] = true
		}
	}
	for i := range p.nary {
		c := &p.nary[i]
		if !c.Predicate(current) {
			for _, v := range c.Vars {
				violating[v] = true
			}
		}
	}
	out := make([]string, 0, len(violating))
	for _, name := range p.order {
		if violating[name] {
			out = append(out, name)
		}
	}
	return out
}

// conflictsFor counts violated constraints touching name if it were assigned
// value, given the rest of current unchanged.
func conflictsFor(p *Problem, naryIdx map[string][]*NaryConstraint, current Assignment, name string, value Value) int {
	trial := make(Assignment, len(current))
	for k, v := range current {
		trial[k] = v
	}
	trial[name] = value

	count := 0
	for _, a := range p.arcs {
		if a.Head != name && a.Tail != name {
			continue
		}
		h, hok := trial.Value(a.Head)
		t, tok := trial.Value(a.Tail)
		if hok && tok && !a.Predicate(h, t) {
			count++
		}
	}
	for _, c := range naryIdx[name] {
		if !c.Predicate(trial) {
			count++
		}
	}
	return count
}

// bestRepairValues returns the candidate values for name that minimize
// conflictsFor, ties included; the caller breaks ties randomly.
func bestRepairValues(p *Problem, naryIdx map[string][]*NaryConstraint, current Assignment, name string) []Value {
	values := p.variables[name].Domain.Values()
	best := -1
	var out []Value
	for _, v := range values {
		c := conflictsFor(p, naryIdx, current, name, v)
		switch {
		case best == -1 || c < best:
			best = c
			out = []Value{v}
		case c == best:
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return values
	}
	return out
}
