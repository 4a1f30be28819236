package csp

import "sort"

// search.go: the systematic backtracking solver. Variable selection uses
// minimum-remaining-values with a degree tie-break; value ordering uses
// least-constraining-value. Forward checking narrows neighboring domains as
// each variable is assigned, and full propagation runs once up front and
// again after every assignment: AC-3 to its fixed point, then GAC to its
// fixed point. The two are run once each in that order, not interleaved to
// a joint fixed point, so a GAC pruning is not fed back into AC-3 until the
// next assignment.
type Solver struct {
	problem *Problem
	naryIdx map[string][]*NaryConstraint
	trace   *SearchTrace
}

// NewSolver creates a solver for problem.
func NewSolver(problem *Problem) *Solver {
	return &Solver{
		problem: problem,
		naryIdx: buildNaryIndex(problem.nary),
		trace:   NewSearchTrace(problem.Config().Logger),
	}
}

// Trace returns the trace collecting statistics for this Solver. The trace
// is created by NewSolver and is not reset between calls: counters
// accumulate over every solve call issued through the Solver, and
// SearchTime is measured from NewSolver.
func (s *Solver) Trace() *SearchTrace { return s.trace }

// Solve performs a full backtracking search and returns the first solution
// found, or found=false if the problem is unsolvable. Unsolvability is a
// normal return, not an error; the error return covers construction-level
// problems only.
func (s *Solver) Solve() (Assignment, bool, error) {
	if err := s.problem.Validate(); err != nil {
		return nil, false, err
	}
	domains := initialDomains(s.problem)
	domains, ok := s.propagateAll(domains)
	if !ok {
		return nil, false, nil
	}
	result := s.backtrack(domains)
	s.trace.Finish()
	if result == nil {
		return nil, false, nil
	}
	return result, true, nil
}

// SolveAll returns every solution to the problem, in the deterministic
// order the search discovers them. It is intended for small or moderately
// sized problems; see Solutions for a lazy, early-exit-capable alternative.
func (s *Solver) SolveAll() ([]Assignment, error) {
	if err := s.problem.Validate(); err != nil {
		return nil, err
	}
	domains := initialDomains(s.problem)
	domains, ok := s.propagateAll(domains)
	if !ok {
		return nil, nil
	}
	var out []Assignment
	s.backtrackAll(domains, &out, -1)
	s.trace.Finish()
	return out, nil
}

func initialDomains(p *Problem) map[string]Domain {
	domains := make(map[string]Domain, len(p.order))
	for _, name := range p.order {
		domains[name] = p.variables[name].Domain
	}
	return domains
}

func (s *Solver) propagateAll(domains map[string]Domain) (map[string]Domain, bool) {
	domains, ok := arcConsistency(s.problem, domains, s.trace)
	if !ok {
		return domains, false
	}
	return generalizedArcConsistency(s.problem, domains, s.trace)
}

// splitDomains partitions domains into the assigned (singleton) and
// unassigned snapshots the step callback receives.
func splitDomains(domains map[string]Domain) (assigned, unassigned map[string]Domain) {
	assigned = make(map[string]Domain)
	unassigned = make(map[string]Domain)
	for name, d := range domains {
		if d.IsSingleton() {
			assigned[name] = d
		} else {
			unassigned[name] = d
		}
	}
	return assigned, unassigned
}

// notifyStep invokes the configured step callback, if any, once per
// tentative assignment, then applies the configured presentation delay.
func (s *Solver) notifyStep(domains map[string]Domain) {
	cfg := s.problem.Config()
	if cfg.Callback != nil {
		assigned, unassigned := splitDomains(domains)
		cfg.Callback(assigned, unassigned)
	}
	cfg.delay()
}

func isComplete(domains map[string]Domain) bool {
	for _, d := range domains {
		if !d.IsSingleton() {
			return false
		}
	}
	return true
}

func extractAssignment(domains map[string]Domain) Assignment {
	out := make(Assignment, len(domains))
	for name, d := range domains {
		if d.IsSingleton() {
			out[name] = d.SingletonValue()
		}
	}
	return out
}

// selectVariable picks the unassigned variable with the smallest remaining
// domain, breaking ties by highest degree and then by declaration order so
// selection is reproducible run to run.
func (s *Solver) selectVariable(domains map[string]Domain) (string, bool) {
	best := ""
	found := false
	bestSize := 0
	bestDegree := 0
	for _, name := range s.problem.order {
		d := domains[name]
		if d.IsSingleton() {
			continue
		}
		size := d.Size()
		degree := s.problem.degree(name, s.naryIdx)
		if !found || size < bestSize || (size == bestSize && degree > bestDegree) {
			best, bestSize, bestDegree, found = name, size, degree, true
		}
	}
	return best, found
}

// orderValues orders a variable's candidate values by least-constraining-
// value: values that eliminate fewer candidate values from neighboring
// domains come first. Ties keep backing-list (insertion) order for
// determinism.
func (s *Solver) orderValues(name string, domains map[string]Domain) []Value {
	values := domains[name].Values()
	type scored struct {
		v     Value
		score int
	}
	scoredValues := make([]scored, len(values))
	for i, v := range values {
		scoredValues[i] = scored{v: v, score: s.conflictCount(name, v, domains)}
	}
	sort.SliceStable(scoredValues, func(i, j int) bool {
		return scoredValues[i].score < scoredValues[j].score
	})
	out := make([]Value, len(scoredValues))
	for i, sv := range scoredValues {
		out[i] = sv.v
	}
	return out
}

// conflictCount counts, across every arc touching name, how many values in
// the neighboring domain would be eliminated if name were assigned value.
func (s *Solver) conflictCount(name string, value Value, domains map[string]Domain) int {
	count := 0
	for _, a := range s.problem.arcs {
		var neighbor string
		var predicate BinaryPredicate
		switch {
		case a.Head == name:
			neighbor, predicate = a.Tail, a.Predicate
		case a.Tail == name:
			neighbor, predicate = a.Head, func(h, t Value) bool { return a.Predicate(t, h) }
		default:
			continue
		}
		nd, ok := domains[neighbor]
		if !ok {
			continue
		}
		nd.Iterate(func(_ int, nv Value) {
			if !predicate(value, nv) {
				count++
			}
		})
	}
	return count
}

// assign narrows domains to {value} for name and runs forward checking:
// arcs directly touching name prune their neighbor once, cheaply, without a
// full AC-3 pass. Returns the narrowed domains and false if any neighbor's
// domain became empty.
func (s *Solver) assign(name string, value Value, domains map[string]Domain) (map[string]Domain, bool) {
	next := cloneDomainMap(domains)
	next[name] = NewDomain([]Value{value})
	for _, a := range s.problem.arcs {
		var neighbor string
		var predicate BinaryPredicate
		switch {
		case a.Head == name:
			neighbor, predicate = a.Tail, a.Predicate
		case a.Tail == name:
			neighbor, predicate = a.Head, func(h, t Value) bool { return a.Predicate(t, h) }
		default:
			continue
		}
		nd := next[neighbor]
		if nd.IsSingleton() {
			continue
		}
		kept := make([]Value, 0, nd.Size())
		nd.Iterate(func(_ int, nv Value) {
			if predicate(value, nv) {
				kept = append(kept, nv)
			}
		})
		if len(kept) == 0 {
			return next, false
		}
		next[neighbor] = NewDomain(kept)
	}
	return next, true
}

func (s *Solver) backtrack(domains map[string]Domain) Assignment {
	s.trace.RecordNode()
	if isComplete(domains) {
		s.trace.RecordSolution()
		return extractAssignment(domains)
	}
	name, found := s.selectVariable(domains)
	if !found {
		return nil
	}
	for _, value := range s.orderValues(name, domains) {
		assigned, ok := s.assign(name, value, domains)
		if !ok {
			continue
		}
		propagated, ok := s.propagateAll(assigned)
		if !ok {
			continue
		}
		s.notifyStep(propagated)
		if result := s.backtrack(propagated); result != nil {
			return result
		}
		s.trace.RecordBacktrack(name)
	}
	return nil
}

func (s *Solver) backtrackAll(domains map[string]Domain, out *[]Assignment, limit int) {
	s.trace.RecordNode()
	if limit >= 0 && len(*out) >= limit {
		return
	}
	if isComplete(domains) {
		s.trace.RecordSolution()
		*out = append(*out, extractAssignment(domains))
		return
	}
	name, found := s.selectVariable(domains)
	if !found {
		return
	}
	for _, value := range s.orderValues(name, domains) {
		if limit >= 0 && len(*out) >= limit {
			return
		}
		assigned, ok := s.assign(name, value, domains)
		if !ok {
			continue
		}
		propagated, ok := s.propagateAll(assigned)
		if !ok {
			continue
		}
		s.notifyStep(propagated)
		s.backtrackAll(propagated, out, limit)
		s.trace.RecordBacktrack(name)
	}
}
