package csp

// gac.go: generalized arc consistency (GAC) for n-ary constraints. Unlike
// AC-3's binary revise step, support for a candidate value of one variable
// must be searched for across every other variable in the constraint's
// scope: the value survives only if some assignment of the remaining scope
// satisfies the predicate. Constraints are revised repeatedly until no
// domain shrinks further.

// generalizedArcConsistency prunes domains against every NaryConstraint in p
// until a fixed point is reached. Returns the narrowed domains and false if
// any domain became empty.
func generalizedArcConsistency(p *Problem, domains map[string]Domain, trace *SearchTrace) (map[string]Domain, bool) {
	work := make(map[string]Domain, len(domains))
	for k, v := range domains {
		work[k] = v
	}
	if len(p.nary) == 0 {
		return work, true
	}

	for {
		changed := false
		for ci := range p.nary {
			c := &p.nary[ci]
			updated, changed2, ok := reviseNary(c, work)
			work = updated
			if trace != nil {
				trace.RecordPropagation(len(c.Vars))
			}
			if !ok {
				return work, false
			}
			if changed2 {
				changed = true
			}
		}
		if !changed {
			return work, true
		}
	}
}

// reviseNary prunes, for each variable in c.Vars, every candidate value that
// has no support: no assignment of the other variables in c.Vars (drawn
// from their current domains) for which c.Predicate holds. Returns the
// possibly-updated domain map, whether anything changed, and false if some
// variable's domain became empty.
func reviseNary(c *NaryConstraint, domains map[string]Domain) (map[string]Domain, bool, bool) {
	changed := false
	for _, v := range c.Vars {
		dom, ok := domains[v]
		if !ok {
			continue
		}
		kept := make([]Value, 0, dom.Size())
		dom.Iterate(func(_ int, val Value) {
			if hasSupport(c, v, val, domains) {
				kept = append(kept, val)
			} else {
				changed = true
			}
		})
		if len(kept) == 0 {
			return domains, changed, false
		}
		if len(kept) != dom.Size() {
			domains = cloneDomainMap(domains)
			domains[v] = NewDomain(kept)
		}
	}
	return domains, changed, true
}

// hasSupport reports whether some complete assignment of c.Vars, with
// variable fixed to value, satisfies c.Predicate. It performs a recursive
// search over the remaining variables' current domains.
func hasSupport(c *NaryConstraint, variable string, value Value, domains map[string]Domain) bool {
	assignment := make(Assignment, len(c.Vars))
	assignment[variable] = value
	return searchSupport(c, c.Vars, 0, variable, assignment, domains)
}

func searchSupport(c *NaryConstraint, vars []string, i int, fixed string, assignment Assignment, domains map[string]Domain) bool {
	if i == len(vars) {
		return c.Predicate(assignment)
	}
	name := vars[i]
	if name == fixed {
		return searchSupport(c, vars, i+1, fixed, assignment, domains)
	}
	dom, ok := domains[name]
	if !ok {
		return searchSupport(c, vars, i+1, fixed, assignment, domains)
	}
	found := false
	dom.Iterate(func(_ int, v Value) {
		if found {
			return
		}
		assignment[name] = v
		if searchSupport(c, vars, i+1, fixed, assignment, domains) {
			found = true
		}
	})
	delete(assignment, name)
	return found
}

func cloneDomainMap(domains map[string]Domain) map[string]Domain {
	cp := make(map[string]Domain, len(domains))
	for k, v := range domains {
		cp[k] = v
	}
	return cp
}
