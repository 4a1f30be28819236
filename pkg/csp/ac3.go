package csp

// ac3.go: arc consistency (AC-3) over the binary Arc constraints of a
// Problem. A worklist of directed arcs is revised to a fixed point; when a
// tail domain shrinks, every arc supported by that domain is re-enqueued.

// arcConsistency runs AC-3 to a fixed point over domains, using only the
// binary arcs of p. It returns the narrowed domains and false if any domain
// became empty (the assignment is inconsistent), true otherwise. domains is
// not mutated; a fresh map is returned.
func arcConsistency(p *Problem, domains map[string]Domain, trace *SearchTrace) (map[string]Domain, bool) {
	work := make(map[string]Domain, len(domains))
	for k, v := range domains {
		work[k] = v
	}

	// The queue holds arc indices, not (head, tail) pairs: two distinct
	// constraints may install arcs over the same variable pair, and each
	// carries its own predicate that must be revised independently.
	queue := make([]int, 0, len(p.arcs))
	queued := make([]bool, len(p.arcs))
	for i := range p.arcs {
		queue = append(queue, i)
		queued[i] = true
	}

	// outgoing[name] lists the arcs whose Head is name: the arcs that use
	// name's domain as the support side and must be re-examined when it
	// shrinks.
	outgoing := make(map[string][]int)
	for i, a := range p.arcs {
		outgoing[a.Head] = append(outgoing[a.Head], i)
	}

	peak := len(queue)
	for len(queue) > 0 {
		if len(queue) > peak {
			peak = len(queue)
		}
		ai := queue[0]
		queue = queue[1:]
		queued[ai] = false
		a := p.arcs[ai]

		tailDomain, ok := work[a.Tail]
		if !ok {
			continue
		}
		headDomain, ok := work[a.Head]
		if !ok {
			continue
		}

		revised, changed := revise(headDomain, tailDomain, a.Predicate)
		if trace != nil {
			trace.RecordPropagation(peak)
		}
		if !changed {
			continue
		}
		if revised.IsEmpty() {
			return work, false
		}
		work[a.Tail] = revised

		for _, ni := range outgoing[a.Tail] {
			if !queued[ni] {
				queue = append(queue, ni)
				queued[ni] = true
			}
		}
	}
	return work, true
}

// revise prunes tailDomain to values for which some value in headDomain
// satisfies predicate(head, tail); it is the classical AC-3 Revise step.
func revise(headDomain, tailDomain Domain, predicate BinaryPredicate) (Domain, bool) {
	kept := make([]Value, 0, tailDomain.Size())
	changed := false
	tailDomain.Iterate(func(_ int, tailVal Value) {
		supported := false
		headDomain.Iterate(func(_ int, headVal Value) {
			if supported {
				return
			}
			if predicate(headVal, tailVal) {
				supported = true
			}
		})
		if supported {
			kept = append(kept, tailVal)
		} else {
			changed = true
		}
	})
	if !changed {
		return tailDomain, false
	}
	return NewDomain(kept), true
}
