package csp

import "testing"

func TestGACPrunesSupportlessValues(t *testing.T) {
	problem, err := NewBuilder().
		AddVariable("a", IntRangeDomain(1, 3)).
		AddVariable("b", IntRangeDomain(1, 3)).
		AddConstraint(ExactSum(5, "a", "b")).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	domains, ok := generalizedArcConsistency(problem, initialDomains(problem), nil)
	if !ok {
		t.Fatal("a+b=5 over {1..3} is satisfiable")
	}
	// a=1 needs b=4, which is out of range; same for b=1.
	if domains["a"].Contains(Int(1)) {
		t.Error("a=1 has no support and should be pruned")
	}
	if domains["b"].Contains(Int(1)) {
		t.Error("b=1 has no support and should be pruned")
	}
	if got := domains["a"].Size(); got != 2 {
		t.Errorf("a domain size = %d, want 2", got)
	}
}

func TestGACIsMonotone(t *testing.T) {
	problem, err := NewBuilder().
		AddVariable("a", IntRangeDomain(1, 9)).
		AddVariable("b", IntRangeDomain(1, 9)).
		AddVariable("c", IntRangeDomain(1, 9)).
		AddConstraint(ExactSum(6, "a", "b", "c")).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	before := initialDomains(problem)
	after, ok := generalizedArcConsistency(problem, before, nil)
	if !ok {
		t.Fatal("a+b+c=6 over {1..9} is satisfiable")
	}
	for name, d := range after {
		if d.Size() > before[name].Size() {
			t.Errorf("%s grew from %d to %d values", name, before[name].Size(), d.Size())
		}
	}
	// Every surviving value must have a full supporting assignment.
	for ci := range problem.nary {
		c := &problem.nary[ci]
		for _, v := range c.Vars {
			after[v].Iterate(func(_ int, val Value) {
				if !hasSupport(c, v, val, after) {
					t.Errorf("%s=%s survived GAC without support in %s", v, val, c.Label)
				}
			})
		}
	}
}

func TestGACRejectsViolatedSingletons(t *testing.T) {
	problem, err := NewBuilder().
		AddVariable("a", IntValuesDomain(1)).
		AddVariable("b", IntValuesDomain(1)).
		AddConstraint(AllDifferent("a", "b")).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	_, ok := generalizedArcConsistency(problem, initialDomains(problem), nil)
	if ok {
		t.Error("AllDifferent over two singleton {1} domains must be inconsistent")
	}
}

func TestGACPropagatesAcrossConstraints(t *testing.T) {
	// Pruning by the sum constraint must re-trigger the membership
	// constraint via the shared variable, and vice versa, until a joint
	// fixed point is reached.
	problem, err := NewBuilder().
		AddVariable("a", IntRangeDomain(1, 4)).
		AddVariable("b", IntRangeDomain(1, 4)).
		AddConstraint(ExactSum(5, "a", "b")).
		AddConstraint(InSet("a", Int(1), Int(2))).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	domains, ok := generalizedArcConsistency(problem, initialDomains(problem), nil)
	if !ok {
		t.Fatal("problem is satisfiable (a=1,b=4 and a=2,b=3)")
	}
	if got := domains["a"].Size(); got != 2 {
		t.Errorf("a domain = %s, want {1,2}", domains["a"])
	}
	if domains["b"].Contains(Int(1)) || domains["b"].Contains(Int(2)) {
		t.Errorf("b domain = %s, want {3,4}", domains["b"])
	}
}
