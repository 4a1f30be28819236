package csp

import "testing"

func TestSolveAllDifferentFreeFunc(t *testing.T) {
	solution, found, err := SolveAllDifferent(IntRangeDomain(1, 3), "x", "y", "z")
	if err != nil {
		t.Fatalf("SolveAllDifferent error: %v", err)
	}
	if !found {
		t.Fatal("three variables over three values admit a permutation")
	}
	seen := map[int64]bool{}
	for _, name := range []string{"x", "y", "z"} {
		seen[solution[name].Int64()] = true
	}
	if len(seen) != 3 {
		t.Errorf("solution is not a permutation: %v", solution)
	}
}

func TestCountAllDifferentSolutionsFreeFunc(t *testing.T) {
	n, err := CountAllDifferentSolutions(IntRangeDomain(1, 3), "x", "y", "z")
	if err != nil {
		t.Fatalf("CountAllDifferentSolutions error: %v", err)
	}
	if n != 6 {
		t.Errorf("got %d permutations of 3 values, want 6", n)
	}
}

func TestSolveExactSumFreeFunc(t *testing.T) {
	solution, found, err := SolveExactSum(IntRangeDomain(0, 5), 7, "x", "y")
	if err != nil {
		t.Fatalf("SolveExactSum error: %v", err)
	}
	if !found {
		t.Fatal("x+y=7 over {0..5} is satisfiable")
	}
	if solution["x"].Int64()+solution["y"].Int64() != 7 {
		t.Errorf("x+y = %d, want 7", solution["x"].Int64()+solution["y"].Int64())
	}

	_, found, err = SolveExactSum(IntRangeDomain(0, 2), 9, "x", "y")
	if err != nil {
		t.Fatalf("SolveExactSum error: %v", err)
	}
	if found {
		t.Error("x+y=9 over {0..2} is unsatisfiable")
	}
}
