package csp

import (
	"errors"
	"strings"
	"testing"
)

func TestBuilderRejectsDuplicateVariable(t *testing.T) {
	_, err := NewBuilder().
		AddVariable("a", IntRangeDomain(1, 3)).
		AddVariable("a", IntRangeDomain(1, 3)).
		Build()
	if !errors.Is(err, ErrDuplicateVariable) {
		t.Errorf("Build() error = %v, want ErrDuplicateVariable", err)
	}
}

func TestBuilderRejectsUnknownVariableInConstraint(t *testing.T) {
	_, err := NewBuilder().
		AddVariable("a", IntRangeDomain(1, 3)).
		AddConstraint(AllDifferent("a", "ghost")).
		Build()
	if !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("Build() error = %v, want ErrUnknownVariable", err)
	}
}

func TestBuilderRejectsConstraintWithNoVariables(t *testing.T) {
	_, err := NewBuilder().
		AddVariable("a", IntRangeDomain(1, 3)).
		AddConstraint(NaryConstraint{Label: "empty", Predicate: func(Assignment) bool { return true }}).
		Build()
	if !errors.Is(err, ErrArityMismatch) {
		t.Errorf("Build() error = %v, want ErrArityMismatch", err)
	}
}

func TestBuilderStopsAtFirstError(t *testing.T) {
	b := NewBuilder().
		AddVariable("a", NewDomain(nil)).
		AddVariable("b", IntRangeDomain(1, 3))
	if _, err := b.Build(); !errors.Is(err, ErrEmptyDomain) {
		t.Fatalf("Build() error = %v, want ErrEmptyDomain", err)
	}
	// The second AddVariable ran after the error and must not have taken
	// effect.
	if b.problem.HasVariable("b") {
		t.Error("builder accepted a variable after an earlier construction error")
	}
}

func TestProblemCopyIsDeep(t *testing.T) {
	problem, err := NewBuilder().
		AddVariable("a", IntRangeDomain(1, 3)).
		AddVariable("b", IntRangeDomain(1, 3)).
		AddBinaryConstraints(Inequality("a", "b", OpNotEqual)...).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	clone := problem.Copy()
	problem.Clear()

	if len(clone.VariableNames()) != 2 {
		t.Errorf("clone lost variables after Clear on the original: %v", clone.VariableNames())
	}
	if len(clone.Arcs()) != 2 {
		t.Errorf("clone has %d arcs, want 2", len(clone.Arcs()))
	}
	if _, found, err := NewSolver(clone).Solve(); err != nil || !found {
		t.Errorf("clone should still be solvable: found=%v, err=%v", found, err)
	}
}

func TestProblemIsReusableAcrossSolves(t *testing.T) {
	problem, err := NewBuilder().
		AddVariable("a", IntRangeDomain(1, 3)).
		AddVariable("b", IntRangeDomain(1, 3)).
		AddStringConstraint("a < b").
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	first, err := NewSolver(problem).SolveAll()
	if err != nil {
		t.Fatalf("SolveAll() error: %v", err)
	}
	second, err := NewSolver(problem).SolveAll()
	if err != nil {
		t.Fatalf("second SolveAll() error: %v", err)
	}
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("enumerations differ in size: %d vs %d, want 3", len(first), len(second))
	}
	for i := range first {
		for _, name := range []string{"a", "b"} {
			if !first[i][name].Equal(second[i][name]) {
				t.Errorf("solution %d differs between runs on %s", i, name)
			}
		}
	}
}

func TestValidateWarningsFlagsIsolatedVariable(t *testing.T) {
	problem, err := NewBuilder().
		AddVariable("a", IntRangeDomain(1, 3)).
		AddVariable("b", IntRangeDomain(1, 3)).
		AddVariable("lonely", IntRangeDomain(1, 3)).
		AddBinaryConstraints(Inequality("a", "b", OpNotEqual)...).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	warnings := problem.ValidateWarnings()
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "lonely") {
			found = true
		}
		if strings.Contains(w, `"a"`) || strings.Contains(w, `"b"`) {
			t.Errorf("constrained variable flagged as isolated: %q", w)
		}
	}
	if !found {
		t.Errorf("expected a warning about %q, got %v", "lonely", warnings)
	}
}

func TestPrintSummaryReportsCounts(t *testing.T) {
	problem, err := NewBuilder().
		AddVariable("a", IntRangeDomain(1, 2)).
		AddVariable("b", IntRangeDomain(1, 2)).
		AddConstraint(AllDifferent("a", "b")).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	summary := problem.PrintSummary()
	if !strings.Contains(summary, "2 variables") {
		t.Errorf("summary missing variable count: %q", summary)
	}
	if !strings.Contains(summary, "1 n-ary constraints") {
		t.Errorf("summary missing constraint count: %q", summary)
	}
	if !strings.Contains(summary, "{1,2}") {
		t.Errorf("summary missing domain rendering: %q", summary)
	}
}

func TestClueVariableIsSingleton(t *testing.T) {
	problem, err := NewBuilder().
		AddVariable("clue", IntValuesDomain(5)).
		AddVariable("free", IntRangeDomain(1, 9)).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	v, _ := problem.Variable("clue")
	if !v.IsClue() {
		t.Error("a singleton initial domain marks the variable as a clue")
	}
	v, _ = problem.Variable("free")
	if v.IsClue() {
		t.Error("a 9-value domain is not a clue")
	}
}
