package csp_test

import (
	"github.com/corvidlabs/cspsolve/pkg/csp"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Australian map coloring", func() {
	It("returns a positive even number of solutions with no two adjacent states sharing a color", func() {
		colors := csp.NewDomain([]csp.Value{csp.Symbol("red"), csp.Symbol("green"), csp.Symbol("blue")})
		states := []string{"WA", "NT", "SA", "Q", "NSW", "V", "T"}
		adjacent := [][2]string{
			{"WA", "NT"}, {"WA", "SA"}, {"NT", "SA"}, {"NT", "Q"},
			{"SA", "Q"}, {"SA", "NSW"}, {"SA", "V"}, {"Q", "NSW"}, {"NSW", "V"},
		}

		b := csp.NewBuilder().AddVariables(colors, states...)
		for _, pair := range adjacent {
			b = b.AddBinaryConstraints(csp.Inequality(pair[0], pair[1], csp.OpNotEqual)...)
		}
		problem, err := b.Build()
		Expect(err).NotTo(HaveOccurred())

		solutions, err := csp.NewSolver(problem).SolveAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(len(solutions)).To(BeNumerically(">", 0))
		Expect(len(solutions) % 2).To(Equal(0))

		seenT := map[string]bool{}
		for _, sol := range solutions {
			for _, pair := range adjacent {
				Expect(sol[pair[0]].Equal(sol[pair[1]])).To(BeFalse())
			}
			seenT[sol["T"].String()] = true
		}
		Expect(seenT).To(HaveLen(3))
	})
})

var _ = Describe("4-Queens", func() {
	It("has exactly 2 solutions, mirror images of each other", func() {
		domain := csp.IntRangeDomain(1, 4)
		b := csp.NewBuilder().AddVariables(domain, "Q1", "Q2", "Q3", "Q4").
			AddConstraint(csp.AllDifferent("Q1", "Q2", "Q3", "Q4"))

		names := []string{"Q1", "Q2", "Q3", "Q4"}
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				gap := int64(j - i)
				qi, qj := names[i], names[j]
				b = b.AddConstraint(csp.NaryConstraint{
					Vars:  []string{qi, qj},
					Label: "diagonal",
					Predicate: func(a csp.Assignment) bool {
						vi, oki := a.Value(qi)
						vj, okj := a.Value(qj)
						if !oki || !okj {
							return true
						}
						diff := vi.Int64() - vj.Int64()
						if diff < 0 {
							diff = -diff
						}
						return diff != gap
					},
				})
			}
		}

		problem, err := b.Build()
		Expect(err).NotTo(HaveOccurred())
		solutions, err := csp.NewSolver(problem).SolveAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(solutions).To(HaveLen(2))
	})
})

var _ = Describe("Change-making", func() {
	It("finds exactly 29 combinations of quarters, dimes, and nickels summing to 100 cents", func() {
		domain := csp.IntRangeDomain(0, 20)
		problem, err := csp.NewBuilder().
			AddVariables(domain, "Q", "D", "N").
			AddConstraint(csp.LinearSumEquals([]string{"Q", "D", "N"}, []int64{25, 10, 5}, 100)).
			Build()
		Expect(err).NotTo(HaveOccurred())

		solutions, err := csp.NewSolver(problem).SolveAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(solutions).To(HaveLen(29))
		for _, sol := range solutions {
			total := 25*sol["Q"].Int64() + 10*sol["D"].Int64() + 5*sol["N"].Int64()
			Expect(total).To(Equal(int64(100)))
		}
	})
})

var _ = Describe("3x3 magic square with a clued center", func() {
	It("has exactly 8 solutions once the center is pinned to 5", func() {
		// C1 C2 C3
		// C4 C5 C6
		// C7 C8 C9
		cells := []string{"C1", "C2", "C3", "C4", "C5", "C6", "C7", "C8", "C9"}
		lines := [][3]string{
			{"C1", "C2", "C3"}, {"C4", "C5", "C6"}, {"C7", "C8", "C9"}, // rows
			{"C1", "C4", "C7"}, {"C2", "C5", "C8"}, {"C3", "C6", "C9"}, // columns
			{"C1", "C5", "C9"}, {"C3", "C5", "C7"}, // diagonals
		}

		b := csp.NewBuilder()
		for _, c := range cells {
			if c == "C5" {
				b = b.AddVariable(c, csp.IntValuesDomain(5))
				continue
			}
			b = b.AddVariable(c, csp.IntRangeDomain(1, 9))
		}
		b = b.AddConstraint(csp.AllDifferent(cells...))
		for _, line := range lines {
			line := line // line[:] must not alias the shared loop variable
			b = b.AddConstraint(csp.LinearSumEquals(line[:], []int64{1, 1, 1}, 15))
		}
		problem, err := b.Build()
		Expect(err).NotTo(HaveOccurred())

		solutions, err := csp.NewSolver(problem).SolveAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(solutions).To(HaveLen(8))
		for _, sol := range solutions {
			Expect(sol["C5"].Int64()).To(Equal(int64(5)))
			for _, line := range lines {
				total := sol[line[0]].Int64() + sol[line[1]].Int64() + sol[line[2]].Int64()
				Expect(total).To(Equal(int64(15)))
			}
			seen := map[int64]bool{}
			for _, c := range cells {
				seen[sol[c].Int64()] = true
			}
			Expect(seen).To(HaveLen(9))
		}
	})
})

var _ = Describe("Star graph degree tie-break", func() {
	It("selects the center variable first under MRV+degree", func() {
		domain := csp.IntRangeDomain(0, 2)
		leaves := []string{"L1", "L2", "L3", "L4", "L5", "L6", "L7", "L8"}
		// Leaves are declared before Center, so a tie-break that merely
		// preferred declaration order would pick a leaf first. Only the
		// degree tie-break (Center's arcs touch every leaf; each leaf's
		// arcs touch only Center) can put Center first despite that.
		b := csp.NewBuilder().AddVariables(domain, leaves...).AddVariable("Center", domain)
		for _, leaf := range leaves {
			b = b.AddBinaryConstraints(csp.Inequality("Center", leaf, csp.OpNotEqual)...)
		}

		// All nine variables start with an identical 3-value domain, so MRV
		// alone cannot distinguish Center from any leaf; only the degree
		// tie-break can. The step callback reports which variable becomes
		// assigned (singleton) at each step, letting the test observe
		// selection order directly.
		var selectionOrder []string
		seen := map[string]bool{}
		b = b.SetOptions(0, func(assigned, _ map[string]csp.Domain) {
			for name := range assigned {
				if !seen[name] {
					seen[name] = true
					selectionOrder = append(selectionOrder, name)
				}
			}
		})

		problem, err := b.Build()
		Expect(err).NotTo(HaveOccurred())

		solver := csp.NewSolver(problem)
		_, found, err := solver.Solve()
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())

		Expect(selectionOrder).NotTo(BeEmpty())
		Expect(selectionOrder[0]).To(Equal("Center"))
	})
})

var _ = Describe("String constraint A < B on {1,2,3}", func() {
	It("enumerates exactly [(1,2),(1,3),(2,3)] in that order", func() {
		problem, err := csp.NewBuilder().
			AddVariable("A", csp.IntRangeDomain(1, 3)).
			AddVariable("B", csp.IntRangeDomain(1, 3)).
			AddStringConstraint("A < B").
			Build()
		Expect(err).NotTo(HaveOccurred())

		solutions, err := csp.NewSolver(problem).SolveAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(solutions).To(HaveLen(3))

		got := make([][2]int64, len(solutions))
		for i, sol := range solutions {
			got[i] = [2]int64{sol["A"].Int64(), sol["B"].Int64()}
		}
		Expect(got).To(Equal([][2]int64{{1, 2}, {1, 3}, {2, 3}}))
	})
})

var _ = Describe("Unsatisfiable pigeonhole", func() {
	It("reports Unsolvable for 3 variables, 2 values, all-different", func() {
		domain := csp.IntRangeDomain(1, 2)
		problem, err := csp.NewBuilder().
			AddVariables(domain, "X", "Y", "Z").
			AddConstraint(csp.AllDifferent("X", "Y", "Z")).
			Build()
		Expect(err).NotTo(HaveOccurred())

		_, found, err := csp.NewSolver(problem).Solve()
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())

		_, found = problem.SolveWithMinConflicts()
		Expect(found).To(BeFalse())
	})
})

var _ = Describe("Empty domain is rejected at construction", func() {
	It("returns an error from Build rather than succeeding and failing at solve time", func() {
		_, err := csp.NewBuilder().
			AddVariable("A", csp.NewDomain(nil)).
			Build()
		Expect(err).To(MatchError(csp.ErrEmptyDomain))
	})
})
