package csp

import "fmt"

// constraints.go: built-in constraint factories. Each factory returns either
// Arcs (binary), installed via Builder.AddBinaryConstraints, or a
// NaryConstraint (n-ary), installed via Builder.AddConstraint. All of them
// are declarative predicates:
// GAC (gac.go) derives pruning generically from any predicate, so no factory
// carries its own propagation algorithm. Every n-ary predicate is optimistic
// on partial assignments (a missing variable reads as "not yet violated")
// and strict once its full scope is assigned.

// AllDifferent returns an n-ary constraint requiring every variable in vars
// to take a pairwise-distinct value.
func AllDifferent(vars ...string) NaryConstraint {
	return NaryConstraint{
		Vars:  vars,
		Label: fmt.Sprintf("AllDifferent(%v)", vars),
		Predicate: func(a Assignment) bool {
			seen := make([]Value, 0, len(vars))
			for _, v := range vars {
				val, ok := a.Value(v)
				if !ok {
					continue
				}
				for _, s := range seen {
					if s.Equal(val) {
						return false
					}
				}
				seen = append(seen, val)
			}
			return true
		},
	}
}

// AllEqual returns an n-ary constraint requiring every variable in vars to
// take the same value.
func AllEqual(vars ...string) NaryConstraint {
	return NaryConstraint{
		Vars:  vars,
		Label: fmt.Sprintf("AllEqual(%v)", vars),
		Predicate: func(a Assignment) bool {
			var first Value
			haveFirst := false
			for _, v := range vars {
				val, ok := a.Value(v)
				if !ok {
					continue
				}
				if !haveFirst {
					first = val
					haveFirst = true
					continue
				}
				if !first.Equal(val) {
					return false
				}
			}
			return true
		},
	}
}

// weightedSumComplete reports the weighted sum of a's values for vars with
// coeffs, and whether every variable in vars was present in a.
func weightedSumComplete(vars []string, coeffs []int64, a Assignment) (Value, bool) {
	total := Int(0)
	for i, v := range vars {
		val, ok := a.Value(v)
		if !ok {
			return Value{}, false
		}
		term, ok := val.Mul(Int(coeffs[i]))
		if !ok {
			return Value{}, false
		}
		sum, ok := total.Add(term)
		if !ok {
			return Value{}, false
		}
		total = sum
	}
	return total, true
}

// LinearSumEquals returns an n-ary constraint requiring
// sum(coeffs[i]*vars[i]) == target, evaluated only once every variable is
// assigned; partial assignments are optimistically accepted.
func LinearSumEquals(vars []string, coeffs []int64, target int64) NaryConstraint {
	return NaryConstraint{
		Vars:  vars,
		Label: fmt.Sprintf("LinearSumEquals(%v)=%d", vars, target),
		Predicate: func(a Assignment) bool {
			total, complete := weightedSumComplete(vars, coeffs, a)
			if !complete {
				return true
			}
			return total.Equal(Int(target))
		},
	}
}

// ExactSum returns a LinearSumEquals with all coefficients 1.
func ExactSum(total int64, vars ...string) NaryConstraint {
	coeffs := make([]int64, len(vars))
	for i := range coeffs {
		coeffs[i] = 1
	}
	return LinearSumEquals(vars, coeffs, total)
}

// SumInRange returns an n-ary constraint requiring the sum of vars to fall
// in [lo, hi] inclusive once fully assigned.
func SumInRange(lo, hi int64, vars ...string) NaryConstraint {
	coeffs := make([]int64, len(vars))
	for i := range coeffs {
		coeffs[i] = 1
	}
	return NaryConstraint{
		Vars:  vars,
		Label: fmt.Sprintf("SumInRange(%d,%d,%v)", lo, hi, vars),
		Predicate: func(a Assignment) bool {
			total, complete := weightedSumComplete(vars, coeffs, a)
			if !complete {
				return true
			}
			return !total.Less(Int(lo)) && !Int(hi).Less(total)
		},
	}
}

// MinSum returns a SumInRange with no upper bound.
func MinSum(lo int64, vars ...string) NaryConstraint {
	return SumInRange(lo, int64(1)<<62, vars...)
}

// MaxSum returns a SumInRange with no lower bound.
func MaxSum(hi int64, vars ...string) NaryConstraint {
	return SumInRange(-(int64(1) << 62), hi, vars...)
}

// ExactProduct returns an n-ary constraint requiring the product of vars to
// equal target once fully assigned.
func ExactProduct(target int64, vars ...string) NaryConstraint {
	return NaryConstraint{
		Vars:  vars,
		Label: fmt.Sprintf("ExactProduct(%d,%v)", target, vars),
		Predicate: func(a Assignment) bool {
			product := Int(1)
			for _, v := range vars {
				val, ok := a.Value(v)
				if !ok {
					return true
				}
				p, ok := product.Mul(val)
				if !ok {
					return false
				}
				product = p
			}
			return product.Equal(Int(target))
		},
	}
}

// productInRange returns an n-ary constraint requiring the product of vars
// to fall in [lo, hi] once fully assigned.
func productInRange(lo, hi int64, vars ...string) NaryConstraint {
	return NaryConstraint{
		Vars:  vars,
		Label: fmt.Sprintf("ProductInRange(%d,%d,%v)", lo, hi, vars),
		Predicate: func(a Assignment) bool {
			product := Int(1)
			for _, v := range vars {
				val, ok := a.Value(v)
				if !ok {
					return true
				}
				p, ok := product.Mul(val)
				if !ok {
					return false
				}
				product = p
			}
			return !product.Less(Int(lo)) && !Int(hi).Less(product)
		},
	}
}

// MinProduct returns a productInRange with no upper bound.
func MinProduct(lo int64, vars ...string) NaryConstraint {
	return productInRange(lo, int64(1)<<62, vars...)
}

// MaxProduct returns a productInRange with no lower bound.
func MaxProduct(hi int64, vars ...string) NaryConstraint {
	return productInRange(-(int64(1) << 62), hi, vars...)
}

// InSet returns a single-variable n-ary constraint requiring variable's
// value to be a member of allowed.
func InSet(variable string, allowed ...Value) NaryConstraint {
	return NaryConstraint{
		Vars:  []string{variable},
		Label: fmt.Sprintf("InSet(%s)", variable),
		Predicate: func(a Assignment) bool {
			val, ok := a.Value(variable)
			if !ok {
				return true
			}
			for _, v := range allowed {
				if v.Equal(val) {
					return true
				}
			}
			return false
		},
	}
}

// NotInSet returns a constraint requiring variable's value to not be a
// member of forbidden.
func NotInSet(variable string, forbidden ...Value) NaryConstraint {
	return NaryConstraint{
		Vars:  []string{variable},
		Label: fmt.Sprintf("NotInSet(%s)", variable),
		Predicate: func(a Assignment) bool {
			val, ok := a.Value(variable)
			if !ok {
				return true
			}
			for _, v := range forbidden {
				if v.Equal(val) {
					return false
				}
			}
			return true
		},
	}
}

// SomeInSet returns a constraint requiring at least k of vars to take a
// value from allowed. Optimistic on a partial assignment: it only reports
// failure once the vars still unassigned can no longer reach k, even if
// every one of them turns out to land in allowed.
func SomeInSet(k int, allowed []Value, vars ...string) NaryConstraint {
	return NaryConstraint{
		Vars:  vars,
		Label: fmt.Sprintf("SomeInSet(%d,%v)", k, vars),
		Predicate: func(a Assignment) bool {
			count, unassigned := 0, 0
			for _, v := range vars {
				val, ok := a.Value(v)
				if !ok {
					unassigned++
					continue
				}
				for _, allow := range allowed {
					if allow.Equal(val) {
						count++
						break
					}
				}
			}
			if count >= k {
				return true
			}
			if unassigned == 0 {
				return false
			}
			return count+unassigned >= k
		},
	}
}

// SomeNotInSet returns a constraint requiring at least k of vars to take a
// value outside forbidden. Optimistic on a partial assignment in the same
// way as SomeInSet.
func SomeNotInSet(k int, forbidden []Value, vars ...string) NaryConstraint {
	return NaryConstraint{
		Vars:  vars,
		Label: fmt.Sprintf("SomeNotInSet(%d,%v)", k, vars),
		Predicate: func(a Assignment) bool {
			count, unassigned := 0, 0
			for _, v := range vars {
				val, ok := a.Value(v)
				if !ok {
					unassigned++
					continue
				}
				excluded := false
				for _, forbid := range forbidden {
					if forbid.Equal(val) {
						excluded = true
						break
					}
				}
				if !excluded {
					count++
				}
			}
			if count >= k {
				return true
			}
			if unassigned == 0 {
				return false
			}
			return count+unassigned >= k
		},
	}
}

func chainedOrdering(vars []string, strict bool, descending bool) NaryConstraint {
	label := "Ascending"
	if strict {
		label = "StrictlyAscending"
	}
	if descending {
		label = "Descending"
	}
	return NaryConstraint{
		Vars:  vars,
		Label: fmt.Sprintf("%s(%v)", label, vars),
		Predicate: func(a Assignment) bool {
			for i := 0; i+1 < len(vars); i++ {
				lo, ok1 := a.Value(vars[i])
				hi, ok2 := a.Value(vars[i+1])
				if !ok1 || !ok2 {
					continue
				}
				if descending {
					lo, hi = hi, lo
				}
				if strict {
					if !lo.Less(hi) {
						return false
					}
				} else {
					if hi.Less(lo) {
						return false
					}
				}
			}
			return true
		},
	}
}

// Ascending returns a constraint requiring vars[0] <= vars[1] <= ... once
// each adjacent pair is assigned.
func Ascending(vars ...string) NaryConstraint { return chainedOrdering(vars, false, false) }

// StrictlyAscending returns a constraint requiring vars[0] < vars[1] < ...
func StrictlyAscending(vars ...string) NaryConstraint { return chainedOrdering(vars, true, false) }

// Descending returns a constraint requiring vars[0] >= vars[1] >= ...
func Descending(vars ...string) NaryConstraint { return chainedOrdering(vars, false, true) }

// Arithmetic returns a binary arc requiring tail == head + offset.
func Arithmetic(head, tail string, offset int64) Arc {
	return Arc{
		Head: head,
		Tail: tail,
		Predicate: func(h, t Value) bool {
			sum, ok := h.Add(Int(offset))
			if !ok {
				return false
			}
			return sum.Equal(t)
		},
	}
}

// ArithmeticArcs returns the pair of directed arcs needed to make
// Arithmetic(head, tail, offset) bidirectionally consistent under AC-3,
// which only revises Tail from Head on a single arc.
func ArithmeticArcs(head, tail string, offset int64) []Arc {
	return []Arc{
		Arithmetic(head, tail, offset),
		{
			Head: tail,
			Tail: head,
			Predicate: func(t, h Value) bool {
				sum, ok := h.Add(Int(offset))
				if !ok {
					return false
				}
				return sum.Equal(t)
			},
		},
	}
}

// InequalityOp identifies a binary comparison operator.
type InequalityOp int

const (
	OpLess InequalityOp = iota
	OpLessOrEqual
	OpGreater
	OpGreaterOrEqual
	OpNotEqual
	OpEqual
)

// Inequality returns the pair of directed arcs enforcing head `op` tail.
func Inequality(head, tail string, op InequalityOp) []Arc {
	forward := func(h, t Value) bool { return compareValues(h, t, op) }
	backward := func(t, h Value) bool { return compareValues(h, t, op) }
	return []Arc{
		{Head: head, Tail: tail, Predicate: forward},
		{Head: tail, Tail: head, Predicate: backward},
	}
}

func compareValues(h, t Value, op InequalityOp) bool {
	switch op {
	case OpLess:
		return h.Less(t)
	case OpLessOrEqual:
		return h.Less(t) || h.Equal(t)
	case OpGreater:
		return t.Less(h)
	case OpGreaterOrEqual:
		return t.Less(h) || h.Equal(t)
	case OpNotEqual:
		return !h.Equal(t)
	case OpEqual:
		return h.Equal(t)
	default:
		return false
	}
}
