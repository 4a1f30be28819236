package csp

import (
	"math/bits"
	"strings"
)

// Domain represents the finite set of currently admissible values for a
// variable. Domains are immutable: every pruning operation returns a new
// Domain rather than mutating the receiver, so a Problem's original domains
// stay reusable across repeated solve calls (see Problem.Copy).
//
// Internally a Domain is a fixed, ordered backing list of Values shared by
// every Domain derived from it, plus a private bitset marking which
// positions are still present. This mirrors a classic bitset-backed
// finite-domain representation generalized from integers to arbitrary
// Values: Intersect/Union/Clone are O(words), not O(values), and two
// Domains can only be intersected/unioned meaningfully when they share the
// same backing list (i.e. descend from the same Domain via Remove,
// RemoveAllEqual, Intersect, Union or Clone). The solver's pruning steps
// rebuild domains with NewDomain, which starts a fresh backing list.
//
// A Domain may contain duplicate Values in its backing list; duplicates are
// tolerated, not collapsed, per the variable model's relaxed construction
// invariant. Size() counts live positions, so a domain built from
// {1,1,2} has Size() 3 until duplicate positions are pruned individually.
type Domain struct {
	values *[]Value
	bits   []uint64
}

// NewDomain builds a Domain containing exactly the given values, in order.
// An empty slice yields a valid, empty Domain (the caller is responsible for
// rejecting empty domains at construction time per the builder's contract).
func NewDomain(values []Value) Domain {
	cp := make([]Value, len(values))
	copy(cp, values)
	words := (len(cp) + 63) / 64
	bitset := make([]uint64, words)
	for i := range cp {
		bitset[i/64] |= 1 << uint(i%64)
	}
	return Domain{values: &cp, bits: bitset}
}

// IntRangeDomain builds a Domain of consecutive integers [lo, hi] (inclusive).
// Returns an empty Domain if hi < lo.
func IntRangeDomain(lo, hi int64) Domain {
	if hi < lo {
		return NewDomain(nil)
	}
	values := make([]Value, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		values = append(values, Int(v))
	}
	return NewDomain(values)
}

// IntValuesDomain builds a Domain from an explicit list of integers.
func IntValuesDomain(vals ...int64) Domain {
	values := make([]Value, len(vals))
	for i, v := range vals {
		values[i] = Int(v)
	}
	return NewDomain(values)
}

func (d Domain) backing() []Value {
	if d.values == nil {
		return nil
	}
	return *d.values
}

// Size returns the number of values currently present in the domain.
func (d Domain) Size() int {
	n := 0
	for _, w := range d.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether the domain has no remaining values.
func (d Domain) IsEmpty() bool { return d.Size() == 0 }

// IsSingleton reports whether exactly one value remains.
func (d Domain) IsSingleton() bool { return d.Size() == 1 }

// SingletonValue returns the sole remaining value. Behavior is undefined if
// the domain is not a singleton (mirrors the underlying bitset domain's
// contract: callers must check IsSingleton first).
func (d Domain) SingletonValue() Value {
	backing := d.backing()
	for wi, w := range d.bits {
		if w == 0 {
			continue
		}
		off := bits.TrailingZeros64(w)
		return backing[wi*64+off]
	}
	return Value{}
}

// Values returns the live values in ascending backing-list order. The
// returned slice is a fresh copy safe for the caller to retain.
func (d Domain) Values() []Value {
	backing := d.backing()
	out := make([]Value, 0, d.Size())
	for wi, w := range d.bits {
		for w != 0 {
			off := bits.TrailingZeros64(w)
			idx := wi*64 + off
			if idx < len(backing) {
				out = append(out, backing[idx])
			}
			w &^= 1 << uint(off)
		}
	}
	return out
}

// Iterate calls f for each live value in ascending position order, passing
// the position in the backing list (stable across clones of the same
// domain) and the value itself. f must not mutate the Domain.
func (d Domain) Iterate(f func(pos int, v Value)) {
	backing := d.backing()
	for wi, w := range d.bits {
		for w != 0 {
			off := bits.TrailingZeros64(w)
			idx := wi*64 + off
			if idx < len(backing) {
				f(idx, backing[idx])
			}
			w &^= 1 << uint(off)
		}
	}
}

// Contains reports whether value is present in the domain.
func (d Domain) Contains(value Value) bool {
	found := false
	d.Iterate(func(_ int, v Value) {
		if !found && v.Equal(value) {
			found = true
		}
	})
	return found
}

func (d Domain) positionOf(value Value) (int, bool) {
	backing := d.backing()
	for i, v := range backing {
		if d.bits[i/64]&(1<<uint(i%64)) != 0 && v.Equal(value) {
			return i, true
		}
	}
	return 0, false
}

func (d Domain) cloneBits() []uint64 {
	nb := make([]uint64, len(d.bits))
	copy(nb, d.bits)
	return nb
}

// Remove returns a new Domain with value removed. If value is not present,
// d is returned unchanged. If value appears at several live backing
// positions (duplicates), only the first of them is cleared; repeated
// Remove calls clear the remaining duplicate positions one at a time,
// matching the "duplicates are tolerated, not collapsed" invariant.
func (d Domain) Remove(value Value) Domain {
	pos, ok := d.positionOf(value)
	if !ok {
		return d
	}
	return d.removeAt(pos)
}

func (d Domain) removeAt(pos int) Domain {
	nb := d.cloneBits()
	nb[pos/64] &^= 1 << uint(pos%64)
	return Domain{values: d.values, bits: nb}
}

// RemoveAllEqual returns a new Domain with every position equal to value
// cleared (collapsing duplicates in one pass). Used by constraints that
// operate on the value, not a single backing slot.
func (d Domain) RemoveAllEqual(value Value) Domain {
	nb := d.cloneBits()
	backing := d.backing()
	for i, v := range backing {
		if v.Equal(value) {
			nb[i/64] &^= 1 << uint(i%64)
		}
	}
	return Domain{values: d.values, bits: nb}
}

// Clone returns a copy of the domain. Because Domain is already immutable
// and copy-on-write, Clone is cheap (it shares the backing list and copies
// only the small bitset).
func (d Domain) Clone() Domain {
	return Domain{values: d.values, bits: d.cloneBits()}
}

// Intersect returns a new Domain containing only positions present in both
// this and other. The two domains must share the same backing list (i.e.
// both descend from the same variable's initial domain); Intersect across
// unrelated domains returns an empty Domain rather than panicking.
func (d Domain) Intersect(other Domain) Domain {
	if d.values != other.values {
		return Domain{values: d.values, bits: make([]uint64, len(d.bits))}
	}
	n := len(d.bits)
	if len(other.bits) > n {
		n = len(other.bits)
	}
	nb := make([]uint64, n)
	for i := 0; i < n; i++ {
		var a, b uint64
		if i < len(d.bits) {
			a = d.bits[i]
		}
		if i < len(other.bits) {
			b = other.bits[i]
		}
		nb[i] = a & b
	}
	return Domain{values: d.values, bits: nb}
}

// Union returns a new Domain containing positions present in either domain.
// Like Intersect, only meaningful between domains sharing a backing list.
func (d Domain) Union(other Domain) Domain {
	if d.values != other.values {
		return d.Clone()
	}
	n := len(d.bits)
	if len(other.bits) > n {
		n = len(other.bits)
	}
	nb := make([]uint64, n)
	for i := 0; i < n; i++ {
		var a, b uint64
		if i < len(d.bits) {
			a = d.bits[i]
		}
		if i < len(other.bits) {
			b = other.bits[i]
		}
		nb[i] = a | b
	}
	return Domain{values: d.values, bits: nb}
}

// Equal reports whether two domains contain the same live positions of the
// same backing list.
func (d Domain) Equal(other Domain) bool {
	if d.values != other.values {
		return d.equalByValue(other)
	}
	n := len(d.bits)
	if len(other.bits) > n {
		n = len(other.bits)
	}
	for i := 0; i < n; i++ {
		var a, b uint64
		if i < len(d.bits) {
			a = d.bits[i]
		}
		if i < len(other.bits) {
			b = other.bits[i]
		}
		if a != b {
			return false
		}
	}
	return true
}

func (d Domain) equalByValue(other Domain) bool {
	dv, ov := d.Values(), other.Values()
	if len(dv) != len(ov) {
		return false
	}
	for i := range dv {
		if !dv[i].Equal(ov[i]) {
			return false
		}
	}
	return true
}

// Min returns the numerically smallest value in the domain, considering
// only numeric-kind entries. Returns (Value{}, false) if the domain has no
// numeric values.
func (d Domain) Min() (Value, bool) {
	var best Value
	found := false
	d.Iterate(func(_ int, v Value) {
		if !v.IsNumeric() {
			return
		}
		if !found || v.Less(best) {
			best = v
			found = true
		}
	})
	return best, found
}

// Max returns the numerically largest value in the domain.
func (d Domain) Max() (Value, bool) {
	var best Value
	found := false
	d.Iterate(func(_ int, v Value) {
		if !v.IsNumeric() {
			return
		}
		if !found || best.Less(v) {
			best = v
			found = true
		}
	})
	return best, found
}

// String renders the domain for diagnostics, e.g. "{1,2,3}" or "{}".
func (d Domain) String() string {
	var b strings.Builder
	b.WriteString("{")
	first := true
	d.Iterate(func(_ int, v Value) {
		if !first {
			b.WriteString(",")
		}
		first = false
		b.WriteString(v.String())
	})
	b.WriteString("}")
	return b.String()
}
