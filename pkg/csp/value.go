// Package csp provides constraint programming infrastructure for
// finite-domain constraint satisfaction problems (CSPs).
//
// A problem is a finite set of named variables, each with a finite domain of
// candidate Values, plus a set of constraints that restrict which
// combinations of values are admissible. The package finds one solution,
// enumerates all solutions, or reports unsatisfiability.
package csp

import (
	"fmt"
	"strconv"
)

// Kind identifies the concrete variant held by a Value.
type Kind int

const (
	// KindInt holds a signed integer.
	KindInt Kind = iota
	// KindReal holds a floating-point number.
	KindReal
	// KindText holds an arbitrary string.
	KindText
	// KindSymbol holds a short, interned-style identifier (e.g. "red", "Q").
	// Symbols compare equal only to other symbols with the same text; they
	// are distinguished from KindText so constraint authors can tell
	// "the user typed a bare word" from "the user typed a quoted string".
	KindSymbol
	// KindOpaque holds an arbitrary composite (e.g. a coordinate pair) that
	// is only ever compared for equality, never ordered or used in arithmetic.
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindText:
		return "text"
	case KindSymbol:
		return "symbol"
	case KindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Value is the tagged sum of domain element types a Variable may hold:
// integer, floating-point, string, symbolic enum, or an opaque composite.
// Equality is structural; ordering is defined only for the numeric variants.
// Arithmetic constraints that receive a non-numeric Value simply fail
// (predicate returns false) rather than panicking.
type Value struct {
	kind   Kind
	i      int64
	r      float64
	s      string
	opaque any
}

// Int creates an integer Value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Real creates a floating-point Value.
func Real(v float64) Value { return Value{kind: KindReal, r: v} }

// Text creates a string Value.
func Text(v string) Value { return Value{kind: KindText, s: v} }

// Symbol creates a symbolic Value, e.g. a color name or a puzzle label.
func Symbol(v string) Value { return Value{kind: KindSymbol, s: v} }

// Opaque wraps an arbitrary comparable payload (e.g. a coordinate struct) as
// a Value. The payload must be comparable with == for Equal to behave
// correctly; non-comparable payloads make Equal panic, mirroring Go's own
// map-key rules.
func Opaque(v any) Value { return Value{kind: KindOpaque, opaque: v} }

// Kind reports the concrete variant held.
func (v Value) Kind() Kind { return v.kind }

// IsNumeric reports whether the value is an int or a real.
func (v Value) IsNumeric() bool { return v.kind == KindInt || v.kind == KindReal }

// Int64 returns the integer payload. Valid only when Kind() == KindInt.
func (v Value) Int64() int64 { return v.i }

// Float64 returns the numeric payload as a float64, converting from int if
// necessary. Valid only when IsNumeric() is true.
func (v Value) Float64() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.r
}

// Str returns the string payload. Valid for KindText and KindSymbol.
func (v Value) Str() string { return v.s }

// Raw returns the opaque payload. Valid only when Kind() == KindOpaque.
func (v Value) Raw() any { return v.opaque }

// Equal reports structural equality between two values of possibly
// different kinds. Numeric kinds compare by numeric value (1 == 1.0);
// every other kind requires matching kinds.
func (v Value) Equal(other Value) bool {
	if v.IsNumeric() && other.IsNumeric() {
		return v.Float64() == other.Float64()
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindText, KindSymbol:
		return v.s == other.s
	case KindOpaque:
		return v.opaque == other.opaque
	default:
		return false
	}
}

// Less defines a total order over numeric values only. Ordering of other
// kinds is undefined and Less returns false; callers that need a
// deterministic non-numeric order should sort on String() instead.
func (v Value) Less(other Value) bool {
	if v.IsNumeric() && other.IsNumeric() {
		return v.Float64() < other.Float64()
	}
	return false
}

// Add returns v+other for numeric kinds; ok is false for non-numeric
// operands, signaling the containing predicate should fail rather than
// panic (per the arithmetic-operand contract in the Value model).
func (v Value) Add(other Value) (Value, bool) {
	return numericOp(v, other, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })
}

// Sub returns v-other for numeric kinds.
func (v Value) Sub(other Value) (Value, bool) {
	return numericOp(v, other, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
}

// Mul returns v*other for numeric kinds.
func (v Value) Mul(other Value) (Value, bool) {
	return numericOp(v, other, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
}

// Div returns v/other for numeric kinds. Division by zero is treated as a
// predicate failure (ok=false), never a panic — the generic expression
// evaluator depends on that.
func (v Value) Div(other Value) (Value, bool) {
	if v.kind == KindInt && other.kind == KindInt {
		if other.i == 0 {
			return Value{}, false
		}
		return Int(v.i / other.i), true
	}
	if !v.IsNumeric() || !other.IsNumeric() {
		return Value{}, false
	}
	if other.Float64() == 0 {
		return Value{}, false
	}
	return Real(v.Float64() / other.Float64()), true
}

func numericOp(v, other Value, intOp func(a, b int64) int64, realOp func(a, b float64) float64) (Value, bool) {
	if !v.IsNumeric() || !other.IsNumeric() {
		return Value{}, false
	}
	if v.kind == KindInt && other.kind == KindInt {
		return Int(intOp(v.i, other.i)), true
	}
	return Real(realOp(v.Float64(), other.Float64())), true
}

// String renders the value for diagnostics, error messages, and the
// labels of compiled string constraints.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindReal:
		return strconv.FormatFloat(v.r, 'g', -1, 64)
	case KindText:
		return strconv.Quote(v.s)
	case KindSymbol:
		return v.s
	case KindOpaque:
		return fmt.Sprintf("%v", v.opaque)
	default:
		return "<invalid value>"
	}
}
