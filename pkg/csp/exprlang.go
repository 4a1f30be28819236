package csp

import (
	"fmt"
	"strconv"
	"strings"
)

// exprlang.go: the constraint expression compiler. It lexes a string
// constraint into tokens, then tries a fixed, ordered sequence of
// structural recognizers before falling back to a fully general
// arithmetic-comparison evaluator: small hand-rolled lexer, explicit token
// slice, recursive-descent precedence parser, no parser-generator
// dependency. First recognizer to match wins, so the clause order below is
// load-bearing.

// ParsedConstraint is the compiled form of a string constraint. Exactly one
// of Arcs or Nary is populated, corresponding to the arity_class the
// recognizer settled on.
type ParsedConstraint struct {
	Arcs       []Arc
	Nary       *NaryConstraint
	ArityClass string
}

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokNumber
	tokOp
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
	tokKeyword
)

type token struct {
	kind tokenKind
	text string
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isIdentPart(c byte) bool { return isIdentStart(c) || isDigitByte(c) }

// lexExpression tokenizes a constraint expression. Identifiers are matched
// as maximal runs of letters/digits/underscore, so a declared name like
// "AB" is never split into "A" followed by "B".
func lexExpression(expr string) ([]token, error) {
	var toks []token
	n := len(expr)
	i := 0
	for i < n {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "("})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++
		case c == '[':
			toks = append(toks, token{tokLBracket, "["})
			i++
		case c == ']':
			toks = append(toks, token{tokRBracket, "]"})
			i++
		case c == ',':
			toks = append(toks, token{tokComma, ","})
			i++
		case c == '=' && i+1 < n && expr[i+1] == '=':
			toks = append(toks, token{tokOp, "=="})
			i += 2
		case c == '!' && i+1 < n && expr[i+1] == '=':
			toks = append(toks, token{tokOp, "!="})
			i += 2
		case c == '<' && i+1 < n && expr[i+1] == '=':
			toks = append(toks, token{tokOp, "<="})
			i += 2
		case c == '>' && i+1 < n && expr[i+1] == '=':
			toks = append(toks, token{tokOp, ">="})
			i += 2
		case c == '<':
			toks = append(toks, token{tokOp, "<"})
			i++
		case c == '>':
			toks = append(toks, token{tokOp, ">"})
			i++
		case c == '+':
			toks = append(toks, token{tokOp, "+"})
			i++
		case c == '-':
			toks = append(toks, token{tokOp, "-"})
			i++
		case c == '*':
			toks = append(toks, token{tokOp, "*"})
			i++
		case c == '/':
			toks = append(toks, token{tokOp, "/"})
			i++
		case isDigitByte(c):
			j := i
			for j < n && (isDigitByte(expr[j]) || expr[j] == '.') {
				j++
			}
			toks = append(toks, token{tokNumber, expr[i:j]})
			i = j
		case isIdentStart(c):
			j := i
			for j < n && isIdentPart(expr[j]) {
				j++
			}
			word := expr[i:j]
			if word == "in" || word == "not" {
				toks = append(toks, token{tokKeyword, word})
			} else {
				toks = append(toks, token{tokIdent, word})
			}
			i = j
		default:
			return nil, fmt.Errorf("%w: unexpected character %q in %q", ErrParse, string(c), expr)
		}
	}
	return toks, nil
}

// validateIdentifiers checks every identifier token outside of a bracketed
// set literal against declared. Tokens inside [...] are set-membership
// literals, not variable references, and are exempt.
func validateIdentifiers(toks []token, declared map[string]bool) error {
	depth := 0
	for _, t := range toks {
		switch t.kind {
		case tokLBracket:
			depth++
		case tokRBracket:
			depth--
		case tokIdent:
			if depth == 0 && !declared[t.text] {
				return fmt.Errorf("%w: %q", ErrUndefinedIdentifier, t.text)
			}
		}
	}
	return nil
}

func isComparisonOp(op string) bool {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	}
	return false
}

// splitComparisons splits toks on top-level (bracket/paren-depth-zero)
// comparison operators, returning the operand slices between them and the
// operators themselves in encounter order. "A != B != C" yields three
// single-token operands and two "!=" operators; "A < B" yields two operands
// and one "<".
func splitComparisons(toks []token) (operands [][]token, ops []string) {
	depth := 0
	start := 0
	for i, t := range toks {
		switch t.kind {
		case tokLParen, tokLBracket:
			depth++
		case tokRParen, tokRBracket:
			depth--
		case tokOp:
			if depth == 0 && isComparisonOp(t.text) {
				operands = append(operands, toks[start:i])
				ops = append(ops, t.text)
				start = i + 1
			}
		}
	}
	operands = append(operands, toks[start:])
	return
}

func parseSingleVar(toks []token) (string, bool) {
	if len(toks) == 1 && toks[0].kind == tokIdent {
		return toks[0].text, true
	}
	return "", false
}

// parseConstantOperand recognizes a bare numeric literal, including a
// leading unary minus ("-5"), per the invariant that negative literals are
// recognized in operand position.
func parseConstantOperand(toks []token) (Value, bool) {
	negative := false
	if len(toks) == 2 && toks[0].kind == tokOp && toks[0].text == "-" {
		negative = true
		toks = toks[1:]
	}
	if len(toks) != 1 || toks[0].kind != tokNumber {
		return Value{}, false
	}
	v, ok := parseNumberLiteral(toks[0].text)
	if !ok {
		return Value{}, false
	}
	if negative {
		v, ok = Int(0).Sub(v)
		if !ok {
			return Value{}, false
		}
	}
	return v, true
}

func parseNumberLiteral(text string) (Value, bool) {
	if strings.Contains(text, ".") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, false
		}
		return Real(f), true
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Value{}, false
	}
	return Int(i), true
}

// parseHomogeneousExpr recognizes a flat "V1 + V2 + ... + Vn" or
// "V1 * V2 * ... * Vn" expression: variables only, a single repeated
// operator. Mixed operators or non-identifier operands fail to match,
// falling through to later recognizers.
func parseHomogeneousExpr(toks []token) (vars []string, op string, ok bool) {
	if len(toks) == 0 || len(toks)%2 == 0 {
		return nil, "", false
	}
	for i, t := range toks {
		if i%2 == 0 {
			if t.kind != tokIdent {
				return nil, "", false
			}
			vars = append(vars, t.text)
		} else {
			if t.kind != tokOp || (t.text != "+" && t.text != "*") {
				return nil, "", false
			}
			if op == "" {
				op = t.text
			} else if op != t.text {
				return nil, "", false
			}
		}
	}
	if len(vars) == 1 {
		op = "+"
	}
	return vars, op, true
}

func parseSetLiteral(toks []token) ([]Value, bool) {
	if len(toks) < 2 || toks[0].kind != tokLBracket || toks[len(toks)-1].kind != tokRBracket {
		return nil, false
	}
	inner := toks[1 : len(toks)-1]
	var values []Value
	var current []token
	flush := func() bool {
		if len(current) == 0 {
			return true
		}
		if v, ok := parseConstantOperand(current); ok {
			values = append(values, v)
		} else if len(current) == 1 && current[0].kind == tokIdent {
			values = append(values, Symbol(current[0].text))
		} else {
			return false
		}
		current = nil
		return true
	}
	for _, t := range inner {
		if t.kind == tokComma {
			if !flush() {
				return nil, false
			}
			continue
		}
		current = append(current, t)
	}
	if !flush() {
		return nil, false
	}
	return values, true
}

func opToInequality(op string) InequalityOp {
	switch op {
	case "==":
		return OpEqual
	case "!=":
		return OpNotEqual
	case "<":
		return OpLess
	case "<=":
		return OpLessOrEqual
	case ">":
		return OpGreater
	case ">=":
		return OpGreaterOrEqual
	default:
		return OpEqual
	}
}

// compileExpression is the expression compiler entry point. declared holds
// every variable name the enclosing Builder has registered so far.
func compileExpression(expr string, declared map[string]bool) (*ParsedConstraint, error) {
	toks, err := lexExpression(expr)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("%w: empty expression", ErrParse)
	}
	if err := validateIdentifiers(toks, declared); err != nil {
		return nil, err
	}

	if pc, ok := tryRangeConstraint(toks); ok {
		return pc, nil
	}
	if pc, ok := tryChainedInequality(toks); ok {
		return pc, nil
	}
	if pc, ok := tryBinaryVariableRelation(toks); ok {
		return pc, nil
	}
	if pc, ok := tryChainedOrdering(toks); ok {
		return pc, nil
	}
	if pc, ok := tryVariableToConstant(toks); ok {
		return pc, nil
	}
	if pc, ok := tryVariableEquation(toks); ok {
		return pc, nil
	}
	if pc, ok := tryArithmeticEquality(toks); ok {
		return pc, nil
	}
	if pc, ok := tryArithmeticInequality(toks); ok {
		return pc, nil
	}
	if pc, ok := trySetMembership(toks); ok {
		return pc, nil
	}
	return compileFallback(expr, toks)
}

// 1. Range constraint: c1 <=/< sumExpr <=/< c2.
func tryRangeConstraint(toks []token) (*ParsedConstraint, bool) {
	operands, ops := splitComparisons(toks)
	if len(operands) != 3 {
		return nil, false
	}
	if (ops[0] != "<" && ops[0] != "<=") || (ops[1] != "<" && ops[1] != "<=") {
		return nil, false
	}
	lo, ok := parseConstantOperand(operands[0])
	if !ok {
		return nil, false
	}
	hi, ok := parseConstantOperand(operands[2])
	if !ok {
		return nil, false
	}
	vars, op, ok := parseHomogeneousExpr(operands[1])
	if !ok || op != "+" {
		return nil, false
	}
	loStrict := ops[0] == "<"
	hiStrict := ops[1] == "<"
	return &ParsedConstraint{
		ArityClass: "range",
		Nary: &NaryConstraint{
			Vars:  vars,
			Label: fmt.Sprintf("Range(%s,%v,%s)", lo.String(), vars, hi.String()),
			Predicate: func(a Assignment) bool {
				total, complete := weightedSumComplete(vars, onesCoeffs(len(vars)), a)
				if !complete {
					return true
				}
				if loStrict {
					if !lo.Less(total) {
						return false
					}
				} else if total.Less(lo) {
					return false
				}
				if hiStrict {
					if !total.Less(hi) {
						return false
					}
				} else if hi.Less(total) {
					return false
				}
				return true
			},
		},
	}, true
}

func onesCoeffs(n int) []int64 {
	c := make([]int64, n)
	for i := range c {
		c[i] = 1
	}
	return c
}

// 2. Chained inequality: V1 != V2 != ... != Vn (n >= 3) -> all-different.
func tryChainedInequality(toks []token) (*ParsedConstraint, bool) {
	operands, ops := splitComparisons(toks)
	if len(operands) < 3 {
		return nil, false
	}
	for _, op := range ops {
		if op != "!=" {
			return nil, false
		}
	}
	vars := make([]string, len(operands))
	for i, o := range operands {
		v, ok := parseSingleVar(o)
		if !ok {
			return nil, false
		}
		vars[i] = v
	}
	c := AllDifferent(vars...)
	return &ParsedConstraint{ArityClass: "all-different", Nary: &c}, true
}

// 3. Binary variable relation: V1 op V2.
func tryBinaryVariableRelation(toks []token) (*ParsedConstraint, bool) {
	operands, ops := splitComparisons(toks)
	if len(operands) != 2 {
		return nil, false
	}
	head, ok := parseSingleVar(operands[0])
	if !ok {
		return nil, false
	}
	tail, ok := parseSingleVar(operands[1])
	if !ok {
		return nil, false
	}
	arcs := Inequality(head, tail, opToInequality(ops[0]))
	return &ParsedConstraint{ArityClass: "binary-relation", Arcs: arcs}, true
}

// 4. Chained ordering: V1 </<= V2 </<= ... Vn (n >= 3).
func tryChainedOrdering(toks []token) (*ParsedConstraint, bool) {
	operands, ops := splitComparisons(toks)
	if len(operands) < 3 {
		return nil, false
	}
	for _, op := range ops {
		if op != "<" && op != "<=" {
			return nil, false
		}
	}
	vars := make([]string, len(operands))
	for i, o := range operands {
		v, ok := parseSingleVar(o)
		if !ok {
			return nil, false
		}
		vars[i] = v
	}
	strictAt := make([]bool, len(ops))
	for i, op := range ops {
		strictAt[i] = op == "<"
	}
	c := chainedOrderingWithOps(vars, strictAt)
	return &ParsedConstraint{ArityClass: "chained-ordering", Nary: &c}, true
}

func chainedOrderingWithOps(vars []string, strictAt []bool) NaryConstraint {
	return NaryConstraint{
		Vars:  vars,
		Label: fmt.Sprintf("ChainedOrdering(%v)", vars),
		Predicate: func(a Assignment) bool {
			for i := 0; i+1 < len(vars); i++ {
				lo, ok1 := a.Value(vars[i])
				hi, ok2 := a.Value(vars[i+1])
				if !ok1 || !ok2 {
					continue
				}
				if strictAt[i] {
					if !lo.Less(hi) {
						return false
					}
				} else if hi.Less(lo) {
					return false
				}
			}
			return true
		},
	}
}

// 5. Variable-to-constant: V op c.
func tryVariableToConstant(toks []token) (*ParsedConstraint, bool) {
	operands, ops := splitComparisons(toks)
	if len(operands) != 2 {
		return nil, false
	}
	v, ok := parseSingleVar(operands[0])
	if !ok {
		return nil, false
	}
	c, ok := parseConstantOperand(operands[1])
	if !ok {
		return nil, false
	}
	op := opToInequality(ops[0])
	return &ParsedConstraint{
		ArityClass: "variable-to-constant",
		Nary: &NaryConstraint{
			Vars:  []string{v},
			Label: fmt.Sprintf("%s %s %s", v, ops[0], c.String()),
			Predicate: func(a Assignment) bool {
				val, ok := a.Value(v)
				if !ok {
					return true
				}
				return compareValues(val, c, op)
			},
		},
	}, true
}

// 6. Variable equation: expr == V, expr a homogeneous sum or product.
func tryVariableEquation(toks []token) (*ParsedConstraint, bool) {
	operands, ops := splitComparisons(toks)
	if len(operands) != 2 || ops[0] != "==" {
		return nil, false
	}
	target, ok := parseSingleVar(operands[1])
	if !ok {
		return nil, false
	}
	vars, op, ok := parseHomogeneousExpr(operands[0])
	if !ok || len(vars) < 2 {
		return nil, false
	}
	label := "VariableSum"
	if op == "*" {
		label = "VariableProduct"
	}
	return &ParsedConstraint{
		ArityClass: "variable-equation",
		Nary: &NaryConstraint{
			Vars:  append(append([]string{}, vars...), target),
			Label: fmt.Sprintf("%s(%v)=%s", label, vars, target),
			Predicate: func(a Assignment) bool {
				targetVal, ok := a.Value(target)
				if !ok {
					return true
				}
				acc := Int(0)
				if op == "*" {
					acc = Int(1)
				}
				for _, v := range vars {
					val, ok := a.Value(v)
					if !ok {
						return true
					}
					var next Value
					var combineOK bool
					if op == "*" {
						next, combineOK = acc.Mul(val)
					} else {
						next, combineOK = acc.Add(val)
					}
					if !combineOK {
						return false
					}
					acc = next
				}
				return acc.Equal(targetVal)
			},
		},
	}, true
}

// 7. Arithmetic equality: expr == c with simple sum/product forms.
func tryArithmeticEquality(toks []token) (*ParsedConstraint, bool) {
	operands, ops := splitComparisons(toks)
	if len(operands) != 2 || ops[0] != "==" {
		return nil, false
	}
	c, ok := parseConstantOperand(operands[1])
	if !ok || c.Kind() != KindInt {
		return nil, false
	}
	vars, op, ok := parseHomogeneousExpr(operands[0])
	if !ok {
		return nil, false
	}
	var nary NaryConstraint
	if op == "*" {
		nary = ExactProduct(c.Int64(), vars...)
	} else {
		nary = ExactSum(c.Int64(), vars...)
	}
	return &ParsedConstraint{ArityClass: "arithmetic-equality", Nary: &nary}, true
}

// 8. Arithmetic inequality: expr op c, routed to min/max-sum or
// min/max-product; strict bounds get an epsilon offset of 1 (integer
// domains) applied to the boundary before routing to the inclusive form.
func tryArithmeticInequality(toks []token) (*ParsedConstraint, bool) {
	operands, ops := splitComparisons(toks)
	if len(operands) != 2 {
		return nil, false
	}
	op := ops[0]
	if op != "<" && op != "<=" && op != ">" && op != ">=" {
		return nil, false
	}
	c, ok := parseConstantOperand(operands[1])
	if !ok || c.Kind() != KindInt {
		return nil, false
	}
	vars, kind, ok := parseHomogeneousExpr(operands[0])
	if !ok {
		return nil, false
	}
	bound := c.Int64()
	var nary NaryConstraint
	switch op {
	case "<":
		bound--
		fallthrough
	case "<=":
		if kind == "*" {
			nary = MaxProduct(bound, vars...)
		} else {
			nary = MaxSum(bound, vars...)
		}
	case ">":
		bound++
		fallthrough
	case ">=":
		if kind == "*" {
			nary = MinProduct(bound, vars...)
		} else {
			nary = MinSum(bound, vars...)
		}
	}
	return &ParsedConstraint{ArityClass: "arithmetic-inequality", Nary: &nary}, true
}

// 9. Set membership: V in [...] / V not in [...].
func trySetMembership(toks []token) (*ParsedConstraint, bool) {
	if len(toks) < 4 || toks[0].kind != tokIdent {
		return nil, false
	}
	v := toks[0].text
	rest := toks[1:]
	negated := false
	if rest[0].kind == tokKeyword && rest[0].text == "not" {
		negated = true
		rest = rest[1:]
	}
	if len(rest) == 0 || rest[0].kind != tokKeyword || rest[0].text != "in" {
		return nil, false
	}
	values, ok := parseSetLiteral(rest[1:])
	if !ok {
		return nil, false
	}
	var nary NaryConstraint
	if negated {
		nary = NotInSet(v, values...)
	} else {
		nary = InSet(v, values...)
	}
	return &ParsedConstraint{ArityClass: "set-membership", Nary: &nary}, true
}

// 10. Fallback: a fully general arithmetic comparison, evaluated with
// operator precedence (*,/ before +,-), left-associative within a level,
// treating division by zero as predicate failure.
func compileFallback(expr string, toks []token) (*ParsedConstraint, error) {
	operands, ops := splitComparisons(toks)
	if len(operands) != 2 {
		return nil, fmt.Errorf("%w: %q is not a single comparison", ErrParse, expr)
	}
	left, err := parseArithmetic(operands[0])
	if err != nil {
		return nil, err
	}
	right, err := parseArithmetic(operands[1])
	if err != nil {
		return nil, err
	}
	op := opToInequality(ops[0])
	vars := dedupeStrings(append(collectVars(left), collectVars(right)...))
	return &ParsedConstraint{
		ArityClass: "generic",
		Nary: &NaryConstraint{
			Vars:  vars,
			Label: fmt.Sprintf("Generic(%s)", expr),
			Predicate: func(a Assignment) bool {
				lv, lassigned, lvalid := left.eval(a)
				if !lassigned {
					return true
				}
				if !lvalid {
					return false
				}
				rv, rassigned, rvalid := right.eval(a)
				if !rassigned {
					return true
				}
				if !rvalid {
					return false
				}
				return compareValues(lv, rv, op)
			},
		},
	}, nil
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// exprNode is a parsed arithmetic expression node. eval returns (value,
// assigned, valid): assigned is false when some referenced variable has no
// value yet (the caller should treat the enclosing predicate as not-yet-
// violated); valid is false on division by zero or a non-numeric operand
// once every reference is assigned.
type exprNode interface {
	eval(a Assignment) (value Value, assigned bool, valid bool)
	vars() []string
}

type litNode struct{ value Value }

func (n *litNode) eval(Assignment) (Value, bool, bool) { return n.value, true, true }
func (n *litNode) vars() []string                      { return nil }

type varNode struct{ name string }

func (n *varNode) eval(a Assignment) (Value, bool, bool) {
	v, ok := a.Value(n.name)
	if !ok {
		return Value{}, false, true
	}
	return v, true, true
}
func (n *varNode) vars() []string { return []string{n.name} }

type negNode struct{ operand exprNode }

func (n *negNode) eval(a Assignment) (Value, bool, bool) {
	v, assigned, valid := n.operand.eval(a)
	if !assigned || !valid {
		return Value{}, assigned, valid
	}
	neg, ok := Int(0).Sub(v)
	if !ok {
		return Value{}, true, false
	}
	return neg, true, true
}
func (n *negNode) vars() []string { return n.operand.vars() }

type binOpNode struct {
	op          string
	left, right exprNode
}

func (n *binOpNode) eval(a Assignment) (Value, bool, bool) {
	lv, lassigned, lvalid := n.left.eval(a)
	if !lassigned {
		return Value{}, false, true
	}
	if !lvalid {
		return Value{}, true, false
	}
	rv, rassigned, rvalid := n.right.eval(a)
	if !rassigned {
		return Value{}, false, true
	}
	if !rvalid {
		return Value{}, true, false
	}
	var result Value
	var ok bool
	switch n.op {
	case "+":
		result, ok = lv.Add(rv)
	case "-":
		result, ok = lv.Sub(rv)
	case "*":
		result, ok = lv.Mul(rv)
	case "/":
		result, ok = lv.Div(rv)
	}
	if !ok {
		return Value{}, true, false
	}
	return result, true, true
}
func (n *binOpNode) vars() []string {
	return append(append([]string{}, n.left.vars()...), n.right.vars()...)
}

func collectVars(n exprNode) []string { return n.vars() }

type tokStream struct {
	toks []token
	pos  int
}

func (s *tokStream) peek() (token, bool) {
	if s.pos >= len(s.toks) {
		return token{}, false
	}
	return s.toks[s.pos], true
}

func (s *tokStream) next() (token, bool) {
	t, ok := s.peek()
	if ok {
		s.pos++
	}
	return t, ok
}

func parseArithmetic(toks []token) (exprNode, error) {
	s := &tokStream{toks: toks}
	node, err := parseAddSub(s)
	if err != nil {
		return nil, err
	}
	if _, ok := s.peek(); ok {
		return nil, fmt.Errorf("%w: unexpected trailing tokens", ErrParse)
	}
	return node, nil
}

func parseAddSub(s *tokStream) (exprNode, error) {
	left, err := parseMulDiv(s)
	if err != nil {
		return nil, err
	}
	for {
		t, ok := s.peek()
		if !ok || t.kind != tokOp || (t.text != "+" && t.text != "-") {
			return left, nil
		}
		s.next()
		right, err := parseMulDiv(s)
		if err != nil {
			return nil, err
		}
		left = &binOpNode{op: t.text, left: left, right: right}
	}
}

func parseMulDiv(s *tokStream) (exprNode, error) {
	left, err := parseUnary(s)
	if err != nil {
		return nil, err
	}
	for {
		t, ok := s.peek()
		if !ok || t.kind != tokOp || (t.text != "*" && t.text != "/") {
			return left, nil
		}
		s.next()
		right, err := parseUnary(s)
		if err != nil {
			return nil, err
		}
		left = &binOpNode{op: t.text, left: left, right: right}
	}
}

func parseUnary(s *tokStream) (exprNode, error) {
	if t, ok := s.peek(); ok && t.kind == tokOp && t.text == "-" {
		s.next()
		operand, err := parseUnary(s)
		if err != nil {
			return nil, err
		}
		return &negNode{operand: operand}, nil
	}
	return parsePrimary(s)
}

func parsePrimary(s *tokStream) (exprNode, error) {
	t, ok := s.next()
	if !ok {
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrParse)
	}
	switch t.kind {
	case tokNumber:
		v, ok := parseNumberLiteral(t.text)
		if !ok {
			return nil, fmt.Errorf("%w: invalid number %q", ErrParse, t.text)
		}
		return &litNode{value: v}, nil
	case tokIdent:
		return &varNode{name: t.text}, nil
	case tokLParen:
		inner, err := parseAddSub(s)
		if err != nil {
			return nil, err
		}
		closing, ok := s.next()
		if !ok || closing.kind != tokRParen {
			return nil, fmt.Errorf("%w: expected closing parenthesis", ErrParse)
		}
		return inner, nil
	default:
		return nil, fmt.Errorf("%w: unexpected token %q", ErrParse, t.text)
	}
}
