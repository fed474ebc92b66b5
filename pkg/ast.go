package koru

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// anonymousName is the synthetic name given to a wrapped top-level expression.
const anonymousName = "anon"

// Expr is an expression node. The set of implementations is closed:
// NumberExpr, VariableExpr, CallExpr and BinaryExpr. Nodes are immutable
// after construction and never shared between subtrees.
//
// String renders re-parseable surface syntax; parsing the result yields a
// structurally equal tree.
type Expr interface {
	fmt.Stringer
	exprNode()
}

// NumberExpr is a floating-point literal.
type NumberExpr struct {
	Value float64
}

// VariableExpr is a reference to an identifier.
type VariableExpr struct {
	Name string
}

// CallExpr is a function invocation. Unary operator applications are calls
// to a synthesized "unary<op>" name with exactly one argument.
type CallExpr struct {
	Callee string
	Args   []Expr
}

// BinaryExpr is an infix application. LHS and RHS are exclusively owned by
// this node.
type BinaryExpr struct {
	Op  rune
	LHS Expr
	RHS Expr
}

func (*NumberExpr) exprNode()   {}
func (*VariableExpr) exprNode() {}
func (*CallExpr) exprNode()     {}
func (*BinaryExpr) exprNode()   {}

func (e *NumberExpr) String() string {
	return strconv.FormatFloat(e.Value, 'g', -1, 64)
}

func (e *VariableExpr) String() string {
	return e.Name
}

func (e *CallExpr) String() string {
	if op, ok := unaryOp(e.Callee); ok && len(e.Args) == 1 {
		return string(op) + e.Args[0].String()
	}

	args := make([]string, len(e.Args))
	for i, arg := range e.Args {
		args[i] = arg.String()
	}

	return fmt.Sprintf("%s(%s)", e.Callee, strings.Join(args, ", "))
}

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %c %s)", e.LHS, e.Op, e.RHS)
}

// unaryOp reports whether callee is a synthesized unary application name and
// returns the operator character.
func unaryOp(callee string) (rune, bool) {
	rest := strings.TrimPrefix(callee, "unary")
	if rest == callee {
		return 0, false
	}

	op, size := utf8.DecodeRuneInString(rest)
	if size != len(rest) || isIdentRune(op) {
		return 0, false
	}

	return op, true
}

// Prototype is the signature of a function or custom operator: its name and
// ordered parameter names. Parameter names are expected to be distinct, but
// the parser does not enforce it.
//
// For a custom operator declaration the name is synthesized as
// "binary<op>", IsOperator is true, and Precedence holds the declared
// binding power (0 when the declaration omitted it).
type Prototype struct {
	Name       string
	Args       []string
	Precedence int
	IsOperator bool
}

func (p Prototype) String() string {
	args := strings.Join(p.Args, " ")
	if p.IsOperator {
		return fmt.Sprintf("%s %d (%s)", p.Name, p.Precedence, args)
	}

	return fmt.Sprintf("%s(%s)", p.Name, args)
}

// Function is one parsed top-level construct: a definition, an extern
// declaration (Body nil), or a wrapped top-level expression (IsAnon true,
// synthetic zero-parameter prototype).
type Function struct {
	Proto  Prototype
	Body   Expr
	IsAnon bool
}

func (f *Function) String() string {
	switch {
	case f.IsAnon:
		return f.Body.String()
	case f.Body == nil:
		return fmt.Sprintf("extern %s", f.Proto)
	default:
		return fmt.Sprintf("def %s %s", f.Proto, f.Body)
	}
}
