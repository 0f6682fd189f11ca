// ast.go — expression and statement trees.
//
// Nodes are closed tagged variants: every Expression/Statement is one of the
// structs below, each child exclusively owned by its parent. Trees are
// produced once by the parser and read-only afterwards. String() renders the
// fully parenthesized prefix form used by the parse command, e.g.
//
//	(+ 1.0 2.0)
//	(group expr)
//	(var name = (; expr))
//	(if cond, then else)
//	(function name(a, b) (block (...)))
package lox

import (
	"fmt"
	"strings"
)

// LiteralKind discriminates the Literal payload.
type LiteralKind int

const (
	LitNone LiteralKind = iota
	LitBool
	LitNumber
	LitString
)

// Literal is a source-level literal value.
type Literal struct {
	Kind LiteralKind
	Data interface{} // bool, float64 or string depending on Kind
}

func NoneLit() Literal           { return Literal{Kind: LitNone} }
func BoolLit(b bool) Literal     { return Literal{Kind: LitBool, Data: b} }
func NumberLit(f float64) Literal { return Literal{Kind: LitNumber, Data: f} }
func StringLit(s string) Literal { return Literal{Kind: LitString, Data: s} }

func (l Literal) String() string {
	switch l.Kind {
	case LitBool:
		return fmt.Sprintf("%v", l.Data.(bool))
	case LitNumber:
		return formatNumberLiteral(l.Data.(float64))
	case LitString:
		return l.Data.(string)
	default:
		return "nil"
	}
}

// UnaryOp is the operator of a UnaryExpr.
type UnaryOp int

const (
	UnaryMinus UnaryOp = iota
	UnaryNot
)

func (op UnaryOp) String() string {
	if op == UnaryMinus {
		return "-"
	}
	return "!"
}

// BinaryOp is the operator of a BinaryExpr.
type BinaryOp int

const (
	OpMultiply BinaryOp = iota
	OpDivide
	OpPlus
	OpMinus
	OpGreater
	OpGreaterEqual
	OpLess
	OpLessEqual
	OpEqual
	OpNotEqual
)

var binaryOpNames = map[BinaryOp]string{
	OpMultiply:     "*",
	OpDivide:       "/",
	OpPlus:         "+",
	OpMinus:        "-",
	OpGreater:      ">",
	OpGreaterEqual: ">=",
	OpLess:         "<",
	OpLessEqual:    "<=",
	OpEqual:        "==",
	OpNotEqual:     "!=",
}

func (op BinaryOp) String() string { return binaryOpNames[op] }

// Expression is the closed set of expression nodes.
type Expression interface {
	fmt.Stringer
	expr()
}

type LiteralExpr struct{ Value Literal }
type GroupingExpr struct{ Inner Expression }
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expression
}
type BinaryExpr struct {
	Op          BinaryOp
	Left, Right Expression
}
type VariableExpr struct{ Name string }
type AssignExpr struct {
	Name  string
	Value Expression
}
type AndExpr struct{ Left, Right Expression }
type OrExpr struct{ Left, Right Expression }
type CallExpr struct {
	Callee    Expression
	Arguments []Expression
}

func (*LiteralExpr) expr()  {}
func (*GroupingExpr) expr() {}
func (*UnaryExpr) expr()    {}
func (*BinaryExpr) expr()   {}
func (*VariableExpr) expr() {}
func (*AssignExpr) expr()   {}
func (*AndExpr) expr()      {}
func (*OrExpr) expr()       {}
func (*CallExpr) expr()     {}

func (e *LiteralExpr) String() string  { return e.Value.String() }
func (e *GroupingExpr) String() string { return fmt.Sprintf("(group %s)", e.Inner) }
func (e *UnaryExpr) String() string    { return fmt.Sprintf("(%s %s)", e.Op, e.Operand) }
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Op, e.Left, e.Right)
}
func (e *VariableExpr) String() string { return fmt.Sprintf("(variable %s)", e.Name) }
func (e *AssignExpr) String() string   { return fmt.Sprintf("(assign %s %s)", e.Name, e.Value) }
func (e *AndExpr) String() string      { return fmt.Sprintf("(%s and %s)", e.Left, e.Right) }
func (e *OrExpr) String() string       { return fmt.Sprintf("(%s or %s)", e.Left, e.Right) }
func (e *CallExpr) String() string {
	if len(e.Arguments) == 0 {
		return fmt.Sprintf("(call %s)", e.Callee)
	}
	parts := make([]string, 0, len(e.Arguments))
	for _, a := range e.Arguments {
		parts = append(parts, a.String())
	}
	return fmt.Sprintf("(call %s %s)", e.Callee, strings.Join(parts, " "))
}

// Statement is the closed set of statement nodes.
type Statement interface {
	fmt.Stringer
	stmt()
}

type PrintStmt struct{ Expr Expression }
type VarStmt struct {
	Name string
	Init Expression // nil when declared without initializer
}
type ExpressionStmt struct{ Expr Expression }
type BlockStmt struct{ Statements []Statement }
type IfStmt struct {
	Cond Expression
	Then Statement
	Else Statement // nil when absent
}
type WhileStmt struct {
	Cond Expression
	Body Statement
}
type ForStmt struct {
	Init Statement  // nil when absent
	Cond Expression // nil when absent
	Incr Expression // nil when absent
	Body Statement
}
type FunctionStmt struct {
	Name   string
	Params []string
	Body   Statement
}
type ReturnStmt struct {
	Expr Expression // nil for a bare return
}

func (*PrintStmt) stmt()      {}
func (*VarStmt) stmt()        {}
func (*ExpressionStmt) stmt() {}
func (*BlockStmt) stmt()      {}
func (*IfStmt) stmt()         {}
func (*WhileStmt) stmt()      {}
func (*ForStmt) stmt()        {}
func (*FunctionStmt) stmt()   {}
func (*ReturnStmt) stmt()     {}

func (s *PrintStmt) String() string { return fmt.Sprintf("(print (; %s))", s.Expr) }
func (s *VarStmt) String() string {
	if s.Init != nil {
		return fmt.Sprintf("(var %s = (; %s))", s.Name, s.Init)
	}
	return fmt.Sprintf("(var %s)", s.Name)
}
func (s *ExpressionStmt) String() string { return fmt.Sprintf("(; %s)", s.Expr) }
func (s *BlockStmt) String() string {
	parts := make([]string, 0, len(s.Statements))
	for _, st := range s.Statements {
		parts = append(parts, st.String())
	}
	return fmt.Sprintf("(block (%s))", strings.Join(parts, " "))
}
func (s *IfStmt) String() string {
	if s.Else != nil {
		return fmt.Sprintf("(if %s, %s %s)", s.Cond, s.Then, s.Else)
	}
	return fmt.Sprintf("(if %s, %s)", s.Cond, s.Then)
}
func (s *WhileStmt) String() string { return fmt.Sprintf("(while (%s) %s)", s.Cond, s.Body) }
func (s *ForStmt) String() string {
	init, cond, incr := "", "", ""
	if s.Init != nil {
		init = s.Init.String()
	}
	if s.Cond != nil {
		cond = s.Cond.String()
	}
	if s.Incr != nil {
		incr = s.Incr.String()
	}
	return fmt.Sprintf("(for (%s;%s;%s) %s)", init, cond, incr, s.Body)
}
func (s *FunctionStmt) String() string {
	return fmt.Sprintf("(function %s(%s) %s)", s.Name, strings.Join(s.Params, ", "), s.Body)
}
func (s *ReturnStmt) String() string {
	if s.Expr != nil {
		return fmt.Sprintf("(return (; %s))", s.Expr)
	}
	return "(return)"
}
