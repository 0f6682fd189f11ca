// interpreter.go — tree-walking evaluator.
//
// EXECUTION & SCOPING SEMANTICS
// -----------------------------
// The interpreter owns one Environment (a flat scope stack, see
// environment.go) and one injected print sink. Blocks, if/else branches and
// while iterations each run in their own pushed-and-popped scope; a for loop
// pushes a single scope shared by its initializer and all iterations. Scope
// release is guaranteed on every exit path, including errors and early
// returns.
//
// User functions do not capture their defining environment: a call pushes a
// fresh scope directly on the caller's current scope stack, so the body
// observes whatever bindings are active at call time. This dynamic scoping
// is a documented language property, not an accident of implementation.
//
// CONTROL FLOW
// ------------
// Statement execution yields a three-way result: normal ((nil, nil)), an
// early return carrying a value ((&v, nil)), or a runtime error. Keeping the
// return signal out of the error channel means call sites cannot mistake one
// for the other; a return that reaches the top of a program is itself
// reported as an error.
//
// Runtime error strings ("Operand must be a number.", "Operands must be a
// numbers.", "Undefined variable 'x'.", ...) are part of the wire format and
// preserved verbatim, grammar warts included.
package lox

import (
	"errors"
	"fmt"
	"time"
)

// PrintSink receives each formatted line the program prints. Its effects are
// outside the interpreter's concern.
type PrintSink func(string)

// Interpreter evaluates expressions and executes statements against its
// Environment. Single-threaded, fully synchronous.
type Interpreter struct {
	env   *Environment
	print PrintSink
}

// NewInterpreter creates an interpreter whose global scope is seeded with
// the native functions. The print sink must not be nil for programs that
// use `print`.
func NewInterpreter(print PrintSink) *Interpreter {
	ip := &Interpreter{env: NewEnvironment(), print: print}
	ip.env.Declare("clock", CallableValue(&Callable{
		Kind:  NativeFunction,
		Arity: 0,
		Name:  "clock",
		Impl: func([]Value) Value {
			return NumberValue(float64(time.Now().UnixNano()) / 1e9)
		},
	}))
	return ip
}

// Run executes a parsed program. A return statement unwinding past the last
// top-level statement is an internal error, not a user-facing one.
func (ip *Interpreter) Run(statements []Statement) error {
	ret, err := ip.execAll(statements)
	if err != nil {
		return err
	}
	if ret != nil {
		return errors.New("received unexpected return value")
	}
	return nil
}

// Evaluate evaluates a single expression (evaluate mode).
func (ip *Interpreter) Evaluate(expr Expression) (Value, error) {
	return ip.eval(expr)
}

// ─────────────────────────── statements ───────────────────────────

// execAll runs statements in order, propagating the first return signal or
// error.
func (ip *Interpreter) execAll(statements []Statement) (*Value, error) {
	for _, st := range statements {
		ret, err := ip.exec(st)
		if ret != nil || err != nil {
			return ret, err
		}
	}
	return nil, nil
}

// execScoped runs one statement inside its own scope. The deferred pop makes
// scope release unconditional: normal completion, return and error all leave
// the stack balanced.
func (ip *Interpreter) execScoped(st Statement) (*Value, error) {
	ip.env.PushScope()
	defer ip.env.PopScope()
	return ip.exec(st)
}

func (ip *Interpreter) exec(st Statement) (*Value, error) {
	switch s := st.(type) {
	case *PrintStmt:
		v, err := ip.eval(s.Expr)
		if err != nil {
			return nil, err
		}
		ip.print(v.String())
		return nil, nil

	case *VarStmt:
		value := None
		if s.Init != nil {
			var err error
			value, err = ip.eval(s.Init)
			if err != nil {
				return nil, err
			}
		}
		ip.env.Declare(s.Name, value)
		return nil, nil

	case *ExpressionStmt:
		_, err := ip.eval(s.Expr)
		return nil, err

	case *BlockStmt:
		ip.env.PushScope()
		defer ip.env.PopScope()
		return ip.execAll(s.Statements)

	case *IfStmt:
		cond, err := ip.eval(s.Cond)
		if err != nil {
			return nil, err
		}
		if cond.IsTruthy() {
			return ip.execScoped(s.Then)
		}
		if s.Else != nil {
			return ip.execScoped(s.Else)
		}
		return nil, nil

	case *WhileStmt:
		for {
			cond, err := ip.eval(s.Cond)
			if err != nil {
				return nil, err
			}
			if !cond.IsTruthy() {
				return nil, nil
			}
			ret, err := ip.execScoped(s.Body)
			if ret != nil || err != nil {
				return ret, err
			}
		}

	case *ForStmt:
		return ip.execFor(s)

	case *FunctionStmt:
		ip.env.Declare(s.Name, CallableValue(&Callable{
			Kind:   UserFunction,
			Arity:  len(s.Params),
			Name:   s.Name,
			Params: s.Params,
			Body:   s.Body,
		}))
		return nil, nil

	case *ReturnStmt:
		value := None
		if s.Expr != nil {
			var err error
			value, err = ip.eval(s.Expr)
			if err != nil {
				return nil, err
			}
		}
		return &value, nil

	default:
		return nil, fmt.Errorf("unknown statement %T", st)
	}
}

// execFor runs a for loop in one scope shared by the initializer and every
// iteration; the scope is popped exactly once on any exit.
func (ip *Interpreter) execFor(s *ForStmt) (*Value, error) {
	ip.env.PushScope()
	defer ip.env.PopScope()

	if s.Init != nil {
		if ret, err := ip.exec(s.Init); ret != nil || err != nil {
			return ret, err
		}
	}

	for {
		if s.Cond != nil {
			cond, err := ip.eval(s.Cond)
			if err != nil {
				return nil, err
			}
			if !cond.IsTruthy() {
				return nil, nil
			}
		}

		if ret, err := ip.exec(s.Body); ret != nil || err != nil {
			return ret, err
		}

		if s.Incr != nil {
			if _, err := ip.eval(s.Incr); err != nil {
				return nil, err
			}
		}
	}
}

// ─────────────────────────── expressions ───────────────────────────

func (ip *Interpreter) eval(expr Expression) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return FromLiteral(e.Value), nil

	case *GroupingExpr:
		return ip.eval(e.Inner)

	case *UnaryExpr:
		operand, err := ip.eval(e.Operand)
		if err != nil {
			return Value{}, err
		}
		if e.Op == UnaryNot {
			return BoolValue(!operand.IsTruthy()), nil
		}
		if operand.Kind != VNumber {
			return Value{}, errors.New("Operand must be a number.")
		}
		return NumberValue(-operand.Data.(float64)), nil

	case *BinaryExpr:
		return ip.evalBinary(e)

	case *VariableExpr:
		return ip.env.Get(e.Name)

	case *AssignExpr:
		value, err := ip.eval(e.Value)
		if err != nil {
			return Value{}, err
		}
		if err := ip.env.Assign(e.Name, value); err != nil {
			return Value{}, err
		}
		return value, nil

	case *AndExpr:
		left, err := ip.eval(e.Left)
		if err != nil {
			return Value{}, err
		}
		if !left.IsTruthy() {
			return left, nil
		}
		return ip.eval(e.Right)

	case *OrExpr:
		left, err := ip.eval(e.Left)
		if err != nil {
			return Value{}, err
		}
		if left.IsTruthy() {
			return left, nil
		}
		return ip.eval(e.Right)

	case *CallExpr:
		return ip.evalCall(e)

	default:
		return Value{}, fmt.Errorf("unknown expression %T", expr)
	}
}

func (ip *Interpreter) evalBinary(e *BinaryExpr) (Value, error) {
	left, err := ip.eval(e.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := ip.eval(e.Right)
	if err != nil {
		return Value{}, err
	}

	switch e.Op {
	case OpEqual:
		return BoolValue(left.Equals(right)), nil
	case OpNotEqual:
		return BoolValue(!left.Equals(right)), nil
	}

	if left.Kind == VNumber && right.Kind == VNumber {
		l, r := left.Data.(float64), right.Data.(float64)
		switch e.Op {
		case OpMultiply:
			return NumberValue(l * r), nil
		case OpDivide:
			return NumberValue(l / r), nil
		case OpPlus:
			return NumberValue(l + r), nil
		case OpMinus:
			return NumberValue(l - r), nil
		case OpGreater:
			return BoolValue(l > r), nil
		case OpGreaterEqual:
			return BoolValue(l >= r), nil
		case OpLess:
			return BoolValue(l < r), nil
		default:
			return BoolValue(l <= r), nil
		}
	}

	if left.Kind == VString && right.Kind == VString && e.Op == OpPlus {
		return StringValue(left.Data.(string) + right.Data.(string)), nil
	}

	return Value{}, errors.New("Operands must be a numbers.")
}

func (ip *Interpreter) evalCall(e *CallExpr) (Value, error) {
	callee, err := ip.eval(e.Callee)
	if err != nil {
		return Value{}, err
	}
	if callee.Kind != VCallable {
		return Value{}, errors.New("Can only call functions and classes.")
	}

	fn := callee.Data.(*Callable)
	if len(e.Arguments) != fn.Arity {
		return Value{}, fmt.Errorf("Expected %d arguments but got %d.", fn.Arity, len(e.Arguments))
	}

	switch fn.Kind {
	case NativeFunction:
		args := make([]Value, 0, len(e.Arguments))
		for _, arg := range e.Arguments {
			v, err := ip.eval(arg)
			if err != nil {
				return Value{}, err
			}
			args = append(args, v)
		}
		return fn.Impl(args), nil

	default: // UserFunction
		ret, err := ip.callUser(fn, e.Arguments)
		if err != nil {
			return Value{}, err
		}
		if ret != nil {
			return *ret, nil
		}
		return None, nil
	}
}

// callUser invokes a user function: one fresh scope on the caller's stack,
// parameters bound left to right, body executed, scope popped on every exit
// path (including an argument failing to evaluate mid-binding).
func (ip *Interpreter) callUser(fn *Callable, args []Expression) (*Value, error) {
	ip.env.PushScope()
	defer ip.env.PopScope()

	for i, param := range fn.Params {
		v, err := ip.eval(args[i])
		if err != nil {
			return nil, err
		}
		ip.env.Declare(param, v)
	}

	return ip.exec(fn.Body)
}
