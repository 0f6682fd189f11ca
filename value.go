// value.go — the runtime value model.
package lox

// ValueKind enumerates the runtime kinds a Value may hold.
type ValueKind int

const (
	VNone ValueKind = iota // absence/null (no payload)
	VBool
	VNumber // 64-bit float
	VString
	VCallable // *Callable
)

// Value is the universal runtime carrier used by the interpreter. The kind
// determines which Go type Data holds (see ValueKind).
type Value struct {
	Kind ValueKind
	Data interface{}
}

// None is the singleton nil Value.
var None = Value{Kind: VNone}

func BoolValue(b bool) Value        { return Value{Kind: VBool, Data: b} }
func NumberValue(f float64) Value   { return Value{Kind: VNumber, Data: f} }
func StringValue(s string) Value    { return Value{Kind: VString, Data: s} }
func CallableValue(c *Callable) Value { return Value{Kind: VCallable, Data: c} }

// FromLiteral converts a source-level literal into a runtime Value.
func FromLiteral(l Literal) Value {
	switch l.Kind {
	case LitBool:
		return BoolValue(l.Data.(bool))
	case LitNumber:
		return NumberValue(l.Data.(float64))
	case LitString:
		return StringValue(l.Data.(string))
	default:
		return None
	}
}

// IsTruthy reports whether the value counts as true in a condition: false
// and nil are falsy, everything else is truthy.
func (v Value) IsTruthy() bool {
	switch v.Kind {
	case VBool:
		return v.Data.(bool)
	case VNone:
		return false
	default:
		return true
	}
}

// Equals implements structural equality. It is defined only for like-kinded
// operands; any kind mismatch is not-equal, and callables never compare
// equal. There is no implicit coercion.
func (v Value) Equals(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case VBool:
		return v.Data.(bool) == other.Data.(bool)
	case VNumber:
		return v.Data.(float64) == other.Data.(float64)
	case VString:
		return v.Data.(string) == other.Data.(string)
	case VNone:
		return true
	default:
		return false
	}
}

// String renders the value in print/evaluate output form: integral numbers
// drop the decimal point, strings print raw, nil prints as "nil".
func (v Value) String() string {
	switch v.Kind {
	case VBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VNumber:
		return formatNumberValue(v.Data.(float64))
	case VString:
		return v.Data.(string)
	case VCallable:
		return v.Data.(*Callable).String()
	default:
		return "nil"
	}
}

// CallableKind discriminates native host functions from user functions. The
// kind set is fixed and small; call sites match it exhaustively.
type CallableKind int

const (
	NativeFunction CallableKind = iota
	UserFunction
)

// NativeImpl is the implementation signature for host-provided functions.
// Natives have a fixed arity and no user-visible side effects beyond their
// return value.
type NativeImpl func(args []Value) Value

// Callable is a function value: either a registered native or a user
// function declared with `fun`. User functions do not capture their defining
// environment; the body runs in a fresh scope on the caller's scope stack.
type Callable struct {
	Kind   CallableKind
	Arity  int
	Impl   NativeImpl // set iff Kind == NativeFunction

	Name   string
	Params []string  // set iff Kind == UserFunction
	Body   Statement // set iff Kind == UserFunction
}

func (c *Callable) String() string {
	if c.Kind == NativeFunction {
		return "<native fn>"
	}
	return "<fn " + c.Name + ">"
}
