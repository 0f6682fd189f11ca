// environment.go — variable scopes as a flat stack.
//
// The Environment is an ordered stack of scopes, innermost last. The base
// (global) scope always exists and is never popped during normal execution.
// Declaring a name binds it in the innermost scope, shadowing any outer
// binding; assignment and lookup walk innermost-to-outermost and stop at the
// first scope holding the name.
package lox

import "fmt"

// Environment holds the scope stack. It is exclusively owned and mutated by
// one Interpreter; there is no sharing across evaluators.
type Environment struct {
	scopes []map[string]Value
}

// NewEnvironment creates an environment with one global scope.
func NewEnvironment() *Environment {
	return &Environment{scopes: []map[string]Value{{}}}
}

// PushScope enters a new innermost scope.
func (e *Environment) PushScope() {
	e.scopes = append(e.scopes, map[string]Value{})
}

// PopScope leaves the innermost scope, destroying its bindings. The global
// scope is never popped.
func (e *Environment) PopScope() {
	if len(e.scopes) > 1 {
		e.scopes = e.scopes[:len(e.scopes)-1]
	}
}

// Declare binds name in the innermost scope, overwriting a same-scope
// binding and shadowing any outer one.
func (e *Environment) Declare(name string, v Value) {
	e.scopes[len(e.scopes)-1][name] = v
}

// Assign updates the nearest existing binding of name, walking outward. It
// never implicitly declares: assigning an unbound name is an error.
func (e *Environment) Assign(name string, v Value) error {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if _, ok := e.scopes[i][name]; ok {
			e.scopes[i][name] = v
			return nil
		}
	}
	return fmt.Errorf("Undefined variable '%s'.", name)
}

// Get retrieves the nearest visible binding of name, walking outward.
func (e *Environment) Get(name string) (Value, error) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if v, ok := e.scopes[i][name]; ok {
			return v, nil
		}
	}
	return Value{}, fmt.Errorf("Undefined variable '%s'.", name)
}
