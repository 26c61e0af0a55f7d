// Package exec implements §4.4's Executor: evaluating a compiled
// program against the input Value, a mutable execution context, and a
// cancellation token, terminating in one of the five ways §4.4
// enumerates. It also carries out the statement/loop/call
// instrumentation and source-location injection §4.3 assigns to "the
// compiler" — see compile's package doc for why that split makes sense
// for a tree-walking engine.
package exec

import (
	"github.com/meschsystems/jyro/ast"
	"github.com/meschsystems/jyro/value"
)

// Cell is a variable binding. It holds either a Value or a closure
// (LambdaHandle), never both — §3 treats "a lambda compiled outside a
// call site" as a first-class value, but Value itself stays a closed
// six-variant union with no seventh Lambda variant, so a binding needs
// a shape one level up that can hold either.
type Cell struct {
	Value       value.Value
	Lambda      *LambdaHandle
	TypeHint    value.TypeHint
	HasTypeHint bool
}

// LambdaHandle is a closure: a lambda literal plus the Environment
// visible at the point it was created, captured by reference per
// §4.3's "closures capture by reference the lexical bindings visible at
// the point of creation."
type LambdaHandle struct {
	Lambda *ast.Lambda
	Env    *Environment
}

// Environment is one lexical scope: a set of bindings plus a link to
// the enclosing scope. A block introduces a nested Environment; reads
// resolve to the innermost visible binding (§4.3's scoping rule).
type Environment struct {
	vars   map[string]*Cell
	parent *Environment
}

// NewEnvironment creates a scope nested inside parent (nil for the
// top-level/root scope).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{vars: make(map[string]*Cell), parent: parent}
}

// Declare binds name to cell in this scope, shadowing any outer binding
// of the same name for the remainder of this scope's lifetime.
func (e *Environment) Declare(name string, cell *Cell) {
	e.vars[name] = cell
}

// Lookup resolves name to its Cell, searching outward through enclosing
// scopes. ok is false if no scope declares name.
func (e *Environment) Lookup(name string) (*Cell, bool) {
	for env := e; env != nil; env = env.parent {
		if c, ok := env.vars[name]; ok {
			return c, true
		}
	}
	return nil, false
}
