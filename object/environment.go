package object

import "fmt"

// A scope is a mutable bag of bindings plus a pointer to the scope it
// lives inside. The pointer is shared, never copied: two environments
// with the same Ext see each other's mutations of it, which is what
// lets a closure watch a captured variable change after the block that
// declared it has finished.
type Environment struct {
	Store map[string]Object
	Ext   *Environment
}

func NewEnvironment() *Environment {
	return &Environment{Store: make(map[string]Object)}
}

// Enclose makes a fresh innermost scope whose enclosing link points at
// the receiver.
func (e *Environment) Enclose() *Environment {
	return &Environment{Store: make(map[string]Object), Ext: e}
}

// Define inserts or overwrites a binding in this scope only.
func (e *Environment) Define(name string, val Object) {
	e.Store[name] = val
}

// Get walks from the innermost scope outward and returns the first
// binding it finds. This is the fallback path, used when the resolver
// recorded no distance for a reference.
func (e *Environment) Get(name string) (Object, bool) {
	val, ok := e.Store[name]
	if ok || e.Ext == nil {
		return val, ok
	}
	return e.Ext.Get(name)
}

// GetAt walks exactly distance enclosing links and looks the name up
// there. The resolver promised us the binding exists at that scope; if
// it doesn't, the resolver is broken, and limping on would just turn
// one bug into a stranger one.
func (e *Environment) GetAt(distance int, name string) Object {
	scope := e.ancestor(distance, name)
	val, ok := scope.Store[name]
	if !ok {
		panic(fmt.Sprintf("resolved variable '%s' missing at distance %d", name, distance))
	}
	return val
}

// AssignAt is GetAt's writing twin, with the same invariant.
func (e *Environment) AssignAt(distance int, name string, val Object) {
	scope := e.ancestor(distance, name)
	if _, ok := scope.Store[name]; !ok {
		panic(fmt.Sprintf("resolved variable '%s' missing at distance %d", name, distance))
	}
	scope.Store[name] = val
}

// AssignGlobal overwrites a binding in the outermost scope only,
// and only if it is already there. This is how a class, bound to a
// placeholder before its body is evaluated, gets its real value.
func (e *Environment) AssignGlobal(name string, val Object) bool {
	global := e
	for global.Ext != nil {
		global = global.Ext
	}
	if _, ok := global.Store[name]; !ok {
		return false
	}
	global.Store[name] = val
	return true
}

// Exists reports whether the name is bound anywhere up the chain.
func (e *Environment) Exists(name string) bool {
	_, ok := e.Store[name]
	if ok || e.Ext == nil {
		return ok
	}
	return e.Ext.Exists(name)
}

// Assign overwrites the nearest binding of the name, walking outward.
// Returns false if no scope binds it.
func (e *Environment) Assign(name string, val Object) bool {
	if _, ok := e.Store[name]; ok {
		e.Store[name] = val
		return true
	}
	if e.Ext == nil {
		return false
	}
	return e.Ext.Assign(name, val)
}

func (e *Environment) ancestor(distance int, name string) *Environment {
	scope := e
	for i := 0; i < distance; i++ {
		if scope.Ext == nil {
			panic(fmt.Sprintf("environment chain too short resolving '%s': wanted distance %d", name, distance))
		}
		scope = scope.Ext
	}
	return scope
}

func (e *Environment) StringDumpVariables() string {
	result := ""
	for k, v := range e.Store {
		result = result + k + " = " + v.Inspect(ViewLiteral) + "\n"
	}
	return result
}
