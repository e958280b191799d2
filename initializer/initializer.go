package initializer

import (
	"jeko/evaluator"
	"jeko/object"
	"jeko/sysvars"
)

// NewInterpreter makes an interpreter whose global environment is
// stocked with the system variables and the native functions. The
// database natives share one connection between them, which starts out
// closed, so the connection lives here and the natives close over it.
func NewInterpreter() *evaluator.Interpreter {
	globals := object.NewEnvironment()
	for name, sysvar := range sysvars.Sysvars {
		globals.Define(name, sysvar.Dflt)
	}
	for _, native := range mathNatives() {
		globals.Define(native.Name, native)
	}
	for _, native := range listNatives() {
		globals.Define(native.Name, native)
	}
	for _, native := range miscNatives() {
		globals.Define(native.Name, native)
	}
	for _, native := range databaseNatives() {
		globals.Define(native.Name, native)
	}
	return evaluator.New(globals)
}
