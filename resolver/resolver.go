package resolver

// The resolver makes a single pass over the tree before anything is
// executed. It does two jobs at once: it checks the static scoping
// rules (no duplicate declarations in one scope, no reading a local in
// its own initializer, 'return' only in functions, 'break' only in
// loops), and for every variable reference it can find a binding for,
// it records how many scopes out the binding lives. The evaluator then
// jumps straight there instead of searching.
//
// A reference the resolver records nothing for is resolved at runtime
// by walking to the global scope, which is where the builtins and
// classes live.

import (
	"fmt"

	"jeko/ast"
	"jeko/object"
	"jeko/stack"
	"jeko/token"
)

type functionType int

const (
	functionNone functionType = iota
	functionFunction
)

type loopType int

const (
	loopNone loopType = iota
	loopLoop
)

type Resolver struct {
	scopes          *stack.Stack[map[string]bool]
	currentFunction functionType
	currentLoop     loopType
	locals          map[int]int
}

func New() *Resolver {
	return &Resolver{
		scopes: stack.NewStack[map[string]bool](),
		locals: map[int]int{},
	}
}

// Resolve walks the program and returns the distance map. The first
// scoping error aborts the pass; a program that fails to resolve must
// never be run.
func (r *Resolver) Resolve(statements []ast.Node) (map[int]int, *object.Error) {
	if err := r.resolveStatements(statements); err != nil {
		return nil, err
	}
	return r.locals, nil
}

func (r *Resolver) resolveStatements(statements []ast.Node) *object.Error {
	for _, stmt := range statements {
		if err := r.resolveStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolveStatement(stmt ast.Node) *object.Error {
	switch stmt := stmt.(type) {
	case *ast.ExpressionStatement:
		return r.resolveExpression(stmt.Expression)
	case *ast.PrintStatement:
		return r.resolveExpression(stmt.Expression)
	case *ast.InputStatement:
		return r.resolveExpression(stmt.Prompt)
	case *ast.ErrorsStatement:
		return r.resolveExpression(stmt.Expression)
	case *ast.ImportStatement:
		return r.resolveExpression(stmt.Expression)
	case *ast.VarStatement:
		if err := r.declare(stmt.Name); err != nil {
			return err
		}
		if err := r.resolveExpression(stmt.Initializer); err != nil {
			return err
		}
		r.define(stmt.Name)
		return nil
	case *ast.BlockStatement:
		r.beginScope()
		err := r.resolveStatements(stmt.Statements)
		r.endScope()
		return err
	case *ast.ClassStatement:
		// The class name itself is left to dynamic/global lookup, so
		// no scope is opened for it; the method bodies resolve just
		// like function bodies.
		if stmt.Superclass != nil {
			if err := r.resolveExpression(stmt.Superclass); err != nil {
				return err
			}
		}
		for _, method := range stmt.Methods {
			if err := r.resolveFunctionHelper(method.Params, method.Body, functionFunction); err != nil {
				return err
			}
		}
		return nil
	case *ast.IfStatement:
		if err := r.resolveExpression(stmt.Predicate); err != nil {
			return err
		}
		if err := r.resolveStatement(stmt.Then); err != nil {
			return err
		}
		for _, elif := range stmt.Elifs {
			if err := r.resolveExpression(elif.Predicate); err != nil {
				return err
			}
			if err := r.resolveStatement(elif.Body); err != nil {
				return err
			}
		}
		if stmt.Else != nil {
			return r.resolveStatement(stmt.Else)
		}
		return nil
	case *ast.IfShortStatement:
		if err := r.resolveExpression(stmt.Predicate); err != nil {
			return err
		}
		if err := r.resolveStatement(stmt.Then); err != nil {
			return err
		}
		if stmt.Else != nil {
			return r.resolveStatement(stmt.Else)
		}
		return nil
	case *ast.WhileStatement:
		if err := r.resolveExpression(stmt.Condition); err != nil {
			return err
		}
		previousLoop := r.currentLoop
		r.currentLoop = loopLoop
		err := r.resolveStatement(stmt.Body)
		r.currentLoop = previousLoop
		return err
	case *ast.WaitStatement:
		if err := r.resolveExpression(stmt.Time); err != nil {
			return err
		}
		if err := r.resolveStatement(stmt.Body); err != nil {
			return err
		}
		if stmt.Before != nil {
			if err := r.resolveExpression(stmt.Before.Time); err != nil {
				return err
			}
			return r.resolveStatement(stmt.Before.Body)
		}
		return nil
	case *ast.BenchStatement:
		return r.resolveStatement(stmt.Body)
	case *ast.FunctionStatement:
		if err := r.declare(stmt.Name); err != nil {
			return err
		}
		r.define(stmt.Name)
		return r.resolveFunctionHelper(stmt.Params, stmt.Body, functionFunction)
	case *ast.CmdFunctionStatement:
		if err := r.declare(stmt.Name); err != nil {
			return err
		}
		r.define(stmt.Name)
		return nil
	case *ast.ReturnStatement:
		if r.currentFunction == functionNone {
			return object.CreateErr("resolve/return", stmt.Token)
		}
		if stmt.Value != nil {
			return r.resolveExpression(stmt.Value)
		}
		return nil
	case *ast.BreakStatement:
		if r.currentLoop == loopNone {
			return object.CreateErr("resolve/break", stmt.Token)
		}
		return nil
	case *ast.ExitsStatement:
		return nil
	}
	panic(fmt.Sprintf("statement of type %T reached the resolver, which shouldn't happen", stmt))
}

func (r *Resolver) resolveFunctionHelper(params []token.Token, body []ast.Node, fnType functionType) *object.Error {
	enclosingFunction := r.currentFunction
	r.currentFunction = fnType
	r.beginScope()
	for _, param := range params {
		if err := r.declare(param); err != nil {
			r.endScope()
			r.currentFunction = enclosingFunction
			return err
		}
		r.define(param)
	}
	err := r.resolveStatements(body)
	r.endScope()
	r.currentFunction = enclosingFunction
	return err
}

func (r *Resolver) beginScope() {
	r.scopes.Push(map[string]bool{})
}

func (r *Resolver) endScope() {
	if _, ok := r.scopes.Pop(); !ok {
		panic("scope stack underflow in the resolver")
	}
}

// declare marks the name as existing-but-not-ready in the innermost
// scope. At global scope it does nothing: globals are found by name at
// runtime, not by distance.
func (r *Resolver) declare(name token.Token) *object.Error {
	scope, ok := r.scopes.HeadValue()
	if !ok {
		return nil
	}
	if _, exists := scope[name.Literal]; exists {
		return object.CreateErr("resolve/var/exists", name, name.Literal)
	}
	scope[name.Literal] = false
	return nil
}

// define flips the binding to ready. The gap between declare and define
// is what lets us catch 'var x = x'.
func (r *Resolver) define(name token.Token) {
	scope, ok := r.scopes.HeadValue()
	if !ok {
		return
	}
	scope[name.Literal] = true
}

func (r *Resolver) resolveExpression(expr ast.Expression) *object.Error {
	switch expr := expr.(type) {
	case *ast.Identifier:
		if scope, ok := r.scopes.HeadValue(); ok {
			if ready, declared := scope[expr.Value]; declared && !ready {
				return object.CreateErr("resolve/var/init", expr.Token, expr.Value)
			}
		}
		r.resolveLocal(expr.Token, expr.GetId())
		return nil
	case *ast.AssignExpression:
		if err := r.resolveExpression(expr.Value); err != nil {
			return err
		}
		r.resolveLocal(expr.Name, expr.GetId())
		return nil
	case *ast.ArrayLiteral:
		for _, element := range expr.Elements {
			if err := r.resolveExpression(element); err != nil {
				return err
			}
		}
		return nil
	case *ast.BinaryExpression:
		if err := r.resolveExpression(expr.Left); err != nil {
			return err
		}
		return r.resolveExpression(expr.Right)
	case *ast.LogicalExpression:
		if err := r.resolveExpression(expr.Left); err != nil {
			return err
		}
		return r.resolveExpression(expr.Right)
	case *ast.UnaryExpression:
		return r.resolveExpression(expr.Right)
	case *ast.GroupingExpression:
		return r.resolveExpression(expr.Inner)
	case *ast.CallExpression:
		if err := r.resolveExpression(expr.Callee); err != nil {
			return err
		}
		for _, arg := range expr.Arguments {
			if err := r.resolveExpression(arg); err != nil {
				return err
			}
		}
		return nil
	case *ast.GetExpression:
		return r.resolveExpression(expr.Object)
	case *ast.SetExpression:
		if err := r.resolveExpression(expr.Value); err != nil {
			return err
		}
		return r.resolveExpression(expr.Object)
	case *ast.FuncExpression:
		return r.resolveFunctionHelper(expr.Params, expr.Body, functionFunction)
	case *ast.IntegerLiteral, *ast.FloatLiteral, *ast.StringLiteral,
		*ast.BooleanLiteral, *ast.NilLiteral:
		return nil
	}
	panic(fmt.Sprintf("expression of type %T reached the resolver, which shouldn't happen", expr))
}

// resolveLocal scans the scopes from innermost outward; the first one
// containing the name fixes the distance for this node id. No scope
// containing it means global (or undefined, which the evaluator will
// discover by name).
func (r *Resolver) resolveLocal(name token.Token, resolveId int) {
	for depth := 0; depth < r.scopes.Len(); depth++ {
		scope, _ := r.scopes.View(depth)
		if _, ok := scope[name.Literal]; ok {
			r.locals[resolveId] = depth
			return
		}
	}
}
