package evaluator

// This is basically your standard tree-walking interpreter, run in two
// passes: the resolver has already been over the tree and told us, for
// each variable reference it could pin down, how many scopes out the
// binding lives, so most lookups jump straight to the right scope.
//
// Control flow is done with explicit signals rather than a side
// channel: every statement execution reports whether it finished
// normally, hit a 'return', or hit a 'break', and every block, loop
// and conditional checks and propagates that, so a 'return' buried in
// nested blocks really does stop the statements after it.

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"jeko/ast"
	"jeko/object"
	"jeko/sysvars"
	"jeko/text"
	"jeko/token"
)

type Signal int

const (
	SignalNone Signal = iota
	SignalReturn
	SignalBreak
)

type Interpreter struct {
	Globals *object.Environment
	env     *object.Environment
	locals  map[int]int
	Out     io.Writer
	in      *bufio.Reader
	Exit    func(code int)
}

func New(globals *object.Environment) *Interpreter {
	return &Interpreter{
		Globals: globals,
		env:     globals,
		locals:  map[int]int{},
		Out:     os.Stdout,
		in:      bufio.NewReader(os.Stdin),
		Exit:    os.Exit,
	}
}

func (i *Interpreter) SetInput(in io.Reader) {
	i.in = bufio.NewReader(in)
}

// Run executes a resolved program. The distance map travels with the
// statements it was computed from, because node ids are only unique
// within one parse: the REPL and 'import' both bring programs of their
// own, each with its own map.
func (i *Interpreter) Run(statements []ast.Node, locals map[int]int) *object.Error {
	savedLocals := i.locals
	i.locals = locals
	defer func() { i.locals = savedLocals }()
	for _, stmt := range statements {
		if _, _, err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execute(stmt ast.Node) (Signal, object.Object, *object.Error) {

	switch stmt := stmt.(type) {

	case *ast.ExpressionStatement:
		result := i.eval(stmt.Expression)
		if isError(result) {
			return SignalNone, nil, result.(*object.Error)
		}
		return SignalNone, nil, nil

	case *ast.PrintStatement:
		value := i.eval(stmt.Expression)
		if isError(value) {
			return SignalNone, nil, value.(*object.Error)
		}
		output := value.Inspect(object.ViewStdOut)
		if i.viewIsColor() {
			output = text.Green(output)
		}
		fmt.Fprintln(i.Out, output)
		return SignalNone, nil, nil

	case *ast.InputStatement:
		prompt := i.eval(stmt.Prompt)
		if isError(prompt) {
			return SignalNone, nil, prompt.(*object.Error)
		}
		output := prompt.Inspect(object.ViewStdOut)
		if i.viewIsColor() {
			output = text.Yellow(output)
		}
		fmt.Fprintln(i.Out, output)
		// The line is read and thrown away. Yes, really: see the
		// notes in DESIGN.md.
		if _, err := i.in.ReadString('\n'); err != nil && err != io.EOF {
			panic("failed to read a line of standard input: " + err.Error())
		}
		return SignalNone, nil, nil

	case *ast.ErrorsStatement:
		value := i.eval(stmt.Expression)
		if isError(value) {
			return SignalNone, nil, value.(*object.Error)
		}
		fmt.Fprintln(i.Out, "Error: "+text.Red(value.Inspect(object.ViewStdOut)))
		i.Exit(1)
		return SignalNone, nil, nil

	case *ast.VarStatement:
		value := i.eval(stmt.Initializer)
		if isError(value) {
			return SignalNone, nil, value.(*object.Error)
		}
		i.env.Define(stmt.Name.Literal, value)
		return SignalNone, nil, nil

	case *ast.BlockStatement:
		return i.executeBlock(stmt.Statements, i.env.Enclose())

	case *ast.ClassStatement:
		return i.executeClass(stmt)

	case *ast.IfStatement:
		predicate := i.eval(stmt.Predicate)
		if isError(predicate) {
			return SignalNone, nil, predicate.(*object.Error)
		}
		if object.IsTruthy(predicate) {
			return i.execute(stmt.Then)
		}
		for _, elif := range stmt.Elifs {
			elifPredicate := i.eval(elif.Predicate)
			if isError(elifPredicate) {
				return SignalNone, nil, elifPredicate.(*object.Error)
			}
			if object.IsTruthy(elifPredicate) {
				return i.execute(elif.Body)
			}
		}
		if stmt.Else != nil {
			return i.execute(stmt.Else)
		}
		return SignalNone, nil, nil

	case *ast.IfShortStatement:
		predicate := i.eval(stmt.Predicate)
		if isError(predicate) {
			return SignalNone, nil, predicate.(*object.Error)
		}
		if object.IsTruthy(predicate) {
			return i.execute(stmt.Then)
		}
		if stmt.Else != nil {
			return i.execute(stmt.Else)
		}
		return SignalNone, nil, nil

	case *ast.WhileStatement:
		for {
			condition := i.eval(stmt.Condition)
			if isError(condition) {
				return SignalNone, nil, condition.(*object.Error)
			}
			if !object.IsTruthy(condition) {
				return SignalNone, nil, nil
			}
			signal, value, err := i.execute(stmt.Body)
			if err != nil {
				return SignalNone, nil, err
			}
			if signal == SignalBreak {
				return SignalNone, nil, nil
			}
			if signal == SignalReturn {
				return SignalReturn, value, nil
			}
		}

	case *ast.FunctionStatement:
		fn := &object.Func{Name: stmt.Name.Literal, Params: stmt.Params,
			Body: stmt.Body, Env: i.env}
		i.env.Define(stmt.Name.Literal, fn)
		return SignalNone, nil, nil

	case *ast.CmdFunctionStatement:
		i.env.Define(stmt.Name.Literal, makeCommandNative(stmt.Name.Literal, stmt.Cmd))
		return SignalNone, nil, nil

	case *ast.ReturnStatement:
		var value object.Object = object.NIL
		if stmt.Value != nil {
			value = i.eval(stmt.Value)
			if isError(value) {
				return SignalNone, nil, value.(*object.Error)
			}
		}
		return SignalReturn, value, nil

	case *ast.BreakStatement:
		return SignalBreak, nil, nil

	case *ast.WaitStatement:
		return i.executeWait(stmt)

	case *ast.BenchStatement:
		started := time.Now()
		signal, value, err := i.execute(stmt.Body)
		if err != nil {
			return SignalNone, nil, err
		}
		fmt.Fprintln(i.Out, "bench: "+text.Emph(time.Since(started).String()))
		return signal, value, nil

	case *ast.ExitsStatement:
		i.Exit(0)
		return SignalNone, nil, nil

	case *ast.ImportStatement:
		return i.executeImport(stmt)
	}

	panic(fmt.Sprintf("statement of type %T reached the evaluator, which shouldn't happen", stmt))
}

// executeBlock swaps in the given environment for the duration of the
// statements and swaps it back out on every exit path, error or not:
// whoever catches the error must see the outer environment.
func (i *Interpreter) executeBlock(statements []ast.Node, env *object.Environment) (Signal, object.Object, *object.Error) {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()
	for _, stmt := range statements {
		signal, value, err := i.execute(stmt)
		if err != nil {
			return SignalNone, nil, err
		}
		if signal != SignalNone {
			return signal, value, nil
		}
	}
	return SignalNone, nil, nil
}

func (i *Interpreter) executeClass(stmt *ast.ClassStatement) (Signal, object.Object, *object.Error) {
	var superclass *object.Class
	if stmt.Superclass != nil {
		superValue := i.eval(stmt.Superclass)
		if isError(superValue) {
			return SignalNone, nil, superValue.(*object.Error)
		}
		var ok bool
		superclass, ok = superValue.(*object.Class)
		if !ok {
			return SignalNone, nil, newError("eval/superclass/type", stmt.GetToken(), object.TrueType(superValue))
		}
	}

	// The name is pre-bound to a placeholder so that the methods can
	// refer to the class while it is still being built.
	i.env.Define(stmt.Name.Literal, object.NIL)

	// An intermediate scope encloses every method body; 'super' lives
	// there, one step outside wherever 'self' will later be bound.
	i.env = i.env.Enclose()
	if superclass != nil {
		i.env.Define("super", superclass)
	}
	methods := map[string]*object.Func{}
	for _, method := range stmt.Methods {
		methods[method.Name.Literal] = &object.Func{Name: method.Name.Literal,
			Params: method.Params, Body: method.Body, Env: i.env}
	}
	class := &object.Class{Name: stmt.Name.Literal, Methods: methods, Superclass: superclass}

	ok := i.env.AssignGlobal(stmt.Name.Literal, class)
	i.env = i.env.Ext
	if !ok {
		return SignalNone, nil, newError("eval/class/rebind", stmt.Name, stmt.Name.Literal)
	}
	return SignalNone, nil, nil
}

func (i *Interpreter) executeWait(stmt *ast.WaitStatement) (Signal, object.Object, *object.Error) {
	mainDelay, err := i.evalDelay(stmt.Time)
	if err != nil {
		return SignalNone, nil, err
	}
	if stmt.Before != nil {
		beforeDelay, err := i.evalDelay(stmt.Before.Time)
		if err != nil {
			return SignalNone, nil, err
		}
		time.Sleep(beforeDelay)
		signal, value, err := i.execute(stmt.Before.Body)
		if err != nil || signal != SignalNone {
			return signal, value, err
		}
		mainDelay = mainDelay - beforeDelay
	}
	if mainDelay > 0 {
		time.Sleep(mainDelay)
	}
	return i.execute(stmt.Body)
}

func (i *Interpreter) evalDelay(expr ast.Expression) (time.Duration, *object.Error) {
	value := i.eval(expr)
	if isError(value) {
		return 0, value.(*object.Error)
	}
	switch value := value.(type) {
	case *object.Integer:
		return time.Duration(value.Value) * time.Second, nil
	case *object.Float:
		return time.Duration(value.Value * float64(time.Second)), nil
	default:
		return 0, newError("eval/wait/time", expr.GetToken(), object.TrueType(value))
	}
}

func (i *Interpreter) executeImport(stmt *ast.ImportStatement) (Signal, object.Object, *object.Error) {
	pathValue := i.eval(stmt.Expression)
	if isError(pathValue) {
		return SignalNone, nil, pathValue.(*object.Error)
	}
	path, ok := pathValue.(*object.String)
	if !ok {
		return SignalNone, nil, newError("eval/import/string", stmt.GetToken(), object.TrueType(pathValue))
	}
	statements, locals, err := i.Load(path.Value)
	if err != nil {
		return SignalNone, nil, err
	}
	// Imported code runs against the global environment: whatever the
	// file defines, everyone gets.
	savedEnv := i.env
	i.env = i.Globals
	runErr := i.Run(statements, locals)
	i.env = savedEnv
	return SignalNone, nil, runErr
}

func (i *Interpreter) lookUpVariable(name token.Token, id int) object.Object {
	if distance, ok := i.locals[id]; ok {
		return i.env.GetAt(distance, name.Literal)
	}
	if value, ok := i.env.Get(name.Literal); ok {
		return value
	}
	return newError("eval/ident/found", name, name.Literal)
}

func (i *Interpreter) eval(expr ast.Expression) object.Object {

	switch expr := expr.(type) {

	case *ast.IntegerLiteral:
		return &object.Integer{Value: expr.Value}

	case *ast.FloatLiteral:
		return &object.Float{Value: expr.Value}

	case *ast.StringLiteral:
		return &object.String{Value: expr.Value}

	case *ast.BooleanLiteral:
		return object.MakeBool(expr.Value)

	case *ast.NilLiteral:
		return object.NIL

	case *ast.Identifier:
		return i.lookUpVariable(expr.Token, expr.GetId())

	case *ast.AssignExpression:
		value := i.eval(expr.Value)
		if isError(value) {
			return traced(value, expr.GetToken())
		}
		if sysvar, ok := sysvars.Sysvars[expr.Name.Literal]; ok {
			if complaint := sysvar.Validator(value); complaint != "" {
				return newError("eval/sysvar/valid", expr.Name, complaint)
			}
		}
		if distance, ok := i.locals[expr.GetId()]; ok {
			i.env.AssignAt(distance, expr.Name.Literal, value)
			return value
		}
		if !i.env.Assign(expr.Name.Literal, value) {
			return newError("eval/assign/found", expr.Name, expr.Name.Literal)
		}
		return value

	case *ast.ArrayLiteral:
		elements := []object.Object{}
		for _, el := range expr.Elements {
			value := i.eval(el)
			if isError(value) {
				return traced(value, expr.GetToken())
			}
			elements = append(elements, value)
		}
		return object.ListFromSlice(elements)

	case *ast.GroupingExpression:
		return i.eval(expr.Inner)

	case *ast.UnaryExpression:
		right := i.eval(expr.Right)
		if isError(right) {
			return traced(right, expr.GetToken())
		}
		return evalUnaryExpression(expr.Token, expr.Operator, right)

	case *ast.BinaryExpression:
		left := i.eval(expr.Left)
		if isError(left) {
			return traced(left, expr.GetToken())
		}
		right := i.eval(expr.Right)
		if isError(right) {
			return traced(right, expr.GetToken())
		}
		return evalInfixExpression(expr.Token, expr.Operator, left, right)

	case *ast.LogicalExpression:
		left := i.eval(expr.Left)
		if isError(left) {
			return traced(left, expr.GetToken())
		}
		if expr.Operator == "or" {
			if object.IsTruthy(left) {
				return left
			}
		} else {
			if !object.IsTruthy(left) {
				return left
			}
		}
		return i.eval(expr.Right)

	case *ast.FuncExpression:
		return &object.Func{Params: expr.Params, Body: expr.Body, Env: i.env}

	case *ast.CallExpression:
		callee := i.eval(expr.Callee)
		if isError(callee) {
			return traced(callee, expr.GetToken())
		}
		arguments := []object.Object{}
		for _, arg := range expr.Arguments {
			value := i.eval(arg)
			if isError(value) {
				return traced(value, expr.GetToken())
			}
			arguments = append(arguments, value)
		}
		return i.applyCallable(expr.Token, callee, arguments)

	case *ast.GetExpression:
		obj := i.eval(expr.Object)
		if isError(obj) {
			return traced(obj, expr.GetToken())
		}
		return i.evalGetExpression(expr, obj)

	case *ast.SetExpression:
		obj := i.eval(expr.Object)
		if isError(obj) {
			return traced(obj, expr.GetToken())
		}
		instance, ok := obj.(*object.Instance)
		if !ok {
			return newError("eval/set/type", expr.Token, object.TrueType(obj))
		}
		value := i.eval(expr.Value)
		if isError(value) {
			return traced(value, expr.GetToken())
		}
		instance.Fields[expr.Name.Literal] = value
		return value
	}

	panic(fmt.Sprintf("expression of type %T reached the evaluator, which shouldn't happen", expr))
}

func (i *Interpreter) applyCallable(tok token.Token, callee object.Object, arguments []object.Object) object.Object {
	switch callee := callee.(type) {
	case *object.Func:
		return i.applyFunction(tok, callee, arguments)
	case *object.Native:
		if callee.Arity != len(arguments) {
			return newError("eval/native/arity", tok, callee.Name, callee.Arity, len(arguments))
		}
		result := callee.Fn(arguments)
		if isError(result) {
			err := result.(*object.Error)
			err.Token = tok
			return err
		}
		return result
	case *object.Class:
		return i.instantiate(tok, callee, arguments)
	default:
		return newError("eval/call/type", tok, object.TrueType(callee))
	}
}

func (i *Interpreter) applyFunction(tok token.Token, fn *object.Func, arguments []object.Object) object.Object {
	if fn.Arity() != len(arguments) {
		return newError("eval/call/arity", tok, fn.Arity(), len(arguments))
	}
	env := fn.Env.Enclose()
	for k, param := range fn.Params {
		env.Define(param.Literal, arguments[k])
	}
	signal, value, err := i.executeBlock(fn.Body, env)
	if err != nil {
		return traced(err, tok)
	}
	if signal == SignalReturn {
		return value
	}
	return object.NIL
}

func (i *Interpreter) instantiate(tok token.Token, class *object.Class, arguments []object.Object) object.Object {
	instance := &object.Instance{Class: class, Fields: map[string]object.Object{}}
	if init, ok := class.FindMethod("init"); ok {
		result := i.applyFunction(tok, bind(init, instance), arguments)
		if isError(result) {
			return result
		}
		return instance
	}
	if len(arguments) != 0 {
		return newError("eval/call/arity", tok, 0, len(arguments))
	}
	return instance
}

func (i *Interpreter) evalGetExpression(expr *ast.GetExpression, obj object.Object) object.Object {
	switch obj := obj.(type) {
	case *object.Instance:
		if value, ok := obj.Fields[expr.Name.Literal]; ok {
			return value
		}
		if method, ok := obj.Class.FindMethod(expr.Name.Literal); ok {
			return bind(method, obj)
		}
		return newError("eval/get/found", expr.Name, expr.Name.Literal)
	case *object.Class:
		// We get here via 'super.method': the superclass value is
		// bound in the scope enclosing the method bodies, and 'self'
		// keeps whatever it already was, so the lookup starts at the
		// right class however deep the dynamic type's chain goes.
		method, ok := obj.FindMethod(expr.Name.Literal)
		if !ok {
			return newError("eval/get/found", expr.Name, expr.Name.Literal)
		}
		self, ok := i.env.Get("self")
		if !ok {
			return newError("eval/get/found", expr.Name, expr.Name.Literal)
		}
		return bind(method, self)
	default:
		return newError("eval/get/type", expr.Name, object.TrueType(obj))
	}
}

// bind wraps a method in a one-binding scope holding 'self'. The scope
// encloses the method's defining environment, so 'super' (one scope
// further out) stays visible.
func bind(method *object.Func, self object.Object) *object.Func {
	env := method.Env.Enclose()
	env.Define("self", self)
	return &object.Func{Name: method.Name, Params: method.Params, Body: method.Body, Env: env}
}

func (i *Interpreter) viewIsColor() bool {
	if value, ok := i.Globals.Get("$view"); ok {
		if s, ok := value.(*object.String); ok {
			return s.Value == "color"
		}
	}
	return sysvars.DefaultView == "color"
}

func newError(ident string, tok token.Token, args ...any) *object.Error {
	return object.CreateErr(ident, tok, args...)
}

func isError(obj object.Object) bool {
	if obj != nil {
		return obj.Type() == object.ERROR_OBJ
	}
	return false
}

func traced(obj object.Object, tok token.Token) object.Object {
	obj.(*object.Error).Trace = append(obj.(*object.Error).Trace, tok)
	return obj
}
