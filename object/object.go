package object

import (
	"bytes"
	"fmt"
	"strings"

	"src.elv.sh/pkg/persistent/vector"

	"jeko/ast"
	"jeko/text"
	"jeko/token"
)

type View int

const (
	ViewStdOut = iota
	ViewLiteral
)

type ObjectType string

const (
	ERROR_OBJ = "error"

	NIL_OBJ     = "nil"
	BOOLEAN_OBJ = "bool"
	INTEGER_OBJ = "int"
	FLOAT_OBJ   = "float"
	STRING_OBJ  = "string"
	LIST_OBJ    = "list"

	FUNC_OBJ   = "func"
	NATIVE_OBJ = "native"

	CLASS_OBJ    = "class"
	INSTANCE_OBJ = "instance"
)

type Object interface {
	Type() ObjectType
	Inspect(view View) string
}

// TrueType reports the type as the running program would name it: an
// instance answers with the name of its class.
func TrueType(o Object) string {
	if o.Type() != INSTANCE_OBJ {
		return string(o.Type())
	}
	return o.(*Instance).Class.Name
}

type Nil struct{}

func (n *Nil) Type() ObjectType         { return NIL_OBJ }
func (n *Nil) Inspect(view View) string { return "nil" }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType         { return BOOLEAN_OBJ }
func (b *Boolean) Inspect(view View) string { return fmt.Sprintf("%t", b.Value) }

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType         { return INTEGER_OBJ }
func (i *Integer) Inspect(view View) string { return fmt.Sprintf("%d", i.Value) }

type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType         { return FLOAT_OBJ }
func (f *Float) Inspect(view View) string { return fmt.Sprintf("%v", f.Value) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect(view View) string {
	if view == ViewStdOut {
		return s.Value
	}
	return text.ToEscapedText(s.Value)
}

// Lists are persistent vectors. Cheap to hand around, and the natives
// that "mutate" one return a new one.
type List struct {
	Elements vector.Vector
}

func (lo *List) Type() ObjectType { return LIST_OBJ }
func (lo *List) Inspect(view View) string {
	var out bytes.Buffer
	elements := []string{}
	for i := 0; i < lo.Elements.Len(); i++ {
		el, _ := lo.Elements.Index(i)
		elements = append(elements, el.(Object).Inspect(ViewLiteral))
	}
	out.WriteString("[")
	out.WriteString(strings.Join(elements, ", "))
	out.WriteString("]")
	return out.String()
}

func ListFromSlice(slice []Object) *List {
	vec := vector.Empty
	for _, v := range slice {
		vec = vec.Conj(v)
	}
	return &List{Elements: vec}
}

// A user-defined function. Env is the environment current at the point
// of declaration, held by pointer: that sharing is what makes closures
// closures.
type Func struct {
	Name   string // "" for an anonymous function
	Params []token.Token
	Body   []ast.Node
	Env    *Environment
}

func (fn *Func) Type() ObjectType { return FUNC_OBJ }
func (fn *Func) Inspect(view View) string {
	params := []string{}
	for _, p := range fn.Params {
		params = append(params, p.Literal)
	}
	name := fn.Name
	if name == "" {
		name = "<anon>"
	}
	return "fun " + name + "(" + strings.Join(params, ", ") + ")"
}

func (fn *Func) Arity() int { return len(fn.Params) }

// A host-provided function: builtin library functions and the wrappers
// around OS commands both come through here.
type Native struct {
	Name  string
	Arity int
	Fn    func(args []Object) Object
}

func (nf *Native) Type() ObjectType         { return NATIVE_OBJ }
func (nf *Native) Inspect(view View) string { return "native " + nf.Name }

// A class value is immutable once constructed.
type Class struct {
	Name       string
	Methods    map[string]*Func
	Superclass *Class // nil at the top of the chain
}

func (cl *Class) Type() ObjectType { return CLASS_OBJ }
func (cl *Class) Inspect(view View) string {
	if cl.Superclass != nil {
		return "class " + cl.Name + " < " + cl.Superclass.Name
	}
	return "class " + cl.Name
}

// FindMethod consults the class's own table first and falls through to
// the superclass chain on a miss.
func (cl *Class) FindMethod(name string) (*Func, bool) {
	for c := cl; c != nil; c = c.Superclass {
		if m, ok := c.Methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

type Instance struct {
	Class  *Class
	Fields map[string]Object
}

func (in *Instance) Type() ObjectType { return INSTANCE_OBJ }
func (in *Instance) Inspect(view View) string {
	return in.Class.Name + " instance"
}

type Error struct {
	ErrorId string
	Message string
	Info    []any
	Trace   []token.Token
	Token   token.Token
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect(view View) string {
	if view == ViewStdOut {
		if len(e.Trace) == 0 {
			return text.ERROR + e.Message + text.DescribePos(e.Token) + "."
		}
		return text.RT_ERROR + e.Message + text.DescribePos(e.Token) + "."
	}
	return "error " + text.ToEscapedText(e.Message)
}

func Equals(lhs, rhs Object) bool {
	if TrueType(lhs) != TrueType(rhs) {
		return false
	}
	if lhs == rhs {
		return true
	}
	switch lhs.Type() {
	case NIL_OBJ:
		return true
	case INTEGER_OBJ:
		return lhs.(*Integer).Value == rhs.(*Integer).Value
	case FLOAT_OBJ:
		return lhs.(*Float).Value == rhs.(*Float).Value
	case STRING_OBJ:
		return lhs.(*String).Value == rhs.(*String).Value
	case BOOLEAN_OBJ:
		return lhs.(*Boolean).Value == rhs.(*Boolean).Value
	case LIST_OBJ:
		lv, rv := lhs.(*List).Elements, rhs.(*List).Elements
		if lv.Len() != rv.Len() {
			return false
		}
		for i := 0; i < lv.Len(); i++ {
			le, _ := lv.Index(i)
			re, _ := rv.Index(i)
			if !Equals(le.(Object), re.(Object)) {
				return false
			}
		}
		return true
	default:
		// Functions, classes and instances compare by identity, which
		// the lhs == rhs above has already settled.
		return false
	}
}

// IsTruthy: nil and false are falsey, so are zero numbers and the empty
// string; everything else is truthy.
func IsTruthy(o Object) bool {
	switch o := o.(type) {
	case *Nil:
		return false
	case *Boolean:
		return o.Value
	case *Integer:
		return o.Value != 0
	case *Float:
		return o.Value != 0
	case *String:
		return len(o.Value) != 0
	default:
		return true
	}
}

func MakeBool(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	NIL   = &Nil{}
)
