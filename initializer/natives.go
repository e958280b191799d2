package initializer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"jeko/object"
	"jeko/token"
)

// The native functions. The evaluator checks arities before calling,
// and stamps the call site's token onto any error a native returns,
// so in here we can use a blank token and only worry about types.

func nativeTypeError(name string, arg object.Object) *object.Error {
	return object.CreateErr("eval/native/type", token.Token{}, name, object.TrueType(arg))
}

func asNumber(arg object.Object) (float64, bool) {
	switch arg := arg.(type) {
	case *object.Integer:
		return float64(arg.Value), true
	case *object.Float:
		return arg.Value, true
	}
	return 0, false
}

func mathNative(name string, fn func(float64) float64) *object.Native {
	return &object.Native{Name: name, Arity: 1, Fn: func(args []object.Object) object.Object {
		x, ok := asNumber(args[0])
		if !ok {
			return nativeTypeError(name, args[0])
		}
		return &object.Float{Value: fn(x)}
	}}
}

func mathNatives() []*object.Native {
	return []*object.Native{
		mathNative("sin", math.Sin),
		mathNative("asin", math.Asin),
		mathNative("cos", math.Cos),
		mathNative("acos", math.Acos),
		mathNative("tan", math.Tan),
		mathNative("atan", math.Atan),
		mathNative("round", math.Round),
		mathNative("floor", math.Floor),
		mathNative("to_degrees", func(x float64) float64 { return x * 180 / math.Pi }),
		mathNative("to_radians", func(x float64) float64 { return x * math.Pi / 180 }),
	}
}

// The lists are persistent vectors, so 'push' hands back a new list
// rather than growing the old one in place.

func listNatives() []*object.Native {
	return []*object.Native{

		{Name: "push", Arity: 2, Fn: func(args []object.Object) object.Object {
			list, ok := args[0].(*object.List)
			if !ok {
				return nativeTypeError("push", args[0])
			}
			return &object.List{Elements: list.Elements.Conj(args[1])}
		}},

		{Name: "pop", Arity: 1, Fn: func(args []object.Object) object.Object {
			list, ok := args[0].(*object.List)
			if !ok {
				return nativeTypeError("pop", args[0])
			}
			if list.Elements.Len() == 0 {
				return object.NIL
			}
			last, _ := list.Elements.Index(list.Elements.Len() - 1)
			return last.(object.Object)
		}},

		{Name: "shift", Arity: 1, Fn: func(args []object.Object) object.Object {
			list, ok := args[0].(*object.List)
			if !ok {
				return nativeTypeError("shift", args[0])
			}
			if list.Elements.Len() == 0 {
				return object.NIL
			}
			first, _ := list.Elements.Index(0)
			return first.(object.Object)
		}},

		{Name: "join", Arity: 2, Fn: func(args []object.Object) object.Object {
			list, ok := args[0].(*object.List)
			if !ok {
				return nativeTypeError("join", args[0])
			}
			separator, ok := args[1].(*object.String)
			if !ok {
				return nativeTypeError("join", args[1])
			}
			pieces := []string{}
			for it := list.Elements.Iterator(); it.HasElem(); it.Next() {
				pieces = append(pieces, it.Elem().(object.Object).Inspect(object.ViewStdOut))
			}
			return &object.String{Value: strings.Join(pieces, separator.Value)}
		}},

		{Name: "len", Arity: 1, Fn: func(args []object.Object) object.Object {
			switch arg := args[0].(type) {
			case *object.List:
				return &object.Integer{Value: int64(arg.Elements.Len())}
			case *object.String:
				return &object.Integer{Value: int64(len(arg.Value))}
			}
			return nativeTypeError("len", args[0])
		}},
	}
}

func miscNatives() []*object.Native {
	return []*object.Native{

		{Name: "clock", Arity: 0, Fn: func(args []object.Object) object.Object {
			return &object.Float{Value: float64(time.Now().UnixNano()) / float64(time.Second)}
		}},

		{Name: "str", Arity: 1, Fn: func(args []object.Object) object.Object {
			return &object.String{Value: args[0].Inspect(object.ViewStdOut)}
		}},

		{Name: "typeof", Arity: 1, Fn: func(args []object.Object) object.Object {
			return &object.String{Value: object.TrueType(args[0])}
		}},

		{Name: "num", Arity: 1, Fn: func(args []object.Object) object.Object {
			switch arg := args[0].(type) {
			case *object.Integer, *object.Float:
				return arg
			case *object.String:
				var i int64
				if _, err := fmt.Sscanf(arg.Value, "%d", &i); err == nil &&
					!strings.ContainsAny(arg.Value, ".eE") {
					return &object.Integer{Value: i}
				}
				var f float64
				if _, err := fmt.Sscanf(arg.Value, "%g", &f); err == nil {
					return &object.Float{Value: f}
				}
				return object.NIL
			}
			return nativeTypeError("num", args[0])
		}},
	}
}
