package evaluator

import (
	"jeko/object"
	"jeko/token"
)

// Arithmetic on two ints stays in the ints; as soon as a float turns
// up on either side everything goes through float64. Comparison
// operators work on numbers and on strings, '+' additionally
// concatenates strings and lists, and '==' / '!=' work on anything.

func evalInfixExpression(tok token.Token, operator string, left, right object.Object) object.Object {
	switch operator {
	case "==":
		return object.MakeBool(object.Equals(left, right))
	case "!=":
		return object.MakeBool(!object.Equals(left, right))
	}

	leftInt, leftIsInt := left.(*object.Integer)
	rightInt, rightIsInt := right.(*object.Integer)
	if leftIsInt && rightIsInt {
		return evalIntegerInfix(tok, operator, leftInt.Value, rightInt.Value)
	}

	leftFloat, leftIsNumber := asFloat(left)
	rightFloat, rightIsNumber := asFloat(right)
	if leftIsNumber && rightIsNumber {
		return evalFloatInfix(tok, operator, leftFloat, rightFloat)
	}

	leftString, leftIsString := left.(*object.String)
	rightString, rightIsString := right.(*object.String)
	if leftIsString && rightIsString {
		return evalStringInfix(tok, operator, leftString.Value, rightString.Value)
	}

	leftList, leftIsList := left.(*object.List)
	rightList, rightIsList := right.(*object.List)
	if leftIsList && rightIsList && operator == "+" {
		elements := leftList.Elements
		for it := rightList.Elements.Iterator(); it.HasElem(); it.Next() {
			elements = elements.Conj(it.Elem())
		}
		return &object.List{Elements: elements}
	}

	return object.CreateErr("eval/infix/type", tok, operator,
		object.TrueType(left), object.TrueType(right))
}

func evalIntegerInfix(tok token.Token, operator string, left, right int64) object.Object {
	switch operator {
	case "+":
		return &object.Integer{Value: left + right}
	case "-":
		return &object.Integer{Value: left - right}
	case "*":
		return &object.Integer{Value: left * right}
	case "/":
		if right == 0 {
			return object.CreateErr("eval/div/zero", tok)
		}
		return &object.Integer{Value: left / right}
	case "%":
		if right == 0 {
			return object.CreateErr("eval/div/zero", tok)
		}
		return &object.Integer{Value: left % right}
	case "<":
		return object.MakeBool(left < right)
	case "<=":
		return object.MakeBool(left <= right)
	case ">":
		return object.MakeBool(left > right)
	case ">=":
		return object.MakeBool(left >= right)
	}
	return object.CreateErr("eval/infix/type", tok, operator, "int", "int")
}

func evalFloatInfix(tok token.Token, operator string, left, right float64) object.Object {
	switch operator {
	case "+":
		return &object.Float{Value: left + right}
	case "-":
		return &object.Float{Value: left - right}
	case "*":
		return &object.Float{Value: left * right}
	case "/":
		if right == 0 {
			return object.CreateErr("eval/div/zero", tok)
		}
		return &object.Float{Value: left / right}
	case "<":
		return object.MakeBool(left < right)
	case "<=":
		return object.MakeBool(left <= right)
	case ">":
		return object.MakeBool(left > right)
	case ">=":
		return object.MakeBool(left >= right)
	}
	return object.CreateErr("eval/infix/type", tok, operator, "float", "float")
}

func evalStringInfix(tok token.Token, operator string, left, right string) object.Object {
	switch operator {
	case "+":
		return &object.String{Value: left + right}
	case "<":
		return object.MakeBool(left < right)
	case "<=":
		return object.MakeBool(left <= right)
	case ">":
		return object.MakeBool(left > right)
	case ">=":
		return object.MakeBool(left >= right)
	}
	return object.CreateErr("eval/infix/type", tok, operator, "string", "string")
}

func evalUnaryExpression(tok token.Token, operator string, right object.Object) object.Object {
	switch operator {
	case "!", "not":
		return object.MakeBool(!object.IsTruthy(right))
	case "-":
		switch right := right.(type) {
		case *object.Integer:
			return &object.Integer{Value: -right.Value}
		case *object.Float:
			return &object.Float{Value: -right.Value}
		}
	}
	return object.CreateErr("eval/unary/type", tok, operator, object.TrueType(right))
}

func asFloat(obj object.Object) (float64, bool) {
	switch obj := obj.(type) {
	case *object.Integer:
		return float64(obj.Value), true
	case *object.Float:
		return obj.Value, true
	}
	return 0, false
}
