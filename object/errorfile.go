package object

import (
	"fmt"

	"jeko/text"
	"jeko/token"
)

// A map from error identifiers to functions that supply the corresponding error messages
// and explanations.
//
// Errors in the map are in alphabetical order of their identifiers.
//
// Major categories are eval, lex, parse, and resolve.
//
// Two otherwise identical errors thrown in different places in the Go code must be
// assigned different identifiers, if only by suffixing /a, /b, etc to the identifier.

type ErrorCreator struct {
	Message     func(tok token.Token, args ...any) string
	Explanation func(errors Errors, pos int, tok token.Token, args ...any) string
}

type Errors []*Error

var ErrorCreatorMap = map[string]ErrorCreator{

	"eval/assign/found": {
		Message: func(tok token.Token, args ...any) string {
			return "can't assign to undeclared variable " + text.Emph(args[0].(string))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Assignment gives a new value to an existing variable. This name hasn't been " +
				"declared in any enclosing scope: if you meant to make a new variable, you want " +
				"'var' in front of it."
		},
	},

	"eval/call/arity": {
		Message: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("expected %v argument(s), got %v", args[0].(int), args[1].(int))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A function must be called with exactly as many arguments as it has parameters."
		},
	},

	"eval/call/type": {
		Message: func(tok token.Token, args ...any) string {
			return "can't call a value of type " + text.Emph(args[0].(string))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Only functions, native functions, and classes can go on the left of a '(...)' " +
				"argument list. Whatever you put there, it wasn't one of those."
		},
	},

	"eval/class/rebind": {
		Message: func(tok token.Token, args ...any) string {
			return "class definition failed for " + text.Emph(args[0].(string))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "When a class body has been evaluated, the finished class value replaces the " +
				"placeholder that was bound to the class's name in the global scope. That " +
				"placeholder couldn't be found, so the class was probably declared somewhere " +
				"a class can't be declared."
		},
	},

	"eval/db/blank": {
		Message: func(tok token.Token, args ...any) string {
			return "no database connection is open"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The database natives operate on a current connection, and you have to make one " +
				"with 'db_connect' before anything else can work."
		},
	},

	"eval/db/conn": {
		Message: func(tok token.Token, args ...any) string {
			return "database returns '" + args[0].(string) + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The main body of the error message was generated by the database driver when " +
				"the interpreter tried to open the connection. If you don't know what it means, " +
				"you should consult the documentation of your database."
		},
	},

	"eval/db/query": {
		Message: func(tok token.Token, args ...any) string {
			return "database returns '" + args[0].(string) + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The main body of the error message was generated by the database driver when " +
				"the interpreter ran your query."
		},
	},

	"eval/div/zero": {
		Message: func(tok token.Token, args ...any) string {
			return "division by zero"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Because 'x * 0 == y * 0' for any numbers 'x' and 'y', mathematicians consider " +
				"the result of dividing by zero to be undefined: there is no right answer. " +
				"Rather, it's the wrong question. So Jeko throws this error when you ask it."
		},
	},

	"eval/get/found": {
		Message: func(tok token.Token, args ...any) string {
			return "undefined property " + text.Emph(args[0].(string))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Neither the instance's fields nor its class's methods (nor any superclass's " +
				"methods) contain anything by this name."
		},
	},

	"eval/get/type": {
		Message: func(tok token.Token, args ...any) string {
			return "values of type " + text.Emph(args[0].(string)) + " don't have properties"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Only instances of classes have properties you can get with the '.' operator."
		},
	},

	"eval/ident/found": {
		Message: func(tok token.Token, args ...any) string {
			return "identifier " + text.Emph(args[0].(string)) + " not found"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "You don't seem to have defined this variable or function anywhere, so the " +
				"interpreter can't work out what you mean by it."
		},
	},

	"eval/import/file": {
		Message: func(tok token.Token, args ...any) string {
			return "os returns '" + args[0].(string) + "' when trying to open file " + text.Emph(args[1].(string))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This is an error the os of your computer returned when the interpreter tried to " +
				"read the imported file. If you aren't sure what it means, you should consult " +
				"the documentation of your os."
		},
	},

	"eval/import/string": {
		Message: func(tok token.Token, args ...any) string {
			return "import needs a string, not a value of type " + EmphTypeName(args[0].(string))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The expression after 'import' has to evaluate to a string containing the path " +
				"of the file you want to import."
		},
	},

	"eval/infix/type": {
		Message: func(tok token.Token, args ...any) string {
			return "can't apply " + text.Emph(args[0].(string)) + " to values of types " +
				EmphTypeName(args[1].(string)) + " and " + EmphTypeName(args[2].(string))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Infix operators are fussy about the types of their operands: arithmetic wants " +
				"numbers, '+' additionally accepts a pair of strings or a pair of lists, and " +
				"comparisons want two numbers or two strings."
		},
	},

	"eval/native/arity": {
		Message: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("native function %v expected %v argument(s), got %v",
				text.Emph(args[0].(string)), args[1].(int), args[2].(int))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Native functions have a fixed arity, declared by the host, and you have to " +
				"supply exactly that many arguments."
		},
	},

	"eval/native/type": {
		Message: func(tok token.Token, args ...any) string {
			return "native function " + text.Emph(args[0].(string)) + " can't be applied to a value of type " +
				EmphTypeName(args[1].(string))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The host-level functions are typed even though the language isn't, and this one " +
				"doesn't accept what you passed it."
		},
	},

	"eval/set/type": {
		Message: func(tok token.Token, args ...any) string {
			return "can't set a property on a value of type " + EmphTypeName(args[0].(string))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Only instances of classes have fields you can assign to with the '.' operator."
		},
	},

	"eval/superclass/type": {
		Message: func(tok token.Token, args ...any) string {
			return "superclass must be a class, not " + EmphTypeName(args[0].(string))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The expression after the '<' in a class declaration has to evaluate to a class " +
				"for the declared class to inherit from. Yours evaluated to something else."
		},
	},

	"eval/sysvar/valid": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string)
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The system variables are the host's, not yours, and each one only accepts " +
				"the values that make sense to the host."
		},
	},

	"eval/unary/type": {
		Message: func(tok token.Token, args ...any) string {
			return "can't apply " + text.Emph(args[0].(string)) + " to a value of type " +
				EmphTypeName(args[1].(string))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Unary '-' wants a number and unary '!'/'not' will take anything, so you must " +
				"have tried to negate something that isn't a number."
		},
	},

	"eval/wait/time": {
		Message: func(tok token.Token, args ...any) string {
			return "wait needs a number of seconds, not a value of type " + EmphTypeName(args[0].(string))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The expression after 'wait' or 'before' has to evaluate to a number, which may " +
				"be fractional, giving the delay in seconds."
		},
	},

	"lex/ill": {
		Message: func(tok token.Token, args ...any) string {
			return "illegal character"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This character isn't any part of the language's syntax, and the lexer doesn't " +
				"know what to do with it."
		},
	},

	"lex/str/unterminated": {
		Message: func(tok token.Token, args ...any) string {
			return "unterminated string literal"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A string literal was opened with '\"' and the end of the line or file arrived " +
				"before the matching close quote did."
		},
	},

	"parse/assign": {
		Message: func(tok token.Token, args ...any) string {
			return "invalid assignment target"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The only things that can go on the left of an '=' are a variable name and a " +
				"property access like 'thing.field'."
		},
	},

	"parse/cmd/string": {
		Message: func(tok token.Token, args ...any) string {
			return "the body of a 'cmd' function must be a string literal"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A command-backed function wraps a fixed OS command, so the thing after the '=' " +
				"has to be a literal string containing it: it can't be computed at runtime."
		},
	},

	"parse/expect": {
		Message: func(tok token.Token, args ...any) string {
			return "expected " + text.Emph(args[0].(string)) + ", got " + text.Emph(tok.Literal)
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The parser knows from what it has already seen that only one kind of token can " +
				"come next, and this wasn't it."
		},
	},

	"parse/float": {
		Message: func(tok token.Token, args ...any) string {
			return "couldn't parse " + text.Emph(tok.Literal) + " as a float"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The lexer thought this was a float literal but the parser couldn't turn it " +
				"into a 64-bit floating-point number. It is probably out of range."
		},
	},

	"parse/expr": {
		Message: func(tok token.Token, args ...any) string {
			return "couldn't parse " + text.Emph(tok.Literal) + " as the start of an expression"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The parser wanted an expression at this point and couldn't make one start with " +
				"this token."
		},
	},

	"parse/int": {
		Message: func(tok token.Token, args ...any) string {
			return "couldn't parse " + text.Emph(tok.Literal) + " as an integer"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The lexer thought this was an integer literal but the parser couldn't turn it " +
				"into a 64-bit integer. It is probably out of range."
		},
	},

	"resolve/break": {
		Message: func(tok token.Token, args ...any) string {
			return "'break' is not allowed outside of a loop"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A 'break' statement jumps out of the nearest enclosing 'while' loop, and this " +
				"one has no enclosing loop to jump out of. This is checked before the program " +
				"runs, so no part of it has been executed."
		},
	},

	"resolve/return": {
		Message: func(tok token.Token, args ...any) string {
			return "'return' is not allowed outside of a function"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A 'return' statement hands a value back from the function being executed, so at " +
				"the top level of the program there is nowhere for it to return to. This is " +
				"checked before the program runs, so no part of it has been executed."
		},
	},

	"resolve/var/exists": {
		Message: func(tok token.Token, args ...any) string {
			return "a variable called " + text.Emph(args[0].(string)) + " is already in this scope"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "You can shadow a variable from an enclosing scope, but declaring the same name " +
				"twice in one block is always a mistake, so it's rejected before the program runs."
		},
	},

	"resolve/var/init": {
		Message: func(tok token.Token, args ...any) string {
			return "can't read local variable " + text.Emph(args[0].(string)) + " in its own initializer"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Something like 'var x = x + 1' inside a block refers to the 'x' being declared, " +
				"not to any outer 'x' it shadows, and the inner 'x' has no value yet. If you " +
				"meant the outer one, rename one of them."
		},
	},
}

func EmphTypeName(s string) string {
	return text.Emph("<" + s + ">")
}

func CreateErr(ident string, tok token.Token, args ...any) *Error {
	creator, ok := ErrorCreatorMap[ident]
	if !ok {
		return &Error{ErrorId: ident, Message: "oopsie, can't find errorId " + ident, Token: tok}
	}
	return &Error{ErrorId: ident, Message: creator.Message(tok, args...), Info: args, Token: tok}
}

func ExplainErr(e *Error, errors Errors, pos int) string {
	creator, ok := ErrorCreatorMap[e.ErrorId]
	if !ok {
		return "there is no explanation for this error, which shouldn't happen and is itself an error"
	}
	return creator.Explanation(errors, pos, e.Token, e.Info...)
}
