package ast

import (
	"bytes"
	"strings"

	"jeko/token"
)

// The base Node interface
type Node interface {
	GetToken() token.Token
	TokenLiteral() string
	String() string
}

// Expressions additionally carry a unique integer id, assigned by the
// parser. The resolver keys its distance map on these ids, so they must
// be stable and unique across the whole tree.
type Expression interface {
	Node
	GetId() int
}

// Statements

type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) GetToken() token.Token { return es.Token }
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Literal }
func (es *ExpressionStatement) String() string        { return es.Expression.String() + ";" }

type PrintStatement struct {
	Token      token.Token
	Expression Expression
}

func (ps *PrintStatement) GetToken() token.Token { return ps.Token }
func (ps *PrintStatement) TokenLiteral() string  { return ps.Token.Literal }
func (ps *PrintStatement) String() string        { return "print " + ps.Expression.String() + ";" }

type InputStatement struct {
	Token  token.Token
	Prompt Expression
}

func (is *InputStatement) GetToken() token.Token { return is.Token }
func (is *InputStatement) TokenLiteral() string  { return is.Token.Literal }
func (is *InputStatement) String() string        { return "input " + is.Prompt.String() + ";" }

type ErrorsStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ErrorsStatement) GetToken() token.Token { return es.Token }
func (es *ErrorsStatement) TokenLiteral() string  { return es.Token.Literal }
func (es *ErrorsStatement) String() string        { return "errors " + es.Expression.String() + ";" }

type VarStatement struct {
	Token       token.Token
	Name        token.Token
	Initializer Expression
}

func (vs *VarStatement) GetToken() token.Token { return vs.Token }
func (vs *VarStatement) TokenLiteral() string  { return vs.Token.Literal }
func (vs *VarStatement) String() string {
	return "var " + vs.Name.Literal + " = " + vs.Initializer.String() + ";"
}

type BlockStatement struct {
	Token      token.Token
	Statements []Node
}

func (bs *BlockStatement) GetToken() token.Token { return bs.Token }
func (bs *BlockStatement) TokenLiteral() string  { return bs.Token.Literal }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range bs.Statements {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

type ClassStatement struct {
	Token      token.Token
	Name       token.Token
	Superclass Expression // nil if the class has none
	Methods    []*FunctionStatement
}

func (cs *ClassStatement) GetToken() token.Token { return cs.Token }
func (cs *ClassStatement) TokenLiteral() string  { return cs.Token.Literal }
func (cs *ClassStatement) String() string {
	var out bytes.Buffer
	out.WriteString("class ")
	out.WriteString(cs.Name.Literal)
	if cs.Superclass != nil {
		out.WriteString(" < ")
		out.WriteString(cs.Superclass.String())
	}
	out.WriteString(" { ")
	for _, m := range cs.Methods {
		out.WriteString(m.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

type ElifBranch struct {
	Predicate Expression
	Body      Node
}

type IfStatement struct {
	Token     token.Token
	Predicate Expression
	Then      Node
	Elifs     []ElifBranch
	Else      Node // nil if absent
}

func (is *IfStatement) GetToken() token.Token { return is.Token }
func (is *IfStatement) TokenLiteral() string  { return is.Token.Literal }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if ")
	out.WriteString(is.Predicate.String())
	out.WriteString(" ")
	out.WriteString(is.Then.String())
	for _, e := range is.Elifs {
		out.WriteString(" elif ")
		out.WriteString(e.Predicate.String())
		out.WriteString(" ")
		out.WriteString(e.Body.String())
	}
	if is.Else != nil {
		out.WriteString(" else ")
		out.WriteString(is.Else.String())
	}
	return out.String()
}

// The one-armed form, `if x: stmt`. Semantically the same as an
// IfStatement without elifs; the parser keeps them distinct because the
// front end does.
type IfShortStatement struct {
	Token     token.Token
	Predicate Expression
	Then      Node
	Else      Node // nil if absent
}

func (is *IfShortStatement) GetToken() token.Token { return is.Token }
func (is *IfShortStatement) TokenLiteral() string  { return is.Token.Literal }
func (is *IfShortStatement) String() string {
	result := "if " + is.Predicate.String() + ": " + is.Then.String()
	if is.Else != nil {
		result = result + " else: " + is.Else.String()
	}
	return result
}

type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      Node
}

func (ws *WhileStatement) GetToken() token.Token { return ws.Token }
func (ws *WhileStatement) TokenLiteral() string  { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	return "while " + ws.Condition.String() + " " + ws.Body.String()
}

type FunctionStatement struct {
	Token  token.Token
	Name   token.Token
	Params []token.Token
	Body   []Node
}

func (fs *FunctionStatement) GetToken() token.Token { return fs.Token }
func (fs *FunctionStatement) TokenLiteral() string  { return fs.Token.Literal }
func (fs *FunctionStatement) String() string {
	var out bytes.Buffer
	out.WriteString("fun ")
	out.WriteString(fs.Name.Literal)
	out.WriteString("(")
	params := []string{}
	for _, p := range fs.Params {
		params = append(params, p.Literal)
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") { ")
	for _, s := range fs.Body {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

type CmdFunctionStatement struct {
	Token token.Token
	Name  token.Token
	Cmd   string
}

func (cs *CmdFunctionStatement) GetToken() token.Token { return cs.Token }
func (cs *CmdFunctionStatement) TokenLiteral() string  { return cs.Token.Literal }
func (cs *CmdFunctionStatement) String() string {
	return "cmd " + cs.Name.Literal + " = " + cs.Cmd + ";"
}

type ReturnStatement struct {
	Token token.Token
	Value Expression // nil means `return;`, which returns nil
}

func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Literal }
func (rs *ReturnStatement) String() string {
	if rs.Value == nil {
		return "return;"
	}
	return "return " + rs.Value.String() + ";"
}

type BreakStatement struct {
	Token token.Token
}

func (bs *BreakStatement) GetToken() token.Token { return bs.Token }
func (bs *BreakStatement) TokenLiteral() string  { return bs.Token.Literal }
func (bs *BreakStatement) String() string        { return "break;" }

type BeforeClause struct {
	Time Expression
	Body Node
}

type WaitStatement struct {
	Token  token.Token
	Time   Expression
	Body   Node
	Before *BeforeClause // nil if absent
}

func (ws *WaitStatement) GetToken() token.Token { return ws.Token }
func (ws *WaitStatement) TokenLiteral() string  { return ws.Token.Literal }
func (ws *WaitStatement) String() string {
	result := "wait " + ws.Time.String() + " " + ws.Body.String()
	if ws.Before != nil {
		result = result + " before " + ws.Before.Time.String() + " " + ws.Before.Body.String()
	}
	return result
}

type BenchStatement struct {
	Token token.Token
	Body  Node
}

func (bs *BenchStatement) GetToken() token.Token { return bs.Token }
func (bs *BenchStatement) TokenLiteral() string  { return bs.Token.Literal }
func (bs *BenchStatement) String() string        { return "bench " + bs.Body.String() }

type ExitsStatement struct {
	Token token.Token
}

func (es *ExitsStatement) GetToken() token.Token { return es.Token }
func (es *ExitsStatement) TokenLiteral() string  { return es.Token.Literal }
func (es *ExitsStatement) String() string        { return "exits;" }

type ImportStatement struct {
	Token      token.Token
	Expression Expression
}

func (is *ImportStatement) GetToken() token.Token { return is.Token }
func (is *ImportStatement) TokenLiteral() string  { return is.Token.Literal }
func (is *ImportStatement) String() string        { return "import " + is.Expression.String() + ";" }

// Expressions

type Identifier struct {
	Id    int
	Token token.Token
	Value string
}

func (i *Identifier) GetToken() token.Token { return i.Token }
func (i *Identifier) TokenLiteral() string  { return i.Token.Literal }
func (i *Identifier) String() string        { return i.Value }
func (i *Identifier) GetId() int            { return i.Id }

type AssignExpression struct {
	Id    int
	Token token.Token
	Name  token.Token
	Value Expression
}

func (ae *AssignExpression) GetToken() token.Token { return ae.Token }
func (ae *AssignExpression) TokenLiteral() string  { return ae.Token.Literal }
func (ae *AssignExpression) String() string        { return ae.Name.Literal + " = " + ae.Value.String() }
func (ae *AssignExpression) GetId() int            { return ae.Id }

type IntegerLiteral struct {
	Id    int
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) GetToken() token.Token { return il.Token }
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Literal }
func (il *IntegerLiteral) String() string        { return il.Token.Literal }
func (il *IntegerLiteral) GetId() int            { return il.Id }

type FloatLiteral struct {
	Id    int
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) GetToken() token.Token { return fl.Token }
func (fl *FloatLiteral) TokenLiteral() string  { return fl.Token.Literal }
func (fl *FloatLiteral) String() string        { return fl.Token.Literal }
func (fl *FloatLiteral) GetId() int            { return fl.Id }

type StringLiteral struct {
	Id    int
	Token token.Token
	Value string
}

func (sl *StringLiteral) GetToken() token.Token { return sl.Token }
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Literal }
func (sl *StringLiteral) String() string        { return "\"" + sl.Value + "\"" }
func (sl *StringLiteral) GetId() int            { return sl.Id }

type BooleanLiteral struct {
	Id    int
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Literal }
func (bl *BooleanLiteral) String() string        { return bl.Token.Literal }
func (bl *BooleanLiteral) GetId() int            { return bl.Id }

type NilLiteral struct {
	Id    int
	Token token.Token
}

func (nl *NilLiteral) GetToken() token.Token { return nl.Token }
func (nl *NilLiteral) TokenLiteral() string  { return nl.Token.Literal }
func (nl *NilLiteral) String() string        { return "nil" }
func (nl *NilLiteral) GetId() int            { return nl.Id }

type ArrayLiteral struct {
	Id       int
	Token    token.Token
	Elements []Expression
}

func (al *ArrayLiteral) GetToken() token.Token { return al.Token }
func (al *ArrayLiteral) TokenLiteral() string  { return al.Token.Literal }
func (al *ArrayLiteral) String() string {
	var out bytes.Buffer
	elements := []string{}
	for _, e := range al.Elements {
		elements = append(elements, e.String())
	}
	out.WriteString("[")
	out.WriteString(strings.Join(elements, ", "))
	out.WriteString("]")
	return out.String()
}
func (al *ArrayLiteral) GetId() int { return al.Id }

type BinaryExpression struct {
	Id       int
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (be *BinaryExpression) GetToken() token.Token { return be.Token }
func (be *BinaryExpression) TokenLiteral() string  { return be.Token.Literal }
func (be *BinaryExpression) String() string {
	return "(" + be.Left.String() + " " + be.Operator + " " + be.Right.String() + ")"
}
func (be *BinaryExpression) GetId() int { return be.Id }

type LogicalExpression struct {
	Id       int
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (le *LogicalExpression) GetToken() token.Token { return le.Token }
func (le *LogicalExpression) TokenLiteral() string  { return le.Token.Literal }
func (le *LogicalExpression) String() string {
	return "(" + le.Left.String() + " " + le.Operator + " " + le.Right.String() + ")"
}
func (le *LogicalExpression) GetId() int { return le.Id }

type UnaryExpression struct {
	Id       int
	Token    token.Token
	Operator string
	Right    Expression
}

func (ue *UnaryExpression) GetToken() token.Token { return ue.Token }
func (ue *UnaryExpression) TokenLiteral() string  { return ue.Token.Literal }
func (ue *UnaryExpression) String() string {
	operator := ue.Operator
	if operator == "not" {
		operator = "not "
	}
	return "(" + operator + ue.Right.String() + ")"
}
func (ue *UnaryExpression) GetId() int { return ue.Id }

type GroupingExpression struct {
	Id    int
	Token token.Token
	Inner Expression
}

func (ge *GroupingExpression) GetToken() token.Token { return ge.Token }
func (ge *GroupingExpression) TokenLiteral() string  { return ge.Token.Literal }
func (ge *GroupingExpression) String() string        { return "(" + ge.Inner.String() + ")" }
func (ge *GroupingExpression) GetId() int            { return ge.Id }

type CallExpression struct {
	Id        int
	Token     token.Token // the '('
	Callee    Expression
	Arguments []Expression
}

func (ce *CallExpression) GetToken() token.Token { return ce.Token }
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Literal }
func (ce *CallExpression) String() string {
	var out bytes.Buffer
	args := []string{}
	for _, a := range ce.Arguments {
		args = append(args, a.String())
	}
	out.WriteString(ce.Callee.String())
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}
func (ce *CallExpression) GetId() int { return ce.Id }

type GetExpression struct {
	Id     int
	Token  token.Token // the '.'
	Object Expression
	Name   token.Token
}

func (ge *GetExpression) GetToken() token.Token { return ge.Token }
func (ge *GetExpression) TokenLiteral() string  { return ge.Token.Literal }
func (ge *GetExpression) String() string        { return ge.Object.String() + "." + ge.Name.Literal }
func (ge *GetExpression) GetId() int            { return ge.Id }

type SetExpression struct {
	Id     int
	Token  token.Token // the '.'
	Object Expression
	Name   token.Token
	Value  Expression
}

func (se *SetExpression) GetToken() token.Token { return se.Token }
func (se *SetExpression) TokenLiteral() string  { return se.Token.Literal }
func (se *SetExpression) String() string {
	return se.Object.String() + "." + se.Name.Literal + " = " + se.Value.String()
}
func (se *SetExpression) GetId() int { return se.Id }

type FuncExpression struct {
	Id     int
	Token  token.Token
	Params []token.Token
	Body   []Node
}

func (fe *FuncExpression) GetToken() token.Token { return fe.Token }
func (fe *FuncExpression) TokenLiteral() string  { return "fun" }
func (fe *FuncExpression) String() string {
	var out bytes.Buffer
	out.WriteString("fun(")
	params := []string{}
	for _, p := range fe.Params {
		params = append(params, p.Literal)
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") { ")
	for _, s := range fe.Body {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}
func (fe *FuncExpression) GetId() int { return fe.Id }
