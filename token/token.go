package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT" // add, foobar, x, y, ...
	INT    = "int"   // 1343456
	FLOAT  = "float" // 1.23
	STRING = "string" // "foo"

	// Operators
	ASSIGN  = "="
	PLUS    = "+"
	MINUS   = "-"
	STAR    = "*"
	SLASH   = "/"
	PERCENT = "%"
	BANG    = "!"

	EQ     = "=="
	NOT_EQ = "!="
	LT     = "<"
	LT_EQ  = "<="
	GT     = ">"
	GT_EQ  = ">="

	AND = "and"
	OR  = "or"
	NOT = "not"

	COMMA     = ","
	SEMICOLON = ";"
	COLON     = ":"
	DOT       = "."

	LPAREN = "("
	RPAREN = ")"
	LBRACE = "{"
	RBRACE = "}"
	LBRACK = "["
	RBRACK = "]"

	// Keywords
	VAR    = "var"
	FUN    = "fun"
	CMD    = "cmd"
	CLASS  = "class"
	SUPER  = "super"
	SELF   = "self"
	IF     = "if"
	ELIF   = "elif"
	ELSE   = "else"
	WHILE  = "while"
	BREAK  = "break"
	RETURN = "return"
	WAIT   = "wait"
	BEFORE = "before"
	BENCH  = "bench"
	EXITS  = "exits"
	PRINT  = "print"
	INPUT  = "input"
	ERRORS = "errors"
	IMPORT = "import"
	TRUE   = "true"
	FALSE  = "false"
	NIL    = "nil"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	ChStart int
	ChEnd   int
	Source  string
}

var keywords = map[string]TokenType{
	"var":    VAR,
	"fun":    FUN,
	"cmd":    CMD,
	"class":  CLASS,
	"super":  SUPER,
	"self":   SELF,
	"if":     IF,
	"elif":   ELIF,
	"else":   ELSE,
	"while":  WHILE,
	"break":  BREAK,
	"return": RETURN,
	"wait":   WAIT,
	"before": BEFORE,
	"bench":  BENCH,
	"exits":  EXITS,
	"print":  PRINT,
	"input":  INPUT,
	"errors": ERRORS,
	"import": IMPORT,
	"true":   TRUE,
	"false":  FALSE,
	"nil":    NIL,

	"and": AND,
	"or":  OR,
	"not": NOT,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
