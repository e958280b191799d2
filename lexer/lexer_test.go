package lexer

import (
	"testing"

	"jeko/token"
)

func TestNextToken(t *testing.T) {
	input := `var five = 5;
var pi = 3.14159;
// this comment should vanish entirely
fun add(x, y) {
	return x + y;
}
if five <= 10 and five != 4 {
	print "hello" + "!";
} elif !true {
	five = five % 2;
} else {
	while true { break; }
}
class Dog < Animal {
	speak() { return super.noise(); }
}
var stuff = [1, 2.5, "three"];
if five: print five;
cmd list_files = "ls -l";
wait 0.5 { print "later"; } before 0.1 { print "sooner"; }
@
`
	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
		expectedLine    int
	}{
		{token.VAR, "var", 1},
		{token.IDENT, "five", 1},
		{token.ASSIGN, "=", 1},
		{token.INT, "5", 1},
		{token.SEMICOLON, ";", 1},
		{token.VAR, "var", 2},
		{token.IDENT, "pi", 2},
		{token.ASSIGN, "=", 2},
		{token.FLOAT, "3.14159", 2},
		{token.SEMICOLON, ";", 2},
		{token.FUN, "fun", 4},
		{token.IDENT, "add", 4},
		{token.LPAREN, "(", 4},
		{token.IDENT, "x", 4},
		{token.COMMA, ",", 4},
		{token.IDENT, "y", 4},
		{token.RPAREN, ")", 4},
		{token.LBRACE, "{", 4},
		{token.RETURN, "return", 5},
		{token.IDENT, "x", 5},
		{token.PLUS, "+", 5},
		{token.IDENT, "y", 5},
		{token.SEMICOLON, ";", 5},
		{token.RBRACE, "}", 6},
		{token.IF, "if", 7},
		{token.IDENT, "five", 7},
		{token.LT_EQ, "<=", 7},
		{token.INT, "10", 7},
		{token.AND, "and", 7},
		{token.IDENT, "five", 7},
		{token.NOT_EQ, "!=", 7},
		{token.INT, "4", 7},
		{token.LBRACE, "{", 7},
		{token.PRINT, "print", 8},
		{token.STRING, "hello", 8},
		{token.PLUS, "+", 8},
		{token.STRING, "!", 8},
		{token.SEMICOLON, ";", 8},
		{token.RBRACE, "}", 9},
		{token.ELIF, "elif", 9},
		{token.BANG, "!", 9},
		{token.TRUE, "true", 9},
		{token.LBRACE, "{", 9},
		{token.IDENT, "five", 10},
		{token.ASSIGN, "=", 10},
		{token.IDENT, "five", 10},
		{token.PERCENT, "%", 10},
		{token.INT, "2", 10},
		{token.SEMICOLON, ";", 10},
		{token.RBRACE, "}", 11},
		{token.ELSE, "else", 11},
		{token.LBRACE, "{", 11},
		{token.WHILE, "while", 12},
		{token.TRUE, "true", 12},
		{token.LBRACE, "{", 12},
		{token.BREAK, "break", 12},
		{token.SEMICOLON, ";", 12},
		{token.RBRACE, "}", 12},
		{token.RBRACE, "}", 13},
		{token.CLASS, "class", 14},
		{token.IDENT, "Dog", 14},
		{token.LT, "<", 14},
		{token.IDENT, "Animal", 14},
		{token.LBRACE, "{", 14},
		{token.IDENT, "speak", 15},
		{token.LPAREN, "(", 15},
		{token.RPAREN, ")", 15},
		{token.LBRACE, "{", 15},
		{token.RETURN, "return", 15},
		{token.SUPER, "super", 15},
		{token.DOT, ".", 15},
		{token.IDENT, "noise", 15},
		{token.LPAREN, "(", 15},
		{token.RPAREN, ")", 15},
		{token.SEMICOLON, ";", 15},
		{token.RBRACE, "}", 15},
		{token.RBRACE, "}", 16},
		{token.VAR, "var", 17},
		{token.IDENT, "stuff", 17},
		{token.ASSIGN, "=", 17},
		{token.LBRACK, "[", 17},
		{token.INT, "1", 17},
		{token.COMMA, ",", 17},
		{token.FLOAT, "2.5", 17},
		{token.COMMA, ",", 17},
		{token.STRING, "three", 17},
		{token.RBRACK, "]", 17},
		{token.SEMICOLON, ";", 17},
		{token.IF, "if", 18},
		{token.IDENT, "five", 18},
		{token.COLON, ":", 18},
		{token.PRINT, "print", 18},
		{token.IDENT, "five", 18},
		{token.SEMICOLON, ";", 18},
		{token.CMD, "cmd", 19},
		{token.IDENT, "list_files", 19},
		{token.ASSIGN, "=", 19},
		{token.STRING, "ls -l", 19},
		{token.SEMICOLON, ";", 19},
		{token.WAIT, "wait", 20},
		{token.FLOAT, "0.5", 20},
		{token.LBRACE, "{", 20},
		{token.PRINT, "print", 20},
		{token.STRING, "later", 20},
		{token.SEMICOLON, ";", 20},
		{token.RBRACE, "}", 20},
		{token.BEFORE, "before", 20},
		{token.FLOAT, "0.1", 20},
		{token.LBRACE, "{", 20},
		{token.PRINT, "print", 20},
		{token.STRING, "sooner", 20},
		{token.SEMICOLON, ";", 20},
		{token.RBRACE, "}", 20},
		{token.ILLEGAL, "lex/ill", 21},
		{token.EOF, "", 22},
	}

	l := New("dummy source", input)

	for i, tt := range tests {

		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}

		if tok.Line != tt.expectedLine {
			t.Fatalf("tests[%d] - line wrong for %q. expected=%v, got=%v",
				i, tt.expectedLiteral, tt.expectedLine, tok.Line)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New("dummy source", "\"no closing quote\nvar x = 1;")
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("tokentype wrong. expected=%q, got=%q", token.ILLEGAL, tok.Type)
	}
	if tok.Literal != "lex/str/unterminated" {
		t.Fatalf("literal wrong. expected=%q, got=%q", "lex/str/unterminated", tok.Literal)
	}
}

func TestStringEscapes(t *testing.T) {
	l := New("dummy source", `"tab\there\nand a \"quote\""`)
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("tokentype wrong. expected=%q, got=%q", token.STRING, tok.Type)
	}
	if tok.Literal != "tab\there\nand a \"quote\"" {
		t.Fatalf("literal wrong. got=%q", tok.Literal)
	}
}
