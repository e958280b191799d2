package lexer

import (
	"jeko/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	char         int // current position within the line
	source       string
}

func New(source, input string) *Lexer {
	l := &Lexer{input: input, line: 1, char: 0, source: source}
	l.readChar()
	return l
}

func (l *Lexer) NextToken() token.Token {

	l.skipWhitespaceAndComments()

	var tok token.Token

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			tok = l.makeTwoCharToken(token.EQ)
		} else {
			tok = l.makeToken(token.ASSIGN, string(l.ch))
		}
	case '!':
		if l.peekChar() == '=' {
			tok = l.makeTwoCharToken(token.NOT_EQ)
		} else {
			tok = l.makeToken(token.BANG, string(l.ch))
		}
	case '<':
		if l.peekChar() == '=' {
			tok = l.makeTwoCharToken(token.LT_EQ)
		} else {
			tok = l.makeToken(token.LT, string(l.ch))
		}
	case '>':
		if l.peekChar() == '=' {
			tok = l.makeTwoCharToken(token.GT_EQ)
		} else {
			tok = l.makeToken(token.GT, string(l.ch))
		}
	case '+':
		tok = l.makeToken(token.PLUS, string(l.ch))
	case '-':
		tok = l.makeToken(token.MINUS, string(l.ch))
	case '*':
		tok = l.makeToken(token.STAR, string(l.ch))
	case '/':
		tok = l.makeToken(token.SLASH, string(l.ch))
	case '%':
		tok = l.makeToken(token.PERCENT, string(l.ch))
	case ',':
		tok = l.makeToken(token.COMMA, string(l.ch))
	case ';':
		tok = l.makeToken(token.SEMICOLON, string(l.ch))
	case ':':
		tok = l.makeToken(token.COLON, string(l.ch))
	case '.':
		tok = l.makeToken(token.DOT, string(l.ch))
	case '(':
		tok = l.makeToken(token.LPAREN, string(l.ch))
	case ')':
		tok = l.makeToken(token.RPAREN, string(l.ch))
	case '{':
		tok = l.makeToken(token.LBRACE, string(l.ch))
	case '}':
		tok = l.makeToken(token.RBRACE, string(l.ch))
	case '[':
		tok = l.makeToken(token.LBRACK, string(l.ch))
	case ']':
		tok = l.makeToken(token.RBRACK, string(l.ch))
	case '"':
		return l.readString()
	case 0:
		tok = l.makeToken(token.EOF, "")
	default:
		if isLetter(l.ch) {
			return l.readIdentifier()
		}
		if isDigit(l.ch) {
			return l.readNumber()
		}
		tok = l.makeToken(token.ILLEGAL, "lex/ill")
	}

	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '\n':
			l.line++
			l.char = 0
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.char++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) makeToken(tokenType token.TokenType, literal string) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Line: l.line,
		ChStart: l.char, ChEnd: l.char + len(literal), Source: l.source}
}

func (l *Lexer) makeTwoCharToken(tokenType token.TokenType) token.Token {
	ch := l.ch
	l.readChar()
	return l.makeToken(tokenType, string(ch)+string(l.ch))
}

func (l *Lexer) readIdentifier() token.Token {
	start := l.position
	chStart := l.char
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	literal := l.input[start:l.position]
	return token.Token{Type: token.LookupIdent(literal), Literal: literal, Line: l.line,
		ChStart: chStart, ChEnd: chStart + len(literal), Source: l.source}
}

func (l *Lexer) readNumber() token.Token {
	start := l.position
	chStart := l.char
	tokenType := token.TokenType(token.INT)
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		tokenType = token.FLOAT
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	literal := l.input[start:l.position]
	return token.Token{Type: tokenType, Literal: literal, Line: l.line,
		ChStart: chStart, ChEnd: chStart + len(literal), Source: l.source}
}

func (l *Lexer) readString() token.Token {
	chStart := l.char
	line := l.line
	result := ""
	l.readChar() // step over the opening quote
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return token.Token{Type: token.ILLEGAL, Literal: "lex/str/unterminated", Line: line,
				ChStart: chStart, ChEnd: l.char, Source: l.source}
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				result = result + "\n"
			case 't':
				result = result + "\t"
			case 'r':
				result = result + "\r"
			case '"':
				result = result + "\""
			case '\\':
				result = result + "\\"
			default:
				result = result + "\\" + string(l.ch)
			}
		} else {
			result = result + string(l.ch)
		}
		l.readChar()
	}
	l.readChar() // and the closing quote
	return token.Token{Type: token.STRING, Literal: result, Line: line,
		ChStart: chStart, ChEnd: l.char - 1, Source: l.source}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '$'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
