package ratex

import (
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch rune

	errors []error
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

// Scan converts source text into a token stream terminated by an EOF token.
// Lexical errors are reported per offending token; scanning always runs to
// the end of the input.
func Scan(source string) ([]Token, []error) {
	l := newLexer(source)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == tokenIllegal {
			continue
		}
		tokens = append(tokens, tok)
		if tok.Type == tokenEOF {
			return tokens, l.errors
		}
	}
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	l.ch = r
}

func (l *lexer) atEnd() bool {
	return l.ch == 0 && l.width == 0
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

// NextToken returns the next token. Offending input yields an ILLEGAL token
// after the matching error has been recorded.
func (l *lexer) NextToken() Token {
	if !l.skipWhitespaceAndComments() {
		return Token{Type: tokenIllegal, Pos: Position{Line: l.line, Column: l.column}}
	}

	tok := Token{Pos: Position{Line: l.line, Column: l.column}}

	if l.atEnd() {
		tok.Type = tokenEOF
		return tok
	}

	switch l.ch {
	case '(':
		tok = l.single(tokenLParen)
	case ')':
		tok = l.single(tokenRParen)
	case '{':
		tok = l.single(tokenLBrace)
	case '}':
		tok = l.single(tokenRBrace)
	case ',':
		tok = l.single(tokenComma)
	case '.':
		tok = l.single(tokenDot)
	case '-':
		tok = l.single(tokenMinus)
	case '+':
		tok = l.single(tokenPlus)
	case ';':
		tok = l.single(tokenSemicolon)
	case '*':
		tok = l.single(tokenAsterisk)
	case '/':
		tok = l.single(tokenSlash)
	case '!':
		tok = l.oneOrTwo(tokenBang, tokenNotEQ)
	case '=':
		tok = l.oneOrTwo(tokenAssign, tokenEQ)
	case '>':
		tok = l.oneOrTwo(tokenGT, tokenGTE)
	case '<':
		tok = l.oneOrTwo(tokenLT, tokenLTE)
	case '"':
		literal, ok := l.readString()
		if !ok {
			tok.Type = tokenIllegal
			err := newError(UnterminatedString, tok.Pos, "unterminated string: %q", literal)
			err.incomplete = true
			l.errors = append(l.errors, err)
			return tok
		}
		tok.Type = tokenString
		tok.Literal = literal
	default:
		switch {
		case isIdentifierStart(l.ch):
			literal := l.readIdentifier()
			tok.Type = lookupIdent(literal)
			tok.Literal = literal
		case isDigit(l.ch):
			tok.Type = tokenNumber
			tok.Literal = l.readNumber()
		default:
			tok.Type = tokenIllegal
			tok.Literal = string(l.ch)
			l.errors = append(l.errors, newError(UnknownToken, tok.Pos, "unknown token on line %d: %s", tok.Pos.Line, tok.Literal))
			l.readRune()
		}
	}

	return tok
}

func (l *lexer) single(tt TokenType) Token {
	tok := Token{Type: tt, Literal: string(tt), Pos: Position{Line: l.line, Column: l.column}}
	l.readRune()
	return tok
}

func (l *lexer) oneOrTwo(one, two TokenType) Token {
	if l.peekRune() == '=' {
		pos := Position{Line: l.line, Column: l.column}
		l.readRune()
		l.readRune()
		return Token{Type: two, Literal: string(two), Pos: pos}
	}
	return l.single(one)
}

// skipWhitespaceAndComments reports false when an unterminated block
// comment swallowed the rest of the input.
func (l *lexer) skipWhitespaceAndComments() bool {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readRune()
		case l.ch == '/' && l.peekRune() == '/':
			for !l.atEnd() && l.ch != '\n' {
				l.readRune()
			}
		case l.ch == '/' && l.peekRune() == '*':
			if !l.skipBlockComment() {
				return false
			}
		default:
			return true
		}
	}
}

func (l *lexer) skipBlockComment() bool {
	pos := Position{Line: l.line, Column: l.column}
	start := l.offset - l.width
	l.readRune()
	l.readRune()
	for !l.atEnd() {
		if l.ch == '*' && l.peekRune() == '/' {
			l.readRune()
			l.readRune()
			return true
		}
		l.readRune()
	}
	err := newError(UnterminatedBlockComment, pos, "unterminated block comment: %s", l.input[start:])
	err.incomplete = true
	l.errors = append(l.errors, err)
	return false
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) readIdentifier() string {
	start := l.currentOffset()
	for isIdentifierRune(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

// readNumber consumes digits with an optional fractional part. A dot that is
// not followed by a digit is left for the next token.
func (l *lexer) readNumber() string {
	start := l.currentOffset()
	for isDigit(l.peekRune()) {
		l.readRune()
	}
	if l.peekRune() == '.' && l.offset+1 < len(l.input) && isDigit(rune(l.input[l.offset+1])) {
		l.readRune()
		for isDigit(l.peekRune()) {
			l.readRune()
		}
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

// readString returns the raw contents between the quotes; strings may span
// lines and carry no escape sequences.
func (l *lexer) readString() (string, bool) {
	start := l.offset
	for {
		l.readRune()
		if l.atEnd() {
			return l.input[start:], false
		}
		if l.ch == '"' {
			literal := l.input[start:l.currentOffset()]
			l.readRune()
			return literal, true
		}
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
