package ratex

import (
	"fmt"
	"strings"
)

func (p *parser) errorExpected(tok Token, expected string) {
	p.addTokenError(ExpectedToken, tok, fmt.Sprintf("expected %s, got %s", expected, tokenLabel(tok.Type)))
}

func (p *parser) errorUnexpected(tok Token) {
	p.addTokenError(UnexpectedToken, tok, fmt.Sprintf("unexpected token %s", tokenLabel(tok.Type)))
}

// addTokenError marks errors raised at end of input as incomplete so an
// interactive reader can ask for more lines.
func (p *parser) addTokenError(kind ErrorKind, tok Token, msg string) {
	p.errors = append(p.errors, &Error{Kind: kind, Pos: tok.Pos, Message: msg, incomplete: tok.Type == tokenEOF})
}

func (p *parser) addParseError(kind ErrorKind, pos Position, msg string) {
	p.errors = append(p.errors, &Error{Kind: kind, Pos: pos, Message: msg})
}

// IsIncomplete reports whether err only describes input that ended too
// early, such as an unclosed block or string.
func IsIncomplete(err error) bool {
	if err == nil {
		return false
	}
	switch typed := err.(type) {
	case *Error:
		return typed.incomplete
	case interface{ Unwrap() []error }:
		inner := typed.Unwrap()
		if len(inner) == 0 {
			return false
		}
		for _, e := range inner {
			if !IsIncomplete(e) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func tokenLabel(tt TokenType) string {
	switch tt {
	case tokenIllegal:
		return "invalid token"
	case tokenEOF:
		return "end of input"
	case tokenIdent:
		return "identifier"
	case tokenNumber:
		return "number"
	case tokenString:
		return "string"
	default:
		if _, ok := keywords[strings.ToLower(string(tt))]; ok {
			return fmt.Sprintf("'%s'", strings.ToLower(string(tt)))
		}
		return fmt.Sprintf("%q", string(tt))
	}
}
