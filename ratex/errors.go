package ratex

import (
	"fmt"
	"strings"
)

// ErrorKind classifies every failure the scanner, parser, resolver and
// interpreter can report. A kind is itself an error so callers can match
// with errors.Is(err, ratex.IncompatibleArity).
type ErrorKind int

const (
	// Lexical
	UnknownToken ErrorKind = iota + 1
	UnterminatedString
	UnterminatedBlockComment

	// Syntax
	UnexpectedToken
	ExpectedToken

	// Resolution
	RedeclareLocalVariable
	InvalidReturnLocation
	SelfReferencingInitializer

	// Runtime
	UndefinedIdentifier
	InvalidAssignment
	InvalidLogicalOperation
	InvalidFunctionCall
	IncompatibleArity
	AccessUnknownField
	NonInstanceSet
	InvalidOperands
	RecursionLimitExceeded
)

var errorKindNames = map[ErrorKind]string{
	UnknownToken:               "UnknownToken",
	UnterminatedString:         "UnterminatedString",
	UnterminatedBlockComment:   "UnterminatedBlockComment",
	UnexpectedToken:            "UnexpectedToken",
	ExpectedToken:              "ExpectedToken",
	RedeclareLocalVariable:     "RedeclareLocalVariable",
	InvalidReturnLocation:      "InvalidReturnLocation",
	SelfReferencingInitializer: "SelfReferencingInitializer",
	UndefinedIdentifier:        "UndefinedIdentifier",
	InvalidAssignment:          "InvalidAssignment",
	InvalidLogicalOperation:    "InvalidLogicalOperation",
	InvalidFunctionCall:        "InvalidFunctionCall",
	IncompatibleArity:          "IncompatibleArity",
	AccessUnknownField:         "AccessUnknownField",
	NonInstanceSet:             "NonInstanceSet",
	InvalidOperands:            "InvalidOperands",
	RecursionLimitExceeded:     "RecursionLimitExceeded",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) Error() string { return k.String() }

// Phase reports which stage of the pipeline raises errors of this kind.
func (k ErrorKind) Phase() string {
	switch {
	case k <= UnterminatedBlockComment:
		return "lex"
	case k <= ExpectedToken || k == InvalidAssignment:
		return "parse"
	case k <= SelfReferencingInitializer:
		return "resolve"
	default:
		return "runtime"
	}
}

// StackFrame names one active function call at the time a runtime error was raised.
type StackFrame struct {
	Function string
	Pos      Position
}

// Error is the single error type produced by this package.
type Error struct {
	Kind    ErrorKind
	Pos     Position
	Message string
	Frames  []StackFrame
	Source  string

	incomplete bool
}

const (
	errorFrameHead = 8
	errorFrameTail = 8
)

func newError(kind ErrorKind, pos Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Phase())
	b.WriteString(" error")
	if e.Pos.Line > 0 {
		fmt.Fprintf(&b, " at %d:%d", e.Pos.Line, e.Pos.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if frame := formatCodeFrame(e.Source, e.Pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}

	renderFrame := func(frame StackFrame) {
		if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (%d:%d)", frame.Function, frame.Pos.Line, frame.Pos.Column)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Function)
		}
	}
	if len(e.Frames) <= errorFrameHead+errorFrameTail {
		for _, frame := range e.Frames {
			renderFrame(frame)
		}
		return b.String()
	}
	for _, frame := range e.Frames[:errorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(e.Frames) - (errorFrameHead + errorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range e.Frames[len(e.Frames)-errorFrameTail:] {
		renderFrame(frame)
	}
	return b.String()
}

// Is matches an ErrorKind target.
func (e *Error) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == e.Kind
}
