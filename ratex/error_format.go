package ratex

import (
	"fmt"
	"strconv"
	"strings"
)

func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := strings.TrimRight(lines[pos.Line-1], "\r")
	lineRunes := []rune(lineText)

	column := max(pos.Column, 1)
	column = min(column, len(lineRunes)+1)

	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := strings.Repeat(" ", column-1)

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s^",
		pos.Line,
		column,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
	)
}

// attachSource fills in the source text used for code frames on every
// *Error reachable from err, including joined errors.
func attachSource(err error, source string) {
	switch typed := err.(type) {
	case *Error:
		if typed.Source == "" {
			typed.Source = source
		}
	case interface{ Unwrap() []error }:
		for _, inner := range typed.Unwrap() {
			attachSource(inner, source)
		}
	}
}
