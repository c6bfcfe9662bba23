package ratex

import "strings"

const formatIndent = "  "

type lineLayout struct {
	hasToken      bool
	leadingDone   bool
	leadingCloses int
	opens         int
	closes        int
	// inside a multi-line string: left untouched
	verbatim bool
	// a string continues past the end of the line
	keepTrailing bool
}

// Format re-indents source by brace depth, strips trailing whitespace,
// normalizes line endings and ends the text with one newline. Source that
// does not parse is returned unchanged with the parse error.
func Format(source string) (string, error) {
	if _, err := Parse(source); err != nil {
		return source, err
	}

	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	lines := strings.Split(normalized, "\n")
	layout := layoutLines(normalized, len(lines))

	depth := 0
	for i, line := range lines {
		info := layout[i]
		switch {
		case info.verbatim:
		case info.keepTrailing:
			lines[i] = indentLine(strings.TrimLeft(line, " \t"), depth-info.leadingCloses)
		default:
			lines[i] = formatLine(line, info, depth)
		}
		depth += info.opens - info.closes
	}

	joined := strings.Join(lines, "\n")
	joined = strings.TrimRight(joined, "\n")
	return joined + "\n", nil
}

func formatLine(line string, info lineLayout, depth int) string {
	content := strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(content, " \t")
	if trimmed == "" {
		return ""
	}
	// Lines with no token that are not comment openers continue a block
	// comment and keep their own indentation.
	if !info.hasToken && !strings.HasPrefix(trimmed, "//") && !strings.HasPrefix(trimmed, "/*") {
		return content
	}
	return indentLine(trimmed, depth-info.leadingCloses)
}

func indentLine(content string, depth int) string {
	return strings.Repeat(formatIndent, max(depth, 0)) + content
}

// layoutLines records, per line, the braces that change the indentation
// depth and the lines covered by multi-line strings.
func layoutLines(source string, count int) []lineLayout {
	layout := make([]lineLayout, count)
	tokens, _ := Scan(source)
	for _, tok := range tokens {
		if tok.Type == tokenEOF {
			break
		}
		idx := tok.Pos.Line - 1
		if idx < 0 || idx >= count {
			continue
		}
		info := &layout[idx]
		info.hasToken = true
		if tok.Type == tokenRBrace && !info.leadingDone {
			info.leadingCloses++
		} else {
			info.leadingDone = true
		}
		switch tok.Type {
		case tokenLBrace:
			info.opens++
		case tokenRBrace:
			info.closes++
		case tokenString:
			span := strings.Count(tok.Literal, "\n")
			for i := idx; i < idx+span && i < count; i++ {
				layout[i].keepTrailing = true
				if i > idx {
					layout[i].verbatim = true
				}
			}
			if end := idx + span; span > 0 && end < count {
				layout[end].verbatim = true
			}
		}
	}
	return layout
}
