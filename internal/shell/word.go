package shell

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

var printer = syntax.NewPrinter(syntax.Minify(true))

// wordText flattens a word to its literal text with quotes resolved.
// Expansions that only the runtime can resolve ($(…), ${…}, $((…))) are kept
// as their source text; the commands inside substitutions are still collected
// separately by the tree walk, so nothing hides behind them.
func wordText(w *syntax.Word) string {
	if w == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range w.Parts {
		sb.WriteString(partText(part))
	}
	return sb.String()
}

func partText(part syntax.WordPart) string {
	switch p := part.(type) {
	case *syntax.Lit:
		return unescapeLit(p.Value)
	case *syntax.SglQuoted:
		return p.Value
	case *syntax.DblQuoted:
		var sb strings.Builder
		for _, inner := range p.Parts {
			sb.WriteString(partText(inner))
		}
		return sb.String()
	default:
		// Param/command/process substitutions and arithmetic: source text.
		var sb strings.Builder
		if err := printer.Print(&sb, part); err != nil {
			return ""
		}
		return sb.String()
	}
}

// unescapeLit resolves backslash escapes in an unquoted literal, so that
// `\;` becomes `;` and `a\ b` becomes `a b`, matching what the shell would
// hand to the program.
func unescapeLit(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var sb strings.Builder
	escaped := false
	for _, r := range s {
		if escaped {
			sb.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		sb.WriteRune(r)
	}
	if escaped {
		sb.WriteRune('\\')
	}
	return sb.String()
}
