package loader

import (
	"go/token"
	"strings"

	"github.com/seitarof/gen-derive/syntax"
)

// commentAnnotations returns one annotation per comment line that starts
// with "@", e.g. `// @derive(skip)`. pos is the position of the comment
// opening.
func commentAnnotations(text string, pos token.Position) []syntax.Attribute {
	var body string
	switch {
	case strings.HasPrefix(text, "//"):
		body = text[2:]
	case strings.HasPrefix(text, "/*"):
		body = strings.TrimSuffix(text[2:], "*/")
	default:
		return nil
	}

	var out []syntax.Attribute
	for i, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimLeft(line, " \t*")
		if !strings.HasPrefix(trimmed, "@") {
			continue
		}
		lead := len(line) - len(trimmed) + 1
		p := pos
		if i == 0 {
			p.Column += 2 + lead
		} else {
			p.Line += i
			p.Column = lead + 1
		}
		out = append(out, syntax.Attribute{
			Text: strings.TrimRight(trimmed[1:], " \t\r"),
			Pos:  p,
		})
	}
	return out
}
