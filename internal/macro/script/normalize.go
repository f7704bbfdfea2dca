package script

import "strings"

// indentUnit is the canonical loop body indentation.
const indentUnit = "  "

// isInBlock reports whether a raw line belongs to a loop body.
func isInBlock(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}

// NormalizeLine returns the canonical form of a single line: the command
// token uppercased, tokens joined by single spaces, and in-block lines
// prefixed by exactly two spaces. It returns ErrEmptyLine if the line has
// no tokens.
func NormalizeLine(line string) (string, error) {
	inBlock := isInBlock(line)
	if inBlock {
		line = strings.ReplaceAll(line, "\t", indentUnit)
	}

	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return "", ErrEmptyLine
	}
	tokens[0] = strings.ToUpper(tokens[0])

	out := strings.Join(tokens, " ")
	if inBlock {
		out = indentUnit + out
	}
	return out, nil
}

// Normalize converts raw script lines to canonical lines, one for one.
// Applying Normalize to its own output returns the same lines.
func Normalize(lines []string) ([]string, error) {
	out := make([]string, len(lines))
	for i, line := range lines {
		norm, err := NormalizeLine(line)
		if err != nil {
			return nil, syntaxErr(i+1, line, err, "no command token")
		}
		out[i] = norm
	}
	return out, nil
}
