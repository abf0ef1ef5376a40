package completion

import (
	"strconv"
	"strings"
)

// EscapePath turns a raw candidate path into a token the shell's lexer will
// re-parse as a single literal.
//
// Glob metacharacters take the highest priority: a literal glob-looking
// filename must never be backtick-quoted, since backticks would leave its
// glob semantics live when re-typed.
func EscapePath(path string, dir bool) string {
	if strings.ContainsAny(path, "[*]?") {
		if strings.Contains(path, "'") {
			// Single quotes in the name force double quoting, which in
			// turn requires escaping embedded double quotes.
			return `"` + strings.ReplaceAll(path, `"`, `\"`) + `"`
		}
		return "'" + path + "'"
	}

	filenameContaminated := !dir && strings.ContainsAny(path, `'" #()`)
	dirnameContaminated := dir && strings.ContainsAny(path, `'" #`)
	maybeFlag := strings.HasPrefix(path, "-")
	_, err := strconv.ParseFloat(path, 64)
	maybeNumber := err == nil
	if filenameContaminated || dirnameContaminated || maybeFlag || maybeNumber {
		return "`" + path + "`"
	}
	return path
}
