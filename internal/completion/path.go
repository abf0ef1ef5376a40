package completion

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/marlinshell/marlin/internal/environment"
	"github.com/marlinshell/marlin/internal/shell"
	"github.com/marlinshell/marlin/internal/styles"
)

// builtPath is one partially-expanded candidate path during recursive
// expansion: a search root plus the components matched so far.
type builtPath struct {
	root  string
	parts []string
	isDir bool
}

// clone copies the candidate so sibling branches do not share the parts
// slice.
func (b builtPath) clone() builtPath {
	parts := make([]string, len(b.parts), len(b.parts)+1)
	copy(parts, b.parts)
	return builtPath{root: b.root, parts: parts, isDir: b.isDir}
}

// fsPath returns the real filesystem path of the candidate.
func (b builtPath) fsPath() string {
	return filepath.Join(append([]string{b.root}, b.parts...)...)
}

// completeRec expands candidate paths component by component.
//
// partial holds the remaining typed components; endsInSep records whether
// the typed text ended in a separator, which forces the final component to
// be treated as a directory to descend into.
func completeRec(partial []string, built []builtPath, options Options, wantDir, endsInSep bool) []builtPath {
	if len(partial) > 0 {
		base, rest := partial[0], partial[1:]
		// "." and ".." are never matched against directory contents;
		// they are forced into every in-progress candidate verbatim.
		if (base == "." || base == "..") && (endsInSep || len(rest) > 0) {
			next := make([]builtPath, 0, len(built))
			for _, b := range built {
				nb := b.clone()
				nb.parts = append(nb.parts, base)
				nb.isDir = true
				next = append(next, nb)
			}
			return completeRec(rest, next, options, wantDir, endsInSep)
		}
	}

	var prefix string
	if len(partial) > 0 {
		prefix = partial[0]
	}
	matcher := NewMatcher[builtPath](prefix, options, true)

	for _, b := range built {
		entries, err := os.ReadDir(b.fsPath())
		if err != nil {
			// Unreadable branch: permission denied, vanished, or not a
			// directory. Yields no matches, never an error.
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			nb := b.clone()
			nb.parts = append(nb.parts, name)
			nb.isDir = entryIsDir(b.fsPath(), entry)
			if !wantDir || nb.isDir {
				matcher.Add(name, nb)
			}
		}
	}

	sorted := matcher.Results()

	if len(partial) == 0 || (len(partial) == 1 && !endsInSep) {
		return sorted
	}
	rest := partial[1:]
	var out []builtPath
	for _, b := range sorted {
		out = append(out, completeRec(rest, []builtPath{b}, options, wantDir, endsInSep)...)
	}
	return out
}

// entryIsDir resolves whether a directory entry is a directory, following
// symlinks.
func entryIsDir(dir string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.IsDir()
}

// rootKind records which textual prefix form changed the search root, so
// the final output can re-prepend the same form.
type rootKind int

const (
	rootNone rootKind = iota
	rootHome
	rootLiteral
)

type rootPrefix struct {
	kind   rootKind
	prefix string
}

// apply reconstructs the display string for a finished candidate.
func (r rootPrefix) apply(parts []string, isDir bool) string {
	switch r.kind {
	case rootHome:
		parts = append([]string{"~"}, parts...)
	case rootLiteral:
		parts = append([]string{r.prefix}, parts...)
	}
	ret := strings.Join(parts, string(filepath.Separator))
	if isDir {
		ret += string(filepath.Separator)
	}
	return ret
}

// surroundRemove strips one layer of surrounding quote character from the
// typed text, handling a quote that wraps only the leading directory part
// (e.g. a quoted directory followed by unquoted remainder).
func surroundRemove(partial string) string {
	for _, c := range []string{"`", `"`, "'"} {
		if strings.HasPrefix(partial, c) {
			ret := strings.TrimPrefix(partial, c)
			switch parts := strings.Split(ret, c); len(parts) {
			case 1:
				return parts[0]
			case 2:
				if endsWithSeparator(parts[0]) {
					return parts[0] + parts[1]
				}
				return ret
			default:
				return ret
			}
		}
	}
	return partial
}

func endsWithSeparator(s string) bool {
	return len(s) > 0 && os.IsPathSeparator(s[len(s)-1])
}

func isSeparatorRune(r rune) bool {
	return r < utf8.RuneSelf && os.IsPathSeparator(byte(r))
}

// PathEntry is one result of the recursive path expansion: the matched
// search root, the shell-safe display value, and an optional display style.
type PathEntry struct {
	Span  shell.Span
	Root  string
	Value string
	Style *lipgloss.Style
}

// CompleteItem expands the typed partial path into matching path candidates.
// cwds are the candidate search roots; a drive prefix, root separator, or
// leading "~" in the partial overrides them. When wantDirectory is set,
// non-directory entries are discarded.
func CompleteItem(wantDirectory bool, span shell.Span, partial string, cwds []string, options Options, env environment.Environment, styler styles.PathStyler) []PathEntry {
	partial = surroundRemove(partial)
	endsInSep := endsWithSeparator(partial)

	searchRoots := make([]string, len(cwds))
	copy(searchRoots, cwds)
	prefixLen := 0
	root := rootPrefix{kind: rootNone}

	if vol := filepath.VolumeName(partial); vol != "" {
		searchRoots = []string{vol + string(filepath.Separator)}
		prefixLen = len(vol)
		root = rootPrefix{kind: rootLiteral, prefix: vol}
	} else if len(partial) > 0 && os.IsPathSeparator(partial[0]) {
		searchRoots = []string{string(filepath.Separator)}
		prefixLen = 1
		// Joining an empty literal prefix with the rest re-adds the
		// separator.
		root = rootPrefix{kind: rootLiteral, prefix: ""}
	} else if partial == "~" || (len(partial) > 1 && partial[0] == '~' && os.IsPathSeparator(partial[1])) {
		if home, ok := env.HomeDir(); ok {
			searchRoots = []string{home}
		}
		prefixLen = 1
		root = rootPrefix{kind: rootHome}
	}

	after := partial[prefixLen:]
	components := strings.FieldsFunc(after, isSeparatorRune)

	built := make([]builtPath, 0, len(searchRoots))
	for _, r := range searchRoots {
		built = append(built, builtPath{root: r})
	}

	results := completeRec(components, built, options, wantDirectory, endsInSep)

	entries := make([]PathEntry, 0, len(results))
	for _, b := range results {
		value := root.apply(b.parts, b.isDir)
		var style *lipgloss.Style
		if styler != nil {
			info, _ := os.Lstat(b.fsPath())
			style = styler.StyleForPath(value, info)
		}
		entries = append(entries, PathEntry{
			Span:  span,
			Root:  b.root,
			Value: EscapePath(value, wantDirectory),
			Style: style,
		})
	}
	return entries
}

// adjustView is the result of widening a completion request whose cursor
// sits in the middle of a path token.
type adjustView struct {
	prefix     string
	span       shell.Span
	readjusted bool
}

// adjustIfIntermediate extends the typed prefix with the remnant of the
// current path component after the cursor, so completing mid-token replaces
// the whole component rather than splitting it.
func adjustIfIntermediate(prefix []byte, ctx *Context, span shell.Span) adjustView {
	contents := ctx.SpanContents(span)

	readjusted := len(contents) > len(prefix)
	if readjusted {
		remnant := lossyString(contents[len(prefix):])
		if idx := strings.IndexFunc(remnant, isSeparatorRune); idx >= 0 {
			remnant = remnant[:idx]
		}
		p := lossyString(prefix) + remnant
		return adjustView{
			prefix:     p,
			span:       shell.NewSpan(span.Start, span.Start+len(prefix)+len(remnant)),
			readjusted: true,
		}
	}
	return adjustView{prefix: lossyString(prefix), span: span}
}
