package completion

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/marlinshell/marlin/internal/shell"
)

const (
	// scriptExt is the extension of marlin module scripts.
	scriptExt = ".mln"
	// moduleFile marks a directory as an importable directory module.
	moduleFile = "mod.mln"
	// libDirsVar names the environment variable listing extra script
	// search roots.
	libDirsVar = "MARLIN_LIB_DIRS"
)

// ScriptCompleter completes marlin module scripts for source/use arguments:
// .mln files, directories to descend into, and directory modules.
type ScriptCompleter struct{}

// NewScriptCompleter creates a ScriptCompleter.
func NewScriptCompleter() *ScriptCompleter {
	return &ScriptCompleter{}
}

var _ Completer = (*ScriptCompleter)(nil)

// Fetch implements Completer.
func (s *ScriptCompleter) Fetch(ctx *Context, prefix []byte, span shell.Span, offset, pos int, options Options) []Suggestion {
	prefixStr := strings.ReplaceAll(lossyString(prefix), "`", "")

	base, partial := ".", prefixStr
	if idx := strings.LastIndexFunc(prefixStr, isSeparatorRune); idx >= 0 {
		base, partial = prefixStr[:idx], prefixStr[idx+1:]
	}
	if base == "" {
		base = string(filepath.Separator)
	}

	var searchDirs []string
	isCurrentFolder := base == "."
	if isCurrentFolder {
		// Bare word: search the cwd plus the configured lib dirs.
		searchDirs = append(searchDirs, ctx.Env.Cwd())
		if libDirs, ok := ctx.Env.LookupEnv(libDirsVar); ok {
			for _, dir := range filepath.SplitList(libDirs) {
				if dir != "" {
					searchDirs = append(searchDirs, dir)
				}
			}
		}
	} else {
		searchDirs = append(searchDirs, ctx.Env.Cwd())
		// Put the base dir back into the partial so the span replacement
		// covers the whole typed path.
		partial = base + string(filepath.Separator) + partial
	}

	entries := CompleteItem(false, span, partial, searchDirs, options, ctx.Env, ctx.Styler)
	entries = lo.Filter(entries, func(entry PathEntry, _ int) bool {
		if !isCurrentFolder {
			return strings.HasSuffix(entry.Value, scriptExt) || endsWithSeparator(entry.Value)
		}
		if endsWithSeparator(entry.Value) {
			// Lib dir search keeps only directory modules.
			_, err := os.Stat(filepath.Join(entry.Root, entry.Value, moduleFile))
			return err == nil
		}
		return strings.HasSuffix(entry.Value, scriptExt)
	})

	items := lo.Map(entries, func(entry PathEntry, _ int) Suggestion {
		return Suggestion{
			Value:            entry.Value,
			Style:            entry.Style,
			Span:             shell.NewSpan(entry.Span.Start-offset, entry.Span.End-offset),
			AppendWhitespace: true,
			Kind:             KindScript,
		}
	})
	return sortSuggestionsAscending(items)
}
