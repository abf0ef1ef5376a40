package completion

import (
	"github.com/samber/lo"

	"github.com/marlinshell/marlin/internal/shell"
)

// DirectoryCompleter restricts path completion to directories, for commands
// that only accept a directory argument.
type DirectoryCompleter struct{}

// NewDirectoryCompleter creates a DirectoryCompleter.
func NewDirectoryCompleter() *DirectoryCompleter {
	return &DirectoryCompleter{}
}

var _ Completer = (*DirectoryCompleter)(nil)

// Fetch implements Completer.
func (d *DirectoryCompleter) Fetch(ctx *Context, prefix []byte, span shell.Span, offset, pos int, options Options) []Suggestion {
	view := adjustIfIntermediate(prefix, ctx, span)

	entries := CompleteItem(true, view.span, view.prefix, []string{ctx.Env.Cwd()}, options, ctx.Env, ctx.Styler)
	items := lo.Map(entries, func(entry PathEntry, _ int) Suggestion {
		return Suggestion{
			Value: entry.Value,
			Style: entry.Style,
			Span:  shell.NewSpan(entry.Span.Start-offset, entry.Span.End-offset),
			Kind:  KindDirectory,
		}
	})

	return partitionHidden(items)
}
