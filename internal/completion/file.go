package completion

import (
	"github.com/samber/lo"

	"github.com/marlinshell/marlin/internal/shell"
)

// FileCompleter completes filesystem paths relative to the current working
// directory.
type FileCompleter struct{}

// NewFileCompleter creates a FileCompleter.
func NewFileCompleter() *FileCompleter {
	return &FileCompleter{}
}

var _ Completer = (*FileCompleter)(nil)

// Fetch implements Completer.
func (f *FileCompleter) Fetch(ctx *Context, prefix []byte, span shell.Span, offset, pos int, options Options) []Suggestion {
	view := adjustIfIntermediate(prefix, ctx, span)

	entries := CompleteItem(view.readjusted, view.span, view.prefix, []string{ctx.Env.Cwd()}, options, ctx.Env, ctx.Styler)
	items := lo.Map(entries, func(entry PathEntry, _ int) Suggestion {
		return Suggestion{
			Value: entry.Value,
			Style: entry.Style,
			Span:  shell.NewSpan(entry.Span.Start-offset, entry.Span.End-offset),
			Kind:  KindFile,
		}
	})

	// Hidden entries are never interleaved before non-hidden ones.
	return partitionHidden(items)
}
