package completion

import (
	"go.uber.org/zap"

	"github.com/marlinshell/marlin/internal/environment"
	"github.com/marlinshell/marlin/internal/shell"
	"github.com/marlinshell/marlin/internal/styles"
)

// Completer is implemented by each completion source. prefix is the raw
// typed partial text (possibly invalid UTF-8 at arbitrary offsets), span the
// byte range it occupies in the source buffer, offset the adjustment into
// the caller's display coordinates, and pos the cursor byte offset.
type Completer interface {
	Fetch(ctx *Context, prefix []byte, span shell.Span, offset, pos int, options Options) []Suggestion
}

// Context carries the read-only collaborator views for a single completion
// query. Nothing in it is mutated by the core; all intermediate query state
// lives in the completers and is discarded on return.
type Context struct {
	// Commands is the shell's command table.
	Commands *shell.CommandTable
	// Env is the resolved environment snapshot.
	Env environment.Environment
	// Styler resolves display styles for path candidates. May be nil.
	Styler styles.PathStyler
	// Source is the buffer being completed; spans index into it.
	Source []byte
	// FileContents holds the raw source buffers currently loaded. The
	// passthrough heuristic needs raw text including whitespace the
	// tokenizer discards.
	FileContents [][]byte
	// MaxExternalResults caps the PATH executable scan.
	MaxExternalResults int
	// ExternalCompletion enables the PATH executable scan.
	ExternalCompletion bool
	// Logger receives debug-level query logging. May be nil.
	Logger *zap.Logger
}

// SpanContents returns the bytes of Source covered by span, clamped to the
// buffer bounds.
func (c *Context) SpanContents(span shell.Span) []byte {
	start, end := span.Start, span.End
	if start < 0 {
		start = 0
	}
	if end > len(c.Source) {
		end = len(c.Source)
	}
	if start >= end {
		return nil
	}
	return c.Source[start:end]
}

func (c *Context) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
