package completion

import (
	"go.uber.org/zap"

	"github.com/marlinshell/marlin/internal/environment"
	"github.com/marlinshell/marlin/internal/shell"
	"github.com/marlinshell/marlin/internal/styles"
)

// defaultMaxExternalResults caps the PATH executable scan when the host
// does not configure a limit.
const defaultMaxExternalResults = 100

// EngineOptions configures a completion Engine.
type EngineOptions struct {
	// Completion is the matching configuration snapshot.
	Completion Options
	// Styler resolves display styles for path suggestions. May be nil.
	Styler styles.PathStyler
	// ExternalCompletion enables scanning PATH for executables.
	ExternalCompletion bool
	// MaxExternalResults caps the PATH scan. Zero means the default cap.
	MaxExternalResults int
	// Logger receives debug-level query logging. May be nil.
	Logger *zap.Logger
}

// Engine routes a completion request at a cursor position to the right
// completion source. It holds only read-only views; every query is
// self-contained and queries are serialized by the host.
type Engine struct {
	commands *shell.CommandTable
	env      environment.Environment
	opts     EngineOptions
}

// NewEngine creates an Engine over the given command table and environment
// snapshot.
func NewEngine(commands *shell.CommandTable, env environment.Environment, opts EngineOptions) *Engine {
	if opts.MaxExternalResults <= 0 {
		opts.MaxExternalResults = defaultMaxExternalResults
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Engine{
		commands: commands,
		env:      env,
		opts:     opts,
	}
}

// Complete returns ranked suggestions for the input line at the given
// cursor byte offset.
func (e *Engine) Complete(line string, pos int) []Suggestion {
	if pos < 0 {
		pos = 0
	}
	if pos > len(line) {
		pos = len(line)
	}
	if len(line) == 0 {
		return nil
	}
	src := []byte(line)

	flattened := shell.Flatten(src, e.commands)
	ctx := &Context{
		Commands:           e.commands,
		Env:                e.env,
		Styler:             e.opts.Styler,
		Source:             src,
		FileContents:       [][]byte{src},
		MaxExternalResults: e.opts.MaxExternalResults,
		ExternalCompletion: e.opts.ExternalCompletion,
		Logger:             e.opts.Logger,
	}

	span, shape, _ := tokenAt(flattened, pos)
	prefix := ctx.SpanContents(shell.NewSpan(span.Start, pos))

	e.opts.Logger.Debug(
		"completion query",
		zap.Int("pos", pos),
		zap.String("prefix", string(prefix)),
		zap.String("shape", shape.String()),
	)

	// The command completer decides for itself whether the cursor sits at a
	// completable command position (including multi-word subcommands); when
	// it yields nothing, fall back to path completion.
	force := isPassthroughCommand(ctx.FileContents)
	completer := NewCommandCompleter(flattened, shape, force)
	if suggestions := completer.Fetch(ctx, prefix, span, 0, pos, e.opts.Completion); len(suggestions) > 0 {
		return suggestions
	}

	return NewFileCompleter().Fetch(ctx, prefix, span, 0, pos, e.opts.Completion)
}

// tokenAt locates the flattened token containing the cursor. When the
// cursor sits in a gap between tokens, it returns an empty span at the
// cursor and reports inToken false.
func tokenAt(flattened []shell.FlatToken, pos int) (shell.Span, shell.FlatShape, bool) {
	for i := len(flattened) - 1; i >= 0; i-- {
		token := flattened[i]
		if token.Span.Start < pos && pos <= token.Span.End {
			return token.Span, token.Shape, true
		}
	}
	return shell.NewSpan(pos, pos), shell.ShapeExternal, false
}
