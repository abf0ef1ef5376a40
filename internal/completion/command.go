package completion

import (
	"bytes"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/marlinshell/marlin/internal/shell"
)

// CommandCompleter resolves command-name completions: internal commands from
// the command table merged with executables discovered on PATH, plus
// multi-word subcommand detection over the flattened token stream.
type CommandCompleter struct {
	flattened                 []shell.FlatToken
	flatShape                 shell.FlatShape
	forceCompletionAfterSpace bool
}

// NewCommandCompleter creates a command completer over the given token
// stream. flatShape is the shape of the token under the cursor.
func NewCommandCompleter(flattened []shell.FlatToken, flatShape shell.FlatShape, forceCompletionAfterSpace bool) *CommandCompleter {
	return &CommandCompleter{
		flattened:                 flattened,
		flatShape:                 flatShape,
		forceCompletionAfterSpace: forceCompletionAfterSpace,
	}
}

var _ Completer = (*CommandCompleter)(nil)

// completeCommands matches the span contents against every known internal
// command, then optionally against external executables.
func (c *CommandCompleter) completeCommands(ctx *Context, span shell.Span, offset int, findExternals bool, options Options) []Suggestion {
	partial := ctx.SpanContents(span)
	suggSpan := shell.NewSpan(span.Start-offset, span.End-offset)

	matcher := NewMatcher[Suggestion](lossyString(partial), options, true)
	matchedInternal := make(map[string]struct{})

	for _, cmd := range ctx.Commands.FindByPredicate(nil, true) {
		added := matcher.Add(cmd.Name, Suggestion{
			Value:            cmd.Name,
			Description:      cmd.Description,
			Span:             suggSpan,
			AppendWhitespace: true,
			Kind:             CommandKind(cmd.Category),
		})
		if added {
			matchedInternal[cmd.Name] = struct{}{}
		}
	}

	if findExternals {
		c.externalCommandCompletion(ctx, suggSpan, matchedInternal, matcher)
	}

	return matcher.Results()
}

// externalCommandCompletion scans the PATH directories for executables.
// Names are deduplicated within and across directories; a name that
// collides with a matched internal command is prefixed with "^" so the user
// can run the external instead of the builtin. The scan stops entirely once
// the configured result cap is reached.
func (c *CommandCompleter) externalCommandCompletion(ctx *Context, suggSpan shell.Span, matchedInternal map[string]struct{}, matcher *Matcher[Suggestion]) {
	executables := make(map[string]struct{})

	for _, dir := range ctx.Env.PathDirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, item := range entries {
			if ctx.MaxExternalResults <= len(executables) {
				ctx.logger().Debug(
					"external completion scan hit result cap",
					zap.Int("max", ctx.MaxExternalResults),
				)
				return
			}
			name := item.Name()
			if _, seen := executables[name]; seen {
				continue
			}
			if !isExecutable(filepath.Join(dir, name)) {
				continue
			}
			value := name
			if _, collides := matchedInternal[name]; collides {
				value = "^" + name
			}
			added := matcher.Add(value, Suggestion{
				Value:            value,
				Span:             suggSpan,
				AppendWhitespace: true,
				Kind:             KindExternalCommand,
			})
			if added {
				executables[name] = struct{}{}
			}
		}
	}
}

// isExecutable reports whether path is a regular file with an execute
// permission bit set.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode()&0111 != 0
}

// commandShape reports whether a token shape can belong to a yet-to-be
// completed subcommand.
func commandShape(shape shell.FlatShape) bool {
	switch shape {
	case shell.ShapeInternalCall, shell.ShapeExternal, shell.ShapeExternalArg, shell.ShapeLiteral, shell.ShapeString:
		return true
	default:
		return false
	}
}

// Fetch implements Completer. It first tries completion over a possible
// multi-word subcommand span (e.g. "git check" completing to "git
// checkout"), then falls back to completing the current token, searching
// externals only in the fallback.
func (c *CommandCompleter) Fetch(ctx *Context, prefix []byte, span shell.Span, offset, pos int, options Options) []Suggestion {
	// Scan backward from the cursor for the longest trailing run of
	// command-ish tokens; the earliest token of that run starts the
	// candidate subcommand span.
	earliest := -1
	for i := len(c.flattened) - 1; i >= 0; i-- {
		token := c.flattened[i]
		if token.Span.End > pos {
			continue
		}
		if !commandShape(token.Shape) {
			break
		}
		earliest = i
	}

	if earliest >= 0 {
		subcommands := c.completeCommands(ctx, shell.NewSpan(c.flattened[earliest].Span.Start, pos), offset, false, options)
		if len(subcommands) > 0 {
			return subcommands
		}
	}

	inGapOrAtCommand := c.flatShape == shell.ShapeExternal ||
		c.flatShape == shell.ShapeInternalCall ||
		span.Len() == 0 ||
		isPassthroughCommand(ctx.FileContents)
	if !inGapOrAtCommand {
		return nil
	}
	if len(ctx.SpanContents(span)) == 0 && !c.forceCompletionAfterSpace {
		return nil
	}
	return c.completeCommands(ctx, span, offset, ctx.ExternalCompletion, options)
}

// findNonWhitespaceIndex returns the index of the first non-whitespace byte
// at or after start.
func findNonWhitespaceIndex(contents []byte, start int) int {
	if start > len(contents) {
		return start
	}
	for i, b := range contents[start:] {
		if !asciiSpace(b) {
			return start + i
		}
	}
	return len(contents)
}

func asciiSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\v' || b == '\f' || b == '\r'
}

// isPassthroughCommand reports whether any loaded source buffer ends in a
// privilege-escalation passthrough segment: the text after the last pipe
// begins with "sudo " or "doas ". This is evaluated on raw buffers because
// it must see whitespace the tokenizer discards.
func isPassthroughCommand(fileContents [][]byte) bool {
	for _, contents := range fileContents {
		lastPipePos := 0
		if idx := bytes.LastIndexByte(contents, '|'); idx >= 0 {
			lastPipePos = idx + 1
		}

		cur := findNonWhitespaceIndex(contents, lastPipePos)
		if cur > len(contents) {
			continue
		}
		rest := contents[cur:]
		if bytes.HasPrefix(rest, []byte("sudo ")) || bytes.HasPrefix(rest, []byte("doas ")) {
			return true
		}
	}
	return false
}
