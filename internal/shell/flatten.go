package shell

import (
	"bytes"
	"sort"

	"mvdan.cc/sh/v3/syntax"
)

// Span is a byte-offset range into a source buffer. Start is inclusive,
// End is exclusive.
type Span struct {
	Start int
	End   int
}

// NewSpan creates a span from start and end byte offsets.
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// FlatShape tags how a region of source text was classified by the parser.
type FlatShape int

const (
	// ShapeInternalCall marks a command word resolved against the command table.
	ShapeInternalCall FlatShape = iota
	// ShapeExternal marks a command word not found in the command table.
	ShapeExternal
	// ShapeExternalArg marks an argument to an external command.
	ShapeExternalArg
	// ShapeLiteral marks a bare word argument to an internal command.
	ShapeLiteral
	// ShapeString marks a quoted word.
	ShapeString
	// ShapeVariable marks a parameter expansion.
	ShapeVariable
)

// String returns the string representation of the flat shape.
func (s FlatShape) String() string {
	switch s {
	case ShapeInternalCall:
		return "internal-call"
	case ShapeExternal:
		return "external"
	case ShapeExternalArg:
		return "external-arg"
	case ShapeLiteral:
		return "literal"
	case ShapeString:
		return "string"
	case ShapeVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// FlatToken is a parser-produced (span, shape) record. The completion core
// only uses it to locate command and subcommand boundaries.
type FlatToken struct {
	Span  Span
	Shape FlatShape
}

// Flatten parses src as a shell line and returns its words as an ordered
// flat token stream. Lines this parser cannot handle (typically half-typed
// quotes) fall back to a whitespace scan so completion keeps working while
// the user is mid-word.
func Flatten(src []byte, table *CommandTable) []FlatToken {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(bytes.NewReader(src), "")
	if err != nil {
		return flattenFields(src, table)
	}

	var tokens []FlatToken
	syntax.Walk(file, func(node syntax.Node) bool {
		call, ok := node.(*syntax.CallExpr)
		if !ok {
			return true
		}
		cmdShape := ShapeExternal
		for i, word := range call.Args {
			span := NewSpan(int(word.Pos().Offset()), int(word.End().Offset()))
			shape := classifyWord(word, src, span, i == 0, cmdShape, table)
			if i == 0 && (shape == ShapeInternalCall || shape == ShapeExternal) {
				cmdShape = shape
			}
			tokens = append(tokens, FlatToken{Span: span, Shape: shape})
		}
		return true
	})

	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].Span.Start < tokens[j].Span.Start
	})
	return tokens
}

func classifyWord(word *syntax.Word, src []byte, span Span, isCommand bool, cmdShape FlatShape, table *CommandTable) FlatShape {
	if len(word.Parts) > 0 {
		switch word.Parts[0].(type) {
		case *syntax.SglQuoted, *syntax.DblQuoted:
			if !isCommand {
				return ShapeString
			}
		case *syntax.ParamExp:
			return ShapeVariable
		}
	}

	if isCommand {
		name := string(src[span.Start:span.End])
		if table.Contains(name) {
			return ShapeInternalCall
		}
		return ShapeExternal
	}
	if cmdShape == ShapeInternalCall {
		return ShapeLiteral
	}
	return ShapeExternalArg
}

// flattenFields is the fallback tokenizer for unparseable partial lines.
// It splits on unquoted whitespace and restarts command position after
// pipe and separator operators.
func flattenFields(src []byte, table *CommandTable) []FlatToken {
	var tokens []FlatToken
	i := 0
	commandPos := true
	cmdShape := ShapeExternal
	for i < len(src) {
		if isSpace(src[i]) {
			i++
			continue
		}
		if src[i] == '|' || src[i] == ';' || src[i] == '&' {
			commandPos = true
			i++
			continue
		}

		start := i
		var quote byte
		if src[i] == '\'' || src[i] == '"' || src[i] == '`' {
			quote = src[i]
			i++
			for i < len(src) && src[i] != quote {
				i++
			}
			if i < len(src) {
				i++
			}
		} else {
			for i < len(src) && !isSpace(src[i]) && src[i] != '|' && src[i] != ';' && src[i] != '&' {
				i++
			}
		}

		span := NewSpan(start, i)
		var shape FlatShape
		switch {
		case commandPos:
			if table.Contains(string(src[start:i])) {
				shape = ShapeInternalCall
			} else {
				shape = ShapeExternal
			}
			cmdShape = shape
			commandPos = false
		case quote != 0:
			shape = ShapeString
		case cmdShape == ShapeInternalCall:
			shape = ShapeLiteral
		default:
			shape = ShapeExternalArg
		}
		tokens = append(tokens, FlatToken{Span: span, Shape: shape})
	}
	return tokens
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
