package completion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlinshell/marlin/internal/environment"
	"github.com/marlinshell/marlin/internal/shell"
)

func writeExecutable(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0644))
	require.NoError(t, os.Chmod(path, 0755))
}

func TestCommandCompleter_InternalCommands(t *testing.T) {
	table := shell.NewCommandTable([]shell.Command{
		{Name: "echo", Description: "print arguments", Category: shell.CategoryBuiltin},
		{Name: "exit", Category: shell.CategoryBuiltin},
		{Name: "export", Category: shell.CategoryBuiltin},
		{Name: "hidden-run", Category: shell.CategoryBuiltin, Hidden: true},
	})
	ctx := &Context{
		Commands: table,
		Env:      &environment.Snapshot{},
		Source:   []byte("ex"),
	}

	completer := NewCommandCompleter(nil, shell.ShapeExternal, false)
	items := completer.Fetch(ctx, []byte("ex"), shell.NewSpan(0, 2), 0, 2, DefaultOptions())

	assert.Equal(t, []string{"exit", "export"}, suggestionValues(items))
	for _, item := range items {
		assert.Equal(t, shell.NewSpan(0, 2), item.Span)
		assert.True(t, item.AppendWhitespace)
		assert.Equal(t, SuggestionKind("command/builtin"), item.Kind)
	}
}

func TestCommandCompleter_SubcommandSpan(t *testing.T) {
	table := shell.NewCommandTable([]shell.Command{
		{Name: "net", Category: shell.CategoryCustom},
		{Name: "net scan", Category: shell.CategoryCustom},
		{Name: "net status", Category: shell.CategoryCustom},
		{Name: "network", Category: shell.CategoryCustom},
	})
	source := []byte("net sc")
	flattened := []shell.FlatToken{
		{Span: shell.NewSpan(0, 3), Shape: shell.ShapeInternalCall},
		{Span: shell.NewSpan(4, 6), Shape: shell.ShapeLiteral},
	}
	ctx := &Context{
		Commands: table,
		Env:      &environment.Snapshot{},
		Source:   source,
	}

	completer := NewCommandCompleter(flattened, shell.ShapeLiteral, false)
	items := completer.Fetch(ctx, []byte("sc"), shell.NewSpan(4, 6), 0, 6, DefaultOptions())

	// The suggestion replaces the whole "net sc" run, not just "sc".
	require.Equal(t, []string{"net scan"}, suggestionValues(items))
	assert.Equal(t, shell.NewSpan(0, 6), items[0].Span)
}

func TestCommandCompleter_SubcommandRunStopsAtNonCommandShape(t *testing.T) {
	table := shell.NewCommandTable([]shell.Command{
		{Name: "net scan", Category: shell.CategoryCustom},
	})
	source := []byte("$x net sc")
	flattened := []shell.FlatToken{
		{Span: shell.NewSpan(0, 2), Shape: shell.ShapeVariable},
		{Span: shell.NewSpan(3, 6), Shape: shell.ShapeExternal},
		{Span: shell.NewSpan(7, 9), Shape: shell.ShapeLiteral},
	}
	ctx := &Context{
		Commands: table,
		Env:      &environment.Snapshot{},
		Source:   source,
	}

	completer := NewCommandCompleter(flattened, shell.ShapeLiteral, false)
	items := completer.Fetch(ctx, []byte("sc"), shell.NewSpan(7, 9), 0, 9, DefaultOptions())

	require.Equal(t, []string{"net scan"}, suggestionValues(items))
	assert.Equal(t, shell.NewSpan(3, 9), items[0].Span)
}

func TestCommandCompleter_ExternalScan(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	writeExecutable(t, dir1, "alpha")
	writeExecutable(t, dir1, "beta")
	require.NoError(t, os.WriteFile(filepath.Join(dir1, "notexec"), []byte("data"), 0644))
	writeExecutable(t, dir2, "alpha")
	writeExecutable(t, dir2, "gamma")

	table := shell.NewCommandTable([]shell.Command{
		{Name: "alpha", Category: shell.CategoryBuiltin},
	})
	ctx := &Context{
		Commands:           table,
		Env:                &environment.Snapshot{Path: []string{dir1, dir2}},
		Source:             []byte(""),
		MaxExternalResults: 100,
		ExternalCompletion: true,
	}

	completer := NewCommandCompleter(nil, shell.ShapeExternal, true)
	items := completer.Fetch(ctx, nil, shell.NewSpan(0, 0), 0, 0, DefaultOptions())

	// "alpha" appears once as the builtin and once caret-prefixed for the
	// shadowed executable; the duplicate in dir2 is dropped.
	assert.Equal(t, []string{"^alpha", "alpha", "beta", "gamma"}, suggestionValues(items))
	assert.Equal(t, KindExternalCommand, items[0].Kind)
	assert.Equal(t, SuggestionKind("command/builtin"), items[1].Kind)
}

func TestCommandCompleter_ExternalScanResultCap(t *testing.T) {
	dir := t.TempDir()
	writeExecutable(t, dir, "alpha")
	writeExecutable(t, dir, "beta")
	writeExecutable(t, dir, "gamma")

	ctx := &Context{
		Commands:           shell.NewCommandTable(nil),
		Env:                &environment.Snapshot{Path: []string{dir}},
		Source:             []byte(""),
		MaxExternalResults: 2,
		ExternalCompletion: true,
	}

	completer := NewCommandCompleter(nil, shell.ShapeExternal, true)
	items := completer.Fetch(ctx, nil, shell.NewSpan(0, 0), 0, 0, DefaultOptions())

	assert.Equal(t, []string{"alpha", "beta"}, suggestionValues(items))
}

func TestCommandCompleter_EmptyGapWithoutForce(t *testing.T) {
	ctx := &Context{
		Commands: shell.NewCommandTable([]shell.Command{{Name: "echo"}}),
		Env:      &environment.Snapshot{},
		Source:   []byte("echo "),
	}
	flattened := []shell.FlatToken{
		{Span: shell.NewSpan(0, 4), Shape: shell.ShapeInternalCall},
	}

	completer := NewCommandCompleter(flattened, shell.ShapeExternal, false)
	items := completer.Fetch(ctx, nil, shell.NewSpan(5, 5), 0, 5, DefaultOptions())

	assert.Empty(t, items)
}

func TestCommandCompleter_ArgumentPositionFallsThrough(t *testing.T) {
	ctx := &Context{
		Commands: shell.NewCommandTable(nil),
		Env:      &environment.Snapshot{},
		Source:   []byte("ls fi"),
	}
	flattened := []shell.FlatToken{
		{Span: shell.NewSpan(0, 2), Shape: shell.ShapeExternal},
		{Span: shell.NewSpan(3, 5), Shape: shell.ShapeExternalArg},
	}

	completer := NewCommandCompleter(flattened, shell.ShapeExternalArg, false)
	items := completer.Fetch(ctx, []byte("fi"), shell.NewSpan(3, 5), 0, 5, DefaultOptions())

	assert.Nil(t, items)
}

func TestCommandCompleter_PassthroughForcesCommandPosition(t *testing.T) {
	ctx := &Context{
		Commands:     shell.NewCommandTable([]shell.Command{{Name: "find", Category: shell.CategoryBuiltin}}),
		Env:          &environment.Snapshot{},
		Source:       []byte("sudo fi"),
		FileContents: [][]byte{[]byte("sudo fi")},
	}
	flattened := []shell.FlatToken{
		{Span: shell.NewSpan(0, 4), Shape: shell.ShapeExternal},
		{Span: shell.NewSpan(5, 7), Shape: shell.ShapeExternalArg},
	}

	completer := NewCommandCompleter(flattened, shell.ShapeExternalArg, false)
	items := completer.Fetch(ctx, []byte("fi"), shell.NewSpan(5, 7), 0, 7, DefaultOptions())

	assert.Equal(t, []string{"find"}, suggestionValues(items))
}

func TestIsPassthroughCommand(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"", false},
		{"sudo ", true},
		{"sudo", false},
		{"    sudo ", true},
		{"sudo|sudo", false},
		{"ls | sudo ", true},
		{"sudo | sud ", false},
		{"\tsudo|sudo ", true},
		{"doas apt ", true},
		{"pseudo ls", false},
	}
	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			assert.Equal(t, test.want, isPassthroughCommand([][]byte{[]byte(test.line)}))
		})
	}
}

func TestFindNonWhitespaceIndex(t *testing.T) {
	tests := []struct {
		contents string
		start    int
		want     int
	}{
		{"", 0, 0},
		{"abc", 0, 0},
		{"  abc", 0, 2},
		{"\t\n abc", 0, 3},
		{"ls | cat", 5, 5},
		{"ls |  cat", 4, 6},
		{"   ", 0, 3},
		{"ab", 5, 5},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, findNonWhitespaceIndex([]byte(test.contents), test.start))
	}
}
