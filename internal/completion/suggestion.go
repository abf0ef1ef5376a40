package completion

import (
	"path/filepath"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/marlinshell/marlin/internal/shell"
)

// SuggestionKind tags what a suggestion refers to.
type SuggestionKind string

const (
	// KindNone marks an untagged suggestion.
	KindNone SuggestionKind = ""
	// KindExternalCommand marks an executable discovered on PATH.
	KindExternalCommand SuggestionKind = "external-command"
	// KindFile marks a filesystem entry.
	KindFile SuggestionKind = "file"
	// KindDirectory marks a directory entry.
	KindDirectory SuggestionKind = "directory"
	// KindScript marks a marlin module script.
	KindScript SuggestionKind = "script"
)

// CommandKind returns the kind tag for an internal command, carrying its
// category.
func CommandKind(category shell.CommandCategory) SuggestionKind {
	return SuggestionKind("command/" + category.String())
}

// Suggestion is one ranked completion candidate returned to the host.
// It is produced fresh per query and immutable once constructed; the host
// owns it after return.
type Suggestion struct {
	// Value is the replacement text.
	Value string
	// Description is an optional short description shown next to the value.
	Description string
	// Style is an optional display style for the value.
	Style *lipgloss.Style
	// Span is the byte range of the original input that Value replaces,
	// already adjusted to the caller's coordinate space.
	Span shell.Span
	// AppendWhitespace requests a trailing space after insertion.
	AppendWhitespace bool
	// Kind is an optional tag describing what the suggestion refers to.
	Kind SuggestionKind
}

// partitionHidden moves suggestions for hidden filesystem entries (names
// starting with ".") after the non-hidden ones, preserving relative order
// within each group.
func partitionHidden(items []Suggestion) []Suggestion {
	nonHidden, hidden := lo.FilterReject(items, func(item Suggestion, _ int) bool {
		name := filepath.Base(trimTrailingSeparator(item.Value))
		return len(name) == 0 || name[0] != '.'
	})
	return append(nonHidden, hidden...)
}

// sortSuggestionsAscending orders suggestions lexicographically by value,
// keeping relative order for equal values.
func sortSuggestionsAscending(items []Suggestion) []Suggestion {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value < items[j].Value
	})
	return items
}

func trimTrailingSeparator(s string) string {
	if endsWithSeparator(s) {
		return s[:len(s)-1]
	}
	return s
}
