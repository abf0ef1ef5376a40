package completion

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
)

// Matcher filters completion candidates against a needle and optionally
// keeps them in ranked order as they are inserted. The payload type T is
// carried through unchanged and returned by Results.
//
// Prefix mode sorts lexicographically by the (case-folded) haystack; fuzzy
// mode sorts by match score, higher scores first. Only one of prefixItems
// and fuzzyItems is ever populated, depending on the configured algorithm.
type Matcher[T any] struct {
	needle      string
	options     Options
	sortResults bool
	prefixItems []prefixItem[T]
	fuzzyItems  []fuzzyItem[T]
}

type prefixItem[T any] struct {
	key  string
	item T
}

type fuzzyItem[T any] struct {
	score int
	item  T
}

// NewMatcher creates a matcher for the given needle. The needle is stripped
// of surrounding quotes; in case-insensitive prefix mode it is case-folded
// once up front.
func NewMatcher[T any](needle string, options Options, sortResults bool) *Matcher[T] {
	needle = trimQuotes(needle)
	if options.MatchAlgorithm == AlgorithmPrefix && !options.CaseSensitive {
		needle = foldCase(needle)
	}
	return &Matcher[T]{
		needle:      needle,
		options:     options,
		sortResults: sortResults,
	}
}

// Add tests haystack against the needle and records item if it matches.
// It reports whether the candidate was accepted.
func (m *Matcher[T]) Add(haystack string, item T) bool {
	haystack = trimQuotes(haystack)

	switch m.options.MatchAlgorithm {
	case AlgorithmFuzzy:
		score, ok := fuzzyScore(haystack, m.needle, m.options.CaseSensitive)
		if !ok {
			return false
		}
		if m.sortResults {
			// Higher scores sort first; insertion after equal scores
			// keeps relative order stable.
			idx := sort.Search(len(m.fuzzyItems), func(i int) bool {
				return m.fuzzyItems[i].score < score
			})
			m.fuzzyItems = append(m.fuzzyItems, fuzzyItem[T]{})
			copy(m.fuzzyItems[idx+1:], m.fuzzyItems[idx:])
			m.fuzzyItems[idx] = fuzzyItem[T]{score: score, item: item}
		} else {
			m.fuzzyItems = append(m.fuzzyItems, fuzzyItem[T]{score: score, item: item})
		}
		return true

	default:
		key := haystack
		if !m.options.CaseSensitive {
			key = foldCase(haystack)
		}
		var matches bool
		if m.options.Positional {
			matches = strings.HasPrefix(key, m.needle)
		} else {
			matches = strings.Contains(key, m.needle)
		}
		if !matches {
			return false
		}
		if m.sortResults {
			idx := sort.Search(len(m.prefixItems), func(i int) bool {
				return m.prefixItems[i].key > key
			})
			m.prefixItems = append(m.prefixItems, prefixItem[T]{})
			copy(m.prefixItems[idx+1:], m.prefixItems[idx:])
			m.prefixItems[idx] = prefixItem[T]{key: key, item: item}
		} else {
			m.prefixItems = append(m.prefixItems, prefixItem[T]{key: key, item: item})
		}
		return true
	}
}

// AddBytes is the byte-oriented entry point of Add. Invalid UTF-8 is
// decoded lossily.
func (m *Matcher[T]) AddBytes(haystack []byte, item T) bool {
	return m.Add(lossyString(haystack), item)
}

// Results returns the accepted payloads, ranked when sorting was requested,
// otherwise in insertion order.
func (m *Matcher[T]) Results() []T {
	if m.options.MatchAlgorithm == AlgorithmFuzzy {
		out := make([]T, len(m.fuzzyItems))
		for i, it := range m.fuzzyItems {
			out[i] = it.item
		}
		return out
	}
	out := make([]T, len(m.prefixItems))
	for i, it := range m.prefixItems {
		out[i] = it.item
	}
	return out
}

// fuzzyScore computes the subsequence match score of needle in haystack.
// An empty needle matches everything. When caseSensitive is set, matching
// additionally requires an exact-case subsequence.
func fuzzyScore(haystack, needle string, caseSensitive bool) (int, bool) {
	if needle == "" {
		return 0, true
	}
	if caseSensitive && !isSubsequence(haystack, needle) {
		return 0, false
	}
	matches := fuzzy.Find(needle, []string{haystack})
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0].Score, true
}

// isSubsequence reports whether every rune of needle occurs in haystack in
// order, comparing exact case.
func isSubsequence(haystack, needle string) bool {
	rest := needle
	for _, r := range haystack {
		if rest == "" {
			return true
		}
		next, size := utf8.DecodeRuneInString(rest)
		if r == next {
			rest = rest[size:]
		}
	}
	return rest == ""
}

// foldCase applies locale-aware Unicode case folding, so that non-ASCII
// identifiers compare correctly under case-insensitive matching.
func foldCase(s string) string {
	return cases.Fold().String(s)
}

// lossyString decodes bytes as UTF-8, replacing invalid sequences with the
// Unicode replacement character.
func lossyString(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
