// Package completion implements the tab-completion core of the marlin shell:
// candidate matching and ranking, recursive path expansion, shell-safe path
// escaping, and command resolution over the command table and PATH.
package completion

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// MatchAlgorithm selects how suggestions are matched against typed text.
type MatchAlgorithm int

const (
	// AlgorithmPrefix only matches suggestions that begin with the typed
	// text. "git switch" is matched by "git sw".
	AlgorithmPrefix MatchAlgorithm = iota
	// AlgorithmFuzzy matches suggestions that contain the typed characters
	// anywhere, in order. "git checkout" is matched by "gco".
	AlgorithmFuzzy
)

// ErrUnknownMatchAlgorithm is returned when a configuration value does not
// name a known match algorithm. It is reported at configuration parse time;
// the completion core itself only ever sees validated values.
var ErrUnknownMatchAlgorithm = errors.New("unknown match algorithm")

// ParseMatchAlgorithm parses a configuration string into a MatchAlgorithm.
func ParseMatchAlgorithm(value string) (MatchAlgorithm, error) {
	switch value {
	case "prefix":
		return AlgorithmPrefix, nil
	case "fuzzy":
		return AlgorithmFuzzy, nil
	default:
		return AlgorithmPrefix, fmt.Errorf("%w: %q", ErrUnknownMatchAlgorithm, value)
	}
}

// String returns the configuration name of the algorithm.
func (a MatchAlgorithm) String() string {
	switch a {
	case AlgorithmPrefix:
		return "prefix"
	case AlgorithmFuzzy:
		return "fuzzy"
	default:
		return "unknown"
	}
}

// MatchesStr reports whether needle matches haystack under the algorithm.
// Surrounding quotes are stripped from both sides first.
func (a MatchAlgorithm) MatchesStr(haystack, needle string) bool {
	haystack = trimQuotes(haystack)
	needle = trimQuotes(needle)
	switch a {
	case AlgorithmFuzzy:
		_, ok := fuzzyScore(haystack, needle, false)
		return ok
	default:
		return strings.HasPrefix(haystack, needle)
	}
}

// MatchesBytes is the byte-oriented entry point of MatchesStr. Invalid
// UTF-8 is decoded lossily before fuzzy scoring, since the fuzzy algorithm
// operates on text.
func (a MatchAlgorithm) MatchesBytes(haystack, needle []byte) bool {
	switch a {
	case AlgorithmFuzzy:
		_, ok := fuzzyScore(lossyString(haystack), lossyString(needle), false)
		return ok
	default:
		return bytes.HasPrefix(haystack, needle)
	}
}

// Options is the immutable matching configuration snapshot passed into
// every completion query.
type Options struct {
	// CaseSensitive disables case folding during matching.
	CaseSensitive bool
	// Positional requires the needle to align with the start of the
	// haystack rather than matching anywhere inside it.
	Positional bool
	// MatchAlgorithm selects prefix or fuzzy matching.
	MatchAlgorithm MatchAlgorithm
}

// DefaultOptions returns the default matching configuration.
func DefaultOptions() Options {
	return Options{
		CaseSensitive:  true,
		Positional:     true,
		MatchAlgorithm: AlgorithmPrefix,
	}
}

// trimQuotes removes one matching pair of surrounding quote characters.
func trimQuotes(s string) string {
	for _, c := range []byte{'`', '"', '\''} {
		if len(s) >= 2 && s[0] == c && s[len(s)-1] == c {
			return s[1 : len(s)-1]
		}
	}
	return s
}
