package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherPrefix_Positional(t *testing.T) {
	options := DefaultOptions()

	tests := []struct {
		name     string
		needle   string
		haystack string
		want     bool
	}{
		{"empty needle matches", "", "example text", true},
		{"prefix matches", "examp", "example text", true},
		{"substring does not match", "text", "example text", false},
		{"exact match", "example text", "example text", true},
		{"case mismatch fails when sensitive", "Examp", "example text", false},
		{"quoted haystack is stripped", "examp", "'example text'", true},
		{"quoted needle is stripped", "'examp'", "example text", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher[string](tt.needle, options, false)
			assert.Equal(t, tt.want, m.Add(tt.haystack, tt.haystack))
		})
	}
}

func TestMatcherPrefix_Substring(t *testing.T) {
	options := DefaultOptions()
	options.Positional = false

	m := NewMatcher[string]("text", options, false)
	assert.True(t, m.Add("example text", "example text"))
	assert.True(t, m.Add("text first", "text first"))
	assert.False(t, m.Add("nothing here", "nothing here"))
	assert.Equal(t, []string{"example text", "text first"}, m.Results())
}

func TestMatcherPrefix_CaseInsensitiveFolding(t *testing.T) {
	options := DefaultOptions()
	options.CaseSensitive = false

	m := NewMatcher[string]("examp", options, false)
	assert.True(t, m.Add("EXAMPLE text", "EXAMPLE text"))
	assert.True(t, m.Add("Example", "Example"))
	assert.False(t, m.Add("sample", "sample"))
}

func TestMatcherPrefix_SortedInsertion(t *testing.T) {
	options := DefaultOptions()

	m := NewMatcher[string]("f", options, true)
	for _, h := range []string{"foo", "fab", "fzz", "far"} {
		require.True(t, m.Add(h, h))
	}
	assert.Equal(t, []string{"fab", "far", "foo", "fzz"}, m.Results())
}

func TestMatcherPrefix_CaseInsensitiveSortOrder(t *testing.T) {
	options := DefaultOptions()
	options.CaseSensitive = false

	m := NewMatcher[string]("b", options, true)
	require.True(t, m.Add("Buppercase", "Buppercase"))
	require.True(t, m.Add("blowercase", "blowercase"))

	assert.Equal(t, []string{"blowercase", "Buppercase"}, m.Results())
}

func TestMatcherFuzzy_Subsequence(t *testing.T) {
	options := DefaultOptions()
	options.MatchAlgorithm = AlgorithmFuzzy
	options.CaseSensitive = false

	tests := []struct {
		name     string
		needle   string
		haystack string
		want     bool
	}{
		{"empty needle matches", "", "example text", true},
		{"prefix is a subsequence", "examp", "example text", true},
		{"scattered subsequence", "mplxt", "example text", true},
		{"word initials", "gco", "git checkout", true},
		{"repeat beyond haystack", "mpp", "example text", false},
		{"reversed order", "txe", "example text", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher[string](tt.needle, options, false)
			assert.Equal(t, tt.want, m.Add(tt.haystack, tt.haystack))
		})
	}
}

func TestMatcherFuzzy_CaseSensitive(t *testing.T) {
	options := DefaultOptions()
	options.MatchAlgorithm = AlgorithmFuzzy
	options.CaseSensitive = true

	m := NewMatcher[string]("GC", options, false)
	assert.True(t, m.Add("GitCheckout", "GitCheckout"))
	assert.False(t, m.Add("git checkout", "git checkout"))
}

func TestMatcherFuzzy_HigherScoreSortsFirst(t *testing.T) {
	options := DefaultOptions()
	options.MatchAlgorithm = AlgorithmFuzzy
	options.CaseSensitive = false

	// A contiguous match outranks a scattered one.
	m := NewMatcher[string]("check", options, true)
	require.True(t, m.Add("c-h-e-c-k-later", "c-h-e-c-k-later"))
	require.True(t, m.Add("checkout", "checkout"))

	results := m.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "checkout", results[0])
}

func TestMatcherAddBytes_LossyDecoding(t *testing.T) {
	options := DefaultOptions()

	m := NewMatcher[string]("fi", options, false)
	assert.True(t, m.AddBytes([]byte("file\xff.txt"), "payload"))

	fm := NewMatcher[string]("fi", Options{MatchAlgorithm: AlgorithmFuzzy}, false)
	assert.NotPanics(t, func() {
		fm.AddBytes([]byte{0xff, 0xfe, 'f', 'i'}, "payload")
	})
}

func TestMatcher_NonMatchesAreDropped(t *testing.T) {
	options := DefaultOptions()

	m := NewMatcher[int]("zz", options, true)
	assert.False(t, m.Add("aardvark", 1))
	assert.False(t, m.Add("zebra", 2))
	assert.Empty(t, m.Results())
}

func TestIsSubsequence(t *testing.T) {
	assert.True(t, isSubsequence("git checkout", "gco"))
	assert.True(t, isSubsequence("abc", ""))
	assert.False(t, isSubsequence("abc", "acb"))
	assert.False(t, isSubsequence("abc", "abcd"))
}
