package filter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLikeMatch(t *testing.T) {
	tests := []struct {
		name    string
		s       string
		pattern string
		want    bool
	}{
		{name: "exact", s: "abc", pattern: "abc", want: true},
		{name: "exact mismatch", s: "abc", pattern: "abd", want: false},
		{name: "empty both", s: "", pattern: "", want: true},
		{name: "empty pattern", s: "abc", pattern: "", want: false},
		{name: "lone percent", s: "anything", pattern: "%", want: true},
		{name: "percent matches empty", s: "", pattern: "%", want: true},
		{name: "prefix", s: "neural-net", pattern: "neural%", want: true},
		{name: "suffix", s: "neural-net", pattern: "%net", want: true},
		{name: "infix", s: "neural-net", pattern: "%ral%", want: true},
		{name: "multiple percents", s: "a-b-c-d", pattern: "a%c%d", want: true},
		{name: "adjacent percents collapse", s: "abc", pattern: "a%%c", want: true},
		{name: "underscore", s: "cat", pattern: "c_t", want: true},
		{name: "underscore needs a char", s: "ct", pattern: "c_t", want: false},
		{name: "underscores count", s: "abc", pattern: "___", want: true},
		{name: "too few chars", s: "ab", pattern: "___", want: false},
		{name: "mixed wildcards", s: "neural-net-v2", pattern: "neu%v_", want: true},
		{name: "case-sensitive", s: "ABC", pattern: "abc", want: false},
		{name: "escaped percent literal", s: "50%", pattern: `50\%`, want: true},
		{name: "escaped percent not wildcard", s: "50x", pattern: `50\%`, want: false},
		{name: "escaped underscore literal", s: "a_b", pattern: `a\_b`, want: true},
		{name: "escaped underscore not wildcard", s: "axb", pattern: `a\_b`, want: false},
		{name: "escaped backslash", s: `a\b`, pattern: `a\\b`, want: true},
		{name: "trailing backslash is literal", s: `a\`, pattern: `a\`, want: true},
		{name: "percent after escape", s: "10% off", pattern: `10\%%`, want: true},
		{name: "backtrack", s: "aaab", pattern: "%ab", want: true},
		{name: "backtrack fail", s: "aaac", pattern: "%ab", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, likeMatch(tt.s, tt.pattern), "pattern %q against %q", tt.pattern, tt.s)
		})
	}
}

func TestLikeMatchPathological(t *testing.T) {
	// A naive recursive matcher goes exponential on this shape. The
	// iterative matcher must stay fast and give the right answer.
	s := strings.Repeat("a", 2000) + "b"
	pattern := strings.Repeat("a%", 50) + "c"

	start := time.Now()
	got := likeMatch(s, pattern)
	elapsed := time.Since(start)

	assert.False(t, got)
	assert.Less(t, elapsed, time.Second, "pathological pattern too slow")
}

func BenchmarkLikeMatch(b *testing.B) {
	s := strings.Repeat("neural-net-", 50) + "v2"
	pattern := "%net%v_"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		likeMatch(s, pattern)
	}
}

func BenchmarkLikeMatchPathological(b *testing.B) {
	s := strings.Repeat("a", 500) + "b"
	pattern := strings.Repeat("a%", 20) + "c"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		likeMatch(s, pattern)
	}
}
