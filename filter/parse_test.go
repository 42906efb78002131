package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Expr
	}{
		{
			name:  "equality with string",
			input: `category = "gpu"`,
			want:  Eq(Field("category"), LiteralString("gpu")),
		},
		{
			name:  "inequality",
			input: `category != "cpu"`,
			want:  Ne(Field("category"), LiteralString("cpu")),
		},
		{
			name:  "comparisons with numbers",
			input: `price < 500`,
			want:  Lt(Field("price"), LiteralInt(500)),
		},
		{
			name:  "float literal",
			input: `score >= 4.5`,
			want:  Ge(Field("score"), LiteralFloat(4.5)),
		},
		{
			name:  "negative number",
			input: `delta > -1`,
			want:  Gt(Field("delta"), LiteralInt(-1)),
		},
		{
			name:  "scientific notation",
			input: `epsilon < 1e-3`,
			want:  Lt(Field("epsilon"), LiteralFloat(0.001)),
		},
		{
			name:  "boolean value",
			input: `archived = false`,
			want:  Eq(Field("archived"), LiteralBool(false)),
		},
		{
			name:  "field to field comparison",
			input: `updated_at = created_at`,
			want:  Eq(Field("updated_at"), Field("created_at")),
		},
		{
			name:  "and binds tighter than or",
			input: `a = 1 OR b = 2 AND c = 3`,
			want: Or(
				Eq(Field("a"), LiteralInt(1)),
				And(Eq(Field("b"), LiteralInt(2)), Eq(Field("c"), LiteralInt(3))),
			),
		},
		{
			name:  "parens override precedence",
			input: `(a = 1 OR b = 2) AND c = 3`,
			want: And(
				Or(Eq(Field("a"), LiteralInt(1)), Eq(Field("b"), LiteralInt(2))),
				Eq(Field("c"), LiteralInt(3)),
			),
		},
		{
			name:  "symbolic aliases",
			input: `a = 1 && b = 2 || !c = 3`,
			want: Or(
				And(Eq(Field("a"), LiteralInt(1)), Eq(Field("b"), LiteralInt(2))),
				Not(Eq(Field("c"), LiteralInt(3))),
			),
		},
		{
			name:  "case-insensitive keywords",
			input: `a = 1 and b = 2 Or not c = 3`,
			want: Or(
				And(Eq(Field("a"), LiteralInt(1)), Eq(Field("b"), LiteralInt(2))),
				Not(Eq(Field("c"), LiteralInt(3))),
			),
		},
		{
			name:  "double negation",
			input: `NOT NOT a = 1`,
			want:  Not(Not(Eq(Field("a"), LiteralInt(1)))),
		},
		{
			name:  "between",
			input: `year BETWEEN 2020 AND 2024`,
			want:  Between(Field("year"), LiteralInt(2020), LiteralInt(2024)),
		},
		{
			name:  "between binds before logical and",
			input: `year BETWEEN 2020 AND 2024 AND a = 1`,
			want: And(
				Between(Field("year"), LiteralInt(2020), LiteralInt(2024)),
				Eq(Field("a"), LiteralInt(1)),
			),
		},
		{
			name:  "in list",
			input: `tier IN ["gold", "silver"]`,
			want:  In(Field("tier"), LiteralArray(LiteralString("gold"), LiteralString("silver"))),
		},
		{
			name:  "not in list",
			input: `tier NOT IN ["bronze"]`,
			want:  NotIn(Field("tier"), LiteralArray(LiteralString("bronze"))),
		},
		{
			name:  "mixed literal array",
			input: `x IN [1, 2.5, "three", true]`,
			want: In(Field("x"), LiteralArray(
				LiteralInt(1), LiteralFloat(2.5), LiteralString("three"), LiteralBool(true),
			)),
		},
		{
			name:  "string predicates",
			input: `name LIKE "neural%" AND name CONTAINS "ur" AND name STARTS_WITH "n" AND name ENDS_WITH "l"`,
			want: And(
				And(
					And(
						Like(Field("name"), LiteralString("neural%")),
						Contains(Field("name"), LiteralString("ur")),
					),
					StartsWith(Field("name"), LiteralString("n")),
				),
				EndsWith(Field("name"), LiteralString("l")),
			),
		},
		{
			name:  "array predicates",
			input: `tags ANY ["ml", "ai"] OR tags ALL ["ml"] OR tags NONE ["spam"]`,
			want: Or(
				Or(
					Any(Field("tags"), LiteralArray(LiteralString("ml"), LiteralString("ai"))),
					All(Field("tags"), LiteralArray(LiteralString("ml"))),
				),
				None(Field("tags"), LiteralArray(LiteralString("spam"))),
			),
		},
		{
			name:  "null checks",
			input: `deleted_at IS NULL AND created_at IS NOT NULL`,
			want: And(
				IsNull(Field("deleted_at")),
				IsNotNull(Field("created_at")),
			),
		},
		{
			name:  "bare boolean literal",
			input: `true`,
			want:  LiteralBool(true),
		},
		{
			name:  "string escapes",
			input: `name = "a\"b\\c\nd\te"`,
			want:  Eq(Field("name"), LiteralString("a\"b\\c\nd\te")),
		},
		{
			name:  "whitespace tolerance",
			input: "  a\t=\n1  ",
			want:  Eq(Field("a"), LiteralInt(1)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "parsed tree mismatch for %q", tt.input)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrKind
	}{
		{name: "empty input", input: "", kind: ErrKindUnexpectedEOF},
		{name: "whitespace only", input: "   ", kind: ErrKindUnexpectedEOF},
		{name: "truncated comparison", input: `a =`, kind: ErrKindUnexpectedEOF},
		{name: "truncated and", input: `a = 1 AND`, kind: ErrKindUnexpectedEOF},
		{name: "lone field", input: `category`, kind: ErrKindUnexpectedEOF},
		{name: "double equals", input: `a == 1`, kind: ErrKindSyntax},
		{name: "colon instead of equals", input: `a: 1`, kind: ErrKindInvalidChar},
		{name: "single ampersand", input: `a = 1 & b = 2`, kind: ErrKindInvalidChar},
		{name: "single pipe", input: `a = 1 | b = 2`, kind: ErrKindInvalidChar},
		{name: "stray character", input: `a = 1 # b`, kind: ErrKindInvalidChar},
		{name: "unterminated string", input: `a = "abc`, kind: ErrKindUnclosedString},
		{name: "unterminated escape", input: `a = "abc\`, kind: ErrKindUnclosedString},
		{name: "invalid escape", input: `a = "ab\q"`, kind: ErrKindInvalidEscape},
		{name: "unclosed paren", input: `(a = 1`, kind: ErrKindUnclosedParen},
		{name: "unmatched close paren", input: `a = 1)`, kind: ErrKindUnclosedParen},
		{name: "empty array", input: `a IN []`, kind: ErrKindEmptyArray},
		{name: "unterminated array", input: `a IN [1, 2`, kind: ErrKindUnexpectedEOF},
		{name: "array missing comma", input: `a IN [1 2]`, kind: ErrKindSyntax},
		{name: "field in array", input: `a IN [b]`, kind: ErrKindSyntax},
		{name: "integer overflow", input: `a = 9223372036854775808`, kind: ErrKindInvalidNumber},
		{name: "trailing dot", input: `a = 1.`, kind: ErrKindInvalidNumber},
		{name: "lone minus", input: `a = -`, kind: ErrKindInvalidNumber},
		{name: "bad exponent", input: `a = 1e`, kind: ErrKindInvalidNumber},
		{name: "between missing and", input: `a BETWEEN 1 2`, kind: ErrKindSyntax},
		{name: "not without in", input: `a NOT LIKE "x"`, kind: ErrKindSyntax},
		{name: "is without null", input: `a IS 5`, kind: ErrKindSyntax},
		{name: "like with number", input: `a LIKE 5`, kind: ErrKindSyntax},
		{name: "trailing garbage", input: `a = 1 b = 2`, kind: ErrKindSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)

			var serr *SyntaxError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.kind, serr.Kind, "got %v", serr)
			assert.GreaterOrEqual(t, serr.Line, 1)
			assert.GreaterOrEqual(t, serr.Column, 1)
		})
	}
}

func TestParseErrorPositions(t *testing.T) {
	_, err := Parse("a = 1 AND\nb == 2")
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 2, serr.Line)
	assert.Equal(t, 3, serr.Column)
	assert.Contains(t, serr.Hint, "'='")
}

func TestParseNestingDepth(t *testing.T) {
	t.Run("within limit", func(t *testing.T) {
		input := strings.Repeat("(", 10) + "a = 1" + strings.Repeat(")", 10)
		_, err := Parse(input)
		assert.NoError(t, err)
	})

	t.Run("beyond limit", func(t *testing.T) {
		input := strings.Repeat("(", 60) + "a = 1" + strings.Repeat(")", 60)
		_, err := Parse(input)

		var serr *SyntaxError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, ErrKindNestingTooDeep, serr.Kind)
	})

	t.Run("custom limit", func(t *testing.T) {
		_, err := ParseWithOptions("((a = 1))", ParseOptions{MaxDepth: 4})
		var serr *SyntaxError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, ErrKindNestingTooDeep, serr.Kind)
	})
}

func TestParseInputLength(t *testing.T) {
	long := `a = "` + strings.Repeat("x", DefaultMaxInputLen) + `"`
	_, err := Parse(long)

	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, ErrKindInputTooLong, serr.Kind)

	_, err = ParseWithOptions(long, ParseOptions{MaxInputLen: len(long)})
	assert.NoError(t, err)
}

func TestParseKeywordFieldNames(t *testing.T) {
	// Keywords are only reserved in operator position; a leading
	// identifier is always a field name unless it is a boolean literal.
	got, err := Parse(`like = "x"`)
	require.NoError(t, err)
	assert.True(t, Eq(Field("like"), LiteralString("x")).Equal(got))
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		`category = "gpu" AND price < 500`,
		`tags ANY ["ml", "ai"] OR NOT (archived = true)`,
		`name LIKE "neural%" && year BETWEEN 2020 AND 2024`,
		`a IN [1, 2.5, "x", true]`,
		`deleted_at IS NOT NULL`,
		`((((a = 1))))`,
		`a = "\"\\\n\t"`,
		`!true || false`,
		`a == b`,
		`a = 9223372036854775808`,
		`a IN []`,
		strings.Repeat("(", 80),
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		// Must never panic; on success the tree must survive a JSON
		// round trip and respect the depth limit.
		e, err := Parse(input)
		if err != nil {
			var serr *SyntaxError
			if !assert.ErrorAs(t, err, &serr) {
				return
			}
			assert.GreaterOrEqual(t, serr.Offset, 0)
			assert.LessOrEqual(t, serr.Offset, len(input))
			return
		}
		assert.NotNil(t, e)
		assert.LessOrEqual(t, e.Depth(), DefaultMaxDepth)
	})
}
