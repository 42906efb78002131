package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecfilter/metadata"
)

func testDoc() metadata.Document {
	return metadata.Document{
		"category": metadata.String("gpu"),
		"name":     metadata.String("neural-net-v2"),
		"price":    metadata.Int(450),
		"score":    metadata.Float(4.5),
		"year":     metadata.Int(2022),
		"archived": metadata.Bool(false),
		"tags":     metadata.Strings([]string{"ml", "ai", "vision"}),
		"nullable": metadata.Null(),
	}
}

func mustParse(t *testing.T, input string) *Expr {
	t.Helper()
	e, err := Parse(input)
	require.NoError(t, err)
	return e
}

func TestEvaluate(t *testing.T) {
	doc := testDoc()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		// Equality.
		{name: "string eq match", input: `category = "gpu"`, want: true},
		{name: "string eq mismatch", input: `category = "cpu"`, want: false},
		{name: "string ne", input: `category != "cpu"`, want: true},
		{name: "int eq", input: `price = 450`, want: true},
		{name: "int eq float literal", input: `price = 450.0`, want: true},
		{name: "float eq int literal", input: `score = 4.5`, want: true},
		{name: "bool eq", input: `archived = false`, want: true},
		{name: "type mismatch eq", input: `price = "450"`, want: false},
		{name: "type mismatch ne", input: `price != "450"`, want: true},

		// Null semantics.
		{name: "null eq null", input: `nullable = missing`, want: true},
		{name: "null ne null", input: `nullable != missing`, want: false},
		{name: "value eq null", input: `price = missing`, want: false},
		{name: "missing field eq literal", input: `missing = 1`, want: false},

		// Ordering.
		{name: "lt", input: `price < 500`, want: true},
		{name: "lt false", input: `price < 450`, want: false},
		{name: "le boundary", input: `price <= 450`, want: true},
		{name: "gt", input: `price > 100`, want: true},
		{name: "ge boundary", input: `price >= 450`, want: true},
		{name: "int float ordering", input: `score > 4`, want: true},
		{name: "string ordering is false", input: `category < "zzz"`, want: false},
		{name: "null ordering is false", input: `missing < 500`, want: false},
		{name: "bool ordering is false", input: `archived < true`, want: false},

		// String predicates.
		{name: "contains", input: `name CONTAINS "net"`, want: true},
		{name: "contains case-sensitive", input: `name CONTAINS "NET"`, want: false},
		{name: "starts_with", input: `name STARTS_WITH "neural"`, want: true},
		{name: "ends_with", input: `name ENDS_WITH "v2"`, want: true},
		{name: "like", input: `name LIKE "neural%v_"`, want: true},
		{name: "like mismatch", input: `name LIKE "neural"`, want: false},
		{name: "string predicate on int", input: `price CONTAINS "45"`, want: false},
		{name: "string predicate on missing", input: `missing CONTAINS "x"`, want: false},

		// Membership.
		{name: "in match", input: `category IN ["cpu", "gpu"]`, want: true},
		{name: "in mismatch", input: `category IN ["cpu", "tpu"]`, want: false},
		{name: "in coercion", input: `price IN [450.0]`, want: true},
		{name: "in on missing", input: `missing IN ["x"]`, want: false},
		{name: "not_in match", input: `category NOT IN ["cpu", "tpu"]`, want: true},
		{name: "not_in mismatch", input: `category NOT IN ["gpu"]`, want: false},
		{name: "not_in on missing is false", input: `missing NOT IN ["x"]`, want: false},

		// Array predicates.
		{name: "any match", input: `tags ANY ["ml", "nlp"]`, want: true},
		{name: "any mismatch", input: `tags ANY ["nlp", "audio"]`, want: false},
		{name: "all match", input: `tags ALL ["ml", "ai"]`, want: true},
		{name: "all mismatch", input: `tags ALL ["ml", "nlp"]`, want: false},
		{name: "none match", input: `tags NONE ["spam"]`, want: true},
		{name: "none mismatch", input: `tags NONE ["ml"]`, want: false},
		{name: "any on scalar is false", input: `category ANY ["gpu"]`, want: false},
		{name: "none on scalar is false", input: `category NONE ["x"]`, want: false},
		{name: "any on missing is false", input: `missing ANY ["x"]`, want: false},

		// Between.
		{name: "between inside", input: `year BETWEEN 2020 AND 2024`, want: true},
		{name: "between low boundary", input: `year BETWEEN 2022 AND 2024`, want: true},
		{name: "between high boundary", input: `year BETWEEN 2020 AND 2022`, want: true},
		{name: "between outside", input: `year BETWEEN 2023 AND 2024`, want: false},
		{name: "between inverted range", input: `year BETWEEN 2024 AND 2020`, want: false},
		{name: "between float bounds", input: `score BETWEEN 4.0 AND 5.0`, want: true},
		{name: "between on string is false", input: `category BETWEEN 1 AND 2`, want: false},

		// Null checks.
		{name: "is null on explicit null", input: `nullable IS NULL`, want: true},
		{name: "is null on missing", input: `missing IS NULL`, want: true},
		{name: "is null on value", input: `price IS NULL`, want: false},
		{name: "is not null on value", input: `price IS NOT NULL`, want: true},
		{name: "is not null on missing", input: `missing IS NOT NULL`, want: false},

		// Connectives.
		{name: "and", input: `category = "gpu" AND price < 500`, want: true},
		{name: "and short left", input: `category = "cpu" AND price < 500`, want: false},
		{name: "or", input: `category = "cpu" OR price < 500`, want: true},
		{name: "not", input: `NOT category = "cpu"`, want: true},
		{name: "bare true", input: `true`, want: true},
		{name: "bare false", input: `false`, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mustParse(t, tt.input)
			assert.Equal(t, tt.want, Evaluate(e, doc), "input %q", tt.input)
		})
	}
}

func TestEvaluateTotality(t *testing.T) {
	// Degenerate trees must evaluate, not panic.
	tests := []struct {
		name string
		expr *Expr
		want bool
	}{
		{name: "nil tree", expr: nil, want: false},
		{name: "bare string literal", expr: LiteralString("x"), want: false},
		{name: "bare int literal", expr: LiteralInt(1), want: false},
		{name: "bare field", expr: Field("category"), want: false},
		{name: "bare array", expr: LiteralArray(LiteralInt(1)), want: false},
		{name: "bare bool true", expr: LiteralBool(true), want: true},
		{name: "eq with nil operands", expr: &Expr{Op: OpEq}, want: true}, // null = null
		{name: "in with non-array right", expr: In(Field("a"), LiteralInt(1)), want: false},
		{name: "not_in with non-array right", expr: NotIn(Field("a"), LiteralInt(1)), want: false},
		{name: "any with non-array right", expr: Any(Field("tags"), LiteralString("x")), want: false},
		{name: "between with nil bounds", expr: &Expr{Op: OpBetween, Left: Field("price")}, want: false},
		{name: "invalid op", expr: &Expr{Op: Op(200)}, want: false},
	}
	doc := testDoc()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.expr, doc))
		})
	}
}

func TestEvaluateNilDocument(t *testing.T) {
	assert.False(t, Evaluate(mustParse(t, `a = 1`), nil))
	assert.True(t, Evaluate(mustParse(t, `a IS NULL`), nil))
	assert.True(t, Evaluate(mustParse(t, `NOT a = 1`), nil))
}

func TestEvaluateNotInvolution(t *testing.T) {
	doc := testDoc()
	exprs := []string{
		`category = "gpu"`,
		`price < 500`,
		`missing IS NULL`,
		`tags ANY ["ml"]`,
		`name LIKE "neu%"`,
	}
	for _, input := range exprs {
		e := mustParse(t, input)
		assert.Equal(t, Evaluate(e, doc), Evaluate(Not(Not(e)), doc), "NOT NOT %q", input)
		assert.Equal(t, !Evaluate(e, doc), Evaluate(Not(e), doc), "NOT %q", input)
	}
}

func TestEvaluateCommutativity(t *testing.T) {
	doc := testDoc()
	a := mustParse(t, `category = "gpu"`)
	b := mustParse(t, `price > 9000`)

	assert.Equal(t, Evaluate(And(a, b), doc), Evaluate(And(b, a), doc))
	assert.Equal(t, Evaluate(Or(a, b), doc), Evaluate(Or(b, a), doc))
}

func TestEvaluateShortCircuit(t *testing.T) {
	// The right side of a short-circuited connective is never resolved;
	// a degenerate right operand must not influence the outcome.
	doc := testDoc()
	degenerate := &Expr{Op: Op(250)}

	assert.False(t, Evaluate(And(LiteralBool(false), degenerate), doc))
	assert.True(t, Evaluate(Or(LiteralBool(true), degenerate), doc))
}
