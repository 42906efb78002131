package filter

// Op identifies the kind of an expression node.
type Op uint8

const (
	// OpInvalid represents an invalid node kind.
	OpInvalid Op = iota

	// Literals.

	// OpLiteralString is a string literal: "gpu".
	OpLiteralString
	// OpLiteralInt is a 64-bit integer literal: 42, -1.
	OpLiteralInt
	// OpLiteralFloat is a 64-bit float literal: 4.5, -0.5.
	OpLiteralFloat
	// OpLiteralBool is a boolean literal: true, false.
	OpLiteralBool
	// OpLiteralArray is an array literal: ["a", "b"]. Used with the
	// set and array operators; never empty (enforced at parse time).
	OpLiteralArray

	// OpField references a metadata field by name.
	OpField

	// Comparisons.

	// OpEq is equality: field = value.
	OpEq
	// OpNe is inequality: field != value.
	OpNe
	// OpLt is less-than: field < value.
	OpLt
	// OpLe is less-or-equal: field <= value.
	OpLe
	// OpGt is greater-than: field > value.
	OpGt
	// OpGe is greater-or-equal: field >= value.
	OpGe

	// String predicates.

	// OpContains is a case-sensitive substring match.
	OpContains
	// OpStartsWith is a case-sensitive prefix match.
	OpStartsWith
	// OpEndsWith is a case-sensitive suffix match.
	OpEndsWith
	// OpLike is a SQL-style pattern match (% and _ wildcards).
	OpLike

	// Set and array predicates.

	// OpIn tests scalar membership in an array literal.
	OpIn
	// OpNotIn is the negation of OpIn.
	OpNotIn
	// OpAny is true iff an array field intersects the pattern array.
	OpAny
	// OpAll is true iff every pattern element appears in the field array.
	OpAll
	// OpNone is the negation of OpAny.
	OpNone

	// OpBetween is an inclusive range test: field BETWEEN low AND high.
	OpBetween

	// Logical connectives.

	// OpAnd is logical conjunction with short-circuit evaluation.
	OpAnd
	// OpOr is logical disjunction with short-circuit evaluation.
	OpOr
	// OpNot is logical negation.
	OpNot

	// Null checks.

	// OpIsNull is true iff the field is absent or explicitly null.
	OpIsNull
	// OpIsNotNull is the negation of OpIsNull.
	OpIsNotNull
)

var opNames = map[Op]string{
	OpLiteralString: "literal_string",
	OpLiteralInt:    "literal_int",
	OpLiteralFloat:  "literal_float",
	OpLiteralBool:   "literal_bool",
	OpLiteralArray:  "literal_array",
	OpField:         "field",
	OpEq:            "eq",
	OpNe:            "ne",
	OpLt:            "lt",
	OpLe:            "le",
	OpGt:            "gt",
	OpGe:            "ge",
	OpContains:      "contains",
	OpStartsWith:    "starts_with",
	OpEndsWith:      "ends_with",
	OpLike:          "like",
	OpIn:            "in",
	OpNotIn:         "not_in",
	OpAny:           "any",
	OpAll:           "all",
	OpNone:          "none",
	OpBetween:       "between",
	OpAnd:           "and",
	OpOr:            "or",
	OpNot:           "not",
	OpIsNull:        "is_null",
	OpIsNotNull:     "is_not_null",
}

var opsByName = func() map[string]Op {
	m := make(map[string]Op, len(opNames))
	for op, name := range opNames {
		m[name] = op
	}
	return m
}()

// String returns the stable wire name of the op ("eq", "and", ...).
func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "invalid"
}

// Expr is a node in a parsed filter expression tree.
//
// Expr is a closed tagged union: Op selects the kind and determines
// which payload fields are meaningful. Children are exclusively owned
// by their parent; a tree is never mutated after construction and may
// be shared across concurrent searches.
//
// Build trees with the package constructors (Eq, Field, And, ...)
// or with Parse; the zero Expr is invalid.
type Expr struct {
	Op Op

	// Str holds the payload of OpLiteralString and the name of OpField.
	Str string
	// Int holds the payload of OpLiteralInt.
	Int int64
	// Float holds the payload of OpLiteralFloat.
	Float float64
	// Bool holds the payload of OpLiteralBool.
	Bool bool
	// Elems holds the elements of OpLiteralArray.
	Elems []*Expr

	// Left and Right are the operands of binary nodes. Unary nodes
	// (not, is_null, is_not_null) use Left only. OpBetween uses Left
	// for the field, Right for the lower bound, and High for the
	// upper bound.
	Left  *Expr
	Right *Expr
	High  *Expr
}

// LiteralString constructs a string literal node.
func LiteralString(s string) *Expr { return &Expr{Op: OpLiteralString, Str: s} }

// LiteralInt constructs an integer literal node.
func LiteralInt(i int64) *Expr { return &Expr{Op: OpLiteralInt, Int: i} }

// LiteralFloat constructs a float literal node.
func LiteralFloat(f float64) *Expr { return &Expr{Op: OpLiteralFloat, Float: f} }

// LiteralBool constructs a boolean literal node.
func LiteralBool(b bool) *Expr { return &Expr{Op: OpLiteralBool, Bool: b} }

// LiteralArray constructs an array literal node.
func LiteralArray(elems ...*Expr) *Expr { return &Expr{Op: OpLiteralArray, Elems: elems} }

// Field constructs a field reference node.
func Field(name string) *Expr { return &Expr{Op: OpField, Str: name} }

// Eq constructs an equality comparison.
func Eq(left, right *Expr) *Expr { return &Expr{Op: OpEq, Left: left, Right: right} }

// Ne constructs an inequality comparison.
func Ne(left, right *Expr) *Expr { return &Expr{Op: OpNe, Left: left, Right: right} }

// Lt constructs a less-than comparison.
func Lt(left, right *Expr) *Expr { return &Expr{Op: OpLt, Left: left, Right: right} }

// Le constructs a less-or-equal comparison.
func Le(left, right *Expr) *Expr { return &Expr{Op: OpLe, Left: left, Right: right} }

// Gt constructs a greater-than comparison.
func Gt(left, right *Expr) *Expr { return &Expr{Op: OpGt, Left: left, Right: right} }

// Ge constructs a greater-or-equal comparison.
func Ge(left, right *Expr) *Expr { return &Expr{Op: OpGe, Left: left, Right: right} }

// Contains constructs a substring predicate.
func Contains(field, pattern *Expr) *Expr { return &Expr{Op: OpContains, Left: field, Right: pattern} }

// StartsWith constructs a prefix predicate.
func StartsWith(field, pattern *Expr) *Expr {
	return &Expr{Op: OpStartsWith, Left: field, Right: pattern}
}

// EndsWith constructs a suffix predicate.
func EndsWith(field, pattern *Expr) *Expr { return &Expr{Op: OpEndsWith, Left: field, Right: pattern} }

// Like constructs a SQL-style pattern predicate.
func Like(field, pattern *Expr) *Expr { return &Expr{Op: OpLike, Left: field, Right: pattern} }

// In constructs a set membership predicate.
func In(field, array *Expr) *Expr { return &Expr{Op: OpIn, Left: field, Right: array} }

// NotIn constructs a negated set membership predicate.
func NotIn(field, array *Expr) *Expr { return &Expr{Op: OpNotIn, Left: field, Right: array} }

// Any constructs an array intersection predicate.
func Any(field, array *Expr) *Expr { return &Expr{Op: OpAny, Left: field, Right: array} }

// All constructs an array superset predicate.
func All(field, array *Expr) *Expr { return &Expr{Op: OpAll, Left: field, Right: array} }

// None constructs a negated array intersection predicate.
func None(field, array *Expr) *Expr { return &Expr{Op: OpNone, Left: field, Right: array} }

// Between constructs an inclusive range predicate.
func Between(field, low, high *Expr) *Expr {
	return &Expr{Op: OpBetween, Left: field, Right: low, High: high}
}

// And constructs a logical conjunction.
func And(left, right *Expr) *Expr { return &Expr{Op: OpAnd, Left: left, Right: right} }

// Or constructs a logical disjunction.
func Or(left, right *Expr) *Expr { return &Expr{Op: OpOr, Left: left, Right: right} }

// Not constructs a logical negation.
func Not(operand *Expr) *Expr { return &Expr{Op: OpNot, Left: operand} }

// IsNull constructs a null check.
func IsNull(field *Expr) *Expr { return &Expr{Op: OpIsNull, Left: field} }

// IsNotNull constructs a negated null check.
func IsNotNull(field *Expr) *Expr { return &Expr{Op: OpIsNotNull, Left: field} }

// Equal reports whether two trees are structurally identical.
//
// Structural equality backs both tautology/contradiction detection and
// the JSON round-trip contract. Nil receivers and operands are equal
// only to nil.
func (e *Expr) Equal(other *Expr) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Op != other.Op {
		return false
	}

	switch e.Op {
	case OpLiteralString, OpField:
		if e.Str != other.Str {
			return false
		}
	case OpLiteralInt:
		if e.Int != other.Int {
			return false
		}
	case OpLiteralFloat:
		if e.Float != other.Float {
			return false
		}
	case OpLiteralBool:
		if e.Bool != other.Bool {
			return false
		}
	case OpLiteralArray:
		if len(e.Elems) != len(other.Elems) {
			return false
		}
		for i := range e.Elems {
			if !e.Elems[i].Equal(other.Elems[i]) {
				return false
			}
		}
	}

	return e.Left.Equal(other.Left) && e.Right.Equal(other.Right) && e.High.Equal(other.High)
}

// Depth returns the maximum nesting depth of the tree. Leaves have
// depth 1.
func (e *Expr) Depth() int {
	if e == nil {
		return 0
	}

	d := 0
	for _, child := range e.Elems {
		d = max(d, child.Depth())
	}
	d = max(d, e.Left.Depth(), e.Right.Depth(), e.High.Depth())

	return d + 1
}

// NodeCount returns the total number of nodes in the tree.
func (e *Expr) NodeCount() int {
	if e == nil {
		return 0
	}

	n := 1
	for _, child := range e.Elems {
		n += child.NodeCount()
	}
	n += e.Left.NodeCount() + e.Right.NodeCount() + e.High.NodeCount()

	return n
}

// Fields returns the names of all referenced metadata fields, deduplicated,
// in first-appearance order.
func (e *Expr) Fields() []string {
	var fields []string
	seen := make(map[string]struct{})
	e.collectFields(&fields, seen)
	return fields
}

func (e *Expr) collectFields(fields *[]string, seen map[string]struct{}) {
	if e == nil {
		return
	}
	if e.Op == OpField {
		if _, ok := seen[e.Str]; !ok {
			seen[e.Str] = struct{}{}
			*fields = append(*fields, e.Str)
		}
		return
	}
	for _, child := range e.Elems {
		child.collectFields(fields, seen)
	}
	e.Left.collectFields(fields, seen)
	e.Right.collectFields(fields, seen)
	e.High.collectFields(fields, seen)
}

// Operators returns the set of operator kinds used in the tree
// (literals and field references excluded), deduplicated, in
// first-appearance order.
func (e *Expr) Operators() []Op {
	var ops []Op
	seen := make(map[Op]struct{})
	e.collectOperators(&ops, seen)
	return ops
}

func (e *Expr) collectOperators(ops *[]Op, seen map[Op]struct{}) {
	if e == nil {
		return
	}
	if !e.isLeaf() {
		if _, ok := seen[e.Op]; !ok {
			seen[e.Op] = struct{}{}
			*ops = append(*ops, e.Op)
		}
	}
	for _, child := range e.Elems {
		child.collectOperators(ops, seen)
	}
	e.Left.collectOperators(ops, seen)
	e.Right.collectOperators(ops, seen)
	e.High.collectOperators(ops, seen)
}

func (e *Expr) isLeaf() bool {
	switch e.Op {
	case OpLiteralString, OpLiteralInt, OpLiteralFloat, OpLiteralBool, OpLiteralArray, OpField:
		return true
	default:
		return false
	}
}
