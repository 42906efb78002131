package filter

import (
	"strings"

	"github.com/hupe1980/vecfilter/metadata"
)

// Evaluate tests a single metadata document against an expression tree.
//
// Evaluation is total: it never returns an error. Missing fields, nulls,
// and type mismatches make the enclosing predicate false, so a filter
// applied across a heterogeneous store degrades to "does not match"
// instead of failing the scan. A nil document behaves like a document in
// which every field is absent.
//
// A bare boolean literal evaluates to its own value; any other bare
// literal or field reference evaluates to false.
func Evaluate(e *Expr, doc metadata.Document) bool {
	if e == nil {
		return false
	}

	switch e.Op {
	case OpLiteralBool:
		return e.Bool
	case OpLiteralString, OpLiteralInt, OpLiteralFloat, OpLiteralArray, OpField:
		return false

	case OpAnd:
		return Evaluate(e.Left, doc) && Evaluate(e.Right, doc)
	case OpOr:
		return Evaluate(e.Left, doc) || Evaluate(e.Right, doc)
	case OpNot:
		return !Evaluate(e.Left, doc)

	case OpEq:
		return evalEq(e.Left, e.Right, doc)
	case OpNe:
		return !evalEq(e.Left, e.Right, doc)
	case OpLt, OpLe, OpGt, OpGe:
		return evalOrdering(e.Op, e.Left, e.Right, doc)

	case OpContains, OpStartsWith, OpEndsWith, OpLike:
		return evalStringPredicate(e.Op, e.Left, e.Right, doc)

	case OpIn:
		return evalIn(e.Left, e.Right, doc)
	case OpNotIn:
		// Mismatched operands make IN false without making NOT IN true:
		// a non-array pattern fails both.
		if e.Right == nil || e.Right.Op != OpLiteralArray {
			return false
		}
		return !evalIn(e.Left, e.Right, doc)

	case OpAny, OpAll, OpNone:
		return evalArrayPredicate(e.Op, e.Left, e.Right, doc)

	case OpBetween:
		return evalBetween(e.Left, e.Right, e.High, doc)

	case OpIsNull:
		v := resolve(e.Left, doc)
		return v.IsNull()
	case OpIsNotNull:
		v := resolve(e.Left, doc)
		return !v.IsNull()

	default:
		return false
	}
}

// resolve turns an operand expression into a concrete metadata value.
// Field references look up the document; absent fields resolve to null.
// Non-literal operands (nested predicates) resolve to null.
func resolve(e *Expr, doc metadata.Document) metadata.Value {
	if e == nil {
		return metadata.Null()
	}
	switch e.Op {
	case OpLiteralString:
		return metadata.String(e.Str)
	case OpLiteralInt:
		return metadata.Int(e.Int)
	case OpLiteralFloat:
		return metadata.Float(e.Float)
	case OpLiteralBool:
		return metadata.Bool(e.Bool)
	case OpField:
		if doc == nil {
			return metadata.Null()
		}
		v, ok := doc[e.Str]
		if !ok {
			return metadata.Null()
		}
		return v
	default:
		return metadata.Null()
	}
}

func evalEq(left, right *Expr, doc metadata.Document) bool {
	return valuesEqual(resolve(left, doc), resolve(right, doc))
}

// valuesEqual compares two resolved values. Int and float cross-compare
// numerically; null equals null; everything else requires matching kinds.
func valuesEqual(a, b metadata.Value) bool {
	if a.IsNull() || b.IsNull() {
		return a.IsNull() && b.IsNull()
	}

	switch a.Kind {
	case metadata.KindInt:
		switch b.Kind {
		case metadata.KindInt:
			return a.I64 == b.I64
		case metadata.KindFloat:
			return float64(a.I64) == b.F64
		}
		return false
	case metadata.KindFloat:
		switch b.Kind {
		case metadata.KindInt:
			return a.F64 == float64(b.I64)
		case metadata.KindFloat:
			return a.F64 == b.F64
		}
		return false
	case metadata.KindString:
		s, ok := b.AsString()
		return ok && a.StringValue() == s
	case metadata.KindBool:
		bb, ok := b.AsBool()
		return ok && a.B == bb
	case metadata.KindArray:
		arr, ok := b.AsArray()
		if !ok || len(a.A) != len(arr) {
			return false
		}
		for i := range a.A {
			if !valuesEqual(a.A[i], arr[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// evalOrdering handles <, <=, >, >=. Ordering is defined for numbers
// only; strings, booleans, arrays, and nulls compare false.
func evalOrdering(op Op, left, right *Expr, doc metadata.Document) bool {
	a, aok := asNumber(resolve(left, doc))
	b, bok := asNumber(resolve(right, doc))
	if !aok || !bok {
		return false
	}
	switch op {
	case OpLt:
		return a < b
	case OpLe:
		return a <= b
	case OpGt:
		return a > b
	case OpGe:
		return a >= b
	default:
		return false
	}
}

func asNumber(v metadata.Value) (float64, bool) {
	switch v.Kind {
	case metadata.KindInt:
		return float64(v.I64), true
	case metadata.KindFloat:
		return v.F64, true
	default:
		return 0, false
	}
}

func evalStringPredicate(op Op, left, right *Expr, doc metadata.Document) bool {
	s, ok := resolve(left, doc).AsString()
	if !ok {
		return false
	}
	pattern, ok := resolve(right, doc).AsString()
	if !ok {
		return false
	}
	switch op {
	case OpContains:
		return strings.Contains(s, pattern)
	case OpStartsWith:
		return strings.HasPrefix(s, pattern)
	case OpEndsWith:
		return strings.HasSuffix(s, pattern)
	case OpLike:
		return likeMatch(s, pattern)
	default:
		return false
	}
}

// evalIn tests scalar membership of the field value in the pattern array.
func evalIn(left, right *Expr, doc metadata.Document) bool {
	if right == nil || right.Op != OpLiteralArray {
		return false
	}
	v := resolve(left, doc)
	if v.IsNull() {
		return false
	}
	for _, elem := range right.Elems {
		if valuesEqual(v, resolve(elem, doc)) {
			return true
		}
	}
	return false
}

// evalArrayPredicate handles ANY, ALL, and NONE over an array-valued
// field.
//
// ANY is true iff the field array shares at least one element with the
// pattern. ALL is true iff every pattern element appears in the field
// array. NONE is the negation of ANY, except that a non-array field
// makes all three false.
func evalArrayPredicate(op Op, left, right *Expr, doc metadata.Document) bool {
	if right == nil || right.Op != OpLiteralArray {
		return false
	}
	fieldArr, ok := resolve(left, doc).AsArray()
	if !ok {
		return false
	}

	intersects := func() bool {
		for _, fv := range fieldArr {
			for _, pe := range right.Elems {
				if valuesEqual(fv, resolve(pe, doc)) {
					return true
				}
			}
		}
		return false
	}

	switch op {
	case OpAny:
		return intersects()
	case OpNone:
		return !intersects()
	case OpAll:
		for _, pe := range right.Elems {
			pv := resolve(pe, doc)
			found := false
			for _, fv := range fieldArr {
				if valuesEqual(fv, pv) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// evalBetween tests low <= field <= high, numerically. Bounds are
// inclusive. An inverted range (low > high) matches nothing.
func evalBetween(field, low, high *Expr, doc metadata.Document) bool {
	v, ok := asNumber(resolve(field, doc))
	if !ok {
		return false
	}
	lo, ok := asNumber(resolve(low, doc))
	if !ok {
		return false
	}
	hi, ok := asNumber(resolve(high, doc))
	if !ok {
		return false
	}
	return lo <= v && v <= hi
}
