package strategy

import "github.com/hupe1980/vecfilter/filter"

// IsTautology reports whether the expression matches every document.
//
// Detection is shallow and structural: boolean literals, complementary
// pairs under OR (a OR NOT a), and recursion through AND/OR/NOT. It is
// deliberately not a satisfiability solver; a false return means
// "unknown", not "falsifiable".
func IsTautology(e *filter.Expr) bool {
	if e == nil {
		return false
	}
	switch e.Op {
	case filter.OpLiteralBool:
		return e.Bool
	case filter.OpAnd:
		return IsTautology(e.Left) && IsTautology(e.Right)
	case filter.OpOr:
		if IsTautology(e.Left) || IsTautology(e.Right) {
			return true
		}
		return complementary(e.Left, e.Right)
	case filter.OpNot:
		return IsContradiction(e.Left)
	default:
		return false
	}
}

// IsContradiction reports whether the expression matches no document.
//
// Detects boolean literals, complementary pairs under AND (a AND NOT a),
// impossible numeric ranges on the same field, and recursion through
// AND/OR/NOT. Same caveat as IsTautology: false means "unknown".
func IsContradiction(e *filter.Expr) bool {
	if e == nil {
		return false
	}
	switch e.Op {
	case filter.OpLiteralBool:
		return !e.Bool
	case filter.OpAnd:
		if IsContradiction(e.Left) || IsContradiction(e.Right) {
			return true
		}
		if complementary(e.Left, e.Right) {
			return true
		}
		return impossibleRange(e.Left, e.Right)
	case filter.OpOr:
		return IsContradiction(e.Left) && IsContradiction(e.Right)
	case filter.OpNot:
		return IsTautology(e.Left)
	default:
		return false
	}
}

// complementary reports whether one side is the exact negation of the
// other, by structural equality.
func complementary(a, b *filter.Expr) bool {
	if a == nil || b == nil {
		return false
	}
	if b.Op == filter.OpNot && a.Equal(b.Left) {
		return true
	}
	if a.Op == filter.OpNot && b.Equal(a.Left) {
		return true
	}
	return false
}

// impossibleRange reports whether a and b are numeric bounds on the
// same field that no value can satisfy simultaneously, such as
// price > 100 AND price < 50.
func impossibleRange(a, b *filter.Expr) bool {
	if a == nil || b == nil {
		return false
	}

	lower, upper := a, b
	if isUpperBound(lower.Op) {
		lower, upper = upper, lower
	}
	if !isLowerBound(lower.Op) || !isUpperBound(upper.Op) {
		return false
	}

	lf, lv, ok := boundParts(lower)
	if !ok {
		return false
	}
	uf, uv, ok := boundParts(upper)
	if !ok || lf != uf {
		return false
	}

	if lv > uv {
		return true
	}
	if lv == uv {
		// Equal bounds only overlap when both ends are inclusive.
		return lower.Op == filter.OpGt || upper.Op == filter.OpLt
	}
	return false
}

func isLowerBound(op filter.Op) bool { return op == filter.OpGt || op == filter.OpGe }
func isUpperBound(op filter.Op) bool { return op == filter.OpLt || op == filter.OpLe }

// boundParts extracts the field name and numeric literal bound from a
// comparison node with the field on the left.
func boundParts(e *filter.Expr) (string, float64, bool) {
	if e.Left == nil || e.Right == nil {
		return "", 0, false
	}
	if e.Left.Op == filter.OpField {
		if v, ok := numericLiteral(e.Right); ok {
			return e.Left.Str, v, true
		}
	}
	return "", 0, false
}

func numericLiteral(e *filter.Expr) (float64, bool) {
	switch e.Op {
	case filter.OpLiteralInt:
		return float64(e.Int), true
	case filter.OpLiteralFloat:
		return e.Float, true
	default:
		return 0, false
	}
}
