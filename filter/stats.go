package filter

// ExprStats summarizes an expression tree for diagnostics and tooling.
type ExprStats struct {
	// NodeCount is the total number of nodes in the tree.
	NodeCount int `json:"node_count"`
	// MaxDepth is the maximum nesting depth; leaves have depth 1.
	MaxDepth int `json:"max_depth"`
	// Fields lists referenced metadata fields in first-appearance order.
	Fields []string `json:"fields"`
	// Operators lists the operator kinds used, in first-appearance order.
	Operators []string `json:"operators"`
}

// Stats computes summary statistics for an expression tree. A nil tree
// yields zero stats.
func Stats(e *Expr) ExprStats {
	ops := e.Operators()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.String()
	}
	return ExprStats{
		NodeCount: e.NodeCount(),
		MaxDepth:  e.Depth(),
		Fields:    e.Fields(),
		Operators: names,
	}
}
