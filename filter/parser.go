package filter

import (
	"strconv"
	"strings"
)

const (
	// DefaultMaxDepth is the default nesting depth limit for parsed
	// expressions.
	DefaultMaxDepth = 50

	// DefaultMaxInputLen is the default byte length limit for filter text.
	DefaultMaxInputLen = 4096
)

// ParseOptions bound the parser. The zero value selects the defaults.
type ParseOptions struct {
	// MaxDepth caps the nesting depth of the resulting tree. Zero means
	// DefaultMaxDepth.
	MaxDepth int

	// MaxInputLen caps the input length in bytes. Zero means
	// DefaultMaxInputLen.
	MaxInputLen int
}

// Parse parses a filter expression with default limits.
//
// The grammar is SQL-like and keyword matching is case-insensitive:
//
//	category = "gpu" AND price < 500
//	tags ANY ["ml", "ai"] OR NOT (archived = true)
//	name LIKE "neural%" && year BETWEEN 2020 AND 2024
//
// On failure the returned error is a *SyntaxError carrying the byte
// offset, line and column of the problem.
func Parse(input string) (*Expr, error) {
	return ParseWithOptions(input, ParseOptions{})
}

// ParseWithOptions parses a filter expression with explicit limits.
func ParseWithOptions(input string, opts ParseOptions) (*Expr, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	maxLen := opts.MaxInputLen
	if maxLen <= 0 {
		maxLen = DefaultMaxInputLen
	}

	if len(input) > maxLen {
		return nil, newSyntaxError(input, ErrKindInputTooLong, maxLen,
			"filter text exceeds "+strconv.Itoa(maxLen)+" bytes", "")
	}
	if strings.TrimSpace(input) == "" {
		return nil, newSyntaxError(input, ErrKindUnexpectedEOF, 0, "empty filter expression", "")
	}

	p := &parser{
		lex:      lexer{input: input},
		maxDepth: maxDepth,
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	expr, err := p.parseOr(1)
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		if p.tok.kind == tokRParen {
			return nil, p.errAt(p.tok.offset, ErrKindUnclosedParen, "unmatched ')'", "check parenthesis balance")
		}
		return nil, p.errAt(p.tok.offset, ErrKindSyntax, "unexpected "+p.tok.kind.String()+" after expression", "")
	}
	return expr, nil
}

type parser struct {
	lex      lexer
	tok      token
	maxDepth int
}

func (p *parser) errAt(offset int, kind ErrKind, msg, hint string) *SyntaxError {
	return newSyntaxError(p.lex.input, kind, offset, msg, hint)
}

func (p *parser) advance() *SyntaxError {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// keywordIs reports whether the current token is the given keyword,
// case-insensitively.
func (p *parser) keywordIs(kw string) bool {
	return p.tok.kind == tokIdent && strings.EqualFold(p.tok.text, kw)
}

func (p *parser) checkDepth(depth, offset int) *SyntaxError {
	if depth > p.maxDepth {
		return p.errAt(offset, ErrKindNestingTooDeep,
			"expression nesting exceeds depth "+strconv.Itoa(p.maxDepth), "")
	}
	return nil
}

func (p *parser) parseOr(depth int) (*Expr, *SyntaxError) {
	if err := p.checkDepth(depth, p.tok.offset); err != nil {
		return nil, err
	}

	left, err := p.parseAnd(depth + 1)
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOrOr || p.keywordIs("or") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd(depth + 1)
		if err != nil {
			return nil, err
		}
		left = Or(left, right)
	}
	return left, nil
}

func (p *parser) parseAnd(depth int) (*Expr, *SyntaxError) {
	if err := p.checkDepth(depth, p.tok.offset); err != nil {
		return nil, err
	}

	left, err := p.parseNot(depth + 1)
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokAndAnd || p.keywordIs("and") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseNot(depth + 1)
		if err != nil {
			return nil, err
		}
		left = And(left, right)
	}
	return left, nil
}

func (p *parser) parseNot(depth int) (*Expr, *SyntaxError) {
	if err := p.checkDepth(depth, p.tok.offset); err != nil {
		return nil, err
	}

	if p.tok.kind == tokBang || p.keywordIs("not") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseNot(depth + 1)
		if err != nil {
			return nil, err
		}
		return Not(operand), nil
	}
	return p.parsePrimary(depth)
}

func (p *parser) parsePrimary(depth int) (*Expr, *SyntaxError) {
	if err := p.checkDepth(depth, p.tok.offset); err != nil {
		return nil, err
	}

	switch p.tok.kind {
	case tokLParen:
		open := p.tok.offset
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseOr(depth + 1)
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			if p.tok.kind == tokEOF {
				return nil, p.errAt(open, ErrKindUnclosedParen, "unclosed '('", "missing ')'")
			}
			return nil, p.errAt(p.tok.offset, ErrKindSyntax, "expected ')', found "+p.tok.kind.String(), "")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil

	case tokIdent:
		if strings.EqualFold(p.tok.text, "true") || strings.EqualFold(p.tok.text, "false") {
			b := strings.EqualFold(p.tok.text, "true")
			if err := p.advance(); err != nil {
				return nil, err
			}
			return LiteralBool(b), nil
		}
		return p.parsePredicate(depth)

	case tokEOF:
		return nil, p.errAt(p.tok.offset, ErrKindUnexpectedEOF, "unexpected end of input", "expected a field name, literal, or '('")

	default:
		return nil, p.errAt(p.tok.offset, ErrKindSyntax, "unexpected "+p.tok.kind.String(), "expected a field name, literal, or '('")
	}
}

// parsePredicate parses a field name followed by one predicate:
// comparison, BETWEEN, [NOT] IN, LIKE/CONTAINS/STARTS_WITH/ENDS_WITH,
// ANY/ALL/NONE, or IS [NOT] NULL.
func (p *parser) parsePredicate(depth int) (*Expr, *SyntaxError) {
	field := Field(p.tok.text)
	if err := p.advance(); err != nil {
		return nil, err
	}

	switch {
	case p.tok.kind == tokEq:
		return p.parseComparison(field, OpEq)
	case p.tok.kind == tokNe:
		return p.parseComparison(field, OpNe)
	case p.tok.kind == tokLt:
		return p.parseComparison(field, OpLt)
	case p.tok.kind == tokLe:
		return p.parseComparison(field, OpLe)
	case p.tok.kind == tokGt:
		return p.parseComparison(field, OpGt)
	case p.tok.kind == tokGe:
		return p.parseComparison(field, OpGe)

	case p.keywordIs("between"):
		return p.parseBetween(field)

	case p.keywordIs("in"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		arr, err := p.parseArray(depth)
		if err != nil {
			return nil, err
		}
		return In(field, arr), nil

	case p.keywordIs("not"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.keywordIs("in") {
			return nil, p.errAt(p.tok.offset, ErrKindSyntax, "expected IN after NOT", "")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		arr, err := p.parseArray(depth)
		if err != nil {
			return nil, err
		}
		return NotIn(field, arr), nil

	case p.keywordIs("like"):
		return p.parseStringPredicate(field, OpLike)
	case p.keywordIs("contains"):
		return p.parseStringPredicate(field, OpContains)
	case p.keywordIs("starts_with"):
		return p.parseStringPredicate(field, OpStartsWith)
	case p.keywordIs("ends_with"):
		return p.parseStringPredicate(field, OpEndsWith)

	case p.keywordIs("any"):
		return p.parseArrayPredicate(field, OpAny, depth)
	case p.keywordIs("all"):
		return p.parseArrayPredicate(field, OpAll, depth)
	case p.keywordIs("none"):
		return p.parseArrayPredicate(field, OpNone, depth)

	case p.keywordIs("is"):
		return p.parseNullCheck(field)

	case p.tok.kind == tokEOF:
		return nil, p.errAt(p.tok.offset, ErrKindUnexpectedEOF, "unexpected end of input after field "+strconv.Quote(field.Str), "expected an operator")

	default:
		return nil, p.errAt(p.tok.offset, ErrKindSyntax, "expected an operator after field "+strconv.Quote(field.Str)+", found "+p.tok.kind.String(), "")
	}
}

func (p *parser) parseComparison(field *Expr, op Op) (*Expr, *SyntaxError) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	value, err := p.parseScalar()
	if err != nil {
		return nil, err
	}
	return &Expr{Op: op, Left: field, Right: value}, nil
}

func (p *parser) parseBetween(field *Expr) (*Expr, *SyntaxError) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	low, err := p.parseScalar()
	if err != nil {
		return nil, err
	}
	if !p.keywordIs("and") {
		return nil, p.errAt(p.tok.offset, ErrKindSyntax, "expected AND in BETWEEN, found "+p.tok.kind.String(), "")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	high, err := p.parseScalar()
	if err != nil {
		return nil, err
	}
	return Between(field, low, high), nil
}

func (p *parser) parseStringPredicate(field *Expr, op Op) (*Expr, *SyntaxError) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind != tokString {
		if p.tok.kind == tokEOF {
			return nil, p.errAt(p.tok.offset, ErrKindUnexpectedEOF, "unexpected end of input, expected a string pattern", "")
		}
		return nil, p.errAt(p.tok.offset, ErrKindSyntax, "expected a string pattern, found "+p.tok.kind.String(), "")
	}
	pattern := LiteralString(p.tok.text)
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &Expr{Op: op, Left: field, Right: pattern}, nil
}

func (p *parser) parseArrayPredicate(field *Expr, op Op, depth int) (*Expr, *SyntaxError) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	arr, err := p.parseArray(depth)
	if err != nil {
		return nil, err
	}
	return &Expr{Op: op, Left: field, Right: arr}, nil
}

func (p *parser) parseNullCheck(field *Expr) (*Expr, *SyntaxError) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	negated := false
	if p.keywordIs("not") {
		negated = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if !p.keywordIs("null") {
		return nil, p.errAt(p.tok.offset, ErrKindSyntax, "expected NULL after IS", "")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if negated {
		return IsNotNull(field), nil
	}
	return IsNull(field), nil
}

// parseScalar parses a string, number, boolean, or field reference
// operand of a comparison.
func (p *parser) parseScalar() (*Expr, *SyntaxError) {
	switch p.tok.kind {
	case tokString:
		e := LiteralString(p.tok.text)
		if err := p.advance(); err != nil {
			return nil, err
		}
		return e, nil
	case tokNumber:
		e, serr := p.numberExpr(p.tok)
		if serr != nil {
			return nil, serr
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return e, nil
	case tokIdent:
		var e *Expr
		switch {
		case strings.EqualFold(p.tok.text, "true"):
			e = LiteralBool(true)
		case strings.EqualFold(p.tok.text, "false"):
			e = LiteralBool(false)
		default:
			e = Field(p.tok.text)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return e, nil
	case tokEOF:
		return nil, p.errAt(p.tok.offset, ErrKindUnexpectedEOF, "unexpected end of input, expected a value", "")
	default:
		return nil, p.errAt(p.tok.offset, ErrKindSyntax, "expected a value, found "+p.tok.kind.String(), "")
	}
}

// parseArray parses a non-empty bracketed list of scalar literals.
func (p *parser) parseArray(depth int) (*Expr, *SyntaxError) {
	if err := p.checkDepth(depth+1, p.tok.offset); err != nil {
		return nil, err
	}
	if p.tok.kind != tokLBracket {
		if p.tok.kind == tokEOF {
			return nil, p.errAt(p.tok.offset, ErrKindUnexpectedEOF, "unexpected end of input, expected '['", "")
		}
		return nil, p.errAt(p.tok.offset, ErrKindSyntax, "expected '[', found "+p.tok.kind.String(), "")
	}
	open := p.tok.offset
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.kind == tokRBracket {
		return nil, p.errAt(open, ErrKindEmptyArray, "array literal must not be empty", "an empty array matches nothing; remove the predicate instead")
	}

	var elems []*Expr
	for {
		elem, err := p.parseArrayElem()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)

		switch p.tok.kind {
		case tokComma:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case tokRBracket:
			if err := p.advance(); err != nil {
				return nil, err
			}
			return LiteralArray(elems...), nil
		case tokEOF:
			return nil, p.errAt(open, ErrKindUnexpectedEOF, "unterminated array literal", "missing ']'")
		default:
			return nil, p.errAt(p.tok.offset, ErrKindSyntax, "expected ',' or ']', found "+p.tok.kind.String(), "")
		}
	}
}

func (p *parser) parseArrayElem() (*Expr, *SyntaxError) {
	switch p.tok.kind {
	case tokString:
		e := LiteralString(p.tok.text)
		if err := p.advance(); err != nil {
			return nil, err
		}
		return e, nil
	case tokNumber:
		e, serr := p.numberExpr(p.tok)
		if serr != nil {
			return nil, serr
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return e, nil
	case tokIdent:
		switch {
		case strings.EqualFold(p.tok.text, "true"):
			if err := p.advance(); err != nil {
				return nil, err
			}
			return LiteralBool(true), nil
		case strings.EqualFold(p.tok.text, "false"):
			if err := p.advance(); err != nil {
				return nil, err
			}
			return LiteralBool(false), nil
		}
		return nil, p.errAt(p.tok.offset, ErrKindSyntax, "array elements must be literals", "")
	case tokEOF:
		return nil, p.errAt(p.tok.offset, ErrKindUnexpectedEOF, "unexpected end of input inside array literal", "")
	default:
		return nil, p.errAt(p.tok.offset, ErrKindSyntax, "expected an array element, found "+p.tok.kind.String(), "")
	}
}

// numberExpr converts a number token into an int or float literal.
// Integers out of int64 range are an error rather than a silent float
// conversion.
func (p *parser) numberExpr(tok token) (*Expr, *SyntaxError) {
	if !strings.ContainsAny(tok.text, ".eE") {
		i, err := strconv.ParseInt(tok.text, 10, 64)
		if err != nil {
			return nil, p.errAt(tok.offset, ErrKindInvalidNumber, "integer out of range: "+tok.text, "")
		}
		return LiteralInt(i), nil
	}
	f, err := strconv.ParseFloat(tok.text, 64)
	if err != nil {
		return nil, p.errAt(tok.offset, ErrKindInvalidNumber, "malformed number: "+tok.text, "")
	}
	return LiteralFloat(f), nil
}
