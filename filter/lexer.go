package filter

import (
	"strings"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
	tokEq
	tokNe
	tokLt
	tokLe
	tokGt
	tokGe
	tokAndAnd
	tokOrOr
	tokBang
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokString:
		return "string"
	case tokNumber:
		return "number"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokComma:
		return "','"
	case tokEq:
		return "'='"
	case tokNe:
		return "'!='"
	case tokLt:
		return "'<'"
	case tokLe:
		return "'<='"
	case tokGt:
		return "'>'"
	case tokGe:
		return "'>='"
	case tokAndAnd:
		return "'&&'"
	case tokOrOr:
		return "'||'"
	case tokBang:
		return "'!'"
	default:
		return "unknown"
	}
}

// token is a lexed unit with its byte offset into the input.
//
// For tokString, text holds the decoded payload with escapes resolved.
// For tokIdent and tokNumber it holds the raw source slice.
type token struct {
	kind   tokenKind
	text   string
	offset int
}

type lexer struct {
	input string
	pos   int
}

func (l *lexer) errorf(kind ErrKind, offset int, msg, hint string) *SyntaxError {
	return newSyntaxError(l.input, kind, offset, msg, hint)
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		default:
			return
		}
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// next returns the next token, advancing the lexer.
func (l *lexer) next() (token, *SyntaxError) {
	l.skipSpace()
	start := l.pos

	if l.pos >= len(l.input) {
		return token{kind: tokEOF, offset: start}, nil
	}

	b := l.input[l.pos]
	switch {
	case b == '(':
		l.pos++
		return token{kind: tokLParen, text: "(", offset: start}, nil
	case b == ')':
		l.pos++
		return token{kind: tokRParen, text: ")", offset: start}, nil
	case b == '[':
		l.pos++
		return token{kind: tokLBracket, text: "[", offset: start}, nil
	case b == ']':
		l.pos++
		return token{kind: tokRBracket, text: "]", offset: start}, nil
	case b == ',':
		l.pos++
		return token{kind: tokComma, text: ",", offset: start}, nil
	case b == '=':
		l.pos++
		if l.pos < len(l.input) && l.input[l.pos] == '=' {
			return token{}, l.errorf(ErrKindSyntax, start, "unexpected '=='", "use '=' for equality")
		}
		return token{kind: tokEq, text: "=", offset: start}, nil
	case b == '<':
		l.pos++
		if l.pos < len(l.input) && l.input[l.pos] == '=' {
			l.pos++
			return token{kind: tokLe, text: "<=", offset: start}, nil
		}
		return token{kind: tokLt, text: "<", offset: start}, nil
	case b == '>':
		l.pos++
		if l.pos < len(l.input) && l.input[l.pos] == '=' {
			l.pos++
			return token{kind: tokGe, text: ">=", offset: start}, nil
		}
		return token{kind: tokGt, text: ">", offset: start}, nil
	case b == '!':
		l.pos++
		if l.pos < len(l.input) && l.input[l.pos] == '=' {
			l.pos++
			return token{kind: tokNe, text: "!=", offset: start}, nil
		}
		return token{kind: tokBang, text: "!", offset: start}, nil
	case b == '&':
		l.pos++
		if l.pos < len(l.input) && l.input[l.pos] == '&' {
			l.pos++
			return token{kind: tokAndAnd, text: "&&", offset: start}, nil
		}
		return token{}, l.errorf(ErrKindInvalidChar, start, "unexpected '&'", "use '&&' or AND")
	case b == '|':
		l.pos++
		if l.pos < len(l.input) && l.input[l.pos] == '|' {
			l.pos++
			return token{kind: tokOrOr, text: "||", offset: start}, nil
		}
		return token{}, l.errorf(ErrKindInvalidChar, start, "unexpected '|'", "use '||' or OR")
	case b == ':':
		return token{}, l.errorf(ErrKindInvalidChar, start, "unexpected ':'", "use '=' for equality, not ':'")
	case b == '"':
		return l.lexString()
	case isDigit(b), b == '-', b == '+':
		return l.lexNumber()
	case isIdentStart(b):
		for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
			l.pos++
		}
		return token{kind: tokIdent, text: l.input[start:l.pos], offset: start}, nil
	default:
		return token{}, l.errorf(ErrKindInvalidChar, start, "unexpected character "+quoteByte(b), "")
	}
}

func quoteByte(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return "'" + string(b) + "'"
	}
	const hex = "0123456789abcdef"
	return "0x" + string([]byte{hex[b>>4], hex[b&0xf]})
}

func (l *lexer) lexString() (token, *SyntaxError) {
	start := l.pos
	l.pos++ // opening quote

	var sb strings.Builder
	for l.pos < len(l.input) {
		b := l.input[l.pos]
		switch b {
		case '"':
			l.pos++
			return token{kind: tokString, text: sb.String(), offset: start}, nil
		case '\\':
			if l.pos+1 >= len(l.input) {
				return token{}, l.errorf(ErrKindUnclosedString, start, "unterminated string literal", "")
			}
			esc := l.input[l.pos+1]
			switch esc {
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			default:
				return token{}, l.errorf(ErrKindInvalidEscape, l.pos, "invalid escape sequence '\\"+string(esc)+"'", "")
			}
			l.pos += 2
		default:
			sb.WriteByte(b)
			l.pos++
		}
	}
	return token{}, l.errorf(ErrKindUnclosedString, start, "unterminated string literal", "missing closing '\"'")
}

func (l *lexer) lexNumber() (token, *SyntaxError) {
	start := l.pos
	if l.input[l.pos] == '-' || l.input[l.pos] == '+' {
		l.pos++
	}
	if l.pos >= len(l.input) || !isDigit(l.input[l.pos]) {
		return token{}, l.errorf(ErrKindInvalidNumber, start, "malformed number", "")
	}
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		l.pos++
		if l.pos >= len(l.input) || !isDigit(l.input[l.pos]) {
			return token{}, l.errorf(ErrKindInvalidNumber, start, "malformed number: digit required after '.'", "")
		}
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.input) && (l.input[l.pos] == '-' || l.input[l.pos] == '+') {
			l.pos++
		}
		if l.pos >= len(l.input) || !isDigit(l.input[l.pos]) {
			return token{}, l.errorf(ErrKindInvalidNumber, start, "malformed number: digit required in exponent", "")
		}
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	return token{kind: tokNumber, text: l.input[start:l.pos], offset: start}, nil
}
