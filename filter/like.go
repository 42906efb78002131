package filter

// likeToken is one unit of a compiled LIKE pattern: a literal byte, a
// single-character wildcard, or a multi-character wildcard.
type likeToken struct {
	kind likeTokenKind
	lit  byte
}

type likeTokenKind uint8

const (
	likeLit likeTokenKind = iota
	likeOne               // _
	likeMany              // %
)

// compileLike expands escapes and collapses runs of '%' into single
// wildcard tokens. "\%" and "\_" match the literal character; "\\"
// matches a backslash; any other escaped byte is taken literally.
func compileLike(pattern string) []likeToken {
	toks := make([]likeToken, 0, len(pattern))
	for i := 0; i < len(pattern); i++ {
		switch b := pattern[i]; b {
		case '\\':
			if i+1 < len(pattern) {
				i++
				toks = append(toks, likeToken{kind: likeLit, lit: pattern[i]})
			} else {
				toks = append(toks, likeToken{kind: likeLit, lit: '\\'})
			}
		case '%':
			if len(toks) == 0 || toks[len(toks)-1].kind != likeMany {
				toks = append(toks, likeToken{kind: likeMany})
			}
		case '_':
			toks = append(toks, likeToken{kind: likeOne})
		default:
			toks = append(toks, likeToken{kind: likeLit, lit: b})
		}
	}
	return toks
}

// likeMatch reports whether s matches the SQL LIKE pattern.
//
// The match is iterative with a single backtrack point per '%', which
// keeps pathological patterns like "%a%a%a%..." linear in practice and
// immune to stack exhaustion. Matching is byte-wise and case-sensitive.
func likeMatch(s, pattern string) bool {
	toks := compileLike(pattern)

	si, ti := 0, 0
	starTi, starSi := -1, 0

	for si < len(s) {
		if ti < len(toks) {
			switch tok := toks[ti]; tok.kind {
			case likeMany:
				// Record the backtrack point and try matching zero bytes.
				starTi, starSi = ti, si
				ti++
				continue
			case likeOne:
				si++
				ti++
				continue
			case likeLit:
				if s[si] == tok.lit {
					si++
					ti++
					continue
				}
			}
		}
		// Mismatch: widen the last '%' by one byte, or fail.
		if starTi < 0 {
			return false
		}
		starSi++
		si = starSi
		ti = starTi + 1
	}

	// Trailing '%' tokens match the empty remainder.
	for ti < len(toks) && toks[ti].kind == likeMany {
		ti++
	}
	return ti == len(toks)
}
