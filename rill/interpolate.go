package rill

import "strings"

// interpolator resolves a $variable reference for string interpolation.
// The interpreter supplies one backed by the live SymTable.
type interpolator func(name string) (Value, bool)

// Interpolate runs a string literal's raw text through the three ordered
// sub-passes spec §4.4.3 requires: dollar-interpolation, then
// brace-interpolation, then escape-collapse. The order matters — running
// escapes first would let "\$x" interpolate, which spec explicitly rules
// out.
func Interpolate(raw string, lookup interpolator) (string, *RuntimeError) {
	afterDollar, err := interpolateDollar(raw, lookup)
	if err != nil {
		return "", err
	}
	afterBrace, err := interpolateBrace(afterDollar, lookup)
	if err != nil {
		return "", err
	}
	return collapseEscapes(afterBrace)
}

// interpolateDollar replaces every unescaped `$name` run (name being an
// identifier-shaped run of alnum/underscore bytes) with that variable's
// String() rendering. A `\$` is left untouched for collapseEscapes to
// resolve later, which is how `"\$x"` avoids being interpolated.
func interpolateDollar(s string, lookup interpolator) (string, *RuntimeError) {
	var out strings.Builder
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			out.WriteByte(c)
			out.WriteByte(s[i+1])
			i += 2
			continue
		}
		if c == '$' && i+1 < len(s) && isNameByte(s[i+1]) {
			j := i + 1
			for j < len(s) && isNameByte(s[j]) {
				j++
			}
			name := s[i+1 : j]
			v, ok := lookup(name)
			if !ok {
				return "", &RuntimeError{Kind: ErrUndeclaredVariable, Message: "undeclared variable in interpolation: $" + name}
			}
			out.WriteString(v.String())
			i = j
			continue
		}
		out.WriteByte(c)
		i++
	}
	return out.String(), nil
}

// interpolateBrace replaces every unescaped `${name}` run the same way,
// allowing a variable reference to sit directly against surrounding text
// that would otherwise be swallowed into the name by interpolateDollar
// (e.g. "${x}y" vs "$xy").
func interpolateBrace(s string, lookup interpolator) (string, *RuntimeError) {
	var out strings.Builder
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			out.WriteByte(c)
			out.WriteByte(s[i+1])
			i += 2
			continue
		}
		if c == '$' && i+1 < len(s) && s[i+1] == '{' {
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				out.WriteByte(c)
				i++
				continue
			}
			name := s[i+2 : i+2+end]
			v, ok := lookup(name)
			if !ok {
				return "", &RuntimeError{Kind: ErrUndeclaredVariable, Message: "undeclared variable in interpolation: ${" + name + "}"}
			}
			out.WriteString(v.String())
			i = i + 2 + end + 1
			continue
		}
		out.WriteByte(c)
		i++
	}
	return out.String(), nil
}

// collapseEscapes is the final pass, handling exactly the escape set spec
// §4.4.3 names: `\\`, `\n`, `\t`, `\$`, `\{`, `\}` collapse to their meaning;
// `\<space>` elides both the backslash and the space, producing no output
// at all. `\"` is also accepted and collapses to a literal quote — the
// lexer's own string-escaping needs that, even though it's not one of the
// interpolation escapes spec calls out. Anything else after a backslash,
// including a trailing backslash at the end of the string, is fatal:
// ErrBadEscape.
func collapseEscapes(s string) (string, *RuntimeError) {
	var out strings.Builder
	i := 0
	for i < len(s) {
		c := s[i]
		if c != '\\' {
			out.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(s) {
			return "", &RuntimeError{Kind: ErrBadEscape, Message: "trailing backslash at end of string"}
		}
		next := s[i+1]
		switch next {
		case '\\':
			out.WriteByte('\\')
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case '$':
			out.WriteByte('$')
		case '{':
			out.WriteByte('{')
		case '}':
			out.WriteByte('}')
		case '"':
			out.WriteByte('"')
		case ' ':
			// elide both the backslash and the space
		default:
			return "", &RuntimeError{Kind: ErrBadEscape, Message: "unrecognized escape: \\" + string(next)}
		}
		i += 2
	}
	return out.String(), nil
}

func isNameByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
