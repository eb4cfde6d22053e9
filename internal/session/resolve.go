package session

import "strings"

// Resolve substitutes variable references in input using lookup and
// returns the result. It never fails: malformed or unbound references
// are carried through to the output unchanged.
//
// A reference is $NAME or ${NAME}, where NAME starts with a letter or
// underscore and continues with letters, digits, or underscores. The
// bare form reads the longest identifier it can, so $FOOBAR names
// FOOBAR even when FOO is bound; use ${FOO}BAR to stop the name early.
//
// Input is scanned once, left to right. Substituted values are copied
// verbatim and never rescanned, so a value containing $OTHER does not
// trigger a second substitution. A dollar sign that does not begin a
// well-formed reference, such as "$1", "$ ", a trailing "$", or an
// unterminated "${NAME", stays in the output as written.
func Resolve(input string, lookup func(string) (string, bool)) string {
	dollar := strings.IndexByte(input, '$')
	if dollar < 0 {
		return input
	}

	var out strings.Builder
	out.Grow(len(input))
	out.WriteString(input[:dollar])

	i := dollar
	for i < len(input) {
		if input[i] != '$' {
			out.WriteByte(input[i])
			i++
			continue
		}

		if i+1 < len(input) && input[i+1] == '{' {
			if name, end, ok := scanBraced(input, i+2); ok {
				writeRef(&out, input[i:end], name, lookup)
				i = end
				continue
			}
			// Malformed braced form. The dollar is literal and the
			// brace is reconsidered as ordinary text.
			out.WriteByte('$')
			i++
			continue
		}

		if name, end, ok := scanName(input, i+1); ok {
			writeRef(&out, input[i:end], name, lookup)
			i = end
			continue
		}

		out.WriteByte('$')
		i++
	}

	return out.String()
}

// Resolve substitutes variable references in input against the store's
// current bindings.
func (s *Store) Resolve(input string) string {
	return Resolve(input, s.Get)
}

// scanName reads the longest identifier starting at position start and
// returns it with the position just past it.
func scanName(s string, start int) (name string, end int, ok bool) {
	if start >= len(s) || !isNameStart(s[start]) {
		return "", 0, false
	}
	end = start + 1
	for end < len(s) && isNamePart(s[end]) {
		end++
	}
	return s[start:end], end, true
}

// scanBraced reads an identifier starting at position start and requires
// the closing brace directly after it. The returned end position is past
// the brace.
func scanBraced(s string, start int) (name string, end int, ok bool) {
	name, end, ok = scanName(s, start)
	if !ok || end >= len(s) || s[end] != '}' {
		return "", 0, false
	}
	return name, end + 1, true
}

// writeRef appends the value bound to name, or the reference token
// itself when name is unbound.
func writeRef(out *strings.Builder, token, name string, lookup func(string) (string, bool)) {
	if value, ok := lookup(name); ok {
		out.WriteString(value)
		return
	}
	out.WriteString(token)
}

func isNameStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isNamePart(c byte) bool {
	return isNameStart(c) || ('0' <= c && c <= '9')
}
