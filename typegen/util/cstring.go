package util

import (
	"fmt"
	"strings"
)

// CString returns s as a double-quoted C string literal.
// Control bytes use three-digit octal escapes so a following digit can never
// extend the escape. Bytes >= 0x80 pass through as UTF-8.
func CString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '?':
			// Avoid accidental trigraphs
			b.WriteString(`\?`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, `\%03o`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// CComment makes s safe to embed in a /* */ block comment: the closing
// sequence is broken up and the text is collapsed onto one line.
func CComment(s string) string {
	s = strings.ReplaceAll(s, "*/", "* /")
	s = strings.ReplaceAll(s, "/*", "/ *")
	return strings.Join(strings.Fields(s), " ")
}
