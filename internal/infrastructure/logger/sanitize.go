package logger

import (
	"fmt"
	"strings"
)

// SanitizeForLog escapes control characters so externally supplied text
// (engine logs, media URLs) cannot forge log entries or emit terminal
// escape sequences. Printable Unicode passes through unchanged.
func SanitizeForLog(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 32 || r == 127:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
