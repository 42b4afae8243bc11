package writer

import (
	"strconv"
	"strings"

	"github.com/netmute/ctags-writer/pattern"
	"github.com/netmute/ctags-writer/tags"
)

// EscapeColumn escapes a value destined for the name or file column: tabs,
// newlines, carriage returns and backslashes get their usual backslash
// escapes, and every other control character (0x01..0x1F, 0x7F) is
// rendered as \xHH, so the tab-delimited record structure cannot be
// corrupted (spec §6's external interface grammar: "<name> and <file>
// have control characters and backslashes backslash-escaped").
func EscapeColumn(s string) string {
	if strings.IndexFunc(s, func(r rune) bool { return r == '\\' || r < 0x20 || r == 0x7F }) < 0 {
		return s
	}
	const hex = "0123456789abcdef"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if c < 0x20 || c == 0x7F {
				b.WriteString(`\x`)
				b.WriteByte(hex[c>>4])
				b.WriteByte(hex[c&0x0F])
				continue
			}
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ExAddr builds the search-command-or-line-number "exaddr" column for
// entry: a decimal line number when entry.LineNumberEntry is set, or a
// delimited pattern built (and cached) via the pattern package otherwise.
func ExAddr(entry *tags.TagEntry, reader pattern.LineReader, cache *pattern.Cache, delim pattern.Delimiter, limit int) (string, error) {
	if entry.LineNumberEntry {
		return strconv.Itoa(entry.EffectiveLine()), nil
	}
	return pattern.Build(cache, reader, entry.FilePosition, entry.Name, delim, limit, entry.TruncateLine)
}
