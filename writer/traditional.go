package writer

import (
	"fmt"
	"io"

	"github.com/netmute/ctags-writer/pattern"
	"github.com/netmute/ctags-writer/tags"
)

// Traditional formats a tag line in the original ctags format (spec
// §4.5 item 1, §6): "NAME\tFILE\t<exaddr>\n", with no extension-field
// suffix at all.
type Traditional struct {
	Delim pattern.Delimiter
	Limit int
}

// Write formats and writes one entry. It returns the byte length written,
// used by the tag-file manager to track max column widths.
func (t Traditional) Write(dst io.Writer, entry *tags.TagEntry, reader pattern.LineReader, cache *pattern.Cache) (int, error) {
	addr, err := ExAddr(entry, reader, cache, t.Delim, t.Limit)
	if err != nil {
		return 0, err
	}
	line := fmt.Sprintf("%s\t%s\t%s\n", EscapeColumn(entry.Name), EscapeColumn(entry.EffectiveFile()), addr)
	n, err := io.WriteString(dst, line)
	return n, err
}
