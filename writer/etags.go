package writer

import (
	"fmt"
	"strings"

	"github.com/netmute/ctags-writer/pattern"
	"github.com/netmute/ctags-writer/tags"
)

// Etags formats Emacs-style sidecar records (spec §4.5 item 3, §6). Unlike
// Traditional/Extended, it does not write directly to the main tag-file
// handle: the tag-file manager accumulates FormatEntry output per input
// file in its sidecar (spec's TagFile.etags sidecar field) and, once a
// file's section is complete, writes FormatHeader followed by that
// section to the main handle.
type Etags struct{}

// FormatEntry renders one etags record. File-scope tags use the
// line-number-only form; others embed the (unescaped, possibly
// name-truncated) source line and the tag's byte offset.
func (Etags) FormatEntry(entry *tags.TagEntry, reader pattern.LineReader) (string, error) {
	if entry.IsFileScope {
		return fmt.Sprintf("\x7f%s\x01%d,0\n", entry.Name, entry.EffectiveLine()), nil
	}

	line, err := reader(entry.FilePosition)
	if err != nil {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if entry.TruncateLine {
		line = cropAtNameInclusive(line, entry.Name)
	}

	return fmt.Sprintf("%s\x7f%s\x01%d,%d\n", line, entry.Name, entry.EffectiveLine(), entry.FilePosition), nil
}

// FormatInclude renders the etags record for an include-style directive
// (spec §6's "Include directives emit \f\n<path>,include\n", a feature
// the distilled operation list omits — see SPEC_FULL.md).
func (Etags) FormatInclude(path string) string {
	return fmt.Sprintf("\f\n%s,include\n", path)
}

// FormatHeader renders the per-file section header that precedes a file's
// concatenated records in the sidecar.
func (Etags) FormatHeader(path string, byteCount int) string {
	return fmt.Sprintf("\f\n%s,%d\n", path, byteCount)
}

func cropAtNameInclusive(line, name string) string {
	if name == "" {
		return line
	}
	idx := strings.Index(line, name)
	if idx < 0 {
		return line
	}
	end := idx + len(name) + 1
	if end > len(line) {
		end = len(line)
	}
	return line[:end]
}
