package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/netmute/ctags-writer/pattern"
	"github.com/netmute/ctags-writer/tags"
)

// Xref produces the human-readable, non-machine-parsed columnar
// cross-reference dump (spec §4.5's xref writer): name, kind, line, file,
// and a compacted copy of the originating source line. This bypasses the
// extension-field pipeline entirely except for the compact-input-line
// rendering, which is special-cased here rather than routed through the
// field registry since it needs the source-line reader spec keeps out of
// TagEntry itself.
type Xref struct {
	// NameWidth/KindWidth/LineWidth are printf-style minimum field widths;
	// zero falls back to sane defaults matching typical ctags -x output.
	NameWidth int
	KindWidth int
	LineWidth int

	// CustomFormat, when non-empty, overrides the built-in column layout
	// with a user Printf-style format string (spec's customXfmt option),
	// receiving (name, kind, line, file, compactLine) as %s/%d style
	// arguments in that order.
	CustomFormat string
}

func (x Xref) nameWidth() int {
	if x.NameWidth > 0 {
		return x.NameWidth
	}
	return 16
}
func (x Xref) kindWidth() int {
	if x.KindWidth > 0 {
		return x.KindWidth
	}
	return 10
}
func (x Xref) lineWidth() int {
	if x.LineWidth > 0 {
		return x.LineWidth
	}
	return 4
}

// Write formats and writes one xref row.
func (x Xref) Write(dst io.Writer, entry *tags.TagEntry, reader pattern.LineReader) (int, error) {
	kindName := ""
	if entry.Kind != nil {
		kindName = entry.Kind.Name
	}

	compact := ""
	if line, err := reader(entry.FilePosition); err == nil {
		compact = compactLine(line)
	}

	var row string
	if x.CustomFormat != "" {
		row = fmt.Sprintf(x.CustomFormat, entry.Name, kindName, entry.EffectiveLine(), entry.EffectiveFile(), compact)
	} else {
		row = fmt.Sprintf("%-*s %-*s %*d %s %s\n",
			x.nameWidth(), entry.Name,
			x.kindWidth(), kindName,
			x.lineWidth(), entry.EffectiveLine(),
			entry.EffectiveFile(), compact)
	}
	n, err := io.WriteString(dst, row)
	return n, err
}

// compactLine collapses runs of whitespace to a single space and drops
// leading whitespace, per spec §4.5.
func compactLine(line string) string {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Fields(line)
	return strings.Join(fields, " ")
}
