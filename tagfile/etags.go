package tagfile

import (
	"io"
	"strings"

	"github.com/netmute/ctags-writer/internal/tagerr"
	"github.com/netmute/ctags-writer/tags"
	"github.com/netmute/ctags-writer/writer"
)

// etagsSidecar accumulates the per-input-file section of Emacs-style
// records and flushes a complete section (header + body) to the main
// handle once the input file changes or the tag file closes, per spec
// §4.5 item 3 / §4.6 ("etags sidecar (temp handle + byte count)" in the
// TagFile data model — here represented as an in-memory accumulator
// rather than a second temp file, since the section must be measured
// before it can be framed by its own header anyway).
type etagsSidecar struct {
	fmt         writer.Etags
	currentFile string
	section     strings.Builder
	totalBytes  int64
}

// writeEtags routes one entry into the etags sidecar accumulator,
// flushing the previous file's section first if entry belongs to a new
// input file.
func (tf *TagFile) writeEtags(entry *tags.TagEntry, reader Reader) error {
	file := entry.EffectiveFile()
	if tf.etags.currentFile != "" && tf.etags.currentFile != file {
		if err := tf.flushEtagsSection(); err != nil {
			return err
		}
	}
	tf.etags.currentFile = file

	record, err := tf.etags.fmt.FormatEntry(entry, reader)
	if err != nil {
		return err
	}
	tf.etags.section.WriteString(record)
	return nil
}

// WriteEtagsInclude emits an include-directive record for the current
// file's section (spec's supplemented include-directive feature, see
// SPEC_FULL.md).
func (tf *TagFile) WriteEtagsInclude(path string) {
	tf.etags.section.WriteString(tf.etags.fmt.FormatInclude(path))
}

func (tf *TagFile) flushEtagsSection() error {
	if tf.etags.currentFile == "" {
		return nil
	}
	body := tf.etags.section.String()
	header := tf.etags.fmt.FormatHeader(tf.etags.currentFile, len(body))

	if _, err := io.WriteString(tf.handle, header); err != nil {
		return tagerr.Fatalf("tagfile", "write", "etags header write failed: %v", err)
	}
	if _, err := io.WriteString(tf.handle, body); err != nil {
		return tagerr.Fatalf("tagfile", "write", "etags section write failed: %v", err)
	}
	tf.etags.totalBytes += int64(len(header) + len(body))

	tf.etags.currentFile = ""
	tf.etags.section.Reset()
	return nil
}

// flushEtagsTail flushes any pending etags section at close time.
func (tf *TagFile) flushEtagsTail() error {
	if !tf.opts.Etags {
		return nil
	}
	return tf.flushEtagsSection()
}
