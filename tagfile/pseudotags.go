package tagfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/netmute/ctags-writer/options"
)

// pseudoTagLine renders a three-column pseudo-tag line:
// "!_NAME\tVALUE\t/COMMENT/\n" (spec §3's invariant, §4.6's pseudo-tag set).
func pseudoTagLine(name, value, comment string) string {
	return fmt.Sprintf("!_%s\t%s\t/%s/\n", name, value, comment)
}

// pseudoTagLineForLanguage renders the four-column, language-scoped
// variant used for parser-scoped pseudo-tags (spec §4.6).
func pseudoTagLineForLanguage(name, language, value, comment string) string {
	return fmt.Sprintf("!_%s!%s\t%s\t/%s/\n", name, language, value, comment)
}

func sortedValue(s options.SortMode) string {
	switch s {
	case options.Sorted:
		return "1"
	case options.FoldCaseSorted:
		return "2"
	default:
		return "0"
	}
}

// writePseudoTags writes the pseudo-tag metadata lines to the open
// handle. It is a no-op if the handle is nil.
func (tf *TagFile) writePseudoTags() {
	if tf.handle == nil {
		return
	}
	lines := []string{
		pseudoTagLine("TAG_FILE_FORMAT", fmt.Sprintf("%d", tf.opts.TagFileFormat), "number of extension fields"),
		pseudoTagLine("TAG_FILE_SORTED", sortedValue(tf.opts.Sorted), "0=unsorted, 1=sorted, 2=foldcase"),
		pseudoTagLine("TAG_PROGRAM_AUTHOR", orDefault(tf.opts.ProgramAuthor, "unknown"), "program author"),
		pseudoTagLine("TAG_PROGRAM_NAME", orDefault(tf.opts.ProgramName, "ctags-writer"), "program name"),
		pseudoTagLine("TAG_PROGRAM_URL", orDefault(tf.opts.ProgramURL, ""), "program url"),
		pseudoTagLine("TAG_PROGRAM_VERSION", orDefault(tf.opts.ProgramVersion, "0.0.0"), "program version"),
	}
	if tf.opts.OutputEncoding != "" {
		lines = append(lines, pseudoTagLine("TAG_FILE_ENCODING", tf.opts.OutputEncoding, "output encoding"))
	}
	for _, l := range lines {
		io.WriteString(tf.handle, l)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// rewriteSortedFlag walks the leading "!_" pseudo-tag lines of an
// existing tag file opened read-write and, if it finds the
// TAG_FILE_SORTED line, rewrites its single value byte in place so the
// byte length of the file is unchanged (spec §4.6/§8's append-mode
// scenario). It returns an error if the line is absent or its offset
// cannot be seeked to; the caller treats that as a (non-fatal) warning.
func rewriteSortedFlag(f *os.File, sorted options.SortMode) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	reader := bufio.NewReader(f)
	var offset int64
	for {
		line, err := reader.ReadString('\n')
		if len(line) == 0 && err != nil {
			break
		}
		if !strings.HasPrefix(line, "!_") {
			break
		}
		if strings.HasPrefix(line, "!_TAG_FILE_SORTED\t") {
			valueStart := offset + int64(len("!_TAG_FILE_SORTED\t"))
			if _, serr := f.WriteAt([]byte(sortedValue(sorted)), valueStart); serr != nil {
				return serr
			}
			return nil
		}
		offset += int64(len(line))
		if err != nil {
			break
		}
	}
	return fmt.Errorf("TAG_FILE_SORTED pseudo-tag line not found")
}
