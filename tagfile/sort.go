package tagfile

import (
	"bufio"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Sorter runs the sort stage over a closed tag file on disk. Spec §2/§6
// deliberately leaves the sort algorithm unspecified ("the sort stage ...
// is invoked; its algorithm is not specified here"); this package
// supplies two interchangeable implementations and callers may supply
// their own.
type Sorter interface {
	Sort(path string, foldCase bool) error
}

// InternalSorter sorts the file's lines in place using Go's sort package.
// Because pseudo-tag lines are prefixed "!_" (0x21, 0x5F), which precedes
// every printable tag-name byte ctags allows in plain ASCII byte order,
// a plain byte-order sort already satisfies spec §6's "pseudo-tags ...
// sort first" requirement without special-casing the header block.
type InternalSorter struct{}

func (InternalSorter) Sort(path string, foldCase bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	lines := make([]string, 0, 1024)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	f.Close()
	if err := scanner.Err(); err != nil {
		return err
	}

	if foldCase {
		sort.SliceStable(lines, func(i, j int) bool {
			return strings.ToLower(lines[i]) < strings.ToLower(lines[j])
		})
	} else {
		sort.Strings(lines)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	w := bufio.NewWriter(out)
	for _, l := range lines {
		w.WriteString(l)
		w.WriteByte('\n')
	}
	return w.Flush()
}

// ExternalSorter spawns the system `sort` utility, matching the pack's
// exec.Command idiom for shelling out to an external tool (grounded on
// netmute-ctags-lsp's ctags invocation). `-f` folds case when requested;
// plain byte-order `sort` already keeps "!_" pseudo-tags first.
type ExternalSorter struct {
	// Command overrides the sort binary name, e.g. for a vendored sort.
	Command string
}

func (e ExternalSorter) Sort(path string, foldCase bool) error {
	bin := e.Command
	if bin == "" {
		bin = "sort"
	}
	args := []string{"-o", path, path}
	if foldCase {
		args = append([]string{"-f"}, args...)
	}
	cmd := exec.Command(bin, args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	return cmd.Run()
}
