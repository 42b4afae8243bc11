// Command tagdump is a small demonstration frontend for the tag-emission
// engine: it reads a stream of already-parsed tag descriptions (one JSON
// object per line, in the same flattened shape netmute-ctags-lsp's
// TagEntry and brian-lai-codetect's CtagsEntry consume on the reading
// side) from stdin or a file, feeds each one through engine.Engine, and
// writes a tag file. It owns no parser logic itself — parsers are out of
// this engine's scope (spec §1) — only flag parsing and JSON decoding.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/netmute/ctags-writer/engine"
	"github.com/netmute/ctags-writer/kinds"
	"github.com/netmute/ctags-writer/options"
	"github.com/netmute/ctags-writer/tagfile"
	"github.com/netmute/ctags-writer/tags"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

// dumpEntry is one line of input: a flattened tag description. Only Name
// and KindLetter are required; everything else defaults to the zero
// value of its field.
type dumpEntry struct {
	Name           string `json:"name"`
	KindLetter     string `json:"kindLetter"`
	KindName       string `json:"kindName"`
	File           string `json:"file"`
	Line           int    `json:"line"`
	SourceLine     string `json:"sourceLine"`
	Language       string `json:"language"`
	Scope          string `json:"scope"`
	ScopeKind      string `json:"scopeKind"`
	TypeRefKind    string `json:"typeRefKind"`
	TypeRefName    string `json:"typeRefName"`
	Access         string `json:"access"`
	Implementation string `json:"implementation"`
	Inheritance    string `json:"inheritance"`
	Signature      string `json:"signature"`
	Role           string `json:"role"`
	FileScope      bool   `json:"fileScope"`
}

func main() {
	var (
		outPath        = flag.StringP("out", "o", "tags", "tag file to write, or \"-\" for stdout")
		inPath         = flag.StringP("in", "i", "", "input JSONL file (defaults to stdin)")
		format         = flag.Int("format", 2, "tag file format: 1=traditional, 2=extended")
		sorted         = flag.String("sorted", "unsorted", "sort mode: unsorted, sorted, foldcase")
		etags          = flag.Bool("etags", false, "emit Emacs-style etags output")
		xref           = flag.Bool("xref", false, "emit a cross-reference columnar dump")
		appendMode     = flag.Bool("append", false, "merge into an existing tag file")
		backward       = flag.Bool("backward", false, "use backward (?) search delimiters")
		patternLimit   = flag.Int("pattern-limit", 96, "maximum pattern column length")
		programName    = flag.String("program-name", "tagdump", "!_TAG_PROGRAM_NAME value")
		programVersion = flag.String("program-version", "0.1.0", "!_TAG_PROGRAM_VERSION value")
		tracing        = flag.Bool("tracing", false, "emit DataDog spans for tagfile lifecycle")
		verbose        = flag.BoolP("verbose", "v", false, "log debug-level diagnostics")
	)
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	opts := options.Defaults()
	opts.TagFileFormat = options.TagFileFormat(*format)
	opts.Sorted = parseSortMode(*sorted)
	opts.Etags = *etags
	opts.Xref = *xref
	opts.Append = *appendMode
	opts.Backward = *backward
	opts.PatternLengthLimit = *patternLimit
	opts.ProgramName = *programName
	opts.ProgramVersion = *programVersion
	opts.TracingEnabled = *tracing

	in := os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			log.WithError(err).Fatal("failed to open input file")
		}
		defer f.Close()
		in = f
	}

	if err := run(*outPath, opts, in, log); err != nil {
		log.WithError(err).Fatal("tagdump failed")
	}
}

func parseSortMode(s string) options.SortMode {
	switch s {
	case "sorted":
		return options.Sorted
	case "foldcase":
		return options.FoldCaseSorted
	default:
		return options.Unsorted
	}
}

func run(outPath string, opts options.Options, in io.Reader, log *logrus.Logger) error {
	lineText := map[int64]string{}
	reader := func(position int64) (string, error) {
		if text, ok := lineText[position]; ok {
			return text, nil
		}
		return "", fmt.Errorf("no cached source line for position %d", position)
	}

	eng, err := engine.Open(engine.Config{
		Path:    outPath,
		Options: opts,
		Reader:  reader,
		Logger:  log,
	})
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	var position int64
	var lastFile string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var de dumpEntry
		if err := json.Unmarshal([]byte(line), &de); err != nil {
			log.WithError(err).Warn("skipping malformed input line")
			continue
		}

		if de.File != lastFile {
			eng.OnNewInputFile()
			lastFile = de.File
		}

		position++
		lineText[position] = de.SourceLine

		if de.KindName != "" && !kinds.KnownName(de.KindName) {
			log.WithField("kind", de.KindName).Debug("kind name not found among common ctags kinds, registering it as-is")
		}

		entry := buildEntry(de, position)
		if _, err := eng.MakeTag(&entry); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	return eng.Close(opts.Append, tagfile.InternalSorter{})
}

func buildEntry(de dumpEntry, position int64) tags.TagEntry {
	var letter rune
	if de.KindLetter != "" {
		letter = []rune(de.KindLetter)[0]
	}
	kind := &kinds.Kind{Letter: letter, Name: de.KindName, Enabled: true}

	var entry tags.TagEntry
	tags.InitTag(&entry, de.Name, kind)
	entry.InputFile = de.File
	entry.InputLanguage = de.Language
	entry.LineNumber = de.Line
	entry.FilePosition = position
	entry.ScopeName = de.Scope
	entry.ScopeKind = de.ScopeKind
	entry.TypeRef = tags.TypeRef{KindName: de.TypeRefKind, RefName: de.TypeRefName}
	entry.Access = de.Access
	entry.Implementation = de.Implementation
	entry.Inheritance = de.Inheritance
	entry.Signature = de.Signature
	entry.IsFileScope = de.FileScope

	if de.Role != "" {
		kind.Roles = append(kind.Roles, kinds.Role{Name: de.Role, Enabled: true})
		entry.RoleIndex = 1
	}

	return entry
}
