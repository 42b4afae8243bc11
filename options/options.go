// Package options defines the Options value the engine reads to select
// writer flavor, sort behavior, and the other configuration knobs listed
// in spec §6. Parsing Options from a CLI or a config file is explicitly
// out of the engine's scope (spec §1); this package only supplies the
// value type plus convenience constructors, following
// mdzesseis-log_capturer_go's "defaults, then file" loader shape for the
// file-backed one; environment variables are not consulted.
package options

import (
	"os"

	"gopkg.in/yaml.v2"
)

// TagFileFormat selects the traditional or extended writer (spec §6).
type TagFileFormat int

const (
	FormatTraditional TagFileFormat = 1
	FormatExtended    TagFileFormat = 2
)

// SortMode controls the sort stage and the TAG_FILE_SORTED pseudo-tag.
type SortMode int

const (
	Unsorted SortMode = iota
	Sorted
	FoldCaseSorted
)

// Options mirrors spec §6's configuration table.
type Options struct {
	TagFileFormat TagFileFormat `yaml:"tagFileFormat"`
	Sorted        SortMode      `yaml:"sorted"`
	Etags         bool          `yaml:"etags"`
	Xref          bool          `yaml:"xref"`
	Append        bool          `yaml:"append"`
	Backward      bool          `yaml:"backward"`

	PatternLengthLimit int  `yaml:"patternLengthLimit"`
	LineDirectives     bool `yaml:"lineDirectives"`
	PutFieldPrefix     bool `yaml:"putFieldPrefix"`

	OutputEncoding string `yaml:"outputEncoding"`
	CustomXfmt     string `yaml:"customXfmt"`

	// FieldKeysClassic/FieldKeysUniversal are the per-family "emit field
	// key" toggles spec §4.5 names: when on, a tier's fields are written
	// as "key:value"; when off, as a bare value.
	FieldKeysClassic   bool `yaml:"fieldKeysClassic"`
	FieldKeysUniversal bool `yaml:"fieldKeysUniversal"`

	// TracingEnabled is an ambient observability knob, additive to
	// spec §6's functional option set (see SPEC_FULL.md).
	TracingEnabled bool `yaml:"tracingEnabled"`

	ProgramName    string `yaml:"programName"`
	ProgramVersion string `yaml:"programVersion"`
	ProgramAuthor  string `yaml:"programAuthor"`
	ProgramURL     string `yaml:"programUrl"`
}

// Defaults returns the traditional-ctags-compatible default: extended
// format, unsorted, forward search, a 96-character pattern limit, both
// field-key families on.
func Defaults() Options {
	return Options{
		TagFileFormat:      FormatExtended,
		Sorted:             Unsorted,
		PatternLengthLimit: 96,
		FieldKeysClassic:   true,
		FieldKeysUniversal: true,
		ProgramName:        "ctags-writer",
	}
}

// LoadYAML reads a YAML file into Options, starting from Defaults() and
// overriding only the fields present in the file.
func LoadYAML(path string) (Options, error) {
	opts := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, err
	}
	return opts, nil
}
