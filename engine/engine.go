// Package engine is the explicit, passed-through context that glues the
// field registry, tag-file manager and cork queue together — the
// non-singleton alternative spec §9 recommends over a set of process-wide
// globals, so tests can construct an isolated Engine per case.
package engine

import (
	"github.com/netmute/ctags-writer/fields"
	"github.com/netmute/ctags-writer/options"
	"github.com/netmute/ctags-writer/pattern"
	"github.com/netmute/ctags-writer/tagfile"
	"github.com/netmute/ctags-writer/tags"
	"github.com/sirupsen/logrus"
)

// NullNamePolicy reports whether the named language permits a tag with an
// empty Name (spec's "input language allows null tags?" predicate).
type NullNamePolicy func(language string) bool

// AllowAllNullNames is a NullNamePolicy that always permits empty names;
// useful for tests and for languages with no such restriction.
func AllowAllNullNames(string) bool { return true }

// DenyAllNullNames is a NullNamePolicy that never permits empty names.
func DenyAllNullNames(string) bool { return false }

// Engine is the single entry point a parser drives: construct one per
// tag-generation run, call MakeTag for every tag, Cork/Uncork around
// scopes that need forward references, and Close when done.
type Engine struct {
	TagFile  *tagfile.TagFile
	Registry *fields.Registry

	reader      pattern.LineReader
	nullPolicy  NullNamePolicy
	log         *logrus.Logger
}

// Config bundles the external collaborators spec §6 lists as inputs the
// core consumes: a line reader and a null-tag-name policy, plus the
// destination Path and an optional Logger. Format and the other knobs
// come from options.Options; the sort stage is passed to Close.
type Config struct {
	Path       string
	Options    options.Options
	Reader     pattern.LineReader
	NullPolicy NullNamePolicy
	Logger     *logrus.Logger
}

// Open constructs a Registry and TagFile and returns a ready-to-use
// Engine.
func Open(cfg Config) (*Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	nullPolicy := cfg.NullPolicy
	if nullPolicy == nil {
		nullPolicy = AllowAllNullNames
	}

	registry := fields.NewRegistry(log)
	tf, err := tagfile.Open(cfg.Path, cfg.Options, registry, log)
	if err != nil {
		return nil, err
	}

	return &Engine{
		TagFile:    tf,
		Registry:   registry,
		reader:     cfg.Reader,
		nullPolicy: nullPolicy,
		log:        log,
	}, nil
}

// MakeTag is spec §4.2's make_tag: the single entry point for emission.
// It returns the cork-queue index (0 if not corked, or if the tag was
// dropped) that a later tag may reference as ScopeIndex. A placeholder
// submitted while corked is queued and gets a real index too.
func (e *Engine) MakeTag(entry *tags.TagEntry) (int, error) {
	allow := e.nullPolicy(entry.EffectiveLanguage())
	return e.TagFile.MakeTag(entry, e.reader, allow)
}

// Cork begins (or nests into) buffered emission.
func (e *Engine) Cork() { e.TagFile.Cork() }

// Uncork ends (or un-nests from) buffered emission, flushing on the
// outermost release.
func (e *Engine) Uncork() error { return e.TagFile.Uncork(e.reader) }

// OnNewInputFile must be called whenever the parser switches to a new
// input file, so the pattern cache does not serve a stale line for a
// reused file position (spec §4.3/§9).
func (e *Engine) OnNewInputFile() {
	e.TagFile.InvalidatePatternCache()
}

// Close finalizes the tag file: flush, optional truncate, sort, and (for
// a stdout destination) copy-and-remove the temp file.
func (e *Engine) Close(resize bool, sorter tagfile.Sorter) error {
	return e.TagFile.Close(resize, sorter)
}
