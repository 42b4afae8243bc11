// Package tags defines TagEntry, the record a parser constructs and hands
// to the engine for emission (spec §3, §4.2).
package tags

import "github.com/netmute/ctags-writer/kinds"

// TypeRef pairs a referenced kind name with the referenced name itself,
// e.g. ("struct", "Widget") for a field typed as "struct Widget".
type TypeRef struct {
	KindName string
	RefName  string
}

// TagEntry is the record passed across the parser/engine boundary. It is
// stack-constructed by the parser and borrowed during synchronous
// emission; when corking is enabled, the engine deep-copies it (via
// Clone) into the cork queue.
type TagEntry struct {
	Name string

	Kind *kinds.Kind

	InputFile    string
	InputLanguage string

	LineNumber int
	FilePosition int64

	// RoleIndex is 0 for a definition, or a 1-based index into Kind.Roles
	// for a non-definition role.
	RoleIndex int

	// ScopeIndex is 0 (no scope) or a cork-queue index returned by an
	// earlier MakeTag call in the same cork session.
	ScopeIndex int
	ScopeName  string
	ScopeKind  string

	TypeRef TypeRef

	Access         string
	Implementation string
	Inheritance    string
	Signature      string

	// SourceFile/SourceLanguage/SourceLine override InputFile/InputLanguage/
	// LineNumber when the tag originates from a region remapped by a
	// #line-style directive, so the emitted location reflects the
	// directive rather than the physical file position.
	SourceFile     string
	SourceLanguage string
	SourceLine     int

	IsFileScope     bool
	TruncateLine    bool
	LineNumberEntry bool
	Placeholder     bool

	// CustomFields holds values for parser-registered, language-scoped
	// fields that have no dedicated struct field here, keyed by field
	// name.
	CustomFields map[string]string

	// Extra is a bitset of feature flags a renderer may consult without a
	// dedicated bool field; the bit assignment is owned by callers.
	Extra uint64
}

// EffectiveFile returns the file name to emit, honoring a #line-directive
// override when present.
func (e *TagEntry) EffectiveFile() string {
	if e.SourceFile != "" {
		return e.SourceFile
	}
	return e.InputFile
}

// EffectiveLanguage returns the language to emit, honoring a #line-directive
// override when present.
func (e *TagEntry) EffectiveLanguage() string {
	if e.SourceLanguage != "" {
		return e.SourceLanguage
	}
	return e.InputLanguage
}

// EffectiveLine returns the line number to emit, honoring a #line-directive
// override when present.
func (e *TagEntry) EffectiveLine() int {
	if e.SourceLine != 0 {
		return e.SourceLine
	}
	return e.LineNumber
}

// IsDefinition reports whether this entry is a plain definition, i.e. its
// RoleIndex is 0.
func (e *TagEntry) IsDefinition() bool {
	return e.RoleIndex == 0
}

// Clone returns a deep copy of e suitable for owning storage in the cork
// queue: every string-backed field and the CustomFields map are copied so
// the original, stack-allocated entry can be reused or discarded by its
// caller without aliasing the queued copy (spec §4.2 step 2, spec §5
// "each queued TagEntry owns its strings").
func (e *TagEntry) Clone() *TagEntry {
	c := *e
	if e.CustomFields != nil {
		c.CustomFields = make(map[string]string, len(e.CustomFields))
		for k, v := range e.CustomFields {
			c.CustomFields[k] = v
		}
	}
	return &c
}

// InitTag resets entry to a definition tag for name/kind (spec §4.2's
// init_tag). Every other field, including InputFile, InputLanguage,
// LineNumber and FilePosition, is zeroed; InitTag does not look up the
// current input position, so callers set those fields after calling it.
func InitTag(entry *TagEntry, name string, kind *kinds.Kind) {
	*entry = TagEntry{
		Name: name,
		Kind: kind,
	}
}

// InitRefTag fills entry with a non-definition tag carrying an explicit
// role index (spec §4.2's init_ref_tag).
func InitRefTag(entry *TagEntry, name string, kind *kinds.Kind, roleIndex int) {
	InitTag(entry, name, kind)
	entry.RoleIndex = roleIndex
}
