// Package fields implements the process-wide field registry: an ordered,
// extensible catalog of named, letter-keyed attributes a tag can carry.
// Built-in fields are seeded in three tiers (fixed, classic-extension,
// universal-extension) so their FieldIDs are deterministic across runs;
// parsers may register additional language-scoped fields at runtime.
//
// Per spec §9's design note, this intentionally does not use function
// pointers to a single untyped table: each descriptor pairs a data-extractor
// (Availability + a per-writer render table) instead of a void*-style
// dispatch table, and only the richer multi-writer shape is kept — the
// legacy single-table field ordering some ctags forks also carry is not
// reproduced (see DESIGN.md).
package fields

import (
	"github.com/netmute/ctags-writer/tags"
	"github.com/sirupsen/logrus"
)

// FieldID indexes into a Registry's descriptor table. The zero value is
// reserved: it denotes the "unknown field" sentinel that lookups return
// when a letter or name does not resolve, per spec §4.7.
type FieldID int

// UnknownField is the reserved sentinel FieldID. Callers that receive it
// from a lookup should treat the field as absent rather than erroring.
const UnknownField FieldID = 0

// WriterKind selects which emitter's render table a field descriptor
// exposes. Only writers that consult the field registry are listed here:
// the traditional writer has no extension fields at all, and the etags
// writer builds its sidecar format outside the field pipeline entirely
// (spec §4.5).
type WriterKind int

const (
	WriterExtended WriterKind = iota
	WriterXref
	// WriterJSON is a reserved seat: no JSON writer ships in this engine,
	// but the render table is shaped to accept one without a schema
	// change, per spec §4.5's "reserved seat" note.
	WriterJSON
)

// DataType is a bitmask describing the Go-level shape of a field's
// rendered value, used by callers (e.g. a strict writer) that need to
// decide up front whether a value can be escaped safely.
type DataType int

const (
	DataString DataType = 1 << iota
	DataInteger
	DataBool
)

// RenderFunc produces the textual value of a field for one TagEntry under
// one writer flavor. It is only called after Descriptor.HasValue reports
// true, so it may assume a value exists; it reports rejected=true when the
// writer's escaping policy cannot represent the value at all (spec §4.7),
// in which case the caller drops the field but keeps the record.
type RenderFunc func(entry *tags.TagEntry, parserFieldIndex int) (value string, rejected bool)

// Availability reports whether a field has a value worth rendering for the
// given entry. A nil Availability on a descriptor means "always available".
type Availability func(entry *tags.TagEntry) bool

// KeyPolicy overrides the tier-based "emit field key" toggle for the
// handful of fields whose "name:" prefix is not governed by
// FieldKeysClassic/FieldKeysUniversal: kind and scope fold their key
// into the rendered value itself (a bare letter, or "kind:name"), and the
// file-scope marker is meaningless without its key, so it is always kept.
type KeyPolicy int

const (
	KeyPolicyDefault KeyPolicy = iota // tier's FieldKeysClassic/Universal toggle decides
	KeyPolicyNever                    // never prefixed, e.g. kind, scope
	KeyPolicyAlways                   // always prefixed, e.g. the file-scope marker
)

// Descriptor is one entry in the field registry.
type Descriptor struct {
	ID          FieldID
	Letter      rune // 0 means no letter assigned
	Name        string
	Description string
	Enabled     bool
	Fixed       bool // fixed fields may not be disabled (spec invariant)
	Tier        Tier
	KeyPolicy   KeyPolicy
	Language    string // "any" for universal fields
	DataType    DataType

	Availability Availability
	Renderers    map[WriterKind]RenderFunc

	// Sibling points to the next (newer) descriptor sharing Name, so a
	// name lookup scoped to a language can walk the chain forward from an
	// older built-in to a parser's later registration of the same name.
	Sibling FieldID
}

// HasValue reports whether d has a renderable value for entry.
func (d *Descriptor) HasValue(entry *tags.TagEntry) bool {
	if d.Availability == nil {
		return true
	}
	return d.Availability(entry)
}

// Registry is the ordered catalog of field descriptors. It is not a
// process-wide global: per spec §9's preference for an explicit context
// over a singleton, callers construct and own one (normally via
// engine.Engine) and pass it through. It performs no internal locking,
// matching the single-threaded cooperative model of spec §5.
type Registry struct {
	descriptors []*Descriptor // index 0 is the Unknown sentinel
	byLetter    map[rune]FieldID
	byNameLang  map[string]FieldID // "<language>\x00<name>" -> latest FieldID
	log         *logrus.Logger
}

// NewRegistry returns a Registry seeded with the built-in field tables, in
// the order fixed, classic-extension, universal-extension, so built-in
// FieldIDs are stable across processes.
func NewRegistry(log *logrus.Logger) *Registry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	r := &Registry{
		descriptors: make([]*Descriptor, 1, 32), // index 0 reserved
		byLetter:    make(map[rune]FieldID),
		byNameLang:  make(map[string]FieldID),
		log:         log,
	}
	r.descriptors[0] = &Descriptor{ID: UnknownField, Name: "unknown"}

	for _, d := range fixedFields() {
		r.seed(d)
	}
	for _, d := range classicExtensionFields() {
		r.seed(d)
	}
	for _, d := range universalExtensionFields() {
		r.seed(d)
	}
	return r
}

// seed registers a built-in descriptor at the next available FieldID,
// without sibling-chaining (built-ins are assumed name-distinct among
// themselves; DefineField handles the chaining case for later
// registrations).
func (r *Registry) seed(d Descriptor) FieldID {
	id := FieldID(len(r.descriptors))
	d.ID = id
	cp := d
	r.descriptors = append(r.descriptors, &cp)
	if d.Letter != 0 {
		r.byLetter[d.Letter] = id
	}
	if d.Name != "" {
		r.byNameLang[nameKey(d.Language, d.Name)] = id
	}
	return id
}

func nameKey(language, name string) string {
	if language == "" {
		language = "any"
	}
	return language + "\x00" + name
}

// FieldForLetter resolves a field letter to its FieldID, or UnknownField
// if no field is registered under that letter.
func (r *Registry) FieldForLetter(letter rune) FieldID {
	if id, ok := r.byLetter[letter]; ok {
		return id
	}
	return UnknownField
}

// FieldForName resolves a field name scoped to a language (or "any") to
// its FieldID, or UnknownField if unresolved. Language-scoped lookups
// fall back to "any" when no language-specific registration exists.
func (r *Registry) FieldForName(name, language string) FieldID {
	if language != "" && language != "any" {
		if id, ok := r.byNameLang[nameKey(language, name)]; ok {
			return id
		}
	}
	if id, ok := r.byNameLang[nameKey("any", name)]; ok {
		return id
	}
	return UnknownField
}

// FieldName returns the descriptor's name, or "" for the Unknown sentinel.
func (r *Registry) FieldName(id FieldID) string {
	d := r.descriptor(id)
	if d == nil {
		return ""
	}
	return d.Name
}

// FieldEnabled reports whether the field is currently enabled.
func (r *Registry) FieldEnabled(id FieldID) bool {
	d := r.descriptor(id)
	return d != nil && d.Enabled
}

// EnableField sets the enabled state of a field, returning its previous
// state. Disabling a Fixed field is refused (a warning is logged) and the
// field's state is left at true, per spec's invariant and §4.1.
func (r *Registry) EnableField(id FieldID, state bool, warnIfFixed bool) bool {
	d := r.descriptor(id)
	if d == nil {
		return false
	}
	prev := d.Enabled
	if d.Fixed && !state {
		if warnIfFixed {
			r.log.WithFields(logrus.Fields{
				"component": "fields",
				"operation": "enable_field",
				"field":     d.Name,
			}).Warn("attempt to disable a fixed field was ignored")
		}
		d.Enabled = true
		return prev
	}
	d.Enabled = state
	return prev
}

// FieldHasValue reports whether the field has a renderable value on entry.
// Unknown fields never have a value.
func (r *Registry) FieldHasValue(id FieldID, entry *tags.TagEntry) bool {
	d := r.descriptor(id)
	if d == nil {
		return false
	}
	return d.HasValue(entry)
}

// RenderResult is the outcome of RenderField.
type RenderResult struct {
	Value    string
	Rejected bool
	Absent   bool
}

// RenderField renders one field for one entry under one writer flavor.
// Unknown fields, disabled fields, and fields without a renderer for the
// requested writer all report Absent.
func (r *Registry) RenderField(writer WriterKind, id FieldID, entry *tags.TagEntry, parserFieldIndex int) RenderResult {
	d := r.descriptor(id)
	if d == nil || !d.Enabled || !d.HasValue(entry) {
		return RenderResult{Absent: true}
	}
	fn, ok := d.Renderers[writer]
	if !ok {
		return RenderResult{Absent: true}
	}
	value, rejected := fn(entry, parserFieldIndex)
	if rejected {
		r.log.WithFields(logrus.Fields{
			"component": "fields",
			"operation": "render_field",
			"field":     d.Name,
		}).Debug("value rejected by writer escaping policy, field dropped")
		return RenderResult{Rejected: true}
	}
	return RenderResult{Value: value}
}

// DefineField registers a new, parser-owned field. If a field with the
// same name is already registered (for "any" or for this language), the
// older descriptor's Sibling is updated to point at the new one so that
// FieldForName scoped to this language still resolves, by chain, to the
// newest registration.
func (r *Registry) DefineField(d Descriptor, language string) FieldID {
	if language == "" {
		language = "any"
	}
	d.Language = language
	key := nameKey(language, d.Name)
	existing, ok := r.byNameLang[key]
	if !ok {
		existing, ok = r.byNameLang[nameKey("any", d.Name)]
	}
	id := r.seed(d)

	// Walk any existing chain for this name and append at the end.
	if ok {
		tail := r.descriptor(existing)
		for tail != nil && tail.Sibling != 0 {
			tail = r.descriptor(tail.Sibling)
		}
		if tail != nil {
			tail.Sibling = id
		}
	}
	r.byNameLang[key] = id
	return id
}

// NextSibling returns the FieldID of the next (newer) registration
// sharing this field's name, or UnknownField if this is the newest (or
// only) one.
func (r *Registry) NextSibling(id FieldID) FieldID {
	d := r.descriptor(id)
	if d == nil {
		return UnknownField
	}
	return d.Sibling
}

// DescriptorTier returns the tier of the given field, or TierUniversal if
// the FieldID does not resolve (a harmless default since an unresolved ID
// never reaches a renderer).
func (r *Registry) DescriptorTier(id FieldID) Tier {
	d := r.descriptor(id)
	if d == nil {
		return TierUniversal
	}
	return d.Tier
}

// DescriptorKeyPolicy returns the given field's KeyPolicy, or
// KeyPolicyDefault if the FieldID does not resolve.
func (r *Registry) DescriptorKeyPolicy(id FieldID) KeyPolicy {
	d := r.descriptor(id)
	if d == nil {
		return KeyPolicyDefault
	}
	return d.KeyPolicy
}

// Iter calls fn for every registered field in FieldID order, including
// the Unknown sentinel at index 0.
func (r *Registry) Iter(fn func(*Descriptor)) {
	for _, d := range r.descriptors {
		fn(d)
	}
}

func (r *Registry) descriptor(id FieldID) *Descriptor {
	if int(id) < 0 || int(id) >= len(r.descriptors) {
		return nil
	}
	return r.descriptors[id]
}
