package writer

import (
	"io"
	"strings"

	"github.com/netmute/ctags-writer/fields"
	"github.com/netmute/ctags-writer/pattern"
	"github.com/netmute/ctags-writer/tags"
)

// extendedFieldOrder is the fixed extension-field order spec §4.5 names:
// kind, line, language, scope, typeref, fileScope marker, inheritance,
// access, implementation, signature, role.
var extendedFieldOrder = []string{
	"kind", "line", "language", "scope", "typeref", "file",
	"inherits", "access", "implementation", "signature", "role",
}

// Extended formats a tag line in the extended ctags format (spec §4.5
// item 2, §6): as Traditional, then `;"` and tab-separated extension
// fields drawn from the field registry.
type Extended struct {
	Delim    pattern.Delimiter
	Limit    int
	Registry *fields.Registry

	FieldKeysClassic   bool
	FieldKeysUniversal bool
}

// Write formats and writes one entry, returning the byte length written.
func (e Extended) Write(dst io.Writer, entry *tags.TagEntry, reader pattern.LineReader, cache *pattern.Cache) (int, error) {
	addr, err := ExAddr(entry, reader, cache, e.Delim, e.Limit)
	if err != nil {
		return 0, err
	}

	var b strings.Builder
	b.WriteString(EscapeColumn(entry.Name))
	b.WriteByte('\t')
	b.WriteString(EscapeColumn(entry.EffectiveFile()))
	b.WriteByte('\t')
	b.WriteString(addr)
	b.WriteString(`;"`)

	emitted := map[string]bool{}
	for _, name := range extendedFieldOrder {
		e.emitOne(&b, name, entry, emitted)
	}

	// Any other enabled, available field (parser-registered or universal
	// tier) not already covered by the fixed order is appended afterward,
	// in registry order, so the extended writer can exercise fields the
	// fixed order doesn't name (spec's universal/parser-registered tiers).
	e.Registry.Iter(func(d *fields.Descriptor) {
		if d.ID == fields.UnknownField || emitted[d.Name] {
			return
		}
		e.emitOne(&b, d.Name, entry, emitted)
	})

	b.WriteByte('\n')
	n, err := io.WriteString(dst, b.String())
	return n, err
}

func (e Extended) emitOne(b *strings.Builder, name string, entry *tags.TagEntry, emitted map[string]bool) {
	emitted[name] = true
	id := e.Registry.FieldForName(name, entry.EffectiveLanguage())
	if id == fields.UnknownField {
		return
	}
	if !e.Registry.FieldHasValue(id, entry) {
		return
	}
	result := e.Registry.RenderField(fields.WriterExtended, id, entry, 0)
	if result.Absent || result.Rejected {
		return
	}

	b.WriteByte('\t')
	if e.emitKey(id) {
		b.WriteString(name)
		b.WriteByte(':')
	}
	b.WriteString(result.Value)
}

func (e Extended) emitKey(id fields.FieldID) bool {
	switch e.Registry.DescriptorKeyPolicy(id) {
	case fields.KeyPolicyNever:
		return false
	case fields.KeyPolicyAlways:
		return true
	}
	switch e.Registry.DescriptorTier(id) {
	case fields.TierClassic:
		return e.FieldKeysClassic
	case fields.TierUniversal:
		return e.FieldKeysUniversal
	default:
		return true // the fixed tier (kind) overrides via KeyPolicyNever above
	}
}
