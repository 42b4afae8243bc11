package fields

import (
	"testing"

	"github.com/netmute/ctags-writer/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinFieldCounts(t *testing.T) {
	r := NewRegistry(testLogger())
	total, fixed, classic, universal := 0, 0, 0, 0
	r.Iter(func(d *Descriptor) {
		if d.ID == UnknownField {
			return
		}
		total++
		switch d.Tier {
		case TierFixed:
			fixed++
		case TierClassic:
			classic++
		case TierUniversal:
			universal++
		}
	})
	assert.Equal(t, 1, fixed, "only kind is truly fixed; line/language are disableable classic fields")
	assert.Equal(t, 10, classic)
	assert.Equal(t, 14, universal)
	assert.Equal(t, 25, total, "~25 built-in fields")
}

func TestLineAndLanguageDisabledByDefault(t *testing.T) {
	r := NewRegistry(testLogger())
	lineID := r.FieldForName("line", "any")
	langID := r.FieldForName("language", "any")
	require.NotEqual(t, UnknownField, lineID)
	require.NotEqual(t, UnknownField, langID)
	assert.False(t, r.FieldEnabled(lineID))
	assert.False(t, r.FieldEnabled(langID))
	assert.False(t, r.descriptor(lineID).Fixed)
	assert.False(t, r.descriptor(langID).Fixed)
}

func TestUniversalFieldsDisabledByDefault(t *testing.T) {
	r := NewRegistry(testLogger())
	id := r.FieldForName("since", "any")
	require.NotEqual(t, UnknownField, id)
	assert.False(t, r.FieldEnabled(id))
}

func TestUniversalFieldSourcedFromCustomFields(t *testing.T) {
	r := NewRegistry(testLogger())
	id := r.FieldForName("since", "any")
	r.EnableField(id, true, false)

	entry := &tags.TagEntry{Name: "Foo"}
	assert.False(t, r.FieldHasValue(id, entry))

	entry.CustomFields = map[string]string{"since": "1.9"}
	assert.True(t, r.FieldHasValue(id, entry))
	result := r.RenderField(WriterExtended, id, entry, 0)
	assert.Equal(t, "1.9", result.Value)
}

func TestTypeRefRendersKindAndName(t *testing.T) {
	r := NewRegistry(testLogger())
	id := r.FieldForName("typeref", "any")
	entry := &tags.TagEntry{
		Name:    "x",
		TypeRef: tags.TypeRef{KindName: "struct", RefName: "Widget"},
	}
	result := r.RenderField(WriterExtended, id, entry, 0)
	assert.Equal(t, "struct:Widget", result.Value)
}

func TestFileScopeFieldAvailability(t *testing.T) {
	r := NewRegistry(testLogger())
	id := r.FieldForName("file", "any")

	entry := &tags.TagEntry{Name: "x"}
	assert.False(t, r.FieldHasValue(id, entry))

	entry.IsFileScope = true
	assert.True(t, r.FieldHasValue(id, entry))
}

func TestFileMarkerAlwaysKeyed(t *testing.T) {
	r := NewRegistry(testLogger())
	id := r.FieldForName("file", "any")
	assert.Equal(t, KeyPolicyAlways, r.DescriptorKeyPolicy(id),
		"an empty-valued marker field is meaningless without its key")
}

func TestKindAndScopeNeverKeyed(t *testing.T) {
	r := NewRegistry(testLogger())
	assert.Equal(t, KeyPolicyNever, r.DescriptorKeyPolicy(r.FieldForLetter('k')))
	assert.Equal(t, KeyPolicyNever, r.DescriptorKeyPolicy(r.FieldForName("scope", "any")))
}
