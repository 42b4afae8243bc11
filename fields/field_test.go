package fields

import (
	"testing"

	"github.com/netmute/ctags-writer/kinds"
	"github.com/netmute/ctags-writer/tags"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel) // keep test output quiet
	return log
}

func TestNewRegistrySeedsFixedFieldsFirst(t *testing.T) {
	r := NewRegistry(testLogger())

	kindID := r.FieldForLetter('k')
	require.NotEqual(t, UnknownField, kindID)
	assert.Equal(t, "kind", r.FieldName(kindID))
	assert.True(t, r.FieldEnabled(kindID))
}

func TestFieldForLetterUnknown(t *testing.T) {
	r := NewRegistry(testLogger())
	assert.Equal(t, UnknownField, r.FieldForLetter('Z'))
}

func TestEnableFieldRefusesToDisableFixed(t *testing.T) {
	r := NewRegistry(testLogger())
	kindID := r.FieldForLetter('k')

	prev := r.EnableField(kindID, false, true)
	assert.True(t, prev)
	assert.True(t, r.FieldEnabled(kindID), "a fixed field must stay enabled despite the request")
}

func TestEnableFieldTogglesNonFixed(t *testing.T) {
	r := NewRegistry(testLogger())
	scopeID := r.FieldForName("scope", "any")
	require.NotEqual(t, UnknownField, scopeID)
	assert.True(t, r.FieldEnabled(scopeID))

	prev := r.EnableField(scopeID, false, true)
	assert.True(t, prev)
	assert.False(t, r.FieldEnabled(scopeID))
}

func TestDefineFieldSiblingChain(t *testing.T) {
	r := NewRegistry(testLogger())
	scopeID := r.FieldForName("scope", "any")

	customID := r.DefineField(Descriptor{
		Name: "scope", Enabled: true, DataType: DataString,
		Availability: func(e *tags.TagEntry) bool { return true },
		Renderers: map[WriterKind]RenderFunc{
			WriterExtended: func(e *tags.TagEntry, _ int) (string, bool) { return "custom", false },
		},
	}, "Go")

	assert.Equal(t, customID, r.NextSibling(scopeID))
	// A Go-scoped lookup resolves to the new registration...
	assert.Equal(t, customID, r.FieldForName("scope", "Go"))
	// ...while a lookup for another language still finds the original.
	assert.Equal(t, scopeID, r.FieldForName("scope", "Python"))
}

func TestRenderFieldAbsentWhenNoValue(t *testing.T) {
	r := NewRegistry(testLogger())
	scopeID := r.FieldForName("scope", "any")

	entry := &tags.TagEntry{Name: "bar"} // no ScopeName set
	result := r.RenderField(WriterExtended, scopeID, entry, 0)
	assert.True(t, result.Absent)
}

func TestRenderFieldValue(t *testing.T) {
	r := NewRegistry(testLogger())
	scopeID := r.FieldForName("scope", "any")

	entry := &tags.TagEntry{Name: "bar", ScopeName: "Foo"}
	result := r.RenderField(WriterExtended, scopeID, entry, 0)
	assert.False(t, result.Absent)
	assert.False(t, result.Rejected)
	assert.Equal(t, "Foo", result.Value)
}

func TestRenderFieldRejected(t *testing.T) {
	r := NewRegistry(testLogger())
	id := r.DefineField(Descriptor{
		Name: "broken", Enabled: true,
		Availability: func(*tags.TagEntry) bool { return true },
		Renderers: map[WriterKind]RenderFunc{
			WriterExtended: func(*tags.TagEntry, int) (string, bool) { return "", true },
		},
	}, "any")

	result := r.RenderField(WriterExtended, id, &tags.TagEntry{}, 0)
	assert.True(t, result.Rejected)
	assert.False(t, result.Absent)
}

func TestKindRenderersForBothWriters(t *testing.T) {
	r := NewRegistry(testLogger())
	kindID := r.FieldForLetter('k')
	entry := &tags.TagEntry{Name: "main", Kind: &kinds.Kind{Letter: 'f', Name: "function"}}

	ext := r.RenderField(WriterExtended, kindID, entry, 0)
	assert.Equal(t, "f", ext.Value)

	xref := r.RenderField(WriterXref, kindID, entry, 0)
	assert.Equal(t, "function", xref.Value)
}

func TestDescriptorTierUnresolvedDefaultsUniversal(t *testing.T) {
	r := NewRegistry(testLogger())
	assert.Equal(t, TierUniversal, r.DescriptorTier(FieldID(9999)))
}

func TestIterVisitsSentinel(t *testing.T) {
	r := NewRegistry(testLogger())
	sawSentinel := false
	r.Iter(func(d *Descriptor) {
		if d.ID == UnknownField {
			sawSentinel = true
		}
	})
	assert.True(t, sawSentinel)
}
