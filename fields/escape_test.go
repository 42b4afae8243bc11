package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeExtensionValue(t *testing.T) {
	assert.Equal(t, `a\\b`, EscapeExtensionValue(`a\b`))
	assert.Equal(t, `a\tb`, EscapeExtensionValue("a\tb"))
	assert.Equal(t, `a\nb`, EscapeExtensionValue("a\nb"))
	assert.Equal(t, `a\rb`, EscapeExtensionValue("a\rb"))
	assert.Equal(t, `a\x01b`, EscapeExtensionValue("a\x01b"))
	assert.Equal(t, `a\x7fb`, EscapeExtensionValue("a\x7fb"))
	assert.Equal(t, "plain", EscapeExtensionValue("plain"))
}

func TestHasUnescapableControl(t *testing.T) {
	assert.False(t, HasUnescapableControl("no control chars"))
	assert.False(t, HasUnescapableControl("has\ta tab"), "tab is escapable, not unescapable")
	assert.True(t, HasUnescapableControl("has\x01a control byte"))
}
