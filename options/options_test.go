package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	o := Defaults()
	assert.Equal(t, FormatExtended, o.TagFileFormat)
	assert.Equal(t, Unsorted, o.Sorted)
	assert.Equal(t, 96, o.PatternLengthLimit)
	assert.True(t, o.FieldKeysClassic)
	assert.True(t, o.FieldKeysUniversal)
}

func TestLoadYAMLOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "opts.yaml")
	content := "sorted: 1\nprogramName: mytags\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	o, err := LoadYAML(path)
	require.NoError(t, err)

	assert.Equal(t, Sorted, o.Sorted)
	assert.Equal(t, "mytags", o.ProgramName)
	// Fields absent from the file keep their Defaults() value.
	assert.Equal(t, FormatExtended, o.TagFileFormat)
	assert.Equal(t, 96, o.PatternLengthLimit)
}

func TestLoadYAMLMissingFile(t *testing.T) {
	_, err := LoadYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
