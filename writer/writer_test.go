package writer

import (
	"bytes"
	"testing"

	"github.com/netmute/ctags-writer/fields"
	"github.com/netmute/ctags-writer/kinds"
	"github.com/netmute/ctags-writer/pattern"
	"github.com/netmute/ctags-writer/tags"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reader(lines map[int64]string) pattern.LineReader {
	return func(position int64) (string, error) {
		return lines[position], nil
	}
}

func TestTraditionalWrite(t *testing.T) {
	entry := &tags.TagEntry{Name: "main", InputFile: "a.c", FilePosition: 1}
	var buf bytes.Buffer
	var cache pattern.Cache

	tr := Traditional{Delim: pattern.Forward, Limit: 96}
	_, err := tr.Write(&buf, entry, reader(map[int64]string{1: "int main(void) {"}), &cache)
	require.NoError(t, err)
	assert.Equal(t, "main\ta.c\t/^int main(void) {$/\n", buf.String())
}

func TestTraditionalWriteLineNumberEntry(t *testing.T) {
	entry := &tags.TagEntry{Name: "main", InputFile: "a.c", LineNumber: 10, LineNumberEntry: true}
	var buf bytes.Buffer
	var cache pattern.Cache

	tr := Traditional{Delim: pattern.Forward, Limit: 96}
	_, err := tr.Write(&buf, entry, reader(nil), &cache)
	require.NoError(t, err)
	assert.Equal(t, "main\ta.c\t10\n", buf.String())
}

func TestExtendedWriteFixedAndClassicFields(t *testing.T) {
	registry := fields.NewRegistry(logrus.New())
	entry := &tags.TagEntry{
		Name: "main", InputFile: "a.c", InputLanguage: "C",
		Kind: &kinds.Kind{Letter: 'f', Name: "function"},
		FilePosition: 1,
	}
	var buf bytes.Buffer
	var cache pattern.Cache

	ext := Extended{
		Delim: pattern.Forward, Limit: 96, Registry: registry,
		FieldKeysClassic: true, FieldKeysUniversal: true,
	}
	_, err := ext.Write(&buf, entry, reader(map[int64]string{1: "int main(void) {"}), &cache)
	require.NoError(t, err)
	assert.Equal(t, "main\ta.c\t/^int main(void) {$/;\"\tf\n", buf.String(),
		"line/language are disabled by default; kind renders as a bare letter")
}

func TestExtendedWriteLineAndLanguageWhenEnabled(t *testing.T) {
	registry := fields.NewRegistry(logrus.New())
	lineID := registry.FieldForName("line", "any")
	langID := registry.FieldForName("language", "any")
	registry.EnableField(lineID, true, false)
	registry.EnableField(langID, true, false)

	entry := &tags.TagEntry{
		Name: "main", InputFile: "a.c", InputLanguage: "C", LineNumber: 1,
		Kind: &kinds.Kind{Letter: 'f', Name: "function"},
		FilePosition: 1,
	}
	var buf bytes.Buffer
	var cache pattern.Cache
	ext := Extended{
		Delim: pattern.Forward, Limit: 96, Registry: registry,
		FieldKeysClassic: true, FieldKeysUniversal: true,
	}
	_, err := ext.Write(&buf, entry, reader(map[int64]string{1: "int main(void) {"}), &cache)
	require.NoError(t, err)
	assert.Equal(t, "main\ta.c\t/^int main(void) {$/;\"\tf\tline:1\tlanguage:C\n", buf.String())
}

func TestExtendedWriteNestedScope(t *testing.T) {
	registry := fields.NewRegistry(logrus.New())
	entry := &tags.TagEntry{
		Name: "bar", InputFile: "a.cpp", InputLanguage: "C++",
		Kind:      &kinds.Kind{Letter: 'm', Name: "member"},
		ScopeName: "Foo", ScopeKind: "class",
		FilePosition: 1,
	}
	var buf bytes.Buffer
	var cache pattern.Cache
	ext := Extended{Delim: pattern.Forward, Limit: 96, Registry: registry, FieldKeysClassic: true}
	_, err := ext.Write(&buf, entry, reader(map[int64]string{1: "void bar();"}), &cache)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\tclass:Foo\n", "scope has no \"scope:\" key prefix, even with FieldKeysClassic on")
	assert.NotContains(t, buf.String(), "scope:")
}

func TestExtendedWriteWithoutFieldKeys(t *testing.T) {
	registry := fields.NewRegistry(logrus.New())
	entry := &tags.TagEntry{
		Name: "bar", InputFile: "a.c", InputLanguage: "C",
		Kind: &kinds.Kind{Letter: 'm', Name: "member"}, Signature: "(void)",
		FilePosition: 1,
	}
	var buf bytes.Buffer
	var cache pattern.Cache
	ext := Extended{Delim: pattern.Forward, Limit: 96, Registry: registry, FieldKeysClassic: false}
	_, err := ext.Write(&buf, entry, reader(map[int64]string{1: "void bar();"}), &cache)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\t(void)\n", "classic-tier fields render bare when FieldKeysClassic is off")
}

func TestEtagsFormatEntry(t *testing.T) {
	e := Etags{}
	entry := &tags.TagEntry{Name: "main", LineNumber: 5, FilePosition: 123}
	out, err := e.FormatEntry(entry, reader(map[int64]string{123: "int main(void) {\n"}))
	require.NoError(t, err)
	assert.Equal(t, "int main(void) {\x7fmain\x015,123\n", out)
}

func TestEtagsFormatEntryFileScope(t *testing.T) {
	e := Etags{}
	entry := &tags.TagEntry{Name: "staticVar", LineNumber: 9, IsFileScope: true}
	out, err := e.FormatEntry(entry, reader(nil))
	require.NoError(t, err)
	assert.Equal(t, "\x7fstaticVar\x019,0\n", out)
}

func TestEtagsFormatHeaderAndInclude(t *testing.T) {
	e := Etags{}
	assert.Equal(t, "\f\na.c,42\n", e.FormatHeader("a.c", 42))
	assert.Equal(t, "\f\nb.c,include\n", e.FormatInclude("b.c"))
}

func TestXrefWrite(t *testing.T) {
	entry := &tags.TagEntry{
		Name: "main", InputFile: "a.c", LineNumber: 1,
		Kind: &kinds.Kind{Name: "function"}, FilePosition: 1,
	}
	var buf bytes.Buffer
	x := Xref{}
	_, err := x.Write(&buf, entry, reader(map[int64]string{1: "  int   main(void) {  "}))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "main")
	assert.Contains(t, buf.String(), "function")
	assert.Contains(t, buf.String(), "int main(void) {")
}

func TestXrefCustomFormat(t *testing.T) {
	entry := &tags.TagEntry{Name: "main", InputFile: "a.c", LineNumber: 1, Kind: &kinds.Kind{Name: "function"}}
	var buf bytes.Buffer
	x := Xref{CustomFormat: "%s|%s|%d|%s|%s\n"}
	_, err := x.Write(&buf, entry, reader(nil))
	require.NoError(t, err)
	assert.Equal(t, "main|function|1|a.c|\n", buf.String())
}

func TestEscapeColumn(t *testing.T) {
	assert.Equal(t, "plain", EscapeColumn("plain"))
	assert.Equal(t, `a\tb`, EscapeColumn("a\tb"))
	assert.Equal(t, `a\\b`, EscapeColumn(`a\b`))
}
