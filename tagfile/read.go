package tagfile

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/netmute/ctags-writer/kinds"
)

// kindDescriptionMap resolves a kind letter back to the kind name recorded
// in a tag file's own !_TAG_KIND_DESCRIPTION pseudo-tag headers, scoped per
// language the same way the extended writer scopes field registrations.
type kindDescriptionMap struct {
	byLanguage map[string]map[string]string
	any        map[string]string
}

func newKindDescriptionMap() *kindDescriptionMap {
	return &kindDescriptionMap{
		byLanguage: make(map[string]map[string]string),
		any:        make(map[string]string),
	}
}

func (m *kindDescriptionMap) add(language, letter, kind string) {
	if language == "" {
		language = "any"
	}
	if _, ok := m.byLanguage[language]; !ok {
		m.byLanguage[language] = make(map[string]string)
	}
	m.byLanguage[language][letter] = kind
	if _, ok := m.any[letter]; !ok {
		m.any[letter] = kind
	}
}

func (m *kindDescriptionMap) resolve(language, letter string) (string, bool) {
	if language != "" {
		if byLang, ok := m.byLanguage[language]; ok {
			if kind, ok := byLang[letter]; ok {
				return kind, true
			}
		}
	}
	kind, ok := m.any[letter]
	return kind, ok
}

func parseKindDescriptionLine(line string, kindMap *kindDescriptionMap) {
	if !strings.HasPrefix(line, "!_TAG_KIND_DESCRIPTION") {
		return
	}
	fields := strings.Split(line, "\t")
	if len(fields) < 2 {
		return
	}

	language := strings.TrimPrefix(fields[0], "!_TAG_KIND_DESCRIPTION")
	if after, ok := strings.CutPrefix(language, "!"); ok {
		language = after
	} else {
		language = ""
	}

	parts := strings.SplitN(fields[1], ",", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return
	}
	kindMap.add(language, parts[0], parts[1])
}

// ParsedTag is one record read back from a traditional or extended tag
// file: the inverse of what writer.Traditional/writer.Extended produce.
// It exists so a round-trip (write, then read back) can be verified
// without a dependency on an external ctags binary.
type ParsedTag struct {
	Name     string
	File     string
	Pattern  string
	Line     int
	Language string
	// Kind is the kind name if the file's own !_TAG_KIND_DESCRIPTION
	// headers resolved the letter, otherwise the raw single-letter code.
	Kind      string
	TypeRef   string
	Scope     string
	ScopeKind string
	Fields    map[string]string
}

// ParseFile reads every non-pseudo-tag line of a traditional or extended
// tag file at path into a ParsedTag, resolving kind letters against the
// file's own !_TAG_KIND_DESCRIPTION pseudo-tags when present.
func ParseFile(path string) ([]ParsedTag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	kindMap := newKindDescriptionMap()
	tagsOut := make([]ParsedTag, 0, 64)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "!_") {
			parseKindDescriptionLine(line, kindMap)
			continue
		}
		if pt, ok := parseTagLine(line, kindMap); ok {
			tagsOut = append(tagsOut, pt)
		}
	}
	return tagsOut, scanner.Err()
}

func parseTagLine(line string, kindMap *kindDescriptionMap) (ParsedTag, bool) {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		return ParsedTag{}, false
	}

	pt := ParsedTag{
		Name: fields[0],
		File: fields[1],
		Fields: make(map[string]string),
	}

	exaddr := fields[2]
	if idx := strings.Index(exaddr, `;"`); idx >= 0 {
		pt.Pattern = exaddr[:idx]
	} else {
		pt.Pattern = exaddr
		if n, err := strconv.Atoi(exaddr); err == nil {
			pt.Line = n
		}
		return pt, true // traditional-format line: no extension fields follow
	}

	kindLetter := ""
	for _, field := range fields[3:] {
		if field == "" {
			continue
		}
		key, value, hasKey := strings.Cut(field, ":")
		if !hasKey {
			// A bare single-letter field with no "key:" prefix is the
			// kind, rendered keyless (spec §8 scenario 1).
			kindLetter = field
			continue
		}
		switch {
		case key == "line":
			if n, err := strconv.Atoi(value); err == nil {
				pt.Line = n
			}
		case key == "language":
			pt.Language = value
		case key == "kind":
			kindLetter = value
		case key == "typeref":
			pt.TypeRef = value
		case kinds.KnownName(key):
			// Scope renders keyless too: the scope kind itself is the
			// field's key (e.g. "class:Foo"), not a literal "scope:" key.
			pt.ScopeKind = key
			pt.Scope = key + ":" + value
		default:
			pt.Fields[key] = value
		}
	}

	if kindLetter != "" {
		if resolved, ok := kindMap.resolve(pt.Language, kindLetter); ok {
			pt.Kind = resolved
		} else {
			pt.Kind = kindLetter
		}
	}

	return pt, true
}
