// Package pattern builds the ctags "exaddr" search-pattern column and
// caches the last built pattern by input-file position (spec §4.3).
package pattern

import "strings"

// LineReader reads the source line at a remembered byte position in the
// currently open input file. It is the "bypass-read hook" spec §4.3
// refers to; input-file reading itself is out of scope for this engine
// (spec §1).
type LineReader func(position int64) (string, error)

// Delimiter is the search-command delimiter character.
type Delimiter byte

const (
	Forward  Delimiter = '/'
	Backward Delimiter = '?'
)

// Cache is the single-slot pattern cache keyed by file position. It owns
// its buffer; callers must call Invalidate whenever state capable of
// affecting output changes (a new input file, in particular), since the
// cache has no way to detect that on its own (spec §4.3, §9).
type Cache struct {
	valid    bool
	position int64
	pattern  string
}

// Invalidate clears the cache. It must be called on any state change that
// could affect subsequently built patterns (e.g. switching input files).
func (c *Cache) Invalidate() {
	c.valid = false
	c.pattern = ""
}

// Build returns the search-pattern string for a tag whose originating
// source line starts at position, using reader to fetch that line.
// truncateLine, when true, crops the line at the first occurrence of name
// (inclusive of one trailing character) before escaping, per spec §4.3.
//
// Repeated calls for the same position with truncateLine false are
// short-circuited by the single-slot cache; truncateLine requests always
// rebuild, since the crop point depends on name and would otherwise be
// cached under a stale key.
func Build(c *Cache, reader LineReader, position int64, name string, delim Delimiter, limit int, truncateLine bool) (string, error) {
	if !truncateLine && c.valid && c.position == position {
		return c.pattern, nil
	}

	line, err := reader(position)
	if err != nil {
		return "", err
	}

	if truncateLine {
		line = cropAtName(line, name)
	}

	built := escapeAndAnchor(line, delim, limit)

	if !truncateLine {
		c.valid = true
		c.position = position
		c.pattern = built
	}
	return built, nil
}

// cropAtName truncates line at the first occurrence of name, keeping one
// trailing character beyond the match (spec §4.3's truncateLine mode).
func cropAtName(line, name string) string {
	if name == "" {
		return line
	}
	idx := strings.Index(line, name)
	if idx < 0 {
		return line
	}
	end := idx + len(name) + 1
	if end > len(line) {
		end = len(line)
	}
	return line[:end]
}

// escapeAndAnchor builds "^<escaped>$" (anchors omitted per the delimiter
// and length-limit rules) and wraps it in the delimiter characters.
func escapeAndAnchor(line string, delim Delimiter, limit int) string {
	var b strings.Builder
	b.WriteByte(byte(delim))
	b.WriteByte('^')

	emitted := 0
	truncated := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '\n' || c == '\r' {
			break
		}
		if limit > 0 && emitted >= limit {
			truncated = true
			break
		}

		switch {
		case c == '\\':
			b.WriteString(`\\`)
			emitted++
		case byte(delim) == c:
			b.WriteByte('\\')
			b.WriteByte(c)
			emitted++
		case c == '$' && i == len(line)-1:
			b.WriteString(`\$`)
			emitted++
		default:
			b.WriteByte(c)
			emitted++
		}
	}

	if !truncated {
		// The trailing-$ escape above only fires for a literal '$' at the
		// true end of line; the anchor itself is appended here unless the
		// length limit cut emission short (spec's boundary behavior).
		b.WriteByte('$')
	}
	b.WriteByte(byte(delim))
	return b.String()
}
