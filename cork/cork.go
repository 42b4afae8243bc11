// Package cork implements the deferred-emission queue ("cork"): while
// corking is enabled, tag records are deep-copied into an owned buffer so
// a parser can receive a stable index for a not-yet-finished scope and
// later attach children to it by that index. On release, queued records
// are flushed in insertion order and scope-index references are resolved
// to fully-qualified scope names (spec §4.4).
package cork

import "github.com/netmute/ctags-writer/tags"

// Queue is a growable ordered buffer of owned TagEntry copies. Index 0 is
// reserved as a null sentinel so that a ScopeIndex of 0 always means "no
// scope", never "the first queued entry".
type Queue struct {
	depth   int
	entries []*tags.TagEntry
}

// Depth returns the current cork nesting depth.
func (q *Queue) Depth() int { return q.depth }

// Corked reports whether the queue is currently buffering (depth > 0).
func (q *Queue) Corked() bool { return q.depth > 0 }

// Cork increments the nesting depth. On the 0->1 transition it allocates
// the backing array with the reserved sentinel at index 0. Nested
// Cork/Uncork pairs are permitted; only the outermost Uncork flushes.
func (q *Queue) Cork() {
	q.depth++
	if q.depth == 1 {
		q.entries = make([]*tags.TagEntry, 1, 64)
		q.entries[0] = &tags.TagEntry{Placeholder: true} // sentinel
	}
}

// Push deep-copies entry into the queue and returns its 1-based index,
// which the caller may later store as a ScopeIndex on a subsequently
// submitted tag. Push panics if called while not corked; callers must
// check Corked() first (make_tag's responsibility in the engine).
func (q *Queue) Push(entry *tags.TagEntry) int {
	if q.depth == 0 {
		panic("cork: Push called while not corked")
	}
	q.entries = append(q.entries, entry.Clone())
	return len(q.entries) - 1
}

// EntryAt returns a borrow of the entry at index i, valid until the next
// Push resizes the backing array. Index 0 always returns the sentinel.
// Cork indices are stable only within one cork session, even though a
// resize can invalidate pointers held elsewhere; callers should re-derive
// pointers from the index rather than cache them across a Push.
func (q *Queue) EntryAt(i int) (*tags.TagEntry, bool) {
	if i < 0 || i >= len(q.entries) {
		return nil, false
	}
	return q.entries[i], true
}

// Count returns the number of real (non-sentinel) entries currently
// queued.
func (q *Queue) Count() int {
	if len(q.entries) == 0 {
		return 0
	}
	return len(q.entries) - 1
}

// FlushFunc is called once per queued entry, in insertion order, during
// Uncork's outermost release. Implementations are expected to format and
// write the entry via the active writer.
type FlushFunc func(entry *tags.TagEntry) error

// Uncork decrements the nesting depth. On the 1->0 transition it resolves
// scope names (see ResolveScopes), flushes every queued entry in order via
// flush, and then releases the backing array. If flush returns an error
// partway through, Uncork stops, releases the queue, and returns the
// error — matching spec §4.7's "write errors are fatal" policy, which
// leaves nothing further to buffer.
func (q *Queue) Uncork(flush FlushFunc) error {
	if q.depth == 0 {
		return nil
	}
	q.depth--
	if q.depth != 0 {
		return nil
	}

	ResolveScopes(q)

	var err error
	for i := 1; i < len(q.entries); i++ {
		e := q.entries[i]
		if e.Placeholder {
			continue
		}
		if ferr := flush(e); ferr != nil {
			err = ferr
			break
		}
	}

	q.entries = nil
	return err
}

// ResolveScopes synthesizes ScopeName for every queued entry whose
// ScopeIndex is non-zero but whose ScopeName is still empty, by walking
// parent chains in the queue and joining non-placeholder ancestor names
// top-to-bottom with ".". Spec's invariant that parent index < child
// index guarantees this walk terminates without needing cycle detection.
func ResolveScopes(q *Queue) {
	for i := 1; i < len(q.entries); i++ {
		e := q.entries[i]
		if e.ScopeIndex == 0 || e.ScopeName != "" {
			continue
		}
		e.ScopeName = scopeChainName(q, e.ScopeIndex)
		if e.ScopeIndex != 0 {
			if parent, ok := q.EntryAt(e.ScopeIndex); ok && parent.Kind != nil {
				e.ScopeKind = parent.Kind.Name
			}
		}
	}
}

func scopeChainName(q *Queue, index int) string {
	var names []string
	for index != 0 {
		entry, ok := q.EntryAt(index)
		if !ok {
			break
		}
		if !entry.Placeholder && entry.Name != "" {
			names = append(names, entry.Name)
		}
		index = entry.ScopeIndex
	}
	// names were collected child-to-parent; reverse to top-to-bottom.
	for l, r := 0, len(names)-1; l < r; l, r = l+1, r-1 {
		names[l], names[r] = names[r], names[l]
	}
	joined := ""
	for i, n := range names {
		if i > 0 {
			joined += "."
		}
		joined += n
	}
	return joined
}
