// Package kinds holds the value types a parser uses to describe the
// categories of construct it can tag (functions, types, variables, ...)
// and the non-definition roles an identifier can appear in (imported,
// included, ...). Both types are owned and populated by the parser that
// declares them; this package only defines the shape.
package kinds

// Role is a non-definition use of an identifier, such as an import or an
// include. Role index 0 is reserved by the tags package for the
// distinguished "definition" role and never appears in a Kind's Roles
// slice.
type Role struct {
	Name        string
	Description string
	Enabled     bool
}

// Kind is a parser-defined category of tag, e.g. "function" or "struct".
type Kind struct {
	Letter        rune
	Name          string
	Description   string
	Enabled       bool
	ReferenceOnly bool
	Roles         []Role
}

// RoleByName returns the index (1-based, matching TagEntry.RoleIndex) and
// descriptor of the role with the given name, or (0, Role{}, false) if no
// such role is declared on k.
func (k *Kind) RoleByName(name string) (int, Role, bool) {
	for i, r := range k.Roles {
		if r.Name == name {
			return i + 1, r, true
		}
	}
	return 0, Role{}, false
}

// RoleAt returns the role at the given 1-based index. Index 0 always
// denotes the definition role and is not backed by an entry in Roles;
// callers should special-case it before calling RoleAt.
func (k *Kind) RoleAt(index int) (Role, bool) {
	if index <= 0 || index > len(k.Roles) {
		return Role{}, false
	}
	return k.Roles[index-1], true
}

// RoleEnabled reports whether the role at the given index is valid and
// enabled. Index 0 (definition) is always valid and enabled.
func (k *Kind) RoleEnabled(index int) bool {
	if index == 0 {
		return true
	}
	r, ok := k.RoleAt(index)
	return ok && r.Enabled
}
