package fields

import (
	"strconv"

	"github.com/netmute/ctags-writer/tags"
)

// Tier classifies a built-in descriptor for two purposes: Fixed fields may
// never be disabled (spec's invariant), and the extended writer decides
// whether to emit "key:value" or a bare value based on whether the
// field's tier's "emit field key" toggle is on (spec §4.5).
type Tier int

const (
	TierFixed Tier = iota
	TierClassic
	TierUniversal
)

func always(*tags.TagEntry) bool { return true }

func hasScope(e *tags.TagEntry) bool    { return e.ScopeName != "" || e.ScopeIndex != 0 }
func hasTypeRef(e *tags.TagEntry) bool  { return e.TypeRef.RefName != "" }
func hasInherits(e *tags.TagEntry) bool { return e.Inheritance != "" }
func hasAccess(e *tags.TagEntry) bool   { return e.Access != "" }
func hasImpl(e *tags.TagEntry) bool     { return e.Implementation != "" }
func hasSig(e *tags.TagEntry) bool      { return e.Signature != "" }
func hasRole(e *tags.TagEntry) bool     { return e.RoleIndex != 0 }

func customAvailable(name string) Availability {
	return func(e *tags.TagEntry) bool {
		if e.CustomFields == nil {
			return false
		}
		_, ok := e.CustomFields[name]
		return ok
	}
}

func customRender(name string) RenderFunc {
	return func(e *tags.TagEntry, _ int) (string, bool) {
		return EscapeExtensionValue(e.CustomFields[name]), false
	}
}

// fixedFields returns the tier-1 built-ins: always enabled, never
// disableable. "kind" plus "name"/"file"/"pattern" (which are columns of
// the record, not registry-driven extension fields, per spec §4.5) are
// the core of every extended-format line. Unlike exuberant ctags'
// original single-table scheme, "line" and "language" are not fixed here:
// universal ctags demoted both to ordinary optional fields ('n'/'l'),
// disabled by default, so they are seeded in classicExtensionFields
// instead.
func fixedFields() []Descriptor {
	return []Descriptor{
		{
			Letter: 'k', Name: "kind", Description: "kind of tag", Enabled: true, Fixed: true,
			Language: "any", DataType: DataString, Tier: TierFixed, KeyPolicy: KeyPolicyNever,
			Renderers: map[WriterKind]RenderFunc{
				WriterExtended: func(e *tags.TagEntry, _ int) (string, bool) {
					if e.Kind == nil {
						return "", false
					}
					return string(e.Kind.Letter), false
				},
				WriterXref: func(e *tags.TagEntry, _ int) (string, bool) {
					if e.Kind == nil {
						return "", false
					}
					return e.Kind.Name, false
				},
			},
		},
	}
}

// classicExtensionFields returns the tier-2 built-ins inherited from
// exuberant ctags: disableable, but enabled by default except "line" and
// "language", which universal ctags ships disabled.
func classicExtensionFields() []Descriptor {
	return []Descriptor{
		{
			Letter: 'n', Name: "line", Description: "line number of tag definition", Enabled: false,
			Language: "any", DataType: DataInteger, Tier: TierClassic,
			Renderers: map[WriterKind]RenderFunc{
				WriterExtended: func(e *tags.TagEntry, _ int) (string, bool) {
					return strconv.Itoa(e.EffectiveLine()), false
				},
				WriterXref: func(e *tags.TagEntry, _ int) (string, bool) {
					return strconv.Itoa(e.EffectiveLine()), false
				},
			},
		},
		{
			Letter: 'l', Name: "language", Description: "language of input file", Enabled: false,
			Language: "any", DataType: DataString, Tier: TierClassic,
			Availability: func(e *tags.TagEntry) bool { return e.EffectiveLanguage() != "" },
			Renderers: map[WriterKind]RenderFunc{
				WriterExtended: func(e *tags.TagEntry, _ int) (string, bool) {
					return EscapeExtensionValue(e.EffectiveLanguage()), false
				},
			},
		},
		{
			// scope folds its kind into the value itself ("class:Foo"),
			// so it is never rendered with a "scope:" key regardless of
			// FieldKeysClassic.
			Letter: 's', Name: "scope", Description: "scope of tag definition", Enabled: true,
			Language: "any", DataType: DataString, Tier: TierClassic, KeyPolicy: KeyPolicyNever,
			Availability: hasScope,
			Renderers: map[WriterKind]RenderFunc{
				WriterExtended: func(e *tags.TagEntry, _ int) (string, bool) {
					if e.ScopeKind == "" {
						return EscapeExtensionValue(e.ScopeName), false
					}
					return EscapeExtensionValue(e.ScopeKind) + ":" + EscapeExtensionValue(e.ScopeName), false
				},
			},
		},
		{
			Letter: 't', Name: "typeref", Description: "type and name of a variable or typedef", Enabled: true,
			Language: "any", DataType: DataString, Tier: TierClassic,
			Availability: hasTypeRef,
			Renderers: map[WriterKind]RenderFunc{
				WriterExtended: func(e *tags.TagEntry, _ int) (string, bool) {
					return EscapeExtensionValue(e.TypeRef.KindName) + ":" + EscapeExtensionValue(e.TypeRef.RefName), false
				},
			},
		},
		{
			// A marker field: its value is always empty, so it is always
			// rendered with its "file:" key regardless of FieldKeysClassic
			// — without the key it would be an empty, meaningless column.
			Letter: 'f', Name: "file", Description: "marks tags restricted to file scope", Enabled: true,
			Language: "any", DataType: DataBool, Tier: TierClassic, KeyPolicy: KeyPolicyAlways,
			Availability: func(e *tags.TagEntry) bool { return e.IsFileScope },
			Renderers: map[WriterKind]RenderFunc{
				WriterExtended: func(*tags.TagEntry, int) (string, bool) { return "", false },
			},
		},
		{
			Letter: 'i', Name: "inherits", Description: "list of inherited classes", Enabled: true,
			Language: "any", DataType: DataString, Tier: TierClassic,
			Availability: hasInherits,
			Renderers: map[WriterKind]RenderFunc{
				WriterExtended: func(e *tags.TagEntry, _ int) (string, bool) {
					return EscapeExtensionValue(e.Inheritance), false
				},
			},
		},
		{
			Letter: 'a', Name: "access", Description: "access (public/protected/private) of a member", Enabled: true,
			Language: "any", DataType: DataString, Tier: TierClassic,
			Availability: hasAccess,
			Renderers: map[WriterKind]RenderFunc{
				WriterExtended: func(e *tags.TagEntry, _ int) (string, bool) {
					return EscapeExtensionValue(e.Access), false
				},
			},
		},
		{
			Letter: 'm', Name: "implementation", Description: "implementation information", Enabled: true,
			Language: "any", DataType: DataString, Tier: TierClassic,
			Availability: hasImpl,
			Renderers: map[WriterKind]RenderFunc{
				WriterExtended: func(e *tags.TagEntry, _ int) (string, bool) {
					return EscapeExtensionValue(e.Implementation), false
				},
			},
		},
		{
			Letter: 'S', Name: "signature", Description: "signature of routine", Enabled: true,
			Language: "any", DataType: DataString, Tier: TierClassic,
			Availability: hasSig,
			Renderers: map[WriterKind]RenderFunc{
				WriterExtended: func(e *tags.TagEntry, _ int) (string, bool) {
					return EscapeExtensionValue(e.Signature), false
				},
			},
		},
		{
			Letter: 'r', Name: "role", Description: "role of tag", Enabled: true,
			Language: "any", DataType: DataString, Tier: TierClassic,
			Availability: hasRole,
			Renderers: map[WriterKind]RenderFunc{
				WriterExtended: func(e *tags.TagEntry, _ int) (string, bool) {
					if e.Kind == nil {
						return "", false
					}
					role, ok := e.Kind.RoleAt(e.RoleIndex)
					if !ok {
						return "", false
					}
					return EscapeExtensionValue(role.Name), false
				},
			},
		},
	}
}

// universalExtensionFields returns the tier-3 built-ins added by newer
// universal-ctags-style forks, disabled by default. They have no
// dedicated TagEntry struct field and are sourced from CustomFields,
// matching spec's allowance for parser-registered, language-scoped
// fields that store their values outside the fixed record shape.
func universalExtensionFields() []Descriptor {
	type spec struct {
		letter rune
		name   string
		desc   string
	}
	specs := []spec{
		{'e', "end", "end line number of tag definition"},
		{0, "epoch", "VCS timestamp associated with the tag"},
		{'x', "extras", "extra tag type information"},
		{0, "xpath", "xpath for the tag"},
		{0, "nth", "the order in the parent scope"},
		{'g', "group", "group or namespace of the tag"},
		{0, "properties", "language-specific property list"},
		{0, "macrodef", "macro definition text"},
		{0, "decorators", "decorators or annotations applied to the tag"},
		{0, "since", "language/API version the tag was introduced in"},
		{0, "owner", "owning module or package of the tag"},
		{0, "until", "language/API version the tag was removed in"},
		{0, "category", "parser-defined free-form category"},
		{0, "args", "argument list text, distinct from the full signature"},
	}
	out := make([]Descriptor, 0, len(specs))
	for _, s := range specs {
		out = append(out, Descriptor{
			Letter: s.letter, Name: s.name, Description: s.desc, Enabled: false,
			Language: "any", DataType: DataString, Tier: TierUniversal,
			Availability: customAvailable(s.name),
			Renderers: map[WriterKind]RenderFunc{
				WriterExtended: customRender(s.name),
			},
		})
	}
	return out
}
