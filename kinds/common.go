package kinds

// commonNames is the set of ctags kind names recognized across the major
// language parsers bundled with universal-ctags and its predecessors.
// Adapted from a ctags-consumer's completion-kind lookup table down to
// just the name set itself: a parser is free to register any Kind it
// likes (spec §2 places no restriction on Name), but this set lets a
// caller flag a kind name that looks like a typo rather than a deliberate
// new category.
var commonNames = map[string]bool{
	"alias": true, "arg": true, "attribute": true, "boolean": true,
	"callback": true, "category": true, "ccflag": true, "cell": true,
	"class": true, "collection": true, "command": true, "component": true,
	"config": true, "const": true, "constant": true, "constructor": true,
	"context": true, "counter": true, "data": true, "dataset": true,
	"def": true, "define": true, "delegate": true, "enum": true,
	"enumConstant": true, "enumerator": true, "environment": true,
	"error": true, "event": true, "exception": true, "externvar": true,
	"face": true, "feature": true, "field": true, "fn": true, "fun": true,
	"func": true, "function": true, "functionVar": true, "functor": true,
	"generic": true, "getter": true, "global": true, "globalVar": true,
	"group": true, "guard": true, "handler": true, "icon": true, "id": true,
	"implementation": true, "index": true, "infoitem": true, "inline": true,
	"instance": true, "interface": true, "jurisdiction": true, "key": true,
	"keyword": true, "kind": true, "label": true, "langdef": true,
	"letter": true, "library": true, "list": true, "local": true,
	"localVariable": true, "locale": true, "localvar": true, "macro": true,
	"macroParameter": true, "macrofile": true, "macroparam": true,
	"makefile": true, "map": true, "method": true, "methodSpec": true,
	"minorMode": true, "misc": true, "module": true, "name": true,
	"namespace": true, "nettype": true, "newFile": true, "node": true,
	"object": true, "oneof": true, "operator": true, "option": true,
	"output": true, "package": true, "param": true, "parameter": true,
	"paramEntity": true, "part": true, "pattern": true, "placeholder": true,
	"port": true, "process": true, "property": true, "prototype": true,
	"protocol": true, "provider": true, "publication": true, "qkey": true,
	"receiver": true, "record": true, "reference": true, "region": true,
	"register": true, "repoid": true, "report": true, "repositoryId": true,
	"repr": true, "resource": true, "response": true, "role": true,
	"rpc": true, "schema": true, "script": true, "section": true,
	"selector": true, "sequence": true, "server": true, "service": true,
	"setter": true, "signal": true, "singletonMethod": true, "slot": true,
	"software": true, "sourcefile": true, "standard": true, "string": true,
	"structure": true, "stylesheet": true, "subdir": true, "submethod": true,
	"submodule": true, "subprogram": true, "subprogspec": true,
	"subroutine": true, "subsection": true, "subst": true, "substdef": true,
	"tag": true, "template": true, "test": true, "theme": true,
	"theorem": true, "thriftFile": true, "throwsparam": true, "title": true,
	"token": true, "toplevelVariable": true, "trait": true, "type": true,
	"typealias": true, "typedef": true, "typespec": true, "union": true,
	"unit": true, "username": true, "val": true, "value": true, "var": true,
	"variable": true, "vector": true, "version": true, "video": true,
	"view": true, "wrapper": true, "xdata": true, "xinput": true,
	"xtask": true,
}

// KnownName reports whether name matches a kind name recognized across
// common ctags parsers. It never rejects anything — parsers may define
// any kind name — but a caller surfacing diagnostics can use it to warn
// on an unrecognized name that might be a typo of a common one.
func KnownName(name string) bool {
	return commonNames[name]
}
