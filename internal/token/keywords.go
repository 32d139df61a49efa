package token

// keywords is the reserved C# keyword set. Contextual keywords are not here.
var keywords = map[string]struct{}{
	"abstract": {}, "as": {}, "base": {}, "bool": {}, "break": {}, "byte": {},
	"case": {}, "catch": {}, "char": {}, "checked": {}, "class": {}, "const": {},
	"continue": {}, "decimal": {}, "default": {}, "delegate": {}, "do": {},
	"double": {}, "else": {}, "enum": {}, "event": {}, "explicit": {},
	"extern": {}, "false": {}, "finally": {}, "fixed": {}, "float": {},
	"for": {}, "foreach": {}, "goto": {}, "if": {}, "implicit": {}, "in": {},
	"int": {}, "interface": {}, "internal": {}, "is": {}, "lock": {},
	"long": {}, "namespace": {}, "new": {}, "null": {}, "object": {},
	"operator": {}, "out": {}, "override": {}, "params": {}, "private": {},
	"protected": {}, "public": {}, "readonly": {}, "ref": {}, "return": {},
	"sbyte": {}, "sealed": {}, "short": {}, "sizeof": {}, "stackalloc": {},
	"static": {}, "string": {}, "struct": {}, "switch": {}, "this": {},
	"throw": {}, "true": {}, "try": {}, "typeof": {}, "uint": {}, "ulong": {},
	"unchecked": {}, "unsafe": {}, "ushort": {}, "using": {}, "virtual": {},
	"void": {}, "volatile": {}, "while": {},
	"__arglist": {}, "__makeref": {}, "__reftype": {}, "__refvalue": {},
}

// LookupKeyword reports whether text is a reserved keyword (case-sensitive).
func LookupKeyword(text string) (Kind, bool) {
	if _, ok := keywords[text]; ok {
		return Keyword, true
	}
	return Ident, false
}
