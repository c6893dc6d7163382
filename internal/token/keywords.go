package token

var keywords = map[string]Kind{
	"class":      KwClass,
	"interface":  KwInterface,
	"abstract":   KwAbstract,
	"enum":       KwEnum,
	"extends":    KwExtends,
	"implements": KwImplements,
	"title":      KwTitle,
}

// LookupKeyword returns the keyword kind for an identifier spelling.
// Matching is case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

var markers = map[string]Kind{
	"@startuml": StartUml,
	"@enduml":   EndUml,
}

// LookupMarker maps a diagram delimiter spelling to its kind.
func LookupMarker(s string) (Kind, bool) {
	k, ok := markers[s]
	return k, ok
}

var modifiers = map[string]Kind{
	"{static}":   StaticMod,
	"{abstract}": AbstractMod,
}

// LookupModifier maps a `{...}` member modifier to its kind.
func LookupModifier(s string) (Kind, bool) {
	k, ok := modifiers[s]
	return k, ok
}
