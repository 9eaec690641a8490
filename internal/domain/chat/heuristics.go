package chat

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Palabras reservadas del asistente: nunca se aceptan como nombre ni como
// dirección, para que "help" a mitad del onboarding siga siendo "help".
var reservedKeywords = map[string]struct{}{
	"menu": {}, "help": {}, "hi": {}, "hello": {}, "hey": {},
	"order": {}, "orders": {}, "status": {}, "pay": {}, "paid": {},
	"search": {}, "find": {}, "food": {}, "items": {}, "options": {},
	"stats": {}, "summary": {}, "cancel": {}, "complete": {}, "done": {},
	"delivery": {}, "pickup": {}, "takeaway": {}, "yes": {}, "no": {},
	"ok": {}, "thanks": {}, "how": {}, "commands": {}, "guide": {},
}

var nameFillers = []string{
	"my name is", "i am", "i'm", "name is", "call me",
}

var locationFillers = []string{
	"my location is", "i am at", "i'm at", "location is", "i live at", "address is",
}

var (
	namePattern     = regexp.MustCompile(`^[a-zA-Z][a-zA-Z .'\-]*$`)
	locationPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9 .,()/#&\-]*$`)
)

var titleCaser = cases.Title(language.English)

// isReserved indica si el texto (normalizado) es una palabra reservada del bot
// o cualquier variante de comando de pago.
func isReserved(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	if _, ok := reservedKeywords[lower]; ok {
		return true
	}
	return strings.HasPrefix(lower, "payment")
}

// stripFiller quita un prefijo de relleno ("my name is", "i am at", ...) si existe.
func stripFiller(s string, fillers []string) string {
	lower := strings.ToLower(s)
	for _, f := range fillers {
		if strings.HasPrefix(lower, f+" ") {
			return strings.TrimSpace(s[len(f):])
		}
		if lower == f {
			return ""
		}
	}
	return s
}

// CandidateName valida un posible nombre de cliente. Acepta 2–50 caracteres de
// letras, espacios, guion, apóstrofo y punto tras quitar el relleno; rechaza
// palabras reservadas. El nombre aceptado se devuelve en Title Case.
func CandidateName(raw string) (string, bool) {
	candidate := stripFiller(strings.TrimSpace(raw), nameFillers)
	candidate = strings.TrimSpace(candidate)
	if len(candidate) < 2 || len(candidate) > 50 {
		return "", false
	}
	if !namePattern.MatchString(candidate) {
		return "", false
	}
	if isReserved(candidate) {
		return "", false
	}
	return titleCaser.String(strings.ToLower(candidate)), true
}

// CandidateLocation valida una posible dirección de entrega. Acepta 3–200
// caracteres alfanuméricos más espacios y -.,()/#& tras quitar el relleno;
// rechaza palabras reservadas.
func CandidateLocation(raw string) (string, bool) {
	candidate := stripFiller(strings.TrimSpace(raw), locationFillers)
	candidate = strings.TrimSpace(candidate)
	if len(candidate) < 3 || len(candidate) > 200 {
		return "", false
	}
	if !locationPattern.MatchString(candidate) {
		return "", false
	}
	if isReserved(candidate) {
		return "", false
	}
	return candidate, true
}
