package dialog

import (
	"strings"

	"github.com/acadbot/ayudante/internal/normalize"
)

// Small-talk phrase lists, in normalized form (lower-case, accent-free).
var (
	greetingPhrases = []string{
		"hola", "buenas", "buenos dias", "buenas tardes", "buenas noches",
		"que tal", "saludos",
	}
	thanksPhrases = []string{
		"gracias", "te agradezco", "muy amable",
	}
	farewellPhrases = []string{
		"adios", "chao", "chau", "hasta luego", "nos vemos", "bye",
	}
	confirmationPhrases = []string{
		"si", "claro", "ok", "dale", "vale", "por supuesto", "obvio",
	}
)

const (
	greetingResponse = "¡Hola! Soy el asistente de reglamentos académicos. " +
		"Pregúntame por un artículo, por ejemplo: \"¿Qué dice el artículo 40 del RAC-1?\"."
	thanksResponse   = "¡Con gusto! Si tienes otra pregunta sobre los reglamentos, aquí estoy."
	farewellResponse = "¡Hasta luego! Vuelve cuando tengas dudas sobre los reglamentos."
)

// matchPhrase reports whether the normalized text contains any of the given
// phrases. Single words must appear as whole words so "si" never matches
// inside "siguiente"; multi-word phrases match as substrings.
func matchPhrase(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.ContainsRune(p, ' ') {
			if strings.Contains(text, p) {
				return true
			}
		} else if normalize.ContainsWord(text, p) {
			return true
		}
	}
	return false
}

// smallTalk returns a canned response when the normalized text is a greeting,
// a thank-you, or a farewell.
func smallTalk(text string) (string, bool) {
	switch {
	case matchPhrase(text, greetingPhrases):
		return greetingResponse, true
	case matchPhrase(text, thanksPhrases):
		return thanksResponse, true
	case matchPhrase(text, farewellPhrases):
		return farewellResponse, true
	}
	return "", false
}

// isConfirmation reports whether the normalized text affirms the previous
// suggestion.
func isConfirmation(text string) bool {
	return matchPhrase(text, confirmationPhrases)
}
