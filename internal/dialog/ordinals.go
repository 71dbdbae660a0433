package dialog

import (
	"strconv"
	"strings"
)

// ordinalWords maps accent-free Spanish ordinal words to 1-based positions.
// Both genders are accepted ("la primera", "el segundo").
var ordinalWords = map[string]int{
	"primero": 1, "primera": 1, "primer": 1,
	"segundo": 2, "segunda": 2,
	"tercero": 3, "tercera": 3, "tercer": 3,
	"cuarto": 4, "cuarta": 4,
	"quinto": 5, "quinta": 5,
	"sexto": 6, "sexta": 6,
	"septimo": 7, "septima": 7,
	"octavo": 8, "octava": 8,
	"noveno": 9, "novena": 9,
	"decimo": 10, "decima": 10,
}

// parseOrdinalWord returns the 1-based position named by an ordinal word in
// the normalized text, if any.
func parseOrdinalWord(text string) (int, bool) {
	for _, w := range strings.Fields(text) {
		if n, ok := ordinalWords[w]; ok {
			return n, true
		}
	}
	return 0, false
}

// parseDigitSelection returns the first standalone digit token in the
// normalized text ("la 2" -> 2). Callers must ensure the digits are not part
// of a regulation or article reference before treating them as a selection.
func parseDigitSelection(text string) (int, bool) {
	for _, w := range strings.Fields(text) {
		if n, err := strconv.Atoi(w); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}
