package subtitle

import "strings"

// legacy Romanian glyphs, mostly cedilla forms and cp1250 text read as
// latin-1, mapped to the comma-below letters
var diacriticsReplacer = strings.NewReplacer(
	"Ã", "Ă",
	"ã", "ă",
	"Ä", "Ă",
	"ä", "ă",
	"ª", "Ș",
	"Ş", "Ș",
	"º", "ș",
	"ş", "ș",
	"Þ", "Ț",
	"Ţ", "Ț",
	"þ", "ț",
	"ţ", "ț",
)

func FixDiacritics(content string) string {
	return diacriticsReplacer.Replace(content)
}
