package keys

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize produces the canonical catalog key for a display name or a
// user-supplied key. Behavior: trims, lower-cases and turns runs of
// spaces, hyphens and underscores into a single underscore, so
// "Quick Attack", "quick-attack" and "QUICK_ATTACK" share one key.
func Normalize(name string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case ' ', '-', '_', '\t':
			sep = true
			continue
		}
		if sep && b.Len() > 0 {
			b.WriteByte('_')
		}
		sep = false
		b.WriteRune(r)
	}
	return b.String()
}

// DisplayName turns a key back into a title-cased name ("quick_attack" ->
// "Quick Attack"). Used when a catalog entry omits its name.
func DisplayName(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(Normalize(key), "_", " "))
}
