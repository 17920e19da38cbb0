package slug

import (
	"math/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const suffixChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// Make dérive un slug URL-safe depuis un nom : minuscules, décomposition NFD,
// suppression des signes diacritiques, toute séquence non alphanumérique remplacée
// par un tiret. "Montre Or" -> "montre-or", "Été Doré" -> "ete-dore".
func Make(name string) string {
	lowered := strings.ToLower(name)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, lowered)
	if err != nil {
		stripped = lowered
	}

	var b strings.Builder
	prevDash := true // évite un tiret en tête
	for _, r := range stripped {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			prevDash = false
			continue
		}
		if !prevDash {
			b.WriteByte('-')
			prevDash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// WithSuffix ajoute un suffixe aléatoire de 4 caractères au slug de base,
// utilisé pour résoudre les collisions d'unicité.
func WithSuffix(base string) string {
	buf := make([]byte, 4)
	for i := range buf {
		buf[i] = suffixChars[rand.Intn(len(suffixChars))]
	}
	return base + "-" + string(buf)
}
