package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danmaket/marketplace-api/pkg/slug"
)

func TestMake_Basique(t *testing.T) {
	assert.Equal(t, "montre-or", slug.Make("Montre Or"))
}

func TestMake_Accents(t *testing.T) {
	assert.Equal(t, "ete-dore", slug.Make("Été Doré"))
	assert.Equal(t, "creme-a-l-ancienne", slug.Make("Crème à l'ancienne"))
}

func TestMake_CaracteresSpeciaux(t *testing.T) {
	// Les séquences non alphanumériques sont compactées en un seul tiret,
	// sans tiret en tête ni en queue.
	assert.Equal(t, "sac-cuir-100-artisanal", slug.Make("  Sac cuir — 100% artisanal !! "))
}

func TestWithSuffix_Format(t *testing.T) {
	s := slug.WithSuffix("montre-or")
	require.True(t, strings.HasPrefix(s, "montre-or-"))
	suffix := strings.TrimPrefix(s, "montre-or-")
	assert.Len(t, suffix, 4)
	for _, r := range suffix {
		assert.True(t, (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'),
			"le suffixe doit être alphanumérique minuscule")
	}
}
