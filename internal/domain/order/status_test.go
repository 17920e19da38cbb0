package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danmaket/marketplace-api/internal/domain/order"
)

var allStatuts = []string{"en_attente", "en_cours", "expediee", "livree", "annulee"}

func TestCanTransition_ChaineNominale(t *testing.T) {
	assert.True(t, order.CanTransition("en_attente", "en_cours"))
	assert.True(t, order.CanTransition("en_cours", "expediee"))
	assert.True(t, order.CanTransition("expediee", "livree"))
}

func TestCanTransition_SautsInterdits(t *testing.T) {
	assert.False(t, order.CanTransition("en_attente", "expediee"))
	assert.False(t, order.CanTransition("en_attente", "livree"))
	assert.False(t, order.CanTransition("en_cours", "livree"))
}

func TestCanTransition_PasDeRetourArriere(t *testing.T) {
	assert.False(t, order.CanTransition("en_cours", "en_attente"))
	assert.False(t, order.CanTransition("expediee", "en_cours"))
}

func TestCanTransition_Annulation(t *testing.T) {
	assert.True(t, order.CanTransition("en_attente", "annulee"))
	assert.True(t, order.CanTransition("en_cours", "annulee"))
	assert.False(t, order.CanTransition("expediee", "annulee"))
	assert.False(t, order.CanTransition("livree", "annulee"))
}

// Aucune transition ne sort d'un statut terminal.
func TestCanTransition_StatutsTerminaux(t *testing.T) {
	for _, from := range []string{"livree", "annulee"} {
		for _, to := range allStatuts {
			assert.False(t, order.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, order.IsTerminal("livree"))
	assert.True(t, order.IsTerminal("annulee"))
	assert.False(t, order.IsTerminal("en_attente"))
	assert.False(t, order.IsTerminal("en_cours"))
	assert.False(t, order.IsTerminal("expediee"))
}

func TestCanDelete_SeulementEnAttente(t *testing.T) {
	assert.True(t, order.CanDelete("en_attente"))
	for _, s := range []string{"en_cours", "expediee", "livree", "annulee"} {
		assert.False(t, order.CanDelete(s), s)
	}
}

func TestKnown(t *testing.T) {
	for _, s := range allStatuts {
		assert.True(t, order.Known(s), s)
	}
	assert.False(t, order.Known("retournee"))
}
