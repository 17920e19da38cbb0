package role_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danmaket/marketplace-api/internal/domain"
	"github.com/danmaket/marketplace-api/internal/domain/entity"
	"github.com/danmaket/marketplace-api/internal/domain/role"
)

func assignment(r, statut string) entity.RoleAssignment {
	return entity.RoleAssignment{Role: r, Statut: statut}
}

// Un admin actif l'emporte quel que soit le nombre d'autres rôles présents.
func TestResolve_AdminActifPrioritaire(t *testing.T) {
	sets := [][]entity.RoleAssignment{
		{assignment("admin", "actif")},
		{assignment("client", "actif"), assignment("admin", "actif")},
		{assignment("vendeur", "actif"), assignment("admin", "actif"), assignment("client", "suspendu")},
		{assignment("admin", "actif"), assignment("vendeur", "en_attente")},
	}
	for _, set := range sets {
		got, err := role.Resolve(set)
		require.NoError(t, err)
		assert.Equal(t, "admin", got.Role)
		assert.Equal(t, "actif", got.Statut)
	}
}

func TestResolve_VendeurActifMasqueClientActif(t *testing.T) {
	got, err := role.Resolve([]entity.RoleAssignment{
		assignment("client", "actif"),
		assignment("vendeur", "actif"),
	})
	require.NoError(t, err)
	assert.Equal(t, "vendeur", got.Role)
}

// Avec une seule ligne non active, le repli sur l'ensemble complet retient
// cette ligne (un vendeur en_attente accède à son tableau de bord).
func TestResolve_RepliSurLignesNonActives(t *testing.T) {
	got, err := role.Resolve([]entity.RoleAssignment{
		assignment("vendeur", "en_attente"),
	})
	require.NoError(t, err)
	assert.Equal(t, "vendeur", got.Role)
	assert.Equal(t, "en_attente", got.Statut)
}

// Une ligne active éclipse les lignes inactives, même de priorité supérieure :
// un admin suspendu avec un rôle client actif est servi comme client.
func TestResolve_ActifPrimeSurPriorite(t *testing.T) {
	got, err := role.Resolve([]entity.RoleAssignment{
		assignment("admin", "suspendu"),
		assignment("client", "actif"),
	})
	require.NoError(t, err)
	assert.Equal(t, "client", got.Role)
}

func TestResolve_EnsembleVide(t *testing.T) {
	_, err := role.Resolve(nil)
	assert.ErrorIs(t, err, domain.ErrNoRole)
}

// Des libellés hors énumération ne donnent jamais lieu à un choix arbitraire.
func TestResolve_RoleInconnu(t *testing.T) {
	_, err := role.Resolve([]entity.RoleAssignment{
		assignment("moderateur", "actif"),
	})
	assert.ErrorIs(t, err, domain.ErrNoRole)
}
