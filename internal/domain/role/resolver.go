// Package role détermine le rôle effectif d'un utilisateur à partir de ses
// lignes user_roles. Un utilisateur peut cumuler des rôles au fil du temps
// (client devenu vendeur, etc.) ; l'interface n'affiche qu'un seul tableau de
// bord, et un privilège admin/vendeur ne doit pas être masqué par une ligne
// client plus ancienne.
package role

import (
	"github.com/danmaket/marketplace-api/internal/domain"
	"github.com/danmaket/marketplace-api/internal/domain/entity"
)

// priority ordre fixe de sélection : admin > vendeur > client.
var priority = []string{entity.RoleAdmin, entity.RoleVendeur, entity.RoleClient}

// Resolve retourne l'attribution de rôle effective parmi celles de l'utilisateur.
//
//  1. Aucune ligne : ErrNoRole (l'utilisateur est traité comme non authentifié
//     pour les routes à rôle).
//  2. Les lignes actives (statut actif) sont préférées ; à défaut, toutes les
//     lignes sont candidates (un vendeur en_attente voit quand même son tableau
//     de bord, avec un bandeau de validation).
//  3. Dans l'ensemble retenu, sélection par priorité admin > vendeur > client.
//
// Un ensemble ne contenant que des libellés inconnus est une erreur, pas un
// choix arbitraire : l'énumération des rôles est fermée.
func Resolve(assignments []entity.RoleAssignment) (entity.RoleAssignment, error) {
	if len(assignments) == 0 {
		return entity.RoleAssignment{}, domain.ErrNoRole
	}

	var active []entity.RoleAssignment
	for _, a := range assignments {
		if a.Statut == entity.StatutActif {
			active = append(active, a)
		}
	}
	candidates := assignments
	if len(active) > 0 {
		candidates = active
	}

	for _, r := range priority {
		for _, a := range candidates {
			if a.Role == r {
				return a, nil
			}
		}
	}
	return entity.RoleAssignment{}, domain.ErrNoRole
}
