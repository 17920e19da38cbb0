// Package order porte la machine à états des commandes. Les commandes client
// et les commandes vendeur suivent la même chaîne de statuts ; les contrôles
// sont appliqués côté serveur avant toute écriture — c'est ce service qui fait
// autorité, pas l'interface.
package order

// Statuts d'une commande (client ou vendeur).
const (
	StatutEnAttente = "en_attente"
	StatutEnCours   = "en_cours"
	StatutExpediee  = "expediee"
	StatutLivree    = "livree"
	StatutAnnulee   = "annulee"
)

// next statut suivant dans la chaîne de traitement nominal.
var next = map[string]string{
	StatutEnAttente: StatutEnCours,
	StatutEnCours:   StatutExpediee,
	StatutExpediee:  StatutLivree,
}

// IsTerminal indique si aucun statut n'est atteignable depuis celui-ci.
func IsTerminal(statut string) bool {
	return statut == StatutLivree || statut == StatutAnnulee
}

// CanTransition autorise en_attente -> en_cours -> expediee -> livree, plus
// l'annulation depuis en_attente ou en_cours. Tout le reste est refusé, y
// compris les sauts d'étape et toute sortie d'un statut terminal.
func CanTransition(from, to string) bool {
	if to == StatutAnnulee {
		return CanCancel(from)
	}
	return next[from] == to
}

// CanCancel l'annulation n'est permise que depuis en_attente ou en_cours.
func CanCancel(statut string) bool {
	return statut == StatutEnAttente || statut == StatutEnCours
}

// CanDelete la suppression d'une commande n'est permise que depuis en_attente.
func CanDelete(statut string) bool {
	return statut == StatutEnAttente
}

// Known indique si le statut appartient à l'énumération.
func Known(statut string) bool {
	switch statut {
	case StatutEnAttente, StatutEnCours, StatutExpediee, StatutLivree, StatutAnnulee:
		return true
	}
	return false
}
