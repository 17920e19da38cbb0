package domain

import "errors"

// Erreurs de domaine (sans dépendances externes).
// Les violations détectées côté Postgres sont traduites en erreurs typées par la
// couche de persistance (SQLSTATE -> sentinel), jamais par comparaison de texte.
var (
	ErrNotFound          = errors.New("ressource introuvable")
	ErrUserNotFound      = errors.New("utilisateur introuvable")
	ErrEmailAlreadyExists = errors.New("cet email est déjà enregistré")
	ErrInvalidInput      = errors.New("entrée invalide")
	ErrDuplicate         = errors.New("ressource dupliquée")
	ErrDuplicateSlug     = errors.New("slug déjà utilisé")
	ErrUnauthorized      = errors.New("non autorisé")
	ErrForbidden         = errors.New("accès refusé")
	ErrPermissionDenied  = errors.New("écriture refusée par la politique d'accès")
	ErrConflict          = errors.New("conflit avec l'état actuel")
	ErrInsufficientStock = errors.New("stock insuffisant")
	ErrPriceChanged      = errors.New("le prix d'un produit a changé depuis l'ajout au panier")
	ErrEmptyCart         = errors.New("le panier est vide")
	ErrInvalidTransition = errors.New("transition de statut non autorisée")
	ErrNoRole            = errors.New("aucun rôle effectif")
	ErrFeaturedLimit     = errors.New("limite de produits vedettes atteinte")
	ErrBannerLimit       = errors.New("limite de bannières atteinte")
)
