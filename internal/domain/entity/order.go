package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine une ligne du panier (table panier) : une ligne par produit distinct,
// quantité >= 1. Le produit est joint pour le calcul des totaux.
type CartLine struct {
	ID            string
	UtilisateurID string
	ProduitID     string
	Quantite      int
	Produit       *Product
	CreatedAt     time.Time
}

// Order une commande client (table commandes). Le total est figé à la création.
type Order struct {
	ID               string
	ClientID         string
	Total            decimal.Decimal
	AdresseLivraison string
	MethodePaiement  string
	Statut           string
	CreatedAt        time.Time
	Items            []OrderLine
}

// OrderLine une ligne de commande (table commande_items) : capture immuable du
// prix unitaire au moment de l'achat.
type OrderLine struct {
	ID           string
	CommandeID   string
	ProduitID    string
	Quantite     int
	PrixUnitaire decimal.Decimal
	CreatedAt    time.Time
}

// VendorOrder la part d'une commande attribuable à un vendeur (table
// vendeur_commandes), avancée indépendamment de la commande mère.
type VendorOrder struct {
	ID           string
	CommandeID   string
	VendeurID    string
	ProduitID    string
	Quantite     int
	PrixUnitaire decimal.Decimal
	Statut       string
	CreatedAt    time.Time
}
