package entity

import "time"

// Statuts partagés par les comptes et les attributions de rôle.
const (
	StatutActif     = "actif"
	StatutEnAttente = "en_attente"
	StatutSuspendu  = "suspendu"
	StatutSupprime  = "supprime" // suppression logique, jamais de hard delete
)

// Rôles connus de la plateforme.
const (
	RoleClient  = "client"
	RoleVendeur = "vendeur"
	RoleAdmin   = "admin"
)

// User profil d'un utilisateur (table profiles). L'identité et le mot de passe
// vivent dans la même ligne ; le ou les rôles sont dans user_roles.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Nom          string
	Telephone    string
	Adresse      string
	Statut       string // actif | suspendu | supprime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleAssignment une ligne de user_roles : un utilisateur peut cumuler plusieurs
// rôles (ex. client devenu vendeur). Au plus une ligne par (user, role).
type RoleAssignment struct {
	ID        string
	UserID    string
	Role      string // client | vendeur | admin
	Statut    string // actif | en_attente | suspendu | supprime
	CreatedAt time.Time
}
