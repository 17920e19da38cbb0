package dto

import "time"

// RegisterRequest entrée d'inscription. Role vaut client ou vendeur ; un
// vendeur démarre en_attente jusqu'à validation admin.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Nom       string `json:"nom" validate:"required,min=1,max=120"`
	Telephone string `json:"telephone"`
	Adresse   string `json:"adresse"`
	Role      string `json:"role" validate:"required,oneof=client vendeur"`
}

// LoginRequest entrée de connexion.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse sortie de connexion : token + profil + rôle effectif.
type LoginResponse struct {
	Token string       `json:"token"`
	Role  string       `json:"role"`
	User  UserResponse `json:"user"`
}

// UserResponse sortie d'un profil utilisateur.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Nom       string    `json:"nom"`
	Telephone string    `json:"telephone,omitempty"`
	Adresse   string    `json:"adresse,omitempty"`
	Statut    string    `json:"statut"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateProfileRequest mise à jour du profil par son propriétaire.
type UpdateProfileRequest struct {
	Nom       *string `json:"nom" validate:"omitempty,min=1,max=120"`
	Telephone *string `json:"telephone"`
	Adresse   *string `json:"adresse"`
}

// ChangePasswordRequest changement de mot de passe par son propriétaire.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// UserListResponse liste paginée d'utilisateurs (vue admin).
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// PendingSellerResponse un vendeur en attente de validation.
type PendingSellerResponse struct {
	AssignmentID string    `json:"assignment_id"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Nom          string    `json:"nom"`
	CreatedAt    time.Time `json:"created_at"`
}
