package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/danmaket/marketplace-api/internal/application/audit"
	"github.com/danmaket/marketplace-api/internal/application/dto"
	"github.com/danmaket/marketplace-api/internal/domain"
	"github.com/danmaket/marketplace-api/internal/domain/entity"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
	"github.com/danmaket/marketplace-api/internal/domain/role"
	"github.com/danmaket/marketplace-api/pkg/jwt"
)

// JWTConfig paramètres de génération des tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase cas d'usage d'authentification : inscription, connexion, profil.
type AuthUseCase struct {
	users    repository.UserRepository
	roles    repository.RoleRepository
	recorder *audit.Recorder
	jwtCfg   JWTConfig
}

// NewAuthUseCase construit le cas d'usage.
func NewAuthUseCase(users repository.UserRepository, roles repository.RoleRepository, recorder *audit.Recorder, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, roles: roles, recorder: recorder, jwtCfg: jwtCfg}
}

// Register crée le profil et son attribution de rôle. Un client est actif
// immédiatement ; un vendeur démarre en_attente jusqu'à validation admin.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest, ip string) (*dto.UserResponse, error) {
	if in.Role != entity.RoleClient && in.Role != entity.RoleVendeur {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Nom:          in.Nom,
		Telephone:    in.Telephone,
		Adresse:      in.Adresse,
		Statut:       entity.StatutActif,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	roleStatut := entity.StatutActif
	if in.Role == entity.RoleVendeur {
		roleStatut = entity.StatutEnAttente
	}
	assignment := &entity.RoleAssignment{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Role:      in.Role,
		Statut:    roleStatut,
		CreatedAt: now,
	}
	if err := uc.roles.Create(ctx, assignment); err != nil {
		return nil, err
	}

	uc.recorder.Record(ctx, audit.Entry{
		UserID:      user.ID,
		UserEmail:   user.Email,
		ActionType:  entity.ActionSignup,
		Description: "inscription " + in.Role,
		IPAddress:   ip,
	})

	return toUserResponse(user), nil
}

// Login vérifie email/mot de passe, résout le rôle effectif et génère le JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, ip string) (*dto.LoginResponse, error) {
	user, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Statut == entity.StatutSuspendu || user.Statut == entity.StatutSupprime {
		return nil, domain.ErrForbidden
	}

	assignments, err := uc.roles.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	effective, err := role.Resolve(assignments)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, effective.Role, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(ctx, audit.Entry{
		UserID:      user.ID,
		UserEmail:   user.Email,
		ActionType:  entity.ActionLogin,
		Description: "connexion en tant que " + effective.Role,
		IPAddress:   ip,
	})

	return &dto.LoginResponse{
		Token: token,
		Role:  effective.Role,
		User:  *toUserResponse(user),
	}, nil
}

// GetProfile retourne le profil de l'utilisateur connecté.
func (uc *AuthUseCase) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// UpdateProfile met à jour les champs fournis du profil.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.Nom != nil {
		user.Nom = *in.Nom
	}
	if in.Telephone != nil {
		user.Telephone = *in.Telephone
	}
	if in.Adresse != nil {
		user.Adresse = *in.Adresse
	}
	user.UpdatedAt = time.Now()

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ChangePassword vérifie l'ancien mot de passe puis enregistre le nouveau.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string, ip string) error {
	if len(newPassword) < 8 {
		return domain.ErrInvalidInput
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return domain.ErrUnauthorized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return err
	}

	uc.recorder.Record(ctx, audit.Entry{
		UserID:      user.ID,
		UserEmail:   user.Email,
		ActionType:  entity.ActionPasswordChange,
		Description: "changement de mot de passe",
		IPAddress:   ip,
	})
	return nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nom:       u.Nom,
		Telephone: u.Telephone,
		Adresse:   u.Adresse,
		Statut:    u.Statut,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
