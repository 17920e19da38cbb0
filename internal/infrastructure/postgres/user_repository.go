package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/danmaket/marketplace-api/internal/domain/entity"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implémentation du port UserRepository sur PostgreSQL (pool ou tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construit l'adaptateur de persistance des profils.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, email, password_hash, nom, COALESCE(telephone, ''), COALESCE(adresse, ''), statut, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Nom, &u.Telephone, &u.Adresse, &u.Statut, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nouveau profil. ErrEmailAlreadyExists est levé plus haut
// par le cas d'usage ; ici une collision d'unicité devient ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO profiles (id, email, password_hash, nom, telephone, adresse, statut, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Nom, u.Telephone, u.Adresse, u.Statut, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert profile", err)
	}
	return nil
}

// GetByID retourne le profil par ID, nil si absent.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM profiles WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return u, nil
}

// FindByEmail retourne le profil par email, nil si absent.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM profiles WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find profile by email: %w", err)
	}
	return u, nil
}

// Update met à jour les champs modifiables du profil (jamais le mot de passe ici).
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE profiles SET nom = $2, telephone = NULLIF($3, ''), adresse = NULLIF($4, ''), updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, u.ID, u.Nom, u.Telephone, u.Adresse, u.UpdatedAt)
	if err != nil {
		return mapWriteError("update profile", err)
	}
	return nil
}

// UpdateStatut bascule le statut du compte (suspension, réactivation, suppression logique).
func (r *UserRepo) UpdateStatut(ctx context.Context, id, statut string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE profiles SET statut = $2, updated_at = now() WHERE id = $1`,
		id, statut,
	)
	if err != nil {
		return mapWriteError("update profile statut", err)
	}
	return nil
}

// List liste les profils par date d'inscription décroissante, avec pagination.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+userColumns+` FROM profiles ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

// Search recherche par nom ou email (ilike), pour l'outil de recherche admin.
func (r *UserRepo) Search(ctx context.Context, term string, limit int) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+userColumns+` FROM profiles
		 WHERE nom ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
		 ORDER BY created_at DESC LIMIT $2`,
		term, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

// Count compte tous les profils.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return n, nil
}

func collectUsers(rows pgx.Rows) ([]*entity.User, error) {
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implémentation du port RoleRepository sur PostgreSQL.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construit l'adaptateur de persistance des rôles.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// Create ajoute une attribution de rôle.
func (r *RoleRepo) Create(ctx context.Context, a *entity.RoleAssignment) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO user_roles (id, user_id, role, statut, created_at) VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.UserID, a.Role, a.Statut, a.CreatedAt,
	)
	if err != nil {
		return mapWriteError("insert user role", err)
	}
	return nil
}

// ListByUser retourne toutes les attributions de rôle de l'utilisateur.
func (r *RoleRepo) ListByUser(ctx context.Context, userID string) ([]entity.RoleAssignment, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, user_id, role, COALESCE(statut, ''), created_at FROM user_roles WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list user roles: %w", err)
	}
	defer rows.Close()
	return collectRoles(rows)
}

// UpdateStatut bascule le statut d'une attribution (validation vendeur, suspension).
func (r *RoleRepo) UpdateStatut(ctx context.Context, id, statut string) error {
	_, err := r.q.Exec(ctx, `UPDATE user_roles SET statut = $2 WHERE id = $1`, id, statut)
	if err != nil {
		return mapWriteError("update user role statut", err)
	}
	return nil
}

// ListByRoleAndStatut sert la vue "vendeurs en attente" du tableau de bord admin.
func (r *RoleRepo) ListByRoleAndStatut(ctx context.Context, role, statut string) ([]entity.RoleAssignment, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, user_id, role, COALESCE(statut, ''), created_at
		 FROM user_roles WHERE role = $1 AND statut = $2 ORDER BY created_at`,
		role, statut,
	)
	if err != nil {
		return nil, fmt.Errorf("list user roles by statut: %w", err)
	}
	defer rows.Close()
	return collectRoles(rows)
}

func collectRoles(rows pgx.Rows) ([]entity.RoleAssignment, error) {
	var list []entity.RoleAssignment
	for rows.Next() {
		var a entity.RoleAssignment
		if err := rows.Scan(&a.ID, &a.UserID, &a.Role, &a.Statut, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user role: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
