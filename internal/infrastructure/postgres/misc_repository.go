package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/danmaket/marketplace-api/internal/domain/entity"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implémentation du port CategoryRepository sur PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construit l'adaptateur des catégories.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// List retourne toutes les catégories, par nom.
func (r *CategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, nom, slug, COALESCE(description, ''), COALESCE(image_url, ''), created_at
		 FROM categories ORDER BY nom`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Nom, &c.Slug, &c.Description, &c.ImageURL, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan categorie: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetBySlug retourne la catégorie par slug, nil si absente.
func (r *CategoryRepo) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx,
		`SELECT id, nom, slug, COALESCE(description, ''), COALESCE(image_url, ''), created_at
		 FROM categories WHERE slug = $1`, slug,
	).Scan(&c.ID, &c.Nom, &c.Slug, &c.Description, &c.ImageURL, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categorie: %w", err)
	}
	return &c, nil
}

var _ repository.ReviewRepository = (*ReviewRepo)(nil)

// ReviewRepo implémentation du port ReviewRepository sur PostgreSQL.
type ReviewRepo struct {
	q Querier
}

// NewReviewRepository construit l'adaptateur des avis.
func NewReviewRepository(q Querier) *ReviewRepo {
	return &ReviewRepo{q: q}
}

// Create persiste un avis. L'unicité (client, produit) revient en ErrDuplicate.
func (r *ReviewRepo) Create(ctx context.Context, rev *entity.Review) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO avis (id, id_produit, id_client, note, commentaire, created_at)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`,
		rev.ID, rev.ProduitID, rev.ClientID, rev.Note, rev.Commentaire, rev.CreatedAt,
	)
	if err != nil {
		return mapWriteError("insert avis", err)
	}
	return nil
}

// ListByProduit retourne les avis d'un produit, le plus récent d'abord.
func (r *ReviewRepo) ListByProduit(ctx context.Context, produitID string) ([]entity.Review, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, id_produit, id_client, note, COALESCE(commentaire, ''), created_at
		 FROM avis WHERE id_produit = $1 ORDER BY created_at DESC`,
		produitID,
	)
	if err != nil {
		return nil, fmt.Errorf("list avis: %w", err)
	}
	defer rows.Close()

	var list []entity.Review
	for rows.Next() {
		var rev entity.Review
		if err := rows.Scan(&rev.ID, &rev.ProduitID, &rev.ClientID, &rev.Note, &rev.Commentaire, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan avis: %w", err)
		}
		list = append(list, rev)
	}
	return list, rows.Err()
}

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implémentation du port NotificationRepository sur PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construit l'adaptateur des notifications.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste une notification.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO notifications (id, id_utilisateur, message, type, lu, created_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`,
		n.ID, n.UtilisateurID, n.Message, n.Type, n.Lu, n.CreatedAt,
	)
	if err != nil {
		return mapWriteError("insert notification", err)
	}
	return nil
}

// ListByUser retourne les notifications de l'utilisateur, la plus récente d'abord.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]entity.Notification, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, id_utilisateur, message, COALESCE(type, ''), COALESCE(lu, false), created_at
		 FROM notifications WHERE id_utilisateur = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var list []entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UtilisateurID, &n.Message, &n.Type, &n.Lu, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// MarkRead marque une notification comme lue ; le filtre userID empêche de
// marquer celles d'autrui.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE notifications SET lu = true WHERE id = $1 AND id_utilisateur = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// CountUnread compte les notifications non lues de l'utilisateur.
func (r *NotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE id_utilisateur = $1 AND COALESCE(lu, false) = false`,
		userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count notifications non lues: %w", err)
	}
	return n, nil
}

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo implémentation du port ActivityLogRepository sur PostgreSQL.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construit l'adaptateur du journal d'activité.
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Insert ajoute une entrée au journal.
func (r *ActivityLogRepo) Insert(ctx context.Context, l *entity.ActivityLog) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO activity_logs (id, user_id, user_email, action_type, description, ip_address, metadata, created_at)
		 VALUES ($1, NULLIF($2, '')::uuid, NULLIF($3, ''), $4, $5, NULLIF($6, ''), $7, $8)`,
		l.ID, l.UserID, l.UserEmail, l.ActionType, l.Description, l.IPAddress, l.Metadata, l.CreatedAt,
	)
	if err != nil {
		return mapWriteError("insert activity log", err)
	}
	return nil
}

// List retourne le journal filtré (type d'action, recherche texte, limite).
func (r *ActivityLogRepo) List(ctx context.Context, f repository.ActivityLogFilter) ([]entity.ActivityLog, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, COALESCE(user_id::text, ''), COALESCE(user_email, ''), action_type, description,
		        COALESCE(ip_address, ''), COALESCE(metadata, '{}'), created_at
		 FROM activity_logs
		 WHERE ($1 = '' OR action_type = $1)
		   AND ($2 = '' OR user_email ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
		 ORDER BY created_at DESC LIMIT $3`,
		f.ActionType, f.Search, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	var list []entity.ActivityLog
	for rows.Next() {
		var l entity.ActivityLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.UserEmail, &l.ActionType, &l.Description, &l.IPAddress, &l.Metadata, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
