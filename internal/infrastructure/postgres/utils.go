package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/danmaket/marketplace-api/internal/domain"
)

// SQLSTATE traduits en erreurs de domaine. La classification se fait sur le
// code et le nom de contrainte portés par pgconn.PgError, jamais sur le texte
// du message.
const (
	codeUniqueViolation       = "23505"
	codeInsufficientPrivilege = "42501" // inclut les refus par row-level security
	codeCheckViolation        = "23514"
)

// mapWriteError traduit une erreur d'écriture pgx en erreur de domaine typée,
// ou l'enveloppe avec le nom de l'opération si elle n'est pas classifiable.
func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			if strings.Contains(pgErr.ConstraintName, "slug") {
				return domain.ErrDuplicateSlug
			}
			return domain.ErrDuplicate
		case codeInsufficientPrivilege:
			return domain.ErrPermissionDenied
		case codeCheckViolation:
			return domain.ErrInvalidInput
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
