package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/erp-stock/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isTxConflict verifica si un error es un conflicto de concurrencia recuperable:
// serialization_failure (40001), deadlock_detected (40P01) o lock_not_available (55P03).
func isTxConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return true
		}
	}
	return false
}

// mapTxError traduce conflictos de concurrencia al sentinel del dominio para
// que el caller distinga "reintentar" de una falla de infraestructura.
func mapTxError(err error) error {
	if err == nil {
		return nil
	}
	if isTxConflict(err) {
		return domain.ErrTxConflict
	}
	return err
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
