package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
)

var _ repository.UnitMeasureRepository = (*UnitMeasureRepo)(nil)

// UnitMeasureRepo implementación de UnitMeasureRepository sobre PostgreSQL (usable con pool o tx).
type UnitMeasureRepo struct {
	q Querier
}

// NewUnitMeasureRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUnitMeasureRepository(q Querier) *UnitMeasureRepo {
	return &UnitMeasureRepo{q: q}
}

// Create persiste una unidad de medida. Code tiene constraint único.
func (r *UnitMeasureRepo) Create(uom *entity.UnitMeasure) error {
	if uom.ID == "" {
		uom.ID = uuid.New().String()
	}
	query := `
		INSERT INTO units_of_measure (id, code, name, is_decimal, created_at)
		VALUES ($1, $2, $3, $4, now())`
	_, err := r.q.Exec(context.Background(), query, uom.ID, uom.Code, uom.Name, uom.IsDecimal)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: unidad %s", domain.ErrDuplicate, uom.Code)
		}
		return fmt.Errorf("insert unit of measure: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad de medida por ID. Devuelve nil si no existe.
func (r *UnitMeasureRepo) GetByID(id string) (*entity.UnitMeasure, error) {
	query := `
		SELECT id, code, name, is_decimal, created_at
		FROM units_of_measure WHERE id = $1`
	var u entity.UnitMeasure
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&u.ID, &u.Code, &u.Name, &u.IsDecimal, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit of measure: %w", err)
	}
	return &u, nil
}
