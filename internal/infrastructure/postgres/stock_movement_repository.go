package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con
// pool o tx). Append-only: no existen UPDATE ni DELETE sobre la tabla.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, kind, product_id, uom_id, quantity, from_location_id, to_location_id,
	       batch_id, reference_type, reference_id, note, created_by, created_at`

// Create persiste un movimiento del ledger.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, kind, product_id, uom_id, quantity, from_location_id, to_location_id, batch_id, reference_type, reference_id, note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.Kind, movement.ProductID, movement.UomID, movement.Quantity,
		movement.FromLocationID, movement.ToLocationID, movement.BatchID,
		movement.Reference.Type, movement.Reference.DocumentID,
		nullIfEmpty(movement.Note), movement.CreatedBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil si no existe.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// ListByReference devuelve los movimientos originados por un documento, en
// orden de creación (vistas de impresión y auditoría).
func (r *StockMovementRepo) ListByReference(ref entity.MovementReference) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY created_at, id`
	return r.list(query, ref.Type, ref.DocumentID)
}

// ListByProduct devuelve los movimientos de un producto, filtrables por rango
// de fechas, del más reciente al más antiguo.
func (r *StockMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.listFiltered("product_id", productID, from, to, limit, offset)
}

// ListByLocation devuelve los movimientos que tocaron una ubicación (como
// origen o destino), filtrables por rango de fechas.
func (r *StockMovementRepo) ListByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE (from_location_id = $1 OR to_location_id = $1)`)
	args := []any{locationID}
	args = appendDateRange(&sb, args, from, to)
	sb.WriteString(fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)
	return r.list(sb.String(), args...)
}

func (r *StockMovementRepo) listFiltered(field, value string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE ` + field + ` = $1`)
	args := []any{value}
	args = appendDateRange(&sb, args, from, to)
	sb.WriteString(fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)
	return r.list(sb.String(), args...)
}

func appendDateRange(sb *strings.Builder, args []any, from, to *time.Time) []any {
	if from != nil {
		args = append(args, *from)
		fmt.Fprintf(sb, " AND created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		fmt.Fprintf(sb, " AND created_at <= $%d", len(args))
	}
	return args
}

func (r *StockMovementRepo) list(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var note *string
	err := row.Scan(
		&m.ID, &m.Kind, &m.ProductID, &m.UomID, &m.Quantity,
		&m.FromLocationID, &m.ToLocationID, &m.BatchID,
		&m.Reference.Type, &m.Reference.DocumentID,
		&note, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if note != nil {
		m.Note = *note
	}
	return &m, nil
}
