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

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// StockAdjustmentRepo implementación de StockAdjustmentRepository sobre
// PostgreSQL (usable con pool o tx).
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

// Create persiste encabezado y líneas. Number tiene constraint único.
func (r *StockAdjustmentRepo) Create(adjustment *entity.StockAdjustment) error {
	if adjustment.ID == "" {
		adjustment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_adjustments (id, number, warehouse_id, status, reason, last_post_error, posted_by, posted_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.Number, adjustment.WarehouseID, adjustment.Status,
		nullIfEmpty(adjustment.Reason), adjustment.LastPostError,
		adjustment.PostedBy, adjustment.PostedAt,
		adjustment.CreatedBy, adjustment.CreatedAt, adjustment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ajuste %s", domain.ErrDuplicate, adjustment.Number)
		}
		return fmt.Errorf("insert stock adjustment: %w", err)
	}
	return r.saveLines(adjustment)
}

// GetByID carga encabezado y líneas. Devuelve nil si no existe.
func (r *StockAdjustmentRepo) GetByID(id string) (*entity.StockAdjustment, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea el encabezado (SELECT FOR UPDATE). El posteo recarga
// con este lock para que dos posteos concurrentes del mismo documento se
// serialicen y el segundo vea el estado ya sellado.
func (r *StockAdjustmentRepo) GetForUpdate(id string) (*entity.StockAdjustment, error) {
	return r.get(id, true)
}

func (r *StockAdjustmentRepo) get(id string, forUpdate bool) (*entity.StockAdjustment, error) {
	query := `
		SELECT id, number, warehouse_id, status, COALESCE(reason, ''),
		       last_post_error, posted_by, posted_at, created_by, created_at, updated_at
		FROM stock_adjustments WHERE id = $1`
	if forUpdate {
		query += `
		FOR UPDATE`
	}
	var sa entity.StockAdjustment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&sa.ID, &sa.Number, &sa.WarehouseID, &sa.Status, &sa.Reason,
		&sa.LastPostError, &sa.PostedBy, &sa.PostedAt, &sa.CreatedBy, &sa.CreatedAt, &sa.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock adjustment: %w", err)
	}
	if sa.Lines, err = r.loadLines(sa.ID); err != nil {
		return nil, err
	}
	return &sa, nil
}

func (r *StockAdjustmentRepo) loadLines(adjustmentID string) ([]entity.StockAdjustmentLine, error) {
	query := `
		SELECT id, adjustment_id, line_no, product_id, location_id, batch_id, qty_delta, system_qty, status
		FROM stock_adjustment_lines WHERE adjustment_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("list stock adjustment lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.StockAdjustmentLine
	for rows.Next() {
		var l entity.StockAdjustmentLine
		if err := rows.Scan(&l.ID, &l.AdjustmentID, &l.LineNo, &l.ProductID, &l.LocationID,
			&l.BatchID, &l.QtyDelta, &l.SystemQty, &l.Status); err != nil {
			return nil, fmt.Errorf("scan stock adjustment line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// Save persiste encabezado y líneas tal como están en memoria.
func (r *StockAdjustmentRepo) Save(adjustment *entity.StockAdjustment) error {
	query := `
		UPDATE stock_adjustments
		SET status = $2, reason = $3, last_post_error = $4, posted_by = $5, posted_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.Status, nullIfEmpty(adjustment.Reason), adjustment.LastPostError,
		adjustment.PostedBy, adjustment.PostedAt, adjustment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock adjustment: %w", err)
	}
	return r.saveLines(adjustment)
}

func (r *StockAdjustmentRepo) saveLines(adjustment *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustment_lines (id, adjustment_id, line_no, product_id, location_id, batch_id, qty_delta, system_qty, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status`
	for i := range adjustment.Lines {
		l := &adjustment.Lines[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.AdjustmentID = adjustment.ID
		_, err := r.q.Exec(context.Background(), query,
			l.ID, l.AdjustmentID, l.LineNo, l.ProductID, l.LocationID, l.BatchID,
			l.QtyDelta, l.SystemQty, l.Status,
		)
		if err != nil {
			return fmt.Errorf("upsert stock adjustment line: %w", err)
		}
	}
	return nil
}

// SetPostError registra la última falla de posteo (fuera de la tx abortada).
func (r *StockAdjustmentRepo) SetPostError(id, message string) error {
	query := `UPDATE stock_adjustments SET last_post_error = $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, message); err != nil {
		return fmt.Errorf("set stock adjustment post error: %w", err)
	}
	return nil
}

// ExistsByNumber verifica si ya hay un ajuste con ese número.
func (r *StockAdjustmentRepo) ExistsByNumber(number string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM stock_adjustments WHERE number = $1)`
	if err := r.q.QueryRow(context.Background(), query, number).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists stock adjustment: %w", err)
	}
	return exists, nil
}

// List devuelve encabezados paginados, del más reciente al más antiguo.
func (r *StockAdjustmentRepo) List(limit, offset int) ([]*entity.StockAdjustment, error) {
	query := `
		SELECT id, number, warehouse_id, status, COALESCE(reason, ''),
		       last_post_error, posted_by, posted_at, created_by, created_at, updated_at
		FROM stock_adjustments ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock adjustments: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAdjustment
	for rows.Next() {
		var sa entity.StockAdjustment
		if err := rows.Scan(&sa.ID, &sa.Number, &sa.WarehouseID, &sa.Status, &sa.Reason,
			&sa.LastPostError, &sa.PostedBy, &sa.PostedAt,
			&sa.CreatedBy, &sa.CreatedAt, &sa.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock adjustment: %w", err)
		}
		list = append(list, &sa)
	}
	return list, rows.Err()
}
