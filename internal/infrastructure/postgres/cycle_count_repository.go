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

var _ repository.CycleCountRepository = (*CycleCountRepo)(nil)

// CycleCountRepo implementación de CycleCountRepository sobre PostgreSQL
// (usable con pool o tx). Las líneas mutan durante el ciclo (SystemQty al
// iniciar, CountedQty al registrar), por eso el upsert actualiza cantidades.
type CycleCountRepo struct {
	q Querier
}

// NewCycleCountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCycleCountRepository(q Querier) *CycleCountRepo {
	return &CycleCountRepo{q: q}
}

// Create persiste encabezado y líneas. Number tiene constraint único.
func (r *CycleCountRepo) Create(count *entity.CycleCount) error {
	if count.ID == "" {
		count.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cycle_counts (id, number, warehouse_id, status, scheduled_for, notes, last_post_error, started_at, completed_at, posted_by, posted_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		count.ID, count.Number, count.WarehouseID, count.Status, count.ScheduledFor,
		nullIfEmpty(count.Notes), count.LastPostError, count.StartedAt, count.CompletedAt,
		count.PostedBy, count.PostedAt, count.CreatedBy, count.CreatedAt, count.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: conteo %s", domain.ErrDuplicate, count.Number)
		}
		return fmt.Errorf("insert cycle count: %w", err)
	}
	return r.saveLines(count)
}

// GetByID carga encabezado y líneas. Devuelve nil si no existe.
func (r *CycleCountRepo) GetByID(id string) (*entity.CycleCount, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea el encabezado (SELECT FOR UPDATE). El posteo recarga
// con este lock para que dos posteos concurrentes del mismo documento se
// serialicen y el segundo vea el estado ya sellado.
func (r *CycleCountRepo) GetForUpdate(id string) (*entity.CycleCount, error) {
	return r.get(id, true)
}

func (r *CycleCountRepo) get(id string, forUpdate bool) (*entity.CycleCount, error) {
	query := `
		SELECT id, number, warehouse_id, status, scheduled_for, COALESCE(notes, ''),
		       last_post_error, started_at, completed_at, posted_by, posted_at,
		       created_by, created_at, updated_at
		FROM cycle_counts WHERE id = $1`
	if forUpdate {
		query += `
		FOR UPDATE`
	}
	var cc entity.CycleCount
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&cc.ID, &cc.Number, &cc.WarehouseID, &cc.Status, &cc.ScheduledFor, &cc.Notes,
		&cc.LastPostError, &cc.StartedAt, &cc.CompletedAt, &cc.PostedBy, &cc.PostedAt,
		&cc.CreatedBy, &cc.CreatedAt, &cc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cycle count: %w", err)
	}
	if cc.Lines, err = r.loadLines(cc.ID); err != nil {
		return nil, err
	}
	return &cc, nil
}

func (r *CycleCountRepo) loadLines(countID string) ([]entity.CycleCountLine, error) {
	query := `
		SELECT id, count_id, line_no, product_id, location_id, batch_id, uom_id, system_qty, counted_qty, status
		FROM cycle_count_lines WHERE count_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, countID)
	if err != nil {
		return nil, fmt.Errorf("list cycle count lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.CycleCountLine
	for rows.Next() {
		var l entity.CycleCountLine
		if err := rows.Scan(&l.ID, &l.CountID, &l.LineNo, &l.ProductID, &l.LocationID,
			&l.BatchID, &l.UomID, &l.SystemQty, &l.CountedQty, &l.Status); err != nil {
			return nil, fmt.Errorf("scan cycle count line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// Save persiste encabezado y líneas tal como están en memoria.
func (r *CycleCountRepo) Save(count *entity.CycleCount) error {
	query := `
		UPDATE cycle_counts
		SET status = $2, scheduled_for = $3, notes = $4, last_post_error = $5,
		    started_at = $6, completed_at = $7, posted_by = $8, posted_at = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		count.ID, count.Status, count.ScheduledFor, nullIfEmpty(count.Notes), count.LastPostError,
		count.StartedAt, count.CompletedAt, count.PostedBy, count.PostedAt, count.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cycle count: %w", err)
	}
	return r.saveLines(count)
}

func (r *CycleCountRepo) saveLines(count *entity.CycleCount) error {
	query := `
		INSERT INTO cycle_count_lines (id, count_id, line_no, product_id, location_id, batch_id, uom_id, system_qty, counted_qty, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE
		SET system_qty = EXCLUDED.system_qty, counted_qty = EXCLUDED.counted_qty, status = EXCLUDED.status`
	for i := range count.Lines {
		l := &count.Lines[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.CountID = count.ID
		_, err := r.q.Exec(context.Background(), query,
			l.ID, l.CountID, l.LineNo, l.ProductID, l.LocationID, l.BatchID,
			l.UomID, l.SystemQty, l.CountedQty, l.Status,
		)
		if err != nil {
			return fmt.Errorf("upsert cycle count line: %w", err)
		}
	}
	return nil
}

// SetPostError registra la última falla de posteo (fuera de la tx abortada).
func (r *CycleCountRepo) SetPostError(id, message string) error {
	query := `UPDATE cycle_counts SET last_post_error = $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, message); err != nil {
		return fmt.Errorf("set cycle count post error: %w", err)
	}
	return nil
}

// ExistsByNumber verifica si ya hay un conteo con ese número.
func (r *CycleCountRepo) ExistsByNumber(number string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM cycle_counts WHERE number = $1)`
	if err := r.q.QueryRow(context.Background(), query, number).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists cycle count: %w", err)
	}
	return exists, nil
}

// List devuelve encabezados paginados, del más reciente al más antiguo.
func (r *CycleCountRepo) List(limit, offset int) ([]*entity.CycleCount, error) {
	query := `
		SELECT id, number, warehouse_id, status, scheduled_for, COALESCE(notes, ''),
		       last_post_error, started_at, completed_at, posted_by, posted_at,
		       created_by, created_at, updated_at
		FROM cycle_counts ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cycle counts: %w", err)
	}
	defer rows.Close()
	var list []*entity.CycleCount
	for rows.Next() {
		var cc entity.CycleCount
		if err := rows.Scan(&cc.ID, &cc.Number, &cc.WarehouseID, &cc.Status, &cc.ScheduledFor,
			&cc.Notes, &cc.LastPostError, &cc.StartedAt, &cc.CompletedAt,
			&cc.PostedBy, &cc.PostedAt, &cc.CreatedBy, &cc.CreatedAt, &cc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cycle count: %w", err)
		}
		list = append(list, &cc)
	}
	return list, rows.Err()
}
