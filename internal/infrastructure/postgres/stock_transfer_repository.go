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

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

// StockTransferRepo implementación de StockTransferRepository sobre PostgreSQL
// (usable con pool o tx).
type StockTransferRepo struct {
	q Querier
}

// NewStockTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

// Create persiste encabezado y líneas. Number tiene constraint único.
func (r *StockTransferRepo) Create(transfer *entity.StockTransfer) error {
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_transfers (id, number, from_warehouse_id, to_warehouse_id, status, notes, last_post_error, posted_by, posted_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.Number, transfer.FromWarehouseID, transfer.ToWarehouseID,
		transfer.Status, nullIfEmpty(transfer.Notes), transfer.LastPostError,
		transfer.PostedBy, transfer.PostedAt, transfer.CreatedBy, transfer.CreatedAt, transfer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: traslado %s", domain.ErrDuplicate, transfer.Number)
		}
		return fmt.Errorf("insert stock transfer: %w", err)
	}
	return r.saveLines(transfer)
}

// GetByID carga encabezado y líneas. Devuelve nil si no existe.
func (r *StockTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea el encabezado (SELECT FOR UPDATE). El posteo recarga
// con este lock para que dos posteos concurrentes del mismo documento se
// serialicen y el segundo vea el estado ya sellado.
func (r *StockTransferRepo) GetForUpdate(id string) (*entity.StockTransfer, error) {
	return r.get(id, true)
}

func (r *StockTransferRepo) get(id string, forUpdate bool) (*entity.StockTransfer, error) {
	query := `
		SELECT id, number, from_warehouse_id, to_warehouse_id, status, COALESCE(notes, ''),
		       last_post_error, posted_by, posted_at, created_by, created_at, updated_at
		FROM stock_transfers WHERE id = $1`
	if forUpdate {
		query += `
		FOR UPDATE`
	}
	var st entity.StockTransfer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&st.ID, &st.Number, &st.FromWarehouseID, &st.ToWarehouseID, &st.Status, &st.Notes,
		&st.LastPostError, &st.PostedBy, &st.PostedAt, &st.CreatedBy, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock transfer: %w", err)
	}
	if st.Lines, err = r.loadLines(st.ID); err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *StockTransferRepo) loadLines(transferID string) ([]entity.StockTransferLine, error) {
	query := `
		SELECT id, transfer_id, line_no, product_id, uom_id, from_location_id, to_location_id, batch_id, quantity, status
		FROM stock_transfer_lines WHERE transfer_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, transferID)
	if err != nil {
		return nil, fmt.Errorf("list stock transfer lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.StockTransferLine
	for rows.Next() {
		var l entity.StockTransferLine
		if err := rows.Scan(&l.ID, &l.TransferID, &l.LineNo, &l.ProductID, &l.UomID,
			&l.FromLocationID, &l.ToLocationID, &l.BatchID, &l.Quantity, &l.Status); err != nil {
			return nil, fmt.Errorf("scan stock transfer line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// Save persiste encabezado y líneas tal como están en memoria.
func (r *StockTransferRepo) Save(transfer *entity.StockTransfer) error {
	query := `
		UPDATE stock_transfers
		SET status = $2, notes = $3, last_post_error = $4, posted_by = $5, posted_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.Status, nullIfEmpty(transfer.Notes), transfer.LastPostError,
		transfer.PostedBy, transfer.PostedAt, transfer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock transfer: %w", err)
	}
	return r.saveLines(transfer)
}

func (r *StockTransferRepo) saveLines(transfer *entity.StockTransfer) error {
	query := `
		INSERT INTO stock_transfer_lines (id, transfer_id, line_no, product_id, uom_id, from_location_id, to_location_id, batch_id, quantity, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status`
	for i := range transfer.Lines {
		l := &transfer.Lines[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.TransferID = transfer.ID
		_, err := r.q.Exec(context.Background(), query,
			l.ID, l.TransferID, l.LineNo, l.ProductID, l.UomID,
			l.FromLocationID, l.ToLocationID, l.BatchID, l.Quantity, l.Status,
		)
		if err != nil {
			return fmt.Errorf("upsert stock transfer line: %w", err)
		}
	}
	return nil
}

// SetPostError registra la última falla de posteo (fuera de la tx abortada).
func (r *StockTransferRepo) SetPostError(id, message string) error {
	query := `UPDATE stock_transfers SET last_post_error = $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, message); err != nil {
		return fmt.Errorf("set stock transfer post error: %w", err)
	}
	return nil
}

// ExistsByNumber verifica si ya hay un traslado con ese número.
func (r *StockTransferRepo) ExistsByNumber(number string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM stock_transfers WHERE number = $1)`
	if err := r.q.QueryRow(context.Background(), query, number).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists stock transfer: %w", err)
	}
	return exists, nil
}

// List devuelve encabezados paginados, del más reciente al más antiguo.
func (r *StockTransferRepo) List(limit, offset int) ([]*entity.StockTransfer, error) {
	query := `
		SELECT id, number, from_warehouse_id, to_warehouse_id, status, COALESCE(notes, ''),
		       last_post_error, posted_by, posted_at, created_by, created_at, updated_at
		FROM stock_transfers ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransfer
	for rows.Next() {
		var st entity.StockTransfer
		if err := rows.Scan(&st.ID, &st.Number, &st.FromWarehouseID, &st.ToWarehouseID, &st.Status,
			&st.Notes, &st.LastPostError, &st.PostedBy, &st.PostedAt,
			&st.CreatedBy, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock transfer: %w", err)
		}
		list = append(list, &st)
	}
	return list, rows.Err()
}
