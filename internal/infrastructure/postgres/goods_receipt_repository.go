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

var _ repository.GoodsReceiptRepository = (*GoodsReceiptRepo)(nil)

// GoodsReceiptRepo implementación de GoodsReceiptRepository sobre PostgreSQL
// (usable con pool o tx). Encabezado en goods_receipts, líneas en
// goods_receipt_lines.
type GoodsReceiptRepo struct {
	q Querier
}

// NewGoodsReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGoodsReceiptRepository(q Querier) *GoodsReceiptRepo {
	return &GoodsReceiptRepo{q: q}
}

// Create persiste encabezado y líneas. Number tiene constraint único.
func (r *GoodsReceiptRepo) Create(receipt *entity.GoodsReceipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	query := `
		INSERT INTO goods_receipts (id, number, warehouse_id, purchase_order_id, status, notes, last_post_error, posted_by, posted_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.Number, receipt.WarehouseID, receipt.PurchaseOrderID,
		receipt.Status, nullIfEmpty(receipt.Notes), receipt.LastPostError,
		receipt.PostedBy, receipt.PostedAt, receipt.CreatedBy, receipt.CreatedAt, receipt.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: recepción %s", domain.ErrDuplicate, receipt.Number)
		}
		return fmt.Errorf("insert goods receipt: %w", err)
	}
	return r.saveLines(receipt)
}

// GetByID carga encabezado y líneas (incluye borradas, con su estado).
// Devuelve nil si no existe.
func (r *GoodsReceiptRepo) GetByID(id string) (*entity.GoodsReceipt, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea el encabezado (SELECT FOR UPDATE). El posteo recarga
// con este lock para que dos posteos concurrentes del mismo documento se
// serialicen y el segundo vea el estado ya sellado.
func (r *GoodsReceiptRepo) GetForUpdate(id string) (*entity.GoodsReceipt, error) {
	return r.get(id, true)
}

func (r *GoodsReceiptRepo) get(id string, forUpdate bool) (*entity.GoodsReceipt, error) {
	query := `
		SELECT id, number, warehouse_id, purchase_order_id, status, COALESCE(notes, ''),
		       last_post_error, posted_by, posted_at, created_by, created_at, updated_at
		FROM goods_receipts WHERE id = $1`
	if forUpdate {
		query += `
		FOR UPDATE`
	}
	var gr entity.GoodsReceipt
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&gr.ID, &gr.Number, &gr.WarehouseID, &gr.PurchaseOrderID, &gr.Status, &gr.Notes,
		&gr.LastPostError, &gr.PostedBy, &gr.PostedAt, &gr.CreatedBy, &gr.CreatedAt, &gr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get goods receipt: %w", err)
	}
	if gr.Lines, err = r.loadLines(gr.ID); err != nil {
		return nil, err
	}
	return &gr, nil
}

func (r *GoodsReceiptRepo) loadLines(receiptID string) ([]entity.GoodsReceiptLine, error) {
	query := `
		SELECT id, receipt_id, line_no, product_id, location_id, batch_id, uom_id,
		       quantity, unit_cost, po_line_id, status
		FROM goods_receipt_lines WHERE receipt_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("list goods receipt lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.GoodsReceiptLine
	for rows.Next() {
		var l entity.GoodsReceiptLine
		if err := rows.Scan(&l.ID, &l.ReceiptID, &l.LineNo, &l.ProductID, &l.LocationID,
			&l.BatchID, &l.UomID, &l.Quantity, &l.UnitCost, &l.POLineID, &l.Status); err != nil {
			return nil, fmt.Errorf("scan goods receipt line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// Save persiste encabezado y líneas tal como están en memoria.
func (r *GoodsReceiptRepo) Save(receipt *entity.GoodsReceipt) error {
	query := `
		UPDATE goods_receipts
		SET status = $2, notes = $3, last_post_error = $4, posted_by = $5, posted_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.Status, nullIfEmpty(receipt.Notes), receipt.LastPostError,
		receipt.PostedBy, receipt.PostedAt, receipt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update goods receipt: %w", err)
	}
	return r.saveLines(receipt)
}

func (r *GoodsReceiptRepo) saveLines(receipt *entity.GoodsReceipt) error {
	query := `
		INSERT INTO goods_receipt_lines (id, receipt_id, line_no, product_id, location_id, batch_id, uom_id, quantity, unit_cost, po_line_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status`
	for i := range receipt.Lines {
		l := &receipt.Lines[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.ReceiptID = receipt.ID
		_, err := r.q.Exec(context.Background(), query,
			l.ID, l.ReceiptID, l.LineNo, l.ProductID, l.LocationID, l.BatchID,
			l.UomID, l.Quantity, l.UnitCost, l.POLineID, l.Status,
		)
		if err != nil {
			return fmt.Errorf("upsert goods receipt line: %w", err)
		}
	}
	return nil
}

// SetPostError registra la última falla de posteo (fuera de la tx abortada).
func (r *GoodsReceiptRepo) SetPostError(id, message string) error {
	query := `UPDATE goods_receipts SET last_post_error = $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, message); err != nil {
		return fmt.Errorf("set goods receipt post error: %w", err)
	}
	return nil
}

// ExistsByNumber verifica si ya hay una recepción con ese número.
func (r *GoodsReceiptRepo) ExistsByNumber(number string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM goods_receipts WHERE number = $1)`
	if err := r.q.QueryRow(context.Background(), query, number).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists goods receipt: %w", err)
	}
	return exists, nil
}

// List devuelve encabezados paginados, del más reciente al más antiguo.
func (r *GoodsReceiptRepo) List(limit, offset int) ([]*entity.GoodsReceipt, error) {
	query := `
		SELECT id, number, warehouse_id, purchase_order_id, status, COALESCE(notes, ''),
		       last_post_error, posted_by, posted_at, created_by, created_at, updated_at
		FROM goods_receipts ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list goods receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.GoodsReceipt
	for rows.Next() {
		var gr entity.GoodsReceipt
		if err := rows.Scan(&gr.ID, &gr.Number, &gr.WarehouseID, &gr.PurchaseOrderID, &gr.Status,
			&gr.Notes, &gr.LastPostError, &gr.PostedBy, &gr.PostedAt,
			&gr.CreatedBy, &gr.CreatedAt, &gr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan goods receipt: %w", err)
		}
		list = append(list, &gr)
	}
	return list, rows.Err()
}
