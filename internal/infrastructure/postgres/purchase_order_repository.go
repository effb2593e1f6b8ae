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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL
// (usable con pool o tx). Las líneas acumulan received_qty durante las
// recepciones, por eso el upsert actualiza cantidades y estados.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste encabezado y líneas. Number tiene constraint único.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO purchase_orders (id, number, supplier_id, status, notes, confirmed_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Number, order.SupplierID, order.Status, nullIfEmpty(order.Notes),
		order.ConfirmedAt, order.CreatedBy, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: orden %s", domain.ErrDuplicate, order.Number)
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return r.saveLines(order)
}

// GetByID carga encabezado y líneas. Devuelve nil si no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea el encabezado (SELECT FOR UPDATE) para recomputar
// recepciones acumuladas sin carreras entre recepciones concurrentes.
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.get(id, true)
}

func (r *PurchaseOrderRepo) get(id string, forUpdate bool) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, number, supplier_id, status, COALESCE(notes, ''), confirmed_at,
		       created_by, created_at, updated_at
		FROM purchase_orders WHERE id = $1`
	if forUpdate {
		query += `
		FOR UPDATE`
	}
	var po entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&po.ID, &po.Number, &po.SupplierID, &po.Status, &po.Notes, &po.ConfirmedAt,
		&po.CreatedBy, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if po.Lines, err = r.loadLines(po.ID); err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *PurchaseOrderRepo) loadLines(orderID string) ([]entity.PurchaseOrderLine, error) {
	query := `
		SELECT id, order_id, line_no, product_id, uom_id, ordered_qty, received_qty, unit_price, line_status, status
		FROM purchase_order_lines WHERE order_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.PurchaseOrderLine
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.LineNo, &l.ProductID, &l.UomID,
			&l.OrderedQty, &l.ReceivedQty, &l.UnitPrice, &l.LineStatus, &l.Status); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// Save persiste encabezado y líneas tal como están en memoria.
func (r *PurchaseOrderRepo) Save(order *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders
		SET status = $2, notes = $3, confirmed_at = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, nullIfEmpty(order.Notes), order.ConfirmedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return r.saveLines(order)
}

func (r *PurchaseOrderRepo) saveLines(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_order_lines (id, order_id, line_no, product_id, uom_id, ordered_qty, received_qty, unit_price, line_status, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE
		SET received_qty = EXCLUDED.received_qty, line_status = EXCLUDED.line_status, status = EXCLUDED.status`
	for i := range order.Lines {
		l := &order.Lines[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.OrderID = order.ID
		_, err := r.q.Exec(context.Background(), query,
			l.ID, l.OrderID, l.LineNo, l.ProductID, l.UomID,
			l.OrderedQty, l.ReceivedQty, l.UnitPrice, l.LineStatus, l.Status,
		)
		if err != nil {
			return fmt.Errorf("upsert purchase order line: %w", err)
		}
	}
	return nil
}

// ExistsByNumber verifica si ya hay una orden con ese número.
func (r *PurchaseOrderRepo) ExistsByNumber(number string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM purchase_orders WHERE number = $1)`
	if err := r.q.QueryRow(context.Background(), query, number).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists purchase order: %w", err)
	}
	return exists, nil
}

// List devuelve encabezados paginados, del más reciente al más antiguo.
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT id, number, supplier_id, status, COALESCE(notes, ''), confirmed_at,
		       created_by, created_at, updated_at
		FROM purchase_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		if err := rows.Scan(&po.ID, &po.Number, &po.SupplierID, &po.Status, &po.Notes,
			&po.ConfirmedAt, &po.CreatedBy, &po.CreatedAt, &po.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &po)
	}
	return list, rows.Err()
}
