package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL
// (usable con pool o tx). La clave es (product_id, location_id, batch_id) con
// batch_id opcional; el índice único usa COALESCE(batch_id, '') para que el
// upsert funcione también sin lote.
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// Get obtiene la existencia de una clave. Si la fila no existe todavía
// devuelve una en cero, nunca nil: el caller hace aritmética directo.
func (r *StockLevelRepo) Get(productID, locationID string, batchID *string) (*entity.StockLevel, error) {
	return r.get(productID, locationID, batchID, false)
}

// GetForUpdate obtiene la existencia y bloquea la fila (SELECT FOR UPDATE).
// Serializa movimientos concurrentes sobre la misma clave. Si la fila aún no
// existe primero la crea en cero: un SELECT FOR UPDATE sobre nada no bloquea
// nada, y dos primeros movimientos concurrentes a la misma clave podrían
// leer cero ambos y pisarse el upsert.
func (r *StockLevelRepo) GetForUpdate(productID, locationID string, batchID *string) (*entity.StockLevel, error) {
	insert := `
		INSERT INTO stock_levels (product_id, location_id, batch_id, on_hand, reserved, updated_at)
		VALUES ($1, $2, $3, 0, 0, now())
		ON CONFLICT (product_id, location_id, COALESCE(batch_id, '')) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, productID, locationID, batchID); err != nil {
		return nil, fmt.Errorf("ensure stock level: %w", err)
	}
	return r.get(productID, locationID, batchID, true)
}

func (r *StockLevelRepo) get(productID, locationID string, batchID *string, forUpdate bool) (*entity.StockLevel, error) {
	query := `
		SELECT product_id, location_id, batch_id, on_hand, reserved, updated_at
		FROM stock_levels
		WHERE product_id = $1 AND location_id = $2 AND batch_id IS NOT DISTINCT FROM $3`
	if forUpdate {
		query += `
		FOR UPDATE`
	}
	var s entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, productID, locationID, batchID).Scan(
		&s.ProductID, &s.LocationID, &s.BatchID, &s.OnHand, &s.Reserved, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{
				ProductID:  productID,
				LocationID: locationID,
				BatchID:    batchID,
				OnHand:     decimal.Zero,
				Reserved:   decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza las cantidades de una clave.
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (product_id, location_id, batch_id, on_hand, reserved, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (product_id, location_id, COALESCE(batch_id, ''))
		DO UPDATE SET on_hand = EXCLUDED.on_hand, reserved = EXCLUDED.reserved, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		level.ProductID, level.LocationID, level.BatchID, level.OnHand, level.Reserved,
	)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// ListByProduct devuelve las existencias de un producto en todas sus claves.
func (r *StockLevelRepo) ListByProduct(productID string) ([]*entity.StockLevel, error) {
	query := `
		SELECT product_id, location_id, batch_id, on_hand, reserved, updated_at
		FROM stock_levels WHERE product_id = $1 ORDER BY location_id, batch_id`
	return r.list(query, productID)
}

// ListByLocation devuelve las existencias almacenadas en una ubicación.
func (r *StockLevelRepo) ListByLocation(locationID string) ([]*entity.StockLevel, error) {
	query := `
		SELECT product_id, location_id, batch_id, on_hand, reserved, updated_at
		FROM stock_levels WHERE location_id = $1 ORDER BY product_id, batch_id`
	return r.list(query, locationID)
}

func (r *StockLevelRepo) list(query string, arg any) ([]*entity.StockLevel, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		var s entity.StockLevel
		if err := rows.Scan(&s.ProductID, &s.LocationID, &s.BatchID, &s.OnHand, &s.Reserved, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListBelowReorderPoint devuelve productos cuyo stock agregado está por debajo
// de su punto de reorden (consulta de solo lectura para reposición).
func (r *StockLevelRepo) ListBelowReorderPoint() ([]repository.ReorderItem, error) {
	query := `
		SELECT p.id, p.sku, p.name, COALESCE(SUM(s.on_hand), 0) AS current_stock, p.reorder_point
		FROM products p
		LEFT JOIN stock_levels s ON s.product_id = p.id
		WHERE p.reorder_point > 0
		GROUP BY p.id, p.sku, p.name, p.reorder_point
		HAVING COALESCE(SUM(s.on_hand), 0) < p.reorder_point
		ORDER BY p.sku`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list below reorder point: %w", err)
	}
	defer rows.Close()
	var list []repository.ReorderItem
	for rows.Next() {
		var it repository.ReorderItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.ProductName, &it.CurrentStock, &it.ReorderPoint); err != nil {
			return nil, fmt.Errorf("scan reorder item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
