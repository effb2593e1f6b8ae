package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateGoodsReceiptRequest alta de recepción en borrador.
type CreateGoodsReceiptRequest struct {
	WarehouseID     string                    `json:"warehouse_id"`
	PurchaseOrderID *string                   `json:"purchase_order_id"`
	Notes           string                    `json:"notes"`
	Lines           []GoodsReceiptLineRequest `json:"lines"`
}

// GoodsReceiptLineRequest línea de recepción.
type GoodsReceiptLineRequest struct {
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	BatchID    *string         `json:"batch_id"`
	UomID      string          `json:"uom_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	POLineID   *string         `json:"po_line_id"`
}

// GoodsReceiptResponse recepción con líneas activas.
type GoodsReceiptResponse struct {
	ID              string                     `json:"id"`
	Number          string                     `json:"number"`
	WarehouseID     string                     `json:"warehouse_id"`
	PurchaseOrderID *string                    `json:"purchase_order_id,omitempty"`
	Status          string                     `json:"status"`
	Notes           string                     `json:"notes,omitempty"`
	LastPostError   *string                    `json:"last_post_error,omitempty"`
	PostedBy        *string                    `json:"posted_by,omitempty"`
	PostedAt        *time.Time                 `json:"posted_at,omitempty"`
	CreatedBy       string                     `json:"created_by"`
	CreatedAt       time.Time                  `json:"created_at"`
	Lines           []GoodsReceiptLineResponse `json:"lines"`
}

// GoodsReceiptLineResponse línea activa de recepción.
type GoodsReceiptLineResponse struct {
	ID         string          `json:"id"`
	LineNo     int             `json:"line_no"`
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	BatchID    *string         `json:"batch_id,omitempty"`
	UomID      string          `json:"uom_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	POLineID   *string         `json:"po_line_id,omitempty"`
}

// CreateStockIssueRequest alta de salida en borrador.
type CreateStockIssueRequest struct {
	WarehouseID string                  `json:"warehouse_id"`
	Reason      string                  `json:"reason"`
	Lines       []StockIssueLineRequest `json:"lines"`
}

// StockIssueLineRequest línea de salida.
type StockIssueLineRequest struct {
	ProductID      string          `json:"product_id"`
	FromLocationID string          `json:"from_location_id"`
	BatchID        *string         `json:"batch_id"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// StockIssueResponse salida con líneas activas.
type StockIssueResponse struct {
	ID            string                   `json:"id"`
	Number        string                   `json:"number"`
	WarehouseID   string                   `json:"warehouse_id"`
	Status        string                   `json:"status"`
	Reason        string                   `json:"reason,omitempty"`
	LastPostError *string                  `json:"last_post_error,omitempty"`
	PostedBy      *string                  `json:"posted_by,omitempty"`
	PostedAt      *time.Time               `json:"posted_at,omitempty"`
	CreatedBy     string                   `json:"created_by"`
	CreatedAt     time.Time                `json:"created_at"`
	Lines         []StockIssueLineResponse `json:"lines"`
}

// StockIssueLineResponse línea activa de salida.
type StockIssueLineResponse struct {
	ID             string          `json:"id"`
	LineNo         int             `json:"line_no"`
	ProductID      string          `json:"product_id"`
	FromLocationID string          `json:"from_location_id"`
	BatchID        *string         `json:"batch_id,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// CreateStockTransferRequest alta de traslado en borrador.
type CreateStockTransferRequest struct {
	FromWarehouseID string                     `json:"from_warehouse_id"`
	ToWarehouseID   string                     `json:"to_warehouse_id"`
	Notes           string                     `json:"notes"`
	Lines           []StockTransferLineRequest `json:"lines"`
}

// StockTransferLineRequest línea de traslado.
type StockTransferLineRequest struct {
	ProductID      string          `json:"product_id"`
	UomID          string          `json:"uom_id"`
	FromLocationID string          `json:"from_location_id"`
	ToLocationID   string          `json:"to_location_id"`
	BatchID        *string         `json:"batch_id"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// StockTransferResponse traslado con líneas activas.
type StockTransferResponse struct {
	ID              string                      `json:"id"`
	Number          string                      `json:"number"`
	FromWarehouseID string                      `json:"from_warehouse_id"`
	ToWarehouseID   string                      `json:"to_warehouse_id"`
	Status          string                      `json:"status"`
	Notes           string                      `json:"notes,omitempty"`
	LastPostError   *string                     `json:"last_post_error,omitempty"`
	PostedBy        *string                     `json:"posted_by,omitempty"`
	PostedAt        *time.Time                  `json:"posted_at,omitempty"`
	CreatedBy       string                      `json:"created_by"`
	CreatedAt       time.Time                   `json:"created_at"`
	Lines           []StockTransferLineResponse `json:"lines"`
}

// StockTransferLineResponse línea activa de traslado.
type StockTransferLineResponse struct {
	ID             string          `json:"id"`
	LineNo         int             `json:"line_no"`
	ProductID      string          `json:"product_id"`
	UomID          string          `json:"uom_id"`
	FromLocationID string          `json:"from_location_id"`
	ToLocationID   string          `json:"to_location_id"`
	BatchID        *string         `json:"batch_id,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// CreateStockAdjustmentRequest alta de ajuste en borrador.
type CreateStockAdjustmentRequest struct {
	WarehouseID string                       `json:"warehouse_id"`
	Reason      string                       `json:"reason"`
	Lines       []StockAdjustmentLineRequest `json:"lines"`
}

// StockAdjustmentLineRequest línea de ajuste; qty_delta lleva signo y nunca es cero.
type StockAdjustmentLineRequest struct {
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	BatchID    *string         `json:"batch_id"`
	QtyDelta   decimal.Decimal `json:"qty_delta"`
}

// StockAdjustmentResponse ajuste con líneas activas.
type StockAdjustmentResponse struct {
	ID            string                        `json:"id"`
	Number        string                        `json:"number"`
	WarehouseID   string                        `json:"warehouse_id"`
	Status        string                        `json:"status"`
	Reason        string                        `json:"reason,omitempty"`
	LastPostError *string                       `json:"last_post_error,omitempty"`
	PostedBy      *string                       `json:"posted_by,omitempty"`
	PostedAt      *time.Time                    `json:"posted_at,omitempty"`
	CreatedBy     string                        `json:"created_by"`
	CreatedAt     time.Time                     `json:"created_at"`
	Lines         []StockAdjustmentLineResponse `json:"lines"`
}

// StockAdjustmentLineResponse línea activa de ajuste.
type StockAdjustmentLineResponse struct {
	ID         string          `json:"id"`
	LineNo     int             `json:"line_no"`
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	BatchID    *string         `json:"batch_id,omitempty"`
	QtyDelta   decimal.Decimal `json:"qty_delta"`
	SystemQty  decimal.Decimal `json:"system_qty"`
}

// CreateCycleCountRequest alta de conteo cíclico programado.
type CreateCycleCountRequest struct {
	WarehouseID  string                  `json:"warehouse_id"`
	ScheduledFor time.Time               `json:"scheduled_for"`
	Notes        string                  `json:"notes"`
	Lines        []CycleCountLineRequest `json:"lines"`
}

// CycleCountLineRequest clave a contar.
type CycleCountLineRequest struct {
	ProductID  string  `json:"product_id"`
	LocationID string  `json:"location_id"`
	BatchID    *string `json:"batch_id"`
	UomID      string  `json:"uom_id"`
}

// RecordCountRequest registro del conteo físico de una línea.
type RecordCountRequest struct {
	LineID     string          `json:"line_id"`
	CountedQty decimal.Decimal `json:"counted_qty"`
}

// CycleCountResponse conteo con líneas activas.
type CycleCountResponse struct {
	ID            string                   `json:"id"`
	Number        string                   `json:"number"`
	WarehouseID   string                   `json:"warehouse_id"`
	Status        string                   `json:"status"`
	ScheduledFor  time.Time                `json:"scheduled_for"`
	Notes         string                   `json:"notes,omitempty"`
	LastPostError *string                  `json:"last_post_error,omitempty"`
	StartedAt     *time.Time               `json:"started_at,omitempty"`
	CompletedAt   *time.Time               `json:"completed_at,omitempty"`
	PostedBy      *string                  `json:"posted_by,omitempty"`
	PostedAt      *time.Time               `json:"posted_at,omitempty"`
	CreatedBy     string                   `json:"created_by"`
	CreatedAt     time.Time                `json:"created_at"`
	Lines         []CycleCountLineResponse `json:"lines"`
}

// CycleCountLineResponse línea activa de conteo.
type CycleCountLineResponse struct {
	ID         string           `json:"id"`
	LineNo     int              `json:"line_no"`
	ProductID  string           `json:"product_id"`
	LocationID string           `json:"location_id"`
	BatchID    *string          `json:"batch_id,omitempty"`
	UomID      string           `json:"uom_id"`
	SystemQty  decimal.Decimal  `json:"system_qty"`
	CountedQty *decimal.Decimal `json:"counted_qty,omitempty"`
	Variance   *decimal.Decimal `json:"variance,omitempty"`
}

// CreatePurchaseOrderRequest alta de orden de compra en borrador.
type CreatePurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id"`
	Notes      string                     `json:"notes"`
	Lines      []PurchaseOrderLineRequest `json:"lines"`
}

// PurchaseOrderLineRequest línea de orden.
type PurchaseOrderLineRequest struct {
	ProductID  string          `json:"product_id"`
	UomID      string          `json:"uom_id"`
	OrderedQty decimal.Decimal `json:"ordered_qty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// PurchaseOrderResponse orden con líneas activas.
type PurchaseOrderResponse struct {
	ID          string                      `json:"id"`
	Number      string                      `json:"number"`
	SupplierID  string                      `json:"supplier_id"`
	Status      string                      `json:"status"`
	Notes       string                      `json:"notes,omitempty"`
	ConfirmedAt *time.Time                  `json:"confirmed_at,omitempty"`
	CreatedBy   string                      `json:"created_by"`
	CreatedAt   time.Time                   `json:"created_at"`
	Lines       []PurchaseOrderLineResponse `json:"lines"`
}

// PurchaseOrderLineResponse línea activa de orden.
type PurchaseOrderLineResponse struct {
	ID          string          `json:"id"`
	LineNo      int             `json:"line_no"`
	ProductID   string          `json:"product_id"`
	UomID       string          `json:"uom_id"`
	OrderedQty  decimal.Decimal `json:"ordered_qty"`
	ReceivedQty decimal.Decimal `json:"received_qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineStatus  string          `json:"line_status"`
}
