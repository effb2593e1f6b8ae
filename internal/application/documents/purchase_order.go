package documents

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-stock/internal/application/stock"
	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
	domstock "github.com/jhoicas/erp-stock/internal/domain/stock"
)

// PurchaseOrderUseCase gestiona órdenes de compra. La orden no postea al
// ledger por sí misma: su recepción es la recomputación de estado que dispara
// el posteo de recepciones (GoodsReceiptUseCase), dentro de esa misma
// transacción.
type PurchaseOrderUseCase struct {
	tx     stock.TxRunner
	stores repository.Stores
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(tx stock.TxRunner, stores repository.Stores) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{tx: tx, stores: stores}
}

// PurchaseOrderLineInput es la entrada para una línea de orden.
type PurchaseOrderLineInput struct {
	ProductID  string
	UomID      string
	OrderedQty decimal.Decimal
	UnitPrice  decimal.Decimal
}

// CreatePurchaseOrderInput es la entrada para crear una orden en borrador.
type CreatePurchaseOrderInput struct {
	SupplierID string
	Notes      string
	Lines      []PurchaseOrderLineInput
}

// Create valida y guarda una orden en estado DRAFT.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, in CreatePurchaseOrderInput, actor string) (*entity.PurchaseOrder, error) {
	if in.SupplierID == "" || actor == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	order := &entity.PurchaseOrder{
		SupplierID: in.SupplierID,
		Status:     entity.PurchaseOrderStatusDraft,
		Notes:      in.Notes,
		CreatedBy:  actor,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		for i, li := range in.Lines {
			line, err := uc.buildLine(s, li, i+1)
			if err != nil {
				return err
			}
			order.Lines = append(order.Lines, *line)
		}
		number, err := uniqueNumber(s.Orders.ExistsByNumber, prefixPurchaseOrder, now)
		if err != nil {
			return err
		}
		order.Number = number
		return s.Orders.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (uc *PurchaseOrderUseCase) buildLine(s repository.Stores, li PurchaseOrderLineInput, lineNo int) (*entity.PurchaseOrderLine, error) {
	product, err := s.Products.GetByID(li.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	uomID := li.UomID
	if uomID == "" {
		uomID = product.DefaultUomID
	}
	uom, err := s.Uoms.GetByID(uomID)
	if err != nil {
		return nil, err
	}
	if uom == nil {
		return nil, domain.ErrNotFound
	}
	if err := domstock.ValidateQuantity(uom, li.OrderedQty); err != nil {
		return nil, err
	}
	if li.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	return &entity.PurchaseOrderLine{
		LineNo:      lineNo,
		ProductID:   li.ProductID,
		UomID:       uomID,
		OrderedQty:  li.OrderedQty,
		ReceivedQty: decimal.Zero,
		UnitPrice:   li.UnitPrice,
		LineStatus:  entity.POLineStatusOpen,
		Status:      entity.LineStatusActive,
	}, nil
}

// AddLine agrega una línea a una orden en borrador.
func (uc *PurchaseOrderUseCase) AddLine(ctx context.Context, orderID string, li PurchaseOrderLineInput) (*entity.PurchaseOrder, error) {
	var order *entity.PurchaseOrder
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		var err error
		order, err = s.Orders.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Editable() {
			return domain.ErrImmutableDocument
		}
		line, err := uc.buildLine(s, li, len(order.Lines)+1)
		if err != nil {
			return err
		}
		line.OrderID = order.ID
		order.Lines = append(order.Lines, *line)
		order.UpdatedAt = time.Now()
		return s.Orders.Save(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// RemoveLine marca una línea como borrada.
func (uc *PurchaseOrderUseCase) RemoveLine(ctx context.Context, orderID, lineID string) error {
	return uc.tx.Run(ctx, func(s repository.Stores) error {
		order, err := s.Orders.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Editable() {
			return domain.ErrImmutableDocument
		}
		for i := range order.Lines {
			if order.Lines[i].ID == lineID && order.Lines[i].Status == entity.LineStatusActive {
				order.Lines[i].Status = entity.LineStatusDeleted
				order.UpdatedAt = time.Now()
				return s.Orders.Save(order)
			}
		}
		return domain.ErrNotFound
	})
}

// Confirm transiciona DRAFT -> CONFIRMED; desde ahí la orden admite recepciones.
func (uc *PurchaseOrderUseCase) Confirm(ctx context.Context, orderID string) error {
	return uc.transition(ctx, orderID, func(order *entity.PurchaseOrder, now time.Time) error {
		return order.Confirm(now)
	})
}

// Cancel transiciona DRAFT/CONFIRMED -> CANCELLED.
func (uc *PurchaseOrderUseCase) Cancel(ctx context.Context, orderID string) error {
	return uc.transition(ctx, orderID, func(order *entity.PurchaseOrder, _ time.Time) error {
		return order.Cancel()
	})
}

// Close transiciona RECEIVED -> CLOSED.
func (uc *PurchaseOrderUseCase) Close(ctx context.Context, orderID string) error {
	return uc.transition(ctx, orderID, func(order *entity.PurchaseOrder, _ time.Time) error {
		return order.Close()
	})
}

func (uc *PurchaseOrderUseCase) transition(ctx context.Context, orderID string, fn func(*entity.PurchaseOrder, time.Time) error) error {
	return uc.tx.Run(ctx, func(s repository.Stores) error {
		order, err := s.Orders.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		if err := fn(order, now); err != nil {
			return err
		}
		order.UpdatedAt = now
		return s.Orders.Save(order)
	})
}

// Get devuelve una orden con sus líneas.
func (uc *PurchaseOrderUseCase) Get(id string) (*entity.PurchaseOrder, error) {
	order, err := uc.stores.Orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List devuelve órdenes del más reciente al más antiguo.
func (uc *PurchaseOrderUseCase) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	return uc.stores.Orders.List(limit, offset)
}
