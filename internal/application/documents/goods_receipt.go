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

// GoodsReceiptUseCase gestiona recepciones de mercancía: borrador, líneas y
// posteo. Cada línea posteada genera un movimiento RECEIPT y, si la recepción
// está ligada a una orden de compra, incrementa la cantidad recibida de la
// línea de la orden dentro de la misma transacción.
type GoodsReceiptUseCase struct {
	tx     stock.TxRunner
	stores repository.Stores // atado al pool, para lecturas y best-effort
	engine *PostingEngine
}

// NewGoodsReceiptUseCase construye el caso de uso.
func NewGoodsReceiptUseCase(tx stock.TxRunner, stores repository.Stores, engine *PostingEngine) *GoodsReceiptUseCase {
	return &GoodsReceiptUseCase{tx: tx, stores: stores, engine: engine}
}

// GoodsReceiptLineInput es la entrada para una línea de recepción.
type GoodsReceiptLineInput struct {
	ProductID  string
	LocationID string
	BatchID    *string
	UomID      string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	POLineID   *string
}

// CreateGoodsReceiptInput es la entrada para crear una recepción en borrador.
type CreateGoodsReceiptInput struct {
	WarehouseID     string
	PurchaseOrderID *string
	Notes           string
	Lines           []GoodsReceiptLineInput
}

// Create valida y guarda una recepción en estado DRAFT con sus líneas.
func (uc *GoodsReceiptUseCase) Create(ctx context.Context, in CreateGoodsReceiptInput, actor string) (*entity.GoodsReceipt, error) {
	if in.WarehouseID == "" || actor == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	receipt := &entity.GoodsReceipt{
		WarehouseID:     in.WarehouseID,
		PurchaseOrderID: in.PurchaseOrderID,
		Status:          entity.GoodsReceiptStatusDraft,
		Notes:           in.Notes,
		CreatedBy:       actor,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		if _, err := loadWarehouse(s, in.WarehouseID); err != nil {
			return err
		}
		var order *entity.PurchaseOrder
		if in.PurchaseOrderID != nil {
			var err error
			order, err = s.Orders.GetByID(*in.PurchaseOrderID)
			if err != nil {
				return err
			}
			if order == nil {
				return domain.ErrNotFound
			}
		}
		for i, li := range in.Lines {
			line, err := uc.buildLine(s, receipt, order, li, i+1)
			if err != nil {
				return err
			}
			receipt.Lines = append(receipt.Lines, *line)
		}
		number, err := uniqueNumber(s.Receipts.ExistsByNumber, prefixGoodsReceipt, now)
		if err != nil {
			return err
		}
		receipt.Number = number
		return s.Receipts.Create(receipt)
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// buildLine valida una línea contra maestros y la orden ligada.
func (uc *GoodsReceiptUseCase) buildLine(s repository.Stores, receipt *entity.GoodsReceipt, order *entity.PurchaseOrder, li GoodsReceiptLineInput, lineNo int) (*entity.GoodsReceiptLine, error) {
	masters, err := loadLineMasters(s, li.ProductID, li.BatchID, li.UomID)
	if err != nil {
		return nil, err
	}
	if err := domstock.ValidateQuantity(masters.Uom, li.Quantity); err != nil {
		return nil, err
	}
	if li.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	loc, err := loadLocation(s, li.LocationID, receipt.WarehouseID)
	if err != nil {
		return nil, err
	}
	if err := domstock.ValidateReceivable(loc); err != nil {
		return nil, err
	}
	if li.POLineID != nil {
		if order == nil {
			return nil, domain.ErrInvalidInput
		}
		found := false
		for _, ol := range order.ActiveLines() {
			if ol.ID == *li.POLineID && ol.ProductID == li.ProductID {
				found = true
				break
			}
		}
		if !found {
			return nil, domain.ErrInvalidInput
		}
	}
	return &entity.GoodsReceiptLine{
		ReceiptID:  receipt.ID,
		LineNo:     lineNo,
		ProductID:  li.ProductID,
		LocationID: li.LocationID,
		BatchID:    li.BatchID,
		UomID:      masters.Uom.ID,
		Quantity:   li.Quantity,
		UnitCost:   li.UnitCost,
		POLineID:   li.POLineID,
		Status:     entity.LineStatusActive,
	}, nil
}

// AddLine agrega una línea a una recepción en borrador.
func (uc *GoodsReceiptUseCase) AddLine(ctx context.Context, receiptID string, li GoodsReceiptLineInput) (*entity.GoodsReceipt, error) {
	var receipt *entity.GoodsReceipt
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		var err error
		receipt, err = s.Receipts.GetByID(receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return domain.ErrNotFound
		}
		if !receipt.Editable() {
			return domain.ErrImmutableDocument
		}
		var order *entity.PurchaseOrder
		if receipt.PurchaseOrderID != nil {
			order, err = s.Orders.GetByID(*receipt.PurchaseOrderID)
			if err != nil {
				return err
			}
		}
		line, err := uc.buildLine(s, receipt, order, li, len(receipt.Lines)+1)
		if err != nil {
			return err
		}
		receipt.Lines = append(receipt.Lines, *line)
		receipt.UpdatedAt = time.Now()
		return s.Receipts.Save(receipt)
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// RemoveLine marca una línea como borrada (estado explícito, no se elimina la fila).
func (uc *GoodsReceiptUseCase) RemoveLine(ctx context.Context, receiptID, lineID string) error {
	return uc.tx.Run(ctx, func(s repository.Stores) error {
		receipt, err := s.Receipts.GetByID(receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return domain.ErrNotFound
		}
		if !receipt.Editable() {
			return domain.ErrImmutableDocument
		}
		for i := range receipt.Lines {
			if receipt.Lines[i].ID == lineID && receipt.Lines[i].Status == entity.LineStatusActive {
				receipt.Lines[i].Status = entity.LineStatusDeleted
				receipt.UpdatedAt = time.Now()
				return s.Receipts.Save(receipt)
			}
		}
		return domain.ErrNotFound
	})
}

// Get devuelve una recepción con sus líneas.
func (uc *GoodsReceiptUseCase) Get(id string) (*entity.GoodsReceipt, error) {
	receipt, err := uc.stores.Receipts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	return receipt, nil
}

// List devuelve recepciones del más reciente al más antiguo.
func (uc *GoodsReceiptUseCase) List(limit, offset int) ([]*entity.GoodsReceipt, error) {
	return uc.stores.Receipts.List(limit, offset)
}

// Post postea la recepción a través del motor compartido.
func (uc *GoodsReceiptUseCase) Post(ctx context.Context, receiptID, actor string) error {
	return uc.engine.Post(ctx, uc, receiptID, actor)
}

// DocumentType implementa Poster.
func (uc *GoodsReceiptUseCase) DocumentType() entity.DocumentType {
	return entity.DocumentTypeGoodsReceipt
}

// PostInTx implementa Poster: cada línea activa genera un movimiento RECEIPT
// hacia su ubicación, actualiza el costo promedio del producto y, si la línea
// abastece una orden de compra, acumula su cantidad recibida, todo en la
// misma transacción (una recepción posteada jamás queda con la orden sin
// incrementar).
func (uc *GoodsReceiptUseCase) PostInTx(s repository.Stores, docID, actor string, now time.Time) error {
	receipt, err := s.Receipts.GetForUpdate(docID)
	if err != nil {
		return err
	}
	if receipt == nil {
		return domain.ErrNotFound
	}
	if receipt.Status != entity.GoodsReceiptStatusDraft {
		return domain.ErrInvalidState
	}
	lines := receipt.ActiveLines()
	if len(lines) == 0 {
		return domain.ErrNoActiveLines
	}

	var order *entity.PurchaseOrder
	if receipt.PurchaseOrderID != nil {
		order, err = s.Orders.GetForUpdate(*receipt.PurchaseOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
	}

	for _, line := range lines {
		loc, err := loadLocation(s, line.LocationID, receipt.WarehouseID)
		if err != nil {
			return err
		}
		if err := domstock.ValidateReceivable(loc); err != nil {
			return err
		}
		// Costo promedio ponderado antes de sumar la entrada.
		product, err := s.Products.GetByID(line.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		onHand := decimal.Zero
		levels, err := s.StockLevels.ListByProduct(line.ProductID)
		if err != nil {
			return err
		}
		for _, lv := range levels {
			onHand = onHand.Add(lv.OnHand)
		}
		newCost := domstock.WeightedAverageCost(onHand, product.StandardCost, line.Quantity, line.UnitCost)
		if err := s.Products.UpdateCost(product.ID, newCost); err != nil {
			return err
		}

		if _, err := stock.Record(s, stock.MovementInput{
			Kind:         entity.MovementKindReceipt,
			ProductID:    line.ProductID,
			UomID:        line.UomID,
			Quantity:     line.Quantity,
			ToLocationID: &line.LocationID,
			BatchID:      line.BatchID,
			Reference:    entity.MovementReference{Type: entity.DocumentTypeGoodsReceipt, DocumentID: receipt.ID},
			Note:         receipt.Number,
			Actor:        actor,
		}, now); err != nil {
			return err
		}

		if line.POLineID != nil {
			if order == nil {
				return domain.ErrInvalidInput
			}
			if err := order.ApplyReceipt(*line.POLineID, line.Quantity); err != nil {
				return err
			}
		}
	}

	if order != nil {
		if err := s.Orders.Save(order); err != nil {
			return err
		}
	}
	receipt.MarkPosted(actor, now)
	receipt.UpdatedAt = now
	return s.Receipts.Save(receipt)
}

// RecordPostError implementa Poster (best effort, fuera de la tx revertida).
func (uc *GoodsReceiptUseCase) RecordPostError(docID, message string) {
	_ = uc.stores.Receipts.SetPostError(docID, message)
}
