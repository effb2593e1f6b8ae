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

// StockAdjustmentUseCase gestiona ajustes manuales. Cada línea lleva un delta
// con signo; al postear se traduce a ADJUST_POS o ADJUST_NEG por la magnitud
// (la dirección la fija el tipo de movimiento, a diferencia del conteo
// cíclico donde la decide la varianza por instancia).
type StockAdjustmentUseCase struct {
	tx     stock.TxRunner
	stores repository.Stores
	engine *PostingEngine
}

// NewStockAdjustmentUseCase construye el caso de uso.
func NewStockAdjustmentUseCase(tx stock.TxRunner, stores repository.Stores, engine *PostingEngine) *StockAdjustmentUseCase {
	return &StockAdjustmentUseCase{tx: tx, stores: stores, engine: engine}
}

// StockAdjustmentLineInput es la entrada para una línea de ajuste.
type StockAdjustmentLineInput struct {
	ProductID  string
	LocationID string
	BatchID    *string
	QtyDelta   decimal.Decimal // con signo, nunca cero
}

// CreateStockAdjustmentInput es la entrada para crear un ajuste en borrador.
type CreateStockAdjustmentInput struct {
	WarehouseID string
	Reason      string
	Lines       []StockAdjustmentLineInput
}

// Create valida y guarda un ajuste en estado DRAFT. Captura la existencia del
// sistema por línea (SystemQty) al momento de crearla, para auditoría.
func (uc *StockAdjustmentUseCase) Create(ctx context.Context, in CreateStockAdjustmentInput, actor string) (*entity.StockAdjustment, error) {
	if in.WarehouseID == "" || actor == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	adj := &entity.StockAdjustment{
		WarehouseID: in.WarehouseID,
		Status:      entity.StockAdjustmentStatusDraft,
		Reason:      in.Reason,
		CreatedBy:   actor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		if _, err := loadWarehouse(s, in.WarehouseID); err != nil {
			return err
		}
		for i, li := range in.Lines {
			line, err := uc.buildLine(s, adj, li, i+1)
			if err != nil {
				return err
			}
			adj.Lines = append(adj.Lines, *line)
		}
		number, err := uniqueNumber(s.Adjustments.ExistsByNumber, prefixStockAdjustment, now)
		if err != nil {
			return err
		}
		adj.Number = number
		return s.Adjustments.Create(adj)
	})
	if err != nil {
		return nil, err
	}
	return adj, nil
}

func (uc *StockAdjustmentUseCase) buildLine(s repository.Stores, adj *entity.StockAdjustment, li StockAdjustmentLineInput, lineNo int) (*entity.StockAdjustmentLine, error) {
	masters, err := loadLineMasters(s, li.ProductID, li.BatchID, "")
	if err != nil {
		return nil, err
	}
	if err := domstock.ValidateDelta(masters.Uom, li.QtyDelta); err != nil {
		return nil, err
	}
	if _, err := loadLocation(s, li.LocationID, adj.WarehouseID); err != nil {
		return nil, err
	}
	level, err := s.StockLevels.Get(li.ProductID, li.LocationID, li.BatchID)
	if err != nil {
		return nil, err
	}
	return &entity.StockAdjustmentLine{
		AdjustmentID: adj.ID,
		LineNo:       lineNo,
		ProductID:    li.ProductID,
		LocationID:   li.LocationID,
		BatchID:      li.BatchID,
		QtyDelta:     li.QtyDelta,
		SystemQty:    level.OnHand,
		Status:       entity.LineStatusActive,
	}, nil
}

// AddLine agrega una línea a un ajuste en borrador.
func (uc *StockAdjustmentUseCase) AddLine(ctx context.Context, adjustmentID string, li StockAdjustmentLineInput) (*entity.StockAdjustment, error) {
	var adj *entity.StockAdjustment
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		var err error
		adj, err = s.Adjustments.GetByID(adjustmentID)
		if err != nil {
			return err
		}
		if adj == nil {
			return domain.ErrNotFound
		}
		if !adj.Editable() {
			return domain.ErrImmutableDocument
		}
		line, err := uc.buildLine(s, adj, li, len(adj.Lines)+1)
		if err != nil {
			return err
		}
		adj.Lines = append(adj.Lines, *line)
		adj.UpdatedAt = time.Now()
		return s.Adjustments.Save(adj)
	})
	if err != nil {
		return nil, err
	}
	return adj, nil
}

// RemoveLine marca una línea como borrada.
func (uc *StockAdjustmentUseCase) RemoveLine(ctx context.Context, adjustmentID, lineID string) error {
	return uc.tx.Run(ctx, func(s repository.Stores) error {
		adj, err := s.Adjustments.GetByID(adjustmentID)
		if err != nil {
			return err
		}
		if adj == nil {
			return domain.ErrNotFound
		}
		if !adj.Editable() {
			return domain.ErrImmutableDocument
		}
		for i := range adj.Lines {
			if adj.Lines[i].ID == lineID && adj.Lines[i].Status == entity.LineStatusActive {
				adj.Lines[i].Status = entity.LineStatusDeleted
				adj.UpdatedAt = time.Now()
				return s.Adjustments.Save(adj)
			}
		}
		return domain.ErrNotFound
	})
}

// Get devuelve un ajuste con sus líneas.
func (uc *StockAdjustmentUseCase) Get(id string) (*entity.StockAdjustment, error) {
	adj, err := uc.stores.Adjustments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	return adj, nil
}

// List devuelve ajustes del más reciente al más antiguo.
func (uc *StockAdjustmentUseCase) List(limit, offset int) ([]*entity.StockAdjustment, error) {
	return uc.stores.Adjustments.List(limit, offset)
}

// Post postea el ajuste a través del motor compartido.
func (uc *StockAdjustmentUseCase) Post(ctx context.Context, adjustmentID, actor string) error {
	return uc.engine.Post(ctx, uc, adjustmentID, actor)
}

// DocumentType implementa Poster.
func (uc *StockAdjustmentUseCase) DocumentType() entity.DocumentType {
	return entity.DocumentTypeStockAdjustment
}

// PostInTx implementa Poster: delta positivo -> ADJUST_POS, delta negativo ->
// ADJUST_NEG por |delta|. Un delta negativo se verifica contra la existencia
// disponible antes de tocar el ledger, no solo en el guard de la fila.
func (uc *StockAdjustmentUseCase) PostInTx(s repository.Stores, docID, actor string, now time.Time) error {
	adj, err := s.Adjustments.GetForUpdate(docID)
	if err != nil {
		return err
	}
	if adj == nil {
		return domain.ErrNotFound
	}
	if adj.Status != entity.StockAdjustmentStatusDraft {
		return domain.ErrInvalidState
	}
	lines := adj.ActiveLines()
	if len(lines) == 0 {
		return domain.ErrNoActiveLines
	}

	// Verificación previa: ningún delta negativo puede superar lo disponible.
	for _, line := range lines {
		if line.QtyDelta.IsNegative() {
			level, err := s.StockLevels.Get(line.ProductID, line.LocationID, line.BatchID)
			if err != nil {
				return err
			}
			if line.QtyDelta.Abs().GreaterThan(level.OnHand) {
				return domain.ErrInsufficientStock
			}
		}
	}

	for _, line := range lines {
		product, err := s.Products.GetByID(line.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		in := stock.MovementInput{
			ProductID: line.ProductID,
			UomID:     product.DefaultUomID,
			Quantity:  line.QtyDelta.Abs(),
			BatchID:   line.BatchID,
			Reference: entity.MovementReference{Type: entity.DocumentTypeStockAdjustment, DocumentID: adj.ID},
			Note:      adj.Reason,
			Actor:     actor,
		}
		if line.QtyDelta.IsPositive() {
			in.Kind = entity.MovementKindAdjustPos
			in.ToLocationID = &line.LocationID
		} else {
			in.Kind = entity.MovementKindAdjustNeg
			in.FromLocationID = &line.LocationID
		}
		if _, err := stock.Record(s, in, now); err != nil {
			return err
		}
	}
	adj.MarkPosted(actor, now)
	adj.UpdatedAt = now
	return s.Adjustments.Save(adj)
}

// RecordPostError implementa Poster.
func (uc *StockAdjustmentUseCase) RecordPostError(docID, message string) {
	_ = uc.stores.Adjustments.SetPostError(docID, message)
}
