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

// StockTransferUseCase gestiona traslados. Cada línea posteada genera
// exactamente dos movimientos (TRANSFER_OUT del origen y TRANSFER_IN al
// destino) con la misma referencia, de modo que la existencia total del par
// (producto, lote) entre las dos ubicaciones se conserva.
type StockTransferUseCase struct {
	tx     stock.TxRunner
	stores repository.Stores
	engine *PostingEngine
}

// NewStockTransferUseCase construye el caso de uso.
func NewStockTransferUseCase(tx stock.TxRunner, stores repository.Stores, engine *PostingEngine) *StockTransferUseCase {
	return &StockTransferUseCase{tx: tx, stores: stores, engine: engine}
}

// StockTransferLineInput es la entrada para una línea de traslado.
type StockTransferLineInput struct {
	ProductID      string
	UomID          string
	FromLocationID string
	ToLocationID   string
	BatchID        *string
	Quantity       decimal.Decimal
}

// CreateStockTransferInput es la entrada para crear un traslado en borrador.
type CreateStockTransferInput struct {
	FromWarehouseID string
	ToWarehouseID   string
	Notes           string
	Lines           []StockTransferLineInput
}

// Create valida y guarda un traslado en estado DRAFT. Origen == destino se
// rechaza al guardar, no solo al postear.
func (uc *StockTransferUseCase) Create(ctx context.Context, in CreateStockTransferInput, actor string) (*entity.StockTransfer, error) {
	if in.FromWarehouseID == "" || in.ToWarehouseID == "" || actor == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	transfer := &entity.StockTransfer{
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Status:          entity.StockTransferStatusDraft,
		Notes:           in.Notes,
		CreatedBy:       actor,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		if _, err := loadWarehouse(s, in.FromWarehouseID); err != nil {
			return err
		}
		if _, err := loadWarehouse(s, in.ToWarehouseID); err != nil {
			return err
		}
		for i, li := range in.Lines {
			line, err := uc.buildLine(s, transfer, li, i+1)
			if err != nil {
				return err
			}
			transfer.Lines = append(transfer.Lines, *line)
		}
		number, err := uniqueNumber(s.Transfers.ExistsByNumber, prefixStockTransfer, now)
		if err != nil {
			return err
		}
		transfer.Number = number
		return s.Transfers.Create(transfer)
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

func (uc *StockTransferUseCase) buildLine(s repository.Stores, transfer *entity.StockTransfer, li StockTransferLineInput, lineNo int) (*entity.StockTransferLine, error) {
	if li.FromLocationID == li.ToLocationID {
		return nil, domain.ErrSameLocation
	}
	masters, err := loadLineMasters(s, li.ProductID, li.BatchID, li.UomID)
	if err != nil {
		return nil, err
	}
	if err := domstock.ValidateQuantity(masters.Uom, li.Quantity); err != nil {
		return nil, err
	}
	// Origen en la bodega origen, destino en la bodega destino.
	fromLoc, err := loadLocation(s, li.FromLocationID, transfer.FromWarehouseID)
	if err != nil {
		return nil, err
	}
	if err := domstock.ValidatePickable(fromLoc); err != nil {
		return nil, err
	}
	toLoc, err := loadLocation(s, li.ToLocationID, transfer.ToWarehouseID)
	if err != nil {
		return nil, err
	}
	if err := domstock.ValidateReceivable(toLoc); err != nil {
		return nil, err
	}
	return &entity.StockTransferLine{
		TransferID:     transfer.ID,
		LineNo:         lineNo,
		ProductID:      li.ProductID,
		UomID:          masters.Uom.ID,
		FromLocationID: li.FromLocationID,
		ToLocationID:   li.ToLocationID,
		BatchID:        li.BatchID,
		Quantity:       li.Quantity,
		Status:         entity.LineStatusActive,
	}, nil
}

// AddLine agrega una línea a un traslado en borrador.
func (uc *StockTransferUseCase) AddLine(ctx context.Context, transferID string, li StockTransferLineInput) (*entity.StockTransfer, error) {
	var transfer *entity.StockTransfer
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		var err error
		transfer, err = s.Transfers.GetByID(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if !transfer.Editable() {
			return domain.ErrImmutableDocument
		}
		line, err := uc.buildLine(s, transfer, li, len(transfer.Lines)+1)
		if err != nil {
			return err
		}
		transfer.Lines = append(transfer.Lines, *line)
		transfer.UpdatedAt = time.Now()
		return s.Transfers.Save(transfer)
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

// RemoveLine marca una línea como borrada.
func (uc *StockTransferUseCase) RemoveLine(ctx context.Context, transferID, lineID string) error {
	return uc.tx.Run(ctx, func(s repository.Stores) error {
		transfer, err := s.Transfers.GetByID(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if !transfer.Editable() {
			return domain.ErrImmutableDocument
		}
		for i := range transfer.Lines {
			if transfer.Lines[i].ID == lineID && transfer.Lines[i].Status == entity.LineStatusActive {
				transfer.Lines[i].Status = entity.LineStatusDeleted
				transfer.UpdatedAt = time.Now()
				return s.Transfers.Save(transfer)
			}
		}
		return domain.ErrNotFound
	})
}

// Cancel transiciona DRAFT -> CANCELLED sin efecto en el ledger.
func (uc *StockTransferUseCase) Cancel(ctx context.Context, transferID string) error {
	return uc.tx.Run(ctx, func(s repository.Stores) error {
		transfer, err := s.Transfers.GetByID(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if err := transfer.Cancel(); err != nil {
			return err
		}
		transfer.UpdatedAt = time.Now()
		return s.Transfers.Save(transfer)
	})
}

// Get devuelve un traslado con sus líneas.
func (uc *StockTransferUseCase) Get(id string) (*entity.StockTransfer, error) {
	transfer, err := uc.stores.Transfers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	return transfer, nil
}

// List devuelve traslados del más reciente al más antiguo.
func (uc *StockTransferUseCase) List(limit, offset int) ([]*entity.StockTransfer, error) {
	return uc.stores.Transfers.List(limit, offset)
}

// Post postea el traslado a través del motor compartido.
func (uc *StockTransferUseCase) Post(ctx context.Context, transferID, actor string) error {
	return uc.engine.Post(ctx, uc, transferID, actor)
}

// DocumentType implementa Poster.
func (uc *StockTransferUseCase) DocumentType() entity.DocumentType {
	return entity.DocumentTypeStockTransfer
}

// PostInTx implementa Poster: por cada línea activa, el par TRANSFER_OUT /
// TRANSFER_IN con la misma referencia. La salida va primero: si el origen no
// alcanza, nada se mueve.
func (uc *StockTransferUseCase) PostInTx(s repository.Stores, docID, actor string, now time.Time) error {
	transfer, err := s.Transfers.GetForUpdate(docID)
	if err != nil {
		return err
	}
	if transfer == nil {
		return domain.ErrNotFound
	}
	if transfer.Status != entity.StockTransferStatusDraft {
		return domain.ErrInvalidState
	}
	lines := transfer.ActiveLines()
	if len(lines) == 0 {
		return domain.ErrNoActiveLines
	}
	ref := entity.MovementReference{Type: entity.DocumentTypeStockTransfer, DocumentID: transfer.ID}
	for _, line := range lines {
		if line.FromLocationID == line.ToLocationID {
			return domain.ErrSameLocation
		}
		// Las ubicaciones se revalidan al postear: sus flags pudieron cambiar
		// desde que se creó el borrador.
		fromLoc, err := loadLocation(s, line.FromLocationID, transfer.FromWarehouseID)
		if err != nil {
			return err
		}
		if err := domstock.ValidatePickable(fromLoc); err != nil {
			return err
		}
		toLoc, err := loadLocation(s, line.ToLocationID, transfer.ToWarehouseID)
		if err != nil {
			return err
		}
		if err := domstock.ValidateReceivable(toLoc); err != nil {
			return err
		}
		if _, err := stock.Record(s, stock.MovementInput{
			Kind:           entity.MovementKindTransferOut,
			ProductID:      line.ProductID,
			UomID:          line.UomID,
			Quantity:       line.Quantity,
			FromLocationID: &line.FromLocationID,
			ToLocationID:   &line.ToLocationID,
			BatchID:        line.BatchID,
			Reference:      ref,
			Note:           transfer.Number,
			Actor:          actor,
		}, now); err != nil {
			return err
		}
		if _, err := stock.Record(s, stock.MovementInput{
			Kind:           entity.MovementKindTransferIn,
			ProductID:      line.ProductID,
			UomID:          line.UomID,
			Quantity:       line.Quantity,
			FromLocationID: &line.FromLocationID,
			ToLocationID:   &line.ToLocationID,
			BatchID:        line.BatchID,
			Reference:      ref,
			Note:           transfer.Number,
			Actor:          actor,
		}, now); err != nil {
			return err
		}
	}
	transfer.MarkPosted(actor, now)
	transfer.UpdatedAt = now
	return s.Transfers.Save(transfer)
}

// RecordPostError implementa Poster.
func (uc *StockTransferUseCase) RecordPostError(docID, message string) {
	_ = uc.stores.Transfers.SetPostError(docID, message)
}
