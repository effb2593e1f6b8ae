package documents

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-stock/internal/application/stock"
	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
)

// CycleCountUseCase gestiona conteos cíclicos: programar, iniciar (congela la
// existencia del sistema por línea), registrar conteos físicos, completar y
// postear. Cada línea con varianza distinta de cero genera un movimiento
// COUNT_CORRECTION en la misma ubicación contada, dirección según el signo de
// la varianza; las líneas sin varianza no generan movimiento.
type CycleCountUseCase struct {
	tx     stock.TxRunner
	stores repository.Stores
	engine *PostingEngine
}

// NewCycleCountUseCase construye el caso de uso.
func NewCycleCountUseCase(tx stock.TxRunner, stores repository.Stores, engine *PostingEngine) *CycleCountUseCase {
	return &CycleCountUseCase{tx: tx, stores: stores, engine: engine}
}

// CycleCountLineInput es la entrada para una línea de conteo.
type CycleCountLineInput struct {
	ProductID  string
	LocationID string
	BatchID    *string
	UomID      string
}

// CreateCycleCountInput es la entrada para programar un conteo.
type CreateCycleCountInput struct {
	WarehouseID  string
	ScheduledFor time.Time
	Notes        string
	Lines        []CycleCountLineInput
}

// Create programa un conteo en estado SCHEDULED. SystemQty queda en cero
// hasta iniciarlo: la captura al momento del inicio es la que vale.
func (uc *CycleCountUseCase) Create(ctx context.Context, in CreateCycleCountInput, actor string) (*entity.CycleCount, error) {
	if in.WarehouseID == "" || actor == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	count := &entity.CycleCount{
		WarehouseID:  in.WarehouseID,
		Status:       entity.CycleCountStatusScheduled,
		ScheduledFor: in.ScheduledFor,
		Notes:        in.Notes,
		CreatedBy:    actor,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		if _, err := loadWarehouse(s, in.WarehouseID); err != nil {
			return err
		}
		for i, li := range in.Lines {
			line, err := uc.buildLine(s, count, li, i+1)
			if err != nil {
				return err
			}
			count.Lines = append(count.Lines, *line)
		}
		number, err := uniqueNumber(s.CycleCounts.ExistsByNumber, prefixCycleCount, now)
		if err != nil {
			return err
		}
		count.Number = number
		return s.CycleCounts.Create(count)
	})
	if err != nil {
		return nil, err
	}
	return count, nil
}

func (uc *CycleCountUseCase) buildLine(s repository.Stores, count *entity.CycleCount, li CycleCountLineInput, lineNo int) (*entity.CycleCountLine, error) {
	masters, err := loadLineMasters(s, li.ProductID, li.BatchID, li.UomID)
	if err != nil {
		return nil, err
	}
	if _, err := loadLocation(s, li.LocationID, count.WarehouseID); err != nil {
		return nil, err
	}
	return &entity.CycleCountLine{
		CountID:    count.ID,
		LineNo:     lineNo,
		ProductID:  li.ProductID,
		LocationID: li.LocationID,
		BatchID:    li.BatchID,
		UomID:      masters.Uom.ID,
		SystemQty:  decimal.Zero,
		Status:     entity.LineStatusActive,
	}, nil
}

// AddLine agrega una línea a un conteo aún SCHEDULED.
func (uc *CycleCountUseCase) AddLine(ctx context.Context, countID string, li CycleCountLineInput) (*entity.CycleCount, error) {
	var count *entity.CycleCount
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		var err error
		count, err = s.CycleCounts.GetByID(countID)
		if err != nil {
			return err
		}
		if count == nil {
			return domain.ErrNotFound
		}
		if !count.Editable() {
			return domain.ErrImmutableDocument
		}
		line, err := uc.buildLine(s, count, li, len(count.Lines)+1)
		if err != nil {
			return err
		}
		count.Lines = append(count.Lines, *line)
		count.UpdatedAt = time.Now()
		return s.CycleCounts.Save(count)
	})
	if err != nil {
		return nil, err
	}
	return count, nil
}

// RemoveLine marca una línea como borrada mientras el conteo está SCHEDULED.
func (uc *CycleCountUseCase) RemoveLine(ctx context.Context, countID, lineID string) error {
	return uc.tx.Run(ctx, func(s repository.Stores) error {
		count, err := s.CycleCounts.GetByID(countID)
		if err != nil {
			return err
		}
		if count == nil {
			return domain.ErrNotFound
		}
		if !count.Editable() {
			return domain.ErrImmutableDocument
		}
		for i := range count.Lines {
			if count.Lines[i].ID == lineID && count.Lines[i].Status == entity.LineStatusActive {
				count.Lines[i].Status = entity.LineStatusDeleted
				count.UpdatedAt = time.Now()
				return s.CycleCounts.Save(count)
			}
		}
		return domain.ErrNotFound
	})
}

// Start transiciona a IN_PROGRESS y congela SystemQty por línea leyendo la
// existencia actual en ese instante.
func (uc *CycleCountUseCase) Start(ctx context.Context, countID string) error {
	return uc.tx.Run(ctx, func(s repository.Stores) error {
		count, err := s.CycleCounts.GetByID(countID)
		if err != nil {
			return err
		}
		if count == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		if err := count.Start(now); err != nil {
			return err
		}
		for i := range count.Lines {
			if count.Lines[i].Status != entity.LineStatusActive {
				continue
			}
			level, err := s.StockLevels.Get(count.Lines[i].ProductID, count.Lines[i].LocationID, count.Lines[i].BatchID)
			if err != nil {
				return err
			}
			count.Lines[i].SystemQty = level.OnHand
		}
		count.UpdatedAt = now
		return s.CycleCounts.Save(count)
	})
}

// RecordCount registra la cantidad física contada de una línea (conteo IN_PROGRESS).
func (uc *CycleCountUseCase) RecordCount(ctx context.Context, countID, lineID string, countedQty decimal.Decimal) error {
	if countedQty.IsNegative() {
		return domain.ErrInvalidInput
	}
	return uc.tx.Run(ctx, func(s repository.Stores) error {
		count, err := s.CycleCounts.GetByID(countID)
		if err != nil {
			return err
		}
		if count == nil {
			return domain.ErrNotFound
		}
		if count.Status != entity.CycleCountStatusInProgress {
			return domain.ErrInvalidState
		}
		for i := range count.Lines {
			if count.Lines[i].ID != lineID || count.Lines[i].Status != entity.LineStatusActive {
				continue
			}
			uom, err := s.Uoms.GetByID(count.Lines[i].UomID)
			if err != nil {
				return err
			}
			if uom == nil {
				return domain.ErrNotFound
			}
			if !uom.IsDecimal && !countedQty.IsInteger() {
				return domain.ErrFractionalQuantity
			}
			qty := countedQty
			count.Lines[i].CountedQty = &qty
			count.UpdatedAt = time.Now()
			return s.CycleCounts.Save(count)
		}
		return domain.ErrNotFound
	})
}

// Complete transiciona a COMPLETED; exige toda línea activa contada.
func (uc *CycleCountUseCase) Complete(ctx context.Context, countID string) error {
	return uc.tx.Run(ctx, func(s repository.Stores) error {
		count, err := s.CycleCounts.GetByID(countID)
		if err != nil {
			return err
		}
		if count == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		if err := count.Complete(now); err != nil {
			return err
		}
		count.UpdatedAt = now
		return s.CycleCounts.Save(count)
	})
}

// Get devuelve un conteo con sus líneas.
func (uc *CycleCountUseCase) Get(id string) (*entity.CycleCount, error) {
	count, err := uc.stores.CycleCounts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, domain.ErrNotFound
	}
	return count, nil
}

// List devuelve conteos del más reciente al más antiguo.
func (uc *CycleCountUseCase) List(limit, offset int) ([]*entity.CycleCount, error) {
	return uc.stores.CycleCounts.List(limit, offset)
}

// Post postea el conteo a través del motor compartido.
func (uc *CycleCountUseCase) Post(ctx context.Context, countID, actor string) error {
	return uc.engine.Post(ctx, uc, countID, actor)
}

// DocumentType implementa Poster.
func (uc *CycleCountUseCase) DocumentType() entity.DocumentType {
	return entity.DocumentTypeCycleCount
}

// PostInTx implementa Poster: solo un conteo COMPLETED con todas las líneas
// contadas es posteable. La corrección apunta a la misma ubicación contada en
// ambas direcciones; la persistencia del movimiento lleva siempre la magnitud
// positiva de la varianza.
func (uc *CycleCountUseCase) PostInTx(s repository.Stores, docID, actor string, now time.Time) error {
	count, err := s.CycleCounts.GetForUpdate(docID)
	if err != nil {
		return err
	}
	if count == nil {
		return domain.ErrNotFound
	}
	if count.Status != entity.CycleCountStatusCompleted {
		return domain.ErrInvalidState
	}
	lines := count.ActiveLines()
	if len(lines) == 0 {
		return domain.ErrNoActiveLines
	}
	for _, line := range lines {
		variance, counted := line.Variance()
		if !counted {
			return domain.ErrInvalidInput
		}
		if variance.IsZero() {
			continue
		}
		in := stock.MovementInput{
			Kind:      entity.MovementKindCountCorrection,
			ProductID: line.ProductID,
			UomID:     line.UomID,
			Quantity:  variance.Abs(),
			BatchID:   line.BatchID,
			Reference: entity.MovementReference{Type: entity.DocumentTypeCycleCount, DocumentID: count.ID},
			Note:      count.Number,
			Actor:     actor,
		}
		loc := line.LocationID
		if variance.IsPositive() {
			in.CountDirection = entity.DirectionInflow
			in.ToLocationID = &loc
		} else {
			in.CountDirection = entity.DirectionOutflow
			in.FromLocationID = &loc
		}
		if _, err := stock.Record(s, in, now); err != nil {
			return err
		}
	}
	count.MarkPosted(actor, now)
	count.UpdatedAt = now
	return s.CycleCounts.Save(count)
}

// RecordPostError implementa Poster.
func (uc *CycleCountUseCase) RecordPostError(docID, message string) {
	_ = uc.stores.CycleCounts.SetPostError(docID, message)
}

