package stock

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
	domstock "github.com/jhoicas/erp-stock/internal/domain/stock"
)

// Primitivas del ledger. Operan sobre repositorios atados a la transacción del
// caller (repository.Stores): el posteo de documentos las invoca dentro de su
// unidad de trabajo y cualquier falla revierte todo.

// AdjustOnHand bloquea la fila de existencias (SELECT FOR UPDATE), aplica el
// delta con signo y persiste. Rechaza con ErrInsufficientStock si el resultado
// quedaría negativo y con ErrReservedExceedsOnHand si quedaría por debajo de
// lo reservado. Devuelve la fila actualizada.
func AdjustOnHand(s repository.Stores, productID, locationID string, batchID *string, delta decimal.Decimal, now time.Time) (*entity.StockLevel, error) {
	level, err := s.StockLevels.GetForUpdate(productID, locationID, batchID)
	if err != nil {
		return nil, err
	}
	newQty := level.OnHand.Add(delta)
	if newQty.IsNegative() {
		return nil, domain.ErrInsufficientStock
	}
	if newQty.LessThan(level.Reserved) {
		return nil, domain.ErrReservedExceedsOnHand
	}
	level.OnHand = newQty
	level.UpdatedAt = now
	if err := s.StockLevels.Upsert(level); err != nil {
		return nil, err
	}
	return level, nil
}

// AdjustReserved bloquea la fila, aplica el delta sobre la reserva y persiste.
// Rechaza reservas negativas o que superen el stock en mano.
func AdjustReserved(s repository.Stores, productID, locationID string, batchID *string, delta decimal.Decimal, now time.Time) (*entity.StockLevel, error) {
	level, err := s.StockLevels.GetForUpdate(productID, locationID, batchID)
	if err != nil {
		return nil, err
	}
	newQty := level.Reserved.Add(delta)
	if newQty.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if newQty.GreaterThan(level.OnHand) {
		return nil, domain.ErrReservedExceedsOnHand
	}
	level.Reserved = newQty
	level.UpdatedAt = now
	if err := s.StockLevels.Upsert(level); err != nil {
		return nil, err
	}
	return level, nil
}

// MovementInput describe un movimiento a registrar en el ledger.
// Quantity siempre positiva; la dirección la da Kind, salvo COUNT_CORRECTION,
// donde viaja en CountDirection (decidida por el signo de la varianza).
type MovementInput struct {
	Kind           entity.MovementKind
	ProductID      string
	UomID          string
	Quantity       decimal.Decimal
	FromLocationID *string
	ToLocationID   *string
	BatchID        *string
	CountDirection entity.MovementDirection // solo COUNT_CORRECTION
	Reference      entity.MovementReference
	Note           string
	Actor          string
}

// Record valida la regla de forma del tipo de movimiento (salida exige origen,
// entrada exige destino, traslado exige ambos y distintos), la regla de lote y
// la cantidad; luego, atómicamente dentro de la tx del caller: ajusta la
// existencia afectada y persiste la entrada inmutable del ledger.
func Record(s repository.Stores, in MovementInput, now time.Time) (*entity.StockMovement, error) {
	if !in.Kind.Valid() || !in.Reference.Type.Valid() {
		return nil, domain.ErrInvalidInput
	}
	dir, fixed := in.Kind.Direction()
	if !fixed {
		dir = in.CountDirection
	}

	// Regla de forma según taxonomía.
	switch in.Kind {
	case entity.MovementKindTransferOut, entity.MovementKindTransferIn:
		if in.FromLocationID == nil || in.ToLocationID == nil {
			return nil, domain.ErrInvalidInput
		}
		if *in.FromLocationID == *in.ToLocationID {
			return nil, domain.ErrSameLocation
		}
	default:
		if dir == entity.DirectionOutflow && in.FromLocationID == nil {
			return nil, domain.ErrInvalidInput
		}
		if dir == entity.DirectionInflow && in.ToLocationID == nil {
			return nil, domain.ErrInvalidInput
		}
	}

	product, err := s.Products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	var batch *entity.Batch
	if in.BatchID != nil {
		batch, err = s.Batches.GetByID(*in.BatchID)
		if err != nil {
			return nil, err
		}
		if batch == nil {
			return nil, domain.ErrNotFound
		}
	}
	if err := domstock.ValidateBatch(product, batch); err != nil {
		return nil, err
	}
	uom, err := s.Uoms.GetByID(in.UomID)
	if err != nil {
		return nil, err
	}
	if uom == nil {
		return nil, domain.ErrNotFound
	}
	if err := domstock.ValidateQuantity(uom, in.Quantity); err != nil {
		return nil, err
	}

	// Un movimiento afecta exactamente una fila de existencias: la de origen
	// si es salida, la de destino si es entrada. Un traslado son dos
	// movimientos emparejados, nunca un registro bidireccional.
	if dir == entity.DirectionOutflow {
		if _, err := AdjustOnHand(s, in.ProductID, *in.FromLocationID, in.BatchID, in.Quantity.Neg(), now); err != nil {
			return nil, err
		}
	} else {
		if _, err := AdjustOnHand(s, in.ProductID, *in.ToLocationID, in.BatchID, in.Quantity, now); err != nil {
			return nil, err
		}
	}

	mov := &entity.StockMovement{
		Kind:           in.Kind,
		ProductID:      in.ProductID,
		UomID:          in.UomID,
		Quantity:       in.Quantity,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		BatchID:        in.BatchID,
		Reference:      in.Reference,
		Note:           in.Note,
		CreatedBy:      in.Actor,
		CreatedAt:      now,
	}
	if err := s.Movements.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}
