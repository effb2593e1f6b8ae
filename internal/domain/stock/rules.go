package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
)

// Reglas transversales de lote, unidad de medida y ubicación (servicio de
// dominio puro). Todas las validaciones de documentos pasan por aquí antes de
// tocar el ledger.

// ValidateBatch valida la regla de lote: obligatorio si el producto maneja
// lotes, prohibido si no; y el lote debe pertenecer al mismo producto.
func ValidateBatch(product *entity.Product, batch *entity.Batch) error {
	if product.IsBatchTracked {
		if batch == nil {
			return domain.ErrBatchRequired
		}
		if batch.ProductID != product.ID {
			return domain.ErrBatchProductMismatch
		}
		return nil
	}
	if batch != nil {
		return domain.ErrBatchNotAllowed
	}
	return nil
}

// ValidateQuantity valida que la cantidad sea positiva y, si la unidad no es
// decimal, que sea entera.
func ValidateQuantity(uom *entity.UnitMeasure, qty decimal.Decimal) error {
	if !qty.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if !uom.IsDecimal && !qty.IsInteger() {
		return domain.ErrFractionalQuantity
	}
	return nil
}

// ValidateDelta valida un delta de ajuste: no cero y, si la unidad no es
// decimal, entero.
func ValidateDelta(uom *entity.UnitMeasure, delta decimal.Decimal) error {
	if delta.IsZero() {
		return domain.ErrInvalidInput
	}
	if !uom.IsDecimal && !delta.IsInteger() {
		return domain.ErrFractionalQuantity
	}
	return nil
}

// ValidateLocationInWarehouse valida que la ubicación pertenezca a la bodega
// declarada por el documento.
func ValidateLocationInWarehouse(loc *entity.Location, warehouseID string) error {
	if loc.WarehouseID != warehouseID {
		return domain.ErrWarehouseMismatch
	}
	return nil
}

// ValidateReceivable valida que la ubicación admita recepciones.
func ValidateReceivable(loc *entity.Location) error {
	if !loc.IsReceivable {
		return domain.ErrLocationNotReceivable
	}
	return nil
}

// ValidatePickable valida que la ubicación admita salidas.
func ValidatePickable(loc *entity.Location) error {
	if !loc.IsPickable {
		return domain.ErrLocationNotPickable
	}
	return nil
}

// WeightedAverageCost implementa el costo promedio ponderado tras una entrada.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedAverageCost(onHand, currentCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	sum := onHand.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := onHand.Mul(currentCost).Add(inQty.Mul(inCost))
	return num.Div(sum)
}
