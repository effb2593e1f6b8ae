package http

import (
	"github.com/jhoicas/erp-stock/internal/application/dto"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
)

// Mapeo entidad → DTO de respuesta. Solo se exponen las líneas activas;
// las borradas son detalle de persistencia.

func toGoodsReceiptResponse(r *entity.GoodsReceipt) *dto.GoodsReceiptResponse {
	out := &dto.GoodsReceiptResponse{
		ID:              r.ID,
		Number:          r.Number,
		WarehouseID:     r.WarehouseID,
		PurchaseOrderID: r.PurchaseOrderID,
		Status:          string(r.Status),
		Notes:           r.Notes,
		LastPostError:   r.LastPostError,
		PostedBy:        r.PostedBy,
		PostedAt:        r.PostedAt,
		CreatedBy:       r.CreatedBy,
		CreatedAt:       r.CreatedAt,
		Lines:           []dto.GoodsReceiptLineResponse{},
	}
	for _, l := range r.ActiveLines() {
		out.Lines = append(out.Lines, dto.GoodsReceiptLineResponse{
			ID:         l.ID,
			LineNo:     l.LineNo,
			ProductID:  l.ProductID,
			LocationID: l.LocationID,
			BatchID:    l.BatchID,
			UomID:      l.UomID,
			Quantity:   l.Quantity,
			UnitCost:   l.UnitCost,
			POLineID:   l.POLineID,
		})
	}
	return out
}

func toStockIssueResponse(i *entity.StockIssue) *dto.StockIssueResponse {
	out := &dto.StockIssueResponse{
		ID:            i.ID,
		Number:        i.Number,
		WarehouseID:   i.WarehouseID,
		Status:        string(i.Status),
		Reason:        i.Reason,
		LastPostError: i.LastPostError,
		PostedBy:      i.PostedBy,
		PostedAt:      i.PostedAt,
		CreatedBy:     i.CreatedBy,
		CreatedAt:     i.CreatedAt,
		Lines:         []dto.StockIssueLineResponse{},
	}
	for _, l := range i.ActiveLines() {
		out.Lines = append(out.Lines, dto.StockIssueLineResponse{
			ID:             l.ID,
			LineNo:         l.LineNo,
			ProductID:      l.ProductID,
			FromLocationID: l.FromLocationID,
			BatchID:        l.BatchID,
			Quantity:       l.Quantity,
		})
	}
	return out
}

func toStockTransferResponse(t *entity.StockTransfer) *dto.StockTransferResponse {
	out := &dto.StockTransferResponse{
		ID:              t.ID,
		Number:          t.Number,
		FromWarehouseID: t.FromWarehouseID,
		ToWarehouseID:   t.ToWarehouseID,
		Status:          string(t.Status),
		Notes:           t.Notes,
		LastPostError:   t.LastPostError,
		PostedBy:        t.PostedBy,
		PostedAt:        t.PostedAt,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.CreatedAt,
		Lines:           []dto.StockTransferLineResponse{},
	}
	for _, l := range t.ActiveLines() {
		out.Lines = append(out.Lines, dto.StockTransferLineResponse{
			ID:             l.ID,
			LineNo:         l.LineNo,
			ProductID:      l.ProductID,
			UomID:          l.UomID,
			FromLocationID: l.FromLocationID,
			ToLocationID:   l.ToLocationID,
			BatchID:        l.BatchID,
			Quantity:       l.Quantity,
		})
	}
	return out
}

func toStockAdjustmentResponse(a *entity.StockAdjustment) *dto.StockAdjustmentResponse {
	out := &dto.StockAdjustmentResponse{
		ID:            a.ID,
		Number:        a.Number,
		WarehouseID:   a.WarehouseID,
		Status:        string(a.Status),
		Reason:        a.Reason,
		LastPostError: a.LastPostError,
		PostedBy:      a.PostedBy,
		PostedAt:      a.PostedAt,
		CreatedBy:     a.CreatedBy,
		CreatedAt:     a.CreatedAt,
		Lines:         []dto.StockAdjustmentLineResponse{},
	}
	for _, l := range a.ActiveLines() {
		out.Lines = append(out.Lines, dto.StockAdjustmentLineResponse{
			ID:         l.ID,
			LineNo:     l.LineNo,
			ProductID:  l.ProductID,
			LocationID: l.LocationID,
			BatchID:    l.BatchID,
			QtyDelta:   l.QtyDelta,
			SystemQty:  l.SystemQty,
		})
	}
	return out
}

func toCycleCountResponse(cc *entity.CycleCount) *dto.CycleCountResponse {
	out := &dto.CycleCountResponse{
		ID:            cc.ID,
		Number:        cc.Number,
		WarehouseID:   cc.WarehouseID,
		Status:        string(cc.Status),
		ScheduledFor:  cc.ScheduledFor,
		Notes:         cc.Notes,
		LastPostError: cc.LastPostError,
		StartedAt:     cc.StartedAt,
		CompletedAt:   cc.CompletedAt,
		PostedBy:      cc.PostedBy,
		PostedAt:      cc.PostedAt,
		CreatedBy:     cc.CreatedBy,
		CreatedAt:     cc.CreatedAt,
		Lines:         []dto.CycleCountLineResponse{},
	}
	for _, l := range cc.ActiveLines() {
		line := dto.CycleCountLineResponse{
			ID:         l.ID,
			LineNo:     l.LineNo,
			ProductID:  l.ProductID,
			LocationID: l.LocationID,
			BatchID:    l.BatchID,
			UomID:      l.UomID,
			SystemQty:  l.SystemQty,
			CountedQty: l.CountedQty,
		}
		if l.CountedQty != nil {
			v := l.CountedQty.Sub(l.SystemQty)
			line.Variance = &v
		}
		out.Lines = append(out.Lines, line)
	}
	return out
}

func toPurchaseOrderResponse(p *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	out := &dto.PurchaseOrderResponse{
		ID:          p.ID,
		Number:      p.Number,
		SupplierID:  p.SupplierID,
		Status:      string(p.Status),
		Notes:       p.Notes,
		ConfirmedAt: p.ConfirmedAt,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		Lines:       []dto.PurchaseOrderLineResponse{},
	}
	for _, l := range p.ActiveLines() {
		out.Lines = append(out.Lines, dto.PurchaseOrderLineResponse{
			ID:          l.ID,
			LineNo:      l.LineNo,
			ProductID:   l.ProductID,
			UomID:       l.UomID,
			OrderedQty:  l.OrderedQty,
			ReceivedQty: l.ReceivedQty,
			UnitPrice:   l.UnitPrice,
			LineStatus:  string(l.LineStatus),
		})
	}
	return out
}

func toStockLevelDTO(s *entity.StockLevel) dto.StockLevelDTO {
	return dto.StockLevelDTO{
		ProductID:  s.ProductID,
		LocationID: s.LocationID,
		BatchID:    s.BatchID,
		OnHand:     s.OnHand,
		Reserved:   s.Reserved,
		Available:  s.Available(),
	}
}

func toStockLevelDTOs(levels []*entity.StockLevel) []dto.StockLevelDTO {
	out := make([]dto.StockLevelDTO, 0, len(levels))
	for _, s := range levels {
		out = append(out, toStockLevelDTO(s))
	}
	return out
}

func toStockMovementDTOs(movements []*entity.StockMovement) []dto.StockMovementDTO {
	out := make([]dto.StockMovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.StockMovementDTO{
			ID:             m.ID,
			Kind:           string(m.Kind),
			ProductID:      m.ProductID,
			UomID:          m.UomID,
			Quantity:       m.Quantity,
			FromLocationID: m.FromLocationID,
			ToLocationID:   m.ToLocationID,
			BatchID:        m.BatchID,
			ReferenceType:  string(m.Reference.Type),
			ReferenceID:    m.Reference.DocumentID,
			Note:           m.Note,
			CreatedBy:      m.CreatedBy,
			CreatedAt:      m.CreatedAt,
		})
	}
	return out
}

func toReorderItemDTOs(items []repository.ReorderItem) []dto.ReorderItemDTO {
	out := make([]dto.ReorderItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ReorderItemDTO{
			ProductID:    it.ProductID,
			SKU:          it.SKU,
			ProductName:  it.ProductName,
			CurrentStock: it.CurrentStock,
			ReorderPoint: it.ReorderPoint,
		})
	}
	return out
}
