package memory

import "github.com/jhoicas/erp-stock/internal/domain/entity"

// clonePtr copia un puntero a valor (para campos opcionales *string, *time.Time...).
func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	return &cp
}

func cloneWarehouse(w *entity.Warehouse) *entity.Warehouse {
	cw := *w
	return &cw
}

func cloneLocation(l *entity.Location) *entity.Location {
	cl := *l
	return &cl
}

func cloneUom(u *entity.UnitMeasure) *entity.UnitMeasure {
	cu := *u
	return &cu
}

func cloneBatch(b *entity.Batch) *entity.Batch {
	cb := *b
	cb.ExpiresAt = clonePtr(b.ExpiresAt)
	return &cb
}

func cloneLevel(s *entity.StockLevel) *entity.StockLevel {
	cs := *s
	cs.BatchID = clonePtr(s.BatchID)
	return &cs
}

func cloneMovement(m *entity.StockMovement) *entity.StockMovement {
	cm := *m
	cm.FromLocationID = clonePtr(m.FromLocationID)
	cm.ToLocationID = clonePtr(m.ToLocationID)
	cm.BatchID = clonePtr(m.BatchID)
	return &cm
}

func cloneReceipt(r *entity.GoodsReceipt) *entity.GoodsReceipt {
	cr := *r
	cr.PurchaseOrderID = clonePtr(r.PurchaseOrderID)
	cr.LastPostError = clonePtr(r.LastPostError)
	cr.PostedBy = clonePtr(r.PostedBy)
	cr.PostedAt = clonePtr(r.PostedAt)
	cr.Lines = make([]entity.GoodsReceiptLine, len(r.Lines))
	for i, l := range r.Lines {
		l.BatchID = clonePtr(l.BatchID)
		l.POLineID = clonePtr(l.POLineID)
		cr.Lines[i] = l
	}
	return &cr
}

func cloneIssue(i *entity.StockIssue) *entity.StockIssue {
	ci := *i
	ci.LastPostError = clonePtr(i.LastPostError)
	ci.PostedBy = clonePtr(i.PostedBy)
	ci.PostedAt = clonePtr(i.PostedAt)
	ci.Lines = make([]entity.StockIssueLine, len(i.Lines))
	for j, l := range i.Lines {
		l.BatchID = clonePtr(l.BatchID)
		ci.Lines[j] = l
	}
	return &ci
}

func cloneTransfer(t *entity.StockTransfer) *entity.StockTransfer {
	ct := *t
	ct.LastPostError = clonePtr(t.LastPostError)
	ct.PostedBy = clonePtr(t.PostedBy)
	ct.PostedAt = clonePtr(t.PostedAt)
	ct.Lines = make([]entity.StockTransferLine, len(t.Lines))
	for i, l := range t.Lines {
		l.BatchID = clonePtr(l.BatchID)
		ct.Lines[i] = l
	}
	return &ct
}

func cloneAdjustment(a *entity.StockAdjustment) *entity.StockAdjustment {
	ca := *a
	ca.LastPostError = clonePtr(a.LastPostError)
	ca.PostedBy = clonePtr(a.PostedBy)
	ca.PostedAt = clonePtr(a.PostedAt)
	ca.Lines = make([]entity.StockAdjustmentLine, len(a.Lines))
	for i, l := range a.Lines {
		l.BatchID = clonePtr(l.BatchID)
		ca.Lines[i] = l
	}
	return &ca
}

func cloneCount(c *entity.CycleCount) *entity.CycleCount {
	cc := *c
	cc.LastPostError = clonePtr(c.LastPostError)
	cc.StartedAt = clonePtr(c.StartedAt)
	cc.CompletedAt = clonePtr(c.CompletedAt)
	cc.PostedBy = clonePtr(c.PostedBy)
	cc.PostedAt = clonePtr(c.PostedAt)
	cc.Lines = make([]entity.CycleCountLine, len(c.Lines))
	for i, l := range c.Lines {
		l.BatchID = clonePtr(l.BatchID)
		l.CountedQty = clonePtr(l.CountedQty)
		cc.Lines[i] = l
	}
	return &cc
}

func cloneOrder(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	co := *o
	co.ConfirmedAt = clonePtr(o.ConfirmedAt)
	co.Lines = append([]entity.PurchaseOrderLine(nil), o.Lines...)
	return &co
}
