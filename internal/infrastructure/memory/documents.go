package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
)

var _ repository.GoodsReceiptRepository = (*goodsReceiptRepo)(nil)

type goodsReceiptRepo struct{ s *Store }

func (r *goodsReceiptRepo) Create(receipt *entity.GoodsReceipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	assignLineIDs(receipt)
	r.s.receipts[receipt.ID] = cloneReceipt(receipt)
	return nil
}

func (r *goodsReceiptRepo) GetByID(id string) (*entity.GoodsReceipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if gr, ok := r.s.receipts[id]; ok {
		return cloneReceipt(gr), nil
	}
	return nil, nil
}

// GetForUpdate equivale a GetByID: el TxRunner en memoria ya serializa las
// transacciones completas.
func (r *goodsReceiptRepo) GetForUpdate(id string) (*entity.GoodsReceipt, error) {
	return r.GetByID(id)
}

func (r *goodsReceiptRepo) Save(receipt *entity.GoodsReceipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.receipts[receipt.ID]; !ok {
		return domain.ErrNotFound
	}
	assignLineIDs(receipt)
	r.s.receipts[receipt.ID] = cloneReceipt(receipt)
	return nil
}

func (r *goodsReceiptRepo) SetPostError(id, message string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	gr, ok := r.s.receipts[id]
	if !ok {
		return domain.ErrNotFound
	}
	gr.LastPostError = &message
	return nil
}

func (r *goodsReceiptRepo) ExistsByNumber(number string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, gr := range r.s.receipts {
		if gr.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *goodsReceiptRepo) List(limit, offset int) ([]*entity.GoodsReceipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.GoodsReceipt
	for _, gr := range r.s.receipts {
		list = append(list, cloneReceipt(gr))
	}
	sortByCreatedDesc(list, func(gr *entity.GoodsReceipt) time.Time { return gr.CreatedAt })
	return paginate(list, limit, offset), nil
}

func assignLineIDs(receipt *entity.GoodsReceipt) {
	for i := range receipt.Lines {
		if receipt.Lines[i].ID == "" {
			receipt.Lines[i].ID = uuid.New().String()
		}
		receipt.Lines[i].ReceiptID = receipt.ID
	}
}

var _ repository.StockIssueRepository = (*stockIssueRepo)(nil)

type stockIssueRepo struct{ s *Store }

func (r *stockIssueRepo) Create(issue *entity.StockIssue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if issue.ID == "" {
		issue.ID = uuid.New().String()
	}
	for i := range issue.Lines {
		if issue.Lines[i].ID == "" {
			issue.Lines[i].ID = uuid.New().String()
		}
		issue.Lines[i].IssueID = issue.ID
	}
	r.s.issues[issue.ID] = cloneIssue(issue)
	return nil
}

func (r *stockIssueRepo) GetByID(id string) (*entity.StockIssue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if si, ok := r.s.issues[id]; ok {
		return cloneIssue(si), nil
	}
	return nil, nil
}

func (r *stockIssueRepo) GetForUpdate(id string) (*entity.StockIssue, error) {
	return r.GetByID(id)
}

func (r *stockIssueRepo) Save(issue *entity.StockIssue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.issues[issue.ID]; !ok {
		return domain.ErrNotFound
	}
	for i := range issue.Lines {
		if issue.Lines[i].ID == "" {
			issue.Lines[i].ID = uuid.New().String()
		}
		issue.Lines[i].IssueID = issue.ID
	}
	r.s.issues[issue.ID] = cloneIssue(issue)
	return nil
}

func (r *stockIssueRepo) SetPostError(id, message string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	si, ok := r.s.issues[id]
	if !ok {
		return domain.ErrNotFound
	}
	si.LastPostError = &message
	return nil
}

func (r *stockIssueRepo) ExistsByNumber(number string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, si := range r.s.issues {
		if si.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *stockIssueRepo) List(limit, offset int) ([]*entity.StockIssue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockIssue
	for _, si := range r.s.issues {
		list = append(list, cloneIssue(si))
	}
	sortByCreatedDesc(list, func(si *entity.StockIssue) time.Time { return si.CreatedAt })
	return paginate(list, limit, offset), nil
}

var _ repository.StockTransferRepository = (*stockTransferRepo)(nil)

type stockTransferRepo struct{ s *Store }

func (r *stockTransferRepo) Create(transfer *entity.StockTransfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	for i := range transfer.Lines {
		if transfer.Lines[i].ID == "" {
			transfer.Lines[i].ID = uuid.New().String()
		}
		transfer.Lines[i].TransferID = transfer.ID
	}
	r.s.transfers[transfer.ID] = cloneTransfer(transfer)
	return nil
}

func (r *stockTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if st, ok := r.s.transfers[id]; ok {
		return cloneTransfer(st), nil
	}
	return nil, nil
}

func (r *stockTransferRepo) GetForUpdate(id string) (*entity.StockTransfer, error) {
	return r.GetByID(id)
}

func (r *stockTransferRepo) Save(transfer *entity.StockTransfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transfers[transfer.ID]; !ok {
		return domain.ErrNotFound
	}
	for i := range transfer.Lines {
		if transfer.Lines[i].ID == "" {
			transfer.Lines[i].ID = uuid.New().String()
		}
		transfer.Lines[i].TransferID = transfer.ID
	}
	r.s.transfers[transfer.ID] = cloneTransfer(transfer)
	return nil
}

func (r *stockTransferRepo) SetPostError(id, message string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.transfers[id]
	if !ok {
		return domain.ErrNotFound
	}
	st.LastPostError = &message
	return nil
}

func (r *stockTransferRepo) ExistsByNumber(number string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, st := range r.s.transfers {
		if st.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *stockTransferRepo) List(limit, offset int) ([]*entity.StockTransfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockTransfer
	for _, st := range r.s.transfers {
		list = append(list, cloneTransfer(st))
	}
	sortByCreatedDesc(list, func(st *entity.StockTransfer) time.Time { return st.CreatedAt })
	return paginate(list, limit, offset), nil
}

var _ repository.StockAdjustmentRepository = (*stockAdjustmentRepo)(nil)

type stockAdjustmentRepo struct{ s *Store }

func (r *stockAdjustmentRepo) Create(adjustment *entity.StockAdjustment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if adjustment.ID == "" {
		adjustment.ID = uuid.New().String()
	}
	for i := range adjustment.Lines {
		if adjustment.Lines[i].ID == "" {
			adjustment.Lines[i].ID = uuid.New().String()
		}
		adjustment.Lines[i].AdjustmentID = adjustment.ID
	}
	r.s.adjustments[adjustment.ID] = cloneAdjustment(adjustment)
	return nil
}

func (r *stockAdjustmentRepo) GetByID(id string) (*entity.StockAdjustment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sa, ok := r.s.adjustments[id]; ok {
		return cloneAdjustment(sa), nil
	}
	return nil, nil
}

func (r *stockAdjustmentRepo) GetForUpdate(id string) (*entity.StockAdjustment, error) {
	return r.GetByID(id)
}

func (r *stockAdjustmentRepo) Save(adjustment *entity.StockAdjustment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.adjustments[adjustment.ID]; !ok {
		return domain.ErrNotFound
	}
	for i := range adjustment.Lines {
		if adjustment.Lines[i].ID == "" {
			adjustment.Lines[i].ID = uuid.New().String()
		}
		adjustment.Lines[i].AdjustmentID = adjustment.ID
	}
	r.s.adjustments[adjustment.ID] = cloneAdjustment(adjustment)
	return nil
}

func (r *stockAdjustmentRepo) SetPostError(id, message string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sa, ok := r.s.adjustments[id]
	if !ok {
		return domain.ErrNotFound
	}
	sa.LastPostError = &message
	return nil
}

func (r *stockAdjustmentRepo) ExistsByNumber(number string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sa := range r.s.adjustments {
		if sa.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *stockAdjustmentRepo) List(limit, offset int) ([]*entity.StockAdjustment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockAdjustment
	for _, sa := range r.s.adjustments {
		list = append(list, cloneAdjustment(sa))
	}
	sortByCreatedDesc(list, func(sa *entity.StockAdjustment) time.Time { return sa.CreatedAt })
	return paginate(list, limit, offset), nil
}

var _ repository.CycleCountRepository = (*cycleCountRepo)(nil)

type cycleCountRepo struct{ s *Store }

func (r *cycleCountRepo) Create(count *entity.CycleCount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if count.ID == "" {
		count.ID = uuid.New().String()
	}
	for i := range count.Lines {
		if count.Lines[i].ID == "" {
			count.Lines[i].ID = uuid.New().String()
		}
		count.Lines[i].CountID = count.ID
	}
	r.s.counts[count.ID] = cloneCount(count)
	return nil
}

func (r *cycleCountRepo) GetByID(id string) (*entity.CycleCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cc, ok := r.s.counts[id]; ok {
		return cloneCount(cc), nil
	}
	return nil, nil
}

func (r *cycleCountRepo) GetForUpdate(id string) (*entity.CycleCount, error) {
	return r.GetByID(id)
}

func (r *cycleCountRepo) Save(count *entity.CycleCount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.counts[count.ID]; !ok {
		return domain.ErrNotFound
	}
	for i := range count.Lines {
		if count.Lines[i].ID == "" {
			count.Lines[i].ID = uuid.New().String()
		}
		count.Lines[i].CountID = count.ID
	}
	r.s.counts[count.ID] = cloneCount(count)
	return nil
}

func (r *cycleCountRepo) SetPostError(id, message string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cc, ok := r.s.counts[id]
	if !ok {
		return domain.ErrNotFound
	}
	cc.LastPostError = &message
	return nil
}

func (r *cycleCountRepo) ExistsByNumber(number string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cc := range r.s.counts {
		if cc.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *cycleCountRepo) List(limit, offset int) ([]*entity.CycleCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.CycleCount
	for _, cc := range r.s.counts {
		list = append(list, cloneCount(cc))
	}
	sortByCreatedDesc(list, func(cc *entity.CycleCount) time.Time { return cc.CreatedAt })
	return paginate(list, limit, offset), nil
}

var _ repository.PurchaseOrderRepository = (*purchaseOrderRepo)(nil)

type purchaseOrderRepo struct{ s *Store }

func (r *purchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Lines {
		if order.Lines[i].ID == "" {
			order.Lines[i].ID = uuid.New().String()
		}
		order.Lines[i].OrderID = order.ID
	}
	r.s.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *purchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if po, ok := r.s.orders[id]; ok {
		return cloneOrder(po), nil
	}
	return nil, nil
}

func (r *purchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *purchaseOrderRepo) Save(order *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[order.ID]; !ok {
		return domain.ErrNotFound
	}
	for i := range order.Lines {
		if order.Lines[i].ID == "" {
			order.Lines[i].ID = uuid.New().String()
		}
		order.Lines[i].OrderID = order.ID
	}
	r.s.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *purchaseOrderRepo) ExistsByNumber(number string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, po := range r.s.orders {
		if po.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *purchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.PurchaseOrder
	for _, po := range r.s.orders {
		list = append(list, cloneOrder(po))
	}
	sortByCreatedDesc(list, func(po *entity.PurchaseOrder) time.Time { return po.CreatedAt })
	return paginate(list, limit, offset), nil
}

func sortByCreatedDesc[T any](list []T, created func(T) time.Time) {
	sort.Slice(list, func(i, j int) bool { return created(list[i]).After(created(list[j])) })
}
