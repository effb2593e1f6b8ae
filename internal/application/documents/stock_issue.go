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

// StockIssueUseCase gestiona salidas de inventario. Cada línea posteada
// genera un movimiento ISSUE desde su ubicación origen, que debe permitir
// picking y pertenecer a la bodega del documento.
type StockIssueUseCase struct {
	tx     stock.TxRunner
	stores repository.Stores
	engine *PostingEngine
}

// NewStockIssueUseCase construye el caso de uso.
func NewStockIssueUseCase(tx stock.TxRunner, stores repository.Stores, engine *PostingEngine) *StockIssueUseCase {
	return &StockIssueUseCase{tx: tx, stores: stores, engine: engine}
}

// StockIssueLineInput es la entrada para una línea de salida.
type StockIssueLineInput struct {
	ProductID      string
	FromLocationID string
	BatchID        *string
	Quantity       decimal.Decimal
}

// CreateStockIssueInput es la entrada para crear una salida en borrador.
type CreateStockIssueInput struct {
	WarehouseID string
	Reason      string
	Lines       []StockIssueLineInput
}

// Create valida y guarda una salida en estado DRAFT.
func (uc *StockIssueUseCase) Create(ctx context.Context, in CreateStockIssueInput, actor string) (*entity.StockIssue, error) {
	if in.WarehouseID == "" || actor == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	issue := &entity.StockIssue{
		WarehouseID: in.WarehouseID,
		Status:      entity.StockIssueStatusDraft,
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
			line, err := uc.buildLine(s, issue, li, i+1)
			if err != nil {
				return err
			}
			issue.Lines = append(issue.Lines, *line)
		}
		number, err := uniqueNumber(s.Issues.ExistsByNumber, prefixStockIssue, now)
		if err != nil {
			return err
		}
		issue.Number = number
		return s.Issues.Create(issue)
	})
	if err != nil {
		return nil, err
	}
	return issue, nil
}

func (uc *StockIssueUseCase) buildLine(s repository.Stores, issue *entity.StockIssue, li StockIssueLineInput, lineNo int) (*entity.StockIssueLine, error) {
	masters, err := loadLineMasters(s, li.ProductID, li.BatchID, "")
	if err != nil {
		return nil, err
	}
	if err := domstock.ValidateQuantity(masters.Uom, li.Quantity); err != nil {
		return nil, err
	}
	loc, err := loadLocation(s, li.FromLocationID, issue.WarehouseID)
	if err != nil {
		return nil, err
	}
	if err := domstock.ValidatePickable(loc); err != nil {
		return nil, err
	}
	return &entity.StockIssueLine{
		IssueID:        issue.ID,
		LineNo:         lineNo,
		ProductID:      li.ProductID,
		FromLocationID: li.FromLocationID,
		BatchID:        li.BatchID,
		Quantity:       li.Quantity,
		Status:         entity.LineStatusActive,
	}, nil
}

// AddLine agrega una línea a una salida en borrador.
func (uc *StockIssueUseCase) AddLine(ctx context.Context, issueID string, li StockIssueLineInput) (*entity.StockIssue, error) {
	var issue *entity.StockIssue
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		var err error
		issue, err = s.Issues.GetByID(issueID)
		if err != nil {
			return err
		}
		if issue == nil {
			return domain.ErrNotFound
		}
		if !issue.Editable() {
			return domain.ErrImmutableDocument
		}
		line, err := uc.buildLine(s, issue, li, len(issue.Lines)+1)
		if err != nil {
			return err
		}
		issue.Lines = append(issue.Lines, *line)
		issue.UpdatedAt = time.Now()
		return s.Issues.Save(issue)
	})
	if err != nil {
		return nil, err
	}
	return issue, nil
}

// RemoveLine marca una línea como borrada.
func (uc *StockIssueUseCase) RemoveLine(ctx context.Context, issueID, lineID string) error {
	return uc.tx.Run(ctx, func(s repository.Stores) error {
		issue, err := s.Issues.GetByID(issueID)
		if err != nil {
			return err
		}
		if issue == nil {
			return domain.ErrNotFound
		}
		if !issue.Editable() {
			return domain.ErrImmutableDocument
		}
		for i := range issue.Lines {
			if issue.Lines[i].ID == lineID && issue.Lines[i].Status == entity.LineStatusActive {
				issue.Lines[i].Status = entity.LineStatusDeleted
				issue.UpdatedAt = time.Now()
				return s.Issues.Save(issue)
			}
		}
		return domain.ErrNotFound
	})
}

// Get devuelve una salida con sus líneas.
func (uc *StockIssueUseCase) Get(id string) (*entity.StockIssue, error) {
	issue, err := uc.stores.Issues.GetByID(id)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, domain.ErrNotFound
	}
	return issue, nil
}

// List devuelve salidas del más reciente al más antiguo.
func (uc *StockIssueUseCase) List(limit, offset int) ([]*entity.StockIssue, error) {
	return uc.stores.Issues.List(limit, offset)
}

// Post postea la salida a través del motor compartido.
func (uc *StockIssueUseCase) Post(ctx context.Context, issueID, actor string) error {
	return uc.engine.Post(ctx, uc, issueID, actor)
}

// DocumentType implementa Poster.
func (uc *StockIssueUseCase) DocumentType() entity.DocumentType {
	return entity.DocumentTypeStockIssue
}

// PostInTx implementa Poster: un movimiento ISSUE por línea activa. El guard
// de stock negativo vive en el ledger (fila bloqueada); si cualquier línea
// falla, ninguna sale.
func (uc *StockIssueUseCase) PostInTx(s repository.Stores, docID, actor string, now time.Time) error {
	issue, err := s.Issues.GetForUpdate(docID)
	if err != nil {
		return err
	}
	if issue == nil {
		return domain.ErrNotFound
	}
	if issue.Status != entity.StockIssueStatusDraft {
		return domain.ErrInvalidState
	}
	lines := issue.ActiveLines()
	if len(lines) == 0 {
		return domain.ErrNoActiveLines
	}
	for _, line := range lines {
		loc, err := loadLocation(s, line.FromLocationID, issue.WarehouseID)
		if err != nil {
			return err
		}
		if err := domstock.ValidatePickable(loc); err != nil {
			return err
		}
		product, err := s.Products.GetByID(line.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if _, err := stock.Record(s, stock.MovementInput{
			Kind:           entity.MovementKindIssue,
			ProductID:      line.ProductID,
			UomID:          product.DefaultUomID,
			Quantity:       line.Quantity,
			FromLocationID: &line.FromLocationID,
			BatchID:        line.BatchID,
			Reference:      entity.MovementReference{Type: entity.DocumentTypeStockIssue, DocumentID: issue.ID},
			Note:           issue.Number,
			Actor:          actor,
		}, now); err != nil {
			return err
		}
	}
	issue.MarkPosted(actor, now)
	issue.UpdatedAt = now
	return s.Issues.Save(issue)
}

// RecordPostError implementa Poster.
func (uc *StockIssueUseCase) RecordPostError(docID, message string) {
	_ = uc.stores.Issues.SetPostError(docID, message)
}
