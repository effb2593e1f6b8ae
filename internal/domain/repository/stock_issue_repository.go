package repository

import "github.com/jhoicas/erp-stock/internal/domain/entity"

// StockIssueRepository define el puerto de persistencia para salidas.
type StockIssueRepository interface {
	Create(issue *entity.StockIssue) error
	GetByID(id string) (*entity.StockIssue, error)
	// GetForUpdate carga con lock exclusivo del encabezado (recarga del posteo).
	GetForUpdate(id string) (*entity.StockIssue, error)
	Save(issue *entity.StockIssue) error
	SetPostError(id, message string) error
	ExistsByNumber(number string) (bool, error)
	List(limit, offset int) ([]*entity.StockIssue, error)
}
