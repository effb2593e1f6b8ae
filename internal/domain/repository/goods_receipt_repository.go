package repository

import "github.com/jhoicas/erp-stock/internal/domain/entity"

// GoodsReceiptRepository define el puerto de persistencia para recepciones.
type GoodsReceiptRepository interface {
	Create(receipt *entity.GoodsReceipt) error
	// GetByID carga encabezado y líneas (incluye borradas, con su estado).
	GetByID(id string) (*entity.GoodsReceipt, error)
	// GetForUpdate carga con lock exclusivo del encabezado; es la recarga que
	// usa el posteo para serializar posteos concurrentes del mismo documento.
	GetForUpdate(id string) (*entity.GoodsReceipt, error)
	// Save persiste encabezado y líneas tal como están en memoria.
	Save(receipt *entity.GoodsReceipt) error
	// SetPostError registra la última falla de posteo (fuera de la tx abortada).
	SetPostError(id, message string) error
	ExistsByNumber(number string) (bool, error)
	List(limit, offset int) ([]*entity.GoodsReceipt, error)
}
