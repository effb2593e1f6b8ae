package repository

import "github.com/jhoicas/erp-stock/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea el encabezado de la orden (SELECT FOR UPDATE) para
	// recomputar recepciones acumuladas sin carreras entre recepciones.
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	Save(order *entity.PurchaseOrder) error
	ExistsByNumber(number string) (bool, error)
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
}
