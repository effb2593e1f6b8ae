package stock

import (
	"context"

	"github.com/jhoicas/erp-stock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// juego de repositorios atados a esa tx. Garantiza atomicidad para el posteo:
// todo lo que el callback toque se confirma o se revierte junto.
type TxRunner interface {
	Run(ctx context.Context, fn func(s repository.Stores) error) error
}
