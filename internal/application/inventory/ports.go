package inventory

import (
	"context"

	"github.com/jhoicas/roi-admin-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error (o el commit falla) la transacción se revierte completa.
// Garantiza atomicidad para el libro de existencias.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
