package repository

import (
	"context"

	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Dentro de una transacción (TxRunner) participa en la misma unidad de trabajo que el movimiento.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// Update no toca Stock, StockMinimumInitial ni EnteredAt.
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id int64) error
	// ApplyStockDelta aplica stock = stock + delta como incremento atómico en BD
	// y devuelve el valor almacenado tras la actualización. domain.ErrNotFound si el producto no existe.
	ApplyStockDelta(ctx context.Context, productID, delta int64) (int64, error)
}
