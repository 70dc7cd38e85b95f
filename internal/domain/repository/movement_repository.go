package repository

import (
	"context"

	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos de inventario.
type MovementRepository interface {
	// Create persiste el movimiento y asigna ID.
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id int64) (*entity.Movement, error)
	// GetForUpdate lee el movimiento bloqueando su fila hasta el fin de la transacción (SELECT FOR UPDATE).
	// Devuelve nil, nil si no existe.
	GetForUpdate(ctx context.Context, id int64) (*entity.Movement, error)
	// Update persiste producto, sentido, cantidad y referencia. CreatedAt no cambia.
	Update(ctx context.Context, movement *entity.Movement) error
	Delete(ctx context.Context, id int64) error
	// List lista movimientos del más reciente al más antiguo; productID 0 = todos.
	List(ctx context.Context, productID int64, limit, offset int) ([]*entity.Movement, error)
}
