package repository

import (
	"context"

	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
)

// CatalogRepository define el puerto de persistencia de los catálogos de referencia.
// Delete devuelve domain.ErrConflict si algún producto referencia el elemento.
type CatalogRepository interface {
	Create(ctx context.Context, item *entity.CatalogItem) error
	GetByID(ctx context.Context, kind entity.CatalogKind, id int64) (*entity.CatalogItem, error)
	Update(ctx context.Context, item *entity.CatalogItem) error
	List(ctx context.Context, kind entity.CatalogKind) ([]*entity.CatalogItem, error)
	Delete(ctx context.Context, kind entity.CatalogKind, id int64) error
}
