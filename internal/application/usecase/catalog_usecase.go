package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/roi-admin-api/internal/application/dto"
	"github.com/jhoicas/roi-admin-api/internal/domain"
	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
	"github.com/jhoicas/roi-admin-api/internal/domain/repository"
	"github.com/jhoicas/roi-admin-api/pkg/textnorm"
)

// Longitudes máximas de catálogo.
const (
	MaxCatalogNameLength = 100
	MaxSymbolLength      = 10
)

// CatalogUseCase CRUD de marcas, categorías, unidades de medida y tipos de estado.
type CatalogUseCase struct {
	repo repository.CatalogRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// Create crea un elemento del catálogo kind.
func (uc *CatalogUseCase) Create(ctx context.Context, kind entity.CatalogKind, in dto.CatalogItemRequest) (*dto.CatalogItemResponse, error) {
	item, err := buildItem(kind, in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return ToCatalogItemResponse(item), nil
}

// GetByID obtiene un elemento. domain.ErrNotFound si no existe.
func (uc *CatalogUseCase) GetByID(ctx context.Context, kind entity.CatalogKind, id int64) (*dto.CatalogItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return ToCatalogItemResponse(item), nil
}

// Update reemplaza nombre y detalle.
func (uc *CatalogUseCase) Update(ctx context.Context, kind entity.CatalogKind, id int64, in dto.CatalogItemRequest) (*dto.CatalogItemResponse, error) {
	item, err := buildItem(kind, in)
	if err != nil {
		return nil, err
	}
	item.ID = id
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return ToCatalogItemResponse(item), nil
}

// List lista el catálogo ordenado por nombre.
func (uc *CatalogUseCase) List(ctx context.Context, kind entity.CatalogKind) ([]dto.CatalogItemResponse, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: catálogo %q", domain.ErrInvalidInput, kind)
	}
	list, err := uc.repo.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CatalogItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *ToCatalogItemResponse(it))
	}
	return items, nil
}

// Delete elimina un elemento. domain.ErrConflict si algún producto lo referencia.
func (uc *CatalogUseCase) Delete(ctx context.Context, kind entity.CatalogKind, id int64) error {
	return uc.repo.Delete(ctx, kind, id)
}

func buildItem(kind entity.CatalogKind, in dto.CatalogItemRequest) (*entity.CatalogItem, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: catálogo %q", domain.ErrInvalidInput, kind)
	}
	item := &entity.CatalogItem{
		Kind:        kind,
		Name:        textnorm.Clean(in.Name),
		Description: textnorm.Clean(in.Description),
		Symbol:      textnorm.Clean(in.Symbol),
	}
	if item.Name == "" || textnorm.Len(item.Name) > MaxCatalogNameLength {
		return nil, fmt.Errorf("%w: nombre requerido (máx. %d)", domain.ErrInvalidInput, MaxCatalogNameLength)
	}
	if kind == entity.CatalogUnitMeasure {
		if item.Symbol == "" || textnorm.Len(item.Symbol) > MaxSymbolLength {
			return nil, fmt.Errorf("%w: nomenclatura requerida (máx. %d)", domain.ErrInvalidInput, MaxSymbolLength)
		}
		item.Description = ""
	} else {
		item.Symbol = ""
	}
	return item, nil
}

// ToCatalogItemResponse convierte la entidad a su salida HTTP.
func ToCatalogItemResponse(it *entity.CatalogItem) *dto.CatalogItemResponse {
	if it == nil {
		return nil
	}
	return &dto.CatalogItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Symbol:      it.Symbol,
	}
}
