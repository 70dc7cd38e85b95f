package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/roi-admin-api/internal/application/dto"
	"github.com/jhoicas/roi-admin-api/internal/domain"
	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
	"github.com/jhoicas/roi-admin-api/internal/domain/repository"
	"github.com/jhoicas/roi-admin-api/pkg/textnorm"
)

// Longitudes máximas de producto.
const (
	MaxProductCodeLength = 50
	MaxProductNameLength = 150
)

// ProductUseCase casos de uso CRUD para productos. Stock se maneja vía movimientos.
type ProductUseCase struct {
	repo    repository.ProductRepository
	catalog repository.CatalogRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, catalog repository.CatalogRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, catalog: catalog}
}

// Create crea un nuevo producto. Stock inicia en 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := textnorm.Clean(in.Code)
	name := textnorm.Clean(in.Name)
	if code == "" || textnorm.Len(code) > MaxProductCodeLength {
		return nil, fmt.Errorf("%w: código requerido (máx. %d)", domain.ErrInvalidInput, MaxProductCodeLength)
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if in.StockMinimumInitial < 0 {
		return nil, fmt.Errorf("%w: stock mínimo inicial no puede ser negativo", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	product := &entity.Product{
		Code:                code,
		Name:                name,
		StockMinimumInitial: in.StockMinimumInitial,
		Stock:               0,
		EnteredAt:           time.Now().UTC().Truncate(time.Millisecond),
		UnitMeasureID:       in.UnitMeasureID,
		StatusTypeID:        in.StatusTypeID,
		BrandID:             in.BrandID,
		CategoryID:          in.CategoryID,
	}
	if err := uc.checkReferences(ctx, product); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID. domain.ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar código, stock ni stock mínimo inicial.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := textnorm.Clean(*in.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		product.Name = name
	}
	if in.UnitMeasureID != nil {
		product.UnitMeasureID = *in.UnitMeasureID
	}
	if in.StatusTypeID != nil {
		product.StatusTypeID = *in.StatusTypeID
	}
	if in.BrandID != nil {
		product.BrandID = in.BrandID
	}
	if in.ClearBrand {
		product.BrandID = nil
	}
	if in.CategoryID != nil {
		product.CategoryID = in.CategoryID
	}
	if in.ClearCategory {
		product.CategoryID = nil
	}
	if err := uc.checkReferences(ctx, product); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List lista productos ordenados por nombre con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto por ID. domain.ErrConflict si tiene movimientos.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// checkReferences valida que las referencias de catálogo existan.
func (uc *ProductUseCase) checkReferences(ctx context.Context, p *entity.Product) error {
	refs := []struct {
		kind entity.CatalogKind
		id   *int64
	}{
		{entity.CatalogUnitMeasure, &p.UnitMeasureID},
		{entity.CatalogStatusType, &p.StatusTypeID},
		{entity.CatalogBrand, p.BrandID},
		{entity.CatalogCategory, p.CategoryID},
	}
	for _, ref := range refs {
		if ref.id == nil {
			continue
		}
		if *ref.id <= 0 {
			return fmt.Errorf("%w: %s requerido", domain.ErrInvalidInput, ref.kind)
		}
		item, err := uc.catalog.GetByID(ctx, ref.kind, *ref.id)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: %s %d no existe", domain.ErrInvalidInput, ref.kind, *ref.id)
		}
	}
	return nil
}

func validateName(name string) error {
	if name == "" || textnorm.Len(name) > MaxProductNameLength {
		return fmt.Errorf("%w: nombre requerido (máx. %d)", domain.ErrInvalidInput, MaxProductNameLength)
	}
	return nil
}

// ToProductResponse convierte la entidad a su salida HTTP.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                  p.ID,
		Code:                p.Code,
		Name:                p.Name,
		StockMinimumInitial: p.StockMinimumInitial,
		Stock:               p.Stock,
		EnteredAt:           p.EnteredAt,
		UnitMeasureID:       p.UnitMeasureID,
		StatusTypeID:        p.StatusTypeID,
		BrandID:             p.BrandID,
		CategoryID:          p.CategoryID,
	}
}
