package dto

import "time"

// CreateProductRequest entrada para crear un producto. El stock inicia en 0 y solo lo mueven los movimientos.
type CreateProductRequest struct {
	Code                string `json:"code"`
	Name                string `json:"name"`
	StockMinimumInitial int64  `json:"stock_minimum_initial"`
	UnitMeasureID       int64  `json:"unit_measure_id"`
	StatusTypeID        int64  `json:"status_type_id"`
	BrandID             *int64 `json:"brand_id,omitempty"`
	CategoryID          *int64 `json:"category_id,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto (sin código, stock ni stock mínimo inicial).
type UpdateProductRequest struct {
	Name          *string `json:"name,omitempty"`
	UnitMeasureID *int64  `json:"unit_measure_id,omitempty"`
	StatusTypeID  *int64  `json:"status_type_id,omitempty"`
	BrandID       *int64  `json:"brand_id,omitempty"`
	CategoryID    *int64  `json:"category_id,omitempty"`
	// ClearBrand / ClearCategory quitan la referencia opcional.
	ClearBrand    bool `json:"clear_brand,omitempty"`
	ClearCategory bool `json:"clear_category,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                  int64     `json:"id"`
	Code                string    `json:"code"`
	Name                string    `json:"name"`
	StockMinimumInitial int64     `json:"stock_minimum_initial"`
	Stock               int64     `json:"stock"`
	EnteredAt           time.Time `json:"entered_at"`
	UnitMeasureID       int64     `json:"unit_measure_id"`
	StatusTypeID        int64     `json:"status_type_id"`
	BrandID             *int64    `json:"brand_id"`
	CategoryID          *int64    `json:"category_id"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
