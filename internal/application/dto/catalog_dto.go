package dto

// CatalogItemRequest entrada para crear/actualizar marcas, categorías, unidades de medida y tipos de estado.
type CatalogItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Symbol      string `json:"symbol,omitempty"` // solo unidades de medida
}

// CatalogItemResponse salida de un elemento de catálogo.
type CatalogItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Symbol      string `json:"symbol,omitempty"`
}
