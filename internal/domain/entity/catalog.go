package entity

// CatalogKind identifica un catálogo de referencia de productos.
type CatalogKind string

// Catálogos de referencia. Ninguno puede eliminarse mientras un producto lo referencie.
const (
	CatalogBrand       CatalogKind = "brand"
	CatalogCategory    CatalogKind = "category"
	CatalogUnitMeasure CatalogKind = "unit_measure"
	CatalogStatusType  CatalogKind = "status_type"
)

// Valid indica si k es un catálogo conocido.
func (k CatalogKind) Valid() bool {
	switch k {
	case CatalogBrand, CatalogCategory, CatalogUnitMeasure, CatalogStatusType:
		return true
	}
	return false
}

// CatalogItem elemento de un catálogo de referencia (marca, categoría, unidad de medida, tipo de estado).
// Symbol solo aplica a unidades de medida (nomenclatura, ej. "kg"); Description al resto.
type CatalogItem struct {
	ID          int64
	Kind        CatalogKind
	Name        string
	Description string
	Symbol      string
}

// Detail devuelve el campo de detalle que persiste el catálogo (Symbol o Description).
func (c *CatalogItem) Detail() string {
	if c.Kind == CatalogUnitMeasure {
		return c.Symbol
	}
	return c.Description
}

// SetDetail asigna el campo de detalle según el tipo de catálogo.
func (c *CatalogItem) SetDetail(v string) {
	if c.Kind == CatalogUnitMeasure {
		c.Symbol = v
		return
	}
	c.Description = v
}
