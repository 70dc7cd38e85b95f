package entity

import "time"

// Product representa un producto del inventario.
// Stock solo lo modifica el libro de existencias (StockLedger) en respuesta a movimientos.
type Product struct {
	ID                  int64
	Code                string // código único
	Name                string
	StockMinimumInitial int64 // referencia inicial, no se exige
	Stock               int64 // puede ser negativo
	EnteredAt           time.Time
	UnitMeasureID       int64
	StatusTypeID        int64
	BrandID             *int64
	CategoryID          *int64
}
