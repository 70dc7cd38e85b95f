package entity

import (
	"math"
	"strings"
	"time"
)

// Direction sentido de un movimiento de inventario.
type Direction string

// Sentidos válidos de movimiento.
const (
	DirectionInflow  Direction = "inflow"  // entrada
	DirectionOutflow Direction = "outflow" // salida
)

// MaxReferenceLength longitud máxima de la nota de referencia de un movimiento.
const MaxReferenceLength = 200

// Rango admitido de Quantity (entero de 32 bits con signo). Acotarlo mantiene
// el aporte firmado y su reverso representables y deja margen al stock acumulado.
const (
	MinQuantity int64 = math.MinInt32
	MaxQuantity int64 = math.MaxInt32
)

// ValidQuantity indica si q está dentro del rango admitido para un movimiento.
func ValidQuantity(q int64) bool {
	return q >= MinQuantity && q <= MaxQuantity
}

// ParseDirection acepta "inflow"/"outflow" y los alias históricos "entrada"/"salida".
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inflow", "entrada":
		return DirectionInflow, true
	case "outflow", "salida":
		return DirectionOutflow, true
	}
	return "", false
}

// Valid indica si d es uno de los dos sentidos admitidos.
func (d Direction) Valid() bool {
	return d == DirectionInflow || d == DirectionOutflow
}

// Movement registra un cambio de existencias (entrada o salida) sobre un único producto.
// No tiene estado propio: su existencia más la tupla (producto, sentido, cantidad) es su aporte al stock.
type Movement struct {
	ID        int64
	ProductID int64
	Direction Direction
	Quantity  int64
	CreatedAt time.Time // se fija al crear y no cambia
	Reference string
}
