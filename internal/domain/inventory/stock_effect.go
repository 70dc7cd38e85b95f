package inventory

import "github.com/jhoicas/roi-admin-api/internal/domain/entity"

// StockEffect aporte firmado de un movimiento al stock de su producto (servicio de dominio).
// entrada: +cantidad; salida: -cantidad.
func StockEffect(direction entity.Direction, quantity int64) int64 {
	if direction == entity.DirectionOutflow {
		return -quantity
	}
	return quantity
}

// Effect aporte actual de m al stock de m.ProductID.
func Effect(m *entity.Movement) int64 {
	return StockEffect(m.Direction, m.Quantity)
}

// Reversal ajuste compensatorio que retira el aporte de m (efecto con signo invertido).
func Reversal(m *entity.Movement) int64 {
	return -Effect(m)
}

// NetStock suma firmada de los movimientos de un producto; es el valor que Product.Stock debe reflejar.
func NetStock(productID int64, movements []*entity.Movement) int64 {
	var total int64
	for _, m := range movements {
		if m.ProductID == productID {
			total += Effect(m)
		}
	}
	return total
}
