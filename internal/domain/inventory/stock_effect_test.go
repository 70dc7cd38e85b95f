package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
	"github.com/jhoicas/roi-admin-api/internal/domain/inventory"
)

func TestStockEffect(t *testing.T) {
	cases := []struct {
		name      string
		direction entity.Direction
		quantity  int64
		want      int64
	}{
		{"entrada suma", entity.DirectionInflow, 10, 10},
		{"salida resta", entity.DirectionOutflow, 5, -5},
		{"entrada negativa invierte", entity.DirectionInflow, -3, -3},
		{"salida cero", entity.DirectionOutflow, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.StockEffect(tc.direction, tc.quantity))
		})
	}
}

func TestReversal_AnulaElEfecto(t *testing.T) {
	m := &entity.Movement{ProductID: 1, Direction: entity.DirectionOutflow, Quantity: 7}
	assert.Equal(t, int64(-7), inventory.Effect(m))
	assert.Equal(t, int64(7), inventory.Reversal(m))
	assert.Zero(t, inventory.Effect(m)+inventory.Reversal(m))
}

func TestNetStock_SoloCuentaElProducto(t *testing.T) {
	movs := []*entity.Movement{
		{ProductID: 1, Direction: entity.DirectionInflow, Quantity: 20},
		{ProductID: 1, Direction: entity.DirectionOutflow, Quantity: 8},
		{ProductID: 2, Direction: entity.DirectionInflow, Quantity: 100},
	}
	assert.Equal(t, int64(12), inventory.NetStock(1, movs))
	assert.Equal(t, int64(100), inventory.NetStock(2, movs))
	assert.Zero(t, inventory.NetStock(3, movs))
}
