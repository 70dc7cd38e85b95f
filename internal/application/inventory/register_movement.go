package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/roi-admin-api/internal/application/dto"
	"github.com/jhoicas/roi-admin-api/internal/domain"
	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
)

// CreateMovementFromRequest adapta el request HTTP a CreateMovement.
// Quantity es obligatorio: un body sin cantidad no se interpreta como movimiento de 0.
func (l *StockLedger) CreateMovementFromRequest(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if in.Quantity == nil {
		return nil, fmt.Errorf("%w: quantity requerido", domain.ErrInvalidInput)
	}
	m, err := l.CreateMovement(ctx, CreateMovementInput{
		ProductID: in.ProductID,
		Direction: in.Direction,
		Quantity:  *in.Quantity,
		Reference: in.Reference,
	})
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(m), nil
}

// AmendMovementFromRequest adapta el request HTTP a AmendMovement.
func (l *StockLedger) AmendMovementFromRequest(ctx context.Context, id int64, in dto.AmendMovementRequest) (*dto.MovementResponse, error) {
	m, err := l.AmendMovement(ctx, id, AmendMovementInput{
		ProductID: in.ProductID,
		Direction: in.Direction,
		Quantity:  in.Quantity,
		Reference: in.Reference,
	})
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(m), nil
}

// ToMovementResponse convierte la entidad a su salida HTTP.
func ToMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Direction: string(m.Direction),
		Quantity:  m.Quantity,
		CreatedAt: m.CreatedAt,
		Reference: m.Reference,
	}
}
