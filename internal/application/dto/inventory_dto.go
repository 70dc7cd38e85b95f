package dto

import "time"

// CreateMovementRequest body para POST /api/movements.
type CreateMovementRequest struct {
	ProductID int64  `json:"product_id"`
	Direction string `json:"direction"` // inflow | outflow (alias: entrada | salida)
	Quantity  *int64 `json:"quantity"`  // obligatorio
	Reference string `json:"reference,omitempty"`
}

// AmendMovementRequest body para PUT/PATCH /api/movements/:id. Solo se cambian los campos presentes.
type AmendMovementRequest struct {
	ProductID *int64  `json:"product_id,omitempty"`
	Direction *string `json:"direction,omitempty"`
	Quantity  *int64  `json:"quantity,omitempty"`
	Reference *string `json:"reference,omitempty"`
}

// MovementResponse salida de un movimiento de inventario.
type MovementResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Direction string    `json:"direction"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	Reference string    `json:"reference"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
