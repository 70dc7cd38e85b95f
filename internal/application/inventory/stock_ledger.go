package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/roi-admin-api/internal/domain"
	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
	"github.com/jhoicas/roi-admin-api/internal/domain/inventory"
	"github.com/jhoicas/roi-admin-api/internal/domain/repository"
	"github.com/jhoicas/roi-admin-api/pkg/textnorm"
)

// StockLedger mantiene Product.Stock igual a la suma firmada de los movimientos existentes del producto.
// Cada operación (alta, enmienda, baja) es una sola transacción: el movimiento y el ajuste de stock
// se confirman juntos o no se confirman.
type StockLedger struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	log          zerolog.Logger
	now          func() time.Time
}

// NewStockLedger construye el libro de existencias.
func NewStockLedger(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	log zerolog.Logger,
) *StockLedger {
	return &StockLedger{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		log:          log.With().Str("component", "stock_ledger").Logger(),
		now:          time.Now,
	}
}

// CreateMovementInput entrada para registrar un movimiento.
type CreateMovementInput struct {
	ProductID int64
	Direction string
	Quantity  int64
	Reference string
}

// AmendMovementInput campos a cambiar de un movimiento existente; nil = sin cambio.
type AmendMovementInput struct {
	ProductID *int64
	Direction *string
	Quantity  *int64
	Reference *string
}

// CreateMovement persiste el movimiento y aplica su efecto al stock del producto, en la misma transacción.
func (l *StockLedger) CreateMovement(ctx context.Context, in CreateMovementInput) (*entity.Movement, error) {
	dir, ok := entity.ParseDirection(in.Direction)
	if !ok {
		return nil, fmt.Errorf("%w: sentido %q no admitido", domain.ErrInvalidInput, in.Direction)
	}
	if err := checkQuantity(in.Quantity); err != nil {
		return nil, err
	}
	ref, err := cleanReference(in.Reference)
	if err != nil {
		return nil, err
	}
	if err := l.ensureProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}

	opID := uuid.New().String()
	mov := &entity.Movement{
		ProductID: in.ProductID,
		Direction: dir,
		Quantity:  in.Quantity,
		CreatedAt: l.now().UTC().Truncate(time.Millisecond),
		Reference: ref,
	}
	var stock int64
	err = l.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		s, err := applyDelta(ctx, productRepo, mov.ProductID, inventory.Effect(mov))
		if err != nil {
			return err
		}
		stock = s
		return nil
	})
	if err != nil {
		return nil, l.fail(opID, "create", err)
	}
	l.log.Info().
		Str("op_id", opID).
		Int64("movement_id", mov.ID).
		Int64("product_id", mov.ProductID).
		Str("direction", string(mov.Direction)).
		Int64("quantity", mov.Quantity).
		Int64("stock", stock).
		Msg("movimiento registrado")
	return mov, nil
}

// AmendMovement bloquea el movimiento (SELECT FOR UPDATE), revierte su aporte anterior en el producto
// anterior, persiste los nuevos valores y aplica el nuevo aporte al producto (posiblemente otro).
// Todo en una transacción: si algo falla, queda el estado confirmado previo.
func (l *StockLedger) AmendMovement(ctx context.Context, id int64, in AmendMovementInput) (*entity.Movement, error) {
	var dir entity.Direction
	if in.Direction != nil {
		d, ok := entity.ParseDirection(*in.Direction)
		if !ok {
			return nil, fmt.Errorf("%w: sentido %q no admitido", domain.ErrInvalidInput, *in.Direction)
		}
		dir = d
	}
	if in.Quantity != nil {
		if err := checkQuantity(*in.Quantity); err != nil {
			return nil, err
		}
	}
	var ref string
	if in.Reference != nil {
		r, err := cleanReference(*in.Reference)
		if err != nil {
			return nil, err
		}
		ref = r
	}
	if in.ProductID != nil {
		if err := l.ensureProduct(ctx, *in.ProductID); err != nil {
			return nil, err
		}
	}

	opID := uuid.New().String()
	var (
		prev      entity.Movement
		amended   entity.Movement
		prevStock int64
		newStock  int64
	)
	err := l.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		// 1-2. Bloquea la fila y lee el estado anterior bajo el bloqueo
		old, err := movRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		prev = *old

		// 3. Retira el aporte anterior del producto anterior
		prevStock, err = applyDelta(ctx, productRepo, prev.ProductID, inventory.Reversal(&prev))
		if err != nil {
			return err
		}

		// 4. Persiste los nuevos valores
		amended = prev
		if in.ProductID != nil {
			amended.ProductID = *in.ProductID
		}
		if in.Direction != nil {
			amended.Direction = dir
		}
		if in.Quantity != nil {
			amended.Quantity = *in.Quantity
		}
		if in.Reference != nil {
			amended.Reference = ref
		}
		if err := movRepo.Update(ctx, &amended); err != nil {
			return err
		}

		// 5. Aplica el nuevo aporte sobre el producto actual
		newStock, err = applyDelta(ctx, productRepo, amended.ProductID, inventory.Effect(&amended))
		return err
	})
	if err != nil {
		return nil, l.fail(opID, "amend", err)
	}
	ev := l.log.Info().
		Str("op_id", opID).
		Int64("movement_id", id).
		Int64("product_id", amended.ProductID).
		Int64("stock", newStock)
	if prev.ProductID != amended.ProductID {
		ev = ev.Int64("previous_product_id", prev.ProductID).Int64("previous_stock", prevStock)
	}
	ev.Msg("movimiento enmendado")
	return &amended, nil
}

// DeleteMovement revierte el aporte del movimiento en su producto y elimina el registro, atómicamente.
func (l *StockLedger) DeleteMovement(ctx context.Context, id int64) error {
	opID := uuid.New().String()
	var (
		prev  entity.Movement
		stock int64
	)
	err := l.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		old, err := movRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		prev = *old
		stock, err = applyDelta(ctx, productRepo, prev.ProductID, inventory.Reversal(&prev))
		if err != nil {
			return err
		}
		return movRepo.Delete(ctx, id)
	})
	if err != nil {
		return l.fail(opID, "delete", err)
	}
	l.log.Info().
		Str("op_id", opID).
		Int64("movement_id", id).
		Int64("product_id", prev.ProductID).
		Int64("stock", stock).
		Msg("movimiento eliminado")
	return nil
}

// GetMovement obtiene un movimiento por ID.
func (l *StockLedger) GetMovement(ctx context.Context, id int64) (*entity.Movement, error) {
	m, err := l.movementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// ListMovements lista movimientos (más recientes primero); productID 0 = todos.
func (l *StockLedger) ListMovements(ctx context.Context, productID int64, limit, offset int) ([]*entity.Movement, error) {
	return l.movementRepo.List(ctx, productID, limit, offset)
}

// ensureProduct rechaza, antes de abrir la transacción, referencias a productos inexistentes.
func (l *StockLedger) ensureProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	p, err := l.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRetryable, err)
	}
	if p == nil {
		return fmt.Errorf("%w: producto %d no existe", domain.ErrInvalidInput, productID)
	}
	return nil
}

// applyDelta aplica el incremento relativo y devuelve el stock releído de la BD.
// Un producto desaparecido entre la validación y la tx se reporta como referencia inválida.
func applyDelta(ctx context.Context, productRepo repository.ProductRepository, productID, delta int64) (int64, error) {
	stock, err := productRepo.ApplyStockDelta(ctx, productID, delta)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("%w: producto %d no existe", domain.ErrInvalidInput, productID)
	}
	return stock, err
}

// fail clasifica el error de una operación ya revertida: los de dominio se devuelven tal cual,
// los de persistencia se marcan como reintentables.
func (l *StockLedger) fail(opID, op string, err error) error {
	if domain.IsClientError(err) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	l.log.Error().Err(err).Str("op_id", opID).Str("op", op).Msg("transacción de inventario revertida")
	return fmt.Errorf("%w: %w", domain.ErrRetryable, err)
}

func checkQuantity(q int64) error {
	if !entity.ValidQuantity(q) {
		return fmt.Errorf("%w: cantidad fuera de rango [%d, %d]", domain.ErrInvalidInput, entity.MinQuantity, entity.MaxQuantity)
	}
	return nil
}

func cleanReference(s string) (string, error) {
	ref := textnorm.Clean(s)
	if textnorm.Len(ref) > entity.MaxReferenceLength {
		return "", fmt.Errorf("%w: referencia supera %d caracteres", domain.ErrInvalidInput, entity.MaxReferenceLength)
	}
	return ref, nil
}
