package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/roi-admin-api/internal/domain"
	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
	"github.com/jhoicas/roi-admin-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, direction, quantity, created_at, reference`

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de inventario y asigna su número de secuencia.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO movements (product_id, direction, quantity, created_at, reference)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		m.ProductID, string(m.Direction), m.Quantity, m.CreatedAt, m.Reference,
	).Scan(&m.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto %d no existe", domain.ErrInvalidInput, m.ProductID)
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. nil, nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	return r.getOne(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1`, id)
}

// GetForUpdate obtiene el movimiento y bloquea la fila hasta el fin de la tx (SELECT FOR UPDATE).
func (r *MovementRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Movement, error) {
	return r.getOne(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1 FOR UPDATE`, id)
}

func (r *MovementRepo) getOne(ctx context.Context, query string, id int64) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Update persiste producto, sentido, cantidad y referencia. created_at no cambia.
func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE movements SET product_id = $2, direction = $3, quantity = $4, reference = $5
		WHERE id = $1`,
		m.ID, m.ProductID, string(m.Direction), m.Quantity, m.Reference,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto %d no existe", domain.ErrInvalidInput, m.ProductID)
		}
		return fmt.Errorf("update movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un movimiento.
func (r *MovementRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista movimientos del más reciente al más antiguo; productID 0 = todos.
func (r *MovementRepo) List(ctx context.Context, productID int64, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements`
	args := []any{}
	pos := 1
	if productID > 0 {
		query += fmt.Sprintf(" WHERE product_id = $%d", pos)
		args = append(args, productID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var (
		m         entity.Movement
		direction string
	)
	if err := row.Scan(&m.ID, &m.ProductID, &direction, &m.Quantity, &m.CreatedAt, &m.Reference); err != nil {
		return nil, err
	}
	m.Direction = entity.Direction(direction)
	return &m, nil
}
