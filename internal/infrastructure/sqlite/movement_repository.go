package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/roi-admin-api/internal/domain"
	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
	"github.com/jhoicas/roi-admin-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, direction, quantity, created_at, reference`

// MovementRepo implementación sobre SQLite (usable con db o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar db o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento y asigna su número de secuencia.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO movements (product_id, direction, quantity, created_at, reference)
		VALUES (?, ?, ?, ?, ?)`,
		m.ProductID, string(m.Direction), m.Quantity, toMillis(m.CreatedAt), m.Reference,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto %d no existe", domain.ErrInvalidInput, m.ProductID)
		}
		return fmt.Errorf("create movement: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("movement id: %w", err)
	}
	m.ID = id
	return nil
}

// GetByID obtiene un movimiento por ID. nil, nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRowContext(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// GetForUpdate en SQLite equivale a GetByID: la transacción (BEGIN IMMEDIATE) ya tiene el bloqueo de escritura.
func (r *MovementRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Movement, error) {
	return r.GetByID(ctx, id)
}

// Update persiste producto, sentido, cantidad y referencia.
func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE movements SET product_id = ?, direction = ?, quantity = ?, reference = ?
		WHERE id = ?`,
		m.ProductID, string(m.Direction), m.Quantity, m.Reference, m.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto %d no existe", domain.ErrInvalidInput, m.ProductID)
		}
		return fmt.Errorf("update movement: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un movimiento.
func (r *MovementRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM movements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista movimientos del más reciente al más antiguo; productID 0 = todos.
func (r *MovementRepo) List(ctx context.Context, productID int64, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements`
	args := []any{}
	if productID > 0 {
		query += ` WHERE product_id = ?`
		args = append(args, productID)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.q.QueryContext(ctx, query, args...)
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

func scanMovement(row rowScanner) (*entity.Movement, error) {
	var (
		m         entity.Movement
		direction string
		createdAt int64
	)
	if err := row.Scan(&m.ID, &m.ProductID, &direction, &m.Quantity, &createdAt, &m.Reference); err != nil {
		return nil, err
	}
	m.Direction = entity.Direction(direction)
	m.CreatedAt = fromMillis(createdAt)
	return &m, nil
}
