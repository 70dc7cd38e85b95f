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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, name, stock_minimum_initial, stock, entered_at, unit_measure_id, status_type_id, brand_id, category_id`

// ProductRepo implementación de ProductRepository sobre SQLite (usable con db o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar db o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y asigna ID.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO products (code, name, stock_minimum_initial, stock, entered_at, unit_measure_id, status_type_id, brand_id, category_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Code, p.Name, p.StockMinimumInitial, p.Stock, toMillis(p.EnteredAt),
		p.UnitMeasureID, p.StatusTypeID, nullableID(p.BrandID), nullableID(p.CategoryID),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referencia de catálogo inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("product id: %w", err)
	}
	p.ID = id
	return nil
}

// GetByID obtiene un producto por ID. nil, nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
}

// GetByCode obtiene un producto por código. nil, nil si no existe.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE code = ?`, code)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza nombre y referencias. Stock, código y stock mínimo inicial no se tocan.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE products SET name = ?, unit_measure_id = ?, status_type_id = ?, brand_id = ?, category_id = ?
		WHERE id = ?`,
		p.Name, p.UnitMeasureID, p.StatusTypeID, nullableID(p.BrandID), nullableID(p.CategoryID), p.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referencia de catálogo inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos por nombre con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY name, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto. domain.ErrConflict si tiene movimientos.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el producto tiene movimientos", domain.ErrConflict)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ApplyStockDelta incrementa stock en BD (stock = stock + delta) y devuelve el valor almacenado.
func (r *ProductRepo) ApplyStockDelta(ctx context.Context, productID, delta int64) (int64, error) {
	var stock int64
	err := r.q.QueryRowContext(ctx,
		`UPDATE products SET stock = stock + ? WHERE id = ? RETURNING stock`, delta, productID,
	).Scan(&stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		if isCheckViolation(err) {
			return 0, fmt.Errorf("%w: stock del producto %d fuera de rango", domain.ErrInvalidInput, productID)
		}
		return 0, fmt.Errorf("apply stock delta: %w", err)
	}
	return stock, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var (
		p         entity.Product
		enteredAt int64
		brandID   sql.NullInt64
		catID     sql.NullInt64
	)
	if err := row.Scan(&p.ID, &p.Code, &p.Name, &p.StockMinimumInitial, &p.Stock, &enteredAt,
		&p.UnitMeasureID, &p.StatusTypeID, &brandID, &catID); err != nil {
		return nil, err
	}
	p.EnteredAt = fromMillis(enteredAt)
	p.BrandID = idPtr(brandID)
	p.CategoryID = idPtr(catID)
	return &p, nil
}
