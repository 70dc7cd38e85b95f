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

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// catalogTable tabla y columna de detalle por tipo de catálogo.
type catalogTable struct {
	name   string
	detail string
}

var catalogTables = map[entity.CatalogKind]catalogTable{
	entity.CatalogBrand:       {"brands", "description"},
	entity.CatalogCategory:    {"categories", "description"},
	entity.CatalogUnitMeasure: {"unit_measures", "symbol"},
	entity.CatalogStatusType:  {"status_types", "description"},
}

func tableFor(kind entity.CatalogKind) (catalogTable, error) {
	t, ok := catalogTables[kind]
	if !ok {
		return catalogTable{}, fmt.Errorf("%w: catálogo %q", domain.ErrInvalidInput, kind)
	}
	return t, nil
}

// CatalogRepo implementación de los catálogos de referencia sobre PostgreSQL.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// Create persiste un elemento y asigna ID.
func (r *CatalogRepo) Create(ctx context.Context, item *entity.CatalogItem) error {
	t, err := tableFor(item.Kind)
	if err != nil {
		return err
	}
	err = r.q.QueryRow(ctx,
		fmt.Sprintf(`INSERT INTO %s (name, %s) VALUES ($1, $2) RETURNING id`, t.name, t.detail),
		item.Name, item.Detail(),
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert %s: %w", t.name, err)
	}
	return nil
}

// GetByID obtiene un elemento. nil, nil si no existe.
func (r *CatalogRepo) GetByID(ctx context.Context, kind entity.CatalogKind, id int64) (*entity.CatalogItem, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	item := &entity.CatalogItem{Kind: kind}
	var detail string
	err = r.q.QueryRow(ctx,
		fmt.Sprintf(`SELECT id, name, %s FROM %s WHERE id = $1`, t.detail, t.name), id,
	).Scan(&item.ID, &item.Name, &detail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", t.name, err)
	}
	item.SetDetail(detail)
	return item, nil
}

// Update actualiza nombre y detalle.
func (r *CatalogRepo) Update(ctx context.Context, item *entity.CatalogItem) error {
	t, err := tableFor(item.Kind)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET name = $2, %s = $3 WHERE id = $1`, t.name, t.detail),
		item.ID, item.Name, item.Detail(),
	)
	if err != nil {
		return fmt.Errorf("update %s: %w", t.name, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista el catálogo ordenado por nombre.
func (r *CatalogRepo) List(ctx context.Context, kind entity.CatalogKind) ([]*entity.CatalogItem, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, fmt.Sprintf(`SELECT id, name, %s FROM %s ORDER BY name, id`, t.detail, t.name))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	defer rows.Close()
	var list []*entity.CatalogItem
	for rows.Next() {
		item := &entity.CatalogItem{Kind: kind}
		var detail string
		if err := rows.Scan(&item.ID, &item.Name, &detail); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}
		item.SetDetail(detail)
		list = append(list, item)
	}
	return list, rows.Err()
}

// Delete elimina un elemento. domain.ErrConflict si algún producto lo referencia.
func (r *CatalogRepo) Delete(ctx context.Context, kind entity.CatalogKind, id int64) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.name), id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s referenciado por productos", domain.ErrConflict, t.name)
		}
		return fmt.Errorf("delete %s: %w", t.name, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
