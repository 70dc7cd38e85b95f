// Package storage elige el backend de persistencia (PostgreSQL o SQLite) según DB_DRIVER
// y expone los puertos que consumen los casos de uso.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/roi-admin-api/internal/application/inventory"
	"github.com/jhoicas/roi-admin-api/internal/domain/repository"
	"github.com/jhoicas/roi-admin-api/internal/infrastructure/postgres"
	"github.com/jhoicas/roi-admin-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/roi-admin-api/pkg/config"
)

// Backend repositorios y runner transaccional de un almacenamiento abierto.
type Backend struct {
	Driver    string
	TxRunner  inventory.TxRunner
	Products  repository.ProductRepository
	Movements repository.MovementRepository
	Catalogs  repository.CatalogRepository
	Users     repository.UserRepository
	Roles     repository.RoleRepository

	close func() error
}

// Open conecta con el backend configurado y aplica las migraciones embebidas.
func Open(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones PostgreSQL: %w", err)
		}
		log.Info().Int32("max_conns", pool.Config().MaxConns).Msg("PostgreSQL listo")
		return &Backend{
			Driver:    cfg.Driver,
			TxRunner:  postgres.NewTxRunner(pool),
			Products:  postgres.NewProductRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			Catalogs:  postgres.NewCatalogRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			Roles:     postgres.NewRoleRepository(pool),
			close:     func() error { pool.Close(); return nil },
		}, nil
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("SQLite listo")
		db := store.DB()
		return &Backend{
			Driver:    cfg.Driver,
			TxRunner:  sqlite.NewTxRunner(store),
			Products:  sqlite.NewProductRepository(db),
			Movements: sqlite.NewMovementRepository(db),
			Catalogs:  sqlite.NewCatalogRepository(db),
			Users:     sqlite.NewUserRepository(db),
			Roles:     sqlite.NewRoleRepository(db),
			close:     store.Close,
		}, nil
	default:
		return nil, fmt.Errorf("storage: driver %q no soportado", cfg.Driver)
	}
}

// Close libera las conexiones.
func (b *Backend) Close() error {
	if b == nil || b.close == nil {
		return nil
	}
	return b.close()
}
