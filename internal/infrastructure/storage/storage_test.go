package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
	"github.com/jhoicas/roi-admin-api/pkg/config"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "roi.db")
	b, err := Open(ctx, config.DBConfig{Driver: config.DriverSQLite, SQLitePath: path}, zerolog.Nop())
	require.NoError(t, err)

	unit := &entity.CatalogItem{Kind: entity.CatalogUnitMeasure, Name: "Caja", Symbol: "cj"}
	require.NoError(t, b.Catalogs.Create(ctx, unit))
	require.NoError(t, b.Close())

	// Reabrir no vuelve a aplicar migraciones ni pierde datos.
	b, err = Open(ctx, config.DBConfig{Driver: config.DriverSQLite, SQLitePath: path}, zerolog.Nop())
	require.NoError(t, err)
	defer b.Close()
	got, err := b.Catalogs.GetByID(ctx, entity.CatalogUnitMeasure, unit.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "cj", got.Symbol)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DBConfig{Driver: "mysql"}, zerolog.Nop())
	assert.Error(t, err)
}
