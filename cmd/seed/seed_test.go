package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/roi-admin-api/internal/application/usecase"
	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
	"github.com/jhoicas/roi-admin-api/internal/infrastructure/sqlite"
)

func TestSeedCatalog_Idempotent(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	defer store.Close()
	uc := usecase.NewCatalogUseCase(sqlite.NewCatalogRepository(store.DB()))

	created, err := seedCatalog(ctx, uc, defaultCatalog)
	require.NoError(t, err)
	assert.Equal(t, len(defaultCatalog), created)

	created, err = seedCatalog(ctx, uc, defaultCatalog)
	require.NoError(t, err)
	assert.Zero(t, created)

	units, err := uc.List(ctx, entity.CatalogUnitMeasure)
	require.NoError(t, err)
	assert.Len(t, units, 3)
}
