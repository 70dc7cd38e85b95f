package postgres_test

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/roi-admin-api/internal/application/inventory"
	"github.com/jhoicas/roi-admin-api/internal/domain"
	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
	"github.com/jhoicas/roi-admin-api/internal/infrastructure/postgres"
)

// setupTestDB conecta a TEST_DATABASE_URL, migra y vacía las tablas de inventario.
// Sin la variable la prueba se omite para no tocar una base real.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL no definido: se omite la prueba de integración")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE TABLE movements, products, brands, categories, unit_measures, status_types RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

type pgFixture struct {
	t        *testing.T
	ctx      context.Context
	products *postgres.ProductRepo
	ledger   *inventory.StockLedger
	unitID   int64
	statusID int64
	seq      int
}

func newPGFixture(t *testing.T) *pgFixture {
	pool := setupTestDB(t)
	ctx := context.Background()
	catalog := postgres.NewCatalogRepository(pool)
	unit := &entity.CatalogItem{Kind: entity.CatalogUnitMeasure, Name: "Unidad", Symbol: "und"}
	status := &entity.CatalogItem{Kind: entity.CatalogStatusType, Name: "Activo"}
	require.NoError(t, catalog.Create(ctx, unit))
	require.NoError(t, catalog.Create(ctx, status))

	products := postgres.NewProductRepository(pool)
	return &pgFixture{
		t:        t,
		ctx:      ctx,
		products: products,
		ledger:   inventory.NewStockLedger(postgres.NewTxRunner(pool), products, postgres.NewMovementRepository(pool), zerolog.Nop()),
		unitID:   unit.ID,
		statusID: status.ID,
	}
}

func (f *pgFixture) product() int64 {
	f.t.Helper()
	f.seq++
	p := &entity.Product{Code: fmt.Sprintf("PG-%03d", f.seq), Name: "Producto", UnitMeasureID: f.unitID, StatusTypeID: f.statusID}
	require.NoError(f.t, f.products.Create(f.ctx, p))
	return p.ID
}

func (f *pgFixture) stock(id int64) int64 {
	f.t.Helper()
	p, err := f.products.GetByID(f.ctx, id)
	require.NoError(f.t, err)
	require.NotNil(f.t, p)
	return p.Stock
}

func TestLedgerPG_ReassignAndDelete(t *testing.T) {
	f := newPGFixture(t)
	a, b := f.product(), f.product()

	m, err := f.ledger.CreateMovement(f.ctx, inventory.CreateMovementInput{ProductID: a, Direction: "inflow", Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(10), f.stock(a))

	_, err = f.ledger.AmendMovement(f.ctx, m.ID, inventory.AmendMovementInput{ProductID: &b})
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.stock(a))
	assert.Equal(t, int64(10), f.stock(b))

	require.NoError(t, f.ledger.DeleteMovement(f.ctx, m.ID))
	assert.Equal(t, int64(0), f.stock(b))

	err = f.ledger.DeleteMovement(f.ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedgerPG_ConcurrentAmendsOnDistinctMovements(t *testing.T) {
	const n = 25
	f := newPGFixture(t)
	a := f.product()

	ids := make([]int64, n)
	for i := range ids {
		m, err := f.ledger.CreateMovement(f.ctx, inventory.CreateMovementInput{ProductID: a, Direction: "inflow", Quantity: 1})
		require.NoError(t, err)
		ids[i] = m.ID
	}
	require.Equal(t, int64(n), f.stock(a))

	var wg sync.WaitGroup
	errs := make(chan error, n)
	two := int64(2)
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := f.ledger.AmendMovement(f.ctx, id, inventory.AmendMovementInput{Quantity: &two})
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(2*n), f.stock(a))
}

func TestLedgerPG_ConcurrentAmendsOnSameMovementSerialize(t *testing.T) {
	const n = 10
	f := newPGFixture(t)
	a := f.product()
	m, err := f.ledger.CreateMovement(f.ctx, inventory.CreateMovementInput{ProductID: a, Direction: "inflow", Quantity: 1})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(q int64) {
			defer wg.Done()
			_, err := f.ledger.AmendMovement(f.ctx, m.ID, inventory.AmendMovementInput{Quantity: &q})
			assert.NoError(t, err)
		}(int64(i * 10))
	}
	wg.Wait()

	// Cualquiera que haya sido el último, el stock refleja exactamente su cantidad.
	got, err := f.ledger.GetMovement(f.ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Quantity, f.stock(a))
}

func TestLedgerPG_StockOverflowIsValidation(t *testing.T) {
	f := newPGFixture(t)
	a := f.product()
	m, err := f.ledger.CreateMovement(f.ctx, inventory.CreateMovementInput{ProductID: a, Direction: "outflow", Quantity: 5})
	require.NoError(t, err)

	_, err = f.products.ApplyStockDelta(f.ctx, a, math.MaxInt64)
	require.NoError(t, err)
	_, err = f.products.ApplyStockDelta(f.ctx, a, 4)
	require.NoError(t, err)

	// BIGINT desborda (22003): error de validación, no reintentable, sin cambios.
	_, err = f.ledger.CreateMovement(f.ctx, inventory.CreateMovementInput{ProductID: a, Direction: "inflow", Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrRetryable)

	err = f.ledger.DeleteMovement(f.ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrRetryable)

	p, err := f.products.GetByID(f.ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64-1), p.Stock)
}
