package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dasava11/santuario-api-sub002/internal/application/reports"
	"github.com/dasava11/santuario-api-sub002/internal/domain"
	"github.com/dasava11/santuario-api-sub002/internal/domain/repository"
)

// fakeReportsRepo cuenta las consultas para verificar el comportamiento del cache.
type fakeReportsRepo struct {
	lowStockCalls int
	valueCalls    int
	statsCalls    int
}

func (f *fakeReportsRepo) GetLowStock(ctx context.Context) ([]repository.LowStockRow, error) {
	f.lowStockCalls++
	return []repository.LowStockRow{
		{ProductID: "p1", SKU: "SKU-1", Name: "Arroz", StockActual: decimal.NewFromInt(2), StockMinimo: decimal.NewFromInt(5), Margen: decimal.NewFromInt(-3)},
	}, nil
}

func (f *fakeReportsRepo) GetInventoryValue(ctx context.Context) (*repository.InventoryValueRow, error) {
	f.valueCalls++
	return &repository.InventoryValueRow{
		ProductCount: 3,
		ValorCompra:  decimal.NewFromInt(1000),
		ValorVenta:   decimal.NewFromInt(1500),
	}, nil
}

func (f *fakeReportsRepo) GetMovementStats(ctx context.Context, desde, hasta time.Time, bucket string) ([]repository.MovementStatsRow, error) {
	f.statsCalls++
	return []repository.MovementStatsRow{
		{Bucket: desde, Tipo: "entrada", Movimientos: 4, CantidadTotal: decimal.NewFromInt(40)},
	}, nil
}

// fakeCache implementación mínima de reports.ViewCache.
type fakeCache struct {
	entries map[string]any
}

func newFakeCache() *fakeCache { return &fakeCache{entries: make(map[string]any)} }

func (c *fakeCache) Get(key string) (any, bool) {
	v, ok := c.entries[key]
	return v, ok
}

func (c *fakeCache) Set(key string, value any) { c.entries[key] = value }

func (c *fakeCache) Invalidate() { c.entries = make(map[string]any) }

func TestGetLowStock_UsaCacheHastaInvalidar(t *testing.T) {
	repo := &fakeReportsRepo{}
	cache := newFakeCache()
	uc := reports.NewUseCase(repo, cache)
	ctx := context.Background()

	rows, err := uc.GetLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, repo.lowStockCalls)

	// Segunda lectura: sirve desde cache sin tocar el repo.
	_, err = uc.GetLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lowStockCalls, "la segunda lectura debe salir del cache")

	// Tras invalidar (como hace el gateway después de un commit) vuelve al repo.
	cache.Invalidate()
	_, err = uc.GetLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.lowStockCalls)
}

func TestGetInventoryValue_CacheHit(t *testing.T) {
	repo := &fakeReportsRepo{}
	uc := reports.NewUseCase(repo, newFakeCache())
	ctx := context.Background()

	row, err := uc.GetInventoryValue(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), row.ProductCount)
	assert.True(t, row.ValorVenta.Equal(decimal.NewFromInt(1500)))

	_, err = uc.GetInventoryValue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.valueCalls)
}

func TestGetMovementStats_ValidaVentanaYBucket(t *testing.T) {
	repo := &fakeReportsRepo{}
	uc := reports.NewUseCase(repo, nil) // sin cache también funciona
	ctx := context.Background()
	desde := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	hasta := desde.AddDate(0, 1, 0)

	_, err := uc.GetMovementStats(ctx, desde, hasta, "quarter")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetMovementStats(ctx, hasta, desde, reports.BucketDay)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "hasta < desde es inválido")

	rows, err := uc.GetMovementStats(ctx, desde, hasta, "")
	require.NoError(t, err, "bucket vacío equivale a day")
	require.Len(t, rows, 1)
	assert.Equal(t, "entrada", rows[0].Tipo)
	assert.Equal(t, 1, repo.statsCalls)
}

func TestGetMovementStats_CachePorVentana(t *testing.T) {
	repo := &fakeReportsRepo{}
	uc := reports.NewUseCase(repo, newFakeCache())
	ctx := context.Background()
	desde := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	hasta := desde.AddDate(0, 1, 0)

	_, err := uc.GetMovementStats(ctx, desde, hasta, reports.BucketWeek)
	require.NoError(t, err)
	_, err = uc.GetMovementStats(ctx, desde, hasta, reports.BucketWeek)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.statsCalls, "misma ventana y bucket: un solo query")

	// Otra ventana es otra entrada de cache.
	_, err = uc.GetMovementStats(ctx, desde, hasta.AddDate(0, 1, 0), reports.BucketWeek)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.statsCalls)
}
