package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/dasava11/santuario-api-sub002/internal/domain"
	"github.com/dasava11/santuario-api-sub002/internal/domain/repository"
)

// Buckets válidos para estadísticas de movimientos.
const (
	BucketDay   = "day"
	BucketWeek  = "week"
	BucketMonth = "month"
)

// ViewCache cache de vistas derivadas con invalidación explícita. Las entradas
// se descartan de forma síncrona tras cada mutación confirmada del gateway o
// del workflow de recepciones.
type ViewCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Invalidate()
}

// UseCase vistas derivadas de solo lectura: stock bajo, valoración del
// inventario y estadísticas de movimientos. Nunca escribe.
type UseCase struct {
	repo  repository.ReportsRepository
	cache ViewCache
}

// NewUseCase construye las vistas. cache puede ser nil (sin cacheo).
func NewUseCase(repo repository.ReportsRepository, cache ViewCache) *UseCase {
	return &UseCase{repo: repo, cache: cache}
}

// GetLowStock productos activos con stock_actual <= stock_minimo, ordenados
// por margen (stock_actual - stock_minimo) ascendente.
func (uc *UseCase) GetLowStock(ctx context.Context) ([]repository.LowStockRow, error) {
	const key = "views:stock_bajo"
	if uc.cache != nil {
		if v, ok := uc.cache.Get(key); ok {
			return v.([]repository.LowStockRow), nil
		}
	}
	rows, err := uc.repo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.Set(key, rows)
	}
	return rows, nil
}

// GetInventoryValue valoración a precio de compra y de venta sobre activos.
func (uc *UseCase) GetInventoryValue(ctx context.Context) (*repository.InventoryValueRow, error) {
	const key = "views:valor_inventario"
	if uc.cache != nil {
		if v, ok := uc.cache.Get(key); ok {
			return v.(*repository.InventoryValueRow), nil
		}
	}
	row, err := uc.repo.GetInventoryValue(ctx)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.Set(key, row)
	}
	return row, nil
}

// GetMovementStats agregados del ledger por tipo y bucket de fecha dentro de
// la ventana indicada. bucket vacío equivale a "day".
func (uc *UseCase) GetMovementStats(ctx context.Context, desde, hasta time.Time, bucket string) ([]repository.MovementStatsRow, error) {
	if bucket == "" {
		bucket = BucketDay
	}
	switch bucket {
	case BucketDay, BucketWeek, BucketMonth:
	default:
		return nil, domain.ErrInvalidInput
	}
	if hasta.Before(desde) {
		return nil, domain.ErrInvalidInput
	}

	key := fmt.Sprintf("views:estadisticas:%s:%d:%d", bucket, desde.Unix(), hasta.Unix())
	if uc.cache != nil {
		if v, ok := uc.cache.Get(key); ok {
			return v.([]repository.MovementStatsRow), nil
		}
	}
	rows, err := uc.repo.GetMovementStats(ctx, desde, hasta, bucket)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.Set(key, rows)
	}
	return rows, nil
}
