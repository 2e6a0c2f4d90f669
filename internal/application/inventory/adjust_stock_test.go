package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dasava11/santuario-api-sub002/internal/application/inventory"
	"github.com/dasava11/santuario-api-sub002/internal/domain"
	"github.com/dasava11/santuario-api-sub002/internal/domain/entity"
)

func setupAdjust(products ...*entity.Product) (*inventory.AdjustStockUseCase, *fakeTxRunner) {
	productRepo := newFakeProductRepo(products...)
	txRunner := newFakeTxRunner(productRepo)
	gateway := inventory.NewApplyMovementUseCase(txRunner, nil)
	adjust := inventory.NewAdjustStockUseCase(gateway, productRepo, inventory.DefaultGuardrailConfig())
	return adjust, txRunner
}

func TestAdjustStock_SinCambio(t *testing.T) {
	adjust, _ := setupAdjust(productoDePrueba("p1", 100, 10))

	_, err := adjust.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID: "p1", NuevoStock: dec(100), UserID: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrStockUnchanged)
}

func TestAdjustStock_Negativo(t *testing.T) {
	adjust, _ := setupAdjust(productoDePrueba("p1", 100, 10))

	_, err := adjust.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID: "p1", NuevoStock: dec(-5), UserID: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrStockNegative)
}

func TestAdjustStock_CriticoSinJustificacion(t *testing.T) {
	adjust, txRunner := setupAdjust(productoDePrueba("p1", 100, 10))

	// +100% de cambio con observaciones vacías: rechazado con los datos del error.
	_, err := adjust.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID: "p1", NuevoStock: dec(200), UserID: "u1",
	})
	var critical *domain.CriticalAdjustmentError
	require.ErrorAs(t, err, &critical)
	assert.True(t, critical.DiferenciaPorcentaje.Equal(dec(100)))
	assert.Equal(t, 20, critical.MinJustificacion)
	assert.Empty(t, txRunner.movs.movements, "un rechazo no toca el ledger")
}

func TestAdjustStock_CriticoConJustificacion(t *testing.T) {
	adjust, txRunner := setupAdjust(productoDePrueba("p1", 100, 10))

	res, err := adjust.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID:     "p1",
		NuevoStock:    dec(200),
		Observaciones: "conteo físico de bodega tras inventario anual",
		UserID:        "u1",
	})
	require.NoError(t, err)

	assert.True(t, res.Diferencia.Equal(dec(100)))
	assert.True(t, res.DiferenciaPorcentaje.Equal(dec(100)))
	assert.Equal(t, inventory.TipoAjusteIncremento, res.TipoAjuste)
	assert.True(t, res.StockNuevo.Equal(dec(200)))
	assert.False(t, res.AlertaStockBajo)

	require.Len(t, txRunner.movs.movements, 1)
	mov := txRunner.movs.movements[0]
	assert.Equal(t, entity.MovementTypeAjuste, mov.TipoMovimiento)
	assert.True(t, mov.Cantidad.Equal(dec(100)))
	require.NotNil(t, mov.ReferenciaTipo)
	assert.Equal(t, entity.ReferenceTypeAjuste, *mov.ReferenciaTipo)
}

func TestAdjustStock_Excesivo(t *testing.T) {
	adjust, _ := setupAdjust(productoDePrueba("p1", 200, 10))

	// Tope = max(200*10, 1000) = 2000.
	_, err := adjust.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID:     "p1",
		NuevoStock:    dec(2500),
		Observaciones: "reposición masiva tras apertura de temporada",
		UserID:        "u1",
	})
	var excessive *domain.StockExcessiveError
	require.ErrorAs(t, err, &excessive)
	assert.True(t, excessive.MaxPermitido.Equal(dec(2000)))
	assert.True(t, excessive.StockPropuesto.Equal(dec(2500)))
}

func TestAdjustStock_DesdeCero(t *testing.T) {
	adjust, _ := setupAdjust(productoDePrueba("p1", 0, 5))

	// Con stock 0 el tope cae al piso absoluto (1000) y el porcentaje se calcula
	// sobre max(stock, 1) para no dividir por cero.
	res, err := adjust.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID:     "p1",
		NuevoStock:    dec(50),
		Observaciones: "ingreso inicial tras corrección de catálogo",
		UserID:        "u1",
	})
	require.NoError(t, err)
	assert.True(t, res.DiferenciaPorcentaje.Equal(dec(5000)))
	assert.Equal(t, inventory.TipoAjusteIncremento, res.TipoAjuste)
}

func TestAdjustStock_DecrementoConAlerta(t *testing.T) {
	adjust, _ := setupAdjust(productoDePrueba("p1", 100, 50))

	res, err := adjust.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID:     "p1",
		NuevoStock:    dec(40),
		Observaciones: "merma confirmada por conteo físico de bodega",
		UserID:        "u1",
	})
	require.NoError(t, err)
	assert.True(t, res.Diferencia.Equal(dec(-60)))
	assert.Equal(t, inventory.TipoAjusteDecremento, res.TipoAjuste)
	assert.True(t, res.AlertaStockBajo, "40 <= stock_minimo 50 debe alertar")
}

func TestAdjustStock_ProductoNoExiste(t *testing.T) {
	adjust, _ := setupAdjust()

	_, err := adjust.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID: "nope", NuevoStock: dec(10), UserID: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
