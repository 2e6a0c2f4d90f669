package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dasava11/santuario-api-sub002/internal/application/inventory"
	"github.com/dasava11/santuario-api-sub002/internal/domain"
	"github.com/dasava11/santuario-api-sub002/internal/domain/entity"
)

func setupGateway(products ...*entity.Product) (*inventory.ApplyMovementUseCase, *fakeTxRunner, *fakeInvalidator) {
	productRepo := newFakeProductRepo(products...)
	txRunner := newFakeTxRunner(productRepo)
	invalidator := &fakeInvalidator{}
	return inventory.NewApplyMovementUseCase(txRunner, invalidator), txRunner, invalidator
}

func TestApplyMovement_Entrada(t *testing.T) {
	gateway, txRunner, invalidator := setupGateway(productoDePrueba("p1", 10, 2))

	res, err := gateway.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
		ProductID: "p1",
		Tipo:      entity.MovementTypeEntrada,
		Cantidad:  dec(5),
		UserID:    "u1",
	})
	require.NoError(t, err)

	assert.True(t, res.StockAnterior.Equal(dec(10)))
	assert.True(t, res.StockNuevo.Equal(dec(15)))

	require.Len(t, txRunner.movs.movements, 1, "debe quedar exactamente una fila en el ledger")
	mov := txRunner.movs.movements[0]
	assert.Equal(t, entity.MovementTypeEntrada, mov.TipoMovimiento)
	assert.True(t, mov.Cantidad.Equal(dec(5)))
	assert.True(t, mov.StockAnterior.Equal(dec(10)))
	assert.True(t, mov.StockNuevo.Equal(dec(15)))
	assert.Equal(t, "u1", mov.UserID)

	p, _ := txRunner.products.GetByID("p1")
	assert.True(t, p.StockActual.Equal(dec(15)), "stock_actual debe reflejar la entrada")
	assert.Equal(t, 1, invalidator.calls(), "el commit debe invalidar las vistas")
}

func TestApplyMovement_Salida(t *testing.T) {
	gateway, txRunner, _ := setupGateway(productoDePrueba("p1", 10, 2))

	res, err := gateway.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
		ProductID: "p1",
		Tipo:      entity.MovementTypeSalida,
		Cantidad:  dec(4),
		UserID:    "u1",
	})
	require.NoError(t, err)

	assert.True(t, res.StockNuevo.Equal(dec(6)))
	mov := txRunner.movs.movements[0]
	assert.True(t, mov.Delta().Equal(dec(-4)), "salida debe restar del stock")
}

func TestApplyMovement_SalidaStockInsuficiente_NoDejaRastro(t *testing.T) {
	gateway, txRunner, invalidator := setupGateway(productoDePrueba("p1", 3, 1))

	_, err := gateway.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
		ProductID: "p1",
		Tipo:      entity.MovementTypeSalida,
		Cantidad:  dec(5),
		UserID:    "u1",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Un rechazo no puede dejar fila en el ledger ni tocar el stock.
	assert.Empty(t, txRunner.movs.movements)
	p, _ := txRunner.products.GetByID("p1")
	assert.True(t, p.StockActual.Equal(dec(3)))
	assert.Equal(t, 0, invalidator.calls(), "sin commit no hay invalidación")
}

func TestApplyMovement_AjusteConSigno(t *testing.T) {
	gateway, txRunner, _ := setupGateway(productoDePrueba("p1", 10, 2))

	res, err := gateway.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
		ProductID:     "p1",
		Tipo:          entity.MovementTypeAjuste,
		Cantidad:      dec(-3),
		UserID:        "u1",
		Observaciones: "merma por conteo físico",
	})
	require.NoError(t, err)

	assert.True(t, res.StockNuevo.Equal(dec(7)))
	mov := txRunner.movs.movements[0]
	assert.True(t, mov.Cantidad.Equal(dec(3)), "el ledger guarda el valor absoluto")
	assert.True(t, mov.Delta().Equal(dec(-3)))
}

func TestApplyMovement_AjusteBajoCero(t *testing.T) {
	gateway, _, _ := setupGateway(productoDePrueba("p1", 2, 1))

	_, err := gateway.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
		ProductID: "p1",
		Tipo:      entity.MovementTypeAjuste,
		Cantidad:  dec(-5),
		UserID:    "u1",
	})
	assert.ErrorIs(t, err, domain.ErrStockNegative)
}

func TestApplyMovement_Validaciones(t *testing.T) {
	gateway, _, _ := setupGateway(productoDePrueba("p1", 10, 2))
	ctx := context.Background()

	_, err := gateway.ApplyMovement(ctx, inventory.ApplyMovementInput{
		ProductID: "p1", Tipo: "traslado", Cantidad: dec(1), UserID: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)

	_, err = gateway.ApplyMovement(ctx, inventory.ApplyMovementInput{
		ProductID: "p1", Tipo: entity.MovementTypeEntrada, Cantidad: dec(0), UserID: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = gateway.ApplyMovement(ctx, inventory.ApplyMovementInput{
		ProductID: "p1", Tipo: entity.MovementTypeSalida, Cantidad: dec(-2), UserID: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = gateway.ApplyMovement(ctx, inventory.ApplyMovementInput{
		ProductID: "no-existe", Tipo: entity.MovementTypeEntrada, Cantidad: dec(1), UserID: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// El gateway reintenta la transacción completa ante conflictos de bloqueo:
// con maxRetries=3 tolera hasta 3 conflictos (4 intentos en total) y aplica el
// movimiento en el intento que consigue el lock.
func TestApplyMovement_ReintentaAnteConflictos(t *testing.T) {
	productRepo := newFakeProductRepo(productoDePrueba("p1", 10, 2))
	runner := &conflictTxRunner{inner: newFakeTxRunner(productRepo), conflicts: 3}
	invalidator := &fakeInvalidator{}
	gateway := inventory.NewApplyMovementUseCase(runner, invalidator)

	res, err := gateway.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
		ProductID: "p1",
		Tipo:      entity.MovementTypeEntrada,
		Cantidad:  dec(5),
		UserID:    "u1",
	})
	require.NoError(t, err, "3 conflictos seguidos de éxito deben absorberse")

	assert.Equal(t, 4, runner.calls, "3 conflictos + 1 intento exitoso")
	assert.True(t, res.StockNuevo.Equal(dec(15)))
	require.Len(t, runner.inner.movs.movements, 1, "solo el intento exitoso escribe al ledger")
	assert.Equal(t, 1, invalidator.calls(), "una sola invalidación, tras el commit")
}

// Agotados los reintentos, el conflicto se expone al caller sin dejar rastro.
func TestApplyMovement_ConflictoPersistenteSeExpone(t *testing.T) {
	productRepo := newFakeProductRepo(productoDePrueba("p1", 10, 2))
	runner := &conflictTxRunner{inner: newFakeTxRunner(productRepo), conflicts: 10}
	invalidator := &fakeInvalidator{}
	gateway := inventory.NewApplyMovementUseCase(runner, invalidator)

	_, err := gateway.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
		ProductID: "p1",
		Tipo:      entity.MovementTypeEntrada,
		Cantidad:  dec(5),
		UserID:    "u1",
	})
	require.ErrorIs(t, err, domain.ErrConcurrencyConflict)

	assert.Equal(t, 4, runner.calls, "el reintento es acotado: 1 intento + 3 reintentos")
	assert.Empty(t, runner.inner.movs.movements)
	p, _ := productRepo.GetByID("p1")
	assert.True(t, p.StockActual.Equal(dec(10)), "el stock queda intacto")
	assert.Equal(t, 0, invalidator.calls())
}

// WithMaxRetries ajusta el presupuesto de reintentos.
func TestApplyMovement_MaxRetriesConfigurable(t *testing.T) {
	productRepo := newFakeProductRepo(productoDePrueba("p1", 10, 2))
	runner := &conflictTxRunner{inner: newFakeTxRunner(productRepo), conflicts: 5}
	gateway := inventory.NewApplyMovementUseCase(runner, nil).WithMaxRetries(5)

	res, err := gateway.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
		ProductID: "p1",
		Tipo:      entity.MovementTypeEntrada,
		Cantidad:  dec(1),
		UserID:    "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, runner.calls)
	assert.True(t, res.StockNuevo.Equal(dec(11)))
}

// N movimientos concurrentes sobre el mismo producto: ningún update se pierde y
// el ledger encadena sin huecos (stock_anterior de cada fila = stock_nuevo de
// la anterior).
func TestApplyMovement_ConcurrenciaSinPerdidas(t *testing.T) {
	const n = 25
	gateway, txRunner, _ := setupGateway(productoDePrueba("p1", 100, 2))

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := gateway.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
				ProductID: "p1",
				Tipo:      entity.MovementTypeEntrada,
				Cantidad:  dec(1),
				UserID:    "u1",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	p, _ := txRunner.products.GetByID("p1")
	assert.True(t, p.StockActual.Equal(dec(100+n)), "stock final = inicial + n, sin updates perdidos")

	movs := txRunner.movs.movements
	require.Len(t, movs, n)
	for i := 1; i < len(movs); i++ {
		assert.True(t, movs[i].StockAnterior.Equal(movs[i-1].StockNuevo),
			"el ledger debe encadenar: fila %d no continúa a la %d", i, i-1)
	}
	// Reproducir el ledger desde el stock inicial llega al stock final.
	replay := dec(100)
	for _, m := range movs {
		replay = replay.Add(m.Delta())
	}
	assert.True(t, replay.Equal(p.StockActual), "reproducir el ledger debe dar el stock actual")
}
