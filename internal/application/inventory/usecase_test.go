package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-stock-api/internal/domain"
	"github.com/jhoicas/tienda-stock-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSizeM int64 = 2
	testSizeL int64 = 3
	testUser        = "admin@tienda.test"
)

// seedStore crea un producto "Camiseta Azul" (stock 10, mínimo 3) con
// variantes M=4 y L=6.
func seedStore() *memStore {
	s := newMemStore()
	s.addProduct(&entity.Product{
		ID:          1,
		Name:        "Camiseta Azul",
		Category:    "Camisetas",
		Price:       decimal.NewFromInt(20),
		Stock:       10,
		StockMinimo: 3,
		Active:      true,
	})
	s.addVariant(&entity.Variant{
		ProductID: 1, SizeID: testSizeM, SizeLabel: "M", SKU: "CAMISETA-AZUL-M", Stock: 4,
	})
	s.addVariant(&entity.Variant{
		ProductID: 1, SizeID: testSizeL, SizeLabel: "L", SKU: "CAMISETA-AZUL-L", Stock: 6,
	})
	return s
}

// newEngine construye el motor sobre el store en memoria.
func newEngine(s *memStore) *ApplyMovementUseCase {
	return NewApplyMovementUseCase(
		&memTxRunner{s},
		&memProductRepo{s},
		&memVariantRepo{s},
		NewConfirmationStore(time.Minute),
	)
}

// confirmSale ejecuta el flujo de venta en dos pasos y devuelve el resultado
// final confirmado.
func confirmSale(t *testing.T, engine *ApplyMovementUseCase, input MovementInput) *MovementResult {
	t.Helper()
	pending, err := engine.ApplyMovement(context.Background(), input)
	require.NoError(t, err)
	require.True(t, pending.Pending, "la primera invocación de una venta debe quedar pendiente")
	require.NotEmpty(t, pending.ConfirmToken)

	input.ConfirmToken = pending.ConfirmToken
	res, err := engine.ApplyMovement(context.Background(), input)
	require.NoError(t, err)
	require.False(t, res.Pending)
	return res
}

func int64Ptr(v int64) *int64 { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Tests de validación (sin escrituras)
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: Cantidad cero o negativa → ErrInvalidQuantity, sin tocar el store.
func TestApplyMovement_CantidadInvalida(t *testing.T) {
	store := seedStore()
	engine := newEngine(store)

	for _, cantidad := range []int{0, -5} {
		_, err := engine.ApplyMovement(context.Background(), MovementInput{
			ProductID: 1, Tipo: entity.MovementTypeReposicion, Cantidad: cantidad, Usuario: testUser,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
	assert.Equal(t, 10, store.products[1].Stock, "una petición rechazada no debe modificar el stock")
	assert.Empty(t, store.movements, "una petición rechazada no debe registrarse en el libro")
}

// Caso 2: Tipo de movimiento desconocido → ErrInvalidInput.
func TestApplyMovement_TipoInvalido(t *testing.T) {
	store := seedStore()
	engine := newEngine(store)

	_, err := engine.ApplyMovement(context.Background(), MovementInput{
		ProductID: 1, Tipo: "prestamo", Cantidad: 1, Usuario: testUser,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.movements)
}

// Caso 3: Producto inexistente → ErrProductNotFound.
func TestApplyMovement_ProductoInexistente(t *testing.T) {
	engine := newEngine(seedStore())

	_, err := engine.ApplyMovement(context.Background(), MovementInput{
		ProductID: 99, Tipo: entity.MovementTypeReposicion, Cantidad: 1, Usuario: testUser,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	// La primera fase de una venta también valida existencia.
	_, err = engine.ApplyMovement(context.Background(), MovementInput{
		ProductID: 99, Tipo: entity.MovementTypeVenta, Cantidad: 1, Usuario: testUser,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// Caso 4: Talla sin variante materializada → ErrVariantNotFound.
func TestApplyMovement_VarianteInexistente(t *testing.T) {
	engine := newEngine(seedStore())

	_, err := engine.ApplyMovement(context.Background(), MovementInput{
		ProductID: 1, SizeID: int64Ptr(77), Tipo: entity.MovementTypeDevolucion, Cantidad: 1, Usuario: testUser,
	})
	assert.ErrorIs(t, err, domain.ErrVariantNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de aplicación de movimientos
// ──────────────────────────────────────────────────────────────────────────────

// Caso 5: Reposición sin talla suma al total y deja exactamente una entrada
// en el libro.
func TestApplyMovement_ReposicionSinTalla(t *testing.T) {
	store := seedStore()
	engine := newEngine(store)

	res, err := engine.ApplyMovement(context.Background(), MovementInput{
		ProductID: 1, Tipo: entity.MovementTypeReposicion, Cantidad: 5, Usuario: testUser,
	})
	require.NoError(t, err)

	assert.Equal(t, 15, res.NewStock)
	assert.Nil(t, res.NewVariantStock)
	assert.False(t, res.LowStock)
	assert.NotEmpty(t, res.TransactionID)
	assert.Equal(t, 15, store.products[1].Stock)
	assert.Equal(t, 4, store.variants[variantKey(1, testSizeM)].Stock, "las variantes no cambian en un movimiento sin talla")

	require.Len(t, store.movements, 1)
	mov := store.movements[0]
	assert.Equal(t, entity.MovementTypeReposicion, mov.Tipo)
	assert.Equal(t, 5, mov.Cantidad)
	assert.Equal(t, "Camiseta Azul", mov.Etiqueta)
	assert.Nil(t, mov.SizeID)
	assert.Equal(t, testUser, mov.Usuario)
}

// Caso 6: Devolución con talla suma en total y variante, con la talla
// resuelta en la etiqueta del libro.
func TestApplyMovement_DevolucionConTalla(t *testing.T) {
	store := seedStore()
	engine := newEngine(store)

	res, err := engine.ApplyMovement(context.Background(), MovementInput{
		ProductID: 1, SizeID: int64Ptr(testSizeM), Tipo: entity.MovementTypeDevolucion, Cantidad: 2, Usuario: testUser,
	})
	require.NoError(t, err)

	assert.Equal(t, 12, res.NewStock)
	require.NotNil(t, res.NewVariantStock)
	assert.Equal(t, 6, *res.NewVariantStock)
	assert.Equal(t, 12, store.products[1].Stock)
	assert.Equal(t, 6, store.variants[variantKey(1, testSizeM)].Stock)

	require.Len(t, store.movements, 1)
	assert.Equal(t, "Camiseta Azul (M)", store.movements[0].Etiqueta)
	require.NotNil(t, store.movements[0].SizeID)
	assert.Equal(t, testSizeM, *store.movements[0].SizeID)
}

// Caso 7: Venta en dos pasos: la primera invocación no escribe nada,
// la segunda con el token descuenta y registra.
func TestApplyMovement_VentaDosPasos(t *testing.T) {
	store := seedStore()
	engine := newEngine(store)

	pending, err := engine.ApplyMovement(context.Background(), MovementInput{
		ProductID: 1, SizeID: int64Ptr(testSizeM), Tipo: entity.MovementTypeVenta, Cantidad: 3, Usuario: testUser,
	})
	require.NoError(t, err)
	assert.True(t, pending.Pending)
	assert.Equal(t, 10, store.products[1].Stock, "pedir confirmación no debe escribir nada")
	assert.Empty(t, store.movements)

	res, err := engine.ApplyMovement(context.Background(), MovementInput{
		ProductID: 1, SizeID: int64Ptr(testSizeM), Tipo: entity.MovementTypeVenta, Cantidad: 3,
		Usuario: testUser, ConfirmToken: pending.ConfirmToken,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, res.NewStock)
	require.NotNil(t, res.NewVariantStock)
	assert.Equal(t, 1, *res.NewVariantStock)
	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.MovementTypeVenta, store.movements[0].Tipo)
}

// Caso 8: Un token no se puede reutilizar ni canjear con otros parámetros.
func TestApplyMovement_TokenUnUsoYMismaVenta(t *testing.T) {
	store := seedStore()
	engine := newEngine(store)

	pending, err := engine.ApplyMovement(context.Background(), MovementInput{
		ProductID: 1, Tipo: entity.MovementTypeVenta, Cantidad: 2, Usuario: testUser,
	})
	require.NoError(t, err)

	// Cantidad distinta a la emitida → rechazado.
	_, err = engine.ApplyMovement(context.Background(), MovementInput{
		ProductID: 1, Tipo: entity.MovementTypeVenta, Cantidad: 5,
		Usuario: testUser, ConfirmToken: pending.ConfirmToken,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidConfirmation)

	// Canje correcto.
	_, err = engine.ApplyMovement(context.Background(), MovementInput{
		ProductID: 1, Tipo: entity.MovementTypeVenta, Cantidad: 2,
		Usuario: testUser, ConfirmToken: pending.ConfirmToken,
	})
	require.NoError(t, err)

	// Segundo canje del mismo token → rechazado, sin doble descuento.
	_, err = engine.ApplyMovement(context.Background(), MovementInput{
		ProductID: 1, Tipo: entity.MovementTypeVenta, Cantidad: 2,
		Usuario: testUser, ConfirmToken: pending.ConfirmToken,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidConfirmation)
	assert.Equal(t, 8, store.products[1].Stock)
	assert.Len(t, store.movements, 1)
}

// Caso 9: Venta que dejaría el total negativo → ErrInsufficientStock y el
// store queda intacto (misma petición repetida falla igual).
func TestApplyMovement_StockInsuficiente(t *testing.T) {
	store := seedStore()
	engine := newEngine(store)

	input := MovementInput{
		ProductID: 1, Tipo: entity.MovementTypeVenta, Cantidad: 11, Usuario: testUser,
	}
	for i := 0; i < 2; i++ {
		pending, err := engine.ApplyMovement(context.Background(), input)
		require.NoError(t, err)
		input2 := input
		input2.ConfirmToken = pending.ConfirmToken
		_, err = engine.ApplyMovement(context.Background(), input2)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock, "el rechazo debe ser idempotente")
	}
	assert.Equal(t, 10, store.products[1].Stock)
	assert.Empty(t, store.movements)
}

// Caso 10: Total suficiente pero variante insuficiente → el error es el de
// variante y no se escribe nada (ni siquiera el total, que ya pasó su chequeo).
func TestApplyMovement_StockVarianteInsuficiente(t *testing.T) {
	store := seedStore()
	engine := newEngine(store)

	res := func() error {
		pending, err := engine.ApplyMovement(context.Background(), MovementInput{
			ProductID: 1, SizeID: int64Ptr(testSizeM), Tipo: entity.MovementTypeVenta, Cantidad: 5, Usuario: testUser,
		})
		require.NoError(t, err)
		_, err = engine.ApplyMovement(context.Background(), MovementInput{
			ProductID: 1, SizeID: int64Ptr(testSizeM), Tipo: entity.MovementTypeVenta, Cantidad: 5,
			Usuario: testUser, ConfirmToken: pending.ConfirmToken,
		})
		return err
	}()
	assert.ErrorIs(t, res, domain.ErrInsufficientVariantStock)
	assert.Equal(t, 10, store.products[1].Stock, "el total no debe quedar a medias tras el rollback")
	assert.Equal(t, 4, store.variants[variantKey(1, testSizeM)].Stock)
	assert.Empty(t, store.movements)
}

// Caso 10b: Vender exactamente el stock de la variante es válido: la variante
// queda en 0 (la fila sigue existiendo), el total baja y el libro registra la
// entrada con la talla resuelta.
func TestApplyMovement_VentaAgotaVariante(t *testing.T) {
	store := seedStore()
	store.variants[variantKey(1, testSizeM)].Stock = 2
	engine := newEngine(store)

	res := confirmSale(t, engine, MovementInput{
		ProductID: 1, SizeID: int64Ptr(testSizeM), Tipo: entity.MovementTypeVenta, Cantidad: 2, Usuario: testUser,
	})
	assert.Equal(t, 8, res.NewStock)
	require.NotNil(t, res.NewVariantStock)
	assert.Equal(t, 0, *res.NewVariantStock)

	v := store.variants[variantKey(1, testSizeM)]
	require.NotNil(t, v, "agotar la variante no borra la fila")
	assert.Equal(t, 0, v.Stock)

	require.Len(t, store.movements, 1)
	assert.Equal(t, "Camiseta Azul (M)", store.movements[0].Etiqueta)

	// Una unidad más ya no hay: el rechazo es por variante, no por total.
	_, err := engine.ApplyConfirmed(context.Background(), MovementInput{
		ProductID: 1, SizeID: int64Ptr(testSizeM), Tipo: entity.MovementTypeVenta, Cantidad: 1, Usuario: testUser,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientVariantStock)
	assert.Len(t, store.movements, 1)
}

// Caso 11: Si falla la escritura en el libro, el descuento de stock se
// revierte: o las tres escrituras o ninguna.
func TestApplyMovement_FalloEnLibroRevierteTodo(t *testing.T) {
	store := seedStore()
	store.failMovementCreate = true
	engine := newEngine(store)

	_, err := engine.ApplyConfirmed(context.Background(), MovementInput{
		ProductID: 1, SizeID: int64Ptr(testSizeM), Tipo: entity.MovementTypeVenta, Cantidad: 2, Usuario: testUser,
	})
	require.Error(t, err)
	assert.Equal(t, 10, store.products[1].Stock)
	assert.Equal(t, 4, store.variants[variantKey(1, testSizeM)].Stock)
	assert.Empty(t, store.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de stock bajo
// ──────────────────────────────────────────────────────────────────────────────

// Caso 12: Caer por debajo del mínimo enciende la alerta con su carga útil.
func TestApplyMovement_AlertaStockBajo(t *testing.T) {
	store := seedStore()
	engine := newEngine(store)

	res := confirmSale(t, engine, MovementInput{
		ProductID: 1, Tipo: entity.MovementTypeVenta, Cantidad: 8, Usuario: testUser,
	})
	assert.Equal(t, 2, res.NewStock)
	assert.True(t, res.LowStock)
	require.NotNil(t, res.Alert)
	assert.Equal(t, int64(1), res.Alert.ProductID)
	assert.Equal(t, "Camiseta Azul", res.Alert.ProductName)
	assert.Equal(t, 2, res.Alert.NewStock)
	assert.Equal(t, 3, res.Alert.Threshold)
}

// Caso 13: Reponer hasta exactamente el mínimo sigue marcando stock bajo:
// el umbral es inclusivo.
func TestApplyMovement_ReponerHastaElMinimoSigueBajo(t *testing.T) {
	store := seedStore()
	store.products[1].Stock = 1
	engine := newEngine(store)

	res, err := engine.ApplyMovement(context.Background(), MovementInput{
		ProductID: 1, Tipo: entity.MovementTypeReposicion, Cantidad: 2, Usuario: testUser,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.NewStock)
	assert.True(t, res.LowStock, "stock igual al mínimo cuenta como bajo")

	// Una unidad más y la alerta se apaga.
	res, err = engine.ApplyMovement(context.Background(), MovementInput{
		ProductID: 1, Tipo: entity.MovementTypeReposicion, Cantidad: 1, Usuario: testUser,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.NewStock)
	assert.False(t, res.LowStock)
	assert.Nil(t, res.Alert)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de reserva para checkout
// ──────────────────────────────────────────────────────────────────────────────

// Caso 14: ReserveForOrder aplica una venta por línea, cada una con su propia
// entrada en el libro.
func TestReserveForOrder_Exito(t *testing.T) {
	store := seedStore()
	engine := newEngine(store)

	results, err := engine.ReserveForOrder(context.Background(), []OrderLine{
		{ProductID: 1, SizeID: int64Ptr(testSizeM), Cantidad: 2},
		{ProductID: 1, SizeID: int64Ptr(testSizeL), Cantidad: 1},
	}, testUser)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 7, store.products[1].Stock)
	assert.Equal(t, 2, store.variants[variantKey(1, testSizeM)].Stock)
	assert.Equal(t, 5, store.variants[variantKey(1, testSizeL)].Stock)
	assert.Len(t, store.movements, 2)
}

// Caso 15: Si una línea falla, las anteriores ya quedaron aplicadas y se
// devuelven junto al error; la línea fallida no deja rastro.
func TestReserveForOrder_FalloParcial(t *testing.T) {
	store := seedStore()
	engine := newEngine(store)

	results, err := engine.ReserveForOrder(context.Background(), []OrderLine{
		{ProductID: 1, SizeID: int64Ptr(testSizeM), Cantidad: 2},
		{ProductID: 1, SizeID: int64Ptr(testSizeL), Cantidad: 99},
	}, testUser)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Len(t, results, 1, "las líneas aplicadas antes del fallo se devuelven")

	assert.Equal(t, 8, store.products[1].Stock)
	assert.Equal(t, 6, store.variants[variantKey(1, testSizeL)].Stock, "la línea fallida no descuenta")
	assert.Len(t, store.movements, 1)
}
