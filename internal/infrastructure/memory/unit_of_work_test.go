package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

func seedPW(t *testing.T, store *memory.Store) (*entity.Product, *entity.Warehouse) {
	t.Helper()
	ctx := context.Background()
	uow, err := store.New(ctx)
	require.NoError(t, err)
	defer uow.Close()

	p := &entity.Product{Code: "P001", Description: "Laptop"}
	w := &entity.Warehouse{Code: "WH-A", Name: "Bodega A"}
	require.NoError(t, uow.Products().Add(ctx, p))
	require.NoError(t, uow.Warehouses().Add(ctx, w))
	n, err := uow.SaveChanges(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.Positive(t, p.ID, "Add asigna el id en SaveChanges")
	return p, w
}

func TestUnitOfWork_RepositoriosCacheados(t *testing.T) {
	uow, err := memory.NewStore().New(context.Background())
	require.NoError(t, err)
	defer uow.Close()

	assert.Same(t, uow.Products(), uow.Products())
	assert.Same(t, uow.Warehouses(), uow.Warehouses())
	assert.Same(t, uow.Stocks(), uow.Stocks())
	assert.Same(t, uow.Users(), uow.Users())
}

func TestUnitOfWork_AddNoEscribeHastaSaveChanges(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	uow, err := store.New(ctx)
	require.NoError(t, err)
	defer uow.Close()
	require.NoError(t, uow.Products().Add(ctx, &entity.Product{Code: "P001", Description: "Laptop"}))

	got, err := uow.Products().GetByCode(ctx, "P001")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = uow.SaveChanges(ctx)
	require.NoError(t, err)
	got, err = uow.Products().GetByCode(ctx, "P001")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestUnitOfWork_SaveChangesSinCambios(t *testing.T) {
	uow, err := memory.NewStore().New(context.Background())
	require.NoError(t, err)
	defer uow.Close()

	n, err := uow.SaveChanges(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUnitOfWork_TransaccionDoble(t *testing.T) {
	uow, err := memory.NewStore().New(context.Background())
	require.NoError(t, err)
	defer uow.Close()

	require.NoError(t, uow.BeginTransaction(context.Background()))
	assert.ErrorIs(t, uow.BeginTransaction(context.Background()), domain.ErrTransactionInProgress)
}

func TestUnitOfWork_RollbackDescarta(t *testing.T) {
	store := memory.NewStore()
	p, w := seedPW(t, store)
	ctx := context.Background()

	uow, err := store.New(ctx)
	require.NoError(t, err)
	defer uow.Close()

	require.NoError(t, uow.BeginTransaction(ctx))
	require.NoError(t, uow.Stocks().Add(ctx, &entity.Stock{ProductID: p.ID, WarehouseID: w.ID, Quantity: 10}))
	_, err = uow.SaveChanges(ctx)
	require.NoError(t, err)

	// Visible dentro de la transacción, no fuera.
	inTx, err := uow.Stocks().Get(ctx, p.ID, w.ID)
	require.NoError(t, err)
	require.NotNil(t, inTx)

	other, err := store.New(ctx)
	require.NoError(t, err)
	defer other.Close()
	outside, err := other.Stocks().Get(ctx, p.ID, w.ID)
	require.NoError(t, err)
	assert.Nil(t, outside)

	require.NoError(t, uow.RollbackTransaction(ctx))
	require.NoError(t, uow.RollbackTransaction(ctx), "rollback es idempotente")

	after, err := uow.Stocks().Get(ctx, p.ID, w.ID)
	require.NoError(t, err)
	assert.Nil(t, after)
}

func TestUnitOfWork_CommitPublica(t *testing.T) {
	store := memory.NewStore()
	p, w := seedPW(t, store)
	ctx := context.Background()

	uow, err := store.New(ctx)
	require.NoError(t, err)
	defer uow.Close()
	require.NoError(t, uow.BeginTransaction(ctx))
	s := &entity.Stock{ProductID: p.ID, WarehouseID: w.ID, Quantity: 10}
	require.NoError(t, uow.Stocks().Add(ctx, s))
	s.Quantity = 15 // apply lee la entidad en el flush
	require.NoError(t, uow.CommitTransaction(ctx))

	other, err := store.New(ctx)
	require.NoError(t, err)
	defer other.Close()
	got, err := other.Stocks().Get(ctx, p.ID, w.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(15), got.Quantity)
	assert.Equal(t, "P001", got.Product.Code)
	assert.Equal(t, "WH-A", got.Warehouse.Code)
}

func TestUnitOfWork_CommitFallidoRevierte(t *testing.T) {
	store := memory.NewStore()
	p, w := seedPW(t, store)
	ctx := context.Background()

	uow, err := store.New(ctx)
	require.NoError(t, err)
	defer uow.Close()
	require.NoError(t, uow.BeginTransaction(ctx))
	require.NoError(t, uow.Stocks().Add(ctx, &entity.Stock{ProductID: p.ID, WarehouseID: w.ID, Quantity: 10}))
	require.NoError(t, uow.Stocks().Add(ctx, &entity.Stock{ProductID: p.ID, WarehouseID: w.ID, Quantity: -1}))

	assert.ErrorIs(t, uow.CommitTransaction(ctx), domain.ErrInvalidInput)

	// La transacción quedó cerrada: se puede abrir otra sin bloquear.
	ctx2, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	other, err := store.New(ctx2)
	require.NoError(t, err)
	defer other.Close()
	require.NoError(t, other.BeginTransaction(ctx2))
	got, err := other.Stocks().Get(ctx2, p.ID, w.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "ningún cambio de la transacción fallida persiste")
}

func TestUnitOfWork_CloseRevierteYEsIdempotente(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	uow, err := store.New(ctx)
	require.NoError(t, err)
	require.NoError(t, uow.BeginTransaction(ctx))
	require.NoError(t, uow.Close())
	require.NoError(t, uow.Close())

	// El permiso de escritura fue liberado.
	ctx2, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	other, err := store.New(ctx2)
	require.NoError(t, err)
	defer other.Close()
	assert.NoError(t, other.BeginTransaction(ctx2))
}

func TestUnitOfWork_BeginEsperaTransaccionAbierta(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	first, err := store.New(ctx)
	require.NoError(t, err)
	defer first.Close()
	require.NoError(t, first.BeginTransaction(ctx))

	second, err := store.New(ctx)
	require.NoError(t, err)
	defer second.Close()
	ctx2, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, second.BeginTransaction(ctx2), context.DeadlineExceeded)
}

func TestRepositories_Restricciones(t *testing.T) {
	store := memory.NewStore()
	p, w := seedPW(t, store)
	ctx := context.Background()

	t.Run("codigo de producto duplicado", func(t *testing.T) {
		uow, err := store.New(ctx)
		require.NoError(t, err)
		defer uow.Close()
		require.NoError(t, uow.Products().Add(ctx, &entity.Product{Code: "P001", Description: "Otro"}))
		_, err = uow.SaveChanges(ctx)
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("codigo de bodega duplicado", func(t *testing.T) {
		uow, err := store.New(ctx)
		require.NoError(t, err)
		defer uow.Close()
		require.NoError(t, uow.Warehouses().Add(ctx, &entity.Warehouse{Code: "WH-A", Name: "Otra"}))
		_, err = uow.SaveChanges(ctx)
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("stock con producto inexistente", func(t *testing.T) {
		uow, err := store.New(ctx)
		require.NoError(t, err)
		defer uow.Close()
		require.NoError(t, uow.Stocks().Add(ctx, &entity.Stock{ProductID: 999, WarehouseID: w.ID, Quantity: 1}))
		_, err = uow.SaveChanges(ctx)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("fila de stock duplicada", func(t *testing.T) {
		uow, err := store.New(ctx)
		require.NoError(t, err)
		defer uow.Close()
		require.NoError(t, uow.Stocks().Add(ctx, &entity.Stock{ProductID: p.ID, WarehouseID: w.ID, Quantity: 1}))
		_, err = uow.SaveChanges(ctx)
		require.NoError(t, err)

		require.NoError(t, uow.Stocks().Add(ctx, &entity.Stock{ProductID: p.ID, WarehouseID: w.ID, Quantity: 2}))
		_, err = uow.SaveChanges(ctx)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestStockFind_FiltraPorProductoYBodega(t *testing.T) {
	store := memory.NewStore()
	p, w := seedPW(t, store)
	ctx := context.Background()

	uow, err := store.New(ctx)
	require.NoError(t, err)
	defer uow.Close()
	w2 := &entity.Warehouse{Code: "WH-B", Name: "Bodega B"}
	require.NoError(t, uow.Warehouses().Add(ctx, w2))
	_, err = uow.SaveChanges(ctx)
	require.NoError(t, err)
	require.NoError(t, uow.Stocks().Add(ctx, &entity.Stock{ProductID: p.ID, WarehouseID: w.ID, Quantity: 1}))
	require.NoError(t, uow.Stocks().Add(ctx, &entity.Stock{ProductID: p.ID, WarehouseID: w2.ID, Quantity: 2}))
	_, err = uow.SaveChanges(ctx)
	require.NoError(t, err)

	byProduct, err := uow.Stocks().Find(ctx, entity.StockFilter{ProductID: p.ID})
	require.NoError(t, err)
	assert.Len(t, byProduct, 2)

	byWarehouse, err := uow.Stocks().Find(ctx, entity.StockFilter{WarehouseID: w2.ID})
	require.NoError(t, err)
	require.Len(t, byWarehouse, 1)
	assert.Equal(t, int64(2), byWarehouse[0].Quantity)
}
