package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

func TestProductUseCase_CreateYConsulta(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore())
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{Code: "P001", Description: "Laptop"})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.ProductResponse{*created}, list)
}

func TestProductUseCase_CodigoDuplicadoNoInserta(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Code: "P001", Description: "Laptop"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "P001", Description: "Otro"})
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "P001")

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Laptop", list[0].Description)
}

func TestProductUseCase_NoEncontrado(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore())

	_, err := uc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_DatosInvalidos(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore())

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Code: "P001"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWarehouseUseCase_CreateYDuplicado(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(memory.NewStore())
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateWarehouseRequest{Code: "WH-A", Name: "Bodega A"})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bodega A", got.Name)

	_, err = uc.Create(ctx, dto.CreateWarehouseRequest{Code: "WH-A", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.GetByID(ctx, created.ID+1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSeed_SoloTablasVacias(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	res, err := usecase.Seed(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, int64(len(usecase.DefaultProducts)), res.Products)
	assert.Equal(t, int64(len(usecase.DefaultWarehouses)), res.Warehouses)

	again, err := usecase.Seed(ctx, store)
	require.NoError(t, err)
	assert.Zero(t, again.Products)
	assert.Zero(t, again.Warehouses)

	products, err := usecase.NewProductUseCase(store).List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 10)
	warehouses, err := usecase.NewWarehouseUseCase(store).List(ctx)
	require.NoError(t, err)
	assert.Len(t, warehouses, 3)
}
