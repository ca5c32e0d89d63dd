package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// WarehouseUseCase casos de uso de bodegas. La restricción a rol Admin se aplica en el router.
type WarehouseUseCase struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(uowFactory repository.UnitOfWorkFactory) *WarehouseUseCase {
	return &WarehouseUseCase{uowFactory: uowFactory}
}

// Create crea una nueva bodega. Devuelve ErrAlreadyExists si el código ya existe.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	uow, err := uc.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	repo := uow.Warehouses()
	existing, err := repo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("bodega '%s': %w", in.Code, domain.ErrAlreadyExists)
	}

	warehouse := &entity.Warehouse{Code: in.Code, Name: in.Name}
	if err := warehouse.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := repo.Add(ctx, warehouse); err != nil {
		return nil, err
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID. Devuelve ErrNotFound si no existe.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id int64) (*dto.WarehouseResponse, error) {
	uow, err := uc.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	warehouse, err := uow.Warehouses().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, fmt.Errorf("bodega %d: %w", id, domain.ErrNotFound)
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista todas las bodegas.
func (uc *WarehouseUseCase) List(ctx context.Context) ([]dto.WarehouseResponse, error) {
	uow, err := uc.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	list, err := uow.Warehouses().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return items, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:   w.ID,
		Code: w.Code,
		Name: w.Name,
	}
}
