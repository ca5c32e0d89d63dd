package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ProductUseCase casos de uso de productos: alta con código único, consulta y listado.
type ProductUseCase struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(uowFactory repository.UnitOfWorkFactory) *ProductUseCase {
	return &ProductUseCase{uowFactory: uowFactory}
}

// Create crea un nuevo producto. Devuelve ErrAlreadyExists si el código ya existe.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	uow, err := uc.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	repo := uow.Products()
	existing, err := repo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("producto '%s': %w", in.Code, domain.ErrAlreadyExists)
	}

	product := &entity.Product{Code: in.Code, Description: in.Description}
	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := repo.Add(ctx, product); err != nil {
		return nil, err
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Devuelve ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	uow, err := uc.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	product, err := uow.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return toProductResponse(product), nil
}

// List lista todos los productos.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	uow, err := uc.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	list, err := uow.Products().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Description: p.Description,
	}
}
