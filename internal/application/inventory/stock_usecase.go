package inventory

import (
	"context"
	"fmt"
	"math"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// StockUseCase casos de uso del libro de stock: entradas, consultas y transferencias entre bodegas.
// Cada operación usa su propia unidad de trabajo.
type StockUseCase struct {
	uowFactory repository.UnitOfWorkFactory
	log        zerolog.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(uowFactory repository.UnitOfWorkFactory, log zerolog.Logger) *StockUseCase {
	return &StockUseCase{uowFactory: uowFactory, log: log}
}

// AddStock suma quantity al stock del producto en la bodega, creando la fila si no existe.
// Es una escritura de una sola fila: no abre transacción explícita.
// El signo de quantity se valida en la frontera HTTP.
func (uc *StockUseCase) AddStock(ctx context.Context, productCode, warehouseCode string, quantity int64) (err error) {
	ctx, span := tracer.Start(ctx, "inventory.AddStock", trace.WithAttributes(
		attribute.String("product.code", productCode),
		attribute.String("warehouse.code", warehouseCode),
		attribute.Int64("quantity", quantity),
	))
	defer func() { endSpan(span, err) }()

	uow, err := uc.uowFactory.New(ctx)
	if err != nil {
		return err
	}
	defer uc.release(uow)

	product, err := findProduct(ctx, uow, productCode)
	if err != nil {
		return err
	}
	warehouse, err := findWarehouse(ctx, uow, warehouseCode, "bodega")
	if err != nil {
		return err
	}

	stock, err := uow.Stocks().Get(ctx, product.ID, warehouse.ID)
	if err != nil {
		return err
	}
	if stock != nil {
		if err := increment(stock, quantity); err != nil {
			return err
		}
		if err := uow.Stocks().Update(ctx, stock); err != nil {
			return err
		}
	} else {
		stock = &entity.Stock{
			ProductID:   product.ID,
			WarehouseID: warehouse.ID,
			Quantity:    quantity,
			Product:     product,
			Warehouse:   warehouse,
		}
		if err := uow.Stocks().Add(ctx, stock); err != nil {
			return err
		}
	}

	if _, err := uow.SaveChanges(ctx); err != nil {
		return err
	}
	uc.log.Debug().
		Str("product", productCode).
		Str("warehouse", warehouseCode).
		Int64("quantity", stock.Quantity).
		Msg("stock agregado")
	return nil
}

// GetStockByProductCode lista el stock del producto en cada bodega (con código y nombre de bodega).
func (uc *StockUseCase) GetStockByProductCode(ctx context.Context, productCode string) (views []dto.StockView, err error) {
	ctx, span := tracer.Start(ctx, "inventory.GetStockByProductCode",
		trace.WithAttributes(attribute.String("product.code", productCode)))
	defer func() { endSpan(span, err) }()

	uow, err := uc.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer uc.release(uow)

	product, err := findProduct(ctx, uow, productCode)
	if err != nil {
		return nil, err
	}
	stocks, err := uow.Stocks().Find(ctx, entity.StockFilter{ProductID: product.ID})
	if err != nil {
		return nil, err
	}
	views = make([]dto.StockView, 0, len(stocks))
	for _, s := range stocks {
		v := dto.StockView{ProductCode: product.Code, Quantity: s.Quantity}
		if s.Warehouse != nil {
			v.WarehouseCode = s.Warehouse.Code
			v.WarehouseName = s.Warehouse.Name
		}
		views = append(views, v)
	}
	return views, nil
}

// GetStockByWarehouseCode lista el stock de la bodega por producto (con código y descripción).
func (uc *StockUseCase) GetStockByWarehouseCode(ctx context.Context, warehouseCode string) (views []dto.StockView, err error) {
	ctx, span := tracer.Start(ctx, "inventory.GetStockByWarehouseCode",
		trace.WithAttributes(attribute.String("warehouse.code", warehouseCode)))
	defer func() { endSpan(span, err) }()

	uow, err := uc.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer uc.release(uow)

	warehouse, err := findWarehouse(ctx, uow, warehouseCode, "bodega")
	if err != nil {
		return nil, err
	}
	stocks, err := uow.Stocks().Find(ctx, entity.StockFilter{WarehouseID: warehouse.ID})
	if err != nil {
		return nil, err
	}
	views = make([]dto.StockView, 0, len(stocks))
	for _, s := range stocks {
		v := dto.StockView{WarehouseCode: warehouse.Code, Quantity: s.Quantity}
		if s.Product != nil {
			v.ProductCode = s.Product.Code
			v.ProductDescription = s.Product.Description
		}
		views = append(views, v)
	}
	return views, nil
}

// GetAllStock lista todas las filas de stock con códigos de producto y bodega. El orden no está garantizado.
func (uc *StockUseCase) GetAllStock(ctx context.Context) (views []dto.StockView, err error) {
	ctx, span := tracer.Start(ctx, "inventory.GetAllStock")
	defer func() { endSpan(span, err) }()

	uow, err := uc.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer uc.release(uow)

	stocks, err := uow.Stocks().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	views = make([]dto.StockView, 0, len(stocks))
	for _, s := range stocks {
		v := dto.StockView{Quantity: s.Quantity}
		if s.Product != nil {
			v.ProductCode = s.Product.Code
		}
		if s.Warehouse != nil {
			v.WarehouseCode = s.Warehouse.Code
		}
		views = append(views, v)
	}
	return views, nil
}

func (uc *StockUseCase) release(uow repository.UnitOfWork) {
	if err := uow.Close(); err != nil {
		uc.log.Warn().Err(err).Msg("cerrar unidad de trabajo")
	}
}

func findProduct(ctx context.Context, uow repository.UnitOfWork, code string) (*entity.Product, error) {
	product, err := uow.Products().GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto '%s': %w", code, domain.ErrNotFound)
	}
	return product, nil
}

// findWarehouse resuelve la bodega por código; label distingue origen/destino en el mensaje.
func findWarehouse(ctx context.Context, uow repository.UnitOfWork, code, label string) (*entity.Warehouse, error) {
	warehouse, err := uow.Warehouses().GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, fmt.Errorf("%s '%s': %w", label, code, domain.ErrNotFound)
	}
	return warehouse, nil
}

// increment suma quantity a la fila; rechaza el desbordamiento de int64.
func increment(s *entity.Stock, quantity int64) error {
	if quantity > 0 && s.Quantity > math.MaxInt64-quantity {
		return fmt.Errorf("%w: la cantidad excede el máximo permitido", domain.ErrInvalidInput)
	}
	s.Quantity += quantity
	return nil
}
