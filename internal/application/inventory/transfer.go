package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TransferStock mueve quantity del producto de la bodega origen a la destino en una sola transacción.
// Resta en origen y suma en destino (creando la fila destino en 0 si no existe); cualquier error
// después de abrir la transacción la revierte y se devuelve sin modificar.
// Las filas de stock quedan bloqueadas (origen y luego destino) hasta el Commit.
func (uc *StockUseCase) TransferStock(ctx context.Context, productCode, sourceWarehouseCode, destWarehouseCode string, quantity int64) (err error) {
	if sourceWarehouseCode == destWarehouseCode {
		return fmt.Errorf("%w: la bodega origen y destino no pueden ser la misma", domain.ErrInvalidInput)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
	}

	ctx, span := tracer.Start(ctx, "inventory.TransferStock", trace.WithAttributes(
		attribute.String("product.code", productCode),
		attribute.String("warehouse.source", sourceWarehouseCode),
		attribute.String("warehouse.destination", destWarehouseCode),
		attribute.Int64("quantity", quantity),
	))
	defer func() { endSpan(span, err) }()

	uow, err := uc.uowFactory.New(ctx)
	if err != nil {
		return err
	}
	defer uc.release(uow)

	if err := uow.BeginTransaction(ctx); err != nil {
		return err
	}
	if err := uc.transfer(ctx, uow, productCode, sourceWarehouseCode, destWarehouseCode, quantity); err != nil {
		// El rollback debe ejecutarse aunque ctx ya esté cancelado.
		if rbErr := uow.RollbackTransaction(context.WithoutCancel(ctx)); rbErr != nil {
			uc.log.Error().Err(rbErr).Msg("rollback de transferencia")
		}
		uc.log.Warn().Err(err).
			Str("product", productCode).
			Str("from", sourceWarehouseCode).
			Str("to", destWarehouseCode).
			Int64("quantity", quantity).
			Msg("transferencia revertida")
		return err
	}

	uc.log.Info().
		Str("product", productCode).
		Str("from", sourceWarehouseCode).
		Str("to", destWarehouseCode).
		Int64("quantity", quantity).
		Msg("transferencia confirmada")
	return nil
}

func (uc *StockUseCase) transfer(ctx context.Context, uow repository.UnitOfWork, productCode, sourceCode, destCode string, quantity int64) error {
	product, err := findProduct(ctx, uow, productCode)
	if err != nil {
		return err
	}
	source, err := findWarehouse(ctx, uow, sourceCode, "bodega origen")
	if err != nil {
		return err
	}
	dest, err := findWarehouse(ctx, uow, destCode, "bodega destino")
	if err != nil {
		return err
	}

	stocks := uow.Stocks()
	origin, err := stocks.Get(ctx, product.ID, source.ID)
	if err != nil {
		return err
	}
	if origin == nil || origin.Quantity < quantity {
		var available int64
		if origin != nil {
			available = origin.Quantity
		}
		return &domain.InsufficientStockError{Available: available, Requested: quantity}
	}

	target, err := stocks.Get(ctx, product.ID, dest.ID)
	if err != nil {
		return err
	}
	if target == nil {
		target = &entity.Stock{
			ProductID:   product.ID,
			WarehouseID: dest.ID,
			Quantity:    0,
			Product:     product,
			Warehouse:   dest,
		}
		if err := stocks.Add(ctx, target); err != nil {
			return err
		}
	}

	if err := increment(target, quantity); err != nil {
		return err
	}
	origin.Quantity -= quantity
	if err := stocks.Update(ctx, origin); err != nil {
		return err
	}
	if err := stocks.Update(ctx, target); err != nil {
		return err
	}

	return uow.CommitTransaction(ctx)
}
