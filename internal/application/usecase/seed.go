package usecase

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// DefaultProducts catálogo inicial de productos.
var DefaultProducts = []entity.Product{
	{Code: "LAPTOP001", Description: "Dell XPS 15 Laptop"},
	{Code: "MOUSE001", Description: "Logitech MX Master 3 Mouse"},
	{Code: "KEYBOARD001", Description: "Mechanical Gaming Keyboard"},
	{Code: "MONITOR001", Description: "27-inch 4K Monitor"},
	{Code: "HEADSET001", Description: "Wireless Noise-Cancelling Headset"},
	{Code: "WEBCAM001", Description: "HD Webcam with Microphone"},
	{Code: "PRINTER001", Description: "Color Laser Printer"},
	{Code: "DESK001", Description: "Adjustable Standing Desk"},
	{Code: "CHAIR001", Description: "Ergonomic Office Chair"},
	{Code: "TABLET001", Description: "iPad Pro 12.9 inch"},
}

// DefaultWarehouses bodegas iniciales.
var DefaultWarehouses = []entity.Warehouse{
	{Code: "WH-MAIN", Name: "Main Warehouse - New York"},
	{Code: "WH-WEST", Name: "West Coast Warehouse - Los Angeles"},
	{Code: "WH-SOUTH", Name: "Southern Warehouse - Atlanta"},
}

// SeedResult cantidad de filas insertadas por tabla.
type SeedResult struct {
	Products   int64
	Warehouses int64
}

// Seed inserta el catálogo y las bodegas por defecto solo en las tablas vacías.
func Seed(ctx context.Context, uowFactory repository.UnitOfWorkFactory) (SeedResult, error) {
	var res SeedResult
	uow, err := uowFactory.New(ctx)
	if err != nil {
		return res, err
	}
	defer uow.Close()

	products, err := uow.Products().GetAll(ctx)
	if err != nil {
		return res, err
	}
	if len(products) == 0 {
		for _, p := range DefaultProducts {
			if err := uow.Products().Add(ctx, &p); err != nil {
				return res, err
			}
		}
		if res.Products, err = uow.SaveChanges(ctx); err != nil {
			return res, err
		}
	}

	warehouses, err := uow.Warehouses().GetAll(ctx)
	if err != nil {
		return res, err
	}
	if len(warehouses) == 0 {
		for _, w := range DefaultWarehouses {
			if err := uow.Warehouses().Add(ctx, &w); err != nil {
				return res, err
			}
		}
		if res.Warehouses, err = uow.SaveChanges(ctx); err != nil {
			return res, err
		}
	}
	return res, nil
}
