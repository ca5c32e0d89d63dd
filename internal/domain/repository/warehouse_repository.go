package repository

import "github.com/jhoicas/stock-ledger/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	CodeRepository[entity.Warehouse, entity.WarehouseFilter]
}
