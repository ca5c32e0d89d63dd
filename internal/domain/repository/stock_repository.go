package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Cada lectura incluye Product y Warehouse. Dentro de una transacción las filas leídas quedan
// bloqueadas para update hasta el Commit o Rollback.
type StockRepository interface {
	Repository[entity.Stock, entity.StockFilter]
	Get(ctx context.Context, productID, warehouseID int64) (*entity.Stock, error)
}
