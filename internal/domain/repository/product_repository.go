package repository

import "github.com/jhoicas/stock-ledger/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	CodeRepository[entity.Product, entity.ProductFilter]
}
