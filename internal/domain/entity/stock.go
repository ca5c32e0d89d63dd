package entity

import "fmt"

// Stock es la línea del libro de inventario de un producto en una bodega.
// La clave es (ProductID, WarehouseID). Product y Warehouse se cargan en cada lectura.
type Stock struct {
	ProductID   int64
	WarehouseID int64
	Quantity    int64

	Product   *Product
	Warehouse *Warehouse
}

// Validate exige quantity >= 0 y claves foráneas asignadas; se llama antes de cada escritura.
func (s *Stock) Validate() error {
	if s.ProductID <= 0 || s.WarehouseID <= 0 {
		return fmt.Errorf("stock sin producto o bodega")
	}
	if s.Quantity < 0 {
		return fmt.Errorf("quantity no puede ser negativa: %d", s.Quantity)
	}
	return nil
}

// StockFilter criterios de búsqueda para Find. Cero no filtra.
type StockFilter struct {
	ProductID   int64
	WarehouseID int64
}

// Match evalúa el filtro en memoria.
func (f StockFilter) Match(s *Stock) bool {
	if f.ProductID != 0 && s.ProductID != f.ProductID {
		return false
	}
	if f.WarehouseID != 0 && s.WarehouseID != f.WarehouseID {
		return false
	}
	return true
}
