package entity

import (
	"fmt"
	"unicode/utf8"
)

// Límites de longitud de Warehouse.
const (
	WarehouseCodeMaxLen = 50
	WarehouseNameMaxLen = 100
)

// Warehouse representa una bodega donde se almacena inventario (multi-bodega).
type Warehouse struct {
	ID   int64
	Code string
	Name string
}

var _ Coded = Warehouse{}

// BusinessCode devuelve el código de negocio de la bodega.
func (w Warehouse) BusinessCode() string { return w.Code }

// Validate verifica los campos obligatorios y sus longitudes.
func (w *Warehouse) Validate() error {
	if w.Code == "" || utf8.RuneCountInString(w.Code) > WarehouseCodeMaxLen {
		return fmt.Errorf("code debe tener entre 1 y %d caracteres", WarehouseCodeMaxLen)
	}
	if w.Name == "" || utf8.RuneCountInString(w.Name) > WarehouseNameMaxLen {
		return fmt.Errorf("name debe tener entre 1 y %d caracteres", WarehouseNameMaxLen)
	}
	return nil
}

// WarehouseFilter criterios de búsqueda para Find. Campos vacíos no filtran.
type WarehouseFilter struct {
	Codes []string
}

// Match evalúa el filtro en memoria.
func (f WarehouseFilter) Match(w *Warehouse) bool {
	return len(f.Codes) == 0 || containsString(f.Codes, w.Code)
}
