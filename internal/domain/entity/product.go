package entity

import (
	"fmt"
	"unicode/utf8"
)

// Límites de longitud de Product.
const (
	ProductCodeMaxLen        = 50
	ProductDescriptionMaxLen = 200
)

// Product representa un producto del inventario. Code es único y no cambia después de crearse.
type Product struct {
	ID          int64
	Code        string
	Description string
}

var _ Coded = Product{}

// BusinessCode devuelve el código de negocio del producto.
func (p Product) BusinessCode() string { return p.Code }

// Validate verifica los campos obligatorios y sus longitudes.
func (p *Product) Validate() error {
	if p.Code == "" || utf8.RuneCountInString(p.Code) > ProductCodeMaxLen {
		return fmt.Errorf("code debe tener entre 1 y %d caracteres", ProductCodeMaxLen)
	}
	if p.Description == "" || utf8.RuneCountInString(p.Description) > ProductDescriptionMaxLen {
		return fmt.Errorf("description debe tener entre 1 y %d caracteres", ProductDescriptionMaxLen)
	}
	return nil
}

// ProductFilter criterios de búsqueda para Find. Campos vacíos no filtran.
type ProductFilter struct {
	Codes []string
}

// Match evalúa el filtro en memoria.
func (f ProductFilter) Match(p *Product) bool {
	return len(f.Codes) == 0 || containsString(f.Codes, p.Code)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
