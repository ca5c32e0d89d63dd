package entity

// Coded lo implementan las entidades con código de negocio único (Product, Warehouse).
// Los repositorios solo exponen GetByCode para tipos que lo implementan.
type Coded interface {
	BusinessCode() string
}
