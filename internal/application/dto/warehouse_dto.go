package dto

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Code string `json:"code" validate:"required,max=50"`
	Name string `json:"name" validate:"required,max=100"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
