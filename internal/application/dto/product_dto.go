package dto

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Code        string `json:"code" validate:"required,max=50"`
	Description string `json:"description" validate:"required,max=200"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
}
