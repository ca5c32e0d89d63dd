package dto

// AddStockRequest entrada para agregar stock a un producto en una bodega.
type AddStockRequest struct {
	ProductCode   string `json:"productCode" validate:"required"`
	WarehouseCode string `json:"warehouseCode" validate:"required"`
	Quantity      int64  `json:"quantity" validate:"required,min=1"`
}

// TransferStockRequest entrada para transferir stock entre bodegas (órdenes).
type TransferStockRequest struct {
	ProductCode              string `json:"productCode" validate:"required"`
	SourceWarehouseCode      string `json:"sourceWarehouseCode" validate:"required"`
	DestinationWarehouseCode string `json:"destinationWarehouseCode" validate:"required"`
	Quantity                 int64  `json:"quantity" validate:"required,min=1"`
}

// StockView proyección de una línea de stock con los datos de producto y bodega.
// Los campos opcionales dependen de la consulta: por producto trae WarehouseName,
// por bodega trae ProductDescription, el listado general solo los códigos.
type StockView struct {
	ProductCode        string `json:"productCode"`
	ProductDescription string `json:"productDescription,omitempty"`
	WarehouseCode      string `json:"warehouseCode"`
	WarehouseName      string `json:"warehouseName,omitempty"`
	Quantity           int64  `json:"quantity"`
}
