package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

// StockHandler expone entradas de stock, consultas y órdenes de transferencia.
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// AddStock godoc
// @Summary      Agregar stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStockRequest  true  "productCode, warehouseCode, quantity"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) AddStock(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	if err := h.uc.AddStock(c.UserContext(), in.ProductCode, in.WarehouseCode, in.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "stock agregado"})
}

// GetStock godoc
// @Summary      Consultar stock
// @Description  Con productCode lista el producto por bodega; si no, con warehouseCode lista la bodega; sin filtros lista todo.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productCode    query  string  false  "Código de producto"
// @Param        warehouseCode  query  string  false  "Código de bodega"
// @Success      200  {array}   dto.StockView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var (
		out []dto.StockView
		err error
	)
	switch {
	case c.Query("productCode") != "":
		out, err = h.uc.GetStockByProductCode(ctx, c.Query("productCode"))
	case c.Query("warehouseCode") != "":
		out, err = h.uc.GetStockByWarehouseCode(ctx, c.Query("warehouseCode"))
	default:
		out, err = h.uc.GetAllStock(ctx)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateOrder godoc
// @Summary      Transferir stock entre bodegas
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferStockRequest  true  "Producto, bodegas y cantidad"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *StockHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.TransferStockRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	err := h.uc.TransferStock(c.UserContext(), in.ProductCode, in.SourceWarehouseCode, in.DestinationWarehouseCode, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "stock transferido"})
}
