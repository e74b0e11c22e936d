package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bymretail/inventario-api/internal/application/dto"
	"github.com/bymretail/inventario-api/internal/application/inventory"
)

// InventoryHandler maneja entradas, carrito de salidas y consultas de stock
// (protegido).
type InventoryHandler struct {
	receive *inventory.ReceiveStockUseCase
	cart    *inventory.CartUseCase
	reports *inventory.ReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	receive *inventory.ReceiveStockUseCase,
	cart *inventory.CartUseCase,
	reports *inventory.ReportUseCase,
) *InventoryHandler {
	return &InventoryHandler{receive: receive, cart: cart, reports: reports}
}

// RegisterEntry godoc
// @Summary      Registrar entrada de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterEntryRequest  true  "code, name, brand, quantity, expiry_date, cost_price, sale_price, minimum_stock"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/entries [post]
func (h *InventoryHandler) RegisterEntry(c *fiber.Ctx) error {
	var in dto.RegisterEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.receive.Receive(c.Context(), inventory.ReceiveInput{
		Code:         in.Code,
		Name:         in.Name,
		Brand:        in.Brand,
		Quantity:     in.Quantity,
		ExpiryDate:   in.ExpiryDate,
		CostPrice:    in.CostPrice,
		SalePrice:    in.SalePrice,
		MinimumStock: in.MinimumStock,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.EntryResponse{
		Code:       in.Code,
		ExpiryDate: result.Lot.ExpiryDate,
		Quantity:   result.Lot.Quantity,
		Merged:     result.Merged,
		NewProduct: result.NewProduct,
	})
}

// ScanCart godoc
// @Summary      Escanear un código hacia el carrito de salidas
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "token: codigo o N*codigo"
// @Success      200   {object}  dto.CartLineDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/cart/scan [post]
func (h *InventoryHandler) ScanCart(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	code, pending, err := h.cart.Scan(c.Context(), in.Token)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CartLineDTO{Code: code, Quantity: pending})
}

// GetCart godoc
// @Summary      Estado actual del carrito de salidas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/inventory/cart [get]
func (h *InventoryHandler) GetCart(c *fiber.Ctx) error {
	lines, total, err := h.cart.Lines(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CartLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.CartLineDTO{Code: l.Code, Name: l.Name, Quantity: l.Quantity})
	}
	return c.JSON(dto.CartResponse{Lines: out, TotalUnits: total})
}

// ClearCart godoc
// @Summary      Abandonar el carrito sin registrar salidas
// @Tags         inventory
// @Security     Bearer
// @Success      204
// @Router       /api/inventory/cart [delete]
func (h *InventoryHandler) ClearCart(c *fiber.Ctx) error {
	h.cart.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}

// CommitCart godoc
// @Summary      Confirmar el carrito y registrar las salidas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DispensedSliceDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/cart/commit [post]
func (h *InventoryHandler) CommitCart(c *fiber.Ctx) error {
	dispensed, err := h.cart.Commit(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	if dispensed == nil {
		dispensed = []dto.DispensedSliceDTO{}
	}
	return c.JSON(fiber.Map{"message": "salidas registradas", "dispensed": dispensed})
}

// ListInventory godoc
// @Summary      Listado de inventario (una fila por lote)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Búsqueda por código, nombre o marca (insensible a acentos)"
// @Success      200  {array}  dto.InventoryRowDTO
// @Router       /api/inventory [get]
func (h *InventoryHandler) ListInventory(c *fiber.Ctx) error {
	rows, err := h.reports.ListInventory(c.Context(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "rows": rows})
}

// GetStock godoc
// @Summary      Stock total de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código del producto"
// @Success      200   {object}  map[string]interface{}
// @Router       /api/inventory/{code}/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	code := c.Params("code")
	total, err := h.reports.TotalStock(c.Context(), code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"code": code, "total_stock": total})
}

// ListProducts godoc
// @Summary      Maestros de producto ordenados por nombre
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductDTO
// @Router       /api/products [get]
func (h *InventoryHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.reports.ListProducts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(products), "products": products})
}
