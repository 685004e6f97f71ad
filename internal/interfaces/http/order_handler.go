package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/application/ordering"
	"github.com/jhoicas/cafe-pos-api/internal/application/usecase"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// OrderHandler menú del kiosco, productos de caja y órdenes.
type OrderHandler struct {
	orders   *ordering.OrderUseCase
	receipts *ordering.ReceiptUseCase
	menu     *usecase.MenuUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(orders *ordering.OrderUseCase, receipts *ordering.ReceiptUseCase, menu *usecase.MenuUseCase) *OrderHandler {
	return &OrderHandler{orders: orders, receipts: receipts, menu: menu}
}

// KioskMenu godoc
// @Summary      Menú del kiosco
// @Description  Productos disponibles que se pueden preparar con el inventario actual.
// @Tags         kiosk
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/kiosk/menu [get]
func (h *OrderHandler) KioskMenu(c *fiber.Ctx) error {
	out, err := h.menu.KioskMenu(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateKioskOrder godoc
// @Summary      Crear orden desde el kiosco
// @Tags         kiosk
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Líneas y método de pago"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/kiosk/orders [post]
func (h *OrderHandler) CreateKioskOrder(c *fiber.Ctx) error {
	return h.create(c, entity.OrderChannelKiosk)
}

// CashierProducts godoc
// @Summary      Productos para la caja
// @Description  Todos los productos no archivados con disponibilidad y receta.
// @Tags         cashier
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/cashier/products [get]
func (h *OrderHandler) CashierProducts(c *fiber.Ctx) error {
	out, err := h.menu.CashierProducts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateCashierOrder godoc
// @Summary      Crear orden desde la caja
// @Tags         cashier
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Líneas y método de pago"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/cashier/orders [post]
func (h *OrderHandler) CreateCashierOrder(c *fiber.Ctx) error {
	return h.create(c, entity.OrderChannelCashier)
}

// ListOrders godoc
// @Summary      Órdenes recientes
// @Description  Consola de caja: últimas órdenes con sus líneas, más reciente primero.
// @Tags         cashier
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de órdenes (50 por defecto, tope 200)"
// @Success      200    {object}  dto.OrderListResponse
// @Router       /api/cashier/orders [get]
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	out, err := h.orders.ListRecent(c.UserContext(), c.QueryInt("limit", ordering.DefaultRecentLimit))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OrderListResponse{Orders: out, Count: len(out)})
}

// UpdateOrderStatus godoc
// @Summary      Cambiar estado de una orden
// @Description  pending, preparing, ready, completed o cancelled. Cancelar no repone inventario.
// @Tags         cashier
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Orden y nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cashier/orders [patch]
func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orders.UpdateStatus(c.UserContext(), in, ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *OrderHandler) create(c *fiber.Ctx, channel string) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orders.CreateOrder(c.UserContext(), channel, in, ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByNumber godoc
// @Summary      Consultar orden por número
// @Tags         orders
// @Produce      json
// @Param        number  path  string  true  "Número de orden (ORD-123456)"
// @Success      200     {object}  dto.OrderResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/orders/{number} [get]
func (h *OrderHandler) GetByNumber(c *fiber.Ctx) error {
	out, err := h.orders.GetByNumber(c.UserContext(), c.Params("number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Recibo PDF de la orden
// @Tags         orders
// @Produce      application/pdf
// @Param        number  path  string  true  "Número de orden"
// @Success      200     {file}    binary
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/orders/{number}/receipt.pdf [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	doc, filename, err := h.receipts.DownloadReceiptPDF(c.UserContext(), c.Params("number"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(doc)
}
