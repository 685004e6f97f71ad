package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/application/ordering"
	"github.com/jhoicas/cafe-pos-api/internal/application/sales"
	"github.com/jhoicas/cafe-pos-api/internal/application/usecase"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// ProductHandler administración de productos del menú (admin).
type ProductHandler struct {
	products    *usecase.ProductUseCase
	menu        *usecase.MenuUseCase
	coordinator *sales.Coordinator
}

// NewProductHandler construye el handler.
func NewProductHandler(products *usecase.ProductUseCase, menu *usecase.MenuUseCase, coordinator *sales.Coordinator) *ProductHandler {
	return &ProductHandler{products: products, menu: menu, coordinator: coordinator}
}

// List godoc
// @Summary      Listar productos con disponibilidad
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        include_archived  query  bool  false  "Incluir archivados"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/admin/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.menu.AdminProducts(c.UserContext(), c.QueryBool("include_archived", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.products.Create(c.UserContext(), in, ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto con disponibilidad y receta
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductAvailabilityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.menu.ProductAvailability(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.products.Update(c.UserContext(), c.Params("id"), in, ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Archivar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id}/archive [post]
func (h *ProductHandler) Archive(c *fiber.Ctx) error {
	out, err := h.products.Archive(c.UserContext(), c.Params("id"), ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Restore godoc
// @Summary      Restaurar producto archivado
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id}/restore [post]
func (h *ProductHandler) Restore(c *fiber.Ctx) error {
	out, err := h.products.Restore(c.UserContext(), c.Params("id"), ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sell godoc
// @Summary      Venta manual de un producto
// @Description  Descuenta los insumos de la receta de forma atómica. Sin receta no afecta inventario.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID del producto"
// @Param        body  body  dto.SellRequest   true  "quantity"
// @Success      200   {object}  dto.SellResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id}/sell [post]
func (h *ProductHandler) Sell(c *fiber.Ctx) error {
	var in dto.SellRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Quantity <= 0 {
		return writeError(c, domain.ErrInvalidInput)
	}
	res, err := h.coordinator.ProcessSale(c.UserContext(), c.Params("id"), in.Quantity, sales.SaleContext{
		Channel: entity.OrderChannelAdmin,
		Actor:   ActorFrom(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	if !res.Committed() {
		return writeError(c, res.Rejection.Err())
	}
	line := res.Lines[0]
	return c.JSON(dto.SellResponse{
		ProductID:   line.Product.ID,
		ProductName: line.Product.Name,
		Quantity:    line.Quantity,
		Deductions:  ordering.ToDeductionResponses(res.Deductions),
	})
}

// AvailabilityReport godoc
// @Summary      Reporte de disponibilidad
// @Description  Productos con receta: si se pueden preparar, porciones máximas y motivo si están agotados.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AvailabilityReportItem
// @Router       /api/admin/products/availability [get]
func (h *ProductHandler) AvailabilityReport(c *fiber.Ctx) error {
	out, err := h.menu.AvailabilityReport(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
