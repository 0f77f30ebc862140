package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
	log     *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the public order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/orders", h.HandleCreateOrder)
}

// RegisterAdminRoutes registers the staff order routes.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// OrderRequest is the JSON body of an order. Quantity stays a string so that it is validated the
// same way as the storefront form.
type OrderRequest struct {
	ProductSlug   string `json:"product_slug"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Quantity      string `json:"quantity"`
}

// HandleCreateOrder places an order and answers with the confirmation or a {kind, message} error.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req OrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	confirmation, err := h.service.PlaceOrder(c.UserContext(), req.ProductSlug, req.CustomerName, req.CustomerPhone, req.Quantity)
	if err != nil {
		kind, message, status := orderError(err)
		if status == fiber.StatusInternalServerError {
			h.log.Error("failed to place order", zap.String("product", req.ProductSlug), zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"kind": kind, "message": message})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      MsgOrderPlaced,
		"confirmation": confirmation,
	})
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid order ID"})
	}
	order, err := h.service.GetOrder(c.UserContext(), uint(id))
	if err != nil {
		return respondError(c, h.log, err, "retrieve order")
	}
	return c.JSON(order)
}
