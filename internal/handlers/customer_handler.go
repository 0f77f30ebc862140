package handlers

import (
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CustomerHandler handles staff requests for customer records.
type CustomerHandler struct {
	service *services.CustomerService
	log     *zap.Logger
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *services.CustomerService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{service: service, log: log}
}

func (h *CustomerHandler) RegisterAdminRoutes(router fiber.Router) {
	customerRoutes := router.Group("/customers")
	customerRoutes.Get("/", h.HandleGetCustomers)
	customerRoutes.Get("/:id", h.HandleGetCustomer)
	customerRoutes.Post("/", h.HandleCreateCustomer)
	customerRoutes.Put("/:id", h.HandleUpdateCustomer)
	customerRoutes.Delete("/:id", h.HandleDeleteCustomer)
}

// CustomerRequest is the body of customer create and update calls. The VAT number is assigned by the server.
type CustomerRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	BillingAddress string `json:"billing_address"`
	Image          string `json:"image"`
}

func (r CustomerRequest) model() *models.Customer {
	return &models.Customer{
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		BillingAddress: r.BillingAddress,
		Image:          r.Image,
	}
}

func customerID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid customer ID"})
}

func (h *CustomerHandler) HandleGetCustomers(c *fiber.Ctx) error {
	customers, err := h.service.GetAllCustomers(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "retrieve customers")
	}
	return c.JSON(customers)
}

func (h *CustomerHandler) HandleGetCustomer(c *fiber.Ctx) error {
	id, ok := customerID(c)
	if !ok {
		return invalidID(c)
	}
	customer, err := h.service.GetCustomer(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err, "retrieve customer")
	}
	return c.JSON(customer)
}

func (h *CustomerHandler) HandleCreateCustomer(c *fiber.Ctx) error {
	var req CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	customer := req.model()
	if err := h.service.CreateCustomer(c.UserContext(), customer); err != nil {
		return respondError(c, h.log, err, "create customer")
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

func (h *CustomerHandler) HandleUpdateCustomer(c *fiber.Ctx) error {
	id, ok := customerID(c)
	if !ok {
		return invalidID(c)
	}
	var req CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	customer, err := h.service.UpdateCustomer(c.UserContext(), id, req.model())
	if err != nil {
		return respondError(c, h.log, err, "update customer")
	}
	return c.JSON(customer)
}

func (h *CustomerHandler) HandleDeleteCustomer(c *fiber.Ctx) error {
	id, ok := customerID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.service.DeleteCustomer(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err, "delete customer")
	}
	return c.JSON(fiber.Map{"message": "Customer deleted successfully"})
}
