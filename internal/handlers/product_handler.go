package handlers

import (
	"errors"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	likes   *services.LikeService
	log     *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, likes *services.LikeService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{service: service, likes: likes, log: log}
}

// RegisterRoutes registers the public product routes. Liking requires auth.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:slug", h.HandleGetProduct)
	productRoutes.Post("/:slug/like", auth, h.HandleLikeProduct)
}

// RegisterAdminRoutes registers the staff product routes.
func (h *ProductHandler) RegisterAdminRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:slug", h.HandleUpdateProduct)
	productRoutes.Delete("/:slug", h.HandleDeleteProduct)
}

// ProductRequest is the body of product create and update calls.
type ProductRequest struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Discount    int             `json:"discount"`
	Quantity    int             `json:"quantity"`
	CategoryID  *uint           `json:"category_id"`
}

func (r ProductRequest) model() *models.Product {
	return &models.Product{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Price:       r.Price,
		Image:       r.Image,
		Discount:    r.Discount,
		Quantity:    r.Quantity,
		CategoryID:  r.CategoryID,
	}
}

// HandleGetProducts lists products, optionally filtered by ?q=.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.SearchProducts(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, h.log, err, "retrieve products")
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, h.log, err, "retrieve product")
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	product := req.model()
	if err := h.service.CreateProduct(c.UserContext(), product); err != nil {
		return respondError(c, h.log, err, "create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	product, err := h.service.UpdateProduct(c.UserContext(), c.Params("slug"), req.model())
	if err != nil {
		return respondError(c, h.log, err, "update product")
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if err := h.service.DeleteProduct(c.UserContext(), slug); err != nil {
		return respondError(c, h.log, err, "delete product")
	}
	return c.JSON(fiber.Map{"message": "Product " + slug + " deleted successfully"})
}

// HandleLikeProduct records a like by the authenticated user.
func (h *ProductHandler) HandleLikeProduct(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)
	likes, err := h.likes.Like(c.UserContext(), userID, c.Params("slug"))
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"message": MsgLiked, "likes": likes})
	case errors.Is(err, services.ErrAlreadyLiked):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": MsgAlreadyLiked, "likes": likes})
	default:
		return respondError(c, h.log, err, "like product")
	}
}
