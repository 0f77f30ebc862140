package handlers

import (
	"net/url"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StorefrontHandler serves the shopper-facing pages as JSON view models.
type StorefrontHandler struct {
	products   *services.ProductService
	categories *services.CategoryService
	orders     *services.OrderService
	log        *zap.Logger
}

// NewStorefrontHandler creates a new StorefrontHandler.
func NewStorefrontHandler(products *services.ProductService, categories *services.CategoryService, orders *services.OrderService, log *zap.Logger) *StorefrontHandler {
	return &StorefrontHandler{products: products, categories: categories, orders: orders, log: log}
}

// RegisterRoutes registers the storefront routes with the Fiber app.
func (h *StorefrontHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleIndex)
	router.Get("/products", h.HandleProducts)
	router.Get("/product/:slug", h.HandleProductDetail)
	router.Get("/category/:slug", h.HandleCategory)
	router.Get("/order/:slug", h.HandleOrderForm)
	router.Post("/order/:slug", h.HandlePlaceOrder)
}

// HandleIndex lists categories and products, filtered by ?q=. Flash messages are echoed back.
func (h *StorefrontHandler) HandleIndex(c *fiber.Ctx) error {
	query := c.Query("q")
	products, err := h.products.SearchProducts(c.UserContext(), query)
	if err != nil {
		return respondError(c, h.log, err, "list products")
	}
	categories, err := h.categories.GetAllCategories(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "list categories")
	}
	return c.JSON(fiber.Map{
		"query":      query,
		"message":    c.Query("message"),
		"categories": categories,
		"products":   products,
	})
}

func (h *StorefrontHandler) HandleProducts(c *fiber.Ctx) error {
	products, err := h.products.GetAllProducts(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "list products")
	}
	return c.JSON(fiber.Map{"products": products})
}

func (h *StorefrontHandler) HandleProductDetail(c *fiber.Ctx) error {
	product, err := h.products.GetProduct(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, h.log, err, "get product")
	}
	return c.JSON(fiber.Map{
		"product": product,
		"error":   c.Query("error"),
	})
}

// HandleCategory lists the products of a category ordered by ?filter=new|likes|expensive|cheap.
func (h *StorefrontHandler) HandleCategory(c *fiber.Ctx) error {
	category, products, err := h.categories.CategoryProducts(c.UserContext(), c.Params("slug"), c.Query("filter"))
	if err != nil {
		return respondError(c, h.log, err, "list category")
	}
	return c.JSON(fiber.Map{
		"category": category,
		"filter":   c.Query("filter"),
		"products": products,
	})
}

// HandleOrderForm returns the product an order form is shown for.
func (h *StorefrontHandler) HandleOrderForm(c *fiber.Ctx) error {
	product, err := h.products.GetProduct(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, h.log, err, "get product")
	}
	return c.JSON(fiber.Map{"product": product})
}

// HandlePlaceOrder places an order from a submitted form. Shopper errors redirect back to the
// product page with the message; success redirects home.
func (h *StorefrontHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	slug := c.Params("slug")
	_, err := h.orders.PlaceOrder(c.UserContext(), slug,
		c.FormValue("customer_name"),
		c.FormValue("customer_phone"),
		c.FormValue("quantity"),
	)
	if err != nil {
		kind, message, status := orderError(err)
		switch status {
		case fiber.StatusNotFound:
			return c.Status(status).JSON(fiber.Map{"kind": kind, "message": message})
		case fiber.StatusInternalServerError:
			h.log.Error("failed to place order", zap.String("product", slug), zap.Error(err))
			return c.Status(status).JSON(fiber.Map{"kind": kind, "message": message})
		}
		return c.Redirect("/product/"+url.PathEscape(slug)+"?error="+url.QueryEscape(message), fiber.StatusSeeOther)
	}
	return c.Redirect("/?message="+url.QueryEscape(MsgOrderPlaced), fiber.StatusSeeOther)
}
