package handlers

import (
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
	log     *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{service: service, log: log}
}

func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:slug", h.HandleGetCategory)
}

func (h *CategoryHandler) RegisterAdminRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Put("/:slug", h.HandleUpdateCategory)
	categoryRoutes.Delete("/:slug", h.HandleDeleteCategory)
}

// CategoryRequest is the body of category create and update calls.
type CategoryRequest struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
}

func (r CategoryRequest) model() *models.Category {
	return &models.Category{Title: r.Title, Slug: r.Slug, Image: r.Image}
}

func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "retrieve categories")
	}
	return c.JSON(categories)
}

// HandleGetCategory returns a category with its products ordered by ?filter=.
func (h *CategoryHandler) HandleGetCategory(c *fiber.Ctx) error {
	category, products, err := h.service.CategoryProducts(c.UserContext(), c.Params("slug"), c.Query("filter"))
	if err != nil {
		return respondError(c, h.log, err, "retrieve category")
	}
	return c.JSON(fiber.Map{"category": category, "products": products})
}

func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	category := req.model()
	if err := h.service.CreateCategory(c.UserContext(), category); err != nil {
		return respondError(c, h.log, err, "create category")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	category, err := h.service.UpdateCategory(c.UserContext(), c.Params("slug"), req.model())
	if err != nil {
		return respondError(c, h.log, err, "update category")
	}
	return c.JSON(category)
}

// HandleDeleteCategory deletes the category and every product in it.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if err := h.service.DeleteCategory(c.UserContext(), slug); err != nil {
		return respondError(c, h.log, err, "delete category")
	}
	return c.JSON(fiber.Map{"message": "Category " + slug + " deleted successfully"})
}
