package handlers

import (
	"errors"
	"fmt"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Storefront messages shown to shoppers.
const (
	MsgOrderPlaced       = "Buyurtmangiz muvaffaqiyatli joylandi!"
	MsgInvalidPhone      = "Noto‘g‘ri telefon raqam! +998 XX XXX-XX-XX formatida kiriting"
	MsgMissingField      = "Iltimos, barcha maydonlarni to‘ldiring!"
	MsgInvalidQuantity   = "Iltimos, musbat butun son kiriting!"
	MsgInsufficientStock = "Kechirasiz, faqat %d ta mahsulot qolgan!"
	MsgProductNotFound   = "Mahsulot topilmadi!"
	MsgLiked             = "Siz bu mahsulotga layk bosdingiz!"
	MsgAlreadyLiked      = "Siz allaqachon bu mahsulotga layk bosgansiz!"
	MsgOrderFailed       = "Buyurtmani joylashda xatolik yuz berdi."
)

// orderError classifies a PlaceOrder failure into a machine-readable kind, a shopper message and a status.
func orderError(err error) (kind, message string, status int) {
	var stockErr *services.InsufficientStockError
	switch {
	case errors.Is(err, services.ErrNotFound):
		return "not_found", MsgProductNotFound, fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidPhone):
		return "invalid_phone", MsgInvalidPhone, fiber.StatusBadRequest
	case errors.Is(err, services.ErrMissingField):
		return "missing_field", MsgMissingField, fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidQuantity):
		return "invalid_quantity", MsgInvalidQuantity, fiber.StatusBadRequest
	case errors.As(err, &stockErr):
		return "insufficient_stock", fmt.Sprintf(MsgInsufficientStock, stockErr.Available), fiber.StatusConflict
	default:
		return "internal", MsgOrderFailed, fiber.StatusInternalServerError
	}
}

// respondError maps service errors onto HTTP responses.
func respondError(c *fiber.Ctx, log *zap.Logger, err error, action string) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Not found",
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": action + " failed",
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   err.Error(),
		})
	default:
		log.Error(action+" failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not " + action,
		})
	}
}

func badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}
