package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// MaintenanceMessage is returned while the site is closed.
const MaintenanceMessage = "Sayt shu vaqt oralig‘ida yopiq."

// MaintenanceWindow closes the site between startHour:00 and endHour:00 local time, both
// boundaries excluded. now is injectable for tests; nil means time.Now.
func MaintenanceWindow(startHour, endHour int, now func() time.Time) fiber.Handler {
	if now == nil {
		now = time.Now
	}
	return func(c *fiber.Ctx) error {
		if inWindow(now(), startHour, endHour) {
			return c.Status(fiber.StatusForbidden).SendString(MaintenanceMessage)
		}
		return c.Next()
	}
}

func inWindow(t time.Time, startHour, endHour int) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	start := day.Add(time.Duration(startHour) * time.Hour)
	end := day.Add(time.Duration(endHour) * time.Hour)
	if !end.After(start) {
		// window wraps past midnight
		return t.After(start) || t.Before(end)
	}
	return t.After(start) && t.Before(end)
}
