package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// dateLayout is the wire format for date-only values
const dateLayout = "2006-01-02"

// parseIDParam parses a numeric path parameter. Malformed IDs map to a
// 400 rather than leaking a storage-layer cast error.
func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseDate parses an ISO date string
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
