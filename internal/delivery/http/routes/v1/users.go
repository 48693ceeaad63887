package v1

import (
	"whitekola/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// RegisterUsers mounts the profile and CV routes under an
// already-protected router.
func RegisterUsers(r fiber.Router, users *handler.UserHandler, cv *handler.CVHandler) {
	if r == nil || users == nil {
		return
	}

	users.RegisterRoutes(r.Group("/users"))
	if cv != nil {
		cv.RegisterRoutes(r.Group("/cv"))
	}
}
