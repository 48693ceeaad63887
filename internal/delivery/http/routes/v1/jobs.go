package v1

import (
	"whitekola/internal/delivery/http/handler"
	"whitekola/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// RegisterJobs mounts the catalog routes: listing and metadata stay
// public, posting requires authentication.
func RegisterJobs(r fiber.Router, jobs *handler.JobsHandler, authMW *middleware.AuthMiddleware) {
	if r == nil || jobs == nil {
		return
	}

	group := r.Group("/jobs")
	jobs.RegisterRoutes(group)

	if authMW != nil {
		jobs.RegisterProtected(r.Group("/jobs", authMW.Middleware()))
	}
}
