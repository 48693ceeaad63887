package v1

import (
	"whitekola/internal/delivery/http/handler"
	"whitekola/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Auth       *handler.AuthHandler
	Jobs       *handler.JobsHandler
	Chat       *handler.ChatHandler
	Settings   *handler.SettingsHandler
	Users      *handler.UserHandler
	CV         *handler.CVHandler
	Counseling *handler.CounselingHandler
	AuthMW     *middleware.AuthMiddleware
}

func Register(r fiber.Router, deps Deps) {
	if r == nil || deps.AuthMW == nil {
		return
	}

	authGroup := r.Group("/auth")
	deps.Auth.RegisterRoutes(authGroup)

	RegisterJobs(r, deps.Jobs, deps.AuthMW)

	protected := r.Group("", deps.AuthMW.Middleware())
	deps.Auth.RegisterProtected(protected.Group("/auth"))
	RegisterUsers(protected, deps.Users, deps.CV)

	if deps.Chat != nil {
		deps.Chat.RegisterRoutes(protected.Group("/chat"))
	}
	if deps.Settings != nil {
		deps.Settings.RegisterRoutes(protected.Group("/settings"))
	}
	if deps.Counseling != nil {
		deps.Counseling.RegisterRoutes(protected.Group("/counseling"))
	}
}
