package routes

import (
	"whitekola/internal/delivery/http/handler"
	"whitekola/internal/delivery/http/middleware"
	"whitekola/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps carries the constructed handlers and middleware the route tree
// mounts. The app container builds them; routes only wire URLs.
type Deps struct {
	Auth       *handler.AuthHandler
	Jobs       *handler.JobsHandler
	Chat       *handler.ChatHandler
	Settings   *handler.SettingsHandler
	Users      *handler.UserHandler
	CV         *handler.CVHandler
	Counseling *handler.CounselingHandler
	WS         *ws.Handler

	AuthMW    *middleware.AuthMiddleware
	AccessLog *middleware.AccessLogMiddleware
	ErrorMW   *middleware.ErrorMiddleware
}

type Registry struct {
	health *handler.HealthHandler
	deps   Deps
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{health: handler.NewHealthHandler(), deps: deps}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.deps.ErrorMW != nil {
		app.Use(r.deps.ErrorMW.Middleware())
	}
	if r.deps.AccessLog != nil {
		app.Use(r.deps.AccessLog.Middleware())
	}

	r.health.RegisterRoutes(app)

	if r.deps.WS != nil {
		app.Get("/ws/jobs", r.deps.WS.HandleJobsWS)
	}

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.deps)
}
