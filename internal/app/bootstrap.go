package app

import (
	"context"
	"fmt"
	"strings"

	"whitekola/internal/config"
	"whitekola/internal/delivery/http/handler"
	"whitekola/internal/delivery/http/middleware"
	"whitekola/internal/delivery/http/routes"
	"whitekola/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the container, wires handlers into the route tree and
// starts the websocket hub. The returned cleanup stops the hub and closes
// the database pool.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registry := routes.NewRegistry(routes.Deps{
		Auth:       handler.NewAuthHandler(c.Sessions),
		Jobs:       handler.NewJobsHandler(c.Jobs, c.Sessions, c.Events),
		Chat:       handler.NewChatHandler(c.Sessions),
		Settings:   handler.NewSettingsHandler(c.Sessions),
		Users:      handler.NewUserHandler(c.Sessions, c.Profiles),
		CV:         handler.NewCVHandler(c.Sessions, c.CVs),
		Counseling: handler.NewCounselingHandler(c.Sessions, c.Counseling),
		WS:         ws.NewHandler(c.Hub, c.Logger),

		AuthMW:    middleware.NewAuthMiddleware(c.JWT),
		AccessLog: middleware.NewAccessLogMiddleware(c.Logger),
		ErrorMW:   middleware.NewErrorMiddleware(),
	})
	registry.Register(f)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return &App{Fiber: f, Container: c}, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
