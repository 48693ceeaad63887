package routes

import (
	v1 "whitekola/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	v1.Register(r, v1.Deps{
		Auth:       deps.Auth,
		Jobs:       deps.Jobs,
		Chat:       deps.Chat,
		Settings:   deps.Settings,
		Users:      deps.Users,
		CV:         deps.CV,
		Counseling: deps.Counseling,
		AuthMW:     deps.AuthMW,
	})
}
