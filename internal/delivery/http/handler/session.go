package handler

import (
	"whitekola/internal/delivery/http/middleware"
	platformauth "whitekola/internal/platform/auth"
	"whitekola/internal/session"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// sessionFromCtx resolves the caller's session container from the claims
// the auth middleware stored. After a restart the container is rebuilt
// from the token's identity and the profile store fills in the rest.
func sessionFromCtx(c fiber.Ctx, sessions *session.Manager) (*session.Session, error) {
	uid, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok || uid == uuid.Nil {
		return nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	email, _ := c.Locals(middleware.CtxEmailKey).(string)

	sess := sessions.Session(c.Context(), platformauth.Identity{ID: uid, Email: email})
	if sess == nil {
		return nil, middleware.NewAppError(fiber.StatusInternalServerError, "", nil, nil)
	}
	return sess, nil
}
