package handler

import (
	"whitekola/internal/delivery/http/dto"
	"whitekola/internal/delivery/http/middleware"
	"whitekola/internal/domain/user"
	"whitekola/internal/pkg/response"
	"whitekola/internal/profiles"
	"whitekola/internal/session"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	sessions *session.Manager
	profiles *profiles.Repository
}

func NewUserHandler(sessions *session.Manager, profiles *profiles.Repository) *UserHandler {
	return &UserHandler{sessions: sessions, profiles: profiles}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/me", h.Me)
	r.Patch("/me", h.Update)
}

func (h *UserHandler) Me(c fiber.Ctx) error {
	sess, err := sessionFromCtx(c, h.sessions)
	if err != nil {
		return err
	}

	st := sess.Auth.State()
	if st.User == nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, st.User)
}

// Update merges the patch into the session's user and persists the result
// to the profile store. HasCV is deliberately not patchable here; only the
// CV flow flips it.
func (h *UserHandler) Update(c fiber.Ctx) error {
	sess, err := sessionFromCtx(c, h.sessions)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.Username != nil && *req.Username == "" {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Username cannot be empty", nil, nil)
	}

	sess.Auth.UpdateUser(user.Patch{
		Username: req.Username,
		PhotoURL: req.PhotoURL,
	})

	st := sess.Auth.State()
	if st.User == nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, nil)
	}
	if err := h.profiles.Save(c.Context(), *st.User); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, st.User)
}
