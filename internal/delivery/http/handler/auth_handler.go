package handler

import (
	"errors"

	"whitekola/internal/delivery/http/dto"
	"whitekola/internal/delivery/http/middleware"
	"whitekola/internal/pkg/response"
	platformauth "whitekola/internal/platform/auth"
	"whitekola/internal/session"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	sessions *session.Manager
}

func NewAuthHandler(sessions *session.Manager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
}

// RegisterProtected mounts the routes that require a valid access token.
func (h *AuthHandler) RegisterProtected(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/logout", h.Logout)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	sess, tokens, err := h.sessions.Register(c.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		return mapAuthError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AuthResponse{
		User:         sess.Auth.State().User,
		AccessToken:  tokens.Access,
		RefreshToken: tokens.Refresh,
	})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	sess, tokens, err := h.sessions.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return mapAuthError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AuthResponse{
		User:         sess.Auth.State().User,
		AccessToken:  tokens.Access,
		RefreshToken: tokens.Refresh,
	})
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	sess, err := sessionFromCtx(c, h.sessions)
	if err != nil {
		return err
	}

	sess.Auth.Logout()
	_ = sess.Client.SignOut(c.Context())
	h.sessions.Drop(sess.UserID)

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapAuthError(err error) error {
	switch {
	case errors.Is(err, platformauth.ErrEmailAlreadyInUse):
		return middleware.NewAppError(fiber.StatusConflict, "Email already in use", nil, err)
	case errors.Is(err, platformauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, platformauth.ErrAccountNotFound):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, platformauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
