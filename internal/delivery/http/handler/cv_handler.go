package handler

import (
	"errors"

	"whitekola/internal/cv"
	"whitekola/internal/delivery/http/dto"
	"whitekola/internal/delivery/http/middleware"
	"whitekola/internal/domain/user"
	"whitekola/internal/pkg/response"
	"whitekola/internal/session"

	"github.com/gofiber/fiber/v3"
)

type CVHandler struct {
	sessions *session.Manager
	cvs      *cv.Service
}

func NewCVHandler(sessions *session.Manager, cvs *cv.Service) *CVHandler {
	return &CVHandler{sessions: sessions, cvs: cvs}
}

func (h *CVHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Get)
	r.Put("/", h.Save)
	r.Delete("/", h.Delete)
	r.Post("/export", h.Export)
}

func (h *CVHandler) Get(c fiber.Ctx) error {
	sess, err := sessionFromCtx(c, h.sessions)
	if err != nil {
		return err
	}

	doc, err := h.cvs.Get(c.Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, cv.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "No CV yet", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, doc)
}

func (h *CVHandler) Save(c fiber.Ctx) error {
	sess, err := sessionFromCtx(c, h.sessions)
	if err != nil {
		return err
	}

	var doc cv.Document
	if err := c.Bind().Body(&doc); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	doc.UserID = sess.UserID
	if doc.FullName == "" {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Full name is required", nil, nil)
	}

	saved, err := h.cvs.Save(c.Context(), doc)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}

	// keep the session's view of hasCV in step with the profile store
	hasCV := true
	sess.Auth.UpdateUser(user.Patch{HasCV: &hasCV})

	return response.Success(c, fiber.StatusOK, response.MessageOK, saved)
}

func (h *CVHandler) Delete(c fiber.Ctx) error {
	sess, err := sessionFromCtx(c, h.sessions)
	if err != nil {
		return err
	}

	if err := h.cvs.Delete(c.Context(), sess.UserID); err != nil {
		if errors.Is(err, cv.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "No CV yet", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}

	hasCV := false
	sess.Auth.UpdateUser(user.Patch{HasCV: &hasCV})

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *CVHandler) Export(c fiber.Ctx) error {
	sess, err := sessionFromCtx(c, h.sessions)
	if err != nil {
		return err
	}

	url, err := h.cvs.Export(c.Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, cv.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "No CV yet", nil, err)
		}
		return middleware.NewAppError(fiber.StatusBadGateway, "Export failed", nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ExportResponse{URL: url})
}
