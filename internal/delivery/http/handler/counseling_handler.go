package handler

import (
	"errors"
	"strings"

	"whitekola/internal/counseling"
	"whitekola/internal/delivery/http/dto"
	"whitekola/internal/delivery/http/middleware"
	"whitekola/internal/pkg/response"
	"whitekola/internal/session"

	"github.com/gofiber/fiber/v3"
)

type CounselingHandler struct {
	sessions *session.Manager
	svc      *counseling.Service
}

func NewCounselingHandler(sessions *session.Manager, svc *counseling.Service) *CounselingHandler {
	return &CounselingHandler{sessions: sessions, svc: svc}
}

func (h *CounselingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/slots", h.Slots)
	r.Post("/bookings", h.Book)
	r.Post("/bookings/:id/cancel", h.Cancel)
}

// Slots returns availability for the comma-separated dates in the query.
func (h *CounselingHandler) Slots(c fiber.Ctx) error {
	if _, err := sessionFromCtx(c, h.sessions); err != nil {
		return err
	}

	raw := strings.TrimSpace(c.Query("dates"))
	if raw == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "dates query parameter is required", nil, nil)
	}
	dates := strings.Split(raw, ",")

	days, err := h.svc.Slots(c.Context(), dates)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, days)
}

func (h *CounselingHandler) Book(c fiber.Ctx) error {
	sess, err := sessionFromCtx(c, h.sessions)
	if err != nil {
		return err
	}

	var req dto.BookingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	st := sess.Auth.State()
	var userName, userEmail string
	if st.User != nil {
		userName, userEmail = st.User.Username, st.User.Email
	}

	booking, err := h.svc.Book(c.Context(), counseling.Request{
		UserID:    sess.UserID,
		UserName:  userName,
		UserEmail: userEmail,
		Date:      req.Date,
		StartTime: req.StartTime,
		Duration:  req.Duration,
		Notes:     req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, counseling.ErrSlotTaken):
			return middleware.NewAppError(fiber.StatusConflict, "Slot is already booked", nil, err)
		case errors.Is(err, counseling.ErrInvalidSlot), errors.Is(err, counseling.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid booking request", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, booking)
}

func (h *CounselingHandler) Cancel(c fiber.Ctx) error {
	sess, err := sessionFromCtx(c, h.sessions)
	if err != nil {
		return err
	}

	booking, err := h.svc.Cancel(c.Context(), sess.UserID, c.Params("id"))
	if err != nil {
		if errors.Is(err, counseling.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Booking not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, booking)
}
