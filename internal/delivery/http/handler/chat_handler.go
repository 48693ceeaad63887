package handler

import (
	"strings"

	"whitekola/internal/delivery/http/dto"
	"whitekola/internal/delivery/http/middleware"
	"whitekola/internal/pkg/response"
	"whitekola/internal/session"

	"github.com/gofiber/fiber/v3"
)

type ChatHandler struct {
	sessions *session.Manager
}

func NewChatHandler(sessions *session.Manager) *ChatHandler {
	return &ChatHandler{sessions: sessions}
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Transcript)
	r.Post("/messages", h.Send)
	r.Delete("/", h.Clear)
}

func (h *ChatHandler) Transcript(c fiber.Ctx) error {
	sess, err := sessionFromCtx(c, h.sessions)
	if err != nil {
		return err
	}
	st := sess.Chat.State()
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ChatResponse{
		Messages:  st.Messages,
		IsLoading: st.IsLoading,
	})
}

// Send blocks until the assistant reply (or its fallback) has been
// appended, then returns the updated transcript.
func (h *ChatHandler) Send(c fiber.Ctx) error {
	sess, err := sessionFromCtx(c, h.sessions)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if strings.TrimSpace(req.Content) == "" {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Message cannot be empty", nil, nil)
	}

	sess.Chat.SendUserMessage(c.Context(), req.Content)

	st := sess.Chat.State()
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ChatResponse{
		Messages:  st.Messages,
		IsLoading: st.IsLoading,
	})
}

// Clear wipes the conversation and re-seeds the greeting.
func (h *ChatHandler) Clear(c fiber.Ctx) error {
	sess, err := sessionFromCtx(c, h.sessions)
	if err != nil {
		return err
	}
	sess.Chat.Clear()
	sess.Chat.Greet()

	st := sess.Chat.State()
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ChatResponse{
		Messages: st.Messages,
	})
}
