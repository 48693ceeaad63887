package handler

import (
	"whitekola/internal/delivery/http/dto"
	"whitekola/internal/delivery/http/middleware"
	"whitekola/internal/pkg/response"
	"whitekola/internal/session"
	"whitekola/internal/store/settings"

	"github.com/gofiber/fiber/v3"
)

type SettingsHandler struct {
	sessions *session.Manager
}

func NewSettingsHandler(sessions *session.Manager) *SettingsHandler {
	return &SettingsHandler{sessions: sessions}
}

func (h *SettingsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Get)
	r.Patch("/", h.Update)
}

func (h *SettingsHandler) Get(c fiber.Ctx) error {
	sess, err := sessionFromCtx(c, h.sessions)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, settingsResponse(sess))
}

func (h *SettingsHandler) Update(c fiber.Ctx) error {
	sess, err := sessionFromCtx(c, h.sessions)
	if err != nil {
		return err
	}

	var req dto.UpdateSettingsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if req.Language != nil {
		lang := settings.Language(*req.Language)
		if lang != settings.LanguageEnglish && lang != settings.LanguageFrench {
			return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Unsupported language", nil, nil)
		}
		sess.Settings.SetLanguage(lang)
	}
	if req.DarkMode != nil && *req.DarkMode != sess.Settings.State().DarkMode {
		sess.Settings.ToggleDarkMode()
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, settingsResponse(sess))
}

func settingsResponse(sess *session.Session) dto.SettingsResponse {
	st := sess.Settings.State()
	return dto.SettingsResponse{
		DarkMode: st.DarkMode,
		Language: string(st.Language),
	}
}
