package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"whitekola/internal/pkg/response"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{})
	app.Use(NewErrorMiddleware().Middleware())
	app.Use(NewAccessLogMiddleware(log.New(io.Discard, "", 0)).Middleware())

	app.Get("/ok", func(c fiber.Ctx) error {
		return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
	})
	app.Get("/missing", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusNotFound, "", nil, errors.New("no such record"))
	})
	app.Get("/boom", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadGateway, "upstream details", nil, errors.New("upstream down"))
	})
	return app
}

func TestEnvelopeEchoesRequestID(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/ok", nil)
	req.Header.Set(fiber.HeaderXRequestID, "rid-12345")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	var sr response.SemanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if sr.RequestID != "rid-12345" {
		t.Fatalf("envelope requestId = %q, want %q", sr.RequestID, "rid-12345")
	}
	if got := resp.Header.Get(fiber.HeaderXRequestID); got != "rid-12345" {
		t.Fatalf("response header %s = %q, want %q", fiber.HeaderXRequestID, got, "rid-12345")
	}
}

func TestEnvelopeGeneratesRequestID(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	if resp.Header.Get(fiber.HeaderXRequestID) == "" {
		t.Fatalf("expected a generated %s response header", fiber.HeaderXRequestID)
	}
}

func TestErrorEnvelopeDefaultsMessage(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	var sr response.SemanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if sr.Status != fiber.StatusNotFound {
		t.Fatalf("status = %d, want %d", sr.Status, fiber.StatusNotFound)
	}
	if sr.Message != response.MessageNotFound {
		t.Fatalf("message = %q, want %q", sr.Message, response.MessageNotFound)
	}
}

func TestServerErrorsCollapseToInternal(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	var sr response.SemanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if sr.Status != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", sr.Status, fiber.StatusInternalServerError)
	}
	if sr.Message != response.MessageInternalServerError {
		t.Fatalf("upstream detail leaked into message: %q", sr.Message)
	}
}
