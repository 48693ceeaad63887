package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"whitekola/internal/domain/chat"
)

func transcript() []chat.Message {
	return []chat.Message{
		{Role: chat.RoleSystem, Content: "You are a career assistant."},
		{Role: chat.RoleUser, Content: "How do I write a CV?"},
	}
}

func TestCompleteSendsTranscript(t *testing.T) {
	var got completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(completionResponse{Completion: "Start with your contact details."})
	}))
	defer srv.Close()

	c := NewHTTPCompleter(srv.URL, time.Second)
	reply, err := c.Complete(context.Background(), transcript())
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if reply != "Start with your contact details." {
		t.Fatalf("unexpected reply: %q", reply)
	}

	if len(got.Messages) != 2 {
		t.Fatalf("expected 2 wire messages, got %d", len(got.Messages))
	}
	if got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Fatalf("roles not preserved: %+v", got.Messages)
	}
}

func TestCompleteNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewHTTPCompleter(srv.URL, time.Second)
	if _, err := c.Complete(context.Background(), transcript()); err == nil {
		t.Fatal("expected error on 503")
	}
}

func TestCompleteMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewHTTPCompleter(srv.URL, time.Second)
	if _, err := c.Complete(context.Background(), transcript()); err == nil {
		t.Fatal("expected error on malformed body")
	}
}

func TestCompleteEmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(completionResponse{})
	}))
	defer srv.Close()

	c := NewHTTPCompleter(srv.URL, time.Second)
	if _, err := c.Complete(context.Background(), transcript()); err == nil {
		t.Fatal("expected error on empty completion")
	}
}

func TestCompleteContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewHTTPCompleter(srv.URL, time.Second)
	if _, err := c.Complete(ctx, transcript()); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
