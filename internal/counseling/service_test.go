package counseling

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"whitekola/internal/docstore"
	"whitekola/internal/notify"
)

type memDocs struct {
	data map[string]map[string]json.RawMessage
}

func newMemDocs() *memDocs {
	return &memDocs{data: make(map[string]map[string]json.RawMessage)}
}

func (m *memDocs) Get(ctx context.Context, collection, id string, out any) error {
	raw, ok := m.data[collection][id]
	if !ok {
		return docstore.ErrNotFound
	}
	return json.Unmarshal(raw, out)
}

func (m *memDocs) Create(ctx context.Context, collection string, data any, id string) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	if m.data[collection] == nil {
		m.data[collection] = make(map[string]json.RawMessage)
	}
	m.data[collection][id] = raw
	return id, nil
}

func (m *memDocs) Update(ctx context.Context, collection, id string, data any) error {
	_, err := m.Create(ctx, collection, data, id)
	return err
}

func (m *memDocs) Delete(ctx context.Context, collection, id string) error {
	delete(m.data[collection], id)
	return nil
}

func (m *memDocs) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(m.data[collection]))
	for _, raw := range m.data[collection] {
		out = append(out, raw)
	}
	return out, nil
}

type fakeMailer struct {
	sent []notify.Email
	err  error
}

func (m *fakeMailer) Send(ctx context.Context, e notify.Email) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, e)
	return nil
}

func request() Request {
	return Request{
		UserID:    "u1",
		UserName:  "Amina",
		UserEmail: "amina@example.cm",
		Date:      "2025-06-15",
		StartTime: "09:00",
		Duration:  2,
		Notes:     "CV review please",
	}
}

func TestBookCreatesPendingBooking(t *testing.T) {
	docs := newMemDocs()
	mailer := &fakeMailer{}
	svc := NewService(docs, mailer, "counselor@example.cm", nil)

	b, err := svc.Book(context.Background(), request())
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if b.ID == "" {
		t.Fatal("expected assigned id")
	}
	if b.Status != "pending" || b.PaymentStatus != "pending" {
		t.Fatalf("booking must start pending: %+v", b)
	}
	if b.PaymentAmount != 2*HourlyRate {
		t.Fatalf("unexpected amount: %d", b.PaymentAmount)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(mailer.sent))
	}
	mail := mailer.sent[0]
	if mail.To != "counselor@example.cm" {
		t.Fatalf("email to wrong recipient: %s", mail.To)
	}
	if !strings.Contains(mail.Subject, "Amina") {
		t.Fatalf("subject missing client name: %q", mail.Subject)
	}
	for _, want := range []string{"2025-06-15", "09:00", "2 hours", "CV review please"} {
		if !strings.Contains(mail.Body, want) {
			t.Fatalf("email body missing %q", want)
		}
	}
}

func TestBookRejectsTakenSlot(t *testing.T) {
	svc := NewService(newMemDocs(), &fakeMailer{}, "c@example.cm", nil)

	if _, err := svc.Book(context.Background(), request()); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	second := request()
	second.UserID = "u2"
	if _, err := svc.Book(context.Background(), second); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestBookValidation(t *testing.T) {
	svc := NewService(newMemDocs(), &fakeMailer{}, "c@example.cm", nil)

	cases := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{"no user", func(r *Request) { r.UserID = "" }, ErrInvalidInput},
		{"zero duration", func(r *Request) { r.Duration = 0 }, ErrInvalidInput},
		{"too long", func(r *Request) { r.Duration = 5 }, ErrInvalidInput},
		{"bad date", func(r *Request) { r.Date = "15/06/2025" }, ErrInvalidSlot},
		{"off-grid time", func(r *Request) { r.StartTime = "12:00" }, ErrInvalidSlot},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := request()
			tc.mutate(&req)
			if _, err := svc.Book(context.Background(), req); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestBookSurvivesMailFailure(t *testing.T) {
	docs := newMemDocs()
	svc := NewService(docs, &fakeMailer{err: errors.New("smtp down")}, "c@example.cm", nil)

	b, err := svc.Book(context.Background(), request())
	if err != nil {
		t.Fatalf("mail failure must not fail the booking: %v", err)
	}
	if _, ok := docs.data[Collection][b.ID]; !ok {
		t.Fatal("booking not persisted")
	}
}

func TestCancelFreesSlot(t *testing.T) {
	svc := NewService(newMemDocs(), &fakeMailer{}, "c@example.cm", nil)

	b, err := svc.Book(context.Background(), request())
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	cancelled, err := svc.Cancel(context.Background(), "u1", b.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != "cancelled" {
		t.Fatalf("status = %q, want cancelled", cancelled.Status)
	}

	// The freed slot is bookable again.
	if _, err := svc.Book(context.Background(), request()); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
}

func TestCancelOnlyOwnBooking(t *testing.T) {
	svc := NewService(newMemDocs(), &fakeMailer{}, "c@example.cm", nil)

	b, err := svc.Book(context.Background(), request())
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	if _, err := svc.Cancel(context.Background(), "someone-else", b.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign booking, got %v", err)
	}
	if _, err := svc.Cancel(context.Background(), "u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestSlotsReflectBookings(t *testing.T) {
	svc := NewService(newMemDocs(), &fakeMailer{}, "c@example.cm", nil)

	if _, err := svc.Book(context.Background(), request()); err != nil {
		t.Fatalf("book: %v", err)
	}

	days, err := svc.Slots(context.Background(), []string{"2025-06-15", "2025-06-16"})
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}

	for _, s := range days[0].Slots {
		if s.Time == "09:00" && s.Available {
			t.Fatal("booked slot still shown available")
		}
		if s.Time == "10:00" && !s.Available {
			t.Fatal("free slot shown unavailable")
		}
	}
	for _, s := range days[1].Slots {
		if !s.Available {
			t.Fatalf("day without bookings should be fully available, got %+v", s)
		}
	}
}
