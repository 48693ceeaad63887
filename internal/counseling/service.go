// Package counseling books paid counseling sessions and notifies the
// counselor by email. Payment stays in the "pending" state; settlement is
// handled outside this system.
package counseling

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"whitekola/internal/docstore"
	"whitekola/internal/notify"
)

const Collection = "counselingSessions"

// HourlyRate is the session price in USD per hour.
const HourlyRate = 10

// slotTimes are the bookable start times for every day.
var slotTimes = []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"}

var (
	ErrSlotTaken    = errors.New("slot is already booked")
	ErrInvalidSlot  = errors.New("invalid booking slot")
	ErrInvalidInput = errors.New("invalid booking input")
	ErrNotFound     = errors.New("booking not found")
)

type Booking struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	CounselorID   string    `json:"counselorId"`
	Date          string    `json:"date"`
	StartTime     string    `json:"startTime"`
	Duration      int       `json:"duration"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	PaymentStatus string    `json:"paymentStatus"`
	PaymentAmount int       `json:"paymentAmount"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type DaySlots struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

type Service struct {
	docs           docstore.Store
	mailer         notify.Mailer
	counselorEmail string
	logger         *log.Logger
}

// DefaultCounselorEmail receives booking notifications when no address
// is configured.
const DefaultCounselorEmail = "akum.binda17@gmail.com"

func NewService(docs docstore.Store, mailer notify.Mailer, counselorEmail string, logger *log.Logger) *Service {
	if counselorEmail == "" {
		counselorEmail = DefaultCounselorEmail
	}
	return &Service{
		docs:           docs,
		mailer:         mailer,
		counselorEmail: counselorEmail,
		logger:         logger,
	}
}

// Request carries everything needed to book a session.
type Request struct {
	UserID    string
	UserName  string
	UserEmail string
	Date      string
	StartTime string
	Duration  int
	Notes     string
}

// Book validates the slot, records the booking with payment pending, and
// emails the counselor. A mail failure does not undo the booking.
func (s *Service) Book(ctx context.Context, req Request) (Booking, error) {
	if s == nil || s.docs == nil {
		return Booking{}, fmt.Errorf("counseling service is not initialized")
	}
	if req.UserID == "" {
		return Booking{}, fmt.Errorf("%w: missing user", ErrInvalidInput)
	}
	if req.Duration < 1 || req.Duration > 3 {
		return Booking{}, fmt.Errorf("%w: duration must be 1-3 hours", ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return Booking{}, fmt.Errorf("%w: bad date %q", ErrInvalidSlot, req.Date)
	}
	if !validSlotTime(req.StartTime) {
		return Booking{}, fmt.Errorf("%w: bad start time %q", ErrInvalidSlot, req.StartTime)
	}

	taken, err := s.bookedTimes(ctx, req.Date)
	if err != nil {
		return Booking{}, err
	}
	if _, ok := taken[req.StartTime]; ok {
		return Booking{}, ErrSlotTaken
	}

	b := Booking{
		ID:            uuid.NewString(),
		UserID:        req.UserID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		Duration:      req.Duration,
		Status:        "pending",
		Notes:         req.Notes,
		PaymentStatus: "pending",
		PaymentAmount: req.Duration * HourlyRate,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := s.docs.Create(ctx, Collection, b, b.ID); err != nil {
		return Booking{}, fmt.Errorf("save booking: %w", err)
	}

	if s.mailer != nil && s.counselorEmail != "" {
		if err := s.mailer.Send(ctx, bookingEmail(s.counselorEmail, req)); err != nil && s.logger != nil {
			s.logger.Printf("[Counseling] booking email failed: %v", err)
		}
	}
	return b, nil
}

// Cancel marks the user's booking cancelled, freeing its slot. Only the
// user who booked it may cancel it.
func (s *Service) Cancel(ctx context.Context, userID, bookingID string) (Booking, error) {
	if s == nil || s.docs == nil {
		return Booking{}, fmt.Errorf("counseling service is not initialized")
	}
	var b Booking
	if err := s.docs.Get(ctx, Collection, bookingID, &b); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, fmt.Errorf("load booking: %w", err)
	}
	if b.UserID != userID {
		return Booking{}, ErrNotFound
	}
	if b.Status == "cancelled" {
		return b, nil
	}

	b.Status = "cancelled"
	if err := s.docs.Update(ctx, Collection, b.ID, b); err != nil {
		return Booking{}, fmt.Errorf("cancel booking: %w", err)
	}
	return b, nil
}

// Slots reports availability per bookable time for each of the given
// dates, based on existing bookings.
func (s *Service) Slots(ctx context.Context, dates []string) ([]DaySlots, error) {
	if s == nil || s.docs == nil {
		return nil, fmt.Errorf("counseling service is not initialized")
	}
	out := make([]DaySlots, 0, len(dates))
	for _, date := range dates {
		taken, err := s.bookedTimes(ctx, date)
		if err != nil {
			return nil, err
		}
		day := DaySlots{Date: date, Slots: make([]Slot, 0, len(slotTimes))}
		for _, t := range slotTimes {
			_, busy := taken[t]
			day.Slots = append(day.Slots, Slot{Time: t, Available: !busy})
		}
		out = append(out, day)
	}
	return out, nil
}

func (s *Service) bookedTimes(ctx context.Context, date string) (map[string]struct{}, error) {
	raw, err := s.docs.List(ctx, Collection)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	bookings := docstore.DecodeAll[Booking](raw)
	taken := make(map[string]struct{})
	for _, b := range bookings {
		if b.Date == date && b.Status != "cancelled" {
			taken[b.StartTime] = struct{}{}
		}
	}
	return taken, nil
}

func validSlotTime(t string) bool {
	for _, s := range slotTimes {
		if s == t {
			return true
		}
	}
	return false
}

func bookingEmail(counselorEmail string, req Request) notify.Email {
	name := req.UserName
	if name == "" {
		name = "Anonymous User"
	}
	email := req.UserEmail
	if email == "" {
		email = "No email provided"
	}

	plural := ""
	if req.Duration > 1 {
		plural = "s"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Hello,\n\nA new counseling session has been booked through WhiteKola.\n\n")
	fmt.Fprintf(&b, "Booking Details:\n- Client: %s\n- Client Email: %s\n- Date: %s\n- Time: %s\n- Duration: %d hour%s\n",
		name, email, req.Date, req.StartTime, req.Duration, plural)
	if req.Notes != "" {
		fmt.Fprintf(&b, "- Notes: %s\n", req.Notes)
	}
	fmt.Fprintf(&b, "\nPlease confirm this booking with the client directly.\n\nThank you,\nWhiteKola Team\n")

	return notify.Email{
		To:      counselorEmail,
		Subject: fmt.Sprintf("New Counseling Session Booking - %s", name),
		Body:    b.String(),
	}
}
