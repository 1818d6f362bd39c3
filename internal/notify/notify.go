// Package notify delivers booking-confirmation messages. Delivery is best
// effort by contract: callers fire it in the background and only log errors.
package notify

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"github.com/hoteldesk/hotel-booking-backend/internal/booking"
	"github.com/hoteldesk/hotel-booking-backend/internal/room"
	"github.com/hoteldesk/hotel-booking-backend/internal/user"
)

// SMTPConfig carries the mail server settings.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// SMTPDispatcher sends booking confirmations over SMTP. It looks the guest's
// address up through the user service because the freshly created booking
// only carries the user id.
type SMTPDispatcher struct {
	cfg   SMTPConfig
	users user.Service
}

func NewSMTPDispatcher(cfg SMTPConfig, users user.Service) *SMTPDispatcher {
	return &SMTPDispatcher{
		cfg:   cfg,
		users: users,
	}
}

func (d *SMTPDispatcher) BookingCreated(ctx context.Context, b *booking.Booking, rm *room.Room) error {
	u, err := d.users.GetByID(ctx, b.UserID)
	if err != nil {
		return fmt.Errorf("resolve booking user: %w", err)
	}

	msg := confirmationMessage(d.cfg.From, u, b, rm)
	addr := fmt.Sprintf("%s:%d", d.cfg.Host, d.cfg.Port)

	var a smtp.Auth
	if d.cfg.User != "" {
		a = smtp.PlainAuth("", d.cfg.User, d.cfg.Pass, d.cfg.Host)
	}

	if err := smtp.SendMail(addr, a, d.cfg.From, []string{u.Email}, msg); err != nil {
		return fmt.Errorf("send confirmation mail: %w", err)
	}
	return nil
}

func confirmationMessage(from string, u *user.User, b *booking.Booking, rm *room.Room) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", from)
	fmt.Fprintf(&sb, "To: %s\r\n", u.Email)
	sb.WriteString("Subject: Your booking is confirmed\r\n")
	sb.WriteString("\r\n")
	fmt.Fprintf(&sb, "Hello %s,\r\n\r\n", u.Name)
	fmt.Fprintf(&sb, "Your reservation has been %s.\r\n\r\n", strings.ToLower(string(b.Status)))
	fmt.Fprintf(&sb, "Booking ID:  %s\r\n", b.ID)
	fmt.Fprintf(&sb, "Guest:       %s\r\n", b.GuestName)
	fmt.Fprintf(&sb, "Room:        %d (%s)\r\n", rm.RoomNumber, rm.RoomType)
	fmt.Fprintf(&sb, "Check-in:    %s\r\n", b.CheckInDate.Format(time.DateOnly))
	fmt.Fprintf(&sb, "Check-out:   %s\r\n", b.CheckOutDate.Format(time.DateOnly))
	sb.WriteString("\r\nWe look forward to welcoming you.\r\n")
	return []byte(sb.String())
}

// LogDispatcher writes confirmations to the process log. Used in development
// when no SMTP host is configured.
type LogDispatcher struct{}

func (LogDispatcher) BookingCreated(_ context.Context, b *booking.Booking, rm *room.Room) error {
	log.Printf("booking %s confirmed: guest %q, room %d, %s -> %s",
		b.ID, b.GuestName, rm.RoomNumber,
		b.CheckInDate.Format(time.DateOnly), b.CheckOutDate.Format(time.DateOnly))
	return nil
}
