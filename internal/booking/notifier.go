package booking

import (
	"context"

	"github.com/hoteldesk/hotel-booking-backend/internal/room"
)

// Notifier is told about successful booking creation. Dispatch is best
// effort: the lifecycle engine fires it in the background, logs failures and
// never rolls back the booking.
type Notifier interface {
	BookingCreated(ctx context.Context, b *Booking, rm *room.Room) error
}

// NopNotifier discards notifications. Used in tests and as a safe default.
type NopNotifier struct{}

func (NopNotifier) BookingCreated(context.Context, *Booking, *room.Room) error {
	return nil
}
