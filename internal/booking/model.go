package booking

import (
	"net/http"
	"time"

	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrMissingFields    = apperror.New(http.StatusBadRequest, "guest name, check-in date, check-out date and room are all required")
	ErrInvalidDateRange = apperror.New(http.StatusBadRequest, "check-in date must be before check-out date")
	ErrRoomUnavailable  = apperror.New(http.StatusNotFound, "room not found or is currently unavailable")
	ErrDateConflict     = apperror.New(http.StatusConflict, "room is already booked for the selected dates")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "you do not have permission to access this booking")
	ErrNoUpdateFields   = apperror.New(http.StatusBadRequest, "no fields provided for update")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrTerminalState    = apperror.New(http.StatusBadRequest, "booking is in a terminal state")
	ErrCancellationLate = apperror.New(http.StatusBadRequest, "cancellation must be made at least 48 hours before check-in")
)

// CancellationCutoff is the window before check-in during which a booking can
// no longer be cancelled by its owner.
const CancellationCutoff = 48 * time.Hour

// DefaultStatus is assigned to newly created bookings. The hotel confirms
// reservations immediately rather than holding them as pending.
const DefaultStatus = StatusConfirmed

// Status is the booking lifecycle state.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusConfirmed  Status = "Confirmed"
	StatusCancelled  Status = "Cancelled"
	StatusCheckedIn  Status = "CheckedIn"
	StatusCheckedOut Status = "CheckedOut"
)

// ParseStatus validates a wire value against the booking status enumeration.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCheckedIn, StatusCheckedOut:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

// IsActive reports whether the status counts toward conflict detection.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal reports whether the booking can no longer be updated or
// cancelled. Terminal bookings are immutable except through the admin
// status override.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusCheckedIn, StatusCheckedOut:
		return true
	default:
		return false
	}
}

// Booking represents a reservation of one room by one user for a half-open
// date range [CheckInDate, CheckOutDate).
type Booking struct {
	ID           string
	UserID       string
	RoomID       string
	GuestName    string
	CheckInDate  time.Time
	CheckOutDate time.Time
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Denormalized read-only fields populated by joined queries.
	RoomNumber    int
	RoomType      string
	PricePerNight float64
	UserName      string
	UserEmail     string
}
