package room

import (
	"net/http"
	"time"

	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "room not found")
	ErrNumberTaken      = apperror.New(http.StatusConflict, "room number already exists")
	ErrInvalidNumber    = apperror.New(http.StatusBadRequest, "room number must be a positive integer")
	ErrInvalidType      = apperror.New(http.StatusBadRequest, "room type must be Single, Double or Family")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid room status")
	ErrInvalidPrice     = apperror.New(http.StatusBadRequest, "price per night cannot be negative")
	ErrInvalidCapacity  = apperror.New(http.StatusBadRequest, "capacity must be at least one")
	ErrUpcomingBookings = apperror.New(http.StatusConflict, "cannot take room out of service while future bookings exist")
)

// Type enumerates the kinds of rooms on offer.
type Type string

const (
	TypeSingle Type = "Single"
	TypeDouble Type = "Double"
	TypeFamily Type = "Family"
)

// ParseType validates a wire value against the room type enumeration.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeSingle, TypeDouble, TypeFamily:
		return t, nil
	default:
		return "", ErrInvalidType
	}
}

// Status is the room's lifecycle state. Rooms are never hard-deleted; they
// are taken out of service via Disabled or UnderMaintenance.
type Status string

const (
	StatusAvailable        Status = "Available"
	StatusDisabled         Status = "Disabled"
	StatusUnderMaintenance Status = "Under Maintenance"
)

// ParseStatus validates a wire value against the room status enumeration.
// "Under Maintenance" contains a space, so this replaces a binding oneof tag.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusAvailable, StatusDisabled, StatusUnderMaintenance:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Room represents a bookable hotel room.
type Room struct {
	ID            string
	RoomNumber    int
	RoomType      Type
	PricePerNight float64
	Capacity      int
	Status        Status
	Images        []string // served URL paths of uploaded photos
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter defines parameters for listing rooms.
type Filter struct {
	RoomType string
	Status   string
	Page     int
	PageSize int
}
