package http

import (
	"time"

	"github.com/hoteldesk/hotel-booking-backend/internal/room"
)

type CreateRoomBody struct {
	RoomNumber    int     `json:"room_number" binding:"required,gt=0"`
	RoomType      string  `json:"room_type" binding:"required"`
	PricePerNight float64 `json:"price_per_night" binding:"gte=0"`
	Capacity      int     `json:"capacity" binding:"required,gt=0"`
	Status        string  `json:"status"`
}

type UpdateRoomBody struct {
	RoomNumber    *int     `json:"room_number"`
	RoomType      *string  `json:"room_type"`
	PricePerNight *float64 `json:"price_per_night"`
	Capacity      *int     `json:"capacity"`
}

// SetStatusBody carries the new room status. The value is validated against
// the enumeration in the service ("Under Maintenance" contains a space, which
// rules out a oneof binding tag).
type SetStatusBody struct {
	Status string `json:"status" binding:"required"`
}

type RoomResponse struct {
	ID            string    `json:"id"`
	RoomNumber    int       `json:"room_number"`
	RoomType      string    `json:"room_type"`
	PricePerNight float64   `json:"price_per_night"`
	Capacity      int       `json:"capacity"`
	Status        string    `json:"status"`
	Images        []string  `json:"images"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewRoomResponse(rm *room.Room) RoomResponse {
	images := rm.Images
	if images == nil {
		images = make([]string, 0)
	}

	return RoomResponse{
		ID:            rm.ID,
		RoomNumber:    rm.RoomNumber,
		RoomType:      string(rm.RoomType),
		PricePerNight: rm.PricePerNight,
		Capacity:      rm.Capacity,
		Status:        string(rm.Status),
		Images:        images,
		CreatedAt:     rm.CreatedAt,
		UpdatedAt:     rm.UpdatedAt,
	}
}
