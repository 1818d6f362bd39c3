package http

import (
	"time"

	"github.com/hoteldesk/hotel-booking-backend/internal/booking"
)

type CreateBookingBody struct {
	RoomID       string    `json:"room_id" binding:"required,uuid"`
	GuestName    string    `json:"guest_name" binding:"required"`
	CheckInDate  time.Time `json:"check_in_date" binding:"required"`
	CheckOutDate time.Time `json:"check_out_date" binding:"required"`
}

type UpdateBookingBody struct {
	GuestName    *string    `json:"guest_name"`
	CheckInDate  *time.Time `json:"check_in_date"`
	CheckOutDate *time.Time `json:"check_out_date"`
	RoomID       *string    `json:"room_id" binding:"omitempty,uuid"`
}

type SetStatusBody struct {
	Status string `json:"status" binding:"required"`
}

// RoomTag is the compact room reference embedded in booking responses.
type RoomTag struct {
	ID            string  `json:"id"`
	RoomNumber    int     `json:"room_number"`
	RoomType      string  `json:"room_type"`
	PricePerNight float64 `json:"price_per_night"`
}

// UserTag is the compact user reference embedded in booking responses.
type UserTag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingResponse struct {
	ID           string    `json:"id"`
	Room         RoomTag   `json:"room"`
	User         UserTag   `json:"user"`
	GuestName    string    `json:"guest_name"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID: b.ID,
		Room: RoomTag{
			ID:            b.RoomID,
			RoomNumber:    b.RoomNumber,
			RoomType:      b.RoomType,
			PricePerNight: b.PricePerNight,
		},
		User: UserTag{
			ID:    b.UserID,
			Name:  b.UserName,
			Email: b.UserEmail,
		},
		GuestName:    b.GuestName,
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
