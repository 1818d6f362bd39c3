package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoteldesk/hotel-booking-backend/internal/auth"
	"github.com/hoteldesk/hotel-booking-backend/internal/booking"
	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/request"
	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/response"
	"github.com/hoteldesk/hotel-booking-backend/internal/user"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// POST /v1/bookings
func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		UserID:       userID,
		RoomID:       body.RoomID,
		GuestName:    body.GuestName,
		CheckInDate:  body.CheckInDate,
		CheckOutDate: body.CheckOutDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// GET /v1/bookings
func (h *Handler) List(c *gin.Context) {
	page, pageSize := request.Pagination(c)

	bookings, total, err := h.service.ListByUser(c.Request.Context(), auth.GetUserID(c), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, pageOf(bookings, page, pageSize, total))
}

// GET /v1/bookings/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	isAdmin := auth.GetUserRole(c) == string(user.RoleAdmin)
	b, err := h.service.GetByID(c.Request.Context(), id, auth.GetUserID(c), isAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// PATCH /v1/bookings/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	var body UpdateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, booking.UpdateRequest{
		GuestName:    body.GuestName,
		CheckInDate:  body.CheckInDate,
		CheckOutDate: body.CheckOutDate,
		RoomID:       body.RoomID,
	}, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// DELETE /v1/bookings/:id
//
// Cancellation is a state transition, not a row deletion: the booking stays
// on record with status Cancelled.
func (h *Handler) Cancel(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// GET /v1/admin/bookings
func (h *Handler) AdminList(c *gin.Context) {
	page, pageSize := request.Pagination(c)

	bookings, total, err := h.service.ListAll(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, pageOf(bookings, page, pageSize, total))
}

// PUT /v1/admin/bookings/:id/status
func (h *Handler) AdminSetStatus(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	var body SetStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := h.service.SetStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func pageOf(bookings []*booking.Booking, page, pageSize, total int) response.PageResponse[BookingResponse] {
	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	return response.NewPageResponse(items, page, pageSize, total)
}
