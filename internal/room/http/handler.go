package http

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/request"
	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/response"
	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/storage"
	"github.com/hoteldesk/hotel-booking-backend/internal/room"
)

const (
	maxImageSize   = 10 << 20 // 10 MiB per file
	thumbnailWidth = 400
)

type Handler struct {
	service room.Service
	store   storage.Store
}

func NewHandler(service room.Service, store storage.Store) *Handler {
	return &Handler{
		service: service,
		store:   store,
	}
}

// GET /v1/rooms
func (h *Handler) List(c *gin.Context) {
	page, pageSize := request.Pagination(c)

	filter := room.Filter{
		RoomType: c.Query("room_type"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}

	rooms, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, rm := range rooms {
		items[i] = NewRoomResponse(rm)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

// GET /v1/rooms/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	rm, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(rm))
}

// POST /v1/rooms (admin)
func (h *Handler) Create(c *gin.Context) {
	var body CreateRoomBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	rm, err := h.service.Create(c.Request.Context(), room.CreateRequest{
		RoomNumber:    body.RoomNumber,
		RoomType:      body.RoomType,
		PricePerNight: body.PricePerNight,
		Capacity:      body.Capacity,
		Status:        body.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRoomResponse(rm))
}

// PATCH /v1/rooms/:id (admin)
func (h *Handler) Update(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	var body UpdateRoomBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rm, err := h.service.Update(c.Request.Context(), id, room.UpdateRequest{
		RoomNumber:    body.RoomNumber,
		RoomType:      body.RoomType,
		PricePerNight: body.PricePerNight,
		Capacity:      body.Capacity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(rm))
}

// PUT /v1/rooms/:id/status (admin)
func (h *Handler) SetStatus(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	var body SetStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	rm, err := h.service.SetStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(rm))
}

// POST /v1/rooms/:id/images (admin)
//
// Accepts multipart form field "images" with one or more files. Each file is
// saved to the store alongside a JPEG thumbnail; the room keeps the served
// URL paths.
func (h *Handler) UploadImages(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
		return
	}

	ctx := c.Request.Context()
	urls := make([]string, 0, len(files))

	for _, header := range files {
		if header.Size > maxImageSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file %s exceeds the size limit", header.Filename)})
			return
		}
		if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file %s is not an image", header.Filename)})
			return
		}

		src, err := header.Open()
		if err != nil {
			response.Error(c, fmt.Errorf("open uploaded file: %w", err))
			return
		}

		ext := strings.ToLower(filepath.Ext(header.Filename))
		name := uuid.New().String()
		path := fmt.Sprintf("rooms/%s/%s%s", id, name, ext)

		err = h.store.Save(ctx, path, src)
		src.Close()
		if err != nil {
			response.Error(c, err)
			return
		}

		// Thumbnail failure is not fatal; the original image is already saved.
		if src, err = header.Open(); err == nil {
			if thumb, err := storage.Thumbnail(src, thumbnailWidth, thumbnailWidth); err == nil {
				_ = h.store.Save(ctx, fmt.Sprintf("rooms/%s/%s_thumb.jpg", id, name), thumb)
			}
			src.Close()
		}

		urls = append(urls, "/uploads/"+path)
	}

	rm, err := h.service.AddImages(ctx, id, urls)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(rm))
}
