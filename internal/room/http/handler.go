package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quickstay/hotel-booking-backend/internal/auth"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/response"
	"github.com/quickstay/hotel-booking-backend/internal/room"
)

const maxImagesPerRoom = 4

type Handler struct {
	service room.Service
}

func NewHandler(service room.Service) *Handler {
	return &Handler{service: service}
}

// Create lists a new room. The request is multipart: form fields roomType,
// pricePerNight and amenities (JSON array), plus up to four image files.
func (h *Handler) Create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, room.ErrInvalidInput)
		return
	}

	price, err := strconv.ParseInt(c.PostForm("pricePerNight"), 10, 64)
	if err != nil {
		response.Error(c, room.ErrInvalidInput)
		return
	}

	var amenities []string
	if raw := c.PostForm("amenities"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &amenities); err != nil {
			response.Error(c, room.ErrInvalidInput)
			return
		}
	}

	files := form.File["images"]
	if len(files) > maxImagesPerRoom {
		files = files[:maxImagesPerRoom]
	}

	images := make([]io.Reader, 0, len(files))
	closers := make([]io.Closer, 0, len(files))
	defer func() {
		for _, cl := range closers {
			cl.Close()
		}
	}()
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			response.Error(c, room.ErrInvalidInput)
			return
		}
		closers = append(closers, f)
		images = append(images, f)
	}

	created, err := h.service.Create(c.Request.Context(), room.CreateRequest{
		OwnerID:       auth.GetUserID(c),
		RoomType:      c.PostForm("roomType"),
		PricePerNight: price,
		Amenities:     amenities,
		Images:        images,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "room created successfully",
		"room":    NewRoomResponse(created),
	})
}

// List returns all rooms for the public browsing surface.
func (h *Handler) List(c *gin.Context) {
	filter := room.Filter{City: c.Query("city")}

	rooms, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, rm := range rooms {
		items[i] = NewRoomResponse(rm)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "rooms": items})
}

// ListOwner returns the rooms of the caller's hotel.
func (h *Handler) ListOwner(c *gin.Context) {
	rooms, err := h.service.ListForOwner(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, rm := range rooms {
		items[i] = NewRoomResponse(rm)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "rooms": items})
}

// ToggleAvailability flips the owner-controlled listing flag.
func (h *Handler) ToggleAvailability(c *gin.Context) {
	roomID := c.Param("roomId")
	if _, err := uuid.Parse(roomID); err != nil {
		response.Error(c, room.ErrNotFound)
		return
	}

	available, err := h.service.ToggleAvailability(c.Request.Context(), auth.GetUserID(c), roomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "availability updated",
		"isAvailable": available,
	})
}
