package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/booking-core/internal/model"
)

type bookingRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	ProviderID string `json:"provider_id" binding:"required"`
	ServiceID  string `json:"service_id" binding:"required"`
	Start      string `json:"start" binding:"required"` // RFC3339
	Comment    string `json:"comment"`
}

type bookingResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	ProviderID string  `json:"provider_id"`
	ServiceID  string  `json:"service_id"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Price      float64 `json:"price"`
	Comment    string  `json:"comment,omitempty"`
}

func asBookingResponse(b *model.Booking) bookingResponse {
	return bookingResponse{
		ID:         b.ID.String(),
		UserID:     b.UserID.String(),
		ProviderID: b.ProviderID.String(),
		ServiceID:  b.ServiceID.String(),
		Start:      b.StartDt.Format(time.RFC3339),
		End:        b.EndDt.Format(time.RFC3339),
		Price:      b.Price,
		Comment:    b.Comment,
	}
}

// CreateBooking создаёт запись. Конец интервала и цена берутся из услуги,
// проигрыш гонки за слот возвращается как 409.
// POST /api/bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	providerID, err := uuid.Parse(req.ProviderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}
	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start, expected RFC3339"})
		return
	}

	svc, err := h.services.GetByID(c.Request.Context(), serviceID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}
		h.respondError(c, err)
		return
	}
	end := start.Add(time.Duration(svc.DurationMins) * time.Minute)

	booking, err := h.bookings.CreateBooking(
		c.Request.Context(),
		userID, providerID, serviceID,
		start, end,
		svc.Price,
		req.Comment,
	)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, asBookingResponse(booking))
}

// GetBooking возвращает запись по ID.
// GET /api/bookings/:bookingID
func (h *Handler) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	booking, err := h.bookings.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, asBookingResponse(booking))
}

// ListBookingEvents возвращает журнал событий записи.
// GET /api/bookings/:bookingID/events
func (h *Handler) ListBookingEvents(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	events, err := h.events.ListByBooking(c.Request.Context(), bookingID.String())
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(events))
	for _, ev := range events {
		out = append(out, gin.H{
			"event_type": ev.EventType,
			"details":    ev.Details,
			"created_at": ev.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}

// ListUserBookings возвращает записи клиента, свежие сверху.
// GET /api/users/:userID/bookings
func (h *Handler) ListUserBookings(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	bookings, err := h.bookings.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, asBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}
