package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Leganyst/booking-core/internal/repository"
	"github.com/Leganyst/booking-core/internal/service"
)

// Handler — HTTP-фасад над сервисами. Вся логика живёт в service,
// здесь только разбор запросов и коды ответов.
type Handler struct {
	availability *service.AvailabilityService
	schedule     *service.ScheduleService
	bookings     *service.BookingService
	services     repository.ServiceRepository
	events       repository.EventRepository
	log          *zap.Logger
}

func New(
	availability *service.AvailabilityService,
	schedule *service.ScheduleService,
	bookings *service.BookingService,
	services repository.ServiceRepository,
	events repository.EventRepository,
	log *zap.Logger,
) *Handler {
	return &Handler{
		availability: availability,
		schedule:     schedule,
		bookings:     bookings,
		services:     services,
		events:       events,
		log:          log,
	}
}

func (h *Handler) Register(r *gin.Engine) {
	api := r.Group("/api")

	api.GET("/providers/:providerID/slots", h.GetSlots)
	api.GET("/providers/:providerID/bookable-days", h.GetBookableDays)

	api.GET("/providers/:providerID/schedule", h.ListSchedule)
	api.POST("/providers/:providerID/schedule", h.AddPeriod)
	api.DELETE("/providers/:providerID/schedule/:weekday", h.ClearWeekday)
	api.PUT("/schedule/:periodID", h.UpdatePeriod)
	api.DELETE("/schedule/:periodID", h.DeletePeriod)

	api.POST("/bookings", h.CreateBooking)
	api.GET("/bookings/:bookingID", h.GetBooking)
	api.GET("/bookings/:bookingID/events", h.ListBookingEvents)
	api.GET("/users/:userID/bookings", h.ListUserBookings)
}

// respondError переводит ошибки сервисного слоя в HTTP-статусы.
func (h *Handler) respondError(c *gin.Context, err error) {
	var rejected *service.PeriodRejectedError
	switch {
	case errors.As(err, &rejected):
		body := gin.H{"error": rejected.Error(), "reason": string(rejected.Result.Reason)}
		if rejected.Result.Conflict != nil {
			body["conflict"] = gin.H{
				"id":    rejected.Result.Conflict.ID,
				"start": rejected.Result.Conflict.Start,
				"end":   rejected.Result.Conflict.End,
			}
		}
		c.JSON(http.StatusUnprocessableEntity, body)
	case errors.Is(err, service.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "slot already taken"})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInvalidInterval), errors.Is(err, service.ErrInvalidWeekday):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error("internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
