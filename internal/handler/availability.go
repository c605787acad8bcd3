package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/booking-core/internal/timeslot"
)

type slotResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func asSlotResponses(slots []timeslot.Slot) []slotResponse {
	out := make([]slotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotResponse{Start: s.Start.String(), End: s.End.String()})
	}
	return out
}

// GetSlots возвращает свободные слоты провайдера на дату для услуги.
// GET /api/providers/:providerID/slots?date=2006-01-02&service_id=...
func (h *Handler) GetSlots(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("providerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	svc, err := h.services.GetByID(c.Request.Context(), c.Query("service_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}
		h.respondError(c, err)
		return
	}

	slots, err := h.availability.ComputeSlots(
		c.Request.Context(),
		providerID,
		date,
		svc.DurationMins,
		svc.CoolingPeriodMins,
	)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date.Format("2006-01-02"),
		"slots": asSlotResponses(slots),
	})
}

// GetBookableDays возвращает дни окна, на которые есть хотя бы один слот.
// GET /api/providers/:providerID/bookable-days?from=2006-01-02&days=7&service_id=...
func (h *Handler) GetBookableDays(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("providerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from, expected YYYY-MM-DD"})
		return
	}
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
		return
	}

	svc, err := h.services.GetByID(c.Request.Context(), c.Query("service_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}
		h.respondError(c, err)
		return
	}

	found, err := h.availability.FindBookableDays(
		c.Request.Context(),
		providerID,
		from,
		days,
		svc.DurationMins,
		svc.CoolingPeriodMins,
	)
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]string, 0, len(found))
	for _, d := range found {
		out = append(out, d.Format("2006-01-02"))
	}
	c.JSON(http.StatusOK, gin.H{"days": out})
}
