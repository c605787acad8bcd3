package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Leganyst/booking-core/internal/model"
)

type periodRequest struct {
	Weekday int    `json:"weekday"`
	Start   string `json:"start" binding:"required"`
	End     string `json:"end" binding:"required"`
}

type periodResponse struct {
	ID      string `json:"id"`
	Weekday int    `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

func asPeriodResponse(p *model.WorkPeriod) periodResponse {
	return periodResponse{
		ID:      p.ID.String(),
		Weekday: p.Weekday,
		Start:   p.StartTime,
		End:     p.EndTime,
	}
}

// ListSchedule возвращает все рабочие периоды провайдера.
// GET /api/providers/:providerID/schedule
func (h *Handler) ListSchedule(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("providerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}

	periods, err := h.schedule.ListPeriods(c.Request.Context(), providerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]periodResponse, 0, len(periods))
	for i := range periods {
		out = append(out, asPeriodResponse(&periods[i]))
	}
	c.JSON(http.StatusOK, gin.H{"periods": out})
}

// AddPeriod добавляет рабочий период в недельное расписание.
// POST /api/providers/:providerID/schedule
func (h *Handler) AddPeriod(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("providerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}
	var req periodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	period, err := h.schedule.AddPeriod(c.Request.Context(), providerID, req.Weekday, req.Start, req.End)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, asPeriodResponse(period))
}

// UpdatePeriod меняет границы существующего периода.
// PUT /api/schedule/:periodID
func (h *Handler) UpdatePeriod(c *gin.Context) {
	periodID, err := uuid.Parse(c.Param("periodID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period id"})
		return
	}
	var req struct {
		Start string `json:"start" binding:"required"`
		End   string `json:"end" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	period, err := h.schedule.UpdatePeriod(c.Request.Context(), periodID, req.Start, req.End)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, asPeriodResponse(period))
}

// DeletePeriod удаляет период.
// DELETE /api/schedule/:periodID
func (h *Handler) DeletePeriod(c *gin.Context) {
	periodID, err := uuid.Parse(c.Param("periodID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period id"})
		return
	}

	if err := h.schedule.DeletePeriod(c.Request.Context(), periodID); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearWeekday удаляет все периоды провайдера на день недели.
// DELETE /api/providers/:providerID/schedule/:weekday
func (h *Handler) ClearWeekday(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("providerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}
	weekday, err := strconv.Atoi(c.Param("weekday"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid weekday"})
		return
	}

	deleted, err := h.schedule.ClearWeekday(c.Request.Context(), providerID, weekday)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
