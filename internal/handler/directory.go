package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Leganyst/booking-core/internal/model"
	"github.com/Leganyst/booking-core/internal/repository"
)

// DirectoryHandler обслуживает справочник: клиенты, провайдеры, услуги.
type DirectoryHandler struct {
	users     repository.UserRepository
	providers repository.ProviderRepository
	services  repository.ServiceRepository
}

func NewDirectoryHandler(
	users repository.UserRepository,
	providers repository.ProviderRepository,
	services repository.ServiceRepository,
) *DirectoryHandler {
	return &DirectoryHandler{users: users, providers: providers, services: services}
}

func (h *DirectoryHandler) Register(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/users", h.GetOrCreateUser)
	api.POST("/providers", h.CreateProvider)
	api.DELETE("/providers/:providerID", h.DeleteProvider)
	api.POST("/providers/:providerID/services", h.CreateService)
	api.GET("/providers/:providerID/services", h.ListServices)
}

// GetOrCreateUser находит клиента по Telegram ID или заводит нового.
// POST /api/users
func (h *DirectoryHandler) GetOrCreateUser(c *gin.Context) {
	var req struct {
		TelegramID  int64  `json:"telegram_id" binding:"required"`
		DisplayName string `json:"display_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	user, err := h.users.GetOrCreateByTelegramID(c.Request.Context(), req.TelegramID, req.DisplayName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID.String(),
		"telegram_id":  user.TelegramID,
		"display_name": user.DisplayName,
	})
}

// CreateProvider заводит провайдера для существующего клиента.
// POST /api/providers
func (h *DirectoryHandler) CreateProvider(c *gin.Context) {
	var req struct {
		UserID      string `json:"user_id" binding:"required"`
		DisplayName string `json:"display_name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	provider := &model.Provider{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Description: req.Description,
	}
	if err := h.providers.Create(c.Request.Context(), provider); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": provider.ID.String()})
}

// DeleteProvider удаляет провайдера вместе с услугами, расписанием и записями.
// DELETE /api/providers/:providerID
func (h *DirectoryHandler) DeleteProvider(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("providerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}

	if err := h.providers.Delete(c.Request.Context(), providerID.String()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateService добавляет услугу провайдера.
// POST /api/providers/:providerID/services
func (h *DirectoryHandler) CreateService(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("providerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}
	var req struct {
		Title             string  `json:"title" binding:"required"`
		Description       string  `json:"description"`
		Price             float64 `json:"price"`
		DurationMins      int     `json:"duration_mins" binding:"required,gt=0"`
		CoolingPeriodMins int     `json:"cooling_period_mins" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	svc := &model.Service{
		ProviderID:        providerID,
		Title:             req.Title,
		Description:       req.Description,
		Price:             req.Price,
		DurationMins:      req.DurationMins,
		CoolingPeriodMins: req.CoolingPeriodMins,
		Active:            true,
	}
	if err := h.services.Create(c.Request.Context(), svc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": svc.ID.String()})
}

// ListServices возвращает активные услуги провайдера.
// GET /api/providers/:providerID/services
func (h *DirectoryHandler) ListServices(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("providerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}

	services, err := h.services.ListActiveByProvider(c.Request.Context(), providerID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	out := make([]gin.H, 0, len(services))
	for _, s := range services {
		out = append(out, gin.H{
			"id":                  s.ID.String(),
			"title":               s.Title,
			"price":               s.Price,
			"duration_mins":       s.DurationMins,
			"cooling_period_mins": s.CoolingPeriodMins,
		})
	}
	c.JSON(http.StatusOK, gin.H{"services": out})
}
