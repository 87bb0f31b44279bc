package delivery

import (
	"log"
	"net/http"

	"redalert-backend/internal/device/repository"

	"github.com/gin-gonic/gin"
)

type RegisterDeviceRequest struct {
	Token      string `json:"token" binding:"required"`
	DeviceInfo string `json:"deviceInfo"`
}

type DeviceHandler struct {
	repo repository.DeviceTokenRepository
}

func NewDeviceHandler(repo repository.DeviceTokenRepository) *DeviceHandler {
	return &DeviceHandler{repo: repo}
}

// RegisterDevice stores a push token
// POST /api/v1/devices
func (h *DeviceHandler) RegisterDevice(c *gin.Context) {
	var req RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.repo.SaveToken(req.Token, req.DeviceInfo); err != nil {
		log.Printf("[FCM] Failed to save device token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register device"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "device registered"})
}

// UnregisterDevice removes a push token
// DELETE /api/v1/devices/:token
func (h *DeviceHandler) UnregisterDevice(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	if err := h.repo.DeleteToken(token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unregister device"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "device unregistered"})
}
