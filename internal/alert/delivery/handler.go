package delivery

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"redalert-backend/internal/alert/domain"
	"redalert-backend/internal/alert/usecase"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	alertUsecase usecase.AlertUsecase
}

func NewAlertHandler(alertUsecase usecase.AlertUsecase) *AlertHandler {
	return &AlertHandler{alertUsecase: alertUsecase}
}

// GET /api/v1/alerts/history?limit=20
func (h *AlertHandler) GetHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(usecase.DefaultHistoryLimit)))

	alerts, total, err := h.alertUsecase.GetRecent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if alerts == nil {
		alerts = []*domain.Alert{}
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts":        alerts,
		"totalCount":    total,
		"returnedCount": len(alerts),
	})
}

// GET /api/v1/alerts/urgent
func (h *AlertHandler) GetUrgent(c *gin.Context) {
	alerts, err := h.alertUsecase.GetUrgent()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if alerts == nil {
		alerts = []*domain.Alert{}
	}
	c.JSON(http.StatusOK, alerts)
}

// GET /api/v1/alerts/stats
func (h *AlertHandler) GetStats(c *gin.Context) {
	stats, err := h.alertUsecase.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// DELETE /api/v1/alerts/history
func (h *AlertHandler) ClearHistory(c *gin.Context) {
	if _, err := h.alertUsecase.ClearHistory(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/v1/alerts/cleanup?daysOld=30
func (h *AlertHandler) Cleanup(c *gin.Context) {
	daysOld, err := strconv.Atoi(c.DefaultQuery("daysOld", strconv.Itoa(usecase.DefaultCleanupDays)))
	if err != nil || daysOld <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "daysOld must be a positive integer"})
		return
	}
	if _, err := h.alertUsecase.Cleanup(daysOld); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/v1/alerts/simulate/:processedEmailId
func (h *AlertHandler) SimulateFromEmail(c *gin.Context) {
	alert, err := h.alertUsecase.SimulateFromEmail(c.Request.Context(), c.Param("processedEmailId"))
	if err != nil {
		if errors.Is(err, usecase.ErrProcessedEmailNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Alert simulated and sent successfully",
		"alert":   alert,
	})
}

// POST /api/v1/alerts/simulate/test?title=&description=&url=
func (h *AlertHandler) SimulateTest(c *gin.Context) {
	alert, err := h.alertUsecase.SimulateTest(c.Request.Context(), c.Query("title"), c.Query("description"), c.Query("url"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Test alert sent successfully",
		"alert":   alert,
	})
}

// DELETE /api/v1/alerts/calendar?date=YYYY-MM-DD
func (h *AlertHandler) ClearCalendar(c *gin.Context) {
	count, day, err := h.alertUsecase.ClearCalendarDay(c.Request.Context(), c.Query("date"))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": count,
		"date":    day.Format("2006-01-02"),
		"message": fmt.Sprintf("Deleted %d events from calendar on %s", count, day.Format("2006-01-02")),
	})
}
