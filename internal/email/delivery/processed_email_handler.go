package delivery

import (
	"errors"
	"net/http"

	emaildto "redalert-backend/internal/email/dto"
	"redalert-backend/internal/email/usecase"

	"github.com/gin-gonic/gin"
)

type ProcessedEmailHandler struct {
	processedUsecase usecase.ProcessedEmailUsecase
}

func NewProcessedEmailHandler(processedUsecase usecase.ProcessedEmailUsecase) *ProcessedEmailHandler {
	return &ProcessedEmailHandler{processedUsecase: processedUsecase}
}

func (h *ProcessedEmailHandler) List(c *gin.Context) {
	records, err := h.processedUsecase.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, emaildto.ToProcessedEmailResponses(records))
}

func (h *ProcessedEmailHandler) ListByCategory(c *gin.Context) {
	records, err := h.processedUsecase.ListByCategory(c.Param("categoryId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, emaildto.ToProcessedEmailResponses(records))
}

func (h *ProcessedEmailHandler) Count(c *gin.Context) {
	count, err := h.processedUsecase.Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *ProcessedEmailHandler) Delete(c *gin.Context) {
	if err := h.processedUsecase.Delete(c.Param("id")); err != nil {
		if errors.Is(err, usecase.ErrProcessedEmailNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProcessedEmailHandler) DeleteAll(c *gin.Context) {
	n, err := h.processedUsecase.DeleteAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}
