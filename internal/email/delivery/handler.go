package delivery

import (
	"context"
	"net/http"
	"time"

	emaildto "redalert-backend/internal/email/dto"
	"redalert-backend/internal/email/usecase"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	poller usecase.Poller
	search usecase.EmailSearchUsecase
}

func NewEmailHandler(poller usecase.Poller, search usecase.EmailSearchUsecase) *EmailHandler {
	return &EmailHandler{
		poller: poller,
		search: search,
	}
}

// POST /api/v1/emails/poll
// Poll runs one polling cycle synchronously. The cycle outlives a client
// that disconnects mid-request.
func (h *EmailHandler) Poll(c *gin.Context) {
	result, err := h.poller.PollEmails(context.WithoutCancel(c.Request.Context()))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     err.Error(),
			"timestamp": time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Email polling completed",
		"result":    result,
		"timestamp": time.Now(),
	})
}

// GET /api/v1/emails/search
func (h *EmailHandler) Search(c *gin.Context) {
	var req emaildto.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unreadOnly := true
	if req.UnreadOnly != nil {
		unreadOnly = *req.UnreadOnly
	}

	result, err := h.search.Search(c.Request.Context(), usecase.SearchCriteria{
		From:       req.From,
		Subject:    req.Subject,
		Body:       req.Body,
		UnreadOnly: unreadOnly,
		MaxResults: req.MaxResults,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	emails := emaildto.ToEmailResults(result.Emails)
	c.JSON(http.StatusOK, emaildto.SearchResponse{
		Emails:       emails,
		TotalResults: len(emails),
		Query:        result.Query,
		SearchTimeMs: result.Duration.Milliseconds(),
	})
}
