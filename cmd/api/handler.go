package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	alertDelivery "redalert-backend/internal/alert/delivery"
	alertUsecasePkg "redalert-backend/internal/alert/usecase"
	authDelivery "redalert-backend/internal/auth/delivery"
	authUsecasePkg "redalert-backend/internal/auth/usecase"
	categoryDelivery "redalert-backend/internal/category/delivery"
	categoryUsecasePkg "redalert-backend/internal/category/usecase"
	deviceDelivery "redalert-backend/internal/device/delivery"
	deviceRepo "redalert-backend/internal/device/repository"
	emailDelivery "redalert-backend/internal/email/delivery"
	emailUsecasePkg "redalert-backend/internal/email/usecase"
	"redalert-backend/pkg/config"
	"redalert-backend/pkg/sse"

	"github.com/gin-gonic/gin"
)

const serviceName = "redalert-backend"

// Deps are the use cases the HTTP layer is built on
type Deps struct {
	Auth            authUsecasePkg.AuthUsecase
	Poller          emailUsecasePkg.Poller
	Search          emailUsecasePkg.EmailSearchUsecase
	ProcessedEmails emailUsecasePkg.ProcessedEmailUsecase
	Categories      categoryUsecasePkg.CategoryUsecase
	Alerts          alertUsecasePkg.AlertUsecase
	Devices         deviceRepo.DeviceTokenRepository
	SSE             *sse.Manager
}

type Handler struct {
	authUsecase           authUsecasePkg.AuthUsecase
	authHandler           *authDelivery.AuthHandler
	emailHandler          *emailDelivery.EmailHandler
	processedEmailHandler *emailDelivery.ProcessedEmailHandler
	categoryHandler       *categoryDelivery.CategoryHandler
	alertHandler          *alertDelivery.AlertHandler
	deviceHandler         *deviceDelivery.DeviceHandler
	sseManager            *sse.Manager
	config                *config.Config
	server                *http.Server
}

func NewHandler(deps Deps, cfg *config.Config) *Handler {
	if !deps.Auth.Enabled() {
		log.Println("Warning: JWT_SECRET or ADMIN_PASSWORD_HASH not set, API is unauthenticated")
	}

	return &Handler{
		authUsecase:           deps.Auth,
		authHandler:           authDelivery.NewAuthHandler(deps.Auth),
		emailHandler:          emailDelivery.NewEmailHandler(deps.Poller, deps.Search),
		processedEmailHandler: emailDelivery.NewProcessedEmailHandler(deps.ProcessedEmails),
		categoryHandler:       categoryDelivery.NewCategoryHandler(deps.Categories),
		alertHandler:          alertDelivery.NewAlertHandler(deps.Alerts),
		deviceHandler:         deviceDelivery.NewDeviceHandler(deps.Devices),
		sseManager:            deps.SSE,
		config:                cfg,
	}
}

// Engine builds the gin engine with middleware and routes
func (h *Handler) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h)
	return r
}

// Start serves HTTP until Shutdown is called
func (h *Handler) Start(addr string) error {
	h.server = &http.Server{
		Addr:              addr,
		Handler:           h.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	err := h.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting requests and waits for in-flight ones
func (h *Handler) Shutdown(ctx context.Context) error {
	if h.server == nil {
		return nil
	}
	return h.server.Shutdown(ctx)
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "UP",
		"service":   serviceName,
		"timestamp": time.Now(),
	})
}
