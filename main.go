package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	api "redalert-backend/cmd/api"
	alertdomain "redalert-backend/internal/alert/domain"
	alertRepo "redalert-backend/internal/alert/repository"
	alertUsecase "redalert-backend/internal/alert/usecase"
	authUsecase "redalert-backend/internal/auth/usecase"
	calendarUsecase "redalert-backend/internal/calendar/usecase"
	categorydomain "redalert-backend/internal/category/domain"
	categoryRepo "redalert-backend/internal/category/repository"
	categoryUsecase "redalert-backend/internal/category/usecase"
	devicedomain "redalert-backend/internal/device/domain"
	deviceRepo "redalert-backend/internal/device/repository"
	emaildomain "redalert-backend/internal/email/domain"
	emailRepo "redalert-backend/internal/email/repository"
	"redalert-backend/internal/email/scheduler"
	emailUsecase "redalert-backend/internal/email/usecase"
	"redalert-backend/internal/notification"
	"redalert-backend/pkg/ai"
	"redalert-backend/pkg/breaker"
	"redalert-backend/pkg/calendar"
	"redalert-backend/pkg/config"
	"redalert-backend/pkg/database"
	"redalert-backend/pkg/fcm"
	"redalert-backend/pkg/gmail"
	"redalert-backend/pkg/googleauth"
	"redalert-backend/pkg/sse"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()
	loc := cfg.Location()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&categorydomain.Category{}, &emaildomain.ProcessedEmail{}, &alertdomain.Alert{}, &devicedomain.DeviceToken{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	categoryRepository := categoryRepo.NewGormCategoryRepository(db)
	processedRepository := emailRepo.NewProcessedEmailRepository(db)
	alertRepository := alertRepo.NewAlertRepository(db)
	deviceRepository := deviceRepo.NewDeviceTokenRepository(db)

	// Google OAuth client shared by Gmail and Calendar
	httpClient, err := googleauth.NewHTTPClient(ctx, googleauth.Options{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RefreshToken: cfg.GoogleRefreshToken,
		TokenFile:    cfg.GoogleTokenFile,
	})
	if err != nil {
		log.Fatal("Failed to initialize Google OAuth client:", err)
	}

	gmailService, err := gmail.NewService(ctx, httpClient)
	if err != nil {
		log.Fatal("Failed to initialize Gmail service:", err)
	}

	calendarService, err := calendar.NewService(ctx, httpClient, cfg.GoogleCalendarID, loc)
	if err != nil {
		log.Fatal("Failed to initialize Calendar service:", err)
	}
	reconciler := calendarUsecase.NewReconciler(calendarService, loc, cfg.CalendarPlaceholder)

	// Initialize runtime Ollama settings before the extractor reads them
	api.InitRuntimeConfig(cfg.OllamaBaseURL, cfg.OllamaModel)

	extractor, err := ai.NewExtractor(ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:  cfg.GeminiApiKey,
		GeminiModel:   cfg.GeminiModel,
		OllamaBaseURL: api.GetRuntimeOllamaBaseURL,
		OllamaModel:   api.GetRuntimeOllamaModel,
		Location:      loc,
		Breaker:       breaker.New("ai", cfg.BreakerThreshold, cfg.BreakerCooldown),
	})
	if err != nil {
		log.Fatal("Failed to initialize AI service:", err)
	}

	// Initialize SSE Manager
	sseManager := sse.NewManager(16, 30*time.Second)

	// Notification sinks: SSE always, Pub/Sub and FCM when configured
	notifyOpts := []notification.Option{notification.WithLocation(loc)}

	var pubsubPublisher *notification.PubSubPublisher
	if cfg.GoogleProjectID != "" && cfg.GooglePubSubTopic != "" {
		// Extract short topic name from full resource name if necessary
		topicName := cfg.GooglePubSubTopic
		if parts := strings.Split(topicName, "/"); len(parts) > 1 {
			topicName = parts[len(parts)-1]
		}

		pubsubPublisher, err = notification.NewPubSubPublisher(ctx, cfg.GoogleProjectID, topicName, cfg.GoogleCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize Pub/Sub publisher (topic fan-out disabled): %v", err)
		} else {
			notifyOpts = append(notifyOpts, notification.WithTopic(pubsubPublisher))
			log.Printf("[PubSub] Publishing alerts to topic %s", topicName)
		}
	} else {
		log.Printf("[WARN] GOOGLE_PROJECT_ID or GOOGLE_PUBSUB_TOPIC not configured, topic fan-out disabled")
	}

	if cfg.FirebaseCredentials != "" {
		fcmClient, err := fcm.NewClient(ctx, cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
		} else {
			notifyOpts = append(notifyOpts, notification.WithPush(fcmClient, deviceRepository))
		}
	} else {
		log.Printf("[WARN] No Firebase credentials configured, FCM disabled")
	}

	notifier := notification.NewService(sseManager, notifyOpts...)

	// Initialize use cases (dependency injection)
	poller := emailUsecase.NewPollingUsecase(
		gmailService,
		extractor,
		reconciler,
		notifier,
		categoryRepository,
		processedRepository,
		alertRepository,
		breaker.New("gmail", cfg.BreakerThreshold, cfg.BreakerCooldown),
		emailUsecase.PollerConfig{
			MaxResults:   cfg.PollMaxResults,
			MaxPerCycle:  cfg.PollMaxPerCycle,
			AIDelay:      cfg.PollAIDelay,
			ForceUrgent:  cfg.PollForceUrgent,
			SeenCapacity: cfg.PollSeenCapacity,
			CheckLedger:  cfg.PollCheckLedger,
		},
	)

	handler := api.NewHandler(api.Deps{
		Auth:            authUsecase.NewAuthUsecase(cfg),
		Poller:          poller,
		Search:          emailUsecase.NewEmailSearchUsecase(gmailService),
		ProcessedEmails: emailUsecase.NewProcessedEmailUsecase(processedRepository),
		Categories:      categoryUsecase.NewCategoryUsecase(categoryRepository),
		Alerts:          alertUsecase.NewAlertUsecase(alertRepository, processedRepository, notifier, reconciler, loc),
		Devices:         deviceRepository,
		SSE:             sseManager,
	}, cfg)

	pollScheduler := scheduler.NewPollScheduler(poller, cfg.PollInterval)
	pollScheduler.Start()

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := handler.Start(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	pollScheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := handler.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}

	notifier.Wait()
	if pubsubPublisher != nil {
		if err := pubsubPublisher.Close(); err != nil {
			log.Printf("[PubSub] Close error: %v", err)
		}
	}
	log.Println("Server stopped")
}
