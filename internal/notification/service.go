package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	alertdomain "redalert-backend/internal/alert/domain"
	"redalert-backend/pkg/fcm"
)

// EventAlert is the SSE event name clients listen for.
const EventAlert = "alert"

const maxPushBody = 160

// Broadcaster pushes an event to connected realtime clients.
type Broadcaster interface {
	Broadcast(eventType string, payload interface{}) int
}

// TopicPublisher publishes a message to a fan-out topic.
type TopicPublisher interface {
	Publish(ctx context.Context, data []byte, attributes map[string]string) error
}

// PushSender delivers push notifications and reports tokens that failed.
type PushSender interface {
	SendToDevices(ctx context.Context, tokens []string, notification fcm.NotificationData) ([]string, error)
}

// TokenStore lists and prunes registered device tokens.
type TokenStore interface {
	ListTokens() ([]string, error)
	DeleteToken(token string) error
}

// Service publishes alerts to every configured channel. Every channel is
// optional and failures are only logged.
type Service struct {
	sse       Broadcaster
	topic     TopicPublisher
	push      PushSender
	tokens    TokenStore
	inflight  sync.WaitGroup
	dateFmt   string
	loc       *time.Location
	pushAsync bool
}

// Option configures optional channels.
type Option func(*Service)

// WithTopic enables Pub/Sub fan-out.
func WithTopic(topic TopicPublisher) Option {
	return func(s *Service) { s.topic = topic }
}

// WithPush enables FCM delivery to the devices in tokens.
func WithPush(push PushSender, tokens TokenStore) Option {
	return func(s *Service) {
		s.push = push
		s.tokens = tokens
	}
}

// WithLocation sets the zone used to format dates in push bodies.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithSyncPush sends push notifications before Publish returns.
func WithSyncPush() Option {
	return func(s *Service) { s.pushAsync = false }
}

func NewService(sse Broadcaster, opts ...Option) *Service {
	s := &Service{
		sse:       sse,
		dateFmt:   "Mon 02 Jan 15:04",
		loc:       time.UTC,
		pushAsync: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish delivers alert to realtime clients, the topic and registered devices.
func (s *Service) Publish(ctx context.Context, alert *alertdomain.ClassAlert) {
	if alert == nil {
		return
	}

	if s.sse != nil {
		n := s.sse.Broadcast(EventAlert, alert)
		log.Printf("[Notify] Alert %q sent to %d realtime client(s)", alert.Title, n)
	}

	if s.topic != nil {
		s.publishTopic(ctx, alert)
	}

	if s.push != nil && s.tokens != nil {
		if s.pushAsync {
			s.inflight.Add(1)
			go func() {
				defer s.inflight.Done()
				// the cycle context may end before delivery completes
				pushCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				s.sendPush(pushCtx, alert)
			}()
		} else {
			s.sendPush(ctx, alert)
		}
	}
}

// Wait blocks until in-flight push deliveries finish.
func (s *Service) Wait() {
	s.inflight.Wait()
}

func (s *Service) publishTopic(ctx context.Context, alert *alertdomain.ClassAlert) {
	data, err := json.Marshal(alert)
	if err != nil {
		log.Printf("[PubSub] Failed to encode alert: %v", err)
		return
	}
	attrs := map[string]string{
		"type":     "class_alert",
		"isUrgent": strconv.FormatBool(alert.IsUrgent),
	}
	if err := s.topic.Publish(ctx, data, attrs); err != nil {
		log.Printf("[PubSub] Failed to publish alert %q: %v", alert.Title, err)
		return
	}
	log.Printf("[PubSub] Published alert %q", alert.Title)
}

func (s *Service) sendPush(ctx context.Context, alert *alertdomain.ClassAlert) {
	tokens, err := s.tokens.ListTokens()
	if err != nil {
		log.Printf("[FCM] Error loading device tokens: %v", err)
		return
	}
	if len(tokens) == 0 {
		log.Printf("[FCM] No devices registered, skipping push notification")
		return
	}

	failed, err := s.push.SendToDevices(ctx, tokens, s.buildPush(alert))
	if err != nil {
		log.Printf("[FCM] Error sending notifications: %v", err)
		return
	}
	log.Printf("[FCM] Successfully sent to %d devices", len(tokens)-len(failed))

	// Cleanup failed tokens
	for _, token := range failed {
		if err := s.tokens.DeleteToken(token); err != nil {
			log.Printf("[FCM] Failed to prune token: %v", err)
		}
	}
}

func (s *Service) buildPush(alert *alertdomain.ClassAlert) fcm.NotificationData {
	body := fmt.Sprintf("%s - %s", alert.Date.In(s.loc).Format(s.dateFmt), alert.Description)
	if runes := []rune(body); len(runes) > maxPushBody {
		body = string(runes[:maxPushBody-3]) + "..."
	}

	data := map[string]string{
		"type":     "class_alert",
		"title":    alert.Title,
		"date":     alert.Date.Format(time.RFC3339),
		"isUrgent": strconv.FormatBool(alert.IsUrgent),
	}
	if alert.URL != nil {
		data["url"] = *alert.URL
	}
	if alert.CalendarLink != nil {
		data["calendarLink"] = *alert.CalendarLink
	}

	return fcm.NotificationData{
		Title:  alert.Title,
		Body:   body,
		Data:   data,
		Urgent: alert.IsUrgent,
	}
}
