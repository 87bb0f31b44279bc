package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	alertdomain "redalert-backend/internal/alert/domain"
	categorydomain "redalert-backend/internal/category/domain"
	emaildomain "redalert-backend/internal/email/domain"
	"redalert-backend/pkg/ai"
	"redalert-backend/pkg/backoff"
	"redalert-backend/pkg/breaker"
)

const noSubject = "(No Subject)"

// Mailbox is the message provider the poller reads from.
type Mailbox interface {
	Search(ctx context.Context, query string, maxResults int64) ([]string, error)
	FetchFull(ctx context.Context, messageID string) (*emaildomain.RawMessage, error)
	MarkRead(ctx context.Context, messageID string) error
}

// CalendarReconciler ensures a calendar event exists for an alert and returns
// its link, or nil when the calendar is unavailable.
type CalendarReconciler interface {
	EnsureEvent(ctx context.Context, alert *alertdomain.ClassAlert) *string
}

// Notifier publishes alerts to clients on a best-effort basis.
type Notifier interface {
	Publish(ctx context.Context, alert *alertdomain.ClassAlert)
}

// CategorySource lists the categories to poll.
type CategorySource interface {
	FindActive() ([]*categorydomain.Category, error)
}

// ProcessedEmailStore is the durable ledger of handled messages.
type ProcessedEmailStore interface {
	InsertIfAbsent(record *emaildomain.ProcessedEmail) (*emaildomain.ProcessedEmail, bool, error)
	ExistsByEmailID(emailID string) (bool, error)
}

// AlertRecorder keeps the alert history.
type AlertRecorder interface {
	Save(alert *alertdomain.Alert) error
}

// PollerConfig holds the tunable polling policy.
type PollerConfig struct {
	MaxResults   int64
	MaxPerCycle  int
	AIDelay      time.Duration
	ForceUrgent  bool
	SeenCapacity int
	CheckLedger  bool
}

// CycleResult summarizes one poll cycle.
type CycleResult struct {
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Categories int       `json:"categories"`
	Found      int       `json:"found"`
	Processed  int       `json:"processed"`
	Analyzed   int       `json:"analyzed"`
	Matched    int       `json:"matched"`
	Failed     int       `json:"failed"`
	CapReached bool      `json:"capReached"`
	Skipped    bool      `json:"skipped"`
}

// PollingUsecase runs poll cycles: search every active category, analyze
// unseen messages, reconcile the calendar, notify and mark read.
// Cycles may overlap; the seen-set and the ledger's unique key keep that safe.
type PollingUsecase struct {
	mailbox    Mailbox
	extractor  ai.Extractor
	calendar   CalendarReconciler
	notifier   Notifier
	categories CategorySource
	ledger     ProcessedEmailStore
	alerts     AlertRecorder
	breaker    *breaker.Breaker
	seen       *SeenSet
	cfg        PollerConfig

	mu  sync.RWMutex
	now func() time.Time
}

func NewPollingUsecase(
	mailbox Mailbox,
	extractor ai.Extractor,
	calendar CalendarReconciler,
	notifier Notifier,
	categories CategorySource,
	ledger ProcessedEmailStore,
	alerts AlertRecorder,
	mailboxBreaker *breaker.Breaker,
	cfg PollerConfig,
) *PollingUsecase {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	if mailboxBreaker == nil {
		mailboxBreaker = breaker.New("mailbox", 5, time.Minute)
	}
	return &PollingUsecase{
		mailbox:    mailbox,
		extractor:  extractor,
		calendar:   calendar,
		notifier:   notifier,
		categories: categories,
		ledger:     ledger,
		alerts:     alerts,
		breaker:    mailboxBreaker,
		seen:       NewSeenSet(cfg.SeenCapacity),
		cfg:        cfg,
		now:        time.Now,
	}
}

// SetClock replaces the time source used for date fallbacks (tests).
func (u *PollingUsecase) SetClock(now func() time.Time) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.now = now
}

func (u *PollingUsecase) clock() time.Time {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.now()
}

// Seen exposes the seen-set (tests and diagnostics).
func (u *PollingUsecase) Seen() *SeenSet {
	return u.seen
}

// cycle carries the per-cycle counters so overlapping cycles do not share them.
type cycle struct {
	result  *CycleResult
	lastAI  bool
	stopped bool
}

// PollEmails runs one cycle. It only returns an error when the categories
// cannot be loaded; everything else is logged and counted.
func (u *PollingUsecase) PollEmails(ctx context.Context) (*CycleResult, error) {
	c := &cycle{result: &CycleResult{StartedAt: u.clock()}}
	defer func() { c.result.FinishedAt = u.clock() }()

	if u.breaker.IsOpen() {
		log.Printf("[Poller] Mailbox unavailable (breaker open), skipping polling cycle")
		c.result.Skipped = true
		return c.result, nil
	}

	categories, err := u.categories.FindActive()
	if err != nil {
		return c.result, fmt.Errorf("failed to load active categories: %w", err)
	}
	if len(categories) == 0 {
		log.Printf("[Poller] No active categories configured, skipping polling")
		return c.result, nil
	}

	log.Printf("[Poller] Polling %d active categories", len(categories))
	c.result.Categories = len(categories)

	for _, category := range categories {
		if c.stopped || ctx.Err() != nil {
			break
		}
		if err := u.pollCategory(ctx, c, category); err != nil {
			if ctx.Err() != nil {
				log.Printf("[Poller] Cycle interrupted: %v", ctx.Err())
				break
			}
			if errors.Is(err, breaker.ErrOpen) {
				log.Printf("[Poller] Mailbox unavailable (breaker open), skipping rest of cycle")
				c.result.Skipped = true
				break
			}
			log.Printf("[Poller] Error polling category '%s': %v", category.Name, err)
			c.result.Failed++
		}
	}

	log.Printf("[Poller] Polling completed: %d found, %d processed, %d analyzed, %d matched",
		c.result.Found, c.result.Processed, c.result.Analyzed, c.result.Matched)
	return c.result, nil
}

func (u *PollingUsecase) pollCategory(ctx context.Context, c *cycle, category *categorydomain.Category) error {
	query := category.GmailQuery()
	log.Printf("[Poller] Polling category '%s' with query: %s", category.Name, query)

	var ids []string
	err := u.breaker.ExecuteContext(ctx, func() error {
		var err error
		ids, err = u.mailbox.Search(ctx, query, u.cfg.MaxResults)
		return err
	})
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	log.Printf("[Poller] Found %d message(s) for category '%s'", len(ids), category.Name)
	c.result.Found += len(ids)

	for _, id := range ids {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if u.cfg.MaxPerCycle > 0 && c.result.Analyzed >= u.cfg.MaxPerCycle {
			log.Printf("[Poller] Reached %d analyses this cycle, leaving remaining messages for the next one", u.cfg.MaxPerCycle)
			c.result.CapReached = true
			c.stopped = true
			return nil
		}
		if !u.seen.Add(id) {
			continue
		}
		if err := u.processMessage(ctx, c, id, category); err != nil {
			if errors.Is(err, breaker.ErrOpen) || ctx.Err() != nil {
				return err
			}
			log.Printf("[Poller] Error processing message %s: %v", id, err)
			c.result.Failed++
		}
	}
	return nil
}

// processMessage handles one claimed message. Errors returned here happen
// before any side effect, so the claim is released for a later retry. That
// includes ctx ending before the analysis result is known.
func (u *PollingUsecase) processMessage(ctx context.Context, c *cycle, id string, category *categorydomain.Category) error {
	if u.cfg.CheckLedger && u.ledger != nil {
		exists, err := u.ledger.ExistsByEmailID(id)
		if err != nil {
			log.Printf("[Poller] Ledger lookup failed for %s: %v", id, err)
		} else if exists {
			log.Printf("[Poller] Message %s already processed, marking read", id)
			u.markRead(ctx, id)
			return nil
		}
	}

	msg, err := u.fetch(ctx, id)
	if err != nil {
		u.seen.Remove(id)
		return fmt.Errorf("fetch: %w", err)
	}
	c.result.Processed++

	body := ExtractBody(msg)
	if body == "" {
		log.Printf("[Poller] Empty email body for message %s, skipping", id)
		u.markRead(ctx, id)
		return nil
	}

	receivedAt := ParseEmailDate(msg.Date, u.clock)
	log.Printf("[Poller] Processing email '%s' from '%s'", msg.Subject, msg.From)

	if c.lastAI && u.cfg.AIDelay > 0 {
		sleep(ctx, u.cfg.AIDelay)
	}
	if err := ctx.Err(); err != nil {
		u.seen.Remove(id)
		return err
	}
	c.lastAI = true
	c.result.Analyzed++

	alert, err := u.extractor.Analyze(ctx, body, receivedAt)
	if ctxErr := ctx.Err(); ctxErr != nil {
		log.Printf("[Poller] Analysis of %s interrupted, leaving it unread: %v", id, ctxErr)
		u.seen.Remove(id)
		return ctxErr
	}
	if err != nil {
		log.Printf("[Poller] AI analysis failed for %s: %v", id, err)
		alert = nil
	}

	// from here on the message is handled and must be marked read exactly once
	settled := context.WithoutCancel(ctx)
	defer u.markRead(settled, id)

	if alert != nil {
		if err := alert.Validate(); err != nil {
			log.Printf("[Poller] Discarding extracted alert for %s: %v", id, err)
			alert = nil
		}
	}

	if alert == nil {
		u.notifier.Publish(settled, fallbackAlert(msg, body, receivedAt))
		return nil
	}

	return u.handleMatch(settled, c, msg, body, receivedAt, category, alert)
}

// fetch loads a message through the mailbox breaker. Permanent errors, such as
// a message deleted since the search, say nothing about mailbox health and are
// not counted against it.
func (u *PollingUsecase) fetch(ctx context.Context, id string) (*emaildomain.RawMessage, error) {
	var msg *emaildomain.RawMessage
	var fetchErr error
	err := u.breaker.ExecuteContext(ctx, func() error {
		msg, fetchErr = u.mailbox.FetchFull(ctx, id)
		if fetchErr != nil && !backoff.IsRetryable(fetchErr) {
			return nil
		}
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return msg, fetchErr
}

func (u *PollingUsecase) handleMatch(ctx context.Context, c *cycle, msg *emaildomain.RawMessage, body string, receivedAt time.Time, category *categorydomain.Category, alert *alertdomain.ClassAlert) error {
	categoryID := category.ID
	record := emaildomain.NewProcessedEmail(msg.ID, msg.From, msg.Subject, body, receivedAt, &categoryID)
	if u.ledger != nil {
		_, created, err := u.ledger.InsertIfAbsent(record)
		if err != nil {
			log.Printf("[Poller] Failed to record message %s: %v", msg.ID, err)
		} else if !created {
			log.Printf("[Poller] Message %s was handled by another cycle, skipping alert", msg.ID)
			return nil
		}
	}

	alert.CalendarLink = u.calendar.EnsureEvent(ctx, alert)
	if u.cfg.ForceUrgent {
		alert.IsUrgent = true
	}

	if u.alerts != nil {
		src := &alertdomain.Source{EmailID: msg.ID, From: msg.From, Subject: msg.Subject, CategoryID: &categoryID}
		if err := u.alerts.Save(alertdomain.NewAlertRecord(alert, src)); err != nil {
			log.Printf("[Poller] Failed to save alert history for %s: %v", msg.ID, err)
		}
	}

	log.Printf("[Poller] Alert detected: %s (%s)", alert.Title, alert.Date.Format(time.RFC3339))
	u.notifier.Publish(ctx, alert)
	c.result.Matched++
	return nil
}

func (u *PollingUsecase) markRead(ctx context.Context, id string) {
	if err := u.mailbox.MarkRead(ctx, id); err != nil {
		log.Printf("[Poller] Failed to mark message as read: %s: %v", id, err)
	}
}

// fallbackAlert is the informational, non-urgent notification sent when no
// event was extracted.
func fallbackAlert(msg *emaildomain.RawMessage, body string, receivedAt time.Time) *alertdomain.ClassAlert {
	title := msg.Subject
	if title == "" {
		title = noSubject
	}
	return &alertdomain.ClassAlert{
		Title:       title,
		Date:        receivedAt,
		Description: fmt.Sprintf("Email from: %s\n\n%s", msg.From, emaildomain.Snippet(body)),
		IsUrgent:    false,
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
